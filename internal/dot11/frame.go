package dot11

import "github.com/lcalzada-xor/airscout/internal/core/domain"

// Frame types from the frame-control field (2 bits).
const (
	TypeMgmt uint8 = 0
	TypeCtrl uint8 = 1
	TypeData uint8 = 2
)

// Subtypes this decoder interprets.
const (
	SubtypeBeacon uint8 = 8
	SubtypeAck    uint8 = 13
)

// Frame is the decoded representation of an 802.11 MAC frame. Exactly one
// concrete variant is produced per successful decode, chosen solely by the
// frame-control type/subtype bits.
type Frame interface {
	frame()
}

// Beacon is a management frame advertising a network.
//
// SSID is nil when the frame carries no SSID element at all, and a pointer
// to the empty string for a zero-length element (hidden SSID). Both occur
// on real networks and are kept distinct.
type Beacon struct {
	Source      domain.HardwareAddr
	Destination domain.HardwareAddr
	BSSID       domain.HardwareAddr
	SSID        *string
}

// Ack is a control frame acknowledging receipt to a single address.
type Ack struct {
	Receiver domain.HardwareAddr
}

// Unhandled is any well-formed type/subtype combination the decoder does
// not interpret further. It is a successful decode, not an error: callers
// must be able to tell a deliberately unsupported frame from a corrupt one.
type Unhandled struct {
	Type    uint8
	Subtype uint8
}

func (Beacon) frame()    {}
func (Ack) frame()       {}
func (Unhandled) frame() {}
