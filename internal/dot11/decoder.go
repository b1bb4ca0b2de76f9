package dot11

import (
	"errors"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
)

// Decode failures. Both are local to a single captured frame; the caller
// drops the frame and continues with the next one.
var (
	// ErrTruncated indicates the buffer is shorter than the structure
	// being parsed requires.
	ErrTruncated = errors.New("dot11: truncated frame")

	// ErrMalformedElement indicates an information element declared a
	// length that runs past the end of the buffer.
	ErrMalformedElement = errors.New("dot11: malformed information element")
)

// Frame layout constants, in bytes.
const (
	frameControlLen = 2
	mgmtHeaderLen   = 24 // fc(2) + duration(2) + addr1(6) + addr2(6) + addr3(6) + seq(2)
	beaconFixedLen  = 12 // timestamp(8) + interval(2) + capability(2)
	ackFrameLen     = 10 // fc(2) + duration(2) + receiver(6)

	tagSSID = 0
)

// Decode parses the MAC-frame byte region that follows the radiotap
// header into a typed Frame. It is a pure function: no state, no I/O.
//
// A nonzero protocol version is not treated as an error; some vendor
// radios set the reserved bits and the type/subtype dispatch still
// applies. Only structural truncation and over-long information elements
// fail, and no partial Frame is ever returned on failure.
func Decode(b []byte) (Frame, error) {
	if len(b) < frameControlLen {
		return nil, ErrTruncated
	}

	ftype := (b[0] >> 2) & 0x03
	subtype := (b[0] >> 4) & 0x0f

	switch {
	case ftype == TypeMgmt && subtype == SubtypeBeacon:
		return decodeBeacon(b)
	case ftype == TypeCtrl && subtype == SubtypeAck:
		return decodeAck(b)
	default:
		return Unhandled{Type: ftype, Subtype: subtype}, nil
	}
}

// decodeBeacon parses the management header, skips the fixed beacon body
// and walks the trailing information elements for the SSID.
func decodeBeacon(b []byte) (Frame, error) {
	if len(b) < mgmtHeaderLen+beaconFixedLen {
		return nil, ErrTruncated
	}

	beacon := Beacon{
		Destination: domain.HardwareAddrFromBytes(b[4:10]),
		Source:      domain.HardwareAddrFromBytes(b[10:16]),
		BSSID:       domain.HardwareAddrFromBytes(b[16:22]),
	}

	ssid, err := findSSID(b[mgmtHeaderLen+beaconFixedLen:])
	if err != nil {
		return nil, err
	}
	beacon.SSID = ssid

	return beacon, nil
}

func decodeAck(b []byte) (Frame, error) {
	if len(b) < ackFrameLen {
		return nil, ErrTruncated
	}
	// Trailing bytes (FCS, if the driver delivers it) are ignored.
	return Ack{Receiver: domain.HardwareAddrFromBytes(b[4:10])}, nil
}

// findSSID walks the tag/length/value elements in order and returns the
// value of the first SSID element, nil if none is present. A zero-length
// element yields a pointer to the empty string, which is distinct from
// absence: hidden-SSID beacons advertise an empty element.
//
// The walk stops at the buffer end (a trailing tag byte without a length
// byte counts as the end), but an element whose declared length exceeds
// the remaining bytes fails the whole frame.
func findSSID(elements []byte) (*string, error) {
	var ssid *string

	for off := 0; off+2 <= len(elements); {
		tag := elements[off]
		length := int(elements[off+1])
		off += 2

		if off+length > len(elements) {
			return nil, ErrMalformedElement
		}
		if tag == tagSSID && ssid == nil {
			v := string(elements[off : off+length])
			ssid = &v
		}
		off += length
	}

	return ssid, nil
}
