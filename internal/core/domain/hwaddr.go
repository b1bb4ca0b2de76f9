package domain

import "fmt"

// HardwareAddrLen is the length of an 802.11 MAC address in bytes.
const HardwareAddrLen = 6

// HardwareAddr is a 6-byte 802.11 hardware address. It is a value type
// comparable by byte equality, so it can key maps directly.
type HardwareAddr [HardwareAddrLen]byte

// HardwareAddrFromBytes copies the first 6 bytes of b into a HardwareAddr.
// The caller must guarantee len(b) >= 6.
func HardwareAddrFromBytes(b []byte) HardwareAddr {
	var a HardwareAddr
	copy(a[:], b)
	return a
}

// String returns the address in standard "aa:bb:cc:dd:ee:ff" notation.
func (a HardwareAddr) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", a[0], a[1], a[2], a[3], a[4], a[5])
}

// OUI returns the Organizationally Unique Identifier (first 3 bytes)
// as "XX:XX:XX", the key format used by the vendor repositories.
func (a HardwareAddr) OUI() string {
	return fmt.Sprintf("%02X:%02X:%02X", a[0], a[1], a[2])
}

// IsMulticast reports whether the group bit (bit 0 of the first octet) is set.
func (a HardwareAddr) IsMulticast() bool {
	return a[0]&0x01 != 0
}

// IsLocallyAdministered reports whether the LAA bit (bit 1 of the first
// octet) is set. Randomized client addresses carry this bit, so they never
// resolve to a registered vendor.
func (a HardwareAddr) IsLocallyAdministered() bool {
	return a[0]&0x02 != 0
}

// IsBroadcast reports whether the address is ff:ff:ff:ff:ff:ff.
func (a HardwareAddr) IsBroadcast() bool {
	return a == HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}
