package domain

import "time"

// Vendor identifies a hardware manufacturer resolved from an OUI prefix.
type Vendor struct {
	Name     string // short name, e.g. "Cisco"
	FullName string // registry name, e.g. "Cisco Systems, Inc"
}

// Device is one observed wireless device, keyed by hardware address.
//
// Vendor is resolved once when the record is created and never re-queried;
// nil means the OUI is not registered. Transmitted is monotonic: it flips
// to true the first time the address is seen as a frame source and never
// reverts. LastSSID is the most recent SSID advertised by this address as
// a beacon source; nil until such a beacon is seen, and a pointer to ""
// for hidden-SSID beacons that carry a zero-length SSID element.
type Device struct {
	Addr        HardwareAddr
	Vendor      *Vendor
	LastSSID    *string
	Transmitted bool

	FirstSeen time.Time
	LastSeen  time.Time
	Frames    uint64
}

// VendorName returns the short vendor name, or "unknown" when the
// manufacturer could not be resolved.
func (d Device) VendorName() string {
	if d.Vendor == nil {
		return "unknown"
	}
	return d.Vendor.Name
}

// SSID returns the last advertised SSID, or "none" when the device has
// never advertised one. A hidden (zero-length) SSID renders as "<hidden>".
func (d Device) SSID() string {
	if d.LastSSID == nil {
		return "none"
	}
	if *d.LastSSID == "" {
		return "<hidden>"
	}
	return *d.LastSSID
}

// VendorCount is one entry of a ranked vendor distribution.
type VendorCount struct {
	Vendor string
	Count  int
}
