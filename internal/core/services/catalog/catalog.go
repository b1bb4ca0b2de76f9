// Package catalog holds the in-memory inventory of observed devices.
//
// Records are created lazily on first reference to an address and live for
// the process lifetime; nothing is ever deleted. The capture loop is the
// only writer; the display layer and the exit report read snapshots.
package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
	"github.com/lcalzada-xor/airscout/internal/core/ports"
)

// Catalog maps hardware addresses to device records. The manufacturer is
// resolved through the vendor lookup exactly once, when a record is
// created, and never re-queried.
type Catalog struct {
	mu      sync.RWMutex
	devices map[domain.HardwareAddr]*domain.Device
	vendors ports.VendorLookup
	clock   func() time.Time
}

// New creates an empty catalog backed by the given vendor lookup.
func New(vendors ports.VendorLookup) *Catalog {
	return &Catalog{
		devices: make(map[domain.HardwareAddr]*domain.Device),
		vendors: vendors,
		clock:   time.Now,
	}
}

// getOrCreateLocked returns the record for addr, creating it on first
// reference. Callers must hold the write lock.
func (c *Catalog) getOrCreateLocked(ctx context.Context, addr domain.HardwareAddr) *domain.Device {
	if d, ok := c.devices[addr]; ok {
		d.LastSeen = c.clock()
		d.Frames++
		return d
	}

	now := c.clock()
	d := &domain.Device{
		Addr:      addr,
		FirstSeen: now,
		LastSeen:  now,
		Frames:    1,
	}
	if vendor, ok := c.vendors.Lookup(ctx, addr); ok {
		d.Vendor = &vendor
	}
	c.devices[addr] = d
	return d
}

// GetOrCreate ensures a record exists for addr and returns a snapshot of
// it. Repeated calls with the same address refer to the same logical
// record: mutations made through MarkTransmitted or RecordSSID are visible
// in later snapshots.
func (c *Catalog) GetOrCreate(ctx context.Context, addr domain.HardwareAddr) domain.Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.getOrCreateLocked(ctx, addr)
}

// MarkTransmitted ensures the record exists and sets its transmitted flag.
// The flag is monotonic; marking an already-transmitting device is a no-op.
func (c *Catalog) MarkTransmitted(ctx context.Context, addr domain.HardwareAddr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getOrCreateLocked(ctx, addr).Transmitted = true
}

// RecordSSID ensures the record exists and overwrites its last advertised
// SSID. Last write wins; no history is kept. The empty string is a valid
// SSID (hidden networks advertise one).
func (c *Catalog) RecordSSID(ctx context.Context, addr domain.HardwareAddr, ssid string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getOrCreateLocked(ctx, addr).LastSSID = &ssid
}

// Get returns a snapshot of the record for addr, if one exists.
func (c *Catalog) Get(addr domain.HardwareAddr) (domain.Device, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.devices[addr]
	if !ok {
		return domain.Device{}, false
	}
	return *d, true
}

// Devices returns a snapshot of all records. No ordering is guaranteed.
func (c *Catalog) Devices() []domain.Device {
	c.mu.RLock()
	defer c.mu.RUnlock()

	all := make([]domain.Device, 0, len(c.devices))
	for _, d := range c.devices {
		all = append(all, *d)
	}
	return all
}

// Len returns the number of known records.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.devices)
}

// VendorDistribution counts devices per resolved vendor short name.
// Devices whose manufacturer is unknown are excluded entirely, not bucketed.
// The result is a total order: descending by count, ties broken by
// ascending vendor name, so a bar chart renders deterministically.
func (c *Catalog) VendorDistribution() []domain.VendorCount {
	c.mu.RLock()
	counts := make(map[string]int)
	for _, d := range c.devices {
		if d.Vendor != nil {
			counts[d.Vendor.Name]++
		}
	}
	c.mu.RUnlock()

	dist := make([]domain.VendorCount, 0, len(counts))
	for name, n := range counts {
		dist = append(dist, domain.VendorCount{Vendor: name, Count: n})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Vendor < dist[j].Vendor
	})
	return dist
}
