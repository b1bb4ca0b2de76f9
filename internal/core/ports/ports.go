package ports

import (
	"context"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
)

// VendorLookup resolves a hardware address to its manufacturer.
//
// Lookup is total: an unregistered OUI is a normal (zero Vendor, false)
// result, never an error, so callers have no failure path to handle.
type VendorLookup interface {
	Lookup(ctx context.Context, addr domain.HardwareAddr) (domain.Vendor, bool)

	// Close releases resources held by the repository.
	Close() error
}

// Sniffer defines the interface for capture adapters.
type Sniffer interface {
	// Start runs the capture loop. It blocks until the context is
	// cancelled or a fatal capture/persistence error occurs.
	Start(ctx context.Context) error

	// Close releases the capture handle and the on-disk capture file.
	Close() error
}

// CatalogReader is the read-only view the display layer and the exit
// report consume.
type CatalogReader interface {
	// Devices returns a snapshot of every known record. No ordering is
	// guaranteed; consumers that need order must sort.
	Devices() []domain.Device

	// VendorDistribution returns per-vendor device counts, descending by
	// count with ties broken by ascending vendor name. Devices without a
	// resolved vendor are excluded.
	VendorDistribution() []domain.VendorCount

	// Len returns the number of known records.
	Len() int
}
