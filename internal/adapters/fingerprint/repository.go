// Package fingerprint resolves hardware addresses to manufacturers via
// their OUI prefix. Repositories implement ports.VendorLookup, which is
// total by design: a missing OUI is a normal negative result, so the
// program never has an abort path tied to vendor resolution.
package fingerprint

import (
	"context"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
	"github.com/lcalzada-xor/airscout/internal/core/ports"
)

// CompositeVendorRepository chains repositories, trying each in order
// until one resolves the address.
type CompositeVendorRepository struct {
	repositories []ports.VendorLookup
}

// NewCompositeVendorRepository creates a composite over the given
// repositories, consulted in argument order.
func NewCompositeVendorRepository(repos ...ports.VendorLookup) *CompositeVendorRepository {
	return &CompositeVendorRepository{repositories: repos}
}

// Lookup tries each repository in order until one resolves the OUI.
// Locally administered (randomized) addresses never resolve: the OUI
// bytes are not a registry assignment.
func (c *CompositeVendorRepository) Lookup(ctx context.Context, addr domain.HardwareAddr) (domain.Vendor, bool) {
	if addr.IsLocallyAdministered() {
		return domain.Vendor{}, false
	}
	for _, repo := range c.repositories {
		if vendor, ok := repo.Lookup(ctx, addr); ok {
			return vendor, true
		}
	}
	return domain.Vendor{}, false
}

// Close closes all chained repositories, returning the first error.
func (c *CompositeVendorRepository) Close() error {
	var firstErr error
	for _, repo := range c.repositories {
		if err := repo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// StaticVendorRepository serves lookups from an in-memory OUI map.
type StaticVendorRepository struct {
	vendors map[string]domain.Vendor
}

// NewStaticVendorRepository creates a repository over the given map,
// keyed by "XX:XX:XX" prefixes.
func NewStaticVendorRepository(vendors map[string]domain.Vendor) *StaticVendorRepository {
	return &StaticVendorRepository{vendors: vendors}
}

func (s *StaticVendorRepository) Lookup(_ context.Context, addr domain.HardwareAddr) (domain.Vendor, bool) {
	vendor, ok := s.vendors[addr.OUI()]
	return vendor, ok
}

func (s *StaticVendorRepository) Close() error {
	return nil
}

// CommonOUIs is a built-in fallback covering manufacturers that dominate
// consumer WiFi deployments. It keeps attribution useful when no OUI
// database or manuf file is available at startup.
var CommonOUIs = map[string]domain.Vendor{
	"00:03:93": {Name: "Apple", FullName: "Apple, Inc."},
	"00:17:F2": {Name: "Apple", FullName: "Apple, Inc."},
	"F0:18:98": {Name: "Apple", FullName: "Apple, Inc."},
	"00:00:0C": {Name: "Cisco", FullName: "Cisco Systems, Inc"},
	"00:40:96": {Name: "Cisco", FullName: "Cisco Systems, Inc"},
	"00:02:B3": {Name: "Intel", FullName: "Intel Corporation"},
	"8C:A9:82": {Name: "Intel", FullName: "Intel Corporate"},
	"00:16:32": {Name: "Samsung", FullName: "Samsung Electronics Co., Ltd"},
	"00:09:5B": {Name: "Netgear", FullName: "Netgear, Inc."},
	"00:14:6C": {Name: "Netgear", FullName: "Netgear, Inc."},
	"00:1D:0F": {Name: "TP-Link", FullName: "TP-Link Technologies Co., Ltd."},
	"14:CC:20": {Name: "TP-Link", FullName: "TP-Link Technologies Co., Ltd."},
	"00:15:6D": {Name: "Ubiquiti", FullName: "Ubiquiti Networks Inc."},
	"24:A4:3C": {Name: "Ubiquiti", FullName: "Ubiquiti Networks Inc."},
	"00:13:10": {Name: "Linksys", FullName: "Linksys LLC"},
	"00:50:F2": {Name: "Microsoft", FullName: "Microsoft Corporation"},
	"3C:5A:B4": {Name: "Google", FullName: "Google, Inc."},
	"B8:27:EB": {Name: "RaspberryPi", FullName: "Raspberry Pi Foundation"},
	"DC:A6:32": {Name: "RaspberryPi", FullName: "Raspberry Pi Trading Ltd"},
	"18:E8:29": {Name: "Ubiquiti", FullName: "Ubiquiti Networks Inc."},
}
