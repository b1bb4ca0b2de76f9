package fingerprint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
)

func TestStaticVendorRepository(t *testing.T) {
	repo := NewStaticVendorRepository(map[string]domain.Vendor{
		"00:11:22": {Name: "Acme", FullName: "Acme Corp"},
	})
	ctx := context.Background()

	vendor, ok := repo.Lookup(ctx, domain.HardwareAddr{0x00, 0x11, 0x22, 1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, "Acme", vendor.Name)

	_, ok = repo.Lookup(ctx, domain.HardwareAddr{0x00, 0x11, 0x23, 1, 2, 3})
	assert.False(t, ok)
}

func TestCompositeVendorRepositoryOrder(t *testing.T) {
	first := NewStaticVendorRepository(map[string]domain.Vendor{
		"00:11:22": {Name: "First"},
	})
	second := NewStaticVendorRepository(map[string]domain.Vendor{
		"00:11:22": {Name: "Second"},
		"AA:BB:CC": {Name: "SecondOnly"},
	})
	repo := NewCompositeVendorRepository(first, second)
	ctx := context.Background()

	vendor, ok := repo.Lookup(ctx, domain.HardwareAddr{0x00, 0x11, 0x22, 0, 0, 0})
	assert.True(t, ok)
	assert.Equal(t, "First", vendor.Name, "first repository should win")

	vendor, ok = repo.Lookup(ctx, domain.HardwareAddr{0xaa, 0xbb, 0xcc, 0, 0, 0})
	assert.True(t, ok)
	assert.Equal(t, "SecondOnly", vendor.Name)

	_, ok = repo.Lookup(ctx, domain.HardwareAddr{0xde, 0xad, 0x00, 0, 0, 0})
	assert.False(t, ok)
}

func TestCompositeSkipsRandomizedAddresses(t *testing.T) {
	inner := NewStaticVendorRepository(map[string]domain.Vendor{
		"DA:11:22": {Name: "ShouldNotResolve"},
	})
	repo := NewCompositeVendorRepository(inner)

	// 0xDA carries the locally-administered bit.
	_, ok := repo.Lookup(context.Background(), domain.HardwareAddr{0xda, 0x11, 0x22, 0, 0, 0})
	assert.False(t, ok)
}

func TestCommonOUIsWellFormed(t *testing.T) {
	for prefix, vendor := range CommonOUIs {
		assert.Len(t, prefix, 8, "prefix %q", prefix)
		assert.NotEmpty(t, vendor.Name, "prefix %q", prefix)
		assert.NotEmpty(t, vendor.FullName, "prefix %q", prefix)
	}
}
