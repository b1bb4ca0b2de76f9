package fingerprint

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
)

func TestOUIDatabaseBasic(t *testing.T) {
	db, err := NewOUIDatabase(filepath.Join(t.TempDir(), "oui.db"), 100, nil)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	entries := []OUIEntry{
		{Prefix: "00:00:0C", Name: "Cisco", FullName: "Cisco Systems, Inc", LastUpdated: time.Now()},
		{Prefix: "00:1B:C5", Name: "Acme", FullName: "Acme Widgets GmbH", LastUpdated: time.Now()},
	}
	for _, entry := range entries {
		if err := db.InsertOUI(ctx, entry); err != nil {
			t.Fatalf("Failed to insert OUI: %v", err)
		}
	}

	vendor, ok := db.Lookup(ctx, domain.HardwareAddr{0x00, 0x00, 0x0c, 0x11, 0x22, 0x33})
	if !ok {
		t.Fatal("Lookup returned no vendor")
	}
	if vendor.Name != "Cisco" {
		t.Errorf("Expected Cisco, got %s", vendor.Name)
	}

	if _, ok := db.Lookup(ctx, domain.HardwareAddr{0xde, 0xad, 0x00, 0, 0, 0}); ok {
		t.Error("Unregistered prefix unexpectedly resolved")
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalEntries != 2 {
		t.Errorf("Expected 2 entries, got %d", stats.TotalEntries)
	}
}

func TestOUIDatabaseBulkInsert(t *testing.T) {
	db, err := NewOUIDatabase(filepath.Join(t.TempDir(), "oui_bulk.db"), 100, nil)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	entries := make([]OUIEntry, 100)
	for i := 0; i < 100; i++ {
		entries[i] = OUIEntry{
			Prefix:      domain.HardwareAddr{byte(i), byte(i), byte(i)}.OUI(),
			Name:        "Vendor",
			FullName:    "Vendor Inc.",
			LastUpdated: time.Now(),
		}
	}

	if err := db.BulkInsertOUIs(ctx, entries); err != nil {
		t.Fatalf("Bulk insert failed: %v", err)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalEntries != 100 {
		t.Errorf("Expected 100 entries, got %d", stats.TotalEntries)
	}
}

func TestOUIDatabaseFallback(t *testing.T) {
	fallback := NewStaticVendorRepository(map[string]domain.Vendor{
		"AA:BB:CC": {Name: "Fallback", FullName: "Fallback Vendor"},
	})

	db, err := NewOUIDatabase(filepath.Join(t.TempDir(), "oui_fb.db"), 100, fallback)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	vendor, ok := db.Lookup(context.Background(), domain.HardwareAddr{0xaa, 0xbb, 0xcc, 0, 0, 0})
	if !ok {
		t.Fatal("Fallback lookup failed")
	}
	if vendor.Name != "Fallback" {
		t.Errorf("Expected Fallback, got %s", vendor.Name)
	}
}

func TestOUIDatabaseClosedLookupUsesFallback(t *testing.T) {
	fallback := NewStaticVendorRepository(map[string]domain.Vendor{
		"AA:BB:CC": {Name: "Fallback", FullName: "Fallback Vendor"},
	})

	db, err := NewOUIDatabase(filepath.Join(t.TempDir(), "oui_closed.db"), 100, fallback)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	db.Close()

	if _, ok := db.Lookup(context.Background(), domain.HardwareAddr{0xaa, 0xbb, 0xcc, 0, 0, 0}); !ok {
		t.Error("Closed database should still consult its fallback")
	}
}
