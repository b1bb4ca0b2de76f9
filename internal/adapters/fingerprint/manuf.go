package fingerprint

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
)

// ManufRepository loads vendors from a Wireshark-style "manuf" text file:
// one entry per line, tab or space separated, a 3-byte prefix followed by
// a short name and optionally the full registry name:
//
//	00:00:0C	Cisco	Cisco Systems, Inc
//
// Lines with longer prefix masks ("00:1B:C5:00:00/36") are skipped; only
// plain 24-bit OUIs are indexed.
type ManufRepository struct {
	mu      sync.RWMutex
	vendors map[string]domain.Vendor
}

// NewManufRepository creates an empty repository.
func NewManufRepository() *ManufRepository {
	return &ManufRepository{vendors: make(map[string]domain.Vendor)}
}

// LoadFromFile parses a manuf file and merges its entries into the
// repository. A failure to open or scan the file is returned; malformed
// lines are skipped silently, matching how the format is consumed
// elsewhere (the file carries comments and registry oddities).
func (m *ManufRepository) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	entries := make(map[string]domain.Vendor)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		prefix := normalizePrefix(fields[0])
		if prefix == "" {
			continue
		}

		vendor := domain.Vendor{Name: fields[1], FullName: fields[1]}
		if len(fields) > 2 {
			vendor.FullName = strings.Join(fields[2:], " ")
		}
		entries[prefix] = vendor
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	for k, v := range entries {
		m.vendors[k] = v
	}
	m.mu.Unlock()

	return nil
}

// Lookup implements ports.VendorLookup.
func (m *ManufRepository) Lookup(_ context.Context, addr domain.HardwareAddr) (domain.Vendor, bool) {
	m.mu.RLock()
	vendor, ok := m.vendors[addr.OUI()]
	m.mu.RUnlock()
	return vendor, ok
}

// Len returns the number of loaded prefixes.
func (m *ManufRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vendors)
}

// Close implements ports.VendorLookup.
func (m *ManufRepository) Close() error {
	m.mu.Lock()
	m.vendors = make(map[string]domain.Vendor)
	m.mu.Unlock()
	return nil
}

// normalizePrefix validates and canonicalizes a 24-bit OUI prefix to
// "XX:XX:XX". Longer masks and malformed prefixes yield "".
func normalizePrefix(s string) string {
	if strings.Contains(s, "/") {
		return ""
	}
	s = strings.ToUpper(strings.ReplaceAll(s, "-", ":"))
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return ""
	}
	for i, c := range s {
		if i == 2 || i == 5 {
			continue
		}
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return ""
		}
	}
	return s
}
