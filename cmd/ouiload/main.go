// ouiload populates the sqlite OUI registry from either an IEEE/maclookup
// CSV export or a Wireshark manuf file.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lcalzada-xor/airscout/internal/adapters/fingerprint"
)

const batchSize = 1000

func main() {
	csvPath := flag.String("csv", "", "Path to a maclookup-style CSV export")
	manufPath := flag.String("manuf", "", "Path to a Wireshark manuf file")
	dbPath := flag.String("db", "oui.db", "Path to the OUI registry database")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	if (*csvPath == "") == (*manufPath == "") {
		log.Fatalf("Exactly one of -csv or -manuf is required")
	}

	db, err := fingerprint.NewOUIDatabase(*dbPath, batchSize, nil)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	var imported int
	if *csvPath != "" {
		log.Printf("Importing OUI data from CSV %s into %s", *csvPath, *dbPath)
		imported, err = importCSV(ctx, db, *csvPath, *verbose)
	} else {
		log.Printf("Importing OUI data from manuf file %s into %s", *manufPath, *dbPath)
		imported, err = importManuf(ctx, db, *manufPath, *verbose)
	}
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		log.Fatalf("Failed to get stats: %v", err)
	}

	log.Printf("Import complete: %d entries imported", imported)
	log.Printf("  Registry entries: %d", stats.TotalEntries)
	log.Printf("  Last updated: %s", stats.LastUpdated)
}

// importCSV reads a "Mac Prefix,Vendor Name,..." CSV export.
func importCSV(ctx context.Context, db *fingerprint.OUIDatabase, path string, verbose bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, err
	}

	now := time.Now()
	var entries []fingerprint.OUIEntry
	total := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Warning: skipping unparsable CSV record: %v", err)
			continue
		}
		if len(record) < 2 {
			continue
		}

		prefix := normalizePrefix(record[0])
		full := strings.TrimSpace(record[1])
		if prefix == "" || full == "" {
			continue
		}

		entries = append(entries, fingerprint.OUIEntry{
			Prefix:      prefix,
			Name:        shortVendorName(full),
			FullName:    full,
			LastUpdated: now,
		})

		if len(entries) >= batchSize {
			if err := db.BulkInsertOUIs(ctx, entries); err != nil {
				return total, err
			}
			total += len(entries)
			if verbose {
				log.Printf("  Inserted %d entries...", total)
			}
			entries = entries[:0]
		}
	}

	if len(entries) > 0 {
		if err := db.BulkInsertOUIs(ctx, entries); err != nil {
			return total, err
		}
		total += len(entries)
	}
	return total, nil
}

// importManuf reads the Wireshark manuf format: prefix, short name, and
// optionally the full name, tab separated. Masked prefixes are skipped.
func importManuf(ctx context.Context, db *fingerprint.OUIDatabase, path string, verbose bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	now := time.Now()
	var entries []fingerprint.OUIEntry
	total := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 || strings.Contains(fields[0], "/") {
			continue
		}

		prefix := normalizePrefix(fields[0])
		if prefix == "" {
			continue
		}

		short := strings.TrimSpace(fields[1])
		full := short
		if len(fields) >= 3 && strings.TrimSpace(fields[2]) != "" {
			full = strings.TrimSpace(fields[2])
		}

		entries = append(entries, fingerprint.OUIEntry{
			Prefix:      prefix,
			Name:        short,
			FullName:    full,
			LastUpdated: now,
		})

		if len(entries) >= batchSize {
			if err := db.BulkInsertOUIs(ctx, entries); err != nil {
				return total, err
			}
			total += len(entries)
			if verbose {
				log.Printf("  Inserted %d entries...", total)
			}
			entries = entries[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return total, err
	}

	if len(entries) > 0 {
		if err := db.BulkInsertOUIs(ctx, entries); err != nil {
			return total, err
		}
		total += len(entries)
	}
	return total, nil
}

// normalizePrefix canonicalizes an OUI to "XX:XX:XX". Returns empty for
// anything that is not a plain 3-byte prefix.
func normalizePrefix(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", ":")
	parts := strings.Split(s, ":")
	if len(parts) < 3 {
		return ""
	}
	parts = parts[:3]
	for _, p := range parts {
		if len(p) != 2 {
			return ""
		}
	}
	return strings.Join(parts, ":")
}

func shortVendorName(vendor string) string {
	vendor = strings.TrimSpace(vendor)
	for _, suffix := range []string{
		" Inc.", " Inc", " Corporation", " Corp.", " Corp",
		" Ltd.", " Ltd", " Limited", " Co., Ltd.", " Co.",
		" LLC", " GmbH", " S.A.", " AG",
	} {
		vendor = strings.TrimSuffix(vendor, suffix)
	}
	if idx := strings.Index(vendor, ","); idx > 0 {
		vendor = vendor[:idx]
	}
	return strings.TrimSpace(vendor)
}
