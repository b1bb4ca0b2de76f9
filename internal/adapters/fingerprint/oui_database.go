package fingerprint

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lcalzada-xor/airscout/internal/core/domain"
	"github.com/lcalzada-xor/airscout/internal/core/ports"
)

// OUIDatabase provides vendor lookup from a sqlite-backed OUI registry,
// with an LRU cache in front and an optional fallback repository behind.
type OUIDatabase struct {
	db       *sql.DB
	cache    *OUICache
	dbPath   string
	fallback ports.VendorLookup
	closed   bool
	mu       sync.RWMutex

	lookupStmt *sql.Stmt
}

// OUIEntry is a single registry row.
type OUIEntry struct {
	Prefix      string // "XX:XX:XX"
	Name        string // short vendor name
	FullName    string // full registry name
	LastUpdated time.Time
}

// NewOUIDatabase opens (creating if needed) the registry at dbPath.
func NewOUIDatabase(dbPath string, cacheSize int, fallback ports.VendorLookup) (*OUIDatabase, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, &DatabaseError{Op: "open", Err: err}
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &DatabaseError{Op: "ping", Err: err}
	}

	o := &OUIDatabase{
		db:       db,
		cache:    NewOUICache(cacheSize),
		dbPath:   dbPath,
		fallback: fallback,
	}

	if err := o.initializeSchema(); err != nil {
		db.Close()
		return nil, &DatabaseError{Op: "initialize_schema", Err: err}
	}

	stmt, err := db.Prepare("SELECT vendor_short, vendor FROM oui_registry WHERE prefix = ?")
	if err != nil {
		db.Close()
		return nil, &DatabaseError{Op: "prepare_statement", Err: err}
	}
	o.lookupStmt = stmt

	return o, nil
}

func (o *OUIDatabase) initializeSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS oui_registry (
		prefix TEXT PRIMARY KEY,
		vendor TEXT NOT NULL,
		vendor_short TEXT,
		last_updated INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_vendor_short ON oui_registry(vendor_short);
	`
	_, err := o.db.Exec(schema)
	return err
}

// Lookup implements ports.VendorLookup. Database failures degrade to the
// fallback repository (or a negative result), never to an error: a broken
// registry must not abort a running capture session.
func (o *OUIDatabase) Lookup(ctx context.Context, addr domain.HardwareAddr) (domain.Vendor, bool) {
	o.mu.RLock()
	closed := o.closed
	o.mu.RUnlock()
	if closed {
		return o.lookupFallback(ctx, addr)
	}

	prefix := addr.OUI()

	if vendor, found, cached := o.cache.Get(prefix); cached {
		if !found {
			return o.lookupFallback(ctx, addr)
		}
		return vendor, true
	}

	var short, full string
	err := o.lookupStmt.QueryRowContext(ctx, prefix).Scan(&short, &full)
	switch {
	case err == sql.ErrNoRows:
		o.cache.Set(prefix, domain.Vendor{}, false)
		return o.lookupFallback(ctx, addr)
	case err != nil:
		log.Printf("Warning: OUI lookup for %s failed: %v", prefix, err)
		return o.lookupFallback(ctx, addr)
	}

	if short == "" {
		short = full
	}
	vendor := domain.Vendor{Name: short, FullName: full}
	o.cache.Set(prefix, vendor, true)
	return vendor, true
}

func (o *OUIDatabase) lookupFallback(ctx context.Context, addr domain.HardwareAddr) (domain.Vendor, bool) {
	if o.fallback == nil {
		return domain.Vendor{}, false
	}
	return o.fallback.Lookup(ctx, addr)
}

// InsertOUI inserts or replaces a single registry entry.
func (o *OUIDatabase) InsertOUI(ctx context.Context, entry OUIEntry) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrRepositoryClosed
	}

	_, err := o.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO oui_registry (prefix, vendor, vendor_short, last_updated)
		VALUES (?, ?, ?, ?)`,
		entry.Prefix, entry.FullName, entry.Name, entry.LastUpdated.Unix(),
	)
	if err != nil {
		return &DatabaseError{Op: "insert", Err: err}
	}
	return nil
}

// BulkInsertOUIs inserts entries in a single transaction.
func (o *OUIDatabase) BulkInsertOUIs(ctx context.Context, entries []OUIEntry) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrRepositoryClosed
	}

	tx, err := o.db.BeginTx(ctx, nil)
	if err != nil {
		return &DatabaseError{Op: "begin_transaction", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO oui_registry (prefix, vendor, vendor_short, last_updated)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return &DatabaseError{Op: "prepare_bulk_insert", Err: err}
	}
	defer stmt.Close()

	for _, entry := range entries {
		_, err := stmt.ExecContext(ctx,
			entry.Prefix, entry.FullName, entry.Name, entry.LastUpdated.Unix())
		if err != nil {
			return &DatabaseError{Op: "bulk_insert_entry", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &DatabaseError{Op: "commit_transaction", Err: err}
	}
	return nil
}

// RepositoryStats summarizes the registry contents and cache behavior.
type RepositoryStats struct {
	TotalEntries int
	CacheHits    int64
	CacheMisses  int64
	LastUpdated  string
}

// GetStats returns registry statistics.
func (o *OUIDatabase) GetStats(ctx context.Context) (RepositoryStats, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		return RepositoryStats{}, ErrRepositoryClosed
	}

	var count int
	var lastUpdateUnix int64
	err := o.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(MAX(last_updated), 0) FROM oui_registry",
	).Scan(&count, &lastUpdateUnix)
	if err != nil {
		return RepositoryStats{}, &DatabaseError{Op: "get_stats", Err: err}
	}

	cacheStats := o.cache.Stats()
	return RepositoryStats{
		TotalEntries: count,
		CacheHits:    cacheStats.Hits,
		CacheMisses:  cacheStats.Misses,
		LastUpdated:  time.Unix(lastUpdateUnix, 0).Format("2006-01-02"),
	}, nil
}

// Close implements ports.VendorLookup.
func (o *OUIDatabase) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true

	if o.lookupStmt != nil {
		o.lookupStmt.Close()
	}
	o.cache.Clear()

	if o.db != nil {
		return o.db.Close()
	}
	return nil
}
