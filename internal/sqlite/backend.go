package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/anhofmann/kith/pkg/types"
)

// DatabaseFileName is the SQLite file created inside the data directory.
const DatabaseFileName = "kith.db"

// Backend is the SQLite-backed entity store. All operations run against a
// single shared connection handle; nothing is mutated concurrently, so the
// mutex only guards the attach/detach lifecycle.
//
// Multi-statement writes (entity row plus contact info or join rows) are not
// wrapped in a transaction: a failure partway through leaves the entity row
// committed and surfaces as types.ErrPartialWrite. Every statement runs
// through the querier interface, so a transaction boundary can be introduced
// later without touching the per-entity code.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	lookups  *lookups
}

// querier is the subset of database/sql used by store operations. Both
// *sql.DB and *sql.Tx satisfy it.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to open the database.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens (or creates) the database under config.DataDir, applies the
// schema, seeds the lookup tables, and builds the in-memory lookup maps.
// Returns ErrAlreadyAttached if called while attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(config.DataDir, DatabaseFileName))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating indexes: %w", err)
		}
	}

	if err := seedLookupTables(db); err != nil {
		db.Close()
		return fmt.Errorf("seeding lookup tables: %w", err)
	}

	lk, err := loadLookups(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("loading lookup tables: %w", err)
	}

	b.db = db
	b.config = config
	b.lookups = lk
	b.attached = true
	return nil
}

// Detach closes the database connection. Idempotent. After Detach, all
// operations return ErrStoreDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.lookups = nil
	b.attached = false
	return nil
}

// checkAttached reports ErrStoreDetached when the backend is not attached.
// The caller must hold b.mu (read or write lock).
func (b *Backend) checkAttached() error {
	if !b.attached {
		return types.ErrStoreDetached
	}
	return nil
}

// softDelete flips the deleted flag on a single row. Returns ErrNotFound
// when no active row matched; deleting an already-deleted row is not a
// fresh delete.
func softDelete(q querier, table string, id int64) error {
	res, err := q.Exec("UPDATE "+table+" SET deleted = 1 WHERE id = ? AND deleted = 0", id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// isNoRows reports whether err wraps sql.ErrNoRows.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
