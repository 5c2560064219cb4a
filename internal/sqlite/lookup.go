package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/anhofmann/kith/pkg/types"
)

// lookup is a static bidirectional mapping between the canonical names of an
// enumeration and their row ids in an auxiliary lookup table. Built once at
// Attach; resolution never round-trips through the database afterwards.
type lookup struct {
	table  string
	byName map[string]int64
	byID   map[int64]string
}

// lookups bundles the three enumeration mappings.
type lookups struct {
	contactKinds   lookup
	activityTypes  lookup
	recurringTypes lookup
}

// id resolves a canonical name to its lookup table row id. A miss indicates
// a consistency bug in the lookup seed, not user error.
func (l lookup) id(name string) (int64, error) {
	id, ok := l.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no row in %s", types.ErrUnknownVariant, name, l.table)
	}
	return id, nil
}

// name resolves a lookup table row id to its canonical name.
func (l lookup) name(id int64) (string, error) {
	name, ok := l.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: id %d has no row in %s", types.ErrUnknownVariant, id, l.table)
	}
	return name, nil
}

// lookupSeeds maps each lookup table to its fixed seed set.
var lookupSeeds = map[string][]string{
	"contact_info_types": types.ContactKindNames,
	"activity_types":     types.ActivityTypeNames,
	"recurring_types":    types.RecurringTypeNames,
}

// seedLookupTables inserts the fixed enumeration rows. Idempotent: names
// already present are left untouched, so existing foreign keys stay valid.
func seedLookupTables(db *sql.DB) error {
	for table, names := range lookupSeeds {
		for _, name := range names {
			_, err := db.Exec(
				"INSERT INTO "+table+" (type) SELECT ? WHERE NOT EXISTS (SELECT 1 FROM "+table+" WHERE type = ?)",
				name, name)
			if err != nil {
				return fmt.Errorf("seeding %s with %q: %w", table, name, err)
			}
		}
	}
	return nil
}

// loadLookups reads the three lookup tables into bidirectional maps.
func loadLookups(db *sql.DB) (*lookups, error) {
	lk := &lookups{}
	for table, target := range map[string]*lookup{
		"contact_info_types": &lk.contactKinds,
		"activity_types":     &lk.activityTypes,
		"recurring_types":    &lk.recurringTypes,
	} {
		l, err := loadLookup(db, table)
		if err != nil {
			return nil, err
		}
		*target = l
	}
	return lk, nil
}

func loadLookup(db *sql.DB, table string) (lookup, error) {
	l := lookup{
		table:  table,
		byName: make(map[string]int64),
		byID:   make(map[int64]string),
	}
	rows, err := db.Query("SELECT id, type FROM " + table)
	if err != nil {
		return lookup{}, fmt.Errorf("reading %s: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return lookup{}, fmt.Errorf("scanning %s row: %w", table, err)
		}
		l.byName[name] = id
		l.byID[id] = name
	}
	return l, rows.Err()
}
