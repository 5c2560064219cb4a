package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/anhofmann/kith/pkg/types"
)

// AddPerson inserts a person and their contact info. On success the
// generated row id is written back to p. Returns ErrDuplicateEntry when an
// active person with the same name exists; the check is a read-then-write
// with no storage-level constraint behind it.
func (b *Backend) AddPerson(p *types.Person) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if p.Name == "" {
		return types.ErrInvalidName
	}

	var existing int64
	err := b.db.QueryRow(
		"SELECT id FROM people WHERE deleted = 0 AND LOWER(name) = LOWER(?)", p.Name).Scan(&existing)
	if err == nil {
		return fmt.Errorf("%w: person %q", types.ErrDuplicateEntry, p.Name)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking person name: %w", err)
	}

	res, err := b.db.Exec(
		"INSERT INTO people (name, birthday, deleted) VALUES (?, ?, 0)",
		p.Name, birthdayArg(p))
	if err != nil {
		return fmt.Errorf("inserting person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading person id: %w", err)
	}
	p.ID = id

	// The person row is committed at this point; contact info failures
	// leave it behind with incomplete associations.
	for i := range p.ContactInfo {
		p.ContactInfo[i].PersonID = id
		if err := b.insertContactInfo(b.db, &p.ContactInfo[i]); err != nil {
			return fmt.Errorf("%w: person %d: %w", types.ErrPartialWrite, id, err)
		}
	}
	return nil
}

// SavePerson updates a person's scalar fields and replaces their contact
// info set. The person must already carry a real id. Returns
// ErrDuplicateEntry when renaming onto another active person's name.
func (b *Backend) SavePerson(p *types.Person) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if p.ID == 0 {
		return types.ErrNotPersisted
	}
	if p.Name == "" {
		return types.ErrInvalidName
	}

	var existing int64
	err := b.db.QueryRow(
		"SELECT id FROM people WHERE deleted = 0 AND LOWER(name) = LOWER(?) AND id != ?",
		p.Name, p.ID).Scan(&existing)
	if err == nil {
		return fmt.Errorf("%w: person %q", types.ErrDuplicateEntry, p.Name)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking person name: %w", err)
	}

	_, err = b.db.Exec(
		"UPDATE people SET name = ?, birthday = ? WHERE id = ?",
		p.Name, birthdayArg(p), p.ID)
	if err != nil {
		return fmt.Errorf("updating person %d: %w", p.ID, err)
	}

	if err := b.replaceContactInfo(p); err != nil {
		return fmt.Errorf("%w: person %d: %w", types.ErrPartialWrite, p.ID, err)
	}
	return nil
}

// RemovePerson soft-deletes a person. The row and its associations stay in
// place; every read path excludes them from now on.
func (b *Backend) RemovePerson(p *types.Person) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if p.ID == 0 {
		return types.ErrNotPersisted
	}
	return softDelete(b.db, "people", p.ID)
}

// GetPersonByID returns the fully hydrated person with the given id, or
// ErrNotFound when no active row matches.
func (b *Backend) GetPersonByID(id int64) (*types.Person, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	row := b.db.QueryRow(
		"SELECT id, name, birthday FROM people WHERE deleted = 0 AND id = ?", id)
	p, err := scanPerson(row)
	if err != nil {
		if isNoRows(err) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	if err := b.hydratePerson(p, true); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPersonByName returns the active person whose name matches exactly,
// ignoring case. Returns ErrNotFound when no active row matches.
func (b *Backend) GetPersonByName(name string) (*types.Person, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	query, args, err := selectBuilder.
		Select("id", "name", "birthday").
		From("people").
		Where("deleted = 0").
		Where(equalsFold("name", name)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building person query: %w", err)
	}

	row := b.db.QueryRow(query, args...)
	p, err := scanPerson(row)
	if err != nil {
		if isNoRows(err) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	if err := b.hydratePerson(p, true); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPeopleByName returns the active people whose name contains the given
// substring, ignoring case. Hydrated, no ordering guarantee.
func (b *Backend) GetPeopleByName(name string) ([]types.Person, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.queryPeople(containsFold("name", name))
}

// GetAllPeople returns every active person, fully hydrated.
func (b *Backend) GetAllPeople() ([]types.Person, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.queryPeople(nil)
}

// queryPeople runs a filtered select over active people and hydrates each
// result. The caller must hold b.mu.
func (b *Backend) queryPeople(filter any) ([]types.Person, error) {
	builder := selectBuilder.
		Select("id", "name", "birthday").
		From("people").
		Where("deleted = 0")
	if filter != nil {
		builder = builder.Where(filter)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building people query: %w", err)
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching people: %w", err)
	}
	defer rows.Close()

	var people []types.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range people {
		if err := b.hydratePerson(&people[i], true); err != nil {
			return nil, err
		}
	}
	return people, nil
}

// insertContactInfo inserts a single contact info row, resolving the kind
// through the lookup maps. Writes the row id back.
func (b *Backend) insertContactInfo(q querier, ci *types.ContactInfo) error {
	kindID, err := b.lookups.contactKinds.id(ci.Kind)
	if err != nil {
		return err
	}
	res, err := q.Exec(
		"INSERT INTO contact_info (person_id, contact_info_type_id, details, deleted) VALUES (?, ?, ?, 0)",
		ci.PersonID, kindID, ci.Details)
	if err != nil {
		return fmt.Errorf("inserting contact info: %w", err)
	}
	if ci.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading contact info id: %w", err)
	}
	return nil
}

// replaceContactInfo soft-deletes the person's active contact info rows and
// inserts the current set, mirroring the join-table soft replace.
func (b *Backend) replaceContactInfo(p *types.Person) error {
	_, err := b.db.Exec(
		"UPDATE contact_info SET deleted = 1 WHERE person_id = ? AND deleted = 0", p.ID)
	if err != nil {
		return fmt.Errorf("clearing contact info for person %d: %w", p.ID, err)
	}
	for i := range p.ContactInfo {
		p.ContactInfo[i].PersonID = p.ID
		p.ContactInfo[i].ID = 0
		if err := b.insertContactInfo(b.db, &p.ContactInfo[i]); err != nil {
			return err
		}
	}
	return nil
}

// birthdayArg converts an optional birthday to its stored representation.
func birthdayArg(p *types.Person) any {
	if p.Birthday == nil {
		return nil
	}
	return types.FormatDate(*p.Birthday)
}
