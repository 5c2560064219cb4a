package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/anhofmann/kith/pkg/types"
)

// Graph hydration. Person and Activity/Reminder/Note are mutually
// referential, so hydration is bounded by an explicit recurse flag instead
// of a visited-set: a person hydrated with recurse=true gets their
// activities, reminders, and notes, and the people inside those get
// recurse=false, leaving their own association lists empty. Expansion stops
// after exactly two levels.

// hydratePerson populates a person's associations in place. Contact info is
// always loaded; the entity lists only when recurse is true.
func (b *Backend) hydratePerson(p *types.Person, recurse bool) error {
	ci, err := b.contactInfoForPerson(p.ID)
	if err != nil {
		return err
	}
	p.ContactInfo = ci

	if !recurse {
		return nil
	}

	if p.Activities, err = b.activitiesForPerson(p.ID); err != nil {
		return err
	}
	if p.Reminders, err = b.remindersForPerson(p.ID); err != nil {
		return err
	}
	if p.Notes, err = b.notesForPerson(p.ID); err != nil {
		return err
	}
	return nil
}

// contactInfoForPerson loads the active contact info rows for a person,
// resolving the kind through the lookup maps.
func (b *Backend) contactInfoForPerson(personID int64) ([]types.ContactInfo, error) {
	rows, err := b.db.Query(
		"SELECT id, person_id, contact_info_type_id, details FROM contact_info WHERE person_id = ? AND deleted = 0 ORDER BY id",
		personID)
	if err != nil {
		return nil, fmt.Errorf("reading contact info for person %d: %w", personID, err)
	}
	defer rows.Close()

	var infos []types.ContactInfo
	for rows.Next() {
		var ci types.ContactInfo
		var kindID int64
		if err := rows.Scan(&ci.ID, &ci.PersonID, &kindID, &ci.Details); err != nil {
			return nil, fmt.Errorf("scanning contact info: %w", err)
		}
		if ci.Kind, err = b.lookups.contactKinds.name(kindID); err != nil {
			return nil, err
		}
		infos = append(infos, ci)
	}
	return infos, rows.Err()
}

// peopleByIDs batch-fetches active people whose id is in ids, in
// storage-native order. Empty id lists short-circuit to an empty result
// without touching the placeholder builder.
func (b *Backend) peopleByIDs(ids []int64, recurse bool) ([]types.Person, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	vars, err := repeatVars(len(ids))
	if err != nil {
		return nil, err
	}
	rows, err := b.db.Query(
		"SELECT id, name, birthday FROM people WHERE deleted = 0 AND id IN ("+vars+")",
		int64Args(ids)...)
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
		if err := b.hydratePerson(&people[i], recurse); err != nil {
			return nil, err
		}
	}
	return people, nil
}

// peopleByOwner loads the people currently linked to an owning entity.
func (b *Backend) peopleByOwner(jt joinTable, ownerID int64, recurse bool) ([]types.Person, error) {
	ids, err := activePersonIDs(b.db, jt, ownerID)
	if err != nil {
		return nil, err
	}
	return b.peopleByIDs(ids, recurse)
}

// activitiesForPerson loads the activities a person participates in. The
// people inside each activity are hydrated without recursion.
func (b *Backend) activitiesForPerson(personID int64) ([]types.Activity, error) {
	ids, err := activeOwnerIDs(b.db, activityLinks, personID)
	if err != nil {
		return nil, err
	}
	return b.activitiesByIDs(ids, false)
}

// activitiesByIDs batch-fetches active activities whose id is in ids.
// recursePeople controls the depth of each activity's People hydration.
func (b *Backend) activitiesByIDs(ids []int64, recursePeople bool) ([]types.Activity, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	vars, err := repeatVars(len(ids))
	if err != nil {
		return nil, err
	}
	rows, err := b.db.Query(
		"SELECT id, name, type, date, content FROM activities WHERE deleted = 0 AND id IN ("+vars+")",
		int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("fetching activities: %w", err)
	}
	defer rows.Close()

	var activities []types.Activity
	for rows.Next() {
		a, err := b.scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range activities {
		if activities[i].People, err = b.peopleByOwner(activityLinks, activities[i].ID, recursePeople); err != nil {
			return nil, err
		}
	}
	return activities, nil
}

// remindersForPerson loads the reminders a person is attached to.
func (b *Backend) remindersForPerson(personID int64) ([]types.Reminder, error) {
	ids, err := activeOwnerIDs(b.db, reminderLinks, personID)
	if err != nil {
		return nil, err
	}
	return b.remindersByIDs(ids, false)
}

// remindersByIDs batch-fetches active reminders whose id is in ids.
func (b *Backend) remindersByIDs(ids []int64, recursePeople bool) ([]types.Reminder, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	vars, err := repeatVars(len(ids))
	if err != nil {
		return nil, err
	}
	rows, err := b.db.Query(
		"SELECT id, name, date, description, recurring FROM reminders WHERE deleted = 0 AND id IN ("+vars+")",
		int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("fetching reminders: %w", err)
	}
	defer rows.Close()

	var reminders []types.Reminder
	for rows.Next() {
		r, err := b.scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range reminders {
		if reminders[i].People, err = b.peopleByOwner(reminderLinks, reminders[i].ID, recursePeople); err != nil {
			return nil, err
		}
	}
	return reminders, nil
}

// notesForPerson loads the notes a person is attached to.
func (b *Backend) notesForPerson(personID int64) ([]types.Note, error) {
	ids, err := activeOwnerIDs(b.db, noteLinks, personID)
	if err != nil {
		return nil, err
	}
	return b.notesByIDs(ids, false)
}

// notesByIDs batch-fetches active notes whose id is in ids.
func (b *Backend) notesByIDs(ids []int64, recursePeople bool) ([]types.Note, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	vars, err := repeatVars(len(ids))
	if err != nil {
		return nil, err
	}
	rows, err := b.db.Query(
		"SELECT id, date, content FROM notes WHERE deleted = 0 AND id IN ("+vars+")",
		int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("fetching notes: %w", err)
	}
	defer rows.Close()

	var notes []types.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range notes {
		if notes[i].People, err = b.peopleByOwner(noteLinks, notes[i].ID, recursePeople); err != nil {
			return nil, err
		}
	}
	return notes, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPerson reads a people row (id, name, birthday).
func scanPerson(row rowScanner) (*types.Person, error) {
	var p types.Person
	var birthday sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &birthday); err != nil {
		return nil, fmt.Errorf("scanning person: %w", err)
	}
	if birthday.Valid && birthday.String != "" {
		d, err := types.ParseDate(birthday.String)
		if err != nil {
			return nil, fmt.Errorf("parsing person birthday: %w", err)
		}
		p.Birthday = &d
	}
	return &p, nil
}

// scanActivity reads an activities row (id, name, type, date, content),
// resolving the type id to its canonical name.
func (b *Backend) scanActivity(row rowScanner) (*types.Activity, error) {
	var a types.Activity
	var typeID int64
	var date string
	if err := row.Scan(&a.ID, &a.Name, &typeID, &date, &a.Content); err != nil {
		return nil, fmt.Errorf("scanning activity: %w", err)
	}
	var err error
	if a.Type, err = b.lookups.activityTypes.name(typeID); err != nil {
		return nil, err
	}
	if a.Date, err = types.ParseDate(date); err != nil {
		return nil, fmt.Errorf("parsing activity date: %w", err)
	}
	return &a, nil
}

// scanReminder reads a reminders row (id, name, date, description,
// recurring), resolving the recurring id to its canonical name.
func (b *Backend) scanReminder(row rowScanner) (*types.Reminder, error) {
	var r types.Reminder
	var recurringID int64
	var date string
	var description sql.NullString
	if err := row.Scan(&r.ID, &r.Name, &date, &description, &recurringID); err != nil {
		return nil, fmt.Errorf("scanning reminder: %w", err)
	}
	var err error
	if r.Recurring, err = b.lookups.recurringTypes.name(recurringID); err != nil {
		return nil, err
	}
	if r.Date, err = types.ParseDate(date); err != nil {
		return nil, fmt.Errorf("parsing reminder date: %w", err)
	}
	if description.Valid {
		r.Description = &description.String
	}
	return &r, nil
}

// scanNote reads a notes row (id, date, content).
func scanNote(row rowScanner) (*types.Note, error) {
	var n types.Note
	var date string
	if err := row.Scan(&n.ID, &date, &n.Content); err != nil {
		return nil, fmt.Errorf("scanning note: %w", err)
	}
	var err error
	if n.Date, err = types.ParseDate(date); err != nil {
		return nil, fmt.Errorf("parsing note date: %w", err)
	}
	return &n, nil
}
