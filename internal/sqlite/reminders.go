package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/anhofmann/kith/pkg/types"
)

// AddReminder inserts a reminder and links every attached person. On
// success the generated row id is written back to r. Returns
// ErrDuplicateEntry when an active reminder with the same name exists; like
// the person check, this is a read-then-write with no storage constraint.
func (b *Backend) AddReminder(r *types.Reminder) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}

	recurringID, err := b.lookups.recurringTypes.id(r.Recurring)
	if err != nil {
		return err
	}
	pids, err := participantIDs(r.People)
	if err != nil {
		return err
	}

	var existing int64
	err = b.db.QueryRow(
		"SELECT id FROM reminders WHERE deleted = 0 AND LOWER(name) = LOWER(?)", r.Name).Scan(&existing)
	if err == nil {
		return fmt.Errorf("%w: reminder %q", types.ErrDuplicateEntry, r.Name)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking reminder name: %w", err)
	}

	res, err := b.db.Exec(
		"INSERT INTO reminders (name, date, description, recurring, deleted) VALUES (?, ?, ?, ?, 0)",
		r.Name, types.FormatDate(r.Date), descriptionArg(r), recurringID)
	if err != nil {
		return fmt.Errorf("inserting reminder: %w", err)
	}
	if r.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading reminder id: %w", err)
	}

	if err := replaceLinks(b.db, reminderLinks, r.ID, pids); err != nil {
		return fmt.Errorf("%w: reminder %d: %w", types.ErrPartialWrite, r.ID, err)
	}
	return nil
}

// SaveReminder updates a reminder's scalar fields. The reminder must
// already carry a real id. Returns ErrDuplicateEntry when renaming onto
// another active reminder's name.
//
// Known limitation: unlike SavePerson and SaveActivity, the people links
// are left untouched; editing a reminder cannot change who it is attached
// to. Kept as-is deliberately.
func (b *Backend) SaveReminder(r *types.Reminder) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if r.ID == 0 {
		return types.ErrNotPersisted
	}

	recurringID, err := b.lookups.recurringTypes.id(r.Recurring)
	if err != nil {
		return err
	}

	var existing int64
	err = b.db.QueryRow(
		"SELECT id FROM reminders WHERE deleted = 0 AND LOWER(name) = LOWER(?) AND id != ?",
		r.Name, r.ID).Scan(&existing)
	if err == nil {
		return fmt.Errorf("%w: reminder %q", types.ErrDuplicateEntry, r.Name)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking reminder name: %w", err)
	}

	_, err = b.db.Exec(
		"UPDATE reminders SET name = ?, date = ?, description = ?, recurring = ? WHERE id = ?",
		r.Name, types.FormatDate(r.Date), descriptionArg(r), recurringID, r.ID)
	if err != nil {
		return fmt.Errorf("updating reminder %d: %w", r.ID, err)
	}
	return nil
}

// RemoveReminder soft-deletes a reminder.
func (b *Backend) RemoveReminder(r *types.Reminder) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if r.ID == 0 {
		return types.ErrNotPersisted
	}
	return softDelete(b.db, "reminders", r.ID)
}

// GetReminderByID returns the fully hydrated reminder with the given id, or
// ErrNotFound when no active row matches.
func (b *Backend) GetReminderByID(id int64) (*types.Reminder, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	row := b.db.QueryRow(
		"SELECT id, name, date, description, recurring FROM reminders WHERE deleted = 0 AND id = ?", id)
	r, err := b.scanReminder(row)
	if err != nil {
		if isNoRows(err) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	if r.People, err = b.peopleByOwner(reminderLinks, r.ID, true); err != nil {
		return nil, err
	}
	return r, nil
}

// GetReminderByName returns the active reminder whose name matches exactly,
// ignoring case. Returns ErrNotFound when no active row matches.
func (b *Backend) GetReminderByName(name string) (*types.Reminder, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	reminders, err := b.queryReminders(equalsFold("name", name), true)
	if err != nil {
		return nil, err
	}
	if len(reminders) == 0 {
		return nil, types.ErrNotFound
	}
	return &reminders[0], nil
}

// GetAllReminders returns the active reminders, fully hydrated. Unless
// includePast is set, reminders dated before today are excluded.
func (b *Backend) GetAllReminders(includePast bool) ([]types.Reminder, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.queryReminders(nil, includePast)
}

// GetRemindersByPerson returns the active reminders attached to a person
// whose name contains the given substring, ignoring case.
func (b *Backend) GetRemindersByPerson(person string) ([]types.Reminder, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	reminders, err := b.queryReminders(nil, true)
	if err != nil {
		return nil, err
	}
	var filtered []types.Reminder
	for _, r := range reminders {
		if hasParticipant(r.People, person) {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// queryReminders runs a filtered select over active reminders and hydrates
// each result. The date predicate relies on the zero-padded YYYY-MM-DD
// storage format sorting lexicographically. The caller must hold b.mu.
func (b *Backend) queryReminders(filter any, includePast bool) ([]types.Reminder, error) {
	builder := selectBuilder.
		Select("id", "name", "date", "description", "recurring").
		From("reminders").
		Where("deleted = 0")
	if filter != nil {
		builder = builder.Where(filter)
	}
	if !includePast {
		today := types.FormatDate(time.Now())
		builder = builder.Where("date >= ?", today)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building reminders query: %w", err)
	}

	rows, err := b.db.Query(query, args...)
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
		if reminders[i].People, err = b.peopleByOwner(reminderLinks, reminders[i].ID, true); err != nil {
			return nil, err
		}
	}
	return reminders, nil
}

// descriptionArg converts an optional description to its stored
// representation.
func descriptionArg(r *types.Reminder) any {
	if r.Description == nil {
		return nil
	}
	return *r.Description
}
