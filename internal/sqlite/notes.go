package sqlite

import (
	"fmt"

	"github.com/anhofmann/kith/pkg/types"
)

// AddNote inserts a note and links every attached person. On success the
// generated row id is written back to n.
func (b *Backend) AddNote(n *types.Note) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}

	pids, err := participantIDs(n.People)
	if err != nil {
		return err
	}

	res, err := b.db.Exec(
		"INSERT INTO notes (date, content, deleted) VALUES (?, ?, 0)",
		types.FormatDate(n.Date), n.Content)
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}
	if n.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading note id: %w", err)
	}

	if err := replaceLinks(b.db, noteLinks, n.ID, pids); err != nil {
		return fmt.Errorf("%w: note %d: %w", types.ErrPartialWrite, n.ID, err)
	}
	return nil
}

// SaveNote updates a note's scalar fields and replaces its people links.
// The note must already carry a real id.
func (b *Backend) SaveNote(n *types.Note) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if n.ID == 0 {
		return types.ErrNotPersisted
	}

	pids, err := participantIDs(n.People)
	if err != nil {
		return err
	}

	_, err = b.db.Exec(
		"UPDATE notes SET date = ?, content = ? WHERE id = ?",
		types.FormatDate(n.Date), n.Content, n.ID)
	if err != nil {
		return fmt.Errorf("updating note %d: %w", n.ID, err)
	}

	if err := replaceLinks(b.db, noteLinks, n.ID, pids); err != nil {
		return fmt.Errorf("%w: note %d: %w", types.ErrPartialWrite, n.ID, err)
	}
	return nil
}

// RemoveNote soft-deletes a note.
func (b *Backend) RemoveNote(n *types.Note) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if n.ID == 0 {
		return types.ErrNotPersisted
	}
	return softDelete(b.db, "notes", n.ID)
}

// GetNoteByID returns the fully hydrated note with the given id, or
// ErrNotFound when no active row matches.
func (b *Backend) GetNoteByID(id int64) (*types.Note, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	row := b.db.QueryRow(
		"SELECT id, date, content FROM notes WHERE deleted = 0 AND id = ?", id)
	n, err := scanNote(row)
	if err != nil {
		if isNoRows(err) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	if n.People, err = b.peopleByOwner(noteLinks, n.ID, true); err != nil {
		return nil, err
	}
	return n, nil
}

// GetAllNotes returns every active note, fully hydrated.
func (b *Backend) GetAllNotes() ([]types.Note, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.queryNotes(nil)
}

// GetNotesByContent returns the active notes whose content contains the
// given substring, ignoring case.
func (b *Backend) GetNotesByContent(content string) ([]types.Note, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.queryNotes(containsFold("content", content))
}

// GetNotesByPerson returns the active notes attached to a person whose name
// contains the given substring, ignoring case.
func (b *Backend) GetNotesByPerson(person string) ([]types.Note, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	notes, err := b.queryNotes(nil)
	if err != nil {
		return nil, err
	}
	var filtered []types.Note
	for _, n := range notes {
		if hasParticipant(n.People, person) {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// queryNotes runs a filtered select over active notes and hydrates each
// result. The caller must hold b.mu.
func (b *Backend) queryNotes(filter any) ([]types.Note, error) {
	builder := selectBuilder.
		Select("id", "date", "content").
		From("notes").
		Where("deleted = 0")
	if filter != nil {
		builder = builder.Where(filter)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building notes query: %w", err)
	}

	rows, err := b.db.Query(query, args...)
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
		if notes[i].People, err = b.peopleByOwner(noteLinks, notes[i].ID, true); err != nil {
			return nil, err
		}
	}
	return notes, nil
}
