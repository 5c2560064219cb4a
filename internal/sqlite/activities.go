package sqlite

import (
	"fmt"
	"strings"

	"github.com/anhofmann/kith/pkg/types"
)

// AddActivity inserts an activity and links every participating person. On
// success the generated row id is written back to a. Participants must
// already be persisted.
func (b *Backend) AddActivity(a *types.Activity) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}

	typeID, err := b.lookups.activityTypes.id(a.Type)
	if err != nil {
		return err
	}
	pids, err := participantIDs(a.People)
	if err != nil {
		return err
	}

	res, err := b.db.Exec(
		"INSERT INTO activities (name, type, date, content, deleted) VALUES (?, ?, ?, ?, 0)",
		a.Name, typeID, types.FormatDate(a.Date), a.Content)
	if err != nil {
		return fmt.Errorf("inserting activity: %w", err)
	}
	if a.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("reading activity id: %w", err)
	}

	if err := replaceLinks(b.db, activityLinks, a.ID, pids); err != nil {
		return fmt.Errorf("%w: activity %d: %w", types.ErrPartialWrite, a.ID, err)
	}
	return nil
}

// SaveActivity updates an activity's scalar fields and replaces its people
// links. The activity must already carry a real id.
func (b *Backend) SaveActivity(a *types.Activity) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if a.ID == 0 {
		return types.ErrNotPersisted
	}

	typeID, err := b.lookups.activityTypes.id(a.Type)
	if err != nil {
		return err
	}
	pids, err := participantIDs(a.People)
	if err != nil {
		return err
	}

	_, err = b.db.Exec(
		"UPDATE activities SET name = ?, type = ?, date = ?, content = ? WHERE id = ?",
		a.Name, typeID, types.FormatDate(a.Date), a.Content, a.ID)
	if err != nil {
		return fmt.Errorf("updating activity %d: %w", a.ID, err)
	}

	if err := replaceLinks(b.db, activityLinks, a.ID, pids); err != nil {
		return fmt.Errorf("%w: activity %d: %w", types.ErrPartialWrite, a.ID, err)
	}
	return nil
}

// RemoveActivity soft-deletes an activity.
func (b *Backend) RemoveActivity(a *types.Activity) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}
	if a.ID == 0 {
		return types.ErrNotPersisted
	}
	return softDelete(b.db, "activities", a.ID)
}

// GetActivityByID returns the fully hydrated activity with the given id, or
// ErrNotFound when no active row matches.
func (b *Backend) GetActivityByID(id int64) (*types.Activity, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	row := b.db.QueryRow(
		"SELECT id, name, type, date, content FROM activities WHERE deleted = 0 AND id = ?", id)
	a, err := b.scanActivity(row)
	if err != nil {
		if isNoRows(err) {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	if a.People, err = b.peopleByOwner(activityLinks, a.ID, true); err != nil {
		return nil, err
	}
	return a, nil
}

// GetAllActivities returns every active activity, fully hydrated.
func (b *Backend) GetAllActivities() ([]types.Activity, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.queryActivities(nil, "")
}

// GetActivitiesByName returns the active activities whose name contains the
// given substring, ignoring case. A non-empty person narrows the result to
// activities with a participant whose name contains that string; the
// secondary filter runs in-process after the first fetch, not as a join.
func (b *Backend) GetActivitiesByName(name, person string) ([]types.Activity, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.queryActivities(containsFold("name", name), person)
}

// GetActivitiesByPerson returns the active activities with a participant
// whose name contains the given substring, ignoring case.
func (b *Backend) GetActivitiesByPerson(person string) ([]types.Activity, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.queryActivities(nil, person)
}

// queryActivities runs a filtered select over active activities, hydrates
// each result, and applies the in-process participant filter. The caller
// must hold b.mu.
func (b *Backend) queryActivities(filter any, person string) ([]types.Activity, error) {
	builder := selectBuilder.
		Select("id", "name", "type", "date", "content").
		From("activities").
		Where("deleted = 0")
	if filter != nil {
		builder = builder.Where(filter)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building activities query: %w", err)
	}

	rows, err := b.db.Query(query, args...)
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
		if activities[i].People, err = b.peopleByOwner(activityLinks, activities[i].ID, true); err != nil {
			return nil, err
		}
	}

	if person == "" {
		return activities, nil
	}
	var filtered []types.Activity
	for _, a := range activities {
		if hasParticipant(a.People, person) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// hasParticipant reports whether any of the people's names contains the
// given string, ignoring case.
func hasParticipant(people []types.Person, name string) bool {
	needle := strings.ToLower(name)
	for _, p := range people {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return true
		}
	}
	return false
}

// participantIDs collects the ids of the given people. Every participant
// must carry a real id before it can be linked.
func participantIDs(people []types.Person) ([]int64, error) {
	ids := make([]int64, 0, len(people))
	for _, p := range people {
		if p.ID == 0 {
			return nil, fmt.Errorf("%w: person %q", types.ErrNotPersisted, p.Name)
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}
