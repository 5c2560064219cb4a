package sqlite

import "fmt"

// joinTable describes one of the person association tables. Each row links
// one owning entity id to one participant person id and carries its own
// deleted flag; the non-deleted subset is the current link set.
type joinTable struct {
	name     string
	ownerCol string
}

var (
	activityLinks = joinTable{name: "people_activities", ownerCol: "activity_id"}
	reminderLinks = joinTable{name: "people_reminders", ownerCol: "reminder_id"}
	noteLinks     = joinTable{name: "people_notes", ownerCol: "note_id"}
)

// replaceLinks makes the active link set for the owning entity equal to
// personIDs: rows whose participant is no longer wanted are marked deleted,
// and fresh rows are inserted for participants not already actively linked.
// Old rows stay queryable as history. Idempotent over the active subset.
//
// The steps are sequential statements with no transaction around them; a
// row-level failure surfaces as a storage error with no rollback.
func replaceLinks(q querier, jt joinTable, ownerID int64, personIDs []int64) error {
	active, err := activeLinkSet(q, jt, ownerID)
	if err != nil {
		return err
	}

	want := make(map[int64]bool, len(personIDs))
	for _, pid := range personIDs {
		want[pid] = true
	}

	for pid := range active {
		if want[pid] {
			continue
		}
		_, err := q.Exec(
			"UPDATE "+jt.name+" SET deleted = 1 WHERE "+jt.ownerCol+" = ? AND person_id = ? AND deleted = 0",
			ownerID, pid)
		if err != nil {
			return fmt.Errorf("unlinking person %d from %s %d: %w", pid, jt.name, ownerID, err)
		}
	}

	for _, pid := range personIDs {
		if active[pid] {
			continue
		}
		_, err := q.Exec(
			"INSERT INTO "+jt.name+" (person_id, "+jt.ownerCol+", deleted) VALUES (?, ?, 0)",
			pid, ownerID)
		if err != nil {
			return fmt.Errorf("linking person %d to %s %d: %w", pid, jt.name, ownerID, err)
		}
	}
	return nil
}

// activeLinkSet returns the participant person ids currently linked to the
// owning entity, keyed for membership checks.
func activeLinkSet(q querier, jt joinTable, ownerID int64) (map[int64]bool, error) {
	rows, err := q.Query(
		"SELECT person_id FROM "+jt.name+" WHERE "+jt.ownerCol+" = ? AND deleted = 0",
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("reading links for %s %d: %w", jt.name, ownerID, err)
	}
	defer rows.Close()

	active := make(map[int64]bool)
	for rows.Next() {
		var pid int64
		if err := rows.Scan(&pid); err != nil {
			return nil, fmt.Errorf("scanning link row: %w", err)
		}
		active[pid] = true
	}
	return active, rows.Err()
}

// activePersonIDs returns the participant person ids for an owning entity.
func activePersonIDs(q querier, jt joinTable, ownerID int64) ([]int64, error) {
	active, err := activeLinkSet(q, jt, ownerID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(active))
	for pid := range active {
		ids = append(ids, pid)
	}
	return ids, nil
}

// activeOwnerIDs walks the join table in the other direction: the owning
// entity ids a person is currently linked to.
func activeOwnerIDs(q querier, jt joinTable, personID int64) ([]int64, error) {
	rows, err := q.Query(
		"SELECT "+jt.ownerCol+" FROM "+jt.name+" WHERE person_id = ? AND deleted = 0",
		personID)
	if err != nil {
		return nil, fmt.Errorf("reading links for person %d in %s: %w", personID, jt.name, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning link row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
