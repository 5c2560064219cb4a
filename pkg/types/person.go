package types

import "time"

// Person is the central entity of the store. Activities, Reminders, and
// Notes are populated only on read; writes go through the per-entity stores
// and the join tables.
type Person struct {
	ID          int64
	Name        string     // Required, unique among non-deleted people.
	Birthday    *time.Time // Optional; year 1 means the year is unknown.
	ContactInfo []ContactInfo

	Activities []Activity
	Reminders  []Reminder
	Notes      []Note
}

// NewPerson builds an unpersisted person. Returns ErrInvalidName when name
// is empty.
func NewPerson(name string, birthday *time.Time, contactInfo []ContactInfo) (*Person, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Person{Name: name, Birthday: birthday, ContactInfo: contactInfo}, nil
}

// PersonNames extracts the names of the given people, preserving order.
func PersonNames(people []Person) []string {
	names := make([]string, len(people))
	for i, p := range people {
		names[i] = p.Name
	}
	return names
}
