package types

import "time"

// Note is a dated free-text observation about one or more people.
type Note struct {
	ID      int64
	Date    time.Time
	Content string
	People  []Person
}

// NewNote builds an unpersisted note.
func NewNote(date time.Time, content string, people []Person) *Note {
	return &Note{Date: date, Content: content, People: people}
}
