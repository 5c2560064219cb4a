// Package editor implements the text round trip used for human editing:
// each entity kind renders into a fixed-format template, gets edited in an
// external program, and parses back into field values.
package editor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/anhofmann/kith/pkg/types"
)

// Per-kind templates. One field per line, fixed order, trailing newline.
// The placeholder names are the field keys used by Render.
const (
	PersonTemplate   = "Name: {name}\nBirthday: {birthday}\nContact Info: {contact_info}\n"
	ActivityTemplate = "Name: {name}\nDate: {date}\nActivity Type: {activity_type}\nContent: {content}\nPeople: {people}\n"
	ReminderTemplate = "Name: {name}\nDate: {date}\nRecurring: {recurring_type}\nDescription: {description}\nPeople: {people}\n"
	NoteTemplate     = "Date: {date}\nContent: {content}\nPeople: {people}\n"
)

// Field labels per kind, the line prefixes Parse recognizes.
var (
	personLabels   = []string{"Name", "Birthday", "Contact Info"}
	activityLabels = []string{"Name", "Date", "Activity Type", "Content", "People"}
	reminderLabels = []string{"Name", "Date", "Recurring", "Description", "People"}
	noteLabels     = []string{"Date", "Content", "People"}
)

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Render substitutes named placeholders in a template with the supplied
// values. Placeholders with no value render as the empty string.
func Render(template string, fields map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		return fields[m[1:len(m)-1]]
	})
}

// parseLines reads edited text line by line. Every line must start with one
// of the known label prefixes ("Label: "); the remainder is the field
// value. The first non-conforming line aborts with ErrFormat carrying the
// offending line, and partial results are discarded.
func parseLines(text string, labels []string) (map[string]string, error) {
	fields := make(map[string]string)
	lines := strings.Split(text, "\n")
	// A trailing newline yields one empty final element, not a line.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for _, line := range lines {
		matched := false
		for _, label := range labels {
			if value, ok := strings.CutPrefix(line, label+": "); ok {
				fields[label] = value
				matched = true
				break
			}
			// An empty value whose trailing space the editor stripped.
			if line == label+":" {
				fields[label] = ""
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("%w: %q", types.ErrFormat, line)
		}
	}
	return fields, nil
}

// splitList splits a comma-separated line value into trimmed entries. An
// empty value yields no entries.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// PersonFields is the editable field set of a person.
type PersonFields struct {
	Name        string
	Birthday    string   // YYYY-MM-DD or MM-DD, empty for none.
	ContactInfo []string // "kind:value" pairs.
}

// RenderPerson renders the person template with the given fields.
func RenderPerson(f PersonFields) string {
	return Render(PersonTemplate, map[string]string{
		"name":         f.Name,
		"birthday":     f.Birthday,
		"contact_info": strings.Join(f.ContactInfo, ","),
	})
}

// ParsePerson parses edited person text back into fields.
func ParsePerson(text string) (PersonFields, error) {
	fields, err := parseLines(text, personLabels)
	if err != nil {
		return PersonFields{}, err
	}
	return PersonFields{
		Name:        fields["Name"],
		Birthday:    fields["Birthday"],
		ContactInfo: splitList(fields["Contact Info"]),
	}, nil
}

// ActivityFields is the editable field set of an activity.
type ActivityFields struct {
	Name         string
	Date         string
	ActivityType string // Lowercase token: phone, in_person, online.
	Content      string
	People       []string
}

// RenderActivity renders the activity template with the given fields.
func RenderActivity(f ActivityFields) string {
	return Render(ActivityTemplate, map[string]string{
		"name":          f.Name,
		"date":          f.Date,
		"activity_type": f.ActivityType,
		"content":       f.Content,
		"people":        strings.Join(f.People, ","),
	})
}

// ParseActivity parses edited activity text back into fields.
func ParseActivity(text string) (ActivityFields, error) {
	fields, err := parseLines(text, activityLabels)
	if err != nil {
		return ActivityFields{}, err
	}
	return ActivityFields{
		Name:         fields["Name"],
		Date:         fields["Date"],
		ActivityType: fields["Activity Type"],
		Content:      fields["Content"],
		People:       splitList(fields["People"]),
	}, nil
}

// ReminderFields is the editable field set of a reminder.
type ReminderFields struct {
	Name        string
	Date        string
	Recurring   string // Lowercase token: onetime, daily, ..., yearly.
	Description string
	People      []string
}

// RenderReminder renders the reminder template with the given fields.
func RenderReminder(f ReminderFields) string {
	return Render(ReminderTemplate, map[string]string{
		"name":           f.Name,
		"date":           f.Date,
		"recurring_type": f.Recurring,
		"description":    f.Description,
		"people":         strings.Join(f.People, ","),
	})
}

// ParseReminder parses edited reminder text back into fields.
func ParseReminder(text string) (ReminderFields, error) {
	fields, err := parseLines(text, reminderLabels)
	if err != nil {
		return ReminderFields{}, err
	}
	return ReminderFields{
		Name:        fields["Name"],
		Date:        fields["Date"],
		Recurring:   fields["Recurring"],
		Description: fields["Description"],
		People:      splitList(fields["People"]),
	}, nil
}

// NoteFields is the editable field set of a note.
type NoteFields struct {
	Date    string
	Content string
	People  []string
}

// RenderNote renders the note template with the given fields.
func RenderNote(f NoteFields) string {
	return Render(NoteTemplate, map[string]string{
		"date":    f.Date,
		"content": f.Content,
		"people":  strings.Join(f.People, ","),
	})
}

// ParseNote parses edited note text back into fields.
func ParseNote(text string) (NoteFields, error) {
	fields, err := parseLines(text, noteLabels)
	if err != nil {
		return NoteFields{}, err
	}
	return NoteFields{
		Date:    fields["Date"],
		Content: fields["Content"],
		People:  splitList(fields["People"]),
	}, nil
}
