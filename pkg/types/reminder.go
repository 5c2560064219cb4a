package types

import (
	"fmt"
	"time"
)

// Recurring types. The capitalized names are the canonical values stored in
// the recurring_types lookup table; the lowercase tokens appear in templates
// and CLI input.
const (
	RecurringOneTime     = "OneTime"
	RecurringDaily       = "Daily"
	RecurringWeekly      = "Weekly"
	RecurringFortnightly = "Fortnightly"
	RecurringMonthly     = "Monthly"
	RecurringQuarterly   = "Quarterly"
	RecurringBiannual    = "Biannual"
	RecurringYearly      = "Yearly"
)

// RecurringTypeNames lists the lookup table seed values in seed order.
var RecurringTypeNames = []string{
	RecurringOneTime,
	RecurringDaily,
	RecurringWeekly,
	RecurringFortnightly,
	RecurringMonthly,
	RecurringQuarterly,
	RecurringBiannual,
	RecurringYearly,
}

var recurringTypeTokens = map[string]string{
	"onetime":     RecurringOneTime,
	"daily":       RecurringDaily,
	"weekly":      RecurringWeekly,
	"fortnightly": RecurringFortnightly,
	"monthly":     RecurringMonthly,
	"quarterly":   RecurringQuarterly,
	"biannual":    RecurringBiannual,
	"yearly":      RecurringYearly,
}

var recurringTypeByName = map[string]string{
	RecurringOneTime:     "onetime",
	RecurringDaily:       "daily",
	RecurringWeekly:      "weekly",
	RecurringFortnightly: "fortnightly",
	RecurringMonthly:     "monthly",
	RecurringQuarterly:   "quarterly",
	RecurringBiannual:    "biannual",
	RecurringYearly:      "yearly",
}

// ParseRecurringType resolves a lowercase token ("fortnightly") to its
// canonical name ("Fortnightly"). Returns ErrUnknownVariant wrapped with
// the raw token on failure.
func ParseRecurringType(token string) (string, error) {
	name, ok := recurringTypeTokens[token]
	if !ok {
		return "", fmt.Errorf("%w: recurring type %q", ErrUnknownVariant, token)
	}
	return name, nil
}

// RecurringTypeToken renders a canonical recurring type name as its
// lowercase serialization token.
func RecurringTypeToken(name string) string {
	return recurringTypeByName[name]
}

// Reminder is a dated prompt to get in touch with one or more people.
type Reminder struct {
	ID          int64
	Name        string // Unique among non-deleted reminders.
	Date        time.Time
	Description *string
	Recurring   string // One of the Recurring constants.
	People      []Person
}

// NewReminder builds an unpersisted reminder. The recurring type must be a
// canonical recurring type name.
func NewReminder(name string, date time.Time, description *string, recurring string, people []Person) (*Reminder, error) {
	if _, ok := recurringTypeByName[recurring]; !ok {
		return nil, fmt.Errorf("%w: recurring type %q", ErrUnknownVariant, recurring)
	}
	return &Reminder{
		Name:        name,
		Date:        date,
		Description: description,
		Recurring:   recurring,
		People:      people,
	}, nil
}
