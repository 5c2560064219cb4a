package types

import (
	"fmt"
	"time"
)

// Activity types. The capitalized names are the canonical values stored in
// the activity_types lookup table; the lowercase tokens appear in templates
// and CLI input.
const (
	ActivityTypePhone    = "Phone"
	ActivityTypeInPerson = "InPerson"
	ActivityTypeOnline   = "Online"
)

// ActivityTypeNames lists the lookup table seed values in seed order.
var ActivityTypeNames = []string{
	ActivityTypePhone,
	ActivityTypeInPerson,
	ActivityTypeOnline,
}

var activityTypeTokens = map[string]string{
	"phone":     ActivityTypePhone,
	"in_person": ActivityTypeInPerson,
	"online":    ActivityTypeOnline,
}

var activityTypeByName = map[string]string{
	ActivityTypePhone:    "phone",
	ActivityTypeInPerson: "in_person",
	ActivityTypeOnline:   "online",
}

// ParseActivityType resolves a lowercase token ("in_person") to its
// canonical name ("InPerson"). Returns ErrUnknownVariant wrapped with the
// raw token on failure.
func ParseActivityType(token string) (string, error) {
	name, ok := activityTypeTokens[token]
	if !ok {
		return "", fmt.Errorf("%w: activity type %q", ErrUnknownVariant, token)
	}
	return name, nil
}

// ActivityTypeToken renders a canonical activity type name as its lowercase
// serialization token.
func ActivityTypeToken(name string) string {
	return activityTypeByName[name]
}

// Activity records an interaction with one or more people.
type Activity struct {
	ID      int64
	Name    string
	Type    string // One of the ActivityType constants.
	Date    time.Time
	Content string
	People  []Person
}

// NewActivity builds an unpersisted activity. The type must be a canonical
// activity type name.
func NewActivity(name, activityType string, date time.Time, content string, people []Person) (*Activity, error) {
	if _, ok := activityTypeByName[activityType]; !ok {
		return nil, fmt.Errorf("%w: activity type %q", ErrUnknownVariant, activityType)
	}
	return &Activity{
		Name:    name,
		Type:    activityType,
		Date:    date,
		Content: content,
		People:  people,
	}, nil
}
