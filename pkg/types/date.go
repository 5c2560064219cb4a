package types

import (
	"fmt"
	"time"
)

// Date layouts. DateLayout is the canonical storage and display format.
// ShortDateLayout covers inputs without a year, such as a birthday whose
// year is unknown; parsed values land in year 1.
const (
	DateLayout      = "2006-01-02"
	ShortDateLayout = "01-02"
)

// ParseDate parses a date in YYYY-MM-DD format. A MM-DD input is also
// accepted and interpreted as year 1. Returns ErrInvalidDate wrapped with
// the raw input on failure.
func ParseDate(raw string) (time.Time, error) {
	if d, err := time.Parse(DateLayout, raw); err == nil {
		return d, nil
	}
	if d, err := time.Parse(ShortDateLayout, raw); err == nil {
		// time.Parse leaves the year at 0; the year-unknown convention
		// is year 1.
		return time.Date(1, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// FormatDate renders a date in YYYY-MM-DD format. Year-1 dates (parsed from
// MM-DD input) render with the literal year 0001.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}
