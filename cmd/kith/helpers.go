// Shared helpers for kith CLI commands.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/anhofmann/kith/internal/sqlite"
	"github.com/anhofmann/kith/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(types.Config{DataDir: dataDir}); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// resolvePeople looks up each name as an existing person. Unknown names
// fail the whole operation; people must be added before they can be linked.
func resolvePeople(backend *sqlite.Backend, names []string) ([]types.Person, error) {
	var people []types.Person
	for _, name := range names {
		p, err := backend.GetPersonByName(name)
		if err != nil {
			return nil, fmt.Errorf("person %q: %w", name, err)
		}
		people = append(people, *p)
	}
	return people, nil
}

// parseOptionalDate parses a date flag value, treating empty as absent.
func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := types.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseRequiredDate parses a date flag value, defaulting to today when
// empty.
func parseRequiredDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	return types.ParseDate(raw)
}

// optionalString converts an empty flag value to a nil pointer.
func optionalString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}

// formatOptionalDate renders a date pointer, empty for nil.
func formatOptionalDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return types.FormatDate(*d)
}

// derefOrEmpty renders a string pointer, empty for nil.
func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// printTrimmed prints tabwriter output with trailing spaces removed from
// each line.
func printTrimmed(output string) {
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
}
