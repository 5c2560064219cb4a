// Shared fixtures for SQLite backend tests.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anhofmann/kith/pkg/types"
)

// newAttachedBackend creates a backend attached to a fresh temp data dir.
// The test cleans up through t.TempDir; callers still defer Detach.
func newAttachedBackend(t *testing.T) *Backend {
	t.Helper()

	b := NewBackend()
	err := b.Attach(types.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	return b
}

// addTestPerson inserts a person with the given name and returns it.
func addTestPerson(t *testing.T, b *Backend, name string) *types.Person {
	t.Helper()

	p, err := types.NewPerson(name, nil, nil)
	require.NoError(t, err)
	require.NoError(t, b.AddPerson(p))
	require.NotZero(t, p.ID)
	return p
}
