// Round-trip and hydration tests for the activities store.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhofmann/kith/pkg/types"
)

func addTestActivity(t *testing.T, b *Backend, name string, people ...types.Person) *types.Activity {
	t.Helper()

	a, err := types.NewActivity(name, types.ActivityTypeInPerson, time.Now(), "", people)
	require.NoError(t, err)
	require.NoError(t, b.AddActivity(a))
	return a
}

func TestAddActivity_RoundTrip(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	ana := addTestPerson(t, b, "Ana")
	ben := addTestPerson(t, b, "Ben")

	date, err := types.ParseDate("2026-08-30")
	require.NoError(t, err)
	a, err := types.NewActivity("Coffee", types.ActivityTypeInPerson, date, "Caught up downtown", []types.Person{*ana, *ben})
	require.NoError(t, err)
	require.NoError(t, b.AddActivity(a))
	assert.NotZero(t, a.ID)

	got, err := b.GetActivityByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", got.Name)
	assert.Equal(t, types.ActivityTypeInPerson, got.Type)
	assert.Equal(t, "2026-08-30", types.FormatDate(got.Date))
	assert.Equal(t, "Caught up downtown", got.Content)
	assert.ElementsMatch(t, []string{"Ana", "Ben"}, types.PersonNames(got.People))
}

func TestAddActivity_UnpersistedParticipant(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	a, err := types.NewActivity("Coffee", types.ActivityTypeInPerson, time.Now(), "", []types.Person{{Name: "Ana"}})
	require.NoError(t, err)
	err = b.AddActivity(a)
	assert.ErrorIs(t, err, types.ErrNotPersisted)
}

func TestHydration_DepthBound(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	ana := addTestPerson(t, b, "Ana")
	ben := addTestPerson(t, b, "Ben")
	addTestActivity(t, b, "Coffee", *ana, *ben)

	// Expansion stops after two levels: the people inside a person's
	// activities carry empty association lists.
	got, err := b.GetPersonByID(ana.ID)
	require.NoError(t, err)
	require.Len(t, got.Activities, 1)
	require.Len(t, got.Activities[0].People, 2)
	for _, participant := range got.Activities[0].People {
		assert.Empty(t, participant.Activities)
		assert.Empty(t, participant.Reminders)
		assert.Empty(t, participant.Notes)
	}
}

func TestGetActivityByID_HydratesPeople(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	ana := addTestPerson(t, b, "Ana")
	coffee := addTestActivity(t, b, "Coffee", *ana)
	addTestActivity(t, b, "Lunch", *ana)

	// Fetched through the activity, Ana is hydrated one level deep: her
	// activity list is populated, and its people carry empty lists.
	got, err := b.GetActivityByID(coffee.ID)
	require.NoError(t, err)
	require.Len(t, got.People, 1)
	assert.Len(t, got.People[0].Activities, 2)
	for _, a := range got.People[0].Activities {
		for _, p := range a.People {
			assert.Empty(t, p.Activities)
		}
	}
}

func TestSaveActivity(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	ana := addTestPerson(t, b, "Ana")
	ben := addTestPerson(t, b, "Ben")
	a := addTestActivity(t, b, "Coffee", *ana)

	a.Name = "Dinner"
	a.Type = types.ActivityTypeOnline
	a.Content = "Video call instead"
	a.People = []types.Person{*ben}
	require.NoError(t, b.SaveActivity(a))

	got, err := b.GetActivityByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", got.Name)
	assert.Equal(t, types.ActivityTypeOnline, got.Type)
	assert.Equal(t, []string{"Ben"}, types.PersonNames(got.People))

	// The old link survives as history.
	var total int
	require.NoError(t, b.db.QueryRow(
		"SELECT COUNT(*) FROM people_activities WHERE activity_id = ?", a.ID).Scan(&total))
	assert.Equal(t, 2, total)
}

func TestSaveActivity_NotPersisted(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	a, err := types.NewActivity("Coffee", types.ActivityTypeInPerson, time.Now(), "", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, b.SaveActivity(a), types.ErrNotPersisted)
}

func TestRemoveActivity(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	ana := addTestPerson(t, b, "Ana")
	a := addTestActivity(t, b, "Coffee", *ana)
	require.NoError(t, b.RemoveActivity(a))

	_, err := b.GetActivityByID(a.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	all, err := b.GetAllActivities()
	require.NoError(t, err)
	assert.Empty(t, all)

	// The removed activity no longer hydrates into its participants.
	got, err := b.GetPersonByID(ana.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Activities)
}

func TestGetActivitiesByPerson(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	ana := addTestPerson(t, b, "Ana")
	ben := addTestPerson(t, b, "Ben")
	addTestActivity(t, b, "Coffee", *ana)
	addTestActivity(t, b, "Lunch", *ben)

	// The participant filter ignores case.
	activities, err := b.GetActivitiesByPerson("ana")
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Coffee", activities[0].Name)
}

func TestGetActivitiesByName(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	ana := addTestPerson(t, b, "Ana")
	ben := addTestPerson(t, b, "Ben")
	addTestActivity(t, b, "Morning Coffee", *ana)
	addTestActivity(t, b, "Coffee Break", *ben)
	addTestActivity(t, b, "Lunch", *ana)

	activities, err := b.GetActivitiesByName("coffee", "")
	require.NoError(t, err)
	assert.Len(t, activities, 2)

	// Secondary participant filter narrows the name matches.
	activities, err = b.GetActivitiesByName("coffee", "ben")
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Coffee Break", activities[0].Name)
}
