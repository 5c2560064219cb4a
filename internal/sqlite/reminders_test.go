// Round-trip tests for the reminders store.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhofmann/kith/pkg/types"
)

func addTestReminder(t *testing.T, b *Backend, name, date string, people ...types.Person) *types.Reminder {
	t.Helper()

	d, err := types.ParseDate(date)
	require.NoError(t, err)
	r, err := types.NewReminder(name, d, nil, types.RecurringOneTime, people)
	require.NoError(t, err)
	require.NoError(t, b.AddReminder(r))
	return r
}

func TestAddReminder_RoundTrip(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	ana := addTestPerson(t, b, "Ana")

	date, err := types.ParseDate("2027-03-14")
	require.NoError(t, err)
	description := "Get a card"
	r, err := types.NewReminder("Ana's birthday", date, &description, types.RecurringYearly, []types.Person{*ana})
	require.NoError(t, err)
	require.NoError(t, b.AddReminder(r))
	assert.NotZero(t, r.ID)

	got, err := b.GetReminderByID(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana's birthday", got.Name)
	assert.Equal(t, "2027-03-14", types.FormatDate(got.Date))
	assert.Equal(t, types.RecurringYearly, got.Recurring)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Get a card", *got.Description)
	assert.Equal(t, []string{"Ana"}, types.PersonNames(got.People))
}

func TestAddReminder_NilDescription(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	r := addTestReminder(t, b, "Return book", "2999-01-01")

	got, err := b.GetReminderByID(r.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
}

func TestAddReminder_Duplicate(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	addTestReminder(t, b, "Return book", "2999-01-01")

	d, err := types.ParseDate("2999-06-01")
	require.NoError(t, err)
	r, err := types.NewReminder("return BOOK", d, nil, types.RecurringOneTime, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, b.AddReminder(r), types.ErrDuplicateEntry)
}

func TestSaveReminder(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	r := addTestReminder(t, b, "Return book", "2999-01-01")

	newDate, err := types.ParseDate("2999-06-01")
	require.NoError(t, err)
	description := "Library copy"
	r.Name = "Return library book"
	r.Date = newDate
	r.Description = &description
	r.Recurring = types.RecurringMonthly
	require.NoError(t, b.SaveReminder(r))

	got, err := b.GetReminderByID(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Return library book", got.Name)
	assert.Equal(t, "2999-06-01", types.FormatDate(got.Date))
	assert.Equal(t, types.RecurringMonthly, got.Recurring)
	require.NotNil(t, got.Description)
	assert.Equal(t, "Library copy", *got.Description)
}

func TestSaveReminder_DuplicateName(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	addTestReminder(t, b, "Return book", "2999-01-01")
	other := addTestReminder(t, b, "Call dentist", "2999-01-01")

	// Renaming onto another active reminder's name is blocked, ignoring
	// case, just like Add.
	other.Name = "RETURN BOOK"
	assert.ErrorIs(t, b.SaveReminder(other), types.ErrDuplicateEntry)

	// Saving without renaming must not trip over the reminder's own row.
	other.Name = "Call dentist"
	other.Recurring = types.RecurringMonthly
	assert.NoError(t, b.SaveReminder(other))
}

func TestSaveReminder_LeavesLinksUntouched(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	ana := addTestPerson(t, b, "Ana")
	r := addTestReminder(t, b, "Return book", "2999-01-01", *ana)

	// Save only touches scalar fields; dropping Ana from the struct does
	// not unlink her.
	r.People = nil
	require.NoError(t, b.SaveReminder(r))

	got, err := b.GetReminderByID(r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, types.PersonNames(got.People))
}

func TestRemoveReminder(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	r := addTestReminder(t, b, "Return book", "2999-01-01")
	require.NoError(t, b.RemoveReminder(r))

	_, err := b.GetReminderByID(r.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	all, err := b.GetAllReminders(true)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetReminderByName(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	addTestReminder(t, b, "Return book", "2999-01-01")

	got, err := b.GetReminderByName("RETURN BOOK")
	require.NoError(t, err)
	assert.Equal(t, "Return book", got.Name)

	_, err = b.GetReminderByName("Call dentist")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetAllReminders_ExcludesPast(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	addTestReminder(t, b, "Long gone", "2000-01-02")
	addTestReminder(t, b, "Today", types.FormatDate(time.Now()))
	addTestReminder(t, b, "Far out", "2999-01-01")

	upcoming, err := b.GetAllReminders(false)
	require.NoError(t, err)
	names := make([]string, len(upcoming))
	for i, r := range upcoming {
		names[i] = r.Name
	}
	assert.ElementsMatch(t, []string{"Today", "Far out"}, names)

	all, err := b.GetAllReminders(true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetRemindersByPerson(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	ana := addTestPerson(t, b, "Ana")
	ben := addTestPerson(t, b, "Ben")
	addTestReminder(t, b, "Ana's birthday", "2000-03-14", *ana)
	addTestReminder(t, b, "Ben's birthday", "2999-06-01", *ben)

	// The person filter includes past reminders.
	reminders, err := b.GetRemindersByPerson("ana")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, "Ana's birthday", reminders[0].Name)
}
