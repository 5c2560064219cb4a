// Round-trip tests for the people store.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anhofmann/kith/pkg/types"
)

func TestAddPerson_RoundTrip(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	birthday, err := types.ParseDate("1990-03-14")
	require.NoError(t, err)
	contacts, err := types.ParseContactList("phone:555-1234,email:ana@example.com")
	require.NoError(t, err)

	p, err := types.NewPerson("Ana", &birthday, contacts)
	require.NoError(t, err)
	require.NoError(t, b.AddPerson(p))
	assert.NotZero(t, p.ID)

	got, err := b.GetPersonByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	require.NotNil(t, got.Birthday)
	assert.Equal(t, "1990-03-14", types.FormatDate(*got.Birthday))
	require.Len(t, got.ContactInfo, 2)
	assert.Equal(t, types.ContactKindPhone, got.ContactInfo[0].Kind)
	assert.Equal(t, "555-1234", got.ContactInfo[0].Details)
	assert.Equal(t, p.ID, got.ContactInfo[0].PersonID)
}

func TestAddPerson_ShortBirthday(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	birthday, err := types.ParseDate("03-14")
	require.NoError(t, err)

	p, err := types.NewPerson("Ben", &birthday, nil)
	require.NoError(t, err)
	require.NoError(t, b.AddPerson(p))

	got, err := b.GetPersonByID(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Birthday)
	assert.Equal(t, 1, got.Birthday.Year())
	assert.Equal(t, "0001-03-14", types.FormatDate(*got.Birthday))
}

func TestAddPerson_EmptyName(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	err := b.AddPerson(&types.Person{})
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestAddPerson_Duplicate(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	addTestPerson(t, b, "Ana")

	err := b.AddPerson(&types.Person{Name: "Ana"})
	assert.ErrorIs(t, err, types.ErrDuplicateEntry)

	// Name comparison ignores case.
	err = b.AddPerson(&types.Person{Name: "ANA"})
	assert.ErrorIs(t, err, types.ErrDuplicateEntry)
}

func TestAddPerson_DuplicateOfDeleted(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	p := addTestPerson(t, b, "Ana")
	require.NoError(t, b.RemovePerson(p))

	// A soft-deleted person no longer blocks the name.
	err := b.AddPerson(&types.Person{Name: "Ana"})
	assert.NoError(t, err)
}

func TestSavePerson(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	p := addTestPerson(t, b, "Ana")

	birthday, err := types.ParseDate("1990-03-14")
	require.NoError(t, err)
	contacts, err := types.ParseContactList("whatsapp:+1-555-1234")
	require.NoError(t, err)

	p.Name = "Ana Maria"
	p.Birthday = &birthday
	p.ContactInfo = contacts
	require.NoError(t, b.SavePerson(p))

	got, err := b.GetPersonByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)
	require.NotNil(t, got.Birthday)
	require.Len(t, got.ContactInfo, 1)
	assert.Equal(t, types.ContactKindWhatsApp, got.ContactInfo[0].Kind)
}

func TestSavePerson_ReplacesContactInfo(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	contacts, err := types.ParseContactList("phone:555-1234,email:ana@example.com")
	require.NoError(t, err)
	p, err := types.NewPerson("Ana", nil, contacts)
	require.NoError(t, err)
	require.NoError(t, b.AddPerson(p))

	// Dropping a pair from the set removes it from reads; the old rows
	// stay in storage as soft-deleted history.
	p.ContactInfo = p.ContactInfo[:1]
	require.NoError(t, b.SavePerson(p))

	got, err := b.GetPersonByID(p.ID)
	require.NoError(t, err)
	require.Len(t, got.ContactInfo, 1)
	assert.Equal(t, types.ContactKindPhone, got.ContactInfo[0].Kind)

	var total int
	require.NoError(t, b.db.QueryRow(
		"SELECT COUNT(*) FROM contact_info WHERE person_id = ?", p.ID).Scan(&total))
	assert.Equal(t, 3, total, "soft-deleted contact rows should remain")
}

func TestSavePerson_DuplicateName(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	addTestPerson(t, b, "Ana")
	ben := addTestPerson(t, b, "Ben")

	// Renaming onto another active person's name is blocked, ignoring
	// case, just like Add.
	ben.Name = "ana"
	assert.ErrorIs(t, b.SavePerson(ben), types.ErrDuplicateEntry)

	people, err := b.GetPeopleByName("ana")
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Ana", people[0].Name)
}

func TestSavePerson_KeepOwnName(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	p := addTestPerson(t, b, "Ana")

	// Saving without renaming must not trip over the person's own row.
	birthday, err := types.ParseDate("1990-03-14")
	require.NoError(t, err)
	p.Birthday = &birthday
	assert.NoError(t, b.SavePerson(p))

	p.Name = "ANA"
	assert.NoError(t, b.SavePerson(p))
}

func TestSavePerson_NotPersisted(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	err := b.SavePerson(&types.Person{Name: "Ana"})
	assert.ErrorIs(t, err, types.ErrNotPersisted)
}

func TestRemovePerson(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	p := addTestPerson(t, b, "Ana")
	require.NoError(t, b.RemovePerson(p))

	_, err := b.GetPersonByID(p.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	all, err := b.GetAllPeople()
	require.NoError(t, err)
	assert.Empty(t, all)

	// Removing again is not a fresh delete.
	err = b.RemovePerson(p)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetPersonByName(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	addTestPerson(t, b, "Ana")

	got, err := b.GetPersonByName("ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = b.GetPersonByName("Ben")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestGetPeopleByName(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	addTestPerson(t, b, "Ana")
	addTestPerson(t, b, "Anabel")
	addTestPerson(t, b, "Ben")

	people, err := b.GetPeopleByName("ana")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Ana", "Anabel"}, types.PersonNames(people))
}

func TestGetAllPeople(t *testing.T) {
	b := newAttachedBackend(t)
	defer b.Detach()

	addTestPerson(t, b, "Ana")
	addTestPerson(t, b, "Ben")

	people, err := b.GetAllPeople()
	require.NoError(t, err)
	assert.Len(t, people, 2)
}
