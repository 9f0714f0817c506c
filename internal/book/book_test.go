package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/contacts/pkg/types"
)

func record(t *testing.T, name string, tags ...string) *types.Record {
	t.Helper()
	r, err := types.NewRecord(name)
	require.NoError(t, err)
	for _, tag := range tags {
		r.AddTag(tag)
	}
	return r
}

func names(records []*types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name()
	}
	return out
}

func TestAddAndFind(t *testing.T) {
	b := New()
	john := record(t, "John")
	b.Add(john)

	got, err := b.Find("John")
	require.NoError(t, err)
	assert.Same(t, john, got)

	_, err = b.Find("john")
	assert.ErrorIs(t, err, types.ErrNotFound, "lookup is exact")
}

func TestAddOverwritesWithoutMerge(t *testing.T) {
	b := New()
	first := record(t, "John", "friend")
	b.Add(first)
	b.Add(record(t, "Jane"))

	second := record(t, "John")
	b.Add(second)

	got, err := b.Find("John")
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Empty(t, got.Tags(), "overwrite does not merge fields")
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, []string{"John", "Jane"}, names(b.Records()), "overwrite keeps position")
}

func TestFindByPhoneAndEmail(t *testing.T) {
	b := New()
	a := record(t, "A")
	require.NoError(t, a.AddPhone("1111111111"))
	c := record(t, "C")
	require.NoError(t, c.AddPhone("2222222222"))
	require.NoError(t, c.AddPhone("1111111111"))
	require.NoError(t, c.SetEmail("c@example.com"))
	b.Add(a)
	b.Add(c)

	got, err := b.FindByPhone("1111111111")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name(), "first record in list order wins")

	got, err = b.FindByPhone("2222222222")
	require.NoError(t, err)
	assert.Equal(t, "C", got.Name())

	_, err = b.FindByPhone("3333333333")
	assert.ErrorIs(t, err, types.ErrNotFound)

	got, err = b.FindByEmail("c@example.com")
	require.NoError(t, err)
	assert.Equal(t, "C", got.Name())

	_, err = b.FindByEmail("a@example.com")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDelete(t *testing.T) {
	b := New()
	b.Add(record(t, "A"))
	b.Add(record(t, "B"))
	b.Add(record(t, "C"))

	b.Delete("B")
	b.Delete("missing")

	assert.Equal(t, []string{"A", "C"}, names(b.Records()))
	_, err := b.Find("B")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRename(t *testing.T) {
	t.Run("re-keys the record", func(t *testing.T) {
		b := New()
		b.Add(record(t, "A"))
		john := record(t, "John")
		b.Add(john)
		b.Add(record(t, "C"))

		require.NoError(t, b.Rename("John", "Johnny"))

		got, err := b.Find("Johnny")
		require.NoError(t, err)
		assert.Same(t, john, got)
		assert.Equal(t, "Johnny", got.Name())

		_, err = b.Find("John")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.Equal(t, 3, b.Len())
		assert.Equal(t, []string{"A", "Johnny", "C"}, names(b.Records()))
		for _, r := range b.Records() {
			found, err := b.Find(r.Name())
			require.NoError(t, err)
			assert.Same(t, r, found, "every key matches its record name")
		}
	})

	t.Run("unknown contact", func(t *testing.T) {
		b := New()
		assert.ErrorIs(t, b.Rename("Ghost", "Casper"), types.ErrNotFound)
	})

	t.Run("invalid new name leaves book unchanged", func(t *testing.T) {
		b := New()
		b.Add(record(t, "John"))
		assert.ErrorIs(t, b.Rename("John", ""), types.ErrValidation)
		_, err := b.Find("John")
		assert.NoError(t, err)
	})

	t.Run("taken name is rejected", func(t *testing.T) {
		b := New()
		b.Add(record(t, "John"))
		b.Add(record(t, "Jane"))

		err := b.Rename("John", "Jane")
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "Contact Jane already exists.", err.Error())
		assert.Equal(t, []string{"John", "Jane"}, names(b.Records()))
	})

	t.Run("same name is a no-op", func(t *testing.T) {
		b := New()
		b.Add(record(t, "John"))
		assert.NoError(t, b.Rename("John", "John"))
		assert.Equal(t, []string{"John"}, names(b.Records()))
	})
}

func TestSearchByTag(t *testing.T) {
	b := New()
	b.Add(record(t, "A", "friend"))
	b.Add(record(t, "B", "Friend"))
	b.Add(record(t, "C", "work", "friend"))
	b.Add(record(t, "D"))

	assert.Equal(t, []string{"A", "C"}, names(b.SearchByTag("friend")))
	assert.Empty(t, b.SearchByTag("family"))
}

func TestSortByTagPartitionsStably(t *testing.T) {
	b := New()
	b.Add(record(t, "A"))
	b.Add(record(t, "B", "friend"))
	b.Add(record(t, "C", "work"))
	b.Add(record(t, "D", "friend"))
	b.Add(record(t, "E"))

	assert.Equal(t, []string{"A", "C", "E", "B", "D"}, names(b.SortByTag("friend")))
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names(b.Records()), "store order is untouched")
}

func TestUpcomingBirthdays(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	withBirthday := func(name, birthday string) *types.Record {
		r := record(t, name)
		require.NoError(t, r.SetBirthday(birthday))
		return r
	}

	b := New()
	b.Add(withBirthday("Later", "10.01.2024"))
	b.Add(withBirthday("Soon", "03.01.2024"))
	b.Add(withBirthday("LastYear", "03.01.2023"))
	b.Add(withBirthday("Today", "01.01.2024"))
	b.Add(withBirthday("EdgeIn", "07.01.2024"))
	b.Add(withBirthday("EdgeOut", "08.01.2024"))
	b.Add(record(t, "NoBirthday"))

	assert.Equal(t, []string{"Soon", "Today", "EdgeIn"}, b.UpcomingBirthdays(now))
}

func TestUpcomingBirthdaysExcludesEarlierToday(t *testing.T) {
	now := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

	r := record(t, "Today")
	require.NoError(t, r.SetBirthday("01.01.2024"))
	b := New()
	b.Add(r)

	assert.Empty(t, b.UpcomingBirthdays(now), "midnight today is before now")
}
