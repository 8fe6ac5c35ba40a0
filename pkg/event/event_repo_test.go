package event

import (
	"context"
	"testing"
	"time"

	"github.com/kentuckyfb/Payday/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEventRepo(t *testing.T) (context.Context, *EventRepositoryImpl, int) {
	db := test_utils.SetupTestDB(t)
	u := test_utils.StoreTestUser(t, db, "event-repo-test")
	return context.Background(), NewEventRepo(db), u.Id
}

func storedEvent(title string, d time.Time) Event {
	return Event{
		Title:     title,
		Date:      d,
		StartTime: "09:00",
		EndTime:   "17:00",
		Tags:      []string{"work", "shift"},
		IsPaid:    true,
	}
}

func TestEventRepoStoreAndFind(t *testing.T) {
	ctx, repo, userId := setupEventRepo(t)

	stored, err := repo.StoreEvent(ctx, userId, storedEvent("Night shift", date(2024, time.January, 5)))
	require.NoError(t, err)
	require.NotEmpty(t, stored.ID)

	found, err := repo.FindEvent(ctx, userId, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, "Night shift", found.Title)
	assert.Equal(t, date(2024, time.January, 5), found.Date)
	assert.Equal(t, []string{"work", "shift"}, found.Tags)
	assert.True(t, found.IsPaid)
	assert.Zero(t, found.HourlyRate)
}

func TestEventRepoFindIsOwnerScoped(t *testing.T) {
	ctx, repo, userId := setupEventRepo(t)

	stored, err := repo.StoreEvent(ctx, userId, storedEvent("Private", date(2024, time.January, 5)))
	require.NoError(t, err)

	found, err := repo.FindEvent(ctx, userId+1, stored.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestEventRepoListEventsDateRange(t *testing.T) {
	ctx, repo, userId := setupEventRepo(t)

	for _, d := range []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 15),
		date(2024, time.February, 1),
	} {
		_, err := repo.StoreEvent(ctx, userId, storedEvent("Shift", d))
		require.NoError(t, err)
	}

	t.Run("unbounded returns everything in date order", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, userId, time.Time{}, time.Time{})
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, date(2024, time.January, 1), events[0].Date)
		assert.Equal(t, date(2024, time.February, 1), events[2].Date)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, userId, date(2024, time.January, 1), date(2024, time.January, 15))
		require.NoError(t, err)
		require.Len(t, events, 2)
	})

	t.Run("same-date rows keep insertion order", func(t *testing.T) {
		first, err := repo.StoreEvent(ctx, userId, storedEvent("First", date(2024, time.March, 1)))
		require.NoError(t, err)
		second, err := repo.StoreEvent(ctx, userId, storedEvent("Second", date(2024, time.March, 1)))
		require.NoError(t, err)

		events, err := repo.ListEvents(ctx, userId, date(2024, time.March, 1), date(2024, time.March, 1))
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, first.ID, events[0].ID)
		assert.Equal(t, second.ID, events[1].ID)
	})
}

func TestEventRepoListRecurring(t *testing.T) {
	ctx, repo, userId := setupEventRepo(t)

	_, err := repo.StoreEvent(ctx, userId, storedEvent("Single", date(2024, time.January, 1)))
	require.NoError(t, err)
	recurring := storedEvent("Weekly", date(2024, time.January, 1))
	recurring.IsRecurring = true
	recurring.Recurrence = Weekly
	recurring.RecurrenceEnd = date(2024, time.June, 1)
	_, err = repo.StoreEvent(ctx, userId, recurring)
	require.NoError(t, err)

	events, err := repo.ListRecurring(ctx, userId)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, Weekly, events[0].Recurrence)
	assert.Equal(t, date(2024, time.June, 1), events[0].RecurrenceEnd)
}

func TestEventRepoUpdateEvent(t *testing.T) {
	ctx, repo, userId := setupEventRepo(t)

	stored, err := repo.StoreEvent(ctx, userId, storedEvent("Before", date(2024, time.January, 1)))
	require.NoError(t, err)

	stored.Title = "After"
	stored.HourlyRate = 22.5
	updated, err := repo.UpdateEvent(ctx, userId, stored)
	require.NoError(t, err)
	assert.True(t, updated)

	found, err := repo.FindEvent(ctx, userId, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", found.Title)
	assert.Equal(t, 22.5, found.HourlyRate)

	updated, err = repo.UpdateEvent(ctx, userId+1, stored)
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestEventRepoDeleteEvent(t *testing.T) {
	ctx, repo, userId := setupEventRepo(t)

	stored, err := repo.StoreEvent(ctx, userId, storedEvent("Gone", date(2024, time.January, 1)))
	require.NoError(t, err)

	deleted, err := repo.DeleteEvent(ctx, userId, stored.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err := repo.FindEvent(ctx, userId, stored.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	deleted, err = repo.DeleteEvent(ctx, userId, stored.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
