package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kentuckyfb/Payday/internal/utils"
	"github.com/kentuckyfb/Payday/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1"})
}

func newTestService(repo EventRepository, now time.Time) *EventServiceImpl {
	return &EventServiceImpl{repo: repo, clock: &utils.MockClock{FixedNow: now}}
}

func TestExpand(t *testing.T) {
	ctx := testContext()
	weekly := recurringEvent(date(2024, time.January, 1), Weekly)
	single := Event{ID: uuid.NewString(), Title: "Dentist", Date: date(2024, time.January, 5), StartTime: "10:00", EndTime: "11:00"}
	repo := &StubEventRepository{Events: []Event{weekly, single}}
	service := newTestService(repo, date(2024, time.January, 1))

	t.Run("merges real rows and instances ordered by date", func(t *testing.T) {
		events, err := service.Expand(ctx, 0, date(2024, time.January, 1), date(2024, time.January, 31))
		require.NoError(t, err)

		require.Len(t, events, 6)
		assert.Equal(t, weekly.ID, events[0].ID)
		assert.Equal(t, single.ID, events[1].ID)
		for i, expected := range []time.Time{
			date(2024, time.January, 8),
			date(2024, time.January, 15),
			date(2024, time.January, 22),
			date(2024, time.January, 29),
		} {
			assert.Equal(t, expected, events[2+i].Date)
			assert.True(t, events[2+i].IsRecurrenceInstance)
		}

		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].Date.Before(events[i-1].Date))
		}
	})

	t.Run("same-date rows keep their repository fetch order", func(t *testing.T) {
		first := Event{ID: uuid.NewString(), Title: "Standup", Date: date(2024, time.January, 8), StartTime: "09:00", EndTime: "09:15"}
		second := Event{ID: uuid.NewString(), Title: "Dentist", Date: date(2024, time.January, 8), StartTime: "10:00", EndTime: "11:00"}
		weekly := recurringEvent(date(2024, time.January, 1), Weekly)
		service := newTestService(&StubEventRepository{Events: []Event{weekly, first, second}}, date(2024, time.January, 1))

		events, err := service.Expand(ctx, 0, date(2024, time.January, 1), date(2024, time.January, 8))
		require.NoError(t, err)

		// Jan 8 carries three entries: the instance expanded from the
		// earlier-fetched recurring row, then the stored rows in fetch order.
		require.Len(t, events, 4)
		assert.Equal(t, weekly.ID, events[0].ID)
		assert.Equal(t, InstanceID(weekly.ID, date(2024, time.January, 8)), events[1].ID)
		assert.Equal(t, first.ID, events[2].ID)
		assert.Equal(t, second.ID, events[3].ID)
	})

	t.Run("is idempotent against unchanged storage", func(t *testing.T) {
		first, err := service.Expand(ctx, 0, date(2024, time.January, 1), date(2024, time.January, 31))
		require.NoError(t, err)
		second, err := service.Expand(ctx, 0, date(2024, time.January, 1), date(2024, time.January, 31))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("defaults the window to months after today", func(t *testing.T) {
		daily := recurringEvent(date(2024, time.January, 1), Daily)
		service := newTestService(&StubEventRepository{Events: []Event{daily}}, date(2024, time.January, 1))

		events, err := service.Expand(ctx, 1, time.Time{}, time.Time{})
		require.NoError(t, err)

		// base row + one instance per day from Jan 2 to Feb 1
		require.Len(t, events, 32)
		assert.Equal(t, date(2024, time.February, 1), events[len(events)-1].Date)
	})

	t.Run("rejects an inverted range before touching storage", func(t *testing.T) {
		_, err := service.Expand(ctx, 0, date(2024, time.February, 1), date(2024, time.January, 1))
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("requires a user in context", func(t *testing.T) {
		_, err := service.Expand(context.Background(), 0, time.Time{}, time.Time{})
		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestListReal(t *testing.T) {
	ctx := testContext()
	weekly := recurringEvent(date(2024, time.January, 1), Weekly)
	repo := &StubEventRepository{Events: []Event{weekly}}
	service := newTestService(repo, date(2024, time.January, 1))

	events, err := service.ListReal(ctx, date(2024, time.January, 1), date(2024, time.January, 31))
	require.NoError(t, err)

	// No instances: only the stored row.
	require.Len(t, events, 1)
	assert.Equal(t, weekly.ID, events[0].ID)
	assert.False(t, events[0].IsRecurrenceInstance)
}

func TestEventsOnDate(t *testing.T) {
	ctx := testContext()
	weekly := recurringEvent(date(2024, time.January, 1), Weekly)
	single := Event{ID: uuid.NewString(), Title: "Dentist", Date: date(2024, time.January, 8), StartTime: "10:00", EndTime: "11:00"}
	repo := &StubEventRepository{Events: []Event{weekly, single}}
	service := newTestService(repo, date(2024, time.January, 1))

	t.Run("combines direct matches with synthesized instances", func(t *testing.T) {
		events, err := service.EventsOnDate(ctx, date(2024, time.January, 8))
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, single.ID, events[0].ID)
		assert.Equal(t, InstanceID(weekly.ID, date(2024, time.January, 8)), events[1].ID)
		assert.True(t, events[1].IsRecurrenceInstance)
	})

	t.Run("anchor date is the real row, not an instance", func(t *testing.T) {
		events, err := service.EventsOnDate(ctx, date(2024, time.January, 1))
		require.NoError(t, err)

		require.Len(t, events, 1)
		assert.Equal(t, weekly.ID, events[0].ID)
		assert.False(t, events[0].IsRecurrenceInstance)
	})

	t.Run("nothing before the base date", func(t *testing.T) {
		events, err := service.EventsOnDate(ctx, date(2023, time.December, 25))
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("nothing after the recurrence end date", func(t *testing.T) {
		ended := recurringEvent(date(2024, time.January, 1), Daily)
		ended.RecurrenceEnd = date(2024, time.January, 10)
		service := newTestService(&StubEventRepository{Events: []Event{ended}}, date(2024, time.January, 1))

		events, err := service.EventsOnDate(ctx, date(2024, time.January, 11))
		require.NoError(t, err)
		assert.Empty(t, events)

		events, err = service.EventsOnDate(ctx, date(2024, time.January, 10))
		require.NoError(t, err)
		require.Len(t, events, 1)
	})
}

func TestGetEvent(t *testing.T) {
	ctx := testContext()
	weekly := recurringEvent(date(2024, time.January, 1), Weekly)
	repo := &StubEventRepository{Events: []Event{weekly}}
	service := newTestService(repo, date(2024, time.January, 1))

	t.Run("resolves an instance id to its source event", func(t *testing.T) {
		instanceId := InstanceID(weekly.ID, date(2024, time.January, 8))

		event, err := service.GetEvent(ctx, instanceId)
		require.NoError(t, err)

		assert.Equal(t, weekly.ID, event.ID)
		assert.True(t, event.IsRecurrenceInstance)
	})

	t.Run("returns the stored event unmarked for a plain id", func(t *testing.T) {
		event, err := service.GetEvent(ctx, weekly.ID)
		require.NoError(t, err)
		assert.False(t, event.IsRecurrenceInstance)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := service.GetEvent(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := service.GetEvent(ctx, "short")
		assert.ErrorIs(t, err, ErrInvalidInstanceID)
	})
}

func TestCreateEvent(t *testing.T) {
	ctx := testContext()

	t.Run("fills defaults for missing fields", func(t *testing.T) {
		repo := &StubEventRepository{}
		service := newTestService(repo, date(2024, time.June, 15))

		created, err := service.CreateEvent(ctx, Event{})
		require.NoError(t, err)

		assert.Equal(t, "Untitled Event", created.Title)
		assert.Equal(t, date(2024, time.June, 15), created.Date)
		assert.Equal(t, "09:00", created.StartTime)
		assert.Equal(t, "10:00", created.EndTime)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("rejects a recurring event without a rule", func(t *testing.T) {
		service := newTestService(&StubEventRepository{}, date(2024, time.June, 15))

		_, err := service.CreateEvent(ctx, Event{Title: "Shift", IsRecurring: true})
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})

	t.Run("rejects a recurrence end before the base date", func(t *testing.T) {
		service := newTestService(&StubEventRepository{}, date(2024, time.June, 15))

		ev := recurringEvent(date(2024, time.June, 15), Daily)
		ev.RecurrenceEnd = date(2024, time.June, 1)
		_, err := service.CreateEvent(ctx, ev)
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})

	t.Run("rejects an unknown rule", func(t *testing.T) {
		service := newTestService(&StubEventRepository{}, date(2024, time.June, 15))

		ev := recurringEvent(date(2024, time.June, 15), RecurrenceType("fortnightly"))
		_, err := service.CreateEvent(ctx, ev)
		assert.ErrorIs(t, err, ErrInvalidEvent)
	})
}

func TestUpdateEvent(t *testing.T) {
	ctx := testContext()

	t.Run("an instance id updates the source event", func(t *testing.T) {
		weekly := recurringEvent(date(2024, time.January, 1), Weekly)
		repo := &StubEventRepository{Events: []Event{weekly}}
		service := newTestService(repo, date(2024, time.January, 1))

		modified := weekly
		modified.Title = "Renamed"
		instanceId := InstanceID(weekly.ID, date(2024, time.January, 8))

		updated, err := service.UpdateEvent(ctx, instanceId, modified)
		require.NoError(t, err)

		assert.Equal(t, weekly.ID, updated.ID)
		assert.False(t, updated.IsRecurrenceInstance)
		assert.Equal(t, "Renamed", repo.Events[0].Title)
	})

	t.Run("not found", func(t *testing.T) {
		service := newTestService(&StubEventRepository{}, date(2024, time.January, 1))

		ev := recurringEvent(date(2024, time.January, 1), Weekly)
		_, err := service.UpdateEvent(ctx, ev.ID, ev)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := testContext()

	t.Run("an instance id deletes the source event", func(t *testing.T) {
		weekly := recurringEvent(date(2024, time.January, 1), Weekly)
		repo := &StubEventRepository{Events: []Event{weekly}}
		service := newTestService(repo, date(2024, time.January, 1))

		instanceId := InstanceID(weekly.ID, date(2024, time.January, 8))
		err := service.DeleteEvent(ctx, instanceId)
		require.NoError(t, err)
		assert.Empty(t, repo.Events)
	})

	t.Run("not found", func(t *testing.T) {
		service := newTestService(&StubEventRepository{}, date(2024, time.January, 1))

		err := service.DeleteEvent(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		service := newTestService(&StubEventRepository{}, date(2024, time.January, 1))

		err := service.DeleteEvent(ctx, "not-an-id")
		assert.ErrorIs(t, err, ErrInvalidInstanceID)
	})
}
