package income

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kentuckyfb/Payday/pkg/event"
	"github.com/kentuckyfb/Payday/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserProvider struct {
	user user.User
	err  error
}

func (s stubUserProvider) GetCurrentUser(ctx context.Context) (user.User, error) {
	return s.user, s.err
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func paidEvent(d time.Time, start, end string, rate float64) event.Event {
	return event.Event{
		ID:         uuid.NewString(),
		Title:      "Shift",
		Date:       d,
		StartTime:  start,
		EndTime:    end,
		IsPaid:     true,
		HourlyRate: rate,
	}
}

func newIncomeService(events []event.Event, u user.User) *IncomeServiceImpl {
	eventService := event.NewEventService(&event.StubEventRepository{Events: events})
	return NewIncomeService(eventService, stubUserProvider{user: u}, 0)
}

func TestTotalIncome(t *testing.T) {
	ctx := user.WithUser(context.Background(), user.User{Id: 1})

	t.Run("overnight shift wraps through midnight", func(t *testing.T) {
		service := newIncomeService([]event.Event{
			paidEvent(date(2024, time.January, 10), "22:00", "06:00", 20),
		}, user.User{Id: 1})

		total, err := service.TotalIncome(ctx, date(2024, time.January, 1), date(2024, time.January, 31))
		require.NoError(t, err)
		assert.InDelta(t, 160.0, total, 0.001)
	})

	t.Run("empty range yields zero", func(t *testing.T) {
		service := newIncomeService(nil, user.User{Id: 1})

		total, err := service.TotalIncome(ctx, date(2024, time.January, 1), date(2024, time.January, 31))
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("unpaid events contribute nothing", func(t *testing.T) {
		unpaid := paidEvent(date(2024, time.January, 10), "09:00", "17:00", 20)
		unpaid.IsPaid = false
		service := newIncomeService([]event.Event{unpaid}, user.User{Id: 1})

		total, err := service.TotalIncome(ctx, date(2024, time.January, 1), date(2024, time.January, 31))
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("falls back to the user default rate", func(t *testing.T) {
		service := newIncomeService([]event.Event{
			paidEvent(date(2024, time.January, 10), "09:00", "17:00", 0),
		}, user.User{Id: 1, DefaultHourlyRate: 18})

		total, err := service.TotalIncome(ctx, date(2024, time.January, 1), date(2024, time.January, 31))
		require.NoError(t, err)
		assert.InDelta(t, 8*18.0, total, 0.001)
	})

	t.Run("falls back to the system rate when the user has none", func(t *testing.T) {
		service := newIncomeService([]event.Event{
			paidEvent(date(2024, time.January, 10), "09:00", "17:00", 0),
		}, user.User{Id: 1})

		total, err := service.TotalIncome(ctx, date(2024, time.January, 1), date(2024, time.January, 31))
		require.NoError(t, err)
		assert.InDelta(t, 8*fallbackHourlyRate, total, 0.001)
	})

	t.Run("uses the configured system rate over the built-in constant", func(t *testing.T) {
		eventService := event.NewEventService(&event.StubEventRepository{Events: []event.Event{
			paidEvent(date(2024, time.January, 10), "09:00", "17:00", 0),
		}})
		service := NewIncomeService(eventService, stubUserProvider{user: user.User{Id: 1}}, 22)

		total, err := service.TotalIncome(ctx, date(2024, time.January, 1), date(2024, time.January, 31))
		require.NoError(t, err)
		assert.InDelta(t, 8*22.0, total, 0.001)
	})

	t.Run("counts each recurrence instance once", func(t *testing.T) {
		weekly := paidEvent(date(2024, time.January, 1), "09:00", "17:00", 10)
		weekly.IsRecurring = true
		weekly.Recurrence = event.Weekly
		service := newIncomeService([]event.Event{weekly}, user.User{Id: 1})

		// base row + instances on Jan 8, 15, 22, 29
		total, err := service.TotalIncome(ctx, date(2024, time.January, 1), date(2024, time.January, 31))
		require.NoError(t, err)
		assert.InDelta(t, 5*8*10.0, total, 0.001)
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		service := newIncomeService(nil, user.User{Id: 1})

		_, err := service.TotalIncome(ctx, date(2024, time.February, 1), date(2024, time.January, 1))
		assert.ErrorIs(t, err, event.ErrInvalidDateRange)
	})
}

func TestMonthlyIncome(t *testing.T) {
	ctx := user.WithUser(context.Background(), user.User{Id: 1})

	service := newIncomeService([]event.Event{
		paidEvent(date(2024, time.February, 29), "09:00", "13:00", 25),
		paidEvent(date(2024, time.March, 1), "09:00", "13:00", 25),
	}, user.User{Id: 1})

	total, err := service.MonthlyIncome(ctx, 2024, time.February)
	require.NoError(t, err)

	// Only the February shift falls inside the month.
	assert.InDelta(t, 4*25.0, total, 0.001)
}
