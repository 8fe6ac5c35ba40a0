package income

import (
	"context"
	"fmt"
	"time"

	"github.com/kentuckyfb/Payday/pkg/event"
	"github.com/kentuckyfb/Payday/pkg/user"
	log "github.com/sirupsen/logrus"
)

// fallbackHourlyRate applies when neither the event nor the user carries a
// rate and no system rate is configured. It is the single system-wide
// constant; no other call site defines one.
const fallbackHourlyRate = 15.0

// incomeWindowMonths is the expansion horizon requested when aggregating.
// Wide enough to cover any practical reporting range before post-filtering.
const incomeWindowMonths = 12

// EventExpander is the slice of the event service income aggregation needs.
type EventExpander interface {
	Expand(ctx context.Context, months int, from, to time.Time) ([]event.Event, error)
}

type IncomeService interface {
	// TotalIncome sums duration times hourly rate over the paid events and
	// recurrence instances within [start, end]. Returns 0 when nothing is
	// paid in the range.
	TotalIncome(ctx context.Context, start, end time.Time) (float64, error)
	MonthlyIncome(ctx context.Context, year int, month time.Month) (float64, error)
}

type IncomeServiceImpl struct {
	events     EventExpander
	users      user.Provider
	systemRate float64
}

// NewIncomeService builds the aggregation service. systemRate is the
// configured last-resort hourly rate; non-positive values fall back to the
// built-in constant.
func NewIncomeService(events EventExpander, users user.Provider, systemRate float64) *IncomeServiceImpl {
	if systemRate <= 0 {
		systemRate = fallbackHourlyRate
	}
	return &IncomeServiceImpl{events: events, users: users, systemRate: systemRate}
}

func (s *IncomeServiceImpl) TotalIncome(ctx context.Context, start, end time.Time) (float64, error) {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return 0, event.ErrInvalidDateRange
	}

	events, err := s.events.Expand(ctx, incomeWindowMonths, start, end)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	defaultRate, err := s.defaultRate(ctx)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, e := range events {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if !e.IsPaid {
			continue
		}
		duration, err := e.Duration()
		if err != nil {
			return 0, fmt.Errorf("event %s: %w", e.ID, err)
		}
		rate := e.HourlyRate
		if rate == 0 {
			rate = defaultRate
		}
		total += duration.Hours() * rate
	}
	return total, nil
}

func (s *IncomeServiceImpl) MonthlyIncome(ctx context.Context, year int, month time.Month) (float64, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return s.TotalIncome(ctx, start, end)
}

// defaultRate resolves the owner-level default, falling back to the
// configured system rate when the user has none.
func (s *IncomeServiceImpl) defaultRate(ctx context.Context) (float64, error) {
	current, err := s.users.GetCurrentUser(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	if current.DefaultHourlyRate > 0 {
		return current.DefaultHourlyRate, nil
	}
	log.Debugf("user %d has no default hourly rate, using the system rate", current.Id)
	return s.systemRate, nil
}
