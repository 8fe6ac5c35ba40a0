package event

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestOccursOn(t *testing.T) {
	base := date(2024, time.January, 1) // a Monday

	tests := []struct {
		name      string
		rule      RecurrenceType
		candidate time.Time
		expected  bool
	}{
		{"daily always fires", Daily, date(2024, time.March, 15), true},
		{"weekly fires on the same weekday", Weekly, date(2024, time.January, 8), true},
		{"weekly skips other weekdays", Weekly, date(2024, time.January, 9), false},
		{"weekdays fires on a Friday", Weekdays, date(2024, time.January, 5), true},
		{"weekdays skips a Saturday", Weekdays, date(2024, time.January, 6), false},
		{"weekends fires on a Sunday", Weekends, date(2024, time.January, 7), true},
		{"weekends skips a Wednesday", Weekends, date(2024, time.January, 10), false},
		{"monthly fires on the same day of month", Monthly, date(2024, time.February, 1), true},
		{"monthly skips other days", Monthly, date(2024, time.February, 2), false},
		{"yearly fires on the same day and month", Yearly, date(2025, time.January, 1), true},
		{"yearly skips the same day of another month", Yearly, date(2025, time.February, 1), false},
		{"unknown rule never fires", RecurrenceType("fortnightly"), date(2024, time.January, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OccursOn(base, tt.rule, tt.candidate))
		})
	}
}

func TestOccursOnMonthlyDay31SkipsShortMonths(t *testing.T) {
	base := date(2024, time.January, 31)

	// Day 31 does not exist in February or April; the rule must not clamp
	// or roll over to the end of those months.
	assert.False(t, OccursOn(base, Monthly, date(2024, time.February, 29)))
	assert.True(t, OccursOn(base, Monthly, date(2024, time.March, 31)))
	assert.False(t, OccursOn(base, Monthly, date(2024, time.April, 30)))
}

func recurringEvent(baseDate time.Time, rule RecurrenceType) Event {
	return Event{
		ID:          uuid.NewString(),
		Title:       "Night shift",
		Date:        baseDate,
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsRecurring: true,
		Recurrence:  rule,
	}
}

func TestGenerateInstancesWeekly(t *testing.T) {
	ev := recurringEvent(date(2024, time.January, 1), Weekly)

	instances := GenerateInstances(ev, date(2024, time.January, 31))

	require.Len(t, instances, 4)
	expectedDates := []time.Time{
		date(2024, time.January, 8),
		date(2024, time.January, 15),
		date(2024, time.January, 22),
		date(2024, time.January, 29),
	}
	for i, instance := range instances {
		assert.Equal(t, expectedDates[i], instance.Date)
		assert.True(t, instance.IsRecurrenceInstance)
		assert.Equal(t, InstanceID(ev.ID, expectedDates[i]), instance.ID)
	}
}

func TestGenerateInstancesNeverIncludesBaseDate(t *testing.T) {
	ev := recurringEvent(date(2024, time.January, 1), Daily)

	instances := GenerateInstances(ev, date(2024, time.January, 10))

	require.NotEmpty(t, instances)
	for _, instance := range instances {
		assert.True(t, instance.Date.After(ev.Date), "instance on %s must be after base date", instance.Date)
		assert.True(t, OccursOn(ev.Date, ev.Recurrence, instance.Date))
	}
}

func TestGenerateInstancesMonthlyDay31(t *testing.T) {
	ev := recurringEvent(date(2024, time.January, 31), Monthly)

	instances := GenerateInstances(ev, date(2024, time.April, 30))

	// Only March has a day 31 between February and April 2024.
	require.Len(t, instances, 1)
	assert.Equal(t, date(2024, time.March, 31), instances[0].Date)
}

func TestGenerateInstancesClipsAtRecurrenceEnd(t *testing.T) {
	ev := recurringEvent(date(2024, time.January, 1), Daily)
	ev.RecurrenceEnd = date(2024, time.January, 10)

	instances := GenerateInstances(ev, date(2024, time.February, 1))

	require.Len(t, instances, 9)
	assert.Equal(t, date(2024, time.January, 2), instances[0].Date)
	assert.Equal(t, date(2024, time.January, 10), instances[len(instances)-1].Date)
}

func TestGenerateInstancesRecurrenceEndOnBaseDate(t *testing.T) {
	ev := recurringEvent(date(2024, time.January, 1), Daily)
	ev.RecurrenceEnd = date(2024, time.January, 1)

	assert.Empty(t, GenerateInstances(ev, date(2024, time.February, 1)))
}

func TestGenerateInstancesNonRecurringEvent(t *testing.T) {
	ev := recurringEvent(date(2024, time.January, 1), Daily)
	ev.IsRecurring = false
	ev.Recurrence = ""

	assert.Empty(t, GenerateInstances(ev, date(2024, time.February, 1)))
}

func TestGenerateInstancesDoesNotShareTags(t *testing.T) {
	ev := recurringEvent(date(2024, time.January, 1), Weekly)
	ev.Tags = []string{"work"}

	instances := GenerateInstances(ev, date(2024, time.January, 15))
	require.NotEmpty(t, instances)

	instances[0].Tags[0] = "changed"
	assert.Equal(t, "work", ev.Tags[0])
}
