package event

import (
	"fmt"
	"time"
)

// RecurrenceType governs which calendar dates a recurring event occurs on.
type RecurrenceType string

const (
	Daily    RecurrenceType = "daily"
	Weekly   RecurrenceType = "weekly"
	Weekdays RecurrenceType = "weekdays"
	Weekends RecurrenceType = "weekends"
	Monthly  RecurrenceType = "monthly"
	Yearly   RecurrenceType = "yearly"
)

// DateLayout is the calendar date format used in the database and in instance ids.
const DateLayout = "2006-01-02"

// Event is a single work shift. Start and end times are wall-clock strings
// ("15:04" or "15:04:05") with no timezone; an end time earlier than the start
// time means the shift runs through midnight.
//
// A recurring event is stored once. Its occurrences on later dates are never
// persisted: they are synthesized on demand with IsRecurrenceInstance set and
// an id derived from the source event (see InstanceID).
type Event struct {
	ID                   string
	Title                string
	Description          string
	Date                 time.Time
	StartTime            string
	EndTime              string
	IsRecurring          bool
	Recurrence           RecurrenceType
	RecurrenceEnd        time.Time // zero = unbounded
	Tags                 []string
	IsPaid               bool
	HourlyRate           float64 // 0 = unset, fall back to the user default
	CreatedAt            time.Time
	IsRecurrenceInstance bool
}

// Duration returns the shift length. Shifts ending before they start wrap
// through midnight, so 22:00-06:00 is 8 hours.
func (e Event) Duration() (time.Duration, error) {
	start, err := parseWallClock(e.StartTime)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", e.StartTime, err)
	}
	end, err := parseWallClock(e.EndTime)
	if err != nil {
		return 0, fmt.Errorf("invalid end time %q: %w", e.EndTime, err)
	}
	d := end - start
	if d < 0 {
		d += 24 * time.Hour
	}
	return d, nil
}

func parseWallClock(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("not a wall clock time")
}

// instanceOn copies the event into a virtual occurrence on the given date.
func (e Event) instanceOn(date time.Time) Event {
	instance := e
	instance.ID = InstanceID(e.ID, date)
	instance.Date = date
	instance.Tags = append([]string(nil), e.Tags...)
	instance.IsRecurrenceInstance = true
	return instance
}
