package event

import "time"

// OccursOn reports whether a recurring event anchored on base occurs on the
// candidate date. It is a pure rule check: callers are responsible for only
// asking about dates strictly after the base date and within the recurrence
// end bound.
//
// A monthly rule anchored on a day that a shorter month does not have (e.g.
// the 31st) never fires in that month. There is no clamping to month end;
// this mirrors the product's current behavior and is pending sign-off.
func OccursOn(base time.Time, rule RecurrenceType, candidate time.Time) bool {
	switch rule {
	case Daily:
		return true
	case Weekly:
		return candidate.Weekday() == base.Weekday()
	case Weekdays:
		return candidate.Weekday() >= time.Monday && candidate.Weekday() <= time.Friday
	case Weekends:
		return candidate.Weekday() == time.Saturday || candidate.Weekday() == time.Sunday
	case Monthly:
		return candidate.Day() == base.Day()
	case Yearly:
		return candidate.Day() == base.Day() && candidate.Month() == base.Month()
	}
	return false
}

// GenerateInstances materializes the virtual occurrences of a recurring event
// up to windowEnd (inclusive), clipped by the event's own recurrence end date
// if that is earlier. Generation starts the day after the base date: the base
// date is the stored row itself and is never duplicated as an instance.
// The result is ordered by ascending date.
func GenerateInstances(ev Event, windowEnd time.Time) []Event {
	if !ev.IsRecurring || ev.Recurrence == "" {
		return nil
	}

	end := windowEnd
	if !ev.RecurrenceEnd.IsZero() && ev.RecurrenceEnd.Before(end) {
		end = ev.RecurrenceEnd
	}

	var instances []Event
	for date := ev.Date.AddDate(0, 0, 1); !date.After(end); date = date.AddDate(0, 0, 1) {
		if OccursOn(ev.Date, ev.Recurrence, date) {
			instances = append(instances, ev.instanceOn(date))
		}
	}
	return instances
}
