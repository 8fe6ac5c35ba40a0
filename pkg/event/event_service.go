package event

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/kentuckyfb/Payday/internal/utils"
	"github.com/kentuckyfb/Payday/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidDateRange = errors.New("end date is before start date")
	ErrInvalidEvent     = errors.New("invalid event")
)

// defaultWindowMonths is how far ahead recurring events are expanded when the
// caller gives no explicit end date.
const defaultWindowMonths = 3

type EventService interface {
	// Expand returns the user's events with recurring events expanded into
	// virtual instances, ordered ascending by date. The expansion horizon is
	// "today + months" unless to is set, in which case to wins.
	Expand(ctx context.Context, months int, from, to time.Time) ([]Event, error)
	// ListReal returns stored events only, without recurrence instances.
	// Used by the events list, where expanded duplicates would be confusing.
	ListReal(ctx context.Context, from, to time.Time) ([]Event, error)
	// EventsOnDate returns everything occurring on the given date: stored
	// events dated exactly there plus instances of recurring events whose
	// rule fires on it.
	EventsOnDate(ctx context.Context, date time.Time) ([]Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	CreateEvent(ctx context.Context, event Event) (Event, error)
	UpdateEvent(ctx context.Context, id string, event Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type EventServiceImpl struct {
	repo  EventRepository
	clock utils.Clock
}

func NewEventService(repo EventRepository) *EventServiceImpl {
	return &EventServiceImpl{repo: repo, clock: &utils.SystemClock{}}
}

func (s *EventServiceImpl) Expand(ctx context.Context, months int, from, to time.Time) ([]Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	if months <= 0 {
		months = defaultWindowMonths
	}

	windowEnd := to
	if windowEnd.IsZero() {
		now := s.clock.Now()
		windowEnd = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	}

	events, err := s.repo.ListEvents(ctx, userId, from, to)
	if err != nil {
		return nil, err
	}

	expanded := make([]Event, 0, len(events))
	for _, e := range events {
		expanded = append(expanded, e)
		if e.IsRecurring && e.Recurrence != "" {
			expanded = append(expanded, GenerateInstances(e, windowEnd)...)
		}
	}

	sort.SliceStable(expanded, func(i, j int) bool {
		return expanded[i].Date.Before(expanded[j].Date)
	})
	return expanded, nil
}

func (s *EventServiceImpl) ListReal(ctx context.Context, from, to time.Time) ([]Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validateRange(from, to); err != nil {
		return nil, err
	}
	return s.repo.ListEvents(ctx, userId, from, to)
}

func (s *EventServiceImpl) EventsOnDate(ctx context.Context, date time.Time) ([]Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	// Stored rows dated exactly on the target. This covers non-recurring
	// events and the anchor date of recurring ones, which the instance
	// synthesis below never re-produces.
	events, err := s.repo.ListEvents(ctx, userId, date, date)
	if err != nil {
		return nil, err
	}

	recurring, err := s.repo.ListRecurring(ctx, userId)
	if err != nil {
		return nil, err
	}
	for _, r := range recurring {
		if !date.After(r.Date) {
			continue
		}
		if !r.RecurrenceEnd.IsZero() && date.After(r.RecurrenceEnd) {
			continue
		}
		if OccursOn(r.Date, r.Recurrence, date) {
			events = append(events, r.instanceOn(date))
		}
	}
	return events, nil
}

func (s *EventServiceImpl) GetEvent(ctx context.Context, id string) (Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}
	sourceID, err := SourceEventID(id)
	if err != nil {
		return Event{}, err
	}

	found, err := s.repo.FindEvent(ctx, userId, sourceID)
	if err != nil {
		return Event{}, err
	}
	if found == nil {
		return Event{}, ErrEventNotFound
	}
	event := *found
	if sourceID != id {
		event.IsRecurrenceInstance = true
	}
	return event, nil
}

func (s *EventServiceImpl) CreateEvent(ctx context.Context, event Event) (Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}

	if event.Title == "" {
		event.Title = "Untitled Event"
	}
	if event.Date.IsZero() {
		now := s.clock.Now()
		event.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if event.StartTime == "" {
		event.StartTime = "09:00"
	}
	if event.EndTime == "" {
		event.EndTime = "10:00"
	}
	if err := validateEvent(event); err != nil {
		return Event{}, err
	}

	return s.repo.StoreEvent(ctx, userId, event)
}

// UpdateEvent modifies a stored event. An instance id resolves to the source
// event: instances cannot diverge from the event they were generated from, so
// editing one edits the whole series.
func (s *EventServiceImpl) UpdateEvent(ctx context.Context, id string, event Event) (Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}
	sourceID, err := SourceEventID(id)
	if err != nil {
		return Event{}, err
	}
	if err := validateEvent(event); err != nil {
		return Event{}, err
	}

	event.ID = sourceID
	event.IsRecurrenceInstance = false
	updated, err := s.repo.UpdateEvent(ctx, userId, event)
	if err != nil {
		return Event{}, err
	}
	if !updated {
		log.Warnf("event not updated, probably because it does not exist (%s) or the user (%d) is not the owner", sourceID, userId)
		return Event{}, ErrEventNotFound
	}
	return event, nil
}

// DeleteEvent removes a stored event. Deleting an instance id deletes the
// source event and with it every generated instance.
func (s *EventServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	sourceID, err := SourceEventID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteEvent(ctx, userId, sourceID)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("event not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", sourceID, userId)
		return ErrEventNotFound
	}
	return nil
}

func validateRange(from, to time.Time) error {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return ErrInvalidDateRange
	}
	return nil
}

func validateEvent(event Event) error {
	if _, err := event.Duration(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if event.IsRecurring != (event.Recurrence != "") {
		return fmt.Errorf("%w: recurrence rule must be set exactly when the event is recurring", ErrInvalidEvent)
	}
	if event.IsRecurring {
		switch event.Recurrence {
		case Daily, Weekly, Weekdays, Weekends, Monthly, Yearly:
		default:
			return fmt.Errorf("%w: unknown recurrence rule %q", ErrInvalidEvent, event.Recurrence)
		}
		if !event.RecurrenceEnd.IsZero() && event.RecurrenceEnd.Before(event.Date) {
			return fmt.Errorf("%w: recurrence end date is before the event date", ErrInvalidEvent)
		}
	}
	if event.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly rate must not be negative", ErrInvalidEvent)
	}
	return nil
}
