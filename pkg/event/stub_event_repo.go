package event

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

type StubEventRepository struct {
	Events []Event
}

func (s *StubEventRepository) ListEvents(ctx context.Context, userId int, from, to time.Time) ([]Event, error) {
	var events []Event
	for _, e := range s.Events {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		events = append(events, e)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func (s *StubEventRepository) ListRecurring(ctx context.Context, userId int) ([]Event, error) {
	var events []Event
	for _, e := range s.Events {
		if e.IsRecurring {
			events = append(events, e)
		}
	}
	return events, nil
}

func (s *StubEventRepository) FindEvent(ctx context.Context, userId int, id string) (*Event, error) {
	for i := range s.Events {
		if s.Events[i].ID == id {
			event := s.Events[i]
			return &event, nil
		}
	}
	return nil, nil
}

func (s *StubEventRepository) StoreEvent(ctx context.Context, userId int, event Event) (Event, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	s.Events = append(s.Events, event)
	return event, nil
}

func (s *StubEventRepository) UpdateEvent(ctx context.Context, userId int, event Event) (bool, error) {
	for i := range s.Events {
		if s.Events[i].ID == event.ID {
			s.Events[i] = event
			return true, nil
		}
	}
	return false, nil
}

func (s *StubEventRepository) DeleteEvent(ctx context.Context, userId int, id string) (bool, error) {
	for i := range s.Events {
		if s.Events[i].ID == id {
			s.Events = append(s.Events[:i], s.Events[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
