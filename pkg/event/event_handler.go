package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description,omitempty"`
	Date                 string   `json:"date"`
	StartTime            string   `json:"startTime"`
	EndTime              string   `json:"endTime"`
	IsRecurring          bool     `json:"isRecurring,omitempty"`
	RecurrenceType       string   `json:"recurrenceType,omitempty"`
	RecurringEndDate     string   `json:"recurringEndDate,omitempty"`
	Tags                 []string `json:"tags,omitempty"`
	IsPaid               bool     `json:"isPaid,omitempty"`
	HourlyRate           float64  `json:"hourlyRate,omitempty"`
	IsRecurrenceInstance bool     `json:"isRecurrenceInstance,omitempty"`
}

type EventHandler struct {
	eventService EventService
}

func NewEventHandler(eventService EventService) *EventHandler {
	return &EventHandler{eventService}
}

// GetCalendar returns events with recurring events expanded into instances.
func (h *EventHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from, to, ok := parseRangeParams(w, r)
	if !ok {
		return
	}
	months := 0
	if monthsParam := r.URL.Query().Get("months"); monthsParam != "" {
		parsed, err := strconv.Atoi(monthsParam)
		if err != nil {
			http.Error(w, "Invalid months parameter", http.StatusBadRequest)
			return
		}
		months = parsed
	}

	events, err := h.eventService.Expand(r.Context(), months, from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeEvents(w, events)
}

// GetEvents returns stored events only, without recurrence instances.
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from, to, ok := parseRangeParams(w, r)
	if !ok {
		return
	}

	events, err := h.eventService.ListReal(r.Context(), from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeEvents(w, events)
}

func (h *EventHandler) GetEventsForDate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date, err := time.Parse(DateLayout, mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, "Invalid date parameter", http.StatusBadRequest)
		return
	}

	events, err := h.eventService.EventsOnDate(r.Context(), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeEvents(w, events)
}

func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	event, err := h.eventService.GetEvent(r.Context(), mux.Vars(r)["eventId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(EventToDTO(event)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new event")
	w.Header().Set("Content-Type", "application/json")

	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	event, err := DTOToEvent(eventDTO)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.eventService.CreateEvent(r.Context(), event)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(EventToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	eventId := mux.Vars(r)["eventId"]

	var eventDTO EventDTO
	if err := json.NewDecoder(r.Body).Decode(&eventDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	event, err := DTOToEvent(eventDTO)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.eventService.UpdateEvent(r.Context(), eventId, event)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(EventToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]

	if err := h.eventService.DeleteEvent(r.Context(), eventId); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseRangeParams(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	var from, to time.Time
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		parsed, err := time.Parse(DateLayout, fromParam)
		if err != nil {
			http.Error(w, "Invalid from parameter", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		parsed, err := time.Parse(DateLayout, toParam)
		if err != nil {
			http.Error(w, "Invalid to parameter", http.StatusBadRequest)
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	return from, to, true
}

func writeEvents(w http.ResponseWriter, events []Event) {
	dtos := make([]EventDTO, 0, len(events))
	for _, event := range events {
		dtos = append(dtos, EventToDTO(event))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		http.Error(w, "Event not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrInvalidEvent), errors.Is(err, ErrInvalidInstanceID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func EventToDTO(event Event) EventDTO {
	dto := EventDTO{
		ID:                   event.ID,
		Title:                event.Title,
		Description:          event.Description,
		Date:                 event.Date.Format(DateLayout),
		StartTime:            event.StartTime,
		EndTime:              event.EndTime,
		IsRecurring:          event.IsRecurring,
		RecurrenceType:       string(event.Recurrence),
		Tags:                 event.Tags,
		IsPaid:               event.IsPaid,
		HourlyRate:           event.HourlyRate,
		IsRecurrenceInstance: event.IsRecurrenceInstance,
	}
	if !event.RecurrenceEnd.IsZero() {
		dto.RecurringEndDate = event.RecurrenceEnd.Format(DateLayout)
	}
	return dto
}

func DTOToEvent(dto EventDTO) (Event, error) {
	event := Event{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		IsRecurring: dto.IsRecurring,
		Recurrence:  RecurrenceType(dto.RecurrenceType),
		Tags:        dto.Tags,
		IsPaid:      dto.IsPaid,
		HourlyRate:  dto.HourlyRate,
	}
	if dto.Date != "" {
		date, err := time.Parse(DateLayout, dto.Date)
		if err != nil {
			return Event{}, err
		}
		event.Date = date
	}
	if dto.RecurringEndDate != "" {
		endDate, err := time.Parse(DateLayout, dto.RecurringEndDate)
		if err != nil {
			return Event{}, err
		}
		event.RecurrenceEnd = endDate
	}
	return event, nil
}
