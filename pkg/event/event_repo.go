package event

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type EventRepository interface {
	// ListEvents returns the stored events of a user ordered by date, then by
	// insertion order. Zero from/to bounds mean unbounded; set bounds are
	// inclusive.
	ListEvents(ctx context.Context, userId int, from, to time.Time) ([]Event, error)
	// ListRecurring returns all recurring events of a user regardless of date.
	ListRecurring(ctx context.Context, userId int) ([]Event, error)
	// FindEvent returns nil when no event with the id belongs to the user.
	FindEvent(ctx context.Context, userId int, id string) (*Event, error)
	StoreEvent(ctx context.Context, userId int, event Event) (Event, error)
	UpdateEvent(ctx context.Context, userId int, event Event) (bool, error)
	DeleteEvent(ctx context.Context, userId int, id string) (bool, error)
}

type EventRepositoryImpl struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepositoryImpl {
	return &EventRepositoryImpl{db: db}
}

const eventColumns = `id, title, description, date, start_time, end_time, is_recurring,
			recurrence_type, recurring_end_date, tags, is_paid, hourly_rate, created_at`

func (r *EventRepositoryImpl) ListEvents(ctx context.Context, userId int, from, to time.Time) ([]Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE user_id = ?"
	args := []interface{}{userId}
	if !from.IsZero() {
		query += " AND date >= ?"
		args = append(args, from.Format(DateLayout))
	}
	if !to.IsZero() {
		query += " AND date <= ?"
		args = append(args, to.Format(DateLayout))
	}
	query += " ORDER BY date, rowid"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventRepositoryImpl) ListRecurring(ctx context.Context, userId int) ([]Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE user_id = ? AND is_recurring = 1 ORDER BY date, rowid"
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query recurring events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventRepositoryImpl) FindEvent(ctx context.Context, userId int, id string) (*Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE id = ? AND user_id = ?"
	row := r.db.QueryRowContext(ctx, query, id, userId)

	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		err := fmt.Errorf("could not scan event: %w", err)
		log.Error(err)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) StoreEvent(ctx context.Context, userId int, event Event) (Event, error) {
	query := `INSERT INTO events (
					id,
					user_id,
					title,
					description,
					date,
					start_time,
					end_time,
					is_recurring,
					recurrence_type,
					recurring_end_date,
					tags,
					is_paid,
					hourly_rate,
					created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return Event{}, err
	}
	defer stmt.Close()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	tags, err := json.Marshal(event.Tags)
	if err != nil {
		return Event{}, fmt.Errorf("could not marshal tags: %w", err)
	}

	_, err = stmt.ExecContext(ctx,
		event.ID,
		userId,
		event.Title,
		event.Description,
		event.Date.Format(DateLayout),
		event.StartTime,
		event.EndTime,
		event.IsRecurring,
		nullableString(string(event.Recurrence)),
		nullableDate(event.RecurrenceEnd),
		string(tags),
		event.IsPaid,
		nullableFloat(event.HourlyRate),
		event.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Event{}, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) UpdateEvent(ctx context.Context, userId int, event Event) (bool, error) {
	query := `UPDATE events SET
					title = ?,
					description = ?,
					date = ?,
					start_time = ?,
					end_time = ?,
					is_recurring = ?,
					recurrence_type = ?,
					recurring_end_date = ?,
					tags = ?,
					is_paid = ?,
					hourly_rate = ?
				WHERE id = ? AND user_id = ?`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	tags, err := json.Marshal(event.Tags)
	if err != nil {
		return false, fmt.Errorf("could not marshal tags: %w", err)
	}

	result, err := stmt.ExecContext(ctx,
		event.Title,
		event.Description,
		event.Date.Format(DateLayout),
		event.StartTime,
		event.EndTime,
		event.IsRecurring,
		nullableString(string(event.Recurrence)),
		nullableDate(event.RecurrenceEnd),
		string(tags),
		event.IsPaid,
		nullableFloat(event.HourlyRate),
		event.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *EventRepositoryImpl) DeleteEvent(ctx context.Context, userId int, id string) (bool, error) {
	query := "DELETE FROM events WHERE id = ? AND user_id = ?"
	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (Event, error) {
	var event Event
	var dateString, tagsString, createdAtString string
	var recurrenceType, recurringEndDate sql.NullString
	var hourlyRate sql.NullFloat64

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&dateString,
		&event.StartTime,
		&event.EndTime,
		&event.IsRecurring,
		&recurrenceType,
		&recurringEndDate,
		&tagsString,
		&event.IsPaid,
		&hourlyRate,
		&createdAtString,
	)
	if err != nil {
		return Event{}, err
	}

	event.Date, err = time.Parse(DateLayout, dateString)
	if err != nil {
		return Event{}, fmt.Errorf("could not parse event date: %w", err)
	}
	if recurrenceType.Valid {
		event.Recurrence = RecurrenceType(recurrenceType.String)
	}
	if recurringEndDate.Valid {
		event.RecurrenceEnd, err = time.Parse(DateLayout, recurringEndDate.String)
		if err != nil {
			return Event{}, fmt.Errorf("could not parse recurrence end date: %w", err)
		}
	}
	if hourlyRate.Valid {
		event.HourlyRate = hourlyRate.Float64
	}
	if err := json.Unmarshal([]byte(tagsString), &event.Tags); err != nil {
		return Event{}, fmt.Errorf("could not unmarshal tags: %w", err)
	}
	if createdAt, err := time.Parse(time.RFC3339, createdAtString); err == nil {
		event.CreatedAt = createdAt
	}

	return event, nil
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			err := fmt.Errorf("could not scan event: %w", err)
			log.Error(err)
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.Format(DateLayout)
}

func nullableFloat(f float64) interface{} {
	if f == 0 {
		return nil
	}
	return f
}
