package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ EventRepository = (*EventRepositoryImpl)(nil)

type EventRepositoryImpl struct {
	db *DB
}

func NewEventRepository(db *DB) *EventRepositoryImpl {
	return &EventRepositoryImpl{db: db}
}

func (r *EventRepositoryImpl) InsertEvent(event Event) error {
	_, err := r.db.Exec(`
		INSERT INTO events (id, document_id, title, event_date, event_key, calendar_id, status, failure_reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), event.DocumentID, event.Title, event.EventDate, event.EventKey,
		event.CalendarID, event.Status, event.FailureReason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

func (r *EventRepositoryImpl) GetEventsByDocument(documentID string) ([]Event, error) {
	rows, err := r.db.Query(`
		SELECT id, document_id, title, event_date, event_key, calendar_id, status, failure_reason, created_at
		FROM events
		WHERE document_id = ?
		ORDER BY created_at, id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventRepositoryImpl) GetRecentCreatedEvents(limit int) ([]Event, error) {
	rows, err := r.db.Query(`
		SELECT id, document_id, title, event_date, event_key, calendar_id, status, failure_reason, created_at
		FROM events
		WHERE status = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, StatusCreated, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetSyncedKeys returns the keys of every event successfully created on the
// given calendar. The upload handler passes this set to the pipeline so a
// re-uploaded document does not duplicate remote entries.
func (r *EventRepositoryImpl) GetSyncedKeys(calendarID string) (map[string]bool, error) {
	rows, err := r.db.Query(`
		SELECT event_key FROM events WHERE calendar_id = ? AND status = ?
	`, calendarID, StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to query synced keys: %w", err)
	}
	defer rows.Close()

	keys := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan synced key: %w", err)
		}
		keys[key] = true
	}

	return keys, rows.Err()
}

func (r *EventRepositoryImpl) GetEventStats() (created, failed, skipped int, err error) {
	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM events GROUP BY status`)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to query event stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return 0, 0, 0, fmt.Errorf("failed to scan event stats: %w", err)
		}
		switch status {
		case StatusCreated:
			created = count
		case StatusFailed:
			failed = count
		case StatusSkipped:
			skipped = count
		}
	}

	return created, failed, skipped, rows.Err()
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEvents(rows rowScanner) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var event Event
		err := rows.Scan(&event.ID, &event.DocumentID, &event.Title, &event.EventDate,
			&event.EventKey, &event.CalendarID, &event.Status, &event.FailureReason, &event.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
