package schedule

import (
	"context"
	"log/slog"
)

// EventWriter inserts a single whole-day entry into an external calendar.
// Implementations own their transport timeouts and retry policy; the
// synchronizer retries nothing itself.
type EventWriter interface {
	InsertAllDayEvent(ctx context.Context, title string, date Date) error
}

// Synchronizer applies validated events to a calendar with per-item
// isolation: a failed insert is recorded and the batch continues. A user
// who uploaded ten deadlines should get nine on their calendar rather
// than zero.
type Synchronizer struct {
	writer EventWriter
}

func NewSynchronizer(writer EventWriter) *Synchronizer {
	return &Synchronizer{writer: writer}
}

// Run issues one insert per event, sequentially, preserving input order in
// the outcome. Events whose key appears in skip were created by an earlier
// run and are not re-inserted; the provider has no upsert-by-key.
func (s *Synchronizer) Run(ctx context.Context, events []Event, skip map[string]bool) SyncOutcome {
	var outcome SyncOutcome

	for _, event := range events {
		if skip != nil && skip[event.Key()] {
			slog.Debug("Event already on calendar, skipping", "title", event.Title, "date", event.Date.String())
			outcome.Skipped = append(outcome.Skipped, event)
			continue
		}

		if err := s.writer.InsertAllDayEvent(ctx, event.Title, event.Date); err != nil {
			slog.Error("Calendar insert failed", "title", event.Title, "date", event.Date.String(), "error", err)
			outcome.Failed = append(outcome.Failed, SyncFailure{Event: event, Reason: err.Error()})
			continue
		}

		slog.Debug("Event created", "title", event.Title, "date", event.Date.String())
		outcome.Created = append(outcome.Created, event)
	}

	return outcome
}
