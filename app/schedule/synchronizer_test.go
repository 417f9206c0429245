package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// stubWriter records inserts and fails on configured titles.
type stubWriter struct {
	inserted []string
	failOn   map[string]error
}

func (w *stubWriter) InsertAllDayEvent(_ context.Context, title string, date Date) error {
	if err, ok := w.failOn[title]; ok {
		return err
	}
	w.inserted = append(w.inserted, fmt.Sprintf("%s|%s", title, date.String()))
	return nil
}

func TestSynchronizerAllSucceed(t *testing.T) {
	writer := &stubWriter{}
	synchronizer := NewSynchronizer(writer)

	date := Date{Year: 2025, Month: time.March, Day: 5}
	events := []Event{
		{Title: "Essay", Date: date},
		{Title: "Quiz", Date: date},
	}

	outcome := synchronizer.Run(context.Background(), events, nil)

	if len(outcome.Created) != 2 {
		t.Errorf("Expected 2 created, got %d", len(outcome.Created))
	}
	if len(outcome.Failed) != 0 {
		t.Errorf("Expected 0 failed, got %d", len(outcome.Failed))
	}
	if len(writer.inserted) != 2 {
		t.Errorf("Expected 2 inserts, got %d", len(writer.inserted))
	}
}

func TestSynchronizerPartialFailure(t *testing.T) {
	writer := &stubWriter{
		failOn: map[string]error{"Quiz": fmt.Errorf("quota exceeded")},
	}
	synchronizer := NewSynchronizer(writer)

	date := Date{Year: 2025, Month: time.March, Day: 5}
	events := []Event{
		{Title: "Essay", Date: date},
		{Title: "Quiz", Date: date},
		{Title: "Lab", Date: date},
	}

	outcome := synchronizer.Run(context.Background(), events, nil)

	if len(outcome.Created) != 2 {
		t.Fatalf("Expected 2 created, got %d", len(outcome.Created))
	}
	if outcome.Created[0].Title != "Essay" || outcome.Created[1].Title != "Lab" {
		t.Errorf("Expected events 1 and 3 created, got %v", outcome.Created)
	}

	if len(outcome.Failed) != 1 {
		t.Fatalf("Expected 1 failed, got %d", len(outcome.Failed))
	}
	if outcome.Failed[0].Event.Title != "Quiz" {
		t.Errorf("Expected 'Quiz' to fail, got '%s'", outcome.Failed[0].Event.Title)
	}
	if outcome.Failed[0].Reason != "quota exceeded" {
		t.Errorf("Expected failure reason 'quota exceeded', got '%s'", outcome.Failed[0].Reason)
	}
}

func TestSynchronizerOneOutcomePerEvent(t *testing.T) {
	writer := &stubWriter{
		failOn: map[string]error{"Essay": fmt.Errorf("network error")},
	}
	synchronizer := NewSynchronizer(writer)

	date := Date{Year: 2025, Month: time.March, Day: 5}
	events := []Event{
		{Title: "Essay", Date: date},
		{Title: "Quiz", Date: date},
	}

	outcome := synchronizer.Run(context.Background(), events, nil)

	total := len(outcome.Created) + len(outcome.Failed) + len(outcome.Skipped)
	if total != len(events) {
		t.Errorf("Expected exactly one outcome per event, got %d for %d events", total, len(events))
	}
}

func TestSynchronizerSkipSet(t *testing.T) {
	writer := &stubWriter{}
	synchronizer := NewSynchronizer(writer)

	date := Date{Year: 2025, Month: time.March, Day: 5}
	events := []Event{
		{Title: "Essay", Date: date},
		{Title: "Quiz", Date: date},
	}
	skip := map[string]bool{events[0].Key(): true}

	outcome := synchronizer.Run(context.Background(), events, skip)

	if len(outcome.Skipped) != 1 || outcome.Skipped[0].Title != "Essay" {
		t.Errorf("Expected 'Essay' skipped, got %v", outcome.Skipped)
	}
	if len(outcome.Created) != 1 || outcome.Created[0].Title != "Quiz" {
		t.Errorf("Expected 'Quiz' created, got %v", outcome.Created)
	}
	if len(writer.inserted) != 1 {
		t.Errorf("Expected 1 insert, got %d", len(writer.inserted))
	}
}

func TestSynchronizerEmptyInput(t *testing.T) {
	writer := &stubWriter{}
	synchronizer := NewSynchronizer(writer)

	outcome := synchronizer.Run(context.Background(), nil, nil)

	if len(outcome.Created) != 0 || len(outcome.Failed) != 0 {
		t.Errorf("Expected empty outcome, got %+v", outcome)
	}
	if len(writer.inserted) != 0 {
		t.Errorf("Expected no inserts, got %d", len(writer.inserted))
	}
}
