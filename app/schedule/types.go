package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ErrNoEvents is returned by the coordinator when extraction and
// normalization produce zero events. It is a client-data condition, not a
// server fault; callers check it with errors.Is before reporting.
var ErrNoEvents = errors.New("no deadline events found")

// InvalidDateError reports a date string that matches no supported format
// or denotes a non-existent calendar date.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("unrecognized date: %q", e.Value)
}

// Date is a timezone-agnostic calendar date. Deadlines are whole-day
// entries, so an instant (time.Time) is deliberately not used.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// String renders the date in ISO form (YYYY-MM-DD).
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// CandidateEvent is a freshly extracted title/date pair before date
// validation. It exists only within a single pipeline run.
type CandidateEvent struct {
	RawTitle   string
	RawDate    string
	SourceLine string
}

// Event is a candidate whose date normalized successfully.
type Event struct {
	Title string
	Date  Date
}

// Key identifies the logical deadline: two events with the same key denote
// the same real-world deadline regardless of title casing or spacing.
func (e Event) Key() string {
	return FoldTitle(e.Title) + "|" + e.Date.String()
}

// FoldTitle produces the canonical comparison form of a title: NFC
// normalized, case folded, inner whitespace collapsed. OCR output is prone
// to stray spacing and casing drift, so raw titles never compare directly.
func FoldTitle(title string) string {
	folded := cases.Fold().String(norm.NFC.String(title))
	return strings.Join(strings.Fields(folded), " ")
}

// SyncFailure records one event that could not be written to the calendar.
type SyncFailure struct {
	Event  Event
	Reason string
}

// SyncOutcome summarizes a single pipeline run. Every event that reached
// the synchronizer lands in exactly one of Created, Failed or Skipped.
type SyncOutcome struct {
	Created []Event
	Failed  []SyncFailure
	Skipped []Event

	// DroppedDates counts candidates discarded during normalization.
	DroppedDates int
}
