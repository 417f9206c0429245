package database

import (
	"time"
)

// Event status values.
const (
	StatusCreated = "created"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Document is one processed upload.
type Document struct {
	ID           string
	FileName     string
	TextLength   int
	DroppedCount int
	CreatedCount int
	FailedCount  int
	SkippedCount int
	CreatedAt    time.Time
}

// Event is one calendar write attempt recorded in the ledger. EventKey is
// the folded title+date identity used to suppress duplicate remote entries
// across runs.
type Event struct {
	ID            string
	DocumentID    string
	Title         string
	EventDate     string // ISO YYYY-MM-DD
	EventKey      string
	CalendarID    string
	Status        string
	FailureReason string
	CreatedAt     time.Time
}
