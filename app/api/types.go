package api

import (
	"context"

	"github.com/vkarpenko/deadline-sync/app/database"
	"github.com/vkarpenko/deadline-sync/app/ocr"
	"github.com/vkarpenko/deadline-sync/app/planner"
	"github.com/vkarpenko/deadline-sync/app/schedule"
)

// Recognizer produces raw text from a scanned document image. Failure is
// fatal to the run; there is nothing to extract without text.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

var _ Recognizer = (*ocr.Client)(nil)

// Planner drafts study artifacts and the optional pre-extraction rewrite.
type Planner interface {
	RestructureDeadlines(ctx context.Context, text string) (string, error)
	GenerateStudyPlan(ctx context.Context, topics string, events []schedule.Event) (string, error)
	GeneratePracticeProblems(ctx context.Context, topics string) (string, error)
}

var _ Planner = (*planner.Planner)(nil)

// Pipeline is the extraction-and-synchronization core.
type Pipeline interface {
	Run(ctx context.Context, text string, skip map[string]bool) (*schedule.SyncOutcome, error)
}

var _ Pipeline = (*schedule.Coordinator)(nil)

type Handler struct {
	recognizer Recognizer
	planner    Planner // nil when no OpenAI key is configured
	pipeline   Pipeline
	docRepo    database.DocumentRepository
	eventRepo  database.EventRepository
	generator  *FeedGenerator
}

// Response types for the upload endpoint.

type EventInfo struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type FailureInfo struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type UploadResponse struct {
	DocumentID       string        `json:"document_id,omitempty"`
	Created          []EventInfo   `json:"created"`
	Failed           []FailureInfo `json:"failed"`
	Skipped          []EventInfo   `json:"skipped"`
	DroppedDates     int           `json:"dropped_dates"`
	StudyPlan        string        `json:"study_plan,omitempty"`
	PracticeProblems string        `json:"practice_problems,omitempty"`
}
