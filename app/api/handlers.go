package api

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vkarpenko/deadline-sync/app/cfg"
	"github.com/vkarpenko/deadline-sync/app/database"
	"github.com/vkarpenko/deadline-sync/app/schedule"
)

func NewHandler(recognizer Recognizer, planner Planner, pipeline Pipeline,
	docRepo database.DocumentRepository, eventRepo database.EventRepository) *Handler {
	return &Handler{
		recognizer: recognizer,
		planner:    planner,
		pipeline:   pipeline,
		docRepo:    docRepo,
		eventRepo:  eventRepo,
		generator:  NewFeedGenerator(),
	}
}

// Upload accepts a scanned document, recognizes its text and places the
// extracted deadlines on the calendar. The multipart form carries the image
// under "file" and an optional free-text topic list under "topics".
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	topics := c.PostForm("topics")

	dst := filepath.Join(cfg.Get().UploadDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		slog.Error("Failed to store upload", "file", file.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	defer os.Remove(dst)

	ctx := c.Request.Context()

	text, err := h.recognizer.Recognize(ctx, dst)
	if err != nil {
		slog.Error("Text recognition failed", "file", file.Filename, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "text recognition failed"})
		return
	}
	slog.Debug("Text recognized", "file", file.Filename, "length", len(text))

	if h.planner != nil {
		structured, err := h.planner.RestructureDeadlines(ctx, text)
		if err != nil {
			slog.Warn("Deadline restructuring failed, using raw text", "error", err)
		} else {
			text = structured
		}
	}

	skip, err := h.eventRepo.GetSyncedKeys(cfg.Get().CalendarID)
	if err != nil {
		slog.Warn("Failed to load synced keys, duplicate suppression disabled", "error", err)
		skip = nil
	}

	outcome, err := h.pipeline.Run(ctx, text, skip)
	if err != nil {
		if errors.Is(err, schedule.ErrNoEvents) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no deadline events detected"})
			return
		}
		slog.Error("Pipeline failed", "file", file.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process document"})
		return
	}

	response := UploadResponse{
		DocumentID:   h.recordOutcome(file.Filename, len(text), outcome),
		Created:      toEventInfos(outcome.Created),
		Failed:       toFailureInfos(outcome.Failed),
		Skipped:      toEventInfos(outcome.Skipped),
		DroppedDates: outcome.DroppedDates,
	}

	if h.planner != nil && topics != "" && len(outcome.Created) > 0 {
		if plan, err := h.planner.GenerateStudyPlan(ctx, topics, outcome.Created); err != nil {
			slog.Warn("Study plan generation failed", "error", err)
		} else {
			response.StudyPlan = plan
		}

		if problems, err := h.planner.GeneratePracticeProblems(ctx, topics); err != nil {
			slog.Warn("Practice problem generation failed", "error", err)
		} else {
			response.PracticeProblems = problems
		}
	}

	c.JSON(http.StatusOK, response)
}

// recordOutcome writes the run to the ledger. Ledger errors are logged and
// never fail the request; the calendar writes already happened.
func (h *Handler) recordOutcome(fileName string, textLength int, outcome *schedule.SyncOutcome) string {
	docID, err := h.docRepo.InsertDocument(database.Document{
		FileName:     fileName,
		TextLength:   textLength,
		DroppedCount: outcome.DroppedDates,
		CreatedCount: len(outcome.Created),
		FailedCount:  len(outcome.Failed),
		SkippedCount: len(outcome.Skipped),
	})
	if err != nil {
		slog.Error("Failed to record document", "file", fileName, "error", err)
		return ""
	}

	calendarID := cfg.Get().CalendarID
	record := func(event schedule.Event, status, reason string) {
		err := h.eventRepo.InsertEvent(database.Event{
			DocumentID:    docID,
			Title:         event.Title,
			EventDate:     event.Date.String(),
			EventKey:      event.Key(),
			CalendarID:    calendarID,
			Status:        status,
			FailureReason: reason,
		})
		if err != nil {
			slog.Error("Failed to record event", "title", event.Title, "error", err)
		}
	}

	for _, event := range outcome.Created {
		record(event, database.StatusCreated, "")
	}
	for _, failure := range outcome.Failed {
		record(failure.Event, database.StatusFailed, failure.Reason)
	}
	for _, event := range outcome.Skipped {
		record(event, database.StatusSkipped, "")
	}

	return docID
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   cfg.Get().Version,
	}

	if count, err := h.docRepo.GetDocumentCount(); err == nil {
		health["documents"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	created, failed, skipped, err := h.eventRepo.GetEventStats()
	if err != nil {
		slog.Error("Database error", "operation", "event_stats", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	documents, err := h.docRepo.GetDocumentCount()
	if err != nil {
		slog.Error("Database error", "operation", "document_count", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents":      documents,
		"events_created": created,
		"events_failed":  failed,
		"events_skipped": skipped,
	})
}

// GetDeadlinesFeed renders recently created deadlines as RSS 2.0 so the
// user can subscribe outside the calendar.
func (h *Handler) GetDeadlinesFeed(c *gin.Context) {
	events, err := h.eventRepo.GetRecentCreatedEvents(50)
	if err != nil {
		slog.Error("Database error", "operation", "recent_events", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(events)
	if err != nil {
		slog.Error("Feed generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

func (h *Handler) APIListDocuments(c *gin.Context) {
	docs, err := h.docRepo.GetRecentDocuments(100)
	if err != nil {
		slog.Error("Database error", "operation", "list_documents", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	list := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		list = append(list, gin.H{
			"id":          doc.ID,
			"file_name":   doc.FileName,
			"text_length": doc.TextLength,
			"dropped":     doc.DroppedCount,
			"created":     doc.CreatedCount,
			"failed":      doc.FailedCount,
			"skipped":     doc.SkippedCount,
			"created_at":  doc.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"documents": list})
}

func (h *Handler) APIGetDocument(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.docRepo.GetDocument(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_document", "document", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	events, err := h.eventRepo.GetEventsByDocument(id)
	if err != nil {
		slog.Error("Database error", "operation", "document_events", "document", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	eventList := make([]gin.H, 0, len(events))
	for _, event := range events {
		eventList = append(eventList, gin.H{
			"title":          event.Title,
			"date":           event.EventDate,
			"status":         event.Status,
			"failure_reason": event.FailureReason,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         doc.ID,
		"file_name":  doc.FileName,
		"created_at": doc.CreatedAt,
		"events":     eventList,
	})
}

func toEventInfos(events []schedule.Event) []EventInfo {
	infos := make([]EventInfo, 0, len(events))
	for _, event := range events {
		infos = append(infos, EventInfo{Title: event.Title, Date: event.Date.String()})
	}
	return infos
}

func toFailureInfos(failures []schedule.SyncFailure) []FailureInfo {
	infos := make([]FailureInfo, 0, len(failures))
	for _, failure := range failures {
		infos = append(infos, FailureInfo{
			Title:  failure.Event.Title,
			Date:   failure.Event.Date.String(),
			Reason: failure.Reason,
		})
	}
	return infos
}
