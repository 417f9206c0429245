package database

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func TestDocumentRepositoryRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)

	id, err := repo.InsertDocument(Document{
		FileName:     "syllabus.png",
		TextLength:   512,
		DroppedCount: 1,
		CreatedCount: 3,
	})
	if err != nil {
		t.Fatalf("Failed to insert document: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a document ID")
	}

	doc, err := repo.GetDocument(id)
	if err != nil {
		t.Fatalf("Failed to get document: %v", err)
	}
	if doc == nil {
		t.Fatal("Expected document, got nil")
	}
	if doc.FileName != "syllabus.png" {
		t.Errorf("Expected file name 'syllabus.png', got '%s'", doc.FileName)
	}
	if doc.CreatedCount != 3 {
		t.Errorf("Expected 3 created, got %d", doc.CreatedCount)
	}

	count, err := repo.GetDocumentCount()
	if err != nil {
		t.Fatalf("Failed to count documents: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 document, got %d", count)
	}
}

func TestGetDocumentMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)

	doc, err := repo.GetDocument("no-such-id")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if doc != nil {
		t.Errorf("Expected nil for missing document, got %+v", doc)
	}
}

func TestEventRepositoryRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	docRepo := NewDocumentRepository(db)
	eventRepo := NewEventRepository(db)

	docID, err := docRepo.InsertDocument(Document{FileName: "syllabus.png"})
	if err != nil {
		t.Fatal(err)
	}

	events := []Event{
		{DocumentID: docID, Title: "Essay", EventDate: "2025-03-05", EventKey: "essay|2025-03-05", CalendarID: "primary", Status: StatusCreated},
		{DocumentID: docID, Title: "Quiz", EventDate: "2025-03-06", EventKey: "quiz|2025-03-06", CalendarID: "primary", Status: StatusFailed, FailureReason: "quota exceeded"},
		{DocumentID: docID, Title: "Lab", EventDate: "2025-03-07", EventKey: "lab|2025-03-07", CalendarID: "primary", Status: StatusSkipped},
	}
	for _, event := range events {
		if err := eventRepo.InsertEvent(event); err != nil {
			t.Fatalf("Failed to insert event: %v", err)
		}
	}

	stored, err := eventRepo.GetEventsByDocument(docID)
	if err != nil {
		t.Fatalf("Failed to get events: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(stored))
	}

	created, failed, skipped, err := eventRepo.GetEventStats()
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if created != 1 || failed != 1 || skipped != 1 {
		t.Errorf("Expected stats 1/1/1, got %d/%d/%d", created, failed, skipped)
	}
}

func TestGetSyncedKeysOnlyCreated(t *testing.T) {
	db := setupTestDB(t)
	docRepo := NewDocumentRepository(db)
	eventRepo := NewEventRepository(db)

	docID, err := docRepo.InsertDocument(Document{FileName: "syllabus.png"})
	if err != nil {
		t.Fatal(err)
	}

	inserts := []Event{
		{DocumentID: docID, Title: "Essay", EventDate: "2025-03-05", EventKey: "essay|2025-03-05", CalendarID: "primary", Status: StatusCreated},
		{DocumentID: docID, Title: "Quiz", EventDate: "2025-03-06", EventKey: "quiz|2025-03-06", CalendarID: "primary", Status: StatusFailed},
		{DocumentID: docID, Title: "Lab", EventDate: "2025-03-07", EventKey: "lab|2025-03-07", CalendarID: "other", Status: StatusCreated},
	}
	for _, event := range inserts {
		if err := eventRepo.InsertEvent(event); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := eventRepo.GetSyncedKeys("primary")
	if err != nil {
		t.Fatalf("Failed to get synced keys: %v", err)
	}

	if len(keys) != 1 {
		t.Fatalf("Expected 1 key, got %d", len(keys))
	}
	if !keys["essay|2025-03-05"] {
		t.Error("Expected key 'essay|2025-03-05' to be present")
	}
}

func TestGetRecentCreatedEvents(t *testing.T) {
	db := setupTestDB(t)
	docRepo := NewDocumentRepository(db)
	eventRepo := NewEventRepository(db)

	docID, err := docRepo.InsertDocument(Document{FileName: "syllabus.png"})
	if err != nil {
		t.Fatal(err)
	}

	inserts := []Event{
		{DocumentID: docID, Title: "Essay", EventDate: "2025-03-05", EventKey: "essay|2025-03-05", CalendarID: "primary", Status: StatusCreated},
		{DocumentID: docID, Title: "Quiz", EventDate: "2025-03-06", EventKey: "quiz|2025-03-06", CalendarID: "primary", Status: StatusFailed},
	}
	for _, event := range inserts {
		if err := eventRepo.InsertEvent(event); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := eventRepo.GetRecentCreatedEvents(10)
	if err != nil {
		t.Fatalf("Failed to get recent events: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("Expected 1 created event, got %d", len(recent))
	}
	if recent[0].Title != "Essay" {
		t.Errorf("Expected 'Essay', got '%s'", recent[0].Title)
	}
}
