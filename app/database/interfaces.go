package database

type DocumentRepository interface {
	InsertDocument(doc Document) (string, error)
	GetDocument(id string) (*Document, error)
	GetRecentDocuments(limit int) ([]Document, error)
	GetDocumentCount() (int, error)
}

type EventRepository interface {
	InsertEvent(event Event) error
	GetEventsByDocument(documentID string) ([]Event, error)
	GetRecentCreatedEvents(limit int) ([]Event, error)
	GetSyncedKeys(calendarID string) (map[string]bool, error)
	GetEventStats() (created, failed, skipped int, err error)
}
