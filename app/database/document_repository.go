package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ DocumentRepository = (*DocumentRepositoryImpl)(nil)

type DocumentRepositoryImpl struct {
	db *DB
}

func NewDocumentRepository(db *DB) *DocumentRepositoryImpl {
	return &DocumentRepositoryImpl{db: db}
}

func (r *DocumentRepositoryImpl) InsertDocument(doc Document) (string, error) {
	id := uuid.NewString()

	_, err := r.db.Exec(`
		INSERT INTO documents (id, file_name, text_length, dropped_count, created_count, failed_count, skipped_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, doc.FileName, doc.TextLength, doc.DroppedCount, doc.CreatedCount, doc.FailedCount, doc.SkippedCount, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

func (r *DocumentRepositoryImpl) GetDocument(id string) (*Document, error) {
	row := r.db.QueryRow(`
		SELECT id, file_name, text_length, dropped_count, created_count, failed_count, skipped_count, created_at
		FROM documents
		WHERE id = ?
	`, id)

	var doc Document
	err := row.Scan(&doc.ID, &doc.FileName, &doc.TextLength, &doc.DroppedCount,
		&doc.CreatedCount, &doc.FailedCount, &doc.SkippedCount, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return &doc, nil
}

func (r *DocumentRepositoryImpl) GetRecentDocuments(limit int) ([]Document, error) {
	rows, err := r.db.Query(`
		SELECT id, file_name, text_length, dropped_count, created_count, failed_count, skipped_count, created_at
		FROM documents
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		err := rows.Scan(&doc.ID, &doc.FileName, &doc.TextLength, &doc.DroppedCount,
			&doc.CreatedCount, &doc.FailedCount, &doc.SkippedCount, &doc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

func (r *DocumentRepositoryImpl) GetDocumentCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}
