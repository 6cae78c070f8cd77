package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/server/storage"
)

var _ storage.DocumentStorage = (*Storage)(nil)

// CreateDocument stores a new document
func (s *Storage) CreateDocument(ctx context.Context, doc *models.DocumentInfo) error {
	query := `
		INSERT INTO documents (id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.Title,
		doc.CreatedAt.Unix(),
		doc.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

// GetDocument retrieves document by ID
// Returns ErrDocumentNotFound if document doesn't exist
func (s *Storage) GetDocument(ctx context.Context, id string) (*models.DocumentInfo, error) {
	query := `
		SELECT id, title, created_at, updated_at
		FROM documents
		WHERE id = ?
	`

	doc := &models.DocumentInfo{}
	var createdAt, updatedAt int64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Title,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc.CreatedAt = unixToTime(createdAt)
	doc.UpdatedAt = unixToTime(updatedAt)

	return doc, nil
}

// UpdateTitle changes document title
// Returns ErrDocumentNotFound if document doesn't exist
func (s *Storage) UpdateTitle(ctx context.Context, id, title string, updatedAt time.Time) error {
	query := `UPDATE documents SET title = ?, updated_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, title, updatedAt.Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrDocumentNotFound
	}

	return nil
}

// documentExists проверяет наличие документа внутри транзакции
func documentExists(ctx context.Context, tx *sql.Tx, id string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM documents WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrDocumentNotFound
		}
		return fmt.Errorf("failed to check document: %w", err)
	}
	return nil
}

func unixToTime(timestamp int64) time.Time {
	return time.Unix(timestamp, 0)
}
