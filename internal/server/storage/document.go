package storage

import (
	"context"
	"time"

	"github.com/iudanet/inkboard/internal/models"
)

//go:generate moq -out document_mock.go . DocumentStorage

// DocumentStorage defines interface for document metadata persistence
type DocumentStorage interface {
	// CreateDocument stores a new document
	CreateDocument(ctx context.Context, doc *models.DocumentInfo) error

	// GetDocument retrieves document by ID
	// Returns ErrDocumentNotFound if document doesn't exist
	GetDocument(ctx context.Context, id string) (*models.DocumentInfo, error)

	// UpdateTitle changes document title
	// Returns ErrDocumentNotFound if document doesn't exist
	UpdateTitle(ctx context.Context, id, title string, updatedAt time.Time) error
}
