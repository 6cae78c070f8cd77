package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastDocumentID remembers the document opened most recently
	SaveLastDocumentID(ctx context.Context, documentID string) error

	// GetLastDocumentID returns the document opened most recently
	// Returns ErrNoDocument if nothing was opened yet
	GetLastDocumentID(ctx context.Context) (string, error)
}
