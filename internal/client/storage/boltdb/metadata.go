package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/inkboard/internal/client/storage"
)

const (
	keyLastDocumentID = "last_document_id"
)

// SaveLastDocumentID remembers the document opened most recently
func (s *Storage) SaveLastDocumentID(ctx context.Context, documentID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(keyLastDocumentID), []byte(documentID)); err != nil {
			return fmt.Errorf("failed to save last document id: %w", err)
		}

		return nil
	})
}

// GetLastDocumentID returns the document opened most recently
// Returns storage.ErrNoDocument if nothing was opened yet
func (s *Storage) GetLastDocumentID(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var id string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		value := bucket.Get([]byte(keyLastDocumentID))
		if value == nil {
			return storage.ErrNoDocument
		}

		// Копируем: память bbolt действительна только внутри транзакции
		id = string(value)
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to get last document id: %w", err)
	}

	return id, nil
}
