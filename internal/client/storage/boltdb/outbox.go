package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/inkboard/internal/client/storage"
	"github.com/iudanet/inkboard/internal/models"
)

// Внутри bucket outbox у каждого документа свой вложенный bucket.
// Ключ события - order в big-endian, поэтому курсор обходит события по порядку.

func orderKey(order int64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(order))
	return key
}

// SavePending stores events in the document outbox
func (s *Storage) SavePending(ctx context.Context, documentID string, events []models.Event) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(bucketOutbox)
		if root == nil {
			return fmt.Errorf("outbox bucket not found")
		}
		bucket, err := root.CreateBucketIfNotExists([]byte(documentID))
		if err != nil {
			return fmt.Errorf("failed to create document bucket: %w", err)
		}

		for _, ev := range events {
			data, err := json.Marshal(ev)
			if err != nil {
				return fmt.Errorf("failed to marshal event %d: %w", ev.Order, err)
			}
			if err := bucket.Put(orderKey(ev.Order), data); err != nil {
				return fmt.Errorf("failed to save event %d: %w", ev.Order, err)
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// Pending returns unacknowledged events sorted by order
func (s *Storage) Pending(ctx context.Context, documentID string) ([]models.Event, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var events []models.Event

	err := s.db.View(func(tx *bbolt.Tx) error {
		root := tx.Bucket(bucketOutbox)
		if root == nil {
			return fmt.Errorf("outbox bucket not found")
		}
		bucket := root.Bucket([]byte(documentID))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var ev models.Event
			if err := json.Unmarshal(v, &ev); err != nil {
				return fmt.Errorf("failed to unmarshal event: %w", err)
			}
			events = append(events, ev)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to read outbox: %w", err)
	}

	return events, nil
}

// Acknowledge removes events with order <= uptoOrder
func (s *Storage) Acknowledge(ctx context.Context, documentID string, uptoOrder int64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(bucketOutbox)
		if root == nil {
			return fmt.Errorf("outbox bucket not found")
		}
		bucket := root.Bucket([]byte(documentID))
		if bucket == nil {
			return nil
		}

		c := bucket.Cursor()
		for k, _ := c.First(); k != nil && int64(binary.BigEndian.Uint64(k)) <= uptoOrder; k, _ = c.First() {
			if err := c.Delete(); err != nil {
				return fmt.Errorf("failed to delete event: %w", err)
			}
		}

		if k, _ := c.First(); k == nil {
			return root.DeleteBucket([]byte(documentID))
		}
		return nil
	})
}
