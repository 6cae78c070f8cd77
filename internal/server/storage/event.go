package storage

import (
	"context"

	"github.com/iudanet/inkboard/internal/models"
)

//go:generate moq -out event_mock.go . EventStorage

// EventStorage defines interface for the append-only event log of documents.
// Events are keyed by (document, order); payloads are stored as is.
type EventStorage interface {
	// AppendEvents stores events in one transaction.
	// Events with an order already present in the log are skipped and counted as duplicates,
	// so retried deliveries are harmless.
	// Returns ErrDocumentNotFound if document doesn't exist, ErrInvalidOrder for order <= 0
	AppendEvents(ctx context.Context, documentID string, events []models.Event) (accepted, duplicates int, err error)

	// EventsAfter returns events with order > after in ascending order
	// Returns empty slice if no events found
	EventsAfter(ctx context.Context, documentID string, after int64) ([]models.Event, error)

	// LastEventOrder returns the highest stored order or 0
	LastEventOrder(ctx context.Context, documentID string) (int64, error)
}
