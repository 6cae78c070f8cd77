package storage

import (
	"context"

	"github.com/iudanet/inkboard/internal/models"
)

//go:generate moq -out outbox_mock.go . Outbox

// Outbox defines local storage for events which were produced but not yet
// acknowledged by the persistence backend. Events survive client restarts
// and are resent on the next load of the document.
type Outbox interface {
	// SavePending stores events with assigned orders (existing orders are overwritten)
	SavePending(ctx context.Context, documentID string, events []models.Event) error

	// Pending returns unacknowledged events of the document sorted by order
	Pending(ctx context.Context, documentID string) ([]models.Event, error)

	// Acknowledge removes events with order <= uptoOrder
	Acknowledge(ctx context.Context, documentID string, uptoOrder int64) error
}
