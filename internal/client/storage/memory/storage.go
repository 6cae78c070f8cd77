// Package memory implements client storage in process memory.
// Used for offline sessions and in tests; nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iudanet/inkboard/internal/client/storage"
	"github.com/iudanet/inkboard/internal/models"
)

// Storage in-memory outbox and metadata
type Storage struct {
	outbox       map[string]map[int64]models.Event
	lastDocument string
	mu           sync.RWMutex
}

// New creates empty in-memory storage
func New() *Storage {
	return &Storage{outbox: make(map[string]map[int64]models.Event)}
}

// SavePending stores events keyed by their order
func (s *Storage) SavePending(ctx context.Context, documentID string, events []models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.outbox[documentID]
	if !ok {
		pending = make(map[int64]models.Event)
		s.outbox[documentID] = pending
	}
	for _, ev := range events {
		pending[ev.Order] = ev
	}
	return nil
}

// Pending returns unacknowledged events sorted by order
func (s *Storage) Pending(ctx context.Context, documentID string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pending := s.outbox[documentID]
	events := make([]models.Event, 0, len(pending))
	for _, ev := range pending {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Order < events[j].Order })
	return events, nil
}

// Acknowledge removes events with order <= uptoOrder
func (s *Storage) Acknowledge(ctx context.Context, documentID string, uptoOrder int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.outbox[documentID]
	for order := range pending {
		if order <= uptoOrder {
			delete(pending, order)
		}
	}
	if len(pending) == 0 {
		delete(s.outbox, documentID)
	}
	return nil
}

// SaveLastDocumentID remembers the document opened most recently
func (s *Storage) SaveLastDocumentID(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastDocument = documentID
	return nil
}

// GetLastDocumentID returns the document opened most recently
func (s *Storage) GetLastDocumentID(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lastDocument == "" {
		return "", storage.ErrNoDocument
	}
	return s.lastDocument, nil
}
