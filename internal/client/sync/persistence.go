package sync

import (
	"context"

	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/pkg/api"
)

//go:generate moq -out persistence_mock.go . Persistence

// Persistence внешнее хранилище журнала документов.
// Реализация по HTTP находится в internal/client/api.
type Persistence interface {
	// CreateDocument создаёт пустой документ и возвращает его id
	CreateDocument(ctx context.Context, title string) (string, error)

	// LoadDocument возвращает последний снапшот (может быть nil) и события после него
	LoadDocument(ctx context.Context, documentID string) (*models.LoadedDocument, error)

	// AppendEvents дозаписывает пакет событий. Повторная доставка того же порядка допустима.
	AppendEvents(ctx context.Context, documentID string, events []models.Event) error

	// WriteSnapshot сохраняет снапшот документа
	WriteSnapshot(ctx context.Context, documentID string, snapshot models.Snapshot) error

	// UpdateDocumentMetadata меняет метаданные документа
	UpdateDocumentMetadata(ctx context.Context, documentID string, meta models.Metadata) error
}

//go:generate moq -out broadcaster_mock.go . Broadcaster

// Broadcaster пересылает события другим участникам документа.
// Доставка не гарантируется.
type Broadcaster interface {
	Publish(ctx context.Context, documentID string, msg api.PeerMessage) error
}
