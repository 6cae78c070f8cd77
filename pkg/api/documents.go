// Package api содержит DTO HTTP API сервера документов.
package api

import (
	"encoding/json"
	"time"
)

// CreateDocumentRequest запрос на создание документа
type CreateDocumentRequest struct {
	Title string `json:"title"`
}

// UpdateDocumentRequest частичное обновление метаданных документа
type UpdateDocumentRequest struct {
	Title *string `json:"title,omitempty"`
}

// DocumentResponse метаданные документа
type DocumentResponse struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
}

// Snapshot материализованное состояние документа.
// Elements передаются как есть, сервер их не интерпретирует.
type Snapshot struct {
	CreatedAt       time.Time       `json:"createdAt,omitzero"`
	Elements        json.RawMessage `json:"elements"`
	BackgroundColor string          `json:"backgroundColor"`
	Checksum        string          `json:"checksum,omitempty"` // Checksum hex BLAKE2b-256 от Elements
	LastEventOrder  int64           `json:"lastEventOrder"`
}

// LoadDocumentResponse ответ на загрузку документа:
// последний снапшот (может отсутствовать) и события после него по возрастанию порядка.
type LoadDocumentResponse struct {
	Snapshot *Snapshot        `json:"snapshot"`
	Events   []Event          `json:"events"`
	Document DocumentResponse `json:"document"`
}
