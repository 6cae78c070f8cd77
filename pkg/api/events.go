package api

import "encoding/json"

// Event событие журнала в wire-формате
type Event struct {
	EventType  string          `json:"eventType"`
	EventData  json.RawMessage `json:"eventData"`
	EventOrder int64           `json:"eventOrder"`
}

// AppendEventsRequest пакет событий для дозаписи в журнал
type AppendEventsRequest struct {
	Events []Event `json:"events"`
}

// AppendEventsResponse результат дозаписи
type AppendEventsResponse struct {
	Accepted   int `json:"accepted"`   // Accepted количество новых событий
	Duplicates int `json:"duplicates"` // Duplicates события с уже занятым порядком (повторная доставка)
}

// PeerMessage событие, пересылаемое другим участникам документа в реальном времени.
// Порядок не передаётся: у каждого клиента своя нумерация.
type PeerMessage struct {
	EventType string          `json:"eventType"`
	EventData json.RawMessage `json:"eventData"`
	SenderID  string          `json:"senderId,omitempty"`
}

// ErrorResponse ответ сервера с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
