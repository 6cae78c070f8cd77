package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/inkboard/pkg/api"
)

// Коды ошибок в ErrorResponse.Error
const (
	errCodeInvalidRequest = "invalid_request"
	errCodeInvalidEvent   = "invalid_event"
	errCodeInvalidSnap    = "invalid_snapshot"
	errCodeNotFound       = "not_found"
	errCodeInternal       = "internal_error"
	errCodeUnavailable    = "unavailable"
)

func writeJSON(logger *slog.Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(logger *slog.Logger, w http.ResponseWriter, status int, code, message string) {
	writeJSON(logger, w, status, api.ErrorResponse{Error: code, Message: message})
}
