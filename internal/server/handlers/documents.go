package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/server/storage"
	"github.com/iudanet/inkboard/internal/validation"
	"github.com/iudanet/inkboard/pkg/api"
)

// maxBodySize ограничение размера тела запроса
const maxBodySize = 8 << 20

// DocumentHandler обслуживает документы, журнал событий и снапшоты
type DocumentHandler struct {
	logger    *slog.Logger
	documents storage.DocumentStorage
	events    storage.EventStorage
	snapshots storage.SnapshotStorage
	newID     func() string
	now       func() time.Time
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	logger *slog.Logger,
	documents storage.DocumentStorage,
	events storage.EventStorage,
	snapshots storage.SnapshotStorage,
) *DocumentHandler {
	return &DocumentHandler{
		logger:    logger,
		documents: documents,
		events:    events,
		snapshots: snapshots,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// Create обрабатывает POST /api/v1/documents
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.CreateDocumentRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := validation.ValidateTitle(req.Title); err != nil {
		writeError(h.logger, w, http.StatusBadRequest, errCodeInvalidRequest, err.Error())
		return
	}

	now := h.now().UTC()
	doc := &models.DocumentInfo{
		ID:        h.newID(),
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.documents.CreateDocument(r.Context(), doc); err != nil {
		h.logger.Error("Failed to create document", "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, errCodeInternal, "failed to create document")
		return
	}

	h.logger.Info("Document created", "document_id", doc.ID)
	writeJSON(h.logger, w, http.StatusCreated, documentResponse(doc))
}

// Load обрабатывает GET /api/v1/documents/{id}
// Возвращает последний валидный снапшот и события после него
func (h *DocumentHandler) Load(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	doc, ok := h.lookup(w, r, id)
	if !ok {
		return
	}

	resp := api.LoadDocumentResponse{Document: documentResponse(doc)}

	var after int64
	snap, err := h.snapshots.LatestSnapshot(ctx, id)
	switch {
	case err == nil:
		after = snap.LastEventOrder
		resp.Snapshot = &api.Snapshot{
			CreatedAt:       snap.CreatedAt,
			Elements:        snap.Elements,
			BackgroundColor: snap.BackgroundColor,
			Checksum:        snap.Checksum,
			LastEventOrder:  snap.LastEventOrder,
		}
	case errors.Is(err, storage.ErrSnapshotNotFound):
	default:
		h.logger.Error("Failed to load snapshot", "document_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, errCodeInternal, "failed to load snapshot")
		return
	}

	events, err := h.events.EventsAfter(ctx, id, after)
	if err != nil {
		h.logger.Error("Failed to load events", "document_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, errCodeInternal, "failed to load events")
		return
	}

	resp.Events = make([]api.Event, 0, len(events))
	for _, ev := range events {
		resp.Events = append(resp.Events, api.Event{
			EventType:  string(ev.Type),
			EventData:  ev.Payload,
			EventOrder: ev.Order,
		})
	}

	h.logger.Debug("Document loaded",
		"document_id", id,
		"snapshot_order", after,
		"events_count", len(resp.Events))
	writeJSON(h.logger, w, http.StatusOK, resp)
}

// Update обрабатывает PATCH /api/v1/documents/{id}
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var req api.UpdateDocumentRequest
	if !h.decode(w, r, &req) {
		return
	}

	if req.Title != nil {
		if err := validation.ValidateTitle(*req.Title); err != nil {
			writeError(h.logger, w, http.StatusBadRequest, errCodeInvalidRequest, err.Error())
			return
		}
		err := h.documents.UpdateTitle(ctx, id, *req.Title, h.now().UTC())
		if errors.Is(err, storage.ErrDocumentNotFound) {
			writeError(h.logger, w, http.StatusNotFound, errCodeNotFound, "document not found")
			return
		}
		if err != nil {
			h.logger.Error("Failed to update title", "document_id", id, "error", err)
			writeError(h.logger, w, http.StatusInternalServerError, errCodeInternal, "failed to update document")
			return
		}
	}

	doc, ok := h.lookup(w, r, id)
	if !ok {
		return
	}
	writeJSON(h.logger, w, http.StatusOK, documentResponse(doc))
}

// AppendEvents обрабатывает POST /api/v1/documents/{id}/events
// Повторно доставленные события (тот же порядок) не считаются ошибкой
func (h *DocumentHandler) AppendEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var req api.AppendEventsRequest
	if !h.decode(w, r, &req) {
		return
	}

	events := make([]models.Event, 0, len(req.Events))
	for _, e := range req.Events {
		ev := models.Event{
			Type:    models.EventType(e.EventType),
			Payload: e.EventData,
			Order:   e.EventOrder,
		}
		if !ev.Type.Known() {
			writeError(h.logger, w, http.StatusBadRequest, errCodeInvalidEvent, "unknown event type "+e.EventType)
			return
		}
		if ev.Order <= 0 {
			writeError(h.logger, w, http.StatusBadRequest, errCodeInvalidEvent, "event order must be positive")
			return
		}
		if len(ev.Payload) == 0 {
			ev.Payload = json.RawMessage(`{}`)
		}
		events = append(events, ev)
	}

	accepted, duplicates, err := h.events.AppendEvents(ctx, id, events)
	switch {
	case errors.Is(err, storage.ErrDocumentNotFound):
		writeError(h.logger, w, http.StatusNotFound, errCodeNotFound, "document not found")
		return
	case errors.Is(err, storage.ErrInvalidOrder):
		writeError(h.logger, w, http.StatusBadRequest, errCodeInvalidEvent, err.Error())
		return
	case err != nil:
		h.logger.Error("Failed to append events", "document_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, errCodeInternal, "failed to append events")
		return
	}

	if duplicates > 0 {
		h.logger.Debug("Duplicate events skipped", "document_id", id, "duplicates", duplicates)
	}
	h.logger.Info("Events appended", "document_id", id, "accepted", accepted)

	writeJSON(h.logger, w, http.StatusOK, api.AppendEventsResponse{Accepted: accepted, Duplicates: duplicates})
}

// SaveSnapshot обрабатывает POST /api/v1/documents/{id}/snapshots
func (h *DocumentHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var req api.Snapshot
	if !h.decode(w, r, &req) {
		return
	}

	if req.LastEventOrder < 0 {
		writeError(h.logger, w, http.StatusBadRequest, errCodeInvalidSnap, "lastEventOrder must not be negative")
		return
	}
	if len(req.Elements) == 0 {
		writeError(h.logger, w, http.StatusBadRequest, errCodeInvalidSnap, "elements are required")
		return
	}

	createdAt := req.CreatedAt
	if createdAt.IsZero() {
		createdAt = h.now().UTC()
	}

	err := h.snapshots.SaveSnapshot(ctx, id, &storage.Snapshot{
		CreatedAt:       createdAt,
		BackgroundColor: req.BackgroundColor,
		Checksum:        req.Checksum,
		Elements:        req.Elements,
		LastEventOrder:  req.LastEventOrder,
	})
	switch {
	case errors.Is(err, storage.ErrDocumentNotFound):
		writeError(h.logger, w, http.StatusNotFound, errCodeNotFound, "document not found")
		return
	case errors.Is(err, storage.ErrChecksumMismatch):
		h.logger.Warn("Snapshot rejected", "document_id", id, "error", err)
		writeError(h.logger, w, http.StatusBadRequest, errCodeInvalidSnap, "snapshot checksum mismatch")
		return
	case err != nil:
		h.logger.Error("Failed to save snapshot", "document_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, errCodeInternal, "failed to save snapshot")
		return
	}

	h.logger.Info("Snapshot saved", "document_id", id, "last_event_order", req.LastEventOrder)
	w.WriteHeader(http.StatusCreated)
}

// lookup загружает документ и пишет 404/500 при ошибке
func (h *DocumentHandler) lookup(w http.ResponseWriter, r *http.Request, id string) (*models.DocumentInfo, bool) {
	doc, err := h.documents.GetDocument(r.Context(), id)
	if errors.Is(err, storage.ErrDocumentNotFound) {
		writeError(h.logger, w, http.StatusNotFound, errCodeNotFound, "document not found")
		return nil, false
	}
	if err != nil {
		h.logger.Error("Failed to get document", "document_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, errCodeInternal, "failed to get document")
		return nil, false
	}
	return doc, true
}

func (h *DocumentHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.Warn("Failed to decode request", "path", r.URL.Path, "error", err)
		writeError(h.logger, w, http.StatusBadRequest, errCodeInvalidRequest, "invalid request body")
		return false
	}
	return true
}

func documentResponse(doc *models.DocumentInfo) api.DocumentResponse {
	return api.DocumentResponse{
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		ID:        doc.ID,
		Title:     doc.Title,
	}
}
