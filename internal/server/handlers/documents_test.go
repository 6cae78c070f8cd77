package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/inkboard/internal/crypto"
	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/server/broadcast"
	"github.com/iudanet/inkboard/internal/server/storage"
	"github.com/iudanet/inkboard/internal/server/storage/sqlite"
	"github.com/iudanet/inkboard/pkg/api"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors in tests
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

type testServer struct {
	router http.Handler
	store  *sqlite.Storage
	hub    *broadcast.Hub
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := setupTestLogger()
	hub := broadcast.NewHub(logger)
	t.Cleanup(hub.Close)

	docs := NewDocumentHandler(logger, store, store, store)
	live := NewLiveHandler(logger, hub, store)
	health := NewHealthHandler(logger, store, "test")

	return &testServer{
		router: NewRouter(logger, docs, live, health),
		store:  store,
		hub:    hub,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createDocument(t *testing.T, title string) api.DocumentResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/documents", api.CreateDocumentRequest{Title: title})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var doc api.DocumentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
	return doc
}

func wireEvent(t *testing.T, ev models.Event) api.Event {
	t.Helper()
	return api.Event{EventType: string(ev.Type), EventData: ev.Payload, EventOrder: ev.Order}
}

func addWireEvent(t *testing.T, order int64, id string) api.Event {
	t.Helper()
	ev, err := models.NewAddElementEvent(models.Element{
		ID:    id,
		Style: models.Style{StrokeColor: "#1e1e1e", StrokeWidth: 2, Opacity: 100},
		Shape: models.Rect{Box: models.Box{X: 10, Y: 10, Width: 50, Height: 50}},
	})
	require.NoError(t, err)
	return wireEvent(t, ev.WithOrder(order))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestDocumentHandler_Create(t *testing.T) {
	srv := setupTestServer(t)

	tests := []struct {
		body     any
		name     string
		wantCode int
	}{
		{name: "valid title", body: api.CreateDocumentRequest{Title: "Sprint board"}, wantCode: http.StatusCreated},
		{name: "empty title", body: api.CreateDocumentRequest{Title: "  "}, wantCode: http.StatusBadRequest},
		{name: "too long title", body: api.CreateDocumentRequest{Title: strings.Repeat("a", 121)}, wantCode: http.StatusBadRequest},
		{name: "invalid json", body: "{", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, "/api/v1/documents", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode != http.StatusCreated {
				assert.NotEmpty(t, decodeError(t, w).Error)
				return
			}

			var doc api.DocumentResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
			assert.NotEmpty(t, doc.ID)
			assert.Equal(t, "Sprint board", doc.Title)
			assert.False(t, doc.CreatedAt.IsZero())
		})
	}
}

func TestDocumentHandler_Load(t *testing.T) {
	srv := setupTestServer(t)
	doc := srv.createDocument(t, "Plan")
	base := "/api/v1/documents/" + doc.ID

	// без снапшота возвращается весь журнал
	w := srv.do(t, http.MethodPost, base+"/events", api.AppendEventsRequest{Events: []api.Event{
		addWireEvent(t, 1, "A"),
		addWireEvent(t, 2, "B"),
		wireEvent(t, models.NewChangeBackgroundEvent("#000000").WithOrder(3)),
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loaded api.LoadDocumentResponse
	w = srv.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&loaded))
	assert.Equal(t, "Plan", loaded.Document.Title)
	assert.Nil(t, loaded.Snapshot)
	require.Len(t, loaded.Events, 3)
	assert.Equal(t, int64(1), loaded.Events[0].EventOrder)

	// со снапшотом возвращаются только более поздние события
	elements := json.RawMessage(`[{"id":"A"},{"id":"B"}]`)
	w = srv.do(t, http.MethodPost, base+"/snapshots", api.Snapshot{
		Elements:        elements,
		BackgroundColor: "#000000",
		Checksum:        crypto.Checksum(elements),
		LastEventOrder:  2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	loaded = api.LoadDocumentResponse{}
	w = srv.do(t, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&loaded))
	require.NotNil(t, loaded.Snapshot)
	assert.Equal(t, int64(2), loaded.Snapshot.LastEventOrder)
	assert.JSONEq(t, string(elements), string(loaded.Snapshot.Elements))
	require.NoError(t, crypto.VerifyChecksum(loaded.Snapshot.Elements, loaded.Snapshot.Checksum))
	require.Len(t, loaded.Events, 1)
	assert.Equal(t, int64(3), loaded.Events[0].EventOrder)
	assert.Equal(t, "CHANGE_BACKGROUND", loaded.Events[0].EventType)
}

func TestDocumentHandler_Load_NotFound(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.do(t, http.MethodGet, "/api/v1/documents/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decodeError(t, w).Error)
}

func TestDocumentHandler_Load_StorageErrors(t *testing.T) {
	doc := &models.DocumentInfo{ID: "doc-1", Title: "x"}
	documents := &storage.DocumentStorageMock{
		GetDocumentFunc: func(ctx context.Context, id string) (*models.DocumentInfo, error) {
			return doc, nil
		},
	}

	tests := []struct {
		snapshots *storage.SnapshotStorageMock
		events    *storage.EventStorageMock
		name      string
	}{
		{
			name: "snapshot storage fails",
			snapshots: &storage.SnapshotStorageMock{
				LatestSnapshotFunc: func(ctx context.Context, documentID string) (*storage.Snapshot, error) {
					return nil, errors.New("db is locked")
				},
			},
			events: &storage.EventStorageMock{},
		},
		{
			name: "event storage fails",
			snapshots: &storage.SnapshotStorageMock{
				LatestSnapshotFunc: func(ctx context.Context, documentID string) (*storage.Snapshot, error) {
					return nil, storage.ErrSnapshotNotFound
				},
			},
			events: &storage.EventStorageMock{
				EventsAfterFunc: func(ctx context.Context, documentID string, after int64) ([]models.Event, error) {
					return nil, errors.New("db is locked")
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := setupTestLogger()
			hub := broadcast.NewHub(logger)
			defer hub.Close()
			router := NewRouter(logger,
				NewDocumentHandler(logger, documents, tt.events, tt.snapshots),
				NewLiveHandler(logger, hub, documents),
				NewHealthHandler(logger, nil, "test"))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/documents/doc-1", nil))
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "internal_error", decodeError(t, w).Error)
		})
	}
}

func TestDocumentHandler_Update(t *testing.T) {
	srv := setupTestServer(t)
	doc := srv.createDocument(t, "Draft")

	title := "Final"
	w := srv.do(t, http.MethodPatch, "/api/v1/documents/"+doc.ID, api.UpdateDocumentRequest{Title: &title})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated api.DocumentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, "Final", updated.Title)

	empty := ""
	w = srv.do(t, http.MethodPatch, "/api/v1/documents/"+doc.ID, api.UpdateDocumentRequest{Title: &empty})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPatch, "/api/v1/documents/missing", api.UpdateDocumentRequest{Title: &title})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentHandler_AppendEvents(t *testing.T) {
	srv := setupTestServer(t)
	doc := srv.createDocument(t, "Events")
	path := "/api/v1/documents/" + doc.ID + "/events"

	w := srv.do(t, http.MethodPost, path, api.AppendEventsRequest{Events: []api.Event{
		addWireEvent(t, 1, "A"),
		addWireEvent(t, 2, "B"),
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.AppendEventsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, api.AppendEventsResponse{Accepted: 2}, resp)

	// повторная доставка после таймаута клиента
	w = srv.do(t, http.MethodPost, path, api.AppendEventsRequest{Events: []api.Event{
		addWireEvent(t, 2, "B"),
		wireEvent(t, models.NewClearCanvasEvent().WithOrder(3)),
	}})
	require.Equal(t, http.StatusOK, w.Code)
	resp = api.AppendEventsResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, api.AppendEventsResponse{Accepted: 1, Duplicates: 1}, resp)

	events, err := srv.store.EventsAfter(context.Background(), doc.ID, 0)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestDocumentHandler_AppendEvents_Invalid(t *testing.T) {
	srv := setupTestServer(t)
	doc := srv.createDocument(t, "Events")
	path := "/api/v1/documents/" + doc.ID + "/events"

	tests := []struct {
		name     string
		path     string
		events   []api.Event
		wantCode int
	}{
		{
			name:     "unknown event type",
			path:     path,
			events:   []api.Event{{EventType: "ROTATE_ELEMENT", EventData: json.RawMessage(`{}`), EventOrder: 1}},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "zero order",
			path:     path,
			events:   []api.Event{addWireEvent(t, 0, "A")},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing document",
			path:     "/api/v1/documents/missing/events",
			events:   []api.Event{addWireEvent(t, 1, "A")},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, tt.path, api.AppendEventsRequest{Events: tt.events})
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}

	last, err := srv.store.LastEventOrder(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), last)
}

func TestDocumentHandler_SaveSnapshot(t *testing.T) {
	srv := setupTestServer(t)
	doc := srv.createDocument(t, "Snapshots")
	path := "/api/v1/documents/" + doc.ID + "/snapshots"
	elements := json.RawMessage(`[]`)

	tests := []struct {
		body     api.Snapshot
		name     string
		path     string
		wantCode int
	}{
		{
			name:     "valid",
			path:     path,
			body:     api.Snapshot{Elements: elements, Checksum: crypto.Checksum(elements), LastEventOrder: 50},
			wantCode: http.StatusCreated,
		},
		{
			name:     "checksum mismatch",
			path:     path,
			body:     api.Snapshot{Elements: elements, Checksum: crypto.Checksum([]byte("x")), LastEventOrder: 50},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing elements",
			path:     path,
			body:     api.Snapshot{LastEventOrder: 50},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "negative order",
			path:     path,
			body:     api.Snapshot{Elements: elements, Checksum: crypto.Checksum(elements), LastEventOrder: -1},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing document",
			path:     "/api/v1/documents/missing/snapshots",
			body:     api.Snapshot{Elements: elements, Checksum: crypto.Checksum(elements), LastEventOrder: 50},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
		})
	}

	snap, err := srv.store.LatestSnapshot(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), snap.LastEventOrder)
	assert.WithinDuration(t, time.Now(), snap.CreatedAt, time.Minute)
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.do(t, http.MethodGet, "/api/v1/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
