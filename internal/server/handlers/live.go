package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/server/broadcast"
	"github.com/iudanet/inkboard/internal/server/storage"
	"github.com/iudanet/inkboard/pkg/api"
)

const (
	liveWriteTimeout = 10 * time.Second
	livePongTimeout  = 60 * time.Second
	livePingPeriod   = livePongTimeout * 9 / 10
	liveMaxMessage   = 1 << 20
)

// LiveHandler пересылает события между участниками документа через WebSocket
type LiveHandler struct {
	logger    *slog.Logger
	hub       *broadcast.Hub
	documents storage.DocumentStorage
	upgrader  websocket.Upgrader
}

// NewLiveHandler creates a new live handler
func NewLiveHandler(logger *slog.Logger, hub *broadcast.Hub, documents storage.DocumentStorage) *LiveHandler {
	return &LiveHandler{
		logger:    logger,
		hub:       hub,
		documents: documents,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Live обрабатывает GET /api/v1/documents/{id}/live
func (h *LiveHandler) Live(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := h.documents.GetDocument(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			writeError(h.logger, w, http.StatusNotFound, errCodeNotFound, "document not found")
			return
		}
		h.logger.Error("Failed to get document", "document_id", id, "error", err)
		writeError(h.logger, w, http.StatusInternalServerError, errCodeInternal, "failed to get document")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade", "document_id", id, "error", err)
		return
	}

	peer := h.hub.Join(id)
	h.logger.Info("Peer connected", "document_id", id, "peer_id", peer.ID, "remote_addr", r.RemoteAddr)

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(conn, peer)
	}()

	h.readLoop(r, conn, peer)

	peer.Leave()
	<-done
	_ = conn.Close()
	h.logger.Info("Peer disconnected", "document_id", id, "peer_id", peer.ID)
}

// readLoop читает сообщения участника и рассылает их остальным
func (h *LiveHandler) readLoop(r *http.Request, conn *websocket.Conn, peer *broadcast.Peer) {
	conn.SetReadLimit(liveMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(livePongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongTimeout))
	})

	for {
		var msg api.PeerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "document_id", peer.DocumentID, "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(livePongTimeout))

		if !models.EventType(msg.EventType).Known() {
			h.logger.Warn("Dropping peer message with unknown type",
				"document_id", peer.DocumentID,
				"event_type", msg.EventType)
			continue
		}

		h.hub.Publish(r.Context(), peer.DocumentID, msg, peer)
	}
}

// writeLoop отправляет участнику сообщения из hub и ping'и
func (h *LiveHandler) writeLoop(conn *websocket.Conn, peer *broadcast.Peer) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-peer.Messages():
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Warn("WebSocket write error", "document_id", peer.DocumentID, "error", err)
				// разрываем соединение, readLoop завершится с ошибкой
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		}
	}
}
