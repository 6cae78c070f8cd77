// Package broadcast раздаёт события документа всем подключённым участникам.
package broadcast

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/inkboard/pkg/api"
)

// DefaultPeerBuffer размер очереди исходящих сообщений одного участника
const DefaultPeerBuffer = 64

//go:generate moq -out relay_mock.go . Relay

// Relay пересылает сообщения другим экземплярам сервера
type Relay interface {
	Publish(ctx context.Context, documentID string, msg api.PeerMessage) error
}

// Peer участник комнаты документа
type Peer struct {
	hub        *Hub
	out        chan api.PeerMessage
	ID         string
	DocumentID string
	closeOnce  sync.Once
}

// Messages канал сообщений для отправки участнику.
// Закрывается после Leave или Hub.Close.
func (p *Peer) Messages() <-chan api.PeerMessage {
	return p.out
}

// Leave удаляет участника из комнаты
func (p *Peer) Leave() {
	p.hub.leave(p)
}

func (p *Peer) close() {
	p.closeOnce.Do(func() {
		close(p.out)
	})
}

// Hub группирует участников по документам
type Hub struct {
	logger *slog.Logger
	relay  Relay
	rooms  map[string]map[*Peer]struct{}
	buffer int
	mu     sync.RWMutex
	closed bool
}

// NewHub создаёт пустой hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		rooms:  make(map[string]map[*Peer]struct{}),
		buffer: DefaultPeerBuffer,
	}
}

// SetRelay подключает пересылку между экземплярами сервера
func (h *Hub) SetRelay(relay Relay) {
	h.mu.Lock()
	h.relay = relay
	h.mu.Unlock()
}

// Join добавляет участника в комнату документа.
// После Close возвращает участника с уже закрытым каналом.
func (h *Hub) Join(documentID string) *Peer {
	p := &Peer{
		hub:        h,
		out:        make(chan api.PeerMessage, h.buffer),
		ID:         uuid.New().String(),
		DocumentID: documentID,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		p.close()
		return p
	}

	room, ok := h.rooms[documentID]
	if !ok {
		room = make(map[*Peer]struct{})
		h.rooms[documentID] = room
	}
	room[p] = struct{}{}

	h.logger.Debug("Peer joined", "document_id", documentID, "peer_id", p.ID, "members", len(room))
	return p
}

func (h *Hub) leave(p *Peer) {
	h.mu.Lock()
	if room, ok := h.rooms[p.DocumentID]; ok {
		delete(room, p)
		if len(room) == 0 {
			delete(h.rooms, p.DocumentID)
		}
	}
	h.mu.Unlock()

	p.close()
	h.logger.Debug("Peer left", "document_id", p.DocumentID, "peer_id", p.ID)
}

// Publish рассылает сообщение участникам комнаты кроме from и передаёт его в relay.
// from может быть nil.
func (h *Hub) Publish(ctx context.Context, documentID string, msg api.PeerMessage, from *Peer) {
	h.deliver(documentID, msg, from)

	h.mu.RLock()
	relay := h.relay
	h.mu.RUnlock()

	if relay == nil {
		return
	}
	if err := relay.Publish(ctx, documentID, msg); err != nil {
		h.logger.Warn("Failed to relay peer message", "document_id", documentID, "error", err)
	}
}

// Deliver рассылает сообщение только локальным участникам.
// Используется для сообщений, пришедших от других экземпляров.
func (h *Hub) Deliver(documentID string, msg api.PeerMessage) {
	h.deliver(documentID, msg, nil)
}

func (h *Hub) deliver(documentID string, msg api.PeerMessage, from *Peer) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for p := range h.rooms[documentID] {
		if p == from {
			continue
		}
		select {
		case p.out <- msg:
		default:
			// медленный участник теряет сообщение, остальные не ждут
			h.logger.Warn("Peer queue full, dropping message",
				"document_id", documentID,
				"peer_id", p.ID,
				"event_type", msg.EventType)
		}
	}
}

// Members количество участников комнаты
func (h *Hub) Members(documentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[documentID])
}

// Close закрывает каналы всех участников
func (h *Hub) Close() {
	h.mu.Lock()
	rooms := h.rooms
	h.rooms = make(map[string]map[*Peer]struct{})
	h.closed = true
	h.mu.Unlock()

	for _, room := range rooms {
		for p := range room {
			p.close()
		}
	}
}
