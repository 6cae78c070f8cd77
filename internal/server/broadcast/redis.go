package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/iudanet/inkboard/pkg/api"
)

// ChannelPrefix префикс Redis каналов документов
const ChannelPrefix = "inkboard:doc:"

// ErrRelayClosed relay уже закрыт
var ErrRelayClosed = errors.New("redis relay is closed")

var _ Relay = (*RedisRelay)(nil)

// envelope сообщение в Redis канале.
// Origin позволяет экземпляру пропускать собственные сообщения.
type envelope struct {
	Origin     string          `json:"origin"`
	DocumentID string          `json:"documentId"`
	Message    api.PeerMessage `json:"message"`
}

// RedisRelay связывает hub'ы нескольких экземпляров сервера через Redis Pub/Sub
type RedisRelay struct {
	client *redis.Client
	hub    *Hub
	logger *slog.Logger
	pubsub *redis.PubSub
	done   chan struct{}
	origin string
	mu     sync.Mutex
	closed bool
}

// ChannelName возвращает Redis канал документа
func ChannelName(documentID string) string {
	return ChannelPrefix + documentID
}

// documentFromChannel извлекает id документа из имени канала
func documentFromChannel(channel string) (string, bool) {
	id, ok := strings.CutPrefix(channel, ChannelPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// NewRedisRelay проверяет соединение с Redis и создаёт relay для hub
func NewRedisRelay(ctx context.Context, client *redis.Client, hub *Hub, logger *slog.Logger) (*RedisRelay, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRelay{
		client: client,
		hub:    hub,
		logger: logger,
		origin: uuid.New().String(),
		done:   make(chan struct{}),
	}, nil
}

// Publish отправляет сообщение в канал документа
func (r *RedisRelay) Publish(ctx context.Context, documentID string, msg api.PeerMessage) error {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return ErrRelayClosed
	}

	data, err := encodeEnvelope(r.origin, documentID, msg)
	if err != nil {
		return err
	}
	if err := r.client.Publish(ctx, ChannelName(documentID), data).Err(); err != nil {
		return fmt.Errorf("failed to publish to redis: %w", err)
	}
	return nil
}

// Start подписывается на каналы всех документов и передаёт чужие сообщения в hub.
// Работает до отмены ctx или Close.
func (r *RedisRelay) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRelayClosed
	}
	if r.pubsub != nil {
		return fmt.Errorf("redis relay already started")
	}

	pubsub := r.client.PSubscribe(ctx, ChannelPrefix+"*")
	// дожидаемся подтверждения подписки, чтобы не терять первые сообщения
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	r.pubsub = pubsub

	go r.receive(ctx, pubsub.Channel())
	return nil
}

func (r *RedisRelay) receive(ctx context.Context, ch <-chan *redis.Message) {
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			r.handle(msg.Channel, []byte(msg.Payload))
		}
	}
}

func (r *RedisRelay) handle(channel string, payload []byte) {
	documentID, ok := documentFromChannel(channel)
	if !ok {
		return
	}

	env, err := decodeEnvelope(payload)
	if err != nil {
		r.logger.Warn("Failed to decode relay message", "channel", channel, "error", err)
		return
	}
	if env.Origin == r.origin {
		return
	}
	if env.DocumentID != documentID {
		r.logger.Warn("Relay message document mismatch",
			"channel", channel,
			"document_id", env.DocumentID)
		return
	}

	r.hub.Deliver(documentID, env.Message)
}

// Close отписывается от Redis и ждёт завершения горутины чтения
func (r *RedisRelay) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	pubsub := r.pubsub
	r.mu.Unlock()

	if pubsub == nil {
		return nil
	}
	err := pubsub.Close()
	<-r.done
	if err != nil {
		return fmt.Errorf("failed to close pubsub: %w", err)
	}
	return nil
}

func encodeEnvelope(origin, documentID string, msg api.PeerMessage) ([]byte, error) {
	data, err := json.Marshal(envelope{Origin: origin, DocumentID: documentID, Message: msg})
	if err != nil {
		return nil, fmt.Errorf("failed to encode relay message: %w", err)
	}
	return data, nil
}

func decodeEnvelope(data []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, fmt.Errorf("failed to decode relay message: %w", err)
	}
	return env, nil
}
