// Package realtime пересылает события документа другим участникам через WebSocket.
package realtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	clientsync "github.com/iudanet/inkboard/internal/client/sync"
	"github.com/iudanet/inkboard/pkg/api"
)

var (
	// ErrNotConnected нет подключения к документу
	ErrNotConnected = errors.New("not connected to document")
	// ErrClientClosed клиент закрыт
	ErrClientClosed = errors.New("realtime client is closed")
)

const defaultWriteTimeout = 5 * time.Second

var _ clientsync.Broadcaster = (*Client)(nil)

// Handler получает сообщения других участников.
// Вызывается из горутины чтения соединения, по одному сообщению за раз.
type Handler func(msg api.PeerMessage)

// Client держит по одному WebSocket соединению на документ.
type Client struct {
	baseURL  *url.URL
	dialer   *websocket.Dialer
	logger   *slog.Logger
	conns    map[string]*conn
	senderID string
	wg       sync.WaitGroup
	mu       sync.Mutex
	closed   bool
}

type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

// NewClient создаёт клиент. baseURL адрес HTTP API сервера (http или https).
func NewClient(baseURL string, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	return &Client{
		baseURL:  u,
		dialer:   websocket.DefaultDialer,
		logger:   logger,
		conns:    make(map[string]*conn),
		senderID: uuid.New().String(),
	}, nil
}

// SenderID идентификатор этого клиента в пересылаемых сообщениях
func (c *Client) SenderID() string {
	return c.senderID
}

func (c *Client) liveURL(documentID string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/v1/documents/" + url.PathEscape(documentID) + "/live"
	return u.String()
}

// Subscribe подключается к документу и передаёт входящие сообщения в handler.
// Повторная подписка на тот же документ заменяет соединение.
func (c *Client) Subscribe(ctx context.Context, documentID string, handler Handler) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClientClosed
	}
	c.mu.Unlock()

	ws, _, err := c.dialer.DialContext(ctx, c.liveURL(documentID), nil)
	if err != nil {
		return fmt.Errorf("failed to dial: %w", err)
	}

	cn := &conn{ws: ws}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = ws.Close()
		return ErrClientClosed
	}
	if old, ok := c.conns[documentID]; ok {
		_ = old.ws.Close()
	}
	c.conns[documentID] = cn
	c.mu.Unlock()

	c.logger.Info("Subscribed to document", "document_id", documentID)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.readLoop(documentID, cn, handler)
	}()
	return nil
}

func (c *Client) readLoop(documentID string, cn *conn, handler Handler) {
	defer c.drop(documentID, cn)

	for {
		var msg api.PeerMessage
		if err := cn.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("WebSocket read error", "document_id", documentID, "error", err)
			}
			return
		}
		if msg.SenderID == c.senderID {
			continue
		}
		if handler != nil {
			handler(msg)
		}
	}
}

// drop убирает соединение, если оно всё ещё текущее для документа.
func (c *Client) drop(documentID string, cn *conn) {
	c.mu.Lock()
	if c.conns[documentID] == cn {
		delete(c.conns, documentID)
	}
	c.mu.Unlock()
	_ = cn.ws.Close()
}

// Publish отправляет событие участникам документа.
func (c *Client) Publish(ctx context.Context, documentID string, msg api.PeerMessage) error {
	c.mu.Lock()
	cn, ok := c.conns[documentID]
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return ErrClientClosed
	}
	if !ok {
		return ErrNotConnected
	}

	msg.SenderID = c.senderID

	deadline := time.Now().Add(defaultWriteTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	cn.writeMu.Lock()
	defer cn.writeMu.Unlock()

	if err := cn.ws.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := cn.ws.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// Unsubscribe закрывает соединение с документом.
func (c *Client) Unsubscribe(documentID string) {
	c.mu.Lock()
	cn, ok := c.conns[documentID]
	delete(c.conns, documentID)
	c.mu.Unlock()

	if ok {
		cn.close()
	}
}

// Close закрывает все соединения и ждёт завершения горутин чтения.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conns := c.conns
	c.conns = make(map[string]*conn)
	c.mu.Unlock()

	for _, cn := range conns {
		cn.close()
	}
	c.wg.Wait()
	return nil
}

// close отправляет close frame и закрывает соединение.
func (cn *conn) close() {
	cn.writeMu.Lock()
	_ = cn.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	cn.writeMu.Unlock()
	_ = cn.ws.Close()
}
