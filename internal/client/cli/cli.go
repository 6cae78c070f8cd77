// Package cli команды консольного клиента inkboard.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/inkboard/internal/client/iocli"
	"github.com/iudanet/inkboard/internal/client/realtime"
	"github.com/iudanet/inkboard/internal/client/storage"
	clientsync "github.com/iudanet/inkboard/internal/client/sync"
	"github.com/iudanet/inkboard/pkg/api"
)

// ErrUsage неверные аргументы команды
var ErrUsage = errors.New("invalid usage")

//go:generate moq -out health_mock.go . HealthChecker

// HealthChecker проверяет доступность сервера
type HealthChecker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}

//go:generate moq -out live_mock.go . Live

// Live подписка на изменения других участников документа
type Live interface {
	Subscribe(ctx context.Context, documentID string, handler realtime.Handler) error
	Unsubscribe(documentID string)
}

type Cli struct {
	io       iocli.IO
	service  clientsync.Service
	logger   *slog.Logger
	metadata storage.MetadataStorage
	outbox   storage.Outbox
	health   HealthChecker
	live     Live
	// documentID документ из --doc, иначе последний открытый
	documentID string
}

type Option func(*Cli)

// WithDocument задаёт документ для команд редактирования
func WithDocument(id string) Option {
	return func(c *Cli) {
		c.documentID = id
	}
}

func WithMetadata(m storage.MetadataStorage) Option {
	return func(c *Cli) {
		c.metadata = m
	}
}

func WithOutbox(o storage.Outbox) Option {
	return func(c *Cli) {
		c.outbox = o
	}
}

func WithHealth(h HealthChecker) Option {
	return func(c *Cli) {
		c.health = h
	}
}

// WithLive включает команду edit --live
func WithLive(l Live) Option {
	return func(c *Cli) {
		c.live = l
	}
}

func New(io iocli.IO, service clientsync.Service, logger *slog.Logger, opts ...Option) *Cli {
	c := &Cli{
		io:      io,
		service: service,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run выполняет одну команду. args без имени команды.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "new":
		return c.runNew(ctx, args)
	case "open", "show":
		return c.runShow(ctx, args)
	case "list", "ls":
		return c.runList(ctx, args)
	case "title":
		return c.runTitle(ctx, args)
	case "status":
		return c.runStatus(ctx)
	case "edit":
		return c.runEdit(ctx, args)
	case "replay":
		return c.runReplay(args)
	case "help":
		c.PrintUsage()
		return nil
	}

	if _, ok := editCommands[command]; ok {
		return c.withSession(ctx, func(sess *clientsync.Session) error {
			_, err := c.exec(sess, command, args)
			return err
		})
	}

	c.PrintUsage()
	return fmt.Errorf("%w: unknown command %q", ErrUsage, command)
}

func (c *Cli) PrintUsage() {
	c.io.Println(`Usage: inkboard [flags] <command> [args]

Documents:
  new <title>                      create a document
  open [id]                        show document summary
  list [id]                        list elements
  title <title>                    rename the document
  status                           server and local queue status
  edit [--live] [id]               interactive editing session
  replay <file>                    rebuild a document from an exported event log

Editing (applies to --doc or the last opened document):
  draw [style] rect|diamond|circle|image|text x y w h [src|text]
  draw [style] arrow|line x1 y1 x2 y2
  draw [style] freehand x,y x,y ...
  update <element-id> key=value ...
  move <element-id> dx dy
  resize <element-id> x y w h
  reorder <element-id> forward|backward|front|back
  delete <element-id>
  erase x y radius
  bg <color>
  clear

Style flags for draw:
  --stroke <color> --fill <color> --width <n> --style solid|dashed|dotted
  --opacity <0-100> --roughness <n> --edge rounded|sharp`)
}

// openSession открывает документ по id, из --doc или последний открытый.
func (c *Cli) openSession(ctx context.Context, id string) (*clientsync.Session, error) {
	if id == "" {
		id = c.documentID
	}
	if id != "" {
		return c.service.Open(ctx, id)
	}

	sess, err := c.service.OpenLast(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoDocument) {
			return nil, fmt.Errorf("no document selected. Use 'inkboard new <title>' or --doc <id>")
		}
		return nil, err
	}
	return sess, nil
}

// withSession открывает документ, выполняет fn и отправляет изменения.
func (c *Cli) withSession(ctx context.Context, fn func(sess *clientsync.Session) error) error {
	sess, err := c.openSession(ctx, "")
	if err != nil {
		return err
	}
	if sess.Offline() {
		c.io.Println("⚠️  Server unavailable: working offline, changes will not be saved")
	}

	runErr := fn(sess)
	c.closeSession(ctx, sess)
	return runErr
}

func (c *Cli) closeSession(ctx context.Context, sess *clientsync.Session) {
	if err := sess.Close(ctx); err != nil {
		c.logger.Warn("Failed to flush changes", "document_id", sess.DocumentID(), "error", err)
		c.io.Printf("⚠️  %d change(s) kept locally, they will be sent on next open\n", sess.Pending())
	}
}
