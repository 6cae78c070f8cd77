// Package sync связывает документ в памяти с внешним хранилищем журнала.
//
// Сессия нумерует события, накапливает их и отправляет пакетами после паузы
// в редактировании, повторяет неудачные отправки и периодически пишет снапшоты.
// Если хранилище недоступно при открытии, сессия работает локально.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/inkboard/internal/client/storage"
	"github.com/iudanet/inkboard/internal/document"
	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/order"
	"github.com/iudanet/inkboard/internal/replay"
	"github.com/iudanet/inkboard/internal/validation"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс открытия сессий документов
type Service interface {
	// Create создаёт новый документ и открывает сессию на нём
	Create(ctx context.Context, title string) (*Session, error)

	// Open загружает документ и открывает сессию
	Open(ctx context.Context, documentID string) (*Session, error)

	// OpenLast открывает последний открытый на этом клиенте документ
	OpenLast(ctx context.Context) (*Session, error)
}

// Option настраивает service
type Option func(*service)

// WithConfig задаёт параметры сессий.
func WithConfig(cfg Config) Option {
	return func(s *service) {
		s.cfg = cfg.withDefaults()
	}
}

// WithBroadcaster включает пересылку событий другим участникам.
func WithBroadcaster(b Broadcaster) Option {
	return func(s *service) {
		s.broadcaster = b
	}
}

// WithMetadata включает запоминание последнего открытого документа.
func WithMetadata(m storage.MetadataStorage) Option {
	return func(s *service) {
		s.metadata = m
	}
}

// WithIDGenerator подменяет генератор id элементов во всех сессиях.
func WithIDGenerator(fn func() string) Option {
	return func(s *service) {
		s.newID = fn
	}
}

type service struct {
	persistence Persistence
	outbox      storage.Outbox
	metadata    storage.MetadataStorage
	broadcaster Broadcaster
	newID       func() string
	logger      *slog.Logger
	cfg         Config
}

// NewService создаёт сервис сессий.
// outbox хранит отправленные, но не подтверждённые события.
func NewService(persistence Persistence, outbox storage.Outbox, logger *slog.Logger, opts ...Option) Service {
	s := &service{
		persistence: persistence,
		outbox:      outbox,
		logger:      logger,
		cfg:         DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, title string) (*Session, error) {
	if err := validation.ValidateTitle(title); err != nil {
		return nil, err
	}

	id, err := s.persistence.CreateDocument(ctx, title)
	if err != nil {
		s.logger.Warn("Failed to create document, working offline", "error", err)
		return s.offlineSession("")
	}

	s.logger.Info("Document created", "document_id", id)
	s.remember(ctx, id)

	info := models.DocumentInfo{ID: id, Title: title}
	return s.newSession(info, s.emptyDocument(), 0, nil, false), nil
}

func (s *service) Open(ctx context.Context, documentID string) (*Session, error) {
	loaded, err := s.persistence.LoadDocument(ctx, documentID)
	if err != nil {
		s.logger.Warn("Failed to load document, working offline",
			"document_id", documentID,
			"error", err)
		return s.offlineSession(documentID)
	}

	base := models.EmptySnapshot()
	if loaded.Snapshot != nil {
		base = *loaded.Snapshot
	}

	res := replay.Replay(base, loaded.Events,
		replay.WithCanvasSize(s.cfg.CanvasSize),
		replay.WithDiagnostics(s.diagnostics(documentID)))

	s.logger.Info("Document loaded",
		"document_id", documentID,
		"snapshot_order", base.LastEventOrder,
		"last_order", res.LastEventOrder,
		"applied", res.Applied,
		"skipped", res.Skipped)

	doc, pending := s.mergePending(ctx, documentID, res)

	info := loaded.Info
	if info.ID == "" {
		info.ID = documentID
	}
	s.remember(ctx, documentID)

	return s.newSession(info, doc, res.LastEventOrder, pending, false), nil
}

func (s *service) OpenLast(ctx context.Context) (*Session, error) {
	if s.metadata == nil {
		return nil, storage.ErrNoDocument
	}
	id, err := s.metadata.GetLastDocumentID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get last document id: %w", err)
	}
	return s.Open(ctx, id)
}

// mergePending применяет события из outbox, которых ещё нет в хранилище.
// Такие события снова ставятся в очередь отправки.
func (s *service) mergePending(ctx context.Context, documentID string, res replay.Result) (models.Document, []models.Event) {
	if s.outbox == nil {
		return res.Document, nil
	}

	stored, err := s.outbox.Pending(ctx, documentID)
	if err != nil {
		s.logger.Warn("Failed to read outbox", "document_id", documentID, "error", err)
		return res.Document, nil
	}

	// Всё, что уже есть в журнале хранилища, подтверждено
	if err := s.outbox.Acknowledge(ctx, documentID, res.LastEventOrder); err != nil {
		s.logger.Warn("Failed to acknowledge outbox", "document_id", documentID, "error", err)
	}

	var pending []models.Event
	for _, ev := range stored {
		if ev.Order > res.LastEventOrder {
			pending = append(pending, ev)
		}
	}
	if len(pending) == 0 {
		return res.Document, nil
	}

	merged := replay.Replay(models.SnapshotOf(res.Document, res.LastEventOrder), pending,
		replay.WithCanvasSize(res.Document.CanvasSize),
		replay.WithDiagnostics(s.diagnostics(documentID)))

	s.logger.Info("Restored unacknowledged events",
		"document_id", documentID,
		"count", len(pending),
		"last_order", merged.LastEventOrder)

	return merged.Document, replay.Sorted(pending)
}

func (s *service) offlineSession(documentID string) (*Session, error) {
	if err := validation.ValidateCanvasSize(s.cfg.CanvasSize.Width, s.cfg.CanvasSize.Height); err != nil {
		return nil, fmt.Errorf("failed to initialize local document: %w", err)
	}
	info := models.DocumentInfo{ID: documentID}
	return s.newSession(info, s.emptyDocument(), 0, nil, true), nil
}

func (s *service) emptyDocument() models.Document {
	doc := models.NewDocument()
	doc.CanvasSize = s.cfg.CanvasSize
	return doc
}

func (s *service) remember(ctx context.Context, documentID string) {
	if s.metadata == nil {
		return
	}
	if err := s.metadata.SaveLastDocumentID(ctx, documentID); err != nil {
		s.logger.Warn("Failed to save last document id", "document_id", documentID, "error", err)
	}
}

func (s *service) diagnostics(documentID string) replay.DiagnosticsFunc {
	return func(ev models.Event, err error) {
		level := slog.LevelWarn
		if !errors.Is(err, models.ErrMalformedEvent) {
			level = slog.LevelError
		}
		s.logger.Log(context.Background(), level, "Skipping event during replay",
			"document_id", documentID,
			"order", ev.Order,
			"event_type", ev.Type,
			"error", err)
	}
}

// newSession собирает сессию. flushed порядок последнего события в хранилище,
// pending отсортированные события после него, ещё не подтверждённые хранилищем.
func (s *service) newSession(info models.DocumentInfo, doc models.Document, flushed int64, pending []models.Event, offline bool) *Session {
	sess := &Session{
		info:        info,
		offline:     offline,
		persistence: s.persistence,
		outbox:      s.outbox,
		logger:      s.logger.With("document_id", info.ID),
		cfg:         s.cfg,
		counter:     order.NewCounter(flushed),
		lastFlushed: flushed,
	}
	if n := len(pending); n > 0 {
		sess.counter.Observe(pending[n-1].Order)
	}

	storeOpts := []document.Option{document.WithDocument(doc)}
	if s.newID != nil {
		storeOpts = append(storeOpts, document.WithIDGenerator(s.newID))
	}
	sess.store = document.NewStore(sess, s.logger, storeOpts...)

	if !offline && s.broadcaster != nil {
		sess.startBroadcast(s.broadcaster)
	}
	if !offline && len(pending) > 0 {
		sess.requeue(pending)
	}
	return sess
}
