package sync

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	gosync "sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/inkboard/internal/client/storage"
	"github.com/iudanet/inkboard/internal/document"
	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/order"
	"github.com/iudanet/inkboard/internal/validation"
	"github.com/iudanet/inkboard/pkg/api"
)

var _ document.Sink = (*Session)(nil)

// Session открытый документ: Store, очередь неотправленных событий и фоновая отправка.
//
// Session является document.Sink своего Store. Emit не блокируется на вводе-выводе:
// пакет уходит в хранилище из таймера после паузы FlushDelay.
type Session struct {
	persistence Persistence
	outbox      storage.Outbox
	store       *document.Store
	counter     *order.Counter
	logger      *slog.Logger
	timer       *time.Timer
	backoff     retry.Backoff
	pendingSnap *models.Snapshot
	peers       chan api.PeerMessage
	peersDone   chan struct{}
	info        models.DocumentInfo
	queue       []models.Event
	cfg         Config
	lastFlushed int64
	mu          gosync.Mutex // очередь, таймер, состояние повтора
	flushMu     gosync.Mutex // отправки выполняются строго по одной
	offline     bool
	retrying    bool
	closed      bool
}

// Emit нумерует событие и ставит его в очередь отправки.
// Вызывается Store под его блокировкой.
func (s *Session) Emit(ev models.Event, doc models.Document) {
	ev = ev.WithOrder(s.counter.Next())

	if s.offline {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Warn("Event emitted after close, dropping", "order", ev.Order)
		return
	}

	s.queue = append(s.queue, ev)
	if ev.Order%s.cfg.SnapshotInterval == 0 {
		snap := models.SnapshotOf(doc, ev.Order)
		s.pendingSnap = &snap
	}
	s.publishLocked(ev)

	// во время повтора таймер уже взведён на задержку backoff
	if !s.retrying {
		s.scheduleLocked(s.cfg.FlushDelay)
	}
}

// Flush отправляет все накопленные события.
// При ошибке события остаются в очереди в исходном порядке и назначается повтор.
func (s *Session) Flush(ctx context.Context) error {
	if s.offline {
		return nil
	}

	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	batch := slices.Clone(s.queue)
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	last := batch[len(batch)-1].Order

	if s.outbox != nil {
		if err := s.outbox.SavePending(ctx, s.info.ID, batch); err != nil {
			// без outbox события переживут только процесс, но не перезапуск
			s.logger.Warn("Failed to save events to outbox", "error", err)
		}
	}

	if err := s.persistence.AppendEvents(ctx, s.info.ID, batch); err != nil {
		s.logger.Warn("Failed to flush events",
			"count", len(batch),
			"first_order", batch[0].Order,
			"last_order", last,
			"error", err)
		s.scheduleRetry()
		return fmt.Errorf("failed to append events: %w", err)
	}

	s.mu.Lock()
	// пока шла отправка, в очередь могли добавиться только новые события в конец
	s.queue = slices.Delete(s.queue, 0, len(batch))
	s.lastFlushed = last
	s.retrying = false
	s.backoff = nil
	var snap *models.Snapshot
	if s.pendingSnap != nil && s.pendingSnap.LastEventOrder <= last {
		snap = s.pendingSnap
		s.pendingSnap = nil
	}
	if len(s.queue) > 0 && !s.closed {
		s.scheduleLocked(s.cfg.FlushDelay)
	}
	s.mu.Unlock()

	s.logger.Debug("Events flushed", "count", len(batch), "last_order", last)

	if s.outbox != nil {
		if err := s.outbox.Acknowledge(ctx, s.info.ID, last); err != nil {
			s.logger.Warn("Failed to acknowledge outbox", "order", last, "error", err)
		}
	}

	if snap != nil {
		s.writeSnapshot(ctx, *snap)
	}
	return nil
}

// writeSnapshot пишет снапшот. Ошибка не критична: документ
// восстанавливается из журнала и без него.
func (s *Session) writeSnapshot(ctx context.Context, snap models.Snapshot) {
	if err := s.persistence.WriteSnapshot(ctx, s.info.ID, snap); err != nil {
		s.logger.Warn("Failed to write snapshot", "order", snap.LastEventOrder, "error", err)
		return
	}
	s.logger.Info("Snapshot written",
		"order", snap.LastEventOrder,
		"elements", len(snap.Elements))
}

func (s *Session) scheduleLocked(d time.Duration) {
	if s.timer == nil {
		s.timer = time.AfterFunc(d, s.flushFromTimer)
		return
	}
	s.timer.Reset(d)
}

func (s *Session) scheduleRetry() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.backoff == nil {
		s.backoff = retry.WithCappedDuration(s.cfg.RetryMax, retry.NewExponential(s.cfg.RetryBase))
	}
	delay, stop := s.backoff.Next()
	if stop {
		delay = s.cfg.RetryMax
	}
	s.retrying = true
	s.scheduleLocked(delay)

	s.logger.Info("Flush retry scheduled", "delay", delay, "pending", len(s.queue))
}

func (s *Session) flushFromTimer() {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FlushTimeout)
	defer cancel()
	// ошибка уже залогирована, повтор назначен в Flush
	_ = s.Flush(ctx)
}

// requeue ставит в очередь события, восстановленные из outbox.
func (s *Session) requeue(events []models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = append(s.queue, events...)
	s.scheduleLocked(s.cfg.FlushDelay)
}

// Close останавливает таймеры, выполняет последнюю отправку и останавливает рассылку.
// Неотправленные события остаются в outbox и будут отправлены при следующем открытии.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	err := s.Flush(ctx)

	s.mu.Lock()
	if s.peers != nil {
		close(s.peers)
	}
	done := s.peersDone
	s.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
		}
	}

	if err != nil {
		return fmt.Errorf("final flush failed: %w", err)
	}
	s.logger.Info("Session closed", "last_order", s.LastFlushedOrder())
	return nil
}

// SetTitle меняет название документа в хранилище.
func (s *Session) SetTitle(ctx context.Context, title string) error {
	if err := validation.ValidateTitle(title); err != nil {
		return err
	}
	if s.offline {
		return ErrOffline
	}
	if err := s.persistence.UpdateDocumentMetadata(ctx, s.info.ID, models.Metadata{Title: &title}); err != nil {
		return fmt.Errorf("failed to update title: %w", err)
	}

	s.mu.Lock()
	s.info.Title = title
	s.mu.Unlock()
	return nil
}

// ApplyRemote применяет событие другого участника.
// Порядок у удалённых событий не назначается: их сохраняет отправитель.
func (s *Session) ApplyRemote(msg api.PeerMessage) error {
	ev := models.Event{
		Type:    models.EventType(msg.EventType),
		Payload: msg.EventData,
	}
	if err := s.store.ApplyRemote(ev); err != nil {
		s.logger.Warn("Failed to apply peer event",
			"event_type", msg.EventType,
			"sender", msg.SenderID,
			"error", err)
		return err
	}
	return nil
}

func (s *Session) startBroadcast(b Broadcaster) {
	s.peers = make(chan api.PeerMessage, s.cfg.BroadcastBuffer)
	s.peersDone = make(chan struct{})

	go func() {
		defer close(s.peersDone)
		for msg := range s.peers {
			ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FlushTimeout)
			if err := b.Publish(ctx, s.info.ID, msg); err != nil {
				s.logger.Debug("Failed to publish peer event", "event_type", msg.EventType, "error", err)
			}
			cancel()
		}
	}()
}

func (s *Session) publishLocked(ev models.Event) {
	if s.peers == nil {
		return
	}
	msg := api.PeerMessage{EventType: string(ev.Type), EventData: ev.Payload}
	select {
	case s.peers <- msg:
	default:
		s.logger.Debug("Peer queue is full, dropping event", "order", ev.Order)
	}
}

// Store возвращает документ сессии.
func (s *Session) Store() *document.Store {
	return s.store
}

// DocumentID id документа. Пустой у локального документа, созданного без хранилища.
func (s *Session) DocumentID() string {
	return s.info.ID
}

// Info метаданные документа
func (s *Session) Info() models.DocumentInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// Offline сообщает, что сессия работает без хранилища.
func (s *Session) Offline() bool {
	return s.offline
}

// Pending количество событий, ещё не подтверждённых хранилищем.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// LastFlushedOrder порядок последнего подтверждённого хранилищем события.
func (s *Session) LastFlushedOrder() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFlushed
}

// LastOrder порядок последнего выданного события.
func (s *Session) LastOrder() int64 {
	return s.counter.Current()
}
