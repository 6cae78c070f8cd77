package sync

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/inkboard/internal/client/storage/memory"
	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/pkg/api"
)

func orders(events []models.Event) []int64 {
	out := make([]int64, len(events))
	for i, ev := range events {
		out[i] = ev.Order
	}
	return out
}

func openSession(t *testing.T, p Persistence, cfg Config, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithConfig(cfg), WithIDGenerator(sequentialIDs())}, opts...)
	svc := NewService(p, memory.New(), setupTestLogger(), opts...)
	sess, err := svc.Create(context.Background(), "Test")
	require.NoError(t, err)
	require.False(t, sess.Offline())
	return sess
}

func TestSession_EmitAssignsIncreasingOrders(t *testing.T) {
	backend := newFakeBackend()
	sess := openSession(t, backend.mock(), testConfig())

	store := sess.Store()
	for i := range 3 {
		_, ok := store.AddElement(newRect(float64(i*50), 0))
		require.True(t, ok)
	}
	require.NoError(t, store.ChangeBackground("#000000"))

	assert.Equal(t, 4, sess.Pending())
	assert.Equal(t, int64(4), sess.LastOrder())
	assert.Equal(t, int64(0), sess.LastFlushedOrder())

	require.NoError(t, sess.Flush(context.Background()))
	assert.Equal(t, []int64{1, 2, 3, 4}, orders(backend.log(sess.DocumentID())))
	assert.Equal(t, 0, sess.Pending())
	assert.Equal(t, int64(4), sess.LastFlushedOrder())

	require.NoError(t, sess.Close(context.Background()))
}

func TestSession_DebouncedFlush(t *testing.T) {
	backend := newFakeBackend()
	mock := backend.mock()
	cfg := testConfig()
	cfg.FlushDelay = 30 * time.Millisecond
	sess := openSession(t, mock, cfg)
	defer sess.Close(context.Background())

	store := sess.Store()
	for i := range 5 {
		_, ok := store.AddElement(newRect(float64(i*50), 0))
		require.True(t, ok)
	}

	assert.Eventually(t, func() bool {
		return sess.Pending() == 0
	}, 2*time.Second, 10*time.Millisecond)

	// пять событий подряд уходят одним пакетом
	calls := mock.AppendEventsCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, orders(calls[0].Events))
}

func TestSession_RetryPreservesOrder(t *testing.T) {
	backend := newFakeBackend()
	mock := backend.mock()
	cfg := testConfig()
	cfg.FlushDelay = 10 * time.Millisecond
	cfg.RetryBase = 5 * time.Millisecond
	cfg.RetryMax = 20 * time.Millisecond
	sess := openSession(t, mock, cfg)
	defer sess.Close(context.Background())

	backend.failNextAppends(3)

	store := sess.Store()
	for i := range 3 {
		_, ok := store.AddElement(newRect(float64(i*50), 0))
		require.True(t, ok)
	}

	assert.Eventually(t, func() bool {
		return sess.LastFlushedOrder() == 3
	}, 2*time.Second, 5*time.Millisecond)

	_, ok := store.AddElement(newRect(500, 0))
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		return sess.LastFlushedOrder() == 4
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, []int64{1, 2, 3, 4}, orders(backend.log(sess.DocumentID())))

	calls := mock.AppendEventsCalls()
	require.GreaterOrEqual(t, len(calls), 4)
	// каждая повторная отправка начинается с первого неподтверждённого события
	for _, c := range calls[:3] {
		require.NotEmpty(t, c.Events)
		assert.Equal(t, int64(1), c.Events[0].Order)
	}
}

func TestSession_FlushFailureKeepsQueue(t *testing.T) {
	backend := newFakeBackend()
	sess := openSession(t, backend.mock(), testConfig())

	_, ok := sess.Store().AddElement(newRect(0, 0))
	require.True(t, ok)

	backend.failNextAppends(1)
	err := sess.Flush(context.Background())
	require.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, 1, sess.Pending())
	assert.Equal(t, int64(0), sess.LastFlushedOrder())

	require.NoError(t, sess.Flush(context.Background()))
	assert.Equal(t, 0, sess.Pending())

	require.NoError(t, sess.Close(context.Background()))
}

func TestSession_SnapshotWrittenAfterAcknowledge(t *testing.T) {
	backend := newFakeBackend()
	mock := backend.mock()
	cfg := testConfig()
	cfg.SnapshotInterval = 3
	sess := openSession(t, mock, cfg)
	store := sess.Store()

	for i := range 3 {
		_, ok := store.AddElement(newRect(float64(i*50), 0))
		require.True(t, ok)
	}
	// состояние после события 3 фиксируется в момент Emit
	_, ok := store.AddElement(newRect(500, 0))
	require.True(t, ok)

	backend.failNextAppends(1)
	require.Error(t, sess.Flush(context.Background()))
	assert.Empty(t, mock.WriteSnapshotCalls(), "snapshot must wait for its events")

	require.NoError(t, sess.Flush(context.Background()))

	snaps := backend.snapshotsOf(sess.DocumentID())
	require.Len(t, snaps, 1)
	assert.Equal(t, int64(3), snaps[0].LastEventOrder)
	assert.Len(t, snaps[0].Elements, 3)
	assert.Equal(t, models.DefaultBackground, snaps[0].BackgroundColor)

	require.NoError(t, sess.Close(context.Background()))
}

func TestSession_SnapshotFailureIsNotFatal(t *testing.T) {
	backend := newFakeBackend()
	mock := backend.mock()
	mock.WriteSnapshotFunc = func(ctx context.Context, documentID string, snapshot models.Snapshot) error {
		return errUnavailable
	}
	cfg := testConfig()
	cfg.SnapshotInterval = 1
	sess := openSession(t, mock, cfg)

	_, ok := sess.Store().AddElement(newRect(0, 0))
	require.True(t, ok)

	require.NoError(t, sess.Flush(context.Background()))
	assert.Len(t, mock.WriteSnapshotCalls(), 1)
	assert.Equal(t, int64(1), sess.LastFlushedOrder())

	require.NoError(t, sess.Close(context.Background()))
}

func TestSession_CloseFlushesPending(t *testing.T) {
	backend := newFakeBackend()
	sess := openSession(t, backend.mock(), testConfig())

	_, ok := sess.Store().AddElement(newRect(0, 0))
	require.True(t, ok)
	require.NoError(t, sess.Close(context.Background()))

	assert.Len(t, backend.log(sess.DocumentID()), 1)

	// повторный Close ничего не делает
	require.NoError(t, sess.Close(context.Background()))

	// события после закрытия не ставятся в очередь
	_, ok = sess.Store().AddElement(newRect(100, 0))
	require.True(t, ok)
	assert.Equal(t, 0, sess.Pending())
}

func TestSession_CloseKeepsOutboxOnFailure(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	outbox := memory.New()
	svc := NewService(backend.mock(), outbox, setupTestLogger(),
		WithConfig(testConfig()), WithIDGenerator(sequentialIDs()))

	sess, err := svc.Create(ctx, "Test")
	require.NoError(t, err)
	_, ok := sess.Store().AddElement(newRect(0, 0))
	require.True(t, ok)

	backend.failNextAppends(1)
	require.Error(t, sess.Close(ctx))

	pending, err := outbox.Pending(ctx, sess.DocumentID())
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, orders(pending))

	// при следующем открытии событие отправляется снова
	reopened, err := svc.Open(ctx, sess.DocumentID())
	require.NoError(t, err)
	assert.Len(t, reopened.Store().Elements(), 1)
	require.NoError(t, reopened.Close(ctx))
	assert.Equal(t, []int64{1}, orders(backend.log(sess.DocumentID())))
}

func TestSession_PublishesToPeers(t *testing.T) {
	published := make(chan api.PeerMessage, 4)
	broadcaster := &BroadcasterMock{
		PublishFunc: func(ctx context.Context, documentID string, msg api.PeerMessage) error {
			published <- msg
			return nil
		},
	}
	backend := newFakeBackend()
	sess := openSession(t, backend.mock(), testConfig(), WithBroadcaster(broadcaster))

	el, ok := sess.Store().AddElement(newRect(0, 0))
	require.True(t, ok)

	select {
	case msg := <-published:
		assert.Equal(t, string(models.EventAddElement), msg.EventType)
		ev := models.Event{Type: models.EventType(msg.EventType), Payload: msg.EventData}
		payload, err := ev.Decode()
		require.NoError(t, err)
		add, isAdd := payload.(models.AddElement)
		require.True(t, isAdd)
		assert.Equal(t, el.ID, add.Element.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("peer message was not published")
	}

	require.NoError(t, sess.Close(context.Background()))
	calls := broadcaster.PublishCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, sess.DocumentID(), calls[0].DocumentID)
}

func TestSession_ApplyRemote(t *testing.T) {
	backend := newFakeBackend()
	sess := openSession(t, backend.mock(), testConfig())
	defer sess.Close(context.Background())

	remote := newRect(10, 10)
	remote.ID = "remote-1"
	ev, err := models.NewAddElementEvent(remote)
	require.NoError(t, err)

	require.NoError(t, sess.ApplyRemote(api.PeerMessage{
		EventType: string(ev.Type),
		EventData: ev.Payload,
		SenderID:  "peer",
	}))

	got, ok := sess.Store().Element("remote-1")
	require.True(t, ok)
	assert.Equal(t, models.KindRect, got.Kind())
	// удалённые события не отправляются повторно и не попадают в историю
	assert.Equal(t, 0, sess.Pending())
	assert.False(t, sess.Store().CanUndo())

	err = sess.ApplyRemote(api.PeerMessage{
		EventType: string(models.EventAddElement),
		EventData: json.RawMessage(`{"element":{}}`),
	})
	require.ErrorIs(t, err, models.ErrMalformedEvent)
}

func TestSession_SetTitle(t *testing.T) {
	backend := newFakeBackend()
	mock := backend.mock()
	sess := openSession(t, mock, testConfig())
	defer sess.Close(context.Background())

	require.NoError(t, sess.SetTitle(context.Background(), "Renamed"))
	assert.Equal(t, "Renamed", sess.Info().Title)

	calls := mock.UpdateDocumentMetadataCalls()
	require.Len(t, calls, 1)
	require.NotNil(t, calls[0].Meta.Title)
	assert.Equal(t, "Renamed", *calls[0].Meta.Title)

	require.Error(t, sess.SetTitle(context.Background(), ""))
	assert.Len(t, mock.UpdateDocumentMetadataCalls(), 1)
}
