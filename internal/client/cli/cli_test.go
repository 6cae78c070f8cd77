package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/inkboard/internal/client/iocli"
	"github.com/iudanet/inkboard/internal/client/storage/memory"
	clientsync "github.com/iudanet/inkboard/internal/client/sync"
	"github.com/iudanet/inkboard/internal/models"
)

var errUnavailable = errors.New("backend unavailable")

// setupTestLogger создает logger для тестов
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// testBackend журнал документов в памяти
type testBackend struct {
	events map[string]map[int64]models.Event
	titles map[string]string
	mu     sync.Mutex
	nextID int
	down   bool
	// appendDown отказывает только в записи событий
	appendDown bool
}

func newTestBackend() *testBackend {
	return &testBackend{
		events: make(map[string]map[int64]models.Event),
		titles: make(map[string]string),
	}
}

func (b *testBackend) log(documentID string) []models.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Event, 0, len(b.events[documentID]))
	for _, ev := range b.events[documentID] {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func (b *testBackend) types(documentID string) []models.EventType {
	var out []models.EventType
	for _, ev := range b.log(documentID) {
		out = append(out, ev.Type)
	}
	return out
}

func (b *testBackend) setDown(down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.down = down
}

func (b *testBackend) setAppendDown(down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.appendDown = down
}

func (b *testBackend) isDown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.down
}

func (b *testBackend) mock() *clientsync.PersistenceMock {
	return &clientsync.PersistenceMock{
		CreateDocumentFunc: func(ctx context.Context, title string) (string, error) {
			if b.isDown() {
				return "", errUnavailable
			}
			b.mu.Lock()
			defer b.mu.Unlock()
			b.nextID++
			id := fmt.Sprintf("doc-%d", b.nextID)
			b.events[id] = make(map[int64]models.Event)
			b.titles[id] = title
			return id, nil
		},
		LoadDocumentFunc: func(ctx context.Context, documentID string) (*models.LoadedDocument, error) {
			if b.isDown() {
				return nil, errUnavailable
			}
			b.mu.Lock()
			_, ok := b.events[documentID]
			title := b.titles[documentID]
			b.mu.Unlock()
			if !ok {
				return nil, errors.New("document not found")
			}
			return &models.LoadedDocument{
				Info:   models.DocumentInfo{ID: documentID, Title: title},
				Events: b.log(documentID),
			}, nil
		},
		AppendEventsFunc: func(ctx context.Context, documentID string, events []models.Event) error {
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.down || b.appendDown {
				return errUnavailable
			}
			for _, ev := range events {
				if _, dup := b.events[documentID][ev.Order]; !dup {
					b.events[documentID][ev.Order] = ev
				}
			}
			return nil
		},
		WriteSnapshotFunc: func(ctx context.Context, documentID string, snapshot models.Snapshot) error {
			return nil
		},
		UpdateDocumentMetadataFunc: func(ctx context.Context, documentID string, meta models.Metadata) error {
			if b.isDown() {
				return errUnavailable
			}
			b.mu.Lock()
			defer b.mu.Unlock()
			b.titles[documentID] = *meta.Title
			return nil
		},
	}
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("el-%d", n)
	}
}

type testEnv struct {
	cli     *Cli
	out     *bytes.Buffer
	backend *testBackend
	local   *memory.Storage
}

// newTestEnv собирает Cli поверх журнала в памяти. input читается командой edit.
func newTestEnv(t *testing.T, input string, opts ...Option) *testEnv {
	t.Helper()

	cfg := clientsync.DefaultConfig()
	cfg.FlushDelay = time.Hour
	cfg.RetryBase = time.Hour

	backend := newTestBackend()
	local := memory.New()
	svc := clientsync.NewService(backend.mock(), local, setupTestLogger(),
		clientsync.WithConfig(cfg),
		clientsync.WithMetadata(local),
		clientsync.WithIDGenerator(sequentialIDs()))

	out := &bytes.Buffer{}
	opts = append([]Option{WithMetadata(local), WithOutbox(local)}, opts...)
	c := New(iocli.New(strings.NewReader(input), out), svc, setupTestLogger(), opts...)

	return &testEnv{cli: c, out: out, backend: backend, local: local}
}

// run выполняет команду вида "draw rect 0 0 10 10"
func (e *testEnv) run(t *testing.T, line string) error {
	t.Helper()
	fields := strings.Fields(line)
	return e.cli.Run(context.Background(), fields[0], fields[1:])
}

func TestCli_UnknownCommand(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.run(t, "sing")
	require.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, env.out.String(), "Usage: inkboard")
}

func TestCli_PrintUsage(t *testing.T) {
	var printed []string
	mockIO := &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			printed = append(printed, fmt.Sprint(a...))
		},
	}
	c := New(mockIO, nil, setupTestLogger())

	require.NoError(t, c.Run(context.Background(), "help", nil))
	require.Len(t, printed, 1)
	assert.Contains(t, printed[0], "draw [style] arrow|line x1 y1 x2 y2")
}

func TestCli_NoDocumentSelected(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.run(t, "draw rect 0 0 10 10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no document selected")
}
