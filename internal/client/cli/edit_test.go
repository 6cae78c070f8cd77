package cli

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/inkboard/internal/client/realtime"
	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/pkg/api"
)

func TestCli_Draw(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantKind models.Kind
		wantErr  bool
	}{
		{name: "rect", line: "draw rect 0 0 100 50", wantKind: models.KindRect},
		{name: "ellipse with style", line: "draw --stroke #e03131 --fill #ffc9c9 --style dashed circle 10 10 40 40", wantKind: models.KindCircle},
		{name: "diamond", line: "draw diamond -10 -10 20 20", wantKind: models.KindDiamond},
		{name: "arrow", line: "draw arrow 0 0 100 100", wantKind: models.KindArrow},
		{name: "line", line: "draw line 0 0 100 0", wantKind: models.KindArrow},
		{name: "freehand", line: "draw freehand 0,0 10,10 20,5", wantKind: models.KindFreehand},
		{name: "text", line: "draw text 10 10 120 24 Hello", wantKind: models.KindText},
		{name: "image", line: "draw image 0 0 64 64 https://example.com/cat.png", wantKind: models.KindImage},
		{name: "unknown kind", line: "draw star 0 0 10 10", wantErr: true},
		{name: "missing coordinates", line: "draw rect 0 0", wantErr: true},
		{name: "not a number", line: "draw rect a 0 10 10", wantErr: true},
		{name: "bad color", line: "draw --stroke red rect 0 0 10 10", wantErr: true},
		{name: "bad stroke style", line: "draw --style wavy rect 0 0 10 10", wantErr: true},
		{name: "bad opacity", line: "draw --opacity 150 rect 0 0 10 10", wantErr: true},
		{name: "degenerate", line: "draw rect 0 0 0 0", wantErr: true},
		{name: "single point", line: "draw freehand 5,5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			require.NoError(t, env.run(t, "new Sketch"))

			err := env.run(t, tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, env.backend.log("doc-1"))
				return
			}
			require.NoError(t, err)

			log := env.backend.log("doc-1")
			require.Len(t, log, 1)
			assert.Equal(t, models.EventAddElement, log[0].Type)
			assert.Equal(t, int64(1), log[0].Order)

			payload, err := log[0].Decode()
			require.NoError(t, err)
			add, ok := payload.(models.AddElement)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, add.Element.Kind())
			assert.Equal(t, "el-1", add.Element.ID)
		})
	}
}

func TestCli_DrawStyle(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.run(t, "new Sketch"))
	require.NoError(t, env.run(t, "draw --stroke #e03131 --width 4 --opacity 50 --edge rounded rect 0 0 10 10"))

	payload, err := env.backend.log("doc-1")[0].Decode()
	require.NoError(t, err)
	style := payload.(models.AddElement).Element.Style
	assert.Equal(t, "#e03131", style.StrokeColor)
	assert.Equal(t, float64(4), style.StrokeWidth)
	assert.Equal(t, 50, style.Opacity)
	assert.Equal(t, "rounded", style.EdgeStyle)
	assert.Equal(t, models.StrokeSolid, style.StrokeStyle)
}

func TestCli_ElementCommands(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.run(t, "new Sketch"))
	require.NoError(t, env.run(t, "draw rect 0 0 100 50"))
	require.NoError(t, env.run(t, "draw rect 200 0 100 50"))

	require.NoError(t, env.run(t, "update el-1 strokeColor=#2f9e44 strokeWidth=3"))
	require.NoError(t, env.run(t, "move el-1 10 20"))
	require.NoError(t, env.run(t, "resize el-2 200 0 50 50"))
	require.NoError(t, env.run(t, "reorder el-1 front"))
	require.NoError(t, env.run(t, "delete el-2"))
	require.NoError(t, env.run(t, "clear"))

	assert.Equal(t, []models.EventType{
		models.EventAddElement,
		models.EventAddElement,
		models.EventUpdateElement,
		models.EventMoveElement,
		models.EventResizeElement,
		models.EventReorderElement,
		models.EventDeleteElement,
		models.EventClearCanvas,
	}, env.backend.types("doc-1"))
}

func TestCli_ElementCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "update without fields", line: "update el-1"},
		{name: "update bad pair", line: "update el-1 strokeColor"},
		{name: "update missing element", line: "update nope x=1"},
		{name: "move missing element", line: "move nope 1 1"},
		{name: "move bad args", line: "move el-1 1"},
		{name: "resize bad args", line: "resize el-1 0 0 10"},
		{name: "reorder bad direction", line: "reorder el-1 sideways"},
		{name: "delete missing element", line: "delete nope"},
		{name: "erase bad radius", line: "erase 0 0 0"},
		{name: "bg bad color", line: "bg blue"},
		{name: "bg without color", line: "bg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			require.NoError(t, env.run(t, "new Sketch"))
			require.NoError(t, env.run(t, "draw rect 0 0 100 50"))

			require.Error(t, env.run(t, tt.line))
			assert.Len(t, env.backend.log("doc-1"), 1)
		})
	}
}

func TestCli_Erase(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.run(t, "new Sketch"))
	require.NoError(t, env.run(t, "draw rect 0 0 100 50"))

	require.NoError(t, env.run(t, "erase 500 500 5"))
	assert.Contains(t, env.out.String(), "Nothing to erase.")

	require.NoError(t, env.run(t, "erase 50 25 5"))
	assert.Equal(t, []models.EventType{models.EventAddElement, models.EventDeleteElement}, env.backend.types("doc-1"))
}

func TestCli_FlushFailureKeepsOutbox(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.run(t, "new Sketch"))
	env.backend.setAppendDown(true)

	require.NoError(t, env.run(t, "draw rect 0 0 100 50"))
	assert.Contains(t, env.out.String(), "1 change(s) kept locally")

	pending, err := env.local.Pending(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	// при следующем открытии событие отправляется снова
	env.backend.setAppendDown(false)
	require.NoError(t, env.run(t, "list"))
	assert.Len(t, env.backend.log("doc-1"), 1)
}

func TestCli_EditSession(t *testing.T) {
	input := "draw rect 0 0 10 10\n" +
		"\n" +
		"list\n" +
		"undo\n" +
		"list\n" +
		"redo\n" +
		"undo\n" +
		"undo\n" +
		"bogus\n" +
		"quit\n" +
		"draw rect 0 0 50 50\n"
	env := newTestEnv(t, input)
	require.NoError(t, env.run(t, "new Sketch"))

	require.NoError(t, env.run(t, "edit"))

	out := env.out.String()
	assert.Contains(t, out, `Editing "Sketch" (doc-1)`)
	assert.Contains(t, out, "✓ Added rect el-1")
	assert.Contains(t, out, "Found 1 element(s)")
	assert.Contains(t, out, "No elements.")
	assert.Contains(t, out, "Nothing to undo.")
	assert.Contains(t, out, `Error: invalid usage: unknown command "bogus"`)

	// отмена порождает компенсирующие события, команды после quit не выполняются
	assert.Equal(t, []models.EventType{
		models.EventAddElement,
		models.EventDeleteElement,
		models.EventAddElement,
		models.EventDeleteElement,
	}, env.backend.types("doc-1"))
}

func TestCli_EditEndsOnEOF(t *testing.T) {
	env := newTestEnv(t, "bg #000000\n")
	require.NoError(t, env.run(t, "new Sketch"))

	require.NoError(t, env.run(t, "edit doc-1"))
	assert.Equal(t, []models.EventType{models.EventChangeBackground}, env.backend.types("doc-1"))
}

func TestCli_EditLive(t *testing.T) {
	remote := models.Element{
		ID:    "remote-1",
		Style: models.Style{StrokeColor: "#1e1e1e", StrokeWidth: 2, Opacity: 100},
		Shape: models.Rect{Box: models.Box{X: 5, Y: 5, Width: 20, Height: 20}},
	}
	ev, err := models.NewAddElementEvent(remote)
	require.NoError(t, err)

	live := &LiveMock{
		SubscribeFunc: func(ctx context.Context, documentID string, handler realtime.Handler) error {
			handler(api.PeerMessage{EventType: string(ev.Type), EventData: ev.Payload, SenderID: "peer"})
			handler(api.PeerMessage{EventType: string(models.EventAddElement), EventData: json.RawMessage(`{}`)})
			return nil
		},
		UnsubscribeFunc: func(documentID string) {},
	}

	env := newTestEnv(t, "list\nquit\n", WithLive(live))
	require.NoError(t, env.run(t, "new Sketch"))

	require.NoError(t, env.run(t, "edit --live"))
	assert.Contains(t, env.out.String(), "remote-1")

	require.Len(t, live.SubscribeCalls(), 1)
	assert.Equal(t, "doc-1", live.SubscribeCalls()[0].DocumentID)
	require.Len(t, live.UnsubscribeCalls(), 1)
	// удалённые события сохраняет их автор
	assert.Empty(t, env.backend.log("doc-1"))
}

func TestCli_EditLiveErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		env := newTestEnv(t, "quit\n")
		require.NoError(t, env.run(t, "new Sketch"))

		err := env.run(t, "edit --live")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})

	t.Run("subscribe fails", func(t *testing.T) {
		live := &LiveMock{
			SubscribeFunc: func(ctx context.Context, documentID string, handler realtime.Handler) error {
				return errors.New("dial refused")
			},
		}
		env := newTestEnv(t, "quit\n", WithLive(live))
		require.NoError(t, env.run(t, "new Sketch"))

		err := env.run(t, "edit --live")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to join live session")
	})

	t.Run("unknown flag", func(t *testing.T) {
		env := newTestEnv(t, "")
		require.ErrorIs(t, env.run(t, "edit --loud"), ErrUsage)
	})
}
