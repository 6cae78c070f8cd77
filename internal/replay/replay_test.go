package replay

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/inkboard/internal/models"
)

func rectElement(id string, x float64) models.Element {
	return models.Element{
		ID:    id,
		Style: models.Style{Opacity: models.DefaultOpacity},
		Shape: models.Rect{Box: models.Box{X: x, Y: 0, Width: 10, Height: 10}},
	}
}

func addEvent(t *testing.T, order int64, el models.Element) models.Event {
	t.Helper()
	ev, err := models.NewAddElementEvent(el)
	require.NoError(t, err)
	return ev.WithOrder(order)
}

func moveEvent(t *testing.T, order int64, id string, x float64) models.Event {
	t.Helper()
	p, err := models.NewPatch(map[string]any{"x": x})
	require.NoError(t, err)
	ev, err := models.NewPatchEvent(models.EventMoveElement, id, p)
	require.NoError(t, err)
	return ev.WithOrder(order)
}

func ids(doc models.Document) []string {
	out := make([]string, 0, len(doc.Elements))
	for _, el := range doc.Elements {
		out = append(out, el.ID)
	}
	return out
}

// sampleLog журнал из 30 событий всех типов
func sampleLog(t *testing.T) []models.Event {
	t.Helper()
	var events []models.Event
	order := int64(0)
	next := func() int64 { order++; return order }

	for i := 0; i < 6; i++ {
		events = append(events, addEvent(t, next(), rectElement(fmt.Sprintf("e%d", i), float64(i*20))))
	}
	events = append(events,
		moveEvent(t, next(), "e1", 300),
		models.NewReorderElementEvent("e0", models.DirectionFront).WithOrder(next()),
		models.NewChangeBackgroundEvent("#000000").WithOrder(next()),
		models.NewDeleteElementEvent("e3").WithOrder(next()),
		models.NewReorderElementEvent("e5", models.DirectionBackward).WithOrder(next()),
		moveEvent(t, next(), "e3", 50), // устаревшая ссылка
		models.NewReorderElementEvent("e2", models.DirectionBack).WithOrder(next()),
	)
	for i := 6; i < 10; i++ {
		events = append(events, addEvent(t, next(), rectElement(fmt.Sprintf("e%d", i), float64(i*20))))
	}
	events = append(events,
		models.NewReorderElementEvent("e6", models.DirectionForward).WithOrder(next()),
		models.NewClearCanvasEvent().WithOrder(next()),
		addEvent(t, next(), rectElement("after-clear", 1)),
		models.NewChangeBackgroundEvent("#ffffff").WithOrder(next()),
		addEvent(t, next(), rectElement("z", 2)),
		models.NewReorderElementEvent("after-clear", models.DirectionForward).WithOrder(next()),
		moveEvent(t, next(), "z", 99),
	)
	return events
}

func TestApply_AddAndDelete(t *testing.T) {
	doc := models.NewDocument()

	doc1, err := Apply(doc, addEvent(t, 1, rectElement("a", 0)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(doc1))
	assert.Empty(t, doc.Elements, "input document must not change")

	doc2, err := Apply(doc1, models.NewDeleteElementEvent("a").WithOrder(2))
	require.NoError(t, err)
	assert.Empty(t, doc2.Elements)
	assert.Len(t, doc1.Elements, 1)
}

func TestApply_StaleReferenceIsNoop(t *testing.T) {
	doc, err := Apply(models.NewDocument(), addEvent(t, 1, rectElement("a", 0)))
	require.NoError(t, err)

	p, err := models.NewPatch(map[string]any{"x": 5})
	require.NoError(t, err)

	for _, typ := range []models.EventType{models.EventUpdateElement, models.EventMoveElement, models.EventResizeElement} {
		ev, err := models.NewPatchEvent(typ, "missing", p)
		require.NoError(t, err)

		got, err := Apply(doc, ev)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	}

	got, err := Apply(doc, models.NewDeleteElementEvent("missing"))
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	got, err = Apply(doc, models.NewReorderElementEvent("missing", models.DirectionFront))
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestApply_UpdateMergesFields(t *testing.T) {
	doc, err := Apply(models.NewDocument(), addEvent(t, 1, rectElement("a", 0)))
	require.NoError(t, err)

	doc2, err := Apply(doc, moveEvent(t, 2, "a", 42))
	require.NoError(t, err)

	assert.Equal(t, models.Rect{Box: models.Box{X: 42, Width: 10, Height: 10}}, doc2.Elements[0].Shape)
	assert.Equal(t, models.Rect{Box: models.Box{X: 0, Width: 10, Height: 10}}, doc.Elements[0].Shape)
}

func TestApply_ClearResetsBackground(t *testing.T) {
	doc := models.NewDocument()
	doc, err := Apply(doc, models.NewChangeBackgroundEvent("#111111"))
	require.NoError(t, err)
	doc, err = Apply(doc, addEvent(t, 2, rectElement("a", 0)))
	require.NoError(t, err)

	doc, err = Apply(doc, models.NewClearCanvasEvent())
	require.NoError(t, err)
	assert.Empty(t, doc.Elements)
	assert.Equal(t, models.DefaultBackground, doc.BackgroundColor)
}

func TestApply_Malformed(t *testing.T) {
	doc, err := Apply(models.NewDocument(), addEvent(t, 1, rectElement("a", 0)))
	require.NoError(t, err)

	tests := []struct {
		name  string
		event models.Event
	}{
		{name: "unknown type", event: models.Event{Type: "SPIN_ELEMENT", Payload: json.RawMessage(`{"id":"a"}`)}},
		{name: "missing id", event: models.Event{Type: models.EventDeleteElement, Payload: json.RawMessage(`{}`)}},
		{name: "duplicate add", event: addEvent(t, 2, rectElement("a", 5))},
		{name: "bad patch value", event: models.Event{Type: models.EventUpdateElement, Payload: json.RawMessage(`{"id":"a","width":"wide"}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(doc, tt.event)
			assert.ErrorIs(t, err, models.ErrMalformedEvent)
			assert.Equal(t, doc, got)
		})
	}
}

func TestReorder(t *testing.T) {
	elements := []models.Element{rectElement("a", 0), rectElement("b", 0), rectElement("c", 0)}
	idsOf := func(els []models.Element) []string {
		return ids(models.Document{Elements: els})
	}

	tests := []struct {
		name string
		idx  int
		dir  models.Direction
		want []string
	}{
		{name: "forward", idx: 0, dir: models.DirectionForward, want: []string{"b", "a", "c"}},
		{name: "forward clamped", idx: 2, dir: models.DirectionForward, want: []string{"a", "b", "c"}},
		{name: "backward", idx: 2, dir: models.DirectionBackward, want: []string{"a", "c", "b"}},
		{name: "backward clamped", idx: 0, dir: models.DirectionBackward, want: []string{"a", "b", "c"}},
		{name: "front", idx: 0, dir: models.DirectionFront, want: []string{"b", "c", "a"}},
		{name: "back", idx: 2, dir: models.DirectionBack, want: []string{"c", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idsOf(Reorder(elements, tt.idx, tt.dir)))
			assert.Equal(t, []string{"a", "b", "c"}, idsOf(elements))
		})
	}
}

func TestReplay_SnapshotScenario(t *testing.T) {
	base := models.Snapshot{Elements: []models.Element{}, BackgroundColor: models.DefaultBackground, LastEventOrder: 10}
	events := []models.Event{
		{Type: models.EventAddElement, Order: 11, Payload: json.RawMessage(`{"id":"a","type":"rect","x":0,"y":0,"width":10,"height":10}`)},
		{Type: models.EventDeleteElement, Order: 12, Payload: json.RawMessage(`{"id":"a"}`)},
	}

	res := Replay(base, events)

	assert.Empty(t, res.Document.Elements)
	assert.Equal(t, int64(12), res.LastEventOrder)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, models.DefaultBackground, res.Document.BackgroundColor)
}

func TestReplay_Determinism(t *testing.T) {
	events := sampleLog(t)
	want := Replay(models.EmptySnapshot(), events)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]models.Event, len(events))
		copy(shuffled, events)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := Replay(models.EmptySnapshot(), shuffled)
		assert.Equal(t, want.Document, got.Document)
		assert.Equal(t, want.LastEventOrder, got.LastEventOrder)
	}

	// одинаковый результат при любом разбиении на пачки
	for _, chunk := range []int{1, 3, 7, len(events)} {
		snap := models.EmptySnapshot()
		for start := 0; start < len(events); start += chunk {
			end := min(start+chunk, len(events))
			res := Replay(snap, events[start:end])
			snap = models.SnapshotOf(res.Document, res.LastEventOrder)
		}
		assert.Equal(t, want.Document.Elements, snap.Elements, "chunk=%d", chunk)
		assert.Equal(t, want.Document.BackgroundColor, snap.BackgroundColor, "chunk=%d", chunk)
	}
}

func TestReplay_IdempotentSnapshotting(t *testing.T) {
	events := sampleLog(t)
	full := Replay(models.EmptySnapshot(), events)

	for cut := 0; cut <= len(events); cut++ {
		prefix := Replay(models.EmptySnapshot(), events[:cut])
		snap := models.SnapshotOf(prefix.Document, prefix.LastEventOrder)

		// передаём весь журнал: события до снапшота должны отбрасываться
		got := Replay(snap, events)
		assert.Equal(t, full.Document, got.Document, "cut=%d", cut)
		assert.Equal(t, full.LastEventOrder, got.LastEventOrder)
	}
}

func TestReplay_DuplicateOrdersAppliedOnce(t *testing.T) {
	add := addEvent(t, 1, rectElement("a", 0))
	move := moveEvent(t, 2, "a", 10)

	res := Replay(models.EmptySnapshot(), []models.Event{add, move, add, move})

	require.Len(t, res.Document.Elements, 1)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, 2, res.Duplicates)
	assert.Equal(t, 0, res.Skipped)
}

func TestReplay_SkipsMalformedWithDiagnostics(t *testing.T) {
	events := []models.Event{
		addEvent(t, 1, rectElement("a", 0)),
		{Type: "BOGUS", Order: 2, Payload: json.RawMessage(`{}`)},
		{Type: models.EventAddElement, Order: 3, Payload: json.RawMessage(`{"id":"b"}`)},
		addEvent(t, 4, rectElement("c", 0)),
	}

	var skipped []int64
	res := Replay(models.EmptySnapshot(), events, WithDiagnostics(func(ev models.Event, err error) {
		assert.ErrorIs(t, err, models.ErrMalformedEvent)
		skipped = append(skipped, ev.Order)
	}))

	assert.Equal(t, []string{"a", "c"}, ids(res.Document))
	assert.Equal(t, []int64{2, 3}, skipped)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, int64(4), res.LastEventOrder)
}

func TestReplay_DoesNotAliasSnapshot(t *testing.T) {
	base := models.Snapshot{
		Elements: []models.Element{{ID: "f", Shape: models.Freehand{Points: []models.Point{{X: 1}, {X: 2}, {X: 3}}}}},
	}

	res := Replay(base, nil, WithCanvasSize(models.CanvasSize{Width: 800, Height: 600}))
	res.Document.Elements[0].Shape.(models.Freehand).Points[0].X = 100

	assert.Equal(t, float64(1), base.Elements[0].Shape.(models.Freehand).Points[0].X)
	assert.Equal(t, models.CanvasSize{Width: 800, Height: 600}, res.Document.CanvasSize)
	assert.Equal(t, models.DefaultBackground, res.Document.BackgroundColor)
}
