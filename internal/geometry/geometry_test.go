package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/inkboard/internal/models"
)

func rect(id string, x, y, w, h float64) models.Element {
	return models.Element{ID: id, Style: models.Style{Opacity: 100}, Shape: models.Rect{Box: models.Box{X: x, Y: y, Width: w, Height: h}}}
}

func freehand(id string, points ...models.Point) models.Element {
	return models.Element{ID: id, Style: models.Style{Opacity: 100}, Shape: models.Freehand{Points: points}}
}

func TestBoundingBox(t *testing.T) {
	tests := []struct {
		name string
		el   models.Element
		want models.Box
	}{
		{
			name: "rect uses stored geometry",
			el:   rect("r", 1, 2, 3, 4),
			want: models.Box{X: 1, Y: 2, Width: 3, Height: 4},
		},
		{
			name: "freehand padded by 4",
			el:   freehand("f", models.Point{X: 10, Y: 10}, models.Point{X: 20, Y: 30}, models.Point{X: 15, Y: 5}),
			want: models.Box{X: 6, Y: 1, Width: 18, Height: 33},
		},
		{
			name: "arrow padded by 6",
			el:   models.Element{Shape: models.Arrow{X1: 50, Y1: 0, X2: 0, Y2: 20}},
			want: models.Box{X: -6, Y: -6, Width: 62, Height: 32},
		},
		{
			name: "text falls back to default size",
			el:   models.Element{Shape: models.Text{Box: models.Box{X: 5, Y: 5}, Text: "hi"}},
			want: models.Box{X: 5, Y: 5, Width: TextDefaultWidth, Height: TextDefaultHeight},
		},
		{
			name: "image falls back to default size",
			el:   models.Element{Shape: models.Image{Box: models.Box{X: 1, Y: 1}, Src: "x"}},
			want: models.Box{X: 1, Y: 1, Width: ImageDefaultSize, Height: ImageDefaultSize},
		},
		{
			name: "empty freehand",
			el:   freehand("f"),
			want: models.Box{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BoundingBox(tt.el))
		})
	}
}

func TestHitTest(t *testing.T) {
	circle := models.Element{Shape: models.Circle{Box: models.Box{X: 0, Y: 0, Width: 100, Height: 100}}}
	diamond := models.Element{Shape: models.Diamond{Box: models.Box{X: 0, Y: 0, Width: 100, Height: 100}}}
	arrow := models.Element{Shape: models.Arrow{X1: 0, Y1: 0, X2: 100, Y2: 100}}
	stroke := freehand("f", models.Point{X: 0, Y: 0}, models.Point{X: 100, Y: 0}, models.Point{X: 100, Y: 100})
	filled := stroke
	filled.Style.FillColor = "#00ff00"

	tests := []struct {
		name string
		el   models.Element
		px   float64
		py   float64
		opts HitOptions
		want bool
	}{
		{name: "rect inside", el: rect("r", 0, 0, 10, 10), px: 5, py: 5, want: true},
		{name: "rect edge inclusive", el: rect("r", 0, 0, 10, 10), px: 10, py: 10, want: true},
		{name: "rect outside", el: rect("r", 0, 0, 10, 10), px: 11, py: 5, want: false},
		{name: "circle center", el: circle, px: 50, py: 50, want: true},
		// точка на расстоянии 1.05 от центра в нормированных единицах
		{name: "circle stroke tolerance", el: circle, px: 50 + 50*1.05, py: 50, want: true},
		{name: "circle inside rejects tolerance band", el: circle, px: 50 + 50*1.05, py: 50, opts: HitOptions{CheckInside: true}, want: false},
		{name: "circle far", el: circle, px: 50 + 50*1.2, py: 50, want: false},
		{name: "circle corner of bbox", el: circle, px: 1, py: 1, want: false},
		{name: "diamond center", el: diamond, px: 50, py: 50, want: true},
		{name: "diamond corner of bbox", el: diamond, px: 2, py: 2, want: false},
		{name: "diamond tip with tolerance", el: diamond, px: 104, py: 50, want: true},
		{name: "arrow near segment", el: arrow, px: 50, py: 55, want: true},
		{name: "arrow padded bbox", el: arrow, px: -5, py: 100, want: true},
		{name: "arrow outside", el: arrow, px: -10, py: 100, want: false},
		{name: "freehand near stroke", el: stroke, px: 50, py: 7, want: true},
		{name: "freehand inside bbox but far from stroke", el: stroke, px: 60, py: 50, want: false},
		{name: "filled freehand interior", el: filled, px: 60, py: 30, want: true},
		{name: "check inside freehand interior", el: stroke, px: 60, py: 30, opts: HitOptions{CheckInside: true}, want: true},
		{name: "check inside freehand exterior", el: stroke, px: 30, py: 60, opts: HitOptions{CheckInside: true}, want: false},
		{name: "no shape", el: models.Element{}, px: 0, py: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HitTest(tt.px, tt.py, tt.el, tt.opts))
		})
	}
}

func TestTopmostAt_LaterZOrderWins(t *testing.T) {
	elements := []models.Element{rect("bottom", 0, 0, 50, 50), rect("top", 10, 10, 50, 50)}

	got, ok := TopmostAt(elements, 20, 20, HitOptions{})
	assert.True(t, ok)
	assert.Equal(t, "top", got.ID)

	got, ok = TopmostAt(elements, 5, 5, HitOptions{})
	assert.True(t, ok)
	assert.Equal(t, "bottom", got.ID)

	_, ok = TopmostAt(elements, 500, 500, HitOptions{})
	assert.False(t, ok)
}

func TestDistToSegment(t *testing.T) {
	assert.InDelta(t, 5, DistToSegment(5, 5, 0, 0, 10, 0), 1e-9)
	// проекция за пределами отрезка ограничивается концом
	assert.InDelta(t, 5, DistToSegment(15, 0, 0, 0, 10, 0), 1e-9)
	// вырожденный отрезок
	assert.InDelta(t, 5, DistToSegment(3, 4, 0, 0, 0, 0), 1e-9)
}

func TestPointNearPath(t *testing.T) {
	points := []models.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}
	assert.True(t, PointNearPath(5, 5, points, NearPathThreshold))
	assert.False(t, PointNearPath(5, 7, points, NearPathThreshold))
	assert.False(t, PointNearPath(0, 0, points[:1], NearPathThreshold))
}

func TestIsDegenerate(t *testing.T) {
	tests := []struct {
		name string
		el   models.Element
		want bool
	}{
		{name: "1x1 rect", el: rect("r", 0, 0, 1, 1), want: true},
		{name: "4x4 rect", el: rect("r", 0, 0, 4, 4), want: true},
		{name: "thin but long rect", el: rect("r", 0, 0, 1, 40), want: false},
		{name: "5x5 rect", el: rect("r", 0, 0, 5, 5), want: false},
		{name: "negative extents", el: rect("r", 0, 0, -30, -30), want: false},
		{name: "short arrow", el: models.Element{Shape: models.Arrow{X2: 6, Y2: 6}}, want: true},
		{name: "arrow", el: models.Element{Shape: models.Arrow{X2: 10}}, want: false},
		{name: "two point stroke", el: freehand("f", models.Point{}, models.Point{X: 1}), want: true},
		{name: "three point stroke", el: freehand("f", models.Point{}, models.Point{X: 1}, models.Point{X: 2}), want: false},
		{name: "blank text", el: models.Element{Shape: models.Text{Text: "  \n"}}, want: true},
		{name: "text", el: models.Element{Shape: models.Text{Text: "a"}}, want: false},
		{name: "image without source", el: models.Element{Shape: models.Image{}}, want: true},
		{name: "no shape", el: models.Element{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDegenerate(tt.el))
		})
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize(rect("r", 50, 50, -20, -30))
	assert.Equal(t, models.Rect{Box: models.Box{X: 30, Y: 20, Width: 20, Height: 30}}, got.Shape)
}

func TestTranslate(t *testing.T) {
	stroke := freehand("f", models.Point{X: 1, Y: 1}, models.Point{X: 2, Y: 2}, models.Point{X: 3, Y: 3})
	moved := Translate(stroke, 10, -1)

	assert.Equal(t, []models.Point{{X: 11, Y: 0}, {X: 12, Y: 1}, {X: 13, Y: 2}}, moved.Shape.(models.Freehand).Points)
	assert.Equal(t, models.Point{X: 1, Y: 1}, stroke.Shape.(models.Freehand).Points[0])

	arrow := Translate(models.Element{Shape: models.Arrow{X1: 0, Y1: 0, X2: 10, Y2: 10}}, 5, 5)
	assert.Equal(t, models.Arrow{X1: 5, Y1: 5, X2: 15, Y2: 15}, arrow.Shape)

	text := Translate(models.Element{Shape: models.Text{Text: "a", Box: models.Box{X: 1, Y: 1}}}, 1, 1)
	assert.Equal(t, models.Box{X: 2, Y: 2}, text.Shape.(models.Text).Box)
}

func TestSnap(t *testing.T) {
	assert.Equal(t, float64(20), Snap(17, GridSize))
	assert.Equal(t, float64(10), Snap(14.9, GridSize))
	assert.Equal(t, float64(-10), Snap(-6, GridSize))
	assert.Equal(t, 3.3, Snap(3.3, 0))
}
