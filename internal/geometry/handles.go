package geometry

import (
	"math"
	"strings"

	"github.com/iudanet/inkboard/internal/models"
)

// HandleID компасное обозначение маркера
type HandleID string

const (
	HandleNW HandleID = "nw"
	HandleN  HandleID = "n"
	HandleNE HandleID = "ne"
	HandleE  HandleID = "e"
	HandleSE HandleID = "se"
	HandleS  HandleID = "s"
	HandleSW HandleID = "sw"
	HandleW  HandleID = "w"
)

// Handle маркер изменения размера
type Handle struct {
	ID HandleID
	X  float64
	Y  float64
}

// ResizeHandles возвращает восемь маркеров: углы и середины сторон.
func ResizeHandles(bb models.Box) []Handle {
	x, y, w, h := bb.X, bb.Y, bb.Width, bb.Height
	return []Handle{
		{ID: HandleNW, X: x, Y: y},
		{ID: HandleN, X: x + w/2, Y: y},
		{ID: HandleNE, X: x + w, Y: y},
		{ID: HandleE, X: x + w, Y: y + h/2},
		{ID: HandleSE, X: x + w, Y: y + h},
		{ID: HandleS, X: x + w/2, Y: y + h},
		{ID: HandleSW, X: x, Y: y + h},
		{ID: HandleW, X: x, Y: y + h/2},
	}
}

// HandleAt ищет маркер под указателем.
func HandleAt(handles []Handle, px, py float64) (Handle, bool) {
	for _, h := range handles {
		if math.Abs(px-h.X) < HandleGrabTolerance && math.Abs(py-h.Y) < HandleGrabTolerance {
			return h, true
		}
	}
	return Handle{}, false
}

// ResizeBox вычисляет новый bbox при перетаскивании маркера на (dx, dy)
// от исходного положения. Размер не становится меньше MinResizeSize.
func ResizeBox(id HandleID, orig models.Box, dx, dy float64) models.Box {
	out := orig
	s := string(id)
	if strings.Contains(s, "e") {
		out.Width = math.Max(MinResizeSize, orig.Width+dx)
	}
	if strings.Contains(s, "s") {
		out.Height = math.Max(MinResizeSize, orig.Height+dy)
	}
	if strings.Contains(s, "w") {
		out.X = orig.X + dx
		out.Width = math.Max(MinResizeSize, orig.Width-dx)
	}
	if strings.Contains(s, "n") {
		out.Y = orig.Y + dy
		out.Height = math.Max(MinResizeSize, orig.Height-dy)
	}
	return out
}

// Resize вписывает элемент в новый bbox.
// Для фигур с прямоугольной геометрией bbox становится геометрией,
// для стрелок и ломаных координаты отображаются аффинно без учёта отступа.
func Resize(el models.Element, to models.Box) models.Element {
	switch s := el.Shape.(type) {
	case models.Rect:
		el.Shape = models.Rect{Box: to}
	case models.Diamond:
		el.Shape = models.Diamond{Box: to}
	case models.Circle:
		el.Shape = models.Circle{Box: to}
	case models.Text:
		s.Box = to
		el.Shape = s
	case models.Image:
		s.Box = to
		el.Shape = s
	case models.Arrow:
		m := newBoxMap(BoundingBox(el), to, ArrowPadding)
		s.X1, s.Y1 = m.apply(s.X1, s.Y1)
		s.X2, s.Y2 = m.apply(s.X2, s.Y2)
		el.Shape = s
	case models.Freehand:
		m := newBoxMap(BoundingBox(el), to, FreehandPadding)
		points := make([]models.Point, len(s.Points))
		for i, p := range s.Points {
			points[i].X, points[i].Y = m.apply(p.X, p.Y)
		}
		el.Shape = models.Freehand{Points: points}
	}
	return el
}

// boxMap аффинное отображение внутренней области (bbox минус отступ) одного bbox в другой.
type boxMap struct {
	from, to models.Box
}

func newBoxMap(from, to models.Box, pad float64) boxMap {
	inset := func(b models.Box) models.Box {
		return models.Box{
			X:      b.X + pad,
			Y:      b.Y + pad,
			Width:  math.Max(0, b.Width-2*pad),
			Height: math.Max(0, b.Height-2*pad),
		}
	}
	return boxMap{from: inset(from), to: inset(to)}
}

func (m boxMap) apply(x, y float64) (float64, float64) {
	return scale(x, m.from.X, m.from.Width, m.to.X, m.to.Width),
		scale(y, m.from.Y, m.from.Height, m.to.Y, m.to.Height)
}

func scale(v, fromOrigin, fromSize, toOrigin, toSize float64) float64 {
	if fromSize == 0 {
		return toOrigin + toSize/2
	}
	return toOrigin + (v-fromOrigin)*toSize/fromSize
}
