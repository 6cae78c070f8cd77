// Package geometry содержит чистые пространственные функции над элементами:
// bounding box, hit-test, маркеры изменения размера, частичное стирание.
// Пакет не хранит состояние.
package geometry

import (
	"math"
	"strings"

	"github.com/iudanet/inkboard/internal/models"
)

// Пороговые значения. Совпадают с поведением исходного редактора.
const (
	// FreehandPadding отступ bbox ломаной от крайних точек
	FreehandPadding = 4
	// ArrowPadding отступ bbox стрелки от концов
	ArrowPadding = 6
	// TextDefaultWidth ширина текста, если размер не задан
	TextDefaultWidth = 120
	// TextDefaultHeight высота текста, если размер не задан
	TextDefaultHeight = 30
	// ImageDefaultSize сторона изображения, если размер не задан
	ImageDefaultSize = 100

	// StrokeTolerance расстояние до ломаной, считающееся попаданием
	StrokeTolerance = 8
	// ArrowTolerance расстояние до отрезка стрелки, считающееся попаданием
	ArrowTolerance = 8
	// NearPathThreshold порог PointNearPath по умолчанию
	NearPathThreshold = 6
	// CircleStrokeTolerance нормированное расстояние эллипса для обычного попадания
	CircleStrokeTolerance = 1.15
	// CircleInsideTolerance нормированное расстояние эллипса для проверки "внутри"
	CircleInsideTolerance = 1.0
	// DiamondTolerance нормированное L1 расстояние ромба
	DiamondTolerance = 1.1

	// MinFreehandPoints минимум точек, при котором ломаная сохраняется
	MinFreehandPoints = 3
	// MinShapeSize фигура меньше этого размера по обеим осям отбрасывается
	MinShapeSize = 5
	// MinArrowLength стрелка короче этого отбрасывается
	MinArrowLength = 10
	// MinResizeSize минимальный размер при изменении размера маркером
	MinResizeSize = 20
	// HandleGrabTolerance радиус захвата маркера
	HandleGrabTolerance = 6
	// GridSize шаг сетки привязки
	GridSize = 10
)

// HitOptions параметры hit-test
type HitOptions struct {
	// CheckInside требует попадания строго внутрь фигуры (используется заливкой)
	CheckInside bool
}

// BoundingBox возвращает ограничивающий прямоугольник элемента.
func BoundingBox(el models.Element) models.Box {
	switch s := el.Shape.(type) {
	case models.Freehand:
		return pointsBox(s.Points, FreehandPadding)
	case models.Arrow:
		return pointsBox([]models.Point{{X: s.X1, Y: s.Y1}, {X: s.X2, Y: s.Y2}}, ArrowPadding)
	case models.Text:
		return withDefaults(s.Box, TextDefaultWidth, TextDefaultHeight)
	case models.Image:
		return withDefaults(s.Box, ImageDefaultSize, ImageDefaultSize)
	case models.Rect:
		return s.Box
	case models.Diamond:
		return s.Box
	case models.Circle:
		return s.Box
	default:
		return models.Box{}
	}
}

func withDefaults(b models.Box, w, h float64) models.Box {
	if b.Width == 0 {
		b.Width = w
	}
	if b.Height == 0 {
		b.Height = h
	}
	return b
}

func pointsBox(points []models.Point, pad float64) models.Box {
	if len(points) == 0 {
		return models.Box{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return models.Box{
		X:      minX - pad,
		Y:      minY - pad,
		Width:  maxX - minX + 2*pad,
		Height: maxY - minY + 2*pad,
	}
}

// NormalizeBox приводит отрицательные размеры к положительным.
func NormalizeBox(b models.Box) models.Box {
	if b.Width < 0 {
		b.X += b.Width
		b.Width = -b.Width
	}
	if b.Height < 0 {
		b.Y += b.Height
		b.Height = -b.Height
	}
	return b
}

// PointInRect проверяет попадание точки в прямоугольник (границы включительно).
func PointInRect(px, py float64, r models.Box) bool {
	r = NormalizeBox(r)
	return px >= r.X && px <= r.X+r.Width && py >= r.Y && py <= r.Y+r.Height
}

// Dist евклидово расстояние
func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistToSegment расстояние от точки до отрезка (проекция с ограничением на концы).
func DistToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Dist(px, py, x1, y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return Dist(px, py, x1+t*dx, y1+t*dy)
}

// PointNearPath проверяет, лежит ли точка ближе threshold к какому-либо отрезку ломаной.
func PointNearPath(px, py float64, points []models.Point, threshold float64) bool {
	for i := 0; i < len(points)-1; i++ {
		if DistToSegment(px, py, points[i].X, points[i].Y, points[i+1].X, points[i+1].Y) < threshold {
			return true
		}
	}
	return false
}

// PointInPolygon ray casting по замкнутому многоугольнику.
// Открытая ломаная считается замкнутой последним отрезком.
func PointInPolygon(px, py float64, points []models.Point) bool {
	inside := false
	n := len(points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := points[i].X, points[i].Y
		xj, yj := points[j].X, points[j].Y
		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// HitTest проверяет попадание точки (px, py) в элемент.
func HitTest(px, py float64, el models.Element, opts HitOptions) bool {
	switch s := el.Shape.(type) {
	case models.Freehand:
		if el.Style.Filled() || opts.CheckInside {
			return PointInPolygon(px, py, s.Points)
		}
		return PointInRect(px, py, BoundingBox(el)) && PointNearPath(px, py, s.Points, StrokeTolerance)

	case models.Circle:
		b := NormalizeBox(s.Box)
		rx, ry := b.Width/2, b.Height/2
		if rx == 0 || ry == 0 {
			return false
		}
		dx := (px - (b.X + rx)) / rx
		dy := (py - (b.Y + ry)) / ry
		limit := CircleStrokeTolerance
		if opts.CheckInside {
			limit = CircleInsideTolerance
		}
		return dx*dx+dy*dy <= limit

	case models.Diamond:
		b := NormalizeBox(s.Box)
		hw, hh := b.Width/2, b.Height/2
		if hw == 0 || hh == 0 {
			return false
		}
		return math.Abs(px-(b.X+hw))/hw+math.Abs(py-(b.Y+hh))/hh <= DiamondTolerance

	case models.Arrow:
		return DistToSegment(px, py, s.X1, s.Y1, s.X2, s.Y2) < ArrowTolerance ||
			PointInRect(px, py, BoundingBox(el))

	case models.Rect, models.Text, models.Image:
		return PointInRect(px, py, BoundingBox(el))

	default:
		return false
	}
}

// TopmostAt возвращает верхний (последний по z-order) элемент под точкой.
func TopmostAt(elements []models.Element, px, py float64, opts HitOptions) (models.Element, bool) {
	for i := len(elements) - 1; i >= 0; i-- {
		if HitTest(px, py, elements[i], opts) {
			return elements[i], true
		}
	}
	return models.Element{}, false
}

// Translate сдвигает элемент на (dx, dy).
func Translate(el models.Element, dx, dy float64) models.Element {
	switch s := el.Shape.(type) {
	case models.Freehand:
		points := make([]models.Point, len(s.Points))
		for i, p := range s.Points {
			points[i] = models.Point{X: p.X + dx, Y: p.Y + dy}
		}
		el.Shape = models.Freehand{Points: points}
	case models.Arrow:
		s.X1, s.Y1, s.X2, s.Y2 = s.X1+dx, s.Y1+dy, s.X2+dx, s.Y2+dy
		el.Shape = s
	case models.Rect:
		s.X, s.Y = s.X+dx, s.Y+dy
		el.Shape = s
	case models.Diamond:
		s.X, s.Y = s.X+dx, s.Y+dy
		el.Shape = s
	case models.Circle:
		s.X, s.Y = s.X+dx, s.Y+dy
		el.Shape = s
	case models.Text:
		s.X, s.Y = s.X+dx, s.Y+dy
		el.Shape = s
	case models.Image:
		s.X, s.Y = s.X+dx, s.Y+dy
		el.Shape = s
	}
	return el
}

// Normalize приводит отрицательные ширину/высоту фигур к положительным.
func Normalize(el models.Element) models.Element {
	switch s := el.Shape.(type) {
	case models.Rect:
		el.Shape = models.Rect{Box: NormalizeBox(s.Box)}
	case models.Diamond:
		el.Shape = models.Diamond{Box: NormalizeBox(s.Box)}
	case models.Circle:
		el.Shape = models.Circle{Box: NormalizeBox(s.Box)}
	case models.Text:
		s.Box = NormalizeBox(s.Box)
		el.Shape = s
	case models.Image:
		s.Box = NormalizeBox(s.Box)
		el.Shape = s
	case models.Arrow, models.Freehand:
	}
	return el
}

// IsDegenerate сообщает, что элемент слишком мал, чтобы попасть в документ.
func IsDegenerate(el models.Element) bool {
	switch s := el.Shape.(type) {
	case models.Rect:
		return tinyBox(s.Box)
	case models.Diamond:
		return tinyBox(s.Box)
	case models.Circle:
		return tinyBox(s.Box)
	case models.Arrow:
		return Dist(s.X1, s.Y1, s.X2, s.Y2) < MinArrowLength
	case models.Freehand:
		return len(s.Points) < MinFreehandPoints
	case models.Text:
		return strings.TrimSpace(s.Text) == ""
	case models.Image:
		return s.Src == ""
	default:
		return true
	}
}

func tinyBox(b models.Box) bool {
	return math.Abs(b.Width) < MinShapeSize && math.Abs(b.Height) < MinShapeSize
}

// Snap привязывает значение к сетке.
func Snap(v, size float64) float64 {
	if size <= 0 {
		return v
	}
	return math.Round(v/size) * size
}
