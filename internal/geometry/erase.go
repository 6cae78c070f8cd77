package geometry

import (
	"math"

	"github.com/iudanet/inkboard/internal/models"
)

// eraseEpsilon точки на самой границе ластика не стираются,
// поэтому повторное стирание в той же позиции ничего не меняет.
const eraseEpsilon = 1e-6

// EraseFromFreehand стирает часть ломаной кругом (ex, ey, radius).
//
// Точки внутри круга удаляются, оставшиеся разбиваются на максимальные
// непрерывные участки. Каждый участок обрезается по границе ластика:
// к нему добавляется точка пересечения отрезка с окружностью.
// Участки короче MinFreehandPoints отбрасываются. Каждый новый участок
// получает свежий id из newID, исходный id больше не используется.
//
// Если ластик не задевает ломаную, возвращается []Element{el} без изменений.
// Элементы других типов возвращаются как есть.
func EraseFromFreehand(el models.Element, ex, ey, radius float64, newID func() string) []models.Element {
	fh, ok := el.Shape.(models.Freehand)
	if !ok || radius <= 0 {
		return []models.Element{el}
	}
	if !circleIntersectsBox(ex, ey, radius, BoundingBox(el)) {
		return []models.Element{el}
	}

	points := fh.Points
	removed := make([]bool, len(points))
	touched := false
	for i, p := range points {
		if Dist(p.X, p.Y, ex, ey) < radius-eraseEpsilon {
			removed[i] = true
			touched = true
		}
	}
	if !touched {
		return []models.Element{el}
	}

	center := models.Point{X: ex, Y: ey}
	var result []models.Element
	for start := 0; start < len(points); {
		if removed[start] {
			start++
			continue
		}
		end := start
		for end+1 < len(points) && !removed[end+1] {
			end++
		}

		run := make([]models.Point, 0, end-start+3)
		if start > 0 {
			run = appendDistinct(run, boundaryPoint(points[start], points[start-1], center, radius))
		}
		for i := start; i <= end; i++ {
			run = appendDistinct(run, points[i])
		}
		if end < len(points)-1 {
			run = appendDistinct(run, boundaryPoint(points[end], points[end+1], center, radius))
		}

		if len(run) >= MinFreehandPoints {
			result = append(result, models.Element{
				ID:    newID(),
				Style: el.Style,
				Shape: models.Freehand{Points: run},
			})
		}
		start = end + 1
	}
	return result
}

// boundaryPoint точка пересечения отрезка kept->gone с окружностью,
// ближайшая к сохранённой точке kept.
func boundaryPoint(kept, gone, c models.Point, r float64) models.Point {
	dx, dy := gone.X-kept.X, gone.Y-kept.Y
	fx, fy := kept.X-c.X, kept.Y-c.Y

	a := dx*dx + dy*dy
	if a == 0 {
		return kept
	}
	b := 2 * (fx*dx + fy*dy)
	cc := fx*fx + fy*fy - r*r
	disc := b*b - 4*a*cc
	if disc < 0 {
		return kept
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)
	t = math.Max(0, math.Min(1, t))
	return models.Point{X: kept.X + t*dx, Y: kept.Y + t*dy}
}

func appendDistinct(run []models.Point, p models.Point) []models.Point {
	if n := len(run); n > 0 && Dist(run[n-1].X, run[n-1].Y, p.X, p.Y) < eraseEpsilon {
		return run
	}
	return append(run, p)
}

func circleIntersectsBox(cx, cy, r float64, b models.Box) bool {
	b = NormalizeBox(b)
	nx := math.Max(b.X, math.Min(cx, b.X+b.Width))
	ny := math.Max(b.Y, math.Min(cy, b.Y+b.Height))
	return Dist(cx, cy, nx, ny) <= r
}
