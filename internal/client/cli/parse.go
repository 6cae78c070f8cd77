package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/inkboard/internal/models"
)

func parseNumbers(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrUsage, a)
		}
		out[i] = v
	}
	return out, nil
}

// parseShape разбирает "<kind> координаты [текст]".
func parseShape(args []string) (models.Shape, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: missing element kind", ErrUsage)
	}
	kind, rest := args[0], args[1:]

	switch kind {
	case "rect", "diamond", "circle", "ellipse":
		if len(rest) != 4 {
			return nil, fmt.Errorf("%w: draw %s x y w h", ErrUsage, kind)
		}
		box, err := parseBox(rest)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "rect":
			return models.Rect{Box: box}, nil
		case "diamond":
			return models.Diamond{Box: box}, nil
		}
		return models.Circle{Box: box}, nil

	case "arrow", "line":
		if len(rest) != 4 {
			return nil, fmt.Errorf("%w: draw %s x1 y1 x2 y2", ErrUsage, kind)
		}
		n, err := parseNumbers(rest)
		if err != nil {
			return nil, err
		}
		end := models.ArrowEndArrow
		if kind == "line" {
			end = models.ArrowEndNone
		}
		return models.Arrow{ArrowEnd: end, X1: n[0], Y1: n[1], X2: n[2], Y2: n[3]}, nil

	case "freehand", "pen":
		points, err := parsePoints(rest)
		if err != nil {
			return nil, err
		}
		return models.Freehand{Points: points}, nil

	case "text":
		if len(rest) < 5 {
			return nil, fmt.Errorf("%w: draw text x y w h <text>", ErrUsage)
		}
		box, err := parseBox(rest[:4])
		if err != nil {
			return nil, err
		}
		return models.Text{Text: strings.Join(rest[4:], " "), Box: box}, nil

	case "image":
		if len(rest) != 5 {
			return nil, fmt.Errorf("%w: draw image x y w h <src>", ErrUsage)
		}
		box, err := parseBox(rest[:4])
		if err != nil {
			return nil, err
		}
		return models.Image{Src: rest[4], Box: box}, nil
	}

	return nil, fmt.Errorf("%w: %q", models.ErrUnknownKind, kind)
}

func parseBox(args []string) (models.Box, error) {
	n, err := parseNumbers(args)
	if err != nil {
		return models.Box{}, err
	}
	return models.Box{X: n[0], Y: n[1], Width: n[2], Height: n[3]}, nil
}

// parsePoints разбирает точки вида "x,y".
func parsePoints(args []string) ([]models.Point, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: freehand needs at least two points x,y", ErrUsage)
	}
	points := make([]models.Point, 0, len(args))
	for _, a := range args {
		xs, ys, ok := strings.Cut(a, ",")
		if !ok {
			return nil, fmt.Errorf("%w: point %q must be x,y", ErrUsage, a)
		}
		n, err := parseNumbers([]string{xs, ys})
		if err != nil {
			return nil, err
		}
		points = append(points, models.Point{X: n[0], Y: n[1]})
	}
	return points, nil
}

// parsePatch разбирает пары key=value. Значение, не являющееся JSON,
// считается строкой: strokeColor=#e03131, text=hello.
func parsePatch(args []string) (models.Patch, error) {
	patch := make(models.Patch, len(args))
	for _, a := range args {
		key, value, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q must be key=value", ErrUsage, a)
		}
		if json.Valid([]byte(value)) {
			patch[key] = json.RawMessage(value)
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		patch[key] = raw
	}
	return patch, nil
}
