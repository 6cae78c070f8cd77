package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ColorPattern допустимый формат цвета: #rgb, #rrggbb или #rrggbbaa
var ColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

const (
	// ColorTransparent прозрачный фон
	ColorTransparent = "transparent"

	// MaxTitleLen максимальная длина названия документа в символах
	MaxTitleLen = 120

	// MaxCanvasSide максимальная сторона холста в пикселях
	MaxCanvasSide = 20000
)

// ValidateColor проверяет цвет фона или контура
func ValidateColor(color string) error {
	if color == "" {
		return fmt.Errorf("color cannot be empty")
	}

	if color == ColorTransparent {
		return nil
	}

	if !ColorPattern.MatchString(color) {
		return fmt.Errorf("color %q must be a hex value like #fafafa", color)
	}

	return nil
}

// ValidateTitle проверяет название документа
// Длина: 1-120 символов, не только пробелы
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title cannot be empty")
	}

	if utf8.RuneCountInString(title) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}

	return nil
}

// ValidateCanvasSize проверяет размер холста
func ValidateCanvasSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", width, height)
	}

	if width > MaxCanvasSide || height > MaxCanvasSide {
		return fmt.Errorf("canvas side must not exceed %d pixels", MaxCanvasSide)
	}

	return nil
}
