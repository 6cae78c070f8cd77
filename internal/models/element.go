package models

import (
	"encoding/json"
	"fmt"
)

// Kind тип элемента на холсте
type Kind string

// Типы элементов
const (
	KindRect     Kind = "rect"
	KindDiamond  Kind = "diamond"
	KindCircle   Kind = "circle"
	KindArrow    Kind = "arrow"
	KindFreehand Kind = "freehand"
	KindText     Kind = "text"
	KindImage    Kind = "image"
)

// StrokeStyle стиль линии контура
type StrokeStyle string

const (
	StrokeSolid  StrokeStyle = "solid"
	StrokeDashed StrokeStyle = "dashed"
	StrokeDotted StrokeStyle = "dotted"
)

// Значения по умолчанию для стиля
const (
	DefaultOpacity = 100
	FillNone       = "none"
	ArrowEndArrow  = "arrow"
	ArrowEndNone   = "none"
)

// Style общие атрибуты отрисовки, присущие всем типам элементов.
type Style struct {
	StrokeColor string      `json:"strokeColor,omitempty"` // StrokeColor цвет контура
	FillColor   string      `json:"fillColor,omitempty"`   // FillColor цвет заливки, "none" или пусто = без заливки
	StrokeStyle StrokeStyle `json:"strokeStyle,omitempty"` // StrokeStyle solid/dashed/dotted
	EdgeStyle   string      `json:"edgeStyle,omitempty"`   // EdgeStyle rounded/sharp
	StrokeWidth float64     `json:"strokeWidth,omitempty"` // StrokeWidth толщина линии
	Roughness   float64     `json:"roughness,omitempty"`   // Roughness "небрежность" отрисовки
	Opacity     int         `json:"opacity"`               // Opacity прозрачность 0-100
}

// Filled сообщает, имеет ли элемент заливку.
func (s Style) Filled() bool {
	return s.FillColor != "" && s.FillColor != FillNone && s.FillColor != "transparent"
}

// Point точка ломаной
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box прямоугольная геометрия: origin + размеры.
// Ширина и высота могут быть отрицательными во время рисования.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Shape геометрия конкретного варианта элемента.
// Интерфейс закрыт: реализуют его только типы этого пакета.
type Shape interface {
	Kind() Kind
	isShape()
}

type Rect struct{ Box }

type Diamond struct{ Box }

type Circle struct{ Box }

// Arrow отрезок с опциональным наконечником на конце (x2, y2)
type Arrow struct {
	ArrowEnd string  `json:"arrowEnd,omitempty"`
	X1       float64 `json:"x1"`
	Y1       float64 `json:"y1"`
	X2       float64 `json:"x2"`
	Y2       float64 `json:"y2"`
}

// HasHead возвращает true, если у стрелки рисуется наконечник.
func (a Arrow) HasHead() bool { return a.ArrowEnd != ArrowEndNone }

// Freehand ломаная от руки
type Freehand struct {
	Points []Point `json:"points"`
}

type Text struct {
	Text       string  `json:"text"`
	FontFamily string  `json:"fontFamily,omitempty"`
	TextAlign  string  `json:"textAlign,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	Box
}

type Image struct {
	Src string `json:"src"`
	Box
}

func (Rect) Kind() Kind     { return KindRect }
func (Diamond) Kind() Kind  { return KindDiamond }
func (Circle) Kind() Kind   { return KindCircle }
func (Arrow) Kind() Kind    { return KindArrow }
func (Freehand) Kind() Kind { return KindFreehand }
func (Text) Kind() Kind     { return KindText }
func (Image) Kind() Kind    { return KindImage }

func (Rect) isShape()     {}
func (Diamond) isShape()  {}
func (Circle) isShape()   {}
func (Arrow) isShape()    {}
func (Freehand) isShape() {}
func (Text) isShape()     {}
func (Image) isShape()    {}

// Element один рисуемый объект документа.
// Z-order задаётся позицией элемента в Document.Elements.
type Element struct {
	Shape Shape
	ID    string
	Style Style
}

// Kind возвращает тип элемента или пустую строку, если геометрия не задана.
func (e Element) Kind() Kind {
	if e.Shape == nil {
		return ""
	}
	return e.Shape.Kind()
}

// Clone возвращает копию элемента, не разделяющую память с оригиналом.
func (e Element) Clone() Element {
	if fh, ok := e.Shape.(Freehand); ok {
		points := make([]Point, len(fh.Points))
		copy(points, fh.Points)
		e.Shape = Freehand{Points: points}
	}
	return e
}

// MarshalJSON кодирует элемент плоским объектом {"id","type",...style,...geometry}.
func (e Element) MarshalJSON() ([]byte, error) {
	if e.Shape == nil {
		return nil, fmt.Errorf("element %q: %w", e.ID, ErrUnknownKind)
	}

	fields := make(map[string]json.RawMessage)
	if err := mergeObject(fields, e.Style); err != nil {
		return nil, err
	}
	if err := mergeObject(fields, e.Shape); err != nil {
		return nil, err
	}

	id, err := json.Marshal(e.ID)
	if err != nil {
		return nil, err
	}
	kind, err := json.Marshal(e.Shape.Kind())
	if err != nil {
		return nil, err
	}
	fields["id"] = id
	fields["type"] = kind

	return json.Marshal(fields)
}

// UnmarshalJSON разбирает плоский объект, выбирая вариант по полю "type".
func (e *Element) UnmarshalJSON(data []byte) error {
	var head struct {
		ID   string `json:"id"`
		Type Kind   `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	shape, err := decodeShape(head.Type, data)
	if err != nil {
		return err
	}

	style := Style{Opacity: DefaultOpacity}
	if err := json.Unmarshal(data, &style); err != nil {
		return err
	}

	e.ID = head.ID
	e.Style = style
	e.Shape = shape
	return nil
}

func decodeShape(kind Kind, data []byte) (Shape, error) {
	switch kind {
	case KindRect:
		var s Rect
		err := json.Unmarshal(data, &s)
		return s, err
	case KindDiamond:
		var s Diamond
		err := json.Unmarshal(data, &s)
		return s, err
	case KindCircle:
		var s Circle
		err := json.Unmarshal(data, &s)
		return s, err
	case KindArrow:
		var s Arrow
		err := json.Unmarshal(data, &s)
		return s, err
	case KindFreehand:
		var s Freehand
		err := json.Unmarshal(data, &s)
		return s, err
	case KindText:
		var s Text
		err := json.Unmarshal(data, &s)
		return s, err
	case KindImage:
		var s Image
		err := json.Unmarshal(data, &s)
		return s, err
	default:
		return nil, fmt.Errorf("type %q: %w", kind, ErrUnknownKind)
	}
}

func mergeObject(dst map[string]json.RawMessage, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return err
	}
	for k, val := range obj {
		dst[k] = val
	}
	return nil
}
