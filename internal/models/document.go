package models

import "time"

// Значения документа по умолчанию
const (
	DefaultBackground   = "#fafafa"
	DefaultCanvasWidth  = 1920
	DefaultCanvasHeight = 1080
)

// CanvasSize размер холста в пикселях
type CanvasSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultCanvasSize возвращает размер холста по умолчанию.
func DefaultCanvasSize() CanvasSize {
	return CanvasSize{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}
}

// Document текущее состояние документа в памяти.
// Elements упорядочены от заднего плана к переднему.
type Document struct {
	Elements        []Element  `json:"elements"`
	BackgroundColor string     `json:"backgroundColor"`
	CanvasSize      CanvasSize `json:"canvasSize"`
}

// NewDocument создаёт пустой документ со значениями по умолчанию.
func NewDocument() Document {
	return Document{
		Elements:        []Element{},
		BackgroundColor: DefaultBackground,
		CanvasSize:      DefaultCanvasSize(),
	}
}

// IndexOf возвращает позицию элемента в z-order или -1.
func (d Document) IndexOf(id string) int {
	for i, el := range d.Elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}

// Find ищет элемент по id.
func (d Document) Find(id string) (Element, bool) {
	if i := d.IndexOf(id); i >= 0 {
		return d.Elements[i], true
	}
	return Element{}, false
}

// Clone возвращает глубокую копию документа.
func (d Document) Clone() Document {
	elements := make([]Element, len(d.Elements))
	for i, el := range d.Elements {
		elements[i] = el.Clone()
	}
	d.Elements = elements
	return d
}

// Snapshot материализованное состояние документа на позиции LastEventOrder журнала.
type Snapshot struct {
	Elements        []Element `json:"elements"`
	BackgroundColor string    `json:"backgroundColor"`
	LastEventOrder  int64     `json:"lastEventOrder"`
}

// EmptySnapshot снапшот пустого документа до первого события.
func EmptySnapshot() Snapshot {
	return Snapshot{Elements: []Element{}, BackgroundColor: DefaultBackground}
}

// SnapshotOf материализует документ на заданной позиции журнала.
func SnapshotOf(d Document, lastEventOrder int64) Snapshot {
	c := d.Clone()
	return Snapshot{
		Elements:        c.Elements,
		BackgroundColor: c.BackgroundColor,
		LastEventOrder:  lastEventOrder,
	}
}

// DocumentInfo метаданные документа
type DocumentInfo struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
}

// Metadata изменяемые метаданные документа
type Metadata struct {
	Title *string `json:"title,omitempty"`
}

// LoadedDocument результат загрузки: последний снапшот (если есть) и события после него.
type LoadedDocument struct {
	Snapshot *Snapshot
	Info     DocumentInfo
	Events   []Event
}
