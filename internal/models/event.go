package models

import (
	"encoding/json"
	"fmt"
)

// EventType тип события журнала документа
type EventType string

const (
	EventAddElement       EventType = "ADD_ELEMENT"
	EventUpdateElement    EventType = "UPDATE_ELEMENT"
	EventDeleteElement    EventType = "DELETE_ELEMENT"
	EventMoveElement      EventType = "MOVE_ELEMENT"
	EventResizeElement    EventType = "RESIZE_ELEMENT"
	EventReorderElement   EventType = "REORDER_ELEMENT"
	EventClearCanvas      EventType = "CLEAR_CANVAS"
	EventChangeBackground EventType = "CHANGE_BACKGROUND"
)

// Known сообщает, является ли тип события известным.
func (t EventType) Known() bool {
	switch t {
	case EventAddElement, EventUpdateElement, EventDeleteElement, EventMoveElement,
		EventResizeElement, EventReorderElement, EventClearCanvas, EventChangeBackground:
		return true
	}
	return false
}

// Direction направление перемещения элемента по z-order
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
	DirectionFront    Direction = "front"
	DirectionBack     Direction = "back"
)

// Valid проверяет направление
func (d Direction) Valid() bool {
	switch d {
	case DirectionForward, DirectionBackward, DirectionFront, DirectionBack:
		return true
	}
	return false
}

// Event неизменяемая запись одной мутации документа.
// Order строго возрастает в пределах документа и назначается один раз.
// Order == 0 означает, что порядок ещё не назначен.
type Event struct {
	Type    EventType       `json:"eventType"`
	Payload json.RawMessage `json:"eventData"`
	Order   int64           `json:"eventOrder"`
}

// Payload типизированное содержимое события, результат Event.Decode.
type Payload interface {
	isPayload()
}

// AddElement payload ADD_ELEMENT: полный элемент
type AddElement struct {
	Element Element
}

// PatchElement payload UPDATE/MOVE/RESIZE: {id, ...поля}
type PatchElement struct {
	Fields Patch
	ID     string
}

// DeleteElement payload DELETE_ELEMENT: {id}
type DeleteElement struct {
	ID string `json:"id"`
}

// ReorderElement payload REORDER_ELEMENT: {id, direction}
type ReorderElement struct {
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
}

// ClearCanvas payload CLEAR_CANVAS: {}
type ClearCanvas struct{}

// ChangeBackground payload CHANGE_BACKGROUND: {color}
type ChangeBackground struct {
	Color string `json:"color"`
}

func (AddElement) isPayload()       {}
func (PatchElement) isPayload()     {}
func (DeleteElement) isPayload()    {}
func (ReorderElement) isPayload()   {}
func (ClearCanvas) isPayload()      {}
func (ChangeBackground) isPayload() {}

// Decode разбирает payload события в типизированное значение.
// Неизвестный тип или отсутствие обязательного поля возвращают ErrMalformedEvent.
func (ev Event) Decode() (Payload, error) {
	switch ev.Type {
	case EventAddElement:
		var el Element
		if err := json.Unmarshal(ev.Payload, &el); err != nil {
			return nil, malformed(ev, err.Error())
		}
		if el.ID == "" {
			return nil, malformed(ev, "missing id")
		}
		return AddElement{Element: el}, nil

	case EventUpdateElement, EventMoveElement, EventResizeElement:
		var fields Patch
		if err := json.Unmarshal(ev.Payload, &fields); err != nil {
			return nil, malformed(ev, err.Error())
		}
		var id string
		if raw, ok := fields[fieldID]; ok {
			if err := json.Unmarshal(raw, &id); err != nil {
				return nil, malformed(ev, "id is not a string")
			}
		}
		if id == "" {
			return nil, malformed(ev, "missing id")
		}
		delete(fields, fieldID)
		delete(fields, fieldType)
		return PatchElement{ID: id, Fields: fields}, nil

	case EventDeleteElement:
		var p DeleteElement
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return nil, malformed(ev, err.Error())
		}
		if p.ID == "" {
			return nil, malformed(ev, "missing id")
		}
		return p, nil

	case EventReorderElement:
		var p ReorderElement
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return nil, malformed(ev, err.Error())
		}
		if p.ID == "" {
			return nil, malformed(ev, "missing id")
		}
		if !p.Direction.Valid() {
			return nil, malformed(ev, fmt.Sprintf("unknown direction %q", p.Direction))
		}
		return p, nil

	case EventClearCanvas:
		return ClearCanvas{}, nil

	case EventChangeBackground:
		var p ChangeBackground
		if err := json.Unmarshal(ev.Payload, &p); err != nil {
			return nil, malformed(ev, err.Error())
		}
		if p.Color == "" {
			return nil, malformed(ev, "missing color")
		}
		return p, nil

	default:
		return nil, malformed(ev, "unknown event type")
	}
}

func malformed(ev Event, reason string) error {
	return fmt.Errorf("%w: %s (type=%s order=%d)", ErrMalformedEvent, reason, ev.Type, ev.Order)
}

// NewAddElementEvent создаёт событие ADD_ELEMENT
func NewAddElementEvent(el Element) (Event, error) {
	raw, err := json.Marshal(el)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode element: %w", err)
	}
	return Event{Type: EventAddElement, Payload: raw}, nil
}

// NewPatchEvent создаёт UPDATE/MOVE/RESIZE событие с payload {id, ...fields}
func NewPatchEvent(t EventType, id string, fields Patch) (Event, error) {
	switch t {
	case EventUpdateElement, EventMoveElement, EventResizeElement:
	default:
		return Event{}, fmt.Errorf("event type %s does not carry a patch", t)
	}

	obj := make(map[string]json.RawMessage, len(fields)+1)
	for k, v := range fields {
		if k == fieldType {
			continue
		}
		obj[k] = v
	}
	rawID, err := json.Marshal(id)
	if err != nil {
		return Event{}, err
	}
	obj[fieldID] = rawID

	raw, err := json.Marshal(obj)
	if err != nil {
		return Event{}, fmt.Errorf("failed to encode patch: %w", err)
	}
	return Event{Type: t, Payload: raw}, nil
}

// NewDeleteElementEvent создаёт событие DELETE_ELEMENT
func NewDeleteElementEvent(id string) Event {
	raw, _ := json.Marshal(DeleteElement{ID: id})
	return Event{Type: EventDeleteElement, Payload: raw}
}

// NewReorderElementEvent создаёт событие REORDER_ELEMENT
func NewReorderElementEvent(id string, dir Direction) Event {
	raw, _ := json.Marshal(ReorderElement{ID: id, Direction: dir})
	return Event{Type: EventReorderElement, Payload: raw}
}

// NewClearCanvasEvent создаёт событие CLEAR_CANVAS
func NewClearCanvasEvent() Event {
	return Event{Type: EventClearCanvas, Payload: json.RawMessage(`{}`)}
}

// NewChangeBackgroundEvent создаёт событие CHANGE_BACKGROUND
func NewChangeBackgroundEvent(color string) Event {
	raw, _ := json.Marshal(ChangeBackground{Color: color})
	return Event{Type: EventChangeBackground, Payload: raw}
}

// WithOrder возвращает копию события с назначенным порядком.
func (ev Event) WithOrder(order int64) Event {
	ev.Order = order
	return ev
}
