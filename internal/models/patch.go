package models

import (
	"encoding/json"
	"fmt"
)

// Patch частичный набор полей элемента в wire-формате.
// Ключи совпадают с JSON ключами элемента (x, width, strokeColor...).
type Patch map[string]json.RawMessage

// Неизменяемые поля элемента, patch их игнорирует.
const (
	fieldID   = "id"
	fieldType = "type"
)

// NewPatch строит patch из произвольных значений.
func NewPatch(fields map[string]any) (Patch, error) {
	p := make(Patch, len(fields))
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("patch field %q: %w", k, err)
		}
		p[k] = raw
	}
	return p, nil
}

// PatchOf возвращает полное состояние элемента как patch (без id и type).
// Используется для MOVE/RESIZE, которые несут итоговое состояние элемента.
func PatchOf(e Element) (Patch, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var p Patch
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	delete(p, fieldID)
	delete(p, fieldType)
	return p, nil
}

// Merge выполняет поверхностное слияние patch в элемент.
// id и type не меняются. Исходный элемент не модифицируется.
func (e Element) Merge(p Patch) (Element, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return e, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return e, err
	}
	for k, v := range p {
		if k == fieldID || k == fieldType {
			continue
		}
		obj[k] = v
	}

	merged, err := json.Marshal(obj)
	if err != nil {
		return e, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	var out Element
	if err := json.Unmarshal(merged, &out); err != nil {
		return e, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return out, nil
}
