// Package replay восстанавливает состояние документа из журнала событий.
//
// Apply чистая функция: она никогда не изменяет входной документ,
// а возвращает новое значение. Replay является левой свёрткой Apply
// по событиям, отсортированным по Order.
package replay

import (
	"fmt"

	"github.com/iudanet/inkboard/internal/models"
)

// Apply применяет одно событие к документу.
//
// События для отсутствующих элементов (устаревшие ссылки) возвращают документ
// без изменений и без ошибки. Некорректное событие возвращает исходный
// документ и ошибку, оборачивающую models.ErrMalformedEvent.
func Apply(doc models.Document, ev models.Event) (models.Document, error) {
	payload, err := ev.Decode()
	if err != nil {
		return doc, err
	}

	switch p := payload.(type) {
	case models.AddElement:
		if doc.IndexOf(p.Element.ID) >= 0 {
			return doc, fmt.Errorf("%w: duplicate element id %q (order=%d)", models.ErrMalformedEvent, p.Element.ID, ev.Order)
		}
		out := withElements(doc, len(doc.Elements)+1)
		out.Elements = append(out.Elements, p.Element)
		return out, nil

	case models.PatchElement:
		idx := doc.IndexOf(p.ID)
		if idx < 0 {
			return doc, nil
		}
		merged, err := doc.Elements[idx].Merge(p.Fields)
		if err != nil {
			return doc, fmt.Errorf("%w: %v (order=%d)", models.ErrMalformedEvent, err, ev.Order)
		}
		out := withElements(doc, len(doc.Elements))
		out.Elements[idx] = merged
		return out, nil

	case models.DeleteElement:
		idx := doc.IndexOf(p.ID)
		if idx < 0 {
			return doc, nil
		}
		out := withElements(doc, len(doc.Elements))
		out.Elements = append(out.Elements[:idx], out.Elements[idx+1:]...)
		return out, nil

	case models.ReorderElement:
		idx := doc.IndexOf(p.ID)
		if idx < 0 {
			return doc, nil
		}
		out := doc
		out.Elements = Reorder(doc.Elements, idx, p.Direction)
		return out, nil

	case models.ClearCanvas:
		out := doc
		out.Elements = []models.Element{}
		out.BackgroundColor = models.DefaultBackground
		return out, nil

	case models.ChangeBackground:
		out := doc
		out.BackgroundColor = p.Color
		return out, nil

	default:
		return doc, fmt.Errorf("%w: unhandled payload %T", models.ErrMalformedEvent, payload)
	}
}

// Reorder возвращает новый срез, в котором элемент с позиции idx
// перемещён по z-order в направлении dir.
func Reorder(elements []models.Element, idx int, dir models.Direction) []models.Element {
	arr := make([]models.Element, 0, len(elements))
	arr = append(arr, elements[:idx]...)
	arr = append(arr, elements[idx+1:]...)
	el := elements[idx]

	var pos int
	switch dir {
	case models.DirectionForward:
		pos = min(idx+1, len(arr))
	case models.DirectionBackward:
		pos = max(idx-1, 0)
	case models.DirectionFront:
		pos = len(arr)
	case models.DirectionBack:
		pos = 0
	default:
		pos = idx
	}

	arr = append(arr, models.Element{})
	copy(arr[pos+1:], arr[pos:])
	arr[pos] = el
	return arr
}

// withElements копирует документ вместе со срезом элементов.
func withElements(doc models.Document, capacity int) models.Document {
	elements := make([]models.Element, len(doc.Elements), capacity)
	copy(elements, doc.Elements)
	doc.Elements = elements
	return doc
}
