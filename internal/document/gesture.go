package document

import "github.com/iudanet/inkboard/internal/models"

// GestureKind состояние двухфазного жеста
type GestureKind int

const (
	GestureIdle GestureKind = iota
	GestureMoving
	GestureResizing
)

func (k GestureKind) String() string {
	switch k {
	case GestureIdle:
		return "idle"
	case GestureMoving:
		return "moving"
	case GestureResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Gesture активный жест перетаскивания или изменения размера.
//
// Переходы: idle -> moving|resizing (первый кадр предпросмотра) -> idle
// (commit или cancel). Событие порождает только commit.
type Gesture struct {
	original  models.Element // состояние элемента до начала жеста
	ElementID string
	Kind      GestureKind
}

// Active сообщает, что жест начат и не завершён.
func (g Gesture) Active() bool { return g.Kind != GestureIdle }
