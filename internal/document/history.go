package document

import "github.com/iudanet/inkboard/internal/models"

// ActionKind тип обратимого действия
type ActionKind int

const (
	// ActionAdd элемент был добавлен
	ActionAdd ActionKind = iota + 1
	// ActionDelete элемент был удалён
	ActionDelete
	// ActionBackground сменился цвет фона
	ActionBackground
)

func (k ActionKind) String() string {
	switch k {
	case ActionAdd:
		return "ADD"
	case ActionDelete:
		return "DELETE"
	case ActionBackground:
		return "BACKGROUND"
	default:
		return "UNKNOWN"
	}
}

// Action запись истории. Element хранится по значению,
// поэтому отмена никогда не видит частично изменённый элемент.
type Action struct {
	Element models.Element // Element для ADD и DELETE
	From    string         // From прежний цвет фона для BACKGROUND
	To      string         // To новый цвет фона для BACKGROUND
	Kind    ActionKind
}

// History два стека обратимых действий текущей сессии.
// Перемещение, изменение размера и порядка не записываются.
type History struct {
	undo []Action
	redo []Action
}

// NewHistory создаёт пустую историю
func NewHistory() *History {
	return &History{}
}

// Push записывает новое действие и сбрасывает стек redo.
func (h *History) Push(a Action) {
	h.undo = append(h.undo, a)
	h.redo = nil
}

func (h *History) popUndo() (Action, bool) {
	return pop(&h.undo)
}

func (h *History) popRedo() (Action, bool) {
	return pop(&h.redo)
}

func (h *History) pushRedo(a Action) {
	h.redo = append(h.redo, a)
}

// pushUndo возвращает действие в undo после redo, не трогая redo.
func (h *History) pushUndo(a Action) {
	h.undo = append(h.undo, a)
}

// Clear очищает оба стека
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

// CanUndo есть ли что отменять
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo есть ли что повторять
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

func pop(stack *[]Action) (Action, bool) {
	s := *stack
	if len(s) == 0 {
		return Action{}, false
	}
	a := s[len(s)-1]
	*stack = s[:len(s)-1]
	return a, true
}
