// Package document владеет редактируемым документом в памяти.
//
// Store единственная точка изменения документа: каждая мутация применяется
// синхронно и порождает ровно одно событие журнала, кроме кадров
// предпросмотра перетаскивания и изменения размера.
package document

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/inkboard/internal/geometry"
	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/replay"
	"github.com/iudanet/inkboard/internal/validation"
)

//go:generate moq -out sink_mock.go . Sink

// Sink получает события в порядке их возникновения вместе с документом
// после применения события. Emit вызывается под блокировкой Store и не
// должен обращаться к Store.
type Sink interface {
	Emit(ev models.Event, doc models.Document)
}

// Option настраивает Store
type Option func(*Store)

// WithDocument задаёт начальное состояние (например, восстановленное из журнала).
func WithDocument(doc models.Document) Option {
	return func(s *Store) {
		s.doc = doc.Clone()
	}
}

// WithIDGenerator подменяет генератор идентификаторов элементов.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// Store документ, история отмены, выделение и состояние жеста одной сессии.
type Store struct {
	sink     Sink
	history  *History
	newID    func() string
	logger   *slog.Logger
	selected string
	gesture  Gesture
	doc      models.Document
	mu       sync.RWMutex
}

// NewStore создаёт хранилище пустого документа.
// sink может быть nil: тогда события никуда не передаются.
func NewStore(sink Sink, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		sink:    sink,
		history: NewHistory(),
		newID:   func() string { return uuid.New().String() },
		logger:  logger,
		doc:     models.NewDocument(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// commit применяет событие к документу и передаёт его в sink.
// Вне жеста состояние Store совпадает со свёрткой его событий. Во время
// жеста sink получает документ без кадров предпросмотра.
func (s *Store) commit(ev models.Event) error {
	next, err := replay.Apply(s.doc, ev)
	if err != nil {
		return err
	}

	logged := next
	if s.gesture.Active() {
		logged, err = replay.Apply(s.loggedLocked(), ev)
		if err != nil {
			return err
		}
		if el, ok := logged.Find(s.gesture.ElementID); ok {
			s.gesture.original = el
		}
	}

	s.doc = next
	if s.sink != nil {
		s.sink.Emit(ev, logged)
	}
	return nil
}

// loggedLocked возвращает документ, в котором элемент жеста в исходном
// состоянии.
func (s *Store) loggedLocked() models.Document {
	doc := s.doc.Clone()
	if idx := doc.IndexOf(s.gesture.ElementID); idx >= 0 {
		doc.Elements[idx] = s.gesture.original.Clone()
	}
	return doc
}

// AddElement добавляет элемент с новым id и возвращает его.
// Отрицательные размеры нормализуются; вырожденный элемент не добавляется
// и возвращается false.
func (s *Store) AddElement(el models.Element) (models.Element, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el.Shape == nil {
		return models.Element{}, false
	}
	el = geometry.Normalize(el.Clone())
	if geometry.IsDegenerate(el) {
		s.logger.Debug("Discarding degenerate element", "type", el.Kind())
		return models.Element{}, false
	}
	el.ID = s.newID()

	if err := s.addLocked(el); err != nil {
		s.logger.Error("Failed to add element", "element_id", el.ID, "error", err)
		return models.Element{}, false
	}
	return el, true
}

func (s *Store) addLocked(el models.Element) error {
	ev, err := models.NewAddElementEvent(el)
	if err != nil {
		return err
	}
	if err := s.commit(ev); err != nil {
		return err
	}
	s.history.Push(Action{Kind: ActionAdd, Element: el})
	return nil
}

// UpdateElement сливает patch в элемент и порождает UPDATE_ELEMENT.
func (s *Store) UpdateElement(id string, patch models.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.doc.Find(id)
	if !ok {
		return fmt.Errorf("update %q: %w", id, ErrElementNotFound)
	}
	if _, err := el.Merge(patch); err != nil {
		return fmt.Errorf("update %q: %w", id, err)
	}

	ev, err := models.NewPatchEvent(models.EventUpdateElement, id, patch)
	if err != nil {
		return err
	}
	return s.commit(ev)
}

// DeleteElement удаляет элемент. Отсутствующий id ничего не делает и возвращает false.
func (s *Store) DeleteElement(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.doc.Find(id)
	if !ok {
		return false
	}
	if err := s.deleteLocked(el); err != nil {
		s.logger.Error("Failed to delete element", "element_id", id, "error", err)
		return false
	}
	return true
}

func (s *Store) deleteLocked(el models.Element) error {
	if err := s.commit(models.NewDeleteElementEvent(el.ID)); err != nil {
		return err
	}
	s.history.Push(Action{Kind: ActionDelete, Element: el})
	s.forget(el.ID)
	return nil
}

// forget сбрасывает выделение и жест, ссылающиеся на удалённый элемент.
func (s *Store) forget(id string) {
	if s.selected == id {
		s.selected = ""
	}
	if s.gesture.ElementID == id {
		s.gesture = Gesture{}
	}
}

// MoveElement сдвигает элемент на (dx, dy) без события (кадр предпросмотра).
// Первый кадр начинает жест перетаскивания.
func (s *Store) MoveElement(id string, dx, dy float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.beginLocked(id, GestureMoving)
	if err != nil {
		return err
	}
	s.replaceAt(idx, geometry.Translate(s.doc.Elements[idx], dx, dy))
	return nil
}

// ResizeElement вписывает элемент в bbox без события (кадр предпросмотра).
// Первый кадр начинает жест изменения размера.
func (s *Store) ResizeElement(id string, to models.Box) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, err := s.beginLocked(id, GestureResizing)
	if err != nil {
		return err
	}
	s.replaceAt(idx, geometry.Resize(s.gesture.original, to))
	return nil
}

func (s *Store) beginLocked(id string, kind GestureKind) (int, error) {
	idx := s.doc.IndexOf(id)
	if idx < 0 {
		return -1, fmt.Errorf("gesture on %q: %w", id, ErrElementNotFound)
	}

	switch {
	case !s.gesture.Active():
		s.gesture = Gesture{Kind: kind, ElementID: id, original: s.doc.Elements[idx]}
	case s.gesture.Kind != kind || s.gesture.ElementID != id:
		return -1, fmt.Errorf("%s %q: %w", s.gesture.Kind, s.gesture.ElementID, ErrGestureInProgress)
	}
	return idx, nil
}

// CommitMove завершает перетаскивание и порождает один MOVE_ELEMENT
// с итоговым состоянием элемента. Без активного жеста возвращает false.
func (s *Store) CommitMove(id string) bool {
	return s.commitGesture(id, GestureMoving, models.EventMoveElement)
}

// CommitResize завершает изменение размера и порождает один RESIZE_ELEMENT.
func (s *Store) CommitResize(id string) bool {
	return s.commitGesture(id, GestureResizing, models.EventResizeElement)
}

func (s *Store) commitGesture(id string, kind GestureKind, typ models.EventType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gesture.Kind != kind || s.gesture.ElementID != id {
		return false
	}
	defer func() { s.gesture = Gesture{} }()

	el, ok := s.doc.Find(id)
	if !ok {
		return false
	}
	patch, err := models.PatchOf(el)
	if err != nil {
		s.logger.Error("Failed to encode gesture result", "element_id", id, "error", err)
		return false
	}
	ev, err := models.NewPatchEvent(typ, id, patch)
	if err != nil {
		s.logger.Error("Failed to build gesture event", "element_id", id, "error", err)
		return false
	}
	if err := s.commit(ev); err != nil {
		s.logger.Error("Failed to commit gesture", "element_id", id, "error", err)
		return false
	}
	return true
}

// CancelGesture прерывает жест и возвращает элемент в исходное состояние без события.
func (s *Store) CancelGesture() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gesture.Active() {
		return false
	}
	if idx := s.doc.IndexOf(s.gesture.ElementID); idx >= 0 {
		s.replaceAt(idx, s.gesture.original)
	}
	s.gesture = Gesture{}
	return true
}

// ReorderElement перемещает элемент по z-order. Действие не отменяется через Undo.
func (s *Store) ReorderElement(id string, dir models.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !dir.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	if s.doc.IndexOf(id) < 0 {
		return fmt.Errorf("reorder %q: %w", id, ErrElementNotFound)
	}
	return s.commit(models.NewReorderElementEvent(id, dir))
}

// ClearCanvas очищает документ, сбрасывает фон, историю и выделение.
func (s *Store) ClearCanvas() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(models.NewClearCanvasEvent()); err != nil {
		s.logger.Error("Failed to clear canvas", "error", err)
		return
	}
	s.history.Clear()
	s.selected = ""
	s.gesture = Gesture{}
}

// ChangeBackground меняет цвет фона. Тот же цвет ничего не делает.
func (s *Store) ChangeBackground(color string) error {
	if err := validation.ValidateColor(color); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.doc.BackgroundColor
	if from == color {
		return nil
	}
	if err := s.commit(models.NewChangeBackgroundEvent(color)); err != nil {
		return err
	}
	s.history.Push(Action{Kind: ActionBackground, From: from, To: color})
	return nil
}

// Erase стирает ластиком радиуса radius в точке (x, y).
//
// Каждая задетая ломаная заменяется своими уцелевшими участками
// (DELETE_ELEMENT и по одному ADD_ELEMENT на участок). Если ни одна ломаная
// не задета, удаляется верхний элемент под точкой, не являющийся ломаной.
// Возвращает число событий.
func (s *Store) Erase(x, y, radius float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	emitted := 0
	for _, el := range slices.Clone(s.doc.Elements) {
		if el.Kind() != models.KindFreehand {
			continue
		}
		segments := geometry.EraseFromFreehand(el, x, y, radius, s.newID)
		if len(segments) == 1 && segments[0].ID == el.ID {
			continue
		}

		if err := s.deleteLocked(el); err != nil {
			s.logger.Error("Failed to erase stroke", "element_id", el.ID, "error", err)
			continue
		}
		emitted++
		for _, seg := range segments {
			if err := s.addLocked(seg); err != nil {
				s.logger.Error("Failed to add stroke segment", "element_id", seg.ID, "error", err)
				continue
			}
			emitted++
		}
	}
	if emitted > 0 {
		return emitted
	}

	// ломаные стираются только по точкам, целиком не удаляются
	shapes := slices.DeleteFunc(slices.Clone(s.doc.Elements), func(el models.Element) bool {
		return el.Kind() == models.KindFreehand
	})
	top, ok := geometry.TopmostAt(shapes, x, y, geometry.HitOptions{})
	if !ok {
		return 0
	}
	if err := s.deleteLocked(top); err != nil {
		s.logger.Error("Failed to erase element", "element_id", top.ID, "error", err)
		return 0
	}
	return 1
}

// Undo отменяет последнее действие, порождая компенсирующее событие.
// Возвращает false, если отменять нечего.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.history.popUndo()
	if !ok {
		return false
	}
	if err := s.revert(a); err != nil {
		s.logger.Warn("Undo produced no event", "action", a.Kind, "error", err)
	}
	s.history.pushRedo(a)
	return true
}

// Redo повторяет последнее отменённое действие.
func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.history.popRedo()
	if !ok {
		return false
	}
	if err := s.reapply(a); err != nil {
		s.logger.Warn("Redo produced no event", "action", a.Kind, "error", err)
	}
	s.history.pushUndo(a)
	return true
}

func (s *Store) revert(a Action) error {
	switch a.Kind {
	case ActionAdd:
		return s.removeIfPresent(a.Element.ID)
	case ActionDelete:
		return s.insertIfAbsent(a.Element)
	case ActionBackground:
		return s.setBackground(a.From)
	default:
		return fmt.Errorf("unknown action %d", a.Kind)
	}
}

func (s *Store) reapply(a Action) error {
	switch a.Kind {
	case ActionAdd:
		return s.insertIfAbsent(a.Element)
	case ActionDelete:
		return s.removeIfPresent(a.Element.ID)
	case ActionBackground:
		return s.setBackground(a.To)
	default:
		return fmt.Errorf("unknown action %d", a.Kind)
	}
}

func (s *Store) removeIfPresent(id string) error {
	if s.doc.IndexOf(id) < 0 {
		return fmt.Errorf("remove %q: %w", id, ErrElementNotFound)
	}
	if err := s.commit(models.NewDeleteElementEvent(id)); err != nil {
		return err
	}
	s.forget(id)
	return nil
}

// insertIfAbsent возвращает элемент поверх остальных: ADD_ELEMENT
// всегда добавляет в конец z-order, и локальное состояние должно
// совпадать с воспроизведением журнала.
func (s *Store) insertIfAbsent(el models.Element) error {
	if s.doc.IndexOf(el.ID) >= 0 {
		return fmt.Errorf("element %q already present", el.ID)
	}
	ev, err := models.NewAddElementEvent(el)
	if err != nil {
		return err
	}
	return s.commit(ev)
}

func (s *Store) setBackground(color string) error {
	if s.doc.BackgroundColor == color {
		return nil
	}
	return s.commit(models.NewChangeBackgroundEvent(color))
}

// ApplyRemote применяет событие другого клиента: без записи в историю
// и без передачи в sink.
func (s *Store) ApplyRemote(ev models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := replay.Apply(s.doc, ev)
	if err != nil {
		return err
	}
	s.doc = next
	if s.selected != "" && next.IndexOf(s.selected) < 0 {
		s.selected = ""
	}
	if s.gesture.Active() && next.IndexOf(s.gesture.ElementID) < 0 {
		s.gesture = Gesture{}
	}
	return nil
}

// SetCanvasSize меняет размер холста. Это локальная настройка вида, событие не порождается.
func (s *Store) SetCanvasSize(size models.CanvasSize) error {
	if err := validation.ValidateCanvasSize(size.Width, size.Height); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.CanvasSize = size
	return nil
}

// Select выделяет элемент. Пустой id снимает выделение.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.doc.IndexOf(id) < 0 {
		return fmt.Errorf("select %q: %w", id, ErrElementNotFound)
	}
	s.selected = id
	return nil
}

// Selected возвращает id выделенного элемента.
func (s *Store) Selected() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selected, s.selected != ""
}

// Document возвращает копию текущего документа.
func (s *Store) Document() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.doc.Clone()
}

// Elements возвращает копию списка элементов в z-order.
func (s *Store) Elements() []models.Element {
	return s.Document().Elements
}

// Element возвращает элемент по id.
func (s *Store) Element(id string) (models.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	el, ok := s.doc.Find(id)
	return el.Clone(), ok
}

// ElementAt возвращает верхний элемент под точкой.
func (s *Store) ElementAt(x, y float64) (models.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	el, ok := geometry.TopmostAt(s.doc.Elements, x, y, geometry.HitOptions{})
	return el.Clone(), ok
}

func (s *Store) Background() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.doc.BackgroundColor
}

func (s *Store) CanvasSize() models.CanvasSize {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.doc.CanvasSize
}

// Gesture возвращает текущее состояние жеста.
func (s *Store) Gesture() Gesture {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.gesture
}

func (s *Store) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.history.CanUndo()
}

func (s *Store) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.history.CanRedo()
}

// replaceAt заменяет элемент, не изменяя ранее выданные срезы.
func (s *Store) replaceAt(idx int, el models.Element) {
	elements := slices.Clone(s.doc.Elements)
	elements[idx] = el
	s.doc.Elements = elements
}
