package replay

import (
	"sort"

	"github.com/iudanet/inkboard/internal/models"
)

// DiagnosticsFunc получает пропущенное событие и причину пропуска.
type DiagnosticsFunc func(ev models.Event, err error)

// Option настраивает Replay
type Option func(*options)

type options struct {
	diagnostics DiagnosticsFunc
	canvasSize  models.CanvasSize
}

// WithDiagnostics задаёт канал уведомлений о пропущенных событиях.
func WithDiagnostics(fn DiagnosticsFunc) Option {
	return func(o *options) {
		o.diagnostics = fn
	}
}

// WithCanvasSize задаёт размер холста восстановленного документа.
func WithCanvasSize(size models.CanvasSize) Option {
	return func(o *options) {
		o.canvasSize = size
	}
}

// Result результат восстановления документа
type Result struct {
	Document       models.Document
	LastEventOrder int64 // LastEventOrder порядок последнего события, учтённого в документе
	Applied        int   // Applied количество применённых событий
	Skipped        int   // Skipped количество пропущенных некорректных событий
	Duplicates     int   // Duplicates количество повторов и событий, уже вошедших в снапшот
}

// Replay восстанавливает документ из снапшота и событий после него.
//
// События сортируются по Order (порядок поступления не важен). События с
// Order <= base.LastEventOrder уже учтены в снапшоте и отбрасываются,
// повторная доставка одного Order учитывается один раз. Некорректное событие
// пропускается и передаётся в diagnostics; восстановление не прерывается.
func Replay(base models.Snapshot, events []models.Event, opts ...Option) Result {
	o := options{canvasSize: models.DefaultCanvasSize()}
	for _, opt := range opts {
		opt(&o)
	}

	doc := FromSnapshot(base, o.canvasSize)
	res := Result{LastEventOrder: base.LastEventOrder}

	for _, ev := range Sorted(events) {
		if ev.Order <= res.LastEventOrder {
			res.Duplicates++
			continue
		}
		res.LastEventOrder = ev.Order

		next, err := Apply(doc, ev)
		if err != nil {
			res.Skipped++
			if o.diagnostics != nil {
				o.diagnostics(ev, err)
			}
			continue
		}
		doc = next
		res.Applied++
	}

	res.Document = doc
	return res
}

// FromSnapshot материализует документ из снапшота.
func FromSnapshot(s models.Snapshot, size models.CanvasSize) models.Document {
	doc := models.Document{
		Elements:        make([]models.Element, len(s.Elements)),
		BackgroundColor: s.BackgroundColor,
		CanvasSize:      size,
	}
	for i, el := range s.Elements {
		doc.Elements[i] = el.Clone()
	}
	if doc.BackgroundColor == "" {
		doc.BackgroundColor = models.DefaultBackground
	}
	return doc
}

// Sorted возвращает копию событий, устойчиво отсортированную по Order.
func Sorted(events []models.Event) []models.Event {
	out := make([]models.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
