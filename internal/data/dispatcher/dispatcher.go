package dispatcher

import (
	"github.com/atomicstack/cellkit/internal/backend"
	"github.com/atomicstack/cellkit/internal/logging"
)

// Handler consumes one drained backend event.
type Handler func(evt backend.Event)

// Dispatcher routes drained backend events to the handlers registered for
// their kind.
type Dispatcher struct {
	handlers map[backend.Kind][]Handler
}

func New() *Dispatcher {
	return &Dispatcher{handlers: make(map[backend.Kind][]Handler)}
}

// On registers h for kind. Handlers run in registration order.
func (d *Dispatcher) On(kind backend.Kind, h Handler) {
	d.handlers[kind] = append(d.handlers[kind], h)
}

// Handle passes evt to its handlers and reports whether any were registered.
// Line events carrying an error are logged and dropped.
func (d *Dispatcher) Handle(evt backend.Event) bool {
	if evt.Err != nil && evt.Kind == backend.KindLine {
		logging.Error(evt.Err)
		return false
	}
	hs := d.handlers[evt.Kind]
	for _, h := range hs {
		h(evt)
	}
	return len(hs) > 0
}

// Drain empties q through Handle and returns the number of events drained.
func (d *Dispatcher) Drain(q *backend.Queue[backend.Event]) int {
	return q.Drain(func(evt backend.Event) { d.Handle(evt) })
}
