// Package logview holds bounded, append-only logs of widgets: the walker a
// list box scrolls over, durable mirrors for appended lines and a panel that
// follows the tail while the user has not scrolled away.
package logview

import (
	"fmt"

	"github.com/atomicstack/cellkit/internal/logging"
	"github.com/atomicstack/cellkit/internal/logging/events"
	"github.com/atomicstack/cellkit/internal/ring"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/atomicstack/cellkit/internal/widget"
)

// ErrOutOfRange is returned for positions outside the log.
var ErrOutOfRange = widget.ErrOutOfRange

// Walker is a fixed-capacity log with a focus position. Appending past
// capacity drops the oldest item; dropped items are never mirrored again.
type Walker struct {
	items      *ring.Buffer[widget.Widget]
	focus      int
	mirror     Mirror
	OnModified signal.Signal[struct{}]
}

// NewWalker returns an empty log holding at most capacity items.
func NewWalker(capacity int) *Walker {
	return &Walker{items: ring.New[widget.Widget](capacity)}
}

func (w *Walker) Len() int { return w.items.Len() }

func (w *Walker) Cap() int { return w.items.Cap() }

func (w *Walker) At(pos int) widget.Widget { return w.items.At(pos) }

func (w *Walker) Focus() int { return w.focus }

// SetFocus moves focus to pos, leaving it unchanged when pos is out of range.
func (w *Walker) SetFocus(pos int) error {
	if pos < 0 || pos >= w.items.Len() {
		return fmt.Errorf("focus %d of %d: %w", pos, w.items.Len(), ErrOutOfRange)
	}
	w.focus = pos
	return nil
}

func (w *Walker) Next(pos int) (int, error) {
	if pos+1 >= w.items.Len() {
		return 0, ErrOutOfRange
	}
	return pos + 1, nil
}

func (w *Walker) Prev(pos int) (int, error) {
	if pos <= 0 || pos >= w.items.Len() {
		return 0, ErrOutOfRange
	}
	return pos - 1, nil
}

// SetMirror attaches m; every later append is also written to it.
func (w *Walker) SetMirror(m Mirror) { w.mirror = m }

// ClearMirror detaches the mirror and returns it.
func (w *Walker) ClearMirror() Mirror {
	m := w.mirror
	w.mirror = nil
	return m
}

func (w *Walker) Mirror() Mirror { return w.mirror }

// Append adds item at the tail. When the oldest item is evicted the focus
// keeps its position, clamped to the last item.
func (w *Walker) Append(item widget.Widget) {
	if _, evicted := w.items.Push(item); evicted {
		if w.focus >= w.items.Len() {
			w.focus = w.items.Len() - 1
		}
		events.Log.Evicted(w.items.Cap())
	}
	if w.mirror != nil {
		if err := w.mirror.Write(Flatten(item)); err != nil {
			logging.Error(fmt.Errorf("log mirror %s: %w", w.mirror, err))
			events.Log.MirrorError(w.mirror.String(), err)
		}
	}
	w.OnModified.Emit(struct{}{})
}

// Clear drops every item and resets focus.
func (w *Walker) Clear() {
	w.items.Clear()
	w.focus = 0
	w.OnModified.Emit(struct{}{})
}

// Items returns the items oldest first.
func (w *Walker) Items() []widget.Widget { return w.items.Items() }
