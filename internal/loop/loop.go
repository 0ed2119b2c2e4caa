// Package loop is the single-threaded main loop widgets run under. It owns
// the root widget, input dispatch, alarms and periodic timers, and can be
// re-entered from a callback to wait for a condition without returning to
// the caller, which is how modal dialogs block.
package loop

import (
	"context"
	"errors"
	"time"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/logging/events"
	"github.com/atomicstack/cellkit/internal/widget"
)

// ErrQuit is returned by Step and RunUntil once Quit has been called or the
// screen has closed its event stream.
var ErrQuit = errors.New("loop: quit")

// Screen is the terminal the loop draws to and reads input from.
type Screen interface {
	Start() error
	Stop() error
	Events() <-chan input.Event
	Draw(frame string)
	Size() widget.Size
}

// InputFilter rewrites a batch of input events before dispatch.
type InputFilter func([]input.Event) []input.Event

type Option func(*Loop)

// WithFilter adds an input filter. Filters run in the order added.
func WithFilter(f InputFilter) Option {
	return func(l *Loop) { l.filters = append(l.filters, f) }
}

// WithUnhandled sets a hook for keys the root widget did not consume.
func WithUnhandled(fn func(input.Key) bool) Option {
	return func(l *Loop) { l.unhandled = fn }
}

// WithClock replaces time.Now for alarm scheduling.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// Loop dispatches input and timers to a widget tree. All methods must be
// called from the goroutine running the loop.
type Loop struct {
	screen    Screen
	widget    widget.Widget
	root      *widget.PopUpTarget
	size      widget.Size
	filters   []InputFilter
	unhandled func(input.Key) bool
	now       func() time.Time

	alarms    alarmQueue
	byHandle  map[Handle]*alarm
	periodics map[Handle]*periodic
	next      Handle
	seq       uint64

	pending []input.Event
	pumps   []int
	pumpSeq int
	frame   string
	drawn   bool
	quit    bool
}

func New(screen Screen, opts ...Option) *Loop {
	l := &Loop{
		screen:    screen,
		now:       time.Now,
		byHandle:  make(map[Handle]*alarm),
		periodics: make(map[Handle]*periodic),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetWidget replaces the root widget.
func (l *Loop) SetWidget(w widget.Widget) {
	l.widget = w
	l.root = widget.NewPopUpTarget(w)
}

// Widget returns the root widget as last set.
func (l *Loop) Widget() widget.Widget { return l.widget }

func (l *Loop) Size() widget.Size { return l.size }

// Depth returns how many RunUntil calls are active.
func (l *Loop) Depth() int { return len(l.pumps) }

// Quit makes the current and every enclosing RunUntil return ErrQuit.
func (l *Loop) Quit() { l.quit = true }

// Start starts the screen and draws the first frame.
func (l *Loop) Start() error {
	if err := l.screen.Start(); err != nil {
		return err
	}
	l.size = l.screen.Size()
	l.Redraw()
	return nil
}

// Run starts the screen and dispatches until Quit or ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.Start(); err != nil {
		return err
	}
	err := l.RunUntil(ctx, func() bool { return false })
	if stopErr := l.screen.Stop(); err == nil || errors.Is(err, ErrQuit) {
		err = stopErr
	}
	return err
}

// RunUntil steps the loop until done reports true. It may be called from
// inside a callback the loop is running; nested calls must return in the
// reverse order they were made.
func (l *Loop) RunUntil(ctx context.Context, done func() bool) error {
	l.pumpSeq++
	id := l.pumpSeq
	l.pumps = append(l.pumps, id)
	depth := len(l.pumps)
	events.Loop.Enter(depth)

	var err error
	for !done() {
		if err = l.Step(ctx); err != nil {
			break
		}
	}

	if top := l.pumps[len(l.pumps)-1]; top != id {
		panic("loop: RunUntil calls unwound out of order")
	}
	l.pumps = l.pumps[:len(l.pumps)-1]
	events.Loop.Exit(depth, err)
	return err
}

// Step runs one iteration: it fires due alarms, or waits for input or the
// next alarm, then dispatches pending input and redraws.
func (l *Loop) Step(ctx context.Context) error {
	if l.quit {
		return ErrQuit
	}
	if len(l.pending) == 0 && !l.fireDue() {
		if err := l.wait(ctx); err != nil {
			return err
		}
		l.fireDue()
	}
	for len(l.pending) > 0 && !l.quit {
		ev := l.pending[0]
		l.pending = l.pending[1:]
		l.dispatch(ev)
	}
	l.Redraw()
	if l.quit {
		return ErrQuit
	}
	return nil
}

func (l *Loop) wait(ctx context.Context) error {
	var timeout <-chan time.Time
	if at, ok := l.nextDeadline(); ok {
		d := at.Sub(l.now())
		if d < 0 {
			d = 0
		}
		t := time.NewTimer(d)
		defer t.Stop()
		timeout = t.C
	}
	ch := l.screen.Events()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timeout:
		return nil
	case ev, ok := <-ch:
		if !ok {
			l.quit = true
			return ErrQuit
		}
		batch := []input.Event{ev}
	drain:
		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					l.quit = true
					break drain
				}
				batch = append(batch, ev)
			default:
				break drain
			}
		}
		l.enqueue(batch)
		return nil
	}
}

// Feed queues events as if the screen had delivered them in one batch.
func (l *Loop) Feed(evs ...input.Event) {
	l.enqueue(evs)
}

func (l *Loop) enqueue(batch []input.Event) {
	for _, f := range l.filters {
		batch = f(batch)
	}
	l.pending = append(l.pending, batch...)
}

func (l *Loop) dispatch(ev input.Event) {
	switch ev := ev.(type) {
	case input.Resize:
		l.size = widget.Size{Cols: ev.Cols, Rows: ev.Rows}
	case input.Key:
		if l.root != nil && l.root.Keypress(l.size, ev) {
			return
		}
		if l.unhandled != nil {
			l.unhandled(ev)
		}
	case input.Mouse:
		if l.root != nil {
			l.root.Mouse(l.size, ev, true)
		}
	}
}

// Render returns the current frame without sending it to the screen.
func (l *Loop) Render() widget.Canvas {
	if l.root == nil {
		return widget.Blank(l.size)
	}
	return l.root.Render(l.size, true)
}

// Redraw renders the root and sends the frame when it changed.
func (l *Loop) Redraw() {
	if l.root == nil {
		return
	}
	frame := l.Render().String()
	if l.drawn && frame == l.frame {
		return
	}
	l.frame = frame
	l.drawn = true
	l.screen.Draw(frame)
}
