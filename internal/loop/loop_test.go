package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/testutil"
	"github.com/atomicstack/cellkit/internal/widget"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLoop(opts ...Option) (*Loop, *testutil.Screen, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	screen := testutil.NewScreen(20, 4)
	l := New(screen, append([]Option{WithClock(clock.now)}, opts...)...)
	return l, screen, clock
}

func TestAlarmsFireInDeadlineThenInsertionOrder(t *testing.T) {
	l, _, clock := newTestLoop()
	var order []string
	l.SetAlarm(10*time.Millisecond, func() { order = append(order, "a") })
	l.SetAlarm(0, func() { order = append(order, "b") })
	l.SetAlarm(10*time.Millisecond, func() { order = append(order, "c") })
	clock.advance(10 * time.Millisecond)
	if err := l.Step(context.Background()); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(order) != 3 || order[0] != "b" || order[1] != "a" || order[2] != "c" {
		t.Fatalf("expected [b a c], got %v", order)
	}
}

func TestRemoveAlarm(t *testing.T) {
	l, _, clock := newTestLoop()
	fired := false
	h := l.SetAlarm(time.Millisecond, func() { fired = true })
	other := l.SetAlarm(time.Millisecond, func() {})
	if !l.RemoveAlarm(h) {
		t.Fatalf("expected pending alarm to be removed")
	}
	if l.RemoveAlarm(h) {
		t.Fatalf("expected second removal to report false")
	}
	clock.advance(time.Millisecond)
	_ = l.Step(context.Background())
	if fired {
		t.Fatalf("expected removed alarm not to fire")
	}
	if l.RemoveAlarm(other) {
		t.Fatalf("expected fired alarm to be gone")
	}
}

func TestPeriodicStopsWhenCallbackReturnsFalse(t *testing.T) {
	l, _, clock := newTestLoop()
	calls := 0
	h := l.StartPeriodic(10*time.Millisecond, func() bool {
		calls++
		return calls < 3
	})
	for i := 0; i < 3; i++ {
		clock.advance(10 * time.Millisecond)
		if err := l.Step(context.Background()); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	if len(l.alarms) != 0 || len(l.periodics) != 0 {
		t.Fatalf("expected timer to be deregistered, got %d alarms %d periodics", len(l.alarms), len(l.periodics))
	}
	l.StopPeriodic(h)
	l.StopPeriodic(Handle(999))
}

func TestStopPeriodicCancelsPendingTick(t *testing.T) {
	l, _, _ := newTestLoop()
	h := l.StartPeriodic(time.Second, func() bool { return true })
	l.StopPeriodic(h)
	l.StopPeriodic(h)
	if len(l.alarms) != 0 {
		t.Fatalf("expected no pending alarms, got %d", len(l.alarms))
	}
}

func TestKeysReachRootAndUnhandledHook(t *testing.T) {
	var unhandled []string
	l, screen, _ := newTestLoop(WithUnhandled(func(k input.Key) bool {
		unhandled = append(unhandled, k.Chord())
		return true
	}))
	edit := widget.NewEdit("> ", "")
	l.SetWidget(edit)
	if err := l.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	screen.Send(input.Type("hi")...)
	screen.Send(input.ParseKey("alt+x"))
	if err := l.Step(context.Background()); err != nil {
		t.Fatalf("step: %v", err)
	}
	if edit.Value() != "hi" {
		t.Fatalf("expected edit value hi, got %q", edit.Value())
	}
	if len(unhandled) != 1 || unhandled[0] != "alt+x" {
		t.Fatalf("expected alt+x unhandled, got %v", unhandled)
	}
	testutil.AssertContains(t, screen.LastLines(), "> hi")
}

func TestFiltersSeeWholeBatches(t *testing.T) {
	var sizes []int
	var dispatched []string
	l, screen, _ := newTestLoop(
		WithFilter(func(evs []input.Event) []input.Event {
			sizes = append(sizes, len(evs))
			return evs[:1]
		}),
		WithUnhandled(func(k input.Key) bool {
			dispatched = append(dispatched, k.Chord())
			return true
		}),
	)
	l.SetWidget(widget.NewText(""))
	_ = l.Start()
	screen.Send(input.Keys("a", "b", "c")...)
	if err := l.Step(context.Background()); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(sizes) != 1 || sizes[0] != 3 {
		t.Fatalf("expected one batch of 3, got %v", sizes)
	}
	if len(dispatched) != 1 || dispatched[0] != "a" {
		t.Fatalf("expected only a to be dispatched, got %v", dispatched)
	}
}

func TestRedrawOnlyOnChange(t *testing.T) {
	l, screen, _ := newTestLoop()
	l.SetWidget(widget.NewText("static"))
	_ = l.Start()
	screen.Send(input.ParseKey("x"))
	_ = l.Step(context.Background())
	if screen.Frames() != 1 {
		t.Fatalf("expected a single frame, got %d", screen.Frames())
	}
	screen.Resize(10, 2)
	_ = l.Step(context.Background())
	if screen.Frames() != 2 || l.Size() != (widget.Size{Cols: 10, Rows: 2}) {
		t.Fatalf("expected redraw after resize, got %d frames size %+v", screen.Frames(), l.Size())
	}
}

func TestNestedRunUntilProcessesLaterInput(t *testing.T) {
	var order []string
	var l *Loop
	released, finished := false, false
	var depth int
	l, screen, _ := newTestLoop(WithUnhandled(func(k input.Key) bool {
		switch k.Chord() {
		case "a":
			order = append(order, "a-start")
			_ = l.RunUntil(context.Background(), func() bool { return released })
			order = append(order, "a-end")
		case "b":
			depth = l.Depth()
			order = append(order, "b")
			released = true
		case "c":
			order = append(order, "c")
			finished = true
		}
		return true
	}))
	l.SetWidget(widget.NewText(""))
	_ = l.Start()
	screen.Send(input.Keys("a", "b", "c")...)
	if err := l.RunUntil(context.Background(), func() bool { return finished }); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := []string{"a-start", "b", "c", "a-end"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
	if depth != 2 {
		t.Fatalf("expected nested depth 2, got %d", depth)
	}
	if l.Depth() != 0 {
		t.Fatalf("expected all pumps unwound, got %d", l.Depth())
	}
}

func TestRunUntilPanicsWhenUnwoundOutOfOrder(t *testing.T) {
	l, _, _ := newTestLoop()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic")
		}
	}()
	_ = l.RunUntil(context.Background(), func() bool {
		l.pumps = append(l.pumps, -1)
		return true
	})
}

func TestQuitEndsEveryPump(t *testing.T) {
	var l *Loop
	var inner error
	l, screen, _ := newTestLoop(WithUnhandled(func(k input.Key) bool {
		if k.Chord() == "a" {
			inner = l.RunUntil(context.Background(), func() bool { return false })
			return true
		}
		l.Quit()
		return true
	}))
	l.SetWidget(widget.NewText(""))
	_ = l.Start()
	screen.Send(input.Keys("a", "q")...)
	err := l.RunUntil(context.Background(), func() bool { return false })
	if !errors.Is(err, ErrQuit) || !errors.Is(inner, ErrQuit) {
		t.Fatalf("expected ErrQuit from both pumps, got %v and %v", err, inner)
	}
	if l.Depth() != 0 {
		t.Fatalf("expected all pumps unwound, got %d", l.Depth())
	}
}

func TestRunStopsScreenOnQuit(t *testing.T) {
	var l *Loop
	l, screen, _ := newTestLoop(WithUnhandled(func(k input.Key) bool {
		l.Quit()
		return true
	}))
	l.SetWidget(widget.NewText("hello"))
	screen.Send(input.ParseKey("q"))
	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if started, stopped := screen.Started(); started != 1 || stopped != 1 {
		t.Fatalf("expected one start and stop, got %d/%d", started, stopped)
	}
	testutil.AssertContains(t, screen.LastLines(), "hello")
}

func TestClosedScreenQuits(t *testing.T) {
	l, screen, _ := newTestLoop()
	screen.Close()
	if err := l.Step(context.Background()); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
}

func TestStepHonoursContext(t *testing.T) {
	l, _, _ := newTestLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Step(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
