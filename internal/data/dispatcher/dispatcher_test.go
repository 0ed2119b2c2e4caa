package dispatcher

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/atomicstack/cellkit/internal/backend"
	"github.com/atomicstack/cellkit/internal/logging"
)

func TestHandleRoutesByKind(t *testing.T) {
	d := New()
	var lines []string
	var statuses []backend.Status
	d.On(backend.KindLine, func(evt backend.Event) { lines = append(lines, evt.Data.(string)) })
	d.On(backend.KindStatus, func(evt backend.Event) { statuses = append(statuses, evt.Data.(backend.Status)) })

	q := backend.NewQueue[backend.Event]()
	q.Push(backend.Event{Kind: backend.KindStatus, Data: backend.StatusFollowing})
	q.Push(backend.Event{Kind: backend.KindLine, Data: "a"})
	q.Push(backend.Event{Kind: backend.KindLine, Data: "b"})
	if n := d.Drain(q); n != 3 {
		t.Fatalf("expected 3 drained events, got %d", n)
	}
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Fatalf("expected lines [a b], got %v", lines)
	}
	if len(statuses) != 1 || statuses[0] != backend.StatusFollowing {
		t.Fatalf("expected one following status, got %v", statuses)
	}
}

func TestHandleWithoutHandlers(t *testing.T) {
	d := New()
	if d.Handle(backend.Event{Kind: backend.KindStatus}) {
		t.Fatalf("expected no handler to report false")
	}
}

func TestHandleDropsFailedLines(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "test.log"))
	t.Cleanup(func() { logging.Configure("") })
	d := New()
	called := false
	d.On(backend.KindLine, func(backend.Event) { called = true })
	if d.Handle(backend.Event{Kind: backend.KindLine, Err: errors.New("boom")}) || called {
		t.Fatalf("expected failed line to be dropped")
	}
}
