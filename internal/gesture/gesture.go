// Package gesture synthesizes double presses from raw mouse input.
package gesture

import (
	"time"

	"github.com/atomicstack/cellkit/internal/input"
)

// DefaultWindow is the longest gap between two presses that still counts as
// a double press.
const DefaultWindow = 500 * time.Millisecond

// Filter marks the second of two quick presses of buttons 1-3 as a double
// press. Releases keep the baseline of the press they end; any other event in
// between cancels the pairing. Scroll wheel events pass through untouched.
type Filter struct {
	window time.Duration
	now    func() time.Time
	last   time.Time
}

// NewFilter returns a filter with the given window. A zero window uses
// DefaultWindow; a nil clock uses time.Now.
func NewFilter(window time.Duration, clock func() time.Time) *Filter {
	if window <= 0 {
		window = DefaultWindow
	}
	if clock == nil {
		clock = time.Now
	}
	return &Filter{window: window, now: clock}
}

// Apply processes one batch of events and returns it with double presses
// marked. The input slice is not modified.
func (f *Filter) Apply(events []input.Event) []input.Event {
	out := make([]input.Event, 0, len(events))
	for _, ev := range events {
		var last time.Time
		if m, ok := ev.(input.Mouse); ok && isClick(m) {
			switch m.Action {
			case input.MousePress:
				now := f.now()
				if !f.last.IsZero() && now.Sub(f.last) < f.window {
					m.Double = true
					ev = m
				}
				last = now
			case input.MouseRelease:
				last = f.last
			}
		}
		out = append(out, ev)
		f.last = last
	}
	return out
}

// isClick reports presses of buttons 1 to 3 and their releases. Legacy
// mouse encodings report every release as button 0.
func isClick(m input.Mouse) bool {
	if m.Button > 3 {
		return false
	}
	return m.Button >= 1 || m.Action == input.MouseRelease
}

// Reset forgets the last press.
func (f *Filter) Reset() {
	f.last = time.Time{}
}
