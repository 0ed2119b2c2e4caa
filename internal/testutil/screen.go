// Package testutil provides an in-memory screen for driving the main loop in
// tests, plus assertions over the frames it receives.
package testutil

import (
	"strings"
	"sync"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/widget"
	"github.com/charmbracelet/x/ansi"
)

// Screen is a loop.Screen that records frames instead of drawing them.
type Screen struct {
	mu      sync.Mutex
	size    widget.Size
	events  chan input.Event
	frames  []string
	started int
	stopped int
}

// NewScreen returns a screen of the given size.
func NewScreen(cols, rows int) *Screen {
	return &Screen{
		size:   widget.Size{Cols: cols, Rows: rows},
		events: make(chan input.Event, 256),
	}
}

func (s *Screen) Start() error {
	s.mu.Lock()
	s.started++
	s.mu.Unlock()
	return nil
}

func (s *Screen) Stop() error {
	s.mu.Lock()
	s.stopped++
	s.mu.Unlock()
	return nil
}

func (s *Screen) Events() <-chan input.Event { return s.events }

func (s *Screen) Size() widget.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

func (s *Screen) Draw(frame string) {
	s.mu.Lock()
	s.frames = append(s.frames, frame)
	s.mu.Unlock()
}

// Send delivers events as if typed at the terminal.
func (s *Screen) Send(evs ...input.Event) {
	for _, ev := range evs {
		s.events <- ev
	}
}

// Resize changes the size and delivers the matching event.
func (s *Screen) Resize(cols, rows int) {
	s.mu.Lock()
	s.size = widget.Size{Cols: cols, Rows: rows}
	s.mu.Unlock()
	s.Send(input.Resize{Cols: cols, Rows: rows})
}

// Close ends the event stream, which makes the loop quit.
func (s *Screen) Close() { close(s.events) }

// Frames returns the number of frames drawn.
func (s *Screen) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// Started reports how many times Start and Stop were called.
func (s *Screen) Started() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started, s.stopped
}

// Last returns the most recent frame.
func (s *Screen) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return ""
	}
	return s.frames[len(s.frames)-1]
}

// LastLines returns the most recent frame split into lines, styles removed.
func (s *Screen) LastLines() []string {
	return strings.Split(ansi.Strip(s.Last()), "\n")
}
