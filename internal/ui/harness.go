package ui

import (
	"sync"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives a Model without a terminal. Messages go straight to Update
// and forwarded input collects on a channel of the given buffer size.
type Harness struct {
	model    *Model
	events   chan input.Event
	stop     chan struct{}
	stopOnce sync.Once
}

func NewHarness(size widget.Size, buffer int) *Harness {
	h := &Harness{
		events: make(chan input.Event, buffer),
		stop:   make(chan struct{}),
	}
	h.model = NewModel(h.events, h.stop, size)
	return h
}

// Send routes each message through the model and runs any returned commands
// until they stop producing messages.
func (h *Harness) Send(msgs ...tea.Msg) {
	for _, msg := range msgs {
		_, cmd := h.model.Update(msg)
		for cmd != nil {
			next := cmd()
			if next == nil {
				break
			}
			_, cmd = h.model.Update(next)
		}
	}
}

// Forwarded drains the input events forwarded so far without blocking.
func (h *Harness) Forwarded() []input.Event {
	var out []input.Event
	for {
		select {
		case ev := <-h.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Stop releases a model blocked on a full event channel.
func (h *Harness) Stop() { h.stopOnce.Do(func() { close(h.stop) }) }

func (h *Harness) View() string { return h.model.View() }

func (h *Harness) Model() *Model { return h.model }
