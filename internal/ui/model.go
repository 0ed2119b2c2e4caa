package ui

import (
	"reflect"
	"sync"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
)

type frameMsg string

type msgHandler func(tea.Msg) tea.Cmd

// Model implements tea.Model as a thin relay between the terminal and the loop.
type Model struct {
	events chan<- input.Event
	stop   <-chan struct{}

	mu    sync.Mutex
	size  widget.Size
	frame string

	handlers map[reflect.Type]msgHandler
}

// NewModel returns a model that forwards input to events until stop is closed.
func NewModel(events chan<- input.Event, stop <-chan struct{}, size widget.Size) *Model {
	m := &Model{events: events, stop: stop, size: size}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd { return nil }

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

// View returns the last frame drawn by the loop.
func (m *Model) View() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frame
}

// Size returns the terminal size as last reported.
func (m *Model) Size() widget.Size {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.size
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.forward,
		reflect.TypeOf(tea.MouseMsg{}):      m.forward,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg("")):        m.handleFrameMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	ws := msg.(tea.WindowSizeMsg)
	m.mu.Lock()
	m.size = widget.Size{Cols: ws.Width, Rows: ws.Height}
	m.mu.Unlock()
	return m.forward(msg)
}

func (m *Model) handleFrameMsg(msg tea.Msg) tea.Cmd {
	m.mu.Lock()
	m.frame = string(msg.(frameMsg))
	m.mu.Unlock()
	return nil
}

// forward hands an input event to the loop. It gives up once the screen is
// stopping so the program can exit even when nobody reads the channel.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	ev, ok := input.FromTea(msg)
	if !ok {
		return nil
	}
	select {
	case m.events <- ev:
	case <-m.stop:
	}
	return nil
}
