package ui

import (
	"errors"
	"os"
	"sync"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/logging"
	"github.com/atomicstack/cellkit/internal/widget"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const eventBuffer = 256

var fallbackSize = widget.Size{Cols: 80, Rows: 24}

// Screen runs a Bubble Tea program as the loop's terminal.
type Screen struct {
	model   *Model
	program *tea.Program
	opts    []tea.ProgramOption

	events   chan input.Event
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	err      error
}

// NewScreen prepares a screen. Extra options are passed to the program after
// the alternate screen and cell motion mouse options.
func NewScreen(opts ...tea.ProgramOption) *Screen {
	events := make(chan input.Event, eventBuffer)
	stop := make(chan struct{})
	return &Screen{
		model:  NewModel(events, stop, TerminalSize()),
		opts:   opts,
		events: events,
		stop:   stop,
		done:   make(chan struct{}),
	}
}

// TerminalSize reports the size of stdout, or 80x24 when it is not a terminal.
func TerminalSize() widget.Size {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackSize
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return fallbackSize
	}
	return widget.Size{Cols: w, Rows: h}
}

// Start launches the program on its own goroutine.
func (s *Screen) Start() error {
	if s.program != nil {
		return errors.New("ui: screen already started")
	}
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, s.opts...)
	s.program = tea.NewProgram(s.model, opts...)
	go func() {
		defer close(s.done)
		defer close(s.events)
		if _, err := s.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			logging.Error(err)
			s.err = err
		}
	}()
	return nil
}

// Stop quits the program and waits for the terminal to be restored.
func (s *Screen) Stop() error {
	if s.program == nil {
		return nil
	}
	s.stopOnce.Do(func() { close(s.stop) })
	s.program.Quit()
	<-s.done
	return s.err
}

func (s *Screen) Events() <-chan input.Event { return s.events }

// Draw replaces the frame shown on the terminal.
func (s *Screen) Draw(frame string) {
	if s.program == nil {
		s.model.handleFrameMsg(frameMsg(frame))
		return
	}
	s.program.Send(frameMsg(frame))
}

func (s *Screen) Size() widget.Size { return s.model.Size() }
