// Package widget provides the character-cell widgets the framework is built
// from: text, edits, buttons, containers, decorations, a scrolling list box,
// overlays and pop-ups.
//
// Every widget renders into a Canvas of exactly the requested size. Widgets
// that route keyboard focus to children implement Container, which is all
// the focus-path helpers rely on.
package widget

import (
	"errors"
	"strings"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/charmbracelet/x/ansi"
)

// ErrOutOfRange reports a position outside a list.
var ErrOutOfRange = errors.New("position out of range")

// Size is a render size in cells.
type Size struct {
	Cols int
	Rows int
}

// Widget is a renderable, optionally input-handling unit.
type Widget interface {
	// Rows reports the natural height at the given width.
	Rows(cols int, focus bool) int
	// Render draws the widget into exactly size.Rows lines of size.Cols cells.
	Render(size Size, focus bool) Canvas
	Selectable() bool
	// Keypress handles k and reports whether it was consumed.
	Keypress(size Size, k input.Key) bool
	// Mouse handles ev, in coordinates relative to the widget.
	Mouse(size Size, ev input.Mouse, focus bool) bool
}

// Container is implemented by widgets that hold an ordered set of children
// and route focus to one of them.
type Container interface {
	Widget
	Children() []Widget
	FocusPosition() int
	SetFocusPosition(pos int) bool
}

// Decorator is implemented by widgets that wrap exactly one inner widget.
type Decorator interface {
	Widget
	Inner() Widget
}

// Unwrap strips decorations until it reaches a container or a widget that
// decorates nothing.
func Unwrap(w Widget) Widget {
	for w != nil {
		if _, ok := w.(Container); ok {
			return w
		}
		d, ok := w.(Decorator)
		if !ok {
			return w
		}
		w = d.Inner()
	}
	return w
}

// Inert supplies the input methods of a widget that takes no input.
type Inert struct{}

func (Inert) Selectable() bool { return false }

func (Inert) Keypress(Size, input.Key) bool { return false }

func (Inert) Mouse(Size, input.Mouse, bool) bool { return false }

// Canvas is a rendered block of lines plus any pop-ups requested by widgets
// inside it, positioned relative to the canvas origin.
type Canvas struct {
	Lines  []string
	PopUps []PopUp
}

// NewCanvas pads or crops lines to size.
func NewCanvas(lines []string, size Size) Canvas {
	out := make([]string, size.Rows)
	for i := range out {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = fitWidth(line, size.Cols)
	}
	return Canvas{Lines: out}
}

// Blank returns an empty canvas of the given size.
func Blank(size Size) Canvas {
	return NewCanvas(nil, size)
}

// String joins the canvas lines.
func (c Canvas) String() string {
	return strings.Join(c.Lines, "\n")
}

// Plain returns the canvas lines with escape sequences removed.
func (c Canvas) Plain() []string {
	out := make([]string, len(c.Lines))
	for i, line := range c.Lines {
		out[i] = ansi.Strip(line)
	}
	return out
}

func (c *Canvas) adoptPopUps(src Canvas, col, row int) {
	for _, p := range src.PopUps {
		p.Col += col
		p.Row += row
		c.PopUps = append(c.PopUps, p)
	}
}

// fitWidth pads or truncates line to exactly cols cells.
func fitWidth(line string, cols int) string {
	if cols <= 0 {
		return ""
	}
	w := ansi.StringWidth(line)
	if w > cols {
		line = ansi.Truncate(line, cols, "")
		w = ansi.StringWidth(line)
	}
	if w < cols {
		line += strings.Repeat(" ", cols-w)
	}
	return line
}

// childSize clamps negative dimensions.
func childSize(cols, rows int) Size {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return Size{Cols: cols, Rows: rows}
}

// activates reports whether k activates a button-like widget.
func activates(k input.Key) bool {
	return k.Is("enter", "space")
}
