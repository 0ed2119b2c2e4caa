package logview

import (
	"errors"
	"strings"

	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/atomicstack/cellkit/internal/widget"
	"github.com/atotto/clipboard"
)

// ErrEmpty is returned when there is no line to act on.
var ErrEmpty = errors.New("log is empty")

var clipboardWrite = clipboard.WriteAll

// Panel is a scrolling view of a Walker that keeps following new lines while
// its last line is on screen.
type Panel struct {
	*widget.ListBox
	walker *Walker
}

// NewPanel returns a panel over a new log of the given capacity.
func NewPanel(capacity int) *Panel {
	w := NewWalker(capacity)
	return &Panel{ListBox: widget.NewListBox(w), walker: w}
}

func (p *Panel) Log() *Walker { return p.walker }

// Line builds the widget used for one log line.
func Line(m widget.Markup) widget.Widget {
	text := &widget.SelectableText{Text: widget.NewMarkupText(m.Safe())}
	return widget.NewAttrMap(text, theme.MonitorText, theme.MonitorMark)
}

// AddLine appends m. When the last line was visible before the append, the
// new line is focused and scrolled to the bottom row.
func (p *Panel) AddLine(m widget.Markup) {
	p.Add(Line(m))
}

// AddText appends each line of text with one style.
func (p *Panel) AddText(style, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		p.AddLine(widget.Styled(style, line))
	}
}

// Add appends an arbitrary widget with the same scrolling rules as AddLine.
func (p *Panel) Add(w widget.Widget) {
	follow := p.BottomVisible()
	p.walker.Append(w)
	if _, rendered := p.Size(); !rendered || !follow {
		return
	}
	_ = p.SetFocus(p.walker.Len()-1, widget.AnchorBottom)
}

// Focused returns the flattened text of the focused line.
func (p *Panel) Focused() (string, error) {
	if p.walker.Len() == 0 {
		return "", ErrEmpty
	}
	return Flatten(p.walker.At(p.walker.Focus())), nil
}

// CopyFocused places the focused line on the system clipboard.
func (p *Panel) CopyFocused() (string, error) {
	text, err := p.Focused()
	if err != nil {
		return "", err
	}
	if err := clipboardWrite(text); err != nil {
		return "", err
	}
	return text, nil
}
