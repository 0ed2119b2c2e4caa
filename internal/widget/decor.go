package widget

import (
	"strings"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Padding insets a widget horizontally. With a non-zero width the inner
// widget gets exactly that many columns, positioned by align.
type Padding struct {
	inner       Widget
	left, right int
	width       int
	align       Align
}

// NewPadding insets w by left and right columns.
func NewPadding(w Widget, left, right int) *Padding {
	return &Padding{inner: w, left: left, right: right}
}

// Centered gives w exactly width columns, centered.
func Centered(w Widget, width int) *Padding {
	return &Padding{inner: w, width: width, align: AlignCenter}
}

func (p *Padding) Inner() Widget { return p.inner }

func (p *Padding) span(cols int) (int, int) {
	if p.width <= 0 {
		return p.left, cols - p.left - p.right
	}
	w := p.width
	if w > cols {
		w = cols
	}
	switch p.align {
	case AlignCenter:
		return (cols - w) / 2, w
	case AlignRight:
		return cols - w, w
	}
	return 0, w
}

func (p *Padding) Selectable() bool { return p.inner.Selectable() }

func (p *Padding) Rows(cols int, focus bool) int {
	_, w := p.span(cols)
	return p.inner.Rows(max(w, 0), focus)
}

func (p *Padding) Render(size Size, focus bool) Canvas {
	left, w := p.span(size.Cols)
	c := p.inner.Render(childSize(w, size.Rows), focus)
	pad := strings.Repeat(" ", max(left, 0))
	lines := make([]string, len(c.Lines))
	for i, line := range c.Lines {
		lines[i] = pad + line
	}
	out := NewCanvas(lines, size)
	out.adoptPopUps(c, left, 0)
	return out
}

func (p *Padding) Keypress(size Size, k input.Key) bool {
	_, w := p.span(size.Cols)
	return p.inner.Keypress(childSize(w, size.Rows), k)
}

func (p *Padding) Mouse(size Size, ev input.Mouse, focus bool) bool {
	left, w := p.span(size.Cols)
	if ev.Col < left || ev.Col >= left+w {
		return false
	}
	return p.inner.Mouse(childSize(w, size.Rows), ev.Translate(left, 0), focus)
}

// LineBox draws a single-line border around a widget, with an optional
// centered title in the top edge.
type LineBox struct {
	inner Widget
	title string
}

func NewLineBox(w Widget, title string) *LineBox {
	return &LineBox{inner: w, title: title}
}

func (b *LineBox) Inner() Widget { return b.inner }

func (b *LineBox) Title() string { return b.title }

func (b *LineBox) SetTitle(title string) { b.title = title }

func (b *LineBox) Selectable() bool { return b.inner.Selectable() }

func (b *LineBox) Rows(cols int, focus bool) int {
	return b.inner.Rows(max(cols-2, 0), focus) + 2
}

func (b *LineBox) Render(size Size, focus bool) Canvas {
	if size.Cols < 2 || size.Rows < 2 {
		return Blank(size)
	}
	border := lipgloss.NormalBorder()
	inner := b.inner.Render(Size{Cols: size.Cols - 2, Rows: size.Rows - 2}, focus)
	lines := make([]string, 0, size.Rows)
	lines = append(lines, border.TopLeft+b.topEdge(size.Cols-2, border.Top)+border.TopRight)
	for _, line := range inner.Lines {
		lines = append(lines, border.Left+line+border.Right)
	}
	lines = append(lines, border.BottomLeft+strings.Repeat(border.Bottom, size.Cols-2)+border.BottomRight)
	out := NewCanvas(lines, size)
	out.adoptPopUps(inner, 1, 1)
	return out
}

func (b *LineBox) topEdge(cols int, fill string) string {
	if b.title == "" {
		return strings.Repeat(fill, cols)
	}
	title := " " + b.title + " "
	if ansi.StringWidth(title) > cols {
		title = ansi.Truncate(title, cols, "")
	}
	tw := ansi.StringWidth(title)
	left := (cols - tw) / 2
	return strings.Repeat(fill, left) + title + strings.Repeat(fill, cols-tw-left)
}

func (b *LineBox) Keypress(size Size, k input.Key) bool {
	return b.inner.Keypress(childSize(size.Cols-2, size.Rows-2), k)
}

func (b *LineBox) Mouse(size Size, ev input.Mouse, focus bool) bool {
	if ev.Col < 1 || ev.Row < 1 || ev.Col >= size.Cols-1 || ev.Row >= size.Rows-1 {
		return false
	}
	return b.inner.Mouse(childSize(size.Cols-2, size.Rows-2), ev.Translate(1, 1), focus)
}

// AttrMap draws a widget with a palette entry, switching to focusStyle while
// the widget has focus. Styles set inside the widget take precedence.
type AttrMap struct {
	inner      Widget
	style      string
	focusStyle string
}

func NewAttrMap(w Widget, style, focusStyle string) *AttrMap {
	return &AttrMap{inner: w, style: style, focusStyle: focusStyle}
}

func (a *AttrMap) Inner() Widget { return a.inner }

func (a *AttrMap) SetStyles(style, focusStyle string) {
	a.style = style
	a.focusStyle = focusStyle
}

func (a *AttrMap) Selectable() bool { return a.inner.Selectable() }

func (a *AttrMap) Rows(cols int, focus bool) int { return a.inner.Rows(cols, focus) }

func (a *AttrMap) Render(size Size, focus bool) Canvas {
	c := a.inner.Render(size, focus)
	name := a.style
	if focus && a.focusStyle != "" {
		name = a.focusStyle
	}
	p := theme.Current()
	if name == "" || !p.Has(name) {
		return c
	}
	style := p.Style(name)
	for i, line := range c.Lines {
		c.Lines[i] = restyle(line, style)
	}
	return c
}

func (a *AttrMap) Keypress(size Size, k input.Key) bool { return a.inner.Keypress(size, k) }

func (a *AttrMap) Mouse(size Size, ev input.Mouse, focus bool) bool {
	return a.inner.Mouse(size, ev, focus)
}

// VAlign positions a flow widget inside a Filler.
type VAlign int

const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
)

// Filler places a flow widget, at its natural height, inside a box of any
// height.
type Filler struct {
	inner  Widget
	valign VAlign
}

func NewFiller(w Widget, valign VAlign) *Filler {
	return &Filler{inner: w, valign: valign}
}

func (f *Filler) Inner() Widget { return f.inner }

func (f *Filler) Selectable() bool { return f.inner.Selectable() }

func (f *Filler) Rows(cols int, focus bool) int { return f.inner.Rows(cols, focus) }

func (f *Filler) place(size Size, focus bool) (int, int) {
	h := f.inner.Rows(size.Cols, focus)
	if h > size.Rows {
		h = size.Rows
	}
	switch f.valign {
	case VAlignMiddle:
		return (size.Rows - h) / 2, h
	case VAlignBottom:
		return size.Rows - h, h
	}
	return 0, h
}

func (f *Filler) Render(size Size, focus bool) Canvas {
	top, h := f.place(size, focus)
	c := f.inner.Render(Size{Cols: size.Cols, Rows: h}, focus)
	lines := make([]string, top, size.Rows)
	lines = append(lines, c.Lines...)
	out := NewCanvas(lines, size)
	out.adoptPopUps(c, 0, top)
	return out
}

func (f *Filler) Keypress(size Size, k input.Key) bool {
	_, h := f.place(size, true)
	return f.inner.Keypress(Size{Cols: size.Cols, Rows: h}, k)
}

func (f *Filler) Mouse(size Size, ev input.Mouse, focus bool) bool {
	top, h := f.place(size, focus)
	if ev.Row < top || ev.Row >= top+h {
		return false
	}
	return f.inner.Mouse(Size{Cols: size.Cols, Rows: h}, ev.Translate(0, top), focus)
}
