package widget

import (
	"strings"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/charmbracelet/x/ansi"
)

const sgrReset = "\x1b[0m"

// Overlay draws top centered over bottom. Input goes to top only; bottom is
// rendered without focus.
type Overlay struct {
	top    Widget
	bottom Widget
	width  int
	height int
}

// NewOverlay places top over bottom. A width of 0 uses the full width and a
// height of 0 packs top to its natural height.
func NewOverlay(top, bottom Widget, width, height int) *Overlay {
	return &Overlay{top: top, bottom: bottom, width: width, height: height}
}

func (o *Overlay) Inner() Widget { return o.top }

func (o *Overlay) Top() Widget { return o.top }

func (o *Overlay) Bottom() Widget { return o.bottom }

func (o *Overlay) Selectable() bool { return o.top.Selectable() }

func (o *Overlay) Rows(cols int, focus bool) int { return o.bottom.Rows(cols, false) }

// rect returns the position and size of top within size.
func (o *Overlay) rect(size Size, focus bool) (int, int, Size) {
	w := o.width
	if w <= 0 || w > size.Cols {
		w = size.Cols
	}
	h := o.height
	if h <= 0 {
		h = o.top.Rows(w, focus)
	}
	if h > size.Rows {
		h = size.Rows
	}
	return (size.Cols - w) / 2, (size.Rows - h) / 2, Size{Cols: w, Rows: h}
}

func (o *Overlay) Render(size Size, focus bool) Canvas {
	base := o.bottom.Render(size, false)
	col, row, inner := o.rect(size, focus)
	c := o.top.Render(inner, focus)
	out := Canvas{Lines: overlayLines(base.Lines, c.Lines, col, row, size.Cols)}
	out.adoptPopUps(c, col, row)
	return out
}

func (o *Overlay) Keypress(size Size, k input.Key) bool {
	_, _, inner := o.rect(size, true)
	return o.top.Keypress(inner, k)
}

func (o *Overlay) Mouse(size Size, ev input.Mouse, focus bool) bool {
	col, row, inner := o.rect(size, focus)
	if !inside(ev, col, row, inner) {
		return false
	}
	return o.top.Mouse(inner, ev.Translate(col, row), focus)
}

func inside(ev input.Mouse, col, row int, size Size) bool {
	return ev.Col >= col && ev.Col < col+size.Cols && ev.Row >= row && ev.Row < row+size.Rows
}

// overlayLines writes top into base at (col, row). base lines are assumed to
// be width cells wide; the result keeps that width.
func overlayLines(base, top []string, col, row, width int) []string {
	out := make([]string, len(base))
	copy(out, base)
	for i, line := range top {
		r := row + i
		if r < 0 || r >= len(out) {
			continue
		}
		target := fitWidth(out[r], width)
		left := ansi.Truncate(target, col, "")
		if lw := ansi.StringWidth(left); lw < col {
			left += strings.Repeat(" ", col-lw)
		}
		end := col + ansi.StringWidth(line)
		right := ""
		if end < width {
			right = ansi.TruncateLeft(target, end, "")
		}
		if strings.Contains(target, "\x1b") || strings.Contains(line, "\x1b") {
			out[r] = fitWidth(left+sgrReset+line+sgrReset+right, width)
			continue
		}
		out[r] = fitWidth(left+line+right, width)
	}
	return out
}
