package widget

import "github.com/atomicstack/cellkit/internal/input"

// PopUp is a request, carried up through canvases, to draw Widget over
// everything else at (Col, Row) relative to the requesting canvas. Live
// reports whether the request still stands; a closed pop-up stops taking
// input even before the next render.
type PopUp struct {
	Widget Widget
	Col    int
	Row    int
	Size   Size
	Live   func() bool
}

func (p PopUp) live() bool {
	return p.Widget != nil && (p.Live == nil || p.Live())
}

// PopUpLauncher tracks whether a widget's pop-up is open. Widgets embed it
// and attach Request to their canvas while PopUpOpen is true.
type PopUpLauncher struct {
	open bool
}

func (l *PopUpLauncher) OpenPopUp() { l.open = true }

func (l *PopUpLauncher) ClosePopUp() { l.open = false }

func (l *PopUpLauncher) PopUpOpen() bool { return l.open }

// Request builds the pop-up request for w, live until ClosePopUp.
func (l *PopUpLauncher) Request(w Widget, col, row int, size Size) PopUp {
	return PopUp{Widget: w, Col: col, Row: row, Size: size, Live: l.PopUpOpen}
}

// PopUpTarget sits at the root of a widget tree and draws the most recently
// requested pop-up over it. While a pop-up is live it receives every key and
// the mouse events that land inside it.
type PopUpTarget struct {
	inner  Widget
	active *PopUp
}

func NewPopUpTarget(w Widget) *PopUpTarget {
	return &PopUpTarget{inner: w}
}

func (t *PopUpTarget) Inner() Widget { return t.inner }

// Active returns the pop-up drawn by the last render, if it is still live.
func (t *PopUpTarget) Active() (PopUp, bool) {
	if t.active == nil || !t.active.live() {
		return PopUp{}, false
	}
	return *t.active, true
}

func (t *PopUpTarget) Selectable() bool { return t.inner.Selectable() }

func (t *PopUpTarget) Rows(cols int, focus bool) int { return t.inner.Rows(cols, focus) }

// place clamps the pop-up inside size, shifting it rather than cropping it
// where it fits.
func place(p PopUp, size Size) PopUp {
	if p.Size.Cols > size.Cols {
		p.Size.Cols = size.Cols
	}
	if p.Size.Rows > size.Rows {
		p.Size.Rows = size.Rows
	}
	if p.Col+p.Size.Cols > size.Cols {
		p.Col = size.Cols - p.Size.Cols
	}
	if p.Row+p.Size.Rows > size.Rows {
		p.Row = size.Rows - p.Size.Rows
	}
	p.Col = max(p.Col, 0)
	p.Row = max(p.Row, 0)
	return p
}

func (t *PopUpTarget) Render(size Size, focus bool) Canvas {
	c := t.inner.Render(size, focus)
	t.active = nil
	for i := len(c.PopUps) - 1; i >= 0; i-- {
		if c.PopUps[i].live() {
			p := place(c.PopUps[i], size)
			t.active = &p
			break
		}
	}
	if t.active == nil {
		return Canvas{Lines: c.Lines}
	}
	top := t.active.Widget.Render(t.active.Size, true)
	return Canvas{Lines: overlayLines(c.Lines, top.Lines, t.active.Col, t.active.Row, size.Cols)}
}

func (t *PopUpTarget) Keypress(size Size, k input.Key) bool {
	if p, ok := t.Active(); ok {
		p.Widget.Keypress(p.Size, k)
		return true
	}
	return t.inner.Keypress(size, k)
}

func (t *PopUpTarget) Mouse(size Size, ev input.Mouse, focus bool) bool {
	if p, ok := t.Active(); ok && inside(ev, p.Col, p.Row, p.Size) {
		p.Widget.Mouse(p.Size, ev.Translate(p.Col, p.Row), true)
		return true
	}
	return t.inner.Mouse(size, ev, focus)
}
