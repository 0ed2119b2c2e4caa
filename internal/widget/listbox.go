package widget

import (
	"fmt"

	"github.com/atomicstack/cellkit/internal/input"
)

// Walker supplies the items of a ListBox and tracks which one has focus.
type Walker interface {
	Len() int
	At(pos int) Widget
	Focus() int
	SetFocus(pos int) error
	// Next and Prev return the neighbouring position, or ErrOutOfRange at
	// the ends.
	Next(pos int) (int, error)
	Prev(pos int) (int, error)
}

// SimpleWalker is a Walker over a fixed slice.
type SimpleWalker struct {
	items []Widget
	focus int
}

func NewSimpleWalker(items ...Widget) *SimpleWalker {
	return &SimpleWalker{items: items}
}

func (w *SimpleWalker) Len() int { return len(w.items) }

func (w *SimpleWalker) At(pos int) Widget { return w.items[pos] }

func (w *SimpleWalker) Focus() int { return w.focus }

func (w *SimpleWalker) SetFocus(pos int) error {
	if pos < 0 || pos >= len(w.items) {
		return fmt.Errorf("set focus %d: %w", pos, ErrOutOfRange)
	}
	w.focus = pos
	return nil
}

func (w *SimpleWalker) Next(pos int) (int, error) {
	if pos >= len(w.items)-1 {
		return 0, ErrOutOfRange
	}
	return pos + 1, nil
}

func (w *SimpleWalker) Prev(pos int) (int, error) {
	if pos <= 0 {
		return 0, ErrOutOfRange
	}
	return pos - 1, nil
}

// Anchor selects where a newly focused item is placed in the viewport.
type Anchor int

const (
	// AnchorNearest scrolls as little as possible.
	AnchorNearest Anchor = iota
	AnchorTop
	AnchorBottom
)

// ListBox is a scrolling viewport over a Walker. It remembers the size it
// was last rendered at so callers can ask what is visible.
type ListBox struct {
	walker   Walker
	top      int
	size     Size
	rendered bool
}

func NewListBox(w Walker) *ListBox {
	return &ListBox{walker: w}
}

func (l *ListBox) Walker() Walker { return l.walker }

// Size returns the last rendered size, or false if the list has never been
// rendered.
func (l *ListBox) Size() (Size, bool) { return l.size, l.rendered }

// Top returns the position drawn on the first row.
func (l *ListBox) Top() int { return l.top }

func (l *ListBox) Selectable() bool { return true }

func (l *ListBox) itemRows(pos, cols int) int {
	return l.walker.At(pos).Rows(cols, false)
}

func (l *ListBox) Rows(cols int, focus bool) int {
	total := 0
	for i := 0; i < l.walker.Len(); i++ {
		total += l.itemRows(i, cols)
	}
	return total
}

// topForBottom returns the first position to draw so that pos ends on the
// last row.
func (l *ListBox) topForBottom(pos int, size Size) int {
	rows := l.itemRows(pos, size.Cols)
	top := pos
	for top > 0 {
		h := l.itemRows(top-1, size.Cols)
		if rows+h > size.Rows {
			break
		}
		rows += h
		top--
	}
	return top
}

// fits reports whether every item from top through pos fits in size.
func (l *ListBox) fits(top, pos int, size Size) bool {
	rows := 0
	for i := top; i <= pos; i++ {
		rows += l.itemRows(i, size.Cols)
		if rows > size.Rows {
			return false
		}
	}
	return true
}

func (l *ListBox) settle(size Size, anchor Anchor) {
	n := l.walker.Len()
	if n == 0 {
		l.top = 0
		return
	}
	if l.top >= n {
		l.top = n - 1
	}
	if l.top < 0 {
		l.top = 0
	}
	focus := l.walker.Focus()
	if focus < 0 || focus >= n {
		return
	}
	switch anchor {
	case AnchorTop:
		l.top = focus
		return
	case AnchorBottom:
		l.top = l.topForBottom(focus, size)
		return
	}
	if focus < l.top {
		l.top = focus
		return
	}
	if !l.fits(l.top, focus, size) {
		l.top = l.topForBottom(focus, size)
	}
}

// SetFocus focuses pos and scrolls it into view according to anchor. When
// the list has not been rendered yet, scrolling is deferred to the first
// render.
func (l *ListBox) SetFocus(pos int, anchor Anchor) error {
	if err := l.walker.SetFocus(pos); err != nil {
		return err
	}
	if l.rendered {
		l.settle(l.size, anchor)
	}
	return nil
}

// BottomVisible reports whether the last item is fully shown at the last
// rendered size. An empty list counts as showing its bottom.
func (l *ListBox) BottomVisible() bool {
	n := l.walker.Len()
	if n == 0 {
		return true
	}
	if !l.rendered {
		return false
	}
	top := l.top
	if top >= n {
		top = n - 1
	}
	return l.fits(top, n-1, l.size)
}

// TopVisible reports whether the first item is shown.
func (l *ListBox) TopVisible() bool {
	return l.walker.Len() == 0 || l.top == 0
}

func (l *ListBox) Render(size Size, focus bool) Canvas {
	l.size = size
	l.rendered = true
	l.settle(size, AnchorNearest)
	var lines []string
	var popups Canvas
	focusPos := l.walker.Focus()
	for i := l.top; i < l.walker.Len() && len(lines) < size.Rows; i++ {
		item := l.walker.At(i)
		h := item.Rows(size.Cols, focus && i == focusPos)
		c := item.Render(Size{Cols: size.Cols, Rows: h}, focus && i == focusPos)
		popups.adoptPopUps(c, 0, len(lines))
		lines = append(lines, c.Lines...)
	}
	out := NewCanvas(lines, size)
	out.PopUps = popups.PopUps
	return out
}

func (l *ListBox) move(steps int, size Size) bool {
	pos := l.walker.Focus()
	moved := false
	for ; steps != 0; steps -= sign(steps) {
		var next int
		var err error
		if steps > 0 {
			next, err = l.walker.Next(pos)
		} else {
			next, err = l.walker.Prev(pos)
		}
		if err != nil {
			break
		}
		pos = next
		moved = true
	}
	if !moved {
		return false
	}
	if err := l.walker.SetFocus(pos); err != nil {
		return false
	}
	l.settle(size, AnchorNearest)
	return true
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}

func (l *ListBox) page(size Size) int {
	if size.Rows > 1 {
		return size.Rows - 1
	}
	return 1
}

func (l *ListBox) Keypress(size Size, k input.Key) bool {
	n := l.walker.Len()
	if n == 0 {
		return false
	}
	focus := l.walker.Focus()
	if focus >= 0 && focus < n {
		item := l.walker.At(focus)
		if item.Selectable() && item.Keypress(Size{Cols: size.Cols, Rows: item.Rows(size.Cols, true)}, k) {
			return true
		}
	}
	switch k.Chord() {
	case "up":
		return l.move(-1, size)
	case "down":
		return l.move(1, size)
	case "pgup":
		return l.move(-l.page(size), size)
	case "pgdown":
		return l.move(l.page(size), size)
	case "home":
		return l.SetFocus(0, AnchorTop) == nil
	case "end":
		return l.SetFocus(n-1, AnchorBottom) == nil
	}
	return false
}

func (l *ListBox) Mouse(size Size, ev input.Mouse, focus bool) bool {
	switch {
	case ev.IsPress(4):
		l.move(-1, size)
		return true
	case ev.IsPress(5):
		l.move(1, size)
		return true
	}
	row := 0
	for i := l.top; i < l.walker.Len() && row < size.Rows; i++ {
		item := l.walker.At(i)
		h := item.Rows(size.Cols, false)
		if ev.Row >= row && ev.Row < row+h {
			if ev.Action == input.MousePress && item.Selectable() {
				if err := l.walker.SetFocus(i); err == nil {
					l.settle(size, AnchorNearest)
				}
			}
			return item.Mouse(Size{Cols: size.Cols, Rows: h}, ev.Translate(0, row), focus && i == l.walker.Focus()) ||
				ev.Action == input.MousePress
		}
		row += h
	}
	return false
}
