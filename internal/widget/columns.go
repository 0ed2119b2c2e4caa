package widget

import (
	"strings"

	"github.com/atomicstack/cellkit/internal/input"
)

type packer interface {
	PackWidth() int
}

// Columns lays children out side by side with Divide blank cells between
// them. Left and right move focus between selectable children.
type Columns struct {
	items  []Item
	focus  int
	divide int
}

// NewColumns returns columns separated by divide cells. Packed children must
// report a PackWidth; others are given an equal weight instead.
func NewColumns(divide int, items ...Item) *Columns {
	for i, it := range items {
		if _, ok := it.Widget.(packer); it.Sizing == SizePack && !ok {
			items[i] = Weight(1, it.Widget)
		}
	}
	return &Columns{items: items, divide: divide, focus: firstSelectable(items)}
}

// SetItem replaces the item at i.
func (c *Columns) SetItem(i int, it Item) {
	if i >= 0 && i < len(c.items) {
		c.items[i] = it
	}
}

func (c *Columns) Children() []Widget {
	out := make([]Widget, len(c.items))
	for i, it := range c.items {
		out[i] = it.Widget
	}
	return out
}

func (c *Columns) FocusPosition() int { return c.focus }

func (c *Columns) SetFocusPosition(pos int) bool {
	if pos < 0 || pos >= len(c.items) {
		return false
	}
	c.focus = pos
	return true
}

func (c *Columns) Selectable() bool {
	for _, it := range c.items {
		if it.Widget.Selectable() {
			return true
		}
	}
	return false
}

// PackWidth reports the width of given and packed children plus dividers.
func (c *Columns) PackWidth() int {
	total := 0
	for i, it := range c.items {
		if i > 0 {
			total += c.divide
		}
		switch it.Sizing {
		case SizeGiven:
			total += it.Amount
		case SizePack:
			total += it.Widget.(packer).PackWidth()
		}
	}
	return total
}

func (c *Columns) widths(cols int) []int {
	avail := cols - c.divide*(len(c.items)-1)
	return distribute(c.items, avail, func(i int) int {
		it := c.items[i]
		if it.Sizing == SizeGiven {
			return it.Amount
		}
		return it.Widget.(packer).PackWidth()
	})
}

func (c *Columns) Rows(cols int, focus bool) int {
	rows := 0
	for i, w := range c.widths(cols) {
		if w <= 0 {
			continue
		}
		if r := c.items[i].Widget.Rows(w, focus && i == c.focus); r > rows {
			rows = r
		}
	}
	return rows
}

func (c *Columns) Render(size Size, focus bool) Canvas {
	lines := make([]string, size.Rows)
	var popups Canvas
	col := 0
	gap := strings.Repeat(" ", c.divide)
	for i, w := range c.widths(size.Cols) {
		if i > 0 {
			for r := range lines {
				lines[r] += gap
			}
			col += c.divide
		}
		if w <= 0 {
			continue
		}
		child := c.items[i].Widget.Render(Size{Cols: w, Rows: size.Rows}, focus && i == c.focus)
		for r := range lines {
			if r < len(child.Lines) {
				lines[r] += child.Lines[r]
			} else {
				lines[r] += strings.Repeat(" ", w)
			}
		}
		popups.adoptPopUps(child, col, 0)
		col += w
	}
	out := NewCanvas(lines, size)
	out.PopUps = popups.PopUps
	return out
}

func (c *Columns) Keypress(size Size, k input.Key) bool {
	widths := c.widths(size.Cols)
	if c.focus < len(c.items) {
		w := c.items[c.focus].Widget
		if w.Selectable() && w.Keypress(Size{Cols: widths[c.focus], Rows: size.Rows}, k) {
			return true
		}
	}
	switch k.Chord() {
	case "left":
		return c.moveFocus(-1)
	case "right":
		return c.moveFocus(1)
	}
	return false
}

func (c *Columns) moveFocus(step int) bool {
	for i := c.focus + step; i >= 0 && i < len(c.items); i += step {
		if c.items[i].Widget.Selectable() {
			c.focus = i
			return true
		}
	}
	return false
}

func (c *Columns) Mouse(size Size, ev input.Mouse, focus bool) bool {
	col := 0
	for i, w := range c.widths(size.Cols) {
		if i > 0 {
			col += c.divide
		}
		if ev.Col < col || ev.Col >= col+w {
			col += w
			continue
		}
		child := c.items[i].Widget
		if ev.Action == input.MousePress && child.Selectable() {
			c.focus = i
		}
		return child.Mouse(Size{Cols: w, Rows: size.Rows}, ev.Translate(col, 0), focus && i == c.focus)
	}
	return false
}
