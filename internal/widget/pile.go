package widget

import "github.com/atomicstack/cellkit/internal/input"

// Pile stacks children vertically. Keys go to the focused child first; up
// and down move focus between selectable children.
type Pile struct {
	items []Item
	focus int
}

func NewPile(items ...Item) *Pile {
	p := &Pile{items: items}
	p.focus = firstSelectable(items)
	return p
}

// Append adds an item at the bottom.
func (p *Pile) Append(it Item) {
	p.items = append(p.items, it)
	if len(p.items) == 1 || (!p.items[p.focus].Widget.Selectable() && it.Widget.Selectable()) {
		p.focus = len(p.items) - 1
	}
}

// SetItem replaces the item at i.
func (p *Pile) SetItem(i int, it Item) {
	if i >= 0 && i < len(p.items) {
		p.items[i] = it
	}
}

func (p *Pile) Items() []Item { return p.items }

func (p *Pile) Children() []Widget {
	out := make([]Widget, len(p.items))
	for i, it := range p.items {
		out[i] = it.Widget
	}
	return out
}

func (p *Pile) FocusPosition() int { return p.focus }

func (p *Pile) SetFocusPosition(pos int) bool {
	if pos < 0 || pos >= len(p.items) {
		return false
	}
	p.focus = pos
	return true
}

func (p *Pile) Selectable() bool {
	for _, it := range p.items {
		if it.Widget.Selectable() {
			return true
		}
	}
	return false
}

func (p *Pile) Rows(cols int, focus bool) int {
	total := 0
	for i, it := range p.items {
		if it.Sizing == SizeGiven {
			total += it.Amount
			continue
		}
		total += it.Widget.Rows(cols, focus && i == p.focus)
	}
	return total
}

func (p *Pile) heights(size Size, focus bool) []int {
	return distribute(p.items, size.Rows, func(i int) int {
		it := p.items[i]
		if it.Sizing == SizeGiven {
			return it.Amount
		}
		return it.Widget.Rows(size.Cols, focus && i == p.focus)
	})
}

func (p *Pile) Render(size Size, focus bool) Canvas {
	var lines []string
	var popups Canvas
	row := 0
	for i, h := range p.heights(size, focus) {
		if h <= 0 {
			continue
		}
		c := p.items[i].Widget.Render(Size{Cols: size.Cols, Rows: h}, focus && i == p.focus)
		lines = append(lines, c.Lines...)
		popups.adoptPopUps(c, 0, row)
		row += h
	}
	out := NewCanvas(lines, size)
	out.PopUps = popups.PopUps
	return out
}

func (p *Pile) Keypress(size Size, k input.Key) bool {
	heights := p.heights(size, true)
	if p.focus < len(p.items) {
		w := p.items[p.focus].Widget
		if w.Selectable() && w.Keypress(Size{Cols: size.Cols, Rows: heights[p.focus]}, k) {
			return true
		}
	}
	switch k.Chord() {
	case "up":
		return p.moveFocus(-1)
	case "down":
		return p.moveFocus(1)
	}
	return false
}

func (p *Pile) moveFocus(step int) bool {
	for i := p.focus + step; i >= 0 && i < len(p.items); i += step {
		if p.items[i].Widget.Selectable() {
			p.focus = i
			return true
		}
	}
	return false
}

func (p *Pile) Mouse(size Size, ev input.Mouse, focus bool) bool {
	row := 0
	for i, h := range p.heights(size, focus) {
		if ev.Row < row || ev.Row >= row+h {
			row += h
			continue
		}
		w := p.items[i].Widget
		if ev.Action == input.MousePress && w.Selectable() {
			p.focus = i
		}
		return w.Mouse(Size{Cols: size.Cols, Rows: h}, ev.Translate(0, row), focus && i == p.focus)
	}
	return false
}
