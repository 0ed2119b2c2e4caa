package controls

import (
	"time"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/atomicstack/cellkit/internal/widget"
	"github.com/mattn/go-runewidth"
)

// typeAheadReset is how long after the last typed letter a new letter starts
// a fresh search.
const typeAheadReset = time.Second

// Default picks the initial selection of a Dropdown.
type Default struct {
	name   string
	index  int
	byName bool
}

// ByName selects the item equal to name, or the first item if there is none.
func ByName(name string) Default { return Default{name: name, byName: true} }

// ByIndex selects item i, or the first item when i is out of range.
func ByIndex(i int) Default { return Default{index: i} }

func (d Default) resolve(items []string) int {
	if d.byName {
		for i, item := range items {
			if item == d.name {
				return i
			}
		}
		return 0
	}
	if d.index >= 0 && d.index < len(items) {
		return d.index
	}
	return 0
}

// Dropdown shows a caption and the current selection. Activating it opens a
// bordered list over the selection; choosing an item closes the list and
// emits OnSelect with its index.
type Dropdown struct {
	widget.PopUpLauncher
	items     []string
	selection int
	caption   *widget.Text
	trigger   *widget.ActionableText
	row       *widget.Columns
	list      *widget.ListBox
	walker    *widget.SimpleWalker
	popup     widget.Widget
	width     int
	typed     string
	typedAt   time.Time
	now       func() time.Time
	OnSelect  signal.Signal[int]
}

// NewDropdown returns a dropdown over items, which must not be empty.
func NewDropdown(items []string, def Default) *Dropdown {
	d := &Dropdown{
		items:     append([]string(nil), items...),
		selection: def.resolve(items),
		caption:   widget.NewText("").Clipped(),
		now:       time.Now,
	}
	longest := 0
	entries := make([]widget.Widget, len(items))
	for i, item := range items {
		longest = max(longest, runewidth.StringWidth(item))
		text := widget.NewActionableText(item)
		entries[i] = widget.NewAttrMap(widget.NewPadding(text, 1, 1), theme.DropdownItem, theme.DropdownSel)
	}
	d.width = longest + 4
	d.walker = widget.NewSimpleWalker(entries...)
	d.list = widget.NewListBox(d.walker)
	d.popup = widget.NewAttrMap(widget.NewLineBox(&dropdownList{ListBox: d.list, d: d}, ""), theme.DropdownItem, "")

	d.trigger = widget.NewActionableText(d.triggerText())
	d.trigger.Clipped()
	d.row = widget.NewColumns(0,
		widget.Given(0, d.caption),
		widget.Weight(1, widget.NewAttrMap(d.trigger, theme.DropdownItem, theme.DropdownSel)))
	return d
}

func (d *Dropdown) triggerText() string {
	if len(d.items) == 0 {
		return "↓"
	}
	return "↓ " + d.items[d.selection]
}

func (d *Dropdown) captionWidth() int { return runewidth.StringWidth(d.caption.Text()) }

// SetCaption replaces the caption shown before the selection.
func (d *Dropdown) SetCaption(caption string) {
	d.caption.SetText(caption)
	d.row.SetItem(0, widget.Given(d.captionWidth(), d.caption))
}

func (d *Dropdown) Caption() string { return d.caption.Text() }

func (d *Dropdown) Items() []string { return append([]string(nil), d.items...) }

// Selection returns the selected index and item.
func (d *Dropdown) Selection() (int, string) {
	if len(d.items) == 0 {
		return -1, ""
	}
	return d.selection, d.items[d.selection]
}

// SetSelection selects item i without emitting OnSelect.
func (d *Dropdown) SetSelection(i int) bool {
	if i < 0 || i >= len(d.items) {
		return false
	}
	d.selection = i
	d.trigger.SetText(d.triggerText())
	return true
}

// PopUpSize is the size of the open list, border included.
func (d *Dropdown) PopUpSize() widget.Size {
	return widget.Size{Cols: d.width, Rows: len(d.items) + 2}
}

// Open shows the list with the current selection focused.
func (d *Dropdown) Open() {
	if len(d.items) == 0 {
		return
	}
	_ = d.list.SetFocus(d.selection, widget.AnchorNearest)
	d.typed = ""
	d.OpenPopUp()
}

// choose closes the list, selecting pos unless it is negative.
func (d *Dropdown) choose(pos int) {
	d.ClosePopUp()
	if pos < 0 || !d.SetSelection(pos) {
		return
	}
	d.OnSelect.Emit(pos)
}

func (d *Dropdown) typeAhead(k input.Key) {
	now := d.now()
	if now.Sub(d.typedAt) > typeAheadReset {
		d.typed = ""
	}
	d.typedAt = now
	d.typed += string(k.Runes)
	if idx := BestMatchIndex(d.items, d.typed); idx >= 0 {
		_ = d.list.SetFocus(idx, widget.AnchorNearest)
	}
}

func (d *Dropdown) Selectable() bool { return true }

func (d *Dropdown) Rows(int, bool) int { return 1 }

func (d *Dropdown) Render(size widget.Size, focus bool) widget.Canvas {
	c := d.row.Render(size, focus)
	if d.PopUpOpen() {
		c.PopUps = append(c.PopUps, d.Request(d.popup, d.captionWidth(), 0, d.PopUpSize()))
	}
	return c
}

func (d *Dropdown) Keypress(size widget.Size, k input.Key) bool {
	if k.Is("enter", "space") {
		d.Open()
		return true
	}
	return false
}

func (d *Dropdown) Mouse(size widget.Size, ev input.Mouse, focus bool) bool {
	if !ev.IsPress(1) || ev.Col < d.captionWidth() {
		return false
	}
	d.Open()
	return true
}

// dropdownList is the list inside the open pop-up.
type dropdownList struct {
	*widget.ListBox
	d *Dropdown
}

func (l *dropdownList) Keypress(size widget.Size, k input.Key) bool {
	switch {
	case k.Is("enter", "space"):
		l.d.choose(l.Walker().Focus())
		return true
	case k.Is("esc"):
		l.d.choose(-1)
		return true
	case k.Printable() && !k.Is("space"):
		l.d.typeAhead(k)
		return true
	}
	return l.ListBox.Keypress(size, k)
}

func (l *dropdownList) Mouse(size widget.Size, ev input.Mouse, focus bool) bool {
	handled := l.ListBox.Mouse(size, ev, focus)
	if ev.IsPress(1) {
		l.d.choose(l.Walker().Focus())
		return true
	}
	return handled
}
