package controls

import (
	"fmt"
	"strings"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/logging/events"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/atomicstack/cellkit/internal/widget"
	"github.com/mattn/go-runewidth"
)

// MaxTabs is the number of tabs a TabBar can hold; each gets one digit.
const MaxTabs = 9

const tabSeparator = "│"

// Tab identifies a tab by its 1-based index and name. Removed is set on the
// old tab of a change caused by removing it.
type Tab struct {
	Index   int
	Name    string
	Removed bool
}

// TabChange is emitted when the selected tab changes.
type TabChange struct {
	Old Tab
	New Tab
}

type tabSpan struct {
	first, last int
}

// TabBar is a one-row set of numbered tabs. Alt and a digit, or a left
// click, selects a tab.
type TabBar struct {
	names    []string
	selected int
	spans    []tabSpan
	text     *widget.Text
	inner    widget.Widget
	OnSelect signal.Signal[TabChange]
}

// NewTabBar returns a bar with the given tabs, the first one selected. At
// most MaxTabs names are kept.
func NewTabBar(names ...string) *TabBar {
	if len(names) > MaxTabs {
		names = names[:MaxTabs]
	}
	t := &TabBar{names: append([]string(nil), names...), selected: 1}
	t.text = widget.NewText("").Clipped()
	t.inner = widget.NewAttrMap(t.text, theme.TabUnsel, "")
	t.refresh()
	return t
}

func tabLabel(pos int, name string) string {
	return fmt.Sprintf("  %d:%s  ", pos, name)
}

// refresh rebuilds the markup. Separators are drawn only between adjacent
// unselected tabs.
func (t *TabBar) refresh() {
	t.spans = t.spans[:0]
	var markup widget.Markup
	col := 0
	for i, name := range t.names {
		pos := i + 1
		if i > 0 && pos != t.selected && pos-1 != t.selected {
			markup = append(markup, widget.Segment{Style: theme.TabUnsel, Text: tabSeparator})
			col += runewidth.StringWidth(tabSeparator)
		}
		label := tabLabel(pos, name)
		style := theme.TabUnsel
		if pos == t.selected {
			style = theme.TabSel
		}
		markup = append(markup, widget.Segment{Style: style, Text: label})
		w := runewidth.StringWidth(label)
		t.spans = append(t.spans, tabSpan{first: col, last: col + w - 1})
		col += w
	}
	t.text.SetMarkup(markup)
}

func (t *TabBar) Len() int { return len(t.names) }

// Names returns a copy of the tab names in order.
func (t *TabBar) Names() []string { return append([]string(nil), t.names...) }

// Selected returns the selected position and its name.
func (t *TabBar) Selected() (int, string) {
	return t.selected, t.names[t.selected-1]
}

// TabName returns the name at pos, or "" when pos is out of range.
func (t *TabBar) TabName(pos int) string {
	if pos < 1 || pos > len(t.names) {
		return ""
	}
	return t.names[pos-1]
}

func (t *TabBar) SetTabName(pos int, name string) {
	if pos < 1 || pos > len(t.names) {
		return
	}
	t.names[pos-1] = name
	t.refresh()
}

// SetSelected selects pos and emits OnSelect. Selecting the current tab or
// an out of range position does nothing and reports false.
func (t *TabBar) SetSelected(pos int) bool {
	if pos == t.selected || pos < 1 || pos > len(t.names) {
		return false
	}
	old := Tab{Index: t.selected, Name: t.names[t.selected-1]}
	t.selected = pos
	t.refresh()
	t.emit(old)
	return true
}

func (t *TabBar) emit(old Tab) {
	change := TabChange{Old: old, New: Tab{Index: t.selected, Name: t.names[t.selected-1]}}
	events.Tab.Select(change.Old.Index, change.Old.Name, change.New.Index, change.New.Name)
	t.OnSelect.Emit(change)
}

// AddTab appends a tab and returns its position, or 0 when the bar is full.
// The selection does not change.
func (t *TabBar) AddTab(name string) int {
	if len(t.names) >= MaxTabs {
		return 0
	}
	t.names = append(t.names, name)
	t.refresh()
	return len(t.names)
}

// RemoveTab deletes the tab at pos. The last remaining tab cannot be
// removed. Removing the selected tab selects the first tab and emits
// OnSelect with the removed tab as Old; removing an earlier tab shifts the
// selection down without a signal.
func (t *TabBar) RemoveTab(pos int) bool {
	if pos < 1 || pos > len(t.names) || len(t.names) == 1 {
		return false
	}
	removed := Tab{Index: pos, Name: t.names[pos-1], Removed: true}
	t.names = append(t.names[:pos-1], t.names[pos:]...)
	switch {
	case pos == t.selected:
		t.selected = 1
		t.refresh()
		t.emit(removed)
		return true
	case pos < t.selected:
		t.selected--
	}
	t.refresh()
	return true
}

func (t *TabBar) Inner() widget.Widget { return t.inner }

func (t *TabBar) Selectable() bool { return false }

func (t *TabBar) Rows(int, bool) int { return 1 }

func (t *TabBar) Render(size widget.Size, focus bool) widget.Canvas {
	return t.inner.Render(size, focus)
}

// Keypress handles alt+1 to alt+9. A digit for an existing tab is consumed
// even when that tab is already selected.
func (t *TabBar) Keypress(size widget.Size, k input.Key) bool {
	chord := k.Chord()
	if !strings.HasPrefix(chord, "alt+") || len(chord) != len("alt+")+1 {
		return false
	}
	d := chord[len(chord)-1]
	if d < '1' || d > '9' {
		return false
	}
	pos := int(d - '0')
	if pos > len(t.names) {
		return false
	}
	t.SetSelected(pos)
	return true
}

func (t *TabBar) Mouse(size widget.Size, ev input.Mouse, focus bool) bool {
	if !ev.IsPress(1) {
		return false
	}
	for i, span := range t.spans {
		if ev.Col >= span.first && ev.Col <= span.last {
			t.SetSelected(i + 1)
			return true
		}
	}
	return false
}
