// Package controls provides composite widgets built from the primitives in
// package widget: a mnemonic menu and menu bar, a numbered tab bar, a
// drop-down list and a row of dialog buttons.
package controls

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/logging/events"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/atomicstack/cellkit/internal/widget"
	"github.com/mattn/go-runewidth"
)

const menuSpacing = 3

// MenuItem is one entry of a Menu. First and Last are the columns the name
// occupies, inclusive.
type MenuItem[C comparable] struct {
	ID      C
	Name    string
	Key     string
	First   int
	Last    int
	Enabled bool
}

// Menu is a one-row list of commands. Each command is chosen with alt and
// the first letter of its name, or with a left click on its name.
type Menu[C comparable] struct {
	items    []MenuItem[C]
	text     *widget.Text
	OnSelect signal.Signal[C]
}

// NewMenu builds a menu of ids, labelled by name, in the given order.
func NewMenu[C comparable](ids []C, name func(C) string) *Menu[C] {
	m := &Menu[C]{}
	pos := 0
	for _, id := range ids {
		label := name(id)
		first, _ := utf8.DecodeRuneInString(label)
		width := runewidth.StringWidth(label)
		m.items = append(m.items, MenuItem[C]{
			ID:      id,
			Name:    label,
			Key:     "alt+" + string(unicode.ToLower(first)),
			First:   pos,
			Last:    pos + width - 1,
			Enabled: true,
		})
		pos += width + menuSpacing
	}
	m.text = widget.NewMarkupText(m.markup()).Clipped()
	return m
}

func (m *Menu[C]) markup() widget.Markup {
	spaces := strings.Repeat(" ", menuSpacing)
	var out widget.Markup
	for _, item := range m.items {
		if !item.Enabled {
			out = append(out, widget.Segment{Style: theme.MenuText, Text: item.Name + spaces})
			continue
		}
		_, size := utf8.DecodeRuneInString(item.Name)
		out = append(out,
			widget.Segment{Style: theme.MenuKey, Text: item.Name[:size]},
			widget.Segment{Style: theme.MenuText, Text: item.Name[size:] + spaces})
	}
	return out
}

// Items returns a copy of the menu entries.
func (m *Menu[C]) Items() []MenuItem[C] {
	return append([]MenuItem[C](nil), m.items...)
}

// Enable makes id available or unavailable. Repeating the current state
// does nothing.
func (m *Menu[C]) Enable(id C, enabled bool) {
	for i := range m.items {
		if m.items[i].ID != id || m.items[i].Enabled == enabled {
			continue
		}
		m.items[i].Enabled = enabled
		m.text.SetMarkup(m.markup())
	}
}

// Enabled reports whether id is available.
func (m *Menu[C]) Enabled(id C) bool {
	for _, item := range m.items {
		if item.ID == id {
			return item.Enabled
		}
	}
	return false
}

func (m *Menu[C]) selectItem(item MenuItem[C]) {
	events.Menu.Select(fmt.Sprint(item.ID))
	m.OnSelect.Emit(item.ID)
}

func (m *Menu[C]) PackWidth() int { return m.text.PackWidth() }

func (m *Menu[C]) Selectable() bool { return false }

func (m *Menu[C]) Rows(int, bool) int { return 1 }

func (m *Menu[C]) Render(size widget.Size, focus bool) widget.Canvas {
	return m.text.Render(size, focus)
}

func (m *Menu[C]) Keypress(size widget.Size, k input.Key) bool {
	chord := k.Chord()
	for _, item := range m.items {
		if item.Key == chord && item.Enabled {
			m.selectItem(item)
			return true
		}
	}
	return false
}

func (m *Menu[C]) Mouse(size widget.Size, ev input.Mouse, focus bool) bool {
	if !ev.IsPress(1) {
		return false
	}
	for _, item := range m.items {
		if ev.Col >= item.First && ev.Col <= item.Last && item.Enabled {
			m.selectItem(item)
			return true
		}
	}
	return false
}

// MenuBar is a one-row bar with a Menu on the left and status text on the
// right.
type MenuBar[C comparable] struct {
	menu   *Menu[C]
	status *widget.Text
	inner  widget.Widget
}

func NewMenuBar[C comparable](ids []C, name func(C) string, status string) *MenuBar[C] {
	b := &MenuBar[C]{
		menu:   NewMenu(ids, name),
		status: widget.NewText(status).Aligned(widget.AlignRight).Clipped(),
	}
	row := widget.NewColumns(0, widget.Weight(1, b.menu), widget.Weight(1, b.status))
	b.inner = widget.NewAttrMap(widget.NewPadding(row, 1, 1), theme.MenuText, "")
	return b
}

func (b *MenuBar[C]) Menu() *Menu[C] { return b.menu }

func (b *MenuBar[C]) Status() string { return b.status.Text() }

func (b *MenuBar[C]) SetStatus(text string) { b.status.SetText(text) }

func (b *MenuBar[C]) Inner() widget.Widget { return b.inner }

func (b *MenuBar[C]) Selectable() bool { return false }

func (b *MenuBar[C]) Rows(int, bool) int { return 1 }

func (b *MenuBar[C]) Render(size widget.Size, focus bool) widget.Canvas {
	return b.inner.Render(size, focus)
}

func (b *MenuBar[C]) Keypress(size widget.Size, k input.Key) bool {
	return b.menu.Keypress(size, k)
}

func (b *MenuBar[C]) Mouse(size widget.Size, ev input.Mouse, focus bool) bool {
	return b.inner.Mouse(size, ev, focus)
}
