// Package input defines the decoded events the main loop dispatches: keys,
// mouse gestures and terminal resizes.
package input

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Event is one decoded input record.
type Event interface {
	event()
}

// Key is a keyboard event. Its String form is the chord, e.g. "alt+c",
// "shift+tab", "enter" or "x".
type Key struct {
	tea.KeyMsg
}

func (Key) event() {}

// Is reports whether the key matches any of the given chords.
func (k Key) Is(chords ...string) bool {
	s := k.Chord()
	for _, c := range chords {
		if s == c {
			return true
		}
	}
	return false
}

// Chord returns the chord string, with the space bar reported as "space".
func (k Key) Chord() string {
	if k.Type == tea.KeySpace {
		if k.Alt {
			return "alt+space"
		}
		return "space"
	}
	return k.String()
}

// Printable reports whether the key inserts text.
func (k Key) Printable() bool {
	return !k.Alt && (k.Type == tea.KeyRunes || k.Type == tea.KeySpace) && len(k.Runes) > 0
}

// MouseAction is the gesture carried by a mouse event.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseDrag
)

var mouseActionNames = map[MouseAction]string{
	MousePress:   "press",
	MouseRelease: "release",
	MouseDrag:    "drag",
}

// Mouse is a mouse event. Buttons follow X11 numbering: 1 left, 2 middle,
// 3 right, 4 and 5 the scroll wheel. Col and Row are zero based and relative
// to the widget receiving the event.
type Mouse struct {
	Action MouseAction
	Button int
	Col    int
	Row    int
	Double bool
}

func (Mouse) event() {}

// Label returns the gesture name, e.g. "mouse press" or "mouse double press".
func (m Mouse) Label() string {
	name := mouseActionNames[m.Action]
	if m.Double {
		name = "double " + name
	}
	return "mouse " + name
}

// IsPress reports whether m is a press of the given button.
func (m Mouse) IsPress(button int) bool {
	return m.Action == MousePress && m.Button == button
}

// Scroll reports whether the event is a scroll wheel step.
func (m Mouse) Scroll() bool {
	return m.Button == 4 || m.Button == 5
}

// Translate returns m with coordinates moved by (-col, -row).
func (m Mouse) Translate(col, row int) Mouse {
	m.Col -= col
	m.Row -= row
	return m
}

// Resize reports a new terminal size in cells.
type Resize struct {
	Cols int
	Rows int
}

func (Resize) event() {}

// FromTea converts a bubbletea message into an input event. Messages that
// carry no input (and bare mouse motion) report false.
func FromTea(msg tea.Msg) (Event, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return Key{KeyMsg: msg}, true
	case tea.MouseMsg:
		ev := Mouse{Button: int(msg.Button), Col: msg.X, Row: msg.Y}
		switch msg.Action {
		case tea.MouseActionPress:
			ev.Action = MousePress
		case tea.MouseActionRelease:
			ev.Action = MouseRelease
		case tea.MouseActionMotion:
			if msg.Button == tea.MouseButtonNone {
				return nil, false
			}
			ev.Action = MouseDrag
		}
		return ev, true
	case tea.WindowSizeMsg:
		return Resize{Cols: msg.Width, Rows: msg.Height}, true
	}
	return nil, false
}

var namedKeys = buildNamedKeys()

func buildNamedKeys() map[string]tea.KeyType {
	names := make(map[string]tea.KeyType)
	for kt := tea.KeyType(-256); kt < 256; kt++ {
		if kt == tea.KeyRunes || kt == tea.KeySpace {
			continue
		}
		if s := (tea.Key{Type: kt}).String(); s != "" {
			if _, dup := names[s]; !dup {
				names[s] = kt
			}
		}
	}
	return names
}

// ParseKey builds a key event from a chord string such as "alt+c", "tab",
// "shift+tab", "space" or "x".
func ParseKey(chord string) Key {
	alt := false
	rest := chord
	if strings.HasPrefix(rest, "alt+") && len(rest) > len("alt+") {
		alt = true
		rest = strings.TrimPrefix(rest, "alt+")
	}
	if rest == "space" || rest == " " {
		return Key{KeyMsg: tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}, Alt: alt}}
	}
	if kt, ok := namedKeys[rest]; ok && len([]rune(rest)) > 1 {
		return Key{KeyMsg: tea.KeyMsg{Type: kt, Alt: alt}}
	}
	return Key{KeyMsg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(rest), Alt: alt}}
}

// Keys parses each chord in turn.
func Keys(chords ...string) []Event {
	out := make([]Event, 0, len(chords))
	for _, c := range chords {
		out = append(out, ParseKey(c))
	}
	return out
}

// Type returns a key event for each rune of text.
func Type(text string) []Event {
	out := make([]Event, 0, len(text))
	for _, r := range text {
		if r == ' ' {
			out = append(out, ParseKey("space"))
			continue
		}
		out = append(out, Key{KeyMsg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}})
	}
	return out
}

// Press returns a press of button at (col, row).
func Press(button, col, row int) Mouse {
	return Mouse{Action: MousePress, Button: button, Col: col, Row: row}
}

// Release returns a release of button at (col, row).
func Release(button, col, row int) Mouse {
	return Mouse{Action: MouseRelease, Button: button, Col: col, Row: row}
}
