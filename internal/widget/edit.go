package widget

import (
	"strconv"
	"strings"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/x/ansi"
)

// editKeys leaves alt chords free for menu and tab mnemonics.
var editKeys = textinput.KeyMap{
	CharacterForward:        key.NewBinding(key.WithKeys("right", "ctrl+f")),
	CharacterBackward:       key.NewBinding(key.WithKeys("left", "ctrl+b")),
	WordForward:             key.NewBinding(key.WithKeys("ctrl+right")),
	WordBackward:            key.NewBinding(key.WithKeys("ctrl+left")),
	DeleteWordBackward:      key.NewBinding(key.WithKeys("ctrl+w")),
	DeleteWordForward:       key.NewBinding(),
	DeleteAfterCursor:       key.NewBinding(key.WithKeys("ctrl+k")),
	DeleteBeforeCursor:      key.NewBinding(key.WithKeys("ctrl+u")),
	DeleteCharacterBackward: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	DeleteCharacterForward:  key.NewBinding(key.WithKeys("delete", "ctrl+d")),
	LineStart:               key.NewBinding(key.WithKeys("home", "ctrl+a")),
	LineEnd:                 key.NewBinding(key.WithKeys("end", "ctrl+e")),
	Paste:                   key.NewBinding(key.WithKeys("ctrl+v")),
	AcceptSuggestion:        key.NewBinding(),
	NextSuggestion:          key.NewBinding(),
	PrevSuggestion:          key.NewBinding(),
}

var editBindings = []key.Binding{
	editKeys.CharacterForward,
	editKeys.CharacterBackward,
	editKeys.WordForward,
	editKeys.WordBackward,
	editKeys.DeleteWordBackward,
	editKeys.DeleteAfterCursor,
	editKeys.DeleteBeforeCursor,
	editKeys.DeleteCharacterBackward,
	editKeys.DeleteCharacterForward,
	editKeys.LineStart,
	editKeys.LineEnd,
}

// FilterFunc inspects a key before an Edit handles it. It may return a
// different key, or false to swallow the key.
type FilterFunc func(e *Edit, k input.Key) (input.Key, bool)

// Edit is a single-line text field with a caption.
type Edit struct {
	caption  string
	input    textinput.Model
	filter   FilterFunc
	scroll   int
	OnChange signal.Signal[string]
}

// NewEdit returns an edit showing caption followed by value.
func NewEdit(caption, value string) *Edit {
	ti := textinput.New()
	ti.Prompt = ""
	ti.KeyMap = editKeys
	ti.Focus()
	ti.SetValue(value)
	ti.CursorEnd()
	return &Edit{caption: caption, input: ti}
}

// SetFilter installs a key filter.
func (e *Edit) SetFilter(f FilterFunc) { e.filter = f }

func (e *Edit) Caption() string { return e.caption }

func (e *Edit) SetCaption(caption string) { e.caption = caption }

func (e *Edit) Value() string { return e.input.Value() }

// SetValue replaces the text and moves the cursor to its end. OnChange fires
// when the text differs.
func (e *Edit) SetValue(v string) {
	old := e.input.Value()
	e.input.SetValue(v)
	e.input.CursorEnd()
	if v != old {
		e.OnChange.Emit(v)
	}
}

// Position returns the cursor position in runes.
func (e *Edit) Position() int { return e.input.Position() }

func (e *Edit) SetPosition(pos int) { e.input.SetCursor(pos) }

// Insert types text at the cursor, as if it had been entered.
func (e *Edit) Insert(text string) {
	old := e.input.Value()
	for _, ev := range input.Type(text) {
		e.input, _ = e.input.Update(ev.(input.Key).KeyMsg)
	}
	if v := e.input.Value(); v != old {
		e.OnChange.Emit(v)
	}
}

func (e *Edit) Selectable() bool { return true }

func (e *Edit) Rows(int, bool) int { return 1 }

func handlesKey(k input.Key) bool {
	if k.Printable() {
		return true
	}
	if key.Matches(k.KeyMsg, editKeys.Paste) {
		return true
	}
	return key.Matches(k.KeyMsg, editBindings...)
}

func (e *Edit) Keypress(size Size, k input.Key) bool {
	if e.filter != nil {
		var ok bool
		k, ok = e.filter(e, k)
		if !ok {
			return true
		}
	}
	if !handlesKey(k) {
		return false
	}
	old := e.input.Value()
	e.input, _ = e.input.Update(k.KeyMsg)
	if key.Matches(k.KeyMsg, editKeys.Paste) {
		e.input, _ = e.input.Update(textinput.Paste())
	}
	if v := e.input.Value(); v != old {
		e.OnChange.Emit(v)
	}
	return true
}

func (e *Edit) Mouse(size Size, ev input.Mouse, focus bool) bool {
	if !ev.IsPress(1) {
		return false
	}
	col := ev.Col - ansi.StringWidth(e.caption) + e.scroll
	if col < 0 {
		col = 0
	}
	e.input.SetCursor(col)
	return true
}

func (e *Edit) Render(size Size, focus bool) Canvas {
	p := theme.Current()
	caption := e.caption
	avail := size.Cols - ansi.StringWidth(e.caption)
	if avail < 1 {
		return NewCanvas([]string{caption}, size)
	}
	value := []rune(e.input.Value())
	pos := e.input.Position()
	// keep the cursor cell on screen
	if pos < e.scroll {
		e.scroll = pos
	}
	if pos-e.scroll >= avail {
		e.scroll = pos - avail + 1
	}
	if e.scroll > len(value) {
		e.scroll = 0
	}
	end := e.scroll + avail
	if end > len(value) {
		end = len(value)
	}
	var b strings.Builder
	b.WriteString(caption)
	visible := value[e.scroll:end]
	if !focus {
		b.WriteString(string(visible))
		return NewCanvas([]string{b.String()}, size)
	}
	rel := pos - e.scroll
	for i, r := range visible {
		if i == rel {
			b.WriteString(p.Render(theme.Cursor, string(r)))
			continue
		}
		b.WriteRune(r)
	}
	if rel >= len(visible) {
		b.WriteString(p.Render(theme.Cursor, " "))
	}
	return NewCanvas([]string{b.String()}, size)
}

// IntEdit is an Edit that accepts digits only.
type IntEdit struct {
	*Edit
}

// NewIntEdit returns an integer field. A nil value leaves the field empty.
func NewIntEdit(caption string, value *int) *IntEdit {
	text := ""
	if value != nil {
		text = strconv.Itoa(*value)
	}
	e := &IntEdit{Edit: NewEdit(caption, text)}
	e.SetFilter(digitsOnly)
	return e
}

func digitsOnly(e *Edit, k input.Key) (input.Key, bool) {
	if !k.Printable() {
		return k, true
	}
	for _, r := range k.Runes {
		if r < '0' || r > '9' {
			return k, false
		}
	}
	return k, true
}

// Int returns the value, or false when the field is empty.
func (e *IntEdit) Int() (int, bool) {
	v := strings.TrimSpace(e.Value())
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetInt replaces the value.
func (e *IntEdit) SetInt(n int) {
	e.SetValue(strconv.Itoa(n))
}

// LineEntry is an Edit that emits OnLine with the trimmed text when enter is
// pressed, then clears itself.
type LineEntry struct {
	*Edit
	OnLine signal.Signal[string]
}

func NewLineEntry(caption string) *LineEntry {
	return &LineEntry{Edit: NewEdit(caption, "")}
}

func (l *LineEntry) Keypress(size Size, k input.Key) bool {
	if l.Edit.Keypress(size, k) {
		return true
	}
	if !k.Is("enter") {
		return false
	}
	text := strings.TrimSpace(l.Value())
	l.SetValue("")
	l.OnLine.Emit(text)
	return true
}
