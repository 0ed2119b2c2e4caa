package widget

import (
	"fmt"
	"strings"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// Segment is a run of text drawn with one palette entry. An empty Style
// inherits the surrounding style.
type Segment struct {
	Style string
	Text  string
}

// Markup is styled text.
type Markup []Segment

// Plain returns unstyled markup.
func Plain(s string) Markup {
	return Markup{{Text: s}}
}

// Styled returns markup drawn with one palette entry.
func Styled(style, s string) Markup {
	return Markup{{Style: style, Text: s}}
}

// String returns the text without styles.
func (m Markup) String() string {
	var b strings.Builder
	for _, seg := range m {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// Safe returns m with control characters replaced by visible escapes.
func (m Markup) Safe() Markup {
	out := make(Markup, len(m))
	for i, seg := range m {
		out[i] = Segment{Style: seg.Style, Text: SafeString(seg.Text)}
	}
	return out
}

func (m Markup) render(p *theme.Palette) string {
	var b strings.Builder
	for _, seg := range m {
		b.WriteString(p.Render(seg.Style, seg.Text))
	}
	return b.String()
}

// SafeString replaces control characters, other than newline and tab, with
// their \xNN escapes so they cannot disturb the terminal.
func SafeString(s string) string {
	if !strings.ContainsFunc(s, isUnsafe) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if isUnsafe(r) {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isUnsafe(r rune) bool {
	return (r < 0x20 && r != '\n' && r != '\t') || r == 0x7f
}

// Align positions text within its width.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// WrapMode selects how over-long lines are laid out.
type WrapMode int

const (
	WrapSpace WrapMode = iota
	WrapClip
)

// Text displays markup, wrapped at word boundaries by default.
type Text struct {
	Inert
	markup Markup
	align  Align
	wrap   WrapMode
}

// NewText returns a left-aligned text.
func NewText(s string) *Text {
	return &Text{markup: Plain(s)}
}

// NewMarkupText returns a text showing m.
func NewMarkupText(m Markup) *Text {
	return &Text{markup: m}
}

// Aligned sets the alignment and returns t.
func (t *Text) Aligned(a Align) *Text {
	t.align = a
	return t
}

// Clipped switches t to clipping instead of wrapping and returns t.
func (t *Text) Clipped() *Text {
	t.wrap = WrapClip
	return t
}

func (t *Text) SetText(s string) { t.markup = Plain(s) }

func (t *Text) SetMarkup(m Markup) { t.markup = m }

// Text returns the displayed text without styles.
func (t *Text) Text() string { return t.markup.String() }

// Content returns the displayed markup.
func (t *Text) Content() Markup { return t.markup }

// PackWidth reports the width of the longest line.
func (t *Text) PackWidth() int {
	w := 0
	for _, line := range strings.Split(t.markup.String(), "\n") {
		if lw := ansi.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

func (t *Text) layout(cols int) []string {
	if cols <= 0 {
		return nil
	}
	var raw []string
	for _, line := range strings.Split(t.markup.render(theme.Current()), "\n") {
		if t.wrap == WrapSpace && ansi.StringWidth(line) > cols {
			raw = append(raw, strings.Split(wrap.String(wordwrap.String(line, cols), cols), "\n")...)
			continue
		}
		raw = append(raw, line)
	}
	lines := carrySGR(raw)
	for i, line := range lines {
		if t.wrap == WrapClip {
			line = ansi.Truncate(line, cols, "")
		}
		lines[i] = alignLine(line, cols, t.align)
	}
	return lines
}

func alignLine(line string, cols int, a Align) string {
	w := ansi.StringWidth(line)
	if w >= cols {
		return line
	}
	switch a {
	case AlignCenter:
		return strings.Repeat(" ", (cols-w)/2) + line
	case AlignRight:
		return strings.Repeat(" ", cols-w) + line
	}
	return line
}

func (t *Text) Rows(cols int, focus bool) int {
	return len(t.layout(cols))
}

func (t *Text) Render(size Size, focus bool) Canvas {
	return NewCanvas(t.layout(size.Cols), size)
}

// SelectableText is a text that can take focus without reacting to input.
type SelectableText struct {
	*Text
}

func NewSelectableText(s string) *SelectableText {
	return &SelectableText{Text: NewText(s)}
}

func (t *SelectableText) Selectable() bool { return true }

// ActionableText is a selectable text that emits OnClick when activated by
// the keyboard or a left click.
type ActionableText struct {
	SelectableText
	OnClick signal.Signal[struct{}]
}

func NewActionableText(s string) *ActionableText {
	return &ActionableText{SelectableText: SelectableText{Text: NewText(s)}}
}

func (t *ActionableText) Keypress(size Size, k input.Key) bool {
	if !activates(k) {
		return false
	}
	t.OnClick.Emit(struct{}{})
	return true
}

func (t *ActionableText) Mouse(size Size, ev input.Mouse, focus bool) bool {
	if !ev.IsPress(1) {
		return false
	}
	t.OnClick.Emit(struct{}{})
	return true
}

// Divider is a one-row horizontal rule.
type Divider struct {
	Inert
	char string
}

// NewDivider returns a divider drawn with char, or blank for "".
func NewDivider(char string) *Divider {
	if char == "" {
		char = " "
	}
	return &Divider{char: char}
}

func (d *Divider) Rows(int, bool) int { return 1 }

func (d *Divider) Render(size Size, focus bool) Canvas {
	line := ""
	if size.Cols > 0 {
		line = strings.Repeat(d.char, size.Cols)
	}
	return NewCanvas([]string{line}, size)
}
