package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette entry names used by the framework widgets.
const (
	MenuKey      = "menu_key"
	MenuText     = "menu_text"
	TabUnsel     = "tabbar_unsel"
	TabSel       = "tabbar_sel"
	DropdownItem = "dropdown_item"
	DropdownSel  = "dropdown_sel"
	ButtonSelect = "button_select"
	ButtonFocus  = "button_focus"
	DialogBack   = "dialog_back"
	DialogHeader = "dialog_header"
	FieldError   = "field_error"
	WindowNorm   = "window_norm"
	WindowSel    = "window_sel"
	MonitorText  = "monitor_text"
	MonitorMark  = "monitor_mark"
	EntryLine    = "entry_line"
	EditFocus    = "edit_focus"
	Cursor       = "cursor"
)

// Palette maps entry names to reusable Lip Gloss styles.
type Palette struct {
	styles map[string]*lipgloss.Style
}

// Entry describes a palette override as read from configuration. Colours
// accept the classic names ("light cyan", "dark blue") or any Lip Gloss
// colour string ("33", "#ff8800").
type Entry struct {
	Foreground string `toml:"fg"`
	Background string `toml:"bg"`
	Bold       bool   `toml:"bold"`
	Underline  bool   `toml:"underline"`
}

var namedColors = map[string]string{
	"black":         "0",
	"dark red":      "1",
	"dark green":    "2",
	"brown":         "3",
	"dark blue":     "4",
	"dark magenta":  "5",
	"dark cyan":     "6",
	"light gray":    "7",
	"dark gray":     "8",
	"light red":     "9",
	"light green":   "10",
	"yellow":        "11",
	"light blue":    "12",
	"light magenta": "13",
	"light cyan":    "14",
	"white":         "15",
}

var defaultPalette = Palette{styles: map[string]*lipgloss.Style{
	MenuKey: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Background(lipgloss.Color("4")).Bold(true),
	),
	MenuText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
	),
	TabUnsel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")),
	),
	TabSel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("0")).Bold(true),
	),
	DropdownItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
	),
	DropdownSel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Background(lipgloss.Color("4")).Bold(true),
	),
	ButtonSelect: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("0")),
	),
	ButtonFocus: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")),
	),
	DialogBack: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4")),
	),
	DialogHeader: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("7")),
	),
	FieldError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Background(lipgloss.Color("4")),
	),
	WindowNorm: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Background(lipgloss.Color("0")),
	),
	WindowSel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Background(lipgloss.Color("0")),
	),
	MonitorText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("0")),
	),
	MonitorMark: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Background(lipgloss.Color("0")),
	),
	EntryLine: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8")),
	),
	EditFocus: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("0")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Reverse(true),
	),
}}

var current = &defaultPalette

// Default exposes the standard palette.
func Default() *Palette {
	return &defaultPalette
}

// Current returns the palette widgets render with.
func Current() *Palette {
	return current
}

// Use installs p as the palette widgets render with. A nil palette restores
// the default.
func Use(p *Palette) {
	if p == nil {
		p = &defaultPalette
	}
	current = p
}

// Clone returns an independent copy of p.
func (p *Palette) Clone() *Palette {
	out := &Palette{styles: make(map[string]*lipgloss.Style, len(p.styles))}
	for name, style := range p.styles {
		out.styles[name] = ptr(*style)
	}
	return out
}

// Style returns the named style, or an empty style for unknown names.
func (p *Palette) Style(name string) lipgloss.Style {
	if s, ok := p.styles[name]; ok {
		return *s
	}
	return lipgloss.NewStyle()
}

// Has reports whether name is defined.
func (p *Palette) Has(name string) bool {
	_, ok := p.styles[name]
	return ok
}

// Set defines or replaces the named style.
func (p *Palette) Set(name string, style lipgloss.Style) {
	p.styles[name] = ptr(style)
}

// Render styles text with the named entry. An empty name returns text as is.
func (p *Palette) Render(name, text string) string {
	if name == "" || text == "" {
		return text
	}
	s, ok := p.styles[name]
	if !ok {
		return text
	}
	return s.Render(text)
}

// Names lists the defined entries in sorted order.
func (p *Palette) Names() []string {
	names := make([]string, 0, len(p.styles))
	for name := range p.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply merges overrides into p.
func (p *Palette) Apply(overrides map[string]Entry) error {
	for name, entry := range overrides {
		style := lipgloss.NewStyle()
		fg, fgBold, err := parseColor(entry.Foreground)
		if err != nil {
			return fmt.Errorf("palette %s: %w", name, err)
		}
		bg, _, err := parseColor(entry.Background)
		if err != nil {
			return fmt.Errorf("palette %s: %w", name, err)
		}
		if fg != "" {
			style = style.Foreground(lipgloss.Color(fg))
		}
		if bg != "" {
			style = style.Background(lipgloss.Color(bg))
		}
		if entry.Bold || fgBold {
			style = style.Bold(true)
		}
		if entry.Underline {
			style = style.Underline(true)
		}
		p.Set(name, style)
	}
	return nil
}

// parseColor accepts "light cyan,bold", "33" or "#ff8800".
func parseColor(spec string) (string, bool, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", false, nil
	}
	bold := false
	parts := strings.Split(spec, ",")
	color := strings.TrimSpace(parts[0])
	for _, attr := range parts[1:] {
		switch strings.TrimSpace(attr) {
		case "bold":
			bold = true
		case "":
		default:
			return "", false, fmt.Errorf("unknown attribute %q", attr)
		}
	}
	if named, ok := namedColors[strings.ToLower(color)]; ok {
		return named, bold, nil
	}
	if strings.HasPrefix(color, "#") || isNumber(color) {
		return color, bold, nil
	}
	return "", false, fmt.Errorf("unknown colour %q", color)
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
