package widget

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type sgrToken struct {
	seq  bool
	text string
}

// splitSGR splits s into CSI sequences and the text between them.
func splitSGR(s string) []sgrToken {
	var out []sgrToken
	start := 0
	for i := 0; i < len(s); {
		if s[i] != 0x1b || i+1 >= len(s) || s[i+1] != '[' {
			i++
			continue
		}
		j := i + 2
		for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
			j++
		}
		if j >= len(s) {
			break
		}
		if i > start {
			out = append(out, sgrToken{text: s[start:i]})
		}
		out = append(out, sgrToken{seq: true, text: s[i : j+1]})
		i = j + 1
		start = i
	}
	if start < len(s) {
		out = append(out, sgrToken{text: s[start:]})
	}
	return out
}

func isReset(seq string) bool {
	return seq == "\x1b[0m" || seq == "\x1b[m"
}

// restyle applies style to the parts of line that no inner style covers.
func restyle(line string, style lipgloss.Style) string {
	var b strings.Builder
	styled := false
	for _, tok := range splitSGR(line) {
		if tok.seq {
			if strings.HasSuffix(tok.text, "m") {
				styled = !isReset(tok.text)
			}
			b.WriteString(tok.text)
			continue
		}
		if styled {
			b.WriteString(tok.text)
			continue
		}
		b.WriteString(style.Render(tok.text))
	}
	return b.String()
}

// carrySGR reopens styles that a line break split, so each line renders on
// its own.
func carrySGR(lines []string) []string {
	active := ""
	out := make([]string, len(lines))
	for i, line := range lines {
		prefix := active
		for _, tok := range splitSGR(line) {
			if !tok.seq || !strings.HasSuffix(tok.text, "m") {
				continue
			}
			if isReset(tok.text) {
				active = ""
			} else {
				active += tok.text
			}
		}
		if active != "" {
			line += "\x1b[0m"
		}
		out[i] = prefix + line
	}
	return out
}
