package logview

import (
	"strings"

	"github.com/atomicstack/cellkit/internal/widget"
)

type contenter interface {
	Content() widget.Markup
}

// Flatten returns the plain text of w, looking through decorations to the
// text widget underneath. Containers flatten to their children's text joined
// by spaces.
func Flatten(w widget.Widget) string {
	for w != nil {
		if c, ok := w.(contenter); ok {
			return c.Content().String()
		}
		if c, ok := w.(widget.Container); ok {
			var parts []string
			for _, child := range c.Children() {
				if s := Flatten(child); s != "" {
					parts = append(parts, s)
				}
			}
			return strings.Join(parts, " ")
		}
		d, ok := w.(widget.Decorator)
		if !ok {
			return ""
		}
		w = d.Inner()
	}
	return ""
}
