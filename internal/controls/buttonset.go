package controls

import (
	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/atomicstack/cellkit/internal/widget"
	"github.com/mattn/go-runewidth"
)

const buttonGap = 2

// ButtonSet is a row of equal-width buttons. Activating one emits OnClick
// with its index. It is a container so the buttons take part in focus
// traversal.
type ButtonSet struct {
	labels  []string
	row     *widget.Columns
	width   int
	OnClick signal.Signal[int]
}

func NewButtonSet(labels ...string) *ButtonSet {
	maxlen := 0
	for _, label := range labels {
		maxlen = max(maxlen, runewidth.StringWidth(label))
	}
	maxlen += 4
	s := &ButtonSet{labels: append([]string(nil), labels...)}
	items := make([]widget.Item, len(labels))
	for i, label := range labels {
		b := widget.NewButton(label)
		index := i
		b.OnClick.Listen(func(struct{}) { s.OnClick.Emit(index) })
		items[i] = widget.Given(maxlen, widget.NewAttrMap(b, theme.ButtonSelect, theme.ButtonFocus))
	}
	s.row = widget.NewColumns(buttonGap, items...)
	if n := len(labels); n > 0 {
		s.width = (maxlen+buttonGap)*n - buttonGap
	}
	return s
}

// Width is the total width of the buttons and the gaps between them.
func (s *ButtonSet) Width() int { return s.width }

func (s *ButtonSet) PackWidth() int { return s.width }

func (s *ButtonSet) Labels() []string { return append([]string(nil), s.labels...) }

func (s *ButtonSet) Children() []widget.Widget { return s.row.Children() }

func (s *ButtonSet) FocusPosition() int { return s.row.FocusPosition() }

func (s *ButtonSet) SetFocusPosition(pos int) bool { return s.row.SetFocusPosition(pos) }

func (s *ButtonSet) Selectable() bool { return len(s.labels) > 0 }

func (s *ButtonSet) Rows(int, bool) int { return 1 }

func (s *ButtonSet) Render(size widget.Size, focus bool) widget.Canvas {
	return s.row.Render(size, focus)
}

func (s *ButtonSet) Keypress(size widget.Size, k input.Key) bool {
	return s.row.Keypress(size, k)
}

func (s *ButtonSet) Mouse(size widget.Size, ev input.Mouse, focus bool) bool {
	return s.row.Mouse(size, ev, focus)
}
