package widget

import (
	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/charmbracelet/x/ansi"
)

// Button is a one-row push button drawn as "< label >".
type Button struct {
	label   string
	OnClick signal.Signal[struct{}]
}

func NewButton(label string) *Button {
	return &Button{label: label}
}

func (b *Button) Label() string { return b.label }

func (b *Button) SetLabel(label string) { b.label = label }

func (b *Button) Selectable() bool { return true }

func (b *Button) Rows(int, bool) int { return 1 }

func (b *Button) Render(size Size, focus bool) Canvas {
	inner := size.Cols - 4
	if inner < 0 {
		return NewCanvas([]string{"<>"}, size)
	}
	label := alignLine(ansi.Truncate(b.label, inner, ""), inner, AlignCenter)
	return NewCanvas([]string{"< " + fitWidth(label, inner) + " >"}, size)
}

func (b *Button) Keypress(size Size, k input.Key) bool {
	if !activates(k) {
		return false
	}
	b.OnClick.Emit(struct{}{})
	return true
}

func (b *Button) Mouse(size Size, ev input.Mouse, focus bool) bool {
	if !ev.IsPress(1) {
		return false
	}
	b.OnClick.Emit(struct{}{})
	return true
}
