// Package dialog shows a titled box of widgets with a row of buttons above
// whatever the loop is currently displaying. A dialog is either modeless,
// returning to the caller at once, or modal, in which case ShowModal re-enters
// the loop until a button closes it.
package dialog

import (
	"context"
	"time"

	"github.com/atomicstack/cellkit/internal/controls"
	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/logging/events"
	"github.com/atomicstack/cellkit/internal/loop"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/atomicstack/cellkit/internal/widget"
	"github.com/google/uuid"
)

// DefaultWidth is the overlay width used unless SetWidth is called.
const DefaultWidth = 46

// NoEscape marks a dialog without an escape button.
const NoEscape = -1

type State int

const (
	Closed State = iota
	ShownModeless
	ShownModal
)

func (s State) String() string {
	switch s {
	case ShownModeless:
		return "modeless"
	case ShownModal:
		return "modal"
	}
	return "closed"
}

// Result carries the index of the button that closed the dialog, or -1 when
// it was closed by Close or by the loop ending.
type Result struct {
	Button int
}

// Host is the loop a dialog is shown on. *loop.Loop satisfies it.
type Host interface {
	Widget() widget.Widget
	SetWidget(widget.Widget)
	SetAlarm(d time.Duration, fn func()) loop.Handle
	RunUntil(ctx context.Context, done func() bool) error
}

// BodyFunc builds the widgets between the header and the buttons. It runs on
// every show.
type BodyFunc func(d *Dialog) widget.Widget

// Dialog is a reusable dialog box. OnButton is emitted with the index of the
// activated button; the dialog closes only if a subscriber returns true.
type Dialog struct {
	ID       string
	title    string
	buttons  []string
	escape   int
	body     BodyFunc
	width    int
	OnButton signal.Signal[int]

	layout  *widget.Pile
	set     *controls.ButtonSet
	paths   [][]int
	state   State
	host    Host
	saved   widget.Widget
	result  Result
	closing bool
}

// New returns a closed dialog. escape is the index of the button esc
// activates, or NoEscape. body may be nil.
func New(title string, buttons []string, escape int, body BodyFunc) *Dialog {
	if escape >= len(buttons) {
		escape = NoEscape
	}
	return &Dialog{
		ID:      uuid.NewString(),
		title:   title,
		buttons: append([]string(nil), buttons...),
		escape:  escape,
		body:    body,
		width:   DefaultWidth,
	}
}

func (d *Dialog) Title() string { return d.title }

func (d *Dialog) Buttons() []string { return append([]string(nil), d.buttons...) }

// SetWidth changes the overlay width for the next show. Zero uses the whole
// screen.
func (d *Dialog) SetWidth(cols int) { d.width = max(cols, 0) }

func (d *Dialog) State() State { return d.state }

// Result returns how the dialog was last closed.
func (d *Dialog) Result() Result { return d.result }

// Layout returns the pile built by the last show.
func (d *Dialog) Layout() *widget.Pile { return d.layout }

// ButtonSet returns the button row built by the last show.
func (d *Dialog) ButtonSet() *controls.ButtonSet { return d.set }

// FocusPaths returns the focus paths computed by the last show.
func (d *Dialog) FocusPaths() [][]int { return d.paths }

// Show displays the dialog and returns immediately.
func (d *Dialog) Show(host Host) {
	d.show(host, ShownModeless)
}

// ShowModal displays the dialog and runs the loop until it closes. If the
// loop quits or ctx ends first, the dialog is removed and the error returned.
func (d *Dialog) ShowModal(ctx context.Context, host Host) (Result, error) {
	d.show(host, ShownModal)
	err := host.RunUntil(ctx, func() bool { return d.state == Closed })
	if err != nil {
		d.close(-1)
		return d.result, err
	}
	return d.result, nil
}

func (d *Dialog) show(host Host, state State) {
	if d.state != Closed {
		panic("dialog: " + d.title + " is already shown")
	}
	d.layout = d.build()
	d.paths = widget.FocusPaths(d.layout)
	if len(d.paths) > 0 {
		widget.SetFocusPath(d.layout, d.paths[0])
	}
	frame := &frame{
		Widget: widget.NewAttrMap(widget.NewLineBox(d.layout, ""), theme.DialogBack, theme.DialogBack),
		d:      d,
	}
	d.host = host
	d.saved = host.Widget()
	d.state = state
	d.closing = false
	d.result = Result{Button: -1}
	host.SetWidget(widget.NewOverlay(frame, d.saved, d.width, 0))
	mode := events.DialogModeless
	if state == ShownModal {
		mode = events.DialogModal
	}
	events.Dialog.Show(d.ID, d.title, mode, len(d.paths))
}

func (d *Dialog) build() *widget.Pile {
	header := widget.NewAttrMap(widget.NewText(d.title).Aligned(widget.AlignCenter), theme.DialogHeader, theme.DialogHeader)
	items := []widget.Item{widget.Pack(header)}
	if d.body != nil {
		if body := d.body(d); body != nil {
			items = append(items, widget.Pack(body))
		}
	}
	d.set = controls.NewButtonSet(d.buttons...)
	d.set.OnClick.Listen(d.activate)
	if len(d.buttons) > 0 {
		items = append(items, widget.Pack(widget.Centered(d.set, d.set.Width())))
	}
	return widget.NewPile(items...)
}

// activate emits OnButton and closes the dialog if a subscriber agrees.
func (d *Dialog) activate(button int) {
	if d.state == Closed || d.closing {
		return
	}
	if !d.OnButton.Emit(button) {
		events.Dialog.Refused(d.ID, button)
		return
	}
	d.finish(button)
}

// Close closes the dialog without activating a button.
func (d *Dialog) Close() {
	if d.state == Closed {
		return
	}
	d.finish(-1)
}

// finish closes a modeless dialog at once. A modal close waits for the next
// loop step so the callback that asked for it unwinds first.
func (d *Dialog) finish(button int) {
	if d.state != ShownModal {
		d.close(button)
		return
	}
	if d.closing {
		return
	}
	d.closing = true
	d.host.SetAlarm(0, func() { d.close(button) })
}

func (d *Dialog) close(button int) {
	if d.state == Closed {
		return
	}
	d.host.SetWidget(d.saved)
	d.state = Closed
	d.closing = false
	d.saved = nil
	d.result = Result{Button: button}
	events.Dialog.Close(d.ID, button)
}

// cycle moves focus step entries along the focus paths, wrapping at the ends.
func (d *Dialog) cycle(step int) {
	n := len(d.paths)
	if n == 0 {
		return
	}
	i := widget.PathIndex(d.paths, widget.FocusPath(d.layout))
	if i < 0 {
		i = 0
	} else {
		i = ((i+step)%n + n) % n
	}
	widget.SetFocusPath(d.layout, d.paths[i])
}

// frame is the outermost dialog widget. It owns the dialog keys and passes
// everything else down.
type frame struct {
	widget.Widget
	d *Dialog
}

func (f *frame) Inner() widget.Widget { return f.Widget }

func (f *frame) Keypress(size widget.Size, k input.Key) bool {
	switch {
	case k.Is("esc"):
		if f.d.escape != NoEscape {
			f.d.activate(f.d.escape)
			return true
		}
	case k.Is("tab"):
		f.d.cycle(1)
		return true
	case k.Is("shift+tab"):
		f.d.cycle(-1)
		return true
	}
	return f.Widget.Keypress(size, k)
}

// MessageBox returns a dialog showing text that closes on any button. With
// no buttons it gets a single "Okay". The last button is the escape button.
func MessageBox(title, text string, buttons ...string) *Dialog {
	if len(buttons) == 0 {
		buttons = []string{"Okay"}
	}
	d := New(title, buttons, len(buttons)-1, func(*Dialog) widget.Widget {
		return widget.NewText(text).Aligned(widget.AlignCenter)
	})
	d.OnButton.Connect(func(int) bool { return true })
	return d
}
