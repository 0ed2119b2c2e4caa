// Package form builds dialogs out of declared fields. A Spec registers
// string, integer and dropdown fields on every show; Okay runs the optional
// validator, then the optional saver, then emits OnSaved.
package form

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/atomicstack/cellkit/internal/controls"
	"github.com/atomicstack/cellkit/internal/dialog"
	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/logging/events"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/atomicstack/cellkit/internal/widget"
	"github.com/mattn/go-runewidth"
)

var (
	ErrFieldsSealed   = errors.New("form: fields can only be added while the form is being built")
	ErrDuplicateField = errors.New("form: duplicate field")
	ErrTypeMismatch   = errors.New("form: type mismatch")
	ErrUnknownField   = errors.New("form: unknown field")
	ErrNoValue        = errors.New("form: field has no value")
)

const (
	ButtonOkay   = 0
	ButtonCancel = 1
)

// Spec declares a form's fields. AddFields runs once per show.
type Spec interface {
	AddFields(f *Form) error
}

// SpecFunc adapts a function to Spec.
type SpecFunc func(f *Form) error

func (fn SpecFunc) AddFields(f *Form) error { return fn(f) }

// Validator is implemented by specs that check fields before saving. A
// non-empty message keeps the form open and is shown to the user.
type Validator interface {
	Validate(f *Form) string
}

// Saver is implemented by specs that store the fields on Okay.
type Saver interface {
	Save(f *Form)
}

// Values maps field names to their values at save time.
type Values map[string]any

// Form is a dialog with Okay and Cancel buttons over a set of fields.
type Form struct {
	title   string
	spec    Spec
	dialog  *dialog.Dialog
	fields  []*Field
	byName  map[string]*Field
	open    bool
	errText *widget.Text
	OnSaved signal.Signal[Values]
}

func New(title string, spec Spec) *Form {
	f := &Form{title: title, spec: spec, byName: make(map[string]*Field)}
	f.dialog = dialog.New(title, []string{"Okay", "Cancel"}, ButtonCancel, f.body)
	f.dialog.OnButton.Connect(f.button)
	return f
}

func (f *Form) Title() string { return f.title }

// Dialog returns the underlying dialog.
func (f *Form) Dialog() *dialog.Dialog { return f.dialog }

// Show builds the fields and shows the form without waiting.
func (f *Form) Show(host dialog.Host) error {
	if err := f.build(); err != nil {
		return err
	}
	f.dialog.Show(host)
	return nil
}

// ShowModal builds the fields and waits until the form is closed. The result
// button is ButtonOkay only when the fields were saved.
func (f *Form) ShowModal(ctx context.Context, host dialog.Host) (dialog.Result, error) {
	if err := f.build(); err != nil {
		return dialog.Result{Button: -1}, err
	}
	return f.dialog.ShowModal(ctx, host)
}

// build runs the add-fields pass. The dialog lays the fields out when it
// calls body.
func (f *Form) build() error {
	f.fields = nil
	f.byName = make(map[string]*Field)
	f.errText = widget.NewText("")
	f.open = true
	err := f.spec.AddFields(f)
	f.open = false
	if err != nil {
		return fmt.Errorf("add fields for %s: %w", f.title, err)
	}
	return nil
}

func (f *Form) register(fd *Field, opts []Option) error {
	if !f.open {
		return fmt.Errorf("%w: %s", ErrFieldsSealed, fd.Name)
	}
	if _, ok := f.byName[fd.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateField, fd.Name)
	}
	for _, opt := range opts {
		opt(fd)
	}
	f.fields = append(f.fields, fd)
	f.byName[fd.Name] = fd
	return nil
}

// AddString registers a single-line text field.
func (f *Form) AddString(name, label, value string, opts ...Option) error {
	fd := &Field{Name: name, Label: label, Kind: KindString, edit: widget.NewEdit("", value)}
	if err := f.register(fd, opts); err != nil {
		return err
	}
	if fd.filter != nil {
		filter := fd.filter
		fd.edit.SetFilter(func(_ *widget.Edit, k input.Key) (input.Key, bool) { return filter(k) })
	}
	fd.edit.OnChange.Listen(func(string) { f.clearError() })
	return nil
}

// AddInt registers a digits-only field.
func (f *Form) AddInt(name, label string, value int, opts ...Option) error {
	fd := &Field{Name: name, Label: label, Kind: KindInt, intEdit: widget.NewIntEdit("", &value)}
	if err := f.register(fd, opts); err != nil {
		return err
	}
	if fd.filter != nil {
		filter := fd.filter
		fd.intEdit.SetFilter(func(e *widget.Edit, k input.Key) (input.Key, bool) {
			k, ok := filter(k)
			if !ok || !k.Printable() {
				return k, ok
			}
			for _, r := range k.Runes {
				if r < '0' || r > '9' {
					return k, false
				}
			}
			return k, true
		})
	}
	fd.intEdit.OnChange.Listen(func(string) { f.clearError() })
	return nil
}

// AddDropdown registers a choice from a fixed list of items.
func (f *Form) AddDropdown(name, label string, items []string, def controls.Default, opts ...Option) error {
	fd := &Field{Name: name, Label: label, Kind: KindDropdown, dropdown: controls.NewDropdown(items, def)}
	if err := f.register(fd, opts); err != nil {
		return err
	}
	fd.dropdown.OnSelect.Listen(func(int) { f.clearError() })
	return nil
}

// Fields returns the fields registered by the last show, in order.
func (f *Form) Fields() []*Field { return slices.Clone(f.fields) }

func (f *Form) field(name string, kind Kind) (*Field, error) {
	fd, ok := f.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if fd.Kind != kind {
		return nil, fmt.Errorf("%w: %s is a %s field, not %s", ErrTypeMismatch, name, fd.Kind, kind)
	}
	return fd, nil
}

// String returns the value of a string field.
func (f *Form) String(name string) (string, error) {
	fd, err := f.field(name, KindString)
	if err != nil {
		return "", err
	}
	return fd.edit.Value(), nil
}

// Int returns the value of an integer field, or ErrNoValue when it is empty.
func (f *Form) Int(name string) (int, error) {
	fd, err := f.field(name, KindInt)
	if err != nil {
		return 0, err
	}
	n, ok := fd.intEdit.Int()
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoValue, name)
	}
	return n, nil
}

// Dropdown returns the selected index and item of a dropdown field.
func (f *Form) Dropdown(name string) (int, string, error) {
	fd, err := f.field(name, KindDropdown)
	if err != nil {
		return -1, "", err
	}
	i, item := fd.dropdown.Selection()
	return i, item, nil
}

// Set replaces a field's value. String fields take a string, integer fields
// an int, dropdowns an item index or item name.
func (f *Form) Set(name string, value any) error {
	fd, ok := f.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	switch fd.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s wants a string, got %T", ErrTypeMismatch, name, value)
		}
		fd.edit.SetValue(s)
	case KindInt:
		n, ok := value.(int)
		if !ok {
			return fmt.Errorf("%w: %s wants an int, got %T", ErrTypeMismatch, name, value)
		}
		fd.intEdit.SetInt(n)
	case KindDropdown:
		switch v := value.(type) {
		case int:
			if !fd.dropdown.SetSelection(v) {
				return fmt.Errorf("%w: %s has no item %d", ErrTypeMismatch, name, v)
			}
		case string:
			i := slices.Index(fd.dropdown.Items(), v)
			if i < 0 || !fd.dropdown.SetSelection(i) {
				return fmt.Errorf("%w: %s has no item %q", ErrTypeMismatch, name, v)
			}
		default:
			return fmt.Errorf("%w: %s wants an index or item, got %T", ErrTypeMismatch, name, value)
		}
	}
	return nil
}

// Values collects every field's current value.
func (f *Form) Values() Values {
	out := make(Values, len(f.fields))
	for _, fd := range f.fields {
		out[fd.Name] = fd.value()
	}
	return out
}

// Error returns the validation message currently shown.
func (f *Form) Error() string {
	if f.errText == nil {
		return ""
	}
	return f.errText.Text()
}

func (f *Form) clearError() {
	if f.errText != nil && f.errText.Text() != "" {
		f.errText.SetText("")
	}
}

func (f *Form) button(i int) bool {
	if i != ButtonOkay {
		return true
	}
	if v, ok := f.spec.(Validator); ok {
		if msg := v.Validate(f); msg != "" {
			f.errText.SetText(msg)
			events.Form.Invalid(f.title, msg)
			return false
		}
	}
	if s, ok := f.spec.(Saver); ok {
		s.Save(f)
	}
	values := f.Values()
	names := make([]string, 0, len(f.fields))
	for _, fd := range f.fields {
		names = append(names, fd.Name)
	}
	events.Form.Saved(f.title, names)
	f.OnSaved.Emit(values)
	return true
}

// body lays out runs of fields that share a group. Grouped runs are boxed
// and titled; captions are padded to the widest caption in the run.
func (f *Form) body(*dialog.Dialog) widget.Widget {
	var items []widget.Item
	for start := 0; start < len(f.fields); {
		end := start + 1
		for end < len(f.fields) && f.fields[end].Group == f.fields[start].Group {
			end++
		}
		run := f.fields[start:end]
		width := 0
		for _, fd := range run {
			width = max(width, runewidth.StringWidth(fd.Label+": "))
		}
		rows := make([]widget.Item, len(run))
		for i, fd := range run {
			fd.setCaption(runewidth.FillRight(fd.Label+": ", width))
			rows[i] = widget.Pack(fd.Widget())
		}
		if group := run[0].Group; group != "" {
			items = append(items, widget.Pack(widget.NewLineBox(widget.NewPile(rows...), group)))
		} else {
			items = append(items, rows...)
		}
		start = end
	}
	items = append(items, widget.Pack(widget.NewAttrMap(f.errText, theme.FieldError, theme.FieldError)))
	return widget.NewPile(items...)
}
