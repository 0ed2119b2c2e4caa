package form

import (
	"github.com/atomicstack/cellkit/internal/controls"
	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/widget"
)

type Kind int

const (
	KindString Kind = iota
	KindInt
	KindDropdown
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDropdown:
		return "dropdown"
	}
	return "string"
}

// Field is one registered form field.
type Field struct {
	Name  string
	Label string
	Kind  Kind
	Group string

	edit     *widget.Edit
	intEdit  *widget.IntEdit
	dropdown *controls.Dropdown
	filter   func(input.Key) (input.Key, bool)
}

// Widget returns the widget that edits the field.
func (f *Field) Widget() widget.Widget {
	switch f.Kind {
	case KindInt:
		return f.intEdit
	case KindDropdown:
		return f.dropdown
	}
	return f.edit
}

func (f *Field) setCaption(caption string) {
	switch f.Kind {
	case KindInt:
		f.intEdit.SetCaption(caption)
	case KindDropdown:
		f.dropdown.SetCaption(caption)
	default:
		f.edit.SetCaption(caption)
	}
}

// value returns the field's current value: a string, an int (nil when an
// integer field is empty) or the selected dropdown item.
func (f *Field) value() any {
	switch f.Kind {
	case KindInt:
		if n, ok := f.intEdit.Int(); ok {
			return n
		}
		return nil
	case KindDropdown:
		_, item := f.dropdown.Selection()
		return item
	}
	return f.edit.Value()
}

// Option configures a field at registration.
type Option func(*Field)

// InGroup places the field in the named group.
func InGroup(name string) Option {
	return func(f *Field) { f.Group = name }
}

// WithFilter installs a keystroke filter on a string or integer field. The
// filter may return a different key, or false to drop the key.
func WithFilter(fn func(k input.Key) (input.Key, bool)) Option {
	return func(f *Field) { f.filter = fn }
}
