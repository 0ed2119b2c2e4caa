package events

import "github.com/atomicstack/cellkit/internal/logging"

type DialogTracer struct{}

type FormTracer struct{}

type dialogMode string

const (
	DialogModeless dialogMode = "modeless"
	DialogModal    dialogMode = "modal"
)

var (
	Dialog = DialogTracer{}
	Form   = FormTracer{}
)

func (DialogTracer) Show(id, title string, mode dialogMode, paths int) {
	logging.Trace("dialog.show", map[string]interface{}{
		"id":    id,
		"title": title,
		"mode":  mode,
		"paths": paths,
	})
}

func (DialogTracer) Close(id string, button int) {
	logging.Trace("dialog.close", map[string]interface{}{"id": id, "button": button})
}

// Refused records a button activation that every subscriber declined.
func (DialogTracer) Refused(id string, button int) {
	logging.Trace("dialog.refused", map[string]interface{}{"id": id, "button": button})
}

func (FormTracer) Invalid(title, message string) {
	logging.Trace("form.invalid", map[string]interface{}{"title": title, "message": message})
}

func (FormTracer) Saved(title string, fields []string) {
	logging.Trace("form.saved", map[string]interface{}{"title": title, "fields": fields})
}
