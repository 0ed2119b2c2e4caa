package theme

import (
	"strings"
	"testing"
)

func TestDefaultDefinesFrameworkEntries(t *testing.T) {
	p := Default()
	for _, name := range []string{MenuKey, MenuText, TabSel, TabUnsel, DropdownItem, DropdownSel, ButtonSelect, ButtonFocus, DialogBack, DialogHeader, FieldError} {
		if !p.Has(name) {
			t.Fatalf("expected default palette to define %s", name)
		}
	}
}

func TestApplyOverridesOnClone(t *testing.T) {
	p := Default().Clone()
	err := p.Apply(map[string]Entry{
		"monitor_text": {Foreground: "light green,bold", Background: "black"},
		"custom":       {Foreground: "#ff8800"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Has("custom") {
		t.Fatalf("expected custom entry to be added")
	}
	if !p.Style(MonitorText).GetBold() {
		t.Fatalf("expected bold from colour attribute")
	}
	if Default().Has("custom") {
		t.Fatalf("expected default palette untouched")
	}
}

func TestApplyRejectsUnknownColour(t *testing.T) {
	err := Default().Clone().Apply(map[string]Entry{"x": {Foreground: "mauve"}})
	if err == nil || !strings.Contains(err.Error(), "mauve") {
		t.Fatalf("expected unknown colour error, got %v", err)
	}
}

func TestUseRestoresDefault(t *testing.T) {
	custom := Default().Clone()
	Use(custom)
	t.Cleanup(func() { Use(nil) })
	if Current() != custom {
		t.Fatalf("expected custom palette to be current")
	}
	Use(nil)
	if Current() != Default() {
		t.Fatalf("expected default palette restored")
	}
}

func TestRenderUnknownNameIsPlain(t *testing.T) {
	if got := Default().Render("nope", "text"); got != "text" {
		t.Fatalf("expected plain text, got %q", got)
	}
}
