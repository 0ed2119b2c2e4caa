package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/cellkit/internal/theme"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.LogCapacity != 500 || cfg.App.DialogWidth != 46 {
		t.Fatalf("expected default capacity 500 and width 46, got %d and %d", cfg.App.LogCapacity, cfg.App.DialogWidth)
	}
	if cfg.App.FeedInterval != 250*time.Millisecond || cfg.App.DoubleClick != 500*time.Millisecond {
		t.Fatalf("unexpected default durations %s %s", cfg.App.FeedInterval, cfg.App.DoubleClick)
	}
	if cfg.App.MirrorKind != MirrorText {
		t.Fatalf("expected text mirror by default, got %q", cfg.App.MirrorKind)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cellkit.toml")
	content := `
[feed]
path = "/var/log/file.log"
interval = "1s"

[log]
capacity = 100
mirror_kind = "sqlite"

[palette.dialog_back]
fg = "black"
bg = "light gray"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	env := []string{"CELLKIT_LOG_CAPACITY=200", "CELLKIT_FEED=/tmp/env.log"}
	cfg, err := LoadArgs([]string{"-config", path, "-feed", "/tmp/flag.log"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.FeedPath != "/tmp/flag.log" {
		t.Fatalf("expected flag to win, got %q", cfg.App.FeedPath)
	}
	if cfg.App.LogCapacity != 200 {
		t.Fatalf("expected env to beat the file, got %d", cfg.App.LogCapacity)
	}
	if cfg.App.FeedInterval != time.Second || cfg.App.MirrorKind != MirrorSQLite {
		t.Fatalf("expected file values, got %s %q", cfg.App.FeedInterval, cfg.App.MirrorKind)
	}
	if entry, ok := cfg.Palette["dialog_back"]; !ok || entry.Background != "light gray" {
		t.Fatalf("expected palette override, got %#v", cfg.Palette)
	}
	if cfg.Flags["config"] != path || cfg.Flags["log-capacity"] != "200" {
		t.Fatalf("unexpected flags %v", cfg.Flags)
	}
}

func TestLoadArgsConfigEqualsForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	if err := os.WriteFile(path, []byte("[ui]\ndialog_width = 60\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadArgs([]string{"--config=" + path}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.DialogWidth != 60 {
		t.Fatalf("expected width 60, got %d", cfg.App.DialogWidth)
	}
}

func TestLoadArgsBadFile(t *testing.T) {
	if _, err := LoadArgs([]string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, nil); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg, _ := LoadArgs(nil, nil)
	cfg.App.LogCapacity = 0
	cfg.App.MirrorKind = "xml"
	err := Validate(cfg)
	if err == nil {
		t.Fatalf("expected validation to fail")
	}
	msg := err.Error()
	if !strings.Contains(msg, "log capacity") || !strings.Contains(msg, "mirror kind") {
		t.Fatalf("expected both problems reported, got %q", msg)
	}
}

func TestValidateRejectsUnknownColour(t *testing.T) {
	cfg, _ := LoadArgs(nil, nil)
	cfg.Palette = map[string]theme.Entry{"dialog_back": {Foreground: "not a colour"}}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected an unknown colour to fail validation")
	}
}
