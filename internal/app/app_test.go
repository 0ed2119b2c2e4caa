package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/cellkit/internal/backend"
	"github.com/atomicstack/cellkit/internal/config"
	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/logview"
	"github.com/atomicstack/cellkit/internal/loop"
	"github.com/atomicstack/cellkit/internal/testutil"
	"github.com/atomicstack/cellkit/internal/widget"
)

func testSettings() config.App {
	return config.App{
		FeedInterval: 250 * time.Millisecond,
		LogCapacity:  100,
		MirrorKind:   config.MirrorText,
		DialogWidth:  46,
		DoubleClick:  500 * time.Millisecond,
	}
}

func newConsole(t *testing.T, settings config.App) (*Console, *testutil.Screen) {
	t.Helper()
	screen := testutil.NewScreen(70, 16)
	actx := NewContext(context.Background(), settings, nil, screen)
	c := NewConsole(actx)
	t.Cleanup(c.Close)
	actx.Loop.SetWidget(c.Widget())
	if err := actx.Loop.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return c, screen
}

func press(c *Console, evs ...input.Event) error {
	c.ctx.Loop.Feed(evs...)
	return c.ctx.Loop.Step(context.Background())
}

func mustPress(t *testing.T, c *Console, chords ...string) {
	t.Helper()
	if err := press(c, input.Keys(chords...)...); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func lastLine(p *logview.Panel) string {
	log := p.Log()
	if log.Len() == 0 {
		return ""
	}
	return logview.Flatten(log.At(log.Len() - 1))
}

func TestEntryLineGoesToConsoleTab(t *testing.T) {
	c, screen := newConsole(t, testSettings())

	if err := press(c, input.Type("hello there")...); err != nil {
		t.Fatalf("type: %v", err)
	}
	mustPress(t, c, "enter")

	if got := lastLine(c.ConsoleLog()); got != "hello there" {
		t.Fatalf("expected console line %q, got %q", "hello there", got)
	}
	if idx, _ := c.Tabs().Selected(); idx != tabConsole {
		t.Fatalf("expected console tab selected, got %d", idx)
	}
	if c.body.Items()[panelRow].Widget != c.ConsoleLog() {
		t.Fatalf("expected console panel in the body")
	}
	if c.entry.Value() != "" {
		t.Fatalf("expected entry cleared, got %q", c.entry.Value())
	}
	testutil.AssertContains(t, screen.LastLines(), "hello there")
}

func TestEmptyLineIsIgnored(t *testing.T) {
	c, _ := newConsole(t, testSettings())
	mustPress(t, c, "space", "enter")
	if n := c.ConsoleLog().Log().Len(); n != 0 {
		t.Fatalf("expected no console lines, got %d", n)
	}
}

func TestTabChordSwitchesPanel(t *testing.T) {
	c, _ := newConsole(t, testSettings())
	mustPress(t, c, "alt+2")
	if c.body.Items()[panelRow].Widget != c.ConsoleLog() {
		t.Fatalf("expected console panel after alt+2")
	}
	mustPress(t, c, "alt+1")
	if c.body.Items()[panelRow].Widget != c.Monitor() {
		t.Fatalf("expected monitor panel after alt+1")
	}
	if c.body.FocusPosition() != entryRow {
		t.Fatalf("expected entry to keep focus, got %d", c.body.FocusPosition())
	}
}

func TestFeedEventsReachMonitor(t *testing.T) {
	c, _ := newConsole(t, testSettings())

	c.ctx.Queue.Push(backend.Event{Kind: backend.KindLine, Data: "first"})
	c.ctx.Queue.Push(backend.Event{Kind: backend.KindLine, Data: "second"})
	c.ctx.Queue.Push(backend.Event{Kind: backend.KindStatus, Data: backend.StatusFollowing})

	if n := c.DrainFeed(); n != 3 {
		t.Fatalf("expected 3 drained events, got %d", n)
	}
	if got := lastLine(c.Monitor()); got != "second" {
		t.Fatalf("expected last monitor line %q, got %q", "second", got)
	}
	if got := c.MenuBar().Status(); got != "feed following" {
		t.Fatalf("expected status %q, got %q", "feed following", got)
	}
}

func TestFeedFollowsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.log")
	if err := os.WriteFile(path, []byte("history\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	settings := testSettings()
	settings.FeedPath = path
	settings.FeedInterval = 20 * time.Millisecond
	c, _ := newConsole(t, settings)

	waitFor := func(what string, cond func() bool) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for !cond() {
			if time.Now().After(deadline) {
				t.Fatalf("timed out waiting for %s", what)
			}
			time.Sleep(10 * time.Millisecond)
			c.DrainFeed()
		}
	}
	waitFor("following status", func() bool { return c.MenuBar().Status() == "feed following" })

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("fresh line\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	waitFor("fresh line", func() bool { return lastLine(c.Monitor()) == "fresh line" })
	for _, item := range c.Monitor().Log().Items() {
		if logview.Flatten(item) == "history" {
			t.Fatalf("expected existing content to be skipped")
		}
	}
}

func TestEraseAndCopyEmpty(t *testing.T) {
	c, _ := newConsole(t, testSettings())
	if c.Monitor().Log().Len() == 0 {
		t.Fatalf("expected the greeting line")
	}
	mustPress(t, c, "alt+e")
	if n := c.Monitor().Log().Len(); n != 0 {
		t.Fatalf("expected empty monitor, got %d", n)
	}
	if got := c.MenuBar().Status(); got != "cleared monitor" {
		t.Fatalf("expected status %q, got %q", "cleared monitor", got)
	}
	mustPress(t, c, "alt+c")
	if got := c.MenuBar().Status(); got != "nothing to copy" {
		t.Fatalf("expected status %q, got %q", "nothing to copy", got)
	}
}

func TestScrollKeysMoveLogFocus(t *testing.T) {
	c, _ := newConsole(t, testSettings())
	for i := 0; i < 30; i++ {
		c.Monitor().AddText("", "line")
	}
	c.ctx.Loop.Redraw()
	before := c.Monitor().Log().Focus()
	mustPress(t, c, "up")
	if got := c.Monitor().Log().Focus(); got != before-1 {
		t.Fatalf("expected focus %d, got %d", before-1, got)
	}
	if c.body.FocusPosition() != entryRow {
		t.Fatalf("expected entry to keep focus")
	}
}

func TestQuitConfirmed(t *testing.T) {
	c, _ := newConsole(t, testSettings())
	err := press(c, input.Keys("alt+q", "enter")...)
	if !errors.Is(err, loop.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
}

func TestQuitDeclinedFromUnhandledKey(t *testing.T) {
	c, _ := newConsole(t, testSettings())
	mustPress(t, c, "ctrl+c", "tab", "enter")
	if c.ctx.Loop.Widget() != c.Widget() {
		t.Fatalf("expected the console to be the root again")
	}
	if c.ctx.Loop.Depth() != 0 {
		t.Fatalf("expected no nested loop, got depth %d", c.ctx.Loop.Depth())
	}
}

func TestSetupFormValidatesAndSaves(t *testing.T) {
	c, _ := newConsole(t, testSettings())

	var evs []input.Event
	evs = append(evs, input.Keys("alt+s", "tab", "ctrl+u")...)
	evs = append(evs, input.Type("5")...)
	evs = append(evs, input.Keys("tab", "tab", "tab", "enter")...)
	evs = append(evs, input.Keys("shift+tab", "shift+tab", "shift+tab", "ctrl+u")...)
	evs = append(evs, input.Type("100")...)
	evs = append(evs, input.Keys("tab", "tab", "tab", "enter")...)
	if err := press(c, evs...); err != nil {
		t.Fatalf("step: %v", err)
	}

	if got := c.ctx.Settings.FeedInterval; got != 100*time.Millisecond {
		t.Fatalf("expected interval 100ms, got %v", got)
	}
	if got := c.MenuBar().Status(); got != "settings saved" {
		t.Fatalf("expected status %q, got %q", "settings saved", got)
	}
	if c.ctx.Loop.Widget() != c.Widget() {
		t.Fatalf("expected the form to be closed")
	}
}

func TestSetupFormCancelKeepsSettings(t *testing.T) {
	c, _ := newConsole(t, testSettings())
	var evs []input.Event
	evs = append(evs, input.Keys("alt+s")...)
	evs = append(evs, input.Type("ignored")...)
	evs = append(evs, input.Keys("esc")...)
	if err := press(c, evs...); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c.ctx.Settings.FeedPath != "" {
		t.Fatalf("expected feed path unchanged, got %q", c.ctx.Settings.FeedPath)
	}
}

func TestMirrorToggle(t *testing.T) {
	settings := testSettings()
	settings.MirrorPath = filepath.Join(t.TempDir(), "mirror.log")
	c, _ := newConsole(t, settings)

	mustPress(t, c, "alt+m")
	if c.Monitor().Log().Mirror() == nil {
		t.Fatalf("expected a mirror to be attached")
	}
	c.Monitor().AddText("", "mirrored line")
	mustPress(t, c, "alt+m")
	if c.Monitor().Log().Mirror() != nil {
		t.Fatalf("expected the mirror to be detached")
	}
	if got := c.MenuBar().Status(); got != "mirror off" {
		t.Fatalf("expected status %q, got %q", "mirror off", got)
	}

	data, err := os.ReadFile(settings.MirrorPath)
	if err != nil {
		t.Fatalf("read mirror: %v", err)
	}
	if !strings.Contains(string(data), "mirrored line") {
		t.Fatalf("expected mirrored line in %q", data)
	}
}

func TestMirrorWithoutPathExplains(t *testing.T) {
	c, screen := newConsole(t, testSettings())
	mustPress(t, c, "alt+m")
	testutil.AssertContains(t, screen.LastLines(), "No mirror path")
	mustPress(t, c, "esc")
	if c.ctx.Loop.Widget() != c.Widget() {
		t.Fatalf("expected the message to close on escape")
	}
}

func TestAboutShowsOverConsole(t *testing.T) {
	c, screen := newConsole(t, testSettings())
	mustPress(t, c, "alt+a")
	testutil.AssertContains(t, screen.LastLines(), "About")
	if _, ok := c.ctx.Loop.Widget().(*widget.Overlay); !ok {
		t.Fatalf("expected an overlay root, got %T", c.ctx.Loop.Widget())
	}
	mustPress(t, c, "enter")
	if c.ctx.Loop.Widget() != c.Widget() {
		t.Fatalf("expected the console root after closing")
	}
}

func TestHelpTextListsCommands(t *testing.T) {
	text := HelpText()
	for _, want := range []string{"alt+s", "Setup", "alt+q", "ctrl+c", "scroll the log"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected help to contain %q, got:\n%s", want, text)
		}
	}
}
