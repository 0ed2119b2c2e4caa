package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/cellkit/internal/backend"
	"github.com/atomicstack/cellkit/internal/config"
	"github.com/atomicstack/cellkit/internal/controls"
	"github.com/atomicstack/cellkit/internal/dialog"
	"github.com/atomicstack/cellkit/internal/format/table"
	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/logging"
	"github.com/atomicstack/cellkit/internal/logging/events"
	"github.com/atomicstack/cellkit/internal/logview"
	"github.com/atomicstack/cellkit/internal/loop"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/atomicstack/cellkit/internal/widget"
	"github.com/charmbracelet/bubbles/key"
)

// Command is a menu bar entry.
type Command int

const (
	CmdSetup Command = iota
	CmdMirror
	CmdErase
	CmdCopy
	CmdHelp
	CmdAbout
	CmdQuit
)

var commands = []Command{CmdSetup, CmdMirror, CmdErase, CmdCopy, CmdHelp, CmdAbout, CmdQuit}

var commandNames = map[Command]string{
	CmdSetup:  "Setup",
	CmdMirror: "Mirror",
	CmdErase:  "Erase",
	CmdCopy:   "Copy",
	CmdHelp:   "Help",
	CmdAbout:  "About",
	CmdQuit:   "Quit",
}

var commandHelp = map[Command]string{
	CmdSetup:  "edit the feed and mirror settings",
	CmdMirror: "start or stop mirroring the monitor",
	CmdErase:  "clear the current tab",
	CmdCopy:   "copy the focused line",
	CmdHelp:   "show this help",
	CmdAbout:  "about cellkit",
	CmdQuit:   "leave",
}

func commandName(c Command) string { return commandNames[c] }

const (
	tabMonitor = 1
	tabConsole = 2

	feedDrainInterval = 100 * time.Millisecond
	panelRow          = 2
	entryRow          = 4
)

var consoleKeys = struct {
	Quit   key.Binding
	Scroll key.Binding
	Tabs   key.Binding
}{
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+c", "quit")),
	Scroll: key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("up/down/pgup/pgdn", "scroll the log")),
	Tabs:   key.NewBinding(key.WithKeys("alt+1", "alt+2"), key.WithHelp("alt+1..9", "switch tab")),
}

// Console is the demo application screen.
type Console struct {
	ctx     *Context
	menu    *controls.MenuBar[Command]
	tabs    *controls.TabBar
	panels  []*logview.Panel
	entry   *widget.LineEntry
	body    *widget.Pile
	root    *consoleFrame
	feed    *backend.Follower
	timer   loop.Handle
	mirror  logview.Mirror
	current int

	quitting bool
}

func NewConsole(ctx *Context) *Console {
	c := &Console{ctx: ctx, current: tabMonitor}
	c.menu = controls.NewMenuBar(commands, commandName, "")
	c.tabs = controls.NewTabBar("monitor", "console")
	c.panels = []*logview.Panel{
		logview.NewPanel(ctx.Settings.LogCapacity),
		logview.NewPanel(ctx.Settings.LogCapacity),
	}
	c.entry = widget.NewLineEntry("> ")
	c.body = widget.NewPile(
		widget.Pack(c.menu),
		widget.Pack(c.tabs),
		widget.Weight(1, c.panels[0]),
		widget.Pack(widget.NewAttrMap(widget.NewDivider("─"), theme.EntryLine, theme.EntryLine)),
		widget.Pack(widget.NewAttrMap(c.entry, theme.EntryLine, theme.EditFocus)),
	)
	c.body.SetFocusPosition(entryRow)
	c.root = &consoleFrame{Widget: c.body, c: c}

	c.menu.Menu().OnSelect.Listen(c.run)
	c.tabs.OnSelect.Listen(func(ch controls.TabChange) { c.showTab(ch.New.Index) })
	c.entry.OnLine.Listen(c.submit)
	ctx.Unhandled.Connect(c.unhandled)
	ctx.Events.On(backend.KindLine, c.feedLine)
	ctx.Events.On(backend.KindStatus, c.feedStatus)

	c.Monitor().AddText(theme.MonitorText, "cellkit ready, press alt+h for help")
	c.startFeed()
	return c
}

// Widget returns the root widget of the console.
func (c *Console) Widget() widget.Widget { return c.root }

func (c *Console) Monitor() *logview.Panel { return c.panels[tabMonitor-1] }

func (c *Console) ConsoleLog() *logview.Panel { return c.panels[tabConsole-1] }

func (c *Console) MenuBar() *controls.MenuBar[Command] { return c.menu }

func (c *Console) Tabs() *controls.TabBar { return c.tabs }

func (c *Console) panel() *logview.Panel { return c.panels[c.current-1] }

func (c *Console) showTab(index int) {
	if index < 1 || index > len(c.panels) {
		return
	}
	c.current = index
	c.body.SetItem(panelRow, widget.Weight(1, c.panels[index-1]))
}

func (c *Console) setStatus(format string, args ...interface{}) {
	c.menu.SetStatus(fmt.Sprintf(format, args...))
}

func (c *Console) submit(line string) {
	if line == "" {
		return
	}
	c.ConsoleLog().AddText(theme.MonitorText, line)
	if c.current != tabConsole {
		c.tabs.SetSelected(tabConsole)
	}
}

func (c *Console) run(cmd Command) {
	switch cmd {
	case CmdSetup:
		c.setup()
	case CmdMirror:
		c.toggleMirror()
	case CmdErase:
		c.panel().Log().Clear()
		c.setStatus("cleared %s", c.tabs.TabName(c.current))
	case CmdCopy:
		c.copyFocused()
	case CmdHelp:
		c.help()
	case CmdAbout:
		c.about()
	case CmdQuit:
		c.confirmQuit()
	}
}

func (c *Console) unhandled(k input.Key) bool {
	if key.Matches(k.KeyMsg, consoleKeys.Quit) {
		c.confirmQuit()
		return true
	}
	return false
}

func (c *Console) copyFocused() {
	text, err := c.panel().CopyFocused()
	switch {
	case errors.Is(err, logview.ErrEmpty):
		c.setStatus("nothing to copy")
	case err != nil:
		logging.Error(err)
		c.setStatus("copy failed")
	default:
		c.setStatus("copied %d characters", len([]rune(text)))
	}
}

func (c *Console) newMessage(title, text string, buttons ...string) *dialog.Dialog {
	d := dialog.MessageBox(title, text, buttons...)
	d.SetWidth(c.ctx.Settings.DialogWidth)
	return d
}

func (c *Console) about() {
	c.newMessage("About", "cellkit\ncharacter-cell widgets in Go").Show(c.ctx.Loop)
}

// HelpText lists the menu commands and console keys.
func HelpText() string {
	rows := make([][]string, 0, len(commands)+3)
	for _, cmd := range commands {
		name := commandNames[cmd]
		rows = append(rows, []string{"alt+" + strings.ToLower(name[:1]), name, commandHelp[cmd]})
	}
	for _, b := range []key.Binding{consoleKeys.Tabs, consoleKeys.Scroll, consoleKeys.Quit} {
		h := b.Help()
		rows = append(rows, []string{h.Key, "", h.Desc})
	}
	return strings.Join(table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft}), "\n")
}

func (c *Console) help() {
	d := c.newMessage("Help", HelpText())
	d.SetWidth(0)
	if _, err := d.ShowModal(c.ctx.Ctx, c.ctx.Loop); err != nil {
		logging.Error(err)
	}
}

func (c *Console) confirmQuit() {
	if c.quitting {
		return
	}
	c.quitting = true
	defer func() { c.quitting = false }()
	res, err := c.newMessage("Quit", "Leave cellkit?", "Yes", "No").ShowModal(c.ctx.Ctx, c.ctx.Loop)
	if err != nil {
		return
	}
	if res.Button == 0 {
		c.ctx.Loop.Quit()
	}
}

func (c *Console) toggleMirror() {
	log := c.Monitor().Log()
	if log.Mirror() != nil {
		c.closeMirror()
		c.setStatus("mirror off")
		return
	}
	s := c.ctx.Settings
	if s.MirrorPath == "" {
		c.newMessage("Mirror", "No mirror path is set. Choose one in Setup.").Show(c.ctx.Loop)
		return
	}
	var m logview.Mirror
	switch s.MirrorKind {
	case config.MirrorSQLite:
		db, err := logview.OpenSQLiteMirror(s.MirrorPath)
		if err != nil {
			logging.Error(err)
			c.setStatus("mirror failed")
			return
		}
		m = db
	default:
		m = logview.NewFileMirror(s.MirrorPath)
	}
	c.mirror = m
	log.SetMirror(m)
	c.setStatus("mirror %s", m)
}

func (c *Console) closeMirror() {
	c.Monitor().Log().ClearMirror()
	if closer, ok := c.mirror.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logging.Error(err)
		}
	}
	c.mirror = nil
}

// startFeed follows the configured file, replacing any running feed.
func (c *Console) startFeed() {
	c.stopFeed()
	s := c.ctx.Settings
	if s.FeedPath == "" {
		c.setStatus("no feed")
		return
	}
	c.feed = backend.NewFollower(s.FeedPath, s.FeedInterval, c.ctx.Queue)
	c.timer = c.ctx.Loop.StartPeriodic(feedDrainInterval, c.drainFeed)
}

func (c *Console) stopFeed() {
	if c.feed == nil {
		return
	}
	c.ctx.Loop.StopPeriodic(c.timer)
	c.feed.Stop()
	c.feed.Wait()
	c.DrainFeed()
	c.feed = nil
}

// DrainFeed hands every queued feed event to the dispatcher.
func (c *Console) DrainFeed() int {
	n := c.ctx.Events.Drain(c.ctx.Queue)
	if n > 0 {
		events.Feed.Drained(n)
	}
	return n
}

func (c *Console) drainFeed() bool {
	c.DrainFeed()
	select {
	case <-c.feed.Done():
		return false
	default:
		return true
	}
}

func (c *Console) feedLine(evt backend.Event) {
	if line, ok := evt.Data.(string); ok {
		c.Monitor().AddText(theme.MonitorText, line)
	}
}

func (c *Console) feedStatus(evt backend.Event) {
	status, _ := evt.Data.(backend.Status)
	if evt.Err != nil {
		logging.Error(evt.Err)
		c.Monitor().AddText(theme.FieldError, evt.Err.Error())
	}
	c.setStatus("feed %s", status)
}

// Close stops the feed and detaches the mirror.
func (c *Console) Close() {
	c.stopFeed()
	if c.mirror != nil {
		c.closeMirror()
	}
}

// consoleFrame routes keys: menu and tab chords first, scrolling keys to the
// visible log, everything else to the entry line.
type consoleFrame struct {
	widget.Widget
	c *Console
}

func (f *consoleFrame) Inner() widget.Widget { return f.Widget }

func (f *consoleFrame) Keypress(size widget.Size, k input.Key) bool {
	c := f.c
	if c.menu.Keypress(widget.Size{Cols: size.Cols, Rows: 1}, k) || c.tabs.Keypress(widget.Size{Cols: size.Cols, Rows: 1}, k) {
		return true
	}
	if key.Matches(k.KeyMsg, consoleKeys.Scroll) {
		panel := c.panel()
		if ps, ok := panel.Size(); ok {
			return panel.Keypress(ps, k)
		}
		return false
	}
	return f.Widget.Keypress(size, k)
}

func (f *consoleFrame) Mouse(size widget.Size, ev input.Mouse, focus bool) bool {
	handled := f.Widget.Mouse(size, ev, focus)
	f.c.body.SetFocusPosition(entryRow)
	if ev.Double && ev.IsPress(1) && ev.Row >= panelRow && ev.Row < size.Rows-2 {
		f.c.copyFocused()
		return true
	}
	return handled
}
