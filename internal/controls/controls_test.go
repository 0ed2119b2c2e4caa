package controls

import (
	"fmt"
	"testing"
	"time"

	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/widget"
)

type command int

const (
	cmdConnect command = iota
	cmdDisconnect
	cmdQuit
)

var commandNames = map[command]string{
	cmdConnect:    "Connect",
	cmdDisconnect: "Disconnect",
	cmdQuit:       "Quit",
}

func commandName(c command) string { return commandNames[c] }

func key(chord string) input.Key { return input.ParseKey(chord) }

var one = widget.Size{Cols: 40, Rows: 1}

func newMenu() (*Menu[command], *[]command) {
	m := NewMenu([]command{cmdConnect, cmdDisconnect, cmdQuit}, commandName)
	var got []command
	m.OnSelect.Listen(func(c command) { got = append(got, c) })
	return m, &got
}

func TestMenuItemsKeysAndSpans(t *testing.T) {
	m, _ := newMenu()
	items := m.Items()
	want := []struct {
		key         string
		first, last int
	}{{"alt+c", 0, 6}, {"alt+d", 10, 19}, {"alt+q", 23, 26}}
	for i, w := range want {
		if items[i].Key != w.key || items[i].First != w.first || items[i].Last != w.last {
			t.Fatalf("expected item %d %+v, got %+v", i, w, items[i])
		}
	}
	line := m.Render(widget.Size{Cols: 30, Rows: 1}, false).Plain()[0]
	if line != "Connect   Disconnect   Quit   " {
		t.Fatalf("unexpected menu text %q", line)
	}
}

func TestMenuSelectByKeyAndMouse(t *testing.T) {
	m, got := newMenu()
	if !m.Keypress(one, key("alt+d")) {
		t.Fatalf("expected alt+d to be consumed")
	}
	if !m.Mouse(one, input.Press(1, 24, 0), true) {
		t.Fatalf("expected click on Quit to be consumed")
	}
	if m.Mouse(one, input.Press(1, 8, 0), true) {
		t.Fatalf("expected click between items to be ignored")
	}
	if m.Keypress(one, key("alt+x")) {
		t.Fatalf("expected unknown mnemonic to pass through")
	}
	if len(*got) != 2 || (*got)[0] != cmdDisconnect || (*got)[1] != cmdQuit {
		t.Fatalf("expected [disconnect quit], got %v", *got)
	}
}

func TestMenuDisabledItemsNeverSelect(t *testing.T) {
	m, got := newMenu()
	m.Enable(cmdDisconnect, false)
	m.Enable(cmdDisconnect, false)
	if m.Enabled(cmdDisconnect) {
		t.Fatalf("expected disconnect disabled")
	}
	if m.Keypress(one, key("alt+d")) {
		t.Fatalf("expected disabled mnemonic to pass through")
	}
	if m.Mouse(one, input.Press(1, 12, 0), true) {
		t.Fatalf("expected click on disabled item to be ignored")
	}
	if len(*got) != 0 {
		t.Fatalf("expected no selections, got %v", *got)
	}
	m.Enable(cmdDisconnect, true)
	if !m.Keypress(one, key("alt+d")) || len(*got) != 1 {
		t.Fatalf("expected re-enabled item to select")
	}
}

func TestMenuBarForwardsToMenu(t *testing.T) {
	bar := NewMenuBar([]command{cmdConnect, cmdQuit}, commandName, "idle")
	var got []command
	bar.Menu().OnSelect.Listen(func(c command) { got = append(got, c) })
	bar.SetStatus("connected")
	if bar.Status() != "connected" {
		t.Fatalf("expected status connected, got %q", bar.Status())
	}
	line := bar.Render(one, false).Plain()[0]
	if line[:8] != " Connect" || line[len(line)-10:] != "connected " {
		t.Fatalf("unexpected menu bar %q", line)
	}
	bar.Keypress(one, key("alt+q"))
	bar.Mouse(one, input.Press(1, 1, 0), false)
	if len(got) != 2 || got[0] != cmdQuit || got[1] != cmdConnect {
		t.Fatalf("expected [quit connect], got %v", got)
	}
}

func TestTabBarSelectAddRemove(t *testing.T) {
	bar := NewTabBar("disc")
	var changes []TabChange
	bar.OnSelect.Listen(func(c TabChange) { changes = append(changes, c) })

	if pos := bar.AddTab("x"); pos != 2 {
		t.Fatalf("expected new tab at 2, got %d", pos)
	}
	if sel, _ := bar.Selected(); sel != 1 || bar.Len() != 2 {
		t.Fatalf("expected selection 1 of 2, got %d of %d", sel, bar.Len())
	}

	if !bar.Keypress(one, key("alt+2")) {
		t.Fatalf("expected alt+2 to be consumed")
	}
	if len(changes) != 1 {
		t.Fatalf("expected one change, got %d", len(changes))
	}
	want := TabChange{Old: Tab{Index: 1, Name: "disc"}, New: Tab{Index: 2, Name: "x"}}
	if changes[0] != want {
		t.Fatalf("expected %+v, got %+v", want, changes[0])
	}

	if !bar.Keypress(one, key("alt+2")) || len(changes) != 1 {
		t.Fatalf("expected reselecting to be consumed without a signal")
	}

	bar.SetSelected(1)
	if !bar.RemoveTab(1) {
		t.Fatalf("expected removal")
	}
	sel, name := bar.Selected()
	if bar.Len() != 1 || sel != 1 || name != "x" {
		t.Fatalf("expected single tab x selected, got %d %q of %d", sel, name, bar.Len())
	}
	last := changes[len(changes)-1]
	if !last.Old.Removed || last.Old.Name != "disc" || last.New.Name != "x" {
		t.Fatalf("expected removal change from disc to x, got %+v", last)
	}
	if bar.RemoveTab(1) {
		t.Fatalf("expected the last tab to stay")
	}
}

func TestTabBarRemoveBeforeSelectionKeepsTab(t *testing.T) {
	bar := NewTabBar("a", "b", "c")
	bar.SetSelected(3)
	signals := 0
	bar.OnSelect.Listen(func(TabChange) { signals++ })
	bar.RemoveTab(1)
	if sel, name := bar.Selected(); sel != 2 || name != "c" {
		t.Fatalf("expected c at 2, got %q at %d", name, sel)
	}
	if signals != 0 {
		t.Fatalf("expected no signal when the selected tab survives, got %d", signals)
	}
}

func TestTabBarCapacity(t *testing.T) {
	bar := NewTabBar("1")
	for i := 2; i <= MaxTabs; i++ {
		if pos := bar.AddTab("t"); pos != i {
			t.Fatalf("expected tab %d, got %d", i, pos)
		}
	}
	if pos := bar.AddTab("overflow"); pos != 0 {
		t.Fatalf("expected 0 when full, got %d", pos)
	}
}

func TestTabBarMarkupAndMouse(t *testing.T) {
	bar := NewTabBar("a", "b", "c")
	line := bar.Render(widget.Size{Cols: 22, Rows: 1}, false).Plain()[0]
	if line != "  1:a    2:b  │  3:c  " {
		t.Fatalf("unexpected tab markup %q", line)
	}
	if bar.Mouse(one, input.Press(1, 14, 0), false) {
		t.Fatalf("expected click on separator to be ignored")
	}
	if !bar.Mouse(one, input.Press(1, 16, 0), false) {
		t.Fatalf("expected click on tab 3")
	}
	if sel, _ := bar.Selected(); sel != 3 {
		t.Fatalf("expected tab 3 selected, got %d", sel)
	}
	bar.SetTabName(3, "cc")
	if bar.TabName(3) != "cc" || bar.TabName(4) != "" {
		t.Fatalf("unexpected tab names %v", bar.Names())
	}
}

func TestDropdownDefaults(t *testing.T) {
	items := []string{"AX.25", "NET/ROM", "TCP"}
	if i, _ := NewDropdown(items, ByName("TCP")).Selection(); i != 2 {
		t.Fatalf("expected TCP default at 2, got %d", i)
	}
	if i, _ := NewDropdown(items, ByName("nope")).Selection(); i != 0 {
		t.Fatalf("expected unknown name to fall back to 0, got %d", i)
	}
	if i, _ := NewDropdown(items, ByIndex(7)).Selection(); i != 0 {
		t.Fatalf("expected bad index to fall back to 0, got %d", i)
	}
}

func newDropdownRoot() (*Dropdown, *widget.PopUpTarget, *[]int) {
	d := NewDropdown([]string{"AX.25", "NET/ROM", "TCP"}, ByName("TCP"))
	d.SetCaption("Mode: ")
	var got []int
	d.OnSelect.Listen(func(i int) { got = append(got, i) })
	return d, widget.NewPopUpTarget(d), &got
}

var screen = widget.Size{Cols: 20, Rows: 6}

func pad(s string) string { return fmt.Sprintf("%-20s", s) }

func TestDropdownOpenSelectWithKeys(t *testing.T) {
	d, root, got := newDropdownRoot()
	lines := root.Render(screen, true).Plain()
	if lines[0] != pad("Mode: ↓ TCP") {
		t.Fatalf("unexpected trigger %q", lines[0])
	}
	root.Keypress(screen, key("enter"))
	if !d.PopUpOpen() {
		t.Fatalf("expected pop-up open")
	}
	if size := d.PopUpSize(); size.Cols != 11 || size.Rows != 5 {
		t.Fatalf("expected 11x5 pop-up, got %+v", size)
	}
	lines = root.Render(screen, true).Plain()
	if lines[0] != pad("Mode: ┌─────────┐") || lines[3] != pad("      │ TCP     │") {
		t.Fatalf("unexpected pop-up %q", lines)
	}
	root.Keypress(screen, key("up"))
	root.Keypress(screen, key("enter"))
	if d.PopUpOpen() {
		t.Fatalf("expected pop-up closed")
	}
	if i, item := d.Selection(); i != 1 || item != "NET/ROM" {
		t.Fatalf("expected NET/ROM selected, got %d %q", i, item)
	}
	if len(*got) != 1 || (*got)[0] != 1 {
		t.Fatalf("expected one select of 1, got %v", *got)
	}
	if line := root.Render(screen, true).Plain()[0]; line != pad("Mode: ↓ NET/ROM") {
		t.Fatalf("unexpected trigger %q", line)
	}
}

func TestDropdownEscapeKeepsSelection(t *testing.T) {
	d, root, got := newDropdownRoot()
	root.Render(screen, true)
	root.Keypress(screen, key("space"))
	root.Render(screen, true)
	root.Keypress(screen, key("home"))
	root.Keypress(screen, key("esc"))
	if d.PopUpOpen() {
		t.Fatalf("expected pop-up closed")
	}
	if i, _ := d.Selection(); i != 2 || len(*got) != 0 {
		t.Fatalf("expected selection unchanged without signal, got %d %v", i, *got)
	}
}

func TestDropdownMouseOpenAndPick(t *testing.T) {
	d, root, got := newDropdownRoot()
	root.Render(screen, true)
	if root.Mouse(screen, input.Press(1, 2, 0), true) {
		t.Fatalf("expected click on caption to be ignored")
	}
	root.Mouse(screen, input.Press(1, 8, 0), true)
	if !d.PopUpOpen() {
		t.Fatalf("expected click on trigger to open")
	}
	root.Render(screen, true)
	root.Mouse(screen, input.Press(1, 8, 1), true)
	if i, _ := d.Selection(); i != 0 || len(*got) != 1 {
		t.Fatalf("expected first item picked, got %d %v", i, *got)
	}
}

func TestDropdownTypeAhead(t *testing.T) {
	d, root, _ := newDropdownRoot()
	now := time.Unix(0, 0)
	d.now = func() time.Time { return now }
	root.Render(screen, true)
	root.Keypress(screen, key("enter"))
	root.Render(screen, true)

	root.Keypress(screen, key("n"))
	if d.list.Walker().Focus() != 1 {
		t.Fatalf("expected n to focus NET/ROM, got %d", d.list.Walker().Focus())
	}
	now = now.Add(2 * time.Second)
	root.Keypress(screen, key("a"))
	if d.list.Walker().Focus() != 0 {
		t.Fatalf("expected a to focus AX.25, got %d", d.list.Walker().Focus())
	}
	root.Keypress(screen, key("enter"))
	if i, _ := d.Selection(); i != 0 {
		t.Fatalf("expected AX.25 selected, got %d", i)
	}
}

func TestButtonSetLayoutAndClicks(t *testing.T) {
	s := NewButtonSet("Okay", "Cancel")
	if s.Width() != 22 {
		t.Fatalf("expected width 22, got %d", s.Width())
	}
	size := widget.Size{Cols: 22, Rows: 1}
	if line := s.Render(size, true).Plain()[0]; line != "<  Okay  >  < Cancel >" {
		t.Fatalf("unexpected buttons %q", line)
	}
	var clicks []int
	s.OnClick.Listen(func(i int) { clicks = append(clicks, i) })
	s.Keypress(size, key("enter"))
	s.Keypress(size, key("right"))
	if s.FocusPosition() != 1 {
		t.Fatalf("expected focus on 1, got %d", s.FocusPosition())
	}
	s.Keypress(size, key("enter"))
	s.Mouse(size, input.Press(1, 3, 0), true)
	if len(clicks) != 3 || clicks[0] != 0 || clicks[1] != 1 || clicks[2] != 0 {
		t.Fatalf("expected clicks [0 1 0], got %v", clicks)
	}
	paths := widget.FocusPaths(s)
	if len(paths) != 2 || paths[1][0] != 1 {
		t.Fatalf("expected two focus paths, got %v", paths)
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []string{"First", "Second", "Third"}
	if idx := BestMatchIndex(items, "second"); idx != 1 {
		t.Fatalf("expected exact match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "th"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "cnd"); idx != 1 {
		t.Fatalf("expected fuzzy match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "zzz"); idx != -1 {
		t.Fatalf("expected -1 for no match, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}
