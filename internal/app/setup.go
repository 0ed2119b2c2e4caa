package app

import (
	"fmt"
	"time"

	"github.com/atomicstack/cellkit/internal/config"
	"github.com/atomicstack/cellkit/internal/controls"
	"github.com/atomicstack/cellkit/internal/form"
	"github.com/atomicstack/cellkit/internal/logging"
)

const minFeedInterval = 20 * time.Millisecond

var mirrorKinds = []string{config.MirrorText, config.MirrorSQLite}

// setupForm edits the feed and mirror settings of a console.
type setupForm struct {
	c *Console
}

func (s setupForm) AddFields(f *form.Form) error {
	cfg := s.c.ctx.Settings
	if err := f.AddString("feed", "File", cfg.FeedPath, form.InGroup("Feed")); err != nil {
		return err
	}
	if err := f.AddInt("interval", "Poll ms", int(cfg.FeedInterval/time.Millisecond), form.InGroup("Feed")); err != nil {
		return err
	}
	if err := f.AddDropdown("mirror_kind", "Mirror", mirrorKinds, controls.ByName(cfg.MirrorKind), form.InGroup("Mirror")); err != nil {
		return err
	}
	return f.AddString("mirror", "Path", cfg.MirrorPath, form.InGroup("Mirror"))
}

func (s setupForm) Validate(f *form.Form) string {
	ms, err := f.Int("interval")
	if err != nil {
		return "poll interval is required"
	}
	if time.Duration(ms)*time.Millisecond < minFeedInterval {
		return fmt.Sprintf("poll interval must be at least %d ms", minFeedInterval/time.Millisecond)
	}
	return ""
}

func (s setupForm) Save(f *form.Form) {
	c := s.c
	feed, _ := f.String("feed")
	ms, _ := f.Int("interval")
	_, kind, _ := f.Dropdown("mirror_kind")
	mirror, _ := f.String("mirror")

	prev := c.ctx.Settings
	c.ctx.Settings.FeedPath = feed
	c.ctx.Settings.FeedInterval = time.Duration(ms) * time.Millisecond
	c.ctx.Settings.MirrorKind = kind
	c.ctx.Settings.MirrorPath = mirror

	if prev.FeedPath != feed || prev.FeedInterval != c.ctx.Settings.FeedInterval {
		c.startFeed()
	}
	if c.mirror != nil && (prev.MirrorKind != kind || prev.MirrorPath != mirror) {
		c.closeMirror()
		c.toggleMirror()
	}
}

func (c *Console) setup() {
	f := form.New("Setup", setupForm{c: c})
	if c.ctx.Settings.DialogWidth > 0 {
		f.Dialog().SetWidth(c.ctx.Settings.DialogWidth)
	}
	res, err := f.ShowModal(c.ctx.Ctx, c.ctx.Loop)
	if err != nil {
		logging.Error(err)
		return
	}
	if res.Button == form.ButtonOkay {
		c.setStatus("settings saved")
	}
}
