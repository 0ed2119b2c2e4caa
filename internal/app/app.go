// Package app is the demo console built on the widget framework: a menu bar,
// a tab bar over two log panels, a line entry and a handful of dialogs. The
// monitor tab follows a file through the backend feed.
package app

import (
	"context"
	"errors"

	"github.com/atomicstack/cellkit/internal/config"
	"github.com/atomicstack/cellkit/internal/logging/events"
	"github.com/atomicstack/cellkit/internal/loop"
	"github.com/atomicstack/cellkit/internal/theme"
	"github.com/atomicstack/cellkit/internal/ui"
)

// Run opens the terminal and runs the console until the user quits or ctx
// ends.
func Run(ctx context.Context, cfg config.Config) error {
	palette := theme.Default().Clone()
	if err := palette.Apply(cfg.Palette); err != nil {
		return err
	}
	actx := NewContext(ctx, cfg.App, palette, ui.NewScreen())
	console := NewConsole(actx)
	defer console.Close()
	actx.Loop.SetWidget(console.Widget())

	err := actx.Loop.Run(ctx)
	switch {
	case err == nil, errors.Is(err, loop.ErrQuit):
		events.App.Stop("quit")
		return nil
	case errors.Is(err, context.Canceled):
		events.App.Stop("cancelled")
		return nil
	}
	events.App.Stop(err.Error())
	return err
}
