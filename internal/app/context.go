package app

import (
	"context"

	"github.com/atomicstack/cellkit/internal/backend"
	"github.com/atomicstack/cellkit/internal/config"
	"github.com/atomicstack/cellkit/internal/data/dispatcher"
	"github.com/atomicstack/cellkit/internal/gesture"
	"github.com/atomicstack/cellkit/internal/input"
	"github.com/atomicstack/cellkit/internal/loop"
	"github.com/atomicstack/cellkit/internal/signal"
	"github.com/atomicstack/cellkit/internal/theme"
)

// Context carries the objects shared by every screen of one running
// application. It is built once at startup and passed down explicitly.
type Context struct {
	Ctx      context.Context
	Settings config.App
	Palette  *theme.Palette
	Loop     *loop.Loop
	Queue    *backend.Queue[backend.Event]
	Events   *dispatcher.Dispatcher

	// Unhandled is emitted for keys no widget consumed.
	Unhandled signal.Signal[input.Key]
}

// NewContext builds the loop on screen with the double click filter
// installed, and makes palette the current one.
func NewContext(ctx context.Context, settings config.App, palette *theme.Palette, screen loop.Screen) *Context {
	if palette == nil {
		palette = theme.Default()
	}
	theme.Use(palette)
	c := &Context{
		Ctx:      ctx,
		Settings: settings,
		Palette:  palette,
		Queue:    backend.NewQueue[backend.Event](),
		Events:   dispatcher.New(),
	}
	filter := gesture.NewFilter(settings.DoubleClick, nil)
	c.Loop = loop.New(screen,
		loop.WithFilter(filter.Apply),
		loop.WithUnhandled(func(k input.Key) bool { return c.Unhandled.Emit(k) }),
	)
	return c
}
