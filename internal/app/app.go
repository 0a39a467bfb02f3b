package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/rook-computer/clockface/internal/app/screens"
	"github.com/rook-computer/clockface/internal/face"
	"github.com/rook-computer/clockface/internal/render"
	"github.com/rook-computer/clockface/internal/state"
	"github.com/rook-computer/clockface/internal/system"
	"github.com/rook-computer/clockface/internal/web"
)

type App struct {
	Store  *state.Store
	Render render.Renderer
	Web    web.Server
	Logger Logger
	Style  face.StyleConfig
	Debug  bool

	// Console puts the VT into graphics mode for the run and makes F4 leave
	// the clock face. Only the framebuffer device wants it.
	Console bool

	// Clock and Location are handed to the clock screen.
	Clock    clockwork.Clock
	Location *time.Location

	mu     sync.Mutex
	runCtx context.Context
	screen *screens.ClockScreen

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server, style face.StyleConfig) *App {
	return &App{Store: store, Render: renderer, Web: webServer, Style: style, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running. The clock screen calls it when a
// frame cannot be presented.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs the clock face until ctx ends or Exit is called, then detaches
// the screen and stops the renderer.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	select {
	case <-app.exitCh:
	default:
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Store == nil {
		app.Store = state.NewStore()
	}
	app.Store.SetPhase(state.BOOTING)

	if app.Render == nil {
		app.Render = render.NewFBRenderer()
	}
	if fb := framebufferOf(app.Render); fb != nil {
		fb.Logger = app.Logger
		fb.Debug = app.Debug
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		app.Store.Fail(err)
		return err
	}
	defer app.Render.Stop()

	if app.Console {
		system.EnterGraphics(app.Logger)
		defer system.LeaveGraphics(app.Logger)
		system.StartExitOnF4(ctx, app.Logger, func() { app.Exit(nil) })
	}

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			// the face still runs without its preview
			app.Logger.Errorf("web", "server start error: %v", err)
		} else {
			defer app.Web.Stop()
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	app.mu.Lock()
	app.runCtx = runCtx
	app.mu.Unlock()
	defer func() {
		cancel()
		app.mu.Lock()
		app.runCtx = nil
		app.mu.Unlock()
	}()

	if err := app.attach(app.Style); err != nil {
		app.Store.Fail(err)
		return err
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	app.detach()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

func framebufferOf(r render.Renderer) *render.FBRenderer {
	switch v := r.(type) {
	case *render.FBRenderer:
		return v
	case *render.Recorder:
		return framebufferOf(v.Renderer)
	}
	return nil
}

// Restyle swaps the running face for one drawn with style. The old screen
// is detached, including a frame it is still presenting, before the new
// one attaches, so frames never interleave.
// Before Start it only records the style.
func (app *App) Restyle(style face.StyleConfig) error {
	app.mu.Lock()
	running := app.runCtx != nil
	if !running {
		app.Style = style
	}
	app.mu.Unlock()
	if !running {
		return nil
	}
	return app.attach(style)
}

// Screen returns the attached clock screen, or nil.
func (app *App) Screen() *screens.ClockScreen {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.screen
}

func (app *App) attach(style face.StyleConfig) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.runCtx == nil {
		return errors.New("app not running")
	}
	if app.screen != nil {
		_ = app.screen.Stop()
		app.screen = nil
	}

	screen := screens.NewClockScreen(app.Render, app.Store, style, app.Logger)
	screen.Exiter = app
	screen.Clock = app.Clock
	screen.Location = app.Location
	if err := screen.Start(app.runCtx); err != nil {
		app.Logger.Errorf("app", "attach failed: %v", err)
		return err
	}
	app.Style = screen.Style()
	app.screen = screen
	return nil
}

func (app *App) detach() {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.screen != nil {
		_ = app.screen.Stop()
		app.screen = nil
	}
}

// Stop detaches the screen without waiting for Start to return.
func (app *App) Stop() error {
	app.detach()
	app.Exit(nil)
	return nil
}
