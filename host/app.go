// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/voxcraft"
	"github.com/gogpu/voxcraft/input"
	"github.com/gogpu/voxcraft/session"
)

// State is the lifecycle state of an [App].
type State uint8

const (
	// StateEmpty means no window exists yet.
	StateEmpty State = iota
	// StateActive means the window and its session are running.
	StateActive
	// StateFailed means startup failed; see [App.Err].
	StateFailed
	// StateExited means the loop has shut down.
	StateExited
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateActive:
		return "Active"
	case StateFailed:
		return "Failed"
	case StateExited:
		return "Exited"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Default window size in logical pixels.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// ErrNoFactory is returned by [App.Err] when the app was built without a
// session factory.
var ErrNoFactory = errors.New("host: no session factory")

// App is the application host. It implements [Handler].
//
// App is not safe for concurrent use; the event loop calls it from one
// goroutine.
type App struct {
	factory SessionFactory
	ctx     context.Context
	attrs   WindowAttributes

	state   State
	window  Window
	session Session
	frames  uint64
	err     error
}

// AppOption configures an [App].
type AppOption func(*App)

// WithWindowSize sets the size of the window the app creates.
func WithWindowSize(width, height int) AppOption {
	return func(a *App) {
		if width > 0 && height > 0 {
			a.attrs.Width, a.attrs.Height = width, height
		}
	}
}

// WithContext sets the context passed to the session factory.
func WithContext(ctx context.Context) AppOption {
	return func(a *App) {
		if ctx != nil {
			a.ctx = ctx
		}
	}
}

// NewApp returns an Empty app that builds its session with factory.
func NewApp(factory SessionFactory, opts ...AppOption) *App {
	a := &App{
		factory: factory,
		ctx:     context.Background(),
		attrs: WindowAttributes{
			Title:     voxcraft.Title(),
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			Resizable: false,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the current lifecycle state.
func (a *App) State() State { return a.state }

// Err returns the error that stopped the app, or nil.
func (a *App) Err() error { return a.err }

// Frames returns the number of frames rendered successfully.
func (a *App) Frames() uint64 { return a.frames }

// WindowAttributes returns the attributes of the window the app creates.
func (a *App) WindowAttributes() WindowAttributes { return a.attrs }

// Activated creates the window and its session. It does nothing unless the
// app is Empty, so repeated activation never creates a second window.
func (a *App) Activated(loop ActiveLoop) {
	if a.state != StateEmpty {
		return
	}
	if a.factory == nil {
		a.fail(loop, ErrNoFactory)
		return
	}

	window, err := loop.CreateWindow(a.attrs)
	if err != nil {
		a.fail(loop, fmt.Errorf("host: create window: %w", err))
		return
	}
	voxcraft.Logger().Info("host: window created",
		"title", a.attrs.Title, "width", a.attrs.Width, "height", a.attrs.Height)

	sess, err := a.factory(a.ctx, window)
	if err != nil {
		window.Close()
		a.fail(loop, fmt.Errorf("host: initialize session: %w", err))
		return
	}

	a.window, a.session = window, sess
	a.state = StateActive
	window.RequestRedraw()
}

func (a *App) fail(loop ActiveLoop, err error) {
	voxcraft.Logger().Error("host: startup failed", "err", err)
	a.err = err
	a.state = StateFailed
	loop.Exit()
}

// WindowEvent routes an event to the session. Events before activation or
// for a window the app does not own are ignored.
func (a *App) WindowEvent(loop ActiveLoop, id WindowID, ev Event) {
	if a.state != StateActive || id != a.window.ID() {
		return
	}

	switch e := ev.(type) {
	case CloseRequested:
		voxcraft.Logger().Info("host: close requested")
		loop.Exit()

	case KeyboardInput:
		if e.Synthetic || e.Key == gpucontext.KeyUnknown {
			return
		}
		if a.session.HandleKey(e.Key, e.Pressed) == input.Stop {
			loop.Exit()
		}

	case RedrawRequested:
		a.redraw(loop)

	case Resized:
		if err := a.session.Resize(e.Width, e.Height); err != nil {
			voxcraft.Logger().Warn("host: resize failed", "width", e.Width, "height", e.Height, "err", err)
		}

	case Focused:
		voxcraft.Logger().Debug("host: focus changed", "focused", e.Focused)
	}
}

// redraw renders one frame. Skipped frames are not counted, surface errors
// are logged and rendering goes on; any other error stops the loop. The
// next redraw is requested either way.
func (a *App) redraw(loop ActiveLoop) {
	defer a.window.RequestRedraw()

	err := a.session.RenderFrame()
	switch {
	case err == nil:
		a.frames++
	case errors.Is(err, session.ErrFrameSkipped):
		// nothing was drawn
	case session.IsSurfaceError(err):
		voxcraft.Logger().Warn("host: frame dropped", "err", err)
	default:
		voxcraft.Logger().Error("host: render failed", "err", err)
		if a.err == nil {
			a.err = err
		}
		loop.Exit()
	}
}

// Exiting releases the session and the window.
func (a *App) Exiting(ActiveLoop) {
	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
	if a.state != StateFailed {
		a.state = StateExited
	}
	voxcraft.Logger().Debug("host: exiting", "frames", a.frames)
}

var _ Handler = (*App)(nil)
