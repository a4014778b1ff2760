// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package desktop

import (
	"fmt"
	"sync"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/voxcraft"
	"github.com/gogpu/voxcraft/host"
)

// windowID identifies the app's only window.
const windowID host.WindowID = 1

type queuedEvent struct {
	id host.WindowID
	ev host.Event
}

// frameState is what the loop reads from a gogpu draw context.
type frameState struct {
	view          gpucontext.TextureView
	surfaceWidth  uint32
	surfaceHeight uint32
	width         int
	height        int
}

// Loop is a poll-mode event loop on a gogpu app. It implements
// host.EventLoop and is the host.ActiveLoop handed to the handler.
type Loop struct {
	attrs host.WindowAttributes

	mu    sync.Mutex
	queue []queuedEvent

	window *Window
	handed bool
	quit   func()

	running   bool
	activated bool
	exit      bool
	closing   bool
	finished  bool
}

// NewLoop returns a loop whose window is created with attrs.
func NewLoop(attrs host.WindowAttributes) *Loop {
	return &Loop{attrs: attrs}
}

// Run starts the gogpu app, activates h on the first frame and dispatches
// events until h calls Exit or the window is closed. Run must be called
// from the main goroutine.
func (l *Loop) Run(h host.Handler) error {
	if l.running {
		return ErrLoopRunning
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(l.attrs.Title).
		WithSize(l.attrs.Width, l.attrs.Height).
		WithContinuousRender(true))
	l.prepare(func() gpucontext.DeviceProvider { return app.GPUContextProvider() }, func() { app.Quit() })
	defer func() { l.running = false }()

	events := app.EventSource()
	events.OnKeyPress(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		l.push(keyboardInput(key, mods, true))
	})
	events.OnKeyRelease(func(key gpucontext.Key, mods gpucontext.Modifiers) {
		l.push(keyboardInput(key, mods, false))
	})
	events.OnResize(func(width, height int) {
		l.push(host.Resized{Width: width, Height: height})
	})
	events.OnFocus(func(focused bool) {
		l.push(host.Focused{Focused: focused})
	})

	app.OnDraw(func(dc *gogpu.Context) {
		sw, sh := dc.SurfaceSize()
		l.frame(h, frameState{
			view:          dc.SurfaceView(),
			surfaceWidth:  sw,
			surfaceHeight: sh,
			width:         dc.Width(),
			height:        dc.Height(),
		})
	})
	app.OnClose(func() { l.shutdown(h) })

	err := app.Run()
	l.finish(h)
	if err != nil {
		return fmt.Errorf("desktop: run: %w", err)
	}
	return nil
}

// prepare resets the loop for a run. provider returns the app's device
// provider; quit stops the app.
func (l *Loop) prepare(provider func() gpucontext.DeviceProvider, quit func()) {
	l.running = true
	l.activated, l.exit, l.closing, l.finished, l.handed = false, false, false, false, false
	l.quit = quit
	l.window = newWindow(windowID, provider, l.attrs)
}

// frame runs one loop iteration inside the draw callback: activation on
// the first frame, then queued events, then one RedrawRequested if the
// window asked for it. The surface view is only handed out meanwhile.
func (l *Loop) frame(h host.Handler, f frameState) {
	if l.exit || l.finished {
		return
	}
	l.window.begin(f)
	defer l.window.end()

	if !l.activated {
		l.activated = true
		h.Activated(l)
	}
	l.dispatch(h)
}

// dispatch delivers the queued events, then a RedrawRequested when one is
// pending.
func (l *Loop) dispatch(h host.Handler) {
	l.mu.Lock()
	events := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, qe := range events {
		if l.exit {
			return
		}
		h.WindowEvent(l, qe.id, qe.ev)
	}

	w := l.window
	if l.exit || !l.handed || !w.takeRedraw() {
		return
	}
	h.WindowEvent(l, w.id, host.RedrawRequested{})
}

// push queues an event for the loop's window. Input callbacks may run
// outside the draw callback.
func (l *Loop) push(ev host.Event) {
	if r, ok := ev.(host.Resized); ok && l.window != nil {
		l.window.resized(r.Width, r.Height)
	}
	l.mu.Lock()
	l.queue = append(l.queue, queuedEvent{id: windowID, ev: ev})
	l.mu.Unlock()
}

// shutdown runs when gogpu closes the window, while the device is still
// alive. A close the handler did not ask for is reported first.
func (l *Loop) shutdown(h host.Handler) {
	l.closing = true
	if l.handed && !l.exit {
		h.WindowEvent(l, l.window.id, host.CloseRequested{})
	}
	l.finish(h)
}

// finish calls Exiting once.
func (l *Loop) finish(h host.Handler) {
	if l.finished {
		return
	}
	l.finished = true
	h.Exiting(l)
	if l.window != nil {
		l.window.Close()
	}
}

// CreateWindow hands out the loop's window. attrs must match the ones the
// loop was created with; differences are logged and ignored.
func (l *Loop) CreateWindow(attrs host.WindowAttributes) (host.Window, error) {
	if !l.running {
		return nil, ErrNotRunning
	}
	if l.handed {
		return nil, ErrWindowExists
	}
	if attrs != l.attrs {
		voxcraft.Logger().Warn("desktop: window attributes are fixed by the loop",
			"requested", fmt.Sprintf("%+v", attrs), "used", fmt.Sprintf("%+v", l.attrs))
	}
	l.handed = true
	w, h := l.window.Size()
	voxcraft.Logger().Debug("desktop: window created", "id", l.window.id, "framebuffer", fmt.Sprintf("%dx%d", w, h))
	return l.window, nil
}

// Exit stops the app. The window closes after the current frame.
func (l *Loop) Exit() {
	if l.exit {
		return
	}
	l.exit = true
	if !l.closing && l.quit != nil {
		l.quit()
	}
}

// keyboardInput converts a gogpu key callback into a host event.
func keyboardInput(key gpucontext.Key, mods gpucontext.Modifiers, pressed bool) host.KeyboardInput {
	return host.KeyboardInput{Key: key, Mods: mods, Pressed: pressed}
}

var (
	_ host.EventLoop  = (*Loop)(nil)
	_ host.ActiveLoop = (*Loop)(nil)
)
