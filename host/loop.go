// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/voxcraft/input"
	"github.com/gogpu/voxcraft/session"
)

// ErrUnsupportedWindow is returned by the default session factory for a
// window that neither shares its library's device nor exposes native
// surface handles.
var ErrUnsupportedWindow = errors.New("host: window cannot host a session")

// WindowAttributes describes a window to create.
type WindowAttributes struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// Window is a platform window that a session can render into.
type Window interface {
	session.Window

	// ID returns the identifier events for this window carry.
	ID() WindowID

	// Close destroys the native window. It is safe to call more than once.
	Close()
}

// ActiveLoop is the view of a running event loop given to a [Handler].
type ActiveLoop interface {
	// CreateWindow creates and shows a window.
	CreateWindow(attrs WindowAttributes) (Window, error)

	// Exit asks the loop to stop after the current iteration.
	Exit()
}

// Handler receives the callbacks of an [EventLoop].
type Handler interface {
	// Activated is called once the platform can create windows. Platforms
	// that suspend and resume may call it again.
	Activated(loop ActiveLoop)

	// WindowEvent is called for every event of every window.
	WindowEvent(loop ActiveLoop, id WindowID, ev Event)

	// Exiting is called once, after the loop stopped dispatching events.
	Exiting(loop ActiveLoop)
}

// EventLoop runs a platform event loop in poll mode: it never blocks
// waiting for input and returns when a handler calls [ActiveLoop.Exit].
type EventLoop interface {
	Run(h Handler) error
}

// Session is the part of a presentation session the host drives.
// *session.Session implements it.
type Session interface {
	HandleKey(key gpucontext.Key, pressed bool) input.Signal
	RenderFrame() error
	Resize(width, height int) error
	Close()
}

// SessionFactory initializes a session for a freshly created window. The
// host blocks on it.
type SessionFactory func(ctx context.Context, w Window) (Session, error)

// NewSessionFactory returns a factory that opens a session with opts:
// session.NewShared when the window's library owns the device and
// surface, session.New when the window exposes native handles.
func NewSessionFactory(opts ...session.Option) SessionFactory {
	return func(ctx context.Context, w Window) (Session, error) {
		var (
			s   *session.Session
			err error
		)
		switch win := w.(type) {
		case session.SharedWindow:
			s, err = session.NewShared(ctx, win, opts...)
		case session.NativeWindow:
			s, err = session.New(ctx, win, opts...)
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnsupportedWindow, w)
		}
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

var _ Session = (*session.Session)(nil)
