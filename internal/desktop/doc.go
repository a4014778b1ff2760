// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package desktop implements the host event loop and its window on gogpu.
//
// gogpu owns the native window, the device and the surface. The loop runs
// a gogpu app in continuous-render mode, so a frame is drawn on every
// iteration without waiting for input. Input callbacks are queued and
// handed to the host from the draw callback, where the frame's surface
// view is available to the session through [Window.SurfaceView].
//
// A gogpu app has exactly one window. Its attributes are fixed when the
// loop is created with [NewLoop].
package desktop

import "errors"

var (
	// ErrLoopRunning is returned by [Loop.Run] when the loop already runs.
	ErrLoopRunning = errors.New("desktop: loop already running")

	// ErrNotRunning is returned by [Loop.CreateWindow] outside Run.
	ErrNotRunning = errors.New("desktop: loop not running")

	// ErrWindowExists is returned by [Loop.CreateWindow] once the loop's
	// window was handed out.
	ErrWindowExists = errors.New("desktop: window already created")
)
