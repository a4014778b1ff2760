// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package session

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/voxcraft/render"
)

// Window is what a Session needs from the platform window.
//
// Size must report the framebuffer size in physical pixels.
type Window interface {
	gpucontext.WindowProvider
}

// NativeWindow is a window whose surface the session creates itself.
type NativeWindow interface {
	Window

	// SurfaceHandles returns the native handles wgpu needs to create a
	// surface: X11 Display* and Window, Wayland wl_display* and wl_surface*,
	// or 0 and an HWND on Windows.
	SurfaceHandles() (display, window uintptr, err error)
}

// SharedWindow is a window whose windowing library owns the device and
// the surface. The session borrows the device and renders into the view
// of the frame being drawn.
type SharedWindow interface {
	Window
	render.ViewSource

	// GPUContextProvider returns the library's device, or nil before the
	// device exists.
	GPUContextProvider() gpucontext.DeviceProvider
}

// offscreenWindow stands in for a window in headless sessions.
type offscreenWindow struct {
	gpucontext.NullWindowProvider
}

// surfaceTarget is a render target backed by a presentable surface that
// can be reconfigured after it was lost or outdated.
type surfaceTarget interface {
	render.Target

	// Reconfigure applies the current configuration again.
	Reconfigure() error

	// Config returns the current configuration.
	Config() render.SurfaceConfig
}

var _ surfaceTarget = (*render.SurfaceTarget)(nil)
