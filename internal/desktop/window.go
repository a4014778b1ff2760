// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package desktop

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/voxcraft/host"
	"github.com/gogpu/voxcraft/session"
)

// Window is the window of a gogpu app. It implements host.Window and
// session.SharedWindow.
type Window struct {
	id       host.WindowID
	provider func() gpucontext.DeviceProvider

	width, height int
	scale         float64

	view          gpucontext.TextureView
	surfaceWidth  uint32
	surfaceHeight uint32

	redraw bool
	closed bool
}

func newWindow(id host.WindowID, provider func() gpucontext.DeviceProvider, attrs host.WindowAttributes) *Window {
	return &Window{id: id, provider: provider, width: attrs.Width, height: attrs.Height, scale: 1}
}

// begin records the frame being drawn.
func (w *Window) begin(f frameState) {
	w.view = f.view
	w.surfaceWidth, w.surfaceHeight = f.surfaceWidth, f.surfaceHeight
	switch {
	case f.surfaceWidth > 0 && f.surfaceHeight > 0:
		w.width, w.height = int(f.surfaceWidth), int(f.surfaceHeight)
		if f.width > 0 {
			w.scale = float64(f.surfaceWidth) / float64(f.width)
		}
	case f.width > 0 && f.height > 0:
		w.width, w.height = f.width, f.height
	}
}

// end drops the frame's view; gogpu presents it next.
func (w *Window) end() {
	w.view = gpucontext.TextureView{}
	w.surfaceWidth, w.surfaceHeight = 0, 0
}

func (w *Window) resized(width, height int) {
	w.width, w.height = width, height
}

// takeRedraw reports and clears a pending redraw request.
func (w *Window) takeRedraw() bool {
	r := w.redraw && !w.closed
	w.redraw = false
	return r
}

// ID returns the window's identifier.
func (w *Window) ID() host.WindowID { return w.id }

// Size returns the framebuffer size in physical pixels.
func (w *Window) Size() (width, height int) {
	if w.closed {
		return 0, 0
	}
	return w.width, w.height
}

// ScaleFactor returns the ratio of surface pixels to window units.
func (w *Window) ScaleFactor() float64 {
	if w.closed || w.scale <= 0 {
		return 1
	}
	return w.scale
}

// RequestRedraw asks for a RedrawRequested on the next frame. Repeated
// requests before then are coalesced.
func (w *Window) RequestRedraw() {
	w.redraw = true
}

// SurfaceView returns the view of the frame being drawn. It is nil outside
// the draw callback.
func (w *Window) SurfaceView() gpucontext.TextureView {
	if w.closed {
		return gpucontext.TextureView{}
	}
	return w.view
}

// SurfaceSize returns the size of the frame being drawn.
func (w *Window) SurfaceSize() (uint32, uint32) {
	if w.closed || w.view.IsNil() {
		return 0, 0
	}
	return w.surfaceWidth, w.surfaceHeight
}

// GPUContextProvider returns the app's device provider, nil before gogpu
// created its device.
func (w *Window) GPUContextProvider() gpucontext.DeviceProvider {
	if w.closed || w.provider == nil {
		return nil
	}
	return w.provider()
}

// Close detaches the window. The native window goes away with the app.
func (w *Window) Close() {
	w.closed = true
	w.redraw = false
	w.end()
}

var (
	_ host.Window          = (*Window)(nil)
	_ session.SharedWindow = (*Window)(nil)
)
