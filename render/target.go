// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// Target defines where a frame is rendered.
//
// A Target is an abstraction over rendering destinations:
//   - SurfaceTarget: the swapchain of a window surface
//   - TextureTarget: an offscreen texture for headless rendering
//
// Targets are not safe for concurrent use; the presentation session drives
// them from the event loop goroutine.
type Target interface {
	// Size returns the current target size in pixels.
	Size() (width, height uint32)

	// Format returns the color format of the acquired views.
	Format() gputypes.TextureFormat

	// Acquire returns the view to render the next frame into.
	Acquire() (*Frame, error)

	// Present shows the frame and releases its view.
	Present(f *Frame) error

	// Discard drops an acquired frame without presenting it.
	Discard(f *Frame)

	// Resize changes the target size. Existing content is discarded.
	Resize(width, height uint32) error

	// Release frees the target's GPU resources. Safe to call more than once.
	Release()
}

// Frame is one acquired render target view.
type Frame struct {
	// View is the texture view to render into.
	View *wgpu.TextureView

	// Suboptimal reports that the surface still works but no longer
	// matches the window exactly and should be reconfigured.
	Suboptimal bool

	surfaceTexture *wgpu.SurfaceTexture
	ownsView       bool
}

// release drops the frame's view if the frame owns it.
func (f *Frame) release() {
	if f == nil {
		return
	}
	if f.ownsView && f.View != nil {
		f.View.Release()
	}
	f.View = nil
	f.surfaceTexture = nil
}
