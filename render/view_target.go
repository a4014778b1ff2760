// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// ViewSource hands out the surface view of the frame being drawn. A
// windowing library that owns the surface implements it; the view is only
// valid until the library presents.
type ViewSource interface {
	SurfaceView() gpucontext.TextureView
	SurfaceSize() (width, height uint32)
}

// ViewTarget renders into a surface owned by someone else. Acquire returns
// the source's current view and Present leaves presentation to the owner.
type ViewTarget struct {
	source ViewSource
	format gputypes.TextureFormat
	width  uint32
	height uint32
}

// NewViewTarget returns a target drawing into the views of source.
func NewViewTarget(source ViewSource, format gputypes.TextureFormat, width, height uint32) *ViewTarget {
	return &ViewTarget{source: source, format: format, width: width, height: height}
}

// Size returns the last size set with Resize.
func (t *ViewTarget) Size() (uint32, uint32) { return t.width, t.height }

// Format returns the surface format reported by the owner.
func (t *ViewTarget) Format() gputypes.TextureFormat { return t.format }

// Acquire wraps the source's current view. It returns ErrNoView when no
// frame is being drawn. The owner's surface size wins over the stored one.
func (t *ViewTarget) Acquire() (*Frame, error) {
	if t.source == nil {
		return nil, ErrNoView
	}
	view := viewPointer(t.source.SurfaceView())
	if view == nil {
		return nil, ErrNoView
	}
	if w, h := t.source.SurfaceSize(); w != 0 && h != 0 {
		t.width, t.height = w, h
	}
	return &Frame{View: view}, nil
}

// Present is a no-op; the owner presents once its draw callback returns.
func (t *ViewTarget) Present(f *Frame) error {
	f.release()
	return nil
}

// Discard drops the frame.
func (t *ViewTarget) Discard(f *Frame) { f.release() }

// Resize records the new size; the owner reconfigures its surface itself.
func (t *ViewTarget) Resize(width, height uint32) error {
	t.width, t.height = width, height
	return nil
}

// Release forgets the source. The surface stays with its owner.
func (t *ViewTarget) Release() { t.source = nil }

// viewPointer converts an opaque gpucontext view to the wgpu view behind it.
func viewPointer(v gpucontext.TextureView) *wgpu.TextureView {
	if v.IsNil() {
		return nil
	}
	return (*wgpu.TextureView)(v.Pointer())
}

var _ Target = (*ViewTarget)(nil)
