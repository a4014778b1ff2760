// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package session

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu"
)

// Startup errors. Each is wrapped together with the underlying cause.
var (
	// ErrNilWindow is returned when New is called without a window.
	ErrNilWindow = errors.New("session: window is nil")

	// ErrSurfaceCreation is returned when no surface can be bound to the window.
	ErrSurfaceCreation = errors.New("session: surface creation failed")

	// ErrNoAdapter is returned when adapter negotiation fails.
	ErrNoAdapter = errors.New("session: no compatible adapter")

	// ErrSoftwareAdapter is returned when the only adapter offered is a CPU
	// rasterizer and software fallback is disabled.
	ErrSoftwareAdapter = errors.New("session: only a software adapter is available")

	// ErrDeviceRequest is returned when the adapter rejects the device request.
	ErrDeviceRequest = errors.New("session: device request failed")

	// ErrNoSurfaceFormat is returned when the surface reports no usable format.
	ErrNoSurfaceFormat = errors.New("session: surface reports no formats")

	// ErrPipeline is returned when the pass-through pipeline cannot be built.
	ErrPipeline = errors.New("session: pipeline creation failed")

	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("session: closed")

	// ErrNoDevice is returned by NewShared when the window's library
	// exposes no *wgpu.Device.
	ErrNoDevice = errors.New("session: window provides no device")

	// ErrNotHeadless is returned by Snapshot on a window session.
	ErrNotHeadless = errors.New("session: not a headless session")
)

// ErrSurface matches every *SurfaceError via errors.Is.
var ErrSurface = errors.New("session: surface error")

// ErrFrameSkipped is returned by RenderFrame when nothing was drawn: the
// target has zero size or no surface view is available yet. It is neither
// a failure nor a *SurfaceError.
var ErrFrameSkipped = errors.New("session: frame skipped")

// SurfaceErrorKind classifies recoverable frame failures.
type SurfaceErrorKind uint8

const (
	// SurfaceLost means the surface must be reconfigured.
	SurfaceLost SurfaceErrorKind = iota + 1

	// SurfaceOutdated means the surface no longer matches the window.
	SurfaceOutdated

	// SurfaceTimeout means no texture became available in time.
	SurfaceTimeout

	// SurfaceOutOfMemory means the device ran out of memory.
	SurfaceOutOfMemory
)

// String returns the kind name.
func (k SurfaceErrorKind) String() string {
	switch k {
	case SurfaceLost:
		return "lost"
	case SurfaceOutdated:
		return "outdated"
	case SurfaceTimeout:
		return "timeout"
	case SurfaceOutOfMemory:
		return "out of memory"
	default:
		return fmt.Sprintf("SurfaceErrorKind(%d)", uint8(k))
	}
}

// SurfaceError is a recoverable failure while acquiring or presenting a
// frame. The event loop logs it and tries again on the next redraw.
type SurfaceError struct {
	Kind SurfaceErrorKind
	Err  error
}

// Error implements the error interface.
func (e *SurfaceError) Error() string {
	if e.Err == nil {
		return "session: surface " + e.Kind.String()
	}
	return "session: surface " + e.Kind.String() + ": " + e.Err.Error()
}

// Unwrap exposes both ErrSurface and the underlying cause.
func (e *SurfaceError) Unwrap() []error {
	return []error{ErrSurface, e.Err}
}

// NeedsReconfigure reports whether the surface has to be configured again
// before the next frame.
func (e *SurfaceError) NeedsReconfigure() bool {
	return e.Kind == SurfaceLost || e.Kind == SurfaceOutdated
}

// IsSurfaceError reports whether err is a recoverable surface error.
func IsSurfaceError(err error) bool {
	return errors.Is(err, ErrSurface)
}

// classifySurfaceError maps wgpu frame errors to a *SurfaceError. It
// returns nil for errors that are not surface errors.
func classifySurfaceError(err error) *SurfaceError {
	var kind SurfaceErrorKind
	switch {
	case err == nil:
		return nil
	case errors.Is(err, wgpu.ErrSurfaceLost):
		kind = SurfaceLost
	case errors.Is(err, wgpu.ErrSurfaceOutdated):
		kind = SurfaceOutdated
	case errors.Is(err, wgpu.ErrTimeout):
		kind = SurfaceTimeout
	case errors.Is(err, wgpu.ErrOutOfMemory):
		kind = SurfaceOutOfMemory
	default:
		var se *SurfaceError
		if errors.As(err, &se) {
			return se
		}
		return nil
	}
	return &SurfaceError{Kind: kind, Err: err}
}
