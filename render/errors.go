// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

// Sentinel errors for render operations.
var (
	// ErrNilDevice is returned when a device is required but nil.
	ErrNilDevice = errors.New("render: device is nil")

	// ErrInvalidSize is returned for zero or negative target dimensions.
	ErrInvalidSize = errors.New("render: invalid target size")

	// ErrShader is returned when WGSL fails to parse, lower or validate.
	ErrShader = errors.New("render: invalid shader")

	// ErrMissingEntryPoint is returned when a required shader entry point is absent.
	ErrMissingEntryPoint = errors.New("render: missing shader entry point")

	// ErrReadback is returned when pixels cannot be copied back from the GPU.
	ErrReadback = errors.New("render: readback failed")

	// ErrNoView is returned by ViewTarget.Acquire outside a frame, when the
	// view source has no surface view to hand out.
	ErrNoView = errors.New("render: no surface view")
)
