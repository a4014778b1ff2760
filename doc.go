// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package voxcraft is the scaffold of a voxel game engine built on the
// gogpu WebGPU stack.
//
// # Overview
//
// The engine opens a single fixed-size window, binds a presentable surface
// to it and clears that surface to a constant color on every redraw. Key
// presses are translated into commands; Escape exits the event loop.
//
// # Architecture
//
// The module is split into strictly layered packages:
//   - host: application host, owns the window and routes platform events
//   - session: presentation session, owns adapter, device, queue and surface
//   - render: render passes, the pass-through pipeline and render targets
//   - backend: graphics API selection (Vulkan, Metal, DX12, GLES, software)
//   - input: key bindings, commands and dispatchers
//
// The desktop platform (gogpu) lives in internal/desktop and the
// voxcraft command in cmd/voxcraft wires everything together.
//
// # Logging
//
// All packages log through [Logger]. Logging is silent until [SetLogger]
// is called.
package voxcraft

// Product identification.
const (
	// Name is the product name shown in the window title.
	Name = "Voxcraft"

	// Version is the current release label.
	Version = "Alpha-1.0"
)

// Title returns the window title: the product name followed by its version.
func Title() string {
	return Name + " " + Version
}
