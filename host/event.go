// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// WindowID identifies a window created by an [ActiveLoop].
type WindowID uint64

// Event is a window event delivered to [Handler.WindowEvent].
type Event interface {
	isEvent()
}

// CloseRequested is sent when the user asks to close the window.
type CloseRequested struct{}

// RedrawRequested is sent when the window should render a frame.
type RedrawRequested struct{}

// Resized carries the new framebuffer size in physical pixels.
type Resized struct {
	Width, Height int
}

// KeyboardInput is a key press or release.
type KeyboardInput struct {
	Key     gpucontext.Key
	Mods    gpucontext.Modifiers
	Pressed bool

	// Synthetic is set for events the platform generated itself, such as
	// the releases sent when the window loses focus.
	Synthetic bool
}

// Focused reports a focus change.
type Focused struct {
	Focused bool
}

func (CloseRequested) isEvent()  {}
func (RedrawRequested) isEvent() {}
func (Resized) isEvent()         {}
func (KeyboardInput) isEvent()   {}
func (Focused) isEvent()         {}

func (CloseRequested) String() string  { return "CloseRequested" }
func (RedrawRequested) String() string { return "RedrawRequested" }
func (e Resized) String() string       { return fmt.Sprintf("Resized(%dx%d)", e.Width, e.Height) }
func (e Focused) String() string       { return fmt.Sprintf("Focused(%v)", e.Focused) }

func (e KeyboardInput) String() string {
	state := "released"
	if e.Pressed {
		state = "pressed"
	}
	return fmt.Sprintf("KeyboardInput(key=%d %s)", e.Key, state)
}
