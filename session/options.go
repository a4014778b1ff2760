// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package session

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/voxcraft/backend"
	"github.com/gogpu/voxcraft/input"
	"github.com/gogpu/voxcraft/render"
)

// DefaultMaxFramesInFlight is the number of frames that may be queued ahead
// of the display.
const DefaultMaxFramesInFlight = 2

// Option configures a Session during creation.
//
// Example:
//
//	// Defaults: all backends, pipeline on, two frames in flight
//	sess, err := session.New(ctx, window)
//
//	// Vulkan only, custom key handling
//	api, _ := backend.Lookup("vulkan")
//	sess, err := session.New(ctx, window,
//		session.WithAPI(api),
//		session.WithDispatcher(game),
//	)
type Option func(*options)

type options struct {
	api               backend.API
	softwareFallback  bool
	maxFramesInFlight int
	pipeline          bool
	shaderSource      string
	clearColor        gputypes.Color
	bindings          input.Bindings
	dispatcher        input.Dispatcher
}

func defaultOptions() options {
	return options{
		api:               backend.Auto(),
		maxFramesInFlight: DefaultMaxFramesInFlight,
		pipeline:          true,
		clearColor:        render.DefaultClearColor,
	}
}

func (o *options) allowSoftware() bool {
	return o.softwareFallback || o.api.AllowSoftware
}

// WithAPI selects the graphics API. The default enables every compiled-in
// backend.
func WithAPI(api backend.API) Option {
	return func(o *options) {
		o.api = api
	}
}

// WithSoftwareFallback accepts a CPU adapter when no GPU adapter is
// available. Off by default.
func WithSoftwareFallback(enabled bool) Option {
	return func(o *options) {
		o.softwareFallback = enabled
	}
}

// WithMaxFramesInFlight bounds the number of submitted frames that may be
// queued ahead of the display. Values below 1 are ignored.
func WithMaxFramesInFlight(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.maxFramesInFlight = n
		}
	}
}

// WithPipeline enables or disables building the pass-through pipeline.
func WithPipeline(enabled bool) Option {
	return func(o *options) {
		o.pipeline = enabled
	}
}

// WithShaderSource replaces the embedded pass-through WGSL. The source
// must declare the vs_main vertex and fs_main fragment entry points.
func WithShaderSource(wgsl string) Option {
	return func(o *options) {
		o.shaderSource = wgsl
	}
}

// WithClearColor sets the color every frame is cleared to.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithBindings replaces the default key bindings.
func WithBindings(b input.Bindings) Option {
	return func(o *options) {
		o.bindings = b
	}
}

// WithDispatcher sets the command dispatcher key presses are routed to.
// The default only traces commands.
func WithDispatcher(d input.Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = d
	}
}
