// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package host drives the application lifecycle on top of a platform event
// loop.
//
// [App] starts Empty. When the loop reports that the platform is ready it
// creates the single fixed-size window, blocks until a presentation session
// is initialized for it and becomes Active. From then on window events are
// routed to the session: close requests and Escape end the loop, redraws
// render a frame and schedule the next one.
//
// The platform side is abstracted by [EventLoop], [ActiveLoop] and
// [Window]; internal/desktop implements them with gogpu.
package host
