// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package session implements the presentation session: the bridge between
// a platform window and a WebGPU device.
//
// A [Session] owns the instance, adapter, device, queue, the configured
// window surface and the optional pass-through pipeline. It is created once
// per window with [New], renders one frame per [Session.RenderFrame] call
// and routes key presses to an input dispatcher via [Session.HandleKey].
// Windowing libraries that own the device and surface themselves (gogpu)
// use [NewShared] instead.
//
// # Lifecycle
//
//	sess, err := session.New(ctx, window)
//	if err != nil {
//		return err // surface, adapter, device or pipeline failure
//	}
//	defer sess.Close()
//
//	for running {
//		if err := sess.RenderFrame(); err != nil {
//			if errors.Is(err, session.ErrFrameSkipped) {
//				continue // minimized
//			}
//			if session.IsSurfaceError(err) {
//				log.Print(err) // lost, outdated, timeout or out of memory
//				continue
//			}
//			return err
//		}
//	}
//
// # Surface Configuration
//
// The surface format is the first sRGB format the adapter reports for the
// surface, or the first reported format when none is sRGB. Present and
// alpha modes are the first reported ones. At most two frames are queued
// ahead of the display by default ([WithMaxFramesInFlight]).
//
// # Threading
//
// A Session is driven from the event loop goroutine only; it performs no
// locking.
package session
