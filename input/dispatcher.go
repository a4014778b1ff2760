// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import (
	"log/slog"

	"github.com/gogpu/voxcraft"
)

// Signal tells the event loop what to do after a command was dispatched.
type Signal uint8

const (
	// Continue keeps the event loop running.
	Continue Signal = iota

	// Stop asks the event loop to terminate.
	Stop
)

// String returns the signal name.
func (s Signal) String() string {
	if s == Stop {
		return "Stop"
	}
	return "Continue"
}

// Dispatcher applies commands to game state.
//
// Dispatch is called from the event loop goroutine and must not block.
type Dispatcher interface {
	Dispatch(cmd Command) Signal
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(cmd Command) Signal

// Dispatch calls f(cmd).
func (f DispatcherFunc) Dispatch(cmd Command) Signal { return f(cmd) }

// TraceDispatcher logs movement and interaction at debug level and stops the
// loop on CommandExit. It holds no state.
type TraceDispatcher struct {
	// Logger overrides voxcraft.Logger when set.
	Logger *slog.Logger
}

// Dispatch implements Dispatcher.
func (d TraceDispatcher) Dispatch(cmd Command) Signal {
	log := d.Logger
	if log == nil {
		log = voxcraft.Logger()
	}
	switch cmd.Kind {
	case CommandExit:
		log.Debug("input: exit requested")
		return Stop
	case CommandMove:
		log.Debug("input: move", "dir", cmd.String())
	case CommandInteract:
		log.Debug("input: interact")
	}
	return Continue
}

var (
	_ Dispatcher = TraceDispatcher{}
	_ Dispatcher = DispatcherFunc(nil)
)
