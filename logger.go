// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package voxcraft

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record.
// Enabled reports false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. SetLogger may run concurrently with
// logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger shared by voxcraft and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by voxcraft:
//   - [slog.LevelDebug]: key traces, frame pacing, pipeline state
//   - [slog.LevelInfo]: lifecycle (window created, adapter selected, surface configured)
//   - [slog.LevelWarn]: recoverable frame errors, release failures
//   - [slog.LevelError]: startup failures
//
// The GPU stack keeps its own logger; see wgpu.SetLogger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call this instead of
// holding their own copy so SetLogger takes effect everywhere at once.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
