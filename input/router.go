// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import "github.com/gogpu/gpucontext"

// Router resolves keys through Bindings and forwards the resulting commands
// to a Dispatcher.
type Router struct {
	bindings   Bindings
	dispatcher Dispatcher
}

// NewRouter creates a router. Nil arguments select DefaultBindings and
// TraceDispatcher.
func NewRouter(b Bindings, d Dispatcher) *Router {
	if b == nil {
		b = DefaultBindings()
	}
	if d == nil {
		d = TraceDispatcher{}
	}
	return &Router{bindings: b, dispatcher: d}
}

// HandleKey dispatches the command bound to key, if any. Unbound keys,
// releases and KeyUnknown return Continue without reaching the dispatcher.
func (r *Router) HandleKey(key gpucontext.Key, pressed bool) Signal {
	cmd, ok := r.bindings.Resolve(key, pressed)
	if !ok {
		return Continue
	}
	return r.dispatcher.Dispatch(cmd)
}

// Bindings returns the router's key map.
func (r *Router) Bindings() Bindings { return r.bindings }
