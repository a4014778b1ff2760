// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import "github.com/gogpu/gpucontext"

// Bindings maps physical keys to commands. Bindings fire on key press only;
// releases never resolve to a command.
type Bindings map[gpucontext.Key]Command

// DefaultBindings returns the scaffold key map:
//
//	Escape  Exit
//	W A S D Move forward/left/back/right
//	F       Interact
func DefaultBindings() Bindings {
	return Bindings{
		gpucontext.KeyEscape: Exit(),
		gpucontext.KeyW:      Move(DirForward),
		gpucontext.KeyA:      Move(DirLeft),
		gpucontext.KeyS:      Move(DirBack),
		gpucontext.KeyD:      Move(DirRight),
		gpucontext.KeyF:      Interact(),
	}
}

// Resolve returns the command bound to key. ok is false for releases,
// gpucontext.KeyUnknown and unbound keys.
func (b Bindings) Resolve(key gpucontext.Key, pressed bool) (cmd Command, ok bool) {
	if !pressed || key == gpucontext.KeyUnknown {
		return Command{}, false
	}
	cmd, ok = b[key]
	return cmd, ok
}

// Clone returns an independent copy that can be modified without affecting b.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
