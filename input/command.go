// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package input turns keyboard events into engine commands.
//
// A key press is resolved through [Bindings] into a [Command], and the
// command is handed to a [Dispatcher]. The dispatcher decides what the
// command does to game state and whether the event loop should keep
// running. [TraceDispatcher] is the scaffold implementation: it only logs
// movement and interaction, and asks the loop to stop on [CommandExit].
package input

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// CommandKind identifies a command.
type CommandKind uint8

const (
	// CommandNone is the zero value and never dispatched.
	CommandNone CommandKind = iota

	// CommandMove moves the player along Command.Dir.
	CommandMove

	// CommandInteract triggers the action key.
	CommandInteract

	// CommandExit requests the event loop to terminate.
	CommandExit
)

// String returns the command kind name.
func (k CommandKind) String() string {
	switch k {
	case CommandNone:
		return "None"
	case CommandMove:
		return "Move"
	case CommandInteract:
		return "Interact"
	case CommandExit:
		return "Exit"
	default:
		return fmt.Sprintf("CommandKind(%d)", uint8(k))
	}
}

// Command is a resolved input action.
type Command struct {
	Kind CommandKind

	// Dir is the unit movement direction in world space. Only set for
	// CommandMove. Forward is -Z, right is +X.
	Dir mgl32.Vec3
}

// Movement directions used by the default bindings.
var (
	DirForward = mgl32.Vec3{0, 0, -1}
	DirBack    = mgl32.Vec3{0, 0, 1}
	DirLeft    = mgl32.Vec3{-1, 0, 0}
	DirRight   = mgl32.Vec3{1, 0, 0}
)

// Move returns a movement command. The direction is normalized; a zero
// vector yields a zero direction.
func Move(dir mgl32.Vec3) Command {
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Command{Kind: CommandMove, Dir: dir}
}

// Interact returns the interaction command.
func Interact() Command { return Command{Kind: CommandInteract} }

// Exit returns the exit command.
func Exit() Command { return Command{Kind: CommandExit} }

// String formats the command for logs.
func (c Command) String() string {
	if c.Kind == CommandMove {
		return fmt.Sprintf("Move(%.2f, %.2f, %.2f)", c.Dir.X(), c.Dir.Y(), c.Dir.Z())
	}
	return c.Kind.String()
}
