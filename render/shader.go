// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// Entry points of the pass-through shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

//go:embed shaders/passthrough.wgsl
var passThroughShaderSource string

// PassThroughShader returns the embedded WGSL source of the pass-through
// shader.
func PassThroughShader() string {
	return passThroughShaderSource
}

// EntryPoint names a shader entry point and the stage it must have.
type EntryPoint struct {
	Name  string
	Stage ir.ShaderStage
}

// PassThroughEntryPoints are the entry points NewPassThroughPipeline binds.
var PassThroughEntryPoints = []EntryPoint{
	{Name: VertexEntryPoint, Stage: ir.StageVertex},
	{Name: FragmentEntryPoint, Stage: ir.StageFragment},
}

// ValidateShader parses, lowers and validates WGSL source with naga and
// checks that every required entry point exists with the right stage.
func ValidateShader(source string, required ...EntryPoint) error {
	ast, err := naga.Parse(source)
	if err != nil {
		return fmt.Errorf("%w: parse: %w", ErrShader, err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return fmt.Errorf("%w: lower: %w", ErrShader, err)
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return fmt.Errorf("%w: validate: %w", ErrShader, err)
	}
	if len(verrs) > 0 {
		return fmt.Errorf("%w: %w (and %d more)", ErrShader, verrs[0], len(verrs)-1)
	}

	for _, want := range required {
		if !hasEntryPoint(module, want) {
			return fmt.Errorf("%w: %s (stage %d)", ErrMissingEntryPoint, want.Name, want.Stage)
		}
	}
	return nil
}

func hasEntryPoint(m *ir.Module, want EntryPoint) bool {
	for _, ep := range m.EntryPoints {
		if ep.Name == want.Name && ep.Stage == want.Stage {
			return true
		}
	}
	return false
}
