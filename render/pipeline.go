// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/voxcraft"
	"github.com/gogpu/wgpu"
)

// Pipeline is a compiled pass-through render pipeline together with the
// objects it was built from. It is immutable after creation.
type Pipeline struct {
	shader   *wgpu.ShaderModule
	layout   *wgpu.PipelineLayout
	pipeline *wgpu.RenderPipeline
	format   gputypes.TextureFormat
}

// PrimitiveState returns the primitive assembly state of the pass-through
// pipeline: triangle list, counter-clockwise front faces, back faces culled.
func PrimitiveState() gputypes.PrimitiveState {
	return gputypes.PrimitiveState{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  gputypes.CullModeBack,
	}
}

// PipelineDescriptor builds the render pipeline descriptor for a shader
// module targeting format. No vertex buffers, no depth/stencil, one sample.
func PipelineDescriptor(shader *wgpu.ShaderModule, layout *wgpu.PipelineLayout, format gputypes.TextureFormat) *wgpu.RenderPipelineDescriptor {
	blend := gputypes.BlendStateReplace()
	return &wgpu.RenderPipelineDescriptor{
		Label:  "voxcraft-passthrough",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: VertexEntryPoint,
		},
		Primitive:    PrimitiveState(),
		DepthStencil: nil,
		Multisample:  gputypes.DefaultMultisampleState(),
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
	}
}

// NewPassThroughPipeline validates source and compiles it into a render
// pipeline writing to format. An empty source selects the embedded
// pass-through shader.
func NewPassThroughPipeline(device *wgpu.Device, format gputypes.TextureFormat, source string) (*Pipeline, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if source == "" {
		source = PassThroughShader()
	}
	if err := ValidateShader(source, PassThroughEntryPoints...); err != nil {
		return nil, err
	}

	p := &Pipeline{format: format}
	var err error

	p.shader, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "voxcraft-passthrough-shader",
		WGSL:  source,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create shader module: %w", err)
	}

	p.layout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: "voxcraft-passthrough-layout",
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("render: create pipeline layout: %w", err)
	}

	p.pipeline, err = device.CreateRenderPipeline(PipelineDescriptor(p.shader, p.layout, format))
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("render: create render pipeline: %w", err)
	}

	voxcraft.Logger().Debug("render: pass-through pipeline created", "format", format.String())
	return p, nil
}

// RenderPipeline returns the underlying wgpu pipeline.
func (p *Pipeline) RenderPipeline() *wgpu.RenderPipeline {
	if p == nil {
		return nil
	}
	return p.pipeline
}

// Format returns the color target format the pipeline was built for.
func (p *Pipeline) Format() gputypes.TextureFormat { return p.format }

// Release destroys the pipeline objects. Safe to call on nil and more than
// once.
func (p *Pipeline) Release() {
	if p == nil {
		return
	}
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	if p.shader != nil {
		p.shader.Release()
		p.shader = nil
	}
}
