// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

// DefaultClearColor is the color every frame is cleared to.
var DefaultClearColor = gputypes.Color{R: 0.2, G: 0.2, B: 0.3, A: 1.0}

// ClearAttachment returns a color attachment that clears view to c and
// stores the result.
func ClearAttachment(view *wgpu.TextureView, c gputypes.Color) wgpu.RenderPassColorAttachment {
	return wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: c,
	}
}

// RecordClearPass records one render pass on encoder that clears view to c.
// There is no depth/stencil attachment. If p is non-nil its pipeline is
// bound; no draw calls are recorded.
func RecordClearPass(encoder *wgpu.CommandEncoder, view *wgpu.TextureView, c gputypes.Color, p *Pipeline) error {
	pass, err := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            "voxcraft-frame",
		ColorAttachments: []wgpu.RenderPassColorAttachment{ClearAttachment(view, c)},
	})
	if err != nil {
		return fmt.Errorf("render: begin render pass: %w", err)
	}
	if rp := p.RenderPipeline(); rp != nil {
		pass.SetPipeline(rp)
	}
	if err := pass.End(); err != nil {
		return fmt.Errorf("render: end render pass: %w", err)
	}
	return nil
}

// EncodeClearFrame creates an encoder, records the clear pass into it and
// returns the finished command buffer.
func EncodeClearFrame(device *wgpu.Device, view *wgpu.TextureView, c gputypes.Color, p *Pipeline) (*wgpu.CommandBuffer, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	encoder, err := device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "voxcraft-frame-encoder"})
	if err != nil {
		return nil, fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := RecordClearPass(encoder, view, c, p); err != nil {
		encoder.DiscardEncoding()
		return nil, err
	}
	cmd, err := encoder.Finish()
	if err != nil {
		return nil, fmt.Errorf("render: finish encoder: %w", err)
	}
	return cmd, nil
}
