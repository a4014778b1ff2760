// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package session

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/voxcraft/render"
	"github.com/gogpu/wgpu"
)

// chooseFormat returns the first sRGB format, or formats[0] when none is
// sRGB. ok is false for an empty list.
func chooseFormat(formats []gputypes.TextureFormat) (gputypes.TextureFormat, bool) {
	if len(formats) == 0 {
		return gputypes.TextureFormatUndefined, false
	}
	for _, f := range formats {
		if f.IsSrgb() {
			return f, true
		}
	}
	return formats[0], true
}

// surfaceConfigFor derives the surface configuration from the adapter's
// surface capabilities: render-attachment usage, first present mode, first
// alpha mode. Missing present or alpha modes fall back to Fifo and Auto,
// which every backend accepts.
func surfaceConfigFor(caps *wgpu.SurfaceCapabilities, width, height uint32, maxFrames int) (render.SurfaceConfig, error) {
	if caps == nil {
		return render.SurfaceConfig{}, ErrNoSurfaceFormat
	}
	format, ok := chooseFormat(caps.Formats)
	if !ok {
		return render.SurfaceConfig{}, ErrNoSurfaceFormat
	}

	present := gputypes.PresentModeFifo
	if len(caps.PresentModes) > 0 {
		present = caps.PresentModes[0]
	}
	alpha := gputypes.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}

	return render.SurfaceConfig{
		Width:             width,
		Height:            height,
		Format:            format,
		Usage:             gputypes.TextureUsageRenderAttachment,
		PresentMode:       present,
		AlphaMode:         alpha,
		MaxFramesInFlight: maxFrames,
	}, nil
}

// pixelSize converts a window size to surface dimensions, clamping
// negative values to zero.
func pixelSize(w, h int) (uint32, uint32) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return uint32(w), uint32(h) //nolint:gosec // G115: clamped to non-negative above
}

func describeConfig(c render.SurfaceConfig) string {
	return fmt.Sprintf("%dx%d %s present=%s alpha=%s frames=%d",
		c.Width, c.Height, c.Format, c.PresentMode, c.AlphaMode, c.MaxFramesInFlight)
}
