// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/voxcraft"
	"github.com/gogpu/wgpu"
)

// SurfaceConfig is the presentation configuration of a window surface.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	Usage       gputypes.TextureUsage
	PresentMode gputypes.PresentMode
	AlphaMode   gputypes.CompositeAlphaMode

	// MaxFramesInFlight bounds how many submitted frames may be queued
	// ahead of the display. wgpu has no swapchain field for it, so the
	// presentation session enforces it when acquiring frames.
	MaxFramesInFlight int
}

func (c SurfaceConfig) toWGPU() *wgpu.SurfaceConfiguration {
	return &wgpu.SurfaceConfiguration{
		Width:       c.Width,
		Height:      c.Height,
		Format:      c.Format,
		Usage:       c.Usage,
		PresentMode: c.PresentMode,
		AlphaMode:   c.AlphaMode,
	}
}

// SurfaceTarget renders into the swapchain of a window surface.
type SurfaceTarget struct {
	surface *wgpu.Surface
	device  *wgpu.Device
	config  SurfaceConfig
}

// NewSurfaceTarget configures surface for device and returns a target that
// owns it. A zero-sized config is accepted but left unconfigured until
// Resize is called with a non-zero size.
func NewSurfaceTarget(device *wgpu.Device, surface *wgpu.Surface, cfg SurfaceConfig) (*SurfaceTarget, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	t := &SurfaceTarget{surface: surface, device: device, config: cfg}
	if cfg.Width == 0 || cfg.Height == 0 {
		return t, nil
	}
	if err := t.configure(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *SurfaceTarget) configure() error {
	if err := t.surface.Configure(t.device, t.config.toWGPU()); err != nil {
		return fmt.Errorf("render: configure surface %dx%d: %w", t.config.Width, t.config.Height, err)
	}
	voxcraft.Logger().Info("render: surface configured",
		"width", t.config.Width,
		"height", t.config.Height,
		"format", t.config.Format.String(),
		"present", t.config.PresentMode.String(),
		"alpha", t.config.AlphaMode.String(),
	)
	return nil
}

// Config returns the current surface configuration.
func (t *SurfaceTarget) Config() SurfaceConfig { return t.config }

// Size returns the configured surface size.
func (t *SurfaceTarget) Size() (uint32, uint32) { return t.config.Width, t.config.Height }

// Format returns the surface format.
func (t *SurfaceTarget) Format() gputypes.TextureFormat { return t.config.Format }

// Acquire gets the next swapchain texture and creates a view of it.
// Errors from the surface (lost, outdated, timeout) are returned unwrapped
// so callers can match them with errors.Is.
func (t *SurfaceTarget) Acquire() (*Frame, error) {
	st, suboptimal, err := t.surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	view, err := st.CreateView(nil)
	if err != nil {
		t.surface.DiscardTexture()
		return nil, fmt.Errorf("render: create surface view: %w", err)
	}
	return &Frame{View: view, Suboptimal: suboptimal, surfaceTexture: st, ownsView: true}, nil
}

// Present presents the frame and releases its view.
func (t *SurfaceTarget) Present(f *Frame) error {
	defer f.release()
	return t.surface.Present(f.surfaceTexture)
}

// Discard drops the acquired texture without presenting it.
func (t *SurfaceTarget) Discard(f *Frame) {
	f.release()
	t.surface.DiscardTexture()
}

// Resize reconfigures the surface. A zero dimension unconfigures it; frames
// must not be acquired until a non-zero size is set.
func (t *SurfaceTarget) Resize(width, height uint32) error {
	t.config.Width, t.config.Height = width, height
	if width == 0 || height == 0 {
		t.surface.Unconfigure()
		return nil
	}
	return t.configure()
}

// Reconfigure applies the current configuration again, used after the
// surface was reported lost or outdated.
func (t *SurfaceTarget) Reconfigure() error {
	if t.config.Width == 0 || t.config.Height == 0 {
		return nil
	}
	return t.configure()
}

// Release unconfigures and releases the surface.
func (t *SurfaceTarget) Release() {
	if t.surface == nil {
		return
	}
	t.surface.Unconfigure()
	t.surface.Release()
	t.surface = nil
}

var _ Target = (*SurfaceTarget)(nil)
