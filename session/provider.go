// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package session

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Session exposes its device to other gogpu renderers.
var _ gpucontext.DeviceProvider = (*Session)(nil)

// Device returns the *wgpu.Device.
func (s *Session) Device() gpucontext.Device { return s.device }

// Queue returns the *wgpu.Queue.
func (s *Session) Queue() gpucontext.Queue { return s.queue }

// Adapter returns the *wgpu.Adapter.
func (s *Session) Adapter() gpucontext.Adapter { return s.adapter }

// SurfaceFormat returns the color format frames are rendered in.
func (s *Session) SurfaceFormat() gputypes.TextureFormat {
	if s.target == nil {
		return gputypes.TextureFormatUndefined
	}
	return s.target.Format()
}

// AdapterInfo returns the adapter name and type.
func (s *Session) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: s.info.Name, Type: adapterType(s.info.DeviceType)}
}

func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

func deviceType(t gpucontext.AdapterType) gputypes.DeviceType {
	switch t {
	case gpucontext.AdapterTypeDiscrete:
		return gputypes.DeviceTypeDiscreteGPU
	case gpucontext.AdapterTypeIntegrated:
		return gputypes.DeviceTypeIntegratedGPU
	case gpucontext.AdapterTypeSoftware:
		return gputypes.DeviceTypeCPU
	default:
		return gputypes.DeviceTypeOther
	}
}
