// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"

	"github.com/gogpu/wgpu"
)

// Common backend errors.
var (
	// ErrUnknownAPI is returned when a requested graphics API is not registered.
	ErrUnknownAPI = errors.New("backend: unknown graphics API")
)

// Backend names.
const (
	NameAuto     = "auto"
	NameVulkan   = "vulkan"
	NameMetal    = "metal"
	NameDX12     = "dx12"
	NameGL       = "gl"
	NameSoftware = "software"
)

// API describes a graphics API choice: which wgpu backends the instance
// enables and how the adapter is negotiated.
type API struct {
	// Name is the registry key (e.g., "vulkan").
	Name string

	// Backends is the instance backend mask.
	Backends wgpu.Backends

	// ForceFallback requests the CPU adapter directly.
	ForceFallback bool

	// AllowSoftware accepts a CPU adapter when adapter negotiation falls
	// back to one. Hardware APIs leave this false.
	AllowSoftware bool
}

// IsSoftware reports whether the API renders on the CPU.
func (a API) IsSoftware() bool {
	return a.ForceFallback
}

// String returns the API name.
func (a API) String() string {
	if a.Name == "" {
		return NameAuto
	}
	return a.Name
}

// Auto returns the API that enables every compiled-in backend and never
// accepts a software adapter.
func Auto() API {
	return API{Name: NameAuto, Backends: wgpu.BackendsAll}
}

func builtins() []API {
	return []API{
		Auto(),
		{Name: NameVulkan, Backends: wgpu.BackendsVulkan},
		{Name: NameMetal, Backends: wgpu.BackendsMetal},
		{Name: NameDX12, Backends: wgpu.BackendsDX12},
		{Name: NameGL, Backends: wgpu.BackendsGL},
		{Name: NameSoftware, Backends: wgpu.BackendsAll, ForceFallback: true, AllowSoftware: true},
	}
}
