package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/wgpu"
)

func TestBuiltinsRegistered(t *testing.T) {
	for _, name := range []string{NameAuto, NameVulkan, NameMetal, NameDX12, NameGL, NameSoftware} {
		if !IsRegistered(name) {
			t.Errorf("IsRegistered(%q) = false, want true", name)
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		want     string
		backends wgpu.Backends
		software bool
	}{
		{"", NameAuto, wgpu.BackendsAll, false},
		{"auto", NameAuto, wgpu.BackendsAll, false},
		{"Vulkan", NameVulkan, wgpu.BackendsVulkan, false},
		{" gl ", NameGL, wgpu.BackendsGL, false},
		{"dx12", NameDX12, wgpu.BackendsDX12, false},
		{"software", NameSoftware, wgpu.BackendsAll, true},
	}
	for _, tt := range tests {
		api, err := Lookup(tt.name)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", tt.name, err)
			continue
		}
		if api.Name != tt.want {
			t.Errorf("Lookup(%q).Name = %q, want %q", tt.name, api.Name, tt.want)
		}
		if api.Backends != tt.backends {
			t.Errorf("Lookup(%q).Backends = %v, want %v", tt.name, api.Backends, tt.backends)
		}
		if api.IsSoftware() != tt.software {
			t.Errorf("Lookup(%q).IsSoftware() = %v, want %v", tt.name, api.IsSoftware(), tt.software)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("glide")
	if !errors.Is(err, ErrUnknownAPI) {
		t.Errorf("Lookup(glide) error = %v, want ErrUnknownAPI", err)
	}
}

func TestAutoNeverAcceptsSoftware(t *testing.T) {
	api := Auto()
	if api.AllowSoftware || api.ForceFallback {
		t.Errorf("Auto() = %+v, want no software fallback", api)
	}
}

func TestRegisterUnregister(t *testing.T) {
	Register(API{Name: "Test-Vk", Backends: wgpu.BackendsVulkan})
	t.Cleanup(func() { Unregister("test-vk") })

	if !IsRegistered("test-vk") {
		t.Fatal("registered API not found")
	}
	if !slices.Contains(Available(), "test-vk") {
		t.Errorf("Available() = %v, want it to contain test-vk", Available())
	}
	Unregister("TEST-VK")
	if IsRegistered("test-vk") {
		t.Error("Unregister did not remove the API")
	}
}

func TestAvailableOrder(t *testing.T) {
	names := Available()
	if len(names) == 0 || names[0] != NameAuto {
		t.Errorf("Available()[0] = %v, want %q first", names, NameAuto)
	}
	if names[len(names)-1] == NameAuto {
		t.Error("auto should not be last")
	}
}

func TestDefault(t *testing.T) {
	if got := Default().Name; got != NameAuto {
		t.Errorf("Default().Name = %q, want %q", got, NameAuto)
	}
}

func TestPriorityPerOS(t *testing.T) {
	if p := priority("windows"); p[1] != NameDX12 {
		t.Errorf("priority(windows)[1] = %q, want dx12", p[1])
	}
	if p := priority("darwin"); p[1] != NameMetal {
		t.Errorf("priority(darwin)[1] = %q, want metal", p[1])
	}
	if p := priority("linux"); p[1] != NameVulkan {
		t.Errorf("priority(linux)[1] = %q, want vulkan", p[1])
	}
}
