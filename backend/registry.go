// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/gogpu/gpucontext"
)

// EnvGraphicsAPI is the environment variable gogpu tools use to force a
// graphics API.
const EnvGraphicsAPI = "GOGPU_GRAPHICS_API"

// registry holds registered APIs. Priority order follows the native API of
// the host OS first, then GLES, then the software rasterizer.
var registry = gpucontext.NewRegistry[API](gpucontext.WithPriority(priority(runtime.GOOS)...))

func init() {
	for _, api := range builtins() {
		Register(api)
	}
}

func priority(goos string) []string {
	switch goos {
	case "windows":
		return []string{NameAuto, NameDX12, NameVulkan, NameGL, NameSoftware}
	case "darwin", "ios":
		return []string{NameAuto, NameMetal, NameSoftware}
	default:
		return []string{NameAuto, NameVulkan, NameGL, NameSoftware}
	}
}

// Register registers an API under api.Name (lower-cased).
// Registering a name that already exists replaces the previous entry.
func Register(api API) {
	api.Name = strings.ToLower(api.Name)
	registry.Register(api.Name, func() API { return api })
}

// Unregister removes an API from the registry.
// This is useful for testing.
func Unregister(name string) {
	registry.Unregister(strings.ToLower(name))
}

// IsRegistered checks if an API with the given name is registered.
func IsRegistered(name string) bool {
	return registry.Has(strings.ToLower(name))
}

// Available returns the registered API names, preferred ones first and the
// rest in lexical order.
func Available() []string {
	names := registry.Available()
	order := priority(runtime.GOOS)
	rank := func(n string) int {
		if i := slices.Index(order, n); i >= 0 {
			return i
		}
		return len(order)
	}
	slices.SortFunc(names, func(a, b string) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})
	return names
}

// Default returns the best registered API, normally Auto.
func Default() API {
	api := registry.Best()
	if api.Name == "" {
		return Auto()
	}
	return api
}

// Lookup returns the API registered under name. An empty name selects
// Default.
func Lookup(name string) (API, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Default(), nil
	}
	if !registry.Has(name) {
		return API{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownAPI, name, strings.Join(Available(), ", "))
	}
	return registry.Get(name), nil
}
