// Package backend selects which graphics APIs the presentation session may
// use.
//
// Each graphics API (Vulkan, Metal, DX12, GLES, the CPU software
// rasterizer) is registered under a short name. The special name "auto"
// enables every backend compiled into the binary and lets adapter
// negotiation pick the best device.
//
// # Backend Registration
//
// The built-in APIs are registered on import. HAL implementations still
// have to be linked in separately:
//
//	import _ "github.com/gogpu/wgpu/hal/allbackends"
//
// # Backend Selection
//
//	api, err := backend.Lookup("vulkan")
//	if err != nil {
//		log.Fatal(err)
//	}
//	sess, err := session.New(ctx, window, session.WithAPI(api))
//
// Names are case-insensitive. The GOGPU_GRAPHICS_API variable
// ([EnvGraphicsAPI]) understood by gogpu tools uses the same names.
package backend
