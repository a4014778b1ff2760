// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render records the GPU work of a single frame.
//
// # Targets
//
// A [Target] hands out one texture view per frame and presents it when the
// frame is done:
//   - [SurfaceTarget]: the swapchain of a window surface
//   - [TextureTarget]: an offscreen RGBA8 texture with CPU readback
//
// # Frame Recording
//
// [RecordClearPass] records the frame's only render pass: the color
// attachment is cleared to a constant color and stored, with no depth or
// stencil attachment. When a pipeline is supplied it is bound, but no draw
// calls are recorded yet.
//
// # Pipelines
//
// [NewPassThroughPipeline] compiles the embedded WGSL shader (entry points
// vs_main and fs_main) into a render pipeline with triangle-list topology,
// counter-clockwise front faces, back-face culling, no depth/stencil and a
// single sample. [ValidateShader] checks WGSL with naga before the source
// reaches the device.
package render
