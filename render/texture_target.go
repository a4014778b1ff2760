// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"context"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
)

const (
	bytesPerPixel = 4 // RGBA8Unorm

	// copyRowAlignment is the required bytesPerRow alignment of
	// texture-to-buffer copies.
	copyRowAlignment = 256
)

// readbackMarker fills the staging buffer past the tightly packed image
// before the copy. Some backends (the software HAL among them) ignore
// BytesPerRow and pack rows tightly; an untouched marker tail tells
// ReadPixels which layout it got.
var readbackMarker = [4]byte{0xde, 0xad, 0xbe, 0xef}

// TextureTarget is an offscreen RGBA8 render target.
//
// It stands in for a window surface in headless mode and in tests; frames
// rendered into it can be read back with ReadPixels.
type TextureTarget struct {
	device  *wgpu.Device
	texture *wgpu.Texture
	view    *wgpu.TextureView
	width   uint32
	height  uint32
}

// NewTextureTarget creates an offscreen target of the given size.
func NewTextureTarget(device *wgpu.Device, width, height uint32) (*TextureTarget, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	t := &TextureTarget{device: device}
	if err := t.allocate(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TextureTarget) allocate(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	tex, err := t.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "voxcraft-offscreen",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("render: create offscreen texture: %w", err)
	}
	view, err := t.device.CreateTextureView(tex, nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("render: create offscreen view: %w", err)
	}
	t.releaseTexture()
	t.texture, t.view = tex, view
	t.width, t.height = width, height
	return nil
}

// Size returns the texture size.
func (t *TextureTarget) Size() (uint32, uint32) { return t.width, t.height }

// Format returns RGBA8Unorm.
func (t *TextureTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// Acquire returns the texture's view. The same view is reused every frame.
func (t *TextureTarget) Acquire() (*Frame, error) {
	if t.view == nil {
		return nil, wgpu.ErrReleased
	}
	return &Frame{View: t.view}, nil
}

// Present is a no-op; the rendered pixels stay in the texture.
func (t *TextureTarget) Present(*Frame) error { return nil }

// Discard is a no-op.
func (t *TextureTarget) Discard(*Frame) {}

// Resize reallocates the texture.
func (t *TextureTarget) Resize(width, height uint32) error {
	if width == t.width && height == t.height {
		return nil
	}
	return t.allocate(width, height)
}

// ReadPixels copies the texture into a new image. It submits its own copy
// command and waits for the mapping, bounded by ctx.
func (t *TextureTarget) ReadPixels(ctx context.Context) (*image.RGBA, error) {
	if t.texture == nil {
		return nil, wgpu.ErrReleased
	}
	queue := t.device.Queue()
	if queue == nil {
		return nil, fmt.Errorf("%w: device has no queue", ErrReadback)
	}

	tightRow := t.width * bytesPerPixel
	bytesPerRow := alignUp(tightRow, copyRowAlignment)
	size := uint64(bytesPerRow) * uint64(t.height)
	tight := uint64(tightRow) * uint64(t.height)

	staging, err := t.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "voxcraft-readback",
		Size:  size,
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create staging buffer: %w", ErrReadback, err)
	}
	defer staging.Release()

	if tight < size {
		if err := queue.WriteBuffer(staging, tight, markerFill(int(size-tight))); err != nil {
			return nil, fmt.Errorf("%w: mark staging buffer: %w", ErrReadback, err)
		}
	}

	encoder, err := t.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "voxcraft-readback"})
	if err != nil {
		return nil, fmt.Errorf("%w: create encoder: %w", ErrReadback, err)
	}
	encoder.CopyTextureToBuffer(t.texture, staging, []wgpu.BufferTextureCopy{{
		BufferLayout: wgpu.ImageDataLayout{BytesPerRow: bytesPerRow, RowsPerImage: t.height},
		TextureBase:  wgpu.ImageCopyTexture{Texture: t.texture},
		Size:         wgpu.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1},
	}})
	cmd, err := encoder.Finish()
	if err != nil {
		return nil, fmt.Errorf("%w: finish encoder: %w", ErrReadback, err)
	}
	if _, err := queue.Submit(cmd); err != nil {
		return nil, fmt.Errorf("%w: submit: %w", ErrReadback, err)
	}

	if err := staging.Map(ctx, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("%w: map: %w", ErrReadback, err)
	}
	rng, err := staging.MappedRange(0, size)
	if err != nil {
		_ = staging.Unmap()
		return nil, fmt.Errorf("%w: mapped range: %w", ErrReadback, err)
	}

	data := rng.Bytes()
	stride := rowStride(data, int(tightRow), int(bytesPerRow), int(t.height))
	img := image.NewRGBA(image.Rect(0, 0, int(t.width), int(t.height)))
	unpackRows(img.Pix, img.Stride, data, stride, int(t.height))
	if err := staging.Unmap(); err != nil {
		return nil, fmt.Errorf("%w: unmap: %w", ErrReadback, err)
	}
	return img, nil
}

// unpackRows copies rows of a padded GPU buffer into a tightly packed image.
func unpackRows(dst []byte, dstStride int, src []byte, srcStride, rows int) {
	for y := range rows {
		s := src[y*srcStride:]
		d := dst[y*dstStride : y*dstStride+dstStride]
		copy(d, s[:dstStride])
	}
}

// markerFill returns n bytes of readbackMarker. n is a multiple of four.
func markerFill(n int) []byte {
	b := make([]byte, n)
	for i := 0; i < n; i += len(readbackMarker) {
		copy(b[i:], readbackMarker[:])
	}
	return b
}

// rowStride returns the row stride the copy actually used: padded when
// any byte past the tightly packed image changed, tight otherwise.
func rowStride(data []byte, tightRow, paddedRow, rows int) int {
	if tightRow == paddedRow {
		return paddedRow
	}
	tail := data[tightRow*rows : paddedRow*rows]
	for i, b := range tail {
		if b != readbackMarker[i%len(readbackMarker)] {
			return paddedRow
		}
	}
	return tightRow
}

func alignUp(v, align uint32) uint32 {
	return (v + align - 1) / align * align
}

func (t *TextureTarget) releaseTexture() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

// Release frees the texture.
func (t *TextureTarget) Release() {
	t.releaseTexture()
}

var _ Target = (*TextureTarget)(nil)
