package render

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	_ "github.com/gogpu/wgpu/hal/software"
)

// newTestDevice creates a device on the software HAL. It skips the test
// when no HAL-backed device is available (mock adapter without a queue).
func newTestDevice(t *testing.T) *wgpu.Device {
	t.Helper()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		t.Skipf("cannot create instance: %v", err)
	}
	t.Cleanup(instance.Release)

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		t.Skipf("cannot request adapter: %v", err)
	}
	t.Cleanup(adapter.Release)

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		t.Skipf("cannot request device: %v", err)
	}
	if device.Queue() == nil {
		device.Release()
		t.Skip("skipping: device has no HAL integration")
	}
	t.Cleanup(device.Release)
	return device
}

// toByte converts a [0,1] channel to the 8-bit unorm value the GPU stores.
func toByte(v float64) uint8 {
	return uint8(v*255 + 0.5)
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestClearPassProducesUniformFrame(t *testing.T) {
	device := newTestDevice(t)

	target, err := NewTextureTarget(device, 64, 48)
	if err != nil {
		t.Fatalf("NewTextureTarget() error = %v", err)
	}
	defer target.Release()

	frame, err := target.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	cmd, err := EncodeClearFrame(device, frame.View, DefaultClearColor, nil)
	if err != nil {
		t.Fatalf("EncodeClearFrame() error = %v", err)
	}
	if _, err := device.Queue().Submit(cmd); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := target.Present(frame); err != nil {
		t.Fatalf("Present() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	img, err := target.ReadPixels(ctx)
	if err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}

	want := color.RGBA{
		R: toByte(DefaultClearColor.R),
		G: toByte(DefaultClearColor.G),
		B: toByte(DefaultClearColor.B),
		A: toByte(DefaultClearColor.A),
	}
	b := img.Bounds()
	if b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("image size = %dx%d, want 64x48", b.Dx(), b.Dy())
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			got := img.RGBAAt(x, y)
			if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestTextureTargetResize(t *testing.T) {
	device := newTestDevice(t)

	target, err := NewTextureTarget(device, 16, 16)
	if err != nil {
		t.Fatalf("NewTextureTarget() error = %v", err)
	}
	defer target.Release()

	if err := target.Resize(32, 8); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if w, h := target.Size(); w != 32 || h != 8 {
		t.Errorf("Size() = %dx%d, want 32x8", w, h)
	}
	if err := target.Resize(0, 8); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0, 8) error = %v, want ErrInvalidSize", err)
	}
}

func TestNilDevice(t *testing.T) {
	if _, err := NewTextureTarget(nil, 1, 1); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewTextureTarget(nil) error = %v, want ErrNilDevice", err)
	}
	if _, err := NewSurfaceTarget(nil, nil, SurfaceConfig{}); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewSurfaceTarget(nil) error = %v, want ErrNilDevice", err)
	}
	if _, err := NewPassThroughPipeline(nil, gputypes.TextureFormatRGBA8Unorm, ""); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewPassThroughPipeline(nil) error = %v, want ErrNilDevice", err)
	}
	if _, err := EncodeClearFrame(nil, nil, DefaultClearColor, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("EncodeClearFrame(nil) error = %v, want ErrNilDevice", err)
	}
}

func TestPipelineDescriptor(t *testing.T) {
	desc := PipelineDescriptor(nil, nil, gputypes.TextureFormatBGRA8UnormSrgb)

	if desc.Vertex.EntryPoint != VertexEntryPoint {
		t.Errorf("Vertex.EntryPoint = %q, want %q", desc.Vertex.EntryPoint, VertexEntryPoint)
	}
	if len(desc.Vertex.Buffers) != 0 {
		t.Errorf("len(Vertex.Buffers) = %d, want 0", len(desc.Vertex.Buffers))
	}
	if desc.Fragment == nil || desc.Fragment.EntryPoint != FragmentEntryPoint {
		t.Fatalf("Fragment = %+v, want entry point %q", desc.Fragment, FragmentEntryPoint)
	}
	p := desc.Primitive
	if p.Topology != gputypes.PrimitiveTopologyTriangleList {
		t.Errorf("Topology = %v, want TriangleList", p.Topology)
	}
	if p.FrontFace != gputypes.FrontFaceCCW {
		t.Errorf("FrontFace = %v, want CCW", p.FrontFace)
	}
	if p.CullMode != gputypes.CullModeBack {
		t.Errorf("CullMode = %v, want Back", p.CullMode)
	}
	if desc.DepthStencil != nil {
		t.Error("DepthStencil should be nil")
	}
	if desc.Multisample.Count != 1 {
		t.Errorf("Multisample.Count = %d, want 1", desc.Multisample.Count)
	}
	targets := desc.Fragment.Targets
	if len(targets) != 1 {
		t.Fatalf("len(Targets) = %d, want 1", len(targets))
	}
	if targets[0].Format != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("Targets[0].Format = %v, want BGRA8UnormSrgb", targets[0].Format)
	}
	if targets[0].Blend == nil || *targets[0].Blend != gputypes.BlendStateReplace() {
		t.Errorf("Targets[0].Blend = %v, want replace", targets[0].Blend)
	}
	if targets[0].WriteMask != gputypes.ColorWriteMaskAll {
		t.Errorf("Targets[0].WriteMask = %v, want All", targets[0].WriteMask)
	}
}

func TestClearAttachment(t *testing.T) {
	a := ClearAttachment(nil, DefaultClearColor)
	if a.LoadOp != gputypes.LoadOpClear {
		t.Errorf("LoadOp = %v, want Clear", a.LoadOp)
	}
	if a.StoreOp != gputypes.StoreOpStore {
		t.Errorf("StoreOp = %v, want Store", a.StoreOp)
	}
	if a.ClearValue != (gputypes.Color{R: 0.2, G: 0.2, B: 0.3, A: 1.0}) {
		t.Errorf("ClearValue = %+v", a.ClearValue)
	}
}

func TestUnpackRows(t *testing.T) {
	// Two rows of one pixel each, padded to 8 bytes per row.
	src := []byte{
		1, 2, 3, 4, 0, 0, 0, 0,
		5, 6, 7, 8, 0, 0, 0, 0,
	}
	dst := make([]byte, 8)
	unpackRows(dst, 4, src, 8, 2)
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = %v, want %v", dst, want)
		}
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct{ v, want uint32 }{
		{0, 0}, {1, 256}, {256, 256}, {257, 512}, {64 * 4, 256}, {100 * 4, 512},
	}
	for _, tt := range tests {
		if got := alignUp(tt.v, copyRowAlignment); got != tt.want {
			t.Errorf("alignUp(%d) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestReadPixelsRowLayout(t *testing.T) {
	device := newTestDevice(t)
	clear := gputypes.Color{R: 0.8, G: 0.4, B: 0.1, A: 1}
	want := color.RGBA{R: toByte(clear.R), G: toByte(clear.G), B: toByte(clear.B), A: toByte(clear.A)}

	// 32 and 100 pixels leave row padding at the 256-byte copy alignment;
	// 64 does not.
	for _, width := range []uint32{32, 100, 64} {
		target, err := NewTextureTarget(device, width, 24)
		if err != nil {
			t.Fatalf("NewTextureTarget(%d) error = %v", width, err)
		}

		frame, err := target.Acquire()
		if err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		cmd, err := EncodeClearFrame(device, frame.View, clear, nil)
		if err != nil {
			t.Fatalf("EncodeClearFrame() error = %v", err)
		}
		if _, err := device.Queue().Submit(cmd); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		img, err := target.ReadPixels(ctx)
		cancel()
		target.Release()
		if err != nil {
			t.Fatalf("width %d: ReadPixels() error = %v", width, err)
		}

		b := img.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				got := img.RGBAAt(x, y)
				if !near(got.R, want.R) || !near(got.G, want.G) || !near(got.B, want.B) || !near(got.A, want.A) {
					t.Fatalf("width %d: pixel (%d,%d) = %v, want %v", width, x, y, got, want)
				}
			}
		}
	}
}

func TestRowStride(t *testing.T) {
	const tightRow, paddedRow, rows = 8, 16, 2

	// Rows written back to back, tail still holds the marker.
	packed := append([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, markerFill(16)...)
	if got := rowStride(packed, tightRow, paddedRow, rows); got != tightRow {
		t.Errorf("rowStride(packed) = %d, want %d", got, tightRow)
	}

	// Second row lands at the padded offset and overwrites the tail.
	padded := markerFill(32)
	copy(padded[0:], []byte{1, 2, 3, 4, 5, 6, 7, 8})
	copy(padded[16:], []byte{9, 10, 11, 12, 13, 14, 15, 16})
	if got := rowStride(padded, tightRow, paddedRow, rows); got != paddedRow {
		t.Errorf("rowStride(padded) = %d, want %d", got, paddedRow)
	}

	if got := rowStride(make([]byte, 32), 16, 16, rows); got != 16 {
		t.Errorf("rowStride(aligned) = %d, want 16", got)
	}
}
