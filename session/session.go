// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/voxcraft"
	"github.com/gogpu/voxcraft/input"
	"github.com/gogpu/voxcraft/render"
	"github.com/gogpu/wgpu"
)

// Session is a presentation session bound to one window (or to an
// offscreen texture for headless sessions).
//
// A session either owns its instance, device and surface ([New],
// [NewHeadless]) or borrows the device and per-frame view of a windowing
// library that owns them ([NewShared]).
type Session struct {
	window   Window
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	info     wgpu.AdapterInfo

	// shared is set when device and queue belong to the window's library.
	shared bool

	// rawSurface is set between surface creation and the hand-over to the
	// surface target, which owns it afterwards.
	rawSurface *wgpu.Surface
	surface    surfaceTarget
	offscreen  *render.TextureTarget
	target     render.Target

	pipeline   *render.Pipeline
	router     *input.Router
	pacer      *framePacer
	clearColor gputypes.Color
	maxFrames  int

	frames uint64
	closed bool
}

// New initializes a session for window: instance, surface, adapter,
// device and queue, the surface configuration and, unless disabled, the
// pass-through pipeline. Anything created before a failure is released.
func New(ctx context.Context, window NativeWindow, opts ...Option) (*Session, error) {
	if window == nil {
		return nil, ErrNilWindow
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := newSession(window, &o)
	if err := s.init(ctx, &o, window); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// NewShared initializes a session on the device of a windowing library
// that owns the surface. Frames are drawn into the view the library hands
// out for the frame being drawn and the library presents them. Close
// leaves the borrowed device alive.
func NewShared(ctx context.Context, window SharedWindow, opts ...Option) (*Session, error) {
	if window == nil {
		return nil, ErrNilWindow
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := newSession(window, &o)
	if err := s.initShared(ctx, &o, window); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// NewHeadless initializes a session that renders into an offscreen
// width x height RGBA8 texture instead of a window surface.
func NewHeadless(ctx context.Context, width, height int, opts ...Option) (*Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	win := offscreenWindow{gpucontext.NullWindowProvider{W: width, H: height, SF: 1}}
	s := newSession(win, &o)
	if err := s.initHeadless(ctx, &o, width, height); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func newSession(window Window, o *options) *Session {
	return &Session{
		window:     window,
		router:     input.NewRouter(o.bindings, o.dispatcher),
		pacer:      newFramePacer(o.maxFramesInFlight),
		clearColor: o.clearColor,
		maxFrames:  o.maxFramesInFlight,
	}
}

func (s *Session) init(ctx context.Context, o *options, window NativeWindow) error {
	if err := s.openInstance(ctx, o); err != nil {
		return err
	}

	display, handle, err := window.SurfaceHandles()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceCreation, err)
	}
	s.rawSurface, err = s.instance.CreateSurface(display, handle)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceCreation, err)
	}

	if err := s.openDevice(ctx, o, s.rawSurface); err != nil {
		return err
	}

	w, h := pixelSize(s.window.Size())
	cfg, err := surfaceConfigFor(s.adapter.GetSurfaceCapabilities(s.rawSurface), w, h, o.maxFramesInFlight)
	if err != nil {
		return err
	}
	st, err := render.NewSurfaceTarget(s.device, s.rawSurface, cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceCreation, err)
	}
	s.rawSurface = nil
	s.attach(st)

	if err := s.buildPipeline(ctx, o, cfg.Format); err != nil {
		return err
	}
	voxcraft.Logger().Info("session: ready", "config", describeConfig(cfg))
	return nil
}

func (s *Session) initHeadless(ctx context.Context, o *options, width, height int) error {
	if err := s.openInstance(ctx, o); err != nil {
		return err
	}
	if err := s.openDevice(ctx, o, nil); err != nil {
		return err
	}

	w, h := pixelSize(width, height)
	var err error
	s.offscreen, err = render.NewTextureTarget(s.device, w, h)
	if err != nil {
		return err
	}
	s.attach(s.offscreen)

	if err := s.buildPipeline(ctx, o, s.offscreen.Format()); err != nil {
		return err
	}
	voxcraft.Logger().Info("session: headless ready", "width", w, "height", h)
	return nil
}

func (s *Session) initShared(ctx context.Context, o *options, window SharedWindow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	provider := window.GPUContextProvider()
	if provider == nil {
		return ErrNoDevice
	}
	device, ok := provider.Device().(*wgpu.Device)
	if !ok || device == nil {
		return ErrNoDevice
	}
	s.shared = true
	s.device = device
	s.queue = device.Queue()
	if s.queue == nil {
		return fmt.Errorf("%w: device has no queue", ErrDeviceRequest)
	}

	ai := provider.AdapterInfo()
	s.info.Name = ai.Name
	s.info.DeviceType = deviceType(ai.Type)
	if s.info.DeviceType == gputypes.DeviceTypeCPU && !o.allowSoftware() {
		return fmt.Errorf("%w: %s", ErrSoftwareAdapter, s.info.Name)
	}

	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		return ErrNoSurfaceFormat
	}
	w, h := pixelSize(window.Size())
	s.attach(render.NewViewTarget(window, format, w, h))

	if err := s.buildPipeline(ctx, o, format); err != nil {
		return err
	}
	voxcraft.Logger().Info("session: shared device ready",
		"adapter", ai.Name, "format", format.String(), "width", w, "height", h)
	return nil
}

// attach makes t the render target. Surface-backed targets are also kept
// for reconfiguration.
func (s *Session) attach(t render.Target) {
	s.target = t
	if st, ok := t.(surfaceTarget); ok {
		s.surface = st
	}
}

func (s *Session) openInstance(ctx context.Context, o *options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	inst, err := wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: o.api.Backends})
	if err != nil {
		return fmt.Errorf("%w: create instance: %w", ErrNoAdapter, err)
	}
	s.instance = inst
	return nil
}

// openDevice negotiates a high-performance adapter compatible with surface
// (nil for headless) and requests a device with default features and limits.
func (s *Session) openDevice(ctx context.Context, o *options, surface *wgpu.Surface) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	adapter, err := s.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference:      wgpu.PowerPreferenceHighPerformance,
		ForceFallbackAdapter: o.api.ForceFallback,
		CompatibleSurface:    surface,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}
	s.adapter = adapter
	s.info = adapter.Info()

	if s.info.DeviceType == gputypes.DeviceTypeCPU && !o.allowSoftware() {
		return fmt.Errorf("%w: %s", ErrSoftwareAdapter, s.info.Name)
	}
	voxcraft.Logger().Info("session: adapter selected",
		"name", s.info.Name,
		"type", s.info.DeviceType.String(),
		"backend", s.info.Backend.String(),
		"api", o.api.String(),
	)

	if err := ctx.Err(); err != nil {
		return err
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "voxcraft-device",
		RequiredLimits: wgpu.DefaultLimits(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceRequest, err)
	}
	s.device = device
	s.queue = device.Queue()
	if s.queue == nil {
		return fmt.Errorf("%w: device has no queue", ErrDeviceRequest)
	}
	return nil
}

func (s *Session) buildPipeline(ctx context.Context, o *options, format gputypes.TextureFormat) error {
	if !o.pipeline {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := render.NewPassThroughPipeline(s.device, format, o.shaderSource)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPipeline, err)
	}
	s.pipeline = p
	return nil
}

// HandleKey routes a key event to the input dispatcher. It returns
// input.Stop when the loop should terminate (Escape pressed with the
// default bindings) and input.Continue otherwise.
func (s *Session) HandleKey(key gpucontext.Key, pressed bool) input.Signal {
	return s.router.HandleKey(key, pressed)
}

// RenderFrame renders and presents one frame: the window is asked for
// another redraw, the next texture is acquired, cleared in a single render
// pass, submitted and presented.
//
// ErrFrameSkipped is returned when the target has zero size or no view is
// available. Lost, outdated, timed-out and out-of-memory conditions are
// returned as *SurfaceError. Lost and outdated surfaces are reconfigured
// to the window's current size before returning, so the next call can
// succeed.
func (s *Session) RenderFrame() error {
	if s.closed {
		return ErrClosed
	}
	s.window.RequestRedraw()

	if w, h := s.target.Size(); w == 0 || h == 0 {
		return ErrFrameSkipped
	}
	if s.pacer.wait(s.queue.Poll, func() { s.device.Poll(wgpu.PollWait) }) {
		voxcraft.Logger().Debug("session: waited for frame in flight", "limit", s.maxFrames)
	}

	frame, err := s.target.Acquire()
	if errors.Is(err, render.ErrNoView) {
		return ErrFrameSkipped
	}
	if err != nil {
		return s.frameError("acquire", err)
	}

	cmd, err := render.EncodeClearFrame(s.device, frame.View, s.clearColor, s.pipeline)
	if err != nil {
		s.target.Discard(frame)
		return fmt.Errorf("session: record frame: %w", err)
	}
	idx, err := s.queue.Submit(cmd)
	if err != nil {
		s.target.Discard(frame)
		return s.frameError("submit", err)
	}
	s.pacer.track(idx)

	suboptimal := frame.Suboptimal
	if err := s.target.Present(frame); err != nil {
		return s.frameError("present", err)
	}
	s.frames++

	if suboptimal && s.surface != nil {
		if err := s.reconfigure(); err != nil {
			voxcraft.Logger().Warn("session: reconfigure suboptimal surface", "err", err)
		}
	}
	return nil
}

// frameError classifies a per-frame failure and reconfigures the surface
// when it was lost or outdated.
func (s *Session) frameError(stage string, err error) error {
	se := classifySurfaceError(err)
	if se == nil {
		return fmt.Errorf("session: %s frame: %w", stage, err)
	}
	if se.NeedsReconfigure() && s.surface != nil {
		if rerr := s.reconfigure(); rerr != nil {
			voxcraft.Logger().Warn("session: reconfigure after surface error", "kind", se.Kind.String(), "err", rerr)
		}
	}
	return se
}

// reconfigure matches the surface to the window's current size. The window
// may have been resized without a Resize call reaching the session.
func (s *Session) reconfigure() error {
	w, h := pixelSize(s.window.Size())
	if cw, ch := s.surface.Size(); cw == w && ch == h {
		return s.surface.Reconfigure()
	}
	voxcraft.Logger().Debug("session: surface follows window size", "width", w, "height", h)
	return s.surface.Resize(w, h)
}

// Resize reconfigures the target for a new framebuffer size before the
// next frame is acquired. A zero dimension (minimized window) suspends
// rendering until a non-zero size arrives. Resizing to the current size is
// a no-op.
func (s *Session) Resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	w, h := pixelSize(width, height)
	if cw, ch := s.target.Size(); cw == w && ch == h {
		return nil
	}
	if w == 0 || h == 0 {
		if s.offscreen != nil {
			return nil
		}
		return s.target.Resize(0, 0)
	}
	if err := s.target.Resize(w, h); err != nil {
		return fmt.Errorf("session: resize to %dx%d: %w", w, h, err)
	}
	voxcraft.Logger().Debug("session: resized", "width", w, "height", h)
	return nil
}

// Config returns the active surface configuration. Headless sessions
// report the offscreen texture's size and format.
func (s *Session) Config() render.SurfaceConfig {
	if s.surface != nil {
		return s.surface.Config()
	}
	var cfg render.SurfaceConfig
	if s.target != nil {
		cfg.Width, cfg.Height = s.target.Size()
		cfg.Format = s.target.Format()
	}
	cfg.Usage = gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc
	cfg.MaxFramesInFlight = s.maxFrames
	return cfg
}

// Frames returns the number of frames presented successfully.
func (s *Session) Frames() uint64 { return s.frames }

// HasPipeline reports whether the pass-through pipeline was built.
func (s *Session) HasPipeline() bool { return s.pipeline != nil }

// Snapshot reads back the last rendered frame of a headless session.
func (s *Session) Snapshot(ctx context.Context) (*image.RGBA, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.offscreen == nil {
		return nil, ErrNotHeadless
	}
	return s.offscreen.ReadPixels(ctx)
}

// Close waits for the GPU and releases every resource the session owns.
// Close is idempotent.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true

	if s.device != nil {
		if err := s.device.WaitIdle(); err != nil {
			voxcraft.Logger().Warn("session: wait idle on close", "err", err)
		}
	}
	s.pipeline.Release()
	s.pipeline = nil
	if s.target != nil {
		s.target.Release()
		s.target, s.surface, s.offscreen = nil, nil, nil
	}
	if s.rawSurface != nil {
		s.rawSurface.Release()
		s.rawSurface = nil
	}
	if s.device != nil && !s.shared {
		s.device.Release()
	}
	s.device, s.queue = nil, nil
	if s.adapter != nil {
		s.adapter.Release()
		s.adapter = nil
	}
	if s.instance != nil {
		s.instance.Release()
		s.instance = nil
	}
	voxcraft.Logger().Debug("session: closed", "frames", s.frames)
}
