// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command voxcraft opens the Voxcraft window and clears it every frame.
//
// Usage:
//
//	voxcraft [-config voxcraft.yaml] [-env .env] [-backend vulkan] [-log debug]
//	voxcraft -headless frame.png
//
// Escape or closing the window exits. W, A, S, D and F are traced at debug
// level. With -headless no window is opened: one frame is rendered into an
// offscreen texture and written as PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/voxcraft"
	"github.com/gogpu/voxcraft/backend"
	"github.com/gogpu/voxcraft/host"
	"github.com/gogpu/voxcraft/internal/config"
	"github.com/gogpu/voxcraft/internal/desktop"
	"github.com/gogpu/voxcraft/session"
	"github.com/gogpu/wgpu"

	_ "github.com/gogpu/wgpu/hal/allbackends"
)

func main() {
	start := time.Now()
	code := run()
	fmt.Printf("Elapsed Time: %v\n", time.Since(start).Round(10*time.Microsecond))
	os.Exit(code)
}

func run() int {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		envPath    = flag.String("env", "", ".env file with VOXCRAFT_* variables")
		backendArg = flag.String("backend", "", "graphics backend: "+fmt.Sprint(backend.Available()))
		logLevel   = flag.String("log", "", "log level: debug, info, warn, error")
		gpuLog     = flag.Bool("gpu-log", false, "include GPU stack logs")
		headless   = flag.String("headless", "", "render one frame offscreen and write it to this PNG file")
	)
	flag.Parse()

	cfg, err := config.Load(config.Sources{File: *configPath, DotEnv: *envPath})
	if err == nil {
		err = applyFlags(&cfg, *backendArg, *logLevel, *gpuLog)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "voxcraft: %v\n", err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	voxcraft.SetLogger(logger)
	if cfg.Log.GPU {
		wgpu.SetLogger(logger)
	}

	api, err := backend.Lookup(cfg.Render.Backend)
	if err != nil {
		logger.Error("voxcraft: select backend", "err", err)
		return 1
	}
	opts := []session.Option{
		session.WithAPI(api),
		session.WithPipeline(cfg.Render.Pipeline),
		session.WithMaxFramesInFlight(cfg.Render.FramesInFlight),
		session.WithClearColor(cfg.ClearColor()),
	}

	if *headless != "" {
		err = snapshot(context.Background(), *headless, cfg, opts)
	} else {
		err = window(cfg, opts)
	}
	if err != nil {
		logger.Error("voxcraft: exit", "err", err)
		return 1
	}
	return 0
}

// applyFlags lets command-line flags override the loaded configuration.
func applyFlags(cfg *config.Config, backendName, level string, gpuLog bool) error {
	if backendName != "" {
		cfg.Render.Backend = backendName
	}
	if level != "" {
		cfg.Log.Level = level
	}
	if gpuLog {
		cfg.Log.GPU = true
	}
	return cfg.Validate()
}

func window(cfg config.Config, opts []session.Option) error {
	app := host.NewApp(
		host.NewSessionFactory(opts...),
		host.WithWindowSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err := desktop.NewLoop(app.WindowAttributes()).Run(app); err != nil {
		return err
	}
	voxcraft.Logger().Info("voxcraft: loop finished", "frames", app.Frames())
	return app.Err()
}

func snapshot(ctx context.Context, path string, cfg config.Config, opts []session.Option) error {
	s, err := session.NewHeadless(ctx, cfg.Window.Width, cfg.Window.Height, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.RenderFrame(); err != nil {
		return err
	}
	img, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	voxcraft.Logger().Info("voxcraft: snapshot written", "path", path, "adapter", s.AdapterInfo().Name)
	return nil
}
