// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the application configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// variables from an optional .env file, then the process environment.
// Later layers win.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/voxcraft/backend"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvBackend        = "VOXCRAFT_BACKEND"
	EnvLogLevel       = "VOXCRAFT_LOG_LEVEL"
	EnvWidth          = "VOXCRAFT_WIDTH"
	EnvHeight         = "VOXCRAFT_HEIGHT"
	EnvPipeline       = "VOXCRAFT_PIPELINE"
	EnvFramesInFlight = "VOXCRAFT_FRAMES_IN_FLIGHT"
)

// MaxFramesInFlight is the largest accepted frames-in-flight value.
const MaxFramesInFlight = 3

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config is the application configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// WindowConfig describes the main window.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RenderConfig describes the presentation session.
type RenderConfig struct {
	// Backend is a backend registry name: auto, vulkan, metal, dx12, gl or
	// software.
	Backend        string     `yaml:"backend"`
	Pipeline       bool       `yaml:"pipeline"`
	FramesInFlight int        `yaml:"frames_in_flight"`
	ClearColor     [4]float64 `yaml:"clear_color"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
	// GPU also routes the GPU stack's internal logs to the application logger.
	GPU bool `yaml:"gpu"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720},
		Render: RenderConfig{
			Backend:        backend.NameAuto,
			Pipeline:       true,
			FramesInFlight: 2,
			ClearColor:     [4]float64{0.2, 0.2, 0.3, 1.0},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Sources names the optional files Load reads. Empty paths are skipped.
type Sources struct {
	File   string
	DotEnv string
}

// Load builds the configuration from defaults, src and the process
// environment, and validates the result.
func Load(src Sources) (Config, error) {
	cfg := Default()
	if src.File != "" {
		if err := cfg.LoadFile(src.File); err != nil {
			return cfg, err
		}
	}

	lookup := os.LookupEnv
	if src.DotEnv != "" {
		vars, err := godotenv.Read(src.DotEnv)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", src.DotEnv, err)
		}
		lookup = layered(os.LookupEnv, vars)
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// layered looks keys up in env first and falls back to vars.
func layered(env func(string) (string, bool), vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := env(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}
}

// LoadFile overlays the YAML file at path. Unknown keys are errors.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Decode(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Decode overlays YAML read from r.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overlays the VOXCRAFT_* variables reported by lookup. When
// VOXCRAFT_BACKEND is unset, a non-empty GOGPU_GRAPHICS_API selects the
// backend instead.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBackend); ok {
		c.Render.Backend = strings.TrimSpace(v)
	} else if v, ok := lookup(backend.EnvGraphicsAPI); ok && strings.TrimSpace(v) != "" {
		c.Render.Backend = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = strings.TrimSpace(v)
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvWidth, &c.Window.Width},
		{EnvHeight, &c.Window.Height},
		{EnvFramesInFlight, &c.Render.FramesInFlight},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, e.key, v, err)
		}
		*e.dst = n
	}

	if v, ok := lookup(EnvPipeline); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", ErrInvalid, EnvPipeline, v, err)
		}
		c.Render.Pipeline = b
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if n := c.Render.FramesInFlight; n < 1 || n > MaxFramesInFlight {
		return fmt.Errorf("%w: frames_in_flight %d not in 1..%d", ErrInvalid, n, MaxFramesInFlight)
	}
	if _, err := backend.Lookup(c.Render.Backend); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: clear_color[%d] = %v not in [0, 1]", ErrInvalid, i, v)
		}
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ClearColor returns the clear color as a GPU color.
func (c *Config) ClearColor() gputypes.Color {
	cc := c.Render.ClearColor
	return gputypes.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}
}

// LogLevel returns the configured slog level. It assumes Validate passed
// and falls back to Info otherwise.
func (c *Config) LogLevel() slog.Level {
	l, err := ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// ParseLevel parses debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalid, s)
	}
	return l, nil
}
