package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/voxcraft/backend"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("window = %dx%d, want 1280x720", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Render.Pipeline || cfg.Render.FramesInFlight != 2 || cfg.Render.Backend != "auto" {
		t.Errorf("render = %+v", cfg.Render)
	}
	want := gputypes.Color{R: 0.2, G: 0.2, B: 0.3, A: 1}
	if got := cfg.ClearColor(); got != want {
		t.Errorf("ClearColor() = %v, want %v", got, want)
	}
	if cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("LogLevel() = %v, want INFO", cfg.LogLevel())
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg := Default()
	err := cfg.Decode(strings.NewReader(`
window:
  width: 800
render:
  backend: vulkan
  pipeline: false
log:
  level: debug
`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 720 {
		t.Errorf("window = %dx%d, want 800x720", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Render.Backend != "vulkan" || cfg.Render.Pipeline || cfg.Render.FramesInFlight != 2 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, want DEBUG", cfg.LogLevel())
	}
}

func TestDecodeEmpty(t *testing.T) {
	cfg := Default()
	if err := cfg.Decode(strings.NewReader("")); err != nil {
		t.Errorf("Decode(empty) error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Decode(empty) changed the config: %+v", cfg)
	}
}

func TestDecodeUnknownField(t *testing.T) {
	cfg := Default()
	if err := cfg.Decode(strings.NewReader("window:\n  depth: 3\n")); err == nil {
		t.Error("Decode() accepted an unknown field")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvBackend:        "software",
		EnvLogLevel:       "warn",
		EnvWidth:          " 640 ",
		EnvHeight:         "480",
		EnvPipeline:       "false",
		EnvFramesInFlight: "3",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Render.Backend != "software" || cfg.Log.Level != "warn" {
		t.Errorf("backend = %q, level = %q", cfg.Render.Backend, cfg.Log.Level)
	}
	if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("window = %dx%d, want 640x480", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Render.Pipeline || cfg.Render.FramesInFlight != 3 {
		t.Errorf("render = %+v", cfg.Render)
	}
}

func TestApplyEnvGraphicsAPIFallback(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"gogpu only", map[string]string{backend.EnvGraphicsAPI: " gl "}, "gl"},
		{"voxcraft wins", map[string]string{EnvBackend: "vulkan", backend.EnvGraphicsAPI: "gl"}, "vulkan"},
		{"empty ignored", map[string]string{backend.EnvGraphicsAPI: ""}, backend.NameAuto},
		{"neither", map[string]string{}, backend.NameAuto},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.ApplyEnv(envMap(tt.env)); err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			if cfg.Render.Backend != tt.want {
				t.Errorf("Render.Backend = %q, want %q", cfg.Render.Backend, tt.want)
			}
		})
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	for _, env := range []map[string]string{
		{EnvWidth: "wide"},
		{EnvFramesInFlight: "2.5"},
		{EnvPipeline: "maybe"},
	} {
		cfg := Default()
		if err := cfg.ApplyEnv(envMap(env)); !errors.Is(err, ErrInvalid) {
			t.Errorf("ApplyEnv(%v) error = %v, want ErrInvalid", env, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"no frames", func(c *Config) { c.Render.FramesInFlight = 0 }},
		{"too many frames", func(c *Config) { c.Render.FramesInFlight = MaxFramesInFlight + 1 }},
		{"unknown backend", func(c *Config) { c.Render.Backend = "glide" }},
		{"clear color", func(c *Config) { c.Render.ClearColor[2] = 1.5 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestLoadLayers(t *testing.T) {
	file := writeFile(t, "voxcraft.yaml", "window:\n  width: 1024\n  height: 768\nrender:\n  frames_in_flight: 1\n")
	dotenv := writeFile(t, ".env", "VOXCRAFT_WIDTH=900\nVOXCRAFT_LOG_LEVEL=debug\n")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(Sources{File: file, DotEnv: dotenv})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Window.Width != 900 {
		t.Errorf("Width = %d, want 900 from .env", cfg.Window.Width)
	}
	if cfg.Window.Height != 768 {
		t.Errorf("Height = %d, want 768 from the file", cfg.Window.Height)
	}
	if cfg.Render.FramesInFlight != 1 {
		t.Errorf("FramesInFlight = %d, want 1", cfg.Render.FramesInFlight)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want the process environment to win", cfg.Log.Level)
	}
}

func TestLoadMissingFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := Load(Sources{File: missing}); err == nil {
		t.Error("Load() with a missing config file succeeded")
	}
	if _, err := Load(Sources{DotEnv: missing}); err == nil {
		t.Error("Load() with a missing .env file succeeded")
	}
}

func TestLoadValidates(t *testing.T) {
	t.Setenv(EnvFramesInFlight, "7")
	if _, err := Load(Sources{}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}
