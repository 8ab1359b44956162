package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"Paintix/internal/render"
	"Paintix/internal/state"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned for configuration values outside their range.
var ErrInvalid = errors.New("invalid configuration")

// DefaultPalette is the swatch row of the brush panel.
var DefaultPalette = []string{
	"#FFFFFF", "#000000", "#00FFFF", "#FF00FF", "#00FF00",
	"#FFFF00", "#FF0080", "#8000FF", "#FF8000", "#0080FF",
}

type Config struct {
	Canvas  CanvasConfig `toml:"canvas"`
	Brush   BrushConfig  `toml:"brush"`
	Window  WindowConfig `toml:"window"`
	Palette []string     `toml:"palette"`
	Log     LogConfig    `toml:"log"`
	Mirror  MirrorConfig `toml:"mirror"`
}

// CanvasConfig is the logical drawing space.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// BrushConfig holds the tool settings of a fresh canvas.
type BrushConfig struct {
	Tool     string  `toml:"tool"`
	Color    string  `toml:"color"`
	Size     int     `toml:"size"`
	Opacity  float64 `toml:"opacity"`
	Hardness int     `toml:"hardness"`
}

type WindowConfig struct {
	Title  string  `toml:"title"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// MirrorConfig controls the read-only observer server.
type MirrorConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	MDNS     bool   `toml:"mdns"`
	Instance string `toml:"instance"`
}

// Default returns the built-in configuration.
func Default() Config {
	ts := state.DefaultToolSetting()
	return Config{
		Canvas: CanvasConfig{Width: 800, Height: 600},
		Brush: BrushConfig{
			Tool:     string(ts.Tool),
			Color:    ts.Color,
			Size:     ts.BrushSize,
			Opacity:  ts.BrushOpacity,
			Hardness: ts.BrushHardness,
		},
		Window:  WindowConfig{Title: "Paintix", Width: 1100, Height: 760},
		Palette: append([]string(nil), DefaultPalette...),
		Log:     LogConfig{Level: "info"},
		Mirror:  MirrorConfig{Enabled: false, Addr: ":8888", MDNS: true},
	}
}

// Load reads the TOML file at path over the defaults, applies PAINTIX_*
// environment overrides and validates the result. An empty path skips the
// file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Log.Level = getEnv("PAINTIX_LOG_LEVEL", c.Log.Level)
	c.Mirror.Enabled = getEnvAsBool("PAINTIX_MIRROR", c.Mirror.Enabled)
	c.Mirror.Addr = getEnv("PAINTIX_MIRROR_ADDR", c.Mirror.Addr)
	c.Mirror.MDNS = getEnvAsBool("PAINTIX_MDNS", c.Mirror.MDNS)
	c.Mirror.Instance = getEnv("PAINTIX_MDNS_INSTANCE", c.Mirror.Instance)
}

// Validate checks every field against the ranges the store accepts.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %gx%g must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if !state.Tool(c.Brush.Tool).Valid() {
		errs = append(errs, fmt.Errorf("unknown tool %q", c.Brush.Tool))
	}
	if !render.Valid(c.Brush.Color) {
		errs = append(errs, fmt.Errorf("brush colour %q is not a hex colour", c.Brush.Color))
	}
	if c.Brush.Size < state.MinBrushSize || c.Brush.Size > state.MaxBrushSize {
		errs = append(errs, fmt.Errorf("brush size %d outside [%d,%d]", c.Brush.Size, state.MinBrushSize, state.MaxBrushSize))
	}
	if c.Brush.Opacity < state.MinBrushOpacity || c.Brush.Opacity > state.MaxBrushOpacity {
		errs = append(errs, fmt.Errorf("brush opacity %g outside [%g,%g]", c.Brush.Opacity, state.MinBrushOpacity, state.MaxBrushOpacity))
	}
	if c.Brush.Hardness < state.MinBrushHardness || c.Brush.Hardness > state.MaxBrushHardness {
		errs = append(errs, fmt.Errorf("brush hardness %d outside [%d,%d]", c.Brush.Hardness, state.MinBrushHardness, state.MaxBrushHardness))
	}
	for _, sw := range c.Palette {
		if !render.Valid(sw) {
			errs = append(errs, fmt.Errorf("palette colour %q is not a hex colour", sw))
		}
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	if c.Mirror.Enabled && c.Mirror.Addr == "" {
		errs = append(errs, errors.New("mirror enabled without an address"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// ToolSetting converts the brush section into initial store settings.
func (c Config) ToolSetting() state.ToolSetting {
	return state.ToolSetting{
		Tool:          state.Tool(c.Brush.Tool),
		Color:         c.Brush.Color,
		BrushSize:     c.Brush.Size,
		BrushOpacity:  c.Brush.Opacity,
		BrushHardness: c.Brush.Hardness,
	}
}

// LogLevel returns the configured slog level.
func (c Config) LogLevel() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
