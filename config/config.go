package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App     AppConfig     `toml:"app" yaml:"app"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
	Render  RenderConfig  `toml:"render" yaml:"render"`
}

type AppConfig struct {
	Title     string        `toml:"title" yaml:"title"`
	Width     int           `toml:"width" yaml:"width"`
	Height    int           `toml:"height" yaml:"height"`
	TickRate  time.Duration `toml:"tick_rate" yaml:"tick_rate"`
	MaxFrames uint64        `toml:"max_frames" yaml:"max_frames"` // 0 = run until closed
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// MissingCameraPolicy decides what the render system does when no entity carries
// an active camera.
type MissingCameraPolicy string

const (
	MissingCameraSkip MissingCameraPolicy = "skip" // log and draw nothing
	MissingCameraFail MissingCameraPolicy = "fail" // fail the frame
)

type RenderConfig struct {
	MissingCamera MissingCameraPolicy `toml:"missing_camera" yaml:"missing_camera"`
	LineWidth     float32             `toml:"line_width" yaml:"line_width"`
	ClearColor    [4]float32          `toml:"clear_color" yaml:"clear_color"` // RGBA, 0..1
}

// Load reads a config file over the defaults. Files ending in .yaml or .yml are
// decoded as YAML, everything else as TOML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Title:    "carnot",
			Width:    1280,
			Height:   720,
			TickRate: time.Second / 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Render: RenderConfig{
			MissingCamera: MissingCameraSkip,
			LineWidth:     1,
			ClearColor:    [4]float32{0.1, 0.1, 0.12, 1},
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.App.Width <= 0 || c.App.Height <= 0 {
		errs = append(errs, fmt.Errorf("app: window size must be positive, got %dx%d", c.App.Width, c.App.Height))
	}
	if c.App.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("app: tick_rate must be positive, got %s", c.App.TickRate))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown format %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	switch c.Render.MissingCamera {
	case MissingCameraSkip, MissingCameraFail:
	default:
		errs = append(errs, fmt.Errorf("render: unknown missing_camera policy %q", c.Render.MissingCamera))
	}
	if c.Render.LineWidth <= 0 {
		errs = append(errs, fmt.Errorf("render: line_width must be positive, got %g", c.Render.LineWidth))
	}
	for i, channel := range c.Render.ClearColor {
		if channel < 0 || channel > 1 {
			errs = append(errs, fmt.Errorf("render: clear_color[%d] out of range: %g", i, channel))
		}
	}
	return errors.Join(errs...)
}
