package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	RendererText   = "text"
	RendererTerm   = "term"
	RendererWindow = "window"

	PatternRandom   = "random"
	PatternGlider   = "glider"
	PatternBlock    = "block"
	PatternBlinker  = "blinker"
	PatternShowcase = "showcase"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the simulation
type Config struct {
	Rows                    int     `json:"rows" toml:"rows" yaml:"rows"`
	Cols                    int     `json:"cols" toml:"cols" yaml:"cols"`
	CellPixelSize           int     `json:"cell_pixel_size" toml:"cell_pixel_size" yaml:"cell_pixel_size"`
	InitialAliveProbability float64 `json:"initial_alive_probability" toml:"initial_alive_probability" yaml:"initial_alive_probability"`
	TickIntervalMs          int     `json:"tick_interval_ms" toml:"tick_interval_ms" yaml:"tick_interval_ms"`

	Workers             int    `json:"workers" toml:"workers" yaml:"workers"`
	Seed                int64  `json:"seed" toml:"seed" yaml:"seed"`
	Pattern             string `json:"pattern" toml:"pattern" yaml:"pattern"`
	Renderer            string `json:"renderer" toml:"renderer" yaml:"renderer"`
	MaxGenerations      int    `json:"max_generations" toml:"max_generations" yaml:"max_generations"`
	AutoRestart         bool   `json:"auto_restart" toml:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int    `json:"stagnation_threshold" toml:"stagnation_threshold" yaml:"stagnation_threshold"`
	LogLevel            string `json:"log_level" toml:"log_level" yaml:"log_level"`
	LogFile             string `json:"log_file" toml:"log_file" yaml:"log_file"`
}

// DefaultConfig returns a 70x70 board of 10px cells, half alive, ticking at ~30 FPS
func DefaultConfig() Config {
	return Config{
		Rows:                    70,
		Cols:                    70,
		CellPixelSize:           10,
		InitialAliveProbability: 0.5,
		TickIntervalMs:          33,
		Workers:                 1,
		Pattern:                 PatternRandom,
		Renderer:                RendererText,
		StagnationThreshold:     5,
		LogLevel:                "info",
	}
}

// TickInterval returns the configured interval between ticks
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// Validate reports the first out-of-range field
func (c Config) Validate() error {
	switch {
	case c.Rows <= 0 || c.Cols <= 0:
		return errors.Wrapf(ErrInvalidConfig, "board must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	case c.CellPixelSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "cell_pixel_size must be positive, got %d", c.CellPixelSize)
	case c.InitialAliveProbability < 0 || c.InitialAliveProbability > 1:
		return errors.Wrapf(ErrInvalidConfig, "initial_alive_probability must be within [0, 1], got %v", c.InitialAliveProbability)
	case c.TickIntervalMs <= 0:
		return errors.Wrapf(ErrInvalidConfig, "tick_interval_ms must be positive, got %d", c.TickIntervalMs)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_generations must not be negative, got %d", c.MaxGenerations)
	case c.StagnationThreshold <= 0:
		return errors.Wrapf(ErrInvalidConfig, "stagnation_threshold must be positive, got %d", c.StagnationThreshold)
	}

	switch c.Pattern {
	case PatternRandom, PatternGlider, PatternBlock, PatternBlinker, PatternShowcase:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown pattern %q", c.Pattern)
	}

	switch c.Renderer {
	case RendererText, RendererTerm, RendererWindow:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown renderer %q", c.Renderer)
	}

	return nil
}

// LoadConfig loads configuration from a JSON, TOML or YAML file, chosen by extension.
// Fields missing from the file keep their defaults.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".toml":
		err = toml.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return config, errors.Errorf("[LoadConfig] unsupported config format %q: %+v", ext, filename)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}
