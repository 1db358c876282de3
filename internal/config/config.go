// Package config loads ls-orrery settings from defaults, an optional TOML
// file, a .env file and ORRERY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/state"
)

// Config is the full application configuration.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Render RenderConfig `toml:"render"`
	Speed  SpeedConfig  `toml:"speed"`
	Bodies BodiesConfig `toml:"bodies"`
	Lights state.Lights `toml:"lights"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

type RenderConfig struct {
	FPS    int    `toml:"fps"`
	Follow string `toml:"follow"`
	Stats  bool   `toml:"stats"`
}

type SpeedConfig struct {
	Factor     float64 `toml:"factor"`
	Multiplier float64 `toml:"multiplier"`
}

type BodiesConfig struct {
	Path string `toml:"path"` // TOML or YAML body table, empty for built-in
}

const (
	DefaultFPS = 30
	MinFPS     = 1
	MaxFPS     = 120
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Render: RenderConfig{FPS: DefaultFPS},
		Speed: SpeedConfig{
			Factor:     anim.DefaultSpeedFactor,
			Multiplier: anim.DefaultMultiplier,
		},
		Lights: state.DefaultLights(),
	}
}

// Load builds the configuration. A missing file at path is not an error;
// an unreadable or malformed one is. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}

	// .env is optional; existing environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	cfg.Normalize()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays ORRERY_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	float := func(key string, dst *float64) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%s: %q is not a finite number", key, v)
		}
		*dst = f
		return nil
	}

	str("ORRERY_LOG_LEVEL", &c.Log.Level)
	str("ORRERY_LOG_FORMAT", &c.Log.Format)
	str("ORRERY_LOG_FILE", &c.Log.File)
	str("ORRERY_BODIES", &c.Bodies.Path)
	str("ORRERY_FOLLOW", &c.Render.Follow)

	if v, ok := lookup("ORRERY_FPS"); ok && v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ORRERY_FPS: %w", err)
		}
		c.Render.FPS = fps
	}
	if v, ok := lookup("ORRERY_STATS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("ORRERY_STATS: %w", err)
		}
		c.Render.Stats = b
	}

	for key, dst := range map[string]*float64{
		"ORRERY_SPEED_FACTOR":     &c.Speed.Factor,
		"ORRERY_SPEED_MULTIPLIER": &c.Speed.Multiplier,
		"ORRERY_LIGHT_POINT":      &c.Lights.Point,
		"ORRERY_LIGHT_AMBIENT":    &c.Lights.Ambient,
		"ORRERY_LIGHT_HEMISPHERE": &c.Lights.Hemisphere,
	} {
		if err := float(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// Normalize clamps values into their supported ranges.
func (c *Config) Normalize() {
	if c.Render.FPS < MinFPS {
		c.Render.FPS = MinFPS
	} else if c.Render.FPS > MaxFPS {
		c.Render.FPS = MaxFPS
	}
	if !(c.Speed.Factor > 0) || math.IsInf(c.Speed.Factor, 0) {
		c.Speed.Factor = anim.DefaultSpeedFactor
	}
	s := c.AnimSpeed()
	c.Speed.Multiplier = s.Multiplier
	c.Lights = c.Lights.Clamped()
}

// AnimSpeed returns the configured speed with the multiplier clamped.
func (c Config) AnimSpeed() anim.Speed {
	s := anim.Speed{Factor: c.Speed.Factor}
	s.SetMultiplier(c.Speed.Multiplier)
	return s
}

// FrameInterval returns the time between frames.
func (c Config) FrameInterval() time.Duration {
	fps := c.Render.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
