// Package config holds the game's tuning knobs, optionally overridden
// from a YAML file. The board dimensions are deliberately not here; the
// engine is fixed at 20x10.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// TileSize is the on-screen edge length of one board cell in pixels.
	TileSize int `yaml:"tileSize"`

	// Gravity speed curve: interval starts at StartSpeedMs, loses
	// SpeedStepMs per level and never drops below MinSpeedMs.
	StartSpeedMs int `yaml:"startSpeedMs"`
	SpeedStepMs  int `yaml:"speedStepMs"`
	MinSpeedMs   int `yaml:"minSpeedMs"`

	// KeyRepeatTicks is how many ticks a horizontal key must be held
	// before it starts auto-repeating.
	KeyRepeatTicks int `yaml:"keyRepeatTicks"`

	// Audio toggles the synth sound cues.
	Audio bool `yaml:"audio"`

	// Seed for piece generation; 0 means seed from the clock.
	Seed int64 `yaml:"seed"`
}

func Default() Config {
	return Config{
		TileSize:       32,
		StartSpeedMs:   900,
		SpeedStepMs:    70,
		MinSpeedMs:     90,
		KeyRepeatTicks: 10,
		Audio:          true,
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error: the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	bs, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.TileSize < 8 {
		return fmt.Errorf("tileSize %d too small", c.TileSize)
	}
	if c.MinSpeedMs <= 0 || c.StartSpeedMs < c.MinSpeedMs {
		return fmt.Errorf("speed curve %d..%d ms is not descending", c.StartSpeedMs, c.MinSpeedMs)
	}
	if c.SpeedStepMs < 0 {
		return fmt.Errorf("speedStepMs must not be negative")
	}
	return nil
}
