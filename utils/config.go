package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// PatternRandom seeds the board with random cells instead of a named pattern
const PatternRandom = "random"

// ErrInvalidConfig is the cause of every error returned by Config.Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for the game
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	MaxGenerations      int           `json:"max_generations"`
	Pattern             string        `json:"pattern"`
	RandomDensity       float64       `json:"random_density"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	InjectionCount      int           `json:"injection_count"`
	Incremental         bool          `json:"incremental"`
	Color               bool          `json:"color"`
	Interactive         bool          `json:"interactive"`
}

// DefaultConfig returns the demo defaults: the gun seed on a 100x40 board,
// 1000 generations at 100ms
func DefaultConfig() Config {
	return Config{
		Width:               100,
		Height:              40,
		FrameRate:           100 * time.Millisecond,
		MaxGenerations:      1000,
		Pattern:             "gun",
		RandomDensity:       0.15,
		AutoRestart:         false,
		StagnationThreshold: 5,
		InjectionCount:      3,
		Incremental:         false,
		Color:               false,
		Interactive:         false,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks the values a grid and a game loop can be built from
func (c Config) Validate() error {
	switch {
	case c.Width < 0 || c.Height < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative grid size %dx%d", c.Width, c.Height)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative frame rate %v", c.FrameRate)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative max generations %d", c.MaxGenerations)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random density %v outside [0, 1]", c.RandomDensity)
	case c.StagnationThreshold < 0 || c.InjectionCount < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] negative stagnation threshold or injection count")
	}

	if c.Pattern != PatternRandom {
		if _, err := model.LookupPattern(c.Pattern); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "[Validate] %v", err)
		}
	}
	return nil
}
