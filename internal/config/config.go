// Package config loads simulation settings from YAML and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"sepsim/internal/exclusion"
)

// Config contains every setting the program reads at startup.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Sim     SimConfig     `yaml:"sim"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig describes the torus and its population.
type GridConfig struct {
	// Res is the side length of the torus in cells.
	Res   int `yaml:"res"`
	Count int `yaml:"count"`
	// Layout is "center" or "scatter"; empty means center.
	Layout string `yaml:"layout"`
}

// SimConfig controls stepping.
type SimConfig struct {
	DeltaT        float64 `yaml:"delta_t"`
	StepsPerFrame int     `yaml:"steps_per_frame"`
	// Seed 0 means seed from the clock.
	Seed int64 `yaml:"seed"`
}

// DisplayConfig only affects the window.
type DisplayConfig struct {
	Width     int `yaml:"width"`
	FrameRate int `yaml:"frame_rate"`
}

// LoggingConfig sets the log verbosity: "info", "debug" or "trace".
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the stock configuration: 100 particles on a 25x25 torus,
// drawn in a 600 pixel window at 10 frames per second.
func Default() *Config {
	opts := exclusion.DefaultOptions()
	return &Config{
		Grid: GridConfig{
			Res:    opts.Res,
			Count:  opts.Count,
			Layout: string(opts.Layout),
		},
		Sim: SimConfig{
			DeltaT:        opts.DeltaT,
			StepsPerFrame: opts.StepsPerFrame,
		},
		Display: DisplayConfig{
			Width:     600,
			FrameRate: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load applies defaults, then path if non-empty, then SEP_* environment
// overrides.
func Load(path string) (*Config, error) {
	config := Default()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile reads a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Validate checks ranges that would otherwise fail later.
func (c *Config) Validate() error {
	if c.Grid.Res <= 0 {
		return fmt.Errorf("grid.res must be positive, got %d", c.Grid.Res)
	}
	if c.Grid.Count < 0 {
		return fmt.Errorf("grid.count must be non-negative, got %d", c.Grid.Count)
	}
	switch exclusion.Layout(c.Grid.Layout) {
	case "", exclusion.LayoutCenter, exclusion.LayoutScatter:
	default:
		return fmt.Errorf("invalid grid.layout: %s (valid: center, scatter, or empty for center)", c.Grid.Layout)
	}
	if c.Grid.Layout == string(exclusion.LayoutScatter) && c.Grid.Count > c.Grid.Res*c.Grid.Res {
		return fmt.Errorf("grid.count %d exceeds the %d cells available to scatter", c.Grid.Count, c.Grid.Res*c.Grid.Res)
	}
	if c.Sim.DeltaT <= 0 {
		return fmt.Errorf("sim.delta_t must be positive, got %g", c.Sim.DeltaT)
	}
	if c.Sim.StepsPerFrame < 1 {
		return fmt.Errorf("sim.steps_per_frame must be at least 1, got %d", c.Sim.StepsPerFrame)
	}
	if c.Display.Width < c.Grid.Res {
		return fmt.Errorf("display.width %d is smaller than grid.res %d", c.Display.Width, c.Grid.Res)
	}
	if c.Display.FrameRate <= 0 {
		return fmt.Errorf("display.frame_rate must be positive, got %d", c.Display.FrameRate)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}
	return nil
}

// Options maps the config onto the engine's construction options.
func (c *Config) Options() exclusion.Options {
	return exclusion.Options{
		Res:           c.Grid.Res,
		Count:         c.Grid.Count,
		DeltaT:        c.Sim.DeltaT,
		StepsPerFrame: c.Sim.StepsPerFrame,
		Layout:        exclusion.Layout(c.Grid.Layout),
	}
}

func applyEnvOverrides(config *Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"SEP_RES", &config.Grid.Res},
		{"SEP_COUNT", &config.Grid.Count},
		{"SEP_STEPS_PER_FRAME", &config.Sim.StepsPerFrame},
		{"SEP_FRAME_RATE", &config.Display.FrameRate},
	}
	for _, o := range ints {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", o.name, err)
		}
		*o.dst = n
	}

	if v := os.Getenv("SEP_DELTA_T"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing SEP_DELTA_T: %w", err)
		}
		config.Sim.DeltaT = f
	}
	if v := os.Getenv("SEP_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing SEP_SEED: %w", err)
		}
		config.Sim.Seed = n
	}
	if v := os.Getenv("SEP_LAYOUT"); v != "" {
		config.Grid.Layout = v
	}
	if v := os.Getenv("SEP_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	return nil
}
