// Package config loads scenario files: a list of boards, each with the mode
// to run it in and the budgets for that mode.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"hunt/meta"

	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeSweep    Mode = "sweep"
	ModeSimulate Mode = "simulate"
	ModeCount    Mode = "count"
)

var ValidModes = []Mode{ModeSweep, ModeSimulate, ModeCount}

var ValidLogLevels = []string{"trace", "debug", "info", "warn", "error"}

var ErrNoScenarios = errors.New("config has no scenarios")

type Config struct {
	LogLevel   string     `yaml:"log_level"`
	Goroutines int        `yaml:"goroutines"`
	Scenarios  []Scenario `yaml:"scenarios"`
}

// Scenario is one board run in one mode. Zero budgets fall back to the
// defaults for the mode.
type Scenario struct {
	Name       string `yaml:"name"`
	Board      string `yaml:"board"` // path, relative to the config file
	Mode       Mode   `yaml:"mode"`
	Hops       int    `yaml:"hops,omitempty"`
	Rounds     int    `yaml:"rounds,omitempty"`
	Goroutines int    `yaml:"goroutines,omitempty"`
	Seed       uint64 `yaml:"seed,omitempty"` // shuffles count enumeration when non-zero
}

func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Goroutines: meta.GO_ROUTINES,
	}
}

// Load reads a YAML config. Board paths are resolved against the directory
// holding the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	dir := filepath.Dir(path)
	for i := range cfg.Scenarios {
		if board := cfg.Scenarios[i].Board; board != "" && !filepath.IsAbs(board) {
			cfg.Scenarios[i].Board = filepath.Join(dir, board)
		}
	}

	return cfg, nil
}

func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("HUNT_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

func (c *Config) Validate() error {
	if !slices.Contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.LogLevel, ValidLogLevels)
	}
	if c.Goroutines < 1 {
		return fmt.Errorf("goroutines must be positive, got %d", c.Goroutines)
	}
	if len(c.Scenarios) == 0 {
		return ErrNoScenarios
	}

	names := map[string]bool{}
	for i, s := range c.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario %d has no name", i)
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate scenario name: %s", s.Name)
		}
		names[s.Name] = true

		if s.Board == "" {
			return fmt.Errorf("scenario %s has no board", s.Name)
		}
		if !slices.Contains(ValidModes, s.Mode) {
			return fmt.Errorf("scenario %s has invalid mode: %s (valid: %v)", s.Name, s.Mode, ValidModes)
		}
		if s.Hops < 0 || s.Rounds < 0 || s.Goroutines < 0 {
			return fmt.Errorf("scenario %s has a negative budget", s.Name)
		}
	}

	return nil
}

// WithDefaults fills the zero budgets of s from the mode defaults and the
// config-wide goroutine count.
func (c *Config) WithDefaults(s Scenario) Scenario {
	if s.Hops == 0 {
		switch s.Mode {
		case ModeSweep:
			s.Hops = meta.SWEEP_HOPS
		case ModeSimulate:
			s.Hops = meta.SIMULATE_HOPS
		}
	}
	if s.Rounds == 0 && s.Mode == ModeSimulate {
		s.Rounds = meta.ROUNDS
	}
	if s.Goroutines == 0 && s.Mode == ModeCount {
		s.Goroutines = c.Goroutines
	}
	return s
}
