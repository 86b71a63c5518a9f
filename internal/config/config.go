package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/threebody/internal/integrators"
	"github.com/san-kum/threebody/internal/physics"
	"github.com/san-kum/threebody/internal/scenario"
	"github.com/san-kum/threebody/internal/trail"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 43200.0 // 12 hours
	DefaultScale    = 4e9     // meters per pixel
	DefaultWidth    = 1980
	DefaultHeight   = 980
	DefaultTickRate = 60
	DefaultTicks    = 1000
)

// ErrInvalid indicates a config value outside its valid range.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Scenario      string         `yaml:"scenario"`
	ScenarioFile  string         `yaml:"scenario_file,omitempty"`
	G             float64        `yaml:"g"`
	Dt            float64        `yaml:"dt"`
	Integrator    string         `yaml:"integrator"`
	Scale         float64        `yaml:"scale"`
	MinDistance   float64        `yaml:"min_distance"`
	TrailCapacity int            `yaml:"trail_capacity"`
	Viewport      ViewportConfig `yaml:"viewport"`
	TickRate      int            `yaml:"tick_rate"`
	Ticks         int            `yaml:"ticks"`
}

// ViewportConfig is the screen area trails are projected into.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:      scenario.Default,
		G:             physics.G,
		Dt:            DefaultDt,
		Integrator:    integrators.Default,
		Scale:         DefaultScale,
		MinDistance:   physics.MinDistance,
		TrailCapacity: trail.DefaultCapacity,
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		TickRate: DefaultTickRate,
		Ticks:    DefaultTicks,
	}
}

// Load reads a YAML config over the defaults; keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale must be positive, got %g", ErrInvalid, c.Scale)
	case c.MinDistance < 0:
		return fmt.Errorf("%w: min_distance must not be negative, got %g", ErrInvalid, c.MinDistance)
	case c.TrailCapacity < 1:
		return fmt.Errorf("%w: trail_capacity must be at least 1, got %d", ErrInvalid, c.TrailCapacity)
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport must be positive, got %dx%d", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.TickRate)
	}
	if _, err := integrators.ByName(c.Integrator); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Gravity returns the force model described by c.
func (c *Config) Gravity() *physics.Gravity {
	return &physics.Gravity{G: c.G, MinDistance: c.MinDistance}
}

// NewIntegrator returns a fresh stepper of the kind named by c.
func (c *Config) NewIntegrator() (integrators.Integrator, error) {
	return integrators.ByName(c.Integrator)
}

// Projector returns the trail projection described by c.
func (c *Config) Projector() trail.Projector {
	return trail.Projector{Scale: c.Scale, Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// LoadScenario resolves the scenario named by c: ScenarioFile when set,
// otherwise the registry entry for Scenario.
func (c *Config) LoadScenario() (scenario.Scenario, error) {
	if c.ScenarioFile != "" {
		return scenario.Load(c.ScenarioFile)
	}
	return scenario.Get(c.Scenario)
}
