// Package config loads and validates simulation configuration files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/flapsim/internal/body"
	"github.com/san-kum/flapsim/internal/kinematics"
	"github.com/san-kum/flapsim/internal/schedule"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 10.0
	DefaultMaxSteps = 100000

	DefaultVizInterval        = 100
	DefaultRestartInterval    = 500
	DefaultDiagnosticInterval = 50
)

// Body kinds understood by BuildRegistry.
const (
	KindFlappingFoil   = "flapping_foil"
	KindFlappingFoil3D = "flapping_foil_3d"
	KindUndulator      = "undulator"
)

type Config struct {
	Duration float64      `yaml:"duration"`
	Dt       float64      `yaml:"dt"`
	MaxSteps int          `yaml:"max_steps"`
	Dumps    DumpConfig   `yaml:"dumps"`
	Bodies   []BodyConfig `yaml:"bodies"`
}

type DumpConfig struct {
	VizInterval        int `yaml:"viz_interval"`
	RestartInterval    int `yaml:"restart_interval"`
	DiagnosticInterval int `yaml:"diagnostic_interval"`
}

// BodyConfig is one immersed body. All keys other than name and kind are
// passed through to the kinematics constructor as a flat parameter lookup,
// so each motion variant validates its own required keys.
type BodyConfig struct {
	Name   string             `yaml:"name"`
	Kind   string             `yaml:"kind"`
	Params map[string]float64 `yaml:",inline"`
}

func DefaultConfig() *Config {
	return &Config{
		Duration: DefaultDuration,
		Dt:       DefaultDt,
		MaxSteps: DefaultMaxSteps,
		Dumps: DumpConfig{
			VizInterval:        DefaultVizInterval,
			RestartInterval:    DefaultRestartInterval,
			DiagnosticInterval: DefaultDiagnosticInterval,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

// Validate checks run-level settings. Per-body required keys are checked
// by the kinematics constructors in BuildRegistry.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %g", c.Duration)
	}
	if len(c.Bodies) == 0 {
		return fmt.Errorf("config: at least one body is required")
	}
	for i, b := range c.Bodies {
		if b.Name == "" {
			return fmt.Errorf("config: body %d has no name", i)
		}
	}
	return nil
}

// Plan returns the dump schedule configured for this run.
func (c *Config) Plan() schedule.Plan {
	return schedule.Plan{
		VizInterval:        c.Dumps.VizInterval,
		RestartInterval:    c.Dumps.RestartInterval,
		DiagnosticInterval: c.Dumps.DiagnosticInterval,
	}
}

// BuildRegistry constructs every configured body. A missing required
// kinematics key surfaces as a *kinematics.ConfigError; construction is
// all-or-nothing.
func (c *Config) BuildRegistry() (*body.Registry, error) {
	reg := body.NewRegistry()
	for _, b := range c.Bodies {
		m, err := buildBody(b)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func buildBody(b BodyConfig) (kinematics.Model, error) {
	db := kinematics.ParamSet(b.Params)
	switch b.Kind {
	case KindFlappingFoil, "":
		return kinematics.NewFlappingFoil(b.Name, db)
	case KindFlappingFoil3D:
		return kinematics.NewFlappingFoil3D(b.Name, db)
	case KindUndulator:
		return kinematics.NewUndulator(b.Name, db)
	default:
		return nil, fmt.Errorf("config: body %q: unknown kind %q", b.Name, b.Kind)
	}
}
