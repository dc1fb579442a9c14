package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okalex/rebound"
)

const (
	DefaultFrom     = 0.0
	DefaultTo       = 1.0
	DefaultMaxTicks = 10000
)

// Config describes one spring run. The spring constants can be given
// three ways, resolved in order of preference: bounciness/speed, Origami
// tension/friction, then direct tension/friction.
type Config struct {
	Tension         float64 `yaml:"tension"`
	Friction        float64 `yaml:"friction"`
	OrigamiTension  float64 `yaml:"origami_tension"`
	OrigamiFriction float64 `yaml:"origami_friction"`
	Bounciness      float64 `yaml:"bounciness"`
	Speed           float64 `yaml:"speed"`

	From     float64 `yaml:"from"`
	To       float64 `yaml:"to"`
	Velocity float64 `yaml:"velocity"`

	TimestepMillis    float64 `yaml:"timestep_ms"`
	MaxTicks          int     `yaml:"max_ticks"`
	OvershootClamping bool    `yaml:"overshoot_clamping"`

	RestSpeedThreshold        float64 `yaml:"rest_speed_threshold"`
	RestDisplacementThreshold float64 `yaml:"rest_displacement_threshold"`
}

func DefaultConfig() *Config {
	return &Config{
		Tension:        rebound.DefaultOrigamiConfig.Tension,
		Friction:       rebound.DefaultOrigamiConfig.Friction,
		From:           DefaultFrom,
		To:             DefaultTo,
		TimestepMillis: rebound.DefaultSimulationTimestepMillis,
		MaxTicks:       DefaultMaxTicks,
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
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SpringConfig resolves the configured constants into physical tension and
// friction.
func (c *Config) SpringConfig() rebound.Config {
	if c.Bounciness != 0 || c.Speed != 0 {
		return rebound.FromBouncinessAndSpeed(c.Bounciness, c.Speed)
	}
	if c.OrigamiTension != 0 || c.OrigamiFriction != 0 {
		return rebound.FromOrigamiTensionAndFriction(c.OrigamiTension, c.OrigamiFriction)
	}
	return rebound.Config{Tension: c.Tension, Friction: c.Friction}
}

// Validate rejects values the integrator cannot handle before they poison a
// run.
func (c *Config) Validate() error {
	for name, v := range map[string]float64{
		"tension":          c.Tension,
		"friction":         c.Friction,
		"origami_tension":  c.OrigamiTension,
		"origami_friction": c.OrigamiFriction,
		"bounciness":       c.Bounciness,
		"speed":            c.Speed,
		"from":             c.From,
		"to":               c.To,
		"velocity":         c.Velocity,
		"timestep_ms":      c.TimestepMillis,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("config: %s must be finite, got %v", name, v)
		}
	}
	if c.TimestepMillis <= 0 {
		return fmt.Errorf("config: timestep_ms must be positive, got %v", c.TimestepMillis)
	}
	if c.MaxTicks <= 0 {
		return fmt.Errorf("config: max_ticks must be positive, got %d", c.MaxTicks)
	}
	return nil
}
