package config

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/okalex/rebound"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Tension != rebound.DefaultOrigamiConfig.Tension {
		t.Errorf("tension: got %v, expected %v", cfg.Tension, rebound.DefaultOrigamiConfig.Tension)
	}
	if cfg.TimestepMillis != rebound.DefaultSimulationTimestepMillis {
		t.Errorf("timestep: got %v, expected %v", cfg.TimestepMillis, rebound.DefaultSimulationTimestepMillis)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestSpringConfigResolution(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected rebound.Config
	}{
		{
			"direct",
			Config{Tension: 194, Friction: 25},
			rebound.Config{Tension: 194, Friction: 25},
		},
		{
			"origami wins over direct",
			Config{Tension: 999, Friction: 999, OrigamiTension: 40, OrigamiFriction: 7},
			rebound.FromOrigamiTensionAndFriction(40, 7),
		},
		{
			"bounciness wins over origami",
			Config{OrigamiTension: 40, OrigamiFriction: 7, Bounciness: 20, Speed: 12},
			rebound.FromBouncinessAndSpeed(20, 12),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.SpringConfig(); got != tt.expected {
				t.Errorf("got %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestValidateRejectsNonFinite(t *testing.T) {
	cfg := DefaultConfig()
	cfg.To = math.NaN()
	if err := cfg.Validate(); err == nil {
		t.Error("NaN target must fail validation")
	}

	cfg = DefaultConfig()
	cfg.Velocity = math.Inf(1)
	if err := cfg.Validate(); err == nil {
		t.Error("infinite velocity must fail validation")
	}

	cfg = DefaultConfig()
	cfg.TimestepMillis = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero timestep must fail validation")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	saved := DefaultConfig()
	saved.Tension = 120
	saved.Friction = 14
	saved.To = 5
	if err := Save(path, saved); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tension != 120 || cfg.Friction != 14 || cfg.To != 5 {
		t.Errorf("loaded values not applied: %+v", cfg)
	}
	if cfg.MaxTicks != DefaultMaxTicks {
		t.Errorf("max ticks: got %d, expected %d", cfg.MaxTicks, DefaultMaxTicks)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %q listed but not gettable", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}

	if GetPreset("no_such_preset") != nil {
		t.Error("unknown preset must return nil")
	}

	coasting := GetPreset("coasting")
	if sc := coasting.SpringConfig(); sc.Tension != 0 {
		t.Errorf("coasting preset must have zero tension, got %v", sc.Tension)
	}
}
