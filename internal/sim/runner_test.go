package sim

import (
	"math"
	"testing"

	"github.com/okalex/rebound/internal/config"
)

func TestRunSettles(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tension = 194
	cfg.Friction = 25
	cfg.To = 100

	result, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if !result.Settled {
		t.Fatal("spring did not settle within the tick budget")
	}
	if result.Summary.FinalPosition != 100 {
		t.Errorf("final position: got %v, expected 100", result.Summary.FinalPosition)
	}
	if result.Summary.FinalVelocity != 0 {
		t.Errorf("final velocity: got %v, expected 0", result.Summary.FinalVelocity)
	}
	if len(result.Samples) == 0 {
		t.Error("expected a recorded trajectory")
	}
}

func TestRunCoastingPreset(t *testing.T) {
	cfg := config.GetPreset("coasting")

	result, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if !result.Settled {
		t.Fatal("coasting spring did not settle")
	}
	if result.Summary.FinalPosition <= 0 {
		t.Errorf("coasting spring should drift forward, got %v", result.Summary.FinalPosition)
	}
	if result.EndValue != result.Summary.FinalPosition {
		t.Errorf("resting position %v should become the end value %v",
			result.Summary.FinalPosition, result.EndValue)
	}
}

func TestRunTickBudget(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.To = 100
	cfg.MaxTicks = 3

	result, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if result.Settled {
		t.Error("three ticks must not be enough to settle")
	}
	if result.Ticks != 3 {
		t.Errorf("ticks: got %d, expected 3", result.Ticks)
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.To = math.NaN()

	if _, err := Run(cfg); err == nil {
		t.Error("expected validation error for NaN target")
	}
}

func TestRunOvershootClamping(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tension = 180
	cfg.Friction = 12 // underdamped
	cfg.To = 100
	cfg.OvershootClamping = true

	result, err := Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range result.Samples {
		if s.Position > 100+1e-9 {
			t.Fatalf("sample %v beyond the clamped end value", s.Position)
		}
	}
	if result.Summary.FinalPosition != 100 {
		t.Errorf("final position: got %v, expected exactly 100", result.Summary.FinalPosition)
	}
}
