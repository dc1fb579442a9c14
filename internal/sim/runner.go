package sim

import (
	"github.com/okalex/rebound"
	"github.com/okalex/rebound/internal/config"
	"github.com/okalex/rebound/internal/trace"
)

// Result bundles the trajectory of a finished run.
type Result struct {
	Samples  []trace.Sample
	Summary  trace.Summary
	Ticks    int
	Settled  bool
	EndValue float64
}

// Run drives a single spring described by cfg with a stepping looper until
// it settles or the tick budget runs out. The returned trajectory has one
// sample per tick.
func Run(cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	looper := rebound.NewSteppingSimulationLooper()
	system := rebound.NewSpringSystem(looper)

	spring := system.CreateSpringWithConfig(cfg.SpringConfig())
	spring.SetOvershootClampingEnabled(cfg.OvershootClamping)
	if cfg.RestSpeedThreshold > 0 {
		spring.SetRestSpeedThreshold(cfg.RestSpeedThreshold)
	}
	if cfg.RestDisplacementThreshold > 0 {
		spring.SetRestDisplacementThreshold(cfg.RestDisplacementThreshold)
	}

	recorder := trace.NewRecorder(cfg.TimestepMillis)
	spring.AddListener(recorder)

	// Stage the full initial state before driving any ticks. A blocking
	// looper would resolve the run inside the first setter.
	spring.SetCurrentValue(cfg.From, false)
	if cfg.Velocity != 0 {
		spring.SetVelocity(cfg.Velocity)
	}
	if cfg.To != cfg.From || cfg.Velocity == 0 {
		spring.SetEndValue(cfg.To)
	}

	ticks := 0
	for ; ticks < cfg.MaxTicks && !system.GetIsIdle(); ticks++ {
		looper.Step(cfg.TimestepMillis)
	}

	return &Result{
		Samples:  recorder.Samples(),
		Summary:  recorder.Summary(),
		Ticks:    ticks,
		Settled:  system.GetIsIdle(),
		EndValue: spring.EndValue(),
	}, nil
}
