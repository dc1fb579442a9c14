package trace

import (
	"math"

	"github.com/okalex/rebound"
)

// Sample is one observed spring state, timestamped in simulated
// milliseconds since the recording started.
type Sample struct {
	TimeMillis float64
	Position   float64
	Velocity   float64
}

// Recorder is a spring listener that captures the motion trajectory of a
// single spring. It assumes the host drives the system at a fixed timestep
// and timestamps samples accordingly.
type Recorder struct {
	rebound.NoopSpringListener

	timestepMillis float64
	samples        []Sample
	settledAtTick  int
	peakOvershoot  float64
}

func NewRecorder(timestepMillis float64) *Recorder {
	return &Recorder{
		timestepMillis: timestepMillis,
		settledAtTick:  -1,
	}
}

func (r *Recorder) OnSpringUpdate(s *rebound.Spring) {
	r.samples = append(r.samples, Sample{
		TimeMillis: float64(len(r.samples)) * r.timestepMillis,
		Position:   s.CurrentValue(),
		Velocity:   s.Velocity(),
	})
	if s.IsOvershooting() {
		overshoot := math.Abs(s.CurrentValue() - s.EndValue())
		if overshoot > r.peakOvershoot {
			r.peakOvershoot = overshoot
		}
	}
}

func (r *Recorder) OnSpringAtRest(s *rebound.Spring) {
	if r.settledAtTick == -1 {
		r.settledAtTick = len(r.samples)
	}
}

func (r *Recorder) OnSpringActivate(s *rebound.Spring) {
	r.settledAtTick = -1
}

func (r *Recorder) Samples() []Sample { return r.samples }

// Positions flattens the trajectory for plotting.
func (r *Recorder) Positions() []float64 {
	positions := make([]float64, len(r.samples))
	for i, s := range r.samples {
		positions[i] = s.Position
	}
	return positions
}

// Summary describes a finished recording.
type Summary struct {
	Ticks              int     `json:"ticks"`
	SettledAtTick      int     `json:"settled_at_tick"`
	SettlingTimeMillis float64 `json:"settling_time_millis"`
	PeakOvershoot      float64 `json:"peak_overshoot"`
	FinalPosition      float64 `json:"final_position"`
	FinalVelocity      float64 `json:"final_velocity"`
}

func (r *Recorder) Summary() Summary {
	sum := Summary{
		Ticks:         len(r.samples),
		SettledAtTick: r.settledAtTick,
		PeakOvershoot: r.peakOvershoot,
	}
	if r.settledAtTick != -1 {
		sum.SettlingTimeMillis = float64(r.settledAtTick) * r.timestepMillis
	}
	if n := len(r.samples); n > 0 {
		sum.FinalPosition = r.samples[n-1].Position
		sum.FinalVelocity = r.samples[n-1].Velocity
	}
	return sum
}
