package rebound

import "math"

const (
	// SolverTimestepSec is the fixed integration step consumed by the
	// Runge-Kutta solver.
	SolverTimestepSec = 0.001
	// MaxDeltaTimeSec bounds the per-tick integration error after long host
	// pauses (e.g. a backgrounded tab).
	MaxDeltaTimeSec = 0.064

	defaultRestSpeedThreshold        = 0.001
	defaultRestDisplacementThreshold = 0.001
)

// PhysicsState is a position/velocity pair.
type PhysicsState struct {
	Position float64
	Velocity float64
}

// Spring is one damped harmonic oscillator. Springs are created through a
// [SpringSystem] and owned by it for their whole lifetime.
type Spring struct {
	id     SpringID
	system *SpringSystem
	config Config

	current  PhysicsState
	previous PhysicsState
	temp     PhysicsState

	startValue      float64
	endValue        float64
	timeAccumulator float64

	restSpeedThreshold        float64
	restDisplacementThreshold float64
	overshootClampingEnabled  bool
	wasAtRest                 bool

	listeners []SpringListener
}

func newSpring(system *SpringSystem, config Config) *Spring {
	return &Spring{
		system:                    system,
		config:                    config,
		restSpeedThreshold:        defaultRestSpeedThreshold,
		restDisplacementThreshold: defaultRestDisplacementThreshold,
		wasAtRest:                 true,
	}
}

// ID returns the spring's system-assigned identifier. It never changes and
// is never reused after [Spring.Destroy].
func (s *Spring) ID() SpringID { return s.id }

func (s *Spring) Config() Config { return s.config }

func (s *Spring) SetConfig(config Config) *Spring {
	s.config = config
	return s
}

// SetCurrentValue repositions the spring. Unless skipSetAtRest is true the
// spring is also put at rest at the new value. Listeners receive an update
// notification synchronously; the spring is not activated.
func (s *Spring) SetCurrentValue(value float64, skipSetAtRest bool) *Spring {
	s.startValue = value
	s.current.Position = value
	if !skipSetAtRest {
		s.SetAtRest()
	}
	s.notifyPositionUpdated(false, false)
	return s
}

func (s *Spring) CurrentValue() float64 { return s.current.Position }

func (s *Spring) StartValue() float64 { return s.startValue }

func (s *Spring) EndValue() float64 { return s.endValue }

// SetEndValue retargets the spring and activates it in the owning system,
// restarting the scheduler if the system was idle. Setting the current end
// value on a spring at rest is a no-op.
func (s *Spring) SetEndValue(value float64) *Spring {
	if s.endValue == value && s.IsAtRest() {
		return s
	}
	s.startValue = s.CurrentValue()
	s.endValue = value
	s.system.ActivateSpring(s.id)
	for _, l := range s.listeners {
		l.OnSpringEndStateChange(s)
	}
	return s
}

func (s *Spring) Velocity() float64 { return s.current.Velocity }

// SetVelocity changes the spring's velocity and activates it. Setting the
// current velocity again is a no-op.
func (s *Spring) SetVelocity(velocity float64) *Spring {
	if velocity == s.current.Velocity {
		return s
	}
	s.current.Velocity = velocity
	s.system.ActivateSpring(s.id)
	return s
}

func (s *Spring) RestSpeedThreshold() float64 { return s.restSpeedThreshold }

func (s *Spring) SetRestSpeedThreshold(t float64) *Spring {
	s.restSpeedThreshold = t
	return s
}

func (s *Spring) RestDisplacementThreshold() float64 { return s.restDisplacementThreshold }

func (s *Spring) SetRestDisplacementThreshold(t float64) *Spring {
	s.restDisplacementThreshold = t
	return s
}

func (s *Spring) IsOvershootClampingEnabled() bool { return s.overshootClampingEnabled }

// SetOvershootClampingEnabled makes the spring snap to its end value as soon
// as it crosses it, instead of oscillating through.
func (s *Spring) SetOvershootClampingEnabled(enabled bool) *Spring {
	s.overshootClampingEnabled = enabled
	return s
}

// SetAtRest pins the end value to the current position and zeroes velocity.
func (s *Spring) SetAtRest() *Spring {
	s.endValue = s.current.Position
	s.temp.Position = s.current.Position
	s.current.Velocity = 0
	return s
}

// IsAtRest reports whether velocity and displacement from the end value are
// both below their thresholds. A zero-tension spring rests on velocity alone.
func (s *Spring) IsAtRest() bool {
	return math.Abs(s.current.Velocity) < s.restSpeedThreshold &&
		(s.displacementFrom(s.current) <= s.restDisplacementThreshold || s.config.Tension == 0)
}

// WasAtRest reports the rest state observed at the end of the previous
// advance.
func (s *Spring) WasAtRest() bool { return s.wasAtRest }

// IsOvershooting reports whether the current value has crossed the end value
// relative to the direction of travel. Always false for coasting springs.
func (s *Spring) IsOvershooting() bool {
	v := s.CurrentValue()
	return s.config.Tension > 0 &&
		((s.startValue < s.endValue && v > s.endValue) ||
			(s.startValue > s.endValue && v < s.endValue))
}

// SystemShouldAdvance keeps the spring in the active set for one extra tick
// past settling so the exact end value is emitted once.
func (s *Spring) SystemShouldAdvance() bool {
	return !s.IsAtRest() || !s.wasAtRest
}

func (s *Spring) displacementFrom(state PhysicsState) float64 {
	return math.Abs(s.endValue - state.Position)
}

// advance consumes realDeltaTime seconds of simulated time in fixed
// Runge-Kutta steps, interpolating any sub-step remainder into the displayed
// state. The remainder is retained in the accumulator across ticks.
func (s *Spring) advance(time, realDeltaTime float64) {
	isAtRest := s.IsAtRest()
	if isAtRest && s.wasAtRest {
		return
	}

	adjustedDeltaTime := realDeltaTime
	if adjustedDeltaTime > MaxDeltaTimeSec {
		adjustedDeltaTime = MaxDeltaTimeSec
	}
	s.timeAccumulator += adjustedDeltaTime

	tension := s.config.Tension
	friction := s.config.Friction
	position := s.current.Position
	velocity := s.current.Velocity
	tempPosition := s.temp.Position
	tempVelocity := s.temp.Velocity

	var aVelocity, aAcceleration float64
	var bVelocity, bAcceleration float64
	var cVelocity, cAcceleration float64
	var dVelocity, dAcceleration float64

	for s.timeAccumulator >= SolverTimestepSec {
		s.timeAccumulator -= SolverTimestepSec

		// The step that drains the accumulator below one timestep keeps
		// its pre-step state for sub-frame interpolation.
		if s.timeAccumulator < SolverTimestepSec {
			s.previous.Position = position
			s.previous.Velocity = velocity
		}

		aVelocity = velocity
		aAcceleration = tension*(s.endValue-tempPosition) - friction*velocity

		tempPosition = position + aVelocity*SolverTimestepSec*0.5
		tempVelocity = velocity + aAcceleration*SolverTimestepSec*0.5
		bVelocity = tempVelocity
		bAcceleration = tension*(s.endValue-tempPosition) - friction*tempVelocity

		tempPosition = position + bVelocity*SolverTimestepSec*0.5
		tempVelocity = velocity + bAcceleration*SolverTimestepSec*0.5
		cVelocity = tempVelocity
		cAcceleration = tension*(s.endValue-tempPosition) - friction*tempVelocity

		tempPosition = position + cVelocity*SolverTimestepSec
		tempVelocity = velocity + cAcceleration*SolverTimestepSec
		dVelocity = tempVelocity
		dAcceleration = tension*(s.endValue-tempPosition) - friction*tempVelocity

		dxdt := (aVelocity + 2*(bVelocity+cVelocity) + dVelocity) / 6.0
		dvdt := (aAcceleration + 2*(bAcceleration+cAcceleration) + dAcceleration) / 6.0

		position += dxdt * SolverTimestepSec
		velocity += dvdt * SolverTimestepSec
	}

	s.temp.Position = tempPosition
	s.temp.Velocity = tempVelocity

	s.current.Position = position
	s.current.Velocity = velocity

	if s.timeAccumulator > 0 {
		s.interpolate(s.timeAccumulator / SolverTimestepSec)
	}

	if s.IsAtRest() || (s.overshootClampingEnabled && s.IsOvershooting()) {
		if tension > 0 {
			s.startValue = s.endValue
			s.current.Position = s.endValue
		} else {
			// Coasting spring: the resting position becomes the target.
			s.endValue = s.current.Position
			s.startValue = s.endValue
		}
		s.SetVelocity(0)
		isAtRest = true
	}

	notifyActivate := false
	if s.wasAtRest {
		s.wasAtRest = false
		notifyActivate = true
	}
	notifyAtRest := false
	if isAtRest {
		s.wasAtRest = true
		notifyAtRest = true
	}
	s.notifyPositionUpdated(notifyActivate, notifyAtRest)
}

func (s *Spring) interpolate(alpha float64) {
	s.current.Position = s.current.Position*alpha + s.previous.Position*(1-alpha)
	s.current.Velocity = s.current.Velocity*alpha + s.previous.Velocity*(1-alpha)
}

func (s *Spring) notifyPositionUpdated(notifyActivate, notifyAtRest bool) {
	for _, l := range s.listeners {
		if notifyActivate {
			l.OnSpringActivate(s)
		}
		l.OnSpringUpdate(s)
		if notifyAtRest {
			l.OnSpringAtRest(s)
		}
	}
}

func (s *Spring) AddListener(l SpringListener) *Spring {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
	return s
}

// RemoveListener removes a previously added listener by identity. Removing
// a listener that is not present is a no-op.
func (s *Spring) RemoveListener(l SpringListener) *Spring {
	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			break
		}
	}
	return s
}

func (s *Spring) RemoveAllListeners() *Spring {
	s.listeners = nil
	return s
}

// Destroy clears all listeners and deregisters the spring from its owning
// system. No callbacks fire after Destroy returns; other springs in the
// system are unaffected.
func (s *Spring) Destroy() {
	s.listeners = nil
	s.system.DeregisterSpring(s)
}
