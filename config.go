package rebound

import "math"

// Config is an immutable (tension, friction) pair. Tension is the stiffness
// constant of the restoring force, friction the damping coefficient. A zero
// tension produces a coasting spring decelerated by friction alone.
type Config struct {
	Tension  float64
	Friction float64
}

// DefaultOrigamiConfig is the config used by [SpringSystem.CreateSpring],
// equivalent to Origami tension 40 and friction 7.
var DefaultOrigamiConfig = FromOrigamiTensionAndFriction(40, 7)

// FromOrigamiTensionAndFriction converts Origami designer values into a
// Config.
func FromOrigamiTensionAndFriction(oTension, oFriction float64) Config {
	return Config{
		Tension:  TensionFromOrigamiValue(oTension),
		Friction: FrictionFromOrigamiValue(oFriction),
	}
}

// FromBouncinessAndSpeed converts bounciness/speed designer values into a
// Config via [NewBouncyConversion].
func FromBouncinessAndSpeed(bounciness, speed float64) Config {
	c := NewBouncyConversion(bounciness, speed)
	return Config{Tension: c.BouncyTension, Friction: c.BouncyFriction}
}

// CoastingConfigWithOrigamiFriction builds a zero-tension config damped by
// the given Origami friction value. Coasting springs have no fixed target;
// they decelerate until velocity drops below the rest threshold.
func CoastingConfigWithOrigamiFriction(oFriction float64) Config {
	return Config{Tension: 0, Friction: FrictionFromOrigamiValue(oFriction)}
}

// Origami value conversion. The affine constants are frozen for backward
// compatibility with previously authored animations.

func TensionFromOrigamiValue(oValue float64) float64 {
	return (oValue-30.0)*3.62 + 194.0
}

func OrigamiValueFromTension(tension float64) float64 {
	return (tension-194.0)/3.62 + 30.0
}

func FrictionFromOrigamiValue(oValue float64) float64 {
	return (oValue-8.0)*3.0 + 25.0
}

func OrigamiValueFromFriction(friction float64) float64 {
	return (friction-25.0)/3.0 + 8.0
}

// BouncyConversion maps bounciness/speed designer values onto tension and
// friction. Bounciness and speed are normalized into [0, 1], projected onto
// the target ranges, and friction is derived against the piecewise cubic
// "B3 no-bounce" friction curve.
type BouncyConversion struct {
	Bounciness float64
	Speed      float64

	BouncyTension  float64
	BouncyFriction float64
}

func NewBouncyConversion(bounciness, speed float64) *BouncyConversion {
	b := normalize(bounciness/1.7, 0, 20)
	b = projectNormal(b, 0, 0.8)
	s := normalize(speed/1.7, 0, 20)

	bouncyTension := projectNormal(s, 0.5, 200)
	bouncyFriction := quadraticOutInterpolation(b, b3Nobounce(bouncyTension), 0.01)

	return &BouncyConversion{
		Bounciness:     bounciness,
		Speed:          speed,
		BouncyTension:  bouncyTension,
		BouncyFriction: bouncyFriction,
	}
}

func normalize(value, startValue, endValue float64) float64 {
	return (value - startValue) / (endValue - startValue)
}

func projectNormal(n, start, end float64) float64 {
	return start + n*(end-start)
}

func linearInterpolation(t, start, end float64) float64 {
	return t*end + (1.0-t)*start
}

func quadraticOutInterpolation(t, start, end float64) float64 {
	return linearInterpolation(2*t-t*t, start, end)
}

// The three polynomial regimes below are selected by tension thresholds
// (<=18, <=44, >44). Coefficients must not be altered.

func b3Friction1(x float64) float64 {
	return 0.0007*math.Pow(x, 3) - 0.031*math.Pow(x, 2) + 0.64*x + 1.28
}

func b3Friction2(x float64) float64 {
	return 0.000044*math.Pow(x, 3) - 0.006*math.Pow(x, 2) + 0.36*x + 2.0
}

func b3Friction3(x float64) float64 {
	return 0.00000045*math.Pow(x, 3) - 0.000332*math.Pow(x, 2) + 0.1078*x + 5.84
}

func b3Nobounce(tension float64) float64 {
	if tension <= 18 {
		return b3Friction1(tension)
	}
	if tension <= 44 {
		return b3Friction2(tension)
	}
	return b3Friction3(tension)
}
