// Package rebound implements a damped-harmonic-oscillator animation engine.
//
// The package simulates springs parameterized by tension and friction,
// integrated with a fixed-timestep 4th-order Runge-Kutta solver:
//
//   - [Spring]: one damped oscillator with listeners and rest detection
//   - [SpringSystem]: registry of springs, active-set bookkeeping, tick loop
//   - [Config]: (tension, friction) pair with Origami and bounciness/speed
//     conversion factories
//   - [MultiSpring]: a tuple of co-configured springs for vector properties
//   - [Looper]: pluggable tick scheduling ([AnimationLooper],
//     [SimulationLooper], [SteppingSimulationLooper])
//
// # Example
//
//	system := rebound.NewSpringSystem(rebound.NewSimulationLooper())
//	spring := system.CreateSpring()
//	spring.AddListener(listener)
//	spring.SetEndValue(100) // resolves to rest synchronously
//
// # Thread Safety
//
// The engine is not safe for concurrent use. All mutation must happen on the
// goroutine driving the looper; wrap the system behind a mutex or channel if
// it is shared across goroutines.
package rebound
