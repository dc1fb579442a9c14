package rebound

// Looper is the scheduling strategy that drives a system's integration
// ticks. Every looper is attached to exactly one system; calling Run or
// Step without an attached system is a programmer error and panics.
type Looper interface {
	Run()
	SetSystem(system *SpringSystem)
}

// FrameScheduler abstracts the host's real-time per-frame callback
// facility. The callback receives the current time in milliseconds. The
// core never queries wall clocks itself; hosts inject whatever clock they
// have.
type FrameScheduler interface {
	RequestFrame(callback func(nowMillis float64))
}

// AnimationLooper schedules one system tick per host frame. Run never
// blocks; it requests a single frame and yields, repeating until the system
// reports idle.
type AnimationLooper struct {
	system    *SpringSystem
	scheduler FrameScheduler
}

func NewAnimationLooper(scheduler FrameScheduler) *AnimationLooper {
	return &AnimationLooper{scheduler: scheduler}
}

func (l *AnimationLooper) SetSystem(system *SpringSystem) { l.system = system }

func (l *AnimationLooper) Run() {
	if l.system == nil {
		panic("rebound: AnimationLooper has no attached SpringSystem")
	}
	l.scheduler.RequestFrame(func(nowMillis float64) {
		l.system.Loop(nowMillis)
	})
}

// DefaultSimulationTimestepMillis matches a 60fps frame interval.
const DefaultSimulationTimestepMillis = 16.667

// SimulationLooper resolves a system to rest synchronously: Run blocks the
// calling goroutine, feeding the system fixed timesteps until every spring
// has settled. Useful for precomputing a trajectory without a wall clock.
type SimulationLooper struct {
	system   *SpringSystem
	timestep float64
	time     float64
	running  bool
}

func NewSimulationLooper() *SimulationLooper {
	return NewSimulationLooperWithTimestep(DefaultSimulationTimestepMillis)
}

func NewSimulationLooperWithTimestep(timestepMillis float64) *SimulationLooper {
	return &SimulationLooper{timestep: timestepMillis}
}

func (l *SimulationLooper) SetSystem(system *SpringSystem) { l.system = system }

func (l *SimulationLooper) TimeMillis() float64 { return l.time }

// Run blocks until the system is idle. Re-entrant calls while already
// running are a no-op.
func (l *SimulationLooper) Run() {
	if l.system == nil {
		panic("rebound: SimulationLooper has no attached SpringSystem")
	}
	if l.running {
		return
	}
	l.running = true
	for !l.system.GetIsIdle() {
		l.time += l.timestep
		l.system.Loop(l.time)
	}
	l.running = false
}

// SteppingSimulationLooper hands tick control to the host. Run does
// nothing; the host calls Step once per desired tick, so advancement is
// deterministic and externally clocked.
type SteppingSimulationLooper struct {
	system *SpringSystem
	time   float64
}

func NewSteppingSimulationLooper() *SteppingSimulationLooper {
	return &SteppingSimulationLooper{}
}

func (l *SteppingSimulationLooper) SetSystem(system *SpringSystem) { l.system = system }

func (l *SteppingSimulationLooper) Run() {}

// Step advances the attached system by timestepMillis of simulated time.
func (l *SteppingSimulationLooper) Step(timestepMillis float64) {
	if l.system == nil {
		panic("rebound: SteppingSimulationLooper has no attached SpringSystem")
	}
	l.time += timestepMillis
	l.system.Loop(l.time)
}
