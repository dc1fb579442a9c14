package rebound

// SpringID identifies a spring within the system that created it. Ids are
// arena slots with a generation counter; an id invalidated by
// [Spring.Destroy] never resolves again even if the slot is recycled.
type SpringID struct {
	index      uint32
	generation uint32
}

type springSlot struct {
	spring     *Spring
	generation uint32
}

// SpringSystem owns every spring created through it, tracks which springs
// are currently active, and drives one integration tick per Loop call.
type SpringSystem struct {
	slots []springSlot
	free  []uint32

	active    []*Spring
	activeIDs map[SpringID]struct{}

	// Mutations requested by listener callbacks while a tick is in
	// progress are deferred so the active set is only rebuilt by the
	// single stable filter pass in advance.
	advancing     bool
	pendingActive []*Spring

	listeners []SystemListener
	looper    Looper

	lastTimeMillis float64
	isIdle         bool
}

// NewSpringSystem builds a system driven by the given looper. A nil looper
// defaults to a [SteppingSimulationLooper], leaving the host to call Loop
// or Step explicitly.
func NewSpringSystem(looper Looper) *SpringSystem {
	if looper == nil {
		looper = NewSteppingSimulationLooper()
	}
	s := &SpringSystem{
		activeIDs:      make(map[SpringID]struct{}),
		looper:         looper,
		lastTimeMillis: -1,
		isIdle:         true,
	}
	looper.SetSystem(s)
	return s
}

func (s *SpringSystem) Looper() Looper { return s.looper }

// SetLooper swaps the scheduling strategy. The new looper is attached to
// this system.
func (s *SpringSystem) SetLooper(looper Looper) {
	s.looper = looper
	looper.SetSystem(s)
}

// CreateSpring builds a spring with [DefaultOrigamiConfig] and registers it.
func (s *SpringSystem) CreateSpring() *Spring {
	return s.CreateSpringWithConfig(DefaultOrigamiConfig)
}

// CreateSpringWithOrigami builds a spring from Origami tension and friction
// designer values.
func (s *SpringSystem) CreateSpringWithOrigami(oTension, oFriction float64) *Spring {
	return s.CreateSpringWithConfig(FromOrigamiTensionAndFriction(oTension, oFriction))
}

// CreateSpringWithBouncinessAndSpeed builds a spring from bounciness/speed
// designer values.
func (s *SpringSystem) CreateSpringWithBouncinessAndSpeed(bounciness, speed float64) *Spring {
	return s.CreateSpringWithConfig(FromBouncinessAndSpeed(bounciness, speed))
}

// CreateSpringWithConfig constructs and registers a spring atomically.
func (s *SpringSystem) CreateSpringWithConfig(config Config) *Spring {
	spring := newSpring(s, config)
	s.RegisterSpring(spring)
	return spring
}

// RegisterSpring assigns the spring an arena slot. A spring is only ever
// registered once, by the system that constructed it; re-registration
// panics.
func (s *SpringSystem) RegisterSpring(spring *Spring) {
	if spring.system != s || s.GetSpringByID(spring.id) == spring {
		panic("rebound: spring already registered or owned by another system")
	}
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, springSlot{})
		idx = uint32(len(s.slots) - 1)
	}
	s.slots[idx].spring = spring
	spring.id = SpringID{index: idx, generation: s.slots[idx].generation}
}

// DeregisterSpring removes the spring from the registry and from the active
// set if present. The slot's generation is bumped so the old id can never
// resolve again. Deregistering an unknown spring is a no-op.
func (s *SpringSystem) DeregisterSpring(spring *Spring) {
	if s.GetSpringByID(spring.id) != spring {
		return
	}
	delete(s.activeIDs, spring.id)
	if !s.advancing {
		next := make([]*Spring, 0, len(s.active))
		for _, a := range s.active {
			if a != spring {
				next = append(next, a)
			}
		}
		s.active = next
	}
	slot := &s.slots[spring.id.index]
	slot.spring = nil
	slot.generation++
	s.free = append(s.free, spring.id.index)
}

// GetSpringByID resolves an id, returning nil for stale or unknown ids.
func (s *SpringSystem) GetSpringByID(id SpringID) *Spring {
	if int(id.index) >= len(s.slots) {
		return nil
	}
	slot := s.slots[id.index]
	if slot.generation != id.generation {
		return nil
	}
	return slot.spring
}

// GetAllSprings returns every registered spring.
func (s *SpringSystem) GetAllSprings() []*Spring {
	springs := make([]*Spring, 0, len(s.slots)-len(s.free))
	for _, slot := range s.slots {
		if slot.spring != nil {
			springs = append(springs, slot.spring)
		}
	}
	return springs
}

func (s *SpringSystem) GetIsIdle() bool { return s.isIdle }

// ActivateSpring idempotently adds the spring to the active set and, if the
// system was idle, restarts the looper. Stale ids are ignored.
func (s *SpringSystem) ActivateSpring(id SpringID) {
	spring := s.GetSpringByID(id)
	if spring == nil {
		return
	}
	if _, ok := s.activeIDs[id]; !ok {
		s.activeIDs[id] = struct{}{}
		if s.advancing {
			s.pendingActive = append(s.pendingActive, spring)
		} else {
			s.active = append(s.active, spring)
		}
	}
	if s.isIdle {
		s.isIdle = false
		s.looper.Run()
	}
}

// advance steps every active spring by deltaTime milliseconds. Springs that
// no longer need advancing are retired in a single stable filter pass that
// builds the next active set.
func (s *SpringSystem) advance(time, deltaTime float64) {
	s.advancing = true
	next := make([]*Spring, 0, len(s.active))
	for _, spring := range s.active {
		if _, ok := s.activeIDs[spring.id]; !ok {
			continue // destroyed earlier this tick
		}
		if !spring.SystemShouldAdvance() {
			delete(s.activeIDs, spring.id)
			continue
		}
		spring.advance(time/1000.0, deltaTime/1000.0)
		if _, ok := s.activeIDs[spring.id]; ok {
			next = append(next, spring)
		}
	}
	s.advancing = false
	for _, spring := range s.pendingActive {
		if _, ok := s.activeIDs[spring.id]; ok {
			next = append(next, spring)
		}
	}
	s.pendingActive = s.pendingActive[:0]
	s.active = next
}

// Loop is the tick entry point; hosts supply the current time in
// milliseconds. The system advances all active springs, flips to idle when
// none remain, and re-arms the looper otherwise.
func (s *SpringSystem) Loop(currentTimeMillis float64) {
	if s.lastTimeMillis == -1 {
		s.lastTimeMillis = currentTimeMillis - 1
	}
	elapsedMillis := currentTimeMillis - s.lastTimeMillis
	s.lastTimeMillis = currentTimeMillis

	for _, l := range s.listeners {
		l.OnBeforeIntegrate(s)
	}

	s.advance(currentTimeMillis, elapsedMillis)
	if len(s.active) == 0 {
		s.isIdle = true
		s.lastTimeMillis = -1
	}

	for _, l := range s.listeners {
		l.OnAfterIntegrate(s)
	}

	if !s.isIdle {
		s.looper.Run()
	}
}

func (s *SpringSystem) AddListener(l SystemListener) {
	if l != nil {
		s.listeners = append(s.listeners, l)
	}
}

// RemoveListener removes a system listener by identity; absent listeners
// are ignored.
func (s *SpringSystem) RemoveListener(l SystemListener) {
	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			break
		}
	}
}
