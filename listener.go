package rebound

// SpringListener receives per-spring notifications. Embed
// [NoopSpringListener] to implement only a subset, or use
// [SpringListenerFuncs] for ad-hoc callbacks.
type SpringListener interface {
	// OnSpringActivate fires when the spring leaves rest.
	OnSpringActivate(s *Spring)
	// OnSpringUpdate fires on every advance, regardless of rest state.
	OnSpringUpdate(s *Spring)
	// OnSpringAtRest fires when the spring settles.
	OnSpringAtRest(s *Spring)
	// OnSpringEndStateChange fires when the end value is retargeted.
	OnSpringEndStateChange(s *Spring)
}

// NoopSpringListener implements SpringListener with no-op methods.
type NoopSpringListener struct{}

func (NoopSpringListener) OnSpringActivate(*Spring)       {}
func (NoopSpringListener) OnSpringUpdate(*Spring)         {}
func (NoopSpringListener) OnSpringAtRest(*Spring)         {}
func (NoopSpringListener) OnSpringEndStateChange(*Spring) {}

// SpringListenerFuncs adapts optional function fields to SpringListener.
// Nil fields are skipped.
type SpringListenerFuncs struct {
	Activate       func(*Spring)
	Update         func(*Spring)
	AtRest         func(*Spring)
	EndStateChange func(*Spring)
}

func (f *SpringListenerFuncs) OnSpringActivate(s *Spring) {
	if f.Activate != nil {
		f.Activate(s)
	}
}

func (f *SpringListenerFuncs) OnSpringUpdate(s *Spring) {
	if f.Update != nil {
		f.Update(s)
	}
}

func (f *SpringListenerFuncs) OnSpringAtRest(s *Spring) {
	if f.AtRest != nil {
		f.AtRest(s)
	}
}

func (f *SpringListenerFuncs) OnSpringEndStateChange(s *Spring) {
	if f.EndStateChange != nil {
		f.EndStateChange(s)
	}
}

// SystemListener observes system-wide integration ticks.
type SystemListener interface {
	OnBeforeIntegrate(sys *SpringSystem)
	OnAfterIntegrate(sys *SpringSystem)
}

// SystemListenerFuncs adapts optional function fields to SystemListener.
type SystemListenerFuncs struct {
	BeforeIntegrate func(*SpringSystem)
	AfterIntegrate  func(*SpringSystem)
}

func (f *SystemListenerFuncs) OnBeforeIntegrate(sys *SpringSystem) {
	if f.BeforeIntegrate != nil {
		f.BeforeIntegrate(sys)
	}
}

func (f *SystemListenerFuncs) OnAfterIntegrate(sys *SpringSystem) {
	if f.AfterIntegrate != nil {
		f.AfterIntegrate(sys)
	}
}
