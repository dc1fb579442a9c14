package rebound

// MultiSpring animates a vector-valued property with a fixed-length tuple of
// springs sharing one config. Component springs are created lazily the first
// time their slot is written, so a MultiSpring costs nothing until used.
type MultiSpring struct {
	system  *SpringSystem
	config  Config
	springs []*Spring
}

func NewMultiSpring(system *SpringSystem, config Config, size int) *MultiSpring {
	return &MultiSpring{
		system:  system,
		config:  config,
		springs: make([]*Spring, size),
	}
}

func (m *MultiSpring) Size() int { return len(m.springs) }

func (m *MultiSpring) Config() Config { return m.config }

// Springs returns the component springs; unwritten slots are nil.
func (m *MultiSpring) Springs() []*Spring { return m.springs }

func (m *MultiSpring) at(i int) *Spring {
	if m.springs[i] == nil {
		m.springs[i] = m.system.CreateSpringWithConfig(m.config)
	}
	return m.springs[i]
}

// SetCurrentValues repositions each component spring at rest, creating
// missing slots. Extra values beyond the tuple length are ignored.
func (m *MultiSpring) SetCurrentValues(values []float64) *MultiSpring {
	for i, v := range values {
		if i >= len(m.springs) {
			break
		}
		m.at(i).SetCurrentValue(v, false)
	}
	return m
}

// CurrentValues reads every slot; unwritten slots read as zero.
func (m *MultiSpring) CurrentValues() []float64 {
	values := make([]float64, len(m.springs))
	for i, s := range m.springs {
		if s != nil {
			values[i] = s.CurrentValue()
		}
	}
	return values
}

// SetEndValues retargets each component spring, creating missing slots.
func (m *MultiSpring) SetEndValues(values []float64) *MultiSpring {
	for i, v := range values {
		if i >= len(m.springs) {
			break
		}
		m.at(i).SetEndValue(v)
	}
	return m
}

// EndValues reads every slot's end value; unwritten slots read as zero.
func (m *MultiSpring) EndValues() []float64 {
	values := make([]float64, len(m.springs))
	for i, s := range m.springs {
		if s != nil {
			values[i] = s.EndValue()
		}
	}
	return values
}

// SetVelocity applies one velocity across all component springs, creating
// missing slots.
func (m *MultiSpring) SetVelocity(velocity float64) *MultiSpring {
	for i := range m.springs {
		m.at(i).SetVelocity(velocity)
	}
	return m
}

// SetAtRest settles every created component spring in place.
func (m *MultiSpring) SetAtRest() *MultiSpring {
	for _, s := range m.springs {
		if s != nil {
			s.SetAtRest()
		}
	}
	return m
}

// AddListener attaches the listener to every component spring, creating
// missing slots so later writes are observed too.
func (m *MultiSpring) AddListener(l SpringListener) *MultiSpring {
	for i := range m.springs {
		m.at(i).AddListener(l)
	}
	return m
}

// Destroy destroys every created component spring.
func (m *MultiSpring) Destroy() {
	for i, s := range m.springs {
		if s != nil {
			s.Destroy()
			m.springs[i] = nil
		}
	}
}
