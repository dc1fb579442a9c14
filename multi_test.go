package rebound

import "testing"

func TestMultiSpringImmediateValues(t *testing.T) {
	system := NewSpringSystem(nil)
	multi := NewMultiSpring(system, DefaultOrigamiConfig, 2)

	multi.SetCurrentValues([]float64{3, 7})

	got := multi.CurrentValues()
	if got[0] != 3 || got[1] != 7 {
		t.Errorf("current values: got %v, expected [3 7]", got)
	}
	if !system.GetIsIdle() {
		t.Error("repositioning must not activate the system")
	}
}

func TestMultiSpringLazyCreation(t *testing.T) {
	system := NewSpringSystem(nil)
	multi := NewMultiSpring(system, DefaultOrigamiConfig, 3)

	for i, s := range multi.Springs() {
		if s != nil {
			t.Fatalf("slot %d created before first write", i)
		}
	}

	multi.SetEndValues([]float64{1})

	springs := multi.Springs()
	if springs[0] == nil {
		t.Error("slot 0 should exist after write")
	}
	if springs[1] != nil || springs[2] != nil {
		t.Error("unwritten slots must stay lazy")
	}

	values := multi.CurrentValues()
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
}

func TestMultiSpringSharedConfig(t *testing.T) {
	system := NewSpringSystem(nil)
	cfg := Config{Tension: 120, Friction: 14}
	multi := NewMultiSpring(system, cfg, 2)

	multi.SetVelocity(10)

	for i, s := range multi.Springs() {
		if s == nil {
			t.Fatalf("slot %d missing after velocity write", i)
		}
		if s.Config() != cfg {
			t.Errorf("slot %d config: got %+v, expected %+v", i, s.Config(), cfg)
		}
	}
}

func TestMultiSpringSettlesElementwise(t *testing.T) {
	looper := NewSteppingSimulationLooper()
	system := NewSpringSystem(looper)
	multi := NewMultiSpring(system, DefaultOrigamiConfig, 2)

	multi.SetEndValues([]float64{50, -25})
	for i := 0; i < 10000 && !system.GetIsIdle(); i++ {
		looper.Step(DefaultSimulationTimestepMillis)
	}

	got := multi.CurrentValues()
	if got[0] != 50 || got[1] != -25 {
		t.Errorf("settled values: got %v, expected [50 -25]", got)
	}
}

func TestMultiSpringDestroy(t *testing.T) {
	looper := NewSteppingSimulationLooper()
	system := NewSpringSystem(looper)
	multi := NewMultiSpring(system, DefaultOrigamiConfig, 2)

	multi.SetVelocity(5)
	multi.Destroy()

	if n := len(system.GetAllSprings()); n != 0 {
		t.Errorf("expected empty registry after destroy, got %d springs", n)
	}

	looper.Step(DefaultSimulationTimestepMillis)
	if !system.GetIsIdle() {
		t.Error("the tick after destroying all springs must go idle")
	}
}
