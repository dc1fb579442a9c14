package rebound

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SpringSystem", func() {
	var (
		looper *SteppingSimulationLooper
		system *SpringSystem
	)

	BeforeEach(func() {
		looper = NewSteppingSimulationLooper()
		system = NewSpringSystem(looper)
	})

	stepUntilIdle := func() int {
		ticks := 0
		for ; ticks < 10000 && !system.GetIsIdle(); ticks++ {
			looper.Step(DefaultSimulationTimestepMillis)
		}
		return ticks
	}

	It("should start idle", func() {
		Expect(system.GetIsIdle()).To(BeTrue())
		Expect(system.GetAllSprings()).To(BeEmpty())
	})

	It("should register created springs", func() {
		spring := system.CreateSpring()

		Expect(system.GetAllSprings()).To(HaveLen(1))
		Expect(system.GetSpringByID(spring.ID())).To(BeIdenticalTo(spring))
	})

	It("should activate a spring when its end value is displaced", func() {
		spring := system.CreateSpring()

		spring.SetEndValue(1)

		Expect(system.GetIsIdle()).To(BeFalse())
	})

	It("should retire settled springs and return to idle", func() {
		spring := system.CreateSpring()
		spring.SetEndValue(1)

		ticks := stepUntilIdle()

		Expect(system.GetIsIdle()).To(BeTrue())
		Expect(ticks).To(BeNumerically("<", 10000))
		Expect(spring.CurrentValue()).To(Equal(1.0))
		Expect(spring.IsAtRest()).To(BeTrue())
	})

	It("should emit the exact end value once after settling", func() {
		spring := system.CreateSpring()
		var values []float64
		spring.AddListener(&SpringListenerFuncs{
			Update: func(s *Spring) { values = append(values, s.CurrentValue()) },
		})

		spring.SetEndValue(1)
		stepUntilIdle()

		Expect(values).NotTo(BeEmpty())
		Expect(values[len(values)-1]).To(Equal(1.0))
	})

	It("should wrap each tick in before/after integrate notifications", func() {
		var events []string
		system.AddListener(&SystemListenerFuncs{
			BeforeIntegrate: func(*SpringSystem) { events = append(events, "before") },
			AfterIntegrate:  func(*SpringSystem) { events = append(events, "after") },
		})

		system.CreateSpring().SetEndValue(1)
		looper.Step(DefaultSimulationTimestepMillis)

		Expect(events).To(Equal([]string{"before", "after"}))
	})

	It("should stop callbacks for a destroyed spring while others continue", func() {
		doomed := system.CreateSpring()
		survivor := system.CreateSpring()

		doomedUpdates := 0
		doomed.AddListener(&SpringListenerFuncs{
			Update: func(*Spring) { doomedUpdates++ },
		})
		survivorUpdates := 0
		survivor.AddListener(&SpringListenerFuncs{
			Update: func(*Spring) { survivorUpdates++ },
		})

		doomed.SetEndValue(1)
		survivor.SetEndValue(1)
		looper.Step(DefaultSimulationTimestepMillis)
		looper.Step(DefaultSimulationTimestepMillis)

		doomed.Destroy()
		frozen := doomedUpdates

		looper.Step(DefaultSimulationTimestepMillis)
		looper.Step(DefaultSimulationTimestepMillis)
		stepUntilIdle()

		Expect(doomedUpdates).To(Equal(frozen))
		Expect(survivorUpdates).To(BeNumerically(">", 2))
		Expect(survivor.CurrentValue()).To(Equal(1.0))
		Expect(system.GetIsIdle()).To(BeTrue())
	})

	It("should never resolve a destroyed spring id", func() {
		spring := system.CreateSpring()
		id := spring.ID()
		spring.Destroy()

		Expect(system.GetSpringByID(id)).To(BeNil())

		// Recycling the slot must not resurrect the old id.
		replacement := system.CreateSpring()
		Expect(system.GetSpringByID(id)).To(BeNil())
		Expect(system.GetSpringByID(replacement.ID())).To(BeIdenticalTo(replacement))
	})

	It("should ignore activation of stale ids", func() {
		spring := system.CreateSpring()
		id := spring.ID()
		spring.Destroy()

		system.ActivateSpring(id)

		Expect(system.GetIsIdle()).To(BeTrue())
	})

	It("should remove deregistered springs from the active set", func() {
		spring := system.CreateSpring()
		spring.SetEndValue(1)

		system.DeregisterSpring(spring)
		looper.Step(DefaultSimulationTimestepMillis)

		Expect(system.GetIsIdle()).To(BeTrue())
		Expect(system.GetAllSprings()).To(BeEmpty())
	})

	It("should panic when a spring is registered twice", func() {
		spring := system.CreateSpring()

		Expect(func() { system.RegisterSpring(spring) }).To(Panic())
	})

	It("should keep springs activated by listeners during a tick", func() {
		first := system.CreateSpring()
		chained := system.CreateSpring()

		// Chain: once the first spring settles, launch the second.
		first.AddListener(&SpringListenerFuncs{
			AtRest: func(*Spring) { chained.SetEndValue(2) },
		})

		first.SetEndValue(1)
		stepUntilIdle()

		Expect(first.CurrentValue()).To(Equal(1.0))
		Expect(chained.CurrentValue()).To(Equal(2.0))
		Expect(system.GetIsIdle()).To(BeTrue())
	})
})
