package sim

// Accumulator drains wall-clock time into fixed-size simulation steps,
// decoupling simulation cadence from render cadence. The driver feeds it
// real elapsed seconds each frame; the accumulator invokes the step function
// as many whole-dt times as the banked time allows, up to a per-frame cap
// that prevents a slow frame from spiraling into ever longer catch-up work.
type Accumulator struct {
	dt       float64
	maxSteps int
	banked   float64
}

func NewAccumulator(dt float64, maxSteps int) *Accumulator {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Accumulator{dt: dt, maxSteps: maxSteps}
}

// Advance banks elapsed seconds and runs step for each whole dt available,
// returning the number of steps taken. Time beyond the per-frame cap is
// dropped rather than carried.
func (a *Accumulator) Advance(elapsed float64, step func(dt float64)) int {
	a.banked += elapsed

	n := 0
	for a.banked >= a.dt && n < a.maxSteps {
		step(a.dt)
		a.banked -= a.dt
		n++
	}
	if a.banked >= a.dt {
		a.banked = 0
	}
	return n
}

// Alpha is the fraction of a step currently banked, usable for render
// interpolation between simulation states.
func (a *Accumulator) Alpha() float64 {
	return a.banked / a.dt
}
