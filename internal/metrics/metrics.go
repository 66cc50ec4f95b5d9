// Package metrics provides per-run observers over the physics world. Each
// metric accumulates across steps and reduces to a single value when the
// run completes.
package metrics

import "github.com/san-kum/ballsim/internal/phys"

// Metric observes world state once per step and reduces to a scalar.
type Metric interface {
	Name() string
	Observe(w *phys.World, t float64)
	Value() float64
	Reset()
}

// Default returns the standard metric set attached to headless runs.
func Default() []Metric {
	return []Metric{
		NewKineticEnergy(),
		NewMaxSpeed(),
		NewMaxPenetration(),
		NewContainment(),
	}
}

// KineticEnergy tracks the mean total kinetic energy across observed steps.
type KineticEnergy struct {
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(w *phys.World, t float64) {
	k.total += w.TotalKineticEnergy()
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// MaxSpeed tracks the fastest body speed seen during the run.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(w *phys.World, t float64) {
	for _, b := range w.Bodies() {
		if s := b.Speed(); s > m.max {
			m.max = s
		}
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// MaxPenetration tracks the worst residual constraint violation left after
// any relaxation loop in the run. Large values mean the pass budget is too
// small for the scene.
type MaxPenetration struct {
	max float64
}

func NewMaxPenetration() *MaxPenetration { return &MaxPenetration{} }

func (m *MaxPenetration) Name() string { return "max_penetration" }

func (m *MaxPenetration) Observe(w *phys.World, t float64) {
	if p := w.MaxPenetration(); p > m.max {
		m.max = p
	}
}

func (m *MaxPenetration) Value() float64 { return m.max }
func (m *MaxPenetration) Reset()         { m.max = 0 }

// Containment tracks the worst boundary violation: how far any body surface
// poked past the border sphere after a step. Should stay near zero.
type Containment struct {
	max float64
}

func NewContainment() *Containment { return &Containment{} }

func (c *Containment) Name() string { return "containment_violation" }

func (c *Containment) Observe(w *phys.World, t float64) {
	cfg := w.Config()
	for _, b := range w.Bodies() {
		over := b.Pos.Distance(cfg.BorderCenter) + b.Radius - cfg.BorderRadius
		if over > c.max {
			c.max = over
		}
	}
}

func (c *Containment) Value() float64 { return c.max }
func (c *Containment) Reset()         { c.max = 0 }
