package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/ballsim/internal/phys"
)

func worldWith(t *testing.T, bodies ...*phys.Body) *phys.World {
	t.Helper()
	w := phys.NewWorld(phys.DefaultConfig())
	for _, b := range bodies {
		w.AddBody(b)
	}
	return w
}

func body(t *testing.T, pos, vel phys.Vec3) *phys.Body {
	t.Helper()
	b, err := phys.NewBody(pos, 0.04)
	if err != nil {
		t.Fatal(err)
	}
	b.Vel = vel
	return b
}

func TestKineticEnergyMean(t *testing.T) {
	w := worldWith(t, body(t, phys.Vec3{}, phys.Vec3{X: 2}))
	m := NewKineticEnergy()

	m.Observe(w, 0)
	if got := m.Value(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("kinetic energy %g, want 2.0", got)
	}

	w.Body(0).Vel = phys.Vec3{}
	m.Observe(w, 1e-3)
	if got := m.Value(); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("mean kinetic energy %g, want 1.0", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMaxSpeedTracksPeak(t *testing.T) {
	w := worldWith(t, body(t, phys.Vec3{}, phys.Vec3{Y: -3}))
	m := NewMaxSpeed()

	m.Observe(w, 0)
	w.Body(0).Vel = phys.Vec3{Y: -1}
	m.Observe(w, 1e-3)

	if got := m.Value(); got != 3 {
		t.Errorf("max speed %g, want 3", got)
	}
}

func TestContainmentInsideIsZero(t *testing.T) {
	w := worldWith(t, body(t, phys.Vec3{Y: 0.5}, phys.Vec3{}))
	m := NewContainment()

	m.Observe(w, 0)
	if got := m.Value(); got != 0 {
		t.Errorf("containment violation %g, want 0", got)
	}
}

func TestContainmentRecordsViolation(t *testing.T) {
	w := worldWith(t, body(t, phys.Vec3{Y: -0.83}, phys.Vec3{}))
	m := NewContainment()

	m.Observe(w, 0)
	// 0.83 + 0.04 - 0.85 = 0.02 past the boundary.
	if got := m.Value(); math.Abs(got-0.02) > 1e-9 {
		t.Errorf("containment violation %g, want 0.02", got)
	}
}

func TestMaxPenetrationSeesOverlap(t *testing.T) {
	w := worldWith(t,
		body(t, phys.Vec3{X: -0.03}, phys.Vec3{}),
		body(t, phys.Vec3{X: 0.03}, phys.Vec3{}),
	)
	m := NewMaxPenetration()

	m.Observe(w, 0)
	if got := m.Value(); math.Abs(got-0.02) > 1e-9 {
		t.Errorf("max penetration %g, want 0.02", got)
	}
}

func TestDefaultSet(t *testing.T) {
	set := Default()
	if len(set) != 4 {
		t.Fatalf("default metric count %d, want 4", len(set))
	}
	names := map[string]bool{}
	for _, m := range set {
		names[m.Name()] = true
	}
	for _, want := range []string{"kinetic_energy", "max_speed", "max_penetration", "containment_violation"} {
		if !names[want] {
			t.Errorf("missing metric %s", want)
		}
	}
}
