package phys

// distEpsilon is the threshold below which a separation distance is treated
// as zero: the contact normal is undefined and normal-dependent work is
// skipped for that check, instead of letting a zero-length normalize
// propagate NaN through the body state.
const distEpsilon = 1e-9

// Config carries the world-level simulation parameters. Boundary and gravity
// are explicit here rather than package globals so tests can vary them.
type Config struct {
	Gravity      Vec3
	BorderCenter Vec3
	BorderRadius float64
	Restitution  float64
	Passes       int

	// PenetrationTol, when positive, ends the relaxation loop early once the
	// maximum residual penetration drops below it. Zero keeps the fixed pass
	// count for predictable per-step cost.
	PenetrationTol float64
}

func DefaultConfig() Config {
	return Config{
		Gravity:      Vec3{0, -9.8, 0},
		BorderCenter: Vec3{},
		BorderRadius: 0.85,
		Restitution:  0.95,
		Passes:       3,
	}
}

// World owns an ordered, append-only set of bodies. It is not safe for
// concurrent use; the driver owns it exclusively while a step is running.
type World struct {
	cfg    Config
	bodies []*Body
}

func NewWorld(cfg Config) *World {
	if cfg.Passes < 1 {
		cfg.Passes = 1
	}
	return &World{cfg: cfg}
}

// AddBody appends a body and returns its index. Indices are stable: bodies
// are never removed.
func (w *World) AddBody(b *Body) int {
	w.bodies = append(w.bodies, b)
	return len(w.bodies) - 1
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

func (w *World) Body(i int) *Body {
	return w.bodies[i]
}

func (w *World) Len() int {
	return len(w.bodies)
}

func (w *World) Config() Config {
	return w.cfg
}

// Step advances the simulation by dt: one integration sweep, then the fixed
// relaxation passes. Each pass applies the border constraint to every body
// in store order, then resolves every unordered pair in ascending index
// order. Corrections are applied in place as they are found (Gauss-Seidel
// relaxation), so later contacts in a pass see earlier corrections; repeated
// passes converge the system toward a jointly consistent configuration.
func (w *World) Step(dt float64) {
	w.integrate(dt)

	for pass := 0; pass < w.cfg.Passes; pass++ {
		for _, b := range w.bodies {
			w.keepWithinBorder(b)
		}
		for i := 0; i < len(w.bodies); i++ {
			for j := i + 1; j < len(w.bodies); j++ {
				w.collide(w.bodies[i], w.bodies[j])
			}
		}
		if w.cfg.PenetrationTol > 0 && w.MaxPenetration() <= w.cfg.PenetrationTol {
			break
		}
	}
}

// integrate applies gravity and advances positions with semi-implicit Euler:
// each body's position update uses its own just-updated velocity. The
// gravitational force is mass-proportional, so the velocity update is
// independent of mass.
func (w *World) integrate(dt float64) {
	g := w.cfg.Gravity.Scale(dt)
	for _, b := range w.bodies {
		b.Vel = b.Vel.Add(g)
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}
}

// keepWithinBorder confines a body to the spherical boundary. On violation
// the body is repositioned so its surface is tangent to the boundary, the
// velocity is mirrored across the tangent plane, and the whole velocity is
// scaled by the restitution factor.
func (w *World) keepWithinBorder(b *Body) {
	offset := b.Pos.Sub(w.cfg.BorderCenter)
	dist := offset.Length()
	if dist+b.Radius <= w.cfg.BorderRadius {
		return
	}
	if dist < distEpsilon {
		// Body centered on the boundary center: no outward normal exists.
		return
	}
	normal := offset.Scale(1.0 / dist)
	b.Pos = w.cfg.BorderCenter.Add(normal.Scale(w.cfg.BorderRadius - b.Radius))
	b.Vel = b.Vel.Sub(normal.Scale(2 * b.Vel.Dot(normal))).Scale(w.cfg.Restitution)
}

// collide detects and resolves overlap between a pair: an impulse exchange
// along the contact normal followed by an inverse-mass-weighted positional
// correction that removes the residual penetration. Overlapping pairs whose
// relative normal velocity is separating are left untouched, so resolution
// never injects energy into a non-approaching contact.
func (w *World) collide(a, b *Body) {
	delta := b.Pos.Sub(a.Pos)
	dist := delta.Length()
	if dist >= a.Radius+b.Radius {
		return
	}
	if dist < distEpsilon {
		// Coincident centers: contact normal undefined, skip this pass.
		return
	}

	normal := delta.Scale(1.0 / dist)
	relVel := b.Vel.Sub(a.Vel).Dot(normal)
	if relVel > 0 {
		return
	}

	invMassSum := a.invMass + b.invMass
	j := -(1 + w.cfg.Restitution) * relVel / invMassSum
	impulse := normal.Scale(j)
	a.Vel = a.Vel.Sub(impulse.Scale(a.invMass))
	b.Vel = b.Vel.Add(impulse.Scale(b.invMass))

	// With equal masses this splits the overlap evenly between the pair.
	overlap := a.Radius + b.Radius - dist
	correction := normal.Scale(overlap / invMassSum)
	a.Pos = a.Pos.Sub(correction.Scale(a.invMass))
	b.Pos = b.Pos.Add(correction.Scale(b.invMass))
}

// MaxPenetration returns the largest residual constraint violation: pairwise
// sphere overlap or overshoot past the boundary, whichever is worse.
func (w *World) MaxPenetration() float64 {
	max := 0.0
	for i, a := range w.bodies {
		if over := a.Pos.Distance(w.cfg.BorderCenter) + a.Radius - w.cfg.BorderRadius; over > max {
			max = over
		}
		for _, b := range w.bodies[i+1:] {
			if pen := a.Radius + b.Radius - a.Pos.Distance(b.Pos); pen > max {
				max = pen
			}
		}
	}
	return max
}

// TotalKineticEnergy sums 1/2·m·v² over all bodies.
func (w *World) TotalKineticEnergy() float64 {
	sum := 0.0
	for _, b := range w.bodies {
		sum += b.KineticEnergy()
	}
	return sum
}

// IsValid reports whether every body state is free of NaN/Inf.
func (w *World) IsValid() bool {
	for _, b := range w.bodies {
		if !b.IsValid() {
			return false
		}
	}
	return true
}
