package phys

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const eps = 1e-9

func mustBody(pos Vec3, radius float64) *Body {
	b, err := NewBody(pos, radius)
	Expect(err).NotTo(HaveOccurred())
	return b
}

var _ = Describe("Body", func() {
	It("rejects non-positive radius", func() {
		_, err := NewBody(Vec3{}, 0)
		Expect(err).To(MatchError(ErrInvalidRadius))
		_, err = NewBody(Vec3{}, -0.1)
		Expect(err).To(MatchError(ErrInvalidRadius))
	})

	It("rejects non-positive mass", func() {
		_, err := NewBodyWithMass(Vec3{}, 0.04, 0)
		Expect(err).To(MatchError(ErrInvalidMass))
	})

	It("defaults to unit mass and zero velocity", func() {
		b := mustBody(Vec3{0, 1, 0}, 0.04)
		Expect(b.Mass).To(Equal(1.0))
		Expect(b.InvMass()).To(Equal(1.0))
		Expect(b.Vel).To(Equal(Vec3{}))
	})
})

var _ = Describe("Integration", func() {
	It("uses the just-updated velocity for the position update", func() {
		cfg := DefaultConfig()
		w := NewWorld(cfg)
		b := mustBody(Vec3{}, 0.04)
		w.AddBody(b)

		dt := 1e-3
		w.integrate(dt)

		// Semi-implicit Euler: v1 = g*dt, p1 = v1*dt.
		Expect(b.Vel.Y).To(BeNumerically("~", -9.8*dt, eps))
		Expect(b.Pos.Y).To(BeNumerically("~", -9.8*dt*dt, eps))
	})

	It("accelerates independently of mass", func() {
		cfg := DefaultConfig()
		w := NewWorld(cfg)
		light := mustBody(Vec3{0.2, 0, 0}, 0.04)
		heavy, err := NewBodyWithMass(Vec3{-0.2, 0, 0}, 0.04, 10)
		Expect(err).NotTo(HaveOccurred())
		w.AddBody(light)
		w.AddBody(heavy)

		w.integrate(1e-3)
		Expect(light.Vel).To(Equal(heavy.Vel))
	})
})

var _ = Describe("Border constraint", func() {
	var w *World

	BeforeEach(func() {
		w = NewWorld(DefaultConfig())
	})

	It("is a no-op for a body fully inside", func() {
		b := mustBody(Vec3{0, 0.5, 0}, 0.04)
		b.Vel = Vec3{1, 2, 3}
		w.keepWithinBorder(b)
		Expect(b.Pos).To(Equal(Vec3{0, 0.5, 0}))
		Expect(b.Vel).To(Equal(Vec3{1, 2, 3}))
	})

	It("repositions a violating body tangent to the boundary", func() {
		b := mustBody(Vec3{0, -0.9, 0}, 0.04)
		w.keepWithinBorder(b)
		Expect(b.Pos.Y).To(BeNumerically("~", -(0.85 - 0.04), eps))
		Expect(b.Pos.X).To(BeZero())
		Expect(b.Pos.Z).To(BeZero())
	})

	It("mirrors the normal velocity component and applies restitution", func() {
		b := mustBody(Vec3{0, -0.9, 0}, 0.04)
		b.Vel = Vec3{0.5, -2, 0}
		w.keepWithinBorder(b)

		// Reflection flips vy; the whole vector is then scaled by 0.95.
		Expect(b.Vel.Y).To(BeNumerically("~", 2*0.95, eps))
		Expect(b.Vel.X).To(BeNumerically("~", 0.5*0.95, eps))
		Expect(b.Vel.Length()).To(BeNumerically("~", math.Sqrt(0.5*0.5+4)*0.95, eps))
	})

	It("handles a body centered on the border center without NaN", func() {
		// A radius larger than the boundary forces a violation at distance 0.
		b, err := NewBody(Vec3{}, 0.9)
		Expect(err).NotTo(HaveOccurred())
		b.Vel = Vec3{0.1, 0.2, 0.3}
		w.keepWithinBorder(b)

		Expect(b.IsValid()).To(BeTrue())
		Expect(b.Pos).To(Equal(Vec3{}))
		Expect(b.Vel).To(Equal(Vec3{0.1, 0.2, 0.3}))
	})
})

var _ = Describe("Pair collision", func() {
	var w *World

	BeforeEach(func() {
		cfg := DefaultConfig()
		cfg.Gravity = Vec3{}
		w = NewWorld(cfg)
	})

	It("ignores non-overlapping pairs", func() {
		a := mustBody(Vec3{-0.1, 0, 0}, 0.04)
		b := mustBody(Vec3{0.1, 0, 0}, 0.04)
		a.Vel = Vec3{1, 0, 0}
		w.collide(a, b)
		Expect(a.Pos).To(Equal(Vec3{-0.1, 0, 0}))
		Expect(a.Vel).To(Equal(Vec3{1, 0, 0}))
		Expect(b.Vel).To(Equal(Vec3{}))
	})

	It("swaps and damps velocities for an equal-mass head-on impact", func() {
		a := mustBody(Vec3{-0.0399, 0, 0}, 0.04)
		b := mustBody(Vec3{0.0399, 0, 0}, 0.04)
		a.Vel = Vec3{1, 0, 0}
		b.Vel = Vec3{-1, 0, 0}

		w.collide(a, b)

		Expect(a.Vel.X).To(BeNumerically("~", -0.95, 1e-12))
		Expect(b.Vel.X).To(BeNumerically("~", 0.95, 1e-12))
		Expect(a.Vel.Y).To(BeZero())
		Expect(b.Vel.Y).To(BeZero())
	})

	It("leaves an overlapping but separating pair untouched", func() {
		a := mustBody(Vec3{-0.03, 0, 0}, 0.04)
		b := mustBody(Vec3{0.03, 0, 0}, 0.04)
		a.Vel = Vec3{-1, 0, 0}
		b.Vel = Vec3{1, 0, 0}

		w.collide(a, b)

		Expect(a.Vel).To(Equal(Vec3{-1, 0, 0}))
		Expect(b.Vel).To(Equal(Vec3{1, 0, 0}))
		Expect(a.Pos).To(Equal(Vec3{-0.03, 0, 0}))
		Expect(b.Pos).To(Equal(Vec3{0.03, 0, 0}))
	})

	It("removes the overlap with an even split for equal masses", func() {
		a := mustBody(Vec3{-0.03, 0, 0}, 0.04)
		b := mustBody(Vec3{0.03, 0, 0}, 0.04)
		a.Vel = Vec3{1, 0, 0}
		b.Vel = Vec3{-1, 0, 0}

		w.collide(a, b)

		Expect(a.Pos.Distance(b.Pos)).To(BeNumerically("~", 0.08, eps))
		Expect(a.Pos.X).To(BeNumerically("~", -0.04, eps))
		Expect(b.Pos.X).To(BeNumerically("~", 0.04, eps))
	})

	It("splits the separation by inverse mass for unequal masses", func() {
		a := mustBody(Vec3{-0.03, 0, 0}, 0.04)
		b, err := NewBodyWithMass(Vec3{0.03, 0, 0}, 0.04, 3)
		Expect(err).NotTo(HaveOccurred())
		a.Vel = Vec3{1, 0, 0}

		w.collide(a, b)

		// overlap 0.02, inverse masses 1 and 1/3: a takes 3/4, b takes 1/4.
		Expect(a.Pos.X).To(BeNumerically("~", -0.03-0.015, eps))
		Expect(b.Pos.X).To(BeNumerically("~", 0.03+0.005, eps))
	})

	It("does not inject energy along the contact normal", func() {
		a := mustBody(Vec3{-0.03, 0, 0}, 0.04)
		b := mustBody(Vec3{0.03, 0, 0}, 0.04)
		a.Vel = Vec3{2, 0, 0}
		b.Vel = Vec3{-1, 0, 0}

		relBefore := math.Abs(b.Vel.Sub(a.Vel).X)
		w.collide(a, b)
		relAfter := math.Abs(b.Vel.Sub(a.Vel).X)

		Expect(relAfter).To(BeNumerically("<=", relBefore*0.95+eps))
	})

	It("skips coincident centers without producing NaN", func() {
		a := mustBody(Vec3{0.1, 0.1, 0.1}, 0.04)
		b := mustBody(Vec3{0.1, 0.1, 0.1}, 0.04)
		a.Vel = Vec3{1, 0, 0}

		w.collide(a, b)

		Expect(a.IsValid()).To(BeTrue())
		Expect(b.IsValid()).To(BeTrue())
		Expect(a.Vel).To(Equal(Vec3{1, 0, 0}))
	})
})

var _ = Describe("Step", func() {
	It("keeps a dropped ball inside the boundary and bounces it (scenario: single drop)", func() {
		cfg := DefaultConfig()
		w := NewWorld(cfg)
		b := mustBody(Vec3{0, 0.75, 0}, 0.04)
		w.AddBody(b)

		dt := 1e-3
		minY := b.Pos.Y
		bounced := false
		prevVy := 0.0

		for i := 0; i < 850; i++ {
			w.Step(dt)

			Expect(b.Pos.Distance(cfg.BorderCenter) + b.Radius).To(BeNumerically("<=", cfg.BorderRadius+1e-6))

			if b.Pos.Y < minY {
				minY = b.Pos.Y
			}
			if !bounced && prevVy < 0 && b.Vel.Y > 0 {
				bounced = true
				// Reflection at the bottom: magnitude scaled by restitution.
				// Tolerance covers the gravity increment applied within the
				// contact step itself.
				Expect(b.Vel.Y).To(BeNumerically("~", -prevVy*cfg.Restitution, 0.02))
			}
			prevVy = b.Vel.Y
		}

		Expect(bounced).To(BeTrue())
		Expect(minY).To(BeNumerically("~", -(cfg.BorderRadius - b.Radius), 1e-3))
		Expect(b.Vel.Y).To(BeNumerically(">", 0))
	})

	It("leaves no sustained interpenetration after the relaxation passes", func() {
		cfg := DefaultConfig()
		w := NewWorld(cfg)
		for i := 0; i < 5; i++ {
			b := mustBody(Vec3{0.001 * float64(i), -0.5 + 0.06*float64(i), 0}, 0.04)
			w.AddBody(b)
		}

		for i := 0; i < 2000; i++ {
			w.Step(1e-3)
		}

		// The stack settles; residual penetration stays within a small bound.
		Expect(w.MaxPenetration()).To(BeNumerically("<", 5e-3))
		Expect(w.IsValid()).To(BeTrue())
	})

	It("is deterministic for identical initial conditions", func() {
		build := func() *World {
			w := NewWorld(DefaultConfig())
			w.AddBody(mustBody(Vec3{0, 0.75, 0}, 0.04))
			w.AddBody(mustBody(Vec3{0.01, 0.6, 0}, 0.04))
			return w
		}
		w1, w2 := build(), build()

		for i := 0; i < 500; i++ {
			w1.Step(1e-3)
			w2.Step(1e-3)
		}

		for i := range w1.Bodies() {
			Expect(w1.Body(i).Pos).To(Equal(w2.Body(i).Pos))
			Expect(w1.Body(i).Vel).To(Equal(w2.Body(i).Vel))
		}
	})

	It("honors the convergence early exit when configured", func() {
		cfg := DefaultConfig()
		cfg.PenetrationTol = 1e-6
		w := NewWorld(cfg)
		w.AddBody(mustBody(Vec3{0, 0.3, 0}, 0.04))

		w.Step(1e-3)
		Expect(w.MaxPenetration()).To(BeNumerically("<=", cfg.PenetrationTol))
	})
})

var _ = Describe("Vec3", func() {
	It("computes lengths and distances", func() {
		v := Vec3{3, 4, 0}
		Expect(v.Length()).To(Equal(5.0))
		Expect(v.LengthSq()).To(Equal(25.0))
		Expect(v.Distance(Vec3{3, 0, 0})).To(Equal(4.0))
	})

	It("normalizes to unit length", func() {
		n := Vec3{0, -2, 0}.Normalize()
		Expect(n.Y).To(BeNumerically("~", -1, eps))
		Expect(n.Length()).To(BeNumerically("~", 1, eps))
	})

	It("detects NaN and Inf", func() {
		Expect(Vec3{1, 2, 3}.IsValid()).To(BeTrue())
		Expect(Vec3{math.NaN(), 0, 0}.IsValid()).To(BeFalse())
		Expect(Vec3{0, math.Inf(1), 0}.IsValid()).To(BeFalse())
	})
})
