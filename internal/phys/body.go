package phys

import "errors"

// Construction errors. Radius and mass are validated once at scene setup;
// a body that passes construction is assumed valid for the rest of the run.
var (
	ErrInvalidRadius = errors.New("phys: body radius must be positive")
	ErrInvalidMass   = errors.New("phys: body mass must be positive")
)

// Body is a dynamic, non-rotating sphere. Radius and Mass are fixed after
// construction; Pos and Vel are mutated only by World.Step.
type Body struct {
	Pos    Vec3
	Vel    Vec3
	Radius float64
	Mass   float64

	invMass float64
}

// NewBody creates a unit-mass body at rest.
func NewBody(pos Vec3, radius float64) (*Body, error) {
	return NewBodyWithMass(pos, radius, 1.0)
}

func NewBodyWithMass(pos Vec3, radius, mass float64) (*Body, error) {
	if radius <= 0 {
		return nil, ErrInvalidRadius
	}
	if mass <= 0 {
		return nil, ErrInvalidMass
	}
	return &Body{
		Pos:     pos,
		Radius:  radius,
		Mass:    mass,
		invMass: 1.0 / mass,
	}, nil
}

func (b *Body) InvMass() float64 {
	return b.invMass
}

func (b *Body) Speed() float64 {
	return b.Vel.Length()
}

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.LengthSq()
}

// IsValid reports whether position and velocity are free of NaN/Inf.
func (b *Body) IsValid() bool {
	return b.Pos.IsValid() && b.Vel.IsValid()
}
