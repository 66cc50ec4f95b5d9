// Package geom holds the renderable-geometry primitives and the procedural
// generators used once at scene setup. Generators return indices local to
// the returned vertex slice (0-based); the scene re-offsets them when
// appending into a shared buffer.
package geom

import (
	"math"

	"github.com/san-kum/ballsim/internal/phys"
)

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

var White = Color{1, 1, 1, 1}

// Vertex is one renderable point: position, color and outward normal.
type Vertex struct {
	Pos    phys.Vec3
	Color  Color
	Normal phys.Vec3
}

// Axis selects the plane a ring lies in.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Sphere tessellates a UV sphere around center. The subdivision count scales
// both stacks and sectors; values below 2 are clamped. Normals point
// outward from the center.
func Sphere(radius float64, subdivisions int, center phys.Vec3, color Color) ([]Vertex, []uint32) {
	if subdivisions < 2 {
		subdivisions = 2
	}
	stacks := subdivisions * 2
	sectors := subdivisions * 3

	vertices := make([]Vertex, 0, (stacks+1)*(sectors+1))
	for i := 0; i <= stacks; i++ {
		phi := math.Pi/2 - math.Pi*float64(i)/float64(stacks)
		y := math.Sin(phi)
		rcos := math.Cos(phi)
		for j := 0; j <= sectors; j++ {
			theta := 2 * math.Pi * float64(j) / float64(sectors)
			normal := phys.Vec3{
				X: rcos * math.Cos(theta),
				Y: y,
				Z: rcos * math.Sin(theta),
			}
			vertices = append(vertices, Vertex{
				Pos:    center.Add(normal.Scale(radius)),
				Color:  color,
				Normal: normal,
			})
		}
	}

	indices := make([]uint32, 0, stacks*sectors*6)
	for i := 0; i < stacks; i++ {
		row := uint32(i * (sectors + 1))
		next := uint32((i + 1) * (sectors + 1))
		for j := 0; j < sectors; j++ {
			k := uint32(j)
			if i != 0 {
				indices = append(indices, row+k, next+k, row+k+1)
			}
			if i != stacks-1 {
				indices = append(indices, row+k+1, next+k, next+k+1)
			}
		}
	}

	return vertices, indices
}

// Ring builds a flat annulus of the given radius and radial thickness,
// lying in the plane perpendicular to axis. Used for the decorative border
// rings; the normal is the plane normal for every vertex.
func Ring(radius, thickness float64, segments int, axis Axis, center phys.Vec3, color Color) ([]Vertex, []uint32) {
	if segments < 3 {
		segments = 3
	}

	var normal phys.Vec3
	inner := radius - thickness/2
	outer := radius + thickness/2

	vertices := make([]Vertex, 0, segments*2)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		c, s := math.Cos(angle), math.Sin(angle)

		var dir phys.Vec3
		switch axis {
		case AxisX:
			normal = phys.Vec3{X: 1}
			dir = phys.Vec3{Y: c, Z: s}
		case AxisY:
			normal = phys.Vec3{Y: 1}
			dir = phys.Vec3{X: c, Z: s}
		default:
			normal = phys.Vec3{Z: 1}
			dir = phys.Vec3{X: c, Y: s}
		}

		vertices = append(vertices,
			Vertex{Pos: center.Add(dir.Scale(inner)), Color: color, Normal: normal},
			Vertex{Pos: center.Add(dir.Scale(outer)), Color: color, Normal: normal},
		)
	}

	indices := make([]uint32, 0, segments*6)
	for i := 0; i < segments; i++ {
		i0 := uint32(i * 2)
		i1 := i0 + 1
		j0 := uint32(((i + 1) % segments) * 2)
		j1 := j0 + 1
		indices = append(indices, i0, i1, j1, i0, j1, j0)
	}

	return vertices, indices
}
