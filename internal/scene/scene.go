// Package scene owns the full set of bodies and meshes for one simulation
// session, partitioned into a static buffer (fixed after setup) and a
// dynamic buffer (re-synced to body motion every step).
package scene

import (
	"errors"

	"github.com/san-kum/ballsim/internal/geom"
	"github.com/san-kum/ballsim/internal/phys"
)

// ErrSetupClosed is returned by setup operations after the first Step.
var ErrSetupClosed = errors.New("scene: setup is closed once stepping has begun")

// Ball tessellation detail. Setup-time cost only; vertex positions are
// translated rigidly afterwards, never regenerated.
const ballSubdivisions = 6

// bufferState tracks the append position of one shared vertex/index buffer.
type bufferState struct {
	meshes      []*Mesh
	vertexCount int
	indexCount  int
}

// append re-offsets locally 0-based indices into the shared buffer and
// registers the mesh. Offsets are monotonically increasing, so mesh ranges
// never overlap.
func (bs *bufferState) append(vertices []geom.Vertex, indices []uint32, center phys.Vec3) *Mesh {
	offset := make([]uint32, len(indices))
	for i, idx := range indices {
		offset[i] = idx + uint32(bs.vertexCount)
	}
	m := &Mesh{
		Vertices:     vertices,
		Indices:      offset,
		BufferOffset: bs.indexCount,
		VertexOffset: bs.vertexCount,
		center:       center,
	}
	bs.meshes = append(bs.meshes, m)
	bs.vertexCount += len(vertices)
	bs.indexCount += len(indices)
	return m
}

func (bs *bufferState) vertices() []geom.Vertex {
	out := make([]geom.Vertex, 0, bs.vertexCount)
	for _, m := range bs.meshes {
		out = append(out, m.Vertices...)
	}
	return out
}

func (bs *bufferState) indices() []uint32 {
	out := make([]uint32, 0, bs.indexCount)
	for _, m := range bs.meshes {
		out = append(out, m.Indices...)
	}
	return out
}

// Scene is the sole mutable aggregate: a physics world plus the renderable
// geometry derived from it. Dynamic meshes correspond 1:1, by creation
// order, to bodies in the world; static meshes have no body backing.
type Scene struct {
	world   *phys.World
	static  bufferState
	dynamic bufferState
	started bool
}

func New(cfg phys.Config) *Scene {
	return &Scene{world: phys.NewWorld(cfg)}
}

func (s *Scene) World() *phys.World {
	return s.world
}

// AddBall appends a body and its paired dynamic mesh, returning the body
// handle. Valid only during scene setup.
func (s *Scene) AddBall(radius float64, center phys.Vec3, color geom.Color) (int, error) {
	if s.started {
		return 0, ErrSetupClosed
	}
	body, err := phys.NewBody(center, radius)
	if err != nil {
		return 0, err
	}
	handle := s.world.AddBody(body)
	vertices, indices := geom.Sphere(radius, ballSubdivisions, center, color)
	s.dynamic.append(vertices, indices, center)
	return handle, nil
}

// CreateBorder populates the static buffer with three orthogonal decorative
// rings tracing the boundary sphere. Setup-only; the rings never move.
func (s *Scene) CreateBorder(radius float64, subdivisions int, center phys.Vec3) error {
	if s.started {
		return ErrSetupClosed
	}
	if radius <= 0 {
		return phys.ErrInvalidRadius
	}
	segments := subdivisions * 16
	thickness := radius * 0.01
	for _, axis := range []geom.Axis{geom.AxisX, geom.AxisY, geom.AxisZ} {
		vertices, indices := geom.Ring(radius, thickness, segments, axis, center, geom.White)
		s.static.append(vertices, indices, center)
	}
	return nil
}

// Step advances the simulation by one logical tick and projects the
// resulting body motion onto the dynamic meshes. First call seals setup.
func (s *Scene) Step(dt float64) {
	s.started = true
	s.world.Step(dt)
	s.syncGeometry()
}

// syncGeometry translates each dynamic mesh rigidly by its body's net
// positional delta since the last sync. Accumulating deltas instead of
// regenerating geometry trades long-run float drift for per-step cost.
func (s *Scene) syncGeometry() {
	bodies := s.world.Bodies()
	for i, m := range s.dynamic.meshes {
		m.translate(bodies[i].Pos.Sub(m.center))
	}
}

func (s *Scene) StaticMeshes() []*Mesh  { return s.static.meshes }
func (s *Scene) DynamicMeshes() []*Mesh { return s.dynamic.meshes }

// Flattened projections of the shared buffers, for upload to a renderer.
func (s *Scene) StaticVertices() []geom.Vertex  { return s.static.vertices() }
func (s *Scene) DynamicVertices() []geom.Vertex { return s.dynamic.vertices() }
func (s *Scene) StaticIndices() []uint32        { return s.static.indices() }
func (s *Scene) DynamicIndices() []uint32       { return s.dynamic.indices() }
