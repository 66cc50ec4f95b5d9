package scene

import (
	"github.com/san-kum/ballsim/internal/geom"
	"github.com/san-kum/ballsim/internal/phys"
)

// Mesh is one contiguous run of triangles inside a shared buffer. Indices
// are stored already offset by the vertex base of the buffer the mesh lives
// in; BufferOffset is the mesh's starting position in the shared index
// buffer, VertexOffset its vertex base.
type Mesh struct {
	Vertices     []geom.Vertex
	Indices      []uint32
	BufferOffset int
	VertexOffset int

	center phys.Vec3
}

// Center is the cached reference point used to compute incremental vertex
// displacement. For a ball mesh it tracks the paired body's position.
func (m *Mesh) Center() phys.Vec3 {
	return m.center
}

// translate moves every vertex rigidly by delta and advances the cached
// center. Normals are unchanged: translation preserves orientation.
func (m *Mesh) translate(delta phys.Vec3) {
	for i := range m.Vertices {
		m.Vertices[i].Pos = m.Vertices[i].Pos.Add(delta)
	}
	m.center = m.center.Add(delta)
}

// VertexData flattens vertices into interleaved float32 data ready for GPU
// upload: position, RGBA color and normal, 10 floats per vertex.
func VertexData(vertices []geom.Vertex) []float32 {
	out := make([]float32, 0, len(vertices)*10)
	for _, v := range vertices {
		out = append(out,
			float32(v.Pos.X), float32(v.Pos.Y), float32(v.Pos.Z),
			float32(v.Color.R), float32(v.Color.G), float32(v.Color.B), float32(v.Color.A),
			float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z),
		)
	}
	return out
}
