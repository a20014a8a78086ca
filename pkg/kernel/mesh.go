package kernel

import (
	"errors"
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrInvalidMesh is wrapped by every Mesh.Validate failure.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is an indexed triangle mesh. All arrays are flat: vertices and
// normals have 3 floats per vertex, uvs 2 floats per vertex, indices 3
// entries per triangle. Triangles wind counter-clockwise seen from the side
// their normals point to.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...] unit length
	UVs      []float32 `json:"uvs"`      // [u0,v0, u1,v1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // catalog entry this mesh was built for
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Position returns vertex i.
func (m *Mesh) Position(i int) v3.Vec {
	return v3.Vec{X: float64(m.Vertices[3*i]), Y: float64(m.Vertices[3*i+1]), Z: float64(m.Vertices[3*i+2])}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) v3.Vec {
	return v3.Vec{X: float64(m.Normals[3*i]), Y: float64(m.Normals[3*i+1]), Z: float64(m.Normals[3*i+2])}
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c int) {
	return int(m.Indices[3*t]), int(m.Indices[3*t+1]), int(m.Indices[3*t+2])
}

// FaceNormal returns the unit normal implied by the winding of triangle t.
func (m *Mesh) FaceNormal(t int) v3.Vec {
	a, b, c := m.Triangle(t)
	pa := m.Position(a)
	n := m.Position(b).Sub(pa).Cross(m.Position(c).Sub(pa))
	if l := n.Length(); l > 0 {
		return n.MulScalar(1 / l)
	}
	return n
}

// BoundingBox returns the axis-aligned bounds of the vertices. An empty mesh
// returns zero bounds.
func (m *Mesh) BoundingBox() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	for k := 0; k < 3; k++ {
		min[k], max[k] = math.Inf(1), math.Inf(-1)
	}
	for i := 0; i < len(m.Vertices); i += 3 {
		for k := 0; k < 3; k++ {
			v := float64(m.Vertices[i+k])
			min[k] = math.Min(min[k], v)
			max[k] = math.Max(max[k], v)
		}
	}
	return min, max
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]float32(nil), m.Vertices...),
		Normals:  append([]float32(nil), m.Normals...),
		UVs:      append([]float32(nil), m.UVs...),
		Indices:  append([]uint32(nil), m.Indices...),
		PartName: m.PartName,
	}
}

// Tolerances used by Validate.
const (
	minTriangleArea = 1e-12
	normalTolerance = 1e-3
)

// Validate checks the structural invariants every builder guarantees:
// attribute arrays agree in length, indices are in range, no triangle is
// degenerate, normals are unit length and agree with the triangle winding.
func (m *Mesh) Validate() error {
	n := m.VertexCount()
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("kernel: %d vertex floats is not a multiple of 3: %w", len(m.Vertices), ErrInvalidMesh)
	}
	if len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("kernel: %d normal floats for %d vertices: %w", len(m.Normals), n, ErrInvalidMesh)
	}
	if len(m.UVs) != 2*n {
		return fmt.Errorf("kernel: %d uv floats for %d vertices: %w", len(m.UVs), n, ErrInvalidMesh)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("kernel: %d indices is not a multiple of 3: %w", len(m.Indices), ErrInvalidMesh)
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("kernel: index %d = %d out of range (%d vertices): %w", i, idx, n, ErrInvalidMesh)
		}
	}
	for i := 0; i < n; i++ {
		if l := m.Normal(i).Length(); math.Abs(l-1) > normalTolerance {
			return fmt.Errorf("kernel: vertex %d normal length %g: %w", i, l, ErrInvalidMesh)
		}
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		pa := m.Position(a)
		cross := m.Position(b).Sub(pa).Cross(m.Position(c).Sub(pa))
		if area := cross.Length() / 2; area <= minTriangleArea {
			return fmt.Errorf("kernel: triangle %d (%d,%d,%d) has area %g: %w", t, a, b, c, area, ErrInvalidMesh)
		}
		sum := m.Normal(a).Add(m.Normal(b)).Add(m.Normal(c))
		if cross.Dot(sum) <= 0 {
			return fmt.Errorf("kernel: triangle %d winding disagrees with its vertex normals: %w", t, ErrInvalidMesh)
		}
	}
	return nil
}
