package kernel

import (
	"fmt"
	"math"

	"github.com/chazu/shapes/pkg/shape"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Placement positions one arena part inside a composite: the part is rotated
// by AngleDeg about Axis (through its local origin), then translated to
// Center.
type Placement struct {
	Part     int
	Axis     v3.Vec
	AngleDeg float64
	Center   v3.Vec
}

// Arena holds the sub-meshes a composite is assembled from. Parts are never
// modified; the same part may be placed any number of times.
type Arena struct {
	parts []*Mesh
}

// Add stores m and returns its part index.
func (a *Arena) Add(m *Mesh) int {
	a.parts = append(a.parts, m)
	return len(a.parts) - 1
}

// Len returns the number of stored parts.
func (a *Arena) Len() int { return len(a.parts) }

// Part returns part i.
func (a *Arena) Part(i int) *Mesh { return a.parts[i] }

// Compose places arena parts in order and returns the combined mesh. The
// result's vertex and triangle counts are the sums over the placements,
// whatever their order. Seams are not welded.
func Compose(a *Arena, placements []Placement) (*Mesh, error) {
	out := &Mesh{}
	for i, p := range placements {
		if p.Part < 0 || p.Part >= a.Len() {
			return nil, fmt.Errorf("kernel: placement %d: part %d not in arena of %d: %w",
				i, p.Part, a.Len(), shape.ErrInvalidParameter)
		}
		merged, err := Merge(out, a.parts[p.Part], p.Axis, p.Center, p.AngleDeg)
		if err != nil {
			return nil, fmt.Errorf("kernel: placement %d: %w", i, err)
		}
		out = merged
	}
	return out, nil
}

// Merge returns a new mesh holding main followed by component rotated by
// angleDeg about axis and translated to center. Component indices are offset
// by main's vertex count. Normals are rotated, uvs are copied unchanged.
// Neither input is modified.
func Merge(main, component *Mesh, axis, center v3.Vec, angleDeg float64) (*Mesh, error) {
	rot := sdf.Identity3d()
	if angleDeg != 0 {
		l := axis.Length()
		if l == 0 || math.IsNaN(l) {
			return nil, fmt.Errorf("kernel: merge: zero rotation axis for angle %g: %w", angleDeg, shape.ErrInvalidParameter)
		}
		rot = sdf.Rotate3d(axis.MulScalar(1/l), sdf.DtoR(angleDeg))
	}
	xform := sdf.Translate3d(center).Mul(rot)

	base := main.VertexCount()
	if uint64(base)+uint64(component.VertexCount()) > math.MaxUint32 {
		return nil, fmt.Errorf("kernel: merge: %d vertices overflow 32-bit indices: %w",
			base+component.VertexCount(), shape.ErrInvalidParameter)
	}

	out := &Mesh{
		Vertices: make([]float32, 0, len(main.Vertices)+len(component.Vertices)),
		Normals:  make([]float32, 0, len(main.Normals)+len(component.Normals)),
		UVs:      make([]float32, 0, len(main.UVs)+len(component.UVs)),
		Indices:  make([]uint32, 0, len(main.Indices)+len(component.Indices)),
		PartName: main.PartName,
	}
	out.Vertices = append(out.Vertices, main.Vertices...)
	out.Normals = append(out.Normals, main.Normals...)
	out.UVs = append(out.UVs, main.UVs...)
	out.Indices = append(out.Indices, main.Indices...)

	for i := 0; i < component.VertexCount(); i++ {
		p := xform.MulPosition(component.Position(i))
		n := rot.MulPosition(component.Normal(i))
		if l := n.Length(); l > 0 {
			n = n.MulScalar(1 / l)
		}
		out.Vertices = append(out.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		out.Normals = append(out.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	out.UVs = append(out.UVs, component.UVs...)
	for _, idx := range component.Indices {
		out.Indices = append(out.Indices, idx+uint32(base))
	}
	return out, nil
}
