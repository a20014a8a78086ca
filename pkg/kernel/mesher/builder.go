package mesher

import (
	"fmt"
	"math"

	"github.com/chazu/shapes/pkg/kernel"
	"github.com/chazu/shapes/pkg/shape"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// builder accumulates vertices and triangles in float64 and converts to a
// kernel.Mesh once at the end. Collapsed quads are detected on the float64
// positions, so seam and pole vertices must be computed from identical
// inputs.
type builder struct {
	pos []v3.Vec
	nrm []v3.Vec
	uv  []v2.Vec
	idx []uint32
}

func (b *builder) vertex(p, n v3.Vec, uv v2.Vec) uint32 {
	if l := n.Length(); l > 0 {
		n = n.MulScalar(1 / l)
	}
	b.pos = append(b.pos, p)
	b.nrm = append(b.nrm, n)
	b.uv = append(b.uv, uv)
	return uint32(len(b.pos) - 1)
}

// tri emits a counter-clockwise triangle, dropping it when the three
// positions are collinear.
func (b *builder) tri(i, j, k uint32) {
	pi := b.pos[i]
	if b.pos[j].Sub(pi).Cross(b.pos[k].Sub(pi)) == (v3.Vec{}) {
		return
	}
	b.idx = append(b.idx, i, j, k)
}

// quad emits the counter-clockwise quad i,j,k,l as two triangles. Corners
// sharing a position with their successor are dropped first, so quads
// touching a pole or a collapsed corner become single triangles.
func (b *builder) quad(i, j, k, l uint32) {
	in := [4]uint32{i, j, k, l}
	var out []uint32
	for n := 0; n < 4; n++ {
		if b.pos[in[n]] != b.pos[in[(n+1)%4]] {
			out = append(out, in[n])
		}
	}
	switch len(out) {
	case 4:
		b.tri(out[0], out[1], out[2])
		b.tri(out[0], out[2], out[3])
	case 3:
		b.tri(out[0], out[1], out[2])
	}
}

func (b *builder) mesh() (*kernel.Mesh, error) {
	if len(b.pos) > math.MaxUint32 {
		return nil, fmt.Errorf("mesher: %d vertices overflow 32-bit indices: %w", len(b.pos), shape.ErrInvalidParameter)
	}
	m := &kernel.Mesh{
		Vertices: make([]float32, 0, 3*len(b.pos)),
		Normals:  make([]float32, 0, 3*len(b.pos)),
		UVs:      make([]float32, 0, 2*len(b.pos)),
		Indices:  append([]uint32(nil), b.idx...),
	}
	for i, p := range b.pos {
		n := b.nrm[i]
		m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
		m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		m.UVs = append(m.UVs, float32(b.uv[i].X), float32(b.uv[i].Y))
	}
	return m, nil
}

// lerp is exact at both ends: lerp(a, b, 0) == a and lerp(a, b, 1) == b.
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

func lerp2(a, b v2.Vec, t float64) v2.Vec {
	return v2.Vec{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}

func frac(k, n int) float64 {
	return float64(k) / float64(n)
}

// bounds2 is a 2-D box used to normalise planar uvs.
type bounds2 struct {
	min, max v2.Vec
}

func boundsOf(pts ...[]v2.Vec) bounds2 {
	bb := bounds2{min: v2.Vec{X: math.Inf(1), Y: math.Inf(1)}, max: v2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}}
	for _, ps := range pts {
		for _, p := range ps {
			bb.min.X, bb.min.Y = math.Min(bb.min.X, p.X), math.Min(bb.min.Y, p.Y)
			bb.max.X, bb.max.Y = math.Max(bb.max.X, p.X), math.Max(bb.max.Y, p.Y)
		}
	}
	return bb
}

func (bb bounds2) uv(p v2.Vec) v2.Vec {
	du, dv := bb.max.X-bb.min.X, bb.max.Y-bb.min.Y
	var u, v float64
	if du > 0 {
		u = (p.X - bb.min.X) / du
	}
	if dv > 0 {
		v = (p.Y - bb.min.Y) / dv
	}
	return v2.Vec{X: u, Y: v}
}
