// Package inspect measures generated meshes: welded edge topology, surface
// area, enclosed volume and projected area.
package inspect

import (
	"fmt"
	"math"

	"github.com/chazu/shapes/pkg/kernel"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Report summarises one mesh.
type Report struct {
	Vertices  int
	Triangles int
	// Welded counts distinct positions.
	Welded           int
	BoundaryEdges    int
	NonManifoldEdges int
	// FlippedEdges counts edges whose two triangles traverse it in the same
	// direction.
	FlippedEdges int
	Manifold     bool
	Area         float64
	// Volume is signed: positive for outward-facing closed meshes.
	Volume float64
	// AxisArea holds, per axis, the area projected onto the plane normal to
	// that axis by triangles facing its positive direction.
	AxisArea [3]float64
	// SignedAxisArea sums the signed projected areas per axis. It is zero
	// for a closed surface.
	SignedAxisArea [3]float64
}

func (r Report) String() string {
	return fmt.Sprintf("%d vertices (%d welded), %d triangles, boundary %d, non-manifold %d, flipped %d, area %.4g, volume %.4g",
		r.Vertices, r.Welded, r.Triangles, r.BoundaryEdges, r.NonManifoldEdges, r.FlippedEdges, r.Area, r.Volume)
}

type key [3]float32

type edge struct{ a, b int }

// Inspect welds positions by exact float32 equality and analyses m.
func Inspect(m *kernel.Mesh) Report {
	r := Report{Vertices: m.VertexCount(), Triangles: m.TriangleCount()}

	ids := make(map[key]int, r.Vertices)
	weld := make([]int, r.Vertices)
	for i := range weld {
		k := key{m.Vertices[3*i], m.Vertices[3*i+1], m.Vertices[3*i+2]}
		id, ok := ids[k]
		if !ok {
			id = len(ids)
			ids[k] = id
		}
		weld[i] = id
	}
	r.Welded = len(ids)

	directed := make(map[edge]int, 3*r.Triangles)
	for t := 0; t < r.Triangles; t++ {
		i, j, k := m.Triangle(t)
		a, b, c := m.Position(i), m.Position(j), m.Position(k)
		cr := b.Sub(a).Cross(c.Sub(a))
		r.Area += cr.Length() / 2
		r.Volume += a.Dot(b.Cross(c)) / 6
		for axis, v := range [3]float64{cr.X, cr.Y, cr.Z} {
			r.SignedAxisArea[axis] += v / 2
			if v > 0 {
				r.AxisArea[axis] += v / 2
			}
		}
		w := [3]int{weld[i], weld[j], weld[k]}
		for n := 0; n < 3; n++ {
			directed[edge{w[n], w[(n+1)%3]}]++
		}
	}

	seen := make(map[edge]bool, len(directed))
	for e, n := range directed {
		u := edge{min(e.a, e.b), max(e.a, e.b)}
		if seen[u] {
			continue
		}
		seen[u] = true
		back := directed[edge{e.b, e.a}]
		if e.a == e.b {
			back = 0
		}
		total := n + back
		switch {
		case total == 1:
			r.BoundaryEdges++
		case total > 2:
			r.NonManifoldEdges++
		case n == 2 || back == 2:
			r.FlippedEdges++
		}
	}
	r.Manifold = r.BoundaryEdges == 0 && r.NonManifoldEdges == 0 && r.FlippedEdges == 0
	return r
}

// Planar reports whether every point lies within tol of the plane through
// the first three non-collinear points.
func Planar(points []v3.Vec, tol float64) bool {
	if len(points) < 4 {
		return true
	}
	var n v3.Vec
	o := points[0]
	for i := 1; i < len(points) && n.Length() == 0; i++ {
		for j := i + 1; j < len(points); j++ {
			c := points[i].Sub(o).Cross(points[j].Sub(o))
			if c.Length() > 1e-12 {
				n = c.MulScalar(1 / c.Length())
				break
			}
		}
	}
	if n.Length() == 0 {
		return true
	}
	for _, p := range points {
		if math.Abs(p.Sub(o).Dot(n)) > tol {
			return false
		}
	}
	return true
}
