package mesher

import (
	"fmt"
	"math"

	"github.com/chazu/shapes/pkg/shape"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// cleanLoop drops consecutive duplicate points, including a closing point
// equal to the first.
func cleanLoop(pts []v2.Vec) []v2.Vec {
	out := make([]v2.Vec, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func cross2(o, a, b v2.Vec) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// earClip triangulates a simple counter-clockwise polygon. Triangles are
// returned counter-clockwise as index triples into pts. Ears are only cut at
// strictly convex vertices whose triangle contains no other vertex, so
// collinear runs along the boundary stay intact.
func earClip(pts []v2.Vec) ([][3]int, error) {
	n := len(pts)
	if n < 3 {
		return nil, fmt.Errorf("mesher: polygon of %d points: %w", n, shape.ErrInvalidParameter)
	}
	bb := boundsOf(pts)
	scale := math.Max(bb.max.X-bb.min.X, bb.max.Y-bb.min.Y)
	eps := 1e-12 * scale * scale

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	tris := make([][3]int, 0, n-2)

	for len(idx) > 3 {
		cut := false
		for i := range idx {
			m := len(idx)
			ia, ib, ic := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
			a, b, c := pts[ia], pts[ib], pts[ic]
			if cross2(a, b, c) <= eps {
				continue
			}
			if containsOther(pts, idx, ia, ib, ic, eps) {
				continue
			}
			tris = append(tris, [3]int{ia, ib, ic})
			idx = append(idx[:i], idx[i+1:]...)
			cut = true
			break
		}
		if !cut {
			return nil, fmt.Errorf("mesher: polygon of %d points has no ear left at %d: %w", n, len(idx), shape.ErrInvalidParameter)
		}
	}
	if cross2(pts[idx[0]], pts[idx[1]], pts[idx[2]]) > eps {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris, nil
}

func containsOther(pts []v2.Vec, idx []int, ia, ib, ic int, eps float64) bool {
	a, b, c := pts[ia], pts[ib], pts[ic]
	for _, j := range idx {
		if j == ia || j == ib || j == ic {
			continue
		}
		p := pts[j]
		if p == a || p == b || p == c {
			continue
		}
		if cross2(a, b, p) >= -eps && cross2(b, c, p) >= -eps && cross2(c, a, p) >= -eps {
			return true
		}
	}
	return false
}
