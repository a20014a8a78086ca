package shape

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

func TestPolygonArea(t *testing.T) {
	ccw := []v2.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 0, Y: 3}}
	if a := PolygonArea(ccw); a != 12 {
		t.Errorf("ccw area = %g, want 12", a)
	}
	cw := []v2.Vec{ccw[3], ccw[2], ccw[1], ccw[0]}
	if a := PolygonArea(cw); a != -12 {
		t.Errorf("cw area = %g, want -12", a)
	}
}

func TestPolygonCentroid(t *testing.T) {
	tri := []v2.Vec{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}}
	c := PolygonCentroid(tri)
	if math.Abs(c.X-1) > 1e-12 || math.Abs(c.Y-1) > 1e-12 {
		t.Errorf("centroid = %v, want (1,1)", c)
	}

	p, off := IrregularPrism{Points: tri, Height: 1}.Recenter()
	if off != c {
		t.Errorf("offset = %v, want %v", off, c)
	}
	if got := PolygonCentroid(p.Points); math.Abs(got.X) > 1e-12 || math.Abs(got.Y) > 1e-12 {
		t.Errorf("recentred centroid = %v", got)
	}
}

func TestPolygonConvexCollinear(t *testing.T) {
	pts := []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if !PolygonConvex(pts) {
		t.Error("rectangle with a collinear vertex should be convex")
	}
	line := []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	if PolygonConvex(line) {
		t.Error("collinear points are not a convex polygon")
	}
}
