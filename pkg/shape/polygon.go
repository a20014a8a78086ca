package shape

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// PolygonArea returns the signed area of a closed polygon: positive for
// counter-clockwise winding.
func PolygonArea(pts []v2.Vec) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// PolygonCentroid returns the area centroid of a closed polygon, falling
// back to the vertex mean for degenerate outlines.
func PolygonCentroid(pts []v2.Vec) v2.Vec {
	a := PolygonArea(pts)
	if a == 0 {
		var c v2.Vec
		for _, p := range pts {
			c.X += p.X
			c.Y += p.Y
		}
		n := float64(max(len(pts), 1))
		return v2.Vec{X: c.X / n, Y: c.Y / n}
	}
	var cx, cy float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		f := p.X*q.Y - q.X*p.Y
		cx += (p.X + q.X) * f
		cy += (p.Y + q.Y) * f
	}
	return v2.Vec{X: cx / (6 * a), Y: cy / (6 * a)}
}

// PolygonConvex reports whether every turn of the closed polygon has the
// same direction. Collinear vertices are ignored.
func PolygonConvex(pts []v2.Vec) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a, b, c := pts[i], pts[(i+1)%n], pts[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return sign != 0
}

// PolygonSimple reports whether no two non-adjacent edges of the closed
// polygon touch.
func PolygonSimple(pts []v2.Vec) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsTouch(a, b, pts[j], pts[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

func orient(a, b, c v2.Vec) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p v2.Vec) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

func segmentsTouch(a, b, c, d v2.Vec) bool {
	o1, o2 := orient(a, b, c), orient(a, b, d)
	o3, o4 := orient(c, d, a), orient(c, d, b)
	if ((o1 > 0 && o2 < 0) || (o1 < 0 && o2 > 0)) &&
		((o3 > 0 && o4 < 0) || (o3 < 0 && o4 > 0)) {
		return true
	}
	return (o1 == 0 && onSegment(a, b, c)) ||
		(o2 == 0 && onSegment(a, b, d)) ||
		(o3 == 0 && onSegment(c, d, a)) ||
		(o4 == 0 && onSegment(c, d, b))
}
