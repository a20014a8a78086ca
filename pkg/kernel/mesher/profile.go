package mesher

import (
	"math"

	"github.com/chazu/shapes/pkg/shape"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// piece is one smooth run of an outline. Its points are copied from the
// outline so shared corners stay bit-identical.
type piece struct {
	pts []v2.Vec
	nrm []v2.Vec
}

// outline is a counter-clockwise planar boundary made of smooth pieces.
// pts holds the boundary once; a closed outline does not repeat its first
// point.
type outline struct {
	pts    []v2.Vec
	pieces []piece
	closed bool
}

func (o outline) perimeter() float64 {
	var l float64
	for _, pc := range o.pieces {
		for i := 1; i < len(pc.pts); i++ {
			l += pc.pts[i].Sub(pc.pts[i-1]).Length()
		}
	}
	return l
}

// Corner order around a rounded rectangle, counter-clockwise from the
// front right.
const (
	frontRight = iota
	backRight
	backLeft
	frontLeft
)

var (
	cornerStartDeg = [4]float64{-90, 0, 90, 180}
	cornerSign     = [4]v2.Vec{{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	// normal of the side leading into each corner
	sideNormal = [4]v2.Vec{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}
)

// rect describes a rectangle centered on the origin with independently
// rounded corners. rounded fixes the point structure of each corner; a
// rounded corner of zero radius collapses to segsCorner+1 equal points.
type rect struct {
	halfW, halfD float64
	radii        [4]float64
	rounded      [4]bool
	segsW, segsD int
	segsCorner   int
}

func roundedRect(p shape.RoundedCornerBox) rect {
	sharp := [4]bool{p.SharpFrontRight, p.SharpBackRight, p.SharpBackLeft, p.SharpFrontLeft}
	r := rect{halfW: p.Width / 2, halfD: p.Depth / 2, segsW: p.SegsW, segsD: p.SegsD, segsCorner: p.SegsCorner}
	for i := range sharp {
		if !sharp[i] && p.CornerRadius > 0 {
			r.rounded[i] = true
			r.radii[i] = p.CornerRadius
		}
	}
	return r
}

// inset shrinks the rectangle by t on every side, keeping corner centers
// where the radius allows.
func (r rect) inset(t float64) rect {
	in := r
	in.halfW, in.halfD = r.halfW-t, r.halfD-t
	for i := range r.radii {
		if r.rounded[i] {
			in.radii[i] = math.Max(r.radii[i]-t, 0)
		}
	}
	return in
}

func (r rect) corner(i int) (pts, nrm []v2.Vec) {
	rad := r.radii[i]
	s := cornerSign[i]
	center := v2.Vec{X: s.X * (r.halfW - rad), Y: s.Y * (r.halfD - rad)}
	if !r.rounded[i] {
		return []v2.Vec{center}, nil
	}
	pts = make([]v2.Vec, r.segsCorner+1)
	nrm = make([]v2.Vec, r.segsCorner+1)
	for m := range pts {
		deg := cornerStartDeg[i] + 90*frac(m, r.segsCorner)
		c, sn := cosSin(deg * math.Pi / 180)
		pts[m] = v2.Vec{X: center.X + rad*c, Y: center.Y + rad*sn}
		nrm[m] = v2.Vec{X: c, Y: sn}
	}
	return pts, nrm
}

// skips reports which sides have zero length, i.e. the corners on either
// end meet.
func (r rect) skips() [4]bool {
	var skip [4]bool
	for i := range skip {
		prev, _ := r.corner((i + 3) % 4)
		cur, _ := r.corner(i)
		skip[i] = prev[len(prev)-1] == cur[0]
	}
	return skip
}

// outline walks the rectangle counter-clockwise starting with the front
// side. skip comes from the outermost rectangle so inset outlines keep the
// same point count.
func (r rect) outline(skip [4]bool) outline {
	var o outline
	o.closed = true
	var corners [4][]v2.Vec
	var normals [4][]v2.Vec
	for i := range corners {
		corners[i], normals[i] = r.corner(i)
	}
	for i := range corners {
		prev := corners[(i+3)%4]
		from, to := prev[len(prev)-1], corners[i][0]
		if !skip[i] {
			n := r.segsW
			if i == backRight || i == frontLeft {
				n = r.segsD
			}
			side := piece{pts: []v2.Vec{from}}
			for m := 1; m < n; m++ {
				pt := lerp2(from, to, frac(m, n))
				o.pts = append(o.pts, pt)
				side.pts = append(side.pts, pt)
			}
			side.pts = append(side.pts, to)
			side.nrm = make([]v2.Vec, len(side.pts))
			for k := range side.nrm {
				side.nrm[k] = sideNormal[i]
			}
			o.pieces = append(o.pieces, side)
		}
		pts := corners[i]
		if skip[i] {
			pts = pts[1:]
		}
		o.pts = append(o.pts, pts...)
		if r.rounded[i] && r.radii[i] > 0 {
			o.pieces = append(o.pieces, piece{pts: corners[i], nrm: normals[i]})
		}
	}
	return o
}

// ellipseOutline samples an ellipse with semi-axes a and b over cols.
// Vertex normals bisect the two sampled edges meeting at each point, so
// they agree with the side winding however coarse the polygon is. The ends
// of an open outline take the normal of their single edge.
func ellipseOutline(a, b float64, cols []column, closed bool) outline {
	pc := piece{pts: make([]v2.Vec, len(cols)), nrm: make([]v2.Vec, len(cols))}
	for j, c := range cols {
		pc.pts[j] = v2.Vec{X: a * c.cos, Y: b * c.sin}
	}
	// the seam column repeats column 0 on a closed outline
	n := len(pc.pts)
	if closed {
		n--
	}
	edge := func(i int) v2.Vec {
		d := pc.pts[(i+1)%n].Sub(pc.pts[i])
		return unit2(v2.Vec{X: d.Y, Y: -d.X})
	}
	for j := 0; j < n; j++ {
		var sum v2.Vec
		switch {
		case closed:
			sum = edge((j + n - 1) % n).Add(edge(j))
		case j == 0:
			sum = edge(0)
		case j == n-1:
			sum = edge(j - 1)
		default:
			sum = edge(j - 1).Add(edge(j))
		}
		pc.nrm[j] = unit2(sum)
	}
	if closed {
		pc.nrm[n] = pc.nrm[0]
	}
	o := outline{pts: pc.pts, pieces: []piece{pc}, closed: closed}
	if closed {
		o.pts = pc.pts[:len(pc.pts)-1]
	}
	return o
}

func unit2(v v2.Vec) v2.Vec {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v2.Vec{X: v.X / l, Y: v.Y / l}
}

// polygonOutline turns a simple polygon into a counter-clockwise outline
// with one flat piece per edge.
func polygonOutline(pts []v2.Vec) outline {
	ccw := append([]v2.Vec(nil), pts...)
	if shape.PolygonArea(ccw) < 0 {
		for i, j := 0, len(ccw)-1; i < j; i, j = i+1, j-1 {
			ccw[i], ccw[j] = ccw[j], ccw[i]
		}
	}
	o := outline{pts: ccw, closed: true}
	for i, a := range ccw {
		b := ccw[(i+1)%len(ccw)]
		d := b.Sub(a)
		n := v2.Vec{X: d.Y, Y: -d.X}
		o.pieces = append(o.pieces, piece{pts: []v2.Vec{a, b}, nrm: []v2.Vec{n, n}})
	}
	return o
}
