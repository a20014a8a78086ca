package mesher

import (
	"github.com/chazu/shapes/pkg/shape"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// extrusion lifts an outline straight up from z0 to z1. A nil inner outline
// means a solid section whose caps fan from center. Cap ring counts of zero
// leave that end open.
type extrusion struct {
	outer       outline
	inner       *outline
	center      v2.Vec
	z0, z1      float64
	segsA       int
	bottomRings int
	topRings    int
	earCaps     bool
}

func (b *builder) extrude(e extrusion) error {
	zs := stations(e.z0, e.z1, e.segsA)
	b.extrudeSides(e.outer, zs, false)
	if e.inner != nil {
		b.extrudeSides(*e.inner, zs, true)
	}

	if err := b.extrusionCap(e, e.z0, e.bottomRings, false); err != nil {
		return err
	}
	if err := b.extrusionCap(e, e.z1, e.topRings, true); err != nil {
		return err
	}

	if e.outer.closed {
		return nil
	}
	// End walls of a partial sweep run from the hub out to the outer
	// outline, with u=0 on the hub and u=1 on the outline.
	bottom, top := max(e.bottomRings, 1), max(e.topRings, 1)
	var poly []v2.Vec
	poly = append(poly, radial(0, 1, e.z0, bottom)...)
	for _, z := range zs {
		poly = append(poly, v2.Vec{X: 1, Y: z})
	}
	poly = append(poly, reverse(radial(0, 1, e.z1, top))...)
	if e.inner != nil {
		for k := len(zs) - 1; k >= 0; k-- {
			poly = append(poly, v2.Vec{X: 0, Y: zs[k]})
		}
	}

	hub := func(j int) v2.Vec {
		if e.inner != nil {
			return e.inner.pts[j]
		}
		return e.center
	}
	last := len(e.outer.pts) - 1
	if err := b.endWall(poly, hub(0), e.outer.pts[0], true); err != nil {
		return err
	}
	return b.endWall(poly, hub(last), e.outer.pts[last], false)
}

// extrudeSides emits one smooth band per outline piece. Inner outlines are
// walked backwards with flipped normals so they face the hole.
func (b *builder) extrudeSides(o outline, zs []float64, inner bool) {
	total := o.perimeter()
	var run float64
	for _, pc := range o.pieces {
		pts, nrm := pc.pts, pc.nrm
		us := make([]float64, len(pts))
		for j := range pts {
			if j > 0 {
				run += pts[j].Sub(pts[j-1]).Length()
			}
			if total > 0 {
				us[j] = run / total
			}
		}
		if inner {
			pts, nrm, us = reverse(pts), reverse(nrm), reverse(us)
		}

		rows := make([][]uint32, len(zs))
		for k, z := range zs {
			rows[k] = make([]uint32, len(pts))
			for j, p := range pts {
				n := v3.Vec{X: nrm[j].X, Y: nrm[j].Y}
				if inner {
					n = n.MulScalar(-1)
				}
				rows[k][j] = b.vertex(v3.Vec{X: p.X, Y: p.Y, Z: z}, n, v2.Vec{X: us[j], Y: frac(k, len(zs)-1)})
			}
		}
		for k := 0; k+1 < len(rows); k++ {
			for j := 0; j+1 < len(pts); j++ {
				b.quad(rows[k][j], rows[k][j+1], rows[k+1][j+1], rows[k+1][j])
			}
		}
	}
}

func (b *builder) extrusionCap(e extrusion, z float64, rings int, up bool) error {
	if rings == 0 {
		return nil
	}
	bb := boundsOf(e.outer.pts)
	if !e.earCaps {
		c := capRing{
			outer:  e.outer.pts,
			center: e.center,
			closed: e.outer.closed,
			z:      z,
			up:     up,
			rings:  rings,
			uv:     bb,
		}
		if e.inner != nil {
			c.inner = e.inner.pts
		}
		return b.fillCap(c)
	}

	tris, err := earClip(e.outer.pts)
	if err != nil {
		return err
	}
	nz := -1.0
	if up {
		nz = 1
	}
	ids := make([]uint32, len(e.outer.pts))
	for i, p := range e.outer.pts {
		ids[i] = b.vertex(v3.Vec{X: p.X, Y: p.Y, Z: z}, v3.Vec{Z: nz}, bb.uv(p))
	}
	for _, t := range tris {
		if up {
			b.tri(ids[t[0]], ids[t[1]], ids[t[2]])
		} else {
			b.tri(ids[t[0]], ids[t[2]], ids[t[1]])
		}
	}
	return nil
}

func reverse[T any](s []T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

func capRings(open bool, rings int) int {
	if open {
		return 0
	}
	return rings
}

func ellipticalExtrusion(p shape.EllipticalPrism) extrusion {
	sweep, closed := sliceSweep(p.RingSliceDeg)
	cols := sweepColumns(0, sweep, p.SegsC, closed)
	e := extrusion{
		outer:       ellipseOutline(p.MajorAxis, p.MinorAxis, cols, closed),
		z1:          p.Height,
		segsA:       p.SegsA,
		bottomRings: capRings(p.OpenBottom, p.SegsBottomCap),
		topRings:    capRings(p.OpenTop, p.SegsTopCap),
	}
	if p.Thickness > 0 {
		in := ellipseOutline(p.MajorAxis-p.Thickness, p.MinorAxis-p.Thickness, cols, closed)
		e.inner = &in
	}
	return e
}

func roundedBoxExtrusion(p shape.RoundedCornerBox) extrusion {
	r := roundedRect(p)
	skip := r.skips()
	e := extrusion{
		outer:       r.outline(skip),
		z0:          -p.Height / 2,
		z1:          p.Height / 2,
		segsA:       p.SegsZ,
		bottomRings: capRings(p.OpenBottom, p.SegsBottomCap),
		topRings:    capRings(p.OpenTop, p.SegsTopCap),
	}
	if p.Thickness > 0 {
		in := r.inset(p.Thickness).outline(skip)
		e.inner = &in
	}
	return e
}

func polygonExtrusion(p shape.IrregularPrism) extrusion {
	return extrusion{
		outer:       polygonOutline(p.Points),
		z1:          p.Height,
		segsA:       p.SegsA,
		bottomRings: 1,
		topRings:    1,
		earCaps:     true,
	}
}
