package mesher

import (
	"math"

	"github.com/chazu/shapes/pkg/shape"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// sample is one point of a cross-section profile in the (r, z) half-plane
// with its outward normal.
type sample struct {
	r, z   float64
	nr, nz float64
}

// profile is a polyline of samples swept around Z into one smooth surface.
// It runs so that the outward side is on its right in (r, z).
type profile []sample

// flatCap closes a revolution with a horizontal disc or annulus.
type flatCap struct {
	z            float64
	inner, outer float64
	rings        int
	up           bool
}

// revolution is a cross-section swept around Z. outline is the closed
// counter-clockwise boundary of the section in (r, z), including every
// point of the profiles and cap subdivisions; it closes partial sweeps.
type revolution struct {
	profiles []profile
	caps     []flatCap
	outline  []v2.Vec
}

func (p profile) points() []v2.Vec {
	pts := make([]v2.Vec, len(p))
	for i, s := range p {
		pts[i] = v2.Vec{X: s.r, Y: s.z}
	}
	return pts
}

func (p profile) reversed() profile {
	out := make(profile, len(p))
	for i, s := range p {
		out[len(p)-1-i] = sample{r: s.r, z: s.z, nr: -s.nr, nz: -s.nz}
	}
	return out
}

// radial returns n+1 points from r0 to r1 at height z. Caps sample radii in
// the same direction, so r0 is always the hub side; callers walking outward
// in reverse use reverse(radial(...)).
func radial(r0, r1, z float64, n int) []v2.Vec {
	pts := make([]v2.Vec, n+1)
	for i := range pts {
		pts[i] = v2.Vec{X: lerp(r0, r1, frac(i, n)), Y: z}
	}
	return pts
}

func (b *builder) revolve(rev revolution, sliceDeg float64, segs int) error {
	sweep, closed := sliceSweep(sliceDeg)
	cols := sweepColumns(0, sweep, segs, closed)

	for _, p := range rev.profiles {
		b.sweepProfile(p, cols)
	}

	for _, c := range rev.caps {
		n := len(cols)
		if closed {
			n--
		}
		ring := make([]v2.Vec, n)
		for j := range ring {
			ring[j] = v2.Vec{X: c.outer * cols[j].cos, Y: c.outer * cols[j].sin}
		}
		var hole []v2.Vec
		if c.inner > 0 {
			hole = make([]v2.Vec, n)
			for j := range hole {
				hole[j] = v2.Vec{X: c.inner * cols[j].cos, Y: c.inner * cols[j].sin}
			}
		}
		c := c
		err := b.fillCap(capRing{
			outer:  ring,
			inner:  hole,
			closed: closed,
			z:      c.z,
			up:     c.up,
			rings:  c.rings,
			uv:     bounds2{min: v2.Vec{X: -c.outer, Y: -c.outer}, max: v2.Vec{X: c.outer, Y: c.outer}},
			at: func(j int, t float64) v2.Vec {
				r := lerp(c.inner, c.outer, t)
				return v2.Vec{X: r * cols[j].cos, Y: r * cols[j].sin}
			},
		})
		if err != nil {
			return err
		}
	}

	if closed {
		return nil
	}
	first, last := cols[0], cols[len(cols)-1]
	if err := b.endWall(rev.outline, v2.Vec{}, v2.Vec{X: first.cos, Y: first.sin}, true); err != nil {
		return err
	}
	return b.endWall(rev.outline, v2.Vec{}, v2.Vec{X: last.cos, Y: last.sin}, false)
}

// sweepProfile emits the surface of revolution of p over cols. v runs along
// the profile by arc length.
func (b *builder) sweepProfile(p profile, cols []column) {
	if len(p) < 2 {
		return
	}
	vs := make([]float64, len(p))
	for k := 1; k < len(p); k++ {
		vs[k] = vs[k-1] + math.Hypot(p[k].r-p[k-1].r, p[k].z-p[k-1].z)
	}
	total := vs[len(vs)-1]

	rows := make([][]uint32, len(p))
	for k, s := range p {
		v := 0.0
		if total > 0 {
			v = vs[k] / total
		}
		rows[k] = make([]uint32, len(cols))
		for j, c := range cols {
			pos := v3.Vec{X: s.r * c.cos, Y: s.r * c.sin, Z: s.z}
			nrm := v3.Vec{X: s.nr * c.cos, Y: s.nr * c.sin, Z: s.nz}
			rows[k][j] = b.vertex(pos, nrm, v2.Vec{X: c.u, Y: v})
		}
	}
	for k := 0; k+1 < len(rows); k++ {
		for j := 0; j+1 < len(cols); j++ {
			b.quad(rows[k][j], rows[k][j+1], rows[k+1][j+1], rows[k+1][j])
		}
	}
}

func stations(z0, z1 float64, n int) []float64 {
	zs := make([]float64, n+1)
	for k := range zs {
		zs[k] = lerp(z0, z1, frac(k, n))
	}
	return zs
}

func cylinderSection(p shape.Cylinder) revolution {
	var rev revolution
	zs := stations(0, p.Height, p.SegsA)
	hollow := p.InnerRadius > 0

	outer := make(profile, len(zs))
	for k, z := range zs {
		outer[k] = sample{r: p.Radius, z: z, nr: 1}
	}
	rev.profiles = append(rev.profiles, outer)
	var inner profile
	if hollow {
		for _, z := range zs {
			inner = append(inner, sample{r: p.InnerRadius, z: z, nr: 1})
		}
		inner = inner.reversed()
		rev.profiles = append(rev.profiles, inner)
	}

	bottomRings, topRings := 1, 1
	if !p.OpenBottom {
		bottomRings = p.SegsBottomCap
		rev.caps = append(rev.caps, flatCap{z: 0, inner: p.InnerRadius, outer: p.Radius, rings: bottomRings})
	}
	if !p.OpenTop {
		topRings = p.SegsTopCap
		rev.caps = append(rev.caps, flatCap{z: p.Height, inner: p.InnerRadius, outer: p.Radius, rings: topRings, up: true})
	}

	rev.outline = append(rev.outline, radial(p.InnerRadius, p.Radius, 0, bottomRings)...)
	rev.outline = append(rev.outline, outer.points()...)
	rev.outline = append(rev.outline, reverse(radial(p.InnerRadius, p.Radius, p.Height, topRings))...)
	rev.outline = append(rev.outline, inner.points()...)
	return rev
}

// capsuleProfile runs from the bottom of a capsule shell of radius rr to its
// top. Hemispheres are sampled by inclination from the pole.
func capsuleProfile(rr, h float64, zs []float64, bottom, top int, hemiBottom, hemiTop bool) profile {
	var pr profile
	if hemiBottom {
		for i := 0; i <= bottom; i++ {
			c, s := cosSin(lerp(math.Pi, math.Pi/2, frac(i, bottom)))
			pr = append(pr, sample{r: rr * s, z: rr * c, nr: s, nz: c})
		}
	}
	for k, z := range zs {
		if k == 0 && hemiBottom {
			continue
		}
		pr = append(pr, sample{r: rr, z: z, nr: 1})
	}
	if hemiTop {
		for i := 1; i <= top; i++ {
			c, s := cosSin(lerp(math.Pi/2, 0, frac(i, top)))
			pr = append(pr, sample{r: rr * s, z: h + rr*c, nr: s, nz: c})
		}
	}
	return pr
}

func capsuleSection(p shape.Capsule) revolution {
	var rev revolution
	zs := stations(0, p.Height, p.SegsA)
	hemiBottom, hemiTop := p.BottomHemisphere(), p.TopHemisphere()

	outer := capsuleProfile(p.Radius, p.Height, zs, p.SegsBottomCap, p.SegsTopCap, hemiBottom, hemiTop)
	rev.profiles = append(rev.profiles, outer)
	var inner profile
	if p.InnerRadius > 0 {
		inner = capsuleProfile(p.InnerRadius, p.Height, zs, p.SegsBottomCap, p.SegsTopCap, hemiBottom, hemiTop).reversed()
		rev.profiles = append(rev.profiles, inner)
	}

	rev.outline = append(rev.outline, outer.points()...)
	switch {
	case p.FlatTop && !p.OpenTop:
		rev.caps = append(rev.caps, flatCap{z: p.Height, inner: p.InnerRadius, outer: p.Radius, rings: p.SegsTopCap, up: true})
		rev.outline = append(rev.outline, reverse(radial(p.InnerRadius, p.Radius, p.Height, p.SegsTopCap))...)
	case p.OpenTop:
		rev.outline = append(rev.outline, reverse(radial(p.InnerRadius, p.Radius, p.Height, 1))...)
	}
	rev.outline = append(rev.outline, inner.points()...)
	switch {
	case p.FlatBottom && !p.OpenBottom:
		rev.caps = append(rev.caps, flatCap{z: 0, inner: p.InnerRadius, outer: p.Radius, rings: p.SegsBottomCap})
		rev.outline = append(rev.outline, radial(p.InnerRadius, p.Radius, 0, p.SegsBottomCap)...)
	case p.OpenBottom:
		rev.outline = append(rev.outline, radial(p.InnerRadius, p.Radius, 0, 1)...)
	}
	return rev
}

// sphereShell samples a shell of radius rr between the clip heights zb and
// zt, bottom to top. Ends strictly inside the shell land exactly on the clip
// height.
func sphereShell(rr, zb, zt float64, n int) profile {
	cb := math.Max(-1, math.Min(1, zb/rr))
	ct := math.Max(-1, math.Min(1, zt/rr))
	tb, tt := math.Acos(cb), math.Acos(ct)
	pr := make(profile, n+1)
	for k := range pr {
		c, s := cosSin(lerp(tb, tt, frac(k, n)))
		pr[k] = sample{r: rr * s, z: rr * c, nr: s, nz: c}
	}
	if cb > -1 {
		pr[0].z = zb
	}
	if ct < 1 {
		pr[n].z = zt
	}
	return pr
}

func sphereSection(p shape.Sphere) revolution {
	var rev revolution
	zb, zt := p.BottomClip*p.Radius, p.TopClip*p.Radius
	outer := sphereShell(p.Radius, zb, zt, p.SegsV)
	rev.profiles = append(rev.profiles, outer)

	var inner profile
	var innerBottom, innerTop float64
	if p.Cavity() {
		inner = sphereShell(p.InnerRadius, zb, zt, p.SegsV)
		innerBottom, innerTop = inner[0].r, inner[len(inner)-1].r
		inner = inner.reversed()
		rev.profiles = append(rev.profiles, inner)
	}

	bottom, top := outer[0], outer[len(outer)-1]
	rev.outline = append(rev.outline, outer.points()...)
	if p.TopClip < 1 {
		rev.caps = append(rev.caps, flatCap{z: top.z, inner: innerTop, outer: top.r, rings: p.SegsTopCap, up: true})
		rev.outline = append(rev.outline, reverse(radial(innerTop, top.r, top.z, p.SegsTopCap))...)
	}
	rev.outline = append(rev.outline, inner.points()...)
	if p.BottomClip > -1 {
		rev.caps = append(rev.caps, flatCap{z: bottom.z, inner: innerBottom, outer: bottom.r, rings: p.SegsBottomCap})
		rev.outline = append(rev.outline, radial(innerBottom, bottom.r, bottom.z, p.SegsBottomCap)...)
	}
	return rev
}

func torusSection(p shape.Torus) revolution {
	var rev revolution
	sweep, closed := sliceSweep(p.SectionSliceDeg)
	cols := sweepColumns(0, sweep, p.SegsS, closed)

	arc := make(profile, len(cols))
	for i, c := range cols {
		arc[i] = sample{r: p.RingRadius + p.SectionRadius*c.cos, z: p.SectionRadius * c.sin, nr: c.cos, nz: c.sin}
	}
	rev.profiles = append(rev.profiles, arc)
	if closed {
		rev.outline = arc[:len(arc)-1].points()
		return rev
	}

	center := sample{r: p.RingRadius}
	rev.profiles = append(rev.profiles, straight(arc[len(arc)-1], center), straight(center, arc[0]))
	rev.outline = append(arc.points(), v2.Vec{X: center.r, Y: center.z})
	return rev
}

// straight is the two-sample profile from a to b with the normal on its
// right.
func straight(a, b sample) profile {
	dr, dz := b.r-a.r, b.z-a.z
	l := math.Hypot(dr, dz)
	nr, nz := dz/l, -dr/l
	return profile{{r: a.r, z: a.z, nr: nr, nz: nz}, {r: b.r, z: b.z, nr: nr, nz: nz}}
}
