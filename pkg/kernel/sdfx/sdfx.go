// Package sdfx builds reference solids for shape descriptors with the
// github.com/deadsy/sdfx SDF library. The solids share the frame of the
// native mesher, so they can check its output (MaxDeviation) or stand in
// for it as a marching-cubes kernel.
package sdfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/shapes/pkg/kernel"
	"github.com/chazu/shapes/pkg/shape"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// ErrUnsupported is returned for descriptors without a closed solid
// equivalent: partial sweeps, open ends and planes.
var ErrUnsupported = errors.New("sdfx: no reference solid")

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// DefaultCells is the marching cubes resolution along the longest axis.
const DefaultCells = 200

// ellipseSides approximates ellipses, which sdfx has no primitive for.
const ellipseSides = 720

// Kernel implements kernel.Kernel by marching cubes over the reference
// solid.
type Kernel struct {
	cells int
}

// New returns a Kernel rendering with the given number of cells; values
// below one use DefaultCells.
func New(cells int) *Kernel {
	if cells < 1 {
		cells = DefaultCells
	}
	return &Kernel{cells: cells}
}

// Build renders d with marching cubes. Vertices are unshared and carry the
// face normal; uvs are planar over the XY bounds.
func (k *Kernel) Build(d shape.Descriptor) (*kernel.Mesh, error) {
	s, err := Reference(d)
	if err != nil {
		return nil, err
	}
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(k.cells))

	bb := s.BoundingBox()
	size := bb.Max.Sub(bb.Min)
	uv := func(p v3.Vec) (float32, float32) {
		var u, v float64
		if size.X > 0 {
			u = (p.X - bb.Min.X) / size.X
		}
		if size.Y > 0 {
			v = (p.Y - bb.Min.Y) / size.Y
		}
		return float32(u), float32(v)
	}

	m := &kernel.Mesh{
		Vertices: make([]float32, 0, 9*len(triangles)),
		Normals:  make([]float32, 0, 9*len(triangles)),
		UVs:      make([]float32, 0, 6*len(triangles)),
		Indices:  make([]uint32, 0, 3*len(triangles)),
	}
	for _, tri := range triangles {
		// Marching cubes leaves slivers where the surface grazes a cell corner.
		if tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0])).Length() < 1e-9 {
			continue
		}
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			p := tri[j]
			m.Indices = append(m.Indices, uint32(m.VertexCount()))
			m.Vertices = append(m.Vertices, float32(p.X), float32(p.Y), float32(p.Z))
			m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
			u, v := uv(p)
			m.UVs = append(m.UVs, u, v)
		}
	}
	return m, nil
}

// MaxDeviation returns the largest distance of a mesh vertex from the
// surface of s.
func MaxDeviation(m *kernel.Mesh, s sdf.SDF3) float64 {
	var worst float64
	for i := 0; i < m.VertexCount(); i++ {
		worst = math.Max(worst, math.Abs(s.Evaluate(m.Position(i))))
	}
	return worst
}

// Reference returns the exact solid described by d.
func Reference(d shape.Descriptor) (sdf.SDF3, error) {
	if d.IsZero() {
		return nil, fmt.Errorf("sdfx: empty descriptor: %w", shape.ErrInvalidParameter)
	}
	var (
		s   sdf.SDF3
		err error
	)
	switch p := d.Params().(type) {
	case shape.Cylinder:
		if p.RingSliceDeg != 0 || p.OpenTop || p.OpenBottom {
			return nil, unsupported(d)
		}
		s, err = tube(p.Radius, p.InnerRadius, p.Height)
	case shape.Capsule:
		if p.RingSliceDeg != 0 || p.OpenTop || p.OpenBottom {
			return nil, unsupported(d)
		}
		s, err = capsule(p)
	case shape.Sphere:
		if p.SliceDeg != 0 {
			return nil, unsupported(d)
		}
		s, err = sphere(p)
	case shape.Torus:
		if p.RingSliceDeg != 0 || p.SectionSliceDeg != 0 {
			return nil, unsupported(d)
		}
		s, err = torus(p.RingRadius, p.SectionRadius)
	case shape.EllipticalPrism:
		if p.RingSliceDeg != 0 || p.OpenTop || p.OpenBottom {
			return nil, unsupported(d)
		}
		s, err = ellipticalPrism(p)
	case shape.RoundedCornerBox:
		if p.OpenTop || p.OpenBottom {
			return nil, unsupported(d)
		}
		s, err = roundedBox(p)
	case shape.CapsulePrism:
		if p.OpenTop || p.OpenBottom {
			return nil, unsupported(d)
		}
		s, err = roundedBox(p.AsRoundedCornerBox())
	case shape.Box:
		if p.OpenTop || p.OpenBottom {
			return nil, unsupported(d)
		}
		s, err = roundedBox(p.AsRoundedCornerBox())
	case shape.IrregularPrism:
		s, err = prism(p.Points, p.Height)
	default:
		return nil, unsupported(d)
	}
	if err != nil {
		return nil, fmt.Errorf("sdfx: %s: %w", d.Kind(), err)
	}
	return s, nil
}

func unsupported(d shape.Descriptor) error {
	return fmt.Errorf("%w for %s", ErrUnsupported, d)
}

func translate(s sdf.SDF3, x, y, z float64) sdf.SDF3 {
	return sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// tube is a cylinder standing on z=0, bored through when inner > 0.
func tube(r, inner, h float64) (sdf.SDF3, error) {
	outer, err := sdf.Cylinder3D(h, r, 0)
	if err != nil {
		return nil, err
	}
	outer = translate(outer, 0, 0, h/2)
	if inner <= 0 {
		return outer, nil
	}
	hole, err := sdf.Cylinder3D(h+2, inner, 0)
	if err != nil {
		return nil, err
	}
	return sdf.Difference3D(outer, translate(hole, 0, 0, h/2)), nil
}

func capsule(p shape.Capsule) (sdf.SDF3, error) {
	body := func(r float64) (sdf.SDF3, error) {
		// A cylinder rounded by its full radius is a capsule.
		s, err := sdf.Cylinder3D(p.Height+2*r, r, r)
		if err != nil {
			return nil, err
		}
		return translate(s, 0, 0, p.Height/2), nil
	}
	s, err := body(p.Radius)
	if err != nil {
		return nil, err
	}
	if p.InnerRadius > 0 {
		hole, err := body(p.InnerRadius)
		if err != nil {
			return nil, err
		}
		s = sdf.Difference3D(s, hole)
	}
	if p.FlatBottom {
		s = sdf.Cut3D(s, v3.Vec{}, v3.Vec{Z: 1})
	}
	if p.FlatTop {
		s = sdf.Cut3D(s, v3.Vec{Z: p.Height}, v3.Vec{Z: -1})
	}
	return s, nil
}

func sphere(p shape.Sphere) (sdf.SDF3, error) {
	s, err := sdf.Sphere3D(p.Radius)
	if err != nil {
		return nil, err
	}
	if p.Cavity() {
		hole, err := sdf.Sphere3D(p.InnerRadius)
		if err != nil {
			return nil, err
		}
		s = sdf.Difference3D(s, hole)
	}
	if p.BottomClip > -1 {
		s = sdf.Cut3D(s, v3.Vec{Z: p.BottomClip * p.Radius}, v3.Vec{Z: 1})
	}
	if p.TopClip < 1 {
		s = sdf.Cut3D(s, v3.Vec{Z: p.TopClip * p.Radius}, v3.Vec{Z: -1})
	}
	return s, nil
}

func torus(ring, section float64) (sdf.SDF3, error) {
	c, err := sdf.Circle2D(section)
	if err != nil {
		return nil, err
	}
	return sdf.Revolve3D(sdf.Transform2D(c, sdf.Translate2d(v2.Vec{X: ring})))
}

// prism extrudes a polygon from z=0 to h.
func prism(pts []v2.Vec, h float64) (sdf.SDF3, error) {
	s2, err := sdf.Polygon2D(pts)
	if err != nil {
		return nil, err
	}
	return translate(sdf.Extrude3D(s2, h), 0, 0, h/2), nil
}

func ellipse(a, b float64) []v2.Vec {
	pts := make([]v2.Vec, ellipseSides)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / ellipseSides
		pts[i] = v2.Vec{X: a * math.Cos(t), Y: b * math.Sin(t)}
	}
	return pts
}

func ellipticalPrism(p shape.EllipticalPrism) (sdf.SDF3, error) {
	s, err := prism(ellipse(p.MajorAxis, p.MinorAxis), p.Height)
	if err != nil || p.Thickness == 0 {
		return s, err
	}
	hole, err := prism(ellipse(p.MajorAxis-p.Thickness, p.MinorAxis-p.Thickness), p.Height+2)
	if err != nil {
		return nil, err
	}
	return sdf.Difference3D(s, translate(hole, 0, 0, -1)), nil
}

// roundedBox unions two crossed boxes with a cylinder (or a square block for
// sharp corners) at each corner.
func roundedBox(p shape.RoundedCornerBox) (sdf.SDF3, error) {
	sharp := [4]bool{p.SharpFrontRight, p.SharpBackRight, p.SharpBackLeft, p.SharpFrontLeft}
	radii := func(inset float64) [4]float64 {
		var r [4]float64
		for i := range r {
			if !sharp[i] {
				r[i] = math.Max(p.CornerRadius-inset, 0)
			}
		}
		return r
	}
	s, err := cornerBox(p.Width, p.Depth, p.Height, radii(0))
	if err != nil || p.Thickness == 0 {
		return s, err
	}
	hole, err := cornerBox(p.Width-2*p.Thickness, p.Depth-2*p.Thickness, p.Height+2, radii(p.Thickness))
	if err != nil {
		return nil, err
	}
	return sdf.Difference3D(s, hole), nil
}

var cornerSign = [4]v2.Vec{{X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}}

func cornerBox(w, d, h float64, radii [4]float64) (sdf.SDF3, error) {
	var r float64
	for _, ri := range radii {
		r = math.Max(r, ri)
	}
	var parts []sdf.SDF3
	addBox := func(bw, bd, x, y float64) error {
		if bw <= 0 || bd <= 0 {
			return nil
		}
		b, err := sdf.Box3D(v3.Vec{X: bw, Y: bd, Z: h}, 0)
		if err != nil {
			return err
		}
		parts = append(parts, translate(b, x, y, 0))
		return nil
	}
	if err := addBox(w-2*r, d, 0, 0); err != nil {
		return nil, err
	}
	if err := addBox(w, d-2*r, 0, 0); err != nil {
		return nil, err
	}
	for i, s := range cornerSign {
		if r == 0 {
			break
		}
		ri := radii[i]
		// fill the r×r corner square up to the band of this corner's own radius
		if err := addBox(r-ri, r, s.X*(w/2-(r+ri)/2), s.Y*(d/2-r/2)); err != nil {
			return nil, err
		}
		if err := addBox(r, r-ri, s.X*(w/2-r/2), s.Y*(d/2-(r+ri)/2)); err != nil {
			return nil, err
		}
		if ri == 0 {
			continue
		}
		c, err := sdf.Cylinder3D(h, ri, 0)
		if err != nil {
			return nil, err
		}
		parts = append(parts, translate(c, s.X*(w/2-ri), s.Y*(d/2-ri), 0))
	}
	return sdf.Union3D(parts...), nil
}
