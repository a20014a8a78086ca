package shape

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Params is the closed set of shape family parameter structs. The
// unexported methods keep the set sealed to this package, so every consumer
// that switches over the families can be exhaustive.
type Params interface {
	Kind() Kind
	withDefaults() Params
	validate() error
}

// Family defaults applied to zero-valued segment counts.
const (
	DefaultSegsC       = 40
	DefaultSegsA       = 1
	DefaultSegsCap     = 1
	DefaultSegsCorner  = 5
	DefaultSegsV       = 40
	DefaultSegsRing    = 40
	DefaultSegsSection = 20
	DefaultSegsEdge    = 1
)

func orDefault(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}

// ---------------------------------------------------------------------------
// Revolution families
// ---------------------------------------------------------------------------

// Cylinder is a revolution solid whose base sits on z=0 and whose top is at
// Height. A positive InnerRadius makes it a tube; a positive RingSliceDeg
// removes that many degrees from the sweep and closes the gap with flat walls.
type Cylinder struct {
	Radius        float64 `yaml:"radius"`
	InnerRadius   float64 `yaml:"inner_radius,omitempty"`
	Height        float64 `yaml:"height"`
	SegsC         int     `yaml:"segs_c,omitempty"`
	SegsA         int     `yaml:"segs_a,omitempty"`
	SegsTopCap    int     `yaml:"segs_top_cap,omitempty"`
	SegsBottomCap int     `yaml:"segs_bottom_cap,omitempty"`
	RingSliceDeg  float64 `yaml:"ring_slice_deg,omitempty"`
	OpenTop       bool    `yaml:"open_top,omitempty"`
	OpenBottom    bool    `yaml:"open_bottom,omitempty"`
}

func (Cylinder) Kind() Kind { return KindCylinder }

func (p Cylinder) withDefaults() Params {
	p.SegsC = orDefault(p.SegsC, DefaultSegsC)
	p.SegsA = orDefault(p.SegsA, DefaultSegsA)
	p.SegsTopCap = orDefault(p.SegsTopCap, DefaultSegsCap)
	p.SegsBottomCap = orDefault(p.SegsBottomCap, DefaultSegsCap)
	return p
}

func (p Cylinder) validate() error {
	c := checker{kind: KindCylinder}
	c.positive("radius", p.Radius)
	c.positive("height", p.Height)
	c.nonNegative("inner_radius", p.InnerRadius)
	if p.InnerRadius >= p.Radius && p.Radius > 0 {
		c.fail("inner_radius", "must be less than radius %g, got %g", p.Radius, p.InnerRadius)
	}
	c.sweep("ring_slice_deg", p.RingSliceDeg, "segs_c", p.SegsC)
	c.segs("segs_a", p.SegsA, 1)
	c.segs("segs_top_cap", p.SegsTopCap, 1)
	c.segs("segs_bottom_cap", p.SegsBottomCap, 1)
	return c.err
}

// Capsule is a cylinder of length Height (base on z=0) with hemispherical
// ends of the same radius. FlatTop and FlatBottom replace a hemisphere with
// a flat disk; OpenTop and OpenBottom leave that end uncapped altogether.
// SegsTopCap and SegsBottomCap count latitude bands for hemisphere ends and
// radial rings for flat ends.
type Capsule struct {
	Radius        float64 `yaml:"radius"`
	InnerRadius   float64 `yaml:"inner_radius,omitempty"`
	Height        float64 `yaml:"height"`
	SegsC         int     `yaml:"segs_c,omitempty"`
	SegsA         int     `yaml:"segs_a,omitempty"`
	SegsTopCap    int     `yaml:"segs_top_cap,omitempty"`
	SegsBottomCap int     `yaml:"segs_bottom_cap,omitempty"`
	RingSliceDeg  float64 `yaml:"ring_slice_deg,omitempty"`
	FlatTop       bool    `yaml:"flat_top,omitempty"`
	FlatBottom    bool    `yaml:"flat_bottom,omitempty"`
	OpenTop       bool    `yaml:"open_top,omitempty"`
	OpenBottom    bool    `yaml:"open_bottom,omitempty"`
}

func (Capsule) Kind() Kind { return KindCapsule }

func (p Capsule) withDefaults() Params {
	p.SegsC = orDefault(p.SegsC, DefaultSegsC)
	p.SegsA = orDefault(p.SegsA, DefaultSegsA)
	p.SegsTopCap = orDefault(p.SegsTopCap, DefaultSegsCap)
	p.SegsBottomCap = orDefault(p.SegsBottomCap, DefaultSegsCap)
	return p
}

func (p Capsule) validate() error {
	c := checker{kind: KindCapsule}
	c.positive("radius", p.Radius)
	c.positive("height", p.Height)
	c.nonNegative("inner_radius", p.InnerRadius)
	if p.InnerRadius >= p.Radius && p.Radius > 0 {
		c.fail("inner_radius", "must be less than radius %g, got %g", p.Radius, p.InnerRadius)
	}
	c.sweep("ring_slice_deg", p.RingSliceDeg, "segs_c", p.SegsC)
	c.segs("segs_a", p.SegsA, 1)
	c.segs("segs_top_cap", p.SegsTopCap, 1)
	c.segs("segs_bottom_cap", p.SegsBottomCap, 1)
	return c.err
}

// TopHemisphere reports whether the top end is a hemisphere.
func (p Capsule) TopHemisphere() bool { return !p.FlatTop && !p.OpenTop }

// BottomHemisphere reports whether the bottom end is a hemisphere.
func (p Capsule) BottomHemisphere() bool { return !p.FlatBottom && !p.OpenBottom }

// Sphere is centered on the origin. BottomClip and TopClip restrict the
// surface to BottomClip*Radius <= z <= TopClip*Radius; clipped ends are
// closed with flat caps. Both clips zero means the full sphere.
type Sphere struct {
	Radius        float64 `yaml:"radius"`
	InnerRadius   float64 `yaml:"inner_radius,omitempty"`
	SegsH         int     `yaml:"segs_h,omitempty"`
	SegsV         int     `yaml:"segs_v,omitempty"`
	SegsTopCap    int     `yaml:"segs_top_cap,omitempty"`
	SegsBottomCap int     `yaml:"segs_bottom_cap,omitempty"`
	SliceDeg      float64 `yaml:"slice_deg,omitempty"`
	BottomClip    float64 `yaml:"bottom_clip,omitempty"`
	TopClip       float64 `yaml:"top_clip,omitempty"`
}

func (Sphere) Kind() Kind { return KindSphere }

func (p Sphere) withDefaults() Params {
	p.SegsH = orDefault(p.SegsH, DefaultSegsC)
	p.SegsV = orDefault(p.SegsV, DefaultSegsV)
	p.SegsTopCap = orDefault(p.SegsTopCap, DefaultSegsCap)
	p.SegsBottomCap = orDefault(p.SegsBottomCap, DefaultSegsCap)
	if p.BottomClip == 0 && p.TopClip == 0 {
		p.BottomClip, p.TopClip = -1, 1
	}
	return p
}

func (p Sphere) validate() error {
	c := checker{kind: KindSphere}
	c.positive("radius", p.Radius)
	c.nonNegative("inner_radius", p.InnerRadius)
	if p.InnerRadius >= p.Radius && p.Radius > 0 {
		c.fail("inner_radius", "must be less than radius %g, got %g", p.Radius, p.InnerRadius)
	}
	c.sweep("slice_deg", p.SliceDeg, "segs_h", p.SegsH)
	if p.BottomClip == -1 && p.TopClip == 1 {
		c.segs("segs_v", p.SegsV, 2)
	} else {
		c.segs("segs_v", p.SegsV, 1)
	}
	c.segs("segs_top_cap", p.SegsTopCap, 1)
	c.segs("segs_bottom_cap", p.SegsBottomCap, 1)
	if !(p.BottomClip >= -1 && p.BottomClip <= 1) {
		c.fail("bottom_clip", "must be in [-1, 1], got %g", p.BottomClip)
	}
	if !(p.TopClip >= -1 && p.TopClip <= 1) {
		c.fail("top_clip", "must be in [-1, 1], got %g", p.TopClip)
	}
	if !(p.BottomClip < p.TopClip) {
		c.fail("top_clip", "must be greater than bottom_clip %g, got %g", p.BottomClip, p.TopClip)
	}
	return c.err
}

// Cavity reports whether the inner sphere reaches into the clipped band.
// A band that misses it entirely is a solid spherical segment.
func (p Sphere) Cavity() bool {
	if p.InnerRadius <= 0 {
		return false
	}
	zb, zt := p.BottomClip*p.Radius, p.TopClip*p.Radius
	return zb < p.InnerRadius && zt > -p.InnerRadius
}

// Torus lies in the XY plane around the origin. RingSliceDeg removes part of
// the sweep around Z; SectionSliceDeg removes part of the tube cross-section,
// starting at the outer equator.
type Torus struct {
	RingRadius      float64 `yaml:"ring_radius"`
	SectionRadius   float64 `yaml:"section_radius"`
	SegsR           int     `yaml:"segs_r,omitempty"`
	SegsS           int     `yaml:"segs_s,omitempty"`
	RingSliceDeg    float64 `yaml:"ring_slice_deg,omitempty"`
	SectionSliceDeg float64 `yaml:"section_slice_deg,omitempty"`
}

func (Torus) Kind() Kind { return KindTorus }

func (p Torus) withDefaults() Params {
	p.SegsR = orDefault(p.SegsR, DefaultSegsRing)
	p.SegsS = orDefault(p.SegsS, DefaultSegsSection)
	return p
}

func (p Torus) validate() error {
	c := checker{kind: KindTorus}
	c.positive("ring_radius", p.RingRadius)
	c.positive("section_radius", p.SectionRadius)
	if p.SectionRadius >= p.RingRadius && p.RingRadius > 0 {
		c.fail("section_radius", "must be less than ring_radius %g, got %g", p.RingRadius, p.SectionRadius)
	}
	c.sweep("ring_slice_deg", p.RingSliceDeg, "segs_r", p.SegsR)
	c.sweep("section_slice_deg", p.SectionSliceDeg, "segs_s", p.SegsS)
	return c.err
}

// ---------------------------------------------------------------------------
// Extrusion families
// ---------------------------------------------------------------------------

// EllipticalPrism extrudes an ellipse with semi-axes MajorAxis (along X) and
// MinorAxis (along Y) from z=0 to Height.
type EllipticalPrism struct {
	MajorAxis     float64 `yaml:"major_axis"`
	MinorAxis     float64 `yaml:"minor_axis"`
	Height        float64 `yaml:"height"`
	Thickness     float64 `yaml:"thickness,omitempty"`
	SegsC         int     `yaml:"segs_c,omitempty"`
	SegsA         int     `yaml:"segs_a,omitempty"`
	SegsTopCap    int     `yaml:"segs_top_cap,omitempty"`
	SegsBottomCap int     `yaml:"segs_bottom_cap,omitempty"`
	RingSliceDeg  float64 `yaml:"ring_slice_deg,omitempty"`
	OpenTop       bool    `yaml:"open_top,omitempty"`
	OpenBottom    bool    `yaml:"open_bottom,omitempty"`
}

func (EllipticalPrism) Kind() Kind { return KindEllipticalPrism }

func (p EllipticalPrism) withDefaults() Params {
	p.SegsC = orDefault(p.SegsC, DefaultSegsC)
	p.SegsA = orDefault(p.SegsA, DefaultSegsA)
	p.SegsTopCap = orDefault(p.SegsTopCap, DefaultSegsCap)
	p.SegsBottomCap = orDefault(p.SegsBottomCap, DefaultSegsCap)
	return p
}

func (p EllipticalPrism) validate() error {
	c := checker{kind: KindEllipticalPrism}
	c.positive("major_axis", p.MajorAxis)
	c.positive("minor_axis", p.MinorAxis)
	c.positive("height", p.Height)
	c.nonNegative("thickness", p.Thickness)
	if m := min(p.MajorAxis, p.MinorAxis); m > 0 && p.Thickness >= m {
		c.fail("thickness", "must be less than the smaller semi-axis %g, got %g", m, p.Thickness)
	}
	c.sweep("ring_slice_deg", p.RingSliceDeg, "segs_c", p.SegsC)
	c.segs("segs_a", p.SegsA, 1)
	c.segs("segs_top_cap", p.SegsTopCap, 1)
	c.segs("segs_bottom_cap", p.SegsBottomCap, 1)
	return c.err
}

// RoundedCornerBox is a box centered on the origin whose vertical edges are
// rounded with CornerRadius. Sharp* flags keep individual corners square.
// Front is -Y, right is +X.
type RoundedCornerBox struct {
	Width           float64 `yaml:"width"`
	Depth           float64 `yaml:"depth"`
	Height          float64 `yaml:"height"`
	Thickness       float64 `yaml:"thickness,omitempty"`
	CornerRadius    float64 `yaml:"corner_radius"`
	SegsW           int     `yaml:"segs_w,omitempty"`
	SegsD           int     `yaml:"segs_d,omitempty"`
	SegsZ           int     `yaml:"segs_z,omitempty"`
	SegsCorner      int     `yaml:"segs_corner,omitempty"`
	SegsTopCap      int     `yaml:"segs_top_cap,omitempty"`
	SegsBottomCap   int     `yaml:"segs_bottom_cap,omitempty"`
	SharpFrontLeft  bool    `yaml:"sharp_front_left,omitempty"`
	SharpFrontRight bool    `yaml:"sharp_front_right,omitempty"`
	SharpBackLeft   bool    `yaml:"sharp_back_left,omitempty"`
	SharpBackRight  bool    `yaml:"sharp_back_right,omitempty"`
	OpenTop         bool    `yaml:"open_top,omitempty"`
	OpenBottom      bool    `yaml:"open_bottom,omitempty"`
}

func (RoundedCornerBox) Kind() Kind { return KindRoundedCornerBox }

func (p RoundedCornerBox) withDefaults() Params {
	p.SegsW = orDefault(p.SegsW, DefaultSegsEdge)
	p.SegsD = orDefault(p.SegsD, DefaultSegsEdge)
	p.SegsZ = orDefault(p.SegsZ, DefaultSegsA)
	p.SegsCorner = orDefault(p.SegsCorner, DefaultSegsCorner)
	p.SegsTopCap = orDefault(p.SegsTopCap, DefaultSegsCap)
	p.SegsBottomCap = orDefault(p.SegsBottomCap, DefaultSegsCap)
	return p
}

func (p RoundedCornerBox) validate() error {
	c := checker{kind: KindRoundedCornerBox}
	c.positive("width", p.Width)
	c.positive("depth", p.Depth)
	c.positive("height", p.Height)
	c.nonNegative("thickness", p.Thickness)
	c.nonNegative("corner_radius", p.CornerRadius)
	half := min(p.Width, p.Depth) / 2
	if half > 0 && p.Thickness >= half {
		c.fail("thickness", "must be less than half the smaller side %g, got %g", half, p.Thickness)
	}
	if half > 0 && p.CornerRadius > half {
		c.fail("corner_radius", "must be at most half the smaller side %g, got %g", half, p.CornerRadius)
	}
	c.segs("segs_w", p.SegsW, 1)
	c.segs("segs_d", p.SegsD, 1)
	c.segs("segs_z", p.SegsZ, 1)
	c.segs("segs_corner", p.SegsCorner, 1)
	c.segs("segs_top_cap", p.SegsTopCap, 1)
	c.segs("segs_bottom_cap", p.SegsBottomCap, 1)
	return c.err
}

// CapsulePrism is a box centered on the origin whose left and right ends
// (along X) are half-discs of radius Depth/2. Width is the overall length
// including the rounded ends.
type CapsulePrism struct {
	Width         float64 `yaml:"width"`
	Depth         float64 `yaml:"depth"`
	Height        float64 `yaml:"height"`
	Thickness     float64 `yaml:"thickness,omitempty"`
	SegsW         int     `yaml:"segs_w,omitempty"`
	SegsD         int     `yaml:"segs_d,omitempty"`
	SegsZ         int     `yaml:"segs_z,omitempty"`
	SegsCorner    int     `yaml:"segs_corner,omitempty"`
	SegsTopCap    int     `yaml:"segs_top_cap,omitempty"`
	SegsBottomCap int     `yaml:"segs_bottom_cap,omitempty"`
	SharpLeft     bool    `yaml:"sharp_left,omitempty"`
	SharpRight    bool    `yaml:"sharp_right,omitempty"`
	OpenTop       bool    `yaml:"open_top,omitempty"`
	OpenBottom    bool    `yaml:"open_bottom,omitempty"`
}

func (CapsulePrism) Kind() Kind { return KindCapsulePrism }

func (p CapsulePrism) withDefaults() Params {
	p.SegsW = orDefault(p.SegsW, DefaultSegsEdge)
	p.SegsD = orDefault(p.SegsD, DefaultSegsEdge)
	p.SegsZ = orDefault(p.SegsZ, DefaultSegsA)
	p.SegsCorner = orDefault(p.SegsCorner, DefaultSegsCorner)
	p.SegsTopCap = orDefault(p.SegsTopCap, DefaultSegsCap)
	p.SegsBottomCap = orDefault(p.SegsBottomCap, DefaultSegsCap)
	return p
}

func (p CapsulePrism) validate() error {
	c := checker{kind: KindCapsulePrism}
	c.positive("width", p.Width)
	c.positive("depth", p.Depth)
	c.positive("height", p.Height)
	c.nonNegative("thickness", p.Thickness)
	half := min(p.Width, p.Depth) / 2
	if half > 0 && p.Thickness >= half {
		c.fail("thickness", "must be less than half the smaller side %g, got %g", half, p.Thickness)
	}
	rounded := 0
	if !p.SharpLeft {
		rounded++
	}
	if !p.SharpRight {
		rounded++
	}
	if p.Depth > 0 && p.Width < float64(rounded)*p.Depth/2 {
		c.fail("width", "must be at least %g to fit the rounded ends, got %g", float64(rounded)*p.Depth/2, p.Width)
	}
	c.segs("segs_w", p.SegsW, 1)
	c.segs("segs_d", p.SegsD, 1)
	c.segs("segs_z", p.SegsZ, 1)
	c.segs("segs_corner", p.SegsCorner, 1)
	c.segs("segs_top_cap", p.SegsTopCap, 1)
	c.segs("segs_bottom_cap", p.SegsBottomCap, 1)
	return c.err
}

// AsRoundedCornerBox expresses the capsule prism as a rounded-corner box
// with corner radius Depth/2.
func (p CapsulePrism) AsRoundedCornerBox() RoundedCornerBox {
	return RoundedCornerBox{
		Width:           p.Width,
		Depth:           p.Depth,
		Height:          p.Height,
		Thickness:       p.Thickness,
		CornerRadius:    p.Depth / 2,
		SegsW:           p.SegsW,
		SegsD:           p.SegsD,
		SegsZ:           p.SegsZ,
		SegsCorner:      p.SegsCorner,
		SegsTopCap:      p.SegsTopCap,
		SegsBottomCap:   p.SegsBottomCap,
		SharpFrontLeft:  p.SharpLeft,
		SharpBackLeft:   p.SharpLeft,
		SharpFrontRight: p.SharpRight,
		SharpBackRight:  p.SharpRight,
		OpenTop:         p.OpenTop,
		OpenBottom:      p.OpenBottom,
	}
}

// Box is an axis-aligned box centered on the origin.
type Box struct {
	Width         float64 `yaml:"width"`
	Depth         float64 `yaml:"depth"`
	Height        float64 `yaml:"height"`
	Thickness     float64 `yaml:"thickness,omitempty"`
	SegsW         int     `yaml:"segs_w,omitempty"`
	SegsD         int     `yaml:"segs_d,omitempty"`
	SegsZ         int     `yaml:"segs_z,omitempty"`
	SegsTopCap    int     `yaml:"segs_top_cap,omitempty"`
	SegsBottomCap int     `yaml:"segs_bottom_cap,omitempty"`
	OpenTop       bool    `yaml:"open_top,omitempty"`
	OpenBottom    bool    `yaml:"open_bottom,omitempty"`
}

func (Box) Kind() Kind { return KindBox }

func (p Box) withDefaults() Params {
	p.SegsW = orDefault(p.SegsW, DefaultSegsEdge)
	p.SegsD = orDefault(p.SegsD, DefaultSegsEdge)
	p.SegsZ = orDefault(p.SegsZ, DefaultSegsA)
	p.SegsTopCap = orDefault(p.SegsTopCap, DefaultSegsCap)
	p.SegsBottomCap = orDefault(p.SegsBottomCap, DefaultSegsCap)
	return p
}

func (p Box) validate() error {
	c := checker{kind: KindBox}
	c.positive("width", p.Width)
	c.positive("depth", p.Depth)
	c.positive("height", p.Height)
	c.nonNegative("thickness", p.Thickness)
	half := min(p.Width, p.Depth) / 2
	if half > 0 && p.Thickness >= half {
		c.fail("thickness", "must be less than half the smaller side %g, got %g", half, p.Thickness)
	}
	c.segs("segs_w", p.SegsW, 1)
	c.segs("segs_d", p.SegsD, 1)
	c.segs("segs_z", p.SegsZ, 1)
	c.segs("segs_top_cap", p.SegsTopCap, 1)
	c.segs("segs_bottom_cap", p.SegsBottomCap, 1)
	return c.err
}

// AsRoundedCornerBox expresses the box as a rounded-corner box without
// rounding.
func (p Box) AsRoundedCornerBox() RoundedCornerBox {
	return RoundedCornerBox{
		Width:         p.Width,
		Depth:         p.Depth,
		Height:        p.Height,
		Thickness:     p.Thickness,
		SegsW:         p.SegsW,
		SegsD:         p.SegsD,
		SegsZ:         p.SegsZ,
		SegsCorner:    1,
		SegsTopCap:    p.SegsTopCap,
		SegsBottomCap: p.SegsBottomCap,
		OpenTop:       p.OpenTop,
		OpenBottom:    p.OpenBottom,
	}
}

// Plane is a single-sided rectangle on z=0 facing +Z, centered on the origin.
type Plane struct {
	Width float64 `yaml:"width"`
	Depth float64 `yaml:"depth"`
	SegsW int     `yaml:"segs_w,omitempty"`
	SegsD int     `yaml:"segs_d,omitempty"`
}

func (Plane) Kind() Kind { return KindPlane }

func (p Plane) withDefaults() Params {
	p.SegsW = orDefault(p.SegsW, DefaultSegsEdge)
	p.SegsD = orDefault(p.SegsD, DefaultSegsEdge)
	return p
}

func (p Plane) validate() error {
	c := checker{kind: KindPlane}
	c.positive("width", p.Width)
	c.positive("depth", p.Depth)
	c.segs("segs_w", p.SegsW, 1)
	c.segs("segs_d", p.SegsD, 1)
	return c.err
}

// IrregularPrism extrudes an arbitrary simple polygon from z=0 to Height.
// Points may be given in either orientation.
type IrregularPrism struct {
	Points []v2.Vec `yaml:"points,flow"`
	Height float64  `yaml:"height"`
	SegsA  int      `yaml:"segs_a,omitempty"`
}

func (IrregularPrism) Kind() Kind { return KindIrregularPrism }

func (p IrregularPrism) withDefaults() Params {
	p.SegsA = orDefault(p.SegsA, DefaultSegsA)
	p.Points = append([]v2.Vec(nil), p.Points...)
	return p
}

func (p IrregularPrism) validate() error {
	c := checker{kind: KindIrregularPrism}
	c.positive("height", p.Height)
	c.segs("segs_a", p.SegsA, 1)
	if len(p.Points) < 3 {
		c.fail("points", "need at least 3 points, got %d", len(p.Points))
		return c.err
	}
	for i, pt := range p.Points {
		if pt != pt || pt == p.Points[(i+1)%len(p.Points)] {
			c.fail("points", "point %d is NaN or repeats its successor", i)
			return c.err
		}
	}
	if PolygonArea(p.Points) == 0 {
		c.fail("points", "polygon has zero area")
	} else if !PolygonSimple(p.Points) {
		c.fail("points", "polygon edges intersect")
	}
	return c.err
}

// Recenter returns a copy whose outline is translated so its area centroid
// sits on the origin, and the offset that was removed.
func (p IrregularPrism) Recenter() (IrregularPrism, v2.Vec) {
	c := PolygonCentroid(p.Points)
	out := p
	out.Points = make([]v2.Vec, len(p.Points))
	for i, pt := range p.Points {
		out.Points[i] = pt.Sub(c)
	}
	return out, c
}
