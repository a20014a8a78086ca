package shape

import (
	"errors"
	"strings"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindCylinder, "cylinder"},
		{KindRoundedCornerBox, "rounded-corner-box"},
		{KindIrregularPrism, "irregular-prism"},
		{Kind(99), "Kind(99)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if got, err := ParseKind("capsule_prism"); err != nil || got != KindCapsulePrism {
		t.Errorf("ParseKind(capsule_prism) = %v, %v", got, err)
	}
	if _, err := ParseKind("dodecahedron"); err == nil {
		t.Error("expected error for unknown family")
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	d, err := New(Cylinder{Radius: 5, Height: 10})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c := d.Params().(Cylinder)
	if c.SegsC != DefaultSegsC || c.SegsA != DefaultSegsA {
		t.Errorf("segs = %d/%d, want %d/%d", c.SegsC, c.SegsA, DefaultSegsC, DefaultSegsA)
	}
	if c.SegsTopCap != 1 || c.SegsBottomCap != 1 {
		t.Errorf("cap segs = %d/%d, want 1/1", c.SegsTopCap, c.SegsBottomCap)
	}

	s := MustNew(Sphere{Radius: 2}).Params().(Sphere)
	if s.BottomClip != -1 || s.TopClip != 1 {
		t.Errorf("sphere clips = %g/%g, want -1/1", s.BottomClip, s.TopClip)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		p     Params
		field string
	}{
		{"zero radius", Cylinder{Radius: 0, Height: 1}, "radius"},
		{"negative height", Cylinder{Radius: 1, Height: -1}, "height"},
		{"inner equals outer", Cylinder{Radius: 5, InnerRadius: 5, Height: 1}, "inner_radius"},
		{"degenerate closed ring", Cylinder{Radius: 5, Height: 1, SegsC: 1}, "segs_c"},
		{"two segment closed ring", Cylinder{Radius: 5, Height: 1, SegsC: 2}, "segs_c"},
		{"slice full turn", Cylinder{Radius: 5, Height: 1, RingSliceDeg: 360}, "ring_slice_deg"},
		{"negative slice", Capsule{Radius: 1, Height: 1, RingSliceDeg: -5}, "ring_slice_deg"},
		{"negative segs", Capsule{Radius: 1, Height: 1, SegsA: -1}, "segs_a"},
		{"clip order", Sphere{Radius: 1, BottomClip: 0.5, TopClip: 0.2}, "top_clip"},
		{"clip range", Sphere{Radius: 1, BottomClip: -2, TopClip: 1}, "bottom_clip"},
		{"full sphere one band", Sphere{Radius: 1, SegsV: 1}, "segs_v"},
		{"fat torus", Torus{RingRadius: 1, SectionRadius: 2}, "section_radius"},
		{"thick ellipse wall", EllipticalPrism{MajorAxis: 8, MinorAxis: 4, Height: 1, Thickness: 4}, "thickness"},
		{"thick box wall", RoundedCornerBox{Width: 10, Depth: 4, Height: 1, Thickness: 2}, "thickness"},
		{"corner too large", RoundedCornerBox{Width: 10, Depth: 4, Height: 1, CornerRadius: 2.5}, "corner_radius"},
		{"capsule prism too short", CapsulePrism{Width: 3, Depth: 4, Height: 1}, "width"},
		{"plane no depth", Plane{Width: 1}, "depth"},
		{"prism two points", IrregularPrism{Points: []v2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}}, Height: 1}, "points"},
		{"prism bowtie", IrregularPrism{Points: []v2.Vec{{X: 0, Y: 0}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 2}}, Height: 1}, "points"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.p)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error %v does not wrap ErrInvalidParameter", err)
			}
			found := false
			for _, v := range Violations(err) {
				if v.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no violation for field %q in %v", tt.field, err)
			}
		})
	}
}

func TestNewReportsAllViolations(t *testing.T) {
	_, err := New(Cylinder{Radius: -1, Height: 0, SegsA: -2})
	if got := len(Violations(err)); got != 3 {
		t.Errorf("got %d violations, want 3: %v", got, err)
	}
	if !strings.Contains(err.Error(), "cylinder: radius") {
		t.Errorf("error text %q lacks family and field", err.Error())
	}
}

func TestSphereCavity(t *testing.T) {
	tests := []struct {
		name string
		p    Sphere
		want bool
	}{
		{"solid", Sphere{Radius: 2}, false},
		{"hollow full", Sphere{Radius: 2, InnerRadius: 1}, true},
		{"band through cavity", Sphere{Radius: 2, InnerRadius: 1, BottomClip: -0.25, TopClip: 1}, true},
		{"band above cavity", Sphere{Radius: 3.96, InnerRadius: 0.4, BottomClip: 0.81, TopClip: 0.87}, false},
		{"band below cavity", Sphere{Radius: 10, InnerRadius: 2, BottomClip: -1, TopClip: -0.5}, false},
		{"band touching cavity", Sphere{Radius: 10, InnerRadius: 2, BottomClip: 0.2, TopClip: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.p)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := d.Params().(Sphere).Cavity(); got != tt.want {
				t.Errorf("Cavity() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestOpenSweepAllowsSingleSegment(t *testing.T) {
	if _, err := New(Cylinder{Radius: 1, Height: 1, SegsC: 1, RingSliceDeg: 270}); err != nil {
		t.Errorf("single segment open sweep rejected: %v", err)
	}
}

func TestConvexity(t *testing.T) {
	square := []v2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	ell := []v2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}}

	tests := []struct {
		name string
		p    Params
		want bool
	}{
		{"solid cylinder", Cylinder{Radius: 5, Height: 10, SegsC: 40, SegsA: 5}, true},
		{"hollow closed cylinder", Cylinder{Radius: 5, InnerRadius: 3, Height: 10}, true},
		{"solid sliced cylinder", Cylinder{Radius: 5, Height: 10, RingSliceDeg: 90}, true},
		{"hollow sliced cylinder", Cylinder{Radius: 5, InnerRadius: 3, Height: 10, SegsC: 40, RingSliceDeg: 90}, false},
		{"hollow sliced capsule", Capsule{Radius: 5, InnerRadius: 3, Height: 10, RingSliceDeg: 180}, false},
		{"capsule", Capsule{Radius: 5, Height: 10}, true},
		{"rounded box", RoundedCornerBox{Width: 10, Depth: 10, Height: 20, CornerRadius: 2}, true},
		{"mixed corners", RoundedCornerBox{Width: 10, Depth: 10, Height: 20, CornerRadius: 2, SharpBackLeft: true}, true},
		{"capsule prism", CapsulePrism{Width: 10, Depth: 4, Height: 2}, true},
		{"elliptical prism", EllipticalPrism{MajorAxis: 8, MinorAxis: 4, Height: 10}, true},
		{"hollow sliced elliptical prism", EllipticalPrism{MajorAxis: 8, MinorAxis: 4, Height: 10, Thickness: 1, RingSliceDeg: 90}, true},
		{"sphere", Sphere{Radius: 1}, false},
		{"torus", Torus{RingRadius: 5, SectionRadius: 1}, false},
		{"square prism", IrregularPrism{Points: square, Height: 1}, true},
		{"l prism", IrregularPrism{Points: ell, Height: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.p)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if d.Convex() != tt.want {
				t.Errorf("Convex() = %t, want %t", d.Convex(), tt.want)
			}
		})
	}
}

func TestDescriptorImmutable(t *testing.T) {
	pts := []v2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}}
	d := MustNew(IrregularPrism{Points: pts, Height: 1})
	pts[0] = v2.Vec{X: 100, Y: 100}
	got := d.Params().(IrregularPrism).Points
	if got[0] != (v2.Vec{}) {
		t.Errorf("descriptor changed through caller slice: %v", got[0])
	}
	got[1] = v2.Vec{X: -1, Y: -1}
	if d.Params().(IrregularPrism).Points[1] != (v2.Vec{X: 2, Y: 0}) {
		t.Error("descriptor changed through Params result")
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew did not panic")
		}
	}()
	MustNew(Plane{})
}

func TestAutoSegments(t *testing.T) {
	c := AutoSegments(Cylinder{Radius: 9, InnerRadius: 1, Height: 12}).(Cylinder)
	if c.SegsA != 6 {
		t.Errorf("SegsA = %d, want 6", c.SegsA)
	}
	if c.SegsTopCap != 4 || c.SegsBottomCap != 4 {
		t.Errorf("cap segs = %d/%d, want 4/4", c.SegsTopCap, c.SegsBottomCap)
	}

	short := AutoSegments(Cylinder{Radius: 1, Height: 2, SegsA: 3}).(Cylinder)
	if short.SegsA != 3 || short.SegsTopCap != 1 {
		t.Errorf("got SegsA=%d SegsTopCap=%d, want 3 and 1", short.SegsA, short.SegsTopCap)
	}

	b := AutoSegments(RoundedCornerBox{Width: 10, Depth: 2, Height: 7}).(RoundedCornerBox)
	if b.SegsW != 5 || b.SegsD != 1 || b.SegsZ != 3 {
		t.Errorf("box segs = %d/%d/%d, want 5/1/3", b.SegsW, b.SegsD, b.SegsZ)
	}

	s := AutoSegments(Sphere{Radius: 4}).(Sphere)
	if s.SegsTopCap != 4 {
		t.Errorf("sphere cap segs = %d, want 4", s.SegsTopCap)
	}
}

func TestCapsulePrismAsRoundedCornerBox(t *testing.T) {
	r := CapsulePrism{Width: 10, Depth: 4, Height: 1, SharpRight: true}.AsRoundedCornerBox()
	if r.CornerRadius != 2 {
		t.Errorf("corner radius = %g, want 2", r.CornerRadius)
	}
	if r.SharpFrontLeft || r.SharpBackLeft || !r.SharpFrontRight || !r.SharpBackRight {
		t.Errorf("corner flags wrong: %+v", r)
	}
}
