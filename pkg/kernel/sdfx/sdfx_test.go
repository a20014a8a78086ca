package sdfx

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/shapes/pkg/kernel/mesher"
	"github.com/chazu/shapes/pkg/shape"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

func TestMesherMatchesReference(t *testing.T) {
	tests := []struct {
		name string
		p    shape.Params
		tol  float64
	}{
		{"cylinder", shape.Cylinder{Radius: 5, Height: 10, SegsC: 40, SegsA: 5, SegsTopCap: 2}, 1e-4},
		{"cylinder hollow", shape.Cylinder{Radius: 5, InnerRadius: 3, Height: 4, SegsC: 24}, 1e-4},
		{"capsule", shape.Capsule{Radius: 1, Height: 2, SegsC: 16, SegsTopCap: 6, SegsBottomCap: 6}, 1e-4},
		{"capsule flat hollow", shape.Capsule{Radius: 2, InnerRadius: 1, Height: 2, SegsC: 16, FlatTop: true, SegsBottomCap: 4}, 1e-4},
		{"sphere clipped hollow", shape.Sphere{Radius: 2, InnerRadius: 1, SegsH: 16, SegsV: 8, BottomClip: -0.25, TopClip: 0.5}, 1e-4},
		{"torus", shape.Torus{RingRadius: 3, SectionRadius: 1, SegsR: 24, SegsS: 12}, 1e-4},
		{"elliptical prism", shape.EllipticalPrism{MajorAxis: 3, MinorAxis: 2, Height: 1, Thickness: 0.5, SegsC: 32}, 1e-3},
		{"rounded box", shape.RoundedCornerBox{Width: 4, Depth: 3, Height: 1, CornerRadius: 0.5, Thickness: 0.75, SharpBackLeft: true}, 1e-4},
		{"capsule prism", shape.CapsulePrism{Width: 6, Depth: 2, Height: 1, SharpRight: true}, 1e-4},
		{"box", shape.Box{Width: 2, Depth: 3, Height: 4, SegsW: 2}, 1e-4},
		{"irregular prism", shape.IrregularPrism{Points: []v2.Vec{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 3}, {X: 0, Y: 3}}, Height: 2}, 1e-4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := shape.MustNew(tt.p)
			m, err := mesher.Build(d)
			if err != nil {
				t.Fatalf("mesher.Build: %v", err)
			}
			ref, err := Reference(d)
			if err != nil {
				t.Fatalf("Reference: %v", err)
			}
			if dev := MaxDeviation(m, ref); dev > tt.tol {
				t.Errorf("max deviation %g exceeds %g", dev, tt.tol)
			}
		})
	}
}

func TestReferenceUnsupported(t *testing.T) {
	tests := []shape.Params{
		shape.Cylinder{Radius: 1, Height: 1, RingSliceDeg: 90},
		shape.Cylinder{Radius: 1, Height: 1, OpenTop: true},
		shape.Sphere{Radius: 1, SliceDeg: 10},
		shape.Torus{RingRadius: 2, SectionRadius: 1, SectionSliceDeg: 90},
		shape.Plane{Width: 1, Depth: 1},
	}
	for _, p := range tests {
		if _, err := Reference(shape.MustNew(p)); !errors.Is(err, ErrUnsupported) {
			t.Errorf("Reference(%T) = %v, want ErrUnsupported", p, err)
		}
	}
	if _, err := Reference(shape.Descriptor{}); !errors.Is(err, shape.ErrInvalidParameter) {
		t.Errorf("Reference(zero) = %v, want ErrInvalidParameter", err)
	}
}

func TestKernelBuild(t *testing.T) {
	k := New(48)
	m, err := k.Build(shape.MustNew(shape.Box{Width: 10, Depth: 6, Height: 4}))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(m.UVs) != 2*m.VertexCount() || len(m.Normals) != len(m.Vertices) {
		t.Fatalf("attribute lengths: %d vertices, %d normals, %d uvs", len(m.Vertices), len(m.Normals), len(m.UVs))
	}
	t.Logf("box triangle count: %d", m.TriangleCount())

	// Marching cubes lands within a cell of the true faces.
	lo, hi := m.BoundingBox()
	const tol = 0.5
	for i, half := range [3]float64{5, 3, 2} {
		if math.Abs(hi[i]-half) > tol || math.Abs(lo[i]+half) > tol {
			t.Errorf("axis %d spans [%f, %f], expected ~±%g", i, lo[i], hi[i], half)
		}
	}

	if _, err := k.Build(shape.MustNew(shape.Plane{Width: 1, Depth: 1})); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Build(plane) = %v, want ErrUnsupported", err)
	}
}

func TestNewDefaultsCells(t *testing.T) {
	if k := New(0); k.cells != DefaultCells {
		t.Errorf("cells = %d, want %d", k.cells, DefaultCells)
	}
}
