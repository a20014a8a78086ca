// Package mesher is the native tessellation kernel. It turns shape
// descriptors into indexed triangle meshes: surfaces of revolution for
// cylinders, capsules, spheres and tori, straight extrusions for the prism
// and box families, and a flat grid for planes.
//
// Vertices shared between surface bands, caps and end walls are computed
// from identical inputs, so every closed shape is watertight once vertices
// are welded by position.
package mesher

import (
	"fmt"

	"github.com/chazu/shapes/pkg/kernel"
	"github.com/chazu/shapes/pkg/shape"
)

// Mesher implements kernel.Kernel.
type Mesher struct {
	assemble bool
}

var _ kernel.Kernel = (*Mesher)(nil)

// Option configures a Mesher.
type Option func(*Mesher)

// WithRoundedBoxAssembly builds solid rounded-corner boxes from nine placed
// parts instead of one extrusion.
func WithRoundedBoxAssembly() Option {
	return func(m *Mesher) { m.assemble = true }
}

// New returns a Mesher.
func New(opts ...Option) *Mesher {
	m := &Mesher{}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Build tessellates d with a default Mesher.
func Build(d shape.Descriptor) (*kernel.Mesh, error) {
	return New().Build(d)
}

// Build tessellates d. The result is deterministic for a given descriptor.
func (m *Mesher) Build(d shape.Descriptor) (*kernel.Mesh, error) {
	if d.IsZero() {
		return nil, fmt.Errorf("mesher: empty descriptor: %w", shape.ErrInvalidParameter)
	}
	if rb, ok := d.Params().(shape.RoundedCornerBox); ok && m.assemble {
		return m.assembleRoundedBox(rb)
	}
	return m.build(d)
}

func (m *Mesher) build(d shape.Descriptor) (*kernel.Mesh, error) {
	b := &builder{}
	var err error
	switch p := d.Params().(type) {
	case shape.Cylinder:
		err = b.revolve(cylinderSection(p), p.RingSliceDeg, p.SegsC)
	case shape.Capsule:
		err = b.revolve(capsuleSection(p), p.RingSliceDeg, p.SegsC)
	case shape.Sphere:
		err = b.revolve(sphereSection(p), p.SliceDeg, p.SegsH)
	case shape.Torus:
		err = b.revolve(torusSection(p), p.RingSliceDeg, p.SegsR)
	case shape.EllipticalPrism:
		err = b.extrude(ellipticalExtrusion(p))
	case shape.RoundedCornerBox:
		err = b.extrude(roundedBoxExtrusion(p))
	case shape.CapsulePrism:
		err = b.extrude(roundedBoxExtrusion(p.AsRoundedCornerBox()))
	case shape.Box:
		err = b.extrude(roundedBoxExtrusion(p.AsRoundedCornerBox()))
	case shape.Plane:
		b.plane(p)
	case shape.IrregularPrism:
		err = b.extrude(polygonExtrusion(p))
	default:
		return nil, fmt.Errorf("mesher: unsupported shape %s: %w", d.Kind(), shape.ErrInvalidParameter)
	}
	if err != nil {
		return nil, fmt.Errorf("mesher: %s: %w", d.Kind(), err)
	}
	return b.mesh()
}
