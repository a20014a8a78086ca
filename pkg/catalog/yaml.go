package catalog

import (
	"fmt"

	"github.com/chazu/shapes/pkg/shape"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// document is the YAML form of a catalog.
type document struct {
	Shapes     []shapeDoc     `yaml:"shapes,omitempty"`
	Composites []compositeDoc `yaml:"composites,omitempty"`
}

// shapeDoc sets exactly one family key.
type shapeDoc struct {
	Name         string `yaml:"name"`
	AutoSegments bool   `yaml:"auto_segments,omitempty"`

	Cylinder         *shape.Cylinder         `yaml:"cylinder,omitempty"`
	EllipticalPrism  *shape.EllipticalPrism  `yaml:"elliptical_prism,omitempty"`
	Capsule          *shape.Capsule          `yaml:"capsule,omitempty"`
	CapsulePrism     *shape.CapsulePrism     `yaml:"capsule_prism,omitempty"`
	RoundedCornerBox *shape.RoundedCornerBox `yaml:"rounded_corner_box,omitempty"`
	Sphere           *shape.Sphere           `yaml:"sphere,omitempty"`
	Torus            *shape.Torus            `yaml:"torus,omitempty"`
	Box              *shape.Box              `yaml:"box,omitempty"`
	Plane            *shape.Plane            `yaml:"plane,omitempty"`
	IrregularPrism   *shape.IrregularPrism   `yaml:"irregular_prism,omitempty"`
}

type compositeDoc struct {
	Name   string         `yaml:"name"`
	Convex bool           `yaml:"convex,omitempty"`
	Parts  []placementDoc `yaml:"parts"`
}

type placementDoc struct {
	Ref      string      `yaml:"ref"`
	Center   [3]float64  `yaml:"center,flow,omitempty"`
	Axis     *[3]float64 `yaml:"axis,flow,omitempty"`
	AngleDeg float64     `yaml:"angle_deg,omitempty"`
}

func (d shapeDoc) params() (shape.Params, error) {
	var set []shape.Params
	add := func(ok bool, p shape.Params) {
		if ok {
			set = append(set, p)
		}
	}
	add(d.Cylinder != nil, deref(d.Cylinder))
	add(d.EllipticalPrism != nil, deref(d.EllipticalPrism))
	add(d.Capsule != nil, deref(d.Capsule))
	add(d.CapsulePrism != nil, deref(d.CapsulePrism))
	add(d.RoundedCornerBox != nil, deref(d.RoundedCornerBox))
	add(d.Sphere != nil, deref(d.Sphere))
	add(d.Torus != nil, deref(d.Torus))
	add(d.Box != nil, deref(d.Box))
	add(d.Plane != nil, deref(d.Plane))
	add(d.IrregularPrism != nil, deref(d.IrregularPrism))
	if len(set) != 1 {
		return nil, fmt.Errorf("shape %q sets %d family keys, want exactly one: %w", d.Name, len(set), shape.ErrInvalidParameter)
	}
	return set[0], nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func vec(a [3]float64) v3.Vec { return v3.Vec{X: a[0], Y: a[1], Z: a[2]} }

// Decode parses a YAML catalog. Omitted segment counts take family
// defaults and capsule ends default to hemispheres. Every invalid document
// is reported; the catalog is returned only when all of them decode.
// Structural checks are left to Validate.
func Decode(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	c := New()
	var errs error
	for i, sd := range doc.Shapes {
		p, err := sd.params()
		if err == nil {
			if sd.AutoSegments {
				p = shape.AutoSegments(p)
			}
			var d shape.Descriptor
			if d, err = shape.New(p); err == nil {
				err = c.Add(&Entry{Name: sd.Name, Kind: EntryShape, Shape: d, Source: fmt.Sprintf("shapes[%d]", i)})
			}
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("catalog: shapes[%d] %q: %w", i, sd.Name, err))
		}
	}
	for i, cd := range doc.Composites {
		comp := &Composite{Convex: cd.Convex, Parts: make([]Placement, len(cd.Parts))}
		for j, pd := range cd.Parts {
			axis := v3.Vec{Z: 1}
			if pd.Axis != nil {
				axis = vec(*pd.Axis)
			}
			comp.Parts[j] = Placement{Ref: pd.Ref, Axis: axis, Center: vec(pd.Center), AngleDeg: pd.AngleDeg}
		}
		err := c.Add(&Entry{Name: cd.Name, Kind: EntryComposite, Composite: comp, Source: fmt.Sprintf("composites[%d]", i)})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("catalog: composites[%d] %q: %w", i, cd.Name, err))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return c, nil
}

// Encode writes c as YAML in insertion order. Parameters are written with
// their defaults filled in, so decoding the result reproduces c.
func Encode(c *Catalog) ([]byte, error) {
	var doc document
	for _, e := range c.Entries() {
		switch e.Kind {
		case EntryShape:
			sd := shapeDoc{Name: e.Name}
			switch p := e.Shape.Params().(type) {
			case shape.Cylinder:
				sd.Cylinder = &p
			case shape.EllipticalPrism:
				sd.EllipticalPrism = &p
			case shape.Capsule:
				sd.Capsule = &p
			case shape.CapsulePrism:
				sd.CapsulePrism = &p
			case shape.RoundedCornerBox:
				sd.RoundedCornerBox = &p
			case shape.Sphere:
				sd.Sphere = &p
			case shape.Torus:
				sd.Torus = &p
			case shape.Box:
				sd.Box = &p
			case shape.Plane:
				sd.Plane = &p
			case shape.IrregularPrism:
				sd.IrregularPrism = &p
			default:
				return nil, fmt.Errorf("catalog: encode %q: unsupported shape %s", e.Name, e.Shape.Kind())
			}
			doc.Shapes = append(doc.Shapes, sd)
		case EntryComposite:
			cd := compositeDoc{Name: e.Name, Convex: e.Composite.Convex}
			for _, p := range e.Composite.Parts {
				axis := [3]float64{p.Axis.X, p.Axis.Y, p.Axis.Z}
				cd.Parts = append(cd.Parts, placementDoc{
					Ref:      p.Ref,
					Center:   [3]float64{p.Center.X, p.Center.Y, p.Center.Z},
					Axis:     &axis,
					AngleDeg: p.AngleDeg,
				})
			}
			doc.Composites = append(doc.Composites, cd)
		}
	}
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("catalog: encode: %w", err)
	}
	return out, nil
}
