package engine

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/chazu/shapes/pkg/shape"
	zygo "github.com/glycerine/zygomys/zygo"
	"gopkg.in/yaml.v3"
)

// Family builtins share the catalog's YAML field names: :segs-c sets the
// field tagged segs_c. Keyword values are staged as a YAML mapping and
// decoded into the family struct, so unknown keywords and wrong value
// types fail the same way they do in a catalog document.

var familyDecoders = map[shape.Kind]func([]byte) (shape.Params, error){
	shape.KindCylinder:         decodeFamily[shape.Cylinder],
	shape.KindEllipticalPrism:  decodeFamily[shape.EllipticalPrism],
	shape.KindCapsule:          decodeFamily[shape.Capsule],
	shape.KindCapsulePrism:     decodeFamily[shape.CapsulePrism],
	shape.KindRoundedCornerBox: decodeFamily[shape.RoundedCornerBox],
	shape.KindSphere:           decodeFamily[shape.Sphere],
	shape.KindTorus:            decodeFamily[shape.Torus],
	shape.KindBox:              decodeFamily[shape.Box],
	shape.KindPlane:            decodeFamily[shape.Plane],
	shape.KindIrregularPrism:   decodeFamily[shape.IrregularPrism],
}

func decodeFamily[T shape.Params](doc []byte) (shape.Params, error) {
	var p T
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, err
	}
	return p, nil
}

// negated keywords state the opposite of a stored flag.
var negated = map[string]string{
	"top-hemisphere":    "flat_top",
	"bottom-hemisphere": "flat_bottom",
}

// fieldFor maps a keyword to its YAML field and whether its boolean value
// is inverted. :rounded-front-left reads as sharp_front_left = false.
func fieldFor(kw string) (string, bool) {
	if f, ok := negated[kw]; ok {
		return f, true
	}
	if rest, ok := strings.CutPrefix(kw, "rounded-"); ok {
		return "sharp_" + strings.ReplaceAll(rest, "-", "_"), true
	}
	return strings.ReplaceAll(kw, "-", "_"), false
}

// familyParams builds k's parameters from keyword arguments.
func familyParams(k shape.Kind, pa kwArgs) (shape.Params, error) {
	if len(pa.positional) > 0 {
		return nil, fmt.Errorf("%s: unexpected positional argument %s", k, describe(pa.positional[0]))
	}
	fields := make(map[string]any, len(pa.kw))
	for _, kw := range pa.order {
		field, invert := fieldFor(kw)
		v, err := yamlValue(pa.kw[kw])
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", k, kw, err)
		}
		if invert {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("%s: %s: expected true or false", k, kw)
			}
			v = !b
		}
		if _, dup := fields[field]; dup {
			return nil, fmt.Errorf("%s: %s: conflicts with another keyword", k, kw)
		}
		fields[field] = v
	}

	doc, err := yaml.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	p, err := familyDecoders[k](doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	return p, nil
}

// yamlValue converts a script value to the Go value YAML encodes for it.
func yamlValue(s zygo.Sexp) (any, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return v.Val, nil
	case *zygo.SexpFloat:
		return v.Val, nil
	case *zygo.SexpBool:
		return v.Val, nil
	case *sexpVec2:
		return map[string]float64{"x": v.vec.X, "y": v.vec.Y}, nil
	case *zygo.SexpPair, *zygo.SexpArray:
		items, err := sexpListToSlice(s)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(items))
		for i, it := range items {
			if out[i], err = yamlValue(it); err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return out, nil
	}
	if s == zygo.SexpNull {
		return true, nil
	}
	return nil, fmt.Errorf("unsupported value %s", describe(s))
}
