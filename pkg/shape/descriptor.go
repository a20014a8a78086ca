package shape

import "fmt"

// Descriptor is a validated, immutable shape configuration. Its zero value
// is not usable; construct one with New.
type Descriptor struct {
	params Params
	convex bool
}

// New fills zero segment counts with family defaults, validates every field
// and classifies convexity. All violations are reported together; each one
// unwraps to ErrInvalidParameter.
//
// Zero is the "unset" value of a segment count, the same as leaving the
// field out of a catalog document or script, so it never fails. Negative
// counts, and counts below the minimum a sweep needs, are rejected.
func New(p Params) (Descriptor, error) {
	if p == nil {
		return Descriptor{}, fmt.Errorf("shape: nil params: %w", ErrInvalidParameter)
	}
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return Descriptor{}, err
	}
	return Descriptor{params: p, convex: Convex(p)}, nil
}

// MustNew is like New but panics on invalid parameters.
func MustNew(p Params) Descriptor {
	d, err := New(p)
	if err != nil {
		panic(fmt.Sprintf("shape: %v", err))
	}
	return d
}

// Params returns the defaulted parameters. IrregularPrism points are copied
// so the descriptor cannot be changed through the result.
func (d Descriptor) Params() Params {
	if ip, ok := d.params.(IrregularPrism); ok {
		return ip.withDefaults()
	}
	return d.params
}

// Kind returns the shape family.
func (d Descriptor) Kind() Kind {
	return d.params.Kind()
}

// Convex reports the convexity tag computed at construction.
func (d Descriptor) Convex() bool {
	return d.convex
}

// IsZero reports whether d was never constructed.
func (d Descriptor) IsZero() bool {
	return d.params == nil
}

func (d Descriptor) String() string {
	if d.IsZero() {
		return "shape(<none>)"
	}
	return fmt.Sprintf("shape(%s convex=%t)", d.Kind(), d.convex)
}
