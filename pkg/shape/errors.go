package shape

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// ErrInvalidParameter is the only failure kind of the kernel: a descriptor
// field is out of range or inconsistent with another field. It is reported
// before any geometry is produced.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError describes one rejected descriptor field.
type ParamError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s: %s: %s", e.Kind, e.Field, ErrInvalidParameter, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

// Invalid returns a ParamError for callers outside this package that reject
// inputs derived from a descriptor (mesh builders, merge placements).
func Invalid(k Kind, field, format string, args ...any) error {
	return &ParamError{Kind: k, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Violations splits an error returned by New into its individual ParamErrors.
func Violations(err error) []*ParamError {
	var out []*ParamError
	for _, e := range multierr.Errors(err) {
		var pe *ParamError
		if errors.As(e, &pe) {
			out = append(out, pe)
		}
	}
	return out
}

// checker accumulates every violation of one Params value.
type checker struct {
	kind Kind
	err  error
}

func (c *checker) fail(field, format string, args ...any) {
	c.err = multierr.Append(c.err, Invalid(c.kind, field, format, args...))
}

func (c *checker) positive(field string, v float64) {
	if !(v > 0) || math.IsInf(v, 0) {
		c.fail(field, "must be > 0, got %g", v)
	}
}

func (c *checker) nonNegative(field string, v float64) {
	if !(v >= 0) || math.IsInf(v, 0) {
		c.fail(field, "must be >= 0, got %g", v)
	}
}

func (c *checker) segs(field string, n, min int) {
	if n < min {
		c.fail(field, "must be >= %d, got %d", min, n)
	}
}

// sweep checks a slice angle and the circumferential count it constrains.
// A closed ring needs three distinct points; an open arc needs one segment.
func (c *checker) sweep(sliceField string, slice float64, segsField string, segs int) {
	if !(slice >= 0 && slice < 360) {
		c.fail(sliceField, "must be in [0, 360), got %g", slice)
	}
	if slice == 0 {
		c.segs(segsField, segs, 3)
	} else {
		c.segs(segsField, segs, 1)
	}
}
