package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/shapes/pkg/catalog"
	"github.com/chazu/shapes/pkg/shape"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
)

// Values passed between builtins.

// sexpParams carries undefaulted family parameters from a family builtin to
// auto-segments or defshape.
type sexpParams struct {
	params shape.Params
}

func (p *sexpParams) SexpString(*zygo.PrintState) string {
	return fmt.Sprintf("(%s %+v)", p.params.Kind(), p.params)
}
func (p *sexpParams) Type() *zygo.RegisteredType { return nil }

// sexpRef names a catalog entry.
type sexpRef struct {
	name string
}

func (r *sexpRef) SexpString(*zygo.PrintState) string { return fmt.Sprintf("(shape %q)", r.name) }
func (r *sexpRef) Type() *zygo.RegisteredType         { return nil }

type sexpPlacement struct {
	p catalog.Placement
}

func (s *sexpPlacement) SexpString(*zygo.PrintState) string {
	return fmt.Sprintf("(place %q :at (vec3 %g %g %g) :angle %g)",
		s.p.Ref, s.p.Center.X, s.p.Center.Y, s.p.Center.Z, s.p.AngleDeg)
}
func (s *sexpPlacement) Type() *zygo.RegisteredType { return nil }

type sexpVec2 struct {
	vec v2.Vec
}

func (v *sexpVec2) SexpString(*zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(*zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// kwArgs is an argument list split into keyword pairs and the rest.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs splits args on preprocessed keywords. A trailing keyword with
// no value maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	res := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			res.positional = append(res.positional, args[i])
			continue
		}
		if _, dup := res.kw[name]; !dup {
			res.order = append(res.order, name)
		}
		if i+1 < len(args) {
			res.kw[name] = args[i+1]
			i++
		} else {
			res.kw[name] = zygo.SexpNull
		}
	}
	return res
}

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

func describe(s zygo.Sexp) string {
	if s == nil {
		return "nil"
	}
	return fmt.Sprintf("%T (%s)", s, s.SexpString(nil))
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", describe(s))
}

func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	// A bare trailing flag such as :open-top means true.
	if s == zygo.SexpNull {
		return true, nil
	}
	return false, fmt.Errorf("expected true or false, got %s", describe(s))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", describe(s))
}

func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %s", describe(s))
}

func toParams(s zygo.Sexp) (shape.Params, error) {
	if p, ok := s.(*sexpParams); ok {
		return p.params, nil
	}
	return nil, fmt.Errorf("expected shape parameters, got %s", describe(s))
}

// toRefName accepts a reference from defshape, shape or defcomposite, or a
// bare name string.
func toRefName(s zygo.Sexp) (string, error) {
	switch v := s.(type) {
	case *sexpRef:
		return v.name, nil
	case *zygo.SexpStr:
		if _, kw := isKW(v); !kw {
			return v.S, nil
		}
	}
	return "", fmt.Errorf("expected shape reference or name, got %s", describe(s))
}

// sexpListToSlice converts a list or array to a slice; the empty list is nil.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %s", describe(s))
}
