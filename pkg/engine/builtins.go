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

type builtin = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs the script builtins. Names are registered in
// their preprocessed form: rounded-corner-box is rounded_corner_box.
// Declarations are added to c as they run.
func registerBuiltins(env *zygo.Zlisp, c *catalog.Catalog) {
	for _, k := range shape.Kinds() {
		env.AddFunction(strings.ReplaceAll(k.String(), "-", "_"), familyBuiltin(k))
	}

	// (vec2 x y)
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		xs, err := numbers(name, args, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec2{vec: v2.Vec{X: xs[0], Y: xs[1]}}, nil
	})

	// (vec3 x y z)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		xs, err := numbers(name, args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: v3.Vec{X: xs[0], Y: xs[1], Z: xs[2]}}, nil
	})

	// (auto-segments (box :width 10 :depth 4 :height 2))
	env.AddFunction("auto_segments", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("auto-segments: expected 1 argument, got %d", len(args))
		}
		p, err := toParams(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("auto-segments: %w", err)
		}
		p = shape.AutoSegments(p)
		if _, err := shape.New(p); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpParams{params: p}, nil
	})

	// (defshape "name" (cylinder ...))
	env.AddFunction("defshape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("defshape: expected name and shape, got %d arguments", len(args))
		}
		entry, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape: name: %w", err)
		}
		p, err := toParams(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape %q: %w", entry, err)
		}
		d, err := shape.New(p)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defshape %q: %w", entry, err)
		}
		err = c.Add(&catalog.Entry{
			Name:   entry,
			Kind:   catalog.EntryShape,
			Shape:  d,
			Source: args[1].SexpString(nil),
		})
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpRef{name: entry}, nil
	})

	// (shape "name") refers to an entry declared earlier in the script.
	env.AddFunction("shape", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("shape: expected 1 argument, got %d", len(args))
		}
		entry, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("shape: %w", err)
		}
		if c.Lookup(entry) == nil {
			return zygo.SexpNull, fmt.Errorf("shape: no entry named %q", entry)
		}
		return &sexpRef{name: entry}, nil
	})

	// (place ref :at (vec3 ...) :axis (vec3 ...) :angle deg)
	env.AddFunction("place", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("place: expected one reference, got %d", len(pa.positional))
		}
		ref, err := toRefName(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("place: %w", err)
		}
		pl := catalog.Placement{Ref: ref, Axis: v3.Vec{Z: 1}}
		for _, kw := range pa.order {
			v := pa.kw[kw]
			switch kw {
			case "at":
				pl.Center, err = toVec3(v)
			case "axis":
				pl.Axis, err = toVec3(v)
			case "angle":
				pl.AngleDeg, err = toFloat64(v)
			default:
				err = fmt.Errorf("unknown keyword")
			}
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("place %q: %s: %w", ref, kw, err)
			}
		}
		return &sexpPlacement{p: pl}, nil
	})

	// (defcomposite "name" :convex false (place ...) (shape "other") ...)
	env.AddFunction("defcomposite", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) == 0 {
			return zygo.SexpNull, fmt.Errorf("defcomposite: missing name")
		}
		entry, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defcomposite: name: %w", err)
		}
		comp := &catalog.Composite{}
		for _, kw := range pa.order {
			if kw != "convex" {
				return zygo.SexpNull, fmt.Errorf("defcomposite %q: unknown keyword %s", entry, kw)
			}
			if comp.Convex, err = toBool(pa.kw[kw]); err != nil {
				return zygo.SexpNull, fmt.Errorf("defcomposite %q: convex: %w", entry, err)
			}
		}
		for _, arg := range pa.positional[1:] {
			parts, err := placements(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("defcomposite %q: %w", entry, err)
			}
			comp.Parts = append(comp.Parts, parts...)
		}
		src := fmt.Sprintf("(defcomposite %q :convex %t", entry, comp.Convex)
		for _, pl := range comp.Parts {
			src += " " + (&sexpPlacement{p: pl}).SexpString(nil)
		}
		err = c.Add(&catalog.Entry{
			Name:      entry,
			Kind:      catalog.EntryComposite,
			Composite: comp,
			Source:    src + ")",
		})
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpRef{name: entry}, nil
	})
}

// familyBuiltin returns the constructor for one shape family, for example
// (cylinder :radius 1 :height 2 :segs-c 24). Parameters are checked here so
// errors point at the expression; defaults are filled later by defshape.
func familyBuiltin(k shape.Kind) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		p, err := familyParams(k, parseArgs(args))
		if err != nil {
			return zygo.SexpNull, err
		}
		if _, err := shape.New(p); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpParams{params: p}, nil
	}
}

// placements reads one defcomposite part: a placement, a bare reference
// placed at the origin, or a list of either.
func placements(s zygo.Sexp) ([]catalog.Placement, error) {
	switch v := s.(type) {
	case *sexpPlacement:
		return []catalog.Placement{v.p}, nil
	case *sexpRef, *zygo.SexpStr:
		ref, err := toRefName(v)
		if err != nil {
			return nil, err
		}
		return []catalog.Placement{{Ref: ref, Axis: v3.Vec{Z: 1}}}, nil
	case *zygo.SexpPair, *zygo.SexpArray:
		items, err := sexpListToSlice(v)
		if err != nil {
			return nil, err
		}
		var out []catalog.Placement
		for _, it := range items {
			ps, err := placements(it)
			if err != nil {
				return nil, err
			}
			out = append(out, ps...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected placement, got %s", describe(s))
}

func numbers(name string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s: expected %d numbers, got %d arguments", name, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}
