package catalog

import (
	"github.com/chazu/shapes/pkg/shape"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// EntryKind enumerates what a catalog entry holds.
type EntryKind int

const (
	EntryShape     EntryKind = iota // a single shape descriptor
	EntryComposite                  // placed references to other entries
)

func (k EntryKind) String() string {
	switch k {
	case EntryShape:
		return "shape"
	case EntryComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Entry is one named catalog item.
type Entry struct {
	Name      string
	Kind      EntryKind
	Shape     shape.Descriptor // set for EntryShape
	Composite *Composite       // set for EntryComposite
	Source    string           // expression or document the entry came from
}

// Convex reports the convexity tag used to pick a collision kind.
func (e *Entry) Convex() bool {
	if e.Kind == EntryComposite {
		return e.Composite != nil && e.Composite.Convex
	}
	return e.Shape.Convex()
}

// Refs returns the names a composite entry places, in order.
func (e *Entry) Refs() []string {
	if e.Kind != EntryComposite || e.Composite == nil {
		return nil
	}
	refs := make([]string, len(e.Composite.Parts))
	for i, p := range e.Composite.Parts {
		refs[i] = p.Ref
	}
	return refs
}

// Composite assembles other entries. Convex is declared by the author; the
// parts of a composite are not checked for it.
type Composite struct {
	Parts  []Placement
	Convex bool
}

// Placement positions a referenced entry: rotate by AngleDeg about Axis,
// then translate to Center.
type Placement struct {
	Ref      string
	Axis     v3.Vec
	Center   v3.Vec
	AngleDeg float64
}
