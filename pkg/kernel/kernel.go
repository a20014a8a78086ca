// Package kernel defines the mesh type produced by shape builders, the
// Kernel interface that turns a shape descriptor into a mesh, and the merge
// operations that combine independently built meshes. Implementations
// (mesher, sdfx) live in subpackages so the rest of the system can swap
// backends without change.
package kernel

import (
	"github.com/chazu/shapes/pkg/shape"
)

// Kernel builds a mesh from a validated shape descriptor. Implementations
// must be safe for concurrent use and deterministic: equal descriptors yield
// identical meshes.
type Kernel interface {
	Build(d shape.Descriptor) (*Mesh, error)
}

// KernelFunc adapts a function to the Kernel interface.
type KernelFunc func(d shape.Descriptor) (*Mesh, error)

// Build calls f(d).
func (f KernelFunc) Build(d shape.Descriptor) (*Mesh, error) { return f(d) }
