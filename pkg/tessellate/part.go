package tessellate

import (
	"github.com/chazu/shapes/pkg/catalog"
	"github.com/chazu/shapes/pkg/kernel"
)

// CollisionKind is the collision shape a physics layer should build for a
// part.
type CollisionKind int

const (
	// CollisionConvexHull is cheap and exact only for convex parts.
	CollisionConvexHull CollisionKind = iota
	// CollisionTriangleMesh uses the mesh triangles as they are.
	CollisionTriangleMesh
)

func (k CollisionKind) String() string {
	switch k {
	case CollisionConvexHull:
		return "convex-hull"
	case CollisionTriangleMesh:
		return "triangle-mesh"
	default:
		return "unknown"
	}
}

// Part is one built catalog entry.
type Part struct {
	Name   string
	Kind   catalog.EntryKind
	Mesh   *kernel.Mesh
	Convex bool
}

// Collision picks the collision shape from the convexity tag.
func (p *Part) Collision() CollisionKind {
	if p.Convex {
		return CollisionConvexHull
	}
	return CollisionTriangleMesh
}
