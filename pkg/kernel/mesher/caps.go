package mesher

import (
	"fmt"

	"github.com/chazu/shapes/pkg/shape"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// capRing describes one flat cap. Without an inner ring the cap is a fan
// from center; with one it is an annulus. Rings > 1 subdivides the cap
// radially into a quad grid.
type capRing struct {
	outer  []v2.Vec
	inner  []v2.Vec
	center v2.Vec
	closed bool
	z      float64
	up     bool
	rings  int
	uv     bounds2

	// at overrides the point of column j at radial fraction t. Revolution
	// caps use it to compute points in polar form, matching their walls.
	at func(j int, t float64) v2.Vec
}

// fillCap tessellates c into b.
func (b *builder) fillCap(c capRing) error {
	min := 2
	if c.closed {
		min = 3
	}
	if len(c.outer) < min {
		return fmt.Errorf("mesher: cap ring of %d points, need %d: %w", len(c.outer), min, shape.ErrInvalidParameter)
	}
	if c.inner != nil && len(c.inner) != len(c.outer) {
		return fmt.Errorf("mesher: cap inner ring has %d points, outer %d: %w", len(c.inner), len(c.outer), shape.ErrInvalidParameter)
	}
	if c.rings < 1 {
		return fmt.Errorf("mesher: cap needs at least one ring, got %d: %w", c.rings, shape.ErrInvalidParameter)
	}

	at := c.at
	if at == nil {
		at = func(j int, t float64) v2.Vec {
			base := c.center
			if c.inner != nil {
				base = c.inner[j]
			}
			return lerp2(base, c.outer[j], t)
		}
	}

	nz := -1.0
	if c.up {
		nz = 1
	}
	normal := v3.Vec{Z: nz}
	add := func(p v2.Vec) uint32 {
		return b.vertex(v3.Vec{X: p.X, Y: p.Y, Z: c.z}, normal, c.uv.uv(p))
	}

	n := len(c.outer)
	rows := make([][]uint32, c.rings+1)
	for i := range rows {
		rows[i] = make([]uint32, n)
		if i == 0 && c.inner == nil {
			center := add(at(0, 0))
			for j := range rows[i] {
				rows[i][j] = center
			}
			continue
		}
		t := frac(i, c.rings)
		for j := range rows[i] {
			rows[i][j] = add(at(j, t))
		}
	}

	segs := n - 1
	if c.closed {
		segs = n
	}
	for i := 0; i < c.rings; i++ {
		lo, hi := rows[i], rows[i+1]
		for j := 0; j < segs; j++ {
			k := (j + 1) % n
			if c.up {
				b.quad(lo[j], hi[j], hi[k], lo[k])
			} else {
				b.quad(lo[j], lo[k], hi[k], hi[j])
			}
		}
	}
	return nil
}
