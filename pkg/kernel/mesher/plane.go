package mesher

import (
	"github.com/chazu/shapes/pkg/shape"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// plane emits a single-sided grid on z=0 facing +Z.
func (b *builder) plane(p shape.Plane) {
	hw, hd := p.Width/2, p.Depth/2
	rows := make([][]uint32, p.SegsD+1)
	for j := range rows {
		y := lerp(-hd, hd, frac(j, p.SegsD))
		rows[j] = make([]uint32, p.SegsW+1)
		for i := range rows[j] {
			x := lerp(-hw, hw, frac(i, p.SegsW))
			rows[j][i] = b.vertex(v3.Vec{X: x, Y: y}, v3.Vec{Z: 1}, v2.Vec{X: frac(i, p.SegsW), Y: frac(j, p.SegsD)})
		}
	}
	for j := 0; j < p.SegsD; j++ {
		for i := 0; i < p.SegsW; i++ {
			b.quad(rows[j][i], rows[j][i+1], rows[j+1][i+1], rows[j+1][i])
		}
	}
}
