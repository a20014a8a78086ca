package mesher

import (
	"fmt"

	"github.com/chazu/shapes/pkg/kernel"
	"github.com/chazu/shapes/pkg/shape"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// quarterTurn is the rotation about Z that carries the (+X, +Y) quadrant
// onto each corner.
var quarterTurn = [4]float64{frontRight: 270, backRight: 0, backLeft: 90, frontLeft: 180}

// assembleRoundedBox builds a solid rounded-corner box from a central box,
// four edge slabs and four quarter cylinders (or small boxes for sharp
// corners). Parts are placed edge to edge without welding.
func (m *Mesher) assembleRoundedBox(p shape.RoundedCornerBox) (*kernel.Mesh, error) {
	if p.Thickness > 0 || p.OpenTop || p.OpenBottom {
		return nil, shape.Invalid(shape.KindRoundedCornerBox, "thickness",
			"assembled boxes must be closed and solid (thickness %g, open top %t, open bottom %t)",
			p.Thickness, p.OpenTop, p.OpenBottom)
	}
	w, d, h, cr := p.Width, p.Depth, p.Height, p.CornerRadius
	arena := &kernel.Arena{}
	var placements []kernel.Placement

	place := func(params shape.Params, at v3.Vec, angle float64) error {
		desc, err := shape.New(params)
		if err != nil {
			return fmt.Errorf("mesher: assembly part: %w", err)
		}
		mesh, err := m.build(desc)
		if err != nil {
			return err
		}
		placements = append(placements, kernel.Placement{
			Part:     arena.Add(mesh),
			Axis:     v3.Vec{Z: 1},
			AngleDeg: angle,
			Center:   at,
		})
		return nil
	}
	box := func(bw, bd float64, at v3.Vec) error {
		if bw <= 0 || bd <= 0 {
			return nil
		}
		return place(shape.Box{
			Width: bw, Depth: bd, Height: h,
			SegsW: p.SegsW, SegsD: p.SegsD, SegsZ: p.SegsZ,
			SegsTopCap: p.SegsTopCap, SegsBottomCap: p.SegsBottomCap,
		}, at, 0)
	}

	if err := box(w-2*cr, d-2*cr, v3.Vec{}); err != nil {
		return nil, err
	}
	if cr > 0 {
		for _, sx := range []float64{-1, 1} {
			if err := box(cr, d-2*cr, v3.Vec{X: sx * (w/2 - cr/2)}); err != nil {
				return nil, err
			}
		}
		for _, sy := range []float64{-1, 1} {
			if err := box(w-2*cr, cr, v3.Vec{Y: sy * (d/2 - cr/2)}); err != nil {
				return nil, err
			}
		}
	}

	sharp := [4]bool{p.SharpFrontRight, p.SharpBackRight, p.SharpBackLeft, p.SharpFrontLeft}
	for i, s := range cornerSign {
		if cr <= 0 {
			break
		}
		if sharp[i] {
			at := v3.Vec{X: s.X * (w/2 - cr/2), Y: s.Y * (d/2 - cr/2)}
			if err := box(cr, cr, at); err != nil {
				return nil, err
			}
			continue
		}
		at := v3.Vec{X: s.X * (w/2 - cr), Y: s.Y * (d/2 - cr), Z: -h / 2}
		err := place(shape.Cylinder{
			Radius:        cr,
			Height:        h,
			SegsC:         p.SegsCorner,
			SegsA:         p.SegsZ,
			SegsTopCap:    p.SegsTopCap,
			SegsBottomCap: p.SegsBottomCap,
			RingSliceDeg:  270,
		}, at, quarterTurn[i])
		if err != nil {
			return nil, err
		}
	}
	return kernel.Compose(arena, placements)
}
