package mesher

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// endWall fills the flat cross-section that closes one end of a partial
// sweep. poly is the counter-clockwise outline of the section in (u, z)
// coordinates; u maps into the plane as lerp2(origin, target, u). The start
// wall faces the direction the sweep comes from, the end wall is mirrored.
func (b *builder) endWall(poly []v2.Vec, origin, target v2.Vec, start bool) error {
	poly = cleanLoop(poly)
	tris, err := earClip(poly)
	if err != nil {
		return err
	}

	dir := target.Sub(origin)
	n := v3.Vec{X: dir.Y, Y: -dir.X}
	if !start {
		n = n.MulScalar(-1)
	}

	uv := boundsOf(poly)
	ids := make([]uint32, len(poly))
	for i, p := range poly {
		xy := lerp2(origin, target, p.X)
		ids[i] = b.vertex(v3.Vec{X: xy.X, Y: xy.Y, Z: p.Y}, n, uv.uv(p))
	}
	for _, t := range tris {
		if start {
			b.tri(ids[t[0]], ids[t[1]], ids[t[2]])
		} else {
			b.tri(ids[t[0]], ids[t[2]], ids[t[1]])
		}
	}
	return nil
}
