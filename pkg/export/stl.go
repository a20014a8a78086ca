package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/chazu/shapes/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const stlHeaderSize = 80

// WriteSTL writes the meshes as one binary STL solid. Facet normals come
// from the winding, not from the vertex normals.
func WriteSTL(w io.Writer, meshes ...*kernel.Mesh) error {
	var n int
	for _, m := range meshes {
		n += m.TriangleCount()
	}
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("export: stl: %d triangles do not fit the format", n)
	}

	bw := bufio.NewWriter(w)
	var header [stlHeaderSize]byte
	copy(header[:], "binary STL written by shapes")
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("export: stl: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(n)); err != nil {
		return fmt.Errorf("export: stl: %w", err)
	}

	// normal, three corners, attribute byte count
	var rec [12]float32
	for _, m := range meshes {
		for t := 0; t < m.TriangleCount(); t++ {
			nrm := m.FaceNormal(t)
			rec[0], rec[1], rec[2] = float32(nrm.X), float32(nrm.Y), float32(nrm.Z)
			a, b, c := m.Triangle(t)
			for j, i := range [3]int{a, b, c} {
				copy(rec[3+3*j:6+3*j], m.Vertices[3*i:3*i+3])
			}
			if err := binary.Write(bw, binary.LittleEndian, rec); err != nil {
				return fmt.Errorf("export: stl: %w", err)
			}
			if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
				return fmt.Errorf("export: stl: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: stl: %w", err)
	}
	return nil
}

// Triangles converts m to sdfx triangles.
func Triangles(m *kernel.Mesh) []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, m.TriangleCount())
	for t := range out {
		a, b, c := m.Triangle(t)
		out[t] = &sdf.Triangle3{m.Position(a), m.Position(b), m.Position(c)}
	}
	return out
}

// SaveSTL writes the meshes to path with the sdfx STL writer.
func SaveSTL(path string, meshes ...*kernel.Mesh) error {
	var tris []*sdf.Triangle3
	for _, m := range meshes {
		tris = append(tris, Triangles(m)...)
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("export: stl %s: %w", path, err)
	}
	return nil
}

// ReadSTL decodes a binary STL stream into facet normals and corners.
func ReadSTL(r io.Reader) (normals []v3.Vec, corners [][3]v3.Vec, err error) {
	br := bufio.NewReader(r)
	if _, err := io.CopyN(io.Discard, br, stlHeaderSize); err != nil {
		return nil, nil, fmt.Errorf("export: stl header: %w", err)
	}
	var n uint32
	if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
		return nil, nil, fmt.Errorf("export: stl count: %w", err)
	}
	var rec [12]float32
	var attr uint16
	vec := func(f []float32) v3.Vec { return v3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])} }
	for i := uint32(0); i < n; i++ {
		if err := binary.Read(br, binary.LittleEndian, &rec); err != nil {
			return nil, nil, fmt.Errorf("export: stl facet %d: %w", i, err)
		}
		if err := binary.Read(br, binary.LittleEndian, &attr); err != nil {
			return nil, nil, fmt.Errorf("export: stl facet %d: %w", i, err)
		}
		normals = append(normals, vec(rec[0:3]))
		corners = append(corners, [3]v3.Vec{vec(rec[3:6]), vec(rec[6:9]), vec(rec[9:12])})
	}
	return normals, corners, nil
}
