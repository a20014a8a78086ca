// Package export writes tessellated parts for other programs: a JSON
// document for viewers and physics loaders, and STL for slicers and CAD.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chazu/shapes/pkg/tessellate"
)

// palette gives each part a distinct default colour.
var palette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// PartData is one part in a Document.
type PartData struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Convex    bool      `json:"convex"`
	Collision string    `json:"collision"`
	Color     string    `json:"color"`
	Vertices  []float32 `json:"vertices"`
	Normals   []float32 `json:"normals"`
	UVs       []float32 `json:"uvs"`
	Indices   []uint32  `json:"indices"`
}

// Problem is a located message in a Document.
type Problem struct {
	Line    int    `json:"line,omitempty"`
	Entry   string `json:"entry,omitempty"`
	Message string `json:"message"`
}

// Document is the JSON export. Slices are never null.
type Document struct {
	Parts    []PartData `json:"parts"`
	Errors   []Problem  `json:"errors"`
	Warnings []Problem  `json:"warnings"`
}

// NewDocument converts parts in order, colouring them from the palette.
func NewDocument(parts []*tessellate.Part) *Document {
	doc := &Document{
		Parts:    make([]PartData, 0, len(parts)),
		Errors:   []Problem{},
		Warnings: []Problem{},
	}
	for i, p := range parts {
		doc.Parts = append(doc.Parts, PartData{
			Name:      p.Name,
			Kind:      p.Kind.String(),
			Convex:    p.Convex,
			Collision: p.Collision().String(),
			Color:     palette[i%len(palette)],
			Vertices:  p.Mesh.Vertices,
			Normals:   p.Mesh.Normals,
			UVs:       p.Mesh.UVs,
			Indices:   p.Mesh.Indices,
		})
	}
	return doc
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: json: %w", err)
	}
	return nil
}
