package catalog

import (
	"errors"
	"testing"

	"github.com/chazu/shapes/pkg/shape"
)

const sceneYAML = `
shapes:
  - name: post
    cylinder: {radius: 0.5, height: 3, segs_c: 12}
  - name: lamp
    capsule: {radius: 0.25, height: 1}
  - name: hut
    irregular_prism:
      points: [{x: 0, y: 0}, {x: 4, y: 0}, {x: 4, y: 1}, {x: 1, y: 1}, {x: 1, y: 3}, {x: 0, y: 3}]
      height: 2
  - name: slab
    auto_segments: true
    box: {width: 10, depth: 6, height: 1}
composites:
  - name: lamppost
    convex: false
    parts:
      - ref: post
      - ref: lamp
        center: [0, 0, 3]
        axis: [1, 0, 0]
        angle_deg: 90
`

func TestDecode(t *testing.T) {
	c, err := Decode([]byte(sceneYAML))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if c.Len() != 5 {
		t.Fatalf("Len = %d, want 5", c.Len())
	}
	if errs := Validate(c); len(errs) != 0 {
		t.Errorf("Validate = %v", errs)
	}

	post := c.MustLookup("post").Shape.Params().(shape.Cylinder)
	if post.SegsC != 12 || post.SegsA != shape.DefaultSegsA {
		t.Errorf("post = %+v", post)
	}
	lamp := c.MustLookup("lamp").Shape.Params().(shape.Capsule)
	if !lamp.TopHemisphere() || !lamp.BottomHemisphere() {
		t.Errorf("capsule ends should default to hemispheres: %+v", lamp)
	}
	if c.MustLookup("hut").Convex() {
		t.Error("L-shaped prism tagged convex")
	}
	if slab := c.MustLookup("slab").Shape.Params().(shape.Box); slab.SegsW != 5 {
		t.Errorf("auto segments width = %d, want 5", slab.SegsW)
	}

	lp := c.MustLookup("lamppost").Composite
	if len(lp.Parts) != 2 || lp.Parts[1].AngleDeg != 90 || lp.Parts[1].Center.Z != 3 || lp.Parts[1].Axis.X != 1 {
		t.Errorf("lamppost = %+v", lp)
	}
	if lp.Parts[0].Axis.Z != 1 {
		t.Errorf("omitted axis = %v, want +Z", lp.Parts[0].Axis)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"two families", "shapes:\n  - name: x\n    box: {width: 1, depth: 1, height: 1}\n    sphere: {radius: 1}\n"},
		{"no family", "shapes:\n  - name: x\n"},
		{"invalid params", "shapes:\n  - name: x\n    sphere: {radius: -1}\n"},
		{"duplicate", "shapes:\n  - name: x\n    sphere: {radius: 1}\n  - name: x\n    sphere: {radius: 2}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.doc)); err == nil {
				t.Error("Decode succeeded, want error")
			}
		})
	}
	_, err := Decode([]byte("shapes:\n  - name: x\n    sphere: {radius: -1}\n"))
	if !errors.Is(err, shape.ErrInvalidParameter) {
		t.Errorf("invalid params error = %v, want ErrInvalidParameter", err)
	}
	if _, err := Decode([]byte("shapes: [")); err == nil {
		t.Error("malformed YAML accepted")
	}
}

func TestEncodeDecode(t *testing.T) {
	c, err := Decode([]byte(sceneYAML))
	if err != nil {
		t.Fatal(err)
	}
	out, err := Encode(c)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode(Encode): %v\n%s", err, out)
	}
	for _, name := range c.Names() {
		a, b := c.MustLookup(name), again.MustLookup(name)
		if a.Kind != b.Kind {
			t.Errorf("%s: kind %s != %s", name, a.Kind, b.Kind)
			continue
		}
		if a.Kind == EntryShape && a.Shape.String() != b.Shape.String() {
			t.Errorf("%s: %s != %s", name, a.Shape, b.Shape)
		}
	}
}
