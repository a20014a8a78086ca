package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/chazu/shapes/pkg/catalog"
	"github.com/chazu/shapes/pkg/shape"
	zygo "github.com/glycerine/zygomys/zygo"
)

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"keyword", `(sphere :radius 2)`, `(sphere "__kw_radius" 2)`},
		{"hyphenated keyword", `:segs-top-cap`, `"__kw_segs-top-cap"`},
		{"kebab identifier", `(rounded-corner-box :width 1)`, `(rounded_corner_box "__kw_width" 1)`},
		{"keyword inside string", `"a :b c"`, `"a :b c"`},
		{"escaped quote in string", `"say \":x\"" :y`, `"say \":x\"" "__kw_y"`},
		{"raw string", "`:raw-text`", "`:raw-text`"},
		{"assignment", `(def x := 10)`, `(def x := 10)`},
		{"minus operator", `(- 10 5)`, `(- 10 5)`},
		{"negative number", `:angle -90`, `"__kw_angle" -90`},
		{"exponent", `1e-5`, `1e-5`},
		{"double semicolon", ";; note :kw", "// note :kw"},
		{"single semicolon", "(vec2 1 2) ; trailing\n(vec2 3 4)", "(vec2 1 2) // trailing\n(vec2 3 4)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.input); got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFieldFor(t *testing.T) {
	tests := []struct {
		kw     string
		field  string
		invert bool
	}{
		{"radius", "radius", false},
		{"segs-top-cap", "segs_top_cap", false},
		{"top-hemisphere", "flat_top", true},
		{"bottom-hemisphere", "flat_bottom", true},
		{"rounded-front-left", "sharp_front_left", true},
		{"rounded-right", "sharp_right", true},
		{"sharp-left", "sharp_left", false},
	}
	for _, tt := range tests {
		field, invert := fieldFor(tt.kw)
		if field != tt.field || invert != tt.invert {
			t.Errorf("fieldFor(%q) = %q, %t; want %q, %t", tt.kw, field, invert, tt.field, tt.invert)
		}
	}
}

const sceneScript = `
;; same scene as the catalog package's YAML fixture
(defshape "post" (cylinder :radius 0.5 :height 3 :segs-c 12))
(defshape "lamp" (capsule :radius 0.25 :height 1))
(defshape "hut"
  (irregular-prism
    :points (list (vec2 0 0) (vec2 4 0) (vec2 4 1) (vec2 1 1) (vec2 1 3) (vec2 0 3))
    :height 2))
(defshape "slab" (auto-segments (box :width 10 :depth 6 :height 1)))
(defcomposite "lamppost" :convex false
  (place (shape "post"))
  (place (shape "lamp") :at (vec3 0 0 3) :axis (vec3 1 0 0) :angle 90))
`

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
    parts:
      - ref: post
      - ref: lamp
        center: [0, 0, 3]
        axis: [1, 0, 0]
        angle_deg: 90
`

func mustEvaluate(t *testing.T, src string) *catalog.Catalog {
	t.Helper()
	c, evalErrs, err := NewEngine().Evaluate(src)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return c
}

func TestScriptMatchesYAML(t *testing.T) {
	got := mustEvaluate(t, sceneScript)
	want, err := catalog.Decode([]byte(sceneYAML))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got.Names(), want.Names()) {
		t.Fatalf("names = %v, want %v", got.Names(), want.Names())
	}
	for _, name := range want.Names() {
		g, w := got.MustLookup(name), want.MustLookup(name)
		if g.Kind != w.Kind {
			t.Errorf("%s: kind %s, want %s", name, g.Kind, w.Kind)
			continue
		}
		if g.Kind == catalog.EntryShape && !reflect.DeepEqual(g.Shape.Params(), w.Shape.Params()) {
			t.Errorf("%s: params %+v, want %+v", name, g.Shape.Params(), w.Shape.Params())
		}
		if g.Kind == catalog.EntryComposite && !reflect.DeepEqual(g.Composite, w.Composite) {
			t.Errorf("%s: composite %+v, want %+v", name, g.Composite, w.Composite)
		}
		if g.Source == "" {
			t.Errorf("%s: empty source", name)
		}
	}
}

func TestInvertedKeywords(t *testing.T) {
	c := mustEvaluate(t, `
(defshape "pill" (capsule :radius 1 :height 2 :top-hemisphere false))
(defshape "tab" (capsule-prism :width 4 :depth 2 :height 1 :rounded-left false))
(defshape "tray" (rounded-corner-box :width 4 :depth 3 :height 1 :corner-radius 0.5
                   :rounded-front-left false :sharp-back-right true))
`)
	pill := c.MustLookup("pill").Shape.Params().(shape.Capsule)
	if pill.TopHemisphere() || !pill.BottomHemisphere() {
		t.Errorf("pill = %+v", pill)
	}
	tab := c.MustLookup("tab").Shape.Params().(shape.CapsulePrism)
	if !tab.SharpLeft || tab.SharpRight {
		t.Errorf("tab = %+v", tab)
	}
	tray := c.MustLookup("tray").Shape.Params().(shape.RoundedCornerBox)
	if !tray.SharpFrontLeft || !tray.SharpBackRight || tray.SharpFrontRight || tray.SharpBackLeft {
		t.Errorf("tray = %+v", tray)
	}
}

func TestVariablesAndFlags(t *testing.T) {
	c := mustEvaluate(t, `
(def r 2)
(def tube (cylinder :radius r :inner-radius (/ r 2) :height (* r 3) :open-top true))
(defshape "tube" tube)
(defshape "ring" (torus :ring-radius 3 :section-radius 0.5 :ring-slice-deg 90))
(defshape "floor" (plane :width 4 :depth 4 :segs-w 2 :segs-d 2))
(defcomposite "pair" :convex true "tube" (shape "ring"))
`)
	tube := c.MustLookup("tube").Shape.Params().(shape.Cylinder)
	if tube.Radius != 2 || tube.InnerRadius != 1 || tube.Height != 6 || !tube.OpenTop {
		t.Errorf("tube = %+v", tube)
	}
	if ring := c.MustLookup("ring").Shape.Params().(shape.Torus); ring.RingSliceDeg != 90 {
		t.Errorf("ring = %+v", ring)
	}
	pair := c.MustLookup("pair")
	if !pair.Convex() || !reflect.DeepEqual(pair.Refs(), []string{"tube", "ring"}) {
		t.Errorf("pair = %+v", pair.Composite)
	}
	if pair.Composite.Parts[0].Axis.Z != 1 {
		t.Errorf("bare reference axis = %v, want +Z", pair.Composite.Parts[0].Axis)
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"negative radius", `(defshape "s" (sphere :radius -1))`, "radius"},
		{"unknown keyword", `(defshape "s" (sphere :radius 1 :colour 3))`, "colour"},
		{"wrong value type", `(defshape "s" (sphere :radius (vec2 1 2)))`, "sphere"},
		{"positional family arg", `(defshape "s" (sphere 1))`, "positional"},
		{"missing shape", `(place (shape "ghost"))`, "ghost"},
		{"duplicate name", `(defshape "s" (sphere :radius 1)) (defshape "s" (sphere :radius 2))`, "s"},
		{"defshape arity", `(defshape "s")`, "defshape"},
		{"vec3 arity", `(vec3 1 2)`, "vec3"},
		{"bad place keyword", `(defshape "s" (sphere :radius 1)) (place "s" :spin 3)`, "spin"},
		{"dangling reference", `(defcomposite "c" (place "ghost"))`, "ghost"},
		{"cycle", `(defcomposite "a" (place "b")) (defcomposite "b" (place "a"))`, "cycle"},
		{"empty composite", `(defcomposite "c")`, "c"},
		{"zero axis", `(defshape "s" (sphere :radius 1)) (defcomposite "c" (place "s" :axis (vec3 0 0 0) :angle 45))`, "axis"},
		{"inverted non-bool", `(defshape "p" (capsule :radius 1 :height 2 :top-hemisphere 3))`, "top-hemisphere"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, evalErrs, err := NewEngine().Evaluate(tt.source)
			if err != nil {
				t.Fatalf("fatal error: %v", err)
			}
			if c != nil {
				t.Fatal("expected nil catalog")
			}
			if len(evalErrs) == 0 {
				t.Fatal("expected eval errors")
			}
			all := ""
			for _, e := range evalErrs {
				all += e.Error() + "\n"
			}
			if !strings.Contains(all, tt.want) {
				t.Errorf("errors %q do not mention %q", all, tt.want)
			}
		})
	}
}

func TestFamilyBuiltinWrapsInvalidParameter(t *testing.T) {
	args := []zygo.Sexp{
		&zygo.SexpStr{S: kwPrefix + "ring-radius"}, &zygo.SexpFloat{Val: 1},
		&zygo.SexpStr{S: kwPrefix + "section-radius"}, &zygo.SexpInt{Val: 2},
	}
	_, err := familyBuiltin(shape.KindTorus)(nil, "torus", args)
	if !errors.Is(err, shape.ErrInvalidParameter) {
		t.Fatalf("error %v does not wrap ErrInvalidParameter", err)
	}

	args[3] = &zygo.SexpFloat{Val: 0.25}
	v, err := familyBuiltin(shape.KindTorus)(nil, "torus", args)
	if err != nil {
		t.Fatalf("valid torus: %v", err)
	}
	tor := v.(*sexpParams).params.(shape.Torus)
	if tor.RingRadius != 1 || tor.SectionRadius != 0.25 || tor.SegsR != 0 {
		t.Errorf("torus = %+v, want undefaulted segments", tor)
	}
}
