package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/shapes/internal/logger"
	"github.com/chazu/shapes/pkg/catalog"
	"github.com/chazu/shapes/pkg/export"
)

const script = `
; a lamp post on a slab
(defshape "post" (cylinder :radius 0.2 :height 3 :segs-c 24))
(defshape "lamp" (sphere :radius 0.4))
(defshape "slab" (box :width 2 :depth 2 :height 0.2))
(defcomposite "lamppost"
  (place (shape "slab"))
  (place (shape "post") :at (vec3 0 0 0.1))
  (place (shape "lamp") :at (vec3 0 0 3.3)))
`

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runArgs(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestReport(t *testing.T) {
	code, out, stderr := runArgs(t, "", write(t, "scene.lisp", script))
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("report has %d lines:\n%s", len(lines), out)
	}
	for i, name := range []string{"post", "lamp", "slab", "lamppost"} {
		if !strings.HasPrefix(lines[i], name) {
			t.Errorf("line %d = %q, want %s first", i, lines[i], name)
		}
	}
	if !strings.Contains(lines[0], "convex-hull") || !strings.Contains(lines[1], "triangle-mesh") {
		t.Errorf("collision kinds missing:\n%s", out)
	}
	if !strings.Contains(lines[0], "closed") {
		t.Errorf("post not closed: %s", lines[0])
	}
}

func TestJSONToFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "scene.json")
	code, _, stderr := runArgs(t, "", "-format", "json", "-o", outPath, "-only", "lamppost, post", write(t, "scene.lisp", script))
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var doc export.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Parts) != 2 || doc.Parts[0].Name != "lamppost" || doc.Parts[1].Name != "post" {
		t.Fatalf("parts = %+v", doc.Parts)
	}
	if doc.Parts[0].Kind != "composite" || len(doc.Parts[0].Indices) == 0 {
		t.Errorf("lamppost = %s with %d indices", doc.Parts[0].Kind, len(doc.Parts[0].Indices))
	}
}

func TestYAMLInputAndOutput(t *testing.T) {
	code, out, stderr := runArgs(t, script, "-format", "yaml", "-")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	c, err := catalog.Decode([]byte(out))
	if err != nil {
		t.Fatalf("decode emitted catalog: %v\n%s", err, out)
	}
	if c.Len() != 4 {
		t.Errorf("emitted %d entries", c.Len())
	}

	code, report, stderr := runArgs(t, "", write(t, "scene.yaml", out))
	if code != exitOK {
		t.Fatalf("yaml input: exit %d: %s", code, stderr)
	}
	if strings.Count(report, "\n") != 4 {
		t.Errorf("report:\n%s", report)
	}
}

func TestSTL(t *testing.T) {
	code, out, stderr := runArgs(t, "", "-format", "stl", "-only", "slab", write(t, "scene.lisp", script))
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	_, corners, err := export.ReadSTL(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(corners) == 0 {
		t.Error("no facets written")
	}
}

func TestCheck(t *testing.T) {
	code, _, stderr := runArgs(t, "", "-check", "-cells", "60", write(t, "scene.lisp", script))
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	for _, name := range []string{"post", "lamp", "slab"} {
		if !strings.Contains(stderr, "check "+name) {
			t.Errorf("no check line for %s:\n%s", name, stderr)
		}
	}
}

func TestLogFile(t *testing.T) {
	t.Cleanup(func() { logger.Set(nil) })
	logPath := filepath.Join(t.TempDir(), "shapes.log")
	src := script + `(defshape "arc" (cylinder :radius 1 :height 1 :ring-slice-deg 90))`
	code, _, stderr := runArgs(t, "", "-debug", "-log-file", logPath, "-check", "-cells", "40", write(t, "scene.lisp", src))
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"msg":"catalog loaded"`, `"entries":5`, "check skipped for arc"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file lacks %s:\n%s", want, data)
		}
	}
}

func TestScriptErrors(t *testing.T) {
	code, _, stderr := runArgs(t, "", write(t, "bad.lisp", `(defshape "s" (sphere :radius -1))`))
	if code != exitFailure {
		t.Fatalf("exit %d, want %d", code, exitFailure)
	}
	if !strings.Contains(stderr, "radius") {
		t.Errorf("stderr does not name the field:\n%s", stderr)
	}

	outPath := filepath.Join(t.TempDir(), "errors.json")
	code, _, _ = runArgs(t, "", "-format", "json", "-o", outPath, write(t, "bad.yaml", "composites:\n  - name: c\n    parts: [{ref: ghost}]\n"))
	if code != exitFailure {
		t.Fatalf("exit %d, want %d", code, exitFailure)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var doc export.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Errors) == 0 || doc.Errors[0].Entry != "c" {
		t.Errorf("errors = %+v", doc.Errors)
	}
}

func TestUsage(t *testing.T) {
	tests := [][]string{
		{},
		{"a.lisp", "b.lisp"},
		{"-format", "obj", "a.lisp"},
		{"-no-such-flag"},
	}
	for _, args := range tests {
		if code, _, _ := runArgs(t, "", args...); code != exitUsage {
			t.Errorf("%v: exit %d, want %d", args, code, exitUsage)
		}
	}
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	code, _, stderr := runArgs(t, "", "-kernel", "sdfx", "-save-config", path)
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "backend: sdfx") {
		t.Errorf("saved config:\n%s", data)
	}
}

func TestTownExample(t *testing.T) {
	code, out, stderr := runArgs(t, "", "-only", "block", "../../examples/town.lisp")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.HasPrefix(out, "block") {
		t.Errorf("report:\n%s", out)
	}
}
