package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Kernel.Backend != BackendMesher || cfg.Kernel.Cells != 200 {
		t.Errorf("kernel = %+v", cfg.Kernel)
	}
	if !cfg.Build.Validate || cfg.Build.EvalTimeout != 5*time.Second || cfg.Build.Workers != 0 {
		t.Errorf("build = %+v", cfg.Build)
	}
	if cfg.Output.Format != FormatReport || cfg.Output.Path != "" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.File.Path != "" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func parse(t *testing.T, args ...string) *Flags {
	t.Helper()
	fs := flag.NewFlagSet("shapes", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return f
}

func TestLoadLayers(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	doc := `
kernel:
  backend: sdfx
  cells: 64
build:
  workers: 3
  eval_timeout: 2s
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(parse(t, "-config", path, "-cells", "32", "-format", "json", "-debug"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kernel.Backend != BackendSDFX {
		t.Errorf("backend = %q, want file value", cfg.Kernel.Backend)
	}
	if cfg.Kernel.Cells != 32 {
		t.Errorf("cells = %d, want flag value 32", cfg.Kernel.Cells)
	}
	if cfg.Build.Workers != 3 || cfg.Build.EvalTimeout != 2*time.Second {
		t.Errorf("build = %+v", cfg.Build)
	}
	if !cfg.Build.Validate {
		t.Error("omitted validate lost its default")
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("format = %q", cfg.Output.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug from flag", cfg.Logging.Level)
	}
}

func TestLoadFindsConfigDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	if got := ConfigDir(); got != filepath.Join(xdg, "shapes") {
		t.Fatalf("ConfigDir = %q", got)
	}

	saved := Default()
	saved.Output.Format = FormatSTL
	saved.Kernel.RoundedBoxAssembly = true
	if err := saved.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != FormatSTL || !cfg.Kernel.RoundedBoxAssembly {
		t.Errorf("loaded %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("kernel: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"-config", filepath.Join(t.TempDir(), "absent.yaml")}},
		{"malformed file", []string{"-config", bad}},
		{"unknown backend", []string{"-kernel", "cgal"}},
		{"unknown format", []string{"-format", "obj"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(parse(t, tt.args...)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cells", func(c *Config) { c.Kernel.Cells = 0 }},
		{"negative workers", func(c *Config) { c.Build.Workers = -1 }},
		{"negative timeout", func(c *Config) { c.Build.EvalTimeout = -time.Second }},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Build.EvalTimeout = 1500 * time.Millisecond
	cfg.Logging.File.Path = "/tmp/shapes.log"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got := Default()
	if err := loadFromFile(got, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, cfg)
	}
}
