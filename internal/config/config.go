// Package config holds the shapes command settings.
package config

import (
	"fmt"
	"time"

	"github.com/chazu/shapes/internal/logger"
)

// Kernel backends.
const (
	BackendMesher = "mesher"
	BackendSDFX   = "sdfx"
)

// Output formats.
const (
	FormatReport = "report"
	FormatJSON   = "json"
	FormatSTL    = "stl"
	FormatYAML   = "yaml"
)

// Config holds all settings.
type Config struct {
	Kernel  KernelConfig  `yaml:"kernel"`
	Build   BuildConfig   `yaml:"build"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// KernelConfig selects and tunes the mesh backend.
type KernelConfig struct {
	Backend            string `yaml:"backend"`              // mesher or sdfx
	Cells              int    `yaml:"cells"`                // marching-cubes cells along the longest axis (sdfx)
	RoundedBoxAssembly bool   `yaml:"rounded_box_assembly"` // build rounded boxes from parts (mesher)
}

// BuildConfig controls evaluation and tessellation.
type BuildConfig struct {
	Workers     int           `yaml:"workers"` // 0 = one per CPU
	Validate    bool          `yaml:"validate"`
	EvalTimeout time.Duration `yaml:"eval_timeout"`
	// CheckTolerance is the largest accepted distance between a mesher
	// vertex and the reference surface in check mode.
	CheckTolerance float64 `yaml:"check_tolerance"`
}

// OutputConfig says what to write and where.
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"` // empty = stdout
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string            `yaml:"level"`
	File  logger.FileConfig `yaml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Kernel: KernelConfig{
			Backend: BackendMesher,
			Cells:   200,
		},
		Build: BuildConfig{
			Validate:       true,
			EvalTimeout:    5 * time.Second,
			CheckTolerance: 0.05,
		},
		Output: OutputConfig{
			Format: FormatReport,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  logger.DefaultFileConfig(""),
		},
	}
}

// Validate rejects settings the command cannot act on.
func (c *Config) Validate() error {
	switch c.Kernel.Backend {
	case BackendMesher, BackendSDFX:
	default:
		return fmt.Errorf("config: unknown kernel backend %q", c.Kernel.Backend)
	}
	switch c.Output.Format {
	case FormatReport, FormatJSON, FormatSTL, FormatYAML:
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output.Format)
	}
	if c.Kernel.Cells <= 0 {
		return fmt.Errorf("config: kernel cells must be positive, got %d", c.Kernel.Cells)
	}
	if c.Build.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Build.Workers)
	}
	if c.Build.EvalTimeout < 0 {
		return fmt.Errorf("config: eval timeout must not be negative, got %s", c.Build.EvalTimeout)
	}
	return nil
}
