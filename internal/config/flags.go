package config

import (
	"flag"
	"time"
)

// Flags are the command-line overrides. Zero values leave the loaded
// setting alone.
type Flags struct {
	Config   string
	Debug    bool
	Backend  string
	Cells    int
	Workers  int
	Format   string
	Out      string
	Timeout  time.Duration
	Assemble bool
	LogFile  string
}

// RegisterFlags binds the overrides to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	fs.StringVar(&f.Backend, "kernel", "", "mesh backend: mesher or sdfx")
	fs.IntVar(&f.Cells, "cells", 0, "marching-cubes resolution for the sdfx backend")
	fs.IntVar(&f.Workers, "workers", 0, "concurrent entry builds (0 = one per CPU)")
	fs.StringVar(&f.Format, "format", "", "output: report, json, stl or yaml")
	fs.StringVar(&f.Out, "o", "", "output file (default stdout)")
	fs.DurationVar(&f.Timeout, "timeout", 0, "script evaluation limit")
	fs.BoolVar(&f.Assemble, "assemble", false, "build rounded boxes from box, slab and quarter-cylinder parts")
	fs.StringVar(&f.LogFile, "log-file", "", "also log to this rotating file")
	return f
}

func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Backend != "" {
		cfg.Kernel.Backend = f.Backend
	}
	if f.Cells > 0 {
		cfg.Kernel.Cells = f.Cells
	}
	if f.Workers > 0 {
		cfg.Build.Workers = f.Workers
	}
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.Out != "" {
		cfg.Output.Path = f.Out
	}
	if f.Timeout > 0 {
		cfg.Build.EvalTimeout = f.Timeout
	}
	if f.Assemble {
		cfg.Kernel.RoundedBoxAssembly = true
	}
	if f.LogFile != "" {
		cfg.Logging.File.Path = f.LogFile
	}
}
