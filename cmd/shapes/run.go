package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chazu/shapes/internal/config"
	"github.com/chazu/shapes/internal/logger"
	"github.com/chazu/shapes/pkg/catalog"
	"github.com/chazu/shapes/pkg/engine"
	"github.com/chazu/shapes/pkg/export"
	"github.com/chazu/shapes/pkg/inspect"
	"github.com/chazu/shapes/pkg/kernel"
	"github.com/chazu/shapes/pkg/kernel/mesher"
	"github.com/chazu/shapes/pkg/kernel/sdfx"
	"github.com/chazu/shapes/pkg/tessellate"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errScript marks failures already reported as script or catalog problems.
var errScript = errors.New("invalid input")

type options struct {
	cfg   *config.Config
	input string
	only  []string
	check bool
	yaml  bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("shapes", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := config.RegisterFlags(fs)
	only := fs.String("only", "", "comma-separated entries to output (default all)")
	check := fs.Bool("check", false, "compare native meshes against sdfx reference solids")
	asYAML := fs.Bool("yaml", false, "treat the input as a YAML catalog")
	saveConfig := fs.String("save-config", "", "write the effective config to this path and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: shapes [flags] scene.lisp|scene.yaml|-")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	logger.InitWithFileConfig(cfg.Logging.Level, cfg.Logging.File, true)
	defer logger.Sync()

	if *saveConfig != "" {
		if err := cfg.SaveTo(*saveConfig); err != nil {
			fmt.Fprintln(stderr, err)
			return exitFailure
		}
		return exitOK
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}

	opts := options{
		cfg:   cfg,
		input: fs.Arg(0),
		check: *check,
		yaml:  *asYAML,
	}
	if *only != "" {
		opts.only = lo.Map(strings.Split(*only, ","), func(s string, _ int) string { return strings.TrimSpace(s) })
	}

	if err := execute(ctx, opts, stdin, stdout, stderr); err != nil {
		if !errors.Is(err, errScript) {
			fmt.Fprintln(stderr, "shapes:", err)
		}
		logger.Log.Error("failed", zap.String("input", opts.input), zap.Error(err))
		return exitFailure
	}
	return exitOK
}

func execute(ctx context.Context, opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	start := time.Now()
	src, err := readInput(opts.input, stdin)
	if err != nil {
		return err
	}

	c, problems, err := loadCatalog(opts, src)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		if opts.cfg.Output.Format == config.FormatJSON {
			doc := export.NewDocument(nil)
			doc.Errors = problems
			if err := withOutput(opts.cfg.Output.Path, stdout, func(w io.Writer) error { return export.WriteJSON(w, doc) }); err != nil {
				return err
			}
		}
		for _, p := range problems {
			fmt.Fprintln(stderr, formatProblem(opts.input, p))
		}
		return errScript
	}

	warnings := lo.FilterMap(catalog.Validate(c), func(v catalog.ValidationError, _ int) (export.Problem, bool) {
		return export.Problem{Entry: v.Entry, Message: v.Message}, v.Severity == catalog.SeverityWarning
	})
	for _, w := range warnings {
		fmt.Fprintln(stderr, "warning:", formatProblem(opts.input, w))
	}
	logger.Sugar.Infow("catalog loaded", "input", opts.input, "entries", c.Len(), "warnings", len(warnings))

	if opts.cfg.Output.Format == config.FormatYAML {
		data, err := catalog.Encode(c)
		if err != nil {
			return err
		}
		return withOutput(opts.cfg.Output.Path, stdout, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		})
	}

	parts, err := tessellate.Tessellate(ctx, c, newKernel(opts.cfg.Kernel), tessellate.Options{
		Workers:  opts.cfg.Build.Workers,
		Names:    opts.only,
		Validate: opts.cfg.Build.Validate,
	})
	if err != nil {
		return err
	}

	if opts.check {
		if err := checkDeviation(c, parts, opts.cfg, stderr); err != nil {
			return err
		}
	}

	err = withOutput(opts.cfg.Output.Path, stdout, func(w io.Writer) error {
		switch opts.cfg.Output.Format {
		case config.FormatJSON:
			doc := export.NewDocument(parts)
			doc.Warnings = warnings
			return export.WriteJSON(w, doc)
		case config.FormatSTL:
			return export.WriteSTL(w, lo.Map(parts, func(p *tessellate.Part, _ int) *kernel.Mesh { return p.Mesh })...)
		default:
			return writeReport(w, parts)
		}
	})
	if err != nil {
		return err
	}
	logger.Log.Info("done", zap.Int("parts", len(parts)), zap.Duration("elapsed", time.Since(start)))
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// loadCatalog returns the catalog, or the problems that prevented it.
func loadCatalog(opts options, src []byte) (*catalog.Catalog, []export.Problem, error) {
	ext := strings.ToLower(filepath.Ext(opts.input))
	if opts.yaml || ext == ".yaml" || ext == ".yml" {
		c, err := catalog.Decode(src)
		if err != nil {
			return nil, []export.Problem{{Message: err.Error()}}, nil
		}
		if errs := catalog.Errors(catalog.Validate(c)); len(errs) > 0 {
			return nil, lo.Map(errs, func(v catalog.ValidationError, _ int) export.Problem {
				return export.Problem{Entry: v.Entry, Message: v.Message}
			}), nil
		}
		return c, nil, nil
	}

	eng := engine.NewEngine()
	eng.SetTimeout(opts.cfg.Build.EvalTimeout)
	c, evalErrs, err := eng.Evaluate(string(src))
	if err != nil {
		return nil, nil, err
	}
	return c, lo.Map(evalErrs, func(e engine.EvalError, _ int) export.Problem {
		return export.Problem{Line: e.Line, Message: e.Message}
	}), nil
}

func formatProblem(input string, p export.Problem) string {
	switch {
	case p.Line > 0:
		return fmt.Sprintf("%s:%d: %s", input, p.Line, p.Message)
	case p.Entry != "":
		return fmt.Sprintf("%s: %s: %s", input, p.Entry, p.Message)
	default:
		return fmt.Sprintf("%s: %s", input, p.Message)
	}
}

func newKernel(kc config.KernelConfig) kernel.Kernel {
	if kc.Backend == config.BackendSDFX {
		return sdfx.New(kc.Cells)
	}
	var opts []mesher.Option
	if kc.RoundedBoxAssembly {
		opts = append(opts, mesher.WithRoundedBoxAssembly())
	}
	return mesher.New(opts...)
}

// withOutput calls write with the output file, or stdout when path is empty.
func withOutput(path string, stdout io.Writer, write func(io.Writer) error) (err error) {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func writeReport(w io.Writer, parts []*tessellate.Part) error {
	for _, p := range parts {
		r := inspect.Inspect(p.Mesh)
		state := "closed"
		if !r.Manifold {
			state = "open"
		}
		_, err := fmt.Fprintf(w, "%-20s %-9s %-13s %-6s %s\n", p.Name, p.Kind, p.Collision(), state, r)
		if err != nil {
			return err
		}
	}
	return nil
}

// checkDeviation measures every shape part against its reference solid.
// Shapes without one (partial sweeps, open ends, planes) are skipped.
func checkDeviation(c *catalog.Catalog, parts []*tessellate.Part, cfg *config.Config, stderr io.Writer) error {
	var failed []string
	for _, p := range parts {
		if p.Kind != catalog.EntryShape {
			continue
		}
		ref, err := sdfx.Reference(c.MustLookup(p.Name).Shape)
		if errors.Is(err, sdfx.ErrUnsupported) {
			logger.Sugar.Debugf("check skipped for %s: no reference solid", p.Name)
			continue
		}
		if err != nil {
			return err
		}
		dev := sdfx.MaxDeviation(p.Mesh, ref)
		status := "ok"
		if dev > cfg.Build.CheckTolerance {
			status = "FAIL"
			failed = append(failed, p.Name)
		}
		fmt.Fprintf(stderr, "check %-20s deviation %.3g %s\n", p.Name, dev, status)
	}
	if len(failed) > 0 {
		return fmt.Errorf("deviation above %g: %s", cfg.Build.CheckTolerance, strings.Join(failed, ", "))
	}
	return nil
}
