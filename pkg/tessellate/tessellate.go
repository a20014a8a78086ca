// Package tessellate builds a mesh for every entry of a catalog with a
// geometry kernel. Entries are built concurrently; composites fold the
// meshes of the entries they place.
package tessellate

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/chazu/shapes/internal/logger"
	"github.com/chazu/shapes/pkg/catalog"
	"github.com/chazu/shapes/pkg/kernel"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidCatalog is returned when catalog validation reports errors.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Options tunes a Tessellate call.
type Options struct {
	// Workers bounds concurrent entry builds. Zero means GOMAXPROCS.
	Workers int
	// Names restricts the returned parts to these entries, in this order.
	// Entries they place are still built. Empty means every entry.
	Names []string
	// Validate runs Mesh.Validate on every built mesh.
	Validate bool
}

// Tessellate validates c and builds one Part per requested entry. Parts
// follow catalog order, or the order of opts.Names when given. Each entry
// is built once even when several composites place it. The first failure
// cancels the remaining builds.
func Tessellate(ctx context.Context, c *catalog.Catalog, k kernel.Kernel, opts Options) ([]*Part, error) {
	if c == nil {
		return nil, nil
	}
	if err := validate(c); err != nil {
		return nil, err
	}

	names := opts.Names
	if len(names) == 0 {
		names = c.Names()
	}
	if missing := lo.Filter(names, func(n string, _ int) bool { return c.Lookup(n) == nil }); len(missing) > 0 {
		return nil, fmt.Errorf("tessellate: unknown entries %v: %w", missing, ErrInvalidCatalog)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	b := newBuilder(c, k, opts.Validate)
	parts := make([]*Part, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := b.build(gctx, name)
			if err != nil {
				return err
			}
			e := c.Lookup(name)
			parts[i] = &Part{Name: name, Kind: e.Kind, Mesh: m, Convex: e.Convex()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Log.Info("tessellated",
		zap.Int("parts", len(parts)),
		zap.Int("built", b.built()),
		zap.Int("triangles", lo.SumBy(parts, func(p *Part) int { return p.Mesh.TriangleCount() })))
	return parts, nil
}

func validate(c *catalog.Catalog) error {
	results := catalog.Validate(c)
	for _, w := range lo.Reject(results, func(v catalog.ValidationError, _ int) bool {
		return v.Severity == catalog.SeverityError
	}) {
		logger.Log.Warn("catalog", zap.String("entry", w.Entry), zap.String("warning", w.Message))
	}
	var errs error
	for _, e := range catalog.Errors(results) {
		errs = multierr.Append(errs, e)
	}
	if errs != nil {
		return fmt.Errorf("tessellate: %w: %w", ErrInvalidCatalog, errs)
	}
	return nil
}

// cell memoises one entry's build.
type cell struct {
	once sync.Once
	mesh *kernel.Mesh
	err  error
	done bool
}

type builder struct {
	c        *catalog.Catalog
	k        kernel.Kernel
	validate bool
	// cells is filled before any build starts and only read afterwards.
	cells map[string]*cell
}

func newBuilder(c *catalog.Catalog, k kernel.Kernel, validate bool) *builder {
	cells := make(map[string]*cell, c.Len())
	for _, n := range c.Names() {
		cells[n] = &cell{}
	}
	return &builder{c: c, k: k, validate: validate, cells: cells}
}

// build returns the mesh of entry name, building it on first use. The
// catalog is acyclic, so nested calls never wait on themselves.
func (b *builder) build(ctx context.Context, name string) (*kernel.Mesh, error) {
	cl, ok := b.cells[name]
	if !ok {
		return nil, fmt.Errorf("tessellate: unknown entry %q: %w", name, ErrInvalidCatalog)
	}
	cl.once.Do(func() {
		start := time.Now()
		cl.mesh, cl.err = b.buildEntry(ctx, b.c.Lookup(name))
		cl.done = true
		if cl.err != nil {
			logger.Log.Error("build failed", zap.String("entry", name), zap.Error(cl.err))
			return
		}
		logger.Log.Debug("built",
			zap.String("entry", name),
			zap.Int("vertices", cl.mesh.VertexCount()),
			zap.Int("triangles", cl.mesh.TriangleCount()),
			zap.Duration("elapsed", time.Since(start)))
	})
	return cl.mesh, cl.err
}

func (b *builder) buildEntry(ctx context.Context, e *catalog.Entry) (*kernel.Mesh, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		m   *kernel.Mesh
		err error
	)
	switch e.Kind {
	case catalog.EntryShape:
		m, err = b.k.Build(e.Shape)
	case catalog.EntryComposite:
		m, err = b.compose(ctx, e)
	default:
		err = fmt.Errorf("unknown entry kind %s", e.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("tessellate: %s %q: %w", e.Kind, e.Name, err)
	}
	if b.validate {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("tessellate: %s %q: %w", e.Kind, e.Name, err)
		}
	}
	m.PartName = e.Name
	return m, nil
}

// compose builds every referenced entry once and places it.
func (b *builder) compose(ctx context.Context, e *catalog.Entry) (*kernel.Mesh, error) {
	var arena kernel.Arena
	slot := make(map[string]int)
	placements := make([]kernel.Placement, 0, len(e.Composite.Parts))
	for _, ref := range lo.Uniq(e.Refs()) {
		m, err := b.build(ctx, ref)
		if err != nil {
			return nil, err
		}
		slot[ref] = arena.Add(m)
	}
	for _, p := range e.Composite.Parts {
		placements = append(placements, kernel.Placement{
			Part:     slot[p.Ref],
			Axis:     p.Axis,
			AngleDeg: p.AngleDeg,
			Center:   p.Center,
		})
	}
	return kernel.Compose(&arena, placements)
}

// built counts entries whose build has finished.
func (b *builder) built() int {
	return lo.CountBy(lo.Values(b.cells), func(cl *cell) bool { return cl.done })
}
