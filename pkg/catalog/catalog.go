package catalog

import (
	"errors"
	"fmt"

	"github.com/chazu/shapes/pkg/shape"
	"github.com/samber/lo"
)

// ErrDuplicate is returned when a name is registered twice.
var ErrDuplicate = errors.New("catalog: duplicate entry")

// Catalog maps names to entries and remembers insertion order.
type Catalog struct {
	entries map[string]*Entry
	order   []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]*Entry)}
}

// Add registers e. Empty names, duplicate names and entries whose payload
// does not match their kind are rejected.
func (c *Catalog) Add(e *Entry) error {
	if e == nil || e.Name == "" {
		return fmt.Errorf("catalog: entry needs a name: %w", shape.ErrInvalidParameter)
	}
	if _, ok := c.entries[e.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, e.Name)
	}
	switch e.Kind {
	case EntryShape:
		if e.Shape.IsZero() {
			return fmt.Errorf("catalog: shape %q has no descriptor: %w", e.Name, shape.ErrInvalidParameter)
		}
	case EntryComposite:
		if e.Composite == nil {
			return fmt.Errorf("catalog: composite %q has no parts list: %w", e.Name, shape.ErrInvalidParameter)
		}
	default:
		return fmt.Errorf("catalog: entry %q has unknown kind %d: %w", e.Name, e.Kind, shape.ErrInvalidParameter)
	}
	c.entries[e.Name] = e
	c.order = append(c.order, e.Name)
	return nil
}

// AddShape registers a shape entry.
func (c *Catalog) AddShape(name string, d shape.Descriptor) error {
	return c.Add(&Entry{Name: name, Kind: EntryShape, Shape: d})
}

// AddComposite registers a composite entry.
func (c *Catalog) AddComposite(name string, comp *Composite) error {
	return c.Add(&Entry{Name: name, Kind: EntryComposite, Composite: comp})
}

// Lookup returns the entry with the given name, or nil.
func (c *Catalog) Lookup(name string) *Entry {
	return c.entries[name]
}

// MustLookup returns the entry with the given name, or panics.
func (c *Catalog) MustLookup(name string) *Entry {
	e := c.Lookup(name)
	if e == nil {
		panic(fmt.Sprintf("catalog: no entry named %q", name))
	}
	return e
}

// Names returns entry names in insertion order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Entries returns the entries in insertion order.
func (c *Catalog) Entries() []*Entry {
	return lo.Map(c.order, func(name string, _ int) *Entry { return c.entries[name] })
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Referenced returns the names placed by at least one composite.
func (c *Catalog) Referenced() map[string]bool {
	refs := lo.FlatMap(c.Entries(), func(e *Entry, _ int) []string { return e.Refs() })
	return lo.SliceToMap(refs, func(r string) (string, bool) { return r, true })
}
