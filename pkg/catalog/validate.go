package catalog

import (
	"fmt"

	"github.com/samber/lo"
)

// ValidationSeverity indicates whether a finding blocks tessellation or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks tessellation
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single finding.
type ValidationError struct {
	Entry    string // entry with the problem (empty if catalog-level)
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] entry %q: %s", e.Severity, e.Entry, e.Message)
}

// HasErrors reports whether any finding is blocking.
func HasErrors(errs []ValidationError) bool {
	return lo.SomeBy(errs, func(e ValidationError) bool { return e.Severity == SeverityError })
}

// Errors returns only the blocking findings.
func Errors(errs []ValidationError) []ValidationError {
	return lo.Filter(errs, func(e ValidationError, _ int) bool { return e.Severity == SeverityError })
}

// Validate runs the structural checks on c. An empty result means the
// catalog can be tessellated. Validate never mutates c.
func Validate(c *Catalog) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateReferences(c)...)
	errs = append(errs, validateDAG(c)...)
	errs = append(errs, validateComposites(c)...)
	return errs
}

// validateDAG checks for cycles between composites using DFS with 3-color
// marking. Reaching a gray entry again means it is on the current path.
func validateDAG(c *Catalog) []ValidationError {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int)
	var errs []ValidationError

	var visit func(name string) bool
	visit = func(name string) bool {
		switch color[name] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				Entry:    name,
				Message:  "cycle detected: entry places itself through its parts",
				Severity: SeverityError,
			})
			return true
		}
		color[name] = gray
		e := c.Lookup(name)
		if e == nil {
			// Dangling reference; reported by validateReferences.
			color[name] = black
			return false
		}
		for _, ref := range e.Refs() {
			if visit(ref) {
				return true
			}
		}
		color[name] = black
		return false
	}

	// Insertion order keeps the report deterministic.
	for _, name := range c.order {
		if color[name] == white && visit(name) {
			break
		}
	}
	return errs
}

func validateReferences(c *Catalog) []ValidationError {
	var errs []ValidationError
	for _, e := range c.Entries() {
		for i, ref := range e.Refs() {
			if c.Lookup(ref) == nil {
				errs = append(errs, ValidationError{
					Entry:    e.Name,
					Message:  fmt.Sprintf("part %d references unknown entry %q", i, ref),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

func validateComposites(c *Catalog) []ValidationError {
	var errs []ValidationError
	for _, e := range c.Entries() {
		if e.Kind != EntryComposite {
			continue
		}
		parts := e.Composite.Parts
		switch len(parts) {
		case 0:
			errs = append(errs, ValidationError{Entry: e.Name, Message: "composite has no parts", Severity: SeverityError})
		case 1:
			errs = append(errs, ValidationError{Entry: e.Name, Message: "composite has a single part; a placed shape would do", Severity: SeverityWarning})
		}
		for i, p := range parts {
			if p.AngleDeg != 0 && p.Axis.Length() == 0 {
				errs = append(errs, ValidationError{
					Entry:    e.Name,
					Message:  fmt.Sprintf("part %d rotates %g° about a zero axis", i, p.AngleDeg),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}
