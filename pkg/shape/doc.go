// Package shape defines the parametric shape families understood by the
// mesh kernel. Each family is a plain parameter struct; together they form a
// closed set behind the Params interface. A Descriptor is the validated,
// immutable form of a Params value and carries the convexity classification
// computed once at construction.
package shape
