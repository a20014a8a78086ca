// Package catalog is the explicit registry of named shapes and composites
// that a scene is built from. A catalog is produced by the DSL engine or
// decoded from YAML, validated as a DAG of composite references, and handed
// to the tessellator.
package catalog
