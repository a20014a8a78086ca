// Command shapes builds meshes from a shape catalog.
//
// Usage:
//
//	shapes [flags] scene.lisp|scene.yaml|-
//
// A .yaml or .yml input is a catalog document; anything else is a script
// evaluated by the Lisp engine. Every entry is tessellated and written as a
// text report, a JSON document, a binary STL or, with -format yaml, the
// catalog itself. -check compares each native mesh with the sdfx reference
// solid of its shape.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
