// Package codegen defines the backend abstraction the compiler
// dispatches through, grounded in the original implementation's
// backends::mod module (a single-variant enum in the source, but
// modeled as a pluggable family per the backend-dispatch design note).
package codegen

import "github.com/lennart-voss/mpy8/internal/ast"

// Backend lowers a Program to a target's machine code. Each concrete
// backend carries its own emission state; no state is shared across
// backends.
type Backend interface {
	Compile(program ast.Program) ([]byte, error)
}

// Descriptor names a registered backend for the CLI's `targets` command.
type Descriptor struct {
	Name        string
	Description string
	New         func() Backend
}

var registry []Descriptor

// Register adds a backend to the registry. Called from each backend
// package's init.
func Register(d Descriptor) {
	registry = append(registry, d)
}

// All returns every registered backend descriptor, in registration order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds a registered backend by name.
func Lookup(name string) (Descriptor, bool) {
	for _, d := range registry {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
