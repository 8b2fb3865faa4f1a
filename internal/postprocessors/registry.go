// Package postprocessors turns extracted page text into numbered chunks.
package postprocessors

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ChunkerFactory = (*Registry)(nil)

// BuilderFunc creates a chunker for a size threshold.
type BuilderFunc func(size int) (driven.Chunker, error)

// Registry maps strategy names to their builders.
// It allows chunkers to be selected from configuration and flags.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new, empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a chunker builder to the registry.
// Name should match the chunker's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a chunker by strategy name.
// Returns domain.ErrInvalidStrategy if the name is not registered.
func (r *Registry) Build(name string, size int) (driven.Chunker, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStrategy, name)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, size)
	}
	return builder(size)
}

// Has returns true if a strategy with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered strategy names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
