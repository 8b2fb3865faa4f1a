package postprocessors

import (
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/postprocessors/chunker"
)

// RegisterDefaults registers all built-in chunk strategies with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(domain.ChunkStrategyFixed.String(), func(size int) (driven.Chunker, error) {
		return chunker.NewFixed(size), nil
	})
	r.Register(domain.ChunkStrategyMarkdown.String(), func(_ int) (driven.Chunker, error) {
		return chunker.NewMarkdown(), nil
	})
	r.Register(domain.ChunkStrategyMarkdownSmart.String(), func(size int) (driven.Chunker, error) {
		return chunker.NewMarkdownSmart(size), nil
	})
}

// NewDefaultRegistry returns a registry with every built-in strategy.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
