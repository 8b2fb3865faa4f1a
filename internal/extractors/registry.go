package extractors

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches files to extractors by extension.
// Extractors registered later win for the same extension.
type Registry struct {
	mu       sync.RWMutex
	byExt    map[string]driven.Extractor
	fallback driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byExt: make(map[string]driven.Extractor)}
}

// Register adds an extractor. An extractor with no extensions becomes the fallback.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exts := e.SupportedExtensions()
	if len(exts) == 0 {
		r.fallback = e
		return
	}
	for _, ext := range exts {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// For returns the extractor that handles path.
func (r *Registry) For(path string) (driven.Extractor, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.byExt[ext]; ok {
		return e, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("%w: no extractor for %q", domain.ErrUnsupportedType, ext)
}

// Extract reads a file with the matching extractor.
func (r *Registry) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	e, err := r.For(path)
	if err != nil {
		return nil, err
	}

	logger.Debug("extract %s with %s", filepath.Base(path), e.Name())
	pages, err := e.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extractor %s: %w", e.Name(), err)
	}
	return pages, nil
}
