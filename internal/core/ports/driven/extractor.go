package driven

import (
	"context"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

// Extractor reads text out of a file.
// Each extractor handles specific file extensions (e.g., pdf, txt).
type Extractor interface {
	// Name returns the extractor name for logging.
	Name() string

	// SupportedExtensions returns lower-case extensions without the dot.
	// An empty slice marks a fallback extractor.
	SupportedExtensions() []string

	// Extract returns the text of a file as pages.
	// Paged formats return one page per physical page numbered from 1;
	// other formats return a single page numbered 0.
	Extract(ctx context.Context, path string) ([]domain.Page, error)
}

// ExtractorRegistry selects the extractor for a file by extension.
type ExtractorRegistry interface {
	// Extract reads a file with the best matching extractor.
	Extract(ctx context.Context, path string) ([]domain.Page, error)

	// Register adds an extractor to the registry.
	Register(extractor Extractor)
}
