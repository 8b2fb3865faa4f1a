// Package plaintext reads UTF-8 text files such as .txt and .md.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

const byteOrderMark = "\ufeff"

// Extractor reads a whole file as one unpaged block of UTF-8 text.
// Markdown is read verbatim so heading-based chunkers can see the headings.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return "plaintext"
}

// SupportedExtensions returns nil: plain text is the fallback for every extension.
func (e *Extractor) SupportedExtensions() []string {
	return nil
}

// Extract reads the file. Content that is not valid UTF-8 returns domain.ErrUndecodable.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrUndecodable, path)
	}

	text := strings.TrimPrefix(string(data), byteOrderMark)
	return []domain.Page{{Text: text}}, nil
}
