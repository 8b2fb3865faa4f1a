// Package pdf extracts per-page text from PDF files using ledongthuc/pdf.
package pdf

import (
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Document is the page-level view of an opened PDF.
type Document interface {
	NumPage() int
	PageText(n int) (string, error)
}

// Opener opens a PDF file.
type Opener func(path string) (Document, io.Closer, error)

// Extractor returns one page of text per physical PDF page, numbered from 1.
type Extractor struct {
	open Opener
}

// Option configures the extractor.
type Option func(*Extractor)

// WithOpener replaces the PDF backend. Used in tests.
func WithOpener(open Opener) Option {
	return func(e *Extractor) {
		if open != nil {
			e.open = open
		}
	}
}

// New creates a PDF extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{open: openFile}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return "pdf"
}

// SupportedExtensions returns the extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{"pdf"}
}

// Extract reads every page. Files that cannot be parsed return domain.ErrUndecodable.
func (e *Extractor) Extract(ctx context.Context, path string) (pages []domain.Page, err error) {
	// the parser panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %s: %v", domain.ErrUndecodable, path, r)
		}
	}()

	doc, closer, err := e.open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrUndecodable, path, err)
	}
	defer closer.Close()

	n := doc.NumPage()
	pages = make([]domain.Page, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := doc.PageText(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %s page %d: %w", domain.ErrUndecodable, path, i, err)
		}
		pages = append(pages, domain.Page{Number: i, Text: text})
	}

	return pages, nil
}

// reader adapts *pdf.Reader to Document.
type reader struct {
	r *pdf.Reader
}

func (d reader) NumPage() int {
	return d.r.NumPage()
}

func (d reader) PageText(n int) (string, error) {
	p := d.r.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

func openFile(path string) (Document, io.Closer, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return reader{r: r}, f, nil
}
