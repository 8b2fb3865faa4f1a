package extractors

import (
	"github.com/custodia-labs/docvec/internal/extractors/pdf"
	"github.com/custodia-labs/docvec/internal/extractors/plaintext"
)

// NewDefaultRegistry returns a registry with the PDF extractor and the
// plain text fallback.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(pdf.New())
	return r
}
