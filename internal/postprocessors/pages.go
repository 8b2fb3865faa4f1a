package postprocessors

import (
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// ChunkPages applies a chunker to every page independently and numbers the
// resulting chunks from 1 across the whole document, in page order.
// Every chunk inherits the number of the page it came from.
func ChunkPages(pages []domain.Page, c driven.Chunker) []domain.Chunk {
	var chunks []domain.Chunk

	for _, page := range pages {
		for _, text := range c.Chunk(page.Text) {
			chunks = append(chunks, domain.Chunk{
				Index: len(chunks) + 1,
				Text:  text,
				Page:  page.Number,
			})
		}
	}

	return chunks
}
