package driving

import (
	"context"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

// SearchService answers similarity queries against a collection.
type SearchService interface {
	// Search embeds the query and returns up to limit hits ordered by
	// descending score. A missing collection yields no hits and no error.
	Search(ctx context.Context, collection, query string, limit int) ([]domain.SearchHit, error)
}
