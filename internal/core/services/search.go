package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/core/ports/driving"
	"github.com/custodia-labs/docvec/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers similarity queries.
type SearchService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewSearchService creates a new search service.
func NewSearchService(embedder driven.EmbeddingService, store driven.VectorStore) *SearchService {
	return &SearchService{
		embedder: embedder,
		store:    store,
	}
}

// Search embeds query and returns the closest points of a collection.
func (s *SearchService) Search(
	ctx context.Context, collection, query string, limit int,
) ([]domain.SearchHit, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if strings.TrimSpace(collection) == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	logger.Debug("Collection: %s, limit: %d", collection, limit)

	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	if !slices.Contains(names, collection) {
		logger.Warn("Collection %q does not exist", collection)
		return []domain.SearchHit{}, nil
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := s.store.Search(ctx, collection, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", collection, err)
	}

	hits := make([]domain.SearchHit, 0, len(scored))
	for _, p := range scored {
		hits = append(hits, domain.SearchHit{
			ID:      p.ID,
			Payload: p.Payload,
			Score:   p.Score,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	logger.Info("Search returned %d result(s)", len(hits))
	return hits, nil
}
