package driven

import (
	"context"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

// VectorStore persists points in named collections and answers similarity queries.
// Operations on a collection that does not exist, other than CreateCollection and
// ListCollections, return an error wrapping domain.ErrCollectionNotFound.
type VectorStore interface {
	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)

	// GetCollection returns the dimension and metric of a collection.
	GetCollection(ctx context.Context, name string) (*domain.Collection, error)

	// CreateCollection creates a collection. Creating an existing collection is an error.
	CreateCollection(ctx context.Context, c domain.Collection) error

	// DeleteCollection removes a collection and all of its points.
	DeleteCollection(ctx context.Context, name string) error

	// Upsert inserts points or overwrites points with the same id.
	Upsert(ctx context.Context, collection string, points []domain.Point) error

	// Search returns up to limit points ordered by descending similarity.
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]domain.ScoredPoint, error)

	// DeletePoints removes points by id. Unknown ids are ignored.
	DeletePoints(ctx context.Context, collection string, ids []string) error

	// DeleteByTitle removes every point whose payload title matches title
	// case-insensitively, except the points whose ids are listed in keep.
	DeleteByTitle(ctx context.Context, collection, title string, keep []string) error

	// Count returns the approximate number of points in a collection.
	Count(ctx context.Context, collection string) (int, error)

	// Close releases resources.
	Close() error
}
