package driving

import (
	"context"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

// CollectionService manages collections and their points.
type CollectionService interface {
	// EnsureCollection creates the collection with a cosine metric when it is absent.
	// An existing collection is left untouched, whatever its dimension.
	EnsureCollection(ctx context.Context, name string, dimension int) error

	// List returns all collection names.
	List(ctx context.Context) ([]string, error)

	// Info returns the dimension, metric and approximate point count of a collection.
	Info(ctx context.Context, name string) (*domain.CollectionInfo, error)

	// Delete removes a collection.
	Delete(ctx context.Context, name string) error

	// DeletePoints removes points by id.
	DeletePoints(ctx context.Context, name string, ids []string) error

	// DeleteByTitle removes every point of a document title.
	DeleteByTitle(ctx context.Context, name, title string) error
}
