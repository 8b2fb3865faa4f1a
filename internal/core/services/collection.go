package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/core/ports/driving"
	"github.com/custodia-labs/docvec/internal/logger"
)

// Ensure CollectionService implements the interface.
var _ driving.CollectionService = (*CollectionService)(nil)

// CollectionService manages collections in a vector store.
type CollectionService struct {
	store driven.VectorStore
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store driven.VectorStore) *CollectionService {
	return &CollectionService{store: store}
}

// EnsureCollection creates the collection with cosine distance when no
// collection of that name exists. An existing collection is never modified.
func (s *CollectionService) EnsureCollection(ctx context.Context, name string, dimension int) error {
	if err := validateName(name); err != nil {
		return err
	}

	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	if slices.Contains(names, name) {
		logger.Debug("Collection %q exists", name)
		return nil
	}

	if dimension <= 0 {
		return fmt.Errorf("%w: dimension must be positive, got %d", domain.ErrInvalidInput, dimension)
	}

	c := domain.Collection{
		Name:      name,
		Dimension: dimension,
		Distance:  domain.DistanceCosine,
	}
	if err := s.store.CreateCollection(ctx, c); err != nil {
		return fmt.Errorf("create collection %q: %w", name, err)
	}
	logger.Info("Created collection %q (dimension %d, %s)", name, dimension, c.Distance)
	return nil
}

// List returns collection names sorted alphabetically.
func (s *CollectionService) List(ctx context.Context) ([]string, error) {
	names, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// Info returns a collection's configuration and approximate point count.
func (s *CollectionService) Info(ctx context.Context, name string) (*domain.CollectionInfo, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	c, err := s.store.GetCollection(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get collection %q: %w", name, err)
	}
	count, err := s.store.Count(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("count points in %q: %w", name, err)
	}

	return &domain.CollectionInfo{
		Collection:  *c,
		PointsCount: count,
	}, nil
}

// Delete removes a collection and all of its points.
func (s *CollectionService) Delete(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := s.store.DeleteCollection(ctx, name); err != nil {
		return fmt.Errorf("delete collection %q: %w", name, err)
	}
	logger.Info("Deleted collection %q", name)
	return nil
}

// DeletePoints removes points by id.
func (s *CollectionService) DeletePoints(ctx context.Context, name string, ids []string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one point id is required", domain.ErrInvalidInput)
	}
	if err := s.store.DeletePoints(ctx, name, ids); err != nil {
		return fmt.Errorf("delete points from %q: %w", name, err)
	}
	logger.Info("Deleted %d point(s) from %q", len(ids), name)
	return nil
}

// DeleteByTitle removes every point of a document.
func (s *CollectionService) DeleteByTitle(ctx context.Context, name, title string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := s.store.DeleteByTitle(ctx, name, title, nil); err != nil {
		return fmt.Errorf("delete %q from %q: %w", title, name, err)
	}
	logger.Info("Deleted points of %q from %q", title, name)
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}
	return nil
}
