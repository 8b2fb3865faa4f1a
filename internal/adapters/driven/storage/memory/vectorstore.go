// Package memory provides in-process implementations of the driven ports.
// Nothing is persisted; they back the memory store backend and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/similarity"
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

type collection struct {
	info   domain.Collection
	points map[string]domain.Point
	order  []string
}

// VectorStore is an in-memory implementation of driven.VectorStore.
type VectorStore struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

// NewVectorStore creates an empty in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		collections: make(map[string]*collection),
	}
}

// ListCollections returns collection names sorted alphabetically.
func (s *VectorStore) ListCollections(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetCollection returns a collection's parameters.
func (s *VectorStore) GetCollection(_ context.Context, name string) (*domain.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.get(name)
	if err != nil {
		return nil, err
	}
	info := c.info
	return &info, nil
}

// CreateCollection creates an empty collection.
func (s *VectorStore) CreateCollection(_ context.Context, c domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[c.Name]; ok {
		return fmt.Errorf("%w: collection %q already exists", domain.ErrInvalidInput, c.Name)
	}
	s.collections[c.Name] = &collection{
		info:   c,
		points: make(map[string]domain.Point),
	}
	return nil
}

// DeleteCollection removes a collection.
func (s *VectorStore) DeleteCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.get(name); err != nil {
		return err
	}
	delete(s.collections, name)
	return nil
}

// Upsert inserts or overwrites points.
func (s *VectorStore) Upsert(_ context.Context, name string, points []domain.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.get(name)
	if err != nil {
		return err
	}
	for _, p := range points {
		if c.info.Dimension > 0 && len(p.Vector) != c.info.Dimension {
			return fmt.Errorf("%w: point %s has %d values, collection %q expects %d",
				domain.ErrDimensionMismatch, p.ID, len(p.Vector), name, c.info.Dimension)
		}
	}
	for _, p := range points {
		if _, exists := c.points[p.ID]; !exists {
			c.order = append(c.order, p.ID)
		}
		c.points[p.ID] = p
	}
	return nil
}

// Search ranks every point by cosine similarity.
func (s *VectorStore) Search(_ context.Context, name string, vector []float32, limit int) ([]domain.ScoredPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.get(name)
	if err != nil {
		return nil, err
	}

	candidates := make([]similarity.Candidate[domain.Point], 0, len(c.points))
	for _, id := range c.order {
		p, ok := c.points[id]
		if !ok {
			continue
		}
		candidates = append(candidates, similarity.Candidate[domain.Point]{
			Item:  p,
			Score: similarity.Cosine(vector, p.Vector),
		})
	}

	ranked := similarity.TopK(candidates, limit)
	out := make([]domain.ScoredPoint, len(ranked))
	for i, r := range ranked {
		out[i] = domain.ScoredPoint{ID: r.Item.ID, Payload: r.Item.Payload, Score: r.Score}
	}
	return out, nil
}

// DeletePoints removes points by id.
func (s *VectorStore) DeletePoints(_ context.Context, name string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.get(name)
	if err != nil {
		return err
	}
	for _, id := range ids {
		delete(c.points, id)
	}
	c.compact()
	return nil
}

// DeleteByTitle removes points whose payload title matches title ignoring
// case. Ids in keep survive.
func (s *VectorStore) DeleteByTitle(_ context.Context, name, title string, keep []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.get(name)
	if err != nil {
		return err
	}
	kept := make(map[string]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}
	for id, p := range c.points {
		if strings.EqualFold(p.Payload.Title, title) && !kept[id] {
			delete(c.points, id)
		}
	}
	c.compact()
	return nil
}

// Count returns the exact number of points.
func (s *VectorStore) Count(_ context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := s.get(name)
	if err != nil {
		return 0, err
	}
	return len(c.points), nil
}

// Points returns a copy of every point in insertion order. Used by tests.
func (s *VectorStore) Points(name string) []domain.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[name]
	if !ok {
		return nil
	}
	out := make([]domain.Point, 0, len(c.points))
	for _, id := range c.order {
		if p, ok := c.points[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Close is a no-op.
func (s *VectorStore) Close() error {
	return nil
}

func (s *VectorStore) get(name string) (*collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	return c, nil
}

func (c *collection) compact() {
	kept := c.order[:0]
	for _, id := range c.order {
		if _, ok := c.points[id]; ok {
			kept = append(kept, id)
		}
	}
	c.order = kept
}
