// Package chromem provides a driven.VectorStore backed by chromem-go, an
// embedded vector database persisted to a local directory.
//
// chromem-go does not expose collection metadata once created, so the
// dimension and distance of each collection are kept in collections.yaml
// next to the database files.
package chromem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/philippgille/chromem-go"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

const metaFile = "collections.yaml"

// Metadata keys. Every payload field is stored as a string.
const (
	keyTitle      = "title"
	keyChunkID    = "chunk_id"
	keySource     = "source"
	keySourceType = "source_type"
	keySourceDir  = "source_dir"
	keyPage       = "page"

	// keyTitleFold holds the lowercased title so DeleteByTitle can match
	// with chromem-go's exact metadata filter.
	keyTitleFold = "title_fold"
)

type collectionMeta struct {
	Dimension int    `yaml:"dimension"`
	Distance  string `yaml:"distance"`
}

// Store wraps a persistent chromem-go database.
type Store struct {
	mu   sync.Mutex
	db   *chromem.DB
	dir  string
	meta map[string]collectionMeta
}

// NewStore opens (or creates) a chromem-go database in dir.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".docvec", "data", "chromem")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("opening chromem db: %w", err)
	}

	s := &Store{db: db, dir: dir, meta: make(map[string]collectionMeta)}
	if err := s.loadMeta(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadMeta() error {
	data, err := os.ReadFile(filepath.Join(s.dir, metaFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", metaFile, err)
	}
	if err := yaml.Unmarshal(data, &s.meta); err != nil {
		return fmt.Errorf("parsing %s: %w", metaFile, err)
	}
	if s.meta == nil {
		s.meta = make(map[string]collectionMeta)
	}
	return nil
}

func (s *Store) saveMeta() error {
	data, err := yaml.Marshal(s.meta)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", metaFile, err)
	}
	return os.WriteFile(filepath.Join(s.dir, metaFile), data, 0600)
}

// ListCollections returns collection names sorted alphabetically.
func (s *Store) ListCollections(_ context.Context) ([]string, error) {
	cols := s.db.ListCollections()
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetCollection returns a collection's dimension and distance.
func (s *Store) GetCollection(_ context.Context, name string) (*domain.Collection, error) {
	if _, err := s.collection(name); err != nil {
		return nil, err
	}
	s.mu.Lock()
	m := s.meta[name]
	s.mu.Unlock()

	distance := domain.Distance(m.Distance)
	if distance == "" {
		distance = domain.DistanceCosine
	}
	return &domain.Collection{Name: name, Dimension: m.Dimension, Distance: distance}, nil
}

// CreateCollection creates an empty collection. chromem-go always ranks by cosine similarity.
func (s *Store) CreateCollection(_ context.Context, c domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db.GetCollection(c.Name, nil) != nil {
		return fmt.Errorf("%w: collection %q already exists", domain.ErrInvalidInput, c.Name)
	}
	if _, err := s.db.CreateCollection(c.Name, nil, nil); err != nil {
		return fmt.Errorf("creating collection %s: %w", c.Name, err)
	}
	s.meta[c.Name] = collectionMeta{Dimension: c.Dimension, Distance: string(domain.DistanceCosine)}
	return s.saveMeta()
}

// DeleteCollection removes a collection and its files.
func (s *Store) DeleteCollection(_ context.Context, name string) error {
	if _, err := s.collection(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DeleteCollection(name); err != nil {
		return fmt.Errorf("deleting collection %s: %w", name, err)
	}
	delete(s.meta, name)
	return s.saveMeta()
}

// Upsert adds points; existing ids are overwritten.
func (s *Store) Upsert(ctx context.Context, collection string, points []domain.Point) error {
	col, err := s.collection(collection)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	dim := s.meta[collection].Dimension
	s.mu.Unlock()

	ids := make([]string, len(points))
	embeddings := make([][]float32, len(points))
	metadatas := make([]map[string]string, len(points))
	contents := make([]string, len(points))
	for i, p := range points {
		if dim > 0 && len(p.Vector) != dim {
			return fmt.Errorf("%w: point %s has %d values, collection %q expects %d",
				domain.ErrDimensionMismatch, p.ID, len(p.Vector), collection, dim)
		}
		ids[i] = p.ID
		embeddings[i] = p.Vector
		metadatas[i] = toMetadata(p.Payload)
		contents[i] = p.Payload.Summary
	}

	if err := col.Add(ctx, ids, embeddings, metadatas, contents); err != nil {
		return fmt.Errorf("adding points: %w", err)
	}
	return nil
}

// Search runs chromem-go's exhaustive cosine search.
func (s *Store) Search(ctx context.Context, collection string, vector []float32, limit int) ([]domain.ScoredPoint, error) {
	col, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	// chromem-go rejects nResults above the document count.
	n := min(limit, col.Count())
	if n <= 0 {
		return []domain.ScoredPoint{}, nil
	}

	results, err := col.QueryEmbedding(ctx, vector, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}

	hits := make([]domain.ScoredPoint, len(results))
	for i, r := range results {
		hits[i] = domain.ScoredPoint{
			ID:      r.ID,
			Payload: fromMetadata(r.Metadata, r.Content),
			Score:   float64(r.Similarity),
		}
	}
	return hits, nil
}

// DeletePoints removes points by id.
func (s *Store) DeletePoints(ctx context.Context, collection string, ids []string) error {
	col, err := s.collection(collection)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return col.Delete(ctx, nil, nil, ids...)
}

// DeleteByTitle removes every point whose title matches title ignoring
// case. Ids in keep survive.
func (s *Store) DeleteByTitle(ctx context.Context, collection, title string, keep []string) error {
	col, err := s.collection(collection)
	if err != nil {
		return err
	}

	kept := make(map[string]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}

	// Points written before keyTitleFold existed only match on the exact title.
	var stale []string
	seen := make(map[string]bool)
	for _, where := range []map[string]string{
		{keyTitleFold: strings.ToLower(title)},
		{keyTitle: title},
	} {
		ids, err := s.matching(ctx, col, collection, where)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if !kept[id] && !seen[id] {
				seen[id] = true
				stale = append(stale, id)
			}
		}
	}

	if len(stale) == 0 {
		return nil
	}
	return col.Delete(ctx, nil, nil, stale...)
}

// matching returns the ids of documents whose metadata matches where.
// chromem-go has no listing call, so this runs a filtered query wide
// enough to return every match.
func (s *Store) matching(ctx context.Context, col *chromem.Collection, name string, where map[string]string) ([]string, error) {
	n := col.Count()
	if n == 0 {
		return nil, nil
	}

	s.mu.Lock()
	dim := s.meta[name].Dimension
	s.mu.Unlock()
	if dim <= 0 {
		return nil, fmt.Errorf("collection %s has no recorded dimension", name)
	}

	query := make([]float32, dim)
	for i := range query {
		query[i] = 1
	}
	results, err := col.QueryEmbedding(ctx, query, n, where, nil)
	if err != nil {
		return nil, fmt.Errorf("filtering collection %s: %w", name, err)
	}

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return ids, nil
}

// Count returns the number of points.
func (s *Store) Count(_ context.Context, collection string) (int, error) {
	col, err := s.collection(collection)
	if err != nil {
		return 0, err
	}
	return col.Count(), nil
}

// Close is a no-op; chromem-go writes through on every change.
func (s *Store) Close() error {
	return nil
}

func (s *Store) collection(name string) (*chromem.Collection, error) {
	col := s.db.GetCollection(name, nil)
	if col == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	return col, nil
}

func toMetadata(p domain.Payload) map[string]string {
	m := map[string]string{
		keyTitle:      p.Title,
		keyTitleFold:  strings.ToLower(p.Title),
		keyChunkID:    strconv.Itoa(p.ChunkID),
		keySource:     p.Source,
		keySourceType: p.SourceType,
		keySourceDir:  p.SourceDir,
	}
	if p.Page != nil {
		m[keyPage] = strconv.Itoa(*p.Page)
	}
	return m
}

func fromMetadata(m map[string]string, content string) domain.Payload {
	p := domain.Payload{
		Title:      m[keyTitle],
		Summary:    content,
		Source:     m[keySource],
		SourceType: m[keySourceType],
		SourceDir:  m[keySourceDir],
	}
	p.ChunkID, _ = strconv.Atoi(m[keyChunkID])
	if v, ok := m[keyPage]; ok {
		if page, err := strconv.Atoi(v); err == nil {
			p.Page = &page
		}
	}
	return p
}
