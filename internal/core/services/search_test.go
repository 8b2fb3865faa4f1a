package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// unsortedStore returns hits in ascending score order.
type unsortedStore struct {
	*memory.VectorStore
}

func (s unsortedStore) Search(ctx context.Context, name string, v []float32, limit int) ([]domain.ScoredPoint, error) {
	hits, err := s.VectorStore.Search(ctx, name, v, limit)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(hits)-1; i < j; i, j = i+1, j-1 {
		hits[i], hits[j] = hits[j], hits[i]
	}
	return hits, nil
}

// failingStore fails every call.
type failingStore struct {
	driven.VectorStore
}

func (failingStore) ListCollections(context.Context) ([]string, error) {
	return nil, errors.New("connection refused")
}

func seededSearch(t *testing.T) (*SearchService, *stubEmbedder, *memory.VectorStore) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "cats.txt", "cats purr and sleep all day\n")
	writeFile(t, dir, "rockets.txt", "rockets burn fuel to reach orbit\n")
	writeFile(t, dir, "kittens.txt", "kittens are young cats that purr\n")

	f := newIngestFixture()
	_, err := f.service.IngestDirectory(context.Background(), dir, defaultOpts())
	require.NoError(t, err)

	return NewSearchService(f.embedder, f.store), f.embedder, f.store
}

func TestSearchService_Search_RanksBySimilarity(t *testing.T) {
	service, _, _ := seededSearch(t)

	hits, err := service.Search(context.Background(), testCollection, "cats purr", 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "rockets", hits[2].Payload.Title)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestSearchService_Search_RespectsLimit(t *testing.T) {
	service, _, _ := seededSearch(t)

	hits, err := service.Search(context.Background(), testCollection, "cats", 1)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestSearchService_Search_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewVectorStore()
	embedder := newStubEmbedder()
	require.NoError(t, NewCollectionService(store).EnsureCollection(ctx, testCollection, embedder.Dimensions()))

	var points []domain.Point
	for i := 1; i <= 8; i++ {
		vec, err := embedder.Embed(ctx, "chunk text")
		require.NoError(t, err)
		points = append(points, domain.Point{
			ID:      domain.PointID("doc", i),
			Vector:  vec,
			Payload: domain.Payload{Title: "doc", ChunkID: i},
		})
	}
	require.NoError(t, store.Upsert(ctx, testCollection, points))

	hits, err := NewSearchService(embedder, store).Search(ctx, testCollection, "chunk", 0)
	require.NoError(t, err)
	assert.Len(t, hits, domain.DefaultSearchLimit)
}

func TestSearchService_Search_EmptyQuery(t *testing.T) {
	embedder := newStubEmbedder()
	service := NewSearchService(embedder, failingStore{})

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := service.Search(context.Background(), testCollection, q, 5)
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	}
	assert.Zero(t, embedder.embedCalls)
}

func TestSearchService_Search_BlankCollection(t *testing.T) {
	service := NewSearchService(newStubEmbedder(), memory.NewVectorStore())

	_, err := service.Search(context.Background(), "", "cats", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchService_Search_MissingCollection(t *testing.T) {
	embedder := newStubEmbedder()
	service := NewSearchService(embedder, memory.NewVectorStore())

	hits, err := service.Search(context.Background(), "nope", "cats", 5)
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
	assert.Zero(t, embedder.embedCalls)
}

func TestSearchService_Search_SortsStoreOutput(t *testing.T) {
	_, embedder, store := seededSearch(t)
	service := NewSearchService(embedder, unsortedStore{store})

	hits, err := service.Search(context.Background(), testCollection, "cats purr", 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
}

func TestSearchService_Search_StoreError(t *testing.T) {
	service := NewSearchService(newStubEmbedder(), failingStore{})

	_, err := service.Search(context.Background(), testCollection, "cats", 5)
	assert.ErrorContains(t, err, "connection refused")
}
