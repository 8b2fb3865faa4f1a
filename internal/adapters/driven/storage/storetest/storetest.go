// Package storetest holds behaviour tests shared by every driven.VectorStore
// implementation.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// Factory returns a fresh, empty store.
type Factory func(t *testing.T) driven.VectorStore

func point(title string, idx int, vec ...float32) domain.Point {
	doc := domain.NewDocument("/docs/" + title + ".txt")
	return domain.NewPoint(doc, domain.Chunk{Index: idx, Text: title + " chunk"}, vec)
}

// Run exercises a store against the VectorStore contract.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("create and list collections", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		names, err := s.ListCollections(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)

		require.NoError(t, s.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 3, Distance: domain.DistanceCosine}))

		names, err = s.ListCollections(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"docs"}, names)

		c, err := s.GetCollection(ctx, "docs")
		require.NoError(t, err)
		assert.Equal(t, 3, c.Dimension)
		assert.Equal(t, domain.DistanceCosine, c.Distance)
	})

	t.Run("missing collection", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		_, err := s.GetCollection(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)

		_, err = s.Search(ctx, "nope", []float32{1, 0, 0}, 5)
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)

		err = s.Upsert(ctx, "nope", []domain.Point{point("a", 1, 1, 0, 0)})
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)

		_, err = s.Count(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	})

	t.Run("upsert search and overwrite", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 3, Distance: domain.DistanceCosine}))

		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{
			point("alpha", 1, 1, 0, 0),
			point("beta", 1, 0, 1, 0),
			point("gamma", 1, 0.9, 0.1, 0),
		}))

		hits, err := s.Search(ctx, "docs", []float32{1, 0, 0}, 2)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, "alpha", hits[0].Payload.Title)
		assert.Equal(t, "gamma", hits[1].Payload.Title)
		assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
		assert.Equal(t, domain.PointID("alpha", 1), hits[0].ID)
		assert.Equal(t, 1, hits[0].Payload.ChunkID)
		assert.Equal(t, "alpha.txt", hits[0].Payload.Source)
		assert.Equal(t, "txt", hits[0].Payload.SourceType)
		assert.Nil(t, hits[0].Payload.Page)

		// Same id, new vector: overwritten, not duplicated.
		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{point("alpha", 1, 0, 0, 1)}))

		n, err := s.Count(ctx, "docs")
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		hits, err = s.Search(ctx, "docs", []float32{0, 0, 1}, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "alpha", hits[0].Payload.Title)
	})

	t.Run("page payload survives", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 2, Distance: domain.DistanceCosine}))

		doc := domain.NewDocument("/reports/q3.pdf")
		p := domain.NewPoint(doc, domain.Chunk{Index: 4, Text: "revenue", Page: 2}, []float32{1, 0})
		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{p}))

		hits, err := s.Search(ctx, "docs", []float32{1, 0}, 5)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, 2, hits[0].Payload.PageNumber())
		assert.Equal(t, "reports", hits[0].Payload.SourceDir)
		assert.Equal(t, "revenue", hits[0].Payload.Summary)
	})

	t.Run("search on empty collection", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 2, Distance: domain.DistanceCosine}))

		hits, err := s.Search(ctx, "docs", []float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("delete points and by title", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 2, Distance: domain.DistanceCosine}))
		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{
			point("readme", 1, 1, 0),
			point("readme", 2, 1, 0),
			point("guide", 1, 0, 1),
		}))

		require.NoError(t, s.DeletePoints(ctx, "docs", []string{domain.PointID("guide", 1)}))
		n, err := s.Count(ctx, "docs")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		require.NoError(t, s.DeleteByTitle(ctx, "docs", "readme", nil))
		n, err = s.Count(ctx, "docs")
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("delete by title ignores case and keeps listed ids", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 2, Distance: domain.DistanceCosine}))
		require.NoError(t, s.Upsert(ctx, "docs", []domain.Point{
			point("doc", 0, 1, 0),
			point("doc", 1, 1, 0),
			point("doc", 2, 1, 0),
			point("guide", 0, 0, 1),
		}))

		keep := []string{domain.PointID("Doc", 0)}
		require.NoError(t, s.DeleteByTitle(ctx, "docs", "Doc", keep))

		n, err := s.Count(ctx, "docs")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		hits, err := s.Search(ctx, "docs", []float32{1, 0}, 5)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, domain.PointID("doc", 0), hits[0].ID)
	})

	t.Run("delete by title on missing collection", func(t *testing.T) {
		s := newStore(t)
		err := s.DeleteByTitle(context.Background(), "nope", "doc", nil)
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	})

	t.Run("delete collection", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 2, Distance: domain.DistanceCosine}))

		require.NoError(t, s.DeleteCollection(ctx, "docs"))

		names, err := s.ListCollections(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
