package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/storetest"
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) driven.VectorStore {
		return setupTestStore(t)
	})
}

func TestNewStore_CreatesDatabaseFile(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DBFile), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 2, Distance: domain.DistanceCosine}))
	require.NoError(t, store.Upsert(ctx, "docs", []domain.Point{{ID: "a", Vector: []float32{1, 0}, Payload: domain.Payload{Title: "a"}}}))
	require.NoError(t, store.Close())

	// Migrations must not be re-applied on reopen.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	n, err := store.Count(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_CreateExistingFails(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	c := domain.Collection{Name: "docs", Dimension: 2}

	require.NoError(t, store.CreateCollection(ctx, c))
	assert.Error(t, store.CreateCollection(ctx, c))
}

func TestStore_DefaultDistance(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 2}))

	c, err := store.GetCollection(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, domain.DistanceCosine, c.Distance)
}

func TestStore_DimensionMismatchRollsBack(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 2}))

	err := store.Upsert(ctx, "docs", []domain.Point{
		{ID: "ok", Vector: []float32{1, 0}},
		{ID: "bad", Vector: []float32{1, 0, 0}},
	})
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)

	n, err := store.Count(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestStore_DeleteCollectionCascades(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 1}))
	require.NoError(t, store.Upsert(ctx, "docs", []domain.Point{{ID: "a", Vector: []float32{1}}}))

	require.NoError(t, store.DeleteCollection(ctx, "docs"))
	require.NoError(t, store.CreateCollection(ctx, domain.Collection{Name: "docs", Dimension: 1}))

	n, err := store.Count(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.ErrorIs(t, store.DeleteCollection(ctx, "missing"), domain.ErrCollectionNotFound)
}

func TestFloat32BlobRoundTrip(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3.4028235e38}
	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
}
