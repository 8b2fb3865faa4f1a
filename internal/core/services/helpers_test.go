package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvec/internal/adapters/driven/embedding/hash"
	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docvec/internal/connectors/filesystem"
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/extractors"
	"github.com/custodia-labs/docvec/internal/postprocessors"
)

const testCollection = "docs"

// stubEmbedder wraps the hash embedder and can hide its dimension or fail.
type stubEmbedder struct {
	driven.EmbeddingService
	dims       int
	failOn     string
	embedCalls int
	batchCalls int
}

func newStubEmbedder() *stubEmbedder {
	inner := hash.NewEmbeddingService(64)
	return &stubEmbedder{EmbeddingService: inner, dims: inner.Dimensions()}
}

func (e *stubEmbedder) Dimensions() int { return e.dims }

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.embedCalls++
	return e.EmbeddingService.Embed(ctx, text)
}

func (e *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	e.batchCalls++
	for _, t := range texts {
		if e.failOn != "" && t == e.failOn {
			return nil, errors.New("model overloaded")
		}
	}
	return e.EmbeddingService.EmbedBatch(ctx, texts)
}

// switchableStore is a memory store whose writes can be made to fail.
type switchableStore struct {
	*memory.VectorStore
	failUpsert bool
}

func (s *switchableStore) Upsert(ctx context.Context, name string, points []domain.Point) error {
	if s.failUpsert {
		return errors.New("write timeout")
	}
	return s.VectorStore.Upsert(ctx, name, points)
}

type ingestFixture struct {
	store    *memory.VectorStore
	writes   *switchableStore
	embedder *stubEmbedder
	service  *IngestService
}

func newIngestFixture() *ingestFixture {
	store := memory.NewVectorStore()
	writes := &switchableStore{VectorStore: store}
	embedder := newStubEmbedder()
	service := NewIngestService(
		filesystem.NewSource(),
		extractors.NewDefaultRegistry(),
		postprocessors.NewDefaultRegistry(),
		embedder,
		writes,
	)
	return &ingestFixture{store: store, writes: writes, embedder: embedder, service: service}
}

func defaultOpts() domain.IngestOptions {
	return domain.IngestOptions{
		Collection: testCollection,
		Strategy:   domain.ChunkStrategyFixed,
		ChunkSize:  domain.DefaultChunkSize,
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
