package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/core/ports/driving"
	"github.com/custodia-labs/docvec/internal/logger"
	"github.com/custodia-labs/docvec/internal/postprocessors"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// dimensionProbe is embedded when the embedding service cannot report its
// output size up front.
const dimensionProbe = "dimension probe"

// IngestService turns files into points: extract, chunk, embed, upsert.
type IngestService struct {
	source      driven.FileSource
	extractors  driven.ExtractorRegistry
	chunkers    driven.ChunkerFactory
	embedder    driven.EmbeddingService
	store       driven.VectorStore
	collections *CollectionService
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	source driven.FileSource,
	extractors driven.ExtractorRegistry,
	chunkers driven.ChunkerFactory,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
) *IngestService {
	return &IngestService{
		source:      source,
		extractors:  extractors,
		chunkers:    chunkers,
		embedder:    embedder,
		store:       store,
		collections: NewCollectionService(store),
	}
}

// IngestDirectory ingests every file directly under dir.
//
// Option, embedding and collection errors abort the run and are returned.
// Failures of individual files are recorded in the report and the run
// continues with the next file.
func (s *IngestService) IngestDirectory(
	ctx context.Context, dir string, opts domain.IngestOptions,
) (*domain.IngestReport, error) {
	logger.Section("Ingest Directory")

	report := newReport(dir, opts)
	logger.Debug("Run %s: dir=%s collection=%s strategy=%s size=%d prune=%t",
		report.RunID, dir, opts.Collection, opts.Strategy, opts.ChunkSize, opts.Prune)

	if err := s.prepare(ctx, opts); err != nil {
		return nil, err
	}

	paths, err := s.source.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("enumerate files: %w", err)
	}

	if len(paths) == 0 {
		logger.Warn("No files found in %s", dir)
		report.Empty = true
		report.FinishedAt = time.Now()
		return report, nil
	}

	logger.Info("Found %d file(s) in %s", len(paths), dir)

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = time.Now()
			return report, fmt.Errorf("ingest interrupted: %w", err)
		}
		logger.Debug("[%d/%d] %s", i+1, len(paths), path)
		report.Add(s.ingestOne(ctx, path, opts))
	}

	report.FinishedAt = time.Now()
	logger.Info("Ingested %d file(s), skipped %d, failed %d, %d point(s) written in %s",
		report.Ingested(), report.Skipped(), report.Failed(), report.PointsWritten(),
		report.Duration().Round(time.Millisecond))

	return report, nil
}

// IngestFile ingests a single file. The report holds exactly one outcome.
func (s *IngestService) IngestFile(
	ctx context.Context, path string, opts domain.IngestOptions,
) (*domain.IngestReport, error) {
	logger.Section("Ingest File")

	report := newReport("", opts)
	if err := s.prepare(ctx, opts); err != nil {
		return nil, err
	}

	report.Add(s.ingestOne(ctx, path, opts))
	report.FinishedAt = time.Now()
	return report, nil
}

// prepare validates options and makes sure the target collection exists.
func (s *IngestService) prepare(ctx context.Context, opts domain.IngestOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	dimension, err := s.dimension(ctx)
	if err != nil {
		return err
	}

	if err := s.collections.EnsureCollection(ctx, opts.Collection, dimension); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}
	return nil
}

// dimension returns the embedder's output size, probing it when unknown.
func (s *IngestService) dimension(ctx context.Context) (int, error) {
	if d := s.embedder.Dimensions(); d > 0 {
		return d, nil
	}

	logger.Debug("Probing embedding dimension of %s", s.embedder.ModelName())
	vec, err := s.embedder.Embed(ctx, dimensionProbe)
	if err != nil {
		return 0, fmt.Errorf("%w: probe dimension: %w", domain.ErrEmbeddingUnavailable, err)
	}
	if len(vec) == 0 {
		return 0, fmt.Errorf("%w: model %s returned an empty vector",
			domain.ErrEmbeddingUnavailable, s.embedder.ModelName())
	}
	return len(vec), nil
}

// ingestOne runs the per-file pipeline and never returns an error: every
// failure becomes a failed outcome.
func (s *IngestService) ingestOne(ctx context.Context, path string, opts domain.IngestOptions) domain.FileOutcome {
	doc := domain.NewDocument(path)
	outcome := domain.FileOutcome{Path: path, Title: doc.Title}

	n, err := s.ingestDocument(ctx, doc, opts)
	switch {
	case err != nil:
		outcome.Status = domain.OutcomeFailed
		outcome.Err = err
		logger.Error("Failed to ingest %s: %v", doc.Source(), err)
	case n == 0:
		outcome.Status = domain.OutcomeSkippedEmpty
		logger.Warn("Skipped %s: no content", doc.Source())
	default:
		outcome.Status = domain.OutcomeIngested
		outcome.Chunks = n
		logger.Info("Ingested %s (%d chunks)", doc.Source(), n)
	}
	return outcome
}

// ingestDocument returns the number of points written.
func (s *IngestService) ingestDocument(ctx context.Context, doc domain.Document, opts domain.IngestOptions) (int, error) {
	pages, err := s.extractors.Extract(ctx, doc.SourcePath)
	if err != nil {
		return 0, fmt.Errorf("extract: %w", err)
	}

	// Paged formats are always split with the fixed strategy, page by page.
	strategy := opts.Strategy
	if doc.IsPDF() {
		strategy = domain.ChunkStrategyFixed
	}
	chunker, err := s.chunkers.Build(strategy.String(), opts.ChunkSize)
	if err != nil {
		return 0, fmt.Errorf("build chunker: %w", err)
	}

	chunks := postprocessors.ChunkPages(pages, chunker)
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return 0, fmt.Errorf("embed: got %d vectors for %d chunks", len(vectors), len(chunks))
	}

	points := make([]domain.Point, len(chunks))
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		points[i] = domain.NewPoint(doc, c, vectors[i])
		ids[i] = points[i].ID
	}

	if err := s.store.Upsert(ctx, opts.Collection, points); err != nil {
		return 0, fmt.Errorf("upsert: %w", err)
	}

	// Pruning runs after the new points are stored so a failed upsert
	// leaves the previous version searchable.
	if opts.Prune {
		if err := s.store.DeleteByTitle(ctx, opts.Collection, doc.Title, ids); err != nil {
			return 0, fmt.Errorf("prune %q: %w", doc.Title, err)
		}
	}
	return len(points), nil
}

func newReport(dir string, opts domain.IngestOptions) *domain.IngestReport {
	return &domain.IngestReport{
		RunID:      uuid.New().String(),
		Directory:  dir,
		Collection: opts.Collection,
		Strategy:   opts.Strategy,
		ChunkSize:  opts.ChunkSize,
		StartedAt:  time.Now(),
	}
}
