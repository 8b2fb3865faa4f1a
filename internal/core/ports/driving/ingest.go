package driving

import (
	"context"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

// IngestService loads files into a collection.
type IngestService interface {
	// IngestDirectory ingests every file directly under dir.
	// Per-file failures are recorded in the report, not returned.
	IngestDirectory(ctx context.Context, dir string, opts domain.IngestOptions) (*domain.IngestReport, error)

	// IngestFile ingests a single file.
	IngestFile(ctx context.Context, path string, opts domain.IngestOptions) (*domain.IngestReport, error)
}
