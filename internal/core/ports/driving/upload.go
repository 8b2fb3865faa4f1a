package driving

import (
	"context"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

// UploadService copies files into the upload area and ingests them.
type UploadService interface {
	// Upload copies the file at path into the upload area, replacing a file
	// of the same name, then ingests it.
	Upload(ctx context.Context, path string, opts domain.IngestOptions) (*domain.IngestReport, error)

	// List returns the uploaded files.
	List() ([]domain.UploadedFile, error)

	// Delete removes one uploaded file. Its points stay in the store.
	Delete(name string) error

	// DeleteAll removes every uploaded file.
	DeleteAll() (int, error)
}
