package driven

import (
	"io"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

// UploadStore keeps uploaded files in a single flat directory.
type UploadStore interface {
	// Save writes a file, replacing any file with the same name.
	// It returns the path of the stored file.
	Save(name string, r io.Reader) (string, error)

	// List returns every stored file sorted by name.
	List() ([]domain.UploadedFile, error)

	// Delete removes one file. Missing files return domain.ErrNotFound.
	Delete(name string) error

	// DeleteAll removes every stored file and returns how many were removed.
	DeleteAll() (int, error)

	// Dir returns the directory holding the uploads.
	Dir() string
}
