package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// Ensure UploadStore implements the interface.
var _ driven.UploadStore = (*UploadStore)(nil)

// UploadsDir is the default upload directory name under the docvec home.
const UploadsDir = "uploaded"

// tempPrefix marks partially written uploads. Hidden files are never listed.
const tempPrefix = ".upload-"

// UploadStore keeps uploaded files in one flat directory.
type UploadStore struct {
	dir string
}

// NewUploadStore creates the upload directory if needed.
// If dir is empty, defaults to ~/.docvec/uploaded.
func NewUploadStore(dir string) (*UploadStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".docvec", UploadsDir)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Dir returns the upload directory.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save writes r to a temporary file and renames it over name,
// so a reader never sees a half-written upload.
func (s *UploadStore) Save(name string, r io.Reader) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, tempPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("creating upload: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	dest := filepath.Join(s.dir, clean)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("storing upload: %w", err)
	}
	return dest, nil
}

// List returns uploaded files sorted by name.
func (s *UploadStore) List() ([]domain.UploadedFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading upload directory: %w", err)
	}

	files := []domain.UploadedFile{}
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, domain.UploadedFile{
			Name:    e.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Delete removes one uploaded file.
func (s *UploadStore) Delete(name string) error {
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.dir, clean))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: uploaded file %s", domain.ErrNotFound, clean)
	}
	return err
}

// DeleteAll removes every uploaded file and returns how many were removed.
func (s *UploadStore) DeleteAll() (int, error) {
	files, err := s.List()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		if err := os.Remove(filepath.Join(s.dir, f.Name)); err != nil {
			return removed, fmt.Errorf("deleting %s: %w", f.Name, err)
		}
		removed++
	}
	return removed, nil
}

// cleanName keeps only the final path element and rejects names that
// would escape the directory or be hidden.
func cleanName(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == ".." || base == string(filepath.Separator) || strings.HasPrefix(base, ".") {
		return "", fmt.Errorf("%w: invalid file name %q", domain.ErrInvalidInput, name)
	}
	return base, nil
}
