package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/core/ports/driving"
	"github.com/custodia-labs/docvec/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadService keeps copies of uploaded files and ingests them.
type UploadService struct {
	uploads driven.UploadStore
	ingest  driving.IngestService
}

// NewUploadService creates a new upload service.
func NewUploadService(uploads driven.UploadStore, ingest driving.IngestService) *UploadService {
	return &UploadService{
		uploads: uploads,
		ingest:  ingest,
	}
}

// Upload copies the file into the upload area and ingests the copy.
func (s *UploadService) Upload(
	ctx context.Context, path string, opts domain.IngestOptions,
) (*domain.IngestReport, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	stored, err := s.uploads.Save(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}
	logger.Info("Uploaded %s to %s", filepath.Base(path), s.uploads.Dir())

	return s.ingest.IngestFile(ctx, stored, opts)
}

// List returns the uploaded files.
func (s *UploadService) List() ([]domain.UploadedFile, error) {
	return s.uploads.List()
}

// Delete removes one uploaded file.
func (s *UploadService) Delete(name string) error {
	if err := s.uploads.Delete(name); err != nil {
		return err
	}
	logger.Info("Deleted uploaded file %s", name)
	return nil
}

// DeleteAll removes every uploaded file.
func (s *UploadService) DeleteAll() (int, error) {
	n, err := s.uploads.DeleteAll()
	if err != nil {
		return n, err
	}
	logger.Info("Deleted %d uploaded file(s)", n)
	return n, nil
}
