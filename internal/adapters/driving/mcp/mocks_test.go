package mcp

import (
	"context"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	hits           []domain.SearchHit
	err            error
	lastCollection string
	lastQuery      string
	lastLimit      int
}

func (m *mockSearchService) Search(_ context.Context, collection, query string, limit int) ([]domain.SearchHit, error) {
	m.lastCollection, m.lastQuery, m.lastLimit = collection, query, limit
	return m.hits, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report   *domain.IngestReport
	err      error
	lastDir  string
	lastOpts domain.IngestOptions
}

func (m *mockIngestService) IngestDirectory(
	_ context.Context, dir string, opts domain.IngestOptions,
) (*domain.IngestReport, error) {
	m.lastDir, m.lastOpts = dir, opts
	return m.report, m.err
}

func (m *mockIngestService) IngestFile(
	_ context.Context, path string, opts domain.IngestOptions,
) (*domain.IngestReport, error) {
	m.lastDir, m.lastOpts = path, opts
	return m.report, m.err
}

// mockCollectionService is a mock implementation of driving.CollectionService.
type mockCollectionService struct {
	names        []string
	infos        map[string]*domain.CollectionInfo
	err          error
	deleted      []string
	deletedIDs   []string
	deletedTitle string
}

func (m *mockCollectionService) EnsureCollection(_ context.Context, _ string, _ int) error {
	return m.err
}

func (m *mockCollectionService) List(_ context.Context) ([]string, error) {
	return m.names, m.err
}

func (m *mockCollectionService) Info(_ context.Context, name string) (*domain.CollectionInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	info, ok := m.infos[name]
	if !ok {
		return nil, domain.ErrCollectionNotFound
	}
	return info, nil
}

func (m *mockCollectionService) Delete(_ context.Context, name string) error {
	m.deleted = append(m.deleted, name)
	return m.err
}

func (m *mockCollectionService) DeletePoints(_ context.Context, _ string, ids []string) error {
	m.deletedIDs = append(m.deletedIDs, ids...)
	return m.err
}

func (m *mockCollectionService) DeleteByTitle(_ context.Context, _, title string) error {
	m.deletedTitle = title
	return m.err
}

// mockUploadService is a mock implementation of driving.UploadService.
type mockUploadService struct {
	files    []domain.UploadedFile
	report   *domain.IngestReport
	err      error
	lastPath string
	lastOpts domain.IngestOptions
	removed  []string
}

func (m *mockUploadService) Upload(
	_ context.Context, path string, opts domain.IngestOptions,
) (*domain.IngestReport, error) {
	m.lastPath, m.lastOpts = path, opts
	return m.report, m.err
}

func (m *mockUploadService) List() ([]domain.UploadedFile, error) {
	return m.files, m.err
}

func (m *mockUploadService) Delete(name string) error {
	m.removed = append(m.removed, name)
	return m.err
}

func (m *mockUploadService) DeleteAll() (int, error) {
	return len(m.files), m.err
}

type testPorts struct {
	search      *mockSearchService
	ingest      *mockIngestService
	collections *mockCollectionService
	uploads     *mockUploadService
}

func newTestPorts() *testPorts {
	return &testPorts{
		search:      &mockSearchService{},
		ingest:      &mockIngestService{report: &domain.IngestReport{}},
		collections: &mockCollectionService{infos: map[string]*domain.CollectionInfo{}},
		uploads:     &mockUploadService{report: &domain.IngestReport{}},
	}
}

func (p *testPorts) ports() *Ports {
	return &Ports{
		Search:      p.search,
		Ingest:      p.ingest,
		Collections: p.collections,
		Uploads:     p.uploads,
	}
}
