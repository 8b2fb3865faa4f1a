// Package storage selects the vector store backend named in the settings.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/chromem"
	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/qdrant"
	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/logger"
)

// NewVectorStore creates the configured vector store.
// Local backends keep their files under settings.Path, or under dataDir when Path is empty.
func NewVectorStore(settings domain.StoreSettings, dataDir string) (driven.VectorStore, error) {
	path := settings.Path
	if path == "" {
		path = dataDir
	}

	switch settings.Backend {
	case domain.StoreBackendQdrant, "":
		logger.Debug("vector store: qdrant at %s", settings.URL)
		return qdrant.NewStore(qdrant.Config{URL: settings.URL, APIKey: settings.APIKey}), nil

	case domain.StoreBackendSQLite:
		logger.Debug("vector store: sqlite in %s", path)
		return sqlite.NewStore(path)

	case domain.StoreBackendChromem:
		dir := filepath.Join(path, "chromem")
		logger.Debug("vector store: chromem in %s", dir)
		return chromem.NewStore(dir)

	case domain.StoreBackendMemory:
		logger.Debug("vector store: in-memory")
		return memory.NewVectorStore(), nil

	default:
		return nil, fmt.Errorf("%w: store backend %q", domain.ErrUnsupportedType, settings.Backend)
	}
}
