// Package main is the entry point of the docvec command.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/docvec/internal/adapters/driven/ai"
	"github.com/custodia-labs/docvec/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docvec/internal/adapters/driven/storage"
	"github.com/custodia-labs/docvec/internal/adapters/driving/cli"
	"github.com/custodia-labs/docvec/internal/connectors/filesystem"
	"github.com/custodia-labs/docvec/internal/core/services"
	"github.com/custodia-labs/docvec/internal/extractors"
	"github.com/custodia-labs/docvec/internal/logger"
	"github.com/custodia-labs/docvec/internal/postprocessors"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Default locations under the config directory.
const (
	uploadsDirName = "uploaded"
	dataDirName    = "data"
)

// app owns the lazily built services and the resources to release on exit.
type app struct {
	settings  *services.SettingsService
	configDir string
	closers   []io.Closer
}

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	defer a.close()

	cli.SetVersion(version)
	cli.SetBootstrap(cli.Bootstrap{
		Settings: a.loadSettings,
		Services: a.buildServices,
	})

	// cobra reports the error itself.
	if err := cli.Execute(ctx); err != nil {
		return 1
	}
	return 0
}

// loadSettings opens the config file and registers the settings service.
func (a *app) loadSettings(path string) error {
	var (
		store *file.ConfigStore
		err   error
	)
	if path != "" {
		store, err = file.NewConfigStoreAt(path)
	} else {
		store, err = file.NewConfigStore("")
	}
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	a.configDir = filepath.Dir(store.Path())
	a.settings = services.NewSettingsService(store, ai.NewConfigValidator())
	cli.SetSettingsService(a.settings)
	return nil
}

// buildServices creates the vector store and embedder from the effective
// settings and registers every store-backed service.
func (a *app) buildServices(_ context.Context) error {
	if a.settings == nil {
		if err := a.loadSettings(""); err != nil {
			return err
		}
	}
	settings, err := a.settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	store, err := storage.NewVectorStore(settings.Store, filepath.Join(a.configDir, dataDirName))
	if err != nil {
		return fmt.Errorf("open vector store: %w", err)
	}
	a.closers = append(a.closers, store)

	embedder, err := ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		return fmt.Errorf("create embedding service: %w", err)
	}
	a.closers = append(a.closers, embedder)

	uploadsDir := settings.UploadsDir
	if uploadsDir == "" {
		uploadsDir = filepath.Join(a.configDir, uploadsDirName)
	}
	uploads, err := file.NewUploadStore(uploadsDir)
	if err != nil {
		return fmt.Errorf("open upload area: %w", err)
	}

	ingest := services.NewIngestService(
		filesystem.NewSource(),
		extractors.NewDefaultRegistry(),
		postprocessors.NewDefaultRegistry(),
		embedder,
		store,
	)

	cli.SetIngestService(ingest)
	cli.SetSearchService(services.NewSearchService(embedder, store))
	cli.SetCollectionService(services.NewCollectionService(store))
	cli.SetUploadService(services.NewUploadService(uploads, ingest))
	cli.SetWatcher(filesystem.NewWatcher(0))

	logger.Debug("services ready: %s store, %s embeddings", settings.Store.Backend, settings.Embedding.Provider)
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			logger.Warn("close: %v", err)
		}
	}
}
