// Package cli implements the docvec command line interface with cobra.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/core/ports/driving"
	"github.com/custodia-labs/docvec/internal/logger"
)

// version is set by main.
var version = "dev"

var (
	verbose    bool
	quiet      bool
	configPath string
)

// Services injected by main or by tests.
var (
	ingestService     driving.IngestService
	searchService     driving.SearchService
	collectionService driving.CollectionService
	uploadService     driving.UploadService
	settingsService   driving.SettingsService
	watcher           driven.Watcher
)

// Bootstrap builds services on first use. Commands that only touch settings
// never build the store or the embedder.
type Bootstrap struct {
	// Settings loads configuration from path, or the default location when
	// path is empty, and registers the settings service.
	Settings func(path string) error
	// Services builds the vector store and embedder from current settings
	// and registers every other service.
	Services func(ctx context.Context) error
}

var bootstrap Bootstrap

var rootCmd = &cobra.Command{
	Use:   "docvec",
	Short: "Ingest documents into a vector store and search them",
	Long: `docvec chunks plain text, Markdown and PDF files, embeds every chunk and
stores the vectors in a collection. Queries are embedded the same way and
answered by similarity search.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug and info logs")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress warnings")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.docvec/config.toml)")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by 'docvec version'.
func SetVersion(v string) {
	version = v
}

// SetBootstrap sets the lazy service builder.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetIngestService sets the ingest service.
func SetIngestService(s driving.IngestService) {
	ingestService = s
}

// SetSearchService sets the search service.
func SetSearchService(s driving.SearchService) {
	searchService = s
}

// SetCollectionService sets the collection service.
func SetCollectionService(s driving.CollectionService) {
	collectionService = s
}

// SetUploadService sets the upload service.
func SetUploadService(s driving.UploadService) {
	uploadService = s
}

// SetSettingsService sets the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetWatcher sets the directory watcher used by 'ingest --watch'.
func SetWatcher(w driven.Watcher) {
	watcher = w
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetQuiet(quiet)

	if settingsService == nil && bootstrap.Settings != nil {
		if err := bootstrap.Settings(configPath); err != nil {
			return err
		}
	}
	return nil
}

// requireServices builds the store-backed services when they are missing.
func requireServices(cmd *cobra.Command) error {
	if ingestService != nil && searchService != nil && collectionService != nil && uploadService != nil {
		return nil
	}
	if bootstrap.Services == nil {
		return errors.New("services not configured")
	}
	return bootstrap.Services(cmd.Context())
}

// requireSettings returns the settings service or an error.
func requireSettings() (driving.SettingsService, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return settingsService, nil
}
