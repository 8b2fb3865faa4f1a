package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvec/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docvec/internal/adapters/driven/embedding/hash"
	"github.com/custodia-labs/docvec/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docvec/internal/connectors/filesystem"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/core/services"
	"github.com/custodia-labs/docvec/internal/extractors"
	"github.com/custodia-labs/docvec/internal/postprocessors"
)

// testEnv holds the in-memory backends behind the injected services.
type testEnv struct {
	store  *memory.VectorStore
	config *memory.ConfigStore
}

// setupTestServices wires real services over in-memory backends and returns
// a cleanup function restoring the previous globals.
func setupTestServices(t *testing.T) (*testEnv, func()) {
	t.Helper()

	prevIngest, prevSearch, prevCollections := ingestService, searchService, collectionService
	prevUploads, prevSettings, prevWatcher, prevBootstrap := uploadService, settingsService, watcher, bootstrap

	store := memory.NewVectorStore()
	config := memory.NewConfigStore(map[string]any{"collection": "docs"})
	embedder := hash.NewEmbeddingService(64)
	uploads, err := file.NewUploadStore(filepath.Join(t.TempDir(), "uploaded"))
	require.NoError(t, err)

	ingest := services.NewIngestService(
		filesystem.NewSource(),
		extractors.NewDefaultRegistry(),
		postprocessors.NewDefaultRegistry(),
		embedder,
		store,
	)

	SetIngestService(ingest)
	SetSearchService(services.NewSearchService(embedder, store))
	SetCollectionService(services.NewCollectionService(store))
	SetUploadService(services.NewUploadService(uploads, ingest))
	SetSettingsService(services.NewSettingsService(config, nil))
	SetWatcher(filesystem.NewWatcher(0))
	SetBootstrap(Bootstrap{})

	return &testEnv{store: store, config: config}, func() {
		ingestService, searchService, collectionService = prevIngest, prevSearch, prevCollections
		uploadService, settingsService, watcher, bootstrap = prevUploads, prevSettings, prevWatcher, prevBootstrap
	}
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// scriptedWatcher arms immediately, runs ready, then rewrites each file in
// changes and reports it, as if it was saved during the initial ingest.
type scriptedWatcher struct {
	store       *memory.VectorStore
	changes     map[string]string
	pointsArmed int
}

func (w *scriptedWatcher) Watch(ctx context.Context, _ string, ready driven.WatchReadyFunc, fn driven.FileEventHandler) error {
	w.pointsArmed = len(w.store.Points("docs"))
	if err := ready(ctx); err != nil {
		return err
	}
	for path, content := range w.changes {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return err
		}
		fn(ctx, path)
	}
	return nil
}
