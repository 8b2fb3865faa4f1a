package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/logger"
)

var (
	ingestDir        string
	ingestCollection string
	ingestStrategy   string
	ingestChunkSize  int
	ingestPrune      bool
	ingestWatch      bool
	ingestJSON       bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest the files of a directory",
	Long: `Reads every file directly under a directory, splits it into chunks,
embeds the chunks and upserts them into a collection. Subdirectories and
hidden files are ignored.

PDF files are split page by page with the fixed strategy. Other files use
the chosen strategy:
  fixed          - accumulate lines until the chunk size is reached
  markdown       - split before every "##" heading
  markdown-smart - split on headings, re-split sections over 1.5x the size

Re-ingesting a file overwrites its chunks in place. Use --prune to also
remove chunks left over from a longer previous version.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestDir, "dir", "d", ".", "directory to ingest")
	ingestCmd.Flags().StringVarP(&ingestCollection, "collection", "c", "", "target collection (default from config)")
	ingestCmd.Flags().StringVarP(&ingestStrategy, "strategy", "s", "", "chunk strategy: fixed, markdown, markdown-smart")
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk", 0, "chunk size in characters (default from config)")
	ingestCmd.Flags().BoolVar(&ingestPrune, "prune", false, "delete a document's stale points after re-ingesting it")
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "keep running and re-ingest changed files")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	opts, err := ingestOptions(cmd)
	if err != nil {
		return err
	}
	if err := requireServices(cmd); err != nil {
		return err
	}
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	if ingestWatch {
		return watchDirectory(cmd, ingestDir, opts)
	}
	return ingestOnce(cmd.Context(), cmd, ingestDir, opts)
}

// ingestOnce ingests dir and prints the report.
func ingestOnce(ctx context.Context, cmd *cobra.Command, dir string, opts domain.IngestOptions) error {
	report, err := ingestService.IngestDirectory(ctx, dir, opts)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if ingestJSON {
		return printJSON(cmd, toReportJSON(report))
	}
	printReport(cmd, report)
	return nil
}

// ingestOptions merges flags over configured defaults.
func ingestOptions(cmd *cobra.Command) (domain.IngestOptions, error) {
	svc, err := requireSettings()
	if err != nil {
		return domain.IngestOptions{}, err
	}
	settings, err := svc.Get()
	if err != nil {
		return domain.IngestOptions{}, fmt.Errorf("load settings: %w", err)
	}

	opts := settings.IngestOptions()
	if ingestCollection != "" {
		opts.Collection = ingestCollection
	}
	if ingestStrategy != "" {
		strategy, err := domain.ParseChunkStrategy(ingestStrategy)
		if err != nil {
			return domain.IngestOptions{}, err
		}
		opts.Strategy = strategy
	}
	if cmd.Flags().Changed("chunk") {
		opts.ChunkSize = ingestChunkSize
	}
	if cmd.Flags().Changed("prune") {
		opts.Prune = ingestPrune
	}
	return opts, opts.Validate()
}

// watchDirectory ingests dir, then re-ingests changed files until the command
// is interrupted. The initial run happens after the watch is armed so files
// changed during it are picked up. Every failed file is reported in the
// returned error.
func watchDirectory(cmd *cobra.Command, dir string, opts domain.IngestOptions) error {
	if watcher == nil {
		return errors.New("watcher not configured")
	}

	var (
		mu       sync.Mutex
		failures []error
	)

	var initialErr error
	ready := func(ctx context.Context) error {
		if err := ingestOnce(ctx, cmd, dir, opts); err != nil {
			initialErr = err
			return err
		}
		cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", dir)
		return nil
	}

	err := watcher.Watch(cmd.Context(), dir, ready, func(ctx context.Context, path string) {
		report, err := ingestService.IngestFile(ctx, path, opts)
		if err != nil {
			logger.Error("re-ingest %s: %v", path, err)
			mu.Lock()
			failures = append(failures, fmt.Errorf("%s: %w", path, err))
			mu.Unlock()
			return
		}
		for _, f := range report.Files {
			if f.Status == domain.OutcomeFailed {
				mu.Lock()
				failures = append(failures, fmt.Errorf("%s: %w", f.Path, f.Err))
				mu.Unlock()
			}
		}
		printReport(cmd, report)
	})
	if initialErr != nil {
		return initialErr
	}
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(failures...)
}
