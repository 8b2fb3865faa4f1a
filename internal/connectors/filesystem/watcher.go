package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.Watcher = (*Watcher)(nil)

// DefaultDebounce is how long a file must stay quiet before it is reported.
// Editors often emit several writes for one save.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports created and modified files in a directory using fsnotify.
type Watcher struct {
	debounce time.Duration
}

// NewWatcher creates a watcher. Non-positive debounce uses DefaultDebounce.
func NewWatcher(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch blocks until ctx is cancelled. ready runs once dir is registered
// with fsnotify; events raised meanwhile stay queued until it returns.
// fn is called from the watching goroutine, one file at a time, after the
// file has been quiet for the debounce interval.
func (w *Watcher) Watch(ctx context.Context, dir string, ready driven.WatchReadyFunc, fn driven.FileEventHandler) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching %s", dir)

	if ready != nil {
		if err := ready(ctx); err != nil {
			return err
		}
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := handleFsEvent(event); ok {
				pending[path] = time.Now()
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", dir, err)

		case now := <-ticker.C:
			for path, seen := range pending {
				if now.Sub(seen) < w.debounce {
					continue
				}
				delete(pending, path)
				fn(ctx, path)
			}
		}
	}
}

// handleFsEvent returns the path of an ingestible file that was created or written.
// Removals, renames, permission changes, directories and hidden files are ignored.
func handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !isIngestible(filepath.Base(event.Name)) {
		return "", false
	}

	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}
