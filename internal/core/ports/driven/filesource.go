package driven

import "context"

// FileSource enumerates the files of a directory.
type FileSource interface {
	// List returns the paths of files directly under dir, sorted by name.
	// Subdirectories are not descended into.
	List(ctx context.Context, dir string) ([]string, error)
}

// FileEventHandler is called with the path of a created or modified file.
type FileEventHandler func(ctx context.Context, path string)

// WatchReadyFunc runs once a directory is being watched. Returning an error
// stops the watch.
type WatchReadyFunc func(ctx context.Context) error

// Watcher reports file changes in a directory.
type Watcher interface {
	// Watch blocks until ctx is cancelled, calling fn for every file that is
	// created or written directly under dir. A non-nil ready runs after the
	// watch is armed and before the first event is delivered, so changes made
	// while it runs are still reported.
	Watch(ctx context.Context, dir string, ready WatchReadyFunc, fn FileEventHandler) error
}
