package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWatcher_DefaultDebounce(t *testing.T) {
	assert.Equal(t, DefaultDebounce, NewWatcher(0).debounce)
	assert.Equal(t, time.Second, NewWatcher(time.Second).debounce)
}

func TestHandleFsEvent(t *testing.T) {
	tempDir := t.TempDir()
	file := filepath.Join(tempDir, "test.txt")
	require.NoError(t, os.WriteFile(file, []byte("content"), 0o644))
	hidden := filepath.Join(tempDir, ".hidden.txt")
	require.NoError(t, os.WriteFile(hidden, []byte("hidden"), 0o644))
	dir := filepath.Join(tempDir, "sub.d")
	require.NoError(t, os.Mkdir(dir, 0o755))

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		expected bool
	}{
		{"create file", file, fsnotify.Create, true},
		{"write file", file, fsnotify.Write, true},
		{"chmod file", file, fsnotify.Chmod, false},
		{"remove file", filepath.Join(tempDir, "gone.txt"), fsnotify.Remove, false},
		{"rename file", file, fsnotify.Rename, false},
		{"create directory", dir, fsnotify.Create, false},
		{"hidden file", hidden, fsnotify.Write, false},
		{"vanished before stat", filepath.Join(tempDir, "tmp.txt"), fsnotify.Create, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := handleFsEvent(fsnotify.Event{Name: tt.path, Op: tt.op})
			assert.Equal(t, tt.expected, ok)
			if tt.expected {
				assert.Equal(t, tt.path, path)
			}
		})
	}
}

func TestWatcher_ReportsNewFile(t *testing.T) {
	tempDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- NewWatcher(20*time.Millisecond).Watch(ctx, tempDir, nil, func(_ context.Context, path string) {
			seen <- path
		})
	}()

	testFile := filepath.Join(tempDir, "new-file.md")
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(testFile, []byte("content"), 0o644)
	}()

	select {
	case path := <-seen:
		assert.Equal(t, testFile, path)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for file event")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	err := NewWatcher(0).Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), nil, nil)
	assert.Error(t, err)
}

func TestWatcher_ReportsFilesWrittenWhileReadyRuns(t *testing.T) {
	tempDir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	testFile := filepath.Join(tempDir, "during-setup.txt")
	ready := func(context.Context) error {
		return os.WriteFile(testFile, []byte("content"), 0o644)
	}

	seen := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- NewWatcher(20*time.Millisecond).Watch(ctx, tempDir, ready, func(_ context.Context, path string) {
			seen <- path
		})
	}()

	select {
	case path := <-seen:
		assert.Equal(t, testFile, path)
	case <-time.After(3 * time.Second):
		t.Fatal("file written during ready was not reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatcher_ReadyErrorStopsWatch(t *testing.T) {
	boom := errors.New("initial ingest failed")

	err := NewWatcher(0).Watch(context.Background(), t.TempDir(), func(context.Context) error {
		return boom
	}, nil)

	assert.ErrorIs(t, err, boom)
}
