package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_List(t *testing.T) {
	tempDir := t.TempDir()

	for _, name := range []string{"b.md", "a.txt", "report.pdf", ".hidden.md", "README"} {
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "nested.d"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "nested.d", "inner.md"), []byte("x"), 0o644))

	paths, err := NewSource().List(context.Background(), tempDir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tempDir, "a.txt"),
		filepath.Join(tempDir, "b.md"),
		filepath.Join(tempDir, "report.pdf"),
	}, paths)
}

func TestSource_List_EmptyDirectory(t *testing.T) {
	paths, err := NewSource().List(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSource_List_MissingDirectory(t *testing.T) {
	_, err := NewSource().List(context.Background(), filepath.Join(t.TempDir(), "missing"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsIngestible(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"notes.md", true},
		{"archive.tar.gz", true},
		{"Makefile", false},
		{".env", false},
		{".hidden.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isIngestible(tt.name))
		})
	}
}
