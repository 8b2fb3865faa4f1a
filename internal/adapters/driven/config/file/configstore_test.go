package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFile), store.Path())
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("collection", "documents"))
	require.NoError(t, store.Set("chunk.size", 500))
	require.NoError(t, store.Set("ingest.prune", true))
	require.NoError(t, store.Set("tags", []string{"a", "b"}))

	assert.Equal(t, "documents", store.GetString("collection"))
	assert.Equal(t, 500, store.GetInt("chunk.size"))
	assert.True(t, store.GetBool("ingest.prune"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("tags"))

	// Wrong types and missing keys return zero values.
	assert.Equal(t, "", store.GetString("chunk.size"))
	assert.Equal(t, 0, store.GetInt("collection"))
	assert.False(t, store.GetBool("collection"))
	assert.Nil(t, store.GetStringSlice("missing"))

	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_PersistenceTOML(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("store.backend", "sqlite"))
	require.NoError(t, store1.Set("store.url", "http://localhost:6333"))
	require.NoError(t, store1.Set("chunk.size", 800))
	require.NoError(t, store1.Set("embedding.rate_limit", 2.5))

	// Keys are written as nested tables.
	raw, err := os.ReadFile(store1.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[store]")
	assert.Contains(t, string(raw), "backend = ")

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", store2.GetString("store.backend"))
	assert.Equal(t, "http://localhost:6333", store2.GetString("store.url"))
	assert.Equal(t, 800, store2.GetInt("chunk.size"))
	rate, ok := store2.Get("embedding.rate_limit")
	assert.True(t, ok)
	assert.Equal(t, 2.5, rate)
}

func TestConfigStore_PersistenceYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docvec.yaml")

	store1, err := NewConfigStoreAt(path)
	require.NoError(t, err)
	require.NoError(t, store1.Set("embedding.provider", "openai"))
	require.NoError(t, store1.Set("search.limit", 10))
	require.NoError(t, store1.Set("ingest.prune", true))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "embedding:\n    provider: openai")

	store2, err := NewConfigStoreAt(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", store2.GetString("embedding.provider"))
	assert.Equal(t, 10, store2.GetInt("search.limit"))
	assert.True(t, store2.GetBool("ingest.prune"))
}

func TestConfigStore_ReadsHandWrittenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "store:\n  backend: chromem\nchunk:\n  strategy: markdown\n  size: 300\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := NewConfigStoreAt(path)
	require.NoError(t, err)

	assert.Equal(t, "chromem", store.GetString("store.backend"))
	assert.Equal(t, "markdown", store.GetString("chunk.strategy"))
	assert.Equal(t, 300, store.GetInt("chunk.size"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFile), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("test", "value"))

	// Replace the file with a directory to cause a write error.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestFlattenUnflatten(t *testing.T) {
	nested := map[string]any{
		"store": map[string]any{"backend": "qdrant", "url": "http://q"},
		"collection": "documents",
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, map[string]any{
		"store.backend": "qdrant",
		"store.url":     "http://q",
		"collection":    "documents",
	}, flat)

	back, err := unflattenMap(flat)
	require.NoError(t, err)
	assert.Equal(t, nested, back)
}

func TestUnflatten_Conflict(t *testing.T) {
	_, err := unflattenMap(map[string]any{"store": "x", "store.url": "y"})
	assert.Error(t, err)
}
