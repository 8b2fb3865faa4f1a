package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIProvider(t *testing.T) {
	tests := []struct {
		provider AIProvider
		valid    bool
		apiKey   bool
		local    bool
	}{
		{AIProviderOllama, true, false, true},
		{AIProviderOpenAI, true, true, false},
		{AIProviderGemini, true, true, false},
		{AIProviderHash, true, false, true},
		{AIProvider("anthropic"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.provider.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.provider.IsValid())
			assert.Equal(t, tt.apiKey, tt.provider.RequiresAPIKey())
			assert.Equal(t, tt.local, tt.provider.IsLocal())
		})
	}
	assert.Equal(t, unknownDescription, AIProvider("x").Description())
}

func TestStoreBackend(t *testing.T) {
	for _, b := range AllStoreBackends() {
		assert.True(t, b.IsValid(), b)
		assert.NotEqual(t, unknownDescription, b.Description())
	}
	assert.False(t, StoreBackend("pinecone").IsValid())
	assert.True(t, StoreBackendSQLite.IsLocal())
	assert.False(t, StoreBackendQdrant.IsLocal())
}

func TestEmbeddingSettings_IsConfigured(t *testing.T) {
	assert.True(t, EmbeddingSettings{Provider: AIProviderOllama}.IsConfigured())
	assert.False(t, EmbeddingSettings{Provider: AIProviderOpenAI}.IsConfigured())
	assert.True(t, EmbeddingSettings{Provider: AIProviderOpenAI, APIKey: "sk"}.IsConfigured())
	assert.False(t, EmbeddingSettings{}.IsConfigured())
}

func TestEmbeddingSettings_ResolvedDimensions(t *testing.T) {
	assert.Equal(t, 384, EmbeddingSettings{Model: "all-minilm"}.ResolvedDimensions())
	assert.Equal(t, 64, EmbeddingSettings{Model: "all-minilm", Dimensions: 64}.ResolvedDimensions())
	assert.Equal(t, 0, EmbeddingSettings{Model: "unknown"}.ResolvedDimensions())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, "documents", s.Collection)
	assert.Equal(t, StoreBackendQdrant, s.Store.Backend)
	assert.Equal(t, "http://localhost:6333", s.Store.URL)
	assert.Equal(t, AIProviderOllama, s.Embedding.Provider)
	assert.Equal(t, 384, s.Embedding.ResolvedDimensions())
	assert.Equal(t, ChunkStrategyFixed, s.Chunk.Strategy)
	assert.Equal(t, 500, s.Chunk.Size)
	assert.Equal(t, 5, s.Search.Limit)
	assert.False(t, s.Prune)

	require.NoError(t, s.IngestOptions().Validate())
}

func TestDefaultEmbeddingModels_HaveDimensions(t *testing.T) {
	dims := EmbeddingDimensions()
	for provider, model := range DefaultEmbeddingModels() {
		assert.Positive(t, dims[model], "provider %s model %s", provider, model)
	}
}

func TestParseChunkStrategy(t *testing.T) {
	for _, s := range AllChunkStrategies() {
		got, err := ParseChunkStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseChunkStrategy("sentence")
	assert.True(t, errors.Is(err, ErrInvalidStrategy))
}
