package domain

const unknownDescription = "Unknown"

// Default values for application settings.
const (
	DefaultCollection = "documents"
	DefaultChunkSize  = 500
	DefaultQdrantURL  = "http://localhost:6333"
	DefaultOllamaURL  = "http://localhost:11434"
)

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available embedding providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API or a compatible endpoint.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderGemini is the Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderHash is a local, deterministic feature-hashing embedder.
	// It needs no model and is meant for offline use and tests.
	AIProviderHash AIProvider = "hash"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderGemini, AIProviderHash:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama || p == AIProviderHash
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	case AIProviderHash:
		return "Feature hashing (offline)"
	default:
		return unknownDescription
	}
}

// StoreBackend identifies a vector store implementation.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendQdrant is a Qdrant server reached over REST.
	StoreBackendQdrant StoreBackend = "qdrant"

	// StoreBackendSQLite is a local SQLite database file.
	StoreBackendSQLite StoreBackend = "sqlite"

	// StoreBackendChromem is an embedded chromem-go database persisted to disk.
	StoreBackendChromem StoreBackend = "chromem"

	// StoreBackendMemory keeps points in process memory only.
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendQdrant, StoreBackendSQLite, StoreBackendChromem, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// IsLocal returns true if the backend stores data on this machine.
func (b StoreBackend) IsLocal() bool {
	return b == StoreBackendSQLite || b == StoreBackendChromem
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendQdrant:
		return "Qdrant (server)"
	case StoreBackendSQLite:
		return "SQLite (local file)"
	case StoreBackendChromem:
		return "chromem-go (embedded)"
	case StoreBackendMemory:
		return "In-memory (not persisted)"
	default:
		return unknownDescription
	}
}

// AllStoreBackends returns every supported backend.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{StoreBackendQdrant, StoreBackendSQLite, StoreBackendChromem, StoreBackendMemory}
}

// StoreSettings holds vector store configuration.
type StoreSettings struct {
	// Backend selects the store implementation.
	Backend StoreBackend

	// URL is the server endpoint (for Qdrant).
	URL string

	// APIKey is sent as the api-key header (for Qdrant Cloud).
	APIKey string

	// Path is the data directory (for SQLite and chromem).
	Path string
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or OpenAI-compatible servers).
	BaseURL string

	// APIKey is the API key (for OpenAI and Gemini).
	APIKey string

	// Dimensions overrides the model's known output size when positive.
	Dimensions int

	// RateLimit caps embedding requests per second. Zero disables throttling.
	RateLimit float64
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// ResolvedDimensions returns the configured dimension, falling back to the
// known size for the model and then to zero.
func (e EmbeddingSettings) ResolvedDimensions() int {
	if e.Dimensions > 0 {
		return e.Dimensions
	}
	return EmbeddingDimensions()[e.Model]
}

// ChunkSettings holds default chunking configuration.
type ChunkSettings struct {
	Strategy ChunkStrategy
	Size     int
}

// SearchSettings holds query defaults.
type SearchSettings struct {
	// Limit is the default number of hits.
	Limit int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Collection is the default target collection.
	Collection string

	// Store holds vector store settings.
	Store StoreSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Chunk holds chunking defaults.
	Chunk ChunkSettings

	// Prune removes a document's stale points after re-ingesting it.
	Prune bool

	// Search holds query defaults.
	Search SearchSettings

	// UploadsDir is where uploaded files are kept before ingestion.
	UploadsDir string
}

// IngestOptions returns ingestion options built from the defaults.
func (s AppSettings) IngestOptions() IngestOptions {
	return IngestOptions{
		Collection: s.Collection,
		Strategy:   s.Chunk.Strategy,
		ChunkSize:  s.Chunk.Size,
		Prune:      s.Prune,
	}
}

// DefaultAppSettings returns settings with sensible defaults.
// Paths are left empty and resolved against the config directory.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Collection: DefaultCollection,
		Store: StoreSettings{
			Backend: StoreBackendQdrant,
			URL:     DefaultQdrantURL,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "all-minilm",
			BaseURL:  DefaultOllamaURL,
		},
		Chunk: ChunkSettings{
			Strategy: ChunkStrategyFixed,
			Size:     DefaultChunkSize,
		},
		Search: SearchSettings{
			Limit: DefaultSearchLimit,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderGemini,
		AIProviderHash,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "text-embedding-3-small",
		AIProviderGemini: "text-embedding-004",
		AIProviderHash:   "fnv-hash",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"all-minilm":        384,
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
		// Gemini models
		"text-embedding-004": 768,
		// Local
		"fnv-hash": 256,
	}
}
