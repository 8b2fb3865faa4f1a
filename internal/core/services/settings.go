package services

import (
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/core/ports/driving"
	"github.com/custodia-labs/docvec/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyCollection     = "collection"
	keyStoreBackend   = "store.backend"
	keyStoreURL       = "store.url"
	keyStoreAPIKey    = "store.api_key"
	keyStorePath      = "store.path"
	keyEmbedProvider  = "embedding.provider"
	keyEmbedModel     = "embedding.model"
	keyEmbedBaseURL   = "embedding.base_url"
	keyEmbedAPIKey    = "embedding.api_key"
	keyEmbedDims      = "embedding.dimensions"
	keyEmbedRateLimit = "embedding.rate_limit"
	keyChunkStrategy  = "chunk.strategy"
	keyChunkSize      = "chunk.size"
	keyIngestPrune    = "ingest.prune"
	keySearchLimit    = "search.limit"
	keyUploadsDir     = "uploads.dir"
)

// Environment variables that override stored settings.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvEmbedModel       = "EMBED_MODEL"
	EnvQdrantHost       = "QDRANT_HOST"
	EnvQdrantPort       = "QDRANT_PORT"
	EnvQdrantCollection = "QDRANT_COLLECTION"
	EnvQdrantAPIKey     = "QDRANT_API_KEY"
	EnvOpenAIAPIKey     = "OPENAI_API_KEY"
	EnvGeminiAPIKey     = "GEMINI_API_KEY"
)

const defaultQdrantPort = "6333"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service reading overrides from
// the process environment. The aiValidator is optional.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
// Stored values replace defaults and environment variables replace both.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Collection: s.getString(keyCollection, defaults.Collection),
		Store: domain.StoreSettings{
			Backend: s.getBackend(defaults.Store.Backend),
			URL:     s.getString(keyStoreURL, defaults.Store.URL),
			APIKey:  s.configStore.GetString(keyStoreAPIKey),
			Path:    s.configStore.GetString(keyStorePath),
		},
		Embedding: domain.EmbeddingSettings{
			Provider:   s.getProvider(defaults.Embedding.Provider),
			Model:      s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:    s.getString(keyEmbedBaseURL, defaults.Embedding.BaseURL),
			APIKey:     s.configStore.GetString(keyEmbedAPIKey),
			Dimensions: s.getInt(keyEmbedDims, defaults.Embedding.Dimensions),
			RateLimit:  s.getFloat(keyEmbedRateLimit, defaults.Embedding.RateLimit),
		},
		Chunk: domain.ChunkSettings{
			Strategy: s.getStrategy(defaults.Chunk.Strategy),
			Size:     s.getInt(keyChunkSize, defaults.Chunk.Size),
		},
		Prune: s.getBool(keyIngestPrune, defaults.Prune),
		Search: domain.SearchSettings{
			Limit: s.getInt(keySearchLimit, defaults.Search.Limit),
		},
		UploadsDir: s.configStore.GetString(keyUploadsDir),
	}

	s.applyEnv(settings)
	return settings, nil
}

// applyEnv overlays environment variables on settings.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	if v := s.getenv(EnvEmbedModel); v != "" {
		settings.Embedding.Model = v
	}
	if v := s.getenv(EnvQdrantCollection); v != "" {
		settings.Collection = v
	}
	if v := s.getenv(EnvQdrantAPIKey); v != "" {
		settings.Store.APIKey = v
	}

	host, port := s.getenv(EnvQdrantHost), s.getenv(EnvQdrantPort)
	if host != "" || port != "" {
		if host == "" {
			host = "localhost"
		}
		if port == "" {
			port = defaultQdrantPort
		}
		if _, err := strconv.Atoi(port); err != nil {
			logger.Warn("Ignoring %s=%q: not a port number", EnvQdrantPort, port)
			port = defaultQdrantPort
		}
		settings.Store.URL = qdrantURL(host, port)
	}

	switch settings.Embedding.Provider {
	case domain.AIProviderOpenAI:
		if v := s.getenv(EnvOpenAIAPIKey); v != "" && settings.Embedding.APIKey == "" {
			settings.Embedding.APIKey = v
		}
	case domain.AIProviderGemini:
		if v := s.getenv(EnvGeminiAPIKey); v != "" && settings.Embedding.APIKey == "" {
			settings.Embedding.APIKey = v
		}
	}
}

// qdrantURL builds a server URL from a host that may already carry a scheme.
func qdrantURL(host, port string) string {
	if strings.Contains(host, "://") {
		return strings.TrimSuffix(host, "/") + ":" + port
	}
	return "http://" + net.JoinHostPort(host, port)
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyCollection, settings.Collection},
		{keyStoreBackend, settings.Store.Backend.String()},
		{keyStoreURL, settings.Store.URL},
		{keyStorePath, settings.Store.Path},
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyEmbedDims, settings.Embedding.Dimensions},
		{keyEmbedRateLimit, settings.Embedding.RateLimit},
		{keyChunkStrategy, settings.Chunk.Strategy.String()},
		{keyChunkSize, settings.Chunk.Size},
		{keyIngestPrune, settings.Prune},
		{keySearchLimit, settings.Search.Limit},
		{keyUploadsDir, settings.UploadsDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Secrets are only written when present so an empty form never erases them.
	if settings.Store.APIKey != "" {
		if err := s.configStore.Set(keyStoreAPIKey, settings.Store.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyStoreAPIKey, err)
		}
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyEmbedAPIKey, err)
		}
	}

	return nil
}

// Set validates value for key, converts it to the key's type and stores it.
func (s *SettingsService) Set(key, value string) error {
	parse, ok := settingParsers[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	typed, err := parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	if key == keyEmbedProvider {
		if err := s.switchDefaultModel(domain.AIProvider(typed.(string))); err != nil {
			return err
		}
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Value returns the effective value of key, after defaults and environment
// overrides are applied.
func (s *SettingsService) Value(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case keyCollection:
		return settings.Collection, nil
	case keyStoreBackend:
		return settings.Store.Backend.String(), nil
	case keyStoreURL:
		return settings.Store.URL, nil
	case keyStoreAPIKey:
		return settings.Store.APIKey, nil
	case keyStorePath:
		return settings.Store.Path, nil
	case keyEmbedProvider:
		return settings.Embedding.Provider.String(), nil
	case keyEmbedModel:
		return settings.Embedding.Model, nil
	case keyEmbedBaseURL:
		return settings.Embedding.BaseURL, nil
	case keyEmbedAPIKey:
		return settings.Embedding.APIKey, nil
	case keyEmbedDims:
		return strconv.Itoa(settings.Embedding.Dimensions), nil
	case keyEmbedRateLimit:
		return strconv.FormatFloat(settings.Embedding.RateLimit, 'g', -1, 64), nil
	case keyChunkStrategy:
		return settings.Chunk.Strategy.String(), nil
	case keyChunkSize:
		return strconv.Itoa(settings.Chunk.Size), nil
	case keyIngestPrune:
		return strconv.FormatBool(settings.Prune), nil
	case keySearchLimit:
		return strconv.Itoa(settings.Search.Limit), nil
	case keyUploadsDir:
		return settings.UploadsDir, nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// switchDefaultModel replaces the stored model with the new provider's
// default when the stored model is another provider's default.
func (s *SettingsService) switchDefaultModel(provider domain.AIProvider) error {
	models := domain.DefaultEmbeddingModels()
	current := s.getString(keyEmbedModel, domain.DefaultAppSettings().Embedding.Model)

	for p, m := range models {
		if p != provider && m == current {
			if err := s.configStore.Set(keyEmbedModel, models[provider]); err != nil {
				return fmt.Errorf("save %s: %w", keyEmbedModel, err)
			}
			logger.Debug("Embedding model switched to %s", models[provider])
			return nil
		}
	}
	return nil
}

// Keys returns every settable config key, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingParsers))
	for k := range settingParsers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ConfigPath returns the path of the backing configuration file.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

type parseFunc func(string) (any, error)

var settingParsers = map[string]parseFunc{
	keyCollection:     parseNonEmpty,
	keyStoreBackend:   parseBackend,
	keyStoreURL:       parseNonEmpty,
	keyStoreAPIKey:    parseString,
	keyStorePath:      parseString,
	keyEmbedProvider:  parseProvider,
	keyEmbedModel:     parseNonEmpty,
	keyEmbedBaseURL:   parseString,
	keyEmbedAPIKey:    parseString,
	keyEmbedDims:      parseNonNegativeInt,
	keyEmbedRateLimit: parseNonNegativeFloat,
	keyChunkStrategy:  parseStrategy,
	keyChunkSize:      parsePositiveInt,
	keyIngestPrune:    parseBool,
	keySearchLimit:    parsePositiveInt,
	keyUploadsDir:     parseString,
}

func parseString(v string) (any, error) {
	return v, nil
}

func parseNonEmpty(v string) (any, error) {
	if v == "" {
		return nil, fmt.Errorf("value must not be empty")
	}
	return v, nil
}

func parseBackend(v string) (any, error) {
	b := domain.StoreBackend(strings.ToLower(v))
	if !b.IsValid() {
		return nil, fmt.Errorf("unknown store backend %q", v)
	}
	return b.String(), nil
}

func parseProvider(v string) (any, error) {
	p := domain.AIProvider(strings.ToLower(v))
	if !p.IsValid() {
		return nil, fmt.Errorf("unknown embedding provider %q", v)
	}
	return p.String(), nil
}

func parseStrategy(v string) (any, error) {
	st, err := domain.ParseChunkStrategy(strings.ToLower(v))
	if err != nil {
		return nil, err
	}
	return st.String(), nil
}

func parsePositiveInt(v string) (any, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("expected a positive integer, got %q", v)
	}
	return n, nil
}

func parseNonNegativeInt(v string) (any, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("expected a non-negative integer, got %q", v)
	}
	return n, nil
}

func parseNonNegativeFloat(v string) (any, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil, fmt.Errorf("expected a non-negative number, got %q", v)
	}
	return f, nil
}

func parseBool(v string) (any, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("expected true or false, got %q", v)
	}
	return b, nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	if val == 0 && defaultVal > 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	b := domain.StoreBackend(s.configStore.GetString(keyStoreBackend))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}

func (s *SettingsService) getProvider(defaultVal domain.AIProvider) domain.AIProvider {
	p := domain.AIProvider(s.configStore.GetString(keyEmbedProvider))
	if !p.IsValid() {
		return defaultVal
	}
	return p
}

func (s *SettingsService) getStrategy(defaultVal domain.ChunkStrategy) domain.ChunkStrategy {
	st := domain.ChunkStrategy(s.configStore.GetString(keyChunkStrategy))
	if !st.IsValid() {
		return defaultVal
	}
	return st
}
