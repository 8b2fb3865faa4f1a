// Package ai provides factory functions for creating embedding service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docvec/internal/adapters/driven/embedding/gemini"
	"github.com/custodia-labs/docvec/internal/adapters/driven/embedding/hash"
	ollamaembed "github.com/custodia-labs/docvec/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/docvec/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/docvec/internal/adapters/driven/embedding/ratelimited"
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'docvec config set embedding.provider ...' to fix",
			domain.ErrEmbeddingUnavailable, err)
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
// Used by 'docvec config check'.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateEmbeddingService creates the embedding service selected by settings,
// wrapped in a rate limiter when settings.RateLimit is positive.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil {
		return nil, fmt.Errorf("%w: embedding settings are required", domain.ErrInvalidInput)
	}
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("%w: embedding provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: %s requires an API key", domain.ErrInvalidInput, settings.Provider)
	}

	var (
		svc driven.EmbeddingService
		err error
	)

	switch settings.Provider {
	case domain.AIProviderOllama:
		svc = createOllamaEmbedding(settings)

	case domain.AIProviderOpenAI:
		svc, err = createOpenAIEmbedding(settings)

	case domain.AIProviderGemini:
		svc, err = createGeminiEmbedding(settings)

	case domain.AIProviderHash:
		svc = hash.NewEmbeddingService(settings.Dimensions)
	}
	if err != nil {
		return nil, err
	}

	return ratelimited.New(svc, settings.RateLimit, 0), nil
}

// createOllamaEmbedding creates an Ollama embedding service.
// Unknown models get zero dimensions and are probed by the ingest service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: settings.ResolvedDimensions(),
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
// Only an explicit dimension override is forwarded; known models resolve their own size.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	baseURL := settings.BaseURL
	if baseURL == domain.DefaultOllamaURL {
		baseURL = ""
	}
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    baseURL,
		Model:      settings.Model,
		Dimensions: settings.Dimensions,
	})
}

// createGeminiEmbedding creates a Gemini embedding service.
func createGeminiEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	return gemini.NewEmbeddingService(context.Background(), gemini.Config{
		APIKey:     settings.APIKey,
		Model:      settings.Model,
		Dimensions: settings.Dimensions,
	})
}
