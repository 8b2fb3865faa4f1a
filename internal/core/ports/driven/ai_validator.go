package driven

import "github.com/custodia-labs/docvec/internal/core/domain"

// AIConfigValidator validates embedding provider configurations by testing
// connectivity to the underlying service.
type AIConfigValidator interface {
	// ValidateEmbedding builds the configured embedding service and pings it.
	ValidateEmbedding(config *domain.EmbeddingSettings) error
}
