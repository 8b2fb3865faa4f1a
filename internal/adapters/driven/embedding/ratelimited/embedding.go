// Package ratelimited wraps an embedding service with a token bucket so that
// cloud providers are not called faster than a configured rate.
package ratelimited

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultBurst is the burst size used when none is given.
const DefaultBurst = 1

// EmbeddingService throttles Embed and EmbedBatch calls of a wrapped service.
// Each call consumes one token regardless of how many texts it carries.
type EmbeddingService struct {
	next    driven.EmbeddingService
	limiter *rate.Limiter
}

// New wraps next with a limit of rps calls per second.
// A non-positive rps returns next unchanged.
func New(next driven.EmbeddingService, rps float64, burst int) driven.EmbeddingService {
	if rps <= 0 {
		return next
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &EmbeddingService{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Embed waits for a token then delegates.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.next.Embed(ctx, text)
}

// EmbedBatch waits for a token then delegates.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.next.EmbedBatch(ctx, texts)
}

// Dimensions returns the wrapped service's dimensions.
func (s *EmbeddingService) Dimensions() int { return s.next.Dimensions() }

// ModelName returns the wrapped service's model name.
func (s *EmbeddingService) ModelName() string { return s.next.ModelName() }

// Ping is not throttled.
func (s *EmbeddingService) Ping(ctx context.Context) error { return s.next.Ping(ctx) }

// Close closes the wrapped service.
func (s *EmbeddingService) Close() error { return s.next.Close() }
