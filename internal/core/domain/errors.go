package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown extractor, store backend or provider.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidStrategy indicates an unknown chunk strategy name.
	// It is a configuration error and fatal to the single operation.
	ErrInvalidStrategy = errors.New("invalid chunk strategy")

	// ErrEmptyQuery indicates a blank or whitespace-only search query.
	ErrEmptyQuery = errors.New("empty query")

	// ErrUndecodable indicates file content that is not valid UTF-8 text
	// or a PDF that cannot be parsed.
	ErrUndecodable = errors.New("undecodable content")

	// Store Errors.

	// ErrCollectionNotFound indicates the named collection does not exist in the store.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrStoreUnavailable indicates the vector store is not configured or unreachable.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates a vector whose length differs from the collection dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrConfigNotFound indicates a configuration key that has never been set.
	ErrConfigNotFound = errors.New("config key not found")
)
