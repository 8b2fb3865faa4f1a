package driven

// Chunker splits text into ordered, trimmed, non-empty chunks.
type Chunker interface {
	// Name returns the strategy name for logging and configuration.
	Name() string

	// Chunk splits text. It returns an empty slice when text has no content.
	Chunk(text string) []string
}

// ChunkerFactory builds a chunker for a strategy and size.
type ChunkerFactory interface {
	// Build returns the chunker for a strategy name.
	// Unknown names return an error wrapping domain.ErrInvalidStrategy.
	Build(strategy string, size int) (Chunker, error)
}
