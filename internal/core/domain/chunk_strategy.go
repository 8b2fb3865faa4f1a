package domain

import "fmt"

// ChunkStrategy names an algorithm for splitting text into chunks.
type ChunkStrategy string

// Available chunk strategies.
const (
	// ChunkStrategyFixed accumulates non-blank lines until a size threshold is reached.
	ChunkStrategyFixed ChunkStrategy = "fixed"

	// ChunkStrategyMarkdown splits before every level-2 heading.
	ChunkStrategyMarkdown ChunkStrategy = "markdown"

	// ChunkStrategyMarkdownSmart splits on level-2 headings and re-splits
	// oversized sections with the fixed strategy.
	ChunkStrategyMarkdownSmart ChunkStrategy = "markdown-smart"
)

// AllChunkStrategies returns every supported strategy.
func AllChunkStrategies() []ChunkStrategy {
	return []ChunkStrategy{ChunkStrategyFixed, ChunkStrategyMarkdown, ChunkStrategyMarkdownSmart}
}

// IsValid returns true if the strategy is recognised.
func (s ChunkStrategy) IsValid() bool {
	switch s {
	case ChunkStrategyFixed, ChunkStrategyMarkdown, ChunkStrategyMarkdownSmart:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ChunkStrategy) String() string {
	return string(s)
}

// ParseChunkStrategy converts a name into a strategy.
func ParseChunkStrategy(name string) (ChunkStrategy, error) {
	s := ChunkStrategy(name)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, name)
	}
	return s, nil
}
