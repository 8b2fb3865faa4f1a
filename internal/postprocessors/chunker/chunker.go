// Package chunker splits extracted text into chunks.
//
// Three strategies are provided: Fixed accumulates non-blank lines until a
// size threshold is reached, Markdown splits before level-2 headings, and
// MarkdownSmart splits on headings but re-splits oversized sections with
// Fixed. All strategies return trimmed, non-empty chunks and never split a
// line in two.
package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
)

// DefaultChunkSize is the default size threshold in characters.
const DefaultChunkSize = domain.DefaultChunkSize

// Ensure all strategies implement the interface.
var (
	_ driven.Chunker = (*Fixed)(nil)
	_ driven.Chunker = (*Markdown)(nil)
	_ driven.Chunker = (*MarkdownSmart)(nil)
)

// Fixed accumulates trimmed, non-blank lines and emits a chunk whenever the
// accumulated text, newlines included, reaches the size threshold.
// Chunks are at least size characters except possibly the last, and are
// never capped: a single long line becomes one oversized chunk.
type Fixed struct {
	size int
}

// NewFixed creates a fixed-size chunker. Non-positive sizes use DefaultChunkSize.
func NewFixed(size int) *Fixed {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &Fixed{size: size}
}

// Name returns the strategy name.
func (f *Fixed) Name() string {
	return domain.ChunkStrategyFixed.String()
}

// Size returns the size threshold.
func (f *Fixed) Size() int {
	return f.size
}

// Chunk splits text into chunks.
func (f *Fixed) Chunk(text string) []string {
	var (
		chunks []string
		buf    strings.Builder
		n      int
	)

	for _, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
		n += utf8.RuneCountInString(line) + 1

		if n >= f.size {
			chunks = append(chunks, strings.TrimSpace(buf.String()))
			buf.Reset()
			n = 0
		}
	}

	if buf.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(buf.String()))
	}

	return chunks
}

// Markdown splits text before every level-2 heading ("## title").
// Each section keeps its heading line; sections that are empty after
// trimming, such as a blank preamble, are dropped.
type Markdown struct{}

// NewMarkdown creates a heading chunker.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Name returns the strategy name.
func (m *Markdown) Name() string {
	return domain.ChunkStrategyMarkdown.String()
}

// Chunk splits text into heading-aligned sections.
func (m *Markdown) Chunk(text string) []string {
	return SplitSections(text)
}

// MarkdownSmart splits on level-2 headings and keeps a section whole when it
// is at most one and a half times the size threshold. Longer sections are
// re-split with Fixed.
type MarkdownSmart struct {
	fixed *Fixed
}

// NewMarkdownSmart creates a heading chunker bounded by size.
func NewMarkdownSmart(size int) *MarkdownSmart {
	return &MarkdownSmart{fixed: NewFixed(size)}
}

// Name returns the strategy name.
func (m *MarkdownSmart) Name() string {
	return domain.ChunkStrategyMarkdownSmart.String()
}

// Chunk splits text into heading-aligned sections of bounded size.
func (m *MarkdownSmart) Chunk(text string) []string {
	var chunks []string
	limit := 3 * m.fixed.Size() // compared against 2*len to avoid floats

	for _, section := range SplitSections(text) {
		if 2*utf8.RuneCountInString(section) <= limit {
			chunks = append(chunks, section)
			continue
		}
		chunks = append(chunks, m.fixed.Chunk(section)...)
	}

	return chunks
}

// SplitSections splits text before every line that starts with "##"
// followed by whitespace. Sections are trimmed and empty ones dropped.
func SplitSections(text string) []string {
	var (
		sections []string
		start    int
	)

	for i := 0; i < len(text); {
		if i > start && isHeading(text[i:]) {
			sections = append(sections, text[start:i])
			start = i
		}

		next := strings.IndexByte(text[i:], '\n')
		if next < 0 {
			break
		}
		i += next + 1
	}
	sections = append(sections, text[start:])

	out := sections[:0]
	for _, s := range sections {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// isHeading reports whether a line starts with a level-2 heading marker.
// "###" does not match because the third character is not whitespace.
func isHeading(line string) bool {
	if !strings.HasPrefix(line, "##") || len(line) == 2 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(line[2:])
	return unicode.IsSpace(r)
}

// splitLines splits on every line boundary and drops empty pieces,
// which the fixed strategy would skip anyway.
func splitLines(text string) []string {
	return strings.FieldsFunc(text, isLineBreak)
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	default:
		return false
	}
}
