package domain

import (
	"path/filepath"
	"strings"
)

// Document represents a source file discovered during ingestion.
// It is immutable once read and lives for one ingestion run.
type Document struct {
	// Title is the filename without its extension.
	Title string

	// SourcePath is the path the file was read from.
	SourcePath string

	// SourceType is the lower-cased extension without the leading dot.
	SourceType string

	// SourceDir is the name of the directory containing the file.
	SourceDir string
}

// NewDocument derives document identity fields from a file path.
func NewDocument(path string) Document {
	base := filepath.Base(path)
	ext := filepath.Ext(base)

	return Document{
		Title:      strings.TrimSuffix(base, ext),
		SourcePath: path,
		SourceType: strings.ToLower(strings.TrimPrefix(ext, ".")),
		SourceDir:  filepath.Base(filepath.Dir(path)),
	}
}

// Source returns the file name including its extension.
func (d Document) Source() string {
	return filepath.Base(d.SourcePath)
}

// IsPDF reports whether the document is a PDF file.
func (d Document) IsPDF() bool {
	return d.SourceType == "pdf"
}

// Page is extracted text from one physical page.
// Number is 1-based for paged formats and 0 for formats without pages.
type Page struct {
	Number int
	Text   string
}

// Chunk is a trimmed, non-empty span of document text.
type Chunk struct {
	// Index is the 1-based position within the document.
	Index int

	// Text is the chunk content.
	Text string

	// Page is the page the chunk came from, or 0 when the format has no pages.
	Page int
}
