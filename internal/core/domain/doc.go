// Package domain defines the core business entities for docvec.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A source file discovered during ingestion
//   - Page: Extracted text, one per PDF page or one for a whole text file
//   - Chunk: A retrievable unit of text within a document
//   - Point: The persisted id, vector and payload triple
//   - Collection: A named, dimension-fixed vector index
//   - IngestReport: Per-file outcomes of one ingestion run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
