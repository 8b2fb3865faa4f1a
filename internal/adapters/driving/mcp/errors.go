// Package mcp provides an MCP (Model Context Protocol) server adapter for docvec.
// It lets AI assistants search collections, ingest files and manage the
// upload area.
package mcp

import "errors"

// Errors returned while building the server or handling tool calls.
var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")
	// ErrMissingIngestService is returned when the ingest service is not provided.
	ErrMissingIngestService = errors.New("mcp: ingest service is required")
	// ErrMissingCollectionService is returned when the collection service is not provided.
	ErrMissingCollectionService = errors.New("mcp: collection service is required")
	// ErrMissingUploadService is returned when the upload service is not provided.
	ErrMissingUploadService = errors.New("mcp: upload service is required")
	// ErrInvalidArguments is returned when tool arguments are missing or contradictory.
	ErrInvalidArguments = errors.New("mcp: invalid arguments")
)
