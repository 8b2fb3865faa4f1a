package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"the text to search for"`
	Collection string `json:"collection,omitempty" jsonschema:"collection to search (default from config)"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search hit.
type SearchResultOutput struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	ChunkID int     `json:"chunk_id"`
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
	Source  string  `json:"source"`
	Page    int     `json:"page,omitempty"`
}

// IngestFileInput is the input schema for the ingest_file tool.
type IngestFileInput struct {
	Path       string `json:"path" jsonschema:"path of a local file to copy into the upload area and ingest"`
	Collection string `json:"collection,omitempty" jsonschema:"target collection (default from config)"`
	Strategy   string `json:"strategy,omitempty" jsonschema:"chunk strategy: fixed, markdown or markdown-smart"`
	ChunkSize  int    `json:"chunk_size,omitempty" jsonschema:"chunk size in characters"`
	Prune      bool   `json:"prune,omitempty" jsonschema:"delete stale points of the document after upserting"`
}

// IngestDirectoryInput is the input schema for the ingest_directory tool.
type IngestDirectoryInput struct {
	Directory  string `json:"directory" jsonschema:"directory whose files are ingested (not recursive)"`
	Collection string `json:"collection,omitempty" jsonschema:"target collection (default from config)"`
	Strategy   string `json:"strategy,omitempty" jsonschema:"chunk strategy: fixed, markdown or markdown-smart"`
	ChunkSize  int    `json:"chunk_size,omitempty" jsonschema:"chunk size in characters"`
	Prune      bool   `json:"prune,omitempty" jsonschema:"delete stale points of each document after upserting"`
}

// IngestOutput summarises an ingestion run.
type IngestOutput struct {
	RunID      string              `json:"run_id"`
	Collection string              `json:"collection"`
	Empty      bool                `json:"empty"`
	Ingested   int                 `json:"ingested"`
	Skipped    int                 `json:"skipped"`
	Failed     int                 `json:"failed"`
	Points     int                 `json:"points"`
	Files      []FileOutcomeOutput `json:"files"`
}

// FileOutcomeOutput is the result for one file.
type FileOutcomeOutput struct {
	Path   string `json:"path"`
	Status string `json:"status"`
	Chunks int    `json:"chunks"`
	Error  string `json:"error,omitempty"`
}

// CollectionInput names a collection.
type CollectionInput struct {
	Collection string `json:"collection,omitempty" jsonschema:"collection name (default from config)"`
}

// DeleteCollectionInput is the input schema for the delete_collection tool.
type DeleteCollectionInput struct {
	Collection string `json:"collection" jsonschema:"collection to delete"`
}

// ListCollectionsOutput is the output schema for the list_collections tool.
type ListCollectionsOutput struct {
	Collections []string `json:"collections"`
}

// CollectionInfoOutput is the output schema for the get_collection_info tool.
type CollectionInfoOutput struct {
	Name        string `json:"name"`
	Dimension   int    `json:"dimension"`
	Distance    string `json:"distance"`
	PointsCount int    `json:"points_count"`
}

// DeletePointInput is the input schema for the delete_point tool.
type DeletePointInput struct {
	Collection string `json:"collection,omitempty" jsonschema:"collection name (default from config)"`
	ID         string `json:"id,omitempty" jsonschema:"id of the point to delete"`
	Title      string `json:"title,omitempty" jsonschema:"delete every point of this document title instead"`
}

// UploadedFileOutput describes one uploaded file.
type UploadedFileOutput struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// ListUploadsOutput is the output schema for the list_uploaded_files tool.
type ListUploadsOutput struct {
	Files []UploadedFileOutput `json:"files"`
}

// DeleteUploadInput is the input schema for the delete_uploaded_file tool.
type DeleteUploadInput struct {
	Name string `json:"name" jsonschema:"name of the uploaded file"`
}

// StatusOutput acknowledges a mutation.
type StatusOutput struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// EmptyInput is used by tools without arguments.
type EmptyInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Semantic search over the chunks of a collection",
	}, s.handleSearch)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_file",
		Description: "Copy a local file into the upload area and ingest it",
	}, s.handleIngestFile)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_directory",
		Description: "Ingest every file directly under a directory",
	}, s.handleIngestDirectory)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_collections",
		Description: "List collection names",
	}, s.handleListCollections)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_collection_info",
		Description: "Show dimension, distance and approximate point count of a collection",
	}, s.handleCollectionInfo)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_collection",
		Description: "Delete a collection and all of its points",
	}, s.handleDeleteCollection)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_point",
		Description: "Delete a point by id, or every point of a document title",
	}, s.handleDeletePoint)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_uploaded_files",
		Description: "List files in the upload area",
	}, s.handleListUploads)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_uploaded_file",
		Description: "Remove one file from the upload area; its points stay",
	}, s.handleDeleteUpload)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_all_uploaded_files",
		Description: "Remove every file from the upload area; points stay",
	}, s.handleDeleteAllUploads)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	defaults := s.ports.defaults()
	collection := orDefault(input.Collection, defaults.Collection)
	limit := input.Limit
	if limit <= 0 {
		limit = defaults.Search.Limit
	}

	hits, err := s.ports.Search.Search(ctx, collection, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(hits)),
		Count:   len(hits),
	}
	for i, h := range hits {
		output.Results[i] = SearchResultOutput{
			ID:      h.ID,
			Title:   h.Payload.Title,
			ChunkID: h.Payload.ChunkID,
			Score:   h.Score,
			Summary: h.Payload.Summary,
			Source:  h.Payload.Source,
			Page:    h.Payload.PageNumber(),
		}
	}

	return nil, output, nil
}

// handleIngestFile handles the ingest_file tool invocation.
func (s *Server) handleIngestFile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestFileInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, IngestOutput{}, fmt.Errorf("%w: path is required", ErrInvalidArguments)
	}
	opts, err := s.ingestOptions(input.Collection, input.Strategy, input.ChunkSize, input.Prune)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	report, err := s.ports.Uploads.Upload(ctx, input.Path, opts)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, toIngestOutput(report), nil
}

// handleIngestDirectory handles the ingest_directory tool invocation.
func (s *Server) handleIngestDirectory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestDirectoryInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if strings.TrimSpace(input.Directory) == "" {
		return nil, IngestOutput{}, fmt.Errorf("%w: directory is required", ErrInvalidArguments)
	}
	opts, err := s.ingestOptions(input.Collection, input.Strategy, input.ChunkSize, input.Prune)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	report, err := s.ports.Ingest.IngestDirectory(ctx, input.Directory, opts)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, toIngestOutput(report), nil
}

// handleListCollections handles the list_collections tool invocation.
func (s *Server) handleListCollections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ListCollectionsOutput, error) {
	names, err := s.ports.Collections.List(ctx)
	if err != nil {
		return nil, ListCollectionsOutput{}, err
	}
	if names == nil {
		names = []string{}
	}
	return nil, ListCollectionsOutput{Collections: names}, nil
}

// handleCollectionInfo handles the get_collection_info tool invocation.
func (s *Server) handleCollectionInfo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CollectionInput,
) (*mcp.CallToolResult, CollectionInfoOutput, error) {
	name := orDefault(input.Collection, s.ports.defaults().Collection)

	info, err := s.ports.Collections.Info(ctx, name)
	if err != nil {
		return nil, CollectionInfoOutput{}, err
	}
	return nil, toCollectionInfoOutput(info), nil
}

// handleDeleteCollection handles the delete_collection tool invocation.
// The collection must be named explicitly.
func (s *Server) handleDeleteCollection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteCollectionInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	if strings.TrimSpace(input.Collection) == "" {
		return nil, StatusOutput{}, fmt.Errorf("%w: collection is required", ErrInvalidArguments)
	}
	if err := s.ports.Collections.Delete(ctx, input.Collection); err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{Message: fmt.Sprintf("deleted collection %q", input.Collection)}, nil
}

// handleDeletePoint handles the delete_point tool invocation.
func (s *Server) handleDeletePoint(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeletePointInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	hasID, hasTitle := input.ID != "", input.Title != ""
	if hasID == hasTitle {
		return nil, StatusOutput{}, fmt.Errorf("%w: exactly one of id or title is required", ErrInvalidArguments)
	}
	collection := orDefault(input.Collection, s.ports.defaults().Collection)

	if hasTitle {
		if err := s.ports.Collections.DeleteByTitle(ctx, collection, input.Title); err != nil {
			return nil, StatusOutput{}, err
		}
		return nil, StatusOutput{Message: fmt.Sprintf("deleted points of %q", input.Title)}, nil
	}

	if err := s.ports.Collections.DeletePoints(ctx, collection, []string{input.ID}); err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{Message: fmt.Sprintf("deleted point %s", input.ID), Count: 1}, nil
}

// handleListUploads handles the list_uploaded_files tool invocation.
func (s *Server) handleListUploads(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ListUploadsOutput, error) {
	files, err := s.ports.Uploads.List()
	if err != nil {
		return nil, ListUploadsOutput{}, err
	}

	out := ListUploadsOutput{Files: make([]UploadedFileOutput, len(files))}
	for i, f := range files {
		out.Files[i] = UploadedFileOutput{
			Name:     f.Name,
			Size:     f.Size,
			Modified: f.ModTime.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return nil, out, nil
}

// handleDeleteUpload handles the delete_uploaded_file tool invocation.
func (s *Server) handleDeleteUpload(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DeleteUploadInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, StatusOutput{}, fmt.Errorf("%w: name is required", ErrInvalidArguments)
	}
	if err := s.ports.Uploads.Delete(input.Name); err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{Message: fmt.Sprintf("removed %s", input.Name), Count: 1}, nil
}

// handleDeleteAllUploads handles the delete_all_uploaded_files tool invocation.
func (s *Server) handleDeleteAllUploads(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	n, err := s.ports.Uploads.DeleteAll()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{Message: fmt.Sprintf("removed %d file(s)", n), Count: n}, nil
}

// ingestOptions merges tool arguments over configured defaults.
func (s *Server) ingestOptions(collection, strategy string, size int, prune bool) (domain.IngestOptions, error) {
	opts := s.ports.defaults().IngestOptions()
	if collection != "" {
		opts.Collection = collection
	}
	if strategy != "" {
		st, err := domain.ParseChunkStrategy(strategy)
		if err != nil {
			return domain.IngestOptions{}, err
		}
		opts.Strategy = st
	}
	if size > 0 {
		opts.ChunkSize = size
	}
	if prune {
		opts.Prune = true
	}
	return opts, nil
}

func toIngestOutput(r *domain.IngestReport) IngestOutput {
	out := IngestOutput{
		RunID:      r.RunID,
		Collection: r.Collection,
		Empty:      r.Empty,
		Ingested:   r.Ingested(),
		Skipped:    r.Skipped(),
		Failed:     r.Failed(),
		Points:     r.PointsWritten(),
		Files:      make([]FileOutcomeOutput, len(r.Files)),
	}
	for i, f := range r.Files {
		out.Files[i] = FileOutcomeOutput{
			Path:   f.Path,
			Status: string(f.Status),
			Chunks: f.Chunks,
			Error:  f.Reason(),
		}
	}
	return out
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
