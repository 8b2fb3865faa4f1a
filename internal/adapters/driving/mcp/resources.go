package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docvec resources.
	uriScheme = "docvec://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "collections",
		Name:        "collections",
		Description: "Every collection with its dimension and point count",
		MIMEType:    "application/json",
	}, s.handleCollectionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "collections/{name}",
		Name:        "collection",
		Description: "Dimension, distance and point count of one collection",
		MIMEType:    "application/json",
	}, s.handleCollectionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "uploads",
		Name:        "uploads",
		Description: "Files in the upload area",
		MIMEType:    "application/json",
	}, s.handleUploadsResource)
}

// handleCollectionsResource returns every collection with its details.
func (s *Server) handleCollectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names, err := s.ports.Collections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}

	infos := make([]CollectionInfoOutput, 0, len(names))
	for _, name := range names {
		info, err := s.ports.Collections.Info(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("describing %s: %w", name, err)
		}
		infos = append(infos, toCollectionInfoOutput(info))
	}

	return jsonResource(req.Params.URI, infos)
}

// handleCollectionResource returns the details of one collection.
func (s *Server) handleCollectionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractCollectionName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info, err := s.ports.Collections.Info(ctx, name)
	if errors.Is(err, domain.ErrCollectionNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("describing %s: %w", name, err)
	}

	return jsonResource(req.Params.URI, toCollectionInfoOutput(info))
}

// handleUploadsResource returns the files of the upload area.
func (s *Server) handleUploadsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	_, out, err := s.handleListUploads(ctx, nil, EmptyInput{})
	if err != nil {
		return nil, fmt.Errorf("listing uploads: %w", err)
	}
	return jsonResource(req.Params.URI, out.Files)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func toCollectionInfoOutput(info *domain.CollectionInfo) CollectionInfoOutput {
	return CollectionInfoOutput{
		Name:        info.Name,
		Dimension:   info.Dimension,
		Distance:    info.Distance.String(),
		PointsCount: info.PointsCount,
	}
}

// extractCollectionName extracts the name from a URI like docvec://collections/{name}.
func extractCollectionName(uri string) string {
	const prefix = uriScheme + "collections/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if name == "" || strings.Contains(name, "/") {
		return ""
	}
	return name
}
