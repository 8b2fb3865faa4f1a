package mcp

import (
	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search answers similarity queries.
	Search driving.SearchService

	// Ingest loads directories into collections.
	Ingest driving.IngestService

	// Collections manages collections and points.
	Collections driving.CollectionService

	// Uploads manages the upload area.
	Uploads driving.UploadService

	// Settings supplies defaults for omitted tool arguments. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	switch {
	case p.Search == nil:
		return ErrMissingSearchService
	case p.Ingest == nil:
		return ErrMissingIngestService
	case p.Collections == nil:
		return ErrMissingCollectionService
	case p.Uploads == nil:
		return ErrMissingUploadService
	}
	return nil
}

// defaults returns configured settings, or built-in defaults when settings
// are unavailable.
func (p *Ports) defaults() domain.AppSettings {
	if p.Settings != nil {
		if s, err := p.Settings.Get(); err == nil {
			return *s
		}
	}
	return domain.DefaultAppSettings()
}
