package mcp

import (
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides semantic search.
	Search driving.SearchService

	// Document retrieves stored documents. Optional.
	Document driving.DocumentService

	// Categories groups documents by category. Optional.
	Categories driving.CategoryService

	// Recent holds the local history of processed documents. Optional.
	Recent driving.RecentService

	// Health reports collection statistics. Optional.
	Health driving.HealthService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
