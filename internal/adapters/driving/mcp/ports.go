package mcp

import (
	"github.com/custodia-labs/redline/internal/core/ports/driven"
	"github.com/custodia-labs/redline/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Pages provides read access to canonical page content.
	Pages driven.PageStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Pages is optional; without it read_page is simply not registered.
	return nil
}
