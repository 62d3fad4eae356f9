// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Redline. It lets AI assistants search pages and read canonical
// content.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
