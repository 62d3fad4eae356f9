package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/redline/internal/core/domain"
)

// SearchInput is the input schema for the search_pages tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"the text to find across all pages"`
	MaxPerPage int    `json:"max_per_page,omitempty" jsonschema:"maximum excerpts per page (0 = unlimited)"`
}

// SearchOutput is the output schema for the search_pages tool.
type SearchOutput struct {
	Results []PageMatchOutput `json:"results"`
	Count   int               `json:"count"`
}

// PageMatchOutput represents a single page's search result.
type PageMatchOutput struct {
	PageID       string   `json:"page_id"`
	Title        string   `json:"title"`
	Excerpts     []string `json:"excerpts,omitempty"`
	TotalMatches int      `json:"total_matches"`
	Truncated    bool     `json:"truncated,omitempty"`
}

// ReadPageInput is the input schema for the read_page tool.
type ReadPageInput struct {
	PageID string `json:"page_id" jsonschema:"the page to read"`
}

// ReadPageOutput is the output schema for the read_page tool.
type ReadPageOutput struct {
	PageID   string `json:"page_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Revision string `json:"revision"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_pages",
		Description: "Search across all pages and return ranked excerpts",
	}, s.handleSearch)

	if s.ports.Pages != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "read_page",
			Description: "Read a page's canonical markup content",
		}, s.handleReadPage)
	}
}

// handleSearch handles the search_pages tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{MaxPerPage: input.MaxPerPage}
	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]PageMatchOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		excerpts := make([]string, len(results[i].Matches))
		for j, m := range results[i].Matches {
			excerpts[j] = m.Text
		}
		output.Results[i] = PageMatchOutput{
			PageID:       results[i].PageID,
			Title:        results[i].Title,
			Excerpts:     excerpts,
			TotalMatches: results[i].TotalMatches,
			Truncated:    results[i].Truncated,
		}
	}

	return nil, output, nil
}

// handleReadPage handles the read_page tool invocation.
func (s *Server) handleReadPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadPageInput,
) (*mcp.CallToolResult, ReadPageOutput, error) {
	page, err := s.ports.Pages.Get(ctx, input.PageID)
	if err != nil {
		return nil, ReadPageOutput{}, err
	}

	return nil, ReadPageOutput{
		PageID:   page.ID,
		Title:    page.Title,
		Content:  page.Content,
		Revision: page.Revision,
	}, nil
}
