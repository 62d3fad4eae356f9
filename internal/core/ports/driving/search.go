package driving

import (
	"context"

	"github.com/custodia-labs/redline/internal/core/domain"
)

// SearchService finds query occurrences across all pages and excerpts
// them.
type SearchService interface {
	// Search returns per-page matches ranked by total match count.
	// An empty query returns an empty result set.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.PageMatch, error)
}
