package driven

import (
	"context"

	"github.com/custodia-labs/redline/internal/core/domain"
)

// PageStore persists canonical page content.
// Implementations must provide read-your-writes consistency within one
// process: a Get following a successful Save observes that Save.
type PageStore interface {
	// Get retrieves a page by ID. Returns domain.ErrNotFound if the
	// page does not exist.
	Get(ctx context.Context, id string) (*domain.Page, error)

	// Save stores or updates a page.
	Save(ctx context.Context, page *domain.Page) error

	// ListAll returns every stored page. Search runs a full scan over
	// this; no incremental index is assumed.
	ListAll(ctx context.Context) ([]domain.Page, error)
}
