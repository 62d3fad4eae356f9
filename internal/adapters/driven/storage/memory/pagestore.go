// Package memory provides in-memory implementations of the driven
// storage ports, used in tests and for ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/redline/internal/core/domain"
	"github.com/custodia-labs/redline/internal/core/ports/driven"
)

// Ensure PageStore implements the interface.
var _ driven.PageStore = (*PageStore)(nil)

// PageStore is an in-memory implementation of driven.PageStore.
type PageStore struct {
	mu    sync.RWMutex
	pages map[string]domain.Page
}

// NewPageStore creates a new in-memory page store.
func NewPageStore() *PageStore {
	return &PageStore{pages: make(map[string]domain.Page)}
}

// Get retrieves a page by ID.
func (s *PageStore) Get(_ context.Context, id string) (*domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &page, nil
}

// Save stores or updates a page.
func (s *PageStore) Save(_ context.Context, page *domain.Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[page.ID] = *page
	return nil
}

// ListAll returns every stored page.
func (s *PageStore) ListAll(_ context.Context) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Page, 0, len(s.pages))
	for id := range s.pages {
		result = append(result, s.pages[id])
	}
	return result, nil
}
