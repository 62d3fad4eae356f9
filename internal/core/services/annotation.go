package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/redline/internal/core/domain"
	"github.com/custodia-labs/redline/internal/core/ports/driven"
	"github.com/custodia-labs/redline/internal/core/ports/driving"
	"github.com/custodia-labs/redline/internal/logger"
	"github.com/custodia-labs/redline/internal/markup"
	"github.com/custodia-labs/redline/internal/revision"
)

// Ensure AnnotationService implements the interface.
var _ driving.AnnotationService = (*AnnotationService)(nil)

// AnnotationService runs mark operations against stored pages. A
// missing mark is always a quiet no-op: the anchor may have been
// removed by a concurrent edit, and thread backends handle that by
// showing the discussion unanchored.
type AnnotationService struct {
	pages    driven.PageStore
	notifier driven.Notifier
}

// NewAnnotationService creates an annotation service.
// The notifier is optional (can be nil).
func NewAnnotationService(pages driven.PageStore, notifier driven.Notifier) *AnnotationService {
	return &AnnotationService{pages: pages, notifier: notifier}
}

// List scans the page content and returns every mark in document order.
func (s *AnnotationService) List(ctx context.Context, pageID string) ([]domain.Mark, error) {
	page, err := s.fetch(ctx, pageID)
	if err != nil {
		return nil, err
	}
	return markup.Scan(page.Content), nil
}

// Locate finds the mark with the given kind and id.
func (s *AnnotationService) Locate(ctx context.Context, pageID string, kind domain.MarkKind, id string) (domain.Mark, bool, error) {
	page, err := s.fetch(ctx, pageID)
	if err != nil {
		return domain.Mark{}, false, err
	}
	rng, ok := markup.FindRange(page.Content, kind, id)
	if !ok {
		logger.Debug("Mark %s/%s not found on page %s", kind, id, pageID)
		return domain.Mark{}, false, nil
	}
	return domain.Mark{
		Kind:  kind,
		ID:    id,
		Inner: rng,
		Text:  page.Content[rng.Start:rng.End],
	}, true, nil
}

// Replace swaps the text wrapped by the mark, preserving the tag and
// its id, kind and attributes. Returns true when the page was saved;
// false when the text was already equal or the mark is gone, in which
// case no mutation notification is emitted either.
func (s *AnnotationService) Replace(ctx context.Context, pageID string, kind domain.MarkKind, id, newText, editor string) (bool, error) {
	page, err := s.fetch(ctx, pageID)
	if err != nil {
		return false, err
	}

	updated := markup.ReplaceContent(page.Content, kind, id, newText)
	if updated == page.Content {
		logger.Debug("Replace %s/%s on page %s is a no-op", kind, id, pageID)
		return false, nil
	}
	if err := s.save(ctx, page, updated, editor); err != nil {
		return false, err
	}
	return true, nil
}

// Remove unwraps the mark, keeping its wrapped text as plain prose.
func (s *AnnotationService) Remove(ctx context.Context, pageID string, kind domain.MarkKind, id, editor string) (bool, error) {
	page, err := s.fetch(ctx, pageID)
	if err != nil {
		return false, err
	}

	updated := markup.RemoveMark(page.Content, kind, id)
	if updated == page.Content {
		logger.Debug("Remove %s/%s on page %s is a no-op", kind, id, pageID)
		return false, nil
	}
	if err := s.save(ctx, page, updated, editor); err != nil {
		return false, err
	}
	return true, nil
}

// Add wraps the given range with a new mark tag. The caller guarantees
// the range does not cross an existing mark of the same kind.
func (s *AnnotationService) Add(ctx context.Context, pageID string, kind domain.MarkKind, id string, rng domain.Range, attrs map[string]string, editor string) error {
	page, err := s.fetch(ctx, pageID)
	if err != nil {
		return err
	}

	updated, err := markup.AddMark(page.Content, kind, id, rng, attrs)
	if err != nil {
		return fmt.Errorf("add mark %s/%s: %w", kind, id, err)
	}
	return s.save(ctx, page, updated, editor)
}

// fetch loads a page, guarding against a missing store.
func (s *AnnotationService) fetch(ctx context.Context, pageID string) (*domain.Page, error) {
	if s.pages == nil {
		return nil, domain.ErrPageStoreUnavailable
	}
	page, err := s.pages.Get(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	return page, nil
}

// save persists changed content and announces the change.
func (s *AnnotationService) save(ctx context.Context, page *domain.Page, content, editor string) error {
	page.Content = content
	page.Revision = revision.Of(content)
	page.UpdatedAt = time.Now()
	if err := s.pages.Save(ctx, page); err != nil {
		return fmt.Errorf("persist page: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Publish(ctx, page.ID, editor); err != nil {
			logger.Warn("Notify %s: %v", page.ID, err)
		}
	}
	return nil
}
