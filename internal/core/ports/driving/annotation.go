package driving

import (
	"context"

	"github.com/custodia-labs/redline/internal/core/domain"
)

// AnnotationService operates on the marks embedded in a page's content.
// A missing (kind, id) target is an expected outcome of concurrent
// editing and is reported as found=false, never as an error.
type AnnotationService interface {
	// List scans the page and returns every mark in document order.
	List(ctx context.Context, pageID string) ([]domain.Mark, error)

	// Locate finds the mark with the given kind and id.
	Locate(ctx context.Context, pageID string, kind domain.MarkKind, id string) (domain.Mark, bool, error)

	// Replace swaps the text wrapped by the mark, preserving the tag
	// and its attributes. Persists and notifies only when the content
	// actually changed.
	Replace(ctx context.Context, pageID string, kind domain.MarkKind, id, newText, editor string) (bool, error)

	// Remove unwraps the mark, keeping its wrapped text as plain prose.
	Remove(ctx context.Context, pageID string, kind domain.MarkKind, id, editor string) (bool, error)

	// Add wraps rng with a new mark tag. The caller guarantees the
	// range does not cross an existing mark of the same kind.
	Add(ctx context.Context, pageID string, kind domain.MarkKind, id string, rng domain.Range, attrs map[string]string, editor string) error
}
