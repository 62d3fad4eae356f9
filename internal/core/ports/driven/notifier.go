package driven

import "context"

// Notifier fans out "page changed" events so other clients refetch.
// Delivery is best-effort: core treats Publish as fire-and-forget and
// never rolls back a persisted edit because notification failed.
type Notifier interface {
	// Publish announces that editor changed the page with the given ID.
	Publish(ctx context.Context, pageID, editor string) error
}
