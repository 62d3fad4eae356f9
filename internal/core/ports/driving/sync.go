package driving

import (
	"context"

	"github.com/custodia-labs/redline/internal/core/domain"
)

// SyncService accepts client edits and reconciles them with the
// server's canonical page content.
type SyncService interface {
	// ApplyEdit diffs the snapshots the client edited between and
	// applies the resulting patch to the canonical content. An edit
	// with no visible change is a quiet no-op (Saved=false).
	ApplyEdit(ctx context.Context, pageID, before, after, editor string) (domain.EditResult, error)

	// ApplyPatch applies a serialized wire patch to the canonical
	// content. Returns domain.ErrMalformedPatch if the patch cannot
	// be parsed.
	ApplyPatch(ctx context.Context, pageID, patch, editor string) (domain.EditResult, error)
}
