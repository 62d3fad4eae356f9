package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/redline/internal/core/domain"
	"github.com/custodia-labs/redline/internal/core/ports/driven"
	"github.com/custodia-labs/redline/internal/core/ports/driving"
	"github.com/custodia-labs/redline/internal/diff"
	"github.com/custodia-labs/redline/internal/logger"
	"github.com/custodia-labs/redline/internal/revision"
)

// Ensure SyncCoordinator implements the interface.
var _ driving.SyncService = (*SyncCoordinator)(nil)

// SyncCoordinator reconciles client edits with the canonical page
// content: diff the client's snapshots, apply the patch to whatever
// the canonical copy currently is, persist, announce.
//
// Edits to the same page are serialized through a per-page mutex so the
// fetch-apply-persist window cannot interleave and silently drop an
// applied hunk. Different pages proceed fully in parallel.
type SyncCoordinator struct {
	pages    driven.PageStore
	notifier driven.Notifier
	codec    *diff.Codec

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSyncCoordinator creates a sync coordinator.
// The notifier is optional (can be nil); edits persist either way.
func NewSyncCoordinator(pages driven.PageStore, notifier driven.Notifier) *SyncCoordinator {
	return &SyncCoordinator{
		pages:    pages,
		notifier: notifier,
		codec:    diff.NewCodec(),
		locks:    make(map[string]*sync.Mutex),
	}
}

// ApplyEdit diffs the snapshot the client edited from against the one
// it produced, then applies the patch to the canonical content.
func (c *SyncCoordinator) ApplyEdit(ctx context.Context, pageID, before, after, editor string) (domain.EditResult, error) {
	logger.Section("Apply Edit")
	logger.Debug("Page: %s, editor: %s", pageID, editor)

	patches := c.codec.Diff(before, after)
	if len(patches) == 0 {
		// Nothing visibly changed (e.g. editor whitespace
		// normalisation); skip the save entirely so subscribers see
		// no phantom updates.
		logger.Debug("Empty diff, skipping save")
		return domain.EditResult{PageID: pageID}, nil
	}

	return c.apply(ctx, pageID, patches, editor)
}

// ApplyPatch applies a serialized wire patch to the canonical content.
func (c *SyncCoordinator) ApplyPatch(ctx context.Context, pageID, patch, editor string) (domain.EditResult, error) {
	logger.Section("Apply Patch")
	logger.Debug("Page: %s, editor: %s", pageID, editor)

	patches, err := c.codec.Decode(patch)
	if err != nil {
		return domain.EditResult{}, err
	}
	if len(patches) == 0 {
		logger.Debug("Empty patch, skipping save")
		return domain.EditResult{PageID: pageID}, nil
	}

	return c.apply(ctx, pageID, patches, editor)
}

// apply runs the fetch-apply-persist-notify sequence under the page's
// lock. Hunks that cannot be anchored are kept as data in the result;
// only storage failures abort.
func (c *SyncCoordinator) apply(ctx context.Context, pageID string, patches []diff.Patch, editor string) (domain.EditResult, error) {
	if c.pages == nil {
		return domain.EditResult{}, domain.ErrPageStoreUnavailable
	}

	lock := c.pageLock(pageID)
	lock.Lock()
	defer lock.Unlock()

	page, err := c.pages.Get(ctx, pageID)
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("fetch page: %w", err)
	}

	newText, applied := c.codec.Apply(page.Content, patches)

	result := domain.EditResult{
		PageID:  pageID,
		Saved:   true,
		Applied: applied,
	}
	if rejected := result.Rejected(); rejected > 0 {
		// Lenient policy: keep what applied, surface no error. For
		// prose, partial acceptance beats silent data loss.
		logger.Warn("Page %s: %d of %d hunks rejected", pageID, rejected, len(applied))
	}

	page.Content = newText
	page.Revision = revision.Of(newText)
	page.UpdatedAt = time.Now()
	if err := c.pages.Save(ctx, page); err != nil {
		return domain.EditResult{}, fmt.Errorf("persist page: %w", err)
	}
	result.Revision = page.Revision
	logger.Info("Page %s saved at revision %.12s", pageID, page.Revision)

	c.announce(ctx, pageID, editor)
	return result, nil
}

// announce publishes a change notification. Fire-and-forget: failures
// are logged and swallowed, never rolled back into the saved edit.
func (c *SyncCoordinator) announce(ctx context.Context, pageID, editor string) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Publish(ctx, pageID, editor); err != nil {
		logger.Warn("Notify %s: %v", pageID, err)
	}
}

// pageLock returns the mutex serializing edits to one page.
func (c *SyncCoordinator) pageLock(pageID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[pageID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[pageID] = lock
	}
	return lock
}
