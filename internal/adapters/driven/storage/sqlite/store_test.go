package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redline/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	page := &domain.Page{
		ID:        "p1",
		TextID:    "book",
		Order:     3,
		Version:   "draft-2",
		Title:     "Chapter One",
		Content:   "In the beginning",
		ImageURL:  "https://example.com/img.png",
		Revision:  "abc123",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.Save(ctx, page))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, page.TextID, got.TextID)
	assert.Equal(t, page.Order, got.Order)
	assert.Equal(t, page.Title, got.Title)
	assert.Equal(t, page.Content, got.Content)
	assert.Equal(t, page.Revision, got.Revision)
	assert.True(t, got.CreatedAt.Equal(now))
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Page{ID: "p1", Content: "v1", Revision: "r1"}))
	require.NoError(t, store.Save(ctx, &domain.Page{ID: "p1", Content: "v2", Revision: "r2"}))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)
	assert.Equal(t, "r2", got.Revision)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStoreListAllOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Page{ID: "x", TextID: "beta", Order: 0}))
	require.NoError(t, store.Save(ctx, &domain.Page{ID: "y", TextID: "alpha", Order: 1}))
	require.NoError(t, store.Save(ctx, &domain.Page{ID: "z", TextID: "alpha", Order: 0}))

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "z", all[0].ID)
	assert.Equal(t, "y", all[1].ID)
	assert.Equal(t, "x", all[2].ID)
}

func TestStoreMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), &domain.Page{ID: "p1", Content: "kept"}))
	require.NoError(t, store.Close())

	// Reopening against the same file must not re-run migrations or
	// lose data.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Content)
}
