package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redline/internal/core/domain"
)

func TestPageStoreSaveGet(t *testing.T) {
	store := NewPageStore()
	ctx := context.Background()

	page := &domain.Page{ID: "p1", Title: "First", Content: "hello"}
	require.NoError(t, store.Save(ctx, page))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, "hello", got.Content)
}

func TestPageStoreGetMissing(t *testing.T) {
	store := NewPageStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPageStoreGetReturnsCopy(t *testing.T) {
	store := NewPageStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Page{ID: "p1", Content: "original"}))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	got.Content = "mutated by caller"

	again, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Content)
}

func TestPageStoreSaveOverwrites(t *testing.T) {
	store := NewPageStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Page{ID: "p1", Content: "v1"}))
	require.NoError(t, store.Save(ctx, &domain.Page{ID: "p1", Content: "v2"}))

	got, err := store.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Content)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPageStoreListAll(t *testing.T) {
	store := NewPageStore()
	ctx := context.Background()

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, store.Save(ctx, &domain.Page{ID: "a"}))
	require.NoError(t, store.Save(ctx, &domain.Page{ID: "b"}))

	all, err = store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNotifierRecordsEvents(t *testing.T) {
	notifier := NewNotifier()
	ctx := context.Background()

	assert.Empty(t, notifier.Events())

	require.NoError(t, notifier.Publish(ctx, "p1", "alice"))
	require.NoError(t, notifier.Publish(ctx, "p2", "bob"))

	events := notifier.Events()
	require.Len(t, events, 2)
	assert.Equal(t, Event{PageID: "p1", Editor: "alice"}, events[0])
	assert.Equal(t, Event{PageID: "p2", Editor: "bob"}, events[1])
}
