package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redline/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/redline/internal/core/domain"
	"github.com/custodia-labs/redline/internal/revision"
)

func TestAnnotationListScansMarks(t *testing.T) {
	store := memory.NewPageStore()
	seedPage(t, store, "p1",
		`Draft. <suggestion id="s1">first</suggestion> and <post id="c1" author="bob">second</post> done.`)

	svc := NewAnnotationService(store, nil)

	marks, err := svc.List(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, marks, 2)

	assert.Equal(t, domain.MarkSuggestion, marks[0].Kind)
	assert.Equal(t, "s1", marks[0].ID)
	assert.Equal(t, "first", marks[0].Text)

	assert.Equal(t, domain.MarkPost, marks[1].Kind)
	assert.Equal(t, "c1", marks[1].ID)
	assert.Equal(t, "bob", marks[1].Attrs["author"])
}

func TestAnnotationLocate(t *testing.T) {
	store := memory.NewPageStore()
	seedPage(t, store, "p1", `before <suggestion id="s1">target</suggestion> after`)

	svc := NewAnnotationService(store, nil)

	mark, found, err := svc.Locate(context.Background(), "p1", domain.MarkSuggestion, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "target", mark.Text)
	assert.Equal(t, 6, mark.Inner.Len())

	_, found, err = svc.Locate(context.Background(), "p1", domain.MarkSuggestion, "nope")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAnnotationReplaceSavesAndNotifies(t *testing.T) {
	store := memory.NewPageStore()
	notifier := memory.NewNotifier()
	seedPage(t, store, "p1", `<suggestion id="t1">old</suggestion> rest`)

	svc := NewAnnotationService(store, notifier)

	changed, err := svc.Replace(context.Background(), "p1", domain.MarkSuggestion, "t1", "new", "alice")
	require.NoError(t, err)
	assert.True(t, changed)

	page, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, `<suggestion id="t1">new</suggestion> rest`, page.Content)
	assert.Equal(t, revision.Of(page.Content), page.Revision)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "alice", events[0].Editor)
}

func TestAnnotationReplaceNoOpDoesNotNotify(t *testing.T) {
	store := memory.NewPageStore()
	notifier := memory.NewNotifier()
	content := `<suggestion id="t1">same</suggestion>`
	seedPage(t, store, "p1", content)

	svc := NewAnnotationService(store, notifier)

	// Equal text.
	changed, err := svc.Replace(context.Background(), "p1", domain.MarkSuggestion, "t1", "same", "alice")
	require.NoError(t, err)
	assert.False(t, changed)

	// Missing mark.
	changed, err = svc.Replace(context.Background(), "p1", domain.MarkSuggestion, "gone", "text", "alice")
	require.NoError(t, err)
	assert.False(t, changed)

	assert.Empty(t, notifier.Events())
	page, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, content, page.Content)
}

func TestAnnotationRemoveUnwraps(t *testing.T) {
	store := memory.NewPageStore()
	notifier := memory.NewNotifier()
	seedPage(t, store, "p1", `keep <post id="c1">the words</post> intact`)

	svc := NewAnnotationService(store, notifier)

	changed, err := svc.Remove(context.Background(), "p1", domain.MarkPost, "c1", "bob")
	require.NoError(t, err)
	assert.True(t, changed)

	page, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "keep the words intact", page.Content)
	require.Len(t, notifier.Events(), 1)
}

func TestAnnotationRemoveMissingIsQuiet(t *testing.T) {
	store := memory.NewPageStore()
	notifier := memory.NewNotifier()
	seedPage(t, store, "p1", "no marks")

	svc := NewAnnotationService(store, notifier)

	changed, err := svc.Remove(context.Background(), "p1", domain.MarkPost, "ghost", "bob")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, notifier.Events())
}

func TestAnnotationAdd(t *testing.T) {
	store := memory.NewPageStore()
	seedPage(t, store, "p1", "The quick brown fox")

	svc := NewAnnotationService(store, nil)

	err := svc.Add(context.Background(), "p1", domain.MarkSuggestion, "s1",
		domain.Range{Start: 10, End: 15}, map[string]string{"original": "brown"}, "carol")
	require.NoError(t, err)

	page, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, `The quick <suggestion id="s1" original="brown">brown</suggestion> fox`, page.Content)

	// The freshly added mark is immediately addressable.
	mark, found, err := svc.Locate(context.Background(), "p1", domain.MarkSuggestion, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "brown", mark.Text)
}

func TestAnnotationAddInvalidRange(t *testing.T) {
	store := memory.NewPageStore()
	seedPage(t, store, "p1", "short")

	svc := NewAnnotationService(store, nil)

	err := svc.Add(context.Background(), "p1", domain.MarkSuggestion, "s1",
		domain.Range{Start: 2, End: 99}, nil, "carol")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnnotationAddDuplicateMark(t *testing.T) {
	store := memory.NewPageStore()
	notifier := memory.NewNotifier()
	seedPage(t, store, "p1", `<post id="c1">claimed</post> rest`)

	svc := NewAnnotationService(store, notifier)

	err := svc.Add(context.Background(), "p1", domain.MarkPost, "c1",
		domain.Range{Start: 29, End: 33}, nil, "carol")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.Empty(t, notifier.Events())
}

func TestAnnotationUnknownPage(t *testing.T) {
	svc := NewAnnotationService(memory.NewPageStore(), nil)

	_, err := svc.List(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = svc.Locate(context.Background(), "missing", domain.MarkPost, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Replace(context.Background(), "missing", domain.MarkPost, "x", "t", "e")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotationNilStore(t *testing.T) {
	svc := NewAnnotationService(nil, nil)

	_, err := svc.List(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrPageStoreUnavailable)
}
