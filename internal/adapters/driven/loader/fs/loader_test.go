package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redline/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/redline/internal/revision"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestImportDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "02_middle.html", "<p>middle</p>")
	writeFile(t, dir, "01_intro.html", "<p>intro</p>")
	writeFile(t, dir, "notes.txt", "plain notes")
	writeFile(t, dir, "ignored.pdf", "binary junk")

	store := memory.NewPageStore()
	loader := NewLoader(store)

	count, err := loader.ImportDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	pages, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 3)

	byTitle := make(map[string]int)
	for _, p := range pages {
		byTitle[p.Title] = p.Order
		assert.Equal(t, filepath.Base(dir), p.TextID)
		assert.NotEmpty(t, p.Revision)
		assert.False(t, p.CreatedAt.IsZero())
	}

	// Filename sort fixes the page order.
	assert.Equal(t, 0, byTitle["01 intro"])
	assert.Equal(t, 1, byTitle["02 middle"])
	assert.Equal(t, 2, byTitle["notes"])
}

func TestImportDirEmptyDirectory(t *testing.T) {
	store := memory.NewPageStore()
	loader := NewLoader(store)

	count, err := loader.ImportDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestImportDirMissingDirectory(t *testing.T) {
	loader := NewLoader(memory.NewPageStore())

	_, err := loader.ImportDir(context.Background(), "/no/such/dir")
	assert.Error(t, err)
}

func TestReimportKeepsIdentityAndCreationTime(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.html", "first version")

	store := memory.NewPageStore()
	loader := NewLoader(store)
	ctx := context.Background()

	_, err := loader.ImportDir(ctx, dir)
	require.NoError(t, err)

	pages, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	originalID := pages[0].ID
	originalCreated := pages[0].CreatedAt

	writeFile(t, dir, "page.html", "second version")
	_, err = loader.ImportDir(ctx, dir)
	require.NoError(t, err)

	pages, err = store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	assert.Equal(t, originalID, pages[0].ID)
	assert.True(t, pages[0].CreatedAt.Equal(originalCreated))
	assert.Equal(t, "second version", pages[0].Content)
	assert.Equal(t, revision.Of("second version"), pages[0].Revision)
}

func TestImportDirRevisionMatchesContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "some page text")

	store := memory.NewPageStore()
	loader := NewLoader(store)

	_, err := loader.ImportDir(context.Background(), dir)
	require.NoError(t, err)

	pages, err := store.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, revision.Of("some page text"), pages[0].Revision)
}

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "chapter 01 intro", titleFromFilename("chapter_01-intro.html"))
	assert.Equal(t, "notes", titleFromFilename("notes.txt"))
	assert.Equal(t, "no extension", titleFromFilename("no_extension"))
}
