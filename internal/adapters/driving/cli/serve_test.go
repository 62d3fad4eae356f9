package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/redline/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/redline/internal/core/domain"
	"github.com/custodia-labs/redline/internal/core/services"
)

func newTestMux(t *testing.T) (*http.ServeMux, *memory.PageStore) {
	t.Helper()

	store := memory.NewPageStore()
	deps = Deps{
		Sync:        services.NewSyncCoordinator(store, nil),
		Annotations: services.NewAnnotationService(store, nil),
		Search:      services.NewSearchService(store),
		Pages:       store,
	}
	t.Cleanup(func() { deps = Deps{} })

	mux := http.NewServeMux()
	mux.HandleFunc("GET /pages/{id}", handleGetPage)
	mux.HandleFunc("POST /pages/{id}/edits", handlePostEdit)
	mux.HandleFunc("GET /search", handleSearch)
	return mux, store
}

func TestHandleGetPage(t *testing.T) {
	mux, store := newTestMux(t)
	require.NoError(t, store.Save(context.Background(), &domain.Page{
		ID: "p1", Title: "First", Content: "hello", Revision: "r1",
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/p1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "First", body["title"])
	assert.Equal(t, "hello", body["content"])
	assert.Equal(t, "r1", body["revision"])
}

func TestHandleGetPageNotFound(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pages/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePostEditSnapshots(t *testing.T) {
	mux, store := newTestMux(t)
	require.NoError(t, store.Save(context.Background(), &domain.Page{
		ID: "p1", Content: "The quick brown fox",
	}))

	body := `{"before":"The quick brown fox","after":"The quick red fox","editor":"alice"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pages/p1/edits", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["saved"])
	assert.Equal(t, float64(0), resp["rejected"])
	assert.NotEmpty(t, resp["revision"])

	page, err := store.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "The quick red fox", page.Content)
}

func TestHandlePostEditMalformedPatch(t *testing.T) {
	mux, store := newTestMux(t)
	require.NoError(t, store.Save(context.Background(), &domain.Page{ID: "p1", Content: "x"}))

	body := `{"patch":"@@ garbage","editor":"alice"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pages/p1/edits", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePostEditInvalidBody(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pages/p1/edits", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearch(t *testing.T) {
	mux, store := newTestMux(t)
	require.NoError(t, store.Save(context.Background(), &domain.Page{
		ID: "p1", Title: "Lore", Content: "the dragon sleeps",
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q=dragon", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var results []domain.PageMatch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].PageID)
}

func TestMarkServiceKind(t *testing.T) {
	markKind = "suggestion"
	kind, err := markServiceKind()
	require.NoError(t, err)
	assert.Equal(t, domain.MarkSuggestion, kind)

	markKind = "highlight"
	_, err = markServiceKind()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	markKind = "suggestion"
}
