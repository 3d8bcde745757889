package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) searchLibrary(t *testing.T, rawQuery string) (total uint64, hits []SearchHitResponse) {
	t.Helper()

	resp := ts.api.Get("/api/v1/search?" + rawQuery)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out struct {
		Total uint64              `json:"total"`
		Hits  []SearchHitResponse `json:"hits"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out.Total, out.Hits
}

func TestSearchLibraryFindsRegisteredBook(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")

	total, hits := ts.searchLibrary(t, "q=%E3%82%BD%E3%83%A9%E3%83%AA%E3%82%B9")
	require.EqualValues(t, 1, total)
	assert.Equal(t, book.ID, hits[0].ID)
	assert.Equal(t, "ソラリス", hits[0].Title)
}

func TestSearchLibraryByISBN(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")
	ts.registerBook(t, "エデン", "9784150117184")

	total, hits := ts.searchLibrary(t, "q=9784150120009")
	require.EqualValues(t, 1, total)
	assert.Equal(t, book.ID, hits[0].ID)
}

func TestSearchLibraryStatusFilter(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")

	// Move the book to wants, then filter on each status.
	resp := ts.api.Post("/api/v1/books/" + book.ID + "/status")
	require.Equal(t, http.StatusOK, resp.Code)

	total, _ := ts.searchLibrary(t, "status=wants")
	assert.EqualValues(t, 1, total)

	total, _ = ts.searchLibrary(t, "status=read")
	assert.EqualValues(t, 0, total)
}

func TestSearchLibraryExcludesDeletedBooks(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")

	resp := ts.api.Delete("/api/v1/books/" + book.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	total, _ := ts.searchLibrary(t, "q=%E3%82%BD%E3%83%A9%E3%83%AA%E3%82%B9")
	assert.EqualValues(t, 0, total)
}
