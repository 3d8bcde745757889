package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndGetBook(t *testing.T) {
	ts := setupTestServer(t)

	book := ts.registerBook(t, "ソラリス", "9784150120009")
	assert.NotEmpty(t, book.ID)
	assert.Equal(t, "unread", book.Status)
	assert.Equal(t, "9784150120009", book.ISBN)

	resp := ts.api.Get("/api/v1/books/" + book.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	var got BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, book.ID, got.ID)
	assert.Equal(t, "ソラリス", got.Title)
}

func TestRegisterBookRequiresTitle(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"isbn": "9784150120009",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestRegisterBookDuplicateISBNConflicts(t *testing.T) {
	ts := setupTestServer(t)

	ts.registerBook(t, "ソラリス", "9784150120009")

	resp := ts.api.Post("/api/v1/books", map[string]any{
		"title": "ソラリス 新訳版",
		"isbn":  "9784150120009",
	})
	assert.Equal(t, http.StatusConflict, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "ALREADY_EXISTS", apiErr.Code)
}

func TestListBooks(t *testing.T) {
	ts := setupTestServer(t)

	ts.registerBook(t, "ソラリス", "9784150120009")
	ts.registerBook(t, "エデン", "9784150117184")

	resp := ts.api.Get("/api/v1/books")
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Books []BookResponse `json:"books"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.Len(t, out.Books, 2)
	assert.Equal(t, "エデン", out.Books[0].Title, "latest registration listed first")
}

func TestCycleBookStatus(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")

	want := []string{"wants", "reading", "read", "unread"}
	for _, expected := range want {
		resp := ts.api.Post("/api/v1/books/" + book.ID + "/status")
		require.Equal(t, http.StatusOK, resp.Code)

		var got BookResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
		assert.Equal(t, expected, got.Status)

		if expected == "read" {
			assert.NotEmpty(t, got.FinishedDate, "entering read should stamp the finished date")
		}
		if expected == "unread" {
			assert.Empty(t, got.FinishedDate, "leaving read should clear the finished date")
		}
	}
}

func TestSetFinishedDate(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")

	resp := ts.api.Put("/api/v1/books/"+book.ID+"/finished-date", map[string]any{
		"finishedDate": "2026-08-15",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var got BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "2026-08-15", got.FinishedDate)

	// Empty clears it.
	resp = ts.api.Put("/api/v1/books/"+book.ID+"/finished-date", map[string]any{
		"finishedDate": "",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	var cleared BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &cleared))
	assert.Empty(t, cleared.FinishedDate)
}

func TestSetFinishedDateRejectsBadFormat(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")

	resp := ts.api.Put("/api/v1/books/"+book.ID+"/finished-date", map[string]any{
		"finishedDate": "15/08/2026",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteBook(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")

	resp := ts.api.Delete("/api/v1/books/" + book.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/books/" + book.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListBookMemos(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")

	resp := ts.api.Post("/api/v1/memos", map[string]any{
		"bookId":  book.ID,
		"page":    42,
		"comment": "思考する海",
		"tags":    "#SF",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/books/" + book.ID + "/memos")
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Memos []MemoResponse `json:"memos"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.Len(t, out.Memos, 1)
	assert.Equal(t, []string{"#SF"}, out.Memos[0].Tags)
}
