package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsundoku-app/tsundoku-server/internal/catalog"
	apperrors "github.com/tsundoku-app/tsundoku-server/internal/errors"
)

func TestSearchCatalog(t *testing.T) {
	ts := setupTestServer(t)
	ts.searcher.books = []catalog.Book{
		{ISBN: "9784150120009", Title: "ソラリス", Authors: []string{"スタニスワフ・レム"}, Publisher: "早川書房"},
	}

	resp := ts.api.Get("/api/v1/catalog/search?q=" + "%E3%82%BD%E3%83%A9%E3%83%AA%E3%82%B9")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out struct {
		Sequence uint64                `json:"sequence"`
		Books    []CatalogBookResponse `json:"books"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.Len(t, out.Books, 1)
	assert.Equal(t, "ソラリス", out.Books[0].Title)
	assert.Positive(t, out.Sequence)
}

func TestSearchCatalogSequenceIncreases(t *testing.T) {
	ts := setupTestServer(t)

	first := ts.api.Get("/api/v1/catalog/search?q=solaris")
	second := ts.api.Get("/api/v1/catalog/search?q=eden")
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var a, b struct {
		Sequence uint64 `json:"sequence"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Greater(t, b.Sequence, a.Sequence)
}

func TestSearchCatalogRequiresQuery(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/catalog/search")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestSearchCatalogUpstreamFailure(t *testing.T) {
	ts := setupTestServer(t)
	ts.searcher.err = apperrors.Unavailable("catalog request failed")

	resp := ts.api.Get("/api/v1/catalog/search?q=solaris")
	assert.Equal(t, http.StatusBadGateway, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "UNAVAILABLE", apiErr.Code)
}
