package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTagsCountsUsage(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")

	for _, tags := range []string{"#SF #名言", "#SF", "#哲学"} {
		resp := ts.api.Post("/api/v1/memos", map[string]any{
			"bookId":  book.ID,
			"comment": "メモ",
			"tags":    tags,
		})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := ts.api.Get("/api/v1/tags")
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Tags []TagCountResponse `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.NotEmpty(t, out.Tags)
	assert.Equal(t, "#SF", out.Tags[0].Tag)
	assert.Equal(t, 2, out.Tags[0].Count)
}

func TestListTagMemosAcceptsBareName(t *testing.T) {
	ts := setupTestServer(t)
	book := ts.registerBook(t, "ソラリス", "9784150120009")

	resp := ts.api.Post("/api/v1/memos", map[string]any{
		"bookId": book.ID,
		"quote":  "引用",
		"tags":   "#SF",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	// The # prefix may be omitted in the path.
	resp = ts.api.Get("/api/v1/tags/SF/memos")
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Tag   string               `json:"tag"`
		Memos []TaggedMemoResponse `json:"memos"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, "#SF", out.Tag)
	require.Len(t, out.Memos, 1)
	assert.Equal(t, "ソラリス", out.Memos[0].BookTitle)
	assert.False(t, out.Memos[0].BookDeleted)
}

func TestListTagMemosUnknownTagIsEmpty(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/tags/未使用/memos")
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Memos []TaggedMemoResponse `json:"memos"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Empty(t, out.Memos)
}
