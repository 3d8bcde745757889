package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	"github.com/tsundoku-app/tsundoku-server/internal/settings"
)

func (ts *testServer) getSession(t *testing.T) SessionResponse {
	t.Helper()

	resp := ts.api.Get("/api/v1/session")
	require.Equal(t, http.StatusOK, resp.Code)

	var state SessionResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &state))
	return state
}

func TestGetSessionDefaults(t *testing.T) {
	ts := setupTestServer(t)

	state := ts.getSession(t)
	assert.Equal(t, settings.DefaultTheme, state.Theme)
	assert.Equal(t, domain.SmartShelfAll, state.SelectedShelf)
}

func TestSetTheme(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/session/theme", map[string]any{"theme": "light_paper"})
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "light_paper", ts.getSession(t).Theme)
}

func TestSetThemeRejectsUnknown(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/session/theme", map[string]any{"theme": "hot_pink"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	assert.Equal(t, settings.DefaultTheme, ts.getSession(t).Theme)
}

func TestSetSelectedShelfDrivesView(t *testing.T) {
	ts := setupTestServer(t)

	book := ts.registerBook(t, "ソラリス", "9784150120009")
	resp := ts.api.Post("/api/v1/books/" + book.ID + "/status")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Put("/api/v1/session/shelf", map[string]any{"shelfId": domain.SmartShelfWants})
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, domain.SmartShelfWants, ts.getSession(t).SelectedShelf)

	view := ts.getView(t)
	assert.Equal(t, domain.SmartShelfWants, view.Selection.Shelf)
	require.Len(t, view.Books, 1)
	assert.Equal(t, book.ID, view.Books[0].ID)
}

func TestSetCoverBackground(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Put("/api/v1/session/cover-background", map[string]any{"value": "gradient"})
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "gradient", ts.getSession(t).CoverBackground)
}
