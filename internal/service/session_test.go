package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	"github.com/tsundoku-app/tsundoku-server/internal/query"
	"github.com/tsundoku-app/tsundoku-server/internal/settings"
)

func newSessionService(t *testing.T) (*SessionService, *query.Engine, *settings.Store) {
	t.Helper()

	st := setupTestStore(t)
	engine := query.NewEngine(st, query.NewSorter("ja"), testLogger())

	settingsStore, err := settings.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = settingsStore.Close() })

	return NewSessionService(settingsStore, engine, testLogger()), engine, settingsStore
}

func TestSessionLoad_Defaults(t *testing.T) {
	svc, engine, _ := newSessionService(t)

	require.NoError(t, svc.Load(context.Background()))

	state := svc.State()
	assert.Equal(t, settings.DefaultTheme, state.Theme)
	assert.Equal(t, domain.SmartShelfAll, state.SelectedShelf)
	assert.Empty(t, state.CoverBackground)

	// Load primes the engine: the view is computed, not pending.
	_, loaded := engine.Books()
	assert.True(t, loaded)
	assert.Equal(t, domain.SmartShelfAll, engine.Selection().ShelfID)
}

func TestSetSelectedShelf_DrivesEngineAndPersists(t *testing.T) {
	svc, engine, settingsStore := newSessionService(t)
	ctx := context.Background()
	require.NoError(t, svc.Load(ctx))

	require.NoError(t, svc.SetSelectedShelf(ctx, domain.SmartShelfReading))

	assert.Equal(t, domain.SmartShelfReading, svc.State().SelectedShelf)
	assert.Equal(t, domain.SmartShelfReading, engine.Selection().ShelfID)

	persisted, err := settingsStore.SelectedShelf(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SmartShelfReading, persisted)
}

func TestSetTheme_WriteThrough(t *testing.T) {
	svc, _, settingsStore := newSessionService(t)
	ctx := context.Background()
	require.NoError(t, svc.Load(ctx))

	require.NoError(t, svc.SetTheme(ctx, "light_paper"))
	assert.Equal(t, "light_paper", svc.State().Theme)

	persisted, err := settingsStore.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light_paper", persisted)
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	svc, _, _ := newSessionService(t)
	ctx := context.Background()
	require.NoError(t, svc.Load(ctx))

	err := svc.SetTheme(ctx, "neon_vaporwave")
	assert.Error(t, err)
	assert.Equal(t, settings.DefaultTheme, svc.State().Theme)
}

func TestSessionState_SurvivesRestart(t *testing.T) {
	st := setupTestStore(t)
	path := filepath.Join(t.TempDir(), "settings.db")
	ctx := context.Background()

	settingsStore, err := settings.Open(path)
	require.NoError(t, err)
	engine := query.NewEngine(st, query.NewSorter("ja"), testLogger())
	svc := NewSessionService(settingsStore, engine, testLogger())
	require.NoError(t, svc.Load(ctx))
	require.NoError(t, svc.SetSelectedShelf(ctx, domain.SmartShelfWants))
	require.NoError(t, settingsStore.Close())

	reopened, err := settings.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	svc2 := NewSessionService(reopened, engine, testLogger())
	require.NoError(t, svc2.Load(ctx))
	assert.Equal(t, domain.SmartShelfWants, svc2.State().SelectedShelf)
}
