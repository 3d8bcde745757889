package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	apperrors "github.com/tsundoku-app/tsundoku-server/internal/errors"
	"github.com/tsundoku-app/tsundoku-server/internal/query"
	"github.com/tsundoku-app/tsundoku-server/internal/settings"
)

// SessionState is the persisted UI state loaded once at startup. Every
// change writes through to the settings store.
type SessionState struct {
	Theme           string `json:"theme"`
	SelectedShelf   string `json:"selectedShelf"`
	CoverBackground string `json:"coverBackground,omitempty"`
}

// SessionService owns the session state and keeps the query engine's
// selection in step with the selected shelf.
type SessionService struct {
	settings *settings.Store
	engine   *query.Engine
	logger   *slog.Logger

	mu    sync.RWMutex
	state SessionState
}

// NewSessionService creates a session service. Call Load before serving.
func NewSessionService(settings *settings.Store, engine *query.Engine, logger *slog.Logger) *SessionService {
	return &SessionService{
		settings: settings,
		engine:   engine,
		logger:   logger,
	}
}

// Load reads the persisted state and primes the query engine with the
// selected shelf.
func (s *SessionService) Load(ctx context.Context) error {
	theme, err := s.settings.Theme(ctx)
	if err != nil {
		return err
	}
	shelf, err := s.settings.SelectedShelf(ctx)
	if err != nil {
		return err
	}
	background, err := s.settings.CoverBackground(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = SessionState{
		Theme:           theme,
		SelectedShelf:   shelf,
		CoverBackground: background,
	}
	s.mu.Unlock()

	if err := s.engine.Select(ctx, query.Selection{ShelfID: shelf}); err != nil {
		return err
	}

	s.logger.Info("session state loaded",
		"theme", theme,
		"selected_shelf", shelf,
	)

	return nil
}

// State returns a snapshot of the current session state.
func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetTheme selects a UI theme and persists it.
func (s *SessionService) SetTheme(ctx context.Context, theme string) error {
	if !slices.Contains(settings.Themes, theme) {
		return apperrors.Validation("unknown theme")
	}

	if err := s.settings.SetTheme(ctx, theme); err != nil {
		return err
	}

	s.mu.Lock()
	s.state.Theme = theme
	s.mu.Unlock()

	return nil
}

// SetSelectedShelf persists the shelf choice and retargets the query
// engine. Status, month, and sort selections reset with the shelf change.
func (s *SessionService) SetSelectedShelf(ctx context.Context, shelfID string) error {
	if err := s.settings.SetSelectedShelf(ctx, shelfID); err != nil {
		return err
	}

	s.mu.Lock()
	s.state.SelectedShelf = shelfID
	s.mu.Unlock()

	return s.engine.Select(ctx, query.Selection{ShelfID: shelfID})
}

// SetCoverBackground persists the cover-flow background choice.
func (s *SessionService) SetCoverBackground(ctx context.Context, value string) error {
	if err := s.settings.SetCoverBackground(ctx, value); err != nil {
		return err
	}

	s.mu.Lock()
	s.state.CoverBackground = value
	s.mu.Unlock()

	return nil
}
