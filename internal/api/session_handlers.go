package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tsundoku-app/tsundoku-server/internal/service"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/session",
		Summary:     "Get session state",
		Description: "Returns the persisted UI state: theme, selected shelf, cover background",
		Tags:        []string{"Session"},
	}, s.handleGetSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "setTheme",
		Method:      http.MethodPut,
		Path:        "/api/v1/session/theme",
		Summary:     "Set theme",
		Description: "Changes the UI theme",
		Tags:        []string{"Session"},
	}, s.handleSetTheme)

	huma.Register(s.api, huma.Operation{
		OperationID: "setSelectedShelf",
		Method:      http.MethodPut,
		Path:        "/api/v1/session/shelf",
		Summary:     "Set selected shelf",
		Description: "Changes the selected shelf and retargets the book view",
		Tags:        []string{"Session"},
	}, s.handleSetSelectedShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "setCoverBackground",
		Method:      http.MethodPut,
		Path:        "/api/v1/session/cover-background",
		Summary:     "Set cover background",
		Description: "Changes the cover background setting",
		Tags:        []string{"Session"},
	}, s.handleSetCoverBackground)
}

// === DTOs ===

// SessionResponse contains the persisted UI state.
type SessionResponse struct {
	Theme           string `json:"theme" doc:"Active theme"`
	SelectedShelf   string `json:"selectedShelf" doc:"ID of the selected shelf"`
	CoverBackground string `json:"coverBackground,omitempty" doc:"Cover background setting"`
}

// SessionOutput wraps the session state for Huma.
type SessionOutput struct {
	Body SessionResponse
}

// SetThemeRequest is the request body for changing the theme.
type SetThemeRequest struct {
	Theme string `json:"theme" validate:"required" doc:"Theme name"`
}

// SetThemeInput wraps the theme request for Huma.
type SetThemeInput struct {
	Body SetThemeRequest
}

// SetSelectedShelfRequest is the request body for changing the selected shelf.
type SetSelectedShelfRequest struct {
	ShelfID string `json:"shelfId" validate:"required" doc:"Shelf ID, smart or user"`
}

// SetSelectedShelfInput wraps the shelf request for Huma.
type SetSelectedShelfInput struct {
	Body SetSelectedShelfRequest
}

// SetCoverBackgroundRequest is the request body for changing the cover background.
type SetCoverBackgroundRequest struct {
	Value string `json:"value" validate:"max=200" doc:"Cover background setting"`
}

// SetCoverBackgroundInput wraps the cover background request for Huma.
type SetCoverBackgroundInput struct {
	Body SetCoverBackgroundRequest
}

func sessionOutput(state service.SessionState) *SessionOutput {
	return &SessionOutput{Body: SessionResponse{
		Theme:           state.Theme,
		SelectedShelf:   state.SelectedShelf,
		CoverBackground: state.CoverBackground,
	}}
}

// === Handlers ===

func (s *Server) handleGetSession(_ context.Context, _ *struct{}) (*SessionOutput, error) {
	return sessionOutput(s.services.Session.State()), nil
}

func (s *Server) handleSetTheme(ctx context.Context, input *SetThemeInput) (*SessionOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}
	if err := s.services.Session.SetTheme(ctx, input.Body.Theme); err != nil {
		return nil, err
	}
	return sessionOutput(s.services.Session.State()), nil
}

func (s *Server) handleSetSelectedShelf(ctx context.Context, input *SetSelectedShelfInput) (*SessionOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}
	if err := s.services.Session.SetSelectedShelf(ctx, input.Body.ShelfID); err != nil {
		return nil, err
	}
	return sessionOutput(s.services.Session.State()), nil
}

func (s *Server) handleSetCoverBackground(ctx context.Context, input *SetCoverBackgroundInput) (*SessionOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}
	if err := s.services.Session.SetCoverBackground(ctx, input.Body.Value); err != nil {
		return nil, err
	}
	return sessionOutput(s.services.Session.State()), nil
}
