package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

func (s *Server) registerShelfRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listShelves",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves",
		Summary:     "List shelves",
		Description: "Returns smart shelves followed by user shelves, with live book counts",
		Tags:        []string{"Shelves"},
	}, s.handleListShelves)

	huma.Register(s.api, huma.Operation{
		OperationID: "createShelf",
		Method:      http.MethodPost,
		Path:        "/api/v1/shelves",
		Summary:     "Create shelf",
		Description: "Creates a new user shelf",
		Tags:        []string{"Shelves"},
	}, s.handleCreateShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "getShelf",
		Method:      http.MethodGet,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Get shelf",
		Description: "Returns a user shelf by ID",
		Tags:        []string{"Shelves"},
	}, s.handleGetShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateShelf",
		Method:      http.MethodPatch,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Update shelf",
		Description: "Updates a user shelf's title and description; smart shelves are left untouched",
		Tags:        []string{"Shelves"},
	}, s.handleUpdateShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteShelf",
		Method:      http.MethodDelete,
		Path:        "/api/v1/shelves/{id}",
		Summary:     "Delete shelf",
		Description: "Deletes a user shelf; books on it are not deleted",
		Tags:        []string{"Shelves"},
	}, s.handleDeleteShelf)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleShelfBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/shelves/{id}/toggle",
		Summary:     "Toggle book on shelf",
		Description: "Adds the book to the shelf if absent, removes it if present",
		Tags:        []string{"Shelves"},
	}, s.handleToggleShelfBook)
}

// === DTOs ===

// ShelfResponse contains user shelf data in API responses.
type ShelfResponse struct {
	ID          string    `json:"id" doc:"Shelf ID"`
	Title       string    `json:"title" doc:"Shelf title"`
	Description string    `json:"description,omitempty" doc:"Optional shelf description"`
	BookIDs     []string  `json:"bookIds" doc:"Member book IDs, newest first"`
	CreatedAt   time.Time `json:"createdAt" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updatedAt" doc:"Last update time"`
}

func shelfResponse(sh *domain.Shelf) ShelfResponse {
	return ShelfResponse{
		ID:          sh.ID,
		Title:       sh.Title,
		Description: sh.Description,
		BookIDs:     sh.BookIDs,
		CreatedAt:   sh.CreatedAt,
		UpdatedAt:   sh.UpdatedAt,
	}
}

// ShelfViewResponse is one entry in the shelf listing.
type ShelfViewResponse struct {
	ID        string `json:"id" doc:"Shelf ID"`
	Title     string `json:"title" doc:"Shelf title"`
	Smart     bool   `json:"smart" doc:"True for built-in status shelves"`
	BookCount int    `json:"bookCount" doc:"Number of books on the shelf"`
}

// ListShelvesOutput wraps the shelf listing for Huma.
type ListShelvesOutput struct {
	Body struct {
		Shelves []ShelfViewResponse `json:"shelves" doc:"Smart shelves followed by user shelves"`
	}
}

// CreateShelfRequest is the request body for creating a shelf.
type CreateShelfRequest struct {
	Title       string `json:"title" validate:"required,max=100" doc:"Shelf title"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500" doc:"Optional shelf description"`
}

// CreateShelfInput wraps the create shelf request for Huma.
type CreateShelfInput struct {
	Body CreateShelfRequest
}

// ShelfOutput wraps a single shelf response for Huma.
type ShelfOutput struct {
	Body ShelfResponse
}

// GetShelfInput contains parameters for getting a shelf.
type GetShelfInput struct {
	ID string `path:"id" doc:"Shelf ID"`
}

// UpdateShelfRequest is the request body for updating a shelf.
type UpdateShelfRequest struct {
	Title       string `json:"title" validate:"required,max=100" doc:"New shelf title"`
	Description string `json:"description,omitempty" validate:"omitempty,max=500" doc:"New shelf description"`
}

// UpdateShelfInput wraps the update request for Huma.
type UpdateShelfInput struct {
	ID   string `path:"id" doc:"Shelf ID"`
	Body UpdateShelfRequest
}

// ToggleShelfBookRequest is the request body for toggling shelf membership.
type ToggleShelfBookRequest struct {
	BookID string `json:"bookId" validate:"required" doc:"Book ID to toggle"`
}

// ToggleShelfBookInput wraps the toggle request for Huma.
type ToggleShelfBookInput struct {
	ID   string `path:"id" doc:"Shelf ID"`
	Body ToggleShelfBookRequest
}

// ToggleShelfBookOutput reports the membership state after the toggle.
type ToggleShelfBookOutput struct {
	Body struct {
		Shelf   *ShelfResponse `json:"shelf,omitempty" doc:"Shelf after the toggle; absent for smart shelves"`
		OnShelf bool           `json:"onShelf" doc:"True when the book is on the shelf after the call"`
	}
}

// === Handlers ===

func (s *Server) handleListShelves(ctx context.Context, _ *struct{}) (*ListShelvesOutput, error) {
	views, err := s.services.Shelf.ListShelves(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListShelvesOutput{}
	out.Body.Shelves = make([]ShelfViewResponse, len(views))
	for i, v := range views {
		out.Body.Shelves[i] = ShelfViewResponse{
			ID:        v.ID,
			Title:     v.Title,
			Smart:     v.Smart,
			BookCount: v.BookCount,
		}
	}
	return out, nil
}

func (s *Server) handleCreateShelf(ctx context.Context, input *CreateShelfInput) (*ShelfOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.CreateShelf(ctx, input.Body.Title, input.Body.Description)
	if err != nil {
		return nil, err
	}
	return &ShelfOutput{Body: shelfResponse(shelf)}, nil
}

func (s *Server) handleGetShelf(ctx context.Context, input *GetShelfInput) (*ShelfOutput, error) {
	shelf, err := s.services.Shelf.GetShelf(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ShelfOutput{Body: shelfResponse(shelf)}, nil
}

func (s *Server) handleUpdateShelf(ctx context.Context, input *UpdateShelfInput) (*ShelfOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	shelf, err := s.services.Shelf.UpdateShelf(ctx, input.ID, input.Body.Title, input.Body.Description)
	if err != nil {
		return nil, err
	}
	if shelf == nil {
		// Smart shelf: the update is silently refused. Echo the built-in
		// definition so clients see an unchanged shelf.
		def, _ := domain.SmartShelfByID(input.ID)
		return &ShelfOutput{Body: ShelfResponse{ID: input.ID, Title: def.Title}}, nil
	}
	return &ShelfOutput{Body: shelfResponse(shelf)}, nil
}

func (s *Server) handleDeleteShelf(ctx context.Context, input *GetShelfInput) (*MessageOutput, error) {
	if err := s.services.Shelf.DeleteShelf(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Shelf deleted"}}, nil
}

func (s *Server) handleToggleShelfBook(ctx context.Context, input *ToggleShelfBookInput) (*ToggleShelfBookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	shelf, onShelf, err := s.services.Shelf.ToggleBook(ctx, input.ID, input.Body.BookID)
	if err != nil {
		return nil, err
	}

	out := &ToggleShelfBookOutput{}
	out.Body.OnShelf = onShelf
	if shelf != nil {
		resp := shelfResponse(shelf)
		out.Body.Shelf = &resp
	}
	return out, nil
}
