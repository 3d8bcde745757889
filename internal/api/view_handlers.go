package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	apperrors "github.com/tsundoku-app/tsundoku-server/internal/errors"
	"github.com/tsundoku-app/tsundoku-server/internal/query"
)

func (s *Server) registerViewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getView",
		Method:      http.MethodGet,
		Path:        "/api/v1/view",
		Summary:     "Get current view",
		Description: "Returns the current selection and the books it resolves to",
		Tags:        []string{"View"},
	}, s.handleGetView)

	huma.Register(s.api, huma.Operation{
		OperationID: "selectView",
		Method:      http.MethodPut,
		Path:        "/api/v1/view",
		Summary:     "Change view selection",
		Description: "Updates the shelf, status, month, and sort selection and recomputes the view",
		Tags:        []string{"View"},
	}, s.handleSelectView)

	huma.Register(s.api, huma.Operation{
		OperationID: "listViewMonths",
		Method:      http.MethodGet,
		Path:        "/api/v1/view/months",
		Summary:     "List finished months",
		Description: "Returns the distinct months in which books were finished, newest first",
		Tags:        []string{"View"},
	}, s.handleListViewMonths)
}

// === DTOs ===

// SelectionResponse describes the active view selection.
type SelectionResponse struct {
	Shelf  string `json:"shelf,omitempty" doc:"Selected shelf ID"`
	Status string `json:"status,omitempty" doc:"Status filter"`
	Month  string `json:"month,omitempty" doc:"Finished-month filter, YYYY-MM"`
	Sort   string `json:"sort,omitempty" doc:"Sort order"`
}

// ViewOutput wraps the resolved view for Huma.
type ViewOutput struct {
	Body struct {
		Selection SelectionResponse `json:"selection" doc:"The active selection"`
		Books     []BookResponse    `json:"books" doc:"Books the selection resolves to"`
		Loaded    bool              `json:"loaded" doc:"False until the first recompute has run"`
	}
}

// SelectViewRequest is the request body for changing the selection.
type SelectViewRequest struct {
	Shelf  string `json:"shelf,omitempty" doc:"Shelf ID, smart or user"`
	Status string `json:"status,omitempty" doc:"Status filter"`
	Month  string `json:"month,omitempty" doc:"Finished-month filter, YYYY-MM"`
	Sort   string `json:"sort,omitempty" doc:"Sort order"`
}

// SelectViewInput wraps the selection request for Huma.
type SelectViewInput struct {
	Body SelectViewRequest
}

// ListViewMonthsOutput wraps the month listing for Huma.
type ListViewMonthsOutput struct {
	Body struct {
		Months []string `json:"months" doc:"Distinct finished months, newest first"`
	}
}

// === Handlers ===

func (s *Server) viewOutput() *ViewOutput {
	sel := s.engine.Selection()
	books, loaded := s.engine.Books()

	out := &ViewOutput{}
	out.Body.Selection = SelectionResponse{
		Shelf:  sel.ShelfID,
		Status: string(sel.Status),
		Month:  sel.Month,
		Sort:   string(sel.Sort),
	}
	out.Body.Books = bookResponses(books)
	out.Body.Loaded = loaded
	return out
}

func (s *Server) handleGetView(ctx context.Context, _ *struct{}) (*ViewOutput, error) {
	if _, loaded := s.engine.Books(); !loaded {
		if err := s.engine.Recompute(ctx); err != nil {
			return nil, err
		}
	}
	return s.viewOutput(), nil
}

func (s *Server) handleSelectView(ctx context.Context, input *SelectViewInput) (*ViewOutput, error) {
	if input.Body.Status != "" && !domain.Status(input.Body.Status).Valid() {
		return nil, apperrors.Validationf("unknown status %q", input.Body.Status)
	}
	if input.Body.Sort != "" && !query.Sort(input.Body.Sort).Valid() {
		return nil, apperrors.Validationf("unknown sort %q", input.Body.Sort)
	}
	if input.Body.Month != "" {
		if _, err := time.Parse("2006-01", input.Body.Month); err != nil {
			return nil, apperrors.Validation("month must be YYYY-MM")
		}
	}

	err := s.engine.Select(ctx, query.Selection{
		ShelfID: input.Body.Shelf,
		Status:  domain.Status(input.Body.Status),
		Month:   input.Body.Month,
		Sort:    query.Sort(input.Body.Sort),
	})
	if err != nil {
		return nil, err
	}
	return s.viewOutput(), nil
}

func (s *Server) handleListViewMonths(ctx context.Context, _ *struct{}) (*ListViewMonthsOutput, error) {
	months, err := s.engine.AvailableMonths(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListViewMonthsOutput{}
	out.Body.Months = months
	return out, nil
}
