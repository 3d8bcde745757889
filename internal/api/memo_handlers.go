package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tsundoku-app/tsundoku-server/internal/service"
)

func (s *Server) registerMemoRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createMemo",
		Method:      http.MethodPost,
		Path:        "/api/v1/memos",
		Summary:     "Create memo",
		Description: "Creates a memo on a book; tags are parsed from free text",
		Tags:        []string{"Memos"},
	}, s.handleCreateMemo)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMemo",
		Method:      http.MethodGet,
		Path:        "/api/v1/memos/{id}",
		Summary:     "Get memo",
		Description: "Returns a memo by ID",
		Tags:        []string{"Memos"},
	}, s.handleGetMemo)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteMemo",
		Method:      http.MethodDelete,
		Path:        "/api/v1/memos/{id}",
		Summary:     "Delete memo",
		Description: "Deletes a memo",
		Tags:        []string{"Memos"},
	}, s.handleDeleteMemo)
}

// === DTOs ===

// CreateMemoRequest is the request body for creating a memo.
type CreateMemoRequest struct {
	BookID  string `json:"bookId" validate:"required" doc:"Owning book ID"`
	Page    int    `json:"page,omitempty" validate:"gte=0" doc:"Page number"`
	Quote   string `json:"quote,omitempty" validate:"max=4096" doc:"Quoted passage"`
	Comment string `json:"comment,omitempty" validate:"max=4096" doc:"Reader's comment"`
	Tags    string `json:"tags,omitempty" validate:"max=500" doc:"Free-text tag input, e.g. \"#SF #名言\""`
}

// CreateMemoInput wraps the create memo request for Huma.
type CreateMemoInput struct {
	Body CreateMemoRequest
}

// MemoOutput wraps a single memo response for Huma.
type MemoOutput struct {
	Body MemoResponse
}

// GetMemoInput contains parameters for getting a memo.
type GetMemoInput struct {
	ID string `path:"id" doc:"Memo ID"`
}

// === Handlers ===

func (s *Server) handleCreateMemo(ctx context.Context, input *CreateMemoInput) (*MemoOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	memo, err := s.services.Memo.CreateMemo(ctx, service.CreateMemoInput{
		BookID:   input.Body.BookID,
		Page:     input.Body.Page,
		Quote:    input.Body.Quote,
		Comment:  input.Body.Comment,
		TagInput: input.Body.Tags,
	})
	if err != nil {
		return nil, err
	}
	return &MemoOutput{Body: memoResponse(memo)}, nil
}

func (s *Server) handleGetMemo(ctx context.Context, input *GetMemoInput) (*MemoOutput, error) {
	memo, err := s.services.Memo.GetMemo(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &MemoOutput{Body: memoResponse(memo)}, nil
}

func (s *Server) handleDeleteMemo(ctx context.Context, input *GetMemoInput) (*MessageOutput, error) {
	if err := s.services.Memo.DeleteMemo(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Memo deleted"}}, nil
}
