package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tsundoku-app/tsundoku-server/internal/catalog"
	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns every registered book, newest first",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "registerBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books",
		Summary:     "Register book",
		Description: "Registers a catalog candidate as an owned book",
		Tags:        []string{"Books"},
	}, s.handleRegisterBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "cycleBookStatus",
		Method:      http.MethodPost,
		Path:        "/api/v1/books/{id}/status",
		Summary:     "Cycle book status",
		Description: "Advances the book one step through the reading status cycle",
		Tags:        []string{"Books"},
	}, s.handleCycleBookStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "setFinishedDate",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}/finished-date",
		Summary:     "Set finished date",
		Description: "Sets or clears the date the book was finished",
		Tags:        []string{"Books"},
	}, s.handleSetFinishedDate)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}",
		Summary:     "Delete book",
		Description: "Deletes a book and its memos",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookMemos",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/memos",
		Summary:     "List book memos",
		Description: "Returns the memos for a book, newest first",
		Tags:        []string{"Books", "Memos"},
	}, s.handleListBookMemos)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookShelves",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/shelves",
		Summary:     "List book shelves",
		Description: "Returns the user shelves that contain this book",
		Tags:        []string{"Books", "Shelves"},
	}, s.handleListBookShelves)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID           string    `json:"id" doc:"Book ID"`
	ISBN         string    `json:"isbn,omitempty" doc:"ISBN-10 or ISBN-13"`
	Title        string    `json:"title" doc:"Book title"`
	Authors      []string  `json:"authors,omitempty" doc:"Author names"`
	Publisher    string    `json:"publisher,omitempty" doc:"Publisher name"`
	Thumbnail    string    `json:"thumbnail,omitempty" doc:"Cover image URL"`
	Status       string    `json:"status" doc:"Reading status"`
	FinishedDate string    `json:"finishedDate,omitempty" doc:"Date finished, YYYY-MM-DD"`
	RegisteredAt time.Time `json:"registeredAt" doc:"Registration time"`
}

func bookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:           b.ID,
		ISBN:         b.ISBN,
		Title:        b.Title,
		Authors:      b.Authors,
		Publisher:    b.Publisher,
		Thumbnail:    b.Thumbnail,
		Status:       string(b.Status),
		FinishedDate: b.FinishedDate,
		RegisteredAt: b.RegisteredAt,
	}
}

func bookResponses(books []*domain.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, b := range books {
		out[i] = bookResponse(b)
	}
	return out
}

// ListBooksOutput wraps the book list for Huma.
type ListBooksOutput struct {
	Body struct {
		Books []BookResponse `json:"books" doc:"Registered books"`
	}
}

// RegisterBookRequest is the request body for registering a book.
type RegisterBookRequest struct {
	ISBN      string   `json:"isbn,omitempty" validate:"omitempty,max=17" doc:"ISBN-10 or ISBN-13"`
	Title     string   `json:"title" validate:"required,max=500" doc:"Book title"`
	Authors   []string `json:"authors,omitempty" doc:"Author names"`
	Publisher string   `json:"publisher,omitempty" validate:"omitempty,max=200" doc:"Publisher name"`
	Thumbnail string   `json:"thumbnail,omitempty" validate:"omitempty,url" doc:"Cover image URL"`
}

// RegisterBookInput wraps the register book request for Huma.
type RegisterBookInput struct {
	Body RegisterBookRequest
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// GetBookInput contains parameters for getting a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// SetFinishedDateRequest is the request body for setting the finished date.
type SetFinishedDateRequest struct {
	FinishedDate string `json:"finishedDate" validate:"dateymd" doc:"Date finished, YYYY-MM-DD; empty clears it"`
}

// SetFinishedDateInput wraps the finished date request for Huma.
type SetFinishedDateInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body SetFinishedDateRequest
}

// DeleteBookInput contains parameters for deleting a book.
type DeleteBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// MemoResponse contains memo data in API responses.
type MemoResponse struct {
	ID        string    `json:"id" doc:"Memo ID"`
	BookID    string    `json:"bookId" doc:"Owning book ID"`
	Page      int       `json:"page,omitempty" doc:"Page number"`
	Quote     string    `json:"quote,omitempty" doc:"Quoted passage"`
	Comment   string    `json:"comment,omitempty" doc:"Reader's comment"`
	Tags      []string  `json:"tags,omitempty" doc:"Normalized tags"`
	CreatedAt time.Time `json:"createdAt" doc:"Creation time"`
}

func memoResponse(m *domain.Memo) MemoResponse {
	return MemoResponse{
		ID:        m.ID,
		BookID:    m.BookID,
		Page:      m.Page,
		Quote:     m.Quote,
		Comment:   m.Comment,
		Tags:      m.Tags,
		CreatedAt: m.CreatedAt,
	}
}

// ListBookMemosOutput wraps the memo list for Huma.
type ListBookMemosOutput struct {
	Body struct {
		Memos []MemoResponse `json:"memos" doc:"Memos for the book, newest first"`
	}
}

// ListBookShelvesOutput wraps the shelf list for Huma.
type ListBookShelvesOutput struct {
	Body struct {
		Shelves []ShelfResponse `json:"shelves" doc:"User shelves containing the book"`
	}
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books, err := s.services.Book.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	out := &ListBooksOutput{}
	out.Body.Books = bookResponses(books)
	return out, nil
}

func (s *Server) handleRegisterBook(ctx context.Context, input *RegisterBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	book, err := s.services.Book.AddBook(ctx, catalog.Book{
		ISBN:      input.Body.ISBN,
		Title:     input.Body.Title,
		Authors:   input.Body.Authors,
		Publisher: input.Body.Publisher,
		Thumbnail: input.Body.Thumbnail,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: bookResponse(book)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.services.Book.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: bookResponse(book)}, nil
}

func (s *Server) handleCycleBookStatus(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	book, err := s.services.Book.CycleStatus(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: bookResponse(book)}, nil
}

func (s *Server) handleSetFinishedDate(ctx context.Context, input *SetFinishedDateInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	book, err := s.services.Book.SetFinishedDate(ctx, input.ID, input.Body.FinishedDate)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: bookResponse(book)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*MessageOutput, error) {
	if err := s.services.Book.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Book deleted"}}, nil
}

func (s *Server) handleListBookMemos(ctx context.Context, input *GetBookInput) (*ListBookMemosOutput, error) {
	memos, err := s.services.Memo.ListMemosForBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := &ListBookMemosOutput{}
	out.Body.Memos = make([]MemoResponse, len(memos))
	for i, m := range memos {
		out.Body.Memos[i] = memoResponse(m)
	}
	return out, nil
}

func (s *Server) handleListBookShelves(ctx context.Context, input *GetBookInput) (*ListBookShelvesOutput, error) {
	shelves, err := s.services.Shelf.ShelvesForBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := &ListBookShelvesOutput{}
	out.Body.Shelves = make([]ShelfResponse, len(shelves))
	for i, sh := range shelves {
		out.Body.Shelves[i] = shelfResponse(sh)
	}
	return out, nil
}
