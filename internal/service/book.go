// Package service orchestrates domain operations over the store, catalog,
// and settings layers. Handlers stay thin; the rules live here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/tsundoku-app/tsundoku-server/internal/catalog"
	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	apperrors "github.com/tsundoku-app/tsundoku-server/internal/errors"
	"github.com/tsundoku-app/tsundoku-server/internal/id"
	"github.com/tsundoku-app/tsundoku-server/internal/store"
)

// BookService orchestrates book lifecycle operations. Catalog search is the
// only way books enter the library.
type BookService struct {
	store    *store.Store
	catalog  catalog.Searcher
	logger   *slog.Logger
	sequence catalog.Sequence
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, searcher catalog.Searcher, logger *slog.Logger) *BookService {
	return &BookService{
		store:   store,
		catalog: searcher,
		logger:  logger,
	}
}

// CatalogSearchResult carries catalog hits together with the request's
// sequence number so clients can discard responses from superseded searches.
type CatalogSearchResult struct {
	Sequence uint64         `json:"sequence"`
	Books    []catalog.Book `json:"books"`
}

// SearchCatalog looks up candidate books in the external catalog.
func (s *BookService) SearchCatalog(ctx context.Context, query string) (*CatalogSearchResult, error) {
	seq := s.sequence.Next()

	books, err := s.catalog.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	return &CatalogSearchResult{
		Sequence: seq,
		Books:    books,
	}, nil
}

// AddBook registers a catalog result in the library. New books always start
// unread; a non-empty ISBN already in the library is rejected.
func (s *BookService) AddBook(ctx context.Context, candidate catalog.Book) (*domain.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if candidate.Title == "" {
		return nil, domain.ErrEmptyTitle
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	book := &domain.Book{
		ID:           bookID,
		ISBN:         candidate.ISBN,
		Title:        candidate.Title,
		Authors:      candidate.Authors,
		Thumbnail:    candidate.Thumbnail,
		Publisher:    candidate.Publisher,
		Status:       domain.StatusUnread,
		RegisteredAt: time.Now(),
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book registered",
		"book_id", book.ID,
		"title", book.Title,
		"isbn", book.ISBN,
	)

	return book, nil
}

// GetBook retrieves a book by ID.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.store.GetBook(ctx, bookID)
}

// ListBooks returns every book in the library, newest registration first.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.store.ListAllBooks(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].RegisteredAt.After(books[j].RegisteredAt)
	})
	return books, nil
}

// CycleStatus advances a book to the next reading status. Entering read
// stamps today's finished date unless one is already set; leaving read
// clears it.
func (s *BookService) CycleStatus(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	book.CycleStatus(time.Now())

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book status cycled",
		"book_id", book.ID,
		"status", book.Status,
	)

	return book, nil
}

// SetFinishedDate overrides a book's finished date. The date must be
// YYYY-MM-DD; an empty date clears it.
func (s *BookService) SetFinishedDate(ctx context.Context, bookID, date string) (*domain.Book, error) {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, apperrors.Validation("finished date must be YYYY-MM-DD")
		}
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	book.FinishedDate = date

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// DeleteBook removes a book and its memos. Shelf membership entries are left
// dangling; views filter them out.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return err
	}

	s.logger.Info("book deleted", "book_id", bookID)
	return nil
}
