package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	"github.com/tsundoku-app/tsundoku-server/internal/id"
	"github.com/tsundoku-app/tsundoku-server/internal/store"
)

// ShelfService orchestrates shelf operations. Smart shelves are virtual:
// they are listed alongside stored shelves but silently refuse mutation.
type ShelfService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewShelfService creates a new shelf service.
func NewShelfService(store *store.Store, logger *slog.Logger) *ShelfService {
	return &ShelfService{
		store:  store,
		logger: logger,
	}
}

// ShelfView is a shelf as displayed in the shelf list: smart or stored,
// with its visible book count.
type ShelfView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Smart     bool   `json:"smart"`
	BookCount int    `json:"bookCount"`
}

// ListShelves returns the smart shelves followed by stored shelves. Smart
// counts come from the status index; stored counts intersect bookIds with
// books that still exist, so dangling references are not counted (and never
// cleaned up).
func (s *ShelfService) ListShelves(ctx context.Context) ([]ShelfView, error) {
	counts, err := s.store.CountBooksByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	total := 0
	for _, n := range counts {
		total += n
	}

	views := make([]ShelfView, 0, len(domain.SmartShelves))
	for _, def := range domain.SmartShelves {
		count := total
		if def.Status != "" {
			count = counts[def.Status]
		}
		views = append(views, ShelfView{
			ID:        def.ID,
			Title:     def.Title,
			Smart:     true,
			BookCount: count,
		})
	}

	shelves, err := s.store.ListAllShelves(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}

	for _, shelf := range shelves {
		count := 0
		for _, bookID := range shelf.BookIDs {
			exists, err := s.store.BookExists(ctx, bookID)
			if err != nil {
				return nil, fmt.Errorf("check book %s: %w", bookID, err)
			}
			if exists {
				count++
			}
		}
		views = append(views, ShelfView{
			ID:        shelf.ID,
			Title:     shelf.Title,
			BookCount: count,
		})
	}

	return views, nil
}

// GetShelf retrieves a stored shelf by ID.
func (s *ShelfService) GetShelf(ctx context.Context, shelfID string) (*domain.Shelf, error) {
	return s.store.GetShelf(ctx, shelfID)
}

// CreateShelf creates a new custom shelf.
func (s *ShelfService) CreateShelf(ctx context.Context, title, description string) (*domain.Shelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, domain.ErrEmptyShelfTitle
	}

	shelfID, err := id.Generate(id.PrefixShelf)
	if err != nil {
		return nil, fmt.Errorf("generate shelf ID: %w", err)
	}

	now := time.Now()
	shelf := &domain.Shelf{
		ID:          shelfID,
		Title:       title,
		Description: description,
		BookIDs:     []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateShelf(ctx, shelf); err != nil {
		return nil, err
	}

	s.logger.Info("shelf created",
		"shelf_id", shelfID,
		"title", title,
	)

	return shelf, nil
}

// UpdateShelf changes a stored shelf's title and description. Smart shelves
// are silently left alone.
func (s *ShelfService) UpdateShelf(ctx context.Context, shelfID, title, description string) (*domain.Shelf, error) {
	if domain.IsSmartShelf(shelfID) {
		return nil, nil
	}
	if title == "" {
		return nil, domain.ErrEmptyShelfTitle
	}

	shelf, err := s.store.GetShelf(ctx, shelfID)
	if err != nil {
		return nil, err
	}

	shelf.Title = title
	shelf.Description = description
	shelf.UpdatedAt = time.Now()

	if err := s.store.UpdateShelf(ctx, shelf); err != nil {
		return nil, err
	}

	return shelf, nil
}

// DeleteShelf removes a stored shelf. Books stay in the library. Smart
// shelves are silently left alone.
func (s *ShelfService) DeleteShelf(ctx context.Context, shelfID string) error {
	if domain.IsSmartShelf(shelfID) {
		return nil
	}

	if err := s.store.DeleteShelf(ctx, shelfID); err != nil {
		return err
	}

	s.logger.Info("shelf deleted", "shelf_id", shelfID)
	return nil
}

// ToggleBook adds the book to the shelf if absent, removes it if present,
// and reports whether the book ended up on the shelf. Smart shelves are
// silently left alone.
func (s *ShelfService) ToggleBook(ctx context.Context, shelfID, bookID string) (*domain.Shelf, bool, error) {
	if domain.IsSmartShelf(shelfID) {
		return nil, false, nil
	}

	shelf, err := s.store.GetShelf(ctx, shelfID)
	if err != nil {
		return nil, false, err
	}

	onShelf := shelf.ToggleBook(bookID)
	shelf.UpdatedAt = time.Now()

	if err := s.store.UpdateShelf(ctx, shelf); err != nil {
		return nil, false, err
	}

	s.logger.Info("shelf membership toggled",
		"shelf_id", shelfID,
		"book_id", bookID,
		"on_shelf", onShelf,
	)

	return shelf, onShelf, nil
}

// ShelvesForBook lists the stored shelves that contain a book.
func (s *ShelfService) ShelvesForBook(ctx context.Context, bookID string) ([]*domain.Shelf, error) {
	return s.store.GetShelvesContainingBook(ctx, bookID)
}
