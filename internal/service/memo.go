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

// MemoService orchestrates memo operations.
type MemoService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewMemoService creates a new memo service.
func NewMemoService(store *store.Store, logger *slog.Logger) *MemoService {
	return &MemoService{
		store:  store,
		logger: logger,
	}
}

// CreateMemoInput carries the raw memo fields from the client. Tags arrive
// as free text and are parsed into hashtag tokens.
type CreateMemoInput struct {
	BookID   string
	Page     int
	Quote    string
	Comment  string
	TagInput string
}

// CreateMemo attaches a new memo to a book. At least one of quote or
// comment must be non-empty.
func (s *MemoService) CreateMemo(ctx context.Context, input CreateMemoInput) (*domain.Memo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	memoID, err := id.Generate(id.PrefixMemo)
	if err != nil {
		return nil, fmt.Errorf("generate memo ID: %w", err)
	}

	memo := &domain.Memo{
		ID:        memoID,
		BookID:    input.BookID,
		Page:      input.Page,
		Quote:     input.Quote,
		Comment:   input.Comment,
		Tags:      domain.ParseTags(input.TagInput),
		CreatedAt: time.Now(),
	}

	if err := memo.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.CreateMemo(ctx, memo); err != nil {
		return nil, err
	}

	s.logger.Info("memo created",
		"memo_id", memo.ID,
		"book_id", memo.BookID,
		"tags", len(memo.Tags),
	)

	return memo, nil
}

// GetMemo retrieves a memo by ID.
func (s *MemoService) GetMemo(ctx context.Context, memoID string) (*domain.Memo, error) {
	return s.store.GetMemo(ctx, memoID)
}

// ListMemosForBook returns a book's memos, newest first.
func (s *MemoService) ListMemosForBook(ctx context.Context, bookID string) ([]*domain.Memo, error) {
	memos, err := s.store.ListMemosForBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	sortMemosNewestFirst(memos)
	return memos, nil
}

// DeleteMemo removes a memo.
func (s *MemoService) DeleteMemo(ctx context.Context, memoID string) error {
	if err := s.store.DeleteMemo(ctx, memoID); err != nil {
		return err
	}

	s.logger.Info("memo deleted", "memo_id", memoID)
	return nil
}
