package service

import (
	"context"
	"errors"
	"slices"
	"sort"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	"github.com/tsundoku-app/tsundoku-server/internal/store"
)

// KnowledgeService builds the tag browser: tag frequencies over all memos
// and per-tag memo listings enriched with book snapshots.
type KnowledgeService struct {
	store *store.Store
}

// NewKnowledgeService creates a new knowledge service.
func NewKnowledgeService(store *store.Store) *KnowledgeService {
	return &KnowledgeService{store: store}
}

// DeletedBookTitle labels memos whose book no longer exists.
const DeletedBookTitle = "削除された本"

// TaggedMemo is a memo enriched with a point-in-time snapshot of its book.
type TaggedMemo struct {
	Memo          *domain.Memo `json:"memo"`
	BookTitle     string       `json:"bookTitle"`
	BookThumbnail string       `json:"bookThumbnail,omitempty"`
	BookDeleted   bool         `json:"bookDeleted"`
}

// Tags aggregates tag frequencies across all memos, descending by count
// with ties broken by tag. A tag appearing once in a memo counts once no
// matter how often it was typed.
func (s *KnowledgeService) Tags(ctx context.Context) ([]domain.TagCount, error) {
	memos, err := s.store.ListAllMemos(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, memo := range memos {
		for _, tag := range memo.Tags {
			counts[tag]++
		}
	}

	out := make([]domain.TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, domain.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})

	return out, nil
}

// MemosByTag lists all memos carrying a tag, newest first, each with a
// snapshot of its book's title and thumbnail. Memos whose book has been
// deleted carry a placeholder instead of failing the whole listing.
func (s *KnowledgeService) MemosByTag(ctx context.Context, tag string) ([]TaggedMemo, error) {
	memos, err := s.store.ListAllMemos(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Memo, 0)
	for _, memo := range memos {
		if slices.Contains(memo.Tags, tag) {
			matched = append(matched, memo)
		}
	}
	sortMemosNewestFirst(matched)

	out := make([]TaggedMemo, 0, len(matched))
	for _, memo := range matched {
		entry := TaggedMemo{Memo: memo}

		book, err := s.store.GetBook(ctx, memo.BookID)
		switch {
		case errors.Is(err, store.ErrBookNotFound):
			entry.BookTitle = DeletedBookTitle
			entry.BookDeleted = true
		case err != nil:
			return nil, err
		default:
			entry.BookTitle = book.Title
			entry.BookThumbnail = book.Thumbnail
		}

		out = append(out, entry)
	}

	return out, nil
}

func sortMemosNewestFirst(memos []*domain.Memo) {
	sort.SliceStable(memos, func(i, j int) bool {
		return memos[i].CreatedAt.After(memos[j].CreatedAt)
	})
}
