package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	"github.com/tsundoku-app/tsundoku-server/internal/sse"
)

// Memo Operations

// CreateMemo creates a new memo.
// The referenced book must exist.
func (s *Store) CreateMemo(_ context.Context, memo *domain.Memo) error {
	if err := memo.Validate(); err != nil {
		return err
	}

	key := []byte(memoPrefix + memo.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		// Reject duplicate ID.
		_, err := txn.Get(key)
		if err == nil {
			return ErrMemoExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check memo exists: %w", err)
		}

		// The book must exist.
		_, err = txn.Get([]byte(bookPrefix + memo.BookID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrBookNotFound
		}
		if err != nil {
			return fmt.Errorf("check book exists: %w", err)
		}

		data, err := json.Marshal(memo)
		if err != nil {
			return fmt.Errorf("marshal memo: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		// Book index: idx:memos:book:{bookID}:{memoID}
		return txn.Set(memoBookKey(memo.BookID, memo.ID), []byte{})
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewMemoCreatedEvent(memo))

	if s.logger != nil {
		s.logger.Info("memo created",
			"id", memo.ID,
			"book_id", memo.BookID,
			"tags", len(memo.Tags),
		)
	}
	return nil
}

// GetMemo retrieves a memo by ID.
func (s *Store) GetMemo(_ context.Context, id string) (*domain.Memo, error) {
	key := []byte(memoPrefix + id)

	var memo domain.Memo
	if err := s.get(key, &memo); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrMemoNotFound
		}
		return nil, fmt.Errorf("get memo: %w", err)
	}
	return &memo, nil
}

// DeleteMemo deletes a memo and its book index.
func (s *Store) DeleteMemo(ctx context.Context, id string) error {
	memo, err := s.GetMemo(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(memoPrefix + id)); err != nil {
			return err
		}
		return txn.Delete(memoBookKey(memo.BookID, id))
	})
	if err != nil {
		return fmt.Errorf("delete memo: %w", err)
	}

	s.eventEmitter.Emit(sse.NewMemoDeletedEvent(id, memo.BookID, time.Now()))

	if s.logger != nil {
		s.logger.Info("memo deleted", "id", id, "book_id", memo.BookID)
	}
	return nil
}

// ListMemosForBook returns all memos attached to a book.
// Uses the reverse index for efficient lookup.
func (s *Store) ListMemosForBook(ctx context.Context, bookID string) ([]*domain.Memo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var memoIDs []string

	// Scan book index: idx:memos:book:{bookID}:{memoID}
	prefix := fmt.Appendf(nil, "%s%s:", memoByBookPrefix, bookID)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // We only need keys.
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			memoIDs = append(memoIDs, lastSegment(it.Item().Key()))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan memo-book index: %w", err)
	}

	// Load the memos.
	memos := make([]*domain.Memo, 0, len(memoIDs))
	for _, memoID := range memoIDs {
		memo, err := s.GetMemo(ctx, memoID)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to get memo from index", "memo_id", memoID, "error", err)
			}
			continue
		}
		memos = append(memos, memo)
	}

	return memos, nil
}

// ListAllMemos returns all memos in the store.
func (s *Store) ListAllMemos(_ context.Context) ([]*domain.Memo, error) {
	var memos []*domain.Memo

	prefix := []byte(memoPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var memo domain.Memo
				if err := json.Unmarshal(val, &memo); err != nil {
					return err
				}
				memos = append(memos, &memo)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list all memos: %w", err)
	}

	return memos, nil
}
