package store

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"iter"

	"github.com/dgraph-io/badger/v4"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	"github.com/tsundoku-app/tsundoku-server/internal/sse"
)

// StreamBooks returns an iterator over all books for backup export.
func (s *Store) StreamBooks(ctx context.Context) iter.Seq2[*domain.Book, error] {
	return streamEntities[domain.Book](s.db, ctx, bookPrefix)
}

// StreamMemos returns an iterator over all memos for backup export.
func (s *Store) StreamMemos(ctx context.Context) iter.Seq2[*domain.Memo, error] {
	return streamEntities[domain.Memo](s.db, ctx, memoPrefix)
}

// StreamShelves returns an iterator over all user shelves for backup export.
func (s *Store) StreamShelves(ctx context.Context) iter.Seq2[*domain.Shelf, error] {
	return streamEntities[domain.Shelf](s.db, ctx, shelfPrefix)
}

// streamEntities is a generic streaming iterator for any entity type.
func streamEntities[T any](db *badger.DB, ctx context.Context, prefix string) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		_ = db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = []byte(prefix)
			opts.PrefetchValues = true

			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				if ctx.Err() != nil {
					yield(nil, ctx.Err())
					return ctx.Err()
				}

				var entity T
				err := it.Item().Value(func(val []byte) error {
					return json.Unmarshal(val, &entity)
				})

				if err != nil {
					if !yield(nil, err) {
						return nil
					}
					continue
				}

				if !yield(&entity, nil) {
					return nil
				}
			}

			return nil
		})
	}
}

// ImportBooks upserts a batch of books in one transaction, rebuilding their
// indexes. Existing records with the same ID are overwritten.
func (s *Store) ImportBooks(ctx context.Context, books []*domain.Book) error {
	for i, book := range books {
		if book == nil {
			return fmt.Errorf("nil book at index %d", i)
		}
		if err := book.Validate(); err != nil {
			return fmt.Errorf("book %s: %w", book.ID, err)
		}
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for _, book := range books {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			// Clear indexes of any record being overwritten.
			if old, err := getInTxn[domain.Book](txn, bookPrefix+book.ID); err == nil {
				if old.ISBN != "" {
					if err := txn.Delete(bookISBNKey(old.ISBN)); err != nil {
						return err
					}
				}
				if err := txn.Delete(bookStatusKey(string(old.Status), old.ID)); err != nil {
					return err
				}
			}

			data, err := json.Marshal(book)
			if err != nil {
				return fmt.Errorf("marshal book: %w", err)
			}
			if err := txn.Set([]byte(bookPrefix+book.ID), data); err != nil {
				return err
			}

			if book.ISBN != "" {
				if err := txn.Set(bookISBNKey(book.ISBN), []byte(book.ID)); err != nil {
					return err
				}
			}
			if err := txn.Set(bookStatusKey(string(book.Status), book.ID), []byte{}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import books: %w", err)
	}

	for _, book := range books {
		s.indexBook(ctx, book)
	}

	if s.logger != nil {
		s.logger.Info("books imported", "count", len(books))
	}
	return nil
}

// ImportMemos upserts a batch of memos in one transaction.
func (s *Store) ImportMemos(ctx context.Context, memos []*domain.Memo) error {
	for i, memo := range memos {
		if memo == nil {
			return fmt.Errorf("nil memo at index %d", i)
		}
		if err := memo.Validate(); err != nil {
			return fmt.Errorf("memo %s: %w", memo.ID, err)
		}
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for _, memo := range memos {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			// Clear the book index of any record being overwritten.
			if old, err := getInTxn[domain.Memo](txn, memoPrefix+memo.ID); err == nil {
				if err := txn.Delete(memoBookKey(old.BookID, old.ID)); err != nil {
					return err
				}
			}

			data, err := json.Marshal(memo)
			if err != nil {
				return fmt.Errorf("marshal memo: %w", err)
			}
			if err := txn.Set([]byte(memoPrefix+memo.ID), data); err != nil {
				return err
			}
			if err := txn.Set(memoBookKey(memo.BookID, memo.ID), []byte{}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import memos: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("memos imported", "count", len(memos))
	}
	return nil
}

// NotifyImported broadcasts a store.imported event after a backup restore.
func (s *Store) NotifyImported(books, memos int) {
	s.eventEmitter.Emit(sse.NewStoreImportedEvent(books, memos))
}

// ClearAllData removes all records and indexes in a single transaction, so a
// failed reset leaves the previous data intact. Used for full restore and the
// explicit reset operation.
func (s *Store) ClearAllData(ctx context.Context) error {
	prefixes := []string{
		bookPrefix,
		memoPrefix,
		shelfPrefix,
		bookByISBNPrefix,
		bookByStatusPrefix,
		memoByBookPrefix,
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		for _, prefix := range prefixes {
			if err := deleteByPrefixInTxn(txn, ctx, prefix); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear all data: %w", err)
	}

	if s.searchIndexer != nil {
		if err := s.searchIndexer.DeleteAll(ctx); err != nil && s.logger != nil {
			s.logger.Warn("failed to clear search index", "error", err)
		}
	}

	s.eventEmitter.Emit(sse.NewStoreClearedEvent())

	if s.logger != nil {
		s.logger.Info("store cleared")
	}
	return nil
}

// deleteByPrefixTxn removes all keys under a prefix, each batch in its own
// transaction. Used by migrations where atomicity with other work is not needed.
func (s *Store) deleteByPrefixTxn(ctx context.Context, prefix string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return deleteByPrefixInTxn(txn, ctx, prefix)
	})
}

func deleteByPrefixInTxn(txn *badger.Txn, ctx context.Context, prefix string) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		key := it.Item().KeyCopy(nil)
		if err := txn.Delete(key); err != nil {
			return err
		}
	}

	return nil
}

// getInTxn loads and unmarshals a record inside an open transaction.
func getInTxn[T any](txn *badger.Txn, key string) (*T, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return nil, err
	}
	var entity T
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &entity)
	})
	if err != nil {
		return nil, err
	}
	return &entity, nil
}
