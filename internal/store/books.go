package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	"github.com/tsundoku-app/tsundoku-server/internal/sse"
)

// Book Operations

// CreateBook registers a new book.
// Returns ErrDuplicateISBN when a different book already carries the ISBN.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}

	key := []byte(bookPrefix + book.ID)

	// Use transaction to create book and indexes atomically
	err := s.db.Update(func(txn *badger.Txn) error {
		// Reject duplicate ID.
		_, err := txn.Get(key)
		if err == nil {
			return ErrBookExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check book exists: %w", err)
		}

		// Reject duplicate ISBN.
		if book.ISBN != "" {
			_, err := txn.Get(bookISBNKey(book.ISBN))
			if err == nil {
				return ErrDuplicateISBN
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check isbn index: %w", err)
			}
		}

		data, err := json.Marshal(book)
		if err != nil {
			return fmt.Errorf("marshal book: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		if book.ISBN != "" {
			if err := txn.Set(bookISBNKey(book.ISBN), []byte(book.ID)); err != nil {
				return err
			}
		}

		return txn.Set(bookStatusKey(string(book.Status), book.ID), []byte{})
	})
	if err != nil {
		return err
	}

	s.indexBook(ctx, book)
	s.eventEmitter.Emit(sse.NewBookCreatedEvent(book))

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "book created",
			slog.String("id", book.ID),
			slog.String("title", book.Title),
			slog.String("status", string(book.Status)),
		)
	}
	return nil
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(_ context.Context, id string) (*domain.Book, error) {
	key := []byte(bookPrefix + id)

	var book domain.Book
	if err := s.get(key, &book); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &book, nil
}

// GetBookByISBN retrieves a book by its ISBN via the secondary index.
func (s *Store) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	var bookID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bookISBNKey(isbn))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			bookID = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("get book by isbn: %w", err)
	}
	return s.GetBook(ctx, bookID)
}

// UpdateBook updates an existing book, keeping the ISBN and status indexes in sync.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return err
	}

	key := []byte(bookPrefix + book.ID)

	// Get old book for index updates
	oldBook, err := s.GetBook(ctx, book.ID)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(book)
		if err != nil {
			return fmt.Errorf("marshal book: %w", err)
		}

		if err := txn.Set(key, data); err != nil {
			return err
		}

		// Update ISBN index if the ISBN changed.
		if oldBook.ISBN != book.ISBN {
			if oldBook.ISBN != "" {
				if err := txn.Delete(bookISBNKey(oldBook.ISBN)); err != nil {
					return err
				}
			}
			if book.ISBN != "" {
				// A different book holding this ISBN is a conflict.
				item, err := txn.Get(bookISBNKey(book.ISBN))
				if err == nil {
					var ownerID string
					if verr := item.Value(func(val []byte) error {
						ownerID = string(val)
						return nil
					}); verr != nil {
						return verr
					}
					if ownerID != book.ID {
						return ErrDuplicateISBN
					}
				} else if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("check isbn index: %w", err)
				}
				if err := txn.Set(bookISBNKey(book.ISBN), []byte(book.ID)); err != nil {
					return err
				}
			}
		}

		// Update status index if the status changed.
		if oldBook.Status != book.Status {
			if err := txn.Delete(bookStatusKey(string(oldBook.Status), book.ID)); err != nil {
				return err
			}
			if err := txn.Set(bookStatusKey(string(book.Status), book.ID), []byte{}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.indexBook(ctx, book)
	s.eventEmitter.Emit(sse.NewBookUpdatedEvent(book))

	if s.logger != nil {
		s.logger.Info("book updated", "id", book.ID, "title", book.Title, "status", string(book.Status))
	}

	return nil
}

// DeleteBook deletes a book along with its memos and indexes.
// Shelf membership entries are left in place; views skip dangling IDs.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	book, err := s.GetBook(ctx, id)
	if err != nil {
		return err
	}

	// Cascade: memos belong to the book and die with it.
	memos, err := s.ListMemosForBook(ctx, id)
	if err != nil {
		return fmt.Errorf("list memos for book: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		key := []byte(bookPrefix + id)
		if err := txn.Delete(key); err != nil {
			return err
		}

		if book.ISBN != "" {
			if err := txn.Delete(bookISBNKey(book.ISBN)); err != nil {
				return err
			}
		}
		if err := txn.Delete(bookStatusKey(string(book.Status), id)); err != nil {
			return err
		}

		for _, memo := range memos {
			if err := txn.Delete([]byte(memoPrefix + memo.ID)); err != nil {
				return err
			}
			if err := txn.Delete(memoBookKey(id, memo.ID)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.unindexBook(ctx, id)
	s.eventEmitter.Emit(sse.NewBookDeletedEvent(id, time.Now()))

	if s.logger != nil {
		s.logger.Info("book deleted", "id", id, "title", book.Title, "memos_removed", len(memos))
	}

	return nil
}

// BookExists checks if a book exists by ID.
func (s *Store) BookExists(_ context.Context, id string) (bool, error) {
	key := []byte(bookPrefix + id)
	return s.exists(key)
}

// ListAllBooks returns all books in the store.
func (s *Store) ListAllBooks(_ context.Context) ([]*domain.Book, error) {
	var books []*domain.Book

	prefix := []byte(bookPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var book domain.Book
				if err := json.Unmarshal(val, &book); err != nil {
					return err
				}
				books = append(books, &book)
				return nil
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list all books: %w", err)
	}

	return books, nil
}

// ListBookIDsByStatus returns the IDs of books with the given status,
// read from the status index without loading book records.
func (s *Store) ListBookIDsByStatus(ctx context.Context, status domain.Status) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ids []string

	prefix := fmt.Appendf(nil, "%s%s:", bookByStatusPrefix, status)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // We only need keys.
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, lastSegment(it.Item().Key()))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan status index: %w", err)
	}

	return ids, nil
}

// CountBooksByStatus returns the number of books per status.
func (s *Store) CountBooksByStatus(ctx context.Context) (map[domain.Status]int, error) {
	counts := make(map[domain.Status]int, len(domain.Statuses))
	for _, status := range domain.Statuses {
		ids, err := s.ListBookIDsByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		counts[status] = len(ids)
	}
	return counts, nil
}
