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

// Shelf Operations
//
// Only user shelves are persisted. Smart shelves are virtual views over
// the status index and never reach this layer.

// CreateShelf creates a new shelf in the store.
func (s *Store) CreateShelf(_ context.Context, shelf *domain.Shelf) error {
	if err := shelf.Validate(); err != nil {
		return err
	}

	key := []byte(shelfPrefix + shelf.ID)

	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return ErrDuplicateShelf
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check shelf exists: %w", err)
		}

		data, err := json.Marshal(shelf)
		if err != nil {
			return fmt.Errorf("marshal shelf: %w", err)
		}

		return txn.Set(key, data)
	})
	if err != nil {
		return err
	}

	s.eventEmitter.Emit(sse.NewShelfCreatedEvent(shelf))

	if s.logger != nil {
		s.logger.Info("shelf created",
			"id", shelf.ID,
			"title", shelf.Title,
			"book_count", len(shelf.BookIDs),
		)
	}
	return nil
}

// GetShelf retrieves a shelf by ID.
func (s *Store) GetShelf(_ context.Context, id string) (*domain.Shelf, error) {
	if domain.IsSmartShelf(id) {
		return nil, ErrSmartShelfWrite
	}

	key := []byte(shelfPrefix + id)

	var shelf domain.Shelf
	if err := s.get(key, &shelf); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrShelfNotFound
		}
		return nil, fmt.Errorf("get shelf: %w", err)
	}

	return &shelf, nil
}

// UpdateShelf updates an existing shelf in the store.
func (s *Store) UpdateShelf(ctx context.Context, shelf *domain.Shelf) error {
	if err := shelf.Validate(); err != nil {
		return err
	}

	// Must already exist.
	if _, err := s.GetShelf(ctx, shelf.ID); err != nil {
		return err
	}

	key := []byte(shelfPrefix + shelf.ID)
	if err := s.set(key, shelf); err != nil {
		return fmt.Errorf("update shelf: %w", err)
	}

	s.eventEmitter.Emit(sse.NewShelfUpdatedEvent(shelf))

	if s.logger != nil {
		s.logger.Info("shelf updated",
			"id", shelf.ID,
			"title", shelf.Title,
			"book_count", len(shelf.BookIDs),
		)
	}
	return nil
}

// DeleteShelf deletes a shelf. Books on the shelf are untouched.
func (s *Store) DeleteShelf(ctx context.Context, id string) error {
	// Confirm it exists so callers get a proper not-found.
	if _, err := s.GetShelf(ctx, id); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(shelfPrefix + id))
	})
	if err != nil {
		return fmt.Errorf("delete shelf: %w", err)
	}

	s.eventEmitter.Emit(sse.NewShelfDeletedEvent(id, time.Now()))

	if s.logger != nil {
		s.logger.Info("shelf deleted", "id", id)
	}
	return nil
}

// ListAllShelves returns all user shelves in the store.
func (s *Store) ListAllShelves(ctx context.Context) ([]*domain.Shelf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var shelves []*domain.Shelf

	prefix := []byte(shelfPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()

			err := item.Value(func(val []byte) error {
				var shelf domain.Shelf
				if err := json.Unmarshal(val, &shelf); err != nil {
					return err
				}
				shelves = append(shelves, &shelf)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}

	return shelves, nil
}

// GetShelvesContainingBook returns all user shelves that contain a specific book.
func (s *Store) GetShelvesContainingBook(ctx context.Context, bookID string) ([]*domain.Shelf, error) {
	shelves, err := s.ListAllShelves(ctx)
	if err != nil {
		return nil, err
	}

	containing := make([]*domain.Shelf, 0)
	for _, shelf := range shelves {
		if shelf.ContainsBook(bookID) {
			containing = append(containing, shelf)
		}
	}
	return containing, nil
}
