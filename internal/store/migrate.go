package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

// schemaVersion is the current on-disk schema. Bump it when key layouts
// change and add a step to migrate below.
//
// v1: books and memos with ISBN index
// v2: user shelves
// v3: status index backfill
const schemaVersion = 3

// migrate brings the database up to the current schema version.
// A fresh database is stamped with the current version directly.
func (s *Store) migrate(ctx context.Context) error {
	version, err := s.getSchemaVersion()
	if err != nil {
		return err
	}

	if version == schemaVersion {
		return nil
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}

	fresh, err := s.isEmpty()
	if err != nil {
		return err
	}
	if fresh {
		return s.setSchemaVersion(schemaVersion)
	}

	for v := version + 1; v <= schemaVersion; v++ {
		if s.logger != nil {
			s.logger.Info("migrating store schema", "to_version", v)
		}

		switch v {
		case 2:
			// Shelves introduced; no data transformation needed.
		case 3:
			if err := s.rebuildBookIndexes(ctx); err != nil {
				return fmt.Errorf("migration to v3: %w", err)
			}
		}

		if err := s.setSchemaVersion(v); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) getSchemaVersion() (int, error) {
	var version int
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(schemaVersionKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			v, err := strconv.Atoi(string(val))
			if err != nil {
				return fmt.Errorf("corrupt schema version %q: %w", val, err)
			}
			version = v
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (s *Store) setSchemaVersion(version int) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(schemaVersionKey), []byte(strconv.Itoa(version)))
	})
}

// isEmpty reports whether the database holds no book records.
func (s *Store) isEmpty() (bool, error) {
	empty := true
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(bookPrefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		it.Seek([]byte(bookPrefix))
		if it.ValidForPrefix([]byte(bookPrefix)) {
			empty = false
		}
		return nil
	})
	return empty, err
}

// rebuildBookIndexes re-derives the ISBN and status indexes from the book
// records. Safe to run repeatedly.
func (s *Store) rebuildBookIndexes(ctx context.Context) error {
	// Drop existing index entries first.
	for _, prefix := range []string{bookByISBNPrefix, bookByStatusPrefix} {
		if err := s.deleteByPrefixTxn(ctx, prefix); err != nil {
			return err
		}
	}

	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(bookPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte(bookPrefix)); it.ValidForPrefix([]byte(bookPrefix)); it.Next() {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			var book domain.Book
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &book)
			})
			if err != nil {
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
}
