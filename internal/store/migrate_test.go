package store

import (
	"context"
	"encoding/json/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

func TestReopenKeepsDataAndVersion(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "tsundoku-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	store, err := New(dbPath, nil, NewNoopEmitter())
	require.NoError(t, err)

	book := createTestBook("reopen1")
	require.NoError(t, store.CreateBook(ctx, book))
	require.NoError(t, store.Close())

	// Reopening a current-version store must not touch the data.
	store, err = New(dbPath, nil, NewNoopEmitter())
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetBook(ctx, "reopen1")
	require.NoError(t, err)
	assert.Equal(t, book.Title, got.Title)

	version, err := store.getSchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, version)
}

func TestMigrateRebuildsIndexesFromOlderSchema(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "tsundoku-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	// Write a v2-era database by hand: book records without the ISBN or
	// status index entries.
	book := &domain.Book{
		ID:           "old1",
		ISBN:         "9784150117467",
		Title:        "ソラリス",
		Authors:      []string{"スタニスワフ・レム"},
		Status:       domain.StatusRead,
		RegisteredAt: time.Now(),
	}
	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	require.NoError(t, err)
	err = db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(book)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(bookPrefix+book.ID), data); err != nil {
			return err
		}
		return txn.Set([]byte(schemaVersionKey), []byte("2"))
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := New(dbPath, nil, NewNoopEmitter())
	require.NoError(t, err)
	defer store.Close()

	// The migration must have rebuilt both indexes without losing the record.
	byISBN, err := store.GetBookByISBN(ctx, book.ISBN)
	require.NoError(t, err)
	assert.Equal(t, "old1", byISBN.ID)

	ids, err := store.ListBookIDsByStatus(ctx, domain.StatusRead)
	require.NoError(t, err)
	assert.Equal(t, []string{"old1"}, ids)

	version, err := store.getSchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, version)
}

func TestOpenRefusesNewerSchema(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "tsundoku-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := badger.Open(badger.DefaultOptions(dbPath).WithLogger(nil))
	require.NoError(t, err)
	err = db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(schemaVersionKey), []byte("99"))
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = New(dbPath, nil, NewNoopEmitter())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}
