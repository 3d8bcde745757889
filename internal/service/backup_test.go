package service

import (
	"context"
	"encoding/json/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsundoku-app/tsundoku-server/internal/store"
)

func newBackupService(t *testing.T) (*BackupService, *BookService, *MemoService, *store.Store) {
	t.Helper()
	st := setupTestStore(t)
	return NewBackupService(st, testLogger()),
		NewBookService(st, &fakeSearcher{}, testLogger()),
		NewMemoService(st, testLogger()),
		st
}

func TestExportImportRoundTrip(t *testing.T) {
	backup, books, memos, _ := newBackupService(t)
	ctx := context.Background()

	book, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)
	_, err = memos.CreateMemo(ctx, CreateMemoInput{BookID: book.ID, Comment: "感想", TagInput: "#SF"})
	require.NoError(t, err)

	archive, err := backup.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, ArchiveVersion, archive.Version)
	assert.False(t, archive.ExportedAt.IsZero())
	require.Len(t, archive.Books, 1)
	require.Len(t, archive.Memos, 1)

	data, err := json.Marshal(archive)
	require.NoError(t, err)

	// Import into a fresh library.
	backup2, _, _, st2 := newBackupService(t)
	stats, err := backup2.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Books)
	assert.Equal(t, 1, stats.Memos)

	restored, err := st2.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "ソラリス", restored.Title)
}

func TestImport_IsUpsertNotReplace(t *testing.T) {
	backup, books, _, st := newBackupService(t)
	ctx := context.Background()

	existing, err := books.AddBook(ctx, edenCandidate())
	require.NoError(t, err)

	incoming, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)
	archive, err := backup.Export(ctx)
	require.NoError(t, err)
	require.NoError(t, books.DeleteBook(ctx, incoming.ID))

	data, err := json.Marshal(archive)
	require.NoError(t, err)
	_, err = backup.Import(ctx, data)
	require.NoError(t, err)

	// Both the pre-existing and imported books are present.
	_, err = st.GetBook(ctx, existing.ID)
	require.NoError(t, err)
	_, err = st.GetBook(ctx, incoming.ID)
	require.NoError(t, err)
}

func TestImport_RejectsUnknownVersion(t *testing.T) {
	backup, _, _, st := newBackupService(t)
	ctx := context.Background()

	_, err := backup.Import(ctx, []byte(`{"version":99,"exportedAt":"2026-01-01T00:00:00Z","books":[],"memos":[]}`))
	require.Error(t, err)

	all, err := st.ListAllBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImport_RejectsMalformedJSON(t *testing.T) {
	backup, _, _, _ := newBackupService(t)

	_, err := backup.Import(context.Background(), []byte(`{not json`))
	assert.Error(t, err)
}

func TestImport_RejectsNullArrayEntries(t *testing.T) {
	backup, _, _, st := newBackupService(t)
	ctx := context.Background()

	// A null element decodes to a nil record; it must be rejected as a
	// validation error, not crash the import.
	assert.NotPanics(t, func() {
		_, err := backup.Import(ctx, []byte(`{"version":1,"exportedAt":"2026-08-01T00:00:00Z","books":[null],"memos":[]}`))
		assert.Error(t, err)
	})
	assert.NotPanics(t, func() {
		_, err := backup.Import(ctx, []byte(`{"version":1,"exportedAt":"2026-08-01T00:00:00Z","books":[],"memos":[null]}`))
		assert.Error(t, err)
	})

	books, err := st.ListAllBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestImport_InvalidRecordRejectedBeforeWrite(t *testing.T) {
	backup, books, _, st := newBackupService(t)
	ctx := context.Background()

	_, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)

	// Archive with one valid and one invalid book writes nothing.
	data := []byte(`{
		"version": 1,
		"exportedAt": "2026-01-01T00:00:00Z",
		"books": [
			{"id":"book-ok","title":"良い本","status":"unread","registeredAt":"2026-01-01T00:00:00Z","authors":[]},
			{"id":"book-bad","title":"","status":"unread","registeredAt":"2026-01-01T00:00:00Z","authors":[]}
		],
		"memos": []
	}`)
	_, err = backup.Import(ctx, data)
	require.Error(t, err)

	_, err = st.GetBook(ctx, "book-ok")
	assert.ErrorIs(t, err, store.ErrBookNotFound)
}

func TestReset_WipesLibrary(t *testing.T) {
	backup, books, memos, st := newBackupService(t)
	ctx := context.Background()

	book, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)
	_, err = memos.CreateMemo(ctx, CreateMemoInput{BookID: book.ID, Comment: "消える"})
	require.NoError(t, err)

	require.NoError(t, backup.Reset(ctx))

	allBooks, err := st.ListAllBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, allBooks)

	allMemos, err := st.ListAllMemos(ctx)
	require.NoError(t, err)
	assert.Empty(t, allMemos)

	// Registering the same ISBN proves the indexes were wiped too.
	_, err = books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)
}
