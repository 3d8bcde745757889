package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	"github.com/tsundoku-app/tsundoku-server/internal/store"
)

func newShelfService(t *testing.T) (*ShelfService, *BookService) {
	t.Helper()
	st := setupTestStore(t)
	return NewShelfService(st, testLogger()), NewBookService(st, &fakeSearcher{}, testLogger())
}

func shelfViewByID(views []ShelfView, id string) (ShelfView, bool) {
	for _, v := range views {
		if v.ID == id {
			return v, true
		}
	}
	return ShelfView{}, false
}

func TestCreateShelf(t *testing.T) {
	svc, _ := newShelfService(t)

	shelf, err := svc.CreateShelf(context.Background(), "SF棚", "お気に入りのSF")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(shelf.ID, "shelf-"))
	assert.Equal(t, "SF棚", shelf.Title)
	assert.Equal(t, "お気に入りのSF", shelf.Description)
	assert.Empty(t, shelf.BookIDs)
}

func TestCreateShelf_EmptyTitle(t *testing.T) {
	svc, _ := newShelfService(t)

	_, err := svc.CreateShelf(context.Background(), "", "")
	assert.ErrorIs(t, err, domain.ErrEmptyShelfTitle)
}

func TestListShelves_SmartCounts(t *testing.T) {
	svc, books := newShelfService(t)
	ctx := context.Background()

	added, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)
	_, err = books.AddBook(ctx, edenCandidate())
	require.NoError(t, err)

	// One book moves to wants.
	_, err = books.CycleStatus(ctx, added.ID)
	require.NoError(t, err)

	views, err := svc.ListShelves(ctx)
	require.NoError(t, err)

	all, ok := shelfViewByID(views, domain.SmartShelfAll)
	require.True(t, ok)
	assert.True(t, all.Smart)
	assert.Equal(t, 2, all.BookCount)

	unread, _ := shelfViewByID(views, domain.SmartShelfUnread)
	assert.Equal(t, 1, unread.BookCount)

	wants, _ := shelfViewByID(views, domain.SmartShelfWants)
	assert.Equal(t, 1, wants.BookCount)

	read, _ := shelfViewByID(views, domain.SmartShelfRead)
	assert.Equal(t, 0, read.BookCount)
}

func TestListShelves_CustomCountExcludesDanglingBooks(t *testing.T) {
	svc, books := newShelfService(t)
	ctx := context.Background()

	book, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)

	shelf, err := svc.CreateShelf(ctx, "SF棚", "")
	require.NoError(t, err)
	_, _, err = svc.ToggleBook(ctx, shelf.ID, book.ID)
	require.NoError(t, err)

	require.NoError(t, books.DeleteBook(ctx, book.ID))

	// Membership entry still exists but does not count.
	stored, err := svc.GetShelf(ctx, shelf.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.BookIDs, book.ID)

	views, err := svc.ListShelves(ctx)
	require.NoError(t, err)
	view, ok := shelfViewByID(views, shelf.ID)
	require.True(t, ok)
	assert.Equal(t, 0, view.BookCount)
}

func TestToggleBook(t *testing.T) {
	svc, books := newShelfService(t)
	ctx := context.Background()

	book, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)
	shelf, err := svc.CreateShelf(ctx, "SF棚", "")
	require.NoError(t, err)

	_, onShelf, err := svc.ToggleBook(ctx, shelf.ID, book.ID)
	require.NoError(t, err)
	assert.True(t, onShelf)

	_, onShelf, err = svc.ToggleBook(ctx, shelf.ID, book.ID)
	require.NoError(t, err)
	assert.False(t, onShelf)
}

func TestSmartShelfMutationsAreSilentlyRefused(t *testing.T) {
	svc, _ := newShelfService(t)
	ctx := context.Background()

	shelf, onShelf, err := svc.ToggleBook(ctx, domain.SmartShelfUnread, "book-1")
	require.NoError(t, err)
	assert.Nil(t, shelf)
	assert.False(t, onShelf)

	renamed, err := svc.UpdateShelf(ctx, domain.SmartShelfAll, "新しい名前", "")
	require.NoError(t, err)
	assert.Nil(t, renamed)

	assert.NoError(t, svc.DeleteShelf(ctx, domain.SmartShelfRead))

	// Smart shelves are all still listed.
	views, err := svc.ListShelves(ctx)
	require.NoError(t, err)
	smart := 0
	for _, v := range views {
		if v.Smart {
			smart++
		}
	}
	assert.Equal(t, len(domain.SmartShelves), smart)
}

func TestUpdateShelf(t *testing.T) {
	svc, _ := newShelfService(t)
	ctx := context.Background()

	shelf, err := svc.CreateShelf(ctx, "旧名", "旧説明")
	require.NoError(t, err)

	updated, err := svc.UpdateShelf(ctx, shelf.ID, "新名", "新しい説明")
	require.NoError(t, err)
	assert.Equal(t, "新名", updated.Title)
	assert.Equal(t, "新しい説明", updated.Description)
}

func TestDeleteShelf_MissingShelf(t *testing.T) {
	svc, _ := newShelfService(t)

	err := svc.DeleteShelf(context.Background(), "shelf-missing")
	assert.ErrorIs(t, err, store.ErrShelfNotFound)
}
