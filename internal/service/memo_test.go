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

func newMemoService(t *testing.T) (*MemoService, *BookService) {
	t.Helper()
	st := setupTestStore(t)
	return NewMemoService(st, testLogger()), NewBookService(st, &fakeSearcher{}, testLogger())
}

func TestCreateMemo(t *testing.T) {
	memos, books := newMemoService(t)
	ctx := context.Background()

	book, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)

	memo, err := memos.CreateMemo(ctx, CreateMemoInput{
		BookID:   book.ID,
		Page:     42,
		Quote:    "人間は鏡を求めて旅立った",
		TagInput: "名言 SF #名言",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(memo.ID, "memo-"))
	assert.Equal(t, book.ID, memo.BookID)
	assert.Equal(t, 42, memo.Page)
	assert.Equal(t, []string{"#名言", "#SF"}, memo.Tags)
}

func TestCreateMemo_RequiresContent(t *testing.T) {
	memos, books := newMemoService(t)
	ctx := context.Background()

	book, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)

	_, err = memos.CreateMemo(ctx, CreateMemoInput{
		BookID:   book.ID,
		TagInput: "#タグだけ",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyMemo)
}

func TestCreateMemo_MissingBook(t *testing.T) {
	memos, _ := newMemoService(t)

	_, err := memos.CreateMemo(context.Background(), CreateMemoInput{
		BookID:  "book-missing",
		Comment: "感想",
	})
	assert.ErrorIs(t, err, store.ErrBookNotFound)
}

func TestListMemosForBook_NewestFirst(t *testing.T) {
	memos, books := newMemoService(t)
	ctx := context.Background()

	book, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)

	first, err := memos.CreateMemo(ctx, CreateMemoInput{BookID: book.ID, Comment: "一つ目"})
	require.NoError(t, err)
	second, err := memos.CreateMemo(ctx, CreateMemoInput{BookID: book.ID, Comment: "二つ目"})
	require.NoError(t, err)

	// Force a strict ordering regardless of clock resolution.
	require.True(t, !second.CreatedAt.Before(first.CreatedAt))

	listed, err := memos.ListMemosForBook(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.True(t, !listed[0].CreatedAt.Before(listed[1].CreatedAt))
}

func TestDeleteMemo(t *testing.T) {
	memos, books := newMemoService(t)
	ctx := context.Background()

	book, err := books.AddBook(ctx, solarisCandidate())
	require.NoError(t, err)
	memo, err := memos.CreateMemo(ctx, CreateMemoInput{BookID: book.ID, Comment: "消える"})
	require.NoError(t, err)

	require.NoError(t, memos.DeleteMemo(ctx, memo.ID))

	_, err = memos.GetMemo(ctx, memo.ID)
	assert.ErrorIs(t, err, store.ErrMemoNotFound)
}
