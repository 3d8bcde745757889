package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsundoku-app/tsundoku-server/internal/catalog"
	"github.com/tsundoku-app/tsundoku-server/internal/store"
)

// setupTestStore creates a temporary badger store for service tests.
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "tsundoku-service-test-*")
	require.NoError(t, err)

	s, err := store.New(tmpDir, nil, store.NewNoopEmitter())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	})

	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeSearcher returns canned catalog results.
type fakeSearcher struct {
	books []catalog.Book
	err   error
	calls int
}

func (f *fakeSearcher) Search(_ context.Context, _ string) ([]catalog.Book, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.books, nil
}

func solarisCandidate() catalog.Book {
	return catalog.Book{
		ISBN:      "9784150120009",
		Title:     "ソラリス",
		Authors:   []string{"スタニスワフ・レム", "沼野充義"},
		Publisher: "早川書房",
		Thumbnail: "https://example.com/solaris.jpg",
	}
}

func edenCandidate() catalog.Book {
	return catalog.Book{
		ISBN:    "9784150117184",
		Title:   "エデン",
		Authors: []string{"スタニスワフ・レム"},
	}
}
