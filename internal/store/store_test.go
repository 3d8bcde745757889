package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	// Create temp directory for test database
	tmpDir, err := os.MkdirTemp("", "tsundoku-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")

	// Create store with noop emitter for testing
	store, err := New(dbPath, nil, NewNoopEmitter())
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		store.Close()
		os.RemoveAll(tmpDir)
	}

	return store, cleanup
}

// Helper function to create a test book
func createTestBook(id string) *domain.Book {
	return &domain.Book{
		ID:           id,
		ISBN:         "978" + id,
		Title:        "Test Book " + id,
		Authors:      []string{"Test Author"},
		Status:       domain.StatusUnread,
		RegisteredAt: time.Now(),
	}
}

func createTestMemo(id, bookID string) *domain.Memo {
	return &domain.Memo{
		ID:        id,
		BookID:    bookID,
		Page:      42,
		Quote:     "a quoted passage",
		Comment:   "a thought about it",
		Tags:      []string{"quote", "thought"},
		CreatedAt: time.Now(),
	}
}

func createTestShelf(id string, bookIDs ...string) *domain.Shelf {
	now := time.Now()
	return &domain.Shelf{
		ID:        id,
		Title:     "Shelf " + id,
		BookIDs:   bookIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
