package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShelf_AddBook_PrependsNewestFirst(t *testing.T) {
	shelf := &Shelf{
		ID:      "shelf-1",
		Title:   "積読消化リスト",
		BookIDs: []string{"book-1", "book-2"},
	}

	added := shelf.AddBook("book-3")

	assert.True(t, added)
	assert.Equal(t, []string{"book-3", "book-1", "book-2"}, shelf.BookIDs)
}

func TestShelf_AddBook_UpdatesTimestamp(t *testing.T) {
	now := time.Now()
	shelf := &Shelf{
		ID:        "shelf-1",
		Title:     "My Reading List",
		UpdatedAt: now.Add(-time.Hour), // Set to an hour ago
	}

	shelf.AddBook("book-1")

	assert.True(t, shelf.UpdatedAt.After(now.Add(-time.Hour)))
}

func TestShelf_AddBook_IgnoresDuplicates(t *testing.T) {
	shelf := &Shelf{
		ID:      "shelf-1",
		Title:   "My Reading List",
		BookIDs: []string{"book-1", "book-2"},
	}
	originalUpdatedAt := shelf.UpdatedAt

	added := shelf.AddBook("book-1")

	assert.False(t, added)
	assert.Equal(t, []string{"book-1", "book-2"}, shelf.BookIDs)
	assert.Equal(t, originalUpdatedAt, shelf.UpdatedAt) // Should not update timestamp
}

func TestShelf_RemoveBook_Works(t *testing.T) {
	shelf := &Shelf{
		ID:      "shelf-1",
		Title:   "My Reading List",
		BookIDs: []string{"book-1", "book-2", "book-3"},
	}

	removed := shelf.RemoveBook("book-2")

	assert.True(t, removed)
	assert.Equal(t, []string{"book-1", "book-3"}, shelf.BookIDs)
}

func TestShelf_RemoveBook_HandlesNonExistentGracefully(t *testing.T) {
	shelf := &Shelf{
		ID:      "shelf-1",
		Title:   "My Reading List",
		BookIDs: []string{"book-1", "book-2"},
	}
	originalUpdatedAt := shelf.UpdatedAt

	removed := shelf.RemoveBook("book-nonexistent")

	assert.False(t, removed)
	assert.Equal(t, []string{"book-1", "book-2"}, shelf.BookIDs)
	assert.Equal(t, originalUpdatedAt, shelf.UpdatedAt) // Should not update timestamp
}

func TestShelf_ToggleBook_AddsWhenAbsent(t *testing.T) {
	shelf := &Shelf{
		ID:      "shelf-1",
		Title:   "My Reading List",
		BookIDs: []string{"book-1"},
	}

	onShelf := shelf.ToggleBook("book-2")

	assert.True(t, onShelf)
	assert.Equal(t, []string{"book-2", "book-1"}, shelf.BookIDs)
}

func TestShelf_ToggleBook_RemovesWhenPresent(t *testing.T) {
	shelf := &Shelf{
		ID:      "shelf-1",
		Title:   "My Reading List",
		BookIDs: []string{"book-1", "book-2"},
	}

	onShelf := shelf.ToggleBook("book-1")

	assert.False(t, onShelf)
	assert.Equal(t, []string{"book-2"}, shelf.BookIDs)
}

func TestShelf_ToggleBook_RoundTrip(t *testing.T) {
	shelf := &Shelf{ID: "shelf-1", Title: "My Reading List"}

	assert.True(t, shelf.ToggleBook("book-1"))
	assert.False(t, shelf.ToggleBook("book-1"))
	assert.Empty(t, shelf.BookIDs)
}

func TestShelf_ContainsBook(t *testing.T) {
	shelf := &Shelf{
		ID:      "shelf-1",
		Title:   "My Reading List",
		BookIDs: []string{"book-1", "book-2"},
	}

	assert.True(t, shelf.ContainsBook("book-1"))
	assert.False(t, shelf.ContainsBook("book-nonexistent"))
}

func TestShelf_Validate(t *testing.T) {
	shelf := &Shelf{ID: "shelf-1", Title: "本棚"}
	assert.NoError(t, shelf.Validate())

	shelf = &Shelf{ID: "", Title: "本棚"}
	assert.ErrorIs(t, shelf.Validate(), ErrEmptyID)

	shelf = &Shelf{ID: "shelf-1", Title: "   "}
	assert.ErrorIs(t, shelf.Validate(), ErrEmptyShelfTitle)

	shelf = &Shelf{ID: "smart-custom", Title: "本棚"}
	assert.ErrorIs(t, shelf.Validate(), ErrSmartShelf)
}

func TestIsSmartShelf(t *testing.T) {
	assert.True(t, IsSmartShelf(SmartShelfAll))
	assert.True(t, IsSmartShelf(SmartShelfRead))
	assert.False(t, IsSmartShelf("shelf-abc123"))
	assert.False(t, IsSmartShelf(""))
}

func TestSmartShelfByID(t *testing.T) {
	def, ok := SmartShelfByID(SmartShelfReading)
	assert.True(t, ok)
	assert.Equal(t, StatusReading, def.Status)

	def, ok = SmartShelfByID(SmartShelfAll)
	assert.True(t, ok)
	assert.Empty(t, def.Status)

	_, ok = SmartShelfByID("shelf-abc123")
	assert.False(t, ok)
}
