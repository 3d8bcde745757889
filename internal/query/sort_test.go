package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

func ids(books []*domain.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestSort_Valid(t *testing.T) {
	for _, s := range Sorts {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Sort("random").Valid())
}

func TestSorter_TitleAsc(t *testing.T) {
	books := []*domain.Book{
		{ID: "book-1", Title: "b"},
		{ID: "book-2", Title: "A"},
		{ID: "book-3", Title: "C"},
	}
	NewSorter("ja").Sort(books, SortTitleAsc)
	assert.Equal(t, []string{"book-2", "book-1", "book-3"}, ids(books))
}

func TestSorter_AuthorAsc_AuthorlessCollateFirst(t *testing.T) {
	books := []*domain.Book{
		{ID: "book-1", Authors: []string{"B"}},
		{ID: "book-2"},
		{ID: "book-3", Authors: []string{"A"}},
	}
	NewSorter("ja").Sort(books, SortAuthorAsc)
	// No author compares as the empty string, which collates before any name.
	assert.Equal(t, []string{"book-2", "book-3", "book-1"}, ids(books))
}

func TestSorter_FinishedDesc_UndatedLast(t *testing.T) {
	books := []*domain.Book{
		{ID: "book-1", FinishedDate: "2026-07-01"},
		{ID: "book-2"},
		{ID: "book-3", FinishedDate: "2026-08-15"},
	}
	NewSorter("ja").Sort(books, SortFinishedDesc)
	assert.Equal(t, []string{"book-3", "book-1", "book-2"}, ids(books))
}

func TestSorter_RegisteredDescIsDefault(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	books := []*domain.Book{
		{ID: "book-1", RegisteredAt: base},
		{ID: "book-2", RegisteredAt: base.Add(time.Hour)},
	}
	NewSorter("ja").Sort(books, "")
	assert.Equal(t, []string{"book-2", "book-1"}, ids(books))
}

func TestSorter_StableOnEqualKeys(t *testing.T) {
	books := []*domain.Book{
		{ID: "book-1", Title: "同じ"},
		{ID: "book-2", Title: "同じ"},
		{ID: "book-3", Title: "同じ"},
	}
	NewSorter("ja").Sort(books, SortTitleAsc)
	assert.Equal(t, []string{"book-1", "book-2", "book-3"}, ids(books))
}

func TestSorter_UnknownLocaleFallsBack(t *testing.T) {
	books := []*domain.Book{
		{ID: "book-1", Title: "b"},
		{ID: "book-2", Title: "a"},
	}
	NewSorter("definitely-not-a-locale").Sort(books, SortTitleAsc)
	assert.Equal(t, []string{"book-2", "book-1"}, ids(books))
}
