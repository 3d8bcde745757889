package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Next_Cycle(t *testing.T) {
	assert.Equal(t, StatusWants, StatusUnread.Next())
	assert.Equal(t, StatusReading, StatusWants.Next())
	assert.Equal(t, StatusRead, StatusReading.Next())
	assert.Equal(t, StatusUnread, StatusRead.Next())
}

func TestStatus_Next_UnknownFallsBackToUnread(t *testing.T) {
	assert.Equal(t, StatusUnread, Status("bogus").Next())
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("finished").Valid())
	assert.False(t, Status("").Valid())
}

func TestBook_CycleStatus_StampsFinishedDateOnRead(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	book := &Book{ID: "book-1", Title: "流浪の月", Status: StatusReading}

	book.CycleStatus(now)

	assert.Equal(t, StatusRead, book.Status)
	assert.Equal(t, "2025-03-14", book.FinishedDate)
}

func TestBook_CycleStatus_PreservesExistingFinishedDate(t *testing.T) {
	book := &Book{ID: "book-1", Title: "T", Status: StatusReading, FinishedDate: "2024-12-01"}

	book.CycleStatus(time.Now())

	assert.Equal(t, StatusRead, book.Status)
	assert.Equal(t, "2024-12-01", book.FinishedDate)
}

func TestBook_CycleStatus_ClearsFinishedDateOnLeavingRead(t *testing.T) {
	book := &Book{ID: "book-1", Title: "T", Status: StatusRead, FinishedDate: "2024-12-01"}

	book.CycleStatus(time.Now())

	assert.Equal(t, StatusUnread, book.Status)
	assert.Empty(t, book.FinishedDate)
}

func TestBook_CycleStatus_FullLap(t *testing.T) {
	book := &Book{ID: "book-1", Title: "T", Status: StatusUnread}
	now := time.Now()

	for range 4 {
		book.CycleStatus(now)
	}

	assert.Equal(t, StatusUnread, book.Status)
	assert.Empty(t, book.FinishedDate)
}

func TestBook_FinishedMonth(t *testing.T) {
	book := &Book{FinishedDate: "2025-03-14"}
	assert.Equal(t, "2025-03", book.FinishedMonth())

	book.FinishedDate = ""
	assert.Empty(t, book.FinishedMonth())
}

func TestBook_AuthorLine(t *testing.T) {
	book := &Book{Authors: []string{"凪良ゆう", "訳者X"}}
	assert.Equal(t, "凪良ゆう, 訳者X", book.AuthorLine())

	book.Authors = nil
	assert.Empty(t, book.AuthorLine())
}

func TestBook_Validate(t *testing.T) {
	book := &Book{ID: "book-1", Title: "T", Status: StatusUnread}
	assert.NoError(t, book.Validate())

	book = &Book{Title: "T", Status: StatusUnread}
	assert.ErrorIs(t, book.Validate(), ErrEmptyID)

	book = &Book{ID: "book-1", Title: "  ", Status: StatusUnread}
	assert.ErrorIs(t, book.Validate(), ErrEmptyTitle)

	book = &Book{ID: "book-1", Title: "T", Status: "bogus"}
	assert.ErrorIs(t, book.Validate(), ErrInvalidStatus)

	book = &Book{ID: "book-1", Title: "T", Status: StatusRead, FinishedDate: "03/14/2025"}
	assert.ErrorIs(t, book.Validate(), ErrInvalidFinishedDate)
}
