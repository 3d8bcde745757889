// Package domain contains the core business entities and domain logic for the Tsundoku book tracker.
package domain

import (
	"strings"
	"time"
)

// Status is a book's position in the reading lifecycle.
type Status string

// Reading lifecycle states, in cycle order.
const (
	StatusUnread  Status = "unread"
	StatusWants   Status = "wants"
	StatusReading Status = "reading"
	StatusRead    Status = "read"
)

// Statuses lists all valid statuses in cycle order.
var Statuses = []Status{StatusUnread, StatusWants, StatusReading, StatusRead}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusUnread, StatusWants, StatusReading, StatusRead:
		return true
	}
	return false
}

// Next returns the status that follows s in the cycle:
// unread → wants → reading → read → unread.
func (s Status) Next() Status {
	switch s {
	case StatusUnread:
		return StatusWants
	case StatusWants:
		return StatusReading
	case StatusReading:
		return StatusRead
	case StatusRead:
		return StatusUnread
	default:
		return StatusUnread
	}
}

// Book represents a book in the user's library.
type Book struct {
	RegisteredAt time.Time `json:"registeredAt"`
	ID           string    `json:"id"`
	ISBN         string    `json:"isbn,omitempty"`
	Title        string    `json:"title"`
	Authors      []string  `json:"authors"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	Publisher    string    `json:"publisher,omitempty"`
	Status       Status    `json:"status"`
	// FinishedDate is a YYYY-MM-DD calendar date, empty when unset.
	FinishedDate string `json:"finishedDate,omitempty"`
}

// CycleStatus advances the book to the next status in the lifecycle.
// Entering read stamps FinishedDate with today when it is empty;
// leaving read clears it.
func (b *Book) CycleStatus(now time.Time) {
	prev := b.Status
	b.Status = b.Status.Next()

	if b.Status == StatusRead && b.FinishedDate == "" {
		b.FinishedDate = now.Format("2006-01-02")
	}
	if prev == StatusRead && b.Status != StatusRead {
		b.FinishedDate = ""
	}
}

// FinishedMonth returns the YYYY-MM portion of FinishedDate, or "" when unset.
func (b *Book) FinishedMonth() string {
	if len(b.FinishedDate) < 7 {
		return ""
	}
	return b.FinishedDate[:7]
}

// AuthorLine joins the authors for display and sorting.
func (b *Book) AuthorLine() string {
	return strings.Join(b.Authors, ", ")
}

// Validate checks structural invariants before the book is persisted.
func (b *Book) Validate() error {
	if b.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if !b.Status.Valid() {
		return ErrInvalidStatus
	}
	if b.FinishedDate != "" {
		if _, err := time.Parse("2006-01-02", b.FinishedDate); err != nil {
			return ErrInvalidFinishedDate
		}
	}
	return nil
}
