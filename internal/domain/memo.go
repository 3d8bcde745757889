package domain

import (
	"strings"
	"time"
)

// Memo is a reading note attached to a book. A memo carries a quoted
// passage, a free-form comment, or both, plus optional hashtags.
type Memo struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Page      int       `json:"page,omitempty"`
	Quote     string    `json:"quote,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
}

// HasContent reports whether the memo carries any text.
func (m *Memo) HasContent() bool {
	return strings.TrimSpace(m.Quote) != "" || strings.TrimSpace(m.Comment) != ""
}

// Validate checks structural invariants before the memo is persisted.
func (m *Memo) Validate() error {
	if m.ID == "" {
		return ErrEmptyID
	}
	if m.BookID == "" {
		return ErrEmptyBookID
	}
	if !m.HasContent() {
		return ErrEmptyMemo
	}
	if m.Page < 0 {
		return ErrNegativePage
	}
	return nil
}
