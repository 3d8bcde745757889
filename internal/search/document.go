// Package search provides full-text search over the library using Bleve.
// Books are indexed by title, author, and publisher with CJK-aware analysis
// so Japanese titles match on partial input.
package search

import (
	"strings"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

// Document is the indexed representation of a book.
type Document struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Authors      []string `json:"authors,omitempty"`
	Publisher    string   `json:"publisher,omitempty"`
	ISBN         string   `json:"isbn,omitempty"`
	Status       string   `json:"status"`
	RegisteredAt int64    `json:"registered_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names. Bleve
// indexes Go struct field names verbatim, and our mapping uses lowercase
// names, so the conversion is explicit.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":            d.ID,
		"title":         d.Title,
		"status":        d.Status,
		"registered_at": d.RegisteredAt,
	}
	if len(d.Authors) > 0 {
		m["authors"] = d.Authors
		// Joined form so multi-word author queries match across entries.
		m["author_line"] = strings.Join(d.Authors, " ")
	}
	if d.Publisher != "" {
		m["publisher"] = d.Publisher
	}
	if d.ISBN != "" {
		m["isbn"] = d.ISBN
	}
	return m
}

// FromBook converts a domain book into its indexed form.
func FromBook(book *domain.Book) *Document {
	return &Document{
		ID:           book.ID,
		Title:        book.Title,
		Authors:      book.Authors,
		Publisher:    book.Publisher,
		ISBN:         book.ISBN,
		Status:       string(book.Status),
		RegisteredAt: book.RegisteredAt.UnixMilli(),
	}
}
