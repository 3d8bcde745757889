package domain

import (
	"slices"
	"strings"
	"time"
)

// SmartShelfPrefix marks the built-in shelves derived from reading status.
// User shelf IDs never use it, so a prefix check is enough to tell the two apart.
const SmartShelfPrefix = "smart-"

// Smart shelf identifiers. These shelves are virtual: their membership is
// computed from book status and they are never persisted.
const (
	SmartShelfAll     = "smart-all"
	SmartShelfUnread  = "smart-unread"
	SmartShelfWants   = "smart-wants"
	SmartShelfReading = "smart-reading"
	SmartShelfRead    = "smart-read"
)

// SmartShelfDef describes one built-in shelf.
type SmartShelfDef struct {
	ID     string
	Title  string
	Status Status // empty for the all-books shelf
}

// SmartShelves lists the built-in shelves in display order.
var SmartShelves = []SmartShelfDef{
	{ID: SmartShelfAll, Title: "すべての本"},
	{ID: SmartShelfUnread, Title: "積読", Status: StatusUnread},
	{ID: SmartShelfWants, Title: "読みたい", Status: StatusWants},
	{ID: SmartShelfReading, Title: "読書中", Status: StatusReading},
	{ID: SmartShelfRead, Title: "読了", Status: StatusRead},
}

// IsSmartShelf reports whether id names a built-in shelf.
func IsSmartShelf(id string) bool {
	return strings.HasPrefix(id, SmartShelfPrefix)
}

// SmartShelfByID looks up a built-in shelf definition.
func SmartShelfByID(id string) (SmartShelfDef, bool) {
	for _, def := range SmartShelves {
		if def.ID == id {
			return def, true
		}
	}
	return SmartShelfDef{}, false
}

// Shelf is a user-created list of books. Membership is an ordered set of
// book IDs; a book may sit on any number of shelves.
type Shelf struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	BookIDs     []string  `json:"bookIds"`
}

// AddBook adds a book ID to the shelf, prepending it to maintain newest-first ordering.
// If the book is already present, this is a no-op. Updates UpdatedAt on success.
func (s *Shelf) AddBook(bookID string) bool {
	if slices.Contains(s.BookIDs, bookID) {
		return false // Already present
	}
	// Prepend to maintain newest-first ordering
	s.BookIDs = append([]string{bookID}, s.BookIDs...)
	s.UpdatedAt = time.Now()
	return true
}

// RemoveBook removes a book ID from the shelf.
// Updates UpdatedAt on success. Returns false if the book was not present.
func (s *Shelf) RemoveBook(bookID string) bool {
	for i, id := range s.BookIDs {
		if id == bookID {
			s.BookIDs = append(s.BookIDs[:i], s.BookIDs[i+1:]...)
			s.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// ToggleBook adds the book if absent, removes it if present.
// Returns true when the book is on the shelf after the call.
func (s *Shelf) ToggleBook(bookID string) bool {
	if s.RemoveBook(bookID) {
		return false
	}
	s.AddBook(bookID)
	return true
}

// ContainsBook checks if a book ID is in this shelf.
func (s *Shelf) ContainsBook(bookID string) bool {
	return slices.Contains(s.BookIDs, bookID)
}

// Validate checks structural invariants before the shelf is persisted.
func (s *Shelf) Validate() error {
	if s.ID == "" {
		return ErrEmptyID
	}
	if IsSmartShelf(s.ID) {
		return ErrSmartShelf
	}
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyShelfTitle
	}
	return nil
}
