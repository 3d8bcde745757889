// Package sse implements Server-Sent Events for real-time library updates and event broadcasting.
package sse

import (
	"time"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventBookCreated represents a book registration event.
	EventBookCreated EventType = "book.created"
	// EventBookUpdated represents a book update event.
	EventBookUpdated EventType = "book.updated"
	// EventBookDeleted represents a book deletion event.
	EventBookDeleted EventType = "book.deleted"

	// EventMemoCreated represents a memo creation event.
	EventMemoCreated EventType = "memo.created"
	// EventMemoDeleted represents a memo deletion event.
	EventMemoDeleted EventType = "memo.deleted"

	// EventShelfCreated represents a shelf creation event.
	EventShelfCreated EventType = "shelf.created"
	// EventShelfUpdated represents a shelf update event (rename or membership change).
	EventShelfUpdated EventType = "shelf.updated"
	// EventShelfDeleted represents a shelf deletion event.
	EventShelfDeleted EventType = "shelf.deleted"

	// EventStoreImported represents a completed backup import.
	EventStoreImported EventType = "store.imported"
	// EventStoreCleared represents a full data reset.
	EventStoreCleared EventType = "store.cleared"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"` // Event-specific data as JSON object
	Type      EventType `json:"type"`
}

// BookEventData is the data payload for book events.
// Carries the full book so clients can render without a follow-up fetch.
type BookEventData struct {
	Book *domain.Book `json:"book"`
}

// BookDeletedEventData is the data payload for book delete events.
type BookDeletedEventData struct {
	DeletedAt time.Time `json:"deletedAt"`
	BookID    string    `json:"bookId"`
}

// MemoEventData is the data payload for memo creation events.
type MemoEventData struct {
	Memo *domain.Memo `json:"memo"`
}

// MemoDeletedEventData is the data payload for memo delete events.
type MemoDeletedEventData struct {
	DeletedAt time.Time `json:"deletedAt"`
	MemoID    string    `json:"memoId"`
	BookID    string    `json:"bookId"`
}

// ShelfEventData is the data payload for shelf events.
type ShelfEventData struct {
	Shelf *domain.Shelf `json:"shelf"`
}

// ShelfDeletedEventData is the data payload for shelf delete events.
type ShelfDeletedEventData struct {
	DeletedAt time.Time `json:"deletedAt"`
	ShelfID   string    `json:"shelfId"`
}

// ImportEventData is the data payload for backup import events.
type ImportEventData struct {
	CompletedAt time.Time `json:"completedAt"`
	Books       int       `json:"books"`
	Memos       int       `json:"memos"`
}

// ClearedEventData is the data payload for data reset events.
type ClearedEventData struct {
	ClearedAt time.Time `json:"clearedAt"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"serverTime"`
}

// NewBookCreatedEvent creates a book.created event.
func NewBookCreatedEvent(book *domain.Book) Event {
	return Event{
		Type:      EventBookCreated,
		Data:      BookEventData{Book: book},
		Timestamp: time.Now(),
	}
}

// NewBookUpdatedEvent creates a book.updated event.
func NewBookUpdatedEvent(book *domain.Book) Event {
	return Event{
		Type:      EventBookUpdated,
		Data:      BookEventData{Book: book},
		Timestamp: time.Now(),
	}
}

// NewBookDeletedEvent creates a book.deleted event.
func NewBookDeletedEvent(bookID string, deletedAt time.Time) Event {
	return Event{
		Type: EventBookDeleted,
		Data: BookDeletedEventData{
			BookID:    bookID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewMemoCreatedEvent creates a memo.created event.
func NewMemoCreatedEvent(memo *domain.Memo) Event {
	return Event{
		Type:      EventMemoCreated,
		Data:      MemoEventData{Memo: memo},
		Timestamp: time.Now(),
	}
}

// NewMemoDeletedEvent creates a memo.deleted event.
func NewMemoDeletedEvent(memoID, bookID string, deletedAt time.Time) Event {
	return Event{
		Type: EventMemoDeleted,
		Data: MemoDeletedEventData{
			MemoID:    memoID,
			BookID:    bookID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewShelfCreatedEvent creates a shelf.created event.
func NewShelfCreatedEvent(shelf *domain.Shelf) Event {
	return Event{
		Type:      EventShelfCreated,
		Data:      ShelfEventData{Shelf: shelf},
		Timestamp: time.Now(),
	}
}

// NewShelfUpdatedEvent creates a shelf.updated event.
func NewShelfUpdatedEvent(shelf *domain.Shelf) Event {
	return Event{
		Type:      EventShelfUpdated,
		Data:      ShelfEventData{Shelf: shelf},
		Timestamp: time.Now(),
	}
}

// NewShelfDeletedEvent creates a shelf.deleted event.
func NewShelfDeletedEvent(shelfID string, deletedAt time.Time) Event {
	return Event{
		Type: EventShelfDeleted,
		Data: ShelfDeletedEventData{
			ShelfID:   shelfID,
			DeletedAt: deletedAt,
		},
		Timestamp: time.Now(),
	}
}

// NewStoreImportedEvent creates a store.imported event.
func NewStoreImportedEvent(books, memos int) Event {
	return Event{
		Type: EventStoreImported,
		Data: ImportEventData{
			CompletedAt: time.Now(),
			Books:       books,
			Memos:       memos,
		},
		Timestamp: time.Now(),
	}
}

// NewStoreClearedEvent creates a store.cleared event.
func NewStoreClearedEvent() Event {
	return Event{
		Type: EventStoreCleared,
		Data: ClearedEventData{
			ClearedAt: time.Now(),
		},
		Timestamp: time.Now(),
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
