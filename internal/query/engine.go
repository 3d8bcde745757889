// Package query implements the reactive library view: a long-lived engine
// that holds the current selection (shelf, status, month, sort), recomputes
// the derived book list whenever the selection or the underlying store
// changes, and notifies downstream consumers.
package query

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	"github.com/tsundoku-app/tsundoku-server/internal/sse"
)

// Store is the subset of the persistent store the engine reads from.
type Store interface {
	ListAllBooks(ctx context.Context) ([]*domain.Book, error)
	GetShelf(ctx context.Context, id string) (*domain.Shelf, error)
}

// Selection describes what the library view currently shows. The zero value
// selects every book sorted by registration date, newest first.
type Selection struct {
	// ShelfID is a smart shelf ID or a user shelf ID; empty behaves like
	// smart-all.
	ShelfID string
	// Status filters independently of the shelf; empty means no filter.
	Status domain.Status
	// Month filters by finished-month prefix (YYYY-MM); empty means no filter.
	Month string
	// Sort is one of the Sort* constants; empty means SortRegisteredDesc.
	Sort Sort
}

// Engine computes the filtered, sorted library view.
type Engine struct {
	store    Store
	sorter   *Sorter
	logger   *slog.Logger
	notify   chan struct{}

	mu        sync.RWMutex
	selection Selection
	books     []*domain.Book
	loaded    bool
}

// NewEngine creates an engine reading from store and sorting with sorter.
func NewEngine(store Store, sorter *Sorter, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		sorter: sorter,
		logger: logger,
		notify: make(chan struct{}, 1),
	}
}

// Emit implements the store's EventEmitter: any store mutation invalidates
// the current result and triggers a recompute. Heartbeats are ignored.
func (e *Engine) Emit(event any) {
	evt, ok := event.(sse.Event)
	if !ok || evt.Type == sse.EventHeartbeat {
		return
	}
	if err := e.Recompute(context.Background()); err != nil && e.logger != nil {
		e.logger.Warn("library view recompute failed", "error", err)
	}
}

// Changed returns a channel that receives a signal after each recompute.
// Signals coalesce; consumers re-read Books() on receipt.
func (e *Engine) Changed() <-chan struct{} {
	return e.notify
}

// Selection returns the current selection.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selection
}

// Select replaces the selection and recomputes.
func (e *Engine) Select(ctx context.Context, sel Selection) error {
	e.mu.Lock()
	e.selection = sel
	e.mu.Unlock()
	return e.Recompute(ctx)
}

// Books returns the current result as a fresh slice, and whether a result
// has been computed at all. A loaded empty view is distinct from a view
// that was never computed.
func (e *Engine) Books() ([]*domain.Book, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.loaded {
		return nil, false
	}
	out := make([]*domain.Book, len(e.books))
	copy(out, e.books)
	return out, true
}

// Recompute rebuilds the derived book list from the store. It is
// side-effect-free and safe to call repeatedly.
func (e *Engine) Recompute(ctx context.Context) error {
	e.mu.RLock()
	sel := e.selection
	e.mu.RUnlock()

	books, err := e.compute(ctx, sel)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.books = books
	e.loaded = true
	e.mu.Unlock()

	// Coalescing notify.
	select {
	case e.notify <- struct{}{}:
	default:
	}
	return nil
}

// compute runs the filter/sort pipeline for a selection.
func (e *Engine) compute(ctx context.Context, sel Selection) ([]*domain.Book, error) {
	all, err := e.store.ListAllBooks(ctx)
	if err != nil {
		return nil, err
	}

	// Shelf filter. Smart shelves match by status; user shelves by
	// membership set. A vanished user shelf yields the empty view.
	var shelfStatus domain.Status
	var membership map[string]struct{}
	switch {
	case sel.ShelfID == "" || sel.ShelfID == domain.SmartShelfAll:
		// No shelf restriction.
	case domain.IsSmartShelf(sel.ShelfID):
		def, ok := domain.SmartShelfByID(sel.ShelfID)
		if !ok {
			return []*domain.Book{}, nil
		}
		shelfStatus = def.Status
	default:
		shelf, err := e.store.GetShelf(ctx, sel.ShelfID)
		if err != nil {
			return []*domain.Book{}, nil
		}
		membership = make(map[string]struct{}, len(shelf.BookIDs))
		for _, id := range shelf.BookIDs {
			membership[id] = struct{}{}
		}
	}

	result := make([]*domain.Book, 0, len(all))
	for _, book := range all {
		if shelfStatus != "" && book.Status != shelfStatus {
			continue
		}
		if membership != nil {
			if _, ok := membership[book.ID]; !ok {
				continue
			}
		}
		if sel.Status != "" && book.Status != sel.Status {
			continue
		}
		if sel.Month != "" && book.FinishedMonth() != sel.Month {
			continue
		}
		result = append(result, book)
	}

	e.sorter.Sort(result, sel.Sort)
	return result, nil
}

// AvailableMonths returns the distinct YYYY-MM finished-month prefixes across
// all books that have a finished date, newest first. Status is irrelevant: a
// date survives a status change until something clears it.
func (e *Engine) AvailableMonths(ctx context.Context) ([]string, error) {
	all, err := e.store.ListAllBooks(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	months := make([]string, 0)
	for _, book := range all {
		month := book.FinishedMonth()
		if month == "" {
			continue
		}
		if _, ok := seen[month]; ok {
			continue
		}
		seen[month] = struct{}{}
		months = append(months, month)
	}

	// Descending lexicographic order is descending chronological order for
	// YYYY-MM strings.
	sortStringsDesc(months)
	return months, nil
}
