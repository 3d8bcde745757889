package service

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"time"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
	apperrors "github.com/tsundoku-app/tsundoku-server/internal/errors"
	"github.com/tsundoku-app/tsundoku-server/internal/store"
)

// ArchiveVersion is the current backup format version.
const ArchiveVersion = 1

// Archive is the portable backup format. Shelves and settings deliberately
// stay out of it; the archive covers the library content itself.
type Archive struct {
	Version    int            `json:"version"`
	ExportedAt time.Time      `json:"exportedAt"`
	Books      []*domain.Book `json:"books"`
	Memos      []*domain.Memo `json:"memos"`
}

// ImportStats reports what an import wrote.
type ImportStats struct {
	Books int `json:"books"`
	Memos int `json:"memos"`
}

// BackupService exports, imports, and resets the library.
type BackupService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewBackupService creates a new backup service.
func NewBackupService(store *store.Store, logger *slog.Logger) *BackupService {
	return &BackupService{
		store:  store,
		logger: logger,
	}
}

// Export collects the whole library into an archive.
func (s *BackupService) Export(ctx context.Context) (*Archive, error) {
	archive := &Archive{
		Version:    ArchiveVersion,
		ExportedAt: time.Now().UTC(),
		Books:      []*domain.Book{},
		Memos:      []*domain.Memo{},
	}

	for book, err := range s.store.StreamBooks(ctx) {
		if err != nil {
			return nil, fmt.Errorf("export books: %w", err)
		}
		archive.Books = append(archive.Books, book)
	}
	for memo, err := range s.store.StreamMemos(ctx) {
		if err != nil {
			return nil, fmt.Errorf("export memos: %w", err)
		}
		archive.Memos = append(archive.Memos, memo)
	}

	s.logger.Info("library exported",
		"books", len(archive.Books),
		"memos", len(archive.Memos),
	)

	return archive, nil
}

// Import parses a backup archive and bulk-upserts its records. The archive
// is validated in full before anything is written; existing records not in
// the archive are untouched.
func (s *BackupService) Import(ctx context.Context, data []byte) (*ImportStats, error) {
	var archive Archive
	if err := json.Unmarshal(data, &archive); err != nil {
		return nil, apperrors.Validation("backup file is not valid JSON").WithCause(err)
	}
	if archive.Version != ArchiveVersion {
		return nil, apperrors.Validation(fmt.Sprintf("unsupported backup version %d", archive.Version))
	}

	for i, book := range archive.Books {
		if book == nil {
			return nil, apperrors.Validation(fmt.Sprintf("null book at index %d in backup", i))
		}
		if err := book.Validate(); err != nil {
			return nil, apperrors.Validation(fmt.Sprintf("invalid book %q in backup", book.ID)).WithCause(err)
		}
	}
	for i, memo := range archive.Memos {
		if memo == nil {
			return nil, apperrors.Validation(fmt.Sprintf("null memo at index %d in backup", i))
		}
		if err := memo.Validate(); err != nil {
			return nil, apperrors.Validation(fmt.Sprintf("invalid memo %q in backup", memo.ID)).WithCause(err)
		}
	}

	if err := s.store.ImportBooks(ctx, archive.Books); err != nil {
		return nil, fmt.Errorf("import books: %w", err)
	}
	if err := s.store.ImportMemos(ctx, archive.Memos); err != nil {
		return nil, fmt.Errorf("import memos: %w", err)
	}

	s.store.NotifyImported(len(archive.Books), len(archive.Memos))

	s.logger.Info("library imported",
		"books", len(archive.Books),
		"memos", len(archive.Memos),
	)

	return &ImportStats{
		Books: len(archive.Books),
		Memos: len(archive.Memos),
	}, nil
}

// Reset wipes the entire library: books, memos, shelves, indexes. Settings
// survive; they live in their own database.
func (s *BackupService) Reset(ctx context.Context) error {
	if err := s.store.ClearAllData(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}

	s.logger.Info("library reset")
	return nil
}
