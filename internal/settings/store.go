// Package settings persists UI preferences in a small SQLite database,
// separate from the library store so wiping the library keeps the user's
// theme and view choices intact.
package settings

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tsundoku-app/tsundoku-server/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// Setting keys.
const (
	KeyTheme           = "theme"
	KeySelectedShelf   = "selected_shelf"
	KeyCoverBackground = "cover_background"
)

// Defaults applied when a key has never been written.
const (
	DefaultTheme = "dark_wood"
)

// Themes lists the selectable UI themes.
var Themes = []string{"dark_wood", "light_paper", "night_ink"}

// Store provides SQLite-backed persistence for settings.
type Store struct {
	db *sql.DB
}

// Open creates or opens the settings database at path. It configures WAL
// mode, sets pragmas, and runs schema migration.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the stored value for key, or fallback if the key has never
// been written.
func (s *Store) Get(ctx context.Context, key, fallback string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set creates or replaces the value for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// All returns every stored setting with defaults filled in for keys that
// were never written.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	out := map[string]string{
		KeyTheme:           DefaultTheme,
		KeySelectedShelf:   domain.SmartShelfAll,
		KeyCoverBackground: "",
	}

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, rows.Err()
}

// Theme returns the selected UI theme.
func (s *Store) Theme(ctx context.Context) (string, error) {
	return s.Get(ctx, KeyTheme, DefaultTheme)
}

// SetTheme stores the UI theme.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	return s.Set(ctx, KeyTheme, theme)
}

// SelectedShelf returns the shelf the library view resumes on.
func (s *Store) SelectedShelf(ctx context.Context) (string, error) {
	return s.Get(ctx, KeySelectedShelf, domain.SmartShelfAll)
}

// SetSelectedShelf stores the shelf the library view resumes on.
func (s *Store) SetSelectedShelf(ctx context.Context, shelfID string) error {
	return s.Set(ctx, KeySelectedShelf, shelfID)
}

// CoverBackground returns the cover-flow background choice; empty means the
// client default.
func (s *Store) CoverBackground(ctx context.Context) (string, error) {
	return s.Get(ctx, KeyCoverBackground, "")
}

// SetCoverBackground stores the cover-flow background choice.
func (s *Store) SetCoverBackground(ctx context.Context, value string) error {
	return s.Set(ctx, KeyCoverBackground, value)
}
