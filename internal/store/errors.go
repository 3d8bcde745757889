package store

import apperrors "github.com/tsundoku-app/tsundoku-server/internal/errors"

// Sentinel errors returned by store operations.
var (
	ErrBookNotFound  = apperrors.NotFound("book not found")
	ErrBookExists    = apperrors.AlreadyExists("book already exists")
	ErrDuplicateISBN = apperrors.AlreadyExists("a book with this ISBN is already registered")

	ErrMemoNotFound = apperrors.NotFound("memo not found")
	ErrMemoExists   = apperrors.AlreadyExists("memo already exists")

	ErrShelfNotFound   = apperrors.NotFound("shelf not found")
	ErrDuplicateShelf  = apperrors.AlreadyExists("shelf already exists")
	ErrSmartShelfWrite = apperrors.Validation("smart shelves are not persisted")
)
