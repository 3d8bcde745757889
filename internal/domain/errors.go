package domain

import apperrors "github.com/tsundoku-app/tsundoku-server/internal/errors"

// Validation sentinels returned by the entity Validate methods.
var (
	ErrEmptyID             = apperrors.Validation("id must not be empty")
	ErrEmptyTitle          = apperrors.Validation("title must not be empty")
	ErrInvalidStatus       = apperrors.Validation("invalid reading status")
	ErrInvalidFinishedDate = apperrors.Validation("finished date must be YYYY-MM-DD")
	ErrEmptyBookID         = apperrors.Validation("book id must not be empty")
	ErrEmptyMemo           = apperrors.Validation("memo must have a quote or a comment")
	ErrNegativePage        = apperrors.Validation("page must not be negative")
	ErrEmptyShelfTitle     = apperrors.Validation("shelf title must not be empty")
	ErrSmartShelf          = apperrors.Validation("smart shelves cannot be modified")
)
