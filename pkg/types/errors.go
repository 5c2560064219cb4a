package types

import "errors"

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Validation errors. These are detected close to parse time and are wrapped
// with the offending raw string by the caller.
var (
	ErrInvalidDate        = errors.New("invalid date")
	ErrUnknownVariant     = errors.New("unknown variant")
	ErrUnknownContactKind = errors.New("unknown contact info kind")
	ErrInvalidName        = errors.New("name must not be empty")
	ErrFormat             = errors.New("malformed template line")
)

// Entity operation errors.
var (
	ErrNotFound       = errors.New("entity not found")
	ErrNotPersisted   = errors.New("entity has not been persisted")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// ErrPartialWrite marks a multi-statement write that failed after the entity
// row was already committed. The row exists but its associations are
// incomplete; there is no rollback.
var ErrPartialWrite = errors.New("partial write")

// Query precondition errors.
var ErrEmptyIDList = errors.New("id list must not be empty")

// Selection errors for interactive disambiguation at the CLI boundary.
var (
	ErrAborted      = errors.New("selection aborted")
	ErrInvalidInput = errors.New("invalid input")
)
