package repository

import "errors"

// Common repository errors.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry indicates an insert or update violated a unique
	// constraint (email, room name).
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// Resource-specific aliases, kept distinct so callers can name what they
// were looking for without a new error kind.
var (
	ErrUserNotFound = ErrNotFound
	ErrRoomNotFound = ErrNotFound
)
