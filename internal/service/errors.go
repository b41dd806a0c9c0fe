package service

import "errors"

// Business errors surfaced to the HTTP layer. Handlers map these to
// status codes in a single place; anything not listed here is treated
// as an internal error.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrRoomForbidden        = errors.New("you don't have privileges to modify this room")
	ErrAuthenticationFailed = errors.New("incorrect email or password")
	ErrDuplicateEmail       = errors.New("email already registered")
	ErrDuplicateRoomName    = errors.New("room with this name already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrInternalServer       = errors.New("internal server error")
)
