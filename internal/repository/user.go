// Package repository defines the storage interfaces the service layer
// depends on. Implementations live under internal/infra/persistence.
package repository

import (
	"context"

	"chatroom-registry/internal/domain"
)

// UserRepository stores and retrieves user accounts.
type UserRepository interface {
	// FindByEmail looks a user up by email. Returns ErrUserNotFound when
	// no such account exists.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID looks a user up by primary key. Returns ErrUserNotFound
	// when no such account exists.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// Save persists a user. A unique-constraint violation on email is
	// reported as ErrDuplicateEntry; the caller must not pre-check.
	Save(ctx context.Context, user *domain.User) error
}
