package repository

import (
	"context"

	"chatroom-registry/internal/domain"
)

// RoomRepository stores and retrieves chat rooms.
type RoomRepository interface {
	// FindByID looks a room up by primary key. Returns ErrRoomNotFound
	// when absent.
	FindByID(ctx context.Context, id uint) (*domain.Room, error)

	// FindByIDAndOwner looks a room up by primary key and owner jointly.
	// Returns ErrRoomNotFound both when the room is absent and when it
	// belongs to a different owner; the two cases are indistinguishable
	// by design at this level.
	FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*domain.Room, error)

	// FindAllByOwner returns every room owned by the given user, oldest
	// first. An owner with no rooms yields an empty slice, not an error.
	FindAllByOwner(ctx context.Context, ownerID uint) ([]domain.Room, error)

	// Save persists a room. A unique-constraint violation on the room
	// name is reported as ErrDuplicateEntry.
	Save(ctx context.Context, room *domain.Room) error

	// Delete removes a room by primary key. Deleting an absent room
	// returns ErrRoomNotFound.
	Delete(ctx context.Context, id uint) error
}
