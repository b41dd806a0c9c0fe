package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chatroom-registry/internal/domain"
)

// RoomRepository is a mock implementation of repository.RoomRepository.
type RoomRepository struct {
	mock.Mock
}

func (m *RoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	args := m.Called(ctx, id)
	var room *domain.Room
	if args.Get(0) != nil {
		room = args.Get(0).(*domain.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*domain.Room, error) {
	args := m.Called(ctx, id, ownerID)
	var room *domain.Room
	if args.Get(0) != nil {
		room = args.Get(0).(*domain.Room)
	}
	return room, args.Error(1)
}

func (m *RoomRepository) FindAllByOwner(ctx context.Context, ownerID uint) ([]domain.Room, error) {
	args := m.Called(ctx, ownerID)
	var rooms []domain.Room
	if args.Get(0) != nil {
		rooms = args.Get(0).([]domain.Room)
	}
	return rooms, args.Error(1)
}

func (m *RoomRepository) Save(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *RoomRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
