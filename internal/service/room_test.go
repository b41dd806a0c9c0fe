package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatroom-registry/internal/domain"
	"chatroom-registry/internal/repository"
	"chatroom-registry/internal/repository/mocks"
	"chatroom-registry/internal/service"
)

// --- Create ---

func TestRoomService_Create_Success(t *testing.T) {
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorUnified)
	ctx := context.Background()

	mockRoomRepo.On("Save", ctx, mock.MatchedBy(func(room *domain.Room) bool {
		assert.Equal(t, "general", room.Name)
		assert.Equal(t, uint(3), room.OwnerID, "creator becomes the owner")
		return true
	})).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Room).ID = 5
		}).
		Return(nil).
		Once()

	room, err := roomService.Create(ctx, 3, "general")

	assert.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, uint(5), room.ID)
	assert.Equal(t, uint(3), room.OwnerID)

	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_Create_DuplicateName(t *testing.T) {
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorUnified)
	ctx := context.Background()

	mockRoomRepo.On("Save", ctx, mock.AnythingOfType("*domain.Room")).
		Return(repository.ErrDuplicateEntry).
		Once()

	_, err := roomService.Create(ctx, 3, "general")

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrDuplicateRoomName))

	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_Create_EmptyName(t *testing.T) {
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorUnified)

	_, err := roomService.Create(context.Background(), 3, "")

	assert.ErrorIs(t, err, service.ErrInvalidInput)
	mockRoomRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- ListByOwner ---

func TestRoomService_ListByOwner(t *testing.T) {
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorUnified)
	ctx := context.Background()
	owned := []domain.Room{
		{ID: 1, Name: "general", OwnerID: 3},
		{ID: 4, Name: "random", OwnerID: 3},
	}

	mockRoomRepo.On("FindAllByOwner", ctx, uint(3)).Return(owned, nil).Once()

	rooms, err := roomService.ListByOwner(ctx, 3)

	assert.NoError(t, err)
	require.Len(t, rooms, 2)
	for _, room := range rooms {
		assert.Equal(t, uint(3), room.OwnerID, "listing must be scoped to the owner")
	}

	mockRoomRepo.AssertExpectations(t)
}

// --- Get ---

func TestRoomService_Get(t *testing.T) {
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorUnified)
	ctx := context.Background()

	// Any authenticated user may view any room; the lookup ignores the owner.
	mockRoomRepo.On("FindByID", ctx, uint(5)).
		Return(&domain.Room{ID: 5, Name: "general", OwnerID: 99}, nil).
		Once()
	mockRoomRepo.On("FindByID", ctx, uint(6)).
		Return(nil, repository.ErrRoomNotFound).
		Once()

	room, err := roomService.Get(ctx, 5)
	assert.NoError(t, err)
	assert.Equal(t, "general", room.Name)

	_, err = roomService.Get(ctx, 6)
	assert.ErrorIs(t, err, service.ErrRoomNotFound)

	mockRoomRepo.AssertExpectations(t)
}

// --- Delete, unified mode ---

func TestRoomService_Delete_Owner_Unified(t *testing.T) {
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorUnified)
	ctx := context.Background()
	room := &domain.Room{ID: 5, Name: "general", OwnerID: 3}

	mockRoomRepo.On("FindByIDAndOwner", ctx, uint(5), uint(3)).Return(room, nil).Once()
	mockRoomRepo.On("Delete", ctx, uint(5)).Return(nil).Once()

	deleted, err := roomService.Delete(ctx, 3, 5)

	assert.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "general", deleted.Name)

	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_Delete_NonOwner_Unified(t *testing.T) {
	// In unified mode a non-owner's delete looks exactly like a delete of
	// a nonexistent room: the joint lookup misses either way.
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorUnified)
	ctx := context.Background()

	mockRoomRepo.On("FindByIDAndOwner", ctx, uint(5), uint(8)).
		Return(nil, repository.ErrRoomNotFound).
		Once()

	_, err := roomService.Delete(ctx, 8, 5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRoomNotFound))

	mockRoomRepo.AssertExpectations(t)
	mockRoomRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// --- Delete, distinct mode ---

func TestRoomService_Delete_NonOwner_Distinct(t *testing.T) {
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorDistinct)
	ctx := context.Background()

	mockRoomRepo.On("FindByID", ctx, uint(5)).
		Return(&domain.Room{ID: 5, Name: "general", OwnerID: 3}, nil).
		Once()

	_, err := roomService.Delete(ctx, 8, 5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRoomForbidden))
	assert.False(t, errors.Is(err, service.ErrRoomNotFound))

	mockRoomRepo.AssertExpectations(t)
	mockRoomRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRoomService_Delete_Absent_Distinct(t *testing.T) {
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorDistinct)
	ctx := context.Background()

	mockRoomRepo.On("FindByID", ctx, uint(6)).
		Return(nil, repository.ErrRoomNotFound).
		Once()

	_, err := roomService.Delete(ctx, 3, 6)

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrRoomNotFound))

	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_Delete_Owner_Distinct(t *testing.T) {
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorDistinct)
	ctx := context.Background()
	room := &domain.Room{ID: 5, Name: "general", OwnerID: 3}

	mockRoomRepo.On("FindByID", ctx, uint(5)).Return(room, nil).Once()
	mockRoomRepo.On("Delete", ctx, uint(5)).Return(nil).Once()

	deleted, err := roomService.Delete(ctx, 3, 5)

	assert.NoError(t, err)
	assert.Equal(t, uint(5), deleted.ID)

	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_UnknownModeFallsBackToUnified(t *testing.T) {
	mockRoomRepo := new(mocks.RoomRepository)
	roomService := service.NewRoomService(mockRoomRepo, service.DeleteErrorMode("bogus"))
	ctx := context.Background()

	mockRoomRepo.On("FindByIDAndOwner", ctx, uint(5), uint(3)).
		Return(nil, repository.ErrRoomNotFound).
		Once()

	_, err := roomService.Delete(ctx, 3, 5)
	assert.ErrorIs(t, err, service.ErrRoomNotFound)

	mockRoomRepo.AssertExpectations(t)
}
