package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"chatroom-registry/internal/domain"
	"chatroom-registry/internal/repository"
)

// DeleteErrorMode selects how an ownership mismatch on delete is
// reported to the caller.
type DeleteErrorMode string

const (
	// DeleteErrorUnified folds "room doesn't exist" and "exists but not
	// yours" into one not-found error, so a non-owner cannot probe for
	// room existence. This reproduces the original behavior and is the
	// default.
	DeleteErrorUnified DeleteErrorMode = "unified"
	// DeleteErrorDistinct reports an ownership mismatch as
	// ErrRoomForbidden, distinct from ErrRoomNotFound.
	DeleteErrorDistinct DeleteErrorMode = "distinct"
)

// RoomService handles room creation, listing, viewing and deletion.
// All callers are already authenticated; ownership is the only
// authorization rule, and only deletion checks it.
type RoomService struct {
	roomRepo   repository.RoomRepository
	deleteMode DeleteErrorMode
}

// NewRoomService creates a RoomService. An unrecognized mode falls back
// to DeleteErrorUnified.
func NewRoomService(roomRepo repository.RoomRepository, deleteMode DeleteErrorMode) *RoomService {
	if roomRepo == nil {
		panic("RoomRepository cannot be nil for RoomService")
	}
	if deleteMode != DeleteErrorDistinct {
		deleteMode = DeleteErrorUnified
	}
	return &RoomService{roomRepo: roomRepo, deleteMode: deleteMode}
}

// Create persists a new room owned by ownerID. The unique index on the
// room name is the authority for duplicates; there is no pre-check.
func (s *RoomService) Create(ctx context.Context, ownerID uint, name string) (*domain.Room, error) {
	logCtx := logrus.WithFields(logrus.Fields{"owner_id": ownerID, "room_name": name})

	if name == "" {
		return nil, ErrInvalidInput
	}

	room := &domain.Room{
		Name:    name,
		OwnerID: ownerID,
	}
	if err := s.roomRepo.Save(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Room creation failed: name already taken")
			return nil, ErrDuplicateRoomName
		}
		logCtx.WithError(err).Error("Failed to save new room to database")
		return nil, ErrInternalServer
	}

	logCtx.WithField("room_id", room.ID).Info("Room created successfully")
	return room, nil
}

// ListByOwner returns only the rooms owned by ownerID, never all rooms.
func (s *RoomService) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Room, error) {
	rooms, err := s.roomRepo.FindAllByOwner(ctx, ownerID)
	if err != nil {
		logrus.WithError(err).WithField("owner_id", ownerID).Error("Failed to list rooms by owner")
		return nil, ErrInternalServer
	}
	return rooms, nil
}

// Get fetches a room by id irrespective of owner. Viewing requires only
// an authenticated session, no ownership check.
func (s *RoomService) Get(ctx context.Context, roomID uint) (*domain.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		logrus.WithError(err).WithField("room_id", roomID).Error("Repository error fetching room")
		return nil, ErrInternalServer
	}
	return room, nil
}

// Delete removes a room on behalf of ownerID. Only the owner may delete
// a room; how a mismatch is reported depends on the configured mode.
// The deleted room is returned so the caller can echo its name.
func (s *RoomService) Delete(ctx context.Context, ownerID, roomID uint) (*domain.Room, error) {
	logCtx := logrus.WithFields(logrus.Fields{"owner_id": ownerID, "room_id": roomID})

	room, err := s.findForDelete(ctx, ownerID, roomID)
	if err != nil {
		logCtx.WithError(err).Warn("Room deletion refused")
		return nil, err
	}

	if err := s.roomRepo.Delete(ctx, room.ID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			// Lost a race with another delete of the same room.
			return nil, ErrRoomNotFound
		}
		logCtx.WithError(err).Error("Failed to delete room from database")
		return nil, ErrInternalServer
	}

	logCtx.Info("Room deleted successfully")
	return room, nil
}

func (s *RoomService) findForDelete(ctx context.Context, ownerID, roomID uint) (*domain.Room, error) {
	if s.deleteMode == DeleteErrorDistinct {
		room, err := s.roomRepo.FindByID(ctx, roomID)
		if err != nil {
			if errors.Is(err, repository.ErrRoomNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, ErrInternalServer
		}
		if room.OwnerID != ownerID {
			return nil, ErrRoomForbidden
		}
		return room, nil
	}

	// Unified mode: the joint (id, owner_id) lookup cannot tell an
	// absent room from someone else's room.
	room, err := s.roomRepo.FindByIDAndOwner(ctx, roomID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, ErrInternalServer
	}
	return room, nil
}
