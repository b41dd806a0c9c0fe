package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chatroom-registry/internal/domain"
	"chatroom-registry/internal/repository"
)

// GormRoomRepository is the GORM implementation of repository.RoomRepository.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRoomRepository")
	}
	return &GormRoomRepository{db: db}
}

func (r *GormRoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find room by id %d: %w", id, err)
	}
	return &room, nil
}

// FindByIDAndOwner queries id and owner jointly, so a room owned by
// someone else is indistinguishable from a room that does not exist.
func (r *GormRoomRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uint) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find room by id %d and owner %d: %w", id, ownerID, err)
	}
	return &room, nil
}

func (r *GormRoomRepository) FindAllByOwner(ctx context.Context, ownerID uint) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find rooms by owner %d: %w", ownerID, err)
	}
	return rooms, nil
}

// Save persists a room. The unique index on name is the authority for
// duplicate detection; violations surface as ErrDuplicateEntry.
func (r *GormRoomRepository) Save(ctx context.Context, room *domain.Room) error {
	err := r.db.WithContext(ctx).Save(room).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save room (id: %d, name: %s): %w", room.ID, room.Name, err)
	}
	return nil
}

func (r *GormRoomRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Room{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete room %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrRoomNotFound
	}
	return nil
}
