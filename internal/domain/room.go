package domain

import "time"

// Room is a named chat space with exactly one owner. The name is unique
// across the whole registry; ownership never transfers.
type Room struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(191);uniqueIndex:idx_room_name;not null"`
	OwnerID   uint      `gorm:"index:idx_owner_id;not null"` // FK to users.id, enforced by migration
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
