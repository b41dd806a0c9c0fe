// Package domain defines the persistent entities of the chat-room registry.
package domain

import "time"

// User is a registered account. Email is the login identifier and the
// subject embedded in issued session tokens. Password holds the bcrypt
// digest, never the plaintext.
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"type:varchar(191);uniqueIndex:idx_email;not null"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
