package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"chatroom-registry/internal/domain"
)

// MigrateDB brings the schema up to date. Initial table creation uses
// explicit SQL so MySQL index widths and the owner foreign key are under
// our control; existing tables go through AutoMigrate for column and
// index updates. The unique indexes created here are what the write
// paths rely on for duplicate detection.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	if err := migrateUsersTable(db); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	if err := migrateRoomsTable(db); err != nil {
		return fmt.Errorf("failed to migrate rooms table: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

func tableExists(db *gorm.DB, name string) (bool, error) {
	var count int64
	err := db.Raw(
		"SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
		name,
	).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking table %s: %w", name, err)
	}
	return count > 0, nil
}

func migrateUsersTable(db *gorm.DB) error {
	exists, err := tableExists(db, "users")
	if err != nil {
		return err
	}
	if !exists {
		return createUsersTable(db)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to auto-migrate users table: %w", err)
	}
	logrus.Info("Users table schema checked/updated successfully")
	return nil
}

func createUsersTable(db *gorm.DB) error {
	sql := `
	CREATE TABLE users (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(191) NOT NULL,
		password TEXT NOT NULL,
		created_at DATETIME(3),
		updated_at DATETIME(3),
		UNIQUE INDEX idx_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
	`
	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	logrus.Info("Users table created successfully")
	return nil
}

func migrateRoomsTable(db *gorm.DB) error {
	exists, err := tableExists(db, "rooms")
	if err != nil {
		return err
	}
	if !exists {
		return createRoomsTable(db)
	}
	if err := db.AutoMigrate(&domain.Room{}); err != nil {
		return fmt.Errorf("failed to auto-migrate rooms table: %w", err)
	}
	logrus.Info("Rooms table schema checked/updated successfully")
	return nil
}

func createRoomsTable(db *gorm.DB) error {
	sql := `
	CREATE TABLE rooms (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(191) NOT NULL,
		owner_id BIGINT UNSIGNED NOT NULL,
		created_at DATETIME(3),
		updated_at DATETIME(3),
		UNIQUE INDEX idx_room_name (name),
		INDEX idx_owner_id (owner_id),
		CONSTRAINT fk_rooms_owner FOREIGN KEY (owner_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci;
	`
	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to create rooms table: %w", err)
	}
	logrus.Info("Rooms table created successfully")
	return nil
}
