package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hillgate/server/internal/models"
)

// NewDatabase opens the SQLite database at the given path. TranslateError is
// enabled so unique-constraint violations surface as gorm.ErrDuplicatedKey.
// Foreign-key constraints are not created: property deletion must not cascade
// or be blocked by tenant records, which keep their property reference.
func NewDatabase(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// NewTestDB opens an in-memory SQLite database for tests. The pool is pinned
// to a single connection: a second pooled connection would see its own empty
// in-memory database.
func NewTestDB() (*gorm.DB, error) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// MigrateSchema creates or updates the tables for all models.
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Property{},
		&models.Tenant{},
		&models.User{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// EnsureDefaultAdmin creates an admin account when the users table is empty,
// so a fresh deployment can be logged into.
func EnsureDefaultAdmin(db *gorm.DB, username, password string, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := models.User{
		Username: username,
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	log.WithField("username", username).Info("Created default admin account")
	return nil
}
