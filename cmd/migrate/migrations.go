package main

import (
	"gorm.io/gorm"

	"github.com/arcians/profile-registry/internal/models"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		&models.Profile{},
	}
}

// runMigrations executes all database migrations
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		addProfileIndexes,
	}

	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}

	return nil
}

// addProfileIndexes indexes the short identifier handed out to clients.
// Duplicates are possible, so the index is not unique.
func addProfileIndexes(db *gorm.DB) error {
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_profiles_encrypted_id ON profiles(encrypted_id)`).Error
}
