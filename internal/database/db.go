package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/repeto/placement-board/internal/config"
	"github.com/repeto/placement-board/internal/models"
)

// Open connects to Postgres and migrates the schema. The handle is returned
// to the caller for injection; there is no package-level connection.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established, running migrations...")
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables for all models. Split out so tests
// can run it against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Contact{},
		&models.Category{},
		&models.CategoryOption{},
		&models.FilterLink{},
	)
}

// Close releases the underlying connection pool at process shutdown.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to retrieve database handle on close: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}
