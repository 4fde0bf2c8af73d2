package database

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/macrolog/backend/config"
)

// DB wraps the embedded database handle with an explicit open/close
// lifecycle so tests can run against isolated in-memory instances instead
// of a shared package-level handle.
type DB struct {
	*gorm.DB
}

// Open opens (creating if necessary) the database file from the configuration
// and brings its schema up to the latest generation.
func Open(cfg *config.Config) (*DB, error) {
	return OpenPath(cfg.DBPath)
}

// OpenPath opens the database at an explicit path. Use ":memory:" for an
// isolated throwaway instance.
func OpenPath(path string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	log.Printf("Opened database at %s (schema version %d)", path, LatestVersion)
	return &DB{db}, nil
}

// Close releases the underlying connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck checks if the database is accessible
func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
