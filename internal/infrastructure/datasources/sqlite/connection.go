package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"token-forge.backend/internal/config"
)

// Open opens the embedded SQLite store used when no DATABASE_URL is configured.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = "tokenforge.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store %q: %w", path, err)
	}
	return db, nil
}
