package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"token-forge.backend/internal/config"
)

var (
	sqlOpen = sql.Open
	dbPing  = func(ctx context.Context, db *sql.DB) error { return db.PingContext(ctx) }
)

// NewConnection opens a lib/pq pool for cfg.URL. It does not contact the server.
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("failed to open database: empty connection string")
	}
	db, err := sqlOpen("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return db, nil
}

// Ping checks the server answers within cfg.PingTimeout.
func Ping(ctx context.Context, db *sql.DB, cfg config.DatabaseConfig) error {
	if cfg.PingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.PingTimeout)
		defer cancel()
	}
	if err := dbPing(ctx, db); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// OpenGorm wraps an existing pool in a gorm handle. Reachability is checked by Ping.
func OpenGorm(db *sql.DB) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:          false,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialise gorm: %w", err)
	}
	return gdb, nil
}
