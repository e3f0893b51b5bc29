package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"uqm-starseed/internal/shared/config"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
	Driver string
}

type Tx struct {
	*sql.Tx
}

type Executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (db *DB) BeginTxContext(ctx context.Context) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx}, nil
}

func Connect() (*DB, error) {
	return Open(config.GlobalConfig)
}

// Open connects with an explicit configuration. The driver is one of
// postgres, sqlite3 (cgo) or sqlite (pure Go).
func Open(cfg *config.Config) (*DB, error) {
	logger := slog.With("component", "database", "operation", "connect")
	logger.Debug("Initializing database connection")

	logger.Info("Connecting to database",
		"driver", cfg.Database.Driver,
		"host", cfg.Database.Host,
		"path", cfg.Database.Path,
		"database", cfg.Database.Name,
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	sqlDB, err := sql.Open(cfg.Database.Driver, cfg.ConnectionString())
	if err != nil {
		logger.Error("Failed to open database connection",
			"error", err, "driver", cfg.Database.Driver)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen := cfg.Database.MaxOpenConns
	if cfg.Database.Driver != "postgres" {
		// sqlite serialises writers; one connection also keeps :memory: databases shared
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Debug("Testing database connection with ping")
	if err := sqlDB.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err, "driver", cfg.Database.Driver)
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Error("Failed to close database after ping failure", "close_error", closeErr, "ping_error", err)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established successfully", "driver", cfg.Database.Driver)

	return &DB{DB: sqlDB, Driver: cfg.Database.Driver}, nil
}
