package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/prplkane/umazona-website/internal/models"
)

// DatabaseOptions configures database initialization
type DatabaseOptions struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// InitDatabase opens the embedded SQLite store and wraps it in Bun.
func InitDatabase(opts DatabaseOptions, logger *slog.Logger, logLevel string) (*bun.DB, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("database path must be specified")
	}

	path := opts.Path
	if !filepath.IsAbs(path) {
		cwd, _ := os.Getwd()
		path = filepath.Join(cwd, path)
	}

	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	configurePool(sqlDB, opts)
	enableDebugging(db, logLevel)

	logger.Info("connected to the SQLite database", "path", path)
	return db, nil
}

// CreateSchema creates the events and contacts tables. A failure here is
// fatal for startup; there is no degraded-start mode without the store.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	tables := []any{
		(*models.Event)(nil),
		(*models.Contact)(nil),
	}

	for _, table := range tables {
		if _, err := db.NewCreateTable().
			Model(table).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", table, err)
		}
	}

	return nil
}

func configurePool(sqlDB *sql.DB, opts DatabaseOptions) {
	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		// single-writer embedded store
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)

	maxIdle := opts.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 1
	}
	sqlDB.SetMaxIdleConns(maxIdle)

	connMaxLifetime := opts.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = time.Hour
	}
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
}

func enableDebugging(db *bun.DB, logLevel string) {
	if logLevel == "debug" {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
		))
	}
}
