// Package store holds the data-access collaborators that answer stats.Fetcher.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"country-stats/internal/config"
	"country-stats/internal/stats"
)

// Store is a stats.Fetcher backed by a connection pool.
type Store interface {
	stats.Fetcher
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Database) (Store, error) {
	switch cfg.Backend {
	case "", config.BackendSQLite:
		return OpenSQLite(ctx, cfg)
	case config.BackendGorm:
		return OpenGorm(ctx, cfg)
	case config.BackendPostgres:
		return OpenPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// SeedFile executes the SQL statements in path against db.
func SeedFile(ctx context.Context, db *sql.DB, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("exec seed %s: %w", path, err)
	}
	return nil
}

func applyPool(db *sql.DB, cfg config.Database) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.IdleTimeout > 0 {
		db.SetConnMaxIdleTime(cfg.IdleTimeout)
	}
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullTime(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := fromMillis(v.Int64)
	return &t
}
