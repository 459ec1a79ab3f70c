package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"country-stats/internal/config"
	"country-stats/internal/model"
	"country-stats/internal/stats"
	"country-stats/internal/store/migrations"
)

// Gorm reads the three tables separately and merges them in memory.
type Gorm struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

// OpenGorm opens the SQLite file at cfg.Path through GORM with the pure-Go driver.
func OpenGorm(ctx context.Context, cfg config.Database) (*Gorm, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, fmt.Errorf("gorm path is required")
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql handle: %w", err)
	}
	applyPool(sqlDB, cfg)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping gorm: %w", err)
	}
	if err := ApplyMigrations(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate gorm: %w", err)
	}
	return &Gorm{db: db, sqlDB: sqlDB}, nil
}

// DB exposes the underlying handle for seeding and tests.
func (g *Gorm) DB() *sql.DB {
	return g.sqlDB
}

func (g *Gorm) Ping(ctx context.Context) error {
	return g.sqlDB.PingContext(ctx)
}

func (g *Gorm) Close() error {
	if g == nil || g.sqlDB == nil {
		return nil
	}
	return g.sqlDB.Close()
}

// FetchStatsRows loads countries and both estimate tables on one connection.
func (g *Gorm) FetchStatsRows(ctx context.Context) ([]model.StatsRow, error) {
	var (
		countries   []model.Country
		speakers    []model.SpeakerEstimate
		programmers []model.ProgrammerEstimate
	)

	err := g.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		// Each query needs its own statement; tx alone would carry the first table forward.
		q := tx.Session(&gorm.Session{NewDB: true})
		if err := q.Order("country_id").Find(&countries).Error; err != nil {
			return fmt.Errorf("load countries: %w", err)
		}
		if err := q.Find(&speakers).Error; err != nil {
			return fmt.Errorf("load english speakers: %w", err)
		}
		if err := q.Find(&programmers).Error; err != nil {
			return fmt.Errorf("load programmers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range speakers {
		speakers[i].CreatedAt = fromMillis(speakers[i].CreatedAtMillis)
	}
	for i := range programmers {
		programmers[i].CreatedAt = fromMillis(programmers[i].CreatedAtMillis)
	}
	return stats.Aggregate(countries, speakers, programmers), nil
}
