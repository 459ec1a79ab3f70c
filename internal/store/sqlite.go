package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"country-stats/internal/config"
	"country-stats/internal/model"
	"country-stats/internal/store/migrations"
)

// statsQuery picks the newest speaker and programmer record per country in one pass.
// Newest means the largest created_at, ties broken by the larger id.
const statsQuery = `
WITH es AS (
    SELECT country_id, estimated_count, pct_of_population, source, created_at,
           ROW_NUMBER() OVER (PARTITION BY country_id ORDER BY created_at DESC, english_id DESC) AS rn
      FROM english_speakers
), pg AS (
    SELECT country_id, conservative_est, mid_est, high_est, pct_conservative, pct_mid, pct_high, created_at,
           ROW_NUMBER() OVER (PARTITION BY country_id ORDER BY created_at DESC, programmer_id DESC) AS rn
      FROM programmers
)
SELECT c.country_name, c.population, c.one_pct_population,
       es.estimated_count, es.pct_of_population, es.source, es.created_at,
       pg.conservative_est, pg.mid_est, pg.high_est, pg.pct_conservative, pg.pct_mid, pg.pct_high, pg.created_at
  FROM countries AS c
  LEFT JOIN es ON es.country_id = c.country_id AND es.rn = 1
  LEFT JOIN pg ON pg.country_id = c.country_id AND pg.rn = 1
 ORDER BY c.country_name ASC, c.country_id ASC`

// SQLite answers stats queries from a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database at cfg.Path, applies migrations and verifies connectivity.
func OpenSQLite(ctx context.Context, cfg config.Database) (*SQLite, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	applyPool(db, cfg)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := ApplyMigrations(ctx, db, migrations.FS, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLite{db: db}, nil
}

// DB exposes the underlying handle for seeding and tests.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// FetchStatsRows returns one row per country ordered by name.
func (s *SQLite) FetchStatsRows(ctx context.Context) ([]model.StatsRow, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("checkout connection: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, statsQuery)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	out := []model.StatsRow{}
	for rows.Next() {
		var (
			row           model.StatsRow
			estCount      sql.NullInt64
			pctPopulation sql.NullFloat64
			source        sql.NullString
			esCreated     sql.NullInt64
			conservative  sql.NullInt64
			mid           sql.NullInt64
			high          sql.NullInt64
			pctCons       sql.NullFloat64
			pctMid        sql.NullFloat64
			pctHigh       sql.NullFloat64
			pgCreated     sql.NullInt64
		)
		if err := rows.Scan(
			&row.CountryName, &row.Population, &row.OnePctPopulation,
			&estCount, &pctPopulation, &source, &esCreated,
			&conservative, &mid, &high, &pctCons, &pctMid, &pctHigh, &pgCreated,
		); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		row.No = len(out) + 1
		row.EstCount = nullInt(estCount)
		row.PctOfPopulation = nullFloat(pctPopulation)
		row.Source = nullString(source)
		row.ESCreated = nullTime(esCreated)
		row.ConservativeEst = nullInt(conservative)
		row.MidEst = nullInt(mid)
		row.HighEst = nullInt(high)
		row.PctConservative = nullFloat(pctCons)
		row.PctMid = nullFloat(pctMid)
		row.PctHigh = nullFloat(pctHigh)
		row.PGCreated = nullTime(pgCreated)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}
	return out, nil
}
