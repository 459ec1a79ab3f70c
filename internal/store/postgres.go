package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"country-stats/internal/config"
	"country-stats/internal/model"
)

// postgresQuery matches the SQLite query's newest-record rule using LATERAL subqueries.
const postgresQuery = `
SELECT c.country_name, c.population::bigint, c.one_pct_population::float8,
       es.estimated_count, es.pct_of_population, es.source, es.created_date,
       pg.conservative_est, pg.mid_est, pg.high_est, pg.pct_conservative, pg.pct_mid, pg.pct_high, pg.created_date
  FROM countries AS c
  LEFT JOIN LATERAL (
        SELECT s.estimated_count::bigint AS estimated_count,
               s.pct_of_population::float8 AS pct_of_population,
               s.source::text AS source,
               s.created_date
          FROM english_speakers AS s
         WHERE s.country_id = c.country_id
         ORDER BY s.created_date DESC, s.english_id DESC
         LIMIT 1
  ) AS es ON true
  LEFT JOIN LATERAL (
        SELECT p.conservative_est::bigint AS conservative_est,
               p.mid_est::bigint AS mid_est,
               p.high_est::bigint AS high_est,
               p.pct_conservative::float8 AS pct_conservative,
               p.pct_mid::float8 AS pct_mid,
               p.pct_high::float8 AS pct_high,
               p.created_date
          FROM programmers AS p
         WHERE p.country_id = c.country_id
         ORDER BY p.created_date DESC, p.programmer_id DESC
         LIMIT 1
  ) AS pg ON true
 ORDER BY c.country_name ASC, c.country_id ASC`

// Postgres answers stats queries from an externally managed PostgreSQL schema.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a pool from cfg.DSN and verifies connectivity.
func OpenPostgres(ctx context.Context, cfg config.Database) (*Postgres, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.IdleTimeout > 0 {
		poolCfg.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() error {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// FetchStatsRows returns one row per country ordered by name.
func (p *Postgres) FetchStatsRows(ctx context.Context) ([]model.StatsRow, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, postgresQuery)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	out := []model.StatsRow{}
	for rows.Next() {
		var row model.StatsRow
		if err := rows.Scan(
			&row.CountryName, &row.Population, &row.OnePctPopulation,
			&row.EstCount, &row.PctOfPopulation, &row.Source, &row.ESCreated,
			&row.ConservativeEst, &row.MidEst, &row.HighEst,
			&row.PctConservative, &row.PctMid, &row.PctHigh, &row.PGCreated,
		); err != nil {
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		row.No = len(out) + 1
		if row.ESCreated != nil {
			t := row.ESCreated.UTC()
			row.ESCreated = &t
		}
		if row.PGCreated != nil {
			t := row.PGCreated.UTC()
			row.PGCreated = &t
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats rows: %w", err)
	}
	return out, nil
}
