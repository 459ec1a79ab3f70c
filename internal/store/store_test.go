package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"country-stats/internal/config"
	"country-stats/internal/model"
	"country-stats/internal/store/migrations"
)

type seededStore interface {
	Store
	DB() *sql.DB
}

var backends = map[string]func(ctx context.Context, cfg config.Database) (seededStore, error){
	config.BackendSQLite: func(ctx context.Context, cfg config.Database) (seededStore, error) {
		return OpenSQLite(ctx, cfg)
	},
	config.BackendGorm: func(ctx context.Context, cfg config.Database) (seededStore, error) {
		return OpenGorm(ctx, cfg)
	},
}

func openTestStore(t *testing.T, backend string) seededStore {
	t.Helper()
	cfg := config.Database{
		Backend:      backend,
		Path:         filepath.Join(t.TempDir(), "stats.db"),
		MaxOpenConns: 4,
		IdleTimeout:  time.Second,
	}
	s, err := backends[backend](context.Background(), cfg)
	if err != nil {
		t.Fatalf("open %s store: %v", backend, err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s seededStore) {
	t.Helper()
	if err := SeedFile(context.Background(), s.DB(), filepath.Join("testdata", "seed.sql")); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func exec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func rowByName(t *testing.T, rows []model.StatsRow, name string) model.StatsRow {
	t.Helper()
	for _, r := range rows {
		if r.CountryName == name {
			return r
		}
	}
	t.Fatalf("row %q not found", name)
	return model.StatsRow{}
}

func TestFetchStatsRowsSeeded(t *testing.T) {
	for backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := openTestStore(t, backend)
			seed(t, s)

			rows, err := s.FetchStatsRows(context.Background())
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			wantNames := []string{"Brazil", "Chad", "Finland", "India"}
			if len(rows) != len(wantNames) {
				t.Fatalf("expected %d rows, got %d", len(wantNames), len(rows))
			}
			for i, name := range wantNames {
				if rows[i].CountryName != name {
					t.Fatalf("row %d: expected %s, got %s", i, name, rows[i].CountryName)
				}
				if rows[i].No != i+1 {
					t.Fatalf("row %d: expected No. %d, got %d", i, i+1, rows[i].No)
				}
			}

			brazil := rowByName(t, rows, "Brazil")
			if brazil.EstCount == nil || *brazil.EstCount != 11000000 {
				t.Fatalf("expected id 7 to win the same-timestamp tie, got %v", brazil.EstCount)
			}
			if brazil.Source == nil || *brazil.Source != "EF EPI" {
				t.Fatalf("unexpected Brazil source %v", brazil.Source)
			}
			if brazil.MidEst != nil || brazil.PGCreated != nil {
				t.Fatalf("expected absent programmer fields for Brazil, got %+v", brazil)
			}

			chad := rowByName(t, rows, "Chad")
			if chad.EstCount != nil || chad.PctOfPopulation != nil || chad.Source != nil || chad.ESCreated != nil {
				t.Fatalf("expected absent speaker fields for Chad, got %+v", chad)
			}
			if chad.Population != 18278568 {
				t.Fatalf("unexpected Chad population %d", chad.Population)
			}

			india := rowByName(t, rows, "India")
			if india.EstCount == nil || *india.EstCount != 129000000 {
				t.Fatalf("expected newest India speaker record, got %v", india.EstCount)
			}
			if india.MidEst == nil || *india.MidEst != 5400000 {
				t.Fatalf("expected newest India programmer record, got %v", india.MidEst)
			}
			wantCreated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			if india.ESCreated == nil || !india.ESCreated.Equal(wantCreated) {
				t.Fatalf("expected es_created %v, got %v", wantCreated, india.ESCreated)
			}
			if india.ESCreated.Location() != time.UTC {
				t.Fatalf("expected UTC timestamp, got %v", india.ESCreated.Location())
			}
		})
	}
}

func TestFetchStatsRowsLaterTimestampBeatsHigherID(t *testing.T) {
	for backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := openTestStore(t, backend)
			db := s.DB()
			exec(t, db, `INSERT INTO countries (country_id, country_name, population, one_pct_population) VALUES (1, 'Ghana', 34000000, 340000)`)
			exec(t, db, `INSERT INTO programmers (programmer_id, country_id, mid_est, created_at) VALUES (9, 1, 100, ?)`,
				time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())
			exec(t, db, `INSERT INTO programmers (programmer_id, country_id, mid_est, created_at) VALUES (4, 1, 200, ?)`,
				time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC).UnixMilli())

			rows, err := s.FetchStatsRows(context.Background())
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			if len(rows) != 1 {
				t.Fatalf("expected 1 row, got %d", len(rows))
			}
			if rows[0].MidEst == nil || *rows[0].MidEst != 200 {
				t.Fatalf("expected the later record to win, got %v", rows[0].MidEst)
			}
			if rows[0].PctMid != nil {
				t.Fatalf("expected null pct_mid to stay absent, got %v", *rows[0].PctMid)
			}
		})
	}
}

func TestFetchStatsRowsDuplicateNamesOrderByID(t *testing.T) {
	for backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := openTestStore(t, backend)
			db := s.DB()
			exec(t, db, `INSERT INTO countries (country_id, country_name, population, one_pct_population) VALUES (8, 'Congo', 2, 0.02)`)
			exec(t, db, `INSERT INTO countries (country_id, country_name, population, one_pct_population) VALUES (3, 'Congo', 1, 0.01)`)

			rows, err := s.FetchStatsRows(context.Background())
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			if len(rows) != 2 || rows[0].Population != 1 || rows[1].Population != 2 {
				t.Fatalf("expected id order for duplicate names, got %+v", rows)
			}
		})
	}
}

func TestFetchStatsRowsEmpty(t *testing.T) {
	for backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := openTestStore(t, backend)
			rows, err := s.FetchStatsRows(context.Background())
			if err != nil {
				t.Fatalf("fetch: %v", err)
			}
			if rows == nil || len(rows) != 0 {
				t.Fatalf("expected empty non-nil rows, got %#v", rows)
			}
		})
	}
}

func TestFetchStatsRowsCanceledContext(t *testing.T) {
	s := openTestStore(t, config.BackendSQLite)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.FetchStatsRows(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := openTestStore(t, config.BackendSQLite)
	if err := ApplyMigrations(context.Background(), s.DB(), migrations.FS, "."); err != nil {
		t.Fatalf("re-apply migrations: %v", err)
	}
	var count int
	if err := s.DB().QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", count)
	}
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INTEGER);\n-- +migrate Down\nDROP TABLE a;\n"
	up := ExtractUpMigration(content)
	if !strings.Contains(up, "CREATE TABLE a") || strings.Contains(up, "DROP TABLE") {
		t.Fatalf("unexpected up section %q", up)
	}
	if got := ExtractUpMigration("SELECT 1;"); got != "SELECT 1;" {
		t.Fatalf("expected whole content without markers, got %q", got)
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, config.Database{Backend: "mysql"}); err == nil {
		t.Fatal("expected unknown backend error")
	}
	if _, err := Open(ctx, config.Database{Backend: config.BackendSQLite}); err == nil {
		t.Fatal("expected missing path error")
	}
	if _, err := Open(ctx, config.Database{Backend: config.BackendPostgres}); err == nil {
		t.Fatal("expected missing dsn error")
	}
	_, err := Open(ctx, config.Database{
		Backend: config.BackendPostgres,
		DSN:     "postgres://stats@localhost:5432/stats?pool_max_conns=many",
	})
	if err == nil || !strings.Contains(err.Error(), "parse postgres dsn") {
		t.Fatalf("expected dsn parse error, got %v", err)
	}
}

func TestSeedFileMissing(t *testing.T) {
	s := openTestStore(t, config.BackendSQLite)
	if err := SeedFile(context.Background(), s.DB(), filepath.Join(t.TempDir(), "none.sql")); err == nil {
		t.Fatal("expected missing seed error")
	}
}

func TestFetchStatsRowsRepeatedOnOneStore(t *testing.T) {
	for backend := range backends {
		t.Run(backend, func(t *testing.T) {
			s := openTestStore(t, backend)
			seed(t, s)

			for i := 0; i < 2; i++ {
				rows, err := s.FetchStatsRows(context.Background())
				if err != nil {
					t.Fatalf("fetch %d: %v", i, err)
				}
				chad := rowByName(t, rows, "Chad")
				if chad.ESCreated != nil || chad.PGCreated != nil {
					t.Fatalf("fetch %d: expected no estimates for Chad, got es=%v pg=%v", i, chad.ESCreated, chad.PGCreated)
				}
				finland := rowByName(t, rows, "Finland")
				if finland.MidEst == nil || *finland.MidEst != 110000 {
					t.Fatalf("fetch %d: expected Finland programmer estimate, got %v", i, finland.MidEst)
				}
				if finland.PctOfPopulation == nil || *finland.PctOfPopulation != 70.3 {
					t.Fatalf("fetch %d: expected Finland speaker estimate, got %v", i, finland.PctOfPopulation)
				}
			}
		})
	}
}
