// Command country-stats-api serves the latest English speaker and programmer estimates
// per country.
//
// @title Country Stats API
// @version 1.0
// @description Latest English speaker and programmer estimates per country.
// @BasePath /api
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"country-stats/internal/api"
	"country-stats/internal/config"
	"country-stats/internal/logging"
	"country-stats/internal/metrics"
	"country-stats/internal/stats"
	"country-stats/internal/store"
	"country-stats/internal/telemetry"
	"country-stats/pkg/router"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	seedPath := flag.String("seed", "", "SQL file executed against the sqlite or gorm database at startup")
	port := flag.Int("port", 0, "listen port (overrides PORT)")
	flag.Parse()

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	if *port > 0 {
		cfg.Port = *port
		if err := cfg.Validate(); err != nil {
			config.Exitf("Error: %v", err)
		}
	}

	logger := logging.Setup(cfg.Log)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "country-stats-api", cfg.OTelEndpoint)
	if err != nil {
		config.Exitf("Error: init tracing: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("flush traces", "error", err)
		}
	}()

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		config.Exitf("Error: open store: %v", err)
	}
	defer st.Close()

	if *seedPath != "" {
		seeder, ok := st.(interface{ DB() *sql.DB })
		if !ok {
			config.Exitf("Error: -seed needs the %s or %s backend", config.BackendSQLite, config.BackendGorm)
		}
		if err := store.SeedFile(ctx, seeder.DB(), *seedPath); err != nil {
			config.Exitf("Error: %v", err)
		}
		logger.Info("seeded database", "file", *seedPath)
	}

	m := metrics.New("country_stats")
	svc := stats.NewService(st, m, logging.Component("stats"))
	r := api.NewRouter(
		api.Deps{Stats: svc, Metrics: m.Handler(), StaticDir: cfg.StaticDir},
		router.WithCORS(cfg.CORSOrigins),
		router.WithObserver(m),
	)

	logger.Info("starting country stats api",
		"addr", cfg.Addr(), "backend", cfg.Database.Backend, "cors", cfg.CORSOrigins)
	if err := r.Start(ctx, cfg.Addr()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
