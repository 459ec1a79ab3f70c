package config

import (
	"fmt"
	"strings"
	"time"

	"country-stats/internal/logging"
)

// Store backends.
const (
	BackendSQLite   = "sqlite"
	BackendGorm     = "gorm"
	BackendPostgres = "postgres"
)

// Database configures the data-access collaborator and its connection pool.
type Database struct {
	Backend      string        `yaml:"backend" env:"STORE_BACKEND"`
	Path         string        `yaml:"path" env:"DB_PATH"` // sqlite and gorm
	DSN          string        `yaml:"dsn" env:"DB_DSN"`   // postgres
	MaxOpenConns int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"DB_IDLE_TIMEOUT"`
}

// Server is the configuration handed to the HTTP layer at startup.
type Server struct {
	Port         int            `yaml:"port" env:"PORT"`
	CORSOrigins  []string       `yaml:"cors_origins" env:"CORS_ORIGIN" envSeparator:","`
	StaticDir    string         `yaml:"static_dir" env:"STATIC_DIR"`
	OTelEndpoint string         `yaml:"otel_endpoint" env:"OTEL_ENDPOINT"`
	Database     Database       `yaml:"database"`
	Log          logging.Config `yaml:"log"`
}

// DefaultServer returns the built-in server defaults.
func DefaultServer() Server {
	return Server{
		Port:        3001,
		CORSOrigins: []string{"*"},
		Database: Database{
			Backend:      BackendSQLite,
			Path:         "country_stats.db",
			MaxOpenConns: 10,
			IdleTimeout:  30 * time.Second,
		},
		Log: logging.Config{Format: "text", Level: "info"},
	}
}

// LoadServer builds a Server from defaults, file, .env and environment, then validates it.
func LoadServer(file string) (Server, error) {
	cfg := DefaultServer()
	if err := Load(file, &cfg); err != nil {
		return Server{}, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c *Server) normalize() {
	c.CORSOrigins = SplitList(c.CORSOrigins...)
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	c.Database.Backend = strings.ToLower(strings.TrimSpace(c.Database.Backend))
	if c.Database.Backend == "" {
		c.Database.Backend = BackendSQLite
	}
	c.StaticDir = strings.TrimSpace(c.StaticDir)
}

// Validate reports the first invalid setting.
func (c Server) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.Database.Backend {
	case BackendSQLite, BackendGorm:
		if strings.TrimSpace(c.Database.Path) == "" {
			return fmt.Errorf("database path is required for %s", c.Database.Backend)
		}
	case BackendPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database dsn is required for postgres")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Database.Backend)
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("connection limits must not be negative")
	}
	return nil
}

// Addr returns the listen address for Port.
func (c Server) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
