package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Client configures the country-stats CLI.
type Client struct {
	APIBase        string        `yaml:"api_base_url" env:"API_BASE_URL"`
	PageSize       int           `yaml:"page_size" env:"PAGE_SIZE"`
	DateLocation   string        `yaml:"date_location" env:"DATE_LOCATION"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
}

// DefaultClient returns the built-in client defaults.
func DefaultClient() Client {
	return Client{
		APIBase:        "http://localhost:3001",
		PageSize:       25,
		DateLocation:   "UTC",
		RequestTimeout: 15 * time.Second,
	}
}

// LoadClient builds a Client from defaults, file, .env and environment, then validates it.
func LoadClient(file string) (Client, error) {
	cfg := DefaultClient()
	if err := Load(file, &cfg); err != nil {
		return Client{}, err
	}
	cfg.APIBase = strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	if err := cfg.Validate(); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Client) Validate() error {
	u, err := url.Parse(c.APIBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base url %q must be absolute", c.APIBase)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be greater than zero")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves DateLocation; empty means UTC.
func (c Client) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.DateLocation)
	if name == "" || strings.EqualFold(name, "utc") {
		return time.UTC, nil
	}
	if strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("date location %q: %w", name, err)
	}
	return loc, nil
}
