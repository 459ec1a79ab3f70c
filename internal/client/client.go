// Package client fetches the stats rows from the HTTP API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"country-stats/internal/config"
	"country-stats/internal/logging"
	"country-stats/internal/stats"
	"country-stats/internal/view"
)

// StatsPath is the endpoint serving the stats rows.
const StatsPath = "/api/country-stats"

// maxBody bounds the response size read from the API.
const maxBody = 32 << 20

type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger
}

// New builds a Client for cfg. A nil httpClient gets one with cfg.RequestTimeout.
func New(cfg config.Client, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	return &Client{
		base:   cfg.APIBase,
		http:   httpClient,
		logger: logging.Component("client"),
	}
}

// FetchRows GETs the full row set. Transport errors, non-2xx statuses and bodies that are
// not a JSON array of objects are all reported as stats.ErrDataSourceUnavailable.
func (c *Client) FetchRows(ctx context.Context) ([]view.Row, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+StatsPath, nil)
	if err != nil {
		return nil, stats.Unavailable(fmt.Errorf("build request: %w", err))
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, stats.Unavailable(fmt.Errorf("get %s: %w", StatsPath, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil, stats.Unavailable(fmt.Errorf("get %s: HTTP %d", StatsPath, resp.StatusCode))
	}

	rows, err := decodeRows(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, stats.Unavailable(err)
	}
	c.logger.DebugContext(ctx, "fetched stats rows",
		"rows", len(rows), "request_id", requestID, "duration", time.Since(start))
	return rows, nil
}

func decodeRows(r io.Reader) ([]view.Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode body: unexpected data after the JSON array")
	}
	items, ok := body.([]any)
	if !ok {
		return nil, fmt.Errorf("decode body: expected a JSON array, got %T", body)
	}
	rows := make([]view.Row, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decode body: element %d is %T, not an object", i, item)
		}
		rows = append(rows, view.Row(obj))
	}
	return rows, nil
}
