package client

import (
	"context"
	"sync"

	"country-stats/internal/stats"
	"country-stats/internal/view"
)

// RowFetcher is satisfied by *Client.
type RowFetcher interface {
	FetchRows(ctx context.Context) ([]view.Row, error)
}

// Loader keeps at most one load current. Starting a load cancels the previous one, and a
// load that finishes after being superseded returns stats.ErrStaleResponse.
type Loader struct {
	fetcher RowFetcher

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewLoader(f RowFetcher) *Loader {
	return &Loader{fetcher: f}
}

// Load fetches the row set under a new generation.
func (l *Loader) Load(ctx context.Context) ([]view.Row, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.mu.Unlock()

	rows, err := l.fetcher.FetchRows(ctx)

	l.mu.Lock()
	current := gen == l.gen
	if current {
		l.cancel = nil
	}
	l.mu.Unlock()

	if !current {
		return nil, stats.ErrStaleResponse
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Cancel aborts the in-flight load, whose result is then discarded.
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
