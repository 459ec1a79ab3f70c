package stats

import (
	"context"
	"log/slog"
	"time"

	"country-stats/internal/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Fetcher is the data-access collaborator: it returns every StatsRow in country name order
// with the latest-per-country join already applied.
type Fetcher interface {
	FetchStatsRows(ctx context.Context) ([]model.StatsRow, error)
}

// Recorder receives aggregation outcomes; internal/metrics implements it.
type Recorder interface {
	ObserveAggregation(d time.Duration, rows int, err error)
}

// Service runs one aggregation per call and never returns a partial row set.
type Service struct {
	fetcher  Fetcher
	recorder Recorder
	logger   *slog.Logger
}

// NewService builds a Service over fetcher. recorder may be nil.
func NewService(fetcher Fetcher, recorder Recorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, recorder: recorder, logger: logger}
}

// Rows fetches the full row set. Any failure is reported as DataSourceUnavailable.
func (s *Service) Rows(ctx context.Context) ([]model.StatsRow, error) {
	ctx, span := otel.Tracer("country-stats/stats").Start(ctx, "stats.Rows")
	defer span.End()

	start := time.Now()
	rows, err := s.fetch(ctx)
	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.ObserveAggregation(elapsed, len(rows), err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		s.logger.ErrorContext(ctx, "aggregation failed", "error", err, "duration_ms", elapsed.Milliseconds())
		return nil, Unavailable(err)
	}
	span.SetAttributes(attribute.Int("stats.rows", len(rows)))
	s.logger.DebugContext(ctx, "aggregation complete", "rows", len(rows), "duration_ms", elapsed.Milliseconds())
	return rows, nil
}

func (s *Service) fetch(ctx context.Context) ([]model.StatsRow, error) {
	if s.fetcher == nil {
		return nil, &Error{Kind: KindDataSourceUnavailable, Message: "no data source configured"}
	}
	rows, err := s.fetcher.FetchStatsRows(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.StatsRow{}
	}
	return rows, nil
}
