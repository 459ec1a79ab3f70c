package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"country-stats/internal/logging"
	"country-stats/internal/model"
)

// RowsSource produces the aggregated stats rows for one request.
type RowsSource interface {
	Rows(ctx context.Context) ([]model.StatsRow, error)
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the liveness probe.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// StatsHandler serves the country stats endpoints.
type StatsHandler struct {
	source RowsSource
}

func NewStatsHandler(source RowsSource) *StatsHandler {
	return &StatsHandler{source: source}
}

// Healthz reports liveness
// @Summary Liveness probe
// @Description Static OK marker; does not touch the data source
// @Tags health
// @Produce json
// @Success 200 {object} handler.HealthResponse
// @Router /healthz [get]
func (h *StatsHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{OK: true})
}

// CountryStats returns one row per country with the newest estimates
// @Summary Country stats
// @Description One row per country ordered by name, carrying the newest English speaker and programmer estimates
// @Tags stats
// @Produce json
// @Success 200 {array} model.StatsRow
// @Failure 500 {object} handler.ErrorResponse "Query failed"
// @Router /country-stats [get]
func (h *StatsHandler) CountryStats(w http.ResponseWriter, r *http.Request) {
	rows, err := h.source.Rows(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "country stats query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Query failed"})
		return
	}
	if rows == nil {
		rows = []model.StatsRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Component("api").Error("encode response", "error", err)
	}
}
