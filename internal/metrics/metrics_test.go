package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAggregation(t *testing.T) {
	m := New("")

	m.ObserveAggregation(10*time.Millisecond, 42, nil)
	m.ObserveAggregation(time.Millisecond, 0, errors.New("down"))

	if got := testutil.ToFloat64(m.AggregationRows); got != 42 {
		t.Fatalf("expected rows gauge 42, got %v", got)
	}
	if got := testutil.ToFloat64(m.AggregationFailures); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
}

func TestObserveRequestAndHandler(t *testing.T) {
	m := New("test")
	m.ObserveRequest("GET", "/api/healthz", 200, time.Millisecond)

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/healthz", "200")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "test_http_requests_total") {
		t.Fatalf("expected exposition to include request counter, got %s", body)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAggregation(time.Second, 1, nil)
	m.ObserveRequest("GET", "/", 200, time.Second)
}
