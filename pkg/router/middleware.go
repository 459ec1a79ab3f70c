package router

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"country-stats/internal/logging"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type routeKey struct{}

// routeRecord lets dispatch report the matched pattern back to ServeHTTP.
type routeRecord struct {
	route string
}

func withRoute(req *http.Request, rec *routeRecord) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), routeKey{}, rec))
}

func routeFrom(req *http.Request) *routeRecord {
	if rec, ok := req.Context().Value(routeKey{}).(*routeRecord); ok {
		return rec
	}
	return &routeRecord{}
}

// requestID reuses a sane incoming X-Request-ID or mints one, echoes it, and stores it
// in the request context for logging.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := strings.TrimSpace(req.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, req.WithContext(logging.WithRequestID(req.Context(), id)))
	})
}

type corsPolicy struct {
	any     bool
	allowed map[string]bool
}

func newCORSPolicy(origins []string) *corsPolicy {
	p := &corsPolicy{allowed: make(map[string]bool)}
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			p.any = true
		default:
			p.allowed[o] = true
		}
	}
	return p
}

func (p *corsPolicy) allows(origin string) bool {
	return p.any || p.allowed[origin]
}

// middleware reflects allowed origins with credentials and answers preflight requests.
func (p *corsPolicy) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, req)
			return
		}

		h := w.Header()
		h.Add("Vary", "Origin")
		allowed := p.allows(origin)
		if allowed {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if req.Method == http.MethodOptions && req.Header.Get("Access-Control-Request-Method") != "" {
			if !allowed {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			h.Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
			if reqHeaders := req.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
				h.Set("Access-Control-Allow-Headers", reqHeaders)
			}
			h.Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, req)
	})
}
