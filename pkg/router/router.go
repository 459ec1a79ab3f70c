package router

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/klauspost/compress/gzhttp"
)

var (
	timeColor = color.New(color.FgCyan)
	durColor  = color.New(color.FgBlue)
)

// HandlerFunc is the handler shape routes are registered with.
type HandlerFunc func(http.ResponseWriter, *http.Request)

// Observer receives one call per completed request. route is the registered pattern, or
// "unmatched" when no route answered.
type Observer interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// Option configures a Router.
type Option func(*Router)

// WithCORS allows cross-origin requests from origins; "*" allows any origin.
func WithCORS(origins []string) Option {
	return func(r *Router) { r.cors = newCORSPolicy(origins) }
}

// WithObserver reports every request to o.
func WithObserver(o Observer) Option {
	return func(r *Router) { r.observer = o }
}

// WithAccessLog writes the colored access line to w. A nil writer disables it.
func WithAccessLog(w io.Writer) Option {
	return func(r *Router) { r.accessLog = w }
}

// WithGzip toggles response compression.
func WithGzip(enabled bool) Option {
	return func(r *Router) { r.gzip = enabled }
}

type Router struct {
	mux       *http.ServeMux
	routes    map[string]http.Handler // key = METHOD:PATH
	paths     map[string]bool         // track registered paths
	wildcards []string                // wildcard paths in registration order
	fallback  http.Handler

	cors      *corsPolicy
	observer  Observer
	accessLog io.Writer
	gzip      bool
	handler   http.Handler
}

const unmatchedRoute = "unmatched"

func New(opts ...Option) *Router {
	r := &Router{
		mux:       http.NewServeMux(),
		routes:    make(map[string]http.Handler),
		paths:     make(map[string]bool),
		accessLog: color.Output,
		gzip:      true,
	}
	for _, opt := range opts {
		opt(r)
	}

	// Catch-all handler for every path; dispatch does the matching.
	r.mux.HandleFunc("/", r.dispatch)

	var h http.Handler = r.mux
	if r.gzip {
		h = gzhttp.GzipHandler(h)
	}
	if r.cors != nil {
		h = r.cors.middleware(h)
	}
	r.handler = requestID(h)
	return r
}

func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) {
	rec := routeFrom(req)

	key := req.Method + ":" + req.URL.Path
	if h, ok := r.routes[key]; ok {
		rec.route = req.URL.Path
		h.ServeHTTP(w, req)
		return
	}

	// Wildcard routes match in registration order, so register specific ones first.
	for _, routePath := range r.wildcards {
		if !matchWildcardRoute(req.URL.Path, routePath) {
			continue
		}
		if h, ok := r.routes[req.Method+":"+routePath]; ok {
			rec.route = routePath
			h.ServeHTTP(w, req)
			return
		}
	}

	if r.fallback != nil && (req.Method == http.MethodGet || req.Method == http.MethodHead) {
		rec.route = "fallback"
		r.fallback.ServeHTTP(w, req)
		return
	}

	if r.pathExists(req.URL.Path) {
		// Path exists but method not allowed
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	http.Error(w, "Not Found", http.StatusNotFound)
}

func (r *Router) pathExists(requestPath string) bool {
	if r.paths[requestPath] {
		return true
	}
	for _, routePath := range r.wildcards {
		if matchWildcardRoute(requestPath, routePath) {
			return true
		}
	}
	return false
}

// ServeHTTP runs the middleware chain, then logs and observes the request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
	rec := &routeRecord{route: unmatchedRoute}

	r.handler.ServeHTTP(lrw, withRoute(req, rec))

	duration := time.Since(start)
	if r.observer != nil {
		r.observer.ObserveRequest(req.Method, rec.route, lrw.statusCode, duration)
	}
	if r.accessLog != nil {
		fmt.Fprintf(r.accessLog, "%s %s %s %s %s\n",
			timeColor.Sprintf("[%s]", start.Format("2006-01-02 15:04:05")),
			methodColor(req.Method).Sprint(req.Method),
			req.URL.Path,
			statusColor(lrw.statusCode).Sprint(lrw.statusCode),
			durColor.Sprintf("(%v)", duration),
		)
	}
}

// matchWildcardRoute checks if a request path matches a wildcard route pattern
func matchWildcardRoute(requestPath, routePattern string) bool {
	requestSegments := strings.Split(strings.Trim(requestPath, "/"), "/")
	routeSegments := strings.Split(strings.Trim(routePattern, "/"), "/")

	// A trailing wildcard matches any number of remaining segments
	if routeSegments[len(routeSegments)-1] == "*" {
		if len(requestSegments) < len(routeSegments)-1 {
			return false
		}
		for i := 0; i < len(routeSegments)-1; i++ {
			if requestSegments[i] != routeSegments[i] {
				return false
			}
		}
		return true
	}

	if len(requestSegments) != len(routeSegments) {
		return false
	}
	for i, routeSegment := range routeSegments {
		if routeSegment == "*" {
			continue
		}
		if requestSegments[i] != routeSegment {
			return false
		}
	}
	return true
}

// --- Register paths ---
func (r *Router) register(method, path string, handler http.Handler) {
	key := method + ":" + path
	r.routes[key] = handler
	if !r.paths[path] && strings.Contains(path, "*") {
		r.wildcards = append(r.wildcards, path)
	}
	r.paths[path] = true
}

func (r *Router) GET(path string, handler HandlerFunc) {
	r.register(http.MethodGet, path, http.HandlerFunc(handler))
	r.register(http.MethodHead, path, http.HandlerFunc(handler))
}
func (r *Router) POST(path string, handler HandlerFunc) {
	r.register(http.MethodPost, path, http.HandlerFunc(handler))
}

// Handle registers an http.Handler for method and path.
func (r *Router) Handle(method, path string, handler http.Handler) {
	r.register(method, path, handler)
}

// Fallback answers GET and HEAD requests no route matched.
func (r *Router) Fallback(handler http.Handler) {
	r.fallback = handler
}

// Routes returns the registered METHOD:PATH keys.
func (r *Router) Routes() map[string]http.Handler {
	return r.routes
}

func (r *Router) Paths() map[string]bool {
	return r.paths
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if !lrw.wroteHeader {
		lrw.statusCode = code
		lrw.wroteHeader = true
	}
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.wroteHeader = true
	return lrw.ResponseWriter.Write(b)
}

func (lrw *loggingResponseWriter) Unwrap() http.ResponseWriter {
	return lrw.ResponseWriter
}

// --- Color helpers ---
func statusColor(code int) *color.Color {
	switch {
	case code >= 200 && code < 300:
		return color.New(color.FgGreen)
	case code >= 300 && code < 400:
		return color.New(color.FgCyan)
	case code >= 400 && code < 500:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func methodColor(method string) *color.Color {
	switch method {
	case http.MethodGet, http.MethodHead:
		return color.New(color.FgGreen)
	case http.MethodPost:
		return color.New(color.FgBlue)
	case http.MethodPut, http.MethodPatch:
		return color.New(color.FgYellow)
	case http.MethodDelete:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgCyan)
	}
}
