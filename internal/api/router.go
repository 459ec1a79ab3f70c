package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "country-stats/docs"
	"country-stats/internal/api/handler"
	"country-stats/pkg/router"
)

// Deps are the collaborators the routes are served from.
type Deps struct {
	Stats     handler.RowsSource
	Metrics   http.Handler // optional, served on /metrics
	StaticDir string       // optional SPA build directory
}

// NewRouter builds the router with middleware options and registers every route.
func NewRouter(deps Deps, opts ...router.Option) *router.Router {
	r := router.New(opts...)
	RegisterRoutes(r, deps)
	return r
}

func RegisterRoutes(r *router.Router, deps Deps) {
	stats := handler.NewStatsHandler(deps.Stats)
	r.GET("/api/healthz", stats.Healthz)
	r.GET("/api/country-stats", stats.CountryStats)

	if deps.Metrics != nil {
		r.Handle(http.MethodGet, "/metrics", deps.Metrics)
	}
	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	if deps.StaticDir != "" {
		r.Fallback(SPA(deps.StaticDir))
	}
}
