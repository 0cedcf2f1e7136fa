package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/fpl-dashboard/internal/http/handlers"
	"github.com/preston-bernstein/fpl-dashboard/internal/http/middleware"
	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
)

const (
	defaultExportLimit = 30
	defaultAdminLimit  = 5
	limitWindow        = time.Minute
)

// Pages mounts the HTML dashboard and its exports.
type Pages interface {
	Routes(r chi.Router)
	ExportRoutes(r chi.Router)
}

// RouterConfig carries everything the router mounts. Nil handlers leave their
// routes unregistered.
type RouterConfig struct {
	API         *handlers.Handler
	Admin       *handlers.AdminHandler
	Pages       Pages
	Logger      *slog.Logger
	Metrics     *metrics.Recorder
	ServiceName string
	// ExportLimit and AdminLimit are requests per minute per client IP.
	ExportLimit int
	AdminLimit  int
}

// NewRouter registers every route on a chi router wrapped in OpenTelemetry
// instrumentation.
func NewRouter(cfg RouterConfig) nethttp.Handler {
	exportLimit := cfg.ExportLimit
	if exportLimit <= 0 {
		exportLimit = defaultExportLimit
	}
	adminLimit := cfg.AdminLimit
	if adminLimit <= 0 {
		adminLimit = defaultAdminLimit
	}

	r := chi.NewRouter()
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))

	if api := cfg.API; api != nil {
		r.Get("/health", api.Health)
		r.Get("/ready", api.Ready)
		r.Route("/api", func(r chi.Router) {
			r.Get("/overview", api.Overview)
			r.Get("/managers", api.Managers)
			r.Get("/managers/{id}/performance", api.ManagerPerformance)
			r.Get("/transfers", api.Transfers)
			r.Get("/teams", api.Teams)
			r.Get("/snapshots/{date}", api.Snapshot)
		})
	}
	if cfg.Admin != nil {
		r.With(middleware.RateLimit(adminLimit, limitWindow)).Post("/admin/refresh", cfg.Admin.Refresh)
	}
	if cfg.Pages != nil {
		cfg.Pages.Routes(r)
		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.RateLimit(exportLimit, limitWindow))
			cfg.Pages.ExportRoutes(r)
		})
	}

	service := cfg.ServiceName
	if service == "" {
		service = "fpl-dashboard"
	}
	return middleware.OTelHTTP(service)(r)
}
