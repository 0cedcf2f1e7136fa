// Package web renders the dashboard tabs as server-side HTML pages.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	appleague "github.com/preston-bernstein/fpl-dashboard/internal/app/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/charts"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/logging"
	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
)

//go:embed templates/*.html
var templateFiles embed.FS

// LeagueService is the cached data the tabs read.
type LeagueService interface {
	Managers(ctx context.Context) (appleague.Dataset[[]league.Manager], error)
	Teams(ctx context.Context) (appleague.Dataset[league.Teams], error)
	Performance(ctx context.Context, managerExternalID string) ([]league.GameweekPerformance, error)
	TeamPreferences(ctx context.Context) ([]league.TeamPreference, error)
	Transfers(ctx context.Context) ([]league.Transfer, error)
	Players(ctx context.Context) (league.Players, error)
	Picks(ctx context.Context) (league.PickSet, error)
	PlayerPoints(ctx context.Context) ([]league.PlayerGameweekPoints, error)
}

// Options configures the page chrome.
type Options struct {
	Project string
	Space   string
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

type tab struct {
	Key   string
	Path  string
	Label string
	file  string
}

var tabs = []tab{
	{Key: "leaderboard", Path: "/leaderboard", Label: "📊 Leaderboard", file: "leaderboard.html"},
	{Key: "performance", Path: "/performance", Label: "📈 Performance Trends", file: "performance.html"},
	{Key: "transfers", Path: "/transfers", Label: "🔄 Transfer Analysis", file: "transfers.html"},
	{Key: "favorites", Path: "/favorites", Label: "⭐ Manager's Favorites", file: "favorites.html"},
	{Key: "consistency", Path: "/consistency", Label: "📉 Consistency", file: "consistency.html"},
	{Key: "fun-facts", Path: "/fun-facts", Label: "🎉 Fun Facts", file: "funfacts.html"},
}

const noManagersMessage = "No manager data found. Load league data into CDF first."

// Handler serves the dashboard pages and spreadsheet exports.
type Handler struct {
	svc       LeagueService
	logger    *slog.Logger
	metrics   *metrics.Recorder
	footer    Options
	help      template.HTML
	templates map[string]*template.Template
	now       func() time.Time
}

// NewHandler parses the embedded templates.
func NewHandler(svc LeagueService, opts Options) (*Handler, error) {
	h := &Handler{
		svc:       svc,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		footer:    opts,
		help:      renderHelp(helpMarkdown),
		templates: make(map[string]*template.Template, len(tabs)),
		now:       time.Now,
	}
	for _, t := range tabs {
		tmpl, err := template.New(t.Key).Funcs(funcMap()).ParseFS(templateFiles, "templates/layout.html", "templates/"+t.file)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", t.Key, err)
		}
		h.templates[t.Key] = tmpl
	}
	return h, nil
}

// Routes mounts the tab pages and exports on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/leaderboard", http.StatusFound)
	})
	r.Get("/leaderboard", h.tab("leaderboard", h.leaderboard))
	r.Get("/performance", h.tab("performance", h.performance))
	r.Get("/transfers", h.tab("transfers", h.transfers))
	r.Get("/favorites", h.tab("favorites", h.favorites))
	r.Get("/consistency", h.tab("consistency", h.consistency))
	r.Get("/fun-facts", h.tab("fun-facts", h.funFacts))
}

// ExportRoutes mounts the spreadsheet downloads; the router rate limits them.
func (h *Handler) ExportRoutes(r chi.Router) {
	r.Get("/leaderboard.xlsx", h.ExportLeaderboard)
	r.Get("/transfers.xlsx", h.ExportTransfers)
}

type tabLink struct {
	Path   string
	Label  string
	Active bool
}

type footer struct {
	Project string
	Space   string
	Updated string
}

type page struct {
	Title      string
	AssetsHost string
	Tabs       []tabLink
	Overview   *analytics.Overview
	Help       template.HTML
	Warnings   []string
	Infos      []string
	Stale      bool
	AsOf       time.Time
	Footer     footer
	Body       any
}

func (p *page) warn(format string, args ...any) {
	p.Warnings = append(p.Warnings, fmt.Sprintf(format, args...))
}

func (p *page) info(msg string) {
	p.Infos = append(p.Infos, msg)
}

// tabBuilder fills p.Body for one tab from the league's managers.
type tabBuilder func(r *http.Request, p *page, managers []league.Manager)

func (h *Handler) tab(key string, build tabBuilder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		p := h.newPage(key)

		ds, err := h.svc.Managers(r.Context())
		switch {
		case err != nil:
			p.warn("Error fetching managers: %v", err)
		case len(ds.Data) == 0:
			p.warn(noManagersMessage)
		default:
			p.Stale, p.AsOf = ds.Stale, ds.AsOf
			overview := analytics.LeagueOverview(ds.Data)
			p.Overview = &overview
			build(r, p, ds.Data)
		}

		h.execute(w, r, key, p)
		h.metrics.RecordTabRender(key, time.Since(start))
	}
}

func (h *Handler) newPage(key string) *page {
	p := &page{
		AssetsHost: charts.AssetsHost,
		Help:       h.help,
		Footer: footer{
			Project: h.footer.Project,
			Space:   h.footer.Space,
			Updated: h.now().Format("2006-01-02 15:04"),
		},
	}
	for _, t := range tabs {
		p.Tabs = append(p.Tabs, tabLink{Path: t.Path, Label: t.Label, Active: t.Key == key})
		if t.Key == key {
			p.Title = t.Label
		}
	}
	return p
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, key string, p *page) {
	logger := logging.FromContext(r.Context(), h.logger)

	var buf bytes.Buffer
	if err := h.templates[key].ExecuteTemplate(&buf, "layout", p); err != nil {
		logging.Error(logger, "template render failed", err, slog.String(logging.FieldTab, key))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	if len(p.Warnings) > 0 {
		logging.Warn(logger, "tab rendered with warnings",
			slog.String(logging.FieldTab, key),
			slog.Int(logging.FieldCount, len(p.Warnings)),
		)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Warn(logger, "write page failed", slog.String(logging.FieldError, err.Error()))
	}
}
