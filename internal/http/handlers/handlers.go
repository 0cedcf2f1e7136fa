// Package handlers serves the JSON API, health probes and admin endpoints.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	appleague "github.com/preston-bernstein/fpl-dashboard/internal/app/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/logging"
	"github.com/preston-bernstein/fpl-dashboard/internal/poller"
	"github.com/preston-bernstein/fpl-dashboard/internal/snapshots"
)

// ManagerParam is the repeated query parameter selecting managers by name.
const ManagerParam = "manager"

// LeagueReader is the cached league data the API exposes.
type LeagueReader interface {
	Managers(ctx context.Context) (appleague.Dataset[[]league.Manager], error)
	Teams(ctx context.Context) (appleague.Dataset[league.Teams], error)
	Performance(ctx context.Context, managerExternalID string) ([]league.GameweekPerformance, error)
	Transfers(ctx context.Context) ([]league.Transfer, error)
	Players(ctx context.Context) (league.Players, error)
}

// SnapshotReader loads persisted league snapshots.
type SnapshotReader interface {
	LoadLeague(date string) (league.Snapshot, error)
}

// Handler wires HTTP routes to the league service.
type Handler struct {
	svc      LeagueReader
	snaps    SnapshotReader
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. snaps and statusFn may be nil.
func NewHandler(svc LeagueReader, snaps SnapshotReader, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		snaps:    snaps,
		logger:   logger,
		statusFn: statusFn,
	}
}

// datasetMeta is attached to responses built from a possibly stale dataset.
type datasetMeta struct {
	Stale bool      `json:"stale"`
	AsOf  time.Time `json:"asOf"`
}

func metaOf[T any](ds appleague.Dataset[T]) datasetMeta {
	return datasetMeta{Stale: ds.Stale, AsOf: ds.AsOf}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// cacheReporter is implemented by services that can report cache health.
type cacheReporter interface {
	CacheHealth(ctx context.Context) appleague.CacheHealth
}

// Ready reports readiness for traffic: the cache backend answers and the
// poller has warmed the cache without failing repeatedly.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	body := map[string]any{"status": "ready"}
	if c, ok := h.svc.(cacheReporter); ok {
		health := c.CacheHealth(r.Context())
		if health.Error != "" {
			writeError(w, r, nethttp.StatusServiceUnavailable, "cache unavailable: "+health.Error, h.logger)
			return
		}
		body["cache"] = health
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, body, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		body["poller"] = status
		writeJSON(w, nethttp.StatusOK, body, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Overview returns the league banner metrics.
func (h *Handler) Overview(w nethttp.ResponseWriter, r *nethttp.Request) {
	ds, ok := h.managers(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, struct {
		Overview analytics.Overview `json:"overview"`
		datasetMeta
	}{analytics.LeagueOverview(ds.Data), metaOf(ds)}, h.logger)
}

// Managers returns the ranked standings.
func (h *Handler) Managers(w nethttp.ResponseWriter, r *nethttp.Request) {
	ds, ok := h.managers(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, struct {
		Leaderboard analytics.Leaderboard `json:"leaderboard"`
		datasetMeta
	}{analytics.BuildLeaderboard(ds.Data), metaOf(ds)}, h.logger)
}

// ManagerPerformance returns one manager's gameweek history ordered by gameweek.
func (h *Handler) ManagerPerformance(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, r, nethttp.StatusBadRequest, "invalid manager id", h.logger)
		return
	}
	ds, ok := h.managers(w, r)
	if !ok {
		return
	}
	manager, found := analytics.ManagerByID(ds.Data, id)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "manager not found", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	perf, err := h.svc.Performance(r.Context(), id)
	if err != nil {
		logging.Warn(logger, "performance fetch failed", slog.String(logging.FieldError, err.Error()))
		writeError(w, r, nethttp.StatusBadGateway, "failed to fetch performance", h.logger)
		return
	}
	sort.SliceStable(perf, func(i, j int) bool { return perf[i].Gameweek < perf[j].Gameweek })
	if perf == nil {
		perf = []league.GameweekPerformance{}
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"externalId": manager.ExternalID,
		"manager":    manager.ManagerName,
		"gameweeks":  perf,
	}, h.logger)
}

// Transfers returns the transfer analysis for the managers named by repeated
// ?manager= parameters, or for every manager when none are given.
func (h *Handler) Transfers(w nethttp.ResponseWriter, r *nethttp.Request) {
	ds, ok := h.managers(w, r)
	if !ok {
		return
	}
	logger := loggerFromContext(r, h.logger)

	transfers, err := h.svc.Transfers(r.Context())
	if err != nil {
		logging.Warn(logger, "transfers fetch failed", slog.String(logging.FieldError, err.Error()))
		writeError(w, r, nethttp.StatusBadGateway, "failed to fetch transfers", h.logger)
		return
	}
	players, err := h.svc.Players(r.Context())
	if err != nil {
		// Names degrade to "Unknown" rather than failing the request.
		logging.Warn(logger, "players fetch failed", slog.String(logging.FieldError, err.Error()))
	}

	selected := analytics.ManagerNames(ds.Data)
	if requested, present := r.URL.Query()[ManagerParam]; present {
		selected = analytics.ResolveSelection(ds.Data, requested)
	}
	writeJSON(w, nethttp.StatusOK, struct {
		Selected []string                   `json:"selected"`
		Analysis analytics.TransferAnalysis `json:"analysis"`
	}{selected, analytics.AnalyzeTransfers(transfers, ds.Data, players, selected)}, h.logger)
}

// Teams returns team names keyed by external id.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	ds, err := h.svc.Teams(r.Context())
	if err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "teams fetch failed", slog.String(logging.FieldError, err.Error()))
		writeError(w, r, nethttp.StatusBadGateway, "failed to fetch teams", h.logger)
		return
	}
	teams := ds.Data
	if teams == nil {
		teams = league.Teams{}
	}
	writeJSON(w, nethttp.StatusOK, struct {
		Teams league.Teams `json:"teams"`
		datasetMeta
	}{teams, metaOf(ds)}, h.logger)
}

// Snapshot serves a persisted league snapshot. Only snapshots are read; the
// provider is never called.
func (h *Handler) Snapshot(w nethttp.ResponseWriter, r *nethttp.Request) {
	date := chi.URLParam(r, "date")
	if _, err := snapshots.ParseDate(date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return
	}
	if h.snaps == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "snapshots disabled", h.logger)
		return
	}
	snap, err := h.snaps.LoadLeague(date)
	switch {
	case errors.Is(err, os.ErrNotExist):
		writeError(w, r, nethttp.StatusNotFound, "snapshot not found", h.logger)
		return
	case err != nil:
		logging.Warn(loggerFromContext(r, h.logger), "snapshot load failed",
			slog.String(logging.FieldDate, date),
			slog.String(logging.FieldError, err.Error()),
		)
		writeError(w, r, nethttp.StatusInternalServerError, "snapshot unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, snap, h.logger)
}

func (h *Handler) managers(w nethttp.ResponseWriter, r *nethttp.Request) (appleague.Dataset[[]league.Manager], bool) {
	ds, err := h.svc.Managers(r.Context())
	if err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "managers fetch failed", slog.String(logging.FieldError, err.Error()))
		writeError(w, r, nethttp.StatusBadGateway, "failed to fetch managers", h.logger)
		return ds, false
	}
	return ds, true
}
