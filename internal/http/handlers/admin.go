package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/fpl-dashboard/internal/http/requestutil"
	"github.com/preston-bernstein/fpl-dashboard/internal/logging"
	"github.com/preston-bernstein/fpl-dashboard/internal/poller"
)

// Invalidator drops cached league data.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Refresher re-warms the cache and writes today's snapshot.
type Refresher interface {
	Refresh(ctx context.Context) (poller.Cycle, error)
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	cache     Invalidator
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token disables every
// admin endpoint.
func NewAdminHandler(cache Invalidator, refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		cache:     cache,
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh clears the league cache, re-warms it from the provider and writes a
// snapshot. Guarded by a bearer ADMIN_TOKEN; returns 401 when missing or invalid.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.cache == nil || h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.cache.Invalidate(r.Context()); err != nil {
		logging.Error(logger, "admin cache invalidation failed", err)
		writeError(w, r, http.StatusInternalServerError, "failed to clear cache", logger)
		return
	}
	cycle, err := h.refresher.Refresh(r.Context())
	if err != nil {
		logging.Warn(logger, "admin refresh failed", slog.String(logging.FieldError, err.Error()))
		writeError(w, r, http.StatusBadGateway, "failed to refresh league data", logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"date":     cycle.Date,
		"managers": cycle.Managers,
		"snapshot": cycle.Snapshot,
	}, logger)
	logging.Info(logger, "admin refresh complete",
		slog.String(logging.FieldDate, cycle.Date),
		slog.Int(logging.FieldCount, cycle.Managers),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
