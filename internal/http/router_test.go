package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	appleague "github.com/preston-bernstein/fpl-dashboard/internal/app/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/http/handlers"
	"github.com/preston-bernstein/fpl-dashboard/internal/http/requestutil"
	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
	"github.com/preston-bernstein/fpl-dashboard/internal/testutil"
)

type stubPages struct{}

func (stubPages) Routes(r chi.Router) {
	r.Get("/leaderboard", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		_, _ = w.Write([]byte("<html>leaderboard</html>"))
	})
}

func (stubPages) ExportRoutes(r chi.Router) {
	r.Get("/leaderboard.xlsx", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
	})
}

func newTestRouter(t *testing.T, withAdmin bool) nethttp.Handler {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	svc := appleague.NewService(testutil.SampleProvider(), nil, appleague.Options{})

	cfg := RouterConfig{
		API:         handlers.NewHandler(svc, nil, logger, nil),
		Pages:       stubPages{},
		Logger:      logger,
		Metrics:     metrics.NewRecorder(),
		ExportLimit: 2,
	}
	if withAdmin {
		cfg.Admin = handlers.NewAdminHandler(svc, &testutil.StubPoller{}, "secret", logger)
	}
	return NewRouter(cfg)
}

func TestRouterMountsEverySurface(t *testing.T) {
	router := newTestRouter(t, true)
	for _, path := range []string{
		"/health",
		"/ready",
		"/api/overview",
		"/api/managers",
		"/api/managers/manager_1/performance",
		"/api/transfers",
		"/api/teams",
		"/leaderboard",
		"/export/leaderboard.xlsx",
	} {
		t.Run(path, func(t *testing.T) {
			testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, path, nil), nethttp.StatusOK)
		})
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	rr := testutil.Serve(newTestRouter(t, false), nethttp.MethodGet, "/nope", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)
}

func TestRouterSetsRequestID(t *testing.T) {
	rr := testutil.Serve(newTestRouter(t, false), nethttp.MethodGet, "/health", nil)
	if rr.Header().Get(requestutil.HeaderRequestID) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestAdminRouteRequiresToken(t *testing.T) {
	rr := testutil.Serve(newTestRouter(t, false), nethttp.MethodPost, "/admin/refresh", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusNotFound)

	router := newTestRouter(t, true)
	testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodPost, "/admin/refresh", nil), nethttp.StatusUnauthorized)

	req := httptest.NewRequest(nethttp.MethodPost, "/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	testutil.AssertStatus(t, testutil.ServeRequest(router, req), nethttp.StatusOK)
}

func TestExportRateLimited(t *testing.T) {
	router := newTestRouter(t, false)
	for i := 0; i < 2; i++ {
		testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/export/leaderboard.xlsx", nil), nethttp.StatusOK)
	}
	rr := testutil.Serve(router, nethttp.MethodGet, "/export/leaderboard.xlsx", nil)
	testutil.AssertStatus(t, rr, nethttp.StatusTooManyRequests)
	if !strings.Contains(rr.Body.String(), "rate limit") {
		t.Fatalf("expected JSON rate limit body, got %q", rr.Body.String())
	}

	// Dashboard pages are not limited.
	for i := 0; i < 5; i++ {
		testutil.AssertStatus(t, testutil.Serve(router, nethttp.MethodGet, "/leaderboard", nil), nethttp.StatusOK)
	}
}
