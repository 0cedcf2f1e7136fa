package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appleague "github.com/preston-bernstein/fpl-dashboard/internal/app/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/testutil"
	"github.com/preston-bernstein/fpl-dashboard/internal/teststubs"
)

func sampleProvider() *teststubs.StubProvider {
	return testutil.SampleProvider()
}

func newTestRouter(t *testing.T, provider *teststubs.StubProvider) http.Handler {
	t.Helper()
	svc := appleague.NewService(provider, nil, appleague.Options{})
	h, err := NewHandler(svc, Options{Project: "sofie-prod", Space: "fantasy_football"})
	require.NoError(t, err)
	h.now = func() time.Time { return time.Date(2024, 12, 1, 18, 30, 0, 0, time.UTC) }

	r := chi.NewRouter()
	h.Routes(r)
	r.Route("/export", h.ExportRoutes)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestRootRedirectsToLeaderboard(t *testing.T) {
	rr := get(t, newTestRouter(t, sampleProvider()), "/")
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/leaderboard", rr.Header().Get("Location"))
}

func TestEveryTabRendersChrome(t *testing.T) {
	router := newTestRouter(t, sampleProvider())
	for _, tc := range []struct {
		path  string
		marks []string
	}{
		{"/leaderboard", []string{"League Leaderboard", "leaderboard_points", "Grace"}},
		{"/performance", []string{"Weekly Performance Trends", "performance_points", "diamond"}},
		{"/transfers", []string{"Transfer Analysis", "transfers_success", "Saka"}},
		{"/favorites", []string{"Favorite Teams", "favorites_pie", "Arsenal"}},
		{"/consistency", []string{"Consistency Analysis", "consistency_volatility", "Category Leaders"}},
		{"/fun-facts", []string{"League Averages", "The Wildcard King"}},
	} {
		t.Run(tc.path, func(t *testing.T) {
			rr := get(t, router, tc.path)
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

			body := rr.Body.String()
			assert.Contains(t, body, "fantaSIUUUU")
			assert.Contains(t, body, "League Overview")
			assert.Contains(t, body, "How to Use This Dashboard")
			assert.Contains(t, body, "sofie-prod")
			assert.Contains(t, body, "2024-12-01 18:30")
			assert.Contains(t, body, `class="active"`)
			for _, m := range tc.marks {
				assert.Contains(t, body, m)
			}
		})
	}
}

func TestOverviewUsesThousandsSeparators(t *testing.T) {
	body := get(t, newTestRouter(t, sampleProvider()), "/leaderboard").Body.String()
	assert.Contains(t, body, "1,200")
	assert.Contains(t, body, "£101.2m")
}

func TestManagersErrorRendersWarning(t *testing.T) {
	provider := sampleProvider()
	provider.Err = errors.New("cdf down")

	rr := get(t, newTestRouter(t, provider), "/leaderboard")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Error fetching managers: cdf down")
	assert.NotContains(t, body, "League Overview")
}

func TestNoManagersRendersWarning(t *testing.T) {
	provider := sampleProvider()
	provider.Managers = nil

	body := get(t, newTestRouter(t, provider), "/fun-facts").Body.String()
	assert.Contains(t, body, noManagersMessage)
}

func TestPerformanceExplicitEmptySelection(t *testing.T) {
	body := get(t, newTestRouter(t, sampleProvider()), "/performance?manager=").Body.String()
	assert.Contains(t, body, "Please select at least one manager to view their performance")
	assert.NotContains(t, body, "performance_points")
}

func TestPerformanceReportsPerManagerErrors(t *testing.T) {
	provider := sampleProvider()
	provider.Errs = map[string]error{"FetchPerformance": errors.New("timeout")}

	body := get(t, newTestRouter(t, provider), "/performance?manager=Ada").Body.String()
	assert.Contains(t, body, "Error loading data for Ada: timeout")
	assert.Contains(t, body, "No performance data available for selected managers")
}

func TestTransfersWithoutDataWarns(t *testing.T) {
	provider := sampleProvider()
	provider.Transfers = nil

	body := get(t, newTestRouter(t, provider), "/transfers").Body.String()
	assert.Contains(t, body, "No transfer data found in CDF")
}

func TestTransfersSelectionFiltersRows(t *testing.T) {
	body := get(t, newTestRouter(t, sampleProvider()), "/transfers?manager=Linus").Body.String()
	assert.Contains(t, body, "Unknown")
	assert.Contains(t, body, "/export/transfers.xlsx?manager=Linus")
	assert.NotContains(t, body, "Saka")
}

func TestFavoritesWarnsOnPickParseErrors(t *testing.T) {
	provider := sampleProvider()
	provider.Picks.ParseErrors = 2

	body := get(t, newTestRouter(t, provider), "/favorites?manager=Ada").Body.String()
	assert.Contains(t, body, "Failed to parse 2 pick records")
	assert.Contains(t, body, "Top player: <strong>Saka</strong> (24 pts)")
}

func TestFavoritesUnknownManager(t *testing.T) {
	body := get(t, newTestRouter(t, sampleProvider()), "/favorites?manager=Nobody").Body.String()
	assert.Contains(t, body, "Please select a manager to view their favorite teams")
}

func TestFavoritesWithoutPreferencesForManager(t *testing.T) {
	body := get(t, newTestRouter(t, sampleProvider()), "/favorites?manager=Grace").Body.String()
	assert.Contains(t, body, "No team preference data available for Grace")
}
