package testutil

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
)

// StubMetricsSetup mimics metrics.Setup without touching the global meter
// provider. The returned handler answers 200 "ok".
func StubMetricsSetup(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return metrics.NewRecorder(), handler, func(context.Context) error { return nil }, nil
}
