package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimitRejectsAfterLimit(t *testing.T) {
	handler := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/export/leaderboard.xlsx", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
		if rr.Code == http.StatusTooManyRequests && rr.Header().Get("Retry-After") != "60" {
			t.Fatalf("expected Retry-After 60, got %q", rr.Header().Get("Retry-After"))
		}
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	// Another client has its own window.
	req := httptest.NewRequest(http.MethodGet, "/export/leaderboard.xlsx", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected separate client to pass, got %d", rr.Code)
	}
}

func TestShouldTraceSkipsProbes(t *testing.T) {
	for path, want := range map[string]bool{"/health": false, "/ready": false, "/leaderboard": true} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if got := shouldTrace(req); got != want {
			t.Fatalf("shouldTrace(%s) = %v, want %v", path, got, want)
		}
	}
}
