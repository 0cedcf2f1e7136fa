package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("cdf", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("cdf", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("cdf"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("cdf"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("cdf"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("cdf")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("cdf", 5*time.Second)
	rec.RecordRateLimit("cdf", 0)

	if got := rec.RateLimitHits("cdf"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("cdf"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksCacheLookupsPerView(t *testing.T) {
	rec := NewRecorder()
	rec.RecordCacheLookup("managers", false)
	rec.RecordCacheLookup("managers", true)
	rec.RecordCacheLookup("managers", true)
	rec.RecordCacheLookup("teams", false)

	if got := rec.CacheHits("managers"); got != 2 {
		t.Fatalf("expected 2 hits, got %d", got)
	}
	if got := rec.CacheMisses("managers"); got != 1 {
		t.Fatalf("expected 1 miss, got %d", got)
	}
	if got := rec.CacheMisses("teams"); got != 1 {
		t.Fatalf("expected 1 teams miss, got %d", got)
	}
	if got := rec.CacheHits("unknown"); got != 0 {
		t.Fatalf("expected zero for unknown view, got %d", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("cdf", time.Millisecond, nil)
	rec.RecordRateLimit("cdf", time.Second)
	rec.RecordCacheLookup("managers", true)
	rec.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	rec.RecordPollerCycle(time.Millisecond, nil)
	rec.RecordTabRender("leaderboard", time.Millisecond)
	rec.RecordSnapshotWrite(nil)

	if rec.ProviderCalls("cdf") != 0 || rec.CacheHits("managers") != 0 {
		t.Fatal("expected zero values from nil recorder")
	}
}
