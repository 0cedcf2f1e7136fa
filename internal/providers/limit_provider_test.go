package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/fpl-dashboard/internal/teststubs"
)

func TestRateLimitedProviderAllowsBurstThenThrottles(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, 50, 1, nil)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := rl.FetchManagers(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}
	// burst of 1 at 50 rps: the 2nd and 3rd calls wait ~20ms each.
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("expected calls to be throttled, elapsed %s", elapsed)
	}
	if inner.Calls.Load() != 3 {
		t.Fatalf("expected inner provider called 3 times, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, 1, 1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchTeams(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.Calls.Load() != 0 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	rl := NewRateLimitedProvider(nil, 10, 1, nil)

	_, err := rl.FetchPicks(context.Background())
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDefaultsLimits(t *testing.T) {
	rl := NewRateLimitedProvider(&teststubs.StubProvider{}, 0, 0, nil).(*rateLimitedProvider)
	if rl.limiter.Limit() != 1 || rl.limiter.Burst() != 1 {
		t.Fatalf("expected 1 rps / burst 1 defaults, got %v / %d", rl.limiter.Limit(), rl.limiter.Burst())
	}
	if rl.Name() != "stub" {
		t.Fatalf("expected name from inner provider, got %s", rl.Name())
	}
}
