package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	// maxRetryAfter caps how long a single Retry-After may hold a fetch.
	maxRetryAfter        = 30 * time.Second
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a LeagueProvider with retry/backoff behavior.
type retryingProvider struct {
	inner        LeagueProvider
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner LeagueProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) LeagueProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "provider"
		if inner != nil {
			name = NameOf(inner, name)
		}
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		recorder:     recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) Name() string { return r.providerName }

func (r *retryingProvider) FetchManagers(ctx context.Context) ([]league.Manager, error) {
	return withRetry(ctx, r, "managers", func(ctx context.Context) ([]league.Manager, error) {
		return r.inner.FetchManagers(ctx)
	})
}

func (r *retryingProvider) FetchPerformance(ctx context.Context, managerExternalID string) ([]league.GameweekPerformance, error) {
	return withRetry(ctx, r, "performance", func(ctx context.Context) ([]league.GameweekPerformance, error) {
		return r.inner.FetchPerformance(ctx, managerExternalID)
	})
}

func (r *retryingProvider) FetchTeamPreferences(ctx context.Context) ([]league.TeamPreference, error) {
	return withRetry(ctx, r, "team_preferences", func(ctx context.Context) ([]league.TeamPreference, error) {
		return r.inner.FetchTeamPreferences(ctx)
	})
}

func (r *retryingProvider) FetchTeams(ctx context.Context) (league.Teams, error) {
	return withRetry(ctx, r, "teams", func(ctx context.Context) (league.Teams, error) {
		return r.inner.FetchTeams(ctx)
	})
}

func (r *retryingProvider) FetchTransfers(ctx context.Context) ([]league.Transfer, error) {
	return withRetry(ctx, r, "transfers", func(ctx context.Context) ([]league.Transfer, error) {
		return r.inner.FetchTransfers(ctx)
	})
}

func (r *retryingProvider) FetchPlayers(ctx context.Context) (league.Players, error) {
	return withRetry(ctx, r, "players", func(ctx context.Context) (league.Players, error) {
		return r.inner.FetchPlayers(ctx)
	})
}

func (r *retryingProvider) FetchPicks(ctx context.Context) (league.PickSet, error) {
	return withRetry(ctx, r, "picks", func(ctx context.Context) (league.PickSet, error) {
		return r.inner.FetchPicks(ctx)
	})
}

func (r *retryingProvider) FetchPlayerPoints(ctx context.Context) ([]league.PlayerGameweekPoints, error) {
	return withRetry(ctx, r, "player_points", func(ctx context.Context) ([]league.PlayerGameweekPoints, error) {
		return r.inner.FetchPlayerPoints(ctx)
	})
}

func withRetry[T any](ctx context.Context, r *retryingProvider, view string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if r.inner == nil {
		return zero, ErrProviderUnavailable
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		out, err := fn(ctx)
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if attempt == r.maxAttempts || !IsRetryable(err) || ctx.Err() != nil {
			break
		}

		delay := r.computeDelay(err, attempt)
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"view", view, "attempt", attempt, "max_attempts", r.maxAttempts, "delay_ms", delay.Milliseconds(), "err", err)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed", "view", view, "err", lastErr)
	return zero, lastErr
}

// computeDelay honors Retry-After for rate limits, capped at maxRetryAfter,
// and otherwise applies linear backoff.
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return min(rlErr.RetryAfter, maxRetryAfter)
	}
	return max(r.backoffFn(attempt), 0)
}
