package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

// rateLimitedProvider wraps a LeagueProvider with a token bucket so bursts of
// cache misses cannot exceed upstream quotas.
type rateLimitedProvider struct {
	next    LeagueProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a LeagueProvider allowing rps calls per second
// with the given burst. Calls block until a token is available or ctx ends.
func NewRateLimitedProvider(next LeagueProvider, rps float64, burst int, logger *slog.Logger) LeagueProvider {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) Name() string {
	if p.next == nil {
		return "rate-limited"
	}
	return NameOf(p.next, "rate-limited")
}

func (p *rateLimitedProvider) FetchManagers(ctx context.Context) ([]league.Manager, error) {
	return throttled(ctx, p, func(ctx context.Context) ([]league.Manager, error) {
		return p.next.FetchManagers(ctx)
	})
}

func (p *rateLimitedProvider) FetchPerformance(ctx context.Context, managerExternalID string) ([]league.GameweekPerformance, error) {
	return throttled(ctx, p, func(ctx context.Context) ([]league.GameweekPerformance, error) {
		return p.next.FetchPerformance(ctx, managerExternalID)
	})
}

func (p *rateLimitedProvider) FetchTeamPreferences(ctx context.Context) ([]league.TeamPreference, error) {
	return throttled(ctx, p, func(ctx context.Context) ([]league.TeamPreference, error) {
		return p.next.FetchTeamPreferences(ctx)
	})
}

func (p *rateLimitedProvider) FetchTeams(ctx context.Context) (league.Teams, error) {
	return throttled(ctx, p, func(ctx context.Context) (league.Teams, error) {
		return p.next.FetchTeams(ctx)
	})
}

func (p *rateLimitedProvider) FetchTransfers(ctx context.Context) ([]league.Transfer, error) {
	return throttled(ctx, p, func(ctx context.Context) ([]league.Transfer, error) {
		return p.next.FetchTransfers(ctx)
	})
}

func (p *rateLimitedProvider) FetchPlayers(ctx context.Context) (league.Players, error) {
	return throttled(ctx, p, func(ctx context.Context) (league.Players, error) {
		return p.next.FetchPlayers(ctx)
	})
}

func (p *rateLimitedProvider) FetchPicks(ctx context.Context) (league.PickSet, error) {
	return throttled(ctx, p, func(ctx context.Context) (league.PickSet, error) {
		return p.next.FetchPicks(ctx)
	})
}

func (p *rateLimitedProvider) FetchPlayerPoints(ctx context.Context) ([]league.PlayerGameweekPoints, error) {
	return throttled(ctx, p, func(ctx context.Context) ([]league.PlayerGameweekPoints, error) {
		return p.next.FetchPlayerPoints(ctx)
	})
}

func throttled[T any](ctx context.Context, p *rateLimitedProvider, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if p == nil || p.next == nil {
		return zero, ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.Name(), "rate-limited fetch canceled", "err", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		return zero, err
	}
	return fn(ctx)
}
