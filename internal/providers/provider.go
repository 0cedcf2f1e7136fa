package providers

import (
	"context"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

// LeagueProvider fetches league data from an upstream source and normalizes it
// into domain records. Each method maps to one dataset of the data model.
type LeagueProvider interface {
	FetchManagers(ctx context.Context) ([]league.Manager, error)
	// FetchPerformance returns gameweek results for one manager, sorted by gameweek.
	FetchPerformance(ctx context.Context, managerExternalID string) ([]league.GameweekPerformance, error)
	FetchTeamPreferences(ctx context.Context) ([]league.TeamPreference, error)
	FetchTeams(ctx context.Context) (league.Teams, error)
	FetchTransfers(ctx context.Context) ([]league.Transfer, error)
	FetchPlayers(ctx context.Context) (league.Players, error)
	FetchPicks(ctx context.Context) (league.PickSet, error)
	FetchPlayerPoints(ctx context.Context) ([]league.PlayerGameweekPoints, error)
}

// Named is implemented by providers that report a stable name for logs and metrics.
type Named interface {
	Name() string
}

// NameOf returns the provider's name, or fallback when it does not report one.
func NameOf(p LeagueProvider, fallback string) string {
	if n, ok := p.(Named); ok && n.Name() != "" {
		return n.Name()
	}
	return fallback
}
