package cdf

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/logging"
)

// FetchManagers lists league managers. Nodes outside the manager_ namespace or
// without properties for the view are skipped.
func (c *Client) FetchManagers(ctx context.Context) ([]league.Manager, error) {
	nodes, err := c.listInstances(ctx, viewManager, "", limitManagers)
	if err != nil {
		return nil, err
	}
	managers := make([]league.Manager, 0, len(nodes))
	for _, n := range nodes {
		if !strings.HasPrefix(n.ExternalID, prefixManager) {
			continue
		}
		props := c.viewProperties(n, viewManager)
		if len(props) == 0 {
			continue
		}
		managers = append(managers, mapManager(n.ExternalID, props))
	}
	return managers, nil
}

// FetchPerformance returns one manager's gameweek history sorted by gameweek.
func (c *Client) FetchPerformance(ctx context.Context, managerExternalID string) ([]league.GameweekPerformance, error) {
	prefix, err := performancePrefix(managerExternalID)
	if err != nil {
		return nil, err
	}
	nodes, err := c.listInstances(ctx, viewPerformance, prefix, limitPerformance)
	if err != nil {
		return nil, err
	}
	perf := make([]league.GameweekPerformance, 0, len(nodes))
	for _, n := range nodes {
		if !strings.HasPrefix(n.ExternalID, prefix) {
			continue
		}
		props := c.viewProperties(n, viewPerformance)
		if len(props) == 0 {
			continue
		}
		perf = append(perf, mapPerformance(n.ExternalID, props))
	}
	sort.SliceStable(perf, func(i, j int) bool { return perf[i].Gameweek < perf[j].Gameweek })
	return perf, nil
}

// FetchTeamPreferences lists per-manager, per-team usage aggregates.
func (c *Client) FetchTeamPreferences(ctx context.Context) ([]league.TeamPreference, error) {
	nodes, err := c.listInstances(ctx, viewBetting, "", limitBetting)
	if err != nil {
		return nil, err
	}
	prefs := make([]league.TeamPreference, 0, len(nodes))
	for _, n := range nodes {
		if !strings.HasPrefix(n.ExternalID, prefixBetting) {
			continue
		}
		props := c.viewProperties(n, viewBetting)
		if len(props) == 0 {
			continue
		}
		prefs = append(prefs, mapTeamPreference(props))
	}
	return prefs, nil
}

// FetchTeams returns team external id to team name.
func (c *Client) FetchTeams(ctx context.Context) (league.Teams, error) {
	nodes, err := c.listInstances(ctx, viewTeam, "", limitTeams)
	if err != nil {
		return nil, err
	}
	teams := make(league.Teams, len(nodes))
	for _, n := range nodes {
		if !strings.HasPrefix(n.ExternalID, prefixTeam) {
			continue
		}
		props := c.viewProperties(n, viewTeam)
		if len(props) == 0 {
			continue
		}
		teams[n.ExternalID] = str(props, "name", league.UnknownTeam)
	}
	return teams, nil
}

// FetchTransfers lists every evaluated transfer.
func (c *Client) FetchTransfers(ctx context.Context) ([]league.Transfer, error) {
	nodes, err := c.listInstances(ctx, viewTransfer, "", limitTransfers)
	if err != nil {
		return nil, err
	}
	transfers := make([]league.Transfer, 0, len(nodes))
	for _, n := range nodes {
		props := c.viewProperties(n, viewTransfer)
		if len(props) == 0 {
			continue
		}
		transfers = append(transfers, mapTransfer(n.ExternalID, props))
	}
	return transfers, nil
}

// FetchPlayers returns players keyed by node external id.
func (c *Client) FetchPlayers(ctx context.Context) (league.Players, error) {
	nodes, err := c.listInstances(ctx, viewPlayer, "", limitPlayers)
	if err != nil {
		return nil, err
	}
	players := make(league.Players, len(nodes))
	for _, n := range nodes {
		props := c.viewProperties(n, viewPlayer)
		if len(props) == 0 {
			continue
		}
		players[n.ExternalID] = mapPlayer(n.ExternalID, props)
	}
	return players, nil
}

// FetchPicks flattens the RAW picks table into one record per selected player.
// Rows whose picks cannot be decoded are counted rather than failing the fetch.
func (c *Client) FetchPicks(ctx context.Context) (league.PickSet, error) {
	rows, err := c.listRows(ctx, tablePicks, limitPicks)
	if err != nil {
		return league.PickSet{}, err
	}
	set := league.PickSet{Picks: make([]league.Pick, 0, len(rows)*15)}
	for _, row := range rows {
		picks, err := mapPickRow(row.Columns)
		if err != nil {
			set.ParseErrors++
			logging.Debug(logging.FromContext(ctx, c.logger), "skipping unparseable picks row",
				slog.String("key", row.Key), slog.String(logging.FieldError, err.Error()))
			continue
		}
		set.Picks = append(set.Picks, picks...)
	}
	if set.ParseErrors > 0 {
		logging.Warn(logging.FromContext(ctx, c.logger), "failed to parse pick records",
			slog.Int(logging.FieldCount, set.ParseErrors), slog.String(logging.FieldProvider, providerName))
	}
	return set, nil
}

// FetchPlayerPoints returns per-player, per-gameweek scoring lines.
func (c *Client) FetchPlayerPoints(ctx context.Context) ([]league.PlayerGameweekPoints, error) {
	rows, err := c.listRows(ctx, tablePlayerPoints, limitPlayerPoints)
	if err != nil {
		return nil, err
	}
	points := make([]league.PlayerGameweekPoints, 0, len(rows))
	for _, row := range rows {
		points = append(points, mapPlayerPoints(row.Columns))
	}
	return points, nil
}
