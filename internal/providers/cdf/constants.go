package cdf

import "time"

const (
	providerName = "cdf"
	appHeader    = "X-CDF-App"
	appName      = "fpl-dashboard"

	defaultHTTPTimeout = 30 * time.Second
	// Upper bound the API accepts for a single instances/list or rows page.
	maxPageSize = 1000

	viewManager     = "Manager"
	viewPerformance = "ManagerGameweekPerformance"
	viewBetting     = "ManagerTeamBetting"
	viewTeam        = "Team"
	viewTransfer    = "Transfer"
	viewPlayer      = "Player"

	tablePicks        = "fpl_manager_picks"
	tablePlayerPoints = "fpl_player_gameweek"

	prefixManager     = "manager_"
	prefixPerformance = "performance_"
	prefixBetting     = "betting_"
	prefixTeam        = "team_"
)

// Per-dataset row caps; larger leagues are truncated rather than paged forever.
const (
	limitManagers     = 100
	limitPerformance  = 1000
	limitBetting      = 1000
	limitTeams        = 100
	limitTransfers    = 2000
	limitPlayers      = 1000
	limitPicks        = 5000
	limitPlayerPoints = 10000
)
