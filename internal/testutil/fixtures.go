package testutil

import (
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
	"github.com/preston-bernstein/fpl-dashboard/internal/teststubs"
)

// SampleProvider returns a three-manager league (Ada, Grace, Linus) with
// performance for the first two, Ada's team preferences and picks, and one
// transfer per manager. Each call returns a fresh copy.
func SampleProvider() *teststubs.StubProvider {
	return &teststubs.StubProvider{
		Managers: []league.Manager{
			{ExternalID: "manager_1", EntryID: 1, ManagerName: "Ada", TeamName: "Byte FC", OverallPoints: 1200, OverallRank: 50000, LeagueRank: 2, TeamValue: 101.5, ConsistencyScore: 80, AvgPointsPerWeek: 60, PointsStdDev: 10, TeamValueGrowth: 1.5, TotalTransfers: 10},
			{ExternalID: "manager_2", EntryID: 2, ManagerName: "Grace", TeamName: "Cobol City", OverallPoints: 1300, OverallRank: 20000, LeagueRank: 1, TeamValue: 103.0, ConsistencyScore: 85, AvgPointsPerWeek: 65, PointsStdDev: 18, TeamValueGrowth: 3.0, TotalTransfers: 20},
			{ExternalID: "manager_3", EntryID: 3, ManagerName: "Linus", TeamName: "Kernel Utd", OverallPoints: 1100, OverallRank: 90000, LeagueRank: 3, TeamValue: 99.0, ConsistencyScore: 70, AvgPointsPerWeek: 55, PointsStdDev: 25, TeamValueGrowth: -1.0, TotalTransfers: 4},
		},
		Performance: map[string][]league.GameweekPerformance{
			"manager_1": {
				{Gameweek: 2, Points: 70, TotalPoints: 130, Transfers: 2, TransferCost: 4},
				{Gameweek: 1, Points: 60, TotalPoints: 60},
			},
			"manager_2": {
				{Gameweek: 1, Points: 65, TotalPoints: 65},
				{Gameweek: 2, Points: 50, TotalPoints: 115},
			},
		},
		Teams: league.Teams{"team_1": "Arsenal", "team_2": "Chelsea"},
		TeamPreferences: []league.TeamPreference{
			{ManagerID: "manager_1", TeamID: "team_1", TotalPlayersUsed: 20, TotalPoints: 180, AvgPointsPerPlayer: 9, SuccessRate: 60},
			{ManagerID: "manager_1", TeamID: "team_2", TotalPlayersUsed: 10, TotalPoints: 40, AvgPointsPerPlayer: 4, SuccessRate: 30},
		},
		Players: league.Players{
			"player_7": {ExternalID: "player_7", Name: "Saka", TeamID: "team_1"},
			"player_9": {ExternalID: "player_9", Name: "Palmer", TeamID: "team_2"},
		},
		Transfers: []league.Transfer{
			{ExternalID: "t1", ManagerID: "manager_1", Gameweek: 2, PlayerInID: "player_7", PlayerOutID: "player_9", NetBenefit: 6, WasSuccessful: true},
			{ExternalID: "t2", ManagerID: "manager_2", Gameweek: 3, PlayerInID: "player_9", PlayerOutID: "player_7", NetBenefit: -3, TransferCost: 4},
			{ExternalID: "t3", ManagerID: "manager_3", Gameweek: 4, PlayerInID: "player_9", PlayerOutID: "player_42", NetBenefit: 2, WasSuccessful: true},
		},
		Picks: league.PickSet{Picks: []league.Pick{
			{ManagerEntryID: 1, Gameweek: 1, PlayerID: 7, Multiplier: 2},
		}},
		PlayerPoints: []league.PlayerGameweekPoints{{PlayerID: 7, Gameweek: 1, TotalPoints: 12}},
	}
}
