package analytics

import "github.com/preston-bernstein/fpl-dashboard/internal/domain/league"

func testManagers() []league.Manager {
	return []league.Manager{
		{ExternalID: "manager_1", EntryID: 1, ManagerName: "Ada", TeamName: "Byte FC", OverallPoints: 1200, OverallRank: 50000, LeagueRank: 2, TeamValue: 101.5, ConsistencyScore: 80, AvgPointsPerWeek: 60, PointsStdDev: 10, TeamValueGrowth: 1.5, TotalTransfers: 10},
		{ExternalID: "manager_2", EntryID: 2, ManagerName: "Grace", TeamName: "Cobol City", OverallPoints: 1300, OverallRank: 20000, LeagueRank: 1, TeamValue: 103.0, ConsistencyScore: 80, AvgPointsPerWeek: 65, PointsStdDev: 18, TeamValueGrowth: 3.0, TotalTransfers: 20},
		{ExternalID: "manager_3", EntryID: 3, ManagerName: "Linus", TeamName: "Kernel Utd", OverallPoints: 1100, OverallRank: 90000, LeagueRank: 4, TeamValue: 99.0, ConsistencyScore: 70, AvgPointsPerWeek: 55, PointsStdDev: 25, TeamValueGrowth: -1.0, TotalTransfers: 4},
		{ExternalID: "manager_4", EntryID: 4, ManagerName: "Barbara", TeamName: "Liskov Wanderers", OverallPoints: 1150, OverallRank: 70000, LeagueRank: 3, TeamValue: 100.0, ConsistencyScore: 75, AvgPointsPerWeek: 57.5, PointsStdDev: 12, TeamValueGrowth: 0, TotalTransfers: 0},
		{ExternalID: "manager_5", EntryID: 5, ManagerName: "Ken", TeamName: "Unix Rovers", OverallPoints: 1000, OverallRank: 150000, LeagueRank: 6, TeamValue: 98.5, ConsistencyScore: 60, AvgPointsPerWeek: 50, PointsStdDev: 30, TeamValueGrowth: 2.0, TotalTransfers: 8},
		{ExternalID: "manager_6", EntryID: 6, ManagerName: "Dennis", TeamName: "C Athletic", OverallPoints: 1050, OverallRank: 120000, LeagueRank: 5, TeamValue: 100.5, ConsistencyScore: 65, AvgPointsPerWeek: 52.5, PointsStdDev: 22, TeamValueGrowth: 0.5, TotalTransfers: 12},
	}
}
