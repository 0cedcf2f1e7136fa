package analytics

import (
	"slices"
	"sort"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

// LeaderboardRow is one ranked manager.
type LeaderboardRow struct {
	ExternalID  string  `json:"externalId"`
	Rank        int     `json:"rank"`
	Manager     string  `json:"manager"`
	Team        string  `json:"team"`
	Points      int     `json:"points"`
	TeamValue   float64 `json:"teamValue"`
	Consistency float64 `json:"consistency"`
	AvgPPW      float64 `json:"avgPpw"`
	Transfers   int     `json:"transfers"`
}

// Leaderboard holds the headline metrics and the standings table.
type Leaderboard struct {
	TotalManagers   int              `json:"totalManagers"`
	HighestPoints   int              `json:"highestPoints"`
	MostConsistent  Leader           `json:"mostConsistent"`
	BestValueGrowth Leader           `json:"bestValueGrowth"`
	Rows            []LeaderboardRow `json:"rows"`
}

// BuildLeaderboard ranks managers by overall points. Headline leaders are the
// first manager holding each maximum.
func BuildLeaderboard(managers []league.Manager) Leaderboard {
	lb := Leaderboard{TotalManagers: len(managers), Rows: []LeaderboardRow{}}
	if len(managers) == 0 {
		return lb
	}

	lb.HighestPoints = managers[idxmax(managers, byPoints)].OverallPoints
	mc := managers[idxmax(managers, byConsistency)]
	lb.MostConsistent = Leader{Manager: mc.ManagerName, Value: mc.ConsistencyScore}
	vg := managers[idxmax(managers, byGrowth)]
	lb.BestValueGrowth = Leader{Manager: vg.ManagerName, Value: vg.TeamValueGrowth}

	sorted := slices.Clone(managers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].OverallPoints > sorted[j].OverallPoints })
	for _, m := range sorted {
		lb.Rows = append(lb.Rows, LeaderboardRow{
			ExternalID:  m.ExternalID,
			Rank:        m.LeagueRank,
			Manager:     m.ManagerName,
			Team:        m.TeamName,
			Points:      m.OverallPoints,
			TeamValue:   m.TeamValue,
			Consistency: m.ConsistencyScore,
			AvgPPW:      m.AvgPointsPerWeek,
			Transfers:   m.TotalTransfers,
		})
	}
	return lb
}
