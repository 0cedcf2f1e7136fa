package analytics

import "github.com/preston-bernstein/fpl-dashboard/internal/domain/league"

// wildcardRankQuantile bounds the "top ranks" considered for the wildcard king.
const wildcardRankQuantile = 0.3

// Fact names the manager behind a fun fact and its headline value.
type Fact struct {
	Manager league.Manager `json:"manager"`
	Value   float64        `json:"value"`
}

// LeagueAverages are league-wide means.
type LeagueAverages struct {
	Points      int     `json:"points"`
	PPW         float64 `json:"ppw"`
	Transfers   float64 `json:"transfers"`
	ValueGrowth float64 `json:"valueGrowth"`
}

// FunFacts is the fun facts tab view model. Facts are nil when no manager
// qualifies.
type FunFacts struct {
	MostConsistent []Leader `json:"mostConsistent"`
	BestGrowth     []Leader `json:"bestGrowth"`
	HighestAvgPPW  []Leader `json:"highestAvgPpw"`
	MostValuable   []Leader `json:"mostValuable"`

	// Highest standard deviation among managers at or above median points.
	RiskTaker *Fact `json:"riskTaker,omitempty"`
	// Best value growth per transfer among managers with growth and transfers.
	BargainHunter *Fact `json:"bargainHunter,omitempty"`
	MostActive    *Fact `json:"mostActive,omitempty"`
	// Fewest transfers among managers at or above median points.
	SetAndForget          *Fact `json:"setAndForget,omitempty"`
	BestPointsPerTransfer *Fact `json:"bestPointsPerTransfer,omitempty"`
	// Most transfers among managers whose overall rank is within the top 30%.
	WildcardKing *Fact `json:"wildcardKing,omitempty"`

	Averages LeagueAverages `json:"averages"`
}

// BuildFunFacts computes category leaders and the league's curiosities.
func BuildFunFacts(managers []league.Manager) FunFacts {
	ff := FunFacts{
		MostConsistent: leaders(managers, categoryLeadersN, byConsistency),
		BestGrowth:     leaders(managers, categoryLeadersN, byGrowth),
		HighestAvgPPW:  leaders(managers, categoryLeadersN, byAvgPPW),
		MostValuable:   leaders(managers, categoryLeadersN, byTeamValue),
	}
	if len(managers) == 0 {
		return ff
	}

	medianPoints := median(column(managers, byPoints))
	aboveMedian := filterManagers(managers, func(m league.Manager) bool {
		return float64(m.OverallPoints) >= medianPoints
	})
	ff.RiskTaker = first(nlargest(aboveMedian, 1, byStdDev), byStdDev)
	ff.SetAndForget = first(nsmallest(aboveMedian, 1, byTransfers), byTransfers)

	valueEfficiency := func(m league.Manager) float64 {
		return m.TeamValueGrowth / float64(m.TotalTransfers)
	}
	bargains := filterManagers(managers, func(m league.Manager) bool {
		return m.TeamValueGrowth > 0 && m.TotalTransfers > 0
	})
	ff.BargainHunter = first(nlargest(bargains, 1, valueEfficiency), valueEfficiency)

	ff.MostActive = first(nlargest(managers, 1, byTransfers), byTransfers)

	pointsPerTransfer := func(m league.Manager) float64 {
		return float64(m.OverallPoints) / float64(m.TotalTransfers)
	}
	traders := filterManagers(managers, func(m league.Manager) bool { return m.TotalTransfers > 0 })
	ff.BestPointsPerTransfer = first(nlargest(traders, 1, pointsPerTransfer), pointsPerTransfer)

	threshold := quantile(column(managers, byRank), wildcardRankQuantile)
	topRanked := filterManagers(managers, func(m league.Manager) bool {
		return float64(m.OverallRank) <= threshold
	})
	ff.WildcardKing = first(nlargest(topRanked, 1, byTransfers), byTransfers)

	ff.Averages = LeagueAverages{
		Points:      int(mean(column(managers, byPoints))),
		PPW:         mean(column(managers, byAvgPPW)),
		Transfers:   mean(column(managers, byTransfers)),
		ValueGrowth: mean(column(managers, byGrowth)),
	}
	return ff
}

func first(managers []league.Manager, key managerKey) *Fact {
	if len(managers) == 0 {
		return nil
	}
	return &Fact{Manager: managers[0], Value: key(managers[0])}
}
