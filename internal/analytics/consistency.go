package analytics

import "github.com/preston-bernstein/fpl-dashboard/internal/domain/league"

const categoryLeadersN = 5

// ScatterPoint is one manager on a consistency scatter plot.
type ScatterPoint struct {
	Manager     string  `json:"manager"`
	Team        string  `json:"team"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Size        float64 `json:"size"`
	Consistency float64 `json:"consistency"`
}

// Consistency is the consistency tab view model.
type Consistency struct {
	Volatility     []ScatterPoint `json:"volatility"`
	Growth         []ScatterPoint `json:"growth"`
	MostConsistent []Leader       `json:"mostConsistent"`
	BestGrowth     []Leader       `json:"bestGrowth"`
	HighestAvgPPW  []Leader       `json:"highestAvgPpw"`
}

// BuildConsistency plots every manager, or only the highlighted ones when a
// highlight is given. Category leaders always span the whole league.
func BuildConsistency(managers []league.Manager, highlight []string) Consistency {
	shown := managers
	if len(highlight) > 0 {
		want := nameSet(highlight)
		shown = filterManagers(managers, func(m league.Manager) bool { return want[m.ManagerName] })
	}

	c := Consistency{
		Volatility:     make([]ScatterPoint, 0, len(shown)),
		Growth:         make([]ScatterPoint, 0, len(shown)),
		MostConsistent: leaders(managers, categoryLeadersN, byConsistency),
		BestGrowth:     leaders(managers, categoryLeadersN, byGrowth),
		HighestAvgPPW:  leaders(managers, categoryLeadersN, byAvgPPW),
	}
	for _, m := range shown {
		base := ScatterPoint{
			Manager:     m.ManagerName,
			Team:        m.TeamName,
			Size:        float64(m.OverallPoints),
			Consistency: m.ConsistencyScore,
		}
		vol := base
		vol.X, vol.Y = m.AvgPointsPerWeek, m.PointsStdDev
		c.Volatility = append(c.Volatility, vol)

		growth := base
		growth.X, growth.Y = float64(m.TotalTransfers), m.TeamValueGrowth
		c.Growth = append(c.Growth, growth)
	}
	return c
}
