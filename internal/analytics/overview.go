package analytics

import "github.com/preston-bernstein/fpl-dashboard/internal/domain/league"

// Overview is the league banner shown above every tab.
type Overview struct {
	Managers       int     `json:"managers"`
	AvgPoints      int     `json:"avgPoints"`
	TopScore       int     `json:"topScore"`
	AvgTeamValue   float64 `json:"avgTeamValue"`
	TotalTransfers int     `json:"totalTransfers"`
}

// LeagueOverview summarizes the league. Average points truncate toward zero.
func LeagueOverview(managers []league.Manager) Overview {
	if len(managers) == 0 {
		return Overview{}
	}
	ov := Overview{
		Managers:     len(managers),
		AvgPoints:    int(mean(column(managers, byPoints))),
		AvgTeamValue: mean(column(managers, byTeamValue)),
		TopScore:     managers[idxmax(managers, byPoints)].OverallPoints,
	}
	for _, m := range managers {
		ov.TotalTransfers += m.TotalTransfers
	}
	return ov
}
