package analytics

import (
	"slices"
	"sort"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

// ManagerHistory pairs a manager name with its gameweek rows.
type ManagerHistory struct {
	Manager string
	Rows    []league.GameweekPerformance
}

// TransferMarker flags a gameweek in which a manager made transfers.
type TransferMarker struct {
	Gameweek     int `json:"gameweek"`
	Points       int `json:"points"`
	Transfers    int `json:"transfers"`
	TransferCost int `json:"transferCost"`
	Size         int `json:"size"`
}

// ManagerTrend is one manager's series on the trends tab.
type ManagerTrend struct {
	Manager string                       `json:"manager"`
	Rows    []league.GameweekPerformance `json:"rows"`
	Markers []TransferMarker             `json:"markers"`
}

// Trends holds every selected manager's series over a shared gameweek axis.
type Trends struct {
	Gameweeks []int          `json:"gameweeks"`
	Managers  []ManagerTrend `json:"managers"`
}

// MarkerSize scales a transfer marker with the number of transfers made.
func MarkerSize(transfers int) int {
	return transfers*8 + 10
}

// BuildTrends sorts each history by gameweek and derives transfer markers.
// Managers without rows are dropped.
func BuildTrends(histories []ManagerHistory) Trends {
	trends := Trends{Gameweeks: []int{}, Managers: []ManagerTrend{}}
	seen := map[int]bool{}
	for _, h := range histories {
		if len(h.Rows) == 0 {
			continue
		}
		rows := slices.Clone(h.Rows)
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Gameweek < rows[j].Gameweek })

		trend := ManagerTrend{Manager: h.Manager, Rows: rows, Markers: []TransferMarker{}}
		for _, r := range rows {
			if !seen[r.Gameweek] {
				seen[r.Gameweek] = true
				trends.Gameweeks = append(trends.Gameweeks, r.Gameweek)
			}
			if r.Transfers > 0 {
				trend.Markers = append(trend.Markers, TransferMarker{
					Gameweek:     r.Gameweek,
					Points:       r.Points,
					Transfers:    r.Transfers,
					TransferCost: r.TransferCost,
					Size:         MarkerSize(r.Transfers),
				})
			}
		}
		trends.Managers = append(trends.Managers, trend)
	}
	slices.Sort(trends.Gameweeks)
	return trends
}
