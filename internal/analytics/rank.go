// Package analytics shapes league records into per-tab view models. Every
// function is pure: inputs are never mutated and outputs share no backing
// arrays with them.
package analytics

import (
	"math"
	"slices"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

// Leader is one entry of a category leaderboard.
type Leader struct {
	Manager string  `json:"manager"`
	Value   float64 `json:"value"`
}

type managerKey func(league.Manager) float64

var (
	byPoints      managerKey = func(m league.Manager) float64 { return float64(m.OverallPoints) }
	byConsistency managerKey = func(m league.Manager) float64 { return m.ConsistencyScore }
	byGrowth      managerKey = func(m league.Manager) float64 { return m.TeamValueGrowth }
	byAvgPPW      managerKey = func(m league.Manager) float64 { return m.AvgPointsPerWeek }
	byTeamValue   managerKey = func(m league.Manager) float64 { return m.TeamValue }
	byStdDev      managerKey = func(m league.Manager) float64 { return m.PointsStdDev }
	byTransfers   managerKey = func(m league.Manager) float64 { return float64(m.TotalTransfers) }
	byRank        managerKey = func(m league.Manager) float64 { return float64(m.OverallRank) }
)

// nlargest returns the n managers with the largest key, ties in input order.
func nlargest(managers []league.Manager, n int, key managerKey) []league.Manager {
	out := slices.Clone(managers)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	return out[:min(n, len(out))]
}

// nsmallest returns the n managers with the smallest key, ties in input order.
func nsmallest(managers []league.Manager, n int, key managerKey) []league.Manager {
	out := slices.Clone(managers)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out[:min(n, len(out))]
}

// idxmax returns the index of the first manager holding the maximum key, or -1.
func idxmax(managers []league.Manager, key managerKey) int {
	if len(managers) == 0 {
		return -1
	}
	return floats.MaxIdx(column(managers, key))
}

func leaders(managers []league.Manager, n int, key managerKey) []Leader {
	top := nlargest(managers, n, key)
	out := make([]Leader, 0, len(top))
	for _, m := range top {
		out = append(out, Leader{Manager: m.ManagerName, Value: key(m)})
	}
	return out
}

func filterManagers(managers []league.Manager, keep func(league.Manager) bool) []league.Manager {
	out := make([]league.Manager, 0, len(managers))
	for _, m := range managers {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func column(managers []league.Manager, key managerKey) []float64 {
	out := make([]float64, len(managers))
	for i, m := range managers {
		out[i] = key(m)
	}
	return out
}

func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

func median(values []float64) float64 {
	m, err := stats.Median(values)
	if err != nil {
		return 0
	}
	return m
}

// quantile interpolates linearly between closest ranks, so q=0.3 over n values
// lands at position (n-1)*0.3 of the sorted data.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	pos := float64(len(sorted)-1) * q
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
