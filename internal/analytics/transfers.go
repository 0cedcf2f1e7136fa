package analytics

import (
	"slices"
	"sort"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

// RecentTransferLimit caps the recent transfers table.
const RecentTransferLimit = 20

// TransferRow is a transfer with manager and player names resolved.
type TransferRow struct {
	Manager       string  `json:"manager"`
	Gameweek      int     `json:"gameweek"`
	PlayerOut     string  `json:"playerOut"`
	PlayerIn      string  `json:"playerIn"`
	NetBenefit    float64 `json:"netBenefit"`
	WasSuccessful bool    `json:"wasSuccessful"`
	TransferCost  int     `json:"transferCost"`
}

// ManagerTransferStats aggregates one manager's transfers.
type ManagerTransferStats struct {
	Manager      string  `json:"manager"`
	Successful   int     `json:"successful"`
	Total        int     `json:"total"`
	TotalBenefit float64 `json:"totalBenefit"`
	TotalCost    float64 `json:"totalCost"`
	SuccessRate  float64 `json:"successRate"`
	NetGain      float64 `json:"netGain"`
}

// Unsuccessful is the number of transfers that did not pay off.
func (s ManagerTransferStats) Unsuccessful() int { return s.Total - s.Successful }

// BenefitDistribution splits net benefits around break-even. Zero values count
// toward the total but toward neither side.
type BenefitDistribution struct {
	Positive    []float64 `json:"positive"`
	Negative    []float64 `json:"negative"`
	Median      float64   `json:"median"`
	PositivePct float64   `json:"positivePct"`
	NegativePct float64   `json:"negativePct"`
}

// TransferAnalysis is the transfers tab view model.
type TransferAnalysis struct {
	Total         int                    `json:"total"`
	Successful    int                    `json:"successful"`
	SuccessRate   float64                `json:"successRate"`
	AvgNetBenefit float64                `json:"avgNetBenefit"`
	TotalCost     int                    `json:"totalCost"`
	PerManager    []ManagerTransferStats `json:"perManager"`
	Recent        []TransferRow          `json:"recent"`
	All           []TransferRow          `json:"all"`
	Distribution  BenefitDistribution    `json:"distribution"`
}

// Empty reports whether no transfers matched the selection.
func (a TransferAnalysis) Empty() bool { return a.Total == 0 }

// AnalyzeTransfers resolves names and aggregates transfers made by the
// selected managers. Transfers whose manager is unknown are ignored.
func AnalyzeTransfers(transfers []league.Transfer, managers []league.Manager, players league.Players, selected []string) TransferAnalysis {
	names := make(map[string]string, len(managers))
	for _, m := range managers {
		names[m.ExternalID] = m.ManagerName
	}
	want := nameSet(selected)

	rows := make([]TransferRow, 0, len(transfers))
	for _, t := range transfers {
		name, ok := names[t.ManagerID]
		if !ok || !want[name] {
			continue
		}
		rows = append(rows, TransferRow{
			Manager:       name,
			Gameweek:      t.Gameweek,
			PlayerOut:     players.NameOf(t.PlayerOutID),
			PlayerIn:      players.NameOf(t.PlayerInID),
			NetBenefit:    t.NetBenefit,
			WasSuccessful: t.WasSuccessful,
			TransferCost:  t.TransferCost,
		})
	}

	a := TransferAnalysis{
		Total:      len(rows),
		PerManager: []ManagerTransferStats{},
		Recent:     []TransferRow{},
		All:        rows,
	}
	if len(rows) == 0 {
		return a
	}

	benefits := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.WasSuccessful {
			a.Successful++
		}
		a.TotalCost += r.TransferCost
		benefits = append(benefits, r.NetBenefit)
	}
	a.SuccessRate = float64(a.Successful) / float64(a.Total) * 100
	a.AvgNetBenefit = mean(benefits)
	a.PerManager = perManagerStats(rows)
	a.Recent = recentTransfers(rows, RecentTransferLimit)
	a.Distribution = distribution(benefits)
	return a
}

func perManagerStats(rows []TransferRow) []ManagerTransferStats {
	byName := map[string]*ManagerTransferStats{}
	for _, r := range rows {
		s := byName[r.Manager]
		if s == nil {
			s = &ManagerTransferStats{Manager: r.Manager}
			byName[r.Manager] = s
		}
		s.Total++
		if r.WasSuccessful {
			s.Successful++
		}
		s.TotalBenefit += r.NetBenefit
		s.TotalCost += float64(r.TransferCost)
	}

	out := make([]ManagerTransferStats, 0, len(byName))
	for _, s := range byName {
		s.TotalBenefit = round(s.TotalBenefit, 2)
		s.TotalCost = round(s.TotalCost, 2)
		s.SuccessRate = round(float64(s.Successful)/float64(s.Total)*100, 1)
		s.NetGain = round(s.TotalBenefit-s.TotalCost, 1)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Manager < out[j].Manager })
	sort.SliceStable(out, func(i, j int) bool { return out[i].SuccessRate > out[j].SuccessRate })
	return out
}

func recentTransfers(rows []TransferRow, limit int) []TransferRow {
	recent := slices.Clone(rows)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Gameweek > recent[j].Gameweek })
	return recent[:min(limit, len(recent))]
}

func distribution(benefits []float64) BenefitDistribution {
	d := BenefitDistribution{Positive: []float64{}, Negative: []float64{}}
	for _, b := range benefits {
		switch {
		case b > 0:
			d.Positive = append(d.Positive, b)
		case b < 0:
			d.Negative = append(d.Negative, b)
		}
	}
	d.Median = median(benefits)
	if n := float64(len(benefits)); n > 0 {
		d.PositivePct = float64(len(d.Positive)) / n * 100
		d.NegativePct = float64(len(d.Negative)) / n * 100
	}
	return d
}
