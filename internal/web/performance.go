package web

import (
	"html/template"
	"math"
	"net/http"
	"strconv"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	"github.com/preston-bernstein/fpl-dashboard/internal/charts"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

type performanceView struct {
	Selector        selector
	HasData         bool
	PointsChart     template.HTML
	CumulativeChart template.HTML
	ActivityChart   template.HTML
}

func (h *Handler) performance(r *http.Request, p *page, managers []league.Manager) {
	selected := selectedManagers(r, managers, analytics.DefaultSelection(managers))
	view := performanceView{Selector: newSelector("Select Managers to Compare", true, managers, selected)}
	p.Body = &view

	if len(selected) == 0 {
		p.info("Please select at least one manager to view their performance")
		return
	}

	histories := make([]analytics.ManagerHistory, 0, len(selected))
	for _, name := range selected {
		m, ok := analytics.ManagerByName(managers, name)
		if !ok {
			continue
		}
		rows, err := h.svc.Performance(r.Context(), m.ExternalID)
		if err != nil {
			p.warn("Error loading data for %s: %v", name, err)
			continue
		}
		histories = append(histories, analytics.ManagerHistory{Manager: name, Rows: rows})
	}

	trends := analytics.BuildTrends(histories)
	if len(trends.Managers) == 0 {
		p.info("No performance data available for selected managers")
		return
	}

	view.HasData = true
	view.PointsChart, view.CumulativeChart, view.ActivityChart = trendCharts(trends)
}

func trendCharts(trends analytics.Trends) (points, cumulative, activity template.HTML) {
	x := make([]string, len(trends.Gameweeks))
	index := make(map[int]int, len(trends.Gameweeks))
	for i, gw := range trends.Gameweeks {
		x[i] = "GW " + strconv.Itoa(gw)
		index[gw] = i
	}

	var pointLines, totalLines []charts.LineSeries
	var transferBars []charts.BarSeries
	for i, m := range trends.Managers {
		color := charts.SeriesColor(i)
		pts := gaps(len(x))
		totals := gaps(len(x))
		moves := make([]float64, len(x))
		for _, row := range m.Rows {
			j := index[row.Gameweek]
			pts[j] = float64(row.Points)
			totals[j] = float64(row.TotalPoints)
			moves[j] = float64(row.Transfers)
		}
		pointLines = append(pointLines, charts.LineSeries{Name: m.Manager + " - Points", Values: pts, Color: color})

		if len(m.Markers) > 0 {
			marks := gaps(len(x))
			sizes := make([]int, len(x))
			for _, mk := range m.Markers {
				j := index[mk.Gameweek]
				marks[j] = float64(mk.Points)
				sizes[j] = mk.Size
			}
			pointLines = append(pointLines, charts.LineSeries{
				Name:        m.Manager + " - Transfers",
				Values:      marks,
				Sizes:       sizes,
				Symbol:      "diamond",
				Color:       color,
				MarkersOnly: true,
			})
		}

		totalLines = append(totalLines, charts.LineSeries{Name: m.Manager, Values: totals, Color: color})
		transferBars = append(transferBars, charts.BarSeries{Name: m.Manager, Values: moves, Color: color})
	}

	points = charts.Line(charts.Options{
		ID:     "performance_points",
		Title:  "Points Per Gameweek with Transfer Activity",
		XName:  "Gameweek",
		YName:  "Points",
		Height: "600px",
	}, x, pointLines...)
	cumulative = charts.Line(charts.Options{
		ID:    "performance_cumulative",
		Title: "Cumulative Points",
		XName: "Gameweek",
		YName: "Total Points",
	}, x, totalLines...)
	activity = charts.Bar(charts.Options{
		ID:    "performance_transfers",
		Title: "Transfer Activity",
		XName: "Gameweek",
		YName: "Transfers Made",
	}, x, transferBars...)
	return points, cumulative, activity
}

func gaps(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
