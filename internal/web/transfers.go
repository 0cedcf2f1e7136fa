package web

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	"github.com/preston-bernstein/fpl-dashboard/internal/charts"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

type rateRow struct {
	Stats analytics.ManagerTransferStats
	Color string
}

type transfersView struct {
	Selector          selector
	Analysis          analytics.TransferAnalysis
	Rates             []rateRow
	SuccessChart      template.HTML
	DistributionChart template.HTML
	ExportURL         string
}

func (h *Handler) transfers(r *http.Request, p *page, managers []league.Manager) {
	selected := selectedManagers(r, managers, analytics.DefaultSelection(managers))
	view := transfersView{
		Selector:  newSelector("Select Managers to Analyze", true, managers, selected),
		ExportURL: exportURL("/export/transfers.xlsx", selected),
	}
	p.Body = &view

	if len(selected) == 0 {
		p.info("Please select at least one manager to view transfer analysis")
		return
	}

	transfers, err := h.svc.Transfers(r.Context())
	if err != nil {
		p.warn("Error fetching transfers: %v", err)
		return
	}
	if len(transfers) == 0 {
		p.warn("No transfer data found in CDF. Run the transfer analysis load first.")
		return
	}
	players, err := h.svc.Players(r.Context())
	if err != nil {
		p.warn("Error fetching players: %v", err)
	}

	view.Analysis = analytics.AnalyzeTransfers(transfers, managers, players, selected)
	if view.Analysis.Empty() {
		p.info("No transfer data available for selected managers")
		return
	}

	rates := make([]float64, len(view.Analysis.PerManager))
	for i, s := range view.Analysis.PerManager {
		rates[i] = s.SuccessRate
	}
	lo, hi := charts.Scale(rates)
	names := make([]string, len(view.Analysis.PerManager))
	successful := make([]float64, len(names))
	unsuccessful := make([]float64, len(names))
	for i, s := range view.Analysis.PerManager {
		view.Rates = append(view.Rates, rateRow{Stats: s, Color: charts.RdYlGn(s.SuccessRate, lo, hi)})
		names[i] = s.Manager
		successful[i] = float64(s.Successful)
		unsuccessful[i] = float64(s.Unsuccessful())
	}

	view.SuccessChart = charts.Bar(charts.Options{
		ID:    "transfers_success",
		Title: "Transfer Success by Manager",
		XName: "Manager",
		YName: "Number of Transfers",
	}, names,
		charts.BarSeries{Name: "Successful", Values: successful, Color: charts.ColorSuccess, Stack: "total"},
		charts.BarSeries{Name: "Unsuccessful", Values: unsuccessful, Color: charts.ColorFailure, Stack: "total"},
	)

	dist := view.Analysis.Distribution
	view.DistributionChart = charts.Histogram(charts.Options{
		ID:       "transfers_benefit",
		Title:    "Distribution of Transfer Net Benefits",
		Subtitle: fmt.Sprintf("Median: %.1f pts", dist.Median),
		XName:    "Net Benefit (points)",
		YName:    "Number of Transfers",
	}, charts.DefaultBins,
		charts.HistSeries{Name: "Negative Benefit", Values: dist.Negative, Color: charts.ColorNegative},
		charts.HistSeries{Name: "Positive Benefit", Values: dist.Positive, Color: charts.ColorPositive},
	)
}

func exportURL(path string, selected []string) string {
	if len(selected) == 0 {
		return path
	}
	q := url.Values{managerParam: selected}
	return path + "?" + q.Encode()
}
