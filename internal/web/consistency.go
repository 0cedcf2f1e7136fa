package web

import (
	"html/template"
	"net/http"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	"github.com/preston-bernstein/fpl-dashboard/internal/charts"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

type consistencyView struct {
	Selector        selector
	Data            analytics.Consistency
	VolatilityChart template.HTML
	GrowthChart     template.HTML
}

func (h *Handler) consistency(r *http.Request, p *page, managers []league.Manager) {
	highlight := selectedManagers(r, managers, nil)
	data := analytics.BuildConsistency(managers, highlight)
	p.Body = consistencyView{
		Selector: newSelector("Highlight Managers (leave empty for all)", true, managers, highlight),
		Data:     data,
		VolatilityChart: scatter(charts.Options{
			ID:    "consistency_volatility",
			Title: "Consistency: Average vs Volatility",
			XName: "Avg Points per Week",
			YName: "Points Std Dev",
		}, data.Volatility),
		GrowthChart: scatter(charts.Options{
			ID:    "consistency_growth",
			Title: "Transfers vs Team Value Growth",
			XName: "Total Transfers",
			YName: "Value Growth (£m)",
		}, data.Growth),
	}
}

// scatter sizes markers by points and colors them by consistency score.
func scatter(o charts.Options, points []analytics.ScatterPoint) template.HTML {
	sizes := make([]float64, len(points))
	scores := make([]float64, len(points))
	for i, pt := range points {
		sizes[i] = pt.Size
		scores[i] = pt.Consistency
	}
	sizeLo, sizeHi := charts.Scale(sizes)
	colorLo, colorHi := charts.Scale(scores)

	out := make([]charts.Point, len(points))
	for i, pt := range points {
		out[i] = charts.Point{
			Name:  pt.Manager,
			X:     pt.X,
			Y:     pt.Y,
			Size:  charts.SizeScale(pt.Size, sizeLo, sizeHi),
			Color: charts.RdYlGn(pt.Consistency, colorLo, colorHi),
		}
	}
	return charts.Scatter(o, out)
}
