package web

import (
	"html/template"
	"net/http"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	"github.com/preston-bernstein/fpl-dashboard/internal/charts"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

type leaderboardView struct {
	Board analytics.Leaderboard
	Chart template.HTML
}

func (h *Handler) leaderboard(_ *http.Request, p *page, managers []league.Manager) {
	board := analytics.BuildLeaderboard(managers)

	names := make([]string, len(board.Rows))
	points := make([]float64, len(board.Rows))
	scores := make([]float64, len(board.Rows))
	for i, row := range board.Rows {
		names[i] = row.Manager
		points[i] = float64(row.Points)
		scores[i] = row.Consistency
	}
	lo, hi := charts.Scale(scores)
	colors := make([]string, len(scores))
	for i, s := range scores {
		colors[i] = charts.RdYlGn(s, lo, hi)
	}

	p.Body = leaderboardView{
		Board: board,
		Chart: charts.Bar(charts.Options{
			ID:    "leaderboard_points",
			Title: "Total Points by Manager (colored by consistency)",
			XName: "Manager",
			YName: "Total Points",
		}, names, charts.BarSeries{Name: "Total Points", Values: points, Colors: colors}),
	}
}
