package web

import (
	"html/template"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	"github.com/preston-bernstein/fpl-dashboard/internal/charts"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

type favoritesView struct {
	Selector    selector
	Favorites   analytics.Favorites
	PickedChart template.HTML
	ValueChart  template.HTML
	PieChart    template.HTML
}

// favoritesData holds the datasets joined on the favorites tab. Each fetch
// fails independently so the tab still renders what it can.
type favoritesData struct {
	prefs     []league.TeamPreference
	teams     league.Teams
	players   league.Players
	picks     league.PickSet
	points    []league.PlayerGameweekPoints
	prefsErr  error
	teamsErr  error
	playerErr error
	picksErr  error
	pointsErr error
}

func (h *Handler) favorites(r *http.Request, p *page, managers []league.Manager) {
	name := selectedManager(r, managers)
	view := favoritesView{Selector: newSelector("Select Manager", false, managers, []string{name})}
	p.Body = &view

	if _, ok := analytics.ManagerByName(managers, name); !ok {
		p.info("Please select a manager to view their favorite teams")
		return
	}

	d := h.loadFavorites(r)
	for _, fe := range []struct {
		what string
		err  error
	}{
		{"team preferences", d.prefsErr},
		{"teams", d.teamsErr},
		{"players", d.playerErr},
		{"player picks", d.picksErr},
		{"player points", d.pointsErr},
	} {
		if fe.err != nil {
			p.warn("Error fetching %s: %v", fe.what, fe.err)
		}
	}
	if d.picks.ParseErrors > 0 {
		p.warn("Failed to parse %d pick records", d.picks.ParseErrors)
	}
	if len(d.prefs) == 0 {
		p.info("No team preference data available. Run the team analysis load first.")
		return
	}

	fav := analytics.BuildFavorites(analytics.FavoritesInput{
		Manager:      name,
		Managers:     managers,
		Preferences:  d.prefs,
		Teams:        d.teams,
		Players:      d.players,
		Picks:        d.picks.Picks,
		PlayerPoints: d.points,
	})
	view.Favorites = fav
	if fav.Empty() {
		p.info("No team preference data available for " + name)
		return
	}
	view.PickedChart, view.ValueChart, view.PieChart = favoritesCharts(fav)
}

func (h *Handler) loadFavorites(r *http.Request) favoritesData {
	ctx := r.Context()
	var d favoritesData
	var g errgroup.Group
	g.Go(func() error {
		d.prefs, d.prefsErr = h.svc.TeamPreferences(ctx)
		return nil
	})
	g.Go(func() error {
		ds, err := h.svc.Teams(ctx)
		d.teams, d.teamsErr = ds.Data, err
		return nil
	})
	g.Go(func() error {
		d.players, d.playerErr = h.svc.Players(ctx)
		return nil
	})
	g.Go(func() error {
		d.picks, d.picksErr = h.svc.Picks(ctx)
		return nil
	})
	g.Go(func() error {
		d.points, d.pointsErr = h.svc.PlayerPoints(ctx)
		return nil
	})
	_ = g.Wait()
	return d
}

func favoritesCharts(fav analytics.Favorites) (picked, value, pie template.HTML) {
	bar := func(id, title, yName string, rows []analytics.TeamSummary, metric func(analytics.TeamSummary) float64) template.HTML {
		names := make([]string, len(rows))
		values := make([]float64, len(rows))
		colors := make([]string, len(rows))
		for i, s := range rows {
			names[i], values[i], colors[i] = s.Team, metric(s), s.Color
		}
		return charts.Bar(charts.Options{ID: id, Title: title, XName: "Team", YName: yName},
			names, charts.BarSeries{Name: yName, Values: values, Colors: colors, Labels: true})
	}
	picked = bar("favorites_picked", "Teams by Number of Player Selections", "Total Player Selections",
		fav.MostPicked, func(s analytics.TeamSummary) float64 { return float64(s.PlayersUsed) })
	value = bar("favorites_value", "Teams by Points per Player Selection", "Points per Selection",
		fav.MostValuable, func(s analytics.TeamSummary) float64 { return s.PointsPerSelection })

	slices := make([]charts.Slice, len(fav.Pie))
	for i, s := range fav.Pie {
		slices[i] = charts.Slice{Name: s.Team, Value: s.Points, Color: s.Color}
	}
	pie = charts.Pie(charts.Options{
		ID:     "favorites_pie",
		Title:  "Where " + fav.Manager + "'s Points Come From",
		Height: "500px",
	}, slices)
	return picked, value, pie
}
