package analytics

import (
	"slices"
	"sort"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

const (
	favoritesTopN  = 10
	insightsTopN   = 5
	teamCardsLimit = 10
)

// FavoritesInput gathers the datasets the favorites tab joins.
type FavoritesInput struct {
	Manager      string
	Managers     []league.Manager
	Preferences  []league.TeamPreference
	Teams        league.Teams
	Players      league.Players
	Picks        []league.Pick
	PlayerPoints []league.PlayerGameweekPoints
}

// FavoritesOverview headlines a manager's team usage.
type FavoritesOverview struct {
	TeamsUsed        int     `json:"teamsUsed"`
	TotalSelections  int     `json:"totalSelections"`
	TotalPoints      int     `json:"totalPoints"`
	AvgPointsPerTeam float64 `json:"avgPointsPerTeam"`
}

// TeamSummary aggregates a manager's preference rows for one club.
type TeamSummary struct {
	Team               string  `json:"team"`
	PlayersUsed        int     `json:"playersUsed"`
	TotalPoints        int     `json:"totalPoints"`
	AvgPointsPerPlayer float64 `json:"avgPointsPerPlayer"`
	SuccessRate        float64 `json:"successRate"`
	PointsPerSelection float64 `json:"pointsPerSelection"`
	Color              string  `json:"color"`
}

// ValueInsights compares the most picked clubs with the most valuable ones.
type ValueInsights struct {
	Overlap       int      `json:"overlap"`
	Underutilized []string `json:"underutilized"`
	OverPicked    []string `json:"overPicked"`
}

// TopPlayer is the best scoring player a manager owned from one club.
type TopPlayer struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// PreferenceRow is a preference with its team name resolved.
type PreferenceRow struct {
	Team               string  `json:"team"`
	PlayersUsed        int     `json:"playersUsed"`
	TotalPoints        int     `json:"totalPoints"`
	AvgPointsPerPlayer float64 `json:"avgPointsPerPlayer"`
	SuccessRate        float64 `json:"successRate"`
}

// TeamCard is one of the ranked club cards.
type TeamCard struct {
	Rank      int           `json:"rank"`
	Color     string        `json:"color"`
	TopPlayer *TopPlayer    `json:"topPlayer,omitempty"`
	Row       PreferenceRow `json:"row"`
}

// PieSlice is one club's share of a manager's points.
type PieSlice struct {
	Team   string  `json:"team"`
	Points float64 `json:"points"`
	Color  string  `json:"color"`
}

// Favorites is the favorites tab view model for a single manager.
type Favorites struct {
	Manager      string            `json:"manager"`
	Overview     FavoritesOverview `json:"overview"`
	Summary      []TeamSummary     `json:"summary"`
	MostPicked   []TeamSummary     `json:"mostPicked"`
	MostValuable []TeamSummary     `json:"mostValuable"`
	Insights     ValueInsights     `json:"insights"`
	Cards        []TeamCard        `json:"cards"`
	Details      []PreferenceRow   `json:"details"`
	Pie          []PieSlice        `json:"pie"`
}

// Empty reports whether the manager has no preference rows.
func (f Favorites) Empty() bool { return len(f.Details) == 0 }

// BuildFavorites joins preferences, picks and player points for one manager.
func BuildFavorites(in FavoritesInput) Favorites {
	fav := Favorites{
		Manager:      in.Manager,
		Summary:      []TeamSummary{},
		MostPicked:   []TeamSummary{},
		MostValuable: []TeamSummary{},
		Cards:        []TeamCard{},
		Details:      []PreferenceRow{},
		Pie:          []PieSlice{},
	}

	names := make(map[string]string, len(in.Managers))
	for _, m := range in.Managers {
		names[m.ExternalID] = m.ManagerName
	}
	for _, p := range in.Preferences {
		if name, ok := names[p.ManagerID]; !ok || name != in.Manager {
			continue
		}
		fav.Details = append(fav.Details, PreferenceRow{
			Team:               in.Teams.NameOf(p.TeamID),
			PlayersUsed:        p.TotalPlayersUsed,
			TotalPoints:        p.TotalPoints,
			AvgPointsPerPlayer: p.AvgPointsPerPlayer,
			SuccessRate:        p.SuccessRate,
		})
	}
	if len(fav.Details) == 0 {
		return fav
	}

	fav.Summary = summarizeTeams(fav.Details)
	fav.Overview = favoritesOverview(fav.Details, fav.Summary)
	fav.MostPicked = topTeams(fav.Summary, favoritesTopN, func(s TeamSummary) float64 { return float64(s.PlayersUsed) })
	fav.MostValuable = topTeams(fav.Summary, favoritesTopN, func(s TeamSummary) float64 { return s.PointsPerSelection })
	fav.Insights = valueInsights(fav.Summary)

	sort.SliceStable(fav.Details, func(i, j int) bool { return fav.Details[i].TotalPoints > fav.Details[j].TotalPoints })

	var topPlayers map[string]TopPlayer
	if m, ok := ManagerByName(in.Managers, in.Manager); ok {
		topPlayers = TopPlayersByTeam(m.EntryID, in.Picks, in.PlayerPoints, in.Players, in.Teams)
	}
	for i, row := range fav.Details[:min(teamCardsLimit, len(fav.Details))] {
		card := TeamCard{Rank: i + 1, Color: league.TeamColor(row.Team), Row: row}
		if tp, ok := topPlayers[row.Team]; ok {
			card.TopPlayer = &tp
		}
		fav.Cards = append(fav.Cards, card)
	}

	fav.Pie = pieByTeam(fav.Details)
	return fav
}

// summarizeTeams groups rows by team name in name order.
func summarizeTeams(rows []PreferenceRow) []TeamSummary {
	type acc struct {
		used, points int
		avgSum, rate float64
		n            int
	}
	groups := map[string]*acc{}
	for _, r := range rows {
		a := groups[r.Team]
		if a == nil {
			a = &acc{}
			groups[r.Team] = a
		}
		a.used += r.PlayersUsed
		a.points += r.TotalPoints
		a.avgSum += r.AvgPointsPerPlayer
		a.rate += r.SuccessRate
		a.n++
	}

	teams := make([]string, 0, len(groups))
	for t := range groups {
		teams = append(teams, t)
	}
	slices.Sort(teams)

	out := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		a := groups[t]
		s := TeamSummary{
			Team:               t,
			PlayersUsed:        a.used,
			TotalPoints:        a.points,
			AvgPointsPerPlayer: a.avgSum / float64(a.n),
			SuccessRate:        a.rate / float64(a.n),
			Color:              league.TeamColor(t),
		}
		if a.used > 0 {
			s.PointsPerSelection = round(float64(a.points)/float64(a.used), 2)
		}
		out = append(out, s)
	}
	return out
}

func favoritesOverview(rows []PreferenceRow, summary []TeamSummary) FavoritesOverview {
	ov := FavoritesOverview{TeamsUsed: len(summary)}
	for _, r := range rows {
		ov.TotalSelections += r.PlayersUsed
		ov.TotalPoints += r.TotalPoints
	}
	perTeam := make([]float64, 0, len(summary))
	for _, s := range summary {
		perTeam = append(perTeam, float64(s.TotalPoints))
	}
	ov.AvgPointsPerTeam = mean(perTeam)
	return ov
}

func topTeams(summary []TeamSummary, n int, key func(TeamSummary) float64) []TeamSummary {
	out := slices.Clone(summary)
	sort.SliceStable(out, func(i, j int) bool { return key(out[i]) > key(out[j]) })
	return out[:min(n, len(out))]
}

func valueInsights(summary []TeamSummary) ValueInsights {
	picked := topTeams(summary, insightsTopN, func(s TeamSummary) float64 { return float64(s.PlayersUsed) })
	valuable := topTeams(summary, insightsTopN, func(s TeamSummary) float64 { return s.PointsPerSelection })

	pickedSet := map[string]bool{}
	for _, s := range picked {
		pickedSet[s.Team] = true
	}
	valuableSet := map[string]bool{}
	for _, s := range valuable {
		valuableSet[s.Team] = true
	}

	in := ValueInsights{Underutilized: []string{}, OverPicked: []string{}}
	for _, s := range valuable {
		if pickedSet[s.Team] {
			in.Overlap++
		} else {
			in.Underutilized = append(in.Underutilized, s.Team)
		}
	}
	for _, s := range picked {
		if !valuableSet[s.Team] {
			in.OverPicked = append(in.OverPicked, s.Team)
		}
	}
	return in
}

type pointsKey struct {
	player, gameweek int
}

// TopPlayersByTeam finds, per club, the player who earned a manager the most
// points. Points are multiplied by the pick multiplier; picks without a points
// row score zero. Players or teams that cannot be resolved are skipped.
func TopPlayersByTeam(entryID int64, picks []league.Pick, points []league.PlayerGameweekPoints, players league.Players, teams league.Teams) map[string]TopPlayer {
	out := map[string]TopPlayer{}
	if len(picks) == 0 || len(points) == 0 || len(players) == 0 {
		return out
	}

	scored := make(map[pointsKey]float64, len(points))
	for _, p := range points {
		scored[pointsKey{p.PlayerID, p.Gameweek}] += float64(p.TotalPoints)
	}

	totals := map[string]float64{}
	for _, pick := range picks {
		if pick.ManagerEntryID != entryID {
			continue
		}
		totals[pick.PlayerKey()] += scored[pointsKey{pick.PlayerID, pick.Gameweek}] * float64(pick.Multiplier)
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		player, ok := players[key]
		if !ok {
			continue
		}
		team, ok := teams[player.TeamID]
		if !ok {
			continue
		}
		total := totals[key]
		if best, seen := out[team]; !seen || total > best.Points {
			out[team] = TopPlayer{Name: player.Name, Points: total}
		}
	}
	return out
}

func pieByTeam(rows []PreferenceRow) []PieSlice {
	idx := map[string]int{}
	out := []PieSlice{}
	for _, r := range rows {
		if i, ok := idx[r.Team]; ok {
			out[i].Points += float64(r.TotalPoints)
			continue
		}
		idx[r.Team] = len(out)
		out = append(out, PieSlice{Team: r.Team, Points: float64(r.TotalPoints), Color: league.TeamColor(r.Team)})
	}
	return out
}
