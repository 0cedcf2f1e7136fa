package fixture

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

const (
	providerName     = "fixture"
	seasonGameweeks  = 38
	defaultGameweeks = 20
	squadSize        = 15
	startingXI       = 11
	seed             = 2024
)

var teamNames = []string{
	"Arsenal", "Aston Villa", "Bournemouth", "Brentford", "Brighton",
	"Chelsea", "Crystal Palace", "Everton", "Fulham", "Ipswich",
	"Leicester", "Liverpool", "Man City", "Man Utd", "Newcastle",
	"Nott'm Forest", "Southampton", "Spurs", "West Ham", "Wolves",
}

// Two players per club, listed in teamNames order.
var playerNames = [][2]string{
	{"Saka", "Bukayo Saka"}, {"Ødegaard", "Martin Ødegaard"},
	{"Watkins", "Ollie Watkins"}, {"Rogers", "Morgan Rogers"},
	{"Semenyo", "Antoine Semenyo"}, {"Kluivert", "Justin Kluivert"},
	{"Mbeumo", "Bryan Mbeumo"}, {"Wissa", "Yoane Wissa"},
	{"Mitoma", "Kaoru Mitoma"}, {"João Pedro", "João Pedro"},
	{"Palmer", "Cole Palmer"}, {"Jackson", "Nicolas Jackson"},
	{"Mateta", "Jean-Philippe Mateta"}, {"Eze", "Eberechi Eze"},
	{"Pickford", "Jordan Pickford"}, {"Calvert-Lewin", "Dominic Calvert-Lewin"},
	{"Iwobi", "Alex Iwobi"}, {"Muniz", "Rodrigo Muniz"},
	{"Delap", "Liam Delap"}, {"Hutchinson", "Omari Hutchinson"},
	{"Vardy", "Jamie Vardy"}, {"Mavididi", "Stephy Mavididi"},
	{"M.Salah", "Mohamed Salah"}, {"Alexander-Arnold", "Trent Alexander-Arnold"},
	{"Haaland", "Erling Haaland"}, {"Foden", "Phil Foden"},
	{"B.Fernandes", "Bruno Fernandes"}, {"Amad", "Amad Diallo"},
	{"Isak", "Alexander Isak"}, {"Gordon", "Anthony Gordon"},
	{"Wood", "Chris Wood"}, {"Hudson-Odoi", "Callum Hudson-Odoi"},
	{"Archer", "Cameron Archer"}, {"Fernandes", "Mateus Fernandes"},
	{"Son", "Son Heung-min"}, {"Solanke", "Dominic Solanke"},
	{"Bowen", "Jarrod Bowen"}, {"Kudus", "Mohammed Kudus"},
	{"Cunha", "Matheus Cunha"}, {"Strand Larsen", "Jørgen Strand Larsen"},
}

var positions = []string{"GKP", "DEF", "MID", "FWD"}

var managerSeeds = []struct {
	name string
	team string
}{
	{"Alex Morgan", "Expected Toulouse"},
	{"Sam Okafor", "Klopp Dogg"},
	{"Priya Nair", "Saka Potatoes"},
	{"Jonas Berg", "Haaland Aid"},
	{"Maria Lopez", "Moves Like Jagielka"},
	{"Tom Reilly", "Fantasy Island"},
	{"Chen Wei", "Bruno Mars FC"},
	{"Fatima Diallo", "Kane and Able"},
}

// Provider serves a deterministic synthetic league for local runs and tests.
type Provider struct {
	data dataset
}

type dataset struct {
	managers     []league.Manager
	performance  map[string][]league.GameweekPerformance
	prefs        []league.TeamPreference
	teams        league.Teams
	transfers    []league.Transfer
	players      league.Players
	picks        []league.Pick
	playerPoints []league.PlayerGameweekPoints
}

// New creates a fixture league played up to gameweeks (clamped to 1..38,
// non-positive selects the default).
func New(gameweeks int) *Provider {
	if gameweeks <= 0 {
		gameweeks = defaultGameweeks
	}
	gameweeks = min(gameweeks, seasonGameweeks)
	return &Provider{data: generate(gameweeks)}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string { return providerName }

func (p *Provider) FetchManagers(ctx context.Context) ([]league.Manager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]league.Manager(nil), p.data.managers...), nil
}

func (p *Provider) FetchPerformance(ctx context.Context, managerExternalID string) ([]league.GameweekPerformance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	perf, ok := p.data.performance[managerExternalID]
	if !ok {
		return []league.GameweekPerformance{}, nil
	}
	return append([]league.GameweekPerformance(nil), perf...), nil
}

func (p *Provider) FetchTeamPreferences(ctx context.Context) ([]league.TeamPreference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]league.TeamPreference(nil), p.data.prefs...), nil
}

func (p *Provider) FetchTeams(ctx context.Context) (league.Teams, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(league.Teams, len(p.data.teams))
	for k, v := range p.data.teams {
		out[k] = v
	}
	return out, nil
}

func (p *Provider) FetchTransfers(ctx context.Context) ([]league.Transfer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]league.Transfer(nil), p.data.transfers...), nil
}

func (p *Provider) FetchPlayers(ctx context.Context) (league.Players, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(league.Players, len(p.data.players))
	for k, v := range p.data.players {
		out[k] = v
	}
	return out, nil
}

func (p *Provider) FetchPicks(ctx context.Context) (league.PickSet, error) {
	if err := ctx.Err(); err != nil {
		return league.PickSet{}, err
	}
	return league.PickSet{Picks: append([]league.Pick(nil), p.data.picks...)}, nil
}

func (p *Provider) FetchPlayerPoints(ctx context.Context) ([]league.PlayerGameweekPoints, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]league.PlayerGameweekPoints(nil), p.data.playerPoints...), nil
}

func generate(gameweeks int) dataset {
	rng := rand.New(rand.NewPCG(seed, uint64(gameweeks)))
	d := dataset{
		performance: make(map[string][]league.GameweekPerformance, len(managerSeeds)),
		teams:       make(league.Teams, len(teamNames)),
		players:     make(league.Players, len(playerNames)),
	}

	for i, name := range teamNames {
		d.teams[fmt.Sprintf("team_%d", i+1)] = name
	}
	for i, names := range playerNames {
		id := i + 1
		key := league.PlayerKeyPrefix + fmt.Sprint(id)
		d.players[key] = league.Player{
			ExternalID: key,
			Name:       names[0],
			FullName:   names[1],
			TeamID:     fmt.Sprintf("team_%d", i/2+1),
			Position:   positions[id%len(positions)],
		}
	}

	// Per-player scoring; the baseline varies with the player id.
	for id := 1; id <= len(playerNames); id++ {
		bias := 1 + (id % 5)
		for gw := 1; gw <= gameweeks; gw++ {
			pts := rng.IntN(9) + bias - 2
			minutes := 90
			if pts < 1 {
				pts, minutes = 1, rng.IntN(60)
			}
			d.playerPoints = append(d.playerPoints, league.PlayerGameweekPoints{
				PlayerID:    id,
				Gameweek:    gw,
				TotalPoints: pts,
				Minutes:     minutes,
				GoalsScored: max(0, (pts-6)/4),
				Assists:     max(0, (pts-4)/5),
			})
		}
	}
	pointsOf := func(playerID, gw int) int {
		return d.playerPoints[(playerID-1)*gameweeks+gw-1].TotalPoints
	}

	for i, seedManager := range managerSeeds {
		entry := int64(1001 + i)
		managerID := fmt.Sprintf("manager_%d", entry)
		squad := pickSquad(rng)

		perf := make([]league.GameweekPerformance, 0, gameweeks)
		weekly := make([]float64, 0, gameweeks)
		total, transfers := 0, 0
		for gw := 1; gw <= gameweeks; gw++ {
			made := 0
			if gw > 1 && rng.IntN(3) == 0 {
				made = 1 + rng.IntN(2)
			}
			cost := 4 * max(0, made-1)
			for t := 0; t < made; t++ {
				slot := rng.IntN(squadSize)
				out := squad[slot]
				in := replacement(rng, squad)
				squad[slot] = in
				gained := 0
				for next := gw; next < min(gw+3, gameweeks+1); next++ {
					gained += pointsOf(in, next) - pointsOf(out, next)
				}
				transferCost := 0
				if t > 0 {
					transferCost = 4
				}
				net := float64(gained - transferCost)
				d.transfers = append(d.transfers, league.Transfer{
					ExternalID:          fmt.Sprintf("transfer_%d_%d_%d", entry, gw, t+1),
					ManagerID:           managerID,
					Gameweek:            gw,
					PlayerInID:          league.PlayerKeyPrefix + fmt.Sprint(in),
					PlayerOutID:         league.PlayerKeyPrefix + fmt.Sprint(out),
					TransferCost:        transferCost,
					PlayerInPrice:       price(in),
					PlayerOutPrice:      price(out),
					PointsGainedNext3GW: gained,
					WasSuccessful:       net > 0,
					NetBenefit:          net,
				})
			}
			transfers += made

			captain := squad[rng.IntN(startingXI)]
			points := -cost
			for slot, playerID := range squad {
				multiplier := 1
				switch {
				case slot >= startingXI:
					multiplier = 0
				case playerID == captain:
					multiplier = 2
				}
				points += pointsOf(playerID, gw) * multiplier
				d.picks = append(d.picks, league.Pick{
					ManagerEntryID: entry,
					Gameweek:       gw,
					PlayerID:       playerID,
					Multiplier:     multiplier,
				})
			}
			total += points
			weekly = append(weekly, float64(points))
			perf = append(perf, league.GameweekPerformance{
				Gameweek:     gw,
				Points:       points,
				TotalPoints:  total,
				Rank:         overallRank(total, gw),
				Transfers:    made,
				TransferCost: cost,
			})
		}
		d.performance[managerID] = perf

		mean, _ := stats.Mean(weekly)
		std := 0.0
		if len(weekly) > 1 {
			std, _ = stats.StandardDeviationSample(weekly)
		}
		growth := math.Round((rng.Float64()*6-1.5)*10) / 10
		d.managers = append(d.managers, league.Manager{
			ExternalID:       managerID,
			EntryID:          entry,
			ManagerName:      seedManager.name,
			TeamName:         seedManager.team,
			OverallPoints:    total,
			OverallRank:      overallRank(total, gameweeks),
			TeamValue:        100 + growth,
			ConsistencyScore: consistency(mean, std),
			AvgPointsPerWeek: round2(mean),
			PointsStdDev:     round2(std),
			TeamValueGrowth:  growth,
			TotalTransfers:   transfers,
		})
	}

	assignLeagueRanks(d.managers)
	d.prefs = teamPreferences(d.managers, d.picks, d.players, pointsOf)
	return d
}

func pickSquad(rng *rand.Rand) []int {
	order := rng.Perm(len(playerNames))
	squad := make([]int, squadSize)
	for i := range squad {
		squad[i] = order[i] + 1
	}
	return squad
}

func replacement(rng *rand.Rand, squad []int) int {
	for {
		candidate := rng.IntN(len(playerNames)) + 1
		owned := false
		for _, id := range squad {
			if id == candidate {
				owned = true
				break
			}
		}
		if !owned {
			return candidate
		}
	}
}

func price(playerID int) float64 {
	return 4.5 + float64(playerID%9)
}

func overallRank(total, gameweeks int) int {
	par := 50 * gameweeks
	return max(1, 2_000_000-(total-par)*2_500-par*100)
}

func consistency(mean, std float64) float64 {
	if mean <= 0 {
		return 0
	}
	return round2(math.Max(0, 100*(1-std/mean)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func assignLeagueRanks(managers []league.Manager) {
	order := make([]int, len(managers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return managers[order[a]].OverallPoints > managers[order[b]].OverallPoints
	})
	for rank, idx := range order {
		managers[idx].LeagueRank = rank + 1
	}
}

// teamPreferences aggregates each manager's picks by club: distinct players
// used, points scored with multipliers, and the share of appearances that
// returned four points or more.
func teamPreferences(managers []league.Manager, picks []league.Pick, players league.Players, pointsOf func(playerID, gw int) int) []league.TeamPreference {
	type agg struct {
		players     map[int]struct{}
		points      int
		appearances int
		returns     int
	}
	byManager := make(map[int64]map[string]*agg, len(managers))
	for _, pick := range picks {
		teamID := players[pick.PlayerKey()].TeamID
		teams := byManager[pick.ManagerEntryID]
		if teams == nil {
			teams = make(map[string]*agg)
			byManager[pick.ManagerEntryID] = teams
		}
		a := teams[teamID]
		if a == nil {
			a = &agg{players: make(map[int]struct{})}
			teams[teamID] = a
		}
		pts := pointsOf(pick.PlayerID, pick.Gameweek)
		a.players[pick.PlayerID] = struct{}{}
		a.points += pts * pick.Multiplier
		a.appearances++
		if pts >= 4 {
			a.returns++
		}
	}

	var prefs []league.TeamPreference
	for _, m := range managers {
		teams := byManager[m.EntryID]
		ids := make([]string, 0, len(teams))
		for id := range teams {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return teamIndex(ids[i]) < teamIndex(ids[j]) })
		for _, teamID := range ids {
			a := teams[teamID]
			used := len(a.players)
			prefs = append(prefs, league.TeamPreference{
				ManagerID:          m.ExternalID,
				TeamID:             teamID,
				TotalPlayersUsed:   used,
				TotalPoints:        a.points,
				AvgPointsPerPlayer: round2(float64(a.points) / float64(used)),
				SuccessRate:        round2(100 * float64(a.returns) / float64(a.appearances)),
			})
		}
	}
	return prefs
}

func teamIndex(id string) int {
	n, _ := strconv.Atoi(strings.TrimPrefix(id, "team_"))
	return n
}
