package fixture

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestNewClampsGameweeks(t *testing.T) {
	cases := map[int]int{0: defaultGameweeks, -3: defaultGameweeks, 5: 5, 60: seasonGameweeks}
	for in, want := range cases {
		p := New(in)
		perf, err := p.FetchPerformance(context.Background(), "manager_1001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(perf) != want {
			t.Fatalf("New(%d): expected %d gameweeks, got %d", in, want, len(perf))
		}
	}
}

func TestProviderIsDeterministic(t *testing.T) {
	a, b := New(10), New(10)
	ma, _ := a.FetchManagers(context.Background())
	mb, _ := b.FetchManagers(context.Background())
	if !reflect.DeepEqual(ma, mb) {
		t.Fatalf("expected identical managers across instances")
	}
	ta, _ := a.FetchTransfers(context.Background())
	tb, _ := b.FetchTransfers(context.Background())
	if !reflect.DeepEqual(ta, tb) {
		t.Fatalf("expected identical transfers across instances")
	}
}

func TestManagersAreConsistentWithPerformance(t *testing.T) {
	p := New(12)
	ctx := context.Background()
	managers, err := p.FetchManagers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(managers) != 8 {
		t.Fatalf("expected 8 managers, got %d", len(managers))
	}

	ranks := map[int]bool{}
	for _, m := range managers {
		if !strings.HasPrefix(m.ExternalID, "manager_") {
			t.Fatalf("unexpected external id %q", m.ExternalID)
		}
		perf, _ := p.FetchPerformance(ctx, m.ExternalID)
		last := perf[len(perf)-1]
		if last.TotalPoints != m.OverallPoints {
			t.Fatalf("%s: total %d != overall %d", m.ExternalID, last.TotalPoints, m.OverallPoints)
		}
		transfers := 0
		for i, gw := range perf {
			if gw.Gameweek != i+1 {
				t.Fatalf("expected sorted gameweeks, got %d at %d", gw.Gameweek, i)
			}
			transfers += gw.Transfers
		}
		if transfers != m.TotalTransfers {
			t.Fatalf("%s: transfers %d != %d", m.ExternalID, transfers, m.TotalTransfers)
		}
		ranks[m.LeagueRank] = true
	}
	for r := 1; r <= 8; r++ {
		if !ranks[r] {
			t.Fatalf("league rank %d missing", r)
		}
	}
}

func TestUnknownManagerHasNoPerformance(t *testing.T) {
	perf, err := New(3).FetchPerformance(context.Background(), "manager_1")
	if err != nil || len(perf) != 0 {
		t.Fatalf("expected empty performance, got %v %v", perf, err)
	}
}

func TestPicksAndPointsLineUp(t *testing.T) {
	p := New(4)
	ctx := context.Background()
	set, _ := p.FetchPicks(ctx)
	points, _ := p.FetchPlayerPoints(ctx)
	players, _ := p.FetchPlayers(ctx)
	teams, _ := p.FetchTeams(ctx)

	if got, want := len(set.Picks), 8*4*squadSize; got != want {
		t.Fatalf("expected %d picks, got %d", want, got)
	}
	if got, want := len(points), len(playerNames)*4; got != want {
		t.Fatalf("expected %d point rows, got %d", want, got)
	}
	captains := 0
	for _, pick := range set.Picks {
		player, ok := players[pick.PlayerKey()]
		if !ok {
			t.Fatalf("pick references unknown player %s", pick.PlayerKey())
		}
		if _, ok := teams[player.TeamID]; !ok {
			t.Fatalf("player %s references unknown team %s", player.ExternalID, player.TeamID)
		}
		if pick.Multiplier == 2 {
			captains++
		}
	}
	if captains != 8*4 {
		t.Fatalf("expected one captain per manager per gameweek, got %d", captains)
	}
}

func TestTeamPreferencesReferenceKnownManagers(t *testing.T) {
	p := New(6)
	ctx := context.Background()
	prefs, _ := p.FetchTeamPreferences(ctx)
	managers, _ := p.FetchManagers(ctx)
	known := map[string]bool{}
	for _, m := range managers {
		known[m.ExternalID] = true
	}
	if len(prefs) == 0 {
		t.Fatalf("expected team preferences")
	}
	for _, pref := range prefs {
		if !known[pref.ManagerID] {
			t.Fatalf("unknown manager %s", pref.ManagerID)
		}
		if pref.TotalPlayersUsed < 1 || pref.SuccessRate < 0 || pref.SuccessRate > 100 {
			t.Fatalf("implausible preference %+v", pref)
		}
	}
}

func TestFetchRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(2).FetchManagers(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	p := New(2)
	managers, _ := p.FetchManagers(context.Background())
	managers[0].ManagerName = "mutated"
	again, _ := p.FetchManagers(context.Background())
	if again[0].ManagerName == "mutated" {
		t.Fatalf("expected provider data to be isolated from callers")
	}
	if p.Name() != "fixture" {
		t.Fatalf("unexpected name %q", p.Name())
	}
}
