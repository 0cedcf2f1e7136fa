package analytics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

func testTransfers() []league.Transfer {
	return []league.Transfer{
		{ManagerID: "manager_1", Gameweek: 2, PlayerInID: "player_1", PlayerOutID: "player_2", NetBenefit: 6, WasSuccessful: true},
		{ManagerID: "manager_1", Gameweek: 5, PlayerInID: "player_3", PlayerOutID: "player_1", NetBenefit: -2, TransferCost: 4},
		{ManagerID: "manager_2", Gameweek: 5, PlayerInID: "player_9", PlayerOutID: "player_3", NetBenefit: 0},
		{ManagerID: "manager_2", Gameweek: 7, PlayerInID: "player_2", PlayerOutID: "player_1", NetBenefit: 3, WasSuccessful: true},
		{ManagerID: "manager_3", Gameweek: 1, NetBenefit: 10, WasSuccessful: true},
		{ManagerID: "manager_404", Gameweek: 9, NetBenefit: 1, WasSuccessful: true},
	}
}

func testPlayers() league.Players {
	return league.Players{
		"player_1": {ExternalID: "player_1", Name: "Saka", TeamID: "team_1"},
		"player_2": {ExternalID: "player_2", Name: "Palmer", TeamID: "team_6"},
		"player_3": {ExternalID: "player_3", Name: "Isak", TeamID: "team_15"},
	}
}

func TestAnalyzeTransfers(t *testing.T) {
	a := AnalyzeTransfers(testTransfers(), testManagers(), testPlayers(), []string{"Ada", "Grace"})

	assert.Equal(t, 4, a.Total)
	assert.Equal(t, 2, a.Successful)
	assert.InDelta(t, 50, a.SuccessRate, 1e-9)
	assert.InDelta(t, 1.75, a.AvgNetBenefit, 1e-9)
	assert.Equal(t, 4, a.TotalCost)
	assert.False(t, a.Empty())

	want := []ManagerTransferStats{
		{Manager: "Ada", Successful: 1, Total: 2, TotalBenefit: 4, TotalCost: 4, SuccessRate: 50, NetGain: 0},
		{Manager: "Grace", Successful: 1, Total: 2, TotalBenefit: 3, TotalCost: 0, SuccessRate: 50, NetGain: 3},
	}
	if diff := cmp.Diff(want, a.PerManager); diff != "" {
		t.Fatalf("per-manager stats mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, a.PerManager[0].Unsuccessful())

	require.Len(t, a.Recent, 4)
	assert.Equal(t, 7, a.Recent[0].Gameweek)
	assert.Equal(t, "Ada", a.Recent[1].Manager, "ties keep input order")
	assert.Equal(t, "Grace", a.Recent[2].Manager)
	assert.Equal(t, "Unknown", a.Recent[2].PlayerIn)
	assert.Equal(t, "Isak", a.Recent[2].PlayerOut)

	d := a.Distribution
	assert.Equal(t, []float64{6, 3}, d.Positive)
	assert.Equal(t, []float64{-2}, d.Negative)
	assert.InDelta(t, 1.5, d.Median, 1e-9)
	assert.InDelta(t, 50, d.PositivePct, 1e-9)
	assert.InDelta(t, 25, d.NegativePct, 1e-9)
}

func TestAnalyzeTransfersSortsBySuccessRate(t *testing.T) {
	a := AnalyzeTransfers(testTransfers(), testManagers(), testPlayers(), []string{"Ada", "Linus"})
	require.Len(t, a.PerManager, 2)
	assert.Equal(t, "Linus", a.PerManager[0].Manager)
	assert.Equal(t, 100.0, a.PerManager[0].SuccessRate)
}

func TestAnalyzeTransfersRecentCapsAtTwenty(t *testing.T) {
	var transfers []league.Transfer
	for gw := 1; gw <= 30; gw++ {
		transfers = append(transfers, league.Transfer{ManagerID: "manager_1", Gameweek: gw})
	}
	a := AnalyzeTransfers(transfers, testManagers(), nil, []string{"Ada"})
	require.Len(t, a.Recent, RecentTransferLimit)
	assert.Equal(t, 30, a.Recent[0].Gameweek)
	assert.Equal(t, 11, a.Recent[19].Gameweek)
	assert.Len(t, a.All, 30)
}

func TestAnalyzeTransfersEmptySelection(t *testing.T) {
	a := AnalyzeTransfers(testTransfers(), testManagers(), testPlayers(), nil)
	assert.True(t, a.Empty())
	assert.NotNil(t, a.PerManager)
	assert.Zero(t, a.SuccessRate)
}
