package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

func TestBuildFunFacts(t *testing.T) {
	ff := BuildFunFacts(testManagers())

	require.NotNil(t, ff.RiskTaker)
	assert.Equal(t, "Grace", ff.RiskTaker.Manager.ManagerName)
	assert.Equal(t, 18.0, ff.RiskTaker.Value)

	require.NotNil(t, ff.SetAndForget)
	assert.Equal(t, "Barbara", ff.SetAndForget.Manager.ManagerName)

	require.NotNil(t, ff.BargainHunter)
	assert.Equal(t, "Ken", ff.BargainHunter.Manager.ManagerName)
	assert.InDelta(t, 0.25, ff.BargainHunter.Value, 1e-9)

	require.NotNil(t, ff.MostActive)
	assert.Equal(t, "Grace", ff.MostActive.Manager.ManagerName)

	require.NotNil(t, ff.BestPointsPerTransfer)
	assert.Equal(t, "Linus", ff.BestPointsPerTransfer.Manager.ManagerName)
	assert.InDelta(t, 275, ff.BestPointsPerTransfer.Value, 1e-9)

	// 30% rank quantile is 60000, leaving Ada and Grace.
	require.NotNil(t, ff.WildcardKing)
	assert.Equal(t, "Grace", ff.WildcardKing.Manager.ManagerName)

	assert.Equal(t, 1133, ff.Averages.Points)
	assert.InDelta(t, 56.6667, ff.Averages.PPW, 1e-3)
	assert.InDelta(t, 9, ff.Averages.Transfers, 1e-9)
	assert.InDelta(t, 1.0, ff.Averages.ValueGrowth, 1e-9)

	var valuable []string
	for _, l := range ff.MostValuable {
		valuable = append(valuable, l.Manager)
	}
	assert.Equal(t, []string{"Grace", "Ada", "Dennis", "Barbara", "Linus"}, valuable)
}

func TestFunFactsWithoutQualifiers(t *testing.T) {
	managers := []league.Manager{
		{ManagerName: "Solo", OverallPoints: 100, OverallRank: 10, TeamValueGrowth: -1, TotalTransfers: 0},
	}
	ff := BuildFunFacts(managers)
	assert.Nil(t, ff.BargainHunter)
	assert.Nil(t, ff.BestPointsPerTransfer)
	require.NotNil(t, ff.RiskTaker)
	require.NotNil(t, ff.WildcardKing)
	assert.Equal(t, "Solo", ff.WildcardKing.Manager.ManagerName)

	empty := BuildFunFacts(nil)
	assert.Nil(t, empty.MostActive)
	assert.Empty(t, empty.MostConsistent)
}

func TestBuildConsistency(t *testing.T) {
	all := BuildConsistency(testManagers(), nil)
	assert.Len(t, all.Volatility, 6)
	assert.Len(t, all.Growth, 6)

	grace := all.Volatility[1]
	assert.Equal(t, ScatterPoint{Manager: "Grace", Team: "Cobol City", X: 65, Y: 18, Size: 1300, Consistency: 80}, grace)
	growth := all.Growth[1]
	assert.Equal(t, 20.0, growth.X)
	assert.Equal(t, 3.0, growth.Y)

	var names []string
	for _, l := range all.MostConsistent {
		names = append(names, l.Manager)
	}
	assert.Equal(t, []string{"Ada", "Grace", "Barbara", "Linus", "Dennis"}, names)

	highlighted := BuildConsistency(testManagers(), []string{"Ken"})
	require.Len(t, highlighted.Volatility, 1)
	assert.Equal(t, "Ken", highlighted.Volatility[0].Manager)
	assert.Len(t, highlighted.HighestAvgPPW, 5, "leaders ignore the highlight")
}
