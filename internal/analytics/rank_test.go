package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantileInterpolatesLinearly(t *testing.T) {
	values := []float64{50000, 20000, 90000, 70000, 150000, 120000}
	// sorted: 20000 50000 70000 90000 120000 150000; position 1.5
	assert.InDelta(t, 60000, quantile(values, 0.3), 1e-9)
	assert.Equal(t, 20000.0, quantile(values, 0))
	assert.Equal(t, 150000.0, quantile(values, 1))
	assert.True(t, math.IsNaN(quantile(nil, 0.3)))
	assert.Equal(t, []float64{50000, 20000, 90000, 70000, 150000, 120000}, values, "input must not be reordered")
}

func TestNLargestKeepsFirstOnTies(t *testing.T) {
	top := nlargest(testManagers(), 2, byConsistency)
	assert.Equal(t, "Ada", top[0].ManagerName)
	assert.Equal(t, "Grace", top[1].ManagerName)

	low := nsmallest(testManagers(), 10, byTransfers)
	assert.Len(t, low, 6)
	assert.Equal(t, "Barbara", low[0].ManagerName)
}

func TestIdxmaxReturnsFirstMaximum(t *testing.T) {
	assert.Equal(t, 0, idxmax(testManagers(), byConsistency))
	assert.Equal(t, -1, idxmax(nil, byConsistency))
}

func TestMedianAndMeanOfEmptyAreZero(t *testing.T) {
	assert.Zero(t, mean(nil))
	assert.Zero(t, median(nil))
	assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
}

func TestSelectionHelpers(t *testing.T) {
	managers := testManagers()
	assert.Equal(t, []string{"Ada", "Grace", "Linus", "Barbara", "Ken"}, DefaultSelection(managers))
	assert.Equal(t, []string{"Ada"}, DefaultSelection(managers[:1]))
	assert.Equal(t, []string{"Ken", "Ada"}, ResolveSelection(managers, []string{"Ken", "Nobody", "Ada", "Ken"}))

	m, ok := ManagerByName(managers, "Linus")
	assert.True(t, ok)
	assert.Equal(t, "manager_3", m.ExternalID)
	_, ok = ManagerByID(managers, "manager_99")
	assert.False(t, ok)
}
