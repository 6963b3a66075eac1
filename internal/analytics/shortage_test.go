package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

func shortageFixture() dataset.Table {
	tech := dataset.Posting{PrimaryCategory: "Tech", AverageSalary: 5000, TotalViews: 100, TotalApplications: 5}
	return dataset.Table{
		tech, tech, tech,
		{PrimaryCategory: "Finance", AverageSalary: 10000, TotalViews: 0, TotalApplications: 0},
	}
}

func TestShortageIndex_ExactScores(t *testing.T) {
	indices := ShortageIndex(shortageFixture())
	require.Len(t, indices, 2)

	// Finance: posting 50, views 100, apps 100, salary 50 -> 75.00
	assert.Equal(t, "Finance", indices[0].Sector)
	assert.Equal(t, 75.0, indices[0].Index)

	// Tech: posting 100, views 50, apps 50, salary 50 -> 65.00
	assert.Equal(t, "Tech", indices[1].Sector)
	assert.Equal(t, 65.0, indices[1].Index)
}

func TestShortageIndex_Bounds(t *testing.T) {
	table := dataset.Table{
		{PrimaryCategory: "A", AverageSalary: 50000, TotalViews: 0, TotalApplications: 0},
		{PrimaryCategory: "B", AverageSalary: 1, TotalViews: 1000000, TotalApplications: 1000000},
	}
	for _, idx := range ShortageIndex(table) {
		assert.GreaterOrEqual(t, idx.Index, 0.0)
		assert.LessOrEqual(t, idx.Index, 100.0)
	}
}

func TestShortageIndex_Deterministic(t *testing.T) {
	table := shortageFixture()
	first := ShortageIndex(table)
	second := ShortageIndex(table)
	assert.Equal(t, first, second)
}

func TestShortageIndex_TiesKeepTableOrder(t *testing.T) {
	row := dataset.Posting{AverageSalary: 4000, TotalViews: 50, TotalApplications: 2}
	a, b := row, row
	a.PrimaryCategory = "Zeta"
	b.PrimaryCategory = "Alpha"

	indices := ShortageIndex(dataset.Table{a, b})
	require.Len(t, indices, 2)
	assert.Equal(t, indices[0].Index, indices[1].Index)
	assert.Equal(t, "Zeta", indices[0].Sector)
	assert.Equal(t, "Alpha", indices[1].Sector)
}

func TestShortageIndex_EmptyTable(t *testing.T) {
	assert.Empty(t, ShortageIndex(nil))
}
