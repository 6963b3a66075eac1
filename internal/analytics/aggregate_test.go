package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

func TestHeatmapCells(t *testing.T) {
	table := dataset.Table{
		{YearMonth: "2023-02", PrimaryCategory: "Tech", AverageSalary: 4000, MinYearsExperience: 2},
		{YearMonth: "2023-02", PrimaryCategory: "Tech", AverageSalary: 6000, MinYearsExperience: 4},
		{YearMonth: "2023-01", PrimaryCategory: "Finance", AverageSalary: 3000, MinYearsExperience: 1},
	}

	cells := HeatmapCells(table)
	require.Len(t, cells, 2)

	// Sorted by period, then sector.
	assert.Equal(t, "2023-01", cells[0].Period)
	assert.Equal(t, "Finance", cells[0].Sector)
	assert.Equal(t, 1, cells[0].Postings)

	assert.Equal(t, "2023-02", cells[1].Period)
	assert.Equal(t, 2, cells[1].Postings)
	assert.Equal(t, 5000.0, cells[1].AvgSalary)
	assert.Equal(t, 3.0, cells[1].AvgExperience)
}

func TestPostingTrend_SortedAscending(t *testing.T) {
	table := dataset.Table{
		{YearMonth: "2023-10"},
		{YearMonth: "2023-02"},
		{YearMonth: "2023-02"},
	}
	points := PostingTrend(table)
	require.Len(t, points, 2)
	assert.Equal(t, TrendPoint{Period: "2023-02", Postings: 2}, points[0])
	assert.Equal(t, TrendPoint{Period: "2023-10", Postings: 1}, points[1])
}

func TestSectorSummaries(t *testing.T) {
	table := dataset.Table{
		{PrimaryCategory: "Tech", AverageSalary: 4000, MinYearsExperience: 2, TotalViews: 50},
		{PrimaryCategory: "Tech", AverageSalary: 6000, MinYearsExperience: 4, TotalViews: 150},
		{PrimaryCategory: "Finance", AverageSalary: 8000, MinYearsExperience: 5, TotalViews: 10},
	}

	summaries := SectorSummaries(table)
	require.Len(t, summaries, 2)

	tech := summaries[0]
	assert.Equal(t, "Tech", tech.Sector)
	assert.Equal(t, 2, tech.Postings)
	assert.Equal(t, 5000.0, tech.AvgSalary)
	assert.Equal(t, 4000.0, tech.MinSalary)
	assert.Equal(t, 6000.0, tech.MaxSalary)
	assert.Equal(t, 3.0, tech.AvgExperience)
	assert.Equal(t, 200, tech.TotalViews)
}

func TestPositionLevelBenchmarks_MinCountCutoff(t *testing.T) {
	var table dataset.Table
	for i := 0; i < 5; i++ {
		table = append(table, dataset.Posting{PositionLevel: "Senior", AverageSalary: 8000})
	}
	table = append(table, dataset.Posting{PositionLevel: "Intern", AverageSalary: 1000})

	benchmarks := PositionLevelBenchmarks(table)
	require.Len(t, benchmarks, 1)
	assert.Equal(t, "Senior", benchmarks[0].PositionLevel)
	assert.Equal(t, 5, benchmarks[0].Postings)
	assert.Equal(t, 8000.0, benchmarks[0].AvgSalary)
}

func TestTopCompanies(t *testing.T) {
	table := dataset.Table{
		{CompanyName: "Acme"},
		{CompanyName: "Beta"},
		{CompanyName: "Acme"},
		{CompanyName: "Gamma"},
	}
	top := TopCompanies(table, 2)
	require.Len(t, top, 2)
	assert.Equal(t, CompanyCount{Company: "Acme", Postings: 2}, top[0])
	assert.Equal(t, CompanyCount{Company: "Beta", Postings: 1}, top[1])
}
