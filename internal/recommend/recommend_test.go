package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

func marketFixture() dataset.Table {
	return dataset.Table{
		{Title: "Cloud Engineer", PrimaryCategory: "Tech", AverageSalary: 7000, TotalViews: 100},
		{Title: "Machine Learning Engineer", PrimaryCategory: "Tech", AverageSalary: 8000, TotalViews: 150},
		{Title: "Accountant", PrimaryCategory: "Finance", AverageSalary: 5000, TotalViews: 40},
		{Title: "Nurse", PrimaryCategory: "Healthcare", AverageSalary: 4000, TotalViews: 30},
		{Title: "Teacher", PrimaryCategory: "Education", AverageSalary: 4500, TotalViews: 20},
	}
}

func TestBuild_TopSectorsAndSalaryPotential(t *testing.T) {
	rec := Build(marketFixture(), Profile{Skills: []string{"Python"}})

	require.Len(t, rec.HighGrowthSectors, 3)
	assert.Equal(t, "Tech", rec.HighGrowthSectors[0].Sector)
	assert.Greater(t, rec.SalaryPotential, 0.0)
}

func TestBuild_UpskillSkipsOwnedSkills(t *testing.T) {
	rec := Build(marketFixture(), Profile{Skills: []string{"Cloud"}})

	require.Len(t, rec.UpskillOpportunities, 3)
	assert.NotContains(t, rec.UpskillOpportunities[0], "Learn Cloud")
}

func TestBuild_EmptyTable(t *testing.T) {
	rec := Build(nil, Profile{})

	assert.Len(t, rec.UpskillOpportunities, 3)
	assert.Empty(t, rec.HighGrowthSectors)
	assert.Equal(t, 0.0, rec.SalaryPotential)
}

func TestBuild_DeterministicSentences(t *testing.T) {
	first := Build(marketFixture(), Profile{})
	second := Build(marketFixture(), Profile{})
	assert.Equal(t, first.UpskillOpportunities, second.UpskillOpportunities)
}
