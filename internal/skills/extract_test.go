package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

func postings(titles ...string) dataset.Table {
	t := make(dataset.Table, len(titles))
	for i, title := range titles {
		t[i] = dataset.Posting{Title: title, PrimaryCategory: "Other", AverageSalary: 4000}
	}
	return t
}

func TestDemand_EmptyTable(t *testing.T) {
	current, emerging := Demand(nil)
	assert.Empty(t, current)
	assert.Empty(t, emerging)
	assert.NotNil(t, current)
	assert.NotNil(t, emerging)
}

func TestDemand_CountsMatches(t *testing.T) {
	table := postings(
		"Python Developer",
		"Senior Python Engineer",
		"Java Backend Engineer",
		"Accountant",
	)

	current, _ := Demand(table)
	assert.Equal(t, 2, current["Python"])
	assert.Equal(t, 1, current["Java"])
	assert.Equal(t, 0, current["SQL"])
}

func TestDemand_CPlusPlusPatternEscaped(t *testing.T) {
	table := postings(
		"C++ Systems Engineer",
		"Embedded C Plus Plus Developer",
		"C Developer",
	)

	current, _ := Demand(table)
	assert.Equal(t, 2, current["C++"])
}

func TestDemand_CaseInsensitive(t *testing.T) {
	table := postings("PYTHON ENGINEER", "python analyst")

	current, _ := Demand(table)
	assert.Equal(t, 2, current["Python"])
}

func TestDemand_EmergingSet(t *testing.T) {
	table := postings(
		"Cloud Architect",
		"DevOps Engineer",
		"Kubernetes Administrator",
		"Machine Learning Engineer",
	)

	current, emerging := Demand(table)

	// DevOps comes from its own pattern, not the current set.
	assert.NotContains(t, current, "DevOps")
	assert.Equal(t, 2, emerging["DevOps"])
	assert.Equal(t, 1, emerging["Cloud"])
	assert.Equal(t, emerging["Cloud"], current["Cloud"])
}

func TestDemand_MatchesCategoryText(t *testing.T) {
	table := dataset.Table{
		{Title: "Junior Analyst", PrimaryCategory: "Data Analytics"},
	}

	current, _ := Demand(table)
	assert.Equal(t, 1, current["Data"])
}

func TestSalaryStats(t *testing.T) {
	table := dataset.Table{
		{Title: "Python Developer", PrimaryCategory: "Other", AverageSalary: 5000},
		{Title: "Python Analyst", PrimaryCategory: "Other", AverageSalary: 3000},
		{Title: "Clerk", PrimaryCategory: "Other", AverageSalary: 2000},
	}

	stats := NewExtractor().SalaryStats(table)
	byName := make(map[string]SkillSalary)
	for _, s := range stats {
		byName[s.Skill] = s
	}

	assert.Equal(t, 2, byName["Python"].Postings)
	assert.Equal(t, 4000.0, byName["Python"].AvgSalary)
	assert.Equal(t, 0, byName["C++"].Postings)
	assert.Equal(t, 0.0, byName["C++"].AvgSalary)
}

func TestLoadTaxonomy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	content := `{"skills":[
		{"name":"Rust","pattern":"rust|systems programming"},
		{"name":"C++","emerging":true}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ex, err := LoadTaxonomy(path)
	require.NoError(t, err)

	table := postings("Rust Engineer", "C++ Developer", "Systems Programming Lead")
	current, emerging := ex.Demand(table)
	assert.Equal(t, 2, current["Rust"])
	assert.Equal(t, 1, current["C++"])
	assert.Equal(t, 1, emerging["C++"])
}

func TestLoadTaxonomy_SchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"skills":[{"pattern":"x"}]}`), 0644))

	_, err := LoadTaxonomy(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "taxonomy error")
}

func TestLoadTaxonomy_MissingFile(t *testing.T) {
	_, err := LoadTaxonomy(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
