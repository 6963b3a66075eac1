package cleaning

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

func validRaw(id string) dataset.RawPosting {
	return dataset.RawPosting{
		JobID:              id,
		Title:              "software engineer",
		Categories:         `[{"category":"Tech"}]`,
		CompanyName:        "Acme Pte Ltd",
		SalaryMinimum:      "3000",
		SalaryMaximum:      "5000",
		AverageSalary:      "4000",
		MinYearsExperience: "2",
		EmploymentType:     "full time",
		PositionLevel:      "executive",
		PostingDate:        "2023-01-15",
		TotalViews:         "120",
		TotalApplications:  "4",
	}
}

func TestClean_ValidRowsSurvive(t *testing.T) {
	raw := &dataset.RawTable{Rows: []dataset.RawPosting{validRaw("J1"), validRaw("J2")}}

	table, audit := Clean(raw)
	require.Len(t, table, 2)
	assert.Equal(t, 0, audit.TotalDropped())

	p := table[0]
	assert.Equal(t, "Software Engineer", p.Title)
	assert.Equal(t, "Full Time", p.EmploymentType)
	assert.Equal(t, "Executive", p.PositionLevel)
	assert.Equal(t, 4000.0, p.AverageSalary)
	assert.Equal(t, 2, p.MinYearsExperience)
	assert.Equal(t, 2023, p.PostingDate.Year())
}

func TestClean_DropsInvalidAverageSalary(t *testing.T) {
	zero := validRaw("J1")
	zero.AverageSalary = "0"
	missing := validRaw("J2")
	missing.AverageSalary = ""
	junk := validRaw("J3")
	junk.AverageSalary = "n/a"

	table, _ := Clean(&dataset.RawTable{Rows: []dataset.RawPosting{zero, missing, junk, validRaw("J4")}})
	require.Len(t, table, 1)
	assert.Equal(t, "J4", table[0].JobID)
}

func TestClean_TrimsSalaryAboveCeiling(t *testing.T) {
	rows := []dataset.RawPosting{validRaw("J1"), validRaw("J2"), validRaw("J3")}
	huge := validRaw("J4")
	huge.AverageSalary = "999999"
	rows = append(rows, huge)

	table, _ := Clean(&dataset.RawTable{Rows: rows})
	require.Len(t, table, 3)
	for _, p := range table {
		assert.LessOrEqual(t, p.AverageSalary, SalaryCeiling)
		assert.Greater(t, p.AverageSalary, 0.0)
	}
}

func TestClean_RepairsSalaryBounds(t *testing.T) {
	a := validRaw("J1") // min 3000, max 5000
	b := validRaw("J2")
	b.SalaryMinimum = "" // missing -> median
	c := validRaw("J3")
	c.SalaryMaximum = "80000" // above ceiling -> median

	table, _ := Clean(&dataset.RawTable{Rows: []dataset.RawPosting{a, b, c}})
	require.Len(t, table, 3)

	// Rows are repaired, never dropped.
	assert.Equal(t, 3000.0, table[1].SalaryMinimum) // median of {3000, 3000}
	assert.Equal(t, 5000.0, table[2].SalaryMaximum) // median of {5000, 5000}
}

func TestClean_ClampsExperience(t *testing.T) {
	r := validRaw("J1")
	r.MinYearsExperience = "55"
	m := validRaw("J2")
	m.MinYearsExperience = ""

	table, _ := Clean(&dataset.RawTable{Rows: []dataset.RawPosting{r, m}})
	require.Len(t, table, 2)
	assert.Equal(t, MaxExperienceYears, table[0].MinYearsExperience)
	assert.Equal(t, 0, table[1].MinYearsExperience)
}

func TestClean_DropsMissingPostingDate(t *testing.T) {
	bad := validRaw("J1")
	bad.PostingDate = ""
	junk := validRaw("J2")
	junk.PostingDate = "not a date"

	table, _ := Clean(&dataset.RawTable{Rows: []dataset.RawPosting{bad, junk, validRaw("J3")}})
	require.Len(t, table, 1)
	assert.Equal(t, "J3", table[0].JobID)
}

func TestClean_DropsEmptyTitles(t *testing.T) {
	blank := validRaw("J1")
	blank.Title = "   "

	table, _ := Clean(&dataset.RawTable{Rows: []dataset.RawPosting{blank, validRaw("J2")}})
	require.Len(t, table, 1)
	assert.Equal(t, "J2", table[0].JobID)
}

func TestClean_FillsUnknowns(t *testing.T) {
	r := validRaw("J1")
	r.EmploymentType = ""
	r.PositionLevel = " "
	r.CompanyName = ""

	table, _ := Clean(&dataset.RawTable{Rows: []dataset.RawPosting{r}})
	require.Len(t, table, 1)
	assert.Equal(t, UnknownValue, table[0].EmploymentType)
	assert.Equal(t, UnknownValue, table[0].PositionLevel)
	assert.Equal(t, UnknownCompany, table[0].CompanyName)
}

func TestClean_DropsExactDuplicates(t *testing.T) {
	table, audit := Clean(&dataset.RawTable{Rows: []dataset.RawPosting{validRaw("J1"), validRaw("J1"), validRaw("J2")}})
	require.Len(t, table, 2)

	last := audit.Results[len(audit.Results)-1]
	assert.Equal(t, "drop_duplicates", last.Rule)
	assert.Equal(t, 1, last.Dropped())
}

func TestClean_NearDuplicatesRetained(t *testing.T) {
	a := validRaw("J1")
	b := validRaw("J2") // same posting content, different id

	table, _ := Clean(&dataset.RawTable{Rows: []dataset.RawPosting{a, b}})
	assert.Len(t, table, 2)
}

func TestClean_MonotonicRowCounts(t *testing.T) {
	rows := []dataset.RawPosting{validRaw("J1"), validRaw("J1"), validRaw("J2"), validRaw("J3")}
	bad := validRaw("J4")
	bad.AverageSalary = "-10"
	noDate := validRaw("J5")
	noDate.PostingDate = ""
	rows = append(rows, bad, noDate)

	_, audit := Clean(&dataset.RawTable{Rows: rows})
	for i, r := range audit.Results {
		assert.LessOrEqual(t, r.RowsOut, r.RowsIn, "rule %s re-admitted rows", r.Rule)
		if i > 0 {
			assert.Equal(t, audit.Results[i-1].RowsOut, r.RowsIn, "rule %s row count discontinuity", r.Rule)
		}
	}
}

func TestRecheck_Idempotent(t *testing.T) {
	rows := []dataset.RawPosting{validRaw("J1"), validRaw("J2"), validRaw("J3")}
	messy := validRaw("J4")
	messy.Title = "  dATA scientist "
	messy.SalaryMinimum = "99999"
	rows = append(rows, messy)

	cleaned, _ := Clean(&dataset.RawTable{Rows: rows})
	again, audit := Recheck(cleaned)

	assert.Equal(t, cleaned, again)
	assert.Equal(t, 0, audit.TotalDropped())
}

func TestRecheck_IdempotentLargeTable(t *testing.T) {
	// With 1000+ distinct salaries the quantile ranks sit strictly inside
	// the sorted range, so a single trim pass leaves rows a recomputation
	// would still drop. The trim must settle before Clean returns.
	rows := make([]dataset.RawPosting, 0, 2000)
	for i := 0; i < 2000; i++ {
		r := validRaw(fmt.Sprintf("J%04d", i))
		salary := 1000 + i
		r.SalaryMinimum = strconv.Itoa(salary - 500)
		r.SalaryMaximum = strconv.Itoa(salary + 500)
		r.AverageSalary = strconv.Itoa(salary)
		rows = append(rows, r)
	}

	cleaned, _ := Clean(&dataset.RawTable{Rows: rows})
	require.NotEmpty(t, cleaned)

	again, audit := Recheck(cleaned)
	assert.Equal(t, cleaned, again)
	assert.Equal(t, 0, audit.TotalDropped())
}

func TestClean_SalaryAndExperienceInvariants(t *testing.T) {
	rows := []dataset.RawPosting{validRaw("J1"), validRaw("J2")}
	edge := validRaw("J3")
	edge.AverageSalary = "50000"
	edge.MinYearsExperience = "40"
	rows = append(rows, edge)

	table, _ := Clean(&dataset.RawTable{Rows: rows})
	for _, p := range table {
		assert.Greater(t, p.AverageSalary, 0.0)
		assert.LessOrEqual(t, p.AverageSalary, SalaryCeiling)
		assert.GreaterOrEqual(t, p.MinYearsExperience, 0)
		assert.LessOrEqual(t, p.MinYearsExperience, MaxExperienceYears)
	}
}

func TestClean_EmptyInput(t *testing.T) {
	table, audit := Clean(&dataset.RawTable{})
	assert.Empty(t, table)
	assert.Equal(t, 0, audit.TotalDropped())
}
