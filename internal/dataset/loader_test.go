package dataset

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"os"
)

const testHeader = "metadata_jobPostId,title,categories,postedCompany_name,salary_minimum,salary_maximum,average_salary,minimumYearsExperience,employmentTypes,positionLevels,metadata_newPostingDate,metadata_originalPostingDate,metadata_expiryDate,metadata_totalNumberOfView,metadata_totalNumberJobApplication"

func TestReadCSV_ParsesRows(t *testing.T) {
	csvData := testHeader + "\n" +
		"J1,Software Engineer,,Acme,3000,5000,4000,2,Full Time,Executive,2023-01-15,,,120,4\n" +
		"J2,Data Analyst,,Beta,2500,4500,3500,1,Full Time,Junior,2023-02-01,,,80,2\n"

	table, err := readCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, 0, table.SkippedRows)

	assert.Equal(t, "J1", table.Rows[0].JobID)
	assert.Equal(t, "Software Engineer", table.Rows[0].Title)
	assert.Equal(t, "4000", table.Rows[0].AverageSalary)
	assert.Equal(t, "2023-02-01", table.Rows[1].PostingDate)
}

func TestReadCSV_SkipsMalformedRows(t *testing.T) {
	csvData := testHeader + "\n" +
		"J1,Software Engineer,,Acme,3000,5000,4000,2,Full Time,Executive,2023-01-15,,,120,4\n" +
		"J2,too,few,columns\n" +
		"J3,Data Analyst,,Beta,2500,4500,3500,1,Full Time,Junior,2023-02-01,,,80,2\n"

	table, err := readCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.Equal(t, 1, table.SkippedRows)
}

func TestReadCSV_MissingRequiredColumn(t *testing.T) {
	csvData := "metadata_jobPostId,title\nJ1,Engineer\n"

	_, err := readCSV(strings.NewReader(csvData))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Error(), "missing required columns")
	assert.Contains(t, loadErr.Error(), "average_salary")
}

func TestReadCSV_EmptyFile(t *testing.T) {
	_, err := readCSV(strings.NewReader(""))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestReadCSV_ReportsEmptyColumns(t *testing.T) {
	header := testHeader + ",occupationId"
	csvData := header + "\n" +
		"J1,Engineer,,Acme,3000,5000,4000,2,Full Time,Executive,2023-01-15,,,120,4,\n" +
		"J2,Analyst,,Beta,2500,4500,3500,1,Full Time,Junior,2023-02-01,,,80,2,\n"

	table, err := readCSV(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Contains(t, table.EmptyColumns, "occupationId")
	assert.Contains(t, table.EmptyColumns, "metadata_expiryDate")
	assert.NotContains(t, table.EmptyColumns, "title")
}

func TestLoadCSV_FileNotFound(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "jobs.csv")
	csvData := testHeader + "\n" +
		"J1,Engineer,,Acme,3000,5000,4000,2,Full Time,Executive,2023-01-15,,,120,4\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csvData), 0644))

	table, err := Load(csvPath)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}
