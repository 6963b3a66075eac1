package dataset

import (
	"os"

	"github.com/parquet-go/parquet-go"
)

// LoadParquet reads a columnar binary file into a RawTable. The parquet
// column names mirror the CSV header, so a file produced by WriteParquet
// round-trips exactly.
func LoadParquet(path string) (*RawTable, error) {
	rows, err := parquet.ReadFile[RawPosting](path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot read parquet file", Cause: err}
	}

	table := &RawTable{Rows: rows}
	table.EmptyColumns = emptyRawColumns(rows)
	return table, nil
}

// WriteParquet writes a RawTable to a snappy-compressed parquet file.
func WriteParquet(path string, table *RawTable) error {
	f, err := os.Create(path)
	if err != nil {
		return &LoadError{Path: path, Message: "cannot create parquet file", Cause: err}
	}

	w := parquet.NewGenericWriter[RawPosting](f, parquet.Compression(&parquet.Snappy))
	if _, err := w.Write(table.Rows); err != nil {
		f.Close()
		return &LoadError{Path: path, Message: "cannot write parquet rows", Cause: err}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return &LoadError{Path: path, Message: "cannot finalize parquet file", Cause: err}
	}
	return f.Close()
}

// emptyRawColumns reports which source columns are 100% empty across rows.
func emptyRawColumns(rows []RawPosting) []string {
	if len(rows) == 0 {
		return nil
	}
	columns := []struct {
		name  string
		value func(RawPosting) string
	}{
		{"metadata_jobPostId", func(p RawPosting) string { return p.JobID }},
		{"title", func(p RawPosting) string { return p.Title }},
		{"categories", func(p RawPosting) string { return p.Categories }},
		{"postedCompany_name", func(p RawPosting) string { return p.CompanyName }},
		{"salary_minimum", func(p RawPosting) string { return p.SalaryMinimum }},
		{"salary_maximum", func(p RawPosting) string { return p.SalaryMaximum }},
		{"average_salary", func(p RawPosting) string { return p.AverageSalary }},
		{"minimumYearsExperience", func(p RawPosting) string { return p.MinYearsExperience }},
		{"employmentTypes", func(p RawPosting) string { return p.EmploymentType }},
		{"positionLevels", func(p RawPosting) string { return p.PositionLevel }},
		{"metadata_newPostingDate", func(p RawPosting) string { return p.PostingDate }},
		{"metadata_originalPostingDate", func(p RawPosting) string { return p.OriginalPostingDate }},
		{"metadata_expiryDate", func(p RawPosting) string { return p.ExpiryDate }},
		{"metadata_totalNumberOfView", func(p RawPosting) string { return p.TotalViews }},
		{"metadata_totalNumberJobApplication", func(p RawPosting) string { return p.TotalApplications }},
	}

	var empty []string
	for _, col := range columns {
		allEmpty := true
		for _, row := range rows {
			if col.value(row) != "" {
				allEmpty = false
				break
			}
		}
		if allEmpty {
			empty = append(empty, col.name)
		}
	}
	return empty
}
