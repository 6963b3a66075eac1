package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// requiredColumns is the minimum header set a source file must carry.
// Optional columns (original posting date, expiry date) may be absent.
var requiredColumns = []string{
	"metadata_jobPostId",
	"title",
	"categories",
	"postedCompany_name",
	"salary_minimum",
	"salary_maximum",
	"average_salary",
	"minimumYearsExperience",
	"employmentTypes",
	"positionLevels",
	"metadata_newPostingDate",
	"metadata_totalNumberOfView",
	"metadata_totalNumberJobApplication",
}

// Load reads a source file, dispatching on its extension: ".parquet" for the
// columnar binary format, anything else is treated as delimited text.
func Load(path string) (*RawTable, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return LoadParquet(path)
	}
	return LoadCSV(path)
}

// LoadCSV reads a row-oriented delimited text file into a RawTable.
// Rows with the wrong column count are skipped and counted rather than
// aborting the load; partial ingestion beats total failure.
func LoadCSV(path string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot open file", Cause: err}
	}
	defer f.Close()

	table, err := readCSV(f)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Message: "cannot parse file", Cause: err}
	}
	return table, nil
}

// readCSV parses delimited text from r. Split out from LoadCSV so tests can
// feed literal CSV without touching the filesystem.
func readCSV(r io.Reader) (*RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row width is validated per record below
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Message: "file is empty"}
	}
	if err != nil {
		return nil, &LoadError{Message: "cannot read header", Cause: err}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	if missing := missingColumns(index); len(missing) > 0 {
		return nil, &LoadError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}

	table := &RawTable{}
	nonEmpty := make([]bool, len(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row: skip it, keep going.
			table.SkippedRows++
			continue
		}
		if len(record) != len(header) {
			table.SkippedRows++
			continue
		}
		for i, v := range record {
			if strings.TrimSpace(v) != "" {
				nonEmpty[i] = true
			}
		}
		table.Rows = append(table.Rows, rawPostingFromRecord(record, index))
	}

	for i, name := range header {
		if !nonEmpty[i] && len(table.Rows) > 0 {
			table.EmptyColumns = append(table.EmptyColumns, strings.TrimSpace(name))
		}
	}
	return table, nil
}

func missingColumns(index map[string]int) []string {
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func rawPostingFromRecord(record []string, index map[string]int) RawPosting {
	field := func(name string) string {
		i, ok := index[name]
		if !ok {
			return ""
		}
		return record[i]
	}
	return RawPosting{
		JobID:               field("metadata_jobPostId"),
		Title:               field("title"),
		Categories:          field("categories"),
		CompanyName:         field("postedCompany_name"),
		SalaryMinimum:       field("salary_minimum"),
		SalaryMaximum:       field("salary_maximum"),
		AverageSalary:       field("average_salary"),
		MinYearsExperience:  field("minimumYearsExperience"),
		EmploymentType:      field("employmentTypes"),
		PositionLevel:       field("positionLevels"),
		PostingDate:         field("metadata_newPostingDate"),
		OriginalPostingDate: field("metadata_originalPostingDate"),
		ExpiryDate:          field("metadata_expiryDate"),
		TotalViews:          field("metadata_totalNumberOfView"),
		TotalApplications:   field("metadata_totalNumberJobApplication"),
	}
}
