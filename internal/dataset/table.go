// Package dataset provides the in-memory tabular model for job posting data:
// raw rows as read from CSV or Parquet files, and the typed, cleaned rows
// that every downstream analytic operates on.
package dataset

import "time"

// RawPosting is one row as read from the source file, before any cleaning.
// Numeric and date fields are kept as strings because the source data is
// dirty; the cleaning stage owns all coercion.
type RawPosting struct {
	JobID               string `parquet:"metadata_jobPostId" json:"job_id"`
	Title               string `parquet:"title" json:"title"`
	Categories          string `parquet:"categories" json:"categories"`
	CompanyName         string `parquet:"postedCompany_name" json:"company_name"`
	SalaryMinimum       string `parquet:"salary_minimum" json:"salary_minimum"`
	SalaryMaximum       string `parquet:"salary_maximum" json:"salary_maximum"`
	AverageSalary       string `parquet:"average_salary" json:"average_salary"`
	MinYearsExperience  string `parquet:"minimumYearsExperience" json:"minimum_years_experience"`
	EmploymentType      string `parquet:"employmentTypes" json:"employment_type"`
	PositionLevel       string `parquet:"positionLevels" json:"position_level"`
	PostingDate         string `parquet:"metadata_newPostingDate" json:"posting_date"`
	OriginalPostingDate string `parquet:"metadata_originalPostingDate" json:"original_posting_date"`
	ExpiryDate          string `parquet:"metadata_expiryDate" json:"expiry_date"`
	TotalViews          string `parquet:"metadata_totalNumberOfView" json:"total_views"`
	TotalApplications   string `parquet:"metadata_totalNumberJobApplication" json:"total_applications"`
}

// RawTable holds the raw rows from one input file plus load diagnostics.
type RawTable struct {
	Rows         []RawPosting
	SkippedRows  int      // malformed rows dropped during load
	EmptyColumns []string // source columns that were 100% empty
}

// Posting is one cleaned, enriched row of the canonical table.
// The derived fields (Year, Month, YearMonth, PrimaryCategory) are filled by
// the enrich package and are zero-valued until then.
type Posting struct {
	JobID               string     `json:"job_id"`
	Title               string     `json:"title"`
	Categories          string     `json:"categories"`
	CompanyName         string     `json:"company_name"`
	SalaryMinimum       float64    `json:"salary_minimum"`
	SalaryMaximum       float64    `json:"salary_maximum"`
	AverageSalary       float64    `json:"average_salary"`
	MinYearsExperience  int        `json:"minimum_years_experience"`
	EmploymentType      string     `json:"employment_type"`
	PositionLevel       string     `json:"position_level"`
	PostingDate         time.Time  `json:"posting_date"`
	OriginalPostingDate *time.Time `json:"original_posting_date,omitempty"`
	ExpiryDate          *time.Time `json:"expiry_date,omitempty"`
	TotalViews          int        `json:"total_views"`
	TotalApplications   int        `json:"total_applications"`

	// Derived fields.
	Year            int    `json:"year"`
	Month           int    `json:"month"`
	YearMonth       string `json:"year_month"`
	PrimaryCategory string `json:"primary_category"`
}

// Table is the canonical cleaned snapshot. Analytics treat it as read-only;
// filters return new Tables and never mutate their input.
type Table []Posting

// MeanAverageSalary returns the mean of AverageSalary over all rows,
// or 0 for an empty table.
func (t Table) MeanAverageSalary() float64 {
	if len(t) == 0 {
		return 0
	}
	var sum float64
	for _, p := range t {
		sum += p.AverageSalary
	}
	return sum / float64(len(t))
}

// MeanViews returns the mean of TotalViews over all rows, or 0 for an
// empty table.
func (t Table) MeanViews() float64 {
	if len(t) == 0 {
		return 0
	}
	var sum float64
	for _, p := range t {
		sum += float64(p.TotalViews)
	}
	return sum / float64(len(t))
}

// MeanApplications returns the mean of TotalApplications over all rows,
// or 0 for an empty table.
func (t Table) MeanApplications() float64 {
	if len(t) == 0 {
		return 0
	}
	var sum float64
	for _, p := range t {
		sum += float64(p.TotalApplications)
	}
	return sum / float64(len(t))
}

// Sectors returns the distinct PrimaryCategory values in first-appearance
// order. Order stability matters: shortage ranking breaks ties by it.
func (t Table) Sectors() []string {
	seen := make(map[string]bool)
	var sectors []string
	for _, p := range t {
		if !seen[p.PrimaryCategory] {
			seen[p.PrimaryCategory] = true
			sectors = append(sectors, p.PrimaryCategory)
		}
	}
	return sectors
}

// BySector returns the rows whose PrimaryCategory equals sector, preserving
// row order.
func (t Table) BySector(sector string) Table {
	var out Table
	for _, p := range t {
		if p.PrimaryCategory == sector {
			out = append(out, p)
		}
	}
	return out
}
