// Package cleaning turns raw job posting rows into the canonical cleaned
// table through an ordered, idempotent sequence of rules. Later rules depend
// on values normalized by earlier ones (duplicate removal compares
// title-cased text), so the order is fixed. Each rule that drops rows is
// monotonic: the retained row count never increases through the sequence.
package cleaning

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

const (
	// SalaryCeiling is the absolute cap on plausible monthly salaries.
	SalaryCeiling = 50000.0
	// MaxExperienceYears caps the minimum-experience field.
	MaxExperienceYears = 40

	lowerTrimQuantile = 0.001
	upperTrimQuantile = 0.999

	// UnknownValue fills missing categorical fields.
	UnknownValue = "Unknown"
	// UnknownCompany fills missing company names.
	UnknownCompany = "Unknown Company"
)

// RuleResult records the effect of a single cleaning rule.
type RuleResult struct {
	Rule    string `json:"rule"`
	RowsIn  int    `json:"rows_in"`
	RowsOut int    `json:"rows_out"`
	Note    string `json:"note,omitempty"`
}

// Dropped returns the number of rows the rule removed.
func (r RuleResult) Dropped() int { return r.RowsIn - r.RowsOut }

// Audit is the per-rule trail for one cleaning run.
type Audit struct {
	Results      []RuleResult `json:"results"`
	EmptyColumns []string     `json:"empty_columns,omitempty"`
}

// TotalDropped returns the number of rows removed across all rules.
func (a *Audit) TotalDropped() int {
	total := 0
	for _, r := range a.Results {
		total += r.Dropped()
	}
	return total
}

// row carries a posting through the rule sequence. Salary fields use NaN for
// missing so repair rules can distinguish "absent" from zero.
type row struct {
	p dataset.Posting

	avgSalary float64
	salaryMin float64
	salaryMax float64
}

// Clean coerces raw rows to typed form and applies the full rule sequence,
// producing the canonical cleaned table and its audit trail.
func Clean(raw *dataset.RawTable) (dataset.Table, *Audit) {
	audit := &Audit{EmptyColumns: raw.EmptyColumns}

	n := len(raw.Rows)
	audit.Results = append(audit.Results, RuleResult{
		Rule: "drop_empty_columns", RowsIn: n, RowsOut: n,
		Note: strings.Join(raw.EmptyColumns, ", "),
	})

	rows := make([]row, 0, n)
	for _, r := range raw.Rows {
		rows = append(rows, coerce(r))
	}
	audit.Results = append(audit.Results, RuleResult{Rule: "coerce_numeric", RowsIn: n, RowsOut: n})

	rows = applyRules(rows, audit)
	return materialize(rows), audit
}

// Recheck runs the rule sequence over an already-cleaned table. On clean
// input every rule is a no-op, which is the pipeline's idempotence
// guarantee; tests rely on it.
func Recheck(t dataset.Table) (dataset.Table, *Audit) {
	audit := &Audit{}
	rows := make([]row, 0, len(t))
	for _, p := range t {
		rows = append(rows, row{p: p, avgSalary: p.AverageSalary, salaryMin: p.SalaryMinimum, salaryMax: p.SalaryMaximum})
	}
	rows = applyRules(rows, audit)
	return materialize(rows), audit
}

// applyRules runs rules 3-12 in their required order.
func applyRules(rows []row, audit *Audit) []row {
	rows = dropInvalidSalary(rows, audit)
	rows = trimSalaryOutliers(rows, audit)
	rows = repairSalaryBounds(rows, audit)
	rows = clampExperience(rows, audit)
	rows = dropMissingDates(rows, audit)
	rows = normalizeTitles(rows, audit)
	rows = normalizeCategoricals(rows, audit)
	rows = dropNegativeCounters(rows, audit)
	rows = normalizeCompanies(rows, audit)
	rows = dropDuplicates(rows, audit)
	return rows
}

func coerce(r dataset.RawPosting) row {
	out := row{
		p: dataset.Posting{
			JobID:          r.JobID,
			Title:          r.Title,
			Categories:     r.Categories,
			CompanyName:    r.CompanyName,
			EmploymentType: r.EmploymentType,
			PositionLevel:  r.PositionLevel,
		},
	}
	out.salaryMin = parseFloat(r.SalaryMinimum)
	out.salaryMax = parseFloat(r.SalaryMaximum)
	out.avgSalary = parseFloat(r.AverageSalary)

	exp := parseFloat(r.MinYearsExperience)
	if math.IsNaN(exp) {
		exp = 0
	}
	out.p.MinYearsExperience = int(exp)

	views := parseFloat(r.TotalViews)
	if math.IsNaN(views) {
		views = 0
	}
	out.p.TotalViews = int(views)

	apps := parseFloat(r.TotalApplications)
	if math.IsNaN(apps) {
		apps = 0
	}
	out.p.TotalApplications = int(apps)

	if d, ok := parseDate(r.PostingDate); ok {
		out.p.PostingDate = d
	}
	if d, ok := parseDate(r.OriginalPostingDate); ok {
		out.p.OriginalPostingDate = &d
	}
	if d, ok := parseDate(r.ExpiryDate); ok {
		out.p.ExpiryDate = &d
	}
	return out
}

// Rule 3: records without a usable point salary estimate are unusable.
func dropInvalidSalary(rows []row, audit *Audit) []row {
	kept := rows[:0]
	for _, r := range rows {
		if !math.IsNaN(r.avgSalary) && r.avgSalary > 0 {
			kept = append(kept, r)
		}
	}
	return record(audit, "drop_invalid_average_salary", rows, kept)
}

// Rule 4: two-sided trim of average_salary against data-entry outliers.
// Bounds come from rank-based quantiles of the surviving set, with the upper
// bound clamped to the absolute ceiling.
func trimSalaryOutliers(rows []row, audit *Audit) []row {
	if len(rows) == 0 {
		return record(audit, "trim_salary_outliers", rows, rows)
	}

	// Trimming shifts the quantile ranks of the reduced set, so a single
	// pass can leave rows a recomputation would still trim. Iterate until
	// the bounds keep every remaining row; a second cleaning run then finds
	// nothing left to drop.
	n := len(rows)
	kept := rows
	var lo, hi float64
	for {
		values := make([]float64, len(kept))
		for i, r := range kept {
			values[i] = r.avgSalary
		}
		lo = QuantileLower(values, lowerTrimQuantile)
		hi = math.Min(QuantileUpper(values, upperTrimQuantile), SalaryCeiling)

		next := kept[:0]
		for _, r := range kept {
			if r.avgSalary >= lo && r.avgSalary <= hi {
				next = append(next, r)
			}
		}
		stable := len(next) == len(kept)
		kept = next
		if stable || len(kept) == 0 {
			break
		}
	}

	audit.Results = append(audit.Results, RuleResult{
		Rule: "trim_salary_outliers", RowsIn: n, RowsOut: len(kept),
		Note: fmt.Sprintf("bounds [%.0f, %.0f]", lo, hi),
	})
	return kept
}

// Rule 5: salary range bounds are repaired, not dropped. Values above the
// ceiling become the column median; missing values are filled with the
// median of the repaired column.
func repairSalaryBounds(rows []row, audit *Audit) []row {
	repairColumn(rows, func(r *row) *float64 { return &r.salaryMin })
	repairColumn(rows, func(r *row) *float64 { return &r.salaryMax })
	for i := range rows {
		rows[i].p.SalaryMinimum = rows[i].salaryMin
		rows[i].p.SalaryMaximum = rows[i].salaryMax
	}
	return record(audit, "repair_salary_bounds", rows, rows)
}

func repairColumn(rows []row, field func(*row) *float64) {
	var present []float64
	for i := range rows {
		if v := *field(&rows[i]); !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	median := Median(present)
	for i := range rows {
		v := field(&rows[i])
		if !math.IsNaN(*v) && *v > SalaryCeiling {
			*v = median
		}
	}

	// Refill missing values with the median of the repaired column.
	present = present[:0]
	for i := range rows {
		if v := *field(&rows[i]); !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	median = Median(present)
	for i := range rows {
		v := field(&rows[i])
		if math.IsNaN(*v) {
			*v = median
		}
	}
}

// Rule 6: cap implausible experience, drop negatives (defensive; coercion
// maps missing values to zero already).
func clampExperience(rows []row, audit *Audit) []row {
	kept := rows[:0]
	for _, r := range rows {
		if r.p.MinYearsExperience > MaxExperienceYears {
			r.p.MinYearsExperience = MaxExperienceYears
		}
		if r.p.MinYearsExperience >= 0 {
			kept = append(kept, r)
		}
	}
	return record(audit, "clamp_experience", rows, kept)
}

// Rule 7: the posting date is load-bearing for every temporal analytic.
func dropMissingDates(rows []row, audit *Audit) []row {
	kept := rows[:0]
	for _, r := range rows {
		if !r.p.PostingDate.IsZero() {
			kept = append(kept, r)
		}
	}
	return record(audit, "drop_missing_posting_date", rows, kept)
}

// Rule 8: trim and title-case titles, then drop rows left without one.
func normalizeTitles(rows []row, audit *Audit) []row {
	kept := rows[:0]
	for _, r := range rows {
		r.p.Title = titleCase(strings.TrimSpace(r.p.Title))
		if r.p.Title != "" {
			kept = append(kept, r)
		}
	}
	return record(audit, "normalize_titles", rows, kept)
}

// Rule 9: categorical fields default to Unknown, then trim + title case.
func normalizeCategoricals(rows []row, audit *Audit) []row {
	for i := range rows {
		rows[i].p.EmploymentType = normalizeCategorical(rows[i].p.EmploymentType)
		rows[i].p.PositionLevel = normalizeCategorical(rows[i].p.PositionLevel)
	}
	return record(audit, "normalize_categoricals", rows, rows)
}

func normalizeCategorical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return UnknownValue
	}
	return titleCase(v)
}

// Rule 10: engagement counters must be non-negative (defensive; coercion
// maps missing values to zero).
func dropNegativeCounters(rows []row, audit *Audit) []row {
	kept := rows[:0]
	for _, r := range rows {
		if r.p.TotalViews >= 0 && r.p.TotalApplications >= 0 {
			kept = append(kept, r)
		}
	}
	return record(audit, "drop_negative_counters", rows, kept)
}

// Rule 11: company names default to a sentinel, whitespace trimmed.
func normalizeCompanies(rows []row, audit *Audit) []row {
	for i := range rows {
		name := strings.TrimSpace(rows[i].p.CompanyName)
		if name == "" {
			name = UnknownCompany
		}
		rows[i].p.CompanyName = name
	}
	return record(audit, "normalize_companies", rows, rows)
}

// Rule 12: exact full-row duplicates only. Near-duplicates (same posting
// re-listed under a new id) are intentionally retained.
func dropDuplicates(rows []row, audit *Audit) []row {
	seen := make(map[string]bool, len(rows))
	kept := rows[:0]
	for _, r := range rows {
		key := dedupKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, r)
	}
	return record(audit, "drop_duplicates", rows, kept)
}

func dedupKey(r row) string {
	orig, expiry := "", ""
	if r.p.OriginalPostingDate != nil {
		orig = r.p.OriginalPostingDate.Format(time.RFC3339)
	}
	if r.p.ExpiryDate != nil {
		expiry = r.p.ExpiryDate.Format(time.RFC3339)
	}
	return strings.Join([]string{
		r.p.JobID,
		r.p.Title,
		r.p.Categories,
		r.p.CompanyName,
		fmt.Sprintf("%g|%g|%g", r.salaryMin, r.salaryMax, r.avgSalary),
		fmt.Sprintf("%d|%d|%d", r.p.MinYearsExperience, r.p.TotalViews, r.p.TotalApplications),
		r.p.EmploymentType,
		r.p.PositionLevel,
		r.p.PostingDate.Format(time.RFC3339),
		orig,
		expiry,
	}, "\x1f")
}

func record(audit *Audit, rule string, in, out []row) []row {
	audit.Results = append(audit.Results, RuleResult{Rule: rule, RowsIn: len(in), RowsOut: len(out)})
	return out
}

func materialize(rows []row) dataset.Table {
	table := make(dataset.Table, 0, len(rows))
	for _, r := range rows {
		r.p.AverageSalary = r.avgSalary
		r.p.SalaryMinimum = r.salaryMin
		r.p.SalaryMaximum = r.salaryMax
		table = append(table, r.p)
	}
	return table
}
