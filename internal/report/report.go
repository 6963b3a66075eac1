// Package report renders the before/after cleaning quality report for the
// terminal: dataset counts, salary statistics, the per-rule audit trail, the
// category distribution and an overall quality score.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/jonathan/workforce-insight/internal/cleaning"
	"github.com/jonathan/workforce-insight/internal/dataset"
	"github.com/jonathan/workforce-insight/internal/enrich"
)

const topCategories = 10

// SalaryStats summarizes the average-salary column of the cleaned table.
type SalaryStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// CategoryCount is one entry of the category distribution.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary is the computed quality report, separate from its rendering.
type Summary struct {
	RawRows           int             `json:"raw_rows"`
	SkippedRows       int             `json:"skipped_rows"`
	CleanRows         int             `json:"clean_rows"`
	RowsDropped       int             `json:"rows_dropped"`
	EmptyColumns      []string        `json:"empty_columns,omitempty"`
	CategoryFallbacks int             `json:"category_fallbacks"`
	Salary            SalaryStats     `json:"salary"`
	Categories        []CategoryCount `json:"categories"`
	QualityScore      float64         `json:"quality_score"`
}

// Summarize computes the quality report from one cleaning run. rawRows and
// skippedRows come from the loader, before any rule applied.
func Summarize(rawRows, skippedRows int, cleaned dataset.Table, audit *cleaning.Audit) Summary {
	s := Summary{
		RawRows:           rawRows,
		SkippedRows:       skippedRows,
		CleanRows:         len(cleaned),
		RowsDropped:       audit.TotalDropped(),
		EmptyColumns:      audit.EmptyColumns,
		CategoryFallbacks: enrich.FallbackCount(cleaned),
		Categories:        categoryCounts(cleaned),
	}

	salaries := make([]float64, 0, len(cleaned))
	for _, p := range cleaned {
		salaries = append(salaries, p.AverageSalary)
	}
	if len(salaries) > 0 {
		min, max := salaries[0], salaries[0]
		for _, v := range salaries[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		s.Salary = SalaryStats{
			Min:    min,
			Max:    max,
			Mean:   cleaning.Mean(salaries),
			Median: cleaning.Median(salaries),
			StdDev: cleaning.StdDev(salaries),
		}
	}

	if rawRows > 0 {
		removed := float64(rawRows-len(cleaned)) / float64(rawRows) * 100
		s.QualityScore = 100 - removed
	}
	return s
}

func categoryCounts(t dataset.Table) []CategoryCount {
	counts := map[string]int{}
	order := []string{}
	for _, p := range t {
		cat := p.PrimaryCategory
		if cat == "" {
			cat = enrich.ExtractPrimaryCategory(p.Categories).Category
		}
		if _, seen := counts[cat]; !seen {
			order = append(order, cat)
		}
		counts[cat]++
	}

	out := make([]CategoryCount, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryCount{Category: cat, Count: counts[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > topCategories {
		out = out[:topCategories]
	}
	return out
}

// Render writes the full report to w. Colors degrade to plain text when
// color output is disabled.
func Render(w io.Writer, s Summary, audit *cleaning.Audit) {
	heading := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Fprintln(w, heading("Data Quality Report"))
	fmt.Fprintln(w)

	overview := tablewriter.NewWriter(w)
	overview.SetHeader([]string{"Metric", "Value"})
	overview.Append([]string{"Raw rows", fmt.Sprintf("%d", s.RawRows)})
	overview.Append([]string{"Malformed rows skipped", fmt.Sprintf("%d", s.SkippedRows)})
	overview.Append([]string{"Rows dropped by cleaning", fmt.Sprintf("%d", s.RowsDropped)})
	overview.Append([]string{"Clean rows", fmt.Sprintf("%d", s.CleanRows)})
	overview.Append([]string{"Category fallbacks", fmt.Sprintf("%d", s.CategoryFallbacks)})
	if len(s.EmptyColumns) > 0 {
		overview.Append([]string{"Empty columns removed", fmt.Sprintf("%d", len(s.EmptyColumns))})
	}
	overview.Render()
	fmt.Fprintln(w)

	fmt.Fprintln(w, heading("Average Salary"))
	salary := tablewriter.NewWriter(w)
	salary.SetHeader([]string{"Min", "Max", "Mean", "Median", "Std Dev"})
	salary.Append([]string{
		fmt.Sprintf("%.2f", s.Salary.Min),
		fmt.Sprintf("%.2f", s.Salary.Max),
		fmt.Sprintf("%.2f", s.Salary.Mean),
		fmt.Sprintf("%.2f", s.Salary.Median),
		fmt.Sprintf("%.2f", s.Salary.StdDev),
	})
	salary.Render()
	fmt.Fprintln(w)

	fmt.Fprintln(w, heading("Cleaning Rules"))
	rules := tablewriter.NewWriter(w)
	rules.SetHeader([]string{"Rule", "Rows In", "Rows Out", "Dropped", "Note"})
	for _, r := range audit.Results {
		rules.Append([]string{
			r.Rule,
			fmt.Sprintf("%d", r.RowsIn),
			fmt.Sprintf("%d", r.RowsOut),
			fmt.Sprintf("%d", r.Dropped()),
			r.Note,
		})
	}
	rules.Render()
	fmt.Fprintln(w)

	if len(s.Categories) > 0 {
		fmt.Fprintln(w, heading("Top Categories"))
		cats := tablewriter.NewWriter(w)
		cats.SetHeader([]string{"Category", "Postings"})
		for _, c := range s.Categories {
			cats.Append([]string{c.Category, fmt.Sprintf("%d", c.Count)})
		}
		cats.Render()
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Quality score: %s\n", scoreText(s.QualityScore))
}

func scoreText(score float64) string {
	text := fmt.Sprintf("%.1f / 100", score)
	switch {
	case score >= 90:
		return color.GreenString(text)
	case score >= 70:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}
