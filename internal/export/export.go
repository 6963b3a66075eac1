// Package export feeds the external serialization collaborators: direct CSV
// output, plain sheet data for spreadsheet writers, and a structured report
// payload for document formatters. Nothing here owns a file format beyond
// CSV; the collaborators do.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jonathan/workforce-insight/internal/analytics"
	"github.com/jonathan/workforce-insight/internal/dataset"
)

// csvHeader is the column set of the row-level export.
var csvHeader = []string{
	"title",
	"company_name",
	"primary_category",
	"average_salary",
	"position_level",
	"employment_type",
	"posting_date",
}

// WriteCSV serializes the table's export columns to w.
func WriteCSV(w io.Writer, t dataset.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range t {
		record := []string{
			p.Title,
			p.CompanyName,
			p.PrimaryCategory,
			fmt.Sprintf("%.2f", p.AverageSalary),
			p.PositionLevel,
			p.EmploymentType,
			p.PostingDate.Format("2006-01-02"),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Sheet is one spreadsheet tab as plain data.
type Sheet struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Workbook is the multi-sheet spreadsheet payload: a summary sheet, a
// sector-breakdown sheet, and the row-level listing.
type Workbook struct {
	Sheets []Sheet `json:"sheets"`
}

// BuildWorkbook assembles the spreadsheet payload from the table.
func BuildWorkbook(t dataset.Table) Workbook {
	return Workbook{Sheets: []Sheet{
		summarySheet(t),
		sectorSheet(t),
		listingSheet(t),
	}}
}

func summarySheet(t dataset.Table) Sheet {
	rows := [][]string{
		{"Total Postings", fmt.Sprintf("%d", len(t))},
		{"Average Salary", fmt.Sprintf("%.2f", t.MeanAverageSalary())},
		{"Average Views per Posting", fmt.Sprintf("%.1f", t.MeanViews())},
		{"Average Applications per Posting", fmt.Sprintf("%.1f", t.MeanApplications())},
		{"Distinct Sectors", fmt.Sprintf("%d", len(t.Sectors()))},
	}
	return Sheet{Name: "Summary", Header: []string{"Metric", "Value"}, Rows: rows}
}

func sectorSheet(t dataset.Table) Sheet {
	var rows [][]string
	for _, s := range analytics.SectorSummaries(t) {
		rows = append(rows, []string{
			s.Sector,
			fmt.Sprintf("%d", s.Postings),
			fmt.Sprintf("%.2f", s.AvgSalary),
			fmt.Sprintf("%.2f", s.MinSalary),
			fmt.Sprintf("%.2f", s.MaxSalary),
			fmt.Sprintf("%.1f", s.AvgExperience),
			fmt.Sprintf("%d", s.TotalViews),
		})
	}
	return Sheet{
		Name:   "Sectors",
		Header: []string{"Sector", "Postings", "Avg Salary", "Min Salary", "Max Salary", "Avg Experience", "Total Views"},
		Rows:   rows,
	}
}

func listingSheet(t dataset.Table) Sheet {
	var rows [][]string
	for _, p := range t {
		rows = append(rows, []string{
			p.Title,
			p.CompanyName,
			p.PrimaryCategory,
			fmt.Sprintf("%.2f", p.AverageSalary),
			p.PositionLevel,
			p.EmploymentType,
			p.PostingDate.Format("2006-01-02"),
		})
	}
	return Sheet{Name: "Postings", Header: csvHeader, Rows: rows}
}

// Report is the document-report payload: title, executive summary, the
// ranked sector table and optional recommendation bullets.
type Report struct {
	Title           string                  `json:"title"`
	Summary         string                  `json:"summary"`
	RankedSectors   []analytics.SectorScore `json:"ranked_sectors"`
	Recommendations []string                `json:"recommendations,omitempty"`
}

// BuildReport assembles the document payload. Recommendation bullets are the
// caller's to supply; an empty slice omits the section.
func BuildReport(t dataset.Table, recommendations []string) Report {
	summary := fmt.Sprintf(
		"The dataset covers %d postings across %d sectors with an overall average salary of %.0f.",
		len(t), len(t.Sectors()), t.MeanAverageSalary())
	if len(t) == 0 {
		summary = "The dataset contains no postings for the selected filters."
	}
	return Report{
		Title:           "Workforce Market Report",
		Summary:         summary,
		RankedSectors:   analytics.SectorGrowth(t),
		Recommendations: recommendations,
	}
}
