package analytics

import (
	"sort"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

// benchmarkMinCount is the minimum posting count for a position level to
// appear in salary benchmarks; tiny groups produce noise, not benchmarks.
const benchmarkMinCount = 5

// HeatmapCell is one (period, sector) aggregation for the hiring heatmap.
type HeatmapCell struct {
	Period        string  `json:"period"`
	Sector        string  `json:"sector"`
	Postings      int     `json:"postings"`
	AvgSalary     float64 `json:"avg_salary"`
	AvgExperience float64 `json:"avg_experience"`
}

// HeatmapCells groups the table by year-month bucket and sector, sorted by
// period then sector for stable rendering.
func HeatmapCells(t dataset.Table) []HeatmapCell {
	type key struct{ period, sector string }
	type acc struct {
		count      int
		salary     float64
		experience float64
	}

	groups := make(map[key]*acc)
	for _, p := range t {
		k := key{p.YearMonth, p.PrimaryCategory}
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
		}
		a.count++
		a.salary += p.AverageSalary
		a.experience += float64(p.MinYearsExperience)
	}

	cells := make([]HeatmapCell, 0, len(groups))
	for k, a := range groups {
		cells = append(cells, HeatmapCell{
			Period:        k.period,
			Sector:        k.sector,
			Postings:      a.count,
			AvgSalary:     round2(a.salary / float64(a.count)),
			AvgExperience: round2(a.experience / float64(a.count)),
		})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Period != cells[j].Period {
			return cells[i].Period < cells[j].Period
		}
		return cells[i].Sector < cells[j].Sector
	})
	return cells
}

// TrendPoint is the posting count for one year-month bucket.
type TrendPoint struct {
	Period   string `json:"period"`
	Postings int    `json:"postings"`
}

// PostingTrend counts postings per year-month bucket, ascending by period.
// The bucket key sorts correctly as a string ("2023-02" < "2023-10").
func PostingTrend(t dataset.Table) []TrendPoint {
	counts := make(map[string]int)
	for _, p := range t {
		counts[p.YearMonth]++
	}
	points := make([]TrendPoint, 0, len(counts))
	for period, n := range counts {
		points = append(points, TrendPoint{Period: period, Postings: n})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
	return points
}

// SectorSummary is the per-sector statistics row for summary tables and the
// sector-breakdown export sheet.
type SectorSummary struct {
	Sector        string  `json:"sector"`
	Postings      int     `json:"postings"`
	AvgSalary     float64 `json:"avg_salary"`
	MinSalary     float64 `json:"min_salary"`
	MaxSalary     float64 `json:"max_salary"`
	AvgExperience float64 `json:"avg_experience"`
	TotalViews    int     `json:"total_views"`
}

// SectorSummaries aggregates per sector, sorted by posting count descending
// (stable on ties, keeping first-appearance order).
func SectorSummaries(t dataset.Table) []SectorSummary {
	summaries := make([]SectorSummary, 0)
	for _, sector := range t.Sectors() {
		rows := t.BySector(sector)
		s := SectorSummary{
			Sector:    sector,
			Postings:  len(rows),
			AvgSalary: round2(rows.MeanAverageSalary()),
			MinSalary: rows[0].AverageSalary,
			MaxSalary: rows[0].AverageSalary,
		}
		var exp float64
		for _, p := range rows {
			if p.AverageSalary < s.MinSalary {
				s.MinSalary = p.AverageSalary
			}
			if p.AverageSalary > s.MaxSalary {
				s.MaxSalary = p.AverageSalary
			}
			exp += float64(p.MinYearsExperience)
			s.TotalViews += p.TotalViews
		}
		s.AvgExperience = round2(exp / float64(len(rows)))
		summaries = append(summaries, s)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Postings > summaries[j].Postings
	})
	return summaries
}

// LevelBenchmark is the salary benchmark for one position level.
type LevelBenchmark struct {
	PositionLevel string  `json:"position_level"`
	Postings      int     `json:"postings"`
	AvgSalary     float64 `json:"avg_salary"`
	MinSalary     float64 `json:"min_salary"`
	MaxSalary     float64 `json:"max_salary"`
}

// PositionLevelBenchmarks aggregates salary statistics per position level,
// excluding levels with fewer than benchmarkMinCount postings, sorted by
// average salary descending.
func PositionLevelBenchmarks(t dataset.Table) []LevelBenchmark {
	type acc struct {
		count    int
		sum      float64
		min, max float64
	}
	groups := make(map[string]*acc)
	var order []string
	for _, p := range t {
		a, ok := groups[p.PositionLevel]
		if !ok {
			a = &acc{min: p.AverageSalary, max: p.AverageSalary}
			groups[p.PositionLevel] = a
			order = append(order, p.PositionLevel)
		}
		a.count++
		a.sum += p.AverageSalary
		if p.AverageSalary < a.min {
			a.min = p.AverageSalary
		}
		if p.AverageSalary > a.max {
			a.max = p.AverageSalary
		}
	}

	benchmarks := make([]LevelBenchmark, 0, len(groups))
	for _, level := range order {
		a := groups[level]
		if a.count < benchmarkMinCount {
			continue
		}
		benchmarks = append(benchmarks, LevelBenchmark{
			PositionLevel: level,
			Postings:      a.count,
			AvgSalary:     round2(a.sum / float64(a.count)),
			MinSalary:     a.min,
			MaxSalary:     a.max,
		})
	}
	sort.SliceStable(benchmarks, func(i, j int) bool {
		return benchmarks[i].AvgSalary > benchmarks[j].AvgSalary
	})
	return benchmarks
}

// CompanyCount is one hiring company and its posting count.
type CompanyCount struct {
	Company  string `json:"company"`
	Postings int    `json:"postings"`
}

// TopCompanies returns the n companies with the most postings, descending,
// ties broken by first appearance.
func TopCompanies(t dataset.Table, n int) []CompanyCount {
	counts := make(map[string]int)
	var order []string
	for _, p := range t {
		if counts[p.CompanyName] == 0 {
			order = append(order, p.CompanyName)
		}
		counts[p.CompanyName]++
	}
	companies := make([]CompanyCount, 0, len(order))
	for _, c := range order {
		companies = append(companies, CompanyCount{Company: c, Postings: counts[c]})
	}
	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].Postings > companies[j].Postings
	})
	if len(companies) > n {
		companies = companies[:n]
	}
	return companies
}
