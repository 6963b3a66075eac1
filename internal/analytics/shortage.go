// Package analytics computes descriptive labor-market statistics over the
// canonical cleaned table: the composite shortage index, sector growth
// scores, and the grouped aggregations behind heatmaps, trends and summary
// tables. Every function here is pure: same table in, same numbers out.
package analytics

import (
	"math"
	"sort"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

// Shortage index sub-score weights. The composite is a heuristic proxy for
// unmet demand: employers posting often and paying well while receiving
// little applicant interest. The formulation is reproduced exactly; it is
// not a fitted model and must not be "improved" in place.
const (
	weightPostingVolume = 0.30
	weightInverseViews  = 0.20
	weightInverseApps   = 0.30
	weightSalaryLevel   = 0.20
)

// SectorIndex is one sector's composite shortage severity in [0, 100],
// higher meaning more severe, with its four sub-scores retained for
// inspection.
type SectorIndex struct {
	Sector       string  `json:"sector"`
	Index        float64 `json:"index"`
	PostingScore float64 `json:"posting_score"`
	ViewsScore   float64 `json:"views_score"`
	AppsScore    float64 `json:"apps_score"`
	SalaryScore  float64 `json:"salary_score"`
}

// ShortageIndex computes the composite shortage index per sector, sorted
// descending by index. Ties keep the sectors' first-appearance order in the
// table (the sort is stable). An empty table yields an empty slice.
func ShortageIndex(t dataset.Table) []SectorIndex {
	if len(t) == 0 {
		return nil
	}

	total := float64(len(t))
	indices := make([]SectorIndex, 0)
	for _, sector := range t.Sectors() {
		rows := t.BySector(sector)

		postingScore := math.Min(float64(len(rows))/total*200, 100)
		viewsScore := math.Max(100-math.Min(rows.MeanViews()/100*50, 100), 0)
		appsScore := math.Max(100-math.Min(rows.MeanApplications()/5*50, 100), 0)
		salaryScore := math.Min(rows.MeanAverageSalary()/5000*50, 50)

		index := postingScore*weightPostingVolume +
			viewsScore*weightInverseViews +
			appsScore*weightInverseApps +
			salaryScore*weightSalaryLevel

		indices = append(indices, SectorIndex{
			Sector:       sector,
			Index:        round2(index),
			PostingScore: round2(postingScore),
			ViewsScore:   round2(viewsScore),
			AppsScore:    round2(appsScore),
			SalaryScore:  round2(salaryScore),
		})
	}

	sort.SliceStable(indices, func(i, j int) bool {
		return indices[i].Index > indices[j].Index
	})
	return indices
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
