package analytics

import (
	"math"
	"sort"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

// Growth score weights and the engagement scaling. Two revisions of this
// formula exist upstream (views/10 uncapped vs views/100 capped); this
// implementation uses the capped revision so a handful of viral postings
// cannot dominate the two percentage-like terms.
const (
	growthVolumeWeight = 40.0
	growthSalaryWeight = 30.0

	// EngagementDivisor scales mean views into the engagement term.
	EngagementDivisor = 100.0
	// EngagementCap bounds the engagement term.
	EngagementCap = 30.0
)

// SectorScore is one sector's growth score.
type SectorScore struct {
	Sector string  `json:"sector"`
	Score  float64 `json:"score"`
}

// SectorGrowth scores every sector by posting-volume share, relative salary
// and capped engagement, sorted descending (stable on ties). When the
// overall average salary is zero the relative-salary term is undefined, so
// the ranking is empty rather than NaN-laden.
func SectorGrowth(t dataset.Table) []SectorScore {
	overallAvg := t.MeanAverageSalary()
	if len(t) == 0 || overallAvg == 0 {
		return nil
	}

	total := float64(len(t))
	scores := make([]SectorScore, 0)
	for _, sector := range t.Sectors() {
		rows := t.BySector(sector)
		score := float64(len(rows))/total*growthVolumeWeight +
			rows.MeanAverageSalary()/overallAvg*growthSalaryWeight +
			math.Min(rows.MeanViews()/EngagementDivisor, EngagementCap)
		scores = append(scores, SectorScore{Sector: sector, Score: round2(score)})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// TopGrowthSectors returns the n highest-scoring sectors.
func TopGrowthSectors(t dataset.Table, n int) []SectorScore {
	scores := SectorGrowth(t)
	if len(scores) > n {
		scores = scores[:n]
	}
	return scores
}
