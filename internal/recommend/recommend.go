// Package recommend produces career guidance from the market table: upskill
// suggestions built from emerging skills the user lacks, the highest-growth
// sectors, and the salary potential those sectors carry.
package recommend

import (
	"fmt"

	"github.com/jonathan/workforce-insight/internal/analytics"
	"github.com/jonathan/workforce-insight/internal/dataset"
	"github.com/jonathan/workforce-insight/internal/skills"
)

const topSectorCount = 3

// Profile describes the user asking for recommendations.
type Profile struct {
	Skills        []string `json:"skills"`
	DesiredSalary float64  `json:"desired_salary"`
	PreferredRole string   `json:"preferred_role"`
}

// Recommendations is the full guidance payload.
type Recommendations struct {
	UpskillOpportunities []string                `json:"upskill_opportunities"`
	HighGrowthSectors    []analytics.SectorScore `json:"high_growth_sectors"`
	SalaryPotential      float64                 `json:"salary_potential"`
}

// fallbackSkills backstop the upskill sentences when the user already has
// every emerging skill.
var fallbackSkills = []string{"Cloud", "AI/ML", "DevOps"}

// Build computes recommendations for a profile against the given table.
func Build(t dataset.Table, profile Profile) Recommendations {
	rec := Recommendations{
		UpskillOpportunities: upskillOpportunities(t, profile),
		HighGrowthSectors:    analytics.TopGrowthSectors(t, topSectorCount),
	}

	// Salary potential: mean salary across the recommended sectors.
	var sum float64
	var count int
	for _, s := range rec.HighGrowthSectors {
		for _, p := range t.BySector(s.Sector) {
			sum += p.AverageSalary
			count++
		}
	}
	if count > 0 {
		rec.SalaryPotential = sum / float64(count)
	}
	return rec
}

func upskillOpportunities(t dataset.Table, profile Profile) []string {
	_, emerging := skills.Demand(t)

	have := make(map[string]bool, len(profile.Skills))
	for _, s := range profile.Skills {
		have[s] = true
	}

	// Missing emerging skills in taxonomy order, so output is deterministic.
	var missing []string
	for _, s := range skills.EmergingSkills {
		if _, tracked := emerging[s.Name()]; tracked && !have[s.Name()] {
			missing = append(missing, s.Name())
		}
	}

	pick := func(i int, fallback string) string {
		if i < len(missing) {
			return missing[i]
		}
		return fallback
	}

	return []string{
		fmt.Sprintf("Learn %s to transition into data engineering roles", pick(0, fallbackSkills[0])),
		fmt.Sprintf("Master %s to unlock senior positions with a salary premium", pick(1, fallbackSkills[1])),
		fmt.Sprintf("Develop %s expertise to access specialized technical tracks", pick(2, fallbackSkills[2])),
	}
}
