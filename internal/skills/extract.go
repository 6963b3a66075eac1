package skills

import (
	"strings"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

// Extractor matches taxonomy entries against posting text.
type Extractor struct {
	entries []Entry
}

// NewExtractor returns an extractor over the default taxonomy.
func NewExtractor() *Extractor {
	return &Extractor{entries: defaultEntries()}
}

// Entries returns the extractor's taxonomy in report order.
func (e *Extractor) Entries() []Entry {
	return e.entries
}

// searchText is the concatenated, lower-cased text a posting is matched
// against: the title plus the primary category tag.
func searchText(p dataset.Posting) string {
	return strings.ToLower(p.Title + " " + p.PrimaryCategory)
}

// Demand counts, per skill, the postings whose text matches the skill's
// pattern. It returns the current-market counts and the emerging-skill
// counts as two parallel mappings. An empty table yields two empty maps; no
// matching is attempted.
func (e *Extractor) Demand(t dataset.Table) (current, emerging map[string]int) {
	current = make(map[string]int)
	emerging = make(map[string]int)
	if len(t) == 0 {
		return current, emerging
	}

	counts := make(map[Skill]int, len(e.entries))
	for _, p := range t {
		text := searchText(p)
		for _, entry := range e.entries {
			if entry.Pattern.MatchString(text) {
				counts[entry.Skill]++
			}
		}
	}

	for _, entry := range e.entries {
		if entry.Current {
			current[entry.Name] = counts[entry.Skill]
		}
		if entry.Emerging {
			emerging[entry.Name] = counts[entry.Skill]
		}
	}
	return current, emerging
}

// SkillSalary aggregates salary statistics for postings matching one skill.
type SkillSalary struct {
	Skill     string  `json:"skill"`
	Postings  int     `json:"postings"`
	AvgSalary float64 `json:"avg_salary"`
}

// SalaryStats returns per-skill posting counts and mean salaries across the
// whole taxonomy, in taxonomy order. Skills with no matching postings are
// included with zero values so report tables stay rectangular.
func (e *Extractor) SalaryStats(t dataset.Table) []SkillSalary {
	stats := make([]SkillSalary, 0, len(e.entries))
	for _, entry := range e.entries {
		var count int
		var sum float64
		for _, p := range t {
			if entry.Pattern.MatchString(searchText(p)) {
				count++
				sum += p.AverageSalary
			}
		}
		s := SkillSalary{Skill: entry.Name, Postings: count}
		if count > 0 {
			s.AvgSalary = sum / float64(count)
		}
		stats = append(stats, s)
	}
	return stats
}

// Demand runs the default extractor; most callers need nothing else.
func Demand(t dataset.Table) (current, emerging map[string]int) {
	return NewExtractor().Demand(t)
}
