// Package skills scans job posting text for matches against a fixed skill
// taxonomy and reports per-skill demand and salary statistics.
package skills

import (
	"fmt"
	"regexp"
)

// Skill identifies one taxonomy entry. A closed enum rather than free-form
// strings so a typo in a skill name is a compile error, not a silent zero.
type Skill int

const (
	Python Skill = iota
	Java
	CPlusPlus
	JavaScript
	SQL
	Cloud
	Data
	AIML
	DevOps
)

// skillNames must stay in sync with the Skill constants above.
var skillNames = [...]string{
	Python:     "Python",
	Java:       "Java",
	CPlusPlus:  "C++",
	JavaScript: "JavaScript",
	SQL:        "SQL",
	Cloud:      "Cloud",
	Data:       "Data",
	AIML:       "AI/ML",
	DevOps:     "DevOps",
}

// Name returns the display name of the skill.
func (s Skill) Name() string {
	if int(s) < 0 || int(s) >= len(skillNames) {
		return fmt.Sprintf("Skill(%d)", int(s))
	}
	return skillNames[s]
}

// CurrentSkills is the full current-market taxonomy, in report order.
var CurrentSkills = []Skill{Python, Java, CPlusPlus, JavaScript, SQL, Cloud, Data, AIML}

// EmergingSkills are the forward-looking demand tags. DevOps appears only
// here; its count comes from its own pattern, not the current set.
var EmergingSkills = []Skill{Cloud, AIML, Data, DevOps}

// Entry couples a skill with its compiled matching pattern. A skill can sit
// in both sets: Cloud, AI/ML and Data are reported as current market demand
// and flagged emerging.
type Entry struct {
	Skill    Skill
	Name     string
	Pattern  *regexp.Regexp
	Current  bool
	Emerging bool
}

// skillPatterns holds the raw case-insensitive patterns per skill. Literal
// names containing regex metacharacters (C++) are written pre-escaped here;
// custom taxonomy entries are escaped on load.
var skillPatterns = map[Skill]string{
	Python:     `python`,
	Java:       `java`,
	CPlusPlus:  `c\+\+|c plus plus`,
	JavaScript: `javascript|node`,
	SQL:        `sql`,
	Cloud:      `aws|azure|gcp|cloud`,
	Data:       `data|analytics|bi`,
	AIML:       `ai|machine learning|ml`,
	DevOps:     `devops|docker|kubernetes`,
}

func compilePattern(raw string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + raw)
}

func defaultEntries() []Entry {
	emerging := make(map[Skill]bool, len(EmergingSkills))
	for _, s := range EmergingSkills {
		emerging[s] = true
	}
	current := make(map[Skill]bool, len(CurrentSkills))
	for _, s := range CurrentSkills {
		current[s] = true
	}

	all := append(append([]Skill(nil), CurrentSkills...), DevOps)
	entries := make([]Entry, 0, len(all))
	for _, s := range all {
		entries = append(entries, Entry{
			Skill:    s,
			Name:     s.Name(),
			Pattern:  compilePattern(skillPatterns[s]),
			Current:  current[s],
			Emerging: emerging[s],
		})
	}
	return entries
}
