// Package filter applies user-selected predicate filters to the canonical
// cleaned table, producing derived views. Filters never mutate their input;
// every consumer downstream sees the same schema whether or not a filter ran.
package filter

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

var validate = validator.New()

// Params holds the filter dimensions. An empty inclusion slice means "no
// filter on that dimension", never "exclude everything". A zero SalaryMax
// means no upper bound.
type Params struct {
	Years           []int    `json:"years,omitempty"`
	Sectors         []string `json:"sectors,omitempty"`
	EmploymentTypes []string `json:"employment_types,omitempty"`
	PositionLevels  []string `json:"position_levels,omitempty"`
	SalaryMin       float64  `json:"salary_min,omitempty" validate:"gte=0"`
	SalaryMax       float64  `json:"salary_max,omitempty" validate:"omitempty,gtefield=SalaryMin"`
}

// Validate checks the numeric ranges.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid filter params: %w", err)
	}
	return nil
}

// IsZero reports whether the params filter nothing.
func (p Params) IsZero() bool {
	return len(p.Years) == 0 && len(p.Sectors) == 0 &&
		len(p.EmploymentTypes) == 0 && len(p.PositionLevels) == 0 &&
		p.SalaryMin == 0 && p.SalaryMax == 0
}

// Apply returns a new table containing the rows matching every configured
// dimension (filters are AND-combined). The result may be empty; deciding
// whether to fall back to the unfiltered table is the caller's job.
func Apply(t dataset.Table, p Params) dataset.Table {
	out := make(dataset.Table, 0, len(t))
	for _, posting := range t {
		if p.matches(posting) {
			out = append(out, posting)
		}
	}
	return out
}

func (p Params) matches(posting dataset.Posting) bool {
	if len(p.Years) > 0 && !containsInt(p.Years, posting.Year) {
		return false
	}
	if len(p.Sectors) > 0 && !containsString(p.Sectors, posting.PrimaryCategory) {
		return false
	}
	if len(p.EmploymentTypes) > 0 && !containsString(p.EmploymentTypes, posting.EmploymentType) {
		return false
	}
	if len(p.PositionLevels) > 0 && !containsString(p.PositionLevels, posting.PositionLevel) {
		return false
	}
	if posting.AverageSalary < p.SalaryMin {
		return false
	}
	if p.SalaryMax > 0 && posting.AverageSalary > p.SalaryMax {
		return false
	}
	return true
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
