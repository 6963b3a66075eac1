package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/workforce-insight/internal/filter"
)

// filterFlags carries the dataset filter flags shared by the analysis and
// export commands.
type filterFlags struct {
	years           []int
	sectors         []string
	employmentTypes []string
	positionLevels  []string
	salaryMin       float64
	salaryMax       float64
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntSliceVar(&f.years, "years", nil, "Restrict to posting years (e.g. 2023,2024)")
	cmd.Flags().StringSliceVar(&f.sectors, "sector", nil, "Restrict to primary categories")
	cmd.Flags().StringSliceVar(&f.employmentTypes, "employment-type", nil, "Restrict to employment types")
	cmd.Flags().StringSliceVar(&f.positionLevels, "position-level", nil, "Restrict to position levels")
	cmd.Flags().Float64Var(&f.salaryMin, "salary-min", 0, "Minimum average salary")
	cmd.Flags().Float64Var(&f.salaryMax, "salary-max", 0, "Maximum average salary (0 = unbounded)")
}

func (f *filterFlags) params() (filter.Params, error) {
	p := filter.Params{
		Years:           f.years,
		Sectors:         f.sectors,
		EmploymentTypes: f.employmentTypes,
		PositionLevels:  f.positionLevels,
		SalaryMin:       f.salaryMin,
		SalaryMax:       f.salaryMax,
	}
	if err := p.Validate(); err != nil {
		return filter.Params{}, err
	}
	return p, nil
}
