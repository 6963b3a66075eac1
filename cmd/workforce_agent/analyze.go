package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/workforce-insight/internal/analytics"
	"github.com/jonathan/workforce-insight/internal/dataset"
	"github.com/jonathan/workforce-insight/internal/filter"
	"github.com/jonathan/workforce-insight/internal/recommend"
	"github.com/jonathan/workforce-insight/internal/skills"
	"github.com/jonathan/workforce-insight/internal/snapshot"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Derive market metrics from a postings dataset",
	Long:  "Clean the dataset and print skill demand, talent shortage scores, sector growth rankings and career recommendations. With no section flags all sections are printed.",
	RunE:  runAnalyze,
}

var (
	analyzeInput    string
	analyzeTaxonomy string
	analyzeTop      int
	analyzeFilters  filterFlags

	showSkills    bool
	showShortage  bool
	showGrowth    bool
	showRecommend bool

	ownedSkills   []string
	desiredSalary float64
	preferredRole string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Path to the postings dataset (CSV or Parquet)")
	analyzeCmd.Flags().StringVar(&analyzeTaxonomy, "taxonomy", "", "Path to a skill taxonomy override file")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 0, "Number of sectors in ranked outputs")
	analyzeFilters.register(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&showSkills, "skills", false, "Print skill demand")
	analyzeCmd.Flags().BoolVar(&showShortage, "shortage", false, "Print talent shortage scores")
	analyzeCmd.Flags().BoolVar(&showGrowth, "growth", false, "Print sector growth rankings")
	analyzeCmd.Flags().BoolVar(&showRecommend, "recommend", false, "Print career recommendations")

	analyzeCmd.Flags().StringSliceVar(&ownedSkills, "owned-skills", nil, "Skills already held, for recommendations")
	analyzeCmd.Flags().Float64Var(&desiredSalary, "desired-salary", 0, "Desired salary, for recommendations")
	analyzeCmd.Flags().StringVar(&preferredRole, "preferred-role", "", "Preferred role, for recommendations")

	rootCmd.AddCommand(analyzeCmd)
}

// analysisResult collects the concurrently computed sections.
type analysisResult struct {
	current  map[string]int
	emerging map[string]int
	salaries []skills.SkillSalary
	shortage []analytics.SectorIndex
	growth   []analytics.SectorScore
	advice   recommend.Recommendations
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	input := analyzeInput
	if input == "" {
		input = cfg.Dataset
	}
	if input == "" {
		return fmt.Errorf("--input or a config dataset path is required")
	}
	taxonomyPath := analyzeTaxonomy
	if taxonomyPath == "" {
		taxonomyPath = cfg.Taxonomy
	}
	top := analyzeTop
	if top == 0 {
		top = cfg.TopSectors
	}
	if top == 0 {
		top = 3
	}

	params, err := analyzeFilters.params()
	if err != nil {
		return err
	}

	extractor := skills.NewExtractor()
	if taxonomyPath != "" {
		extractor, err = skills.LoadTaxonomy(taxonomyPath)
		if err != nil {
			return fmt.Errorf("failed to load skill taxonomy: %w", err)
		}
	}

	snap, err := snapshot.Build(input)
	if err != nil {
		return fmt.Errorf("failed to build snapshot: %w", err)
	}

	out := cmd.OutOrStdout()
	table := filter.Apply(snap.Table, params)
	if len(table) == 0 && !params.IsZero() && len(snap.Table) > 0 {
		fmt.Fprintln(out, color.YellowString("No postings match the filters; showing the full dataset."))
		table = snap.Table
	}

	all := !showSkills && !showShortage && !showGrowth && !showRecommend
	var res analysisResult

	g, _ := errgroup.WithContext(cmd.Context())
	if all || showSkills {
		g.Go(func() error {
			res.current, res.emerging = extractor.Demand(table)
			res.salaries = extractor.SalaryStats(table)
			return nil
		})
	}
	if all || showShortage {
		g.Go(func() error {
			res.shortage = analytics.ShortageIndex(table)
			return nil
		})
	}
	if all || showGrowth {
		g.Go(func() error {
			res.growth = analytics.TopGrowthSectors(table, top)
			return nil
		})
	}
	if all || showRecommend {
		g.Go(func() error {
			res.advice = recommend.Build(table, recommend.Profile{
				Skills:        ownedSkills,
				DesiredSalary: desiredSalary,
				PreferredRole: preferredRole,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(out, "%d postings analyzed across %d sectors\n\n", len(table), len(table.Sectors()))
	if all || showSkills {
		printSkills(out, extractor, res)
	}
	if all || showShortage {
		printShortage(out, res.shortage)
	}
	if all || showGrowth {
		printGrowth(out, res.growth)
	}
	if all || showRecommend {
		printRecommendations(out, table, res.advice)
	}
	return nil
}

func heading(w io.Writer, text string) {
	fmt.Fprintln(w, color.New(color.FgCyan, color.Bold).Sprint(text))
}

func printSkills(w io.Writer, extractor *skills.Extractor, res analysisResult) {
	heading(w, "Skill Demand")
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Skill", "Current Postings", "Emerging Postings"})
	for _, e := range extractor.Entries() {
		current, emerging := "", ""
		if n, ok := res.current[e.Name]; ok {
			current = fmt.Sprintf("%d", n)
		}
		if n, ok := res.emerging[e.Name]; ok {
			emerging = fmt.Sprintf("%d", n)
		}
		tw.Append([]string{e.Name, current, emerging})
	}
	tw.Render()
	fmt.Fprintln(w)

	if len(res.salaries) > 0 {
		heading(w, "Skill Salaries")
		tw = tablewriter.NewWriter(w)
		tw.SetHeader([]string{"Skill", "Postings", "Avg Salary"})
		for _, s := range res.salaries {
			tw.Append([]string{s.Skill, fmt.Sprintf("%d", s.Postings), fmt.Sprintf("%.0f", s.AvgSalary)})
		}
		tw.Render()
		fmt.Fprintln(w)
	}
}

func printShortage(w io.Writer, sectors []analytics.SectorIndex) {
	heading(w, "Talent Shortage")
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Sector", "Index", "Posting", "Views", "Applications", "Salary"})
	for _, s := range sectors {
		tw.Append([]string{
			s.Sector,
			fmt.Sprintf("%.2f", s.Index),
			fmt.Sprintf("%.1f", s.PostingScore),
			fmt.Sprintf("%.1f", s.ViewsScore),
			fmt.Sprintf("%.1f", s.AppsScore),
			fmt.Sprintf("%.1f", s.SalaryScore),
		})
	}
	tw.Render()
	fmt.Fprintln(w)
}

func printGrowth(w io.Writer, sectors []analytics.SectorScore) {
	heading(w, "Sector Growth")
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Sector", "Score"})
	for _, s := range sectors {
		tw.Append([]string{s.Sector, fmt.Sprintf("%.2f", s.Score)})
	}
	tw.Render()
	fmt.Fprintln(w)
}

func printRecommendations(w io.Writer, table dataset.Table, advice recommend.Recommendations) {
	heading(w, "Recommendations")
	for _, sector := range advice.HighGrowthSectors {
		fmt.Fprintf(w, "  Growth sector: %s (%.1f)\n", sector.Sector, sector.Score)
	}
	if advice.SalaryPotential > 0 {
		fmt.Fprintf(w, "  Salary potential in growth sectors: %.0f\n", advice.SalaryPotential)
	}
	for _, line := range advice.UpskillOpportunities {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if len(table) == 0 {
		fmt.Fprintln(w, "  No data available.")
	}
	fmt.Fprintln(w)
}
