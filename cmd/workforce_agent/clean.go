package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/workforce-insight/internal/export"
	"github.com/jonathan/workforce-insight/internal/report"
	"github.com/jonathan/workforce-insight/internal/snapshot"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a postings dataset and report data quality",
	Long:  "Load a CSV or Parquet postings dataset, apply the cleaning rules, print the quality report, and optionally write the cleaned rows as CSV.",
	RunE:  runClean,
}

var (
	cleanInput  string
	cleanOutput string
	cleanQuiet  bool
)

func init() {
	cleanCmd.Flags().StringVarP(&cleanInput, "input", "i", "", "Path to the postings dataset (CSV or Parquet)")
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "Write cleaned rows as CSV to this path")
	cleanCmd.Flags().BoolVar(&cleanQuiet, "quiet", false, "Suppress the quality report")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	input := cleanInput
	if input == "" {
		input = cfg.Dataset
	}
	if input == "" {
		return fmt.Errorf("--input or a config dataset path is required")
	}

	snap, err := snapshot.Build(input)
	if err != nil {
		return fmt.Errorf("failed to build snapshot: %w", err)
	}

	if !cleanQuiet {
		summary := report.Summarize(snap.RawRows, snap.SkippedRows, snap.Table, snap.Audit)
		report.Render(cmd.OutOrStdout(), summary, snap.Audit)
	}

	if cleanOutput != "" {
		f, err := os.Create(cleanOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if err := export.WriteCSV(f, snap.Table); err != nil {
			return fmt.Errorf("failed to write cleaned CSV: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleaned rows written to %s\n", cleanOutput)
	}

	return nil
}
