package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/workforce-insight/internal/dataset"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a CSV dataset to Parquet",
	Long:  "Convert a raw postings CSV to Parquet with Snappy compression and print the size comparison. Rows are converted as-is; run clean for the cleaned table.",
	RunE:  runConvert,
}

var (
	convertInput  string
	convertOutput string
)

func init() {
	convertCmd.Flags().StringVarP(&convertInput, "input", "i", "", "Path to the CSV dataset")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Parquet output path (default: input with .parquet extension)")
	convertCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	output := convertOutput
	if output == "" {
		output = strings.TrimSuffix(convertInput, ".csv") + ".parquet"
	}

	raw, err := dataset.LoadCSV(convertInput)
	if err != nil {
		return fmt.Errorf("failed to load CSV: %w", err)
	}
	if err := dataset.WriteParquet(output, raw); err != nil {
		return fmt.Errorf("failed to write Parquet: %w", err)
	}

	inInfo, err := os.Stat(convertInput)
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}
	outInfo, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("failed to stat output: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Converted %d rows (%d malformed rows skipped)\n", len(raw.Rows), raw.SkippedRows)
	fmt.Fprintf(out, "CSV:     %s (%.1f KB)\n", convertInput, float64(inInfo.Size())/1024)
	fmt.Fprintf(out, "Parquet: %s (%.1f KB)\n", output, float64(outInfo.Size())/1024)
	if inInfo.Size() > 0 {
		saved := (1 - float64(outInfo.Size())/float64(inInfo.Size())) * 100
		fmt.Fprintf(out, "Size reduction: %.1f%%\n", saved)
	}
	return nil
}
