package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/workforce-insight/internal/export"
	"github.com/jonathan/workforce-insight/internal/filter"
	"github.com/jonathan/workforce-insight/internal/recommend"
	"github.com/jonathan/workforce-insight/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export cleaned postings and derived reports",
	Long:  "Clean the dataset, apply optional filters, and write the selected format: row-level CSV, a multi-sheet workbook payload, or a market report payload.",
	RunE:  runExport,
}

var (
	exportInput   string
	exportOut     string
	exportFormat  string
	exportFilters filterFlags
)

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "Path to the postings dataset (CSV or Parquet)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Output format: csv, workbook or report")
	exportFilters.register(exportCmd)

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	input := exportInput
	if input == "" {
		input = cfg.Dataset
	}
	if input == "" {
		return fmt.Errorf("--input or a config dataset path is required")
	}
	outDir := exportOut
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	params, err := exportFilters.params()
	if err != nil {
		return err
	}

	snap, err := snapshot.Build(input)
	if err != nil {
		return fmt.Errorf("failed to build snapshot: %w", err)
	}
	table := filter.Apply(snap.Table, params)

	var path string
	switch exportFormat {
	case "csv":
		path = filepath.Join(outDir, "postings.csv")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		if err := export.WriteCSV(f, table); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}

	case "workbook":
		path = filepath.Join(outDir, "workbook.json")
		if err := writeJSON(path, export.BuildWorkbook(table)); err != nil {
			return err
		}

	case "report":
		advice := recommend.Build(table, recommend.Profile{})
		path = filepath.Join(outDir, "report.json")
		if err := writeJSON(path, export.BuildReport(table, advice.UpskillOpportunities)); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown format %q (want csv, workbook or report)", exportFormat)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d postings to %s\n", len(table), path)
	return nil
}

func writeJSON(path string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
