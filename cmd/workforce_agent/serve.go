package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/workforce-insight/internal/config"
	"github.com/jonathan/workforce-insight/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analytics REST API server",
	Long:  `Start an HTTP server that exposes read-only endpoints over the cleaned dataset snapshot: summary, skills, shortage, growth, sectors, trend and CSV export.`,
	RunE:  runServe,
}

var (
	serveAddr     string
	serveDataset  string
	serveTaxonomy string
	serveNoCache  bool
	serveVerbose  bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default localhost:8085)")
	serveCmd.Flags().StringVarP(&serveDataset, "dataset", "d", "", "Path to the postings dataset (CSV or Parquet)")
	serveCmd.Flags().StringVar(&serveTaxonomy, "taxonomy", "", "Path to a skill taxonomy override file")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "Rebuild the snapshot on every request")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadRuntimeConfig()
	if err != nil {
		return err
	}
	flags := config.Config{
		Dataset:      serveDataset,
		Taxonomy:     serveTaxonomy,
		ListenAddr:   serveAddr,
		DisableCache: serveNoCache,
		Verbose:      serveVerbose,
	}
	merged := flags.MergeWithDefaults(cfg)
	if merged.ListenAddr == "" {
		merged.ListenAddr = "localhost:8085"
	}
	if merged.Dataset == "" {
		return fmt.Errorf("--dataset or a config dataset path is required")
	}

	logger, err := newLogger(merged.Verbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	srv, err := server.New(server.Config{
		Addr:            merged.ListenAddr,
		DatasetPath:     merged.Dataset,
		TaxonomyPath:    merged.Taxonomy,
		TopSectors:      merged.TopSectors,
		ShutdownTimeout: time.Duration(merged.ShutdownTimeout) * time.Second,
		DisableCache:    merged.DisableCache || cfg.DisableCache,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
