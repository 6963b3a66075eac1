// Package main provides the entry point for the workforce insight CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/workforce-insight/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "workforce_agent",
	Short: "Workforce Insight analytics toolkit",
	Long:  "Workforce Insight cleans job posting datasets and derives skill demand, talent shortage and sector growth metrics, via CLI commands or a REST API.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadRuntimeConfig reads the optional config file and validates it. With no
// file an empty config is returned and flags supply everything.
func loadRuntimeConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("WORKFORCE_CONFIG")
	}
	if path == "" {
		return config.Config{}, nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

// newLogger builds the process logger. Verbose runs use the human-readable
// development encoder at debug level.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
