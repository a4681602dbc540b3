// Package main is the entry point for the leadersscraper CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"LeadersScraper/internal/app"
	"LeadersScraper/internal/config"
	"LeadersScraper/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "leadersscraper",
	Short: "Scrape country leaders and enrich them with Wikipedia biographies",
	Long: `leadersscraper pulls the list of countries and their historical leaders
from the country-leaders API, fetches each leader's Wikipedia article, extracts
the first introductory paragraph, and writes the combined dataset to a JSON or
CSV file. Each run rewrites the output wholesale.`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().String("format", "", "output format: json, csv or both")
	rootCmd.Flags().String("output", "", "output file base path (extension set per format)")
	rootCmd.Flags().Int("workers", 0, "parallel biography fetches (1 = sequential)")
	rootCmd.Flags().Int("limit", 0, "max leaders per country (0 = all)")
	rootCmd.Flags().Bool("cache", false, "enable the sqlite biography cache")
	rootCmd.Flags().String("log-level", "", "log level: debug, info, warn, error")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	applyFlags(cmd, &cfg)

	logger := logging.New(cfg.Logging.Level)
	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	return application.Run(cmd.Context())
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		cfg.Output.Format = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Output.Path = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.Scraper.Workers = v
	}
	if v, _ := cmd.Flags().GetInt("limit"); v > 0 {
		cfg.Scraper.LimitPerCountry = v
	}
	if v, _ := cmd.Flags().GetBool("cache"); v {
		cfg.Cache.Enabled = true
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
