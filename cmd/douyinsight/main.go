package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"douyinsight/internal/config"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "douyinsight",
		Short: "douyinsight — short-video comment scraper and analyzer",
		Long: `douyinsight collects the comment section of a short-video page with an
automated browser and turns the records into descriptive analytics.

Commands:
  crawl    capture comments from a video page into a CSV file
  search   find videos by keyword, optionally crawl one of them
  analyze  run the analyses over a comment CSV and render HTML charts`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(crawlCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("douyinsight %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Crawl:\n")
			fmt.Printf("  Mode:             %s\n", cfg.Crawl.Mode)
			fmt.Printf("  Max Comments:     %d\n", cfg.Crawl.MaxComments)
			fmt.Printf("  Scroll Interval:  %s\n", cfg.Crawl.ScrollInterval)
			fmt.Printf("  Idle Rounds:      %d\n", cfg.Crawl.IdleRounds)
			fmt.Printf("  Output Dir:       %s\n", cfg.Crawl.OutputDir)
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Headless:         %v\n", cfg.Browser.Headless)
			fmt.Printf("  Stealth:          %v\n", cfg.Browser.Stealth)
			fmt.Printf("  Login Wait:       %s\n", cfg.Browser.LoginWait)
			fmt.Printf("  Page Timeout:     %s\n", cfg.Browser.PageTimeout)
			fmt.Printf("\nAnalyze:\n")
			fmt.Printf("  Output Dir:       %s\n", cfg.Analyze.OutputDir)
			fmt.Printf("  Top Words:        %d\n", cfg.Analyze.TopWords)
			fmt.Printf("  Top Items:        %d\n", cfg.Analyze.TopItems)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  JSONL Archive:    %v\n", cfg.Storage.JSONL)
			fmt.Printf("  MongoDB:          %v\n", cfg.Storage.MongoURI != "")
			return nil
		},
	}
}

// setupLogger creates a structured logger.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
