package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"douyinsight/internal/analysis"
	"douyinsight/internal/charts"
	"douyinsight/internal/config"
	"douyinsight/internal/storage"
	"douyinsight/internal/types"
)

var (
	analyzeOutputDir string
	analyzeCSVDir    string
	analyzeTopWords  int
)

// analyzeCmd creates the "analyze" subcommand.
func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [csv-file]",
		Short: "Analyze a comment CSV and render HTML charts",
		Long: `Load a comment CSV (the newest one in the comments dir when no file is
given), run the analyses and write chart HTML files into the output dir.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeOutputDir, "output", "o", "", "output directory for chart HTML files")
	cmd.Flags().StringVar(&analyzeCSVDir, "comments-dir", "", "directory searched for the newest comment CSV")
	cmd.Flags().IntVar(&analyzeTopWords, "top-words", 0, "number of hot words to chart")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if analyzeOutputDir != "" {
		cfg.Analyze.OutputDir = analyzeOutputDir
	}
	if analyzeCSVDir != "" {
		cfg.Crawl.OutputDir = analyzeCSVDir
	}
	if analyzeTopWords > 0 {
		cfg.Analyze.TopWords = analyzeTopWords
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	csvPath, err := resolveCSVPath(cfg, args)
	if err != nil {
		return err
	}

	comments, err := storage.ReadCSV(csvPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", csvPath, err)
	}
	if len(comments) == 0 {
		logger.Warn("dataset is empty, nothing to chart", "csv", csvPath, "error", types.ErrEmptyDataset)
		return nil
	}

	logger.Info("analyzing comments", "csv", csvPath, "comments", len(comments))

	authors := storage.KnownAuthors(comments)
	graph := analysis.BuildReplyGraph(comments, authors)
	influence := analysis.ScoreInfluence(comments)

	report := &charts.Report{
		Sentiment: analysis.SentimentDistribution(comments),
		Topics:    analysis.CountTopics(comments, analysis.DefaultTopicCategories),
		Tags:      analysis.CountTopics(comments, analysis.ContentTagCategories),
		Styles:    analysis.CountTopics(comments, analysis.LanguageStyleCategories),
		Regions:   analysis.RegionDistribution(comments, 15),
		Provinces: analysis.ProvinceRollup(comments),
		Hashtags:  analysis.Hashtags(comments, cfg.Analyze.TopItems),
		HotWords:  analysis.HotWords(comments, cfg.Analyze.TopWords),
		Hours:     analysis.HourDistribution(comments),
		Activity:  analysis.ActivityDistribution(comments),
		Trend:     analysis.DailyTopicTrend(comments, analysis.DefaultTopicCategories),
		Influence: influence,
		Graph:     graph,
	}

	renderer := charts.NewRenderer(cfg.Analyze.OutputDir, logger)
	written, err := renderer.Render(report)
	if err != nil {
		return fmt.Errorf("render charts: %w", err)
	}

	leaders := 0
	for _, node := range graph.Nodes {
		if graph.HighInfluence(node) {
			leaders++
		}
	}

	logger.Info("analysis complete",
		"comments", len(comments),
		"authors", len(authors),
		"reply_edges", len(graph.Edges),
		"opinion_leaders", leaders,
		"charts", len(written),
	)

	fmt.Printf("\nAnalyzed %d comments from %d authors\n", len(comments), len(authors))
	fmt.Printf("Reply edges: %d, opinion leaders: %d\n", len(graph.Edges), leaders)
	if len(influence) > 0 {
		top := influence[0]
		fmt.Printf("Most influential: %s (score %.1f, %d comments, %d likes)\n",
			top.AuthorName, top.Score, top.CommentCount, top.TotalLikes)
	}
	for _, path := range written {
		fmt.Printf("Chart: %s\n", path)
	}
	return nil
}

// resolveCSVPath picks the explicit CSV argument or falls back to the
// newest file in the comments dir.
func resolveCSVPath(cfg *config.Config, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	csvPath, err := storage.FindLatestCSV(cfg.Crawl.OutputDir)
	if err != nil {
		if errors.Is(err, types.ErrNoCSVFound) {
			return "", fmt.Errorf("%w in %s (run crawl first or pass a CSV path)", err, cfg.Crawl.OutputDir)
		}
		return "", err
	}
	return csvPath, nil
}
