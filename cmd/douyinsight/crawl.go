package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"douyinsight/internal/config"
	"douyinsight/internal/normalize"
	"douyinsight/internal/scraper"
	"douyinsight/internal/session"
	"douyinsight/internal/storage"
	"douyinsight/internal/types"
)

var (
	crawlOutputDir string
	crawlMode      string
	crawlMax       int
	crawlHeadless  bool
	crawlJSONL     bool
	crawlMongoURI  string
)

// crawlCmd creates the "crawl" subcommand.
func crawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [video-url]",
		Short: "Capture comments from a video page",
		Long: `Open the video page in an automated browser, wait for login, then
collect comments while scrolling. Records stream into a CSV file as they
arrive; Ctrl-C stops the crawl and leaves a valid file.`,
		Args: cobra.ExactArgs(1),
		RunE: runCrawl,
	}

	cmd.Flags().StringVarP(&crawlOutputDir, "output", "o", "", "output directory for the comment CSV")
	cmd.Flags().StringVarP(&crawlMode, "mode", "m", "", "collection mode: api, dom, both")
	cmd.Flags().IntVar(&crawlMax, "max-comments", -1, "stop after this many comments (0 = unlimited)")
	cmd.Flags().BoolVar(&crawlHeadless, "headless", false, "run the browser headless (skips the login wait)")
	cmd.Flags().BoolVar(&crawlJSONL, "jsonl", false, "also write a JSONL archive next to the CSV")
	cmd.Flags().StringVar(&crawlMongoURI, "mongo-uri", "", "also archive comments to this MongoDB instance")

	return cmd
}

func runCrawl(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyCrawlOverrides(cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	videoURL := args[0]
	if err := config.ValidateURL(videoURL); err != nil {
		return fmt.Errorf("invalid URL %q: %w", videoURL, err)
	}

	return crawlVideo(cfg, videoURL, logger)
}

// crawlVideo runs one full crawl of videoURL: browser, collector, the
// session writer and the storage fan-out. Shared with the search
// command's crawl handoff.
func crawlVideo(cfg *config.Config, videoURL string, logger *slog.Logger) error {
	store, csvPath, err := buildStorage(cfg, videoURL, logger)
	if err != nil {
		return err
	}

	browser, err := scraper.NewBrowser(&cfg.Browser, logger)
	if err != nil {
		return err
	}
	defer browser.Close()

	sess := session.New(normalize.New(), logger)
	collector := scraper.NewCollector(browser, &cfg.Crawl, &cfg.Browser, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting crawl", "url", videoURL, "mode", cfg.Crawl.Mode, "output", csvPath)

	raws := make(chan types.RawComment, 256)
	errCh := make(chan error, 1)
	go func() {
		errCh <- collector.Run(ctx, videoURL, raws, func() int {
			return int(sess.Stats().Accepted.Load())
		})
	}()

	// Single writer: every fully processed record is normalized,
	// deduplicated and flushed to disk before the next one is read, so a
	// SIGINT mid-crawl never truncates a row.
	start := time.Now()
	for raw := range raws {
		c, ok := sess.Add(raw)
		if !ok {
			continue
		}
		if err := store.Store([]*types.Comment{c}); err != nil {
			logger.Error("store failed", "error", err)
		}
	}

	crawlErr := <-errCh
	if closeErr := store.Close(); closeErr != nil {
		logger.Error("storage close failed", "error", closeErr)
	}

	stats := sess.Stats().Snapshot()
	logger.Info("crawl finished",
		"elapsed", time.Since(start).Round(time.Millisecond),
		"accepted", stats["accepted"],
		"duplicates", stats["duplicates"],
		"synthetic_ids", stats["synthetic_ids"],
		"unknown_timestamps", stats["unknown_timestamps"],
	)

	fmt.Printf("\nCollected %d comments (%d duplicates skipped)\n", stats["accepted"], stats["duplicates"])
	fmt.Printf("CSV: %s\n", csvPath)

	if crawlErr != nil && !errors.Is(crawlErr, context.Canceled) {
		return crawlErr
	}
	if sess.Len() == 0 {
		logger.Warn("no comments collected", "hint", "check login state and the comment panel")
	}
	return nil
}

// buildStorage assembles the CSV writer plus any optional archive
// backends behind a fan-out.
func buildStorage(cfg *config.Config, videoURL string, logger *slog.Logger) (storage.Storage, string, error) {
	csvPath := storage.OutputPath(cfg.Crawl.OutputDir, videoSlug(videoURL), time.Now())

	csvStore, err := storage.NewCSVStorage(csvPath, logger)
	if err != nil {
		return nil, "", fmt.Errorf("create CSV storage: %w", err)
	}

	backends := []storage.Storage{csvStore}
	if cfg.Storage.JSONL {
		jsonlPath := strings.TrimSuffix(csvPath, ".csv") + ".jsonl"
		jsonlStore, err := storage.NewJSONLStorage(jsonlPath, logger)
		if err != nil {
			csvStore.Close()
			return nil, "", fmt.Errorf("create JSONL storage: %w", err)
		}
		backends = append(backends, jsonlStore)
	}
	if cfg.Storage.MongoURI != "" {
		mongoStore, err := storage.NewMongoStorage(cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, cfg.Storage.MongoCollection, logger)
		if err != nil {
			csvStore.Close()
			return nil, "", fmt.Errorf("create MongoDB storage: %w", err)
		}
		backends = append(backends, mongoStore)
	}

	if len(backends) == 1 {
		return csvStore, csvPath, nil
	}
	return storage.NewMultiStorage(backends, logger), csvPath, nil
}

// videoSlug derives the CSV file name stem from the video URL, usually
// the video ID.
func videoSlug(videoURL string) string {
	u, err := url.Parse(videoURL)
	if err != nil {
		return "comments"
	}
	slug := path.Base(strings.TrimSuffix(u.Path, "/"))
	if slug == "" || slug == "." || slug == "/" {
		return "comments"
	}
	return slug
}

// applyCrawlOverrides applies command-line flag values to the config.
func applyCrawlOverrides(cfg *config.Config) {
	if crawlOutputDir != "" {
		cfg.Crawl.OutputDir = crawlOutputDir
	}
	if crawlMode != "" {
		cfg.Crawl.Mode = strings.ToLower(crawlMode)
	}
	if crawlMax >= 0 {
		cfg.Crawl.MaxComments = crawlMax
	}
	if crawlHeadless {
		cfg.Browser.Headless = true
		cfg.Browser.LoginWait = 0
	}
	if crawlJSONL {
		cfg.Storage.JSONL = true
	}
	if crawlMongoURI != "" {
		cfg.Storage.MongoURI = crawlMongoURI
	}
}
