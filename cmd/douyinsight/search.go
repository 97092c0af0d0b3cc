package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"douyinsight/internal/config"
	"douyinsight/internal/scraper"
)

var (
	searchMax   int
	searchCrawl bool
)

// searchCmd creates the "search" subcommand.
func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Search videos by keyword",
		Long: `Open the video search page for a keyword in the automated browser,
scroll the result list, and print the videos found. With --crawl, pick
one of the results and crawl its comment section right away.`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVarP(&searchMax, "max-videos", "n", 10, "maximum number of search results")
	cmd.Flags().BoolVar(&searchCrawl, "crawl", false, "pick a result and crawl its comments")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	keyword := strings.TrimSpace(args[0])

	browser, err := scraper.NewBrowser(&cfg.Browser, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	searcher := scraper.NewSearcher(browser, logger)
	results, err := searcher.Search(ctx, keyword, searchMax)
	if err != nil {
		browser.Close()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	if len(results) == 0 {
		browser.Close()
		fmt.Printf("No videos found for %q\n", keyword)
		return nil
	}

	fmt.Printf("\nSearch results for %q:\n", keyword)
	for i, v := range results {
		title := v.Title
		if title == "" {
			title = v.URL
		}
		fmt.Printf("\n[%d] %s\n", i+1, title)
		if v.Author != "" {
			fmt.Printf("    作者: %s\n", v.Author)
		}
		fmt.Printf("    链接: %s\n", v.URL)
	}

	if !searchCrawl {
		browser.Close()
		return nil
	}

	selected, ok := selectResult(results)
	// The search browser is closed either way; the crawl launches its
	// own instance against the same user data dir, so the login session
	// carries over.
	browser.Close()
	if !ok {
		return nil
	}

	if err := config.ValidateURL(selected.URL); err != nil {
		return fmt.Errorf("invalid result URL %q: %w", selected.URL, err)
	}

	fmt.Printf("\nCrawling comments of: %s\n", selected.URL)
	return crawlVideo(cfg, selected.URL, logger)
}

// selectResult prompts for a result number on stdin. An empty line
// cancels.
func selectResult(results []scraper.VideoResult) (scraper.VideoResult, bool) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("\nSelect a video to crawl [1-%d, Enter to quit]: ", len(results))
		line, err := reader.ReadString('\n')
		if err != nil {
			return scraper.VideoResult{}, false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return scraper.VideoResult{}, false
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(results) {
			fmt.Printf("Enter a number between 1 and %d\n", len(results))
			continue
		}
		return results[n-1], true
	}
}
