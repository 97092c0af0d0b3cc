package scraper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-rod/rod"

	"douyinsight/internal/config"
	"douyinsight/internal/types"
)

// Collector runs one crawl against one video page and emits every raw
// comment it collects. The receiver side (the session writer) owns
// normalization, deduplication and persistence.
type Collector struct {
	browser *Browser
	cfg     *config.CrawlConfig
	pageCfg *config.BrowserConfig
	logger  *slog.Logger

	// domSeen suppresses re-emission of comments that stay visible
	// across scroll rounds. DOM records have no comment ID, so the
	// (nickname, content) pair is the best available key.
	domSeen map[string]struct{}
}

func NewCollector(browser *Browser, crawlCfg *config.CrawlConfig, browserCfg *config.BrowserConfig, logger *slog.Logger) *Collector {
	return &Collector{
		browser: browser,
		cfg:     crawlCfg,
		pageCfg: browserCfg,
		logger:  logger.With("component", "collector"),
		domSeen: make(map[string]struct{}),
	}
}

// Run crawls the video page until the context is cancelled, the comment
// limit is reached, or the page stops yielding new comments. Every raw
// comment goes to out; out is closed before Run returns. progress must
// report the receiver's accepted count and be safe to call concurrently.
func (c *Collector) Run(ctx context.Context, videoURL string, out chan<- types.RawComment, progress func() int) error {
	defer close(out)

	emit := func(raw types.RawComment) {
		select {
		case out <- raw:
		case <-ctx.Done():
		}
	}

	page, err := c.browser.OpenPage(ctx, videoURL)
	if err != nil {
		return err
	}
	defer page.Close()

	if err := c.browser.WaitForLogin(ctx, page); err != nil {
		return err
	}

	captureAPI := c.cfg.Mode == "api" || c.cfg.Mode == "both"
	extractDOM := c.cfg.Mode == "dom" || c.cfg.Mode == "both"

	if captureAPI {
		capturer, err := StartCapture(page, func(raw types.RawNetworkComment) { emit(raw) }, c.logger)
		if err != nil {
			return err
		}
		defer capturer.Stop()
	}

	if err := openCommentPanel(page, c.pageCfg.PageTimeout); err != nil {
		// API capture can still work when the panel opened on its own
		// and only the probe selector missed.
		if !captureAPI || !errors.Is(err, types.ErrNoCommentPanel) {
			return err
		}
		c.logger.Warn("comment panel probe failed, continuing", "error", err)
	}

	c.logger.Info("crawl started", "url", videoURL, "mode", c.cfg.Mode)
	return c.scrollLoop(ctx, page, emit, extractDOM, progress)
}

func (c *Collector) scrollLoop(ctx context.Context, page *rod.Page, emit func(types.RawComment), extractDOM bool, progress func() int) error {
	ticker := time.NewTicker(c.cfg.ScrollInterval)
	defer ticker.Stop()

	last := progress()
	idle := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if _, err := page.Eval(scrollJS); err != nil {
			c.logger.Warn("scroll eval failed", "error", err)
		}

		if extractDOM {
			if _, err := page.Eval(expandRepliesJS); err != nil {
				c.logger.Warn("reply expansion failed", "error", err)
			}
			c.extractVisible(page, emit)
		}

		now := progress()
		if c.cfg.MaxComments > 0 && now >= c.cfg.MaxComments {
			c.logger.Info("comment limit reached", "total", now)
			return nil
		}
		if now == last {
			idle++
			if idle >= c.cfg.IdleRounds {
				c.logger.Info("no new comments, stopping", "total", now, "idle_rounds", idle)
				return nil
			}
			continue
		}
		idle = 0
		last = now
	}
}

func (c *Collector) extractVisible(page *rod.Page, emit func(types.RawComment)) {
	pageHTML, err := page.HTML()
	if err != nil {
		c.logger.Warn("page snapshot failed", "error", err)
		return
	}

	raws, err := ExtractComments(pageHTML)
	if err != nil {
		c.logger.Warn("dom extraction failed", "error", err)
		return
	}

	fresh := 0
	for _, raw := range raws {
		key := raw.Nickname + "\x00" + raw.Content
		if _, ok := c.domSeen[key]; ok {
			continue
		}
		c.domSeen[key] = struct{}{}
		emit(raw)
		fresh++
	}
	if fresh > 0 {
		c.logger.Debug("dom comments extracted", "visible", len(raws), "fresh", fresh)
	}
}
