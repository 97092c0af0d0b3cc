// Package scraper drives the automated browser against a video page: it
// boots Chromium via rod, waits out the manual login, captures the
// comment-list API responses and extracts visible comments from the DOM.
package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"douyinsight/internal/config"
	"douyinsight/internal/types"
)

// Selectors probed on the live page. The platform renames its CSS classes
// frequently; the data-e2e attributes have been stable for years.
const (
	loggedInSelector    = `[data-e2e="live-avatar"], .avatar--1lh_D`
	commentItemSelector = `[data-e2e="comment-item"]`
)

// Browser wraps one Chromium instance pointed at a video page.
type Browser struct {
	browser *rod.Browser
	cfg     *config.BrowserConfig
	logger  *slog.Logger
}

// NewBrowser launches Chromium and connects to it.
func NewBrowser(cfg *config.BrowserConfig, logger *slog.Logger) (*Browser, error) {
	b := &Browser{
		cfg:    cfg,
		logger: logger.With("component", "browser"),
	}

	launchURL, err := b.launch()
	if err != nil {
		return nil, &types.ScrapeError{Stage: "launch", Err: err}
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, &types.ScrapeError{Stage: "launch", Err: fmt.Errorf("connect browser: %w", err)}
	}
	b.browser = browser

	b.logger.Info("browser ready", "headless", cfg.Headless, "stealth", cfg.Stealth)
	return b, nil
}

func (b *Browser) launch() (string, error) {
	l := launcher.New().
		Headless(b.cfg.Headless).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-setuid-sandbox").
		Set("disable-blink-features", "AutomationControlled")

	if b.cfg.UserDataDir != "" {
		l = l.UserDataDir(b.cfg.UserDataDir)
	}
	if b.cfg.WindowSize != "" {
		l = l.Set("window-size", b.cfg.WindowSize)
	}

	return l.Launch()
}

// OpenPage navigates a fresh page to the URL and waits for it to
// settle.
func (b *Browser) OpenPage(ctx context.Context, pageURL string) (*rod.Page, error) {
	var page *rod.Page
	var err error

	if b.cfg.Stealth {
		page, err = stealth.Page(b.browser)
	} else {
		page, err = b.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	}
	if err != nil {
		return nil, &types.ScrapeError{Stage: "navigate", Err: err}
	}
	page = page.Context(ctx)

	if err := page.Timeout(b.cfg.PageTimeout).Navigate(pageURL); err != nil {
		return nil, &types.ScrapeError{Stage: "navigate", Err: err}
	}
	if err := page.Timeout(b.cfg.PageTimeout).WaitStable(500 * time.Millisecond); err != nil {
		b.logger.Warn("page stability timeout, continuing", "url", pageURL, "error", err)
	}

	return page, nil
}

// WaitForLogin polls the page for a logged-in marker, giving the operator
// time to scan the QR code. A zero login_wait skips the check entirely.
func (b *Browser) WaitForLogin(ctx context.Context, page *rod.Page) error {
	if b.cfg.LoginWait == 0 {
		return nil
	}

	deadline := time.Now().Add(b.cfg.LoginWait)
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	b.logger.Info("waiting for login", "timeout", b.cfg.LoginWait)
	for {
		if has, _, _ := page.Has(loggedInSelector); has {
			b.logger.Info("login detected")
			return nil
		}
		if time.Now().After(deadline) {
			return types.ErrLoginTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close shuts the browser down.
func (b *Browser) Close() error {
	if b.browser != nil {
		return b.browser.Close()
	}
	return nil
}
