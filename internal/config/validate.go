package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	switch cfg.Crawl.Mode {
	case "api", "dom", "both":
	default:
		return fmt.Errorf("crawl.mode must be 'api', 'dom' or 'both', got %q", cfg.Crawl.Mode)
	}
	if cfg.Crawl.MaxComments < 0 {
		return fmt.Errorf("crawl.max_comments must be >= 0, got %d", cfg.Crawl.MaxComments)
	}
	if cfg.Crawl.ScrollInterval <= 0 {
		return fmt.Errorf("crawl.scroll_interval must be > 0")
	}
	if cfg.Crawl.IdleRounds < 1 {
		return fmt.Errorf("crawl.idle_rounds must be >= 1, got %d", cfg.Crawl.IdleRounds)
	}
	if cfg.Crawl.OutputDir == "" {
		return fmt.Errorf("crawl.output_dir must not be empty")
	}

	if cfg.Browser.LoginWait < 0 {
		return fmt.Errorf("browser.login_wait must be >= 0")
	}
	if cfg.Browser.PageTimeout <= 0 {
		return fmt.Errorf("browser.page_timeout must be > 0")
	}

	if cfg.Analyze.OutputDir == "" {
		return fmt.Errorf("analyze.output_dir must not be empty")
	}
	if cfg.Analyze.TopWords < 1 {
		return fmt.Errorf("analyze.top_words must be >= 1, got %d", cfg.Analyze.TopWords)
	}
	if cfg.Analyze.TopItems < 1 {
		return fmt.Errorf("analyze.top_items must be >= 1, got %d", cfg.Analyze.TopItems)
	}

	if cfg.Storage.MongoURI != "" {
		if cfg.Storage.MongoDatabase == "" || cfg.Storage.MongoCollection == "" {
			return fmt.Errorf("storage.mongo_database and storage.mongo_collection are required with mongo_uri")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is a crawlable video page address.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must have a host")
	}
	return nil
}
