package config

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad mode", func(c *Config) { c.Crawl.Mode = "turbo" }, "crawl.mode"},
		{"negative max", func(c *Config) { c.Crawl.MaxComments = -1 }, "max_comments"},
		{"zero interval", func(c *Config) { c.Crawl.ScrollInterval = 0 }, "scroll_interval"},
		{"no output dir", func(c *Config) { c.Crawl.OutputDir = "" }, "output_dir"},
		{"zero page timeout", func(c *Config) { c.Browser.PageTimeout = 0 }, "page_timeout"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"mongo without db", func(c *Config) {
			c.Storage.MongoURI = "mongodb://localhost"
			c.Storage.MongoDatabase = ""
		}, "mongo_database"},
		{"zero top words", func(c *Config) { c.Analyze.TopWords = 0 }, "top_words"},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := Validate(cfg)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.want)
		}
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://www.douyin.com/video/7100000000000000000",
		"http://example.com/video/1",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}

	invalid := []string{
		"ftp://example.com/x",
		"not a url at all://",
		"https://",
	}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", u)
		}
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Crawl.Mode != "api" {
		t.Errorf("crawl.mode = %q, want api", cfg.Crawl.Mode)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want info", cfg.Logging.Level)
	}
}
