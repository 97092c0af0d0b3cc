// Package config holds the runtime configuration for douyinsight.
package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for douyinsight.
type Config struct {
	Crawl   CrawlConfig   `mapstructure:"crawl"   yaml:"crawl"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Analyze AnalyzeConfig `mapstructure:"analyze" yaml:"analyze"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// CrawlConfig controls the comment crawl.
type CrawlConfig struct {
	// Mode selects the collection strategy: "api" captures the comment
	// list responses, "dom" extracts visible comments, "both" does both.
	Mode           string        `mapstructure:"mode"             yaml:"mode"`
	MaxComments    int           `mapstructure:"max_comments"     yaml:"max_comments"`
	ScrollInterval time.Duration `mapstructure:"scroll_interval"  yaml:"scroll_interval"`
	IdleRounds     int           `mapstructure:"idle_rounds"      yaml:"idle_rounds"`
	OutputDir      string        `mapstructure:"output_dir"       yaml:"output_dir"`
}

// BrowserConfig controls the automated browser.
type BrowserConfig struct {
	Headless    bool          `mapstructure:"headless"      yaml:"headless"`
	Stealth     bool          `mapstructure:"stealth"       yaml:"stealth"`
	UserDataDir string        `mapstructure:"user_data_dir" yaml:"user_data_dir"`
	LoginWait   time.Duration `mapstructure:"login_wait"    yaml:"login_wait"`
	PageTimeout time.Duration `mapstructure:"page_timeout"  yaml:"page_timeout"`
	WindowSize  string        `mapstructure:"window_size"   yaml:"window_size"`
}

// AnalyzeConfig controls the analysis run.
type AnalyzeConfig struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	TopWords  int    `mapstructure:"top_words"  yaml:"top_words"`
	TopItems  int    `mapstructure:"top_items"  yaml:"top_items"`
}

// StorageConfig controls the archive backends written alongside the CSV.
type StorageConfig struct {
	JSONL           bool   `mapstructure:"jsonl"            yaml:"jsonl"`
	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Crawl: CrawlConfig{
			Mode:           "api",
			MaxComments:    0, // unlimited
			ScrollInterval: 2 * time.Second,
			IdleRounds:     5,
			OutputDir:      "./comments",
		},
		Browser: BrowserConfig{
			Headless:    false, // manual login needs a visible window
			Stealth:     true,
			LoginWait:   120 * time.Second,
			PageTimeout: 30 * time.Second,
		},
		Analyze: AnalyzeConfig{
			OutputDir: "./analysis",
			TopWords:  50,
			TopItems:  20,
		},
		Storage: StorageConfig{
			MongoDatabase:   "douyinsight",
			MongoCollection: "comments",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
