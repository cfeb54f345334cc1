package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config is the persistent application configuration
type Config struct {
	// Database path for the document cache
	CachePath string `json:"cache_path"`

	// Fetch tuning
	Fetch FetchConfig `json:"fetch"`

	// Cache entry time-to-live
	CacheTTL Duration `json:"cache_ttl"`

	// Feed sources consulted by the feed search provider
	FeedSources []FeedSource `json:"feed_sources"`
}

// FetchConfig tunes the fetch orchestrator
type FetchConfig struct {
	// MaxConcurrent bounds simultaneous in-flight fetches
	MaxConcurrent int `json:"max_concurrent"`

	// MaxAttempts caps retries per URL (first try included)
	MaxAttempts int `json:"max_attempts"`

	// RetryBaseDelay is the first backoff delay; doubles per attempt
	RetryBaseDelay Duration `json:"retry_base_delay"`

	// Timeout for a single HTTP fetch
	Timeout Duration `json:"timeout"`

	// RatePerSecond limits outbound requests across the whole task
	RatePerSecond float64 `json:"rate_per_second"`
}

// FeedSource is one feed consulted by the feed search provider
type FeedSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Duration wraps time.Duration for JSON round-tripping as a string
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		CachePath: filepath.Join(home, ".scout", "cache.db"),
		Fetch: FetchConfig{
			MaxConcurrent:  5,
			MaxAttempts:    4,
			RetryBaseDelay: Duration(time.Second),
			Timeout:        Duration(30 * time.Second),
			RatePerSecond:  8,
		},
		CacheTTL: Duration(24 * time.Hour),
		FeedSources: []FeedSource{
			{Name: "Hacker News", URL: "https://news.ycombinator.com/rss"},
			{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
			{Name: "NPR News", URL: "https://feeds.npr.org/1001/rss.xml"},
			{Name: "ArXiv CS", URL: "https://rss.arxiv.org/rss/cs"},
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".scout", "config.json")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
