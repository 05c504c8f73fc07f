package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr          string        `yaml:"http_addr"`
	LogLevel          slog.Level    `yaml:"-"`
	RawLogLevel       string        `yaml:"log_level"`
	WikiBaseURL       string        `yaml:"wiki_base_url"`
	WikiUserAgent     string        `yaml:"wiki_user_agent"`
	WikiTimeout       time.Duration `yaml:"wiki_timeout"`
	CachePath         string        `yaml:"cache_path"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	WatchDir          string        `yaml:"watch_dir"`
	ScrapeConcurrency int           `yaml:"scrape_concurrency"`
}

func defaults() Config {
	return Config{
		HTTPAddr:          ":3001",
		RawLogLevel:       "info",
		WikiBaseURL:       "https://wiki.dominionstrategy.com",
		WikiUserAgent:     "Dominion Wiki Dev Scraper (https://github.com/mplewis/dominion-strategy-wiki)",
		WikiTimeout:       30 * time.Second,
		CacheTTL:          7 * 24 * time.Hour,
		ScrapeConcurrency: 4,
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (Config, error) {
	c := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := c.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	c.HTTPAddr = envOr("HTTP_ADDR", c.HTTPAddr)
	c.RawLogLevel = envOr("LOG_LEVEL", c.RawLogLevel)
	c.WikiBaseURL = strings.TrimRight(envOr("WIKI_BASE_URL", c.WikiBaseURL), "/")
	c.WikiUserAgent = envOr("WIKI_USER_AGENT", c.WikiUserAgent)
	c.CachePath = envOr("CACHE_PATH", c.CachePath)
	c.WatchDir = envOr("WATCH_DIR", c.WatchDir)

	var err error
	if c.WikiTimeout, err = envDuration("WIKI_TIMEOUT", c.WikiTimeout); err != nil {
		return Config{}, err
	}
	if c.CacheTTL, err = envDuration("CACHE_TTL", c.CacheTTL); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("SCRAPE_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, fmt.Errorf("invalid SCRAPE_CONCURRENCY %q", v)
		}
		c.ScrapeConcurrency = n
	}

	level, err := parseLogLevel(c.RawLogLevel)
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

// ParseLogLevel accepts debug, info, warn or error.
func ParseLogLevel(s string) (slog.Level, error) { return parseLogLevel(s) }

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
