package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application-level configuration
type Config struct {
	// Database
	DatabaseURL string

	// Browser session
	ProxyURL string
	Headless bool

	// Scraper
	SearchQueries   []string
	MinDelayMs      int // lower bound for randomized inter-action pause
	MaxDelayMs      int // upper bound for randomized inter-action pause
	MaxRetries      int
	ScrollStability int // consecutive same-count scroll iterations before stopping
	MaxScrollIters  int

	// Output
	CSVFilePath string

	// Environment
	AppEnv string
}

// Load reads configuration from environment variables or falls back to
// defaults. DATABASE_URL has no default: the run cannot do anything useful
// without a datastore, so a missing value is an error.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		ProxyURL:        getEnv("PROXY_URL", ""),
		Headless:        getEnvBool("HEADLESS", true),
		SearchQueries:   splitQueries(getEnv("SEARCH_QUERIES", "hotels in Varkala,resorts in Varkala,homestays in Varkala")),
		MinDelayMs:      getEnvInt("MIN_DELAY_MS", 2000),
		MaxDelayMs:      getEnvInt("MAX_DELAY_MS", 5000),
		MaxRetries:      getEnvInt("MAX_RETRIES", 3),
		ScrollStability: getEnvInt("SCROLL_STABILITY", 3),
		MaxScrollIters:  getEnvInt("MAX_SCROLL_ITERS", 25),
		CSVFilePath:     getEnv("CSV_FILE_PATH", "output/stays.csv"),
		AppEnv:          getEnv("APP_ENV", "dev"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.MaxDelayMs < cfg.MinDelayMs {
		cfg.MaxDelayMs = cfg.MinDelayMs
	}
	return cfg, nil
}

func splitQueries(raw string) []string {
	var queries []string
	for _, q := range strings.Split(raw, ",") {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	return queries
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
