// Package config loads the explorer's runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	envcfg "country-explorer/pkg/config"

	"golang.org/x/text/language"
)

// Favorites backends.
const (
	FavoritesBackendFile     = "file"
	FavoritesBackendSQLite   = "sqlite"
	FavoritesBackendPostgres = "postgres"
	FavoritesBackendMemory   = "memory"
)

// News providers.
const (
	NewsProviderNewsAPI = "newsapi"
	NewsProviderRSS     = "rss"
)

// Environment variables holding API credentials. They are read at call time.
const (
	WeatherAPIKeyEnv = "WEATHER_API_KEY"
	NewsAPIKeyEnv    = "NEWS_API_KEY"
)

// ExplorerConfig holds everything the explorer needs to talk to its remote
// sources and to persist favorites.
//
// Environment variables:
//   - RESTCOUNTRIES_BASE_URL (default: https://restcountries.com/v3.1)
//   - OPENWEATHER_BASE_URL (default: https://api.openweathermap.org/data/2.5)
//   - NEWSAPI_BASE_URL (default: https://newsapi.org/v2)
//   - NEWS_PROVIDER: "newsapi" or "rss" (default: newsapi)
//   - NEWS_RSS_URL_TEMPLATE: feed URL with {country} and {COUNTRY} placeholders
//   - HTTP_TIMEOUT: per-request timeout (default: 15s)
//   - OUTBOUND_RATE_LIMIT / OUTBOUND_BURST: token bucket per remote service (default: 5 / 5)
//   - DETAIL_PARALLEL_ENRICHMENT: run weather and news concurrently (default: false)
//   - FAVORITES_BACKEND: "file", "sqlite", "postgres" or "memory" (default: file)
//   - FAVORITES_DIR: directory for the file backend (default: <user config dir>/country-explorer)
//   - FAVORITES_SQLITE_PATH: database file for the sqlite backend (default: <FAVORITES_DIR>/favorites.db)
//   - DATABASE_URL: required when FAVORITES_BACKEND=postgres
//   - COUNTRY_CODE_MAP_FILE: optional YAML overrides for the alpha-3 to alpha-2 table
//   - COLLATION_LOCALE: BCP 47 tag used for name ordering (default: en)
//   - METRICS_PORT: metrics/health listener port, 0 disables it (default: 0)
type ExplorerConfig struct {
	RestCountriesBaseURL string
	OpenWeatherBaseURL   string
	NewsAPIBaseURL       string
	NewsProvider         string
	NewsRSSURLTemplate   string

	HTTPTimeout       time.Duration
	OutboundRateLimit float64
	OutboundBurst     int

	ParallelEnrichment bool

	FavoritesBackend string
	FavoritesDir     string
	SQLitePath       string
	DatabaseURL      string

	CountryCodeMapFile string
	CollationLocale    string

	MetricsPort int
}

// DefaultExplorerConfig returns the configuration used when no variables are set.
func DefaultExplorerConfig() ExplorerConfig {
	return ExplorerConfig{
		RestCountriesBaseURL: "https://restcountries.com/v3.1",
		OpenWeatherBaseURL:   "https://api.openweathermap.org/data/2.5",
		NewsAPIBaseURL:       "https://newsapi.org/v2",
		NewsProvider:         NewsProviderNewsAPI,
		NewsRSSURLTemplate:   "https://news.google.com/rss?hl=en-{COUNTRY}&gl={COUNTRY}&ceid={COUNTRY}:en",
		HTTPTimeout:          15 * time.Second,
		OutboundRateLimit:    5,
		OutboundBurst:        5,
		ParallelEnrichment:   false,
		FavoritesBackend:     FavoritesBackendFile,
		FavoritesDir:         defaultFavoritesDir(),
		CollationLocale:      "en",
		MetricsPort:          0,
	}
}

// LoadExplorerConfig loads the configuration from environment variables on top
// of DefaultExplorerConfig and validates the result.
func LoadExplorerConfig() (ExplorerConfig, error) {
	d := DefaultExplorerConfig()

	cfg := ExplorerConfig{
		RestCountriesBaseURL: strings.TrimRight(envcfg.GetEnvString("RESTCOUNTRIES_BASE_URL", d.RestCountriesBaseURL), "/"),
		OpenWeatherBaseURL:   strings.TrimRight(envcfg.GetEnvString("OPENWEATHER_BASE_URL", d.OpenWeatherBaseURL), "/"),
		NewsAPIBaseURL:       strings.TrimRight(envcfg.GetEnvString("NEWSAPI_BASE_URL", d.NewsAPIBaseURL), "/"),
		NewsProvider:         strings.ToLower(envcfg.GetEnvString("NEWS_PROVIDER", d.NewsProvider)),
		NewsRSSURLTemplate:   envcfg.GetEnvString("NEWS_RSS_URL_TEMPLATE", d.NewsRSSURLTemplate),
		HTTPTimeout:          envcfg.GetEnvDuration("HTTP_TIMEOUT", d.HTTPTimeout),
		OutboundRateLimit:    envcfg.GetEnvFloat("OUTBOUND_RATE_LIMIT", d.OutboundRateLimit),
		OutboundBurst:        envcfg.GetEnvInt("OUTBOUND_BURST", d.OutboundBurst),
		ParallelEnrichment:   envcfg.GetEnvBool("DETAIL_PARALLEL_ENRICHMENT", d.ParallelEnrichment),
		FavoritesBackend:     strings.ToLower(envcfg.GetEnvString("FAVORITES_BACKEND", d.FavoritesBackend)),
		FavoritesDir:         envcfg.GetEnvString("FAVORITES_DIR", d.FavoritesDir),
		SQLitePath:           envcfg.GetEnvString("FAVORITES_SQLITE_PATH", ""),
		DatabaseURL:          envcfg.GetEnvString("DATABASE_URL", ""),
		CountryCodeMapFile:   envcfg.GetEnvString("COUNTRY_CODE_MAP_FILE", ""),
		CollationLocale:      envcfg.GetEnvString("COLLATION_LOCALE", d.CollationLocale),
		MetricsPort:          envcfg.GetEnvInt("METRICS_PORT", d.MetricsPort),
	}

	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.FavoritesDir, "favorites.db")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the explorer cannot run with.
func (c *ExplorerConfig) Validate() error {
	var errs []error

	if c.RestCountriesBaseURL == "" {
		errs = append(errs, errors.New("RESTCOUNTRIES_BASE_URL is required"))
	}
	if err := envcfg.ValidateOneOf("NEWS_PROVIDER", c.NewsProvider, NewsProviderNewsAPI, NewsProviderRSS); err != nil {
		errs = append(errs, err)
	}
	if c.NewsProvider == NewsProviderRSS && !strings.Contains(strings.ToLower(c.NewsRSSURLTemplate), "{country}") {
		errs = append(errs, errors.New("NEWS_RSS_URL_TEMPLATE must contain a {country} or {COUNTRY} placeholder"))
	}
	if err := envcfg.ValidatePositiveDuration(c.HTTPTimeout); err != nil {
		errs = append(errs, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err))
	}
	if c.OutboundRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("OUTBOUND_RATE_LIMIT must be positive, got %v", c.OutboundRateLimit))
	}
	if c.OutboundBurst < 1 {
		errs = append(errs, fmt.Errorf("OUTBOUND_BURST must be at least 1, got %d", c.OutboundBurst))
	}
	if err := envcfg.ValidateOneOf("FAVORITES_BACKEND", c.FavoritesBackend,
		FavoritesBackendFile, FavoritesBackendSQLite, FavoritesBackendPostgres, FavoritesBackendMemory); err != nil {
		errs = append(errs, err)
	}
	if c.FavoritesBackend == FavoritesBackendFile && c.FavoritesDir == "" {
		errs = append(errs, errors.New("FAVORITES_DIR is required for the file backend"))
	}
	if c.FavoritesBackend == FavoritesBackendSQLite && c.SQLitePath == "" {
		errs = append(errs, errors.New("FAVORITES_SQLITE_PATH is required for the sqlite backend"))
	}
	if c.FavoritesBackend == FavoritesBackendPostgres && c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
	}
	if _, err := language.Parse(c.CollationLocale); err != nil {
		errs = append(errs, fmt.Errorf("invalid COLLATION_LOCALE %q: %w", c.CollationLocale, err))
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("METRICS_PORT must be between 0 and 65535, got %d", c.MetricsPort))
	}

	return errors.Join(errs...)
}

// Collation returns the parsed collation locale, falling back to English.
func (c *ExplorerConfig) Collation() language.Tag {
	tag, err := language.Parse(c.CollationLocale)
	if err != nil {
		return language.English
	}
	return tag
}

func defaultFavoritesDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "country-explorer")
	}
	return filepath.Join(dir, "country-explorer")
}
