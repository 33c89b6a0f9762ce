package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Redis configuration (optional price cache backend)
	Redis RedisConfig

	// External service configurations
	Yahoo   YahooConfig
	Finnhub FinnhubConfig
	Alpaca  AlpacaConfig

	// Quote resolution configuration
	Quotes QuotesConfig

	// Scanner configuration
	Scanner ScannerConfig

	// Summary refresh configuration
	Refresh RefreshConfig

	// HTTP configuration
	HTTP HTTPConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// YahooConfig holds Yahoo Finance endpoint configuration
type YahooConfig struct {
	BaseURL string
}

// FinnhubConfig holds Finnhub API configuration
type FinnhubConfig struct {
	APIKey  string
	BaseURL string
}

// AlpacaConfig holds Alpaca market-data configuration
type AlpacaConfig struct {
	APIKey    string
	APISecret string
}

// QuotesConfig controls quote resolution and caching
type QuotesConfig struct {
	Provider string        // yahoo or alpaca
	CacheTTL time.Duration // price cache freshness window
}

// ScannerConfig holds scanner filter configuration
type ScannerConfig struct {
	MarketCapMin    int64   // Minimum market cap filter (default: 1B)
	MaxDeviationPct float64 // Max |price deviation from the 150-day MA| in percent (default: 5)
	MaxConcurrent   int     // Max concurrent indicator fetches (default: 8)
	FetchTimeoutSec int     // Timeout for a full scan in seconds (default: 120)
}

// RefreshConfig holds the background summary refresh configuration
type RefreshConfig struct {
	Enabled  bool
	Interval time.Duration
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Addr               string
	CORSAllowedOrigins string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvIntAllowZero("REDIS_DB", 0),
		},
		Yahoo: YahooConfig{
			BaseURL: getEnvString("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
		},
		Finnhub: FinnhubConfig{
			APIKey:  os.Getenv("FINNHUB_API_KEY"),
			BaseURL: getEnvString("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
		},
		Alpaca: AlpacaConfig{
			APIKey:    os.Getenv("ALPACA_API_KEY"),
			APISecret: os.Getenv("ALPACA_API_SECRET"),
		},
		Quotes: QuotesConfig{
			Provider: getEnvString("QUOTE_PROVIDER", "yahoo"),
			CacheTTL: time.Duration(getEnvInt("PRICE_CACHE_TTL_SECONDS", 600)) * time.Second,
		},
		Scanner: ScannerConfig{
			MarketCapMin:    int64(getEnvInt("SCANNER_MARKET_CAP_MIN", 1_000_000_000)),
			MaxDeviationPct: getEnvFloatUnbounded("SCANNER_MAX_DEVIATION_PCT", 5),
			MaxConcurrent:   getEnvInt("SCANNER_MAX_CONCURRENT", 8),
			FetchTimeoutSec: getEnvInt("SCANNER_FETCH_TIMEOUT_SEC", 120),
		},
		Refresh: RefreshConfig{
			Enabled:  getEnvBool("SUMMARY_REFRESH_ENABLED", true),
			Interval: time.Duration(getEnvInt("SUMMARY_REFRESH_INTERVAL_SECONDS", 10)) * time.Second,
		},
		HTTP: HTTPConfig{
			Addr:               getEnvString("HTTP_ADDR", ":8080"),
			CORSAllowedOrigins: getEnvString("CORS_ALLOWED_ORIGINS", "*"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Quotes.Provider != "yahoo" && c.Quotes.Provider != "alpaca" {
		return fmt.Errorf("QUOTE_PROVIDER must be yahoo or alpaca, got %q", c.Quotes.Provider)
	}
	if c.Quotes.Provider == "alpaca" && !c.HasAlpaca() {
		return fmt.Errorf("QUOTE_PROVIDER=alpaca requires ALPACA_API_KEY and ALPACA_API_SECRET")
	}
	if c.Quotes.CacheTTL <= 0 {
		return fmt.Errorf("PRICE_CACHE_TTL_SECONDS must be positive, got %v", c.Quotes.CacheTTL)
	}
	if c.Scanner.MarketCapMin <= 0 {
		return fmt.Errorf("SCANNER_MARKET_CAP_MIN must be positive, got %d", c.Scanner.MarketCapMin)
	}
	if c.Scanner.MaxDeviationPct <= 0 {
		return fmt.Errorf("SCANNER_MAX_DEVIATION_PCT must be positive, got %.2f", c.Scanner.MaxDeviationPct)
	}
	if c.Scanner.MaxConcurrent <= 0 {
		return fmt.Errorf("SCANNER_MAX_CONCURRENT must be positive, got %d", c.Scanner.MaxConcurrent)
	}
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("SUMMARY_REFRESH_INTERVAL_SECONDS must be positive, got %v", c.Refresh.Interval)
	}
	return nil
}

// HasDatabase returns true if database configuration is available
func (c *Config) HasDatabase() bool {
	return c.Database.URL != ""
}

// HasRedis returns true if Redis configuration is available
func (c *Config) HasRedis() bool {
	return c.Redis.Addr != ""
}

// HasFinnhub returns true if Finnhub configuration is available
func (c *Config) HasFinnhub() bool {
	return c.Finnhub.APIKey != ""
}

// HasAlpaca returns true if Alpaca configuration is available
func (c *Config) HasAlpaca() bool {
	return c.Alpaca.APIKey != "" && c.Alpaca.APISecret != ""
}

func getEnvString(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvIntAllowZero(key string, defaultValue int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatUnbounded(key string, defaultValue float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// NewTestConfig creates a Config with default values for testing
func NewTestConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL: "",
		},
		Redis: RedisConfig{
			Addr: "",
		},
		Yahoo: YahooConfig{
			BaseURL: "https://query1.finance.yahoo.com",
		},
		Finnhub: FinnhubConfig{
			APIKey:  "",
			BaseURL: "https://finnhub.io/api/v1",
		},
		Alpaca: AlpacaConfig{
			APIKey:    "",
			APISecret: "",
		},
		Quotes: QuotesConfig{
			Provider: "yahoo",
			CacheTTL: 10 * time.Minute,
		},
		Scanner: ScannerConfig{
			MarketCapMin:    1_000_000_000,
			MaxDeviationPct: 5,
			MaxConcurrent:   8,
			FetchTimeoutSec: 120,
		},
		Refresh: RefreshConfig{
			Enabled:  true,
			Interval: 10 * time.Second,
		},
		HTTP: HTTPConfig{
			Addr:               ":8080",
			CORSAllowedOrigins: "*",
		},
	}
}
