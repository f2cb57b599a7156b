package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	YAHOO_CHART_URL=https://query1.finance.yahoo.com/v8/finance/chart
//	YAHOO_FUNDAMENTALS_URL=https://query1.finance.yahoo.com/ws/fundamentals-timeseries/v1/finance/timeseries
//	FETCH_TIMEOUT_SECONDS=15
//	FETCH_PARALLEL=4
//	CACHE_TTL_MINUTES=240
//	CACHE_MAX_ENTRIES=256
//	DEFAULT_UNIVERSE=Samsung Elec=005930.KS,SK Hynix=000660.KS
type Config struct {
	Server     ServerConfig
	MarketData MarketDataConfig
	Cache      CacheConfig
	// Universe is the default instrument set offered to the dashboard:
	// display name to ticker.
	Universe map[string]string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string // TCP port the HTTP server listens on (e.g., "8080")
}

// MarketDataConfig defines the upstream source endpoints and fetch limits.
//
// Fields:
//   - ChartURL: base URL of the daily-close chart endpoint.
//   - FundamentalsURL: base URL of the financial-statement timeseries endpoint.
//   - FetchTimeout: per-instrument fetch deadline.
//   - FetchParallel: max concurrent fetches (0 = auto).
type MarketDataConfig struct {
	ChartURL        string
	FundamentalsURL string
	FetchTimeout    time.Duration
	FetchParallel   int
}

// CacheConfig controls the request-result cache. TTL 0 disables caching.
type CacheConfig struct {
	TTL        time.Duration
	MaxEntries int
}

// AppConfig is the globally accessible configuration instance, populated
// once via LoadConfig().
var AppConfig Config

// defaultUniverse is the Korean semiconductor set the dashboard starts
// with. KOSPI tickers carry the .KS suffix, KOSDAQ .KQ.
const defaultUniverse = "Samsung Elec=005930.KS," +
	"SK Hynix=000660.KS," +
	"Hanmi Semi=042700.KQ," +
	"DB Hitek=000990.KS," +
	"Leeno=058470.KQ," +
	"Hana Micron=067310.KQ"

// LoadConfig initializes the global AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit: if required variables are missing or malformed,
// validateConfig() terminates the app with a descriptive message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("YAHOO_CHART_URL", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("YAHOO_FUNDAMENTALS_URL", "https://query1.finance.yahoo.com/ws/fundamentals-timeseries/v1/finance/timeseries")
	viper.SetDefault("FETCH_TIMEOUT_SECONDS", 15)
	viper.SetDefault("FETCH_PARALLEL", 0)

	// The upstream publishes daily; four hours is how stale the dashboard
	// tolerates being.
	viper.SetDefault("CACHE_TTL_MINUTES", 240)
	viper.SetDefault("CACHE_MAX_ENTRIES", 256)

	viper.SetDefault("DEFAULT_UNIVERSE", defaultUniverse)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		MarketData: MarketDataConfig{
			ChartURL:        strings.TrimSuffix(viper.GetString("YAHOO_CHART_URL"), "/"),
			FundamentalsURL: strings.TrimSuffix(viper.GetString("YAHOO_FUNDAMENTALS_URL"), "/"),
			FetchTimeout:    time.Duration(viper.GetInt("FETCH_TIMEOUT_SECONDS")) * time.Second,
			FetchParallel:   viper.GetInt("FETCH_PARALLEL"),
		},
		Cache: CacheConfig{
			TTL:        time.Duration(viper.GetInt("CACHE_TTL_MINUTES")) * time.Minute,
			MaxEntries: viper.GetInt("CACHE_MAX_ENTRIES"),
		},
		Universe: parseUniverse(viper.GetString("DEFAULT_UNIVERSE")),
	}

	validateConfig()
}

// parseUniverse parses "Name=TICKER,Name=TICKER" pairs. Malformed entries
// are skipped; validateConfig catches a universe that ends up empty.
func parseUniverse(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		name, ticker, found := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		ticker = strings.TrimSpace(ticker)
		if !found || name == "" || ticker == "" {
			continue
		}
		out[name] = ticker
	}
	return out
}

// validateConfig ensures required variables are present and terminates the
// application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.MarketData.ChartURL == "" {
		missing = append(missing, "YAHOO_CHART_URL")
	}
	if AppConfig.MarketData.FundamentalsURL == "" {
		missing = append(missing, "YAHOO_FUNDAMENTALS_URL")
	}
	if AppConfig.MarketData.FetchTimeout <= 0 {
		missing = append(missing, "FETCH_TIMEOUT_SECONDS")
	}
	if len(AppConfig.Universe) == 0 {
		missing = append(missing, "DEFAULT_UNIVERSE")
	}

	if len(missing) > 0 {
		log.Fatalf("missing required environment variables: %v\n", missing)
	}
}
