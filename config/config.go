package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"swingAdvisor/internal/adapters/logger"
	"swingAdvisor/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	// Binance API (market data only; no order placement credentials needed
	// unless execution is enabled)
	APIKey    string
	SecretKey string
	IsTestnet bool

	// Evaluation universe
	Symbols         []string // instruments to evaluate
	BenchmarkSymbol string   // broad-market benchmark series
	SecondarySymbol string   // growth-tilted benchmark series
	VolIndexSymbol  string   // volatility index series; empty disables the vol regime

	// Candle parameters
	Interval     string // e.g. "1d", "4h"
	LookbackBars int    // candles fetched per series

	// Sizing
	RiskProfile string  // "conservative" (default) or "aggressive"
	Conviction  string  // default conviction tier for evaluations
	CashBuffer  float64 // override of the profile's cash buffer; 0 keeps it

	// Declared portfolio snapshot (the advisor does not talk to a broker)
	PortfolioValue float64            // total account value
	PortfolioCash  float64            // uninvested cash
	Positions      []*domain.Position // open holdings, "SYMBOL:AMOUNT" entries

	// Database
	DBPath string

	// Logging
	LogLevel  logger.LogLevel
	LogFormat string // "json" or "console"
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string // Collect validation errors

	cfg.APIKey = getEnv("BINANCE_API_KEY", "")
	cfg.SecretKey = getEnv("BINANCE_API_SECRET", "")
	cfg.IsTestnet = getEnvAsBool("IS_TESTNET", true) // Default to testnet for safety

	cfg.Symbols = splitList(getEnv("SYMBOLS", "BTCUSDT,ETHUSDT,SOLUSDT"))
	if len(cfg.Symbols) == 0 {
		errs = append(errs, "SYMBOLS must list at least one instrument")
	}
	cfg.BenchmarkSymbol = getEnv("BENCHMARK_SYMBOL", "BTCUSDT")
	if cfg.BenchmarkSymbol == "" {
		errs = append(errs, "BENCHMARK_SYMBOL must be set")
	}
	cfg.SecondarySymbol = getEnv("SECONDARY_SYMBOL", "ETHUSDT")
	if cfg.SecondarySymbol == "" {
		errs = append(errs, "SECONDARY_SYMBOL must be set")
	}
	cfg.VolIndexSymbol = getEnv("VOL_INDEX_SYMBOL", "")

	cfg.Interval = getEnv("INTERVAL", "1d")
	if cfg.Interval == "" {
		errs = append(errs, "INTERVAL must be set")
	}

	cfg.LookbackBars = getEnvAsInt("LOOKBACK_BARS", 250)
	if cfg.LookbackBars <= 0 {
		errs = append(errs, "LOOKBACK_BARS must be positive")
	}

	cfg.RiskProfile = strings.ToLower(getEnv("RISK_PROFILE", "conservative"))
	if cfg.RiskProfile != "conservative" && cfg.RiskProfile != "aggressive" {
		errs = append(errs, fmt.Sprintf("unknown RISK_PROFILE %q (conservative|aggressive)", cfg.RiskProfile))
	}
	cfg.Conviction = strings.ToLower(getEnv("CONVICTION", "moderate"))

	var err error
	cfg.CashBuffer, err = getEnvAsFloatRequired("CASH_BUFFER", 0)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid CASH_BUFFER: %v", err))
	} else if cfg.CashBuffer < 0 {
		errs = append(errs, "CASH_BUFFER cannot be negative")
	}

	cfg.PortfolioValue, err = getEnvAsFloatRequired("PORTFOLIO_VALUE", 10000)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PORTFOLIO_VALUE: %v", err))
	} else if cfg.PortfolioValue <= 0 {
		errs = append(errs, "PORTFOLIO_VALUE must be positive")
	}
	cfg.PortfolioCash, err = getEnvAsFloatRequired("PORTFOLIO_CASH", cfg.PortfolioValue)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PORTFOLIO_CASH: %v", err))
	} else if cfg.PortfolioCash < 0 {
		errs = append(errs, "PORTFOLIO_CASH cannot be negative")
	}
	cfg.Positions, err = parsePositions(getEnv("PORTFOLIO_POSITIONS", ""))
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid PORTFOLIO_POSITIONS: %v", err))
	}

	cfg.DBPath = getEnv("DB_PATH", "./data/advisor.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "console"))
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("unknown LOG_FORMAT %q (console|json)", cfg.LogFormat))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// parsePositions decodes "SYMBOL:AMOUNT,SYMBOL:AMOUNT" into open holdings.
// Declared positions are unleveraged longs.
func parsePositions(s string) ([]*domain.Position, error) {
	var positions []*domain.Position
	for _, entry := range splitList(s) {
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("entry %q is not SYMBOL:AMOUNT", entry)
		}
		amount, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || amount <= 0 {
			return nil, fmt.Errorf("entry %q has an invalid amount", entry)
		}
		positions = append(positions, &domain.Position{
			Symbol:    strings.ToUpper(parts[0]),
			Amount:    amount,
			Direction: domain.Buy,
			Leverage:  1.0,
		})
	}
	return positions, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
