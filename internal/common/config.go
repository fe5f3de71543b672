// Package common provides shared utilities for Setval
package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Setval
type Config struct {
	Environment string          `toml:"environment"`
	Market      MarketConfig    `toml:"market"`
	Clients     ClientsConfig   `toml:"clients"`
	Valuation   ValuationConfig `toml:"valuation"`
	Logging     LoggingConfig   `toml:"logging"`
}

// MarketConfig identifies the exchange the engine normalizes symbols for.
type MarketConfig struct {
	Suffix string `toml:"suffix"` // Ticker suffix for the market, e.g. "BK" for SET
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	SetSmart SetSmartConfig `toml:"setsmart"`
}

// SetSmartConfig holds the market-data API configuration
type SetSmartConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *SetSmartConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ValuationConfig holds the fixed market assumptions injected into the
// valuation models. These are configuration constants, not calibrated
// parameters; swapping markets means swapping this block, not model code.
type ValuationConfig struct {
	// HistoricalPEFallback is used by the PE-Band model when the caller
	// supplies no historical PE series for the symbol.
	HistoricalPEFallback []float64 `toml:"historical_pe_fallback"`
	RequiredReturn       float64   `toml:"required_return"`
	DividendGrowthRate   float64   `toml:"dividend_growth_rate"`
	FCFGrowthRate        float64   `toml:"fcf_growth_rate"`
	DiscountRate         float64   `toml:"discount_rate"`
	TerminalGrowthRate   float64   `toml:"terminal_growth_rate"`
	ProjectionYears      int       `toml:"projection_years"`
	LiquidationDiscount  float64   `toml:"liquidation_discount"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults for the Thai
// market (SET).
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Market: MarketConfig{
			Suffix: "BK",
		},
		Clients: ClientsConfig{
			SetSmart: SetSmartConfig{
				BaseURL:   "https://api.setsmart.com",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Valuation: ValuationConfig{
			// Long-run SET market PE range used as the PE-Band fallback.
			HistoricalPEFallback: []float64{15, 18, 20, 22, 25, 23, 21, 19, 17, 16, 18, 20},
			RequiredReturn:       0.10,
			DividendGrowthRate:   0.03,
			FCFGrowthRate:        0.05,
			DiscountRate:         0.10,
			TerminalGrowthRate:   0.025,
			ProjectionYears:      5,
			LiquidationDiscount:  0.30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the given TOML files, merged in
// order, with environment overrides applied last.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("SETVAL_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("SETVAL_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if key := os.Getenv("SETVAL_API_KEY"); key != "" {
		config.Clients.SetSmart.APIKey = key
	}

	if url := os.Getenv("SETVAL_API_URL"); url != "" {
		config.Clients.SetSmart.BaseURL = url
	}

	if limit := os.Getenv("SETVAL_RATE_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil && n > 0 {
			config.Clients.SetSmart.RateLimit = n
		}
	}
}

// Validate checks the mathematical preconditions the valuation block must
// satisfy before any model runs.
func (c *Config) Validate() error {
	v := c.Valuation
	if v.RequiredReturn <= v.DividendGrowthRate {
		return fmt.Errorf("valuation config: required_return (%.4f) must exceed dividend_growth_rate (%.4f)",
			v.RequiredReturn, v.DividendGrowthRate)
	}
	if v.DiscountRate <= v.TerminalGrowthRate {
		return fmt.Errorf("valuation config: discount_rate (%.4f) must exceed terminal_growth_rate (%.4f)",
			v.DiscountRate, v.TerminalGrowthRate)
	}
	if v.LiquidationDiscount < 0 || v.LiquidationDiscount >= 1 {
		return fmt.Errorf("valuation config: liquidation_discount (%.4f) must be in [0,1)", v.LiquidationDiscount)
	}
	if v.ProjectionYears < 0 {
		return fmt.Errorf("valuation config: projection_years (%d) must not be negative", v.ProjectionYears)
	}
	if len(v.HistoricalPEFallback) == 0 {
		return fmt.Errorf("valuation config: historical_pe_fallback must not be empty")
	}
	return nil
}
