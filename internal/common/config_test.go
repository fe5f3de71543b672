package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Market.Suffix != "BK" {
		t.Errorf("Market.Suffix default = %s, want BK", cfg.Market.Suffix)
	}
	if cfg.Clients.SetSmart.RateLimit != 5 {
		t.Errorf("RateLimit default = %d, want 5", cfg.Clients.SetSmart.RateLimit)
	}
	if len(cfg.Valuation.HistoricalPEFallback) == 0 {
		t.Error("HistoricalPEFallback default is empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SETVAL_ENV", "production")
	t.Setenv("SETVAL_LOG_LEVEL", "debug")
	t.Setenv("SETVAL_API_KEY", "secret")
	t.Setenv("SETVAL_RATE_LIMIT", "20")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Environment != "production" {
		t.Errorf("Environment = %s, want production", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Clients.SetSmart.APIKey != "secret" {
		t.Errorf("APIKey = %s, want secret", cfg.Clients.SetSmart.APIKey)
	}
	if cfg.Clients.SetSmart.RateLimit != 20 {
		t.Errorf("RateLimit = %d, want 20", cfg.Clients.SetSmart.RateLimit)
	}
}

func TestConfig_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "setval.toml")
	content := `
environment = "test"

[clients.setsmart]
api_key = "file-key"
rate_limit = 3

[valuation]
required_return = 0.12
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Environment != "test" {
		t.Errorf("Environment = %s, want test", cfg.Environment)
	}
	if cfg.Clients.SetSmart.APIKey != "file-key" {
		t.Errorf("APIKey = %s, want file-key", cfg.Clients.SetSmart.APIKey)
	}
	if cfg.Valuation.RequiredReturn != 0.12 {
		t.Errorf("RequiredReturn = %.2f, want 0.12", cfg.Valuation.RequiredReturn)
	}
	// Unset fields keep their defaults.
	if cfg.Market.Suffix != "BK" {
		t.Errorf("Market.Suffix = %s, want BK", cfg.Market.Suffix)
	}
}

func TestConfig_LoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig("does-not-exist.toml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %s, want development", cfg.Environment)
	}
}

func TestConfig_ValidateRejectsBadRates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"required return below growth", func(c *Config) { c.Valuation.RequiredReturn = 0.02 }},
		{"discount below terminal growth", func(c *Config) { c.Valuation.DiscountRate = 0.01 }},
		{"liquidation discount out of range", func(c *Config) { c.Valuation.LiquidationDiscount = 1.5 }},
		{"negative projection years", func(c *Config) { c.Valuation.ProjectionYears = -1 }},
		{"empty PE fallback", func(c *Config) { c.Valuation.HistoricalPEFallback = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSetSmartConfig_GetTimeout(t *testing.T) {
	c := SetSmartConfig{Timeout: "10s"}
	if c.GetTimeout() != 10*time.Second {
		t.Errorf("GetTimeout = %v, want 10s", c.GetTimeout())
	}

	c.Timeout = "garbage"
	if c.GetTimeout() != 30*time.Second {
		t.Errorf("GetTimeout fallback = %v, want 30s", c.GetTimeout())
	}
}
