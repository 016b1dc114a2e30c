package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Source string `yaml:"source"` // CSV or KITE
	Ledger struct {
		Path         string   `yaml:"path"`
		FileName     string   `yaml:"file_name"`
		SearchDirs   []string `yaml:"search_dirs"`
		TradedStatus string   `yaml:"traded_status"`
	} `yaml:"ledger"`
	Kite struct {
		APIKeyEnv      string `yaml:"api_key_env"`
		AccessTokenEnv string `yaml:"access_token_env"`
	} `yaml:"kite"`
	Timezone string `yaml:"timezone"`
	Output   struct {
		Dir      string `yaml:"dir"`
		Currency string `yaml:"currency"`
	} `yaml:"output"`
}

func (c *Config) Validate() error {
	if c.Source != "CSV" && c.Source != "KITE" {
		return fmt.Errorf("invalid source '%s': must be 'CSV' or 'KITE'", c.Source)
	}
	if c.Ledger.FileName == "" && c.Ledger.Path == "" {
		return fmt.Errorf("ledger.file_name and ledger.path cannot both be empty")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured market timezone. "IST" is resolved as a
// fixed offset because it is absent from some zoneinfo databases.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "IST" {
		return time.FixedZone("IST", 19800), nil
	}
	return time.LoadLocation(c.Timezone)
}

func defaults(c *Config) {
	if c.Source == "" {
		c.Source = "CSV"
	}
	if c.Ledger.FileName == "" {
		c.Ledger.FileName = "trade_ledger.csv"
	}
	if len(c.Ledger.SearchDirs) == 0 {
		c.Ledger.SearchDirs = []string{".", "data", "raw_data"}
	}
	if c.Ledger.TradedStatus == "" {
		c.Ledger.TradedStatus = "Traded"
	}
	if c.Kite.APIKeyEnv == "" {
		c.Kite.APIKeyEnv = "KITE_API_KEY"
	}
	if c.Kite.AccessTokenEnv == "" {
		c.Kite.AccessTokenEnv = "KITE_ACCESS_TOKEN"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "audit_results"
	}
	if c.Output.Currency == "" {
		c.Output.Currency = "INR"
	}
}

// LoadConfig reads the YAML run configuration. A missing file is not an
// error: the tool runs on defaults exactly like the original single-file
// audit did.
func LoadConfig(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			defaults(&c)
			return &c, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	defaults(&c)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
