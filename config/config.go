package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/notional/calc"
	"github.com/rustyeddy/notional/fxrates"
	"github.com/rustyeddy/notional/market"
)

// Environment overrides, applied after the config file.
const (
	EnvFXAPIURL  = "NOTIONAL_FX_API_URL"
	EnvFXTimeout = "NOTIONAL_FX_TIMEOUT"
	EnvLogLevel  = "NOTIONAL_LOG_LEVEL"
	EnvJournalDB = "NOTIONAL_JOURNAL_DB"
)

// Config represents the complete calculator configuration
type Config struct {
	FX          FXConfig          `json:"fx" yaml:"fx"`
	Instruments InstrumentsConfig `json:"instruments" yaml:"instruments"`
	Engine      EngineConfig      `json:"engine" yaml:"engine"`
	Log         LogConfig         `json:"log" yaml:"log"`
	Journal     JournalConfig     `json:"journal" yaml:"journal"`
}

// FXConfig configures the historical rate API and its fallback table
type FXConfig struct {
	APIURL        string             `json:"api_url" yaml:"api_url"`
	Timeout       string             `json:"timeout" yaml:"timeout"` // e.g. "5s", "1500ms"
	FallbackRates map[string]float64 `json:"fallback_rates" yaml:"fallback_rates"`

	// RequestsPerSecond caps API calls. 0 disables the limit.
	RequestsPerSecond int `json:"requests_per_second" yaml:"requests_per_second"`
}

// ParseTimeout converts the timeout string to time.Duration
func (fx FXConfig) ParseTimeout() (time.Duration, error) {
	if fx.Timeout == "" {
		return fxrates.DefaultTimeout, nil
	}
	return time.ParseDuration(fx.Timeout)
}

// InstrumentsConfig contains the classifier tables
type InstrumentsConfig struct {
	DefaultContractSize float64            `json:"default_contract_size" yaml:"default_contract_size"`
	ContractSizes       map[string]float64 `json:"contract_sizes" yaml:"contract_sizes"`
	Currencies          []string           `json:"currencies" yaml:"currencies"`
	QuoteCurrencies     map[string]string  `json:"quote_currencies" yaml:"quote_currencies"`
}

// Table converts the section into classifier input
func (ic InstrumentsConfig) Table() market.InstrumentTable {
	return market.InstrumentTable{
		DefaultContractSize: ic.DefaultContractSize,
		ContractSizes:       ic.ContractSizes,
		Currencies:          ic.Currencies,
		QuoteCurrencies:     ic.QuoteCurrencies,
	}
}

// EngineConfig contains calculation engine parameters
type EngineConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// JournalConfig contains run journal parameters. An empty DBPath disables
// recording.
type JournalConfig struct {
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Load reads an optional .env file from the working directory, then the
// config file at path (defaults when path is empty), then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = parseFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	cfg, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// parseFile decodes path on top of Default so a file only needs the keys it
// changes. Map entries are merged, lists are replaced.
func parseFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvFXAPIURL); ok && v != "" {
		c.FX.APIURL = v
	}
	if v, ok := os.LookupEnv(EnvFXTimeout); ok && v != "" {
		c.FX.Timeout = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvJournalDB); ok {
		c.Journal.DBPath = v
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.FX.APIURL == "" {
		return fmt.Errorf("fx.api_url is required")
	}
	u, err := url.Parse(c.FX.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("fx.api_url must be an http(s) URL: %q", c.FX.APIURL)
	}
	timeout, err := c.FX.ParseTimeout()
	if err != nil {
		return fmt.Errorf("fx.timeout: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("fx.timeout must be positive")
	}
	if c.FX.RequestsPerSecond < 0 {
		return fmt.Errorf("fx.requests_per_second must not be negative")
	}
	for ccy, rate := range c.FX.FallbackRates {
		if !isCurrencyCode(ccy) {
			return fmt.Errorf("fx.fallback_rates: invalid currency code %q", ccy)
		}
		if rate <= 0 {
			return fmt.Errorf("fx.fallback_rates.%s must be positive", ccy)
		}
	}

	if c.Instruments.DefaultContractSize <= 0 {
		return fmt.Errorf("instruments.default_contract_size must be positive")
	}
	for sym, size := range c.Instruments.ContractSizes {
		if size <= 0 {
			return fmt.Errorf("instruments.contract_sizes.%s must be positive", sym)
		}
	}
	if len(c.Instruments.Currencies) == 0 {
		return fmt.Errorf("instruments.currencies is required")
	}
	hasUSD := false
	for _, ccy := range c.Instruments.Currencies {
		if !isCurrencyCode(ccy) {
			return fmt.Errorf("instruments.currencies: invalid currency code %q", ccy)
		}
		if strings.EqualFold(ccy, "USD") {
			hasUSD = true
		}
	}
	if !hasUSD {
		return fmt.Errorf("instruments.currencies must include USD")
	}
	for sym, ccy := range c.Instruments.QuoteCurrencies {
		if !isCurrencyCode(ccy) {
			return fmt.Errorf("instruments.quote_currencies.%s: invalid currency code %q", sym, ccy)
		}
	}

	if c.Engine.Workers < 1 {
		return fmt.Errorf("engine.workers must be at least 1")
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	inst := market.DefaultInstruments()
	return &Config{
		FX: FXConfig{
			APIURL:        fxrates.DefaultBaseURL,
			Timeout:       fxrates.DefaultTimeout.String(),
			FallbackRates: fxrates.DefaultFallbackRates(),

			RequestsPerSecond: fxrates.DefaultRequestsPerSecond,
		},
		Instruments: InstrumentsConfig{
			DefaultContractSize: inst.DefaultContractSize,
			ContractSizes:       inst.ContractSizes,
			Currencies:          inst.Currencies,
			QuoteCurrencies:     inst.QuoteCurrencies,
		},
		Engine: EngineConfig{
			Workers: calc.DefaultWorkers,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
