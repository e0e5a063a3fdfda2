// Package config provides configuration loading and validation for the job board service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when neither the environment nor a config file sets a value.
const (
	DefaultPort             = 8080
	DefaultSiteURL          = "http://localhost:3000"
	DefaultCurrency         = "usd"
	DefaultLogLevel         = "info"
	DefaultFeaturedDuration = 30 * 24 * time.Hour
)

// Config is the service configuration. Secrets come from the environment;
// everything else may also be supplied by a JSON file.
type Config struct {
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
	SiteURL     string `json:"site_url,omitempty"` // Public base URL used for checkout redirects

	StripeSecretKey     string `json:"stripe_secret_key,omitempty"`
	StripeWebhookSecret string `json:"stripe_webhook_secret,omitempty"`
	Currency            string `json:"currency,omitempty"`

	// FeaturedDuration is how long the homepage placement lasts after payment.
	FeaturedDuration time.Duration `json:"featured_duration,omitempty"`

	LogLevel       string `json:"log_level,omitempty"`
	LogDevelopment bool   `json:"log_development,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var raw struct {
		Config
		FeaturedDuration string `json:"featured_duration,omitempty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg := raw.Config
	if raw.FeaturedDuration != "" {
		d, err := time.ParseDuration(raw.FeaturedDuration)
		if err != nil {
			return nil, fmt.Errorf("invalid featured_duration %q: %w", raw.FeaturedDuration, err)
		}
		cfg.FeaturedDuration = d
	}
	return &cfg, nil
}

// FromEnv reads configuration from environment variables. Unset variables
// are left at their zero value so a config file can fill them in.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SiteURL:             os.Getenv("SITE_URL"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:            os.Getenv("CURRENCY"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("FEATURED_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid FEATURED_DURATION: %v", err)
		}
		cfg.FeaturedDuration = d
	}
	if v := os.Getenv("LOG_DEVELOPMENT"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_DEVELOPMENT: %v", err)
		}
		cfg.LogDevelopment = dev
	}

	return cfg, nil
}

// Load reads the environment and, when path is non-empty, fills unset values
// from the JSON config file. Built-in defaults are applied last.
func Load(path string) (*Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		cfg = &merged
	}

	merged := cfg.MergeWithDefaults(Defaults())
	return &merged, nil
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Port:             DefaultPort,
		SiteURL:          DefaultSiteURL,
		Currency:         DefaultCurrency,
		FeaturedDuration: DefaultFeaturedDuration,
		LogLevel:         DefaultLogLevel,
	}
}

// Validate checks that the values needed to serve traffic are present and sane.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.StripeSecretKey == "" {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if c.StripeWebhookSecret == "" {
		missing = append(missing, "STRIPE_WEBHOOK_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config error: missing required settings: %s", strings.Join(missing, ", "))
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if !strings.HasPrefix(c.SiteURL, "http://") && !strings.HasPrefix(c.SiteURL, "https://") {
		return fmt.Errorf("config error: 'site_url' must be an http(s) URL, got %q", c.SiteURL)
	}
	if c.FeaturedDuration <= 0 {
		return fmt.Errorf("config error: 'featured_duration' must be positive")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SiteURL == "" {
		result.SiteURL = defaults.SiteURL
	}
	if result.StripeSecretKey == "" {
		result.StripeSecretKey = defaults.StripeSecretKey
	}
	if result.StripeWebhookSecret == "" {
		result.StripeWebhookSecret = defaults.StripeWebhookSecret
	}
	if result.Currency == "" {
		result.Currency = defaults.Currency
	}
	if result.FeaturedDuration == 0 {
		result.FeaturedDuration = defaults.FeaturedDuration
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Bools cannot distinguish unset from false; true wins.
	result.LogDevelopment = result.LogDevelopment || defaults.LogDevelopment

	result.SiteURL = strings.TrimRight(result.SiteURL, "/")
	return result
}
