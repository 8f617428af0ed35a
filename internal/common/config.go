// Package common provides shared utilities for Ava
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/ava/internal/models"
)

// Config holds all configuration for Ava
type Config struct {
	Environment string              `toml:"environment"`
	Server      ServerConfig        `toml:"server"`
	Chat        ChatConfig          `toml:"chat"`
	Cache       CacheConfig         `toml:"cache"`
	Clients     ClientsConfig       `toml:"clients"`
	Logging     LoggingConfig       `toml:"logging"`
	Instruments []models.Instrument `toml:"instruments"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ChatConfig holds dispatch tunables.
type ChatConfig struct {
	// ConfidenceThreshold is the minimum classifier confidence accepted
	// for dispatch. Predictions below it produce a clarification reply.
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	// HistoryDepth is the number of (question, answer) pairs kept in
	// conversation memory.
	HistoryDepth int `toml:"history_depth"`
}

// CacheConfig holds the TTLs for the three cache kinds. Durations are
// strings ("150s", "10m") parsed with time.ParseDuration.
type CacheConfig struct {
	PriceTTL   string `toml:"price_ttl"`
	ProfileTTL string `toml:"profile_ttl"`
	NewsTTL    string `toml:"news_ttl"`
}

// GetPriceTTL parses and returns the price cache TTL.
func (c *CacheConfig) GetPriceTTL() time.Duration {
	return parseDurationOr(c.PriceTTL, DefaultPriceTTL)
}

// GetProfileTTL parses and returns the company profile cache TTL.
// Defaults to twice the price TTL when unset.
func (c *CacheConfig) GetProfileTTL() time.Duration {
	return parseDurationOr(c.ProfileTTL, 2*c.GetPriceTTL())
}

// GetNewsTTL parses and returns the news cache TTL.
func (c *CacheConfig) GetNewsTTL() time.Duration {
	return parseDurationOr(c.NewsTTL, DefaultNewsTTL)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo       YahooConfig       `toml:"yahoo"`
	GoogleNews  GoogleNewsConfig  `toml:"googlenews"`
	TradingView TradingViewConfig `toml:"tradingview"`
	Classifier  ClassifierConfig  `toml:"classifier"`
	Zemberek    ZemberekConfig    `toml:"zemberek"`
	DeepL       DeepLConfig       `toml:"deepl"`
}

// YahooConfig holds Yahoo Finance API configuration
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	return parseDurationOr(c.Timeout, 10*time.Second)
}

// GoogleNewsConfig holds Google News RSS configuration
type GoogleNewsConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *GoogleNewsConfig) GetTimeout() time.Duration {
	return parseDurationOr(c.Timeout, 10*time.Second)
}

// TradingViewConfig holds the rendered-page news fallback configuration.
// The per-instrument news-flow URL lives on the Instrument record; this
// holds only the render budget.
type TradingViewConfig struct {
	Enabled bool   `toml:"enabled"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the page render timeout. Rendering is
// slower than a plain fetch, so the default is twice the HTTP budget.
func (c *TradingViewConfig) GetTimeout() time.Duration {
	return parseDurationOr(c.Timeout, 20*time.Second)
}

// ClassifierConfig holds the intent classification service configuration
type ClassifierConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ClassifierConfig) GetTimeout() time.Duration {
	return parseDurationOr(c.Timeout, 10*time.Second)
}

// ZemberekConfig holds the morphological analysis service configuration
type ZemberekConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ZemberekConfig) GetTimeout() time.Duration {
	return parseDurationOr(c.Timeout, 5*time.Second)
}

// DeepLConfig holds DeepL translation API configuration. BaseURL left
// empty routes by key tier (":fx" keys to the free endpoint).
type DeepLConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *DeepLConfig) GetTimeout() time.Duration {
	return parseDurationOr(c.Timeout, 5*time.Second)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string `toml:"level"`
	FilePath string `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Chat: ChatConfig{
			ConfidenceThreshold: 0.35,
			HistoryDepth:        5,
		},
		Cache: CacheConfig{
			PriceTTL: "150s",
			NewsTTL:  "600s",
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:   "https://query1.finance.yahoo.com",
				RateLimit: 5,
				Timeout:   "10s",
			},
			GoogleNews: GoogleNewsConfig{
				BaseURL: "https://news.google.com",
				Timeout: "10s",
			},
			TradingView: TradingViewConfig{
				Enabled: true,
				Timeout: "20s",
			},
			Classifier: ClassifierConfig{
				BaseURL: "http://localhost:8501",
				Timeout: "10s",
			},
			Zemberek: ZemberekConfig{
				BaseURL: "http://localhost:8502",
				Timeout: "5s",
			},
			DeepL: DeepLConfig{
				Timeout: "5s",
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			FilePath: "./logs/ava.log",
		},
		Instruments: models.DefaultInstruments(),
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
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

	// Apply environment overrides
	applyEnvOverrides(config)

	// Validate tunables
	validateChat(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("AVA_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("AVA_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("AVA_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("AVA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if v := os.Getenv("AVA_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Chat.ConfidenceThreshold = f
		}
	}

	if v := os.Getenv("AVA_DEEPL_API_KEY"); v != "" {
		config.Clients.DeepL.APIKey = v
	}

	if v := os.Getenv("AVA_CLASSIFIER_URL"); v != "" {
		config.Clients.Classifier.BaseURL = v
	}

	if v := os.Getenv("AVA_ZEMBEREK_URL"); v != "" {
		config.Clients.Zemberek.BaseURL = v
	}
}

// validateChat clamps chat tunables into their valid ranges.
func validateChat(config *Config) {
	if config.Chat.ConfidenceThreshold <= 0 || config.Chat.ConfidenceThreshold > 1 {
		config.Chat.ConfidenceThreshold = 0.35
	}
	if config.Chat.HistoryDepth <= 0 {
		config.Chat.HistoryDepth = 5
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
