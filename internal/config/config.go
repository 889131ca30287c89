package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Store    StoreConfig
	Insight  InsightConfig
	Shop     ShopConfig
	TaxRate  decimal.Decimal
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	APIKeys []string // Valid API keys for authentication
}

// StoreConfig selects the bill-store backend. "file" persists to a JSON
// file at Path, "memory" keeps bills in process, "redis" stores the blob
// under one key on the server at RedisAddr.
type StoreConfig struct {
	Backend   string
	Path      string
	RedisAddr string
	RedisKey  string
}

// InsightConfig configures the outbound generative-text call. An empty
// APIKey disables the call entirely; the generator then always answers
// with its fallback text.
type InsightConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	TimeoutSeconds int
}

// ShopConfig carries the static shop details rendered on invoices
type ShopConfig struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	taxRate, err := decimal.NewFromString(getEnv("TAX_RATE", "0.09"))
	if err != nil {
		return nil, fmt.Errorf("invalid TAX_RATE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", []string{"apitest"}),
		},
		Store: StoreConfig{
			Backend:   getEnv("STORE_BACKEND", "file"),
			Path:      getEnv("STORE_PATH", "data/bills.json"),
			RedisAddr: getEnv("REDIS_ADDR", ""),
			RedisKey:  getEnv("REDIS_KEY", ""),
		},
		Insight: InsightConfig{
			APIKey:         getEnv("INSIGHT_API_KEY", ""),
			Model:          getEnv("INSIGHT_MODEL", "gemini-2.0-flash"),
			BaseURL:        getEnv("INSIGHT_BASE_URL", "https://generativelanguage.googleapis.com"),
			TimeoutSeconds: getEnvAsInt("INSIGHT_TIMEOUT_SECONDS", 10),
		},
		Shop: ShopConfig{
			Name:    getEnv("SHOP_NAME", "3Dhama"),
			Address: getEnv("SHOP_ADDRESS", "Premium Bakery & Studio, Flour Town"),
			Phone:   getEnv("SHOP_PHONE", "+91 9876543210"),
			GSTIN:   getEnv("SHOP_GSTIN", "27AAAAA0000A1Z5"),
		},
		TaxRate:  taxRate,
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	if c.TaxRate.IsNegative() {
		return fmt.Errorf("TAX_RATE must not be negative")
	}

	switch c.Store.Backend {
	case "file":
		if c.Store.Path == "" {
			return fmt.Errorf("STORE_PATH is required for the file backend")
		}
	case "memory":
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be file, memory, or redis)", c.Store.Backend)
	}

	if c.Insight.TimeoutSeconds <= 0 {
		return fmt.Errorf("INSIGHT_TIMEOUT_SECONDS must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
