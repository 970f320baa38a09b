package config

import (
	"fmt"
	"os"

	"golang.org/x/text/currency"
)

type Config struct {
	ServiceName string
	Env         string
	DatabaseURL string
	// DefaultCurrency is applied to products created without an explicit one.
	DefaultCurrency currency.Unit
}

func Load() (Config, error) {
	cfg := Config{
		ServiceName: getenvDefault("SERVICE_NAME", "storefront"),
		Env:         getenvDefault("ENV", "dev"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}

	code := getenvDefault("DEFAULT_CURRENCY", "GHS")
	unit, err := currency.ParseISO(code)
	if err != nil {
		return cfg, fmt.Errorf("DEFAULT_CURRENCY[%s] is not valid: %w", code, err)
	}
	cfg.DefaultCurrency = unit

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
