package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds the whole gateway configuration.
type Config struct {
	Port string // HTTP port (8080)

	StorefrontAPIBase string // base URL of the storefront backend API

	CheckoutMode    string        // "backend" posts orders upstream, "direct" composes the message only
	CheckoutTimeout time.Duration // upper bound on the checkout round trip

	CatalogCacheTTL time.Duration // how long a fetched storefront stays fresh
	SessionTTL      time.Duration // idle lifetime of a session cart

	RedisAddr string // optional; empty keeps carts in process memory

	LogLevel string // logrus level (debug/info/warn/error)
	GoEnv    string // dev/prod
}

// Load reads the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:              getenv("PORT", "8080"),
		StorefrontAPIBase: os.Getenv("STOREFRONT_API_BASE"),
		CheckoutMode:      getenv("CHECKOUT_MODE", "backend"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		GoEnv:             getenv("GO_ENV", "dev"),
	}

	// Required
	if cfg.StorefrontAPIBase == "" {
		return Config{}, fmt.Errorf("STOREFRONT_API_BASE is required")
	}
	if cfg.CheckoutMode != "backend" && cfg.CheckoutMode != "direct" {
		return Config{}, fmt.Errorf("CHECKOUT_MODE must be backend or direct")
	}

	var err error
	if cfg.CheckoutTimeout, err = duration("CHECKOUT_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CatalogCacheTTL, err = duration("CATALOG_CACHE_TTL", 60*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = duration("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
