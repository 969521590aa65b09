package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr        string
	DBPath            string
	LogLevel          string
	LogFile           string
	DefaultUserID     string
	CatalogPath       string
	ExpiringWindow    time.Duration
	DefaultExpiryDays int
	NutritionSeed     int64
	MetricsEnabled    bool
}

// Load reads configuration from the environment. Values in ENV_FILE (default
// .env) are applied first but never override variables already set.
func Load() (*Config, error) {
	if err := godotenv.Load(getEnv("ENV_FILE", ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	window, err := time.ParseDuration(getEnv("EXPIRING_WINDOW", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPIRING_WINDOW: %w", err)
	}
	expiryDays, err := strconv.Atoi(getEnv("DEFAULT_EXPIRY_DAYS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_EXPIRY_DAYS: %w", err)
	}
	if expiryDays < 1 {
		return nil, fmt.Errorf("invalid DEFAULT_EXPIRY_DAYS: must be at least 1")
	}
	seed, err := strconv.ParseInt(getEnv("NUTRITION_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid NUTRITION_SEED: %w", err)
	}
	metrics, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}

	return &Config{
		ListenAddr:        getEnv("LISTEN_ADDR", ":8080"),
		DBPath:            getEnv("DB_PATH", "/data/pantrychef.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
		DefaultUserID:     getEnv("DEFAULT_USER_ID", "local"),
		CatalogPath:       getEnv("CATALOG_PATH", ""),
		ExpiringWindow:    window,
		DefaultExpiryDays: expiryDays,
		NutritionSeed:     seed,
		MetricsEnabled:    metrics,
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
