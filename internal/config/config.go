package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is populated from environment variables, optionally preloaded from
// .env.local or .env.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Environment string // development, production
	Port        string
	LogLevel    string
}

type DatabaseConfig struct {
	URL           string
	MaxOpenConns  int
	MaxIdleConns  int
	SlowThreshold time.Duration
}

type SeedConfig struct {
	DataDir   string
	OnStartup bool
}

const DefaultDatabaseURL = "sqlite:///./app.db"

// Load reads .env files (if any) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("PORT", "8080"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", DefaultDatabaseURL),
			MaxOpenConns:  getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:  getEnvInt("DB_MAX_IDLE_CONNS", 5),
			SlowThreshold: time.Duration(getEnvInt("DB_SLOW_QUERY_MS", 200)) * time.Millisecond,
		},
		Seed: SeedConfig{
			DataDir:   getEnv("DATA_DIR", "data"),
			OnStartup: getEnvBool("SEED_ON_STARTUP", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !c.Database.IsSQLite() && !c.Database.IsPostgres() {
		return fmt.Errorf("DATABASE_URL must start with sqlite:// or postgres://, got %q", c.Database.URL)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_IDLE_CONNS must not be negative")
	}
	return nil
}

func (c DatabaseConfig) IsSQLite() bool {
	return strings.HasPrefix(c.URL, "sqlite://")
}

func (c DatabaseConfig) IsPostgres() bool {
	return strings.HasPrefix(c.URL, "postgres://") || strings.HasPrefix(c.URL, "postgresql://")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
