package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// Populated from environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Version     string
}

// Supported values of DB_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver     string // postgres | sqlite
	SQLitePath string // file path or ":memory:"
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
}

// CatalogConfig carries the author catalog policy.
type CatalogConfig struct {
	DefaultCountryID string        // fallback CountryID for new authors
	CountryCacheTTL  time.Duration // TTL of cached country lookups
	OperationTimeout time.Duration // deadline applied by the CLI per command
}

// Load reads the config from environment variables
func Load() (*Config, error) {
	cacheTTL, err := getEnvDuration("CATALOG_COUNTRY_CACHE_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	opTimeout, err := getEnvDuration("CATALOG_OPERATION_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Course Manager Catalog"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", DriverPostgres),
			SQLitePath: getEnv("DB_SQLITE_PATH", "coursemanager.db"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("CACHE_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			DefaultCountryID: getEnv("CATALOG_DEFAULT_COUNTRY", "BE"),
			CountryCacheTTL:  cacheTTL,
			OperationTimeout: opTimeout,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

var countryCode = regexp.MustCompile(`^[A-Z]{2,3}$`)

// Validate checks that the config is usable
func (c *Config) Validate() error {
	switch c.App.Environment {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("APP_ENV must be one of development, staging, production, test (got %q)", c.App.Environment)
	}

	switch c.Database.Driver {
	case DriverPostgres:
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("DB_SQLITE_PATH must be set when DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q (got %q)", DriverPostgres, DriverSQLite, c.Database.Driver)
	}

	if !countryCode.MatchString(c.Catalog.DefaultCountryID) {
		return fmt.Errorf("CATALOG_DEFAULT_COUNTRY must be 2-3 upper-case letters (got %q)", c.Catalog.DefaultCountryID)
	}
	if c.Catalog.OperationTimeout <= 0 {
		return fmt.Errorf("CATALOG_OPERATION_TIMEOUT must be positive")
	}

	return nil
}

// IsDevelopment reports whether APP_ENV is development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Helper functions
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

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
