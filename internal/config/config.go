package config

import (
	"os"
	"strings"

	"wahlimport/internal/errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// DefaultBatchSize is the number of records written per insert statement
const DefaultBatchSize = 1000

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Import   ImportConfig
	Server   ServerConfig
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL    string `env:"DATABASE_URL"`
	Driver string `env:"DB_DRIVER" envDefault:"postgres"`
}

// ImportConfig holds spreadsheet import settings
type ImportConfig struct {
	// DataDir is the base directory relative input paths are resolved against
	DataDir   string `env:"DATA_DIR" envDefault:"daten"`
	BatchSize int    `env:"BATCH_SIZE" envDefault:"1000"`
}

// ServerConfig holds read API settings
type ServerConfig struct {
	Port        string `env:"PORT" envDefault:"8080"`
	GinMode     string `env:"GIN_MODE" envDefault:"release"`
	PageSize    int    `env:"API_PAGE_SIZE" envDefault:"100"`
	MaxPageSize int    `env:"API_MAX_PAGE_SIZE" envDefault:"1000"`
}

// LoadEnvFiles loads the given dotenv files that exist; missing files are skipped.
func LoadEnvFiles(files ...string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads configuration from .env files and environment variables and validates it
func Load() (*Config, error) {
	if _, err := LoadEnvFiles(".env", ".env.local"); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to load .env files")
	}
	return Parse()
}

// Parse reads configuration from the process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid(err.Error()), "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return errors.ConfigInvalid("DB_DRIVER must be 'postgres' or 'sqlite3', got '" + c.Database.Driver + "'")
	}
	if c.Import.BatchSize <= 0 {
		return errors.ConfigInvalid("BATCH_SIZE must be positive")
	}
	if c.Server.PageSize <= 0 || c.Server.MaxPageSize < c.Server.PageSize {
		return errors.ConfigInvalid("API_PAGE_SIZE must be positive and not exceed API_MAX_PAGE_SIZE")
	}
	return nil
}
