// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported DB_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds all application configuration.
type Config struct {
	// Database – DB_DRIVER selects the dialect. SQLite only needs DBPath;
	// PostgreSQL and MySQL take DatabaseURL or the individual fields.
	DBDriver    string
	DBPath      string
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// JWT signing secret. Empty leaves the write routes open.
	JWTSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Legacy database read by cmd/migrate.
	LegacyDriver string
	LegacyDSN    string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	cfg, err := FromViper(newViper())
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	// Defaults
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "./gym.sqlite")
	v.SetDefault("DB_USER", "gym")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_NAME", "gym")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("PORT", ":3000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LEGACY_DRIVER", DriverSQLite)

	cfg := &Config{
		DBDriver:     strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DBPath:       v.GetString("DB_PATH"),
		DatabaseURL:  v.GetString("DATABASE_URL"),
		DBUser:       v.GetString("DB_USER"),
		DBPass:       v.GetString("DB_PASS"),
		DBHost:       v.GetString("DB_HOST"),
		DBPort:       v.GetString("DB_PORT"),
		DBName:       v.GetString("DB_NAME"),
		DBSSLMode:    v.GetString("DB_SSLMODE"),
		JWTSecret:    v.GetString("JWT_SECRET"),
		Debug:        v.GetBool("DEBUG"),
		Port:         v.GetString("PORT"),
		TLSDomains:   splitTrimmed(v.GetString("TLS_DOMAINS")),
		LegacyDriver: strings.ToLower(strings.TrimSpace(v.GetString("LEGACY_DRIVER"))),
		LegacyDSN:    v.GetString("LEGACY_DSN"),
	}

	if cfg.DBPort == "" {
		cfg.DBPort = defaultPort(cfg.DBDriver)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN returns the connection string for the configured driver.
// DATABASE_URL takes precedence over individual fields for PostgreSQL and MySQL.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL != "" {
			return c.DatabaseURL
		}
		return fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			url.QueryEscape(c.DBUser),
			url.QueryEscape(c.DBPass),
			c.DBHost,
			c.DBPort,
			c.DBName,
			c.DBSSLMode,
		)
	case DriverMySQL:
		if c.DatabaseURL != "" {
			return c.DatabaseURL
		}
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true",
			c.DBUser,
			c.DBPass,
			c.DBHost,
			c.DBPort,
			c.DBName,
		)
	default:
		return SQLiteDSN(c.DBPath)
	}
}

// SQLiteDSN turns a file path (or ":memory:") into a go-sqlite3 DSN with
// foreign keys enforced.
func SQLiteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	if c.JWTSecret == "" {
		return nil
	}
	return []byte(c.JWTSecret)
}

// AuthEnabled reports whether write routes require a token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("config: DB_PATH must be set for sqlite")
		}
	case DriverPostgres, DriverMySQL:
		if c.DatabaseURL == "" && c.DBPass == "" {
			return fmt.Errorf("config: DATABASE_URL or DB_PASS must be set for %s", c.DBDriver)
		}
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.LegacyDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("config: unsupported LEGACY_DRIVER %q", c.LegacyDriver)
	}
	return nil
}

func defaultPort(driver string) string {
	switch driver {
	case DriverMySQL:
		return "3306"
	case DriverPostgres:
		return "5432"
	}
	return ""
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
