// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// Upstream collector API
	CollectorBaseURL    string `mapstructure:"collectorbaseurl"`
	FetchTimeoutSeconds int    `mapstructure:"fetchtimeoutseconds"`

	// Pipeline defaults
	DefaultTopK       int `mapstructure:"defaulttopk"`
	DefaultPageSize   int `mapstructure:"defaultpagesize"`
	RecentWindowHours int `mapstructure:"recentwindowhours"`

	// File paths
	GeoDBPath string `mapstructure:"geodbpath"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		// Set defaults
		v.SetDefault("appname", "linklens")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("collectorbaseurl", "http://localhost:8080")
		v.SetDefault("fetchtimeoutseconds", 15)
		v.SetDefault("defaulttopk", 10)
		v.SetDefault("defaultpagesize", 25)
		v.SetDefault("recentwindowhours", 24)
		v.SetDefault("geodbpath", "storage/GeoLite2-City.mmdb")
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)

		// Bind environment variables
		v.BindEnv("appname", "LINKLENS_APP_NAME")
		v.BindEnv("appport", "LINKLENS_APP_PORT")
		v.BindEnv("environment", "LINKLENS_ENV")
		v.BindEnv("loglevel", "LINKLENS_LOG_LEVEL")
		v.BindEnv("collectorbaseurl", "LINKLENS_COLLECTOR_BASE_URL")
		v.BindEnv("fetchtimeoutseconds", "LINKLENS_FETCH_TIMEOUT_SECONDS")
		v.BindEnv("defaulttopk", "LINKLENS_DEFAULT_TOP_K")
		v.BindEnv("defaultpagesize", "LINKLENS_DEFAULT_PAGE_SIZE")
		v.BindEnv("recentwindowhours", "LINKLENS_RECENT_WINDOW_HOURS")
		v.BindEnv("geodbpath", "LINKLENS_GEO_DB_PATH")
		v.BindEnv("logsdir", "LINKLENS_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "LINKLENS_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "LINKLENS_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "LINKLENS_LOGS_MAX_AGE_IN_DAYS")

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}
	})
	return cfg
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if c.CollectorBaseURL == "" {
		return fmt.Errorf("collector base URL is required")
	}
	if c.FetchTimeoutSeconds < 1 {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}
	if c.DefaultPageSize < 1 {
		return fmt.Errorf("default page size must be positive")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// GetPort returns the HTTP server port
func (c *Config) GetPort() string {
	return c.AppPort
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
