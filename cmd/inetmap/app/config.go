package app

import (
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/inetmap/pkg/constants"
	"github.com/agentstation/inetmap/pkg/errors"
)

// envPrefix namespaces the environment variables read by viper.
const envPrefix = "INETMAP"

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Dataset configuration
	UsagePath     string
	BoundaryPath  string
	YearThreshold int
	ValueColumn   string
	CacheTTL      time.Duration

	// Render configuration
	Width  int
	Height int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (INETMAP_*)
// 3. .env files
// 4. Config file (configFile, or ~/.inetmap.yaml / ./.inetmap.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("usage_path", constants.DefaultUsagePath)
	v.SetDefault("boundary_path", constants.DefaultBoundaryPath)
	v.SetDefault("year_threshold", constants.DefaultYearThreshold)
	v.SetDefault("value_column", constants.UsageValueColumn)
	v.SetDefault("cache_ttl", constants.CacheTTL)
	v.SetDefault("width", constants.DefaultMapWidth)
	v.SetDefault("height", constants.DefaultMapHeight)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("viper", "failed to read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".inetmap")
		// A missing default config file is not an error.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("viper", "failed to read config", err)
			}
		}
	}

	config := &Config{
		ConfigFile: v.ConfigFileUsed(),

		UsagePath:     v.GetString("usage_path"),
		BoundaryPath:  v.GetString("boundary_path"),
		YearThreshold: v.GetInt("year_threshold"),
		ValueColumn:   v.GetString("value_column"),
		CacheTTL:      v.GetDuration("cache_ttl"),

		Width:  v.GetInt("width"),
		Height: v.GetInt("height"),

		Format: v.GetString("format"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would make every command fail. All
// problems are reported together.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.Width <= 0 {
		result = multierror.Append(result, errors.NewValidationError("width", c.Width, "must be positive"))
	}
	if c.Height <= 0 {
		result = multierror.Append(result, errors.NewValidationError("height", c.Height, "must be positive"))
	}
	if c.CacheTTL < 0 {
		result = multierror.Append(result, errors.NewValidationError("cache_ttl", c.CacheTTL, "must not be negative"))
	}
	return result.ErrorOrNil()
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags so flag values take
// precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// Variables already set in the environment are never overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
