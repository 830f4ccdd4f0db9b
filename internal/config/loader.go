package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
	envFile    string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithConfigFile reads the given YAML file instead of searching ~/.ts/config.yaml.
// An explicit file that does not exist is an error.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvFile loads the given dotenv file instead of ./.env.
// An explicit file that does not exist is an error.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// defaults, config file, dotenv file, environment, then validation.
// Command line flags are applied afterwards by LoadWithOverrides or by cobra.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadConfigFile(); err != nil {
		return nil, err
	}

	if err := l.loadEnvFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadConfigFile() error {
	v := viper.New()
	v.SetConfigType("yaml")
	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) && l.configFile == "" {
			return nil
		}
		return &ConfigError{Field: "config_file", Message: err.Error()}
	}

	if err := v.Unmarshal(l.config); err != nil {
		return &ConfigError{Field: "config_file", Message: fmt.Sprintf("failed to decode %s: %v", v.ConfigFileUsed(), err)}
	}
	return nil
}

func (l *Loader) loadEnvFile() error {
	path := l.envFile
	if path == "" {
		path = DefaultEnvFile
	}

	// godotenv never overrides variables already present in the environment
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && l.envFile == "" {
			return nil
		}
		return &ConfigError{Field: "env_file", Message: err.Error()}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration

	// Import overrides
	StrictTypes *bool
	ColorSeed   *int64

	// Export overrides
	ExportDir    *string
	ExportFormat *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// Apply copies every non-nil override onto config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.DBDir != nil {
		config.Database.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		config.Database.Filename = *o.DBFilename
	}
	if o.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *o.DBQueryTimeout
	}

	if o.StrictTypes != nil {
		config.Import.StrictTypes = *o.StrictTypes
	}
	if o.ColorSeed != nil {
		config.Import.ColorSeed = *o.ColorSeed
	}

	if o.ExportDir != nil {
		config.Export.OutputDir = *o.ExportDir
	}
	if o.ExportFormat != nil {
		config.Export.DefaultFormat = *o.ExportFormat
	}

	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseInt64WithFallback parses a 64-bit integer string with a fallback value
func ParseInt64WithFallback(s string, fallback int64) int64 {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
