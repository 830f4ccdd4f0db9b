package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for the timesheet application
type Config struct {
	Database    DatabaseConfig
	Import      ImportConfig
	Export      ExportConfig
	Reminder    ReminderConfig
	Validation  ValidationConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TS_DB_DIR" mapstructure:"dir"`
	Filename       string        `env:"TS_DB_FILENAME" mapstructure:"filename"`
	QueryTimeout   time.Duration `env:"TS_DB_QUERY_TIMEOUT" mapstructure:"query_timeout"`
	BusyTimeout    time.Duration `env:"TS_DB_BUSY_TIMEOUT" mapstructure:"busy_timeout"`
	DirPermissions uint32        `env:"TS_DB_DIR_PERMISSIONS" mapstructure:"dir_permissions"`
}

// ImportConfig holds spreadsheet import configuration
type ImportConfig struct {
	StrictTypes bool  `env:"TS_IMPORT_STRICT_TYPES" mapstructure:"strict_types"`
	ColorSeed   int64 `env:"TS_IMPORT_COLOR_SEED" mapstructure:"color_seed"` // 0 seeds from the clock
}

// ExportConfig holds export configuration
type ExportConfig struct {
	OutputDir     string `env:"TS_EXPORT_DIR" mapstructure:"output_dir"`
	DefaultFormat string `env:"TS_EXPORT_FORMAT" mapstructure:"default_format"`
}

// ReminderConfig holds end-of-day reminder configuration
type ReminderConfig struct {
	Message  string `env:"TS_REMINDER_MESSAGE" mapstructure:"message"`
	Timezone string `env:"TS_REMINDER_TIMEZONE" mapstructure:"timezone"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMaxLength       int           `env:"TS_VALIDATION_TITLE_MAX" mapstructure:"title_max_length"`
	ProjectNameMaxLength int           `env:"TS_VALIDATION_PROJECT_NAME_MAX" mapstructure:"project_name_max_length"`
	MaxDuration          time.Duration `env:"TS_VALIDATION_MAX_DURATION" mapstructure:"max_duration"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TS_APP_TIMEOUT" mapstructure:"timeout"`
	Verbose bool          `env:"TS_APP_VERBOSE" mapstructure:"verbose"`
}

// Export formats
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// DefaultDir returns ~/.ts, the home of the database and the config file
func DefaultDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".ts")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dir:            DefaultDir(),
			Filename:       "ts.db",
			QueryTimeout:   10 * time.Second,
			BusyTimeout:    5 * time.Second,
			DirPermissions: 0755,
		},
		Import: ImportConfig{
			StrictTypes: false,
			ColorSeed:   0,
		},
		Export: ExportConfig{
			OutputDir:     ".",
			DefaultFormat: FormatXLSX,
		},
		Reminder: ReminderConfig{
			Message:  "Time to review your daily tasks and track your time",
			Timezone: "Local",
		},
		Validation: ValidationConfig{
			TitleMaxLength:       255,
			ProjectNameMaxLength: 100,
			MaxDuration:          24 * time.Hour,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return c.Database.Filename
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// ReminderLocation resolves the configured reminder timezone
func (c *Config) ReminderLocation() (*time.Location, error) {
	if c.Reminder.Timezone == "" || c.Reminder.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Reminder.Timezone)
}

// LoadFromEnvironment loads configuration from TS_* environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TS_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TS_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TS_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TS_DB_BUSY_TIMEOUT"); timeout != "" {
		c.Database.BusyTimeout = ParseDurationWithFallback(timeout, c.Database.BusyTimeout)
	}
	if perms := os.Getenv("TS_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Import configuration
	if strict := os.Getenv("TS_IMPORT_STRICT_TYPES"); strict != "" {
		c.Import.StrictTypes = ParseBoolWithFallback(strict, c.Import.StrictTypes)
	}
	if seed := os.Getenv("TS_IMPORT_COLOR_SEED"); seed != "" {
		c.Import.ColorSeed = ParseInt64WithFallback(seed, c.Import.ColorSeed)
	}

	// Export configuration
	if dir := os.Getenv("TS_EXPORT_DIR"); dir != "" {
		c.Export.OutputDir = dir
	}
	if format := os.Getenv("TS_EXPORT_FORMAT"); format != "" {
		c.Export.DefaultFormat = format
	}

	// Reminder configuration
	if message := os.Getenv("TS_REMINDER_MESSAGE"); message != "" {
		c.Reminder.Message = message
	}
	if tz := os.Getenv("TS_REMINDER_TIMEZONE"); tz != "" {
		c.Reminder.Timezone = tz
	}

	// Validation configuration
	if maxLen := os.Getenv("TS_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if maxLen := os.Getenv("TS_VALIDATION_PROJECT_NAME_MAX"); maxLen != "" {
		c.Validation.ProjectNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.ProjectNameMaxLength)
	}
	if maxDur := os.Getenv("TS_VALIDATION_MAX_DURATION"); maxDur != "" {
		c.Validation.MaxDuration = ParseDurationWithFallback(maxDur, c.Validation.MaxDuration)
	}

	// Application configuration
	if timeout := os.Getenv("TS_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TS_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.BusyTimeout < 0 {
		return &ConfigError{Field: "database.busy_timeout", Message: "busy timeout cannot be negative"}
	}

	if c.Export.OutputDir == "" {
		return &ConfigError{Field: "export.output_dir", Message: "output directory cannot be empty"}
	}
	if c.Export.DefaultFormat != FormatXLSX && c.Export.DefaultFormat != FormatPDF {
		return &ConfigError{Field: "export.default_format", Message: "default format must be xlsx or pdf"}
	}

	if _, err := c.ReminderLocation(); err != nil {
		return &ConfigError{Field: "reminder.timezone", Message: "unknown timezone " + c.Reminder.Timezone}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.ProjectNameMaxLength < 1 {
		return &ConfigError{Field: "validation.project_name_max_length", Message: "project name maximum length must be at least 1"}
	}
	if c.Validation.MaxDuration <= 0 {
		return &ConfigError{Field: "validation.max_duration", Message: "max duration must be positive"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
