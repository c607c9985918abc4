// Package config provides configuration management for wcvpseed.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Archive: member
//   - Emit: batch_size, prepared_path
//   - Database: host, port, user, password, database, ssl_mode
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - WithProgress, WithCheck (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use WCVPSEED_ prefix with underscores for nesting:
//
//	WCVPSEED_ARCHIVE_MEMBER=wcvp_names.csv
//	WCVPSEED_EMIT_BATCH_SIZE=5000
//	WCVPSEED_DATABASE_HOST=localhost
//	WCVPSEED_LOG_LEVEL=info
package config

import "path/filepath"

// Config represents the complete wcvpseed configuration.
type Config struct {
	// Archive contains settings of the source checklist archive.
	Archive ArchiveConfig `mapstructure:"archive" yaml:"archive"`

	// Emit contains settings of the prepared table and SQL output.
	Emit EmitConfig `mapstructure:"emit" yaml:"emit"`

	// Database contains PostgreSQL connection settings for the load
	// command.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// WithProgress enables progress bars on terminal.
	WithProgress bool `mapstructure:"-" yaml:"-"`

	// WithCheck makes the build command load the generated seed into an
	// in-memory SQLite database.
	WithCheck bool `mapstructure:"-" yaml:"-"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// ArchiveConfig describes where the checklist is inside of the archive.
type ArchiveConfig struct {
	// Member is the name of the pipe-delimited checklist file inside the
	// zip archive.
	Member string `mapstructure:"member" yaml:"member"`
}

// EmitConfig contains settings of the prepared table and of the
// generated SQL.
type EmitConfig struct {
	// BatchSize is the maximum number of tuples in one INSERT statement.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// PreparedPath is the location of the intermediate CSV table.
	// If empty, the table is kept in the cache directory.
	PreparedPath string `mapstructure:"prepared_path" yaml:"prepared_path"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Archive: ArchiveConfig{
			Member: "wcvp_names.csv",
		},
		Emit: EmitConfig{
			BatchSize: 5_000,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "mainverte",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		WithProgress: true,
	}

	return res
}

// PreparedPath returns the location of the prepared table. It falls back
// to the cache directory when the path is not configured.
func (c *Config) PreparedPath() string {
	if c.Emit.PreparedPath != "" {
		return c.Emit.PreparedPath
	}
	return filepath.Join(CacheDir(c.HomeDir), PreparedFile)
}
