// Package config provides centralized configuration management for the builder.
// It loads configuration from environment variables with defaults matching the
// standard data/ layout and validates all settings on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Paths   PathsConfig
	Mirror  MirrorConfig
	Metrics MetricsConfig
	Logging LoggingConfig
}

// PathsConfig holds the input and output file locations.
type PathsConfig struct {
	// SourceCSV is the cleaned charities extract (default: data/cleaned_irs_charities.csv)
	SourceCSV string `env:"CHARITIES_SOURCE_CSV" default:"data/cleaned_irs_charities.csv"`

	// Database is the SQLite file rebuilt on every run (default: data/charities.db)
	Database string `env:"CHARITIES_DB_PATH" default:"data/charities.db"`
}

// MirrorConfig holds the optional PostgreSQL mirror settings.
type MirrorConfig struct {
	// URL is the PostgreSQL connection string. Empty disables the mirror.
	// Supports both MIRROR_DATABASE_URL and MIRROR_DB_URL env vars.
	URL string `env:"MIRROR_DATABASE_URL" envAlt:"MIRROR_DB_URL"`

	// Table is the mirrored table name (default: charities)
	Table string `env:"MIRROR_TABLE" default:"charities"`

	// Timeout bounds the whole mirror publish (default: 5m)
	Timeout time.Duration `env:"MIRROR_TIMEOUT" default:"5m"`
}

// Enabled reports whether a mirror target is configured.
func (c *MirrorConfig) Enabled() bool {
	return c.URL != ""
}

// MetricsConfig holds diagnostic counter output settings.
type MetricsConfig struct {
	// TextfilePath is where build metrics are written in Prometheus text
	// format. Empty disables the write.
	TextfilePath string `env:"METRICS_TEXTFILE"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
