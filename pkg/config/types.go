package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server       ServerConfig    `mapstructure:"server"`
	Database     DatabaseConfig  `mapstructure:"database"`
	Documents    DocumentsConfig `mapstructure:"documents"`
	Media        MediaConfig     `mapstructure:"media"`
	Autosave     AutosaveConfig  `mapstructure:"autosave"`
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
	Security     SecurityConfig  `mapstructure:"security"`
	Logging      LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains video catalog database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	LogQueries            bool          `mapstructure:"log_queries"`
	Verbose               bool          `mapstructure:"verbose"`
}

// DocumentsConfig contains annotation document storage settings
type DocumentsConfig struct {
	Dir string `mapstructure:"dir"`
}

// MediaConfig contains video asset resolution settings
type MediaConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// AutosaveConfig contains autosave scheduling settings
type AutosaveConfig struct {
	DebounceDelay time.Duration   `mapstructure:"debounce_delay"`
	MaxAttempts   int             `mapstructure:"max_attempts"`
	RetryBackoff  []time.Duration `mapstructure:"retry_backoff"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled   bool           `mapstructure:"enabled"`
	Endpoints map[string]int `mapstructure:"endpoints"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS     bool     `mapstructure:"enable_cors"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	CORSMethods    []string `mapstructure:"cors_methods"`
	CORSHeaders    []string `mapstructure:"cors_headers"`
	EnableRecovery bool     `mapstructure:"enable_recovery"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
