// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Env controls whether error responses include stack traces.
	// Anything other than "production" is treated as a development setting.
	Env string `mapstructure:"env" validate:"required,oneof=development staging production"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
// The secret and lifetime are read once at startup and passed into the
// token service constructor; nothing reads them lazily afterwards.
type AuthConfig struct {
	TokenSecret          string `mapstructure:"token_secret"           validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// RateLimitConfig contains the per-IP token bucket settings. Read
// endpoints get a higher allowance than write endpoints.
type RateLimitConfig struct {
	ReadPerSecond  float64 `mapstructure:"read_per_second"  validate:"required,gt=0"`
	ReadBurst      int     `mapstructure:"read_burst"       validate:"required,gt=0"`
	WritePerSecond float64 `mapstructure:"write_per_second" validate:"required,gt=0"`
	WriteBurst     int     `mapstructure:"write_burst"      validate:"required,gt=0"`
}

// IsProduction reports whether the server runs with production settings.
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}
