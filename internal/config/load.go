package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and optionally a
// config file. Environment variables take precedence over values from
// config files. Returns a populated Config struct or an error if
// loading/validation fails.
//
// Environment variables use the TASKDECK_ prefix with underscores for
// nesting, e.g. TASKDECK_AUTH_TOKEN_SECRET, TASKDECK_SERVER_PORT.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sensible one. The token secret
	// and database URL deliberately have no default.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.env", "development")
	v.SetDefault("auth.token_lifetime_minutes", 24*60)
	v.SetDefault("rate_limit.read_per_second", 20)
	v.SetDefault("rate_limit.read_burst", 100)
	v.SetDefault("rate_limit.write_per_second", 10)
	v.SetDefault("rate_limit.write_burst", 50)

	// Optional config file in the working directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; environment variables may carry everything.
	}

	v.SetEnvPrefix("TASKDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv does not register keys for Unmarshal, so bind the ones
	// we read explicitly.
	for _, key := range []string{
		"server.port", "server.log_level", "server.env",
		"database.url",
		"auth.token_secret", "auth.token_lifetime_minutes",
		"rate_limit.read_per_second", "rate_limit.read_burst",
		"rate_limit.write_per_second", "rate_limit.write_burst",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
