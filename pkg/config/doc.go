// Package config loads reqguard settings from the environment.
//
// LoadEnv reads .env files with github.com/joho/godotenv; Load parses the
// process environment into a struct with github.com/caarlos0/env/v11 and
// caches the result per type. Nested structs such as httpserver.Config and
// sanitizer.Config carry their own env tags, so a binary composes its
// configuration by embedding them:
//
//	type serveConfig struct {
//		HTTP     httpserver.Config
//		Sanitize sanitizer.Config `envPrefix:"SANITIZE_"`
//		LogLevel slog.Level       `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg serveConfig
//	config.MustLoad(&cfg)
//
// Variables already present in the environment take precedence over values
// from .env files. ResetCache clears cached configurations, which tests use
// after changing variables.
package config
