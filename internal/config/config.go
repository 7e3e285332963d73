// Package config loads the immutable process configuration from environment
// variables. It is constructed once at startup and injected; request-handling
// code never reads the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration. The reset-token lifetime is a fixed
// constant in the password reset usecase and deliberately absent here.
type Config struct {
	HTTPAddr      string `env:"HTTP_ADDR"      envDefault:":8080"`
	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"identity"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	JWTSecret    string        `env:"JWT_SECRET"`
	JWTIssuer    string        `env:"JWT_ISSUER"     envDefault:"identity-api"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`

	PasswordHashCost uint32 `env:"PASSWORD_HASH_COST" envDefault:"10"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects configurations the process must not start with. A missing
// signing secret fails here, at startup, never per request.
func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET environment variable")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}

	return nil
}
