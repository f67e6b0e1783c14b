package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the auth module.
type Config struct {
	// MongoDB Configuration
	MongoDBURI   string `env:"MONGODB_URI,required"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"notes_block_db"`

	// Session Configuration
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"` // 30 days
	// SessionRenewalWindow is how close to expiry a validated session gets
	// its expiry slid forward to now+SessionTTL. Must not exceed the TTL.
	SessionRenewalWindow time.Duration `env:"SESSION_RENEWAL_WINDOW" envDefault:"360h"`
	BcryptCost           int           `env:"BCRYPT_COST" envDefault:"10"`

	// Cookie Configuration
	CookieName     string `env:"COOKIE_NAME" envDefault:"notes_session"`
	CookiePath     string `env:"COOKIE_PATH" envDefault:"/"`
	CookieDomain   string `env:"COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool   `env:"COOKIE_SECURE" envDefault:"false"` // set to true in production
	CookieHTTPOnly bool   `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string `env:"COOKIE_SAME_SITE" envDefault:"Lax"` // "Lax", "Strict", "None"

	// Rate limiter backing store; in-memory when unset.
	RedisAddr     string `env:"REDIS_ADDR" envDefault:""`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load configuration from environment: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants between the parsed fields.
func (c *Config) Validate() error {
	if c.MongoDBURI == "" {
		return errors.New("mongodb_uri is required")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session_ttl must be positive")
	}
	if c.SessionRenewalWindow <= 0 || c.SessionRenewalWindow > c.SessionTTL {
		return errors.New("session_renewal_window must be positive and no longer than session_ttl")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("bcrypt_cost must be between 4 and 31")
	}

	switch strings.ToLower(c.CookieSameSite) {
	case "lax":
		c.CookieSameSite = "Lax"
	case "strict":
		c.CookieSameSite = "Strict"
	case "none":
		c.CookieSameSite = "None"
	default:
		return errors.New("cookie_same_site must be one of 'Lax', 'Strict', or 'None'")
	}
	return nil
}
