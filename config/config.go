package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/blogem/sign2pay-oauth/authenticator"
)

// DefaultEnvFile is loaded when no env file is given
const DefaultEnvFile = ".env"

// Config holds the demo server configuration
type Config struct {
	ClientID     string        `env:"SIGN2PAY_CLIENT_ID,required"`
	ClientSecret string        `env:"SIGN2PAY_CLIENT_SECRET,required"`
	RedirectURL  string        `env:"SIGN2PAY_REDIRECT_URL,required"`
	BaseURL      string        `env:"SIGN2PAY_BASE_URL"     envDefault:"https://app.sign2pay.com"`
	Debug        bool          `env:"SIGN2PAY_DEBUG"        envDefault:"false"`
	HTTPTimeout  time.Duration `env:"SIGN2PAY_HTTP_TIMEOUT" envDefault:"30s"`

	Port            string `env:"PORT"             envDefault:"8080"`
	DatabasePath    string `env:"DATABASE_PATH"    envDefault:"sign2pay_demo.db"`
	UseHTTPS        bool   `env:"USE_HTTPS"        envDefault:"false"`
	SessionLifetime int64  `env:"SESSION_LIFETIME" envDefault:"3600"` // seconds
}

// Load reads envFile into the process environment and parses Config from it.
// A missing default env file is ignored.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		if !(envFile == DefaultEnvFile && errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Provider returns the authenticator configuration for the Sign2Pay provider
func (c *Config) Provider() authenticator.Config {
	return authenticator.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  c.RedirectURL,
		BaseURL:      c.BaseURL,
		Debug:        c.Debug,
		HTTPClient:   &http.Client{Timeout: c.HTTPTimeout},
	}
}
