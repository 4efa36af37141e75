package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the full configuration of the auth API, parsed once at startup
// from environment variables and passed explicitly to component constructors.
type Config struct {
	ServerAddr  string `env:"SERVER_ADDR"  envDefault:":8080"`
	AppBaseURL  string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	MongoURI    string `env:"MONGODB_URI"`
	MongoDBName string `env:"MONGODB_DATABASE" envDefault:"auth-system"`
	RedisAddr   string `env:"REDIS_ADDR"       envDefault:"localhost:6379"`

	Token  TokenConfig  `envPrefix:"TOKEN_"`
	Mailer MailerConfig `envPrefix:"SMTP_"`
}

// TokenConfig holds the settings for issued credentials. TokenExpiresIn drives
// both the JWT signature expiry and the session default expiry, so the two
// mechanisms always agree.
type TokenConfig struct {
	Secret               string        `env:"SECRET"`
	Issuer               string        `env:"ISSUER"     envDefault:"auth-api"`
	TokenExpiresIn       time.Duration `env:"EXPIRES_IN" envDefault:"1h"`
	PasswordResetExpires time.Duration `env:"PASSWORD_RESET_EXPIRES_IN" envDefault:"10m"`
}

// MailerConfig holds SMTP configuration for sending emails.
type MailerConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks that the required settings are present.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGODB_URI environment variable")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("missing TOKEN_SECRET environment variable")
	}

	return c.Mailer.validate()
}

func (c *MailerConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}
