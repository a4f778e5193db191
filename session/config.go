package session

import (
	"errors"
	"time"
)

// Config configures the session service.
type Config struct {
	// Secret is the HMAC signing key for session tokens.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// CookieSecret encrypts the session cookie for web clients. Falls back
	// to Secret when empty.
	CookieSecret string `yaml:"cookie_secret" mapstructure:"cookie_secret"`

	// Issuer is the "iss" claim on issued tokens.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// TTL is the session lifetime (default: 24h).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`

	// CookieName is the session cookie name for web clients.
	CookieName string `yaml:"cookie_name" mapstructure:"cookie_name"`

	// CookieDomain scopes the session cookie (optional).
	CookieDomain string `yaml:"cookie_domain" mapstructure:"cookie_domain"`

	// CookieSecure marks the session cookie Secure. Enable outside development.
	CookieSecure bool `yaml:"cookie_secure" mapstructure:"cookie_secure"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Issuer == "" {
		c.Issuer = "chaosregistry"
	}
	if c.TTL == 0 {
		c.TTL = 24 * time.Hour
	}
	if c.CookieName == "" {
		c.CookieName = "cr_session"
	}
	if c.CookieSecret == "" {
		c.CookieSecret = c.Secret
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("session.secret is required")
	}
	if c.TTL < 0 {
		return errors.New("session.ttl must be non-negative")
	}
	return nil
}
