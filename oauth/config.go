package oauth

import (
	"fmt"
	"time"
)

// ProviderConfig holds the credentials and endpoints for one provider.
// Endpoint fields default to the provider's production URLs; tests point
// them at local servers.
type ProviderConfig struct {
	ClientID     string `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string `yaml:"client_secret" mapstructure:"client_secret"`
	RedirectURI  string `yaml:"redirect_uri" mapstructure:"redirect_uri"`

	AuthURL     string `yaml:"auth_url" mapstructure:"auth_url"`
	TokenURL    string `yaml:"token_url" mapstructure:"token_url"`
	VerifyURL   string `yaml:"verify_url" mapstructure:"verify_url"`
	UserInfoURL string `yaml:"user_info_url" mapstructure:"user_info_url"`
}

// Enabled reports whether the provider is configured.
func (c ProviderConfig) Enabled() bool {
	return c.ClientID != ""
}

// RedirectConfig decides where the callback's terminal 302 goes, as a pure
// function of the platform recovered from the state token.
type RedirectConfig struct {
	// WebURL is the HTTPS frontend URL that completes a web login.
	WebURL string `yaml:"web_url" mapstructure:"web_url"`

	// DeepLinkScheme is the URI scheme for native app callbacks
	// (e.g. "chaosregistry" yields chaosregistry://auth/callback).
	DeepLinkScheme string `yaml:"deep_link_scheme" mapstructure:"deep_link_scheme"`
}

// Config holds the OAuth module configuration.
type Config struct {
	// StateCredential is the master credential the state signing key is
	// derived from.
	StateCredential string `yaml:"state_credential" mapstructure:"state_credential"`

	// StateTTL bounds the age of a verifiable state token.
	StateTTL time.Duration `yaml:"state_ttl" mapstructure:"state_ttl"`

	// ExchangeTimeout bounds each outbound provider call.
	ExchangeTimeout time.Duration `yaml:"exchange_timeout" mapstructure:"exchange_timeout"`

	Line     ProviderConfig `yaml:"line" mapstructure:"line"`
	Twitter  ProviderConfig `yaml:"twitter" mapstructure:"twitter"`
	Redirect RedirectConfig `yaml:"redirect" mapstructure:"redirect"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.StateTTL == 0 {
		c.StateTTL = 5 * time.Minute
	}
	if c.ExchangeTimeout == 0 {
		c.ExchangeTimeout = 10 * time.Second
	}
	if c.Redirect.WebURL == "" {
		c.Redirect.WebURL = "http://localhost:3000/auth/callback"
	}
	if c.Redirect.DeepLinkScheme == "" {
		c.Redirect.DeepLinkScheme = "chaosregistry"
	}

	if c.Line.AuthURL == "" {
		c.Line.AuthURL = "https://access.line.me/oauth2/v2.1/authorize"
	}
	if c.Line.TokenURL == "" {
		c.Line.TokenURL = "https://api.line.me/oauth2/v2.1/token"
	}
	if c.Line.VerifyURL == "" {
		c.Line.VerifyURL = "https://api.line.me/oauth2/v2.1/verify"
	}

	if c.Twitter.AuthURL == "" {
		c.Twitter.AuthURL = "https://twitter.com/i/oauth2/authorize"
	}
	if c.Twitter.TokenURL == "" {
		c.Twitter.TokenURL = "https://api.twitter.com/2/oauth2/token"
	}
	if c.Twitter.UserInfoURL == "" {
		c.Twitter.UserInfoURL = "https://api.twitter.com/2/users/me"
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.StateCredential == "" {
		return fmt.Errorf("oauth.state_credential is required")
	}
	if !c.Line.Enabled() && !c.Twitter.Enabled() {
		return fmt.Errorf("oauth: at least one provider must be configured")
	}
	if c.Line.Enabled() && c.Line.RedirectURI == "" {
		return fmt.Errorf("oauth.line.redirect_uri is required")
	}
	if c.Twitter.Enabled() && c.Twitter.RedirectURI == "" {
		return fmt.Errorf("oauth.twitter.redirect_uri is required")
	}
	return nil
}
