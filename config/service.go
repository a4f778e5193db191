package config

import (
	"fmt"
	"time"

	"github.com/chaosregistry/platform/admincache"
	"github.com/chaosregistry/platform/logger"
	"github.com/chaosregistry/platform/oauth"
	"github.com/chaosregistry/platform/observability"
	"github.com/chaosregistry/platform/server"
	"github.com/chaosregistry/platform/session"
)

// ServiceConfig contains the essential configuration fields every service needs.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies default values to the base configuration.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
}

// Validate validates the base configuration fields.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config.name is required")
	}
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of [development, staging, production] (got: %s)", c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// AdsConfig seeds the remote configuration store.
type AdsConfig struct {
	// TTL is the freshness window for remote config snapshots.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
	// Values are static key-value overrides, used when no external config
	// store is wired (development, tests).
	Values map[string]string `yaml:"values" mapstructure:"values"`
}

// ApplyDefaults applies default values to the ads configuration.
func (c *AdsConfig) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = 5 * time.Minute
	}
}

// AdminConfig controls admin-status resolution.
type AdminConfig struct {
	// Users lists the user IDs granted admin status. Checked through the
	// admin-status cache so a future external checker slots in unchanged.
	Users []string `yaml:"users" mapstructure:"users"`
	// Cache bounds and ages the cached admin statuses.
	Cache admincache.Config `yaml:"cache" mapstructure:"cache"`
}

// ApplyDefaults applies default values to the admin configuration.
func (c *AdminConfig) ApplyDefaults() {
	c.Cache.ApplyDefaults()
}

// Config is the full configuration tree for the ChaosRegistry service.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server    server.Config        `yaml:"server" mapstructure:"server"`
	OAuth     oauth.Config         `yaml:"oauth" mapstructure:"oauth"`
	Session   session.Config       `yaml:"session" mapstructure:"session"`
	Ads       AdsConfig            `yaml:"ads" mapstructure:"ads"`
	Admin     AdminConfig          `yaml:"admin" mapstructure:"admin"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults applies defaults across all sections.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.OAuth.ApplyDefaults()
	c.Session.ApplyDefaults()
	c.Ads.ApplyDefaults()
	c.Admin.ApplyDefaults()
}

// Validate validates all sections.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.OAuth.Validate(); err != nil {
		return fmt.Errorf("config.oauth: %w", err)
	}
	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("config.session: %w", err)
	}
	return nil
}
