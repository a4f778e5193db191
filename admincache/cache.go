package admincache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/chaosregistry/platform/logger"
)

const (
	defaultMaxSize = 1024
	defaultTTL     = 5 * time.Minute
)

// Checker resolves the authoritative admin status for a user.
type Checker func(ctx context.Context, userID string) (bool, error)

// Config configures the cache.
type Config struct {
	// MaxSize bounds the number of cached users.
	MaxSize int `yaml:"max_size" mapstructure:"max_size"`
	// TTL is how long a cached status stays fresh.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults applies default values to the cache configuration.
func (c *Config) ApplyDefaults() {
	if c.MaxSize <= 0 {
		c.MaxSize = defaultMaxSize
	}
	if c.TTL <= 0 {
		c.TTL = defaultTTL
	}
}

// entry keeps the status with its fetch time; entries past the TTL stay
// in the LRU so they can back a stale fallback.
type entry struct {
	isAdmin  bool
	storedAt time.Time
}

// Cache is an LRU admin-status cache over a Checker.
type Cache struct {
	cfg     Config
	checker Checker
	cache   *lru.Cache[string, entry]
	log     *logger.Logger
	now     func() time.Time
}

// Option configures the Cache.
type Option func(*Cache)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates an admin-status cache.
func New(cfg Config, checker Checker, log *logger.Logger, opts ...Option) (*Cache, error) {
	if checker == nil {
		return nil, fmt.Errorf("admincache: checker is required")
	}
	cfg.ApplyDefaults()

	inner, err := lru.New[string, entry](cfg.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("admincache: %w", err)
	}

	c := &Cache{
		cfg:     cfg,
		checker: checker,
		cache:   inner,
		log:     log.WithComponent("admincache"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// IsAdmin reports whether the user is an admin. A fresh cached value is
// returned directly; otherwise the checker is consulted. When the checker
// fails and a stale value exists, the stale value is returned.
func (c *Cache) IsAdmin(ctx context.Context, userID string) (bool, error) {
	cached, hasCached := c.cache.Get(userID)
	if hasCached && c.now().Sub(cached.storedAt) < c.cfg.TTL {
		return cached.isAdmin, nil
	}

	isAdmin, err := c.checker(ctx, userID)
	if err != nil {
		if hasCached {
			c.log.Warn("Admin check failed, serving stale status", logger.Fields(
				logger.FieldUserID, userID,
				logger.FieldError, err.Error(),
			))
			return cached.isAdmin, nil
		}
		return false, fmt.Errorf("admincache: check %s: %w", userID, err)
	}

	c.cache.Add(userID, entry{isAdmin: isAdmin, storedAt: c.now()})
	return isAdmin, nil
}

// Invalidate drops the cached status for a user.
func (c *Cache) Invalidate(userID string) {
	c.cache.Remove(userID)
}

// Len returns the number of cached users.
func (c *Cache) Len() int {
	return c.cache.Len()
}
