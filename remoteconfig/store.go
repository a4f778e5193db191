package remoteconfig

import (
	"context"
	"sync"
	"time"

	"github.com/chaosregistry/platform/component"
	"github.com/chaosregistry/platform/logger"
)

// DefaultTTL is how long a snapshot stays fresh.
const DefaultTTL = 5 * time.Minute

// Store caches the latest validated Schema snapshot. The snapshot is an
// explicit {value, expiresAt} pair driven by an injected clock, so tests
// control freshness without sleeping.
//
// Refresh failures are absorbed: the previous snapshot keeps being served
// (defaults, if nothing was ever fetched) and the failure is logged and
// reflected in Health.
type Store struct {
	source Source
	ttl    time.Duration
	now    func() time.Time
	log    *logger.Logger

	mu        sync.Mutex
	value     Schema
	expiresAt time.Time
	loaded    bool
	lastErr   error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL overrides the snapshot freshness window.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store over the given source.
func NewStore(source Source, opts ...StoreOption) *Store {
	s := &Store{
		source: source,
		ttl:    DefaultTTL,
		now:    time.Now,
		log:    logger.WithComponent("remoteconfig"),
		value:  Defaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current Schema, refreshing it first if the cached
// one has expired. It always returns a usable Schema.
func (s *Store) Snapshot(ctx context.Context) Schema {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.now().Before(s.expiresAt) {
		s.refreshLocked(ctx)
	}
	return s.value
}

// Refresh forces a fetch regardless of freshness. The returned error is
// informational; the Store keeps serving the previous snapshot either way.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked(ctx)
	return s.lastErr
}

func (s *Store) refreshLocked(ctx context.Context) {
	raw, err := s.source.Fetch(ctx)
	if err != nil {
		s.lastErr = err
		s.log.Warn("remote config fetch failed, serving previous snapshot", logger.Fields(
			logger.FieldError, err.Error(),
			"loaded", s.loaded,
		))
		// Push expiry forward so a flapping source is not hammered on
		// every Snapshot call.
		s.expiresAt = s.now().Add(s.ttl)
		return
	}

	s.value = Parse(raw)
	s.expiresAt = s.now().Add(s.ttl)
	s.loaded = true
	s.lastErr = nil
}

// --- component.Component ---

// Name implements component.Component.
func (s *Store) Name() string { return "remoteconfig" }

// Start performs the initial fetch. A failing source does not abort
// startup; the defaults snapshot serves until the source recovers.
func (s *Store) Start(ctx context.Context) error {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("initial remote config fetch failed, starting with defaults")
	}
	return nil
}

// Stop implements component.Component.
func (s *Store) Stop(_ context.Context) error { return nil }

// Health reports degraded while the last refresh failed.
func (s *Store) Health(_ context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := component.Health{Name: s.Name(), Status: component.StatusHealthy}
	if s.lastErr != nil {
		h.Status = component.StatusDegraded
		h.Message = s.lastErr.Error()
	}
	return h
}
