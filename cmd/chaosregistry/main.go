package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chaosregistry/platform/admincache"
	"github.com/chaosregistry/platform/authstate"
	"github.com/chaosregistry/platform/component"
	"github.com/chaosregistry/platform/config"
	"github.com/chaosregistry/platform/feed"
	"github.com/chaosregistry/platform/httpclient"
	"github.com/chaosregistry/platform/logger"
	"github.com/chaosregistry/platform/oauth"
	"github.com/chaosregistry/platform/observability"
	"github.com/chaosregistry/platform/remoteconfig"
	"github.com/chaosregistry/platform/server"
	"github.com/chaosregistry/platform/session"
	"github.com/chaosregistry/platform/version"
)

const serviceName = "chaosregistry"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config.Config
	if err := config.Load(serviceName, &cfg); err != nil {
		return err
	}
	cfg.Name = serviceName
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, serviceName)
	logger.SetGlobalLogger(log)

	log.Info("Starting service", logger.Fields(
		"version", version.Short(),
		"environment", cfg.Environment,
	))

	registry := component.NewRegistry()

	telemetryCfg := cfg.Telemetry
	telemetryCfg.ServiceName = serviceName
	telemetryCfg.ServiceVersion = version.Short()
	telemetryCfg.Environment = cfg.Environment
	if err := registry.Register(observability.NewTelemetry(telemetryCfg)); err != nil {
		return err
	}

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		log.Warn("Metrics disabled", logger.Fields(logger.FieldError, err.Error()))
		metrics = nil
	}

	remote := remoteconfig.NewStore(
		remoteconfig.StaticSource(cfg.Ads.Values),
		remoteconfig.WithTTL(cfg.Ads.TTL),
	)
	if err := registry.Register(remote); err != nil {
		return err
	}

	signer, err := authstate.NewSigner(cfg.OAuth.StateCredential, authstate.WithTTL(cfg.OAuth.StateTTL))
	if err != nil {
		return err
	}
	sessions, err := session.NewService(cfg.Session)
	if err != nil {
		return err
	}

	client, err := httpclient.New(httpclient.Config{Timeout: cfg.OAuth.ExchangeTimeout})
	if err != nil {
		return err
	}

	var providers []oauth.Provider
	if cfg.OAuth.Line.Enabled() {
		providers = append(providers, oauth.NewLineProvider(cfg.OAuth.Line, client))
	}
	if cfg.OAuth.Twitter.Enabled() {
		providers = append(providers, oauth.NewTwitterProvider(cfg.OAuth.Twitter, client))
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(serviceName, registry.HealthAll)

	oauthHandler := oauth.NewHandler(signer, sessions, cfg.OAuth.Redirect,
		cfg.OAuth.ExchangeTimeout, metrics, log, providers...)
	oauthHandler.Register(srv.GinEngine())

	topics := feed.NewMemoryStore()
	if cfg.Debug {
		seedDevelopmentTopics(topics)
	}
	feedHandler := feed.NewHandler(feed.NewService(topics, remote, log), metrics)
	feedHandler.Register(srv.GinEngine().Group("/", sessions.OptionalMiddleware()))

	adminSet := make(map[string]bool, len(cfg.Admin.Users))
	for _, id := range cfg.Admin.Users {
		adminSet[id] = true
	}
	admins, err := admincache.New(cfg.Admin.Cache, func(_ context.Context, userID string) (bool, error) {
		return adminSet[userID], nil
	}, log)
	if err != nil {
		return err
	}
	session.NewProfileHandler(sessions, admins).Register(srv.GinEngine())

	if err := registry.Register(srv); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := registry.StartAll(ctx); err != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = registry.StopAll(shutdownCtx)
		return err
	}

	log.Info("Service started", logger.Fields(
		"addr", srv.Addr(),
		"providers", len(providers),
	))

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return registry.StopAll(shutdownCtx)
}

// seedDevelopmentTopics fills the in-memory store so the feed endpoints
// return something useful without an external data source.
func seedDevelopmentTopics(store *feed.MemoryStore) {
	now := time.Now()
	for i := 0; i < 30; i++ {
		store.Add(feed.Topic{
			ID:          fmt.Sprintf("demo-%d", i),
			Title:       fmt.Sprintf("Demo topic %d", i),
			AuthorID:    "demo",
			VoteCount:   (i * 37) % 100,
			MemberCount: (i * 13) % 50,
			Promoted:    i == 0,
			CreatedAt:   now.Add(-time.Duration(i) * time.Hour),
		})
	}
}
