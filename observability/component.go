package observability

import (
	"context"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/chaosregistry/platform/component"
)

const componentName = "telemetry"

var _ component.Component = (*Telemetry)(nil)

// Config configures the Telemetry component.
type Config struct {
	Enabled        bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint       string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure       bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
	ServiceName    string  `yaml:"-" mapstructure:"-"`
	ServiceVersion string  `yaml:"-" mapstructure:"-"`
	Environment    string  `yaml:"-" mapstructure:"-"`
}

// Telemetry manages the tracer and meter providers as a lifecycle component.
type Telemetry struct {
	cfg Config
	tp  *sdktrace.TracerProvider
	mp  *sdkmetric.MeterProvider
}

// NewTelemetry creates the telemetry component. Providers are created on Start.
func NewTelemetry(cfg Config) *Telemetry {
	return &Telemetry{cfg: cfg}
}

// Name returns the component name used for registration.
func (t *Telemetry) Name() string { return componentName }

// Start initializes the tracer and meter providers when enabled.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled {
		return nil
	}

	tcfg := DefaultTracerConfig(t.cfg.ServiceName)
	tcfg.ServiceVersion = t.cfg.ServiceVersion
	tcfg.Environment = t.cfg.Environment
	tcfg.Endpoint = t.cfg.Endpoint
	tcfg.Insecure = t.cfg.Insecure
	if t.cfg.SampleRate > 0 {
		tcfg.SampleRate = t.cfg.SampleRate
	}

	tp, err := InitTracer(ctx, tcfg)
	if err != nil {
		return err
	}
	t.tp = tp

	mcfg := DefaultMeterConfig(t.cfg.ServiceName)
	mcfg.ServiceVersion = t.cfg.ServiceVersion
	mcfg.Environment = t.cfg.Environment
	mcfg.Endpoint = t.cfg.Endpoint
	mcfg.Insecure = t.cfg.Insecure

	mp, err := InitMeter(ctx, mcfg)
	if err != nil {
		return err
	}
	t.mp = mp
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var firstErr error
	if t.mp != nil {
		if err := t.mp.Shutdown(shutdownCtx); err != nil {
			firstErr = err
		}
		t.mp = nil
	}
	if t.tp != nil {
		if err := t.tp.Shutdown(shutdownCtx); err != nil && firstErr == nil {
			firstErr = err
		}
		t.tp = nil
	}
	return firstErr
}

// Health reports whether telemetry is exporting.
func (t *Telemetry) Health(ctx context.Context) component.Health {
	if !t.cfg.Enabled {
		return component.Health{Name: componentName, Status: component.StatusHealthy, Message: "disabled"}
	}
	if t.tp == nil || t.mp == nil {
		return component.Health{Name: componentName, Status: component.StatusDegraded, Message: "not started"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}
