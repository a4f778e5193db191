package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the service's metric instruments. A nil *Metrics is valid
// and records nothing, so call sites never need to guard.
type Metrics struct {
	loginTotal   metric.Int64Counter
	loginFailure metric.Int64Counter
	feedTotal    metric.Int64Counter
	adSlotTotal  metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	loginTotal, err := meter.Int64Counter("login.total",
		metric.WithDescription("Login flows completed, by provider, platform, and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating login.total counter: %w", err)
	}

	loginFailure, err := meter.Int64Counter("login.failure",
		metric.WithDescription("Login failures by machine-readable error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating login.failure counter: %w", err)
	}

	feedTotal, err := meter.Int64Counter("feed.requests",
		metric.WithDescription("Feed pages served, by tab"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating feed.requests counter: %w", err)
	}

	adSlotTotal, err := meter.Int64Counter("feed.ad_slots",
		metric.WithDescription("Ad slots emitted into feed pages, by tab"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating feed.ad_slots counter: %w", err)
	}

	return &Metrics{
		loginTotal:   loginTotal,
		loginFailure: loginFailure,
		feedTotal:    feedTotal,
		adSlotTotal:  adSlotTotal,
	}, nil
}

// RecordLogin records a completed login flow.
func (m *Metrics) RecordLogin(ctx context.Context, provider, platform, status string) {
	if m == nil {
		return
	}
	m.loginTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("platform", platform),
		attribute.String("status", status),
	))
}

// RecordLoginFailure records a login failure with its error code.
func (m *Metrics) RecordLoginFailure(ctx context.Context, provider, platform, code string) {
	if m == nil {
		return
	}
	m.loginFailure.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("platform", platform),
		attribute.String("code", code),
	))
}

// RecordFeedPage records a served feed page and how many ad slots it carried.
func (m *Metrics) RecordFeedPage(ctx context.Context, tab string, adSlots int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("tab", tab))
	m.feedTotal.Add(ctx, 1, attrs)
	if adSlots > 0 {
		m.adSlotTotal.Add(ctx, int64(adSlots), attrs)
	}
}
