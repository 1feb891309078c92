package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics records cache and credential activity on OpenTelemetry
// instruments. The zero-value path uses a noop meter, so a library user who
// never configures metrics pays nothing.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: recording never panics and never fails the caller.
type Metrics struct {
	cacheLookups metric.Int64Counter
	tokenOps     metric.Int64Counter
	authOps      metric.Int64Counter
}

// NewMetrics builds the instrument set on the given meter. A nil meter
// yields noop instruments.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("minim")
	}

	cacheLookups, err := meter.Int64Counter(
		"minim.cache.lookups",
		metric.WithDescription("Response cache lookups by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}
	tokenOps, err := meter.Int64Counter(
		"minim.tokens.operations",
		metric.WithDescription("Token store operations by kind"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}
	authOps, err := meter.Int64Counter(
		"minim.auth.exchanges",
		metric.WithDescription("Authorization exchanges by outcome"),
		metric.WithUnit("{exchange}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		cacheLookups: cacheLookups,
		tokenOps:     tokenOps,
		authOps:      authOps,
	}, nil
}

// CacheHit records a response served from cache.
func (m *Metrics) CacheHit(ctx context.Context) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "hit")))
}

// CacheMiss records a lookup that fell through to the upstream call.
func (m *Metrics) CacheMiss(ctx context.Context) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "miss")))
}

// TokenOp records a token store operation (get, add, remove, list).
func (m *Metrics) TokenOp(ctx context.Context, kind string) {
	m.tokenOps.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// AuthExchange records a fresh authorization attempt and its outcome.
func (m *Metrics) AuthExchange(ctx context.Context, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.authOps.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
