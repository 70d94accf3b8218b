package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"usermgmt/internal/domain/common"
)

const remoteMeterName = "usermgmt/usersync"

// RemoteMetrics records calls to the users collection resource, by operation
// and outcome.
type RemoteMetrics struct {
	calls   metric.Int64Counter
	latency metric.Float64Histogram
}

// NewRemoteMetrics registers the instruments on mp. Instrument errors leave
// no-op instruments behind.
func NewRemoteMetrics(mp metric.MeterProvider) *RemoteMetrics {
	meter := mp.Meter(remoteMeterName)

	calls, _ := meter.Int64Counter("usermgmt.remote.calls",
		metric.WithDescription("Calls to the users collection resource"),
	)
	latency, _ := meter.Float64Histogram("usermgmt.remote.duration",
		metric.WithDescription("Round trip of calls to the users collection resource"),
		metric.WithUnit("ms"),
	)

	return &RemoteMetrics{calls: calls, latency: latency}
}

// Record adds one call of op that started at start and ended with err.
func (m *RemoteMetrics) Record(ctx context.Context, op string, start time.Time, err error) {
	if m == nil || m.calls == nil || m.latency == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("outcome", Outcome(err)),
	)
	m.calls.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
}

// Outcome names err for metric attributes.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case common.IsNotFound(err):
		return "not_found"
	case common.IsNetwork(err):
		return "network_error"
	default:
		return "error"
	}
}
