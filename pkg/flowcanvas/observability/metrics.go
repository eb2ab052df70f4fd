package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records flowcanvas metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordMutation records a store command. applied is false for no-ops.
	RecordMutation(ctx context.Context, op string, applied bool)

	// RecordConnection records a connection validation outcome.
	RecordConnection(ctx context.Context, sourceType, targetType string, valid bool)

	// RecordHistory records the history depth after a history operation.
	RecordHistory(ctx context.Context, op string, depth int)

	// RecordSimulation records a finished mock run.
	RecordSimulation(ctx context.Context, success bool, duration time.Duration)

	// RecordStep records one simulated node.
	RecordStep(ctx context.Context, nodeType string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	mutations      metric.Int64Counter
	noops          metric.Int64Counter
	validated      metric.Int64Counter
	rejected       metric.Int64Counter
	historyDepth   metric.Int64Histogram
	simulationRuns metric.Int64Counter
	simulationLat  metric.Float64Histogram
	stepLatency    metric.Float64Histogram
	stepErrors     metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("flowcanvas")
	m := &otelMetrics{}
	var err error

	if m.mutations, err = meter.Int64Counter("flowcanvas.store.mutations",
		metric.WithDescription("Store commands that changed state"),
	); err != nil {
		return nil, err
	}
	if m.noops, err = meter.Int64Counter("flowcanvas.store.noops",
		metric.WithDescription("Store commands that left state unchanged"),
	); err != nil {
		return nil, err
	}
	if m.validated, err = meter.Int64Counter("flowcanvas.connections.validated",
		metric.WithDescription("Connection validations performed"),
	); err != nil {
		return nil, err
	}
	if m.rejected, err = meter.Int64Counter("flowcanvas.connections.rejected",
		metric.WithDescription("Connections refused by the validator"),
	); err != nil {
		return nil, err
	}
	if m.historyDepth, err = meter.Int64Histogram("flowcanvas.history.depth",
		metric.WithDescription("Number of stored workflow snapshots"),
	); err != nil {
		return nil, err
	}
	if m.simulationRuns, err = meter.Int64Counter("flowcanvas.simulation.runs",
		metric.WithDescription("Number of mock simulation runs"),
	); err != nil {
		return nil, err
	}
	if m.simulationLat, err = meter.Float64Histogram("flowcanvas.simulation.latency_ms",
		metric.WithDescription("Mock simulation latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.stepLatency, err = meter.Float64Histogram("flowcanvas.step.latency_ms",
		metric.WithDescription("Simulated step latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.stepErrors, err = meter.Int64Counter("flowcanvas.step.errors",
		metric.WithDescription("Simulated steps that failed"),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider. If instrument creation fails it returns NoopMetrics.
//
// Configure the provider first:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordMutation records a store command.
func (m *otelMetrics) RecordMutation(ctx context.Context, op string, applied bool) {
	attrs := metric.WithAttributes(attribute.String("op", op))
	if applied {
		m.mutations.Add(ctx, 1, attrs)
		return
	}
	m.noops.Add(ctx, 1, attrs)
}

// RecordConnection records a validation outcome.
func (m *otelMetrics) RecordConnection(ctx context.Context, sourceType, targetType string, valid bool) {
	attrs := metric.WithAttributes(
		attribute.String("source_type", sourceType),
		attribute.String("target_type", targetType),
	)
	m.validated.Add(ctx, 1, attrs)
	if !valid {
		m.rejected.Add(ctx, 1, attrs)
	}
}

// RecordHistory records history depth.
func (m *otelMetrics) RecordHistory(ctx context.Context, op string, depth int) {
	m.historyDepth.Record(ctx, int64(depth), metric.WithAttributes(attribute.String("op", op)))
}

// RecordSimulation records a finished run.
func (m *otelMetrics) RecordSimulation(ctx context.Context, success bool, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("success", success))
	m.simulationRuns.Add(ctx, 1, attrs)
	m.simulationLat.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// RecordStep records one simulated node.
func (m *otelMetrics) RecordStep(ctx context.Context, nodeType string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("node_type", nodeType))
	m.stepLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		m.stepErrors.Add(ctx, 1, attrs)
	}
}
