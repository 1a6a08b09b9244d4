package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	serviceName = "reactor-pricing-engine"

	metricPassTotal      = "engine.pass.total"
	metricPassDuration   = "engine.pass.duration"
	metricNodeDuration   = "engine.node.duration"
	metricNodeErrors     = "engine.node.errors.total"
	metricDroppedEvents  = "engine.ingest.dropped_events.total"
	metricHealth         = "engine.health"
)

// MetricsConfig controls what a MetricsProvider exports.
type MetricsConfig struct {
	ServiceVersion string
	Environment    string
}

// DefaultMetricsConfig returns a sensible MetricsConfig for local/dev use.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{ServiceVersion: "0.1.0", Environment: "development"}
}

// MetricsProvider exports stabilization-engine metrics through an OTel
// MeterProvider backed by the Prometheus exporter: pass counts and
// durations, per-node durations and error counts, dropped ingestion
// events, and a health gauge. It mirrors the shape of a conventional
// OTel+Prometheus wiring, narrowed to this engine's own instruments.
type MetricsProvider struct {
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter

	passTotal     metric.Int64Counter
	passDuration  metric.Float64Histogram
	nodeDuration  metric.Float64Histogram
	nodeErrors    metric.Int64Counter
	droppedEvents metric.Int64Counter
	health        metric.Int64ObservableGauge

	mu      sync.RWMutex
	healthy bool
}

// NewMetricsProvider creates a MetricsProvider with a Prometheus exporter
// registered as the global OTel meter provider.
func NewMetricsProvider(ctx context.Context, cfg MetricsConfig) (*MetricsProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := &MetricsProvider{
		meterProvider: sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		),
		healthy: true,
	}
	otel.SetMeterProvider(mp.meterProvider)
	mp.meter = mp.meterProvider.Meter(serviceName)

	if err := mp.createInstruments(); err != nil {
		return nil, fmt.Errorf("failed to create metric instruments: %w", err)
	}
	return mp, nil
}

func (mp *MetricsProvider) createInstruments() error {
	var err error

	mp.passTotal, err = mp.meter.Int64Counter(metricPassTotal,
		metric.WithDescription("Total number of stabilization passes run"))
	if err != nil {
		return err
	}

	mp.passDuration, err = mp.meter.Float64Histogram(metricPassDuration,
		metric.WithDescription("Stabilization pass duration"),
		metric.WithUnit("us"))
	if err != nil {
		return err
	}

	mp.nodeDuration, err = mp.meter.Float64Histogram(metricNodeDuration,
		metric.WithDescription("Per-node stabilize duration"),
		metric.WithUnit("us"))
	if err != nil {
		return err
	}

	mp.nodeErrors, err = mp.meter.Int64Counter(metricNodeErrors,
		metric.WithDescription("Total number of trapped node operator errors"))
	if err != nil {
		return err
	}

	mp.droppedEvents, err = mp.meter.Int64Counter(metricDroppedEvents,
		metric.WithDescription("Total number of update events dropped by the ingestion ring"))
	if err != nil {
		return err
	}

	mp.health, err = mp.meter.Int64ObservableGauge(metricHealth,
		metric.WithDescription("1 if the engine is healthy, 0 otherwise"))
	if err != nil {
		return err
	}
	_, err = mp.meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		mp.mu.RLock()
		defer mp.mu.RUnlock()
		v := int64(0)
		if mp.healthy {
			v = 1
		}
		o.ObserveInt64(mp.health, v)
		return nil
	}, mp.health)
	return err
}

// RecordPass records one stabilization pass's duration and node count.
func (mp *MetricsProvider) RecordPass(ctx context.Context, epoch uint64, duration time.Duration, nodesStabilized int) {
	attrs := metric.WithAttributes(attribute.Int("nodes.stabilized", nodesStabilized))
	mp.passTotal.Add(ctx, 1, attrs)
	mp.passDuration.Record(ctx, float64(duration.Microseconds()), attrs)
}

// RecordNode records one node's stabilize duration and, on failure,
// increments the trapped-error counter.
func (mp *MetricsProvider) RecordNode(ctx context.Context, name string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("node.name", name))
	mp.nodeDuration.Record(ctx, float64(duration.Microseconds()), attrs)
	if err != nil {
		mp.nodeErrors.Add(ctx, 1, attrs)
	}
}

// RecordDroppedEvent increments the dropped-ingestion-event counter.
func (mp *MetricsProvider) RecordDroppedEvent(ctx context.Context) {
	mp.droppedEvents.Add(ctx, 1)
}

// SetHealthy updates the value the health gauge reports on its next
// collection.
func (mp *MetricsProvider) SetHealthy(healthy bool) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.healthy = healthy
}

// Shutdown flushes and shuts down the underlying meter provider.
func (mp *MetricsProvider) Shutdown(ctx context.Context) error {
	if mp.meterProvider == nil {
		return nil
	}
	if err := mp.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}
